// Package repository holds the read-only edition record store.
package repository

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"strings"

	"github.com/okian/finals/internal/domain/model"
	"github.com/okian/finals/pkg/metrics"
)

// Store provides read access to the edition records.
type Store interface {
	// AllRecords returns every record in load order.
	AllRecords(ctx context.Context) []model.EditionRecord

	// Entities returns the distinct winner names, sorted.
	Entities(ctx context.Context) []string

	// Lookup returns the record for year, if any.
	Lookup(ctx context.Context, year int) (model.EditionRecord, bool)

	// Years returns every stored year in ascending order.
	Years(ctx context.Context) []int

	// Count returns the number of stored records.
	Count(ctx context.Context) int
}

// MemoryStore is an immutable Store built from a validated slice of records.
type MemoryStore struct {
	records  []model.EditionRecord
	byYear   map[int]int
	entities []string
	years    []int
}

// NewMemoryStore validates records and builds a store over a private copy.
// Every malformed record is reported; the returned error matches ErrValidation.
func NewMemoryStore(ctx context.Context, records []model.EditionRecord) (*MemoryStore, error) {
	if len(records) == 0 {
		return nil, ErrEmptyStore
	}

	var errs []error
	byYear := make(map[int]int, len(records))
	for i, r := range records {
		winner := strings.TrimSpace(r.Winner)
		runnerUp := strings.TrimSpace(r.RunnerUp)
		switch {
		case winner == "":
			errs = append(errs, &ValidationError{Index: i, Year: r.Year, Reason: "missing winner"})
		case runnerUp == "":
			errs = append(errs, &ValidationError{Index: i, Year: r.Year, Reason: "missing runner-up"})
		case winner == runnerUp:
			errs = append(errs, &ValidationError{Index: i, Year: r.Year, Reason: "winner and runner-up are the same entity"})
		}
		if first, dup := byYear[r.Year]; dup {
			errs = append(errs, &ValidationError{Index: i, Year: r.Year, Reason: "duplicate year, first seen at record " + strconv.Itoa(first)})
			continue
		}
		byYear[r.Year] = i
	}
	if len(errs) > 0 {
		metrics.RecordValidationFailures(len(errs))
		return nil, errors.Join(errs...)
	}

	s := &MemoryStore{
		records: make([]model.EditionRecord, len(records)),
		byYear:  byYear,
		years:   make([]int, 0, len(records)),
	}
	copy(s.records, records)

	seen := make(map[string]struct{})
	for _, r := range s.records {
		s.years = append(s.years, r.Year)
		if _, ok := seen[r.Winner]; ok {
			continue
		}
		seen[r.Winner] = struct{}{}
		s.entities = append(s.entities, r.Winner)
	}
	sort.Ints(s.years)
	sort.Strings(s.entities)

	metrics.UpdateEditionsTotal(len(s.records))
	return s, nil
}

// AllRecords returns a copy of the records in load order.
func (s *MemoryStore) AllRecords(_ context.Context) []model.EditionRecord {
	out := make([]model.EditionRecord, len(s.records))
	copy(out, s.records)
	return out
}

// Entities returns a copy of the sorted winner names.
func (s *MemoryStore) Entities(_ context.Context) []string {
	out := make([]string, len(s.entities))
	copy(out, s.entities)
	return out
}

// Lookup returns the record for year.
func (s *MemoryStore) Lookup(_ context.Context, year int) (model.EditionRecord, bool) {
	i, ok := s.byYear[year]
	if !ok {
		return model.EditionRecord{}, false
	}
	return s.records[i], true
}

// Years returns a copy of the ascending years.
func (s *MemoryStore) Years(_ context.Context) []int {
	out := make([]int, len(s.years))
	copy(out, s.years)
	return out
}

// Count returns the number of records.
func (s *MemoryStore) Count(_ context.Context) int {
	return len(s.records)
}
