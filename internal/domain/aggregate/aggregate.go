// Package aggregate derives win counts from the edition records.
package aggregate

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/finals/internal/domain/model"
	"github.com/okian/finals/pkg/metrics"
)

const nanosecondsPerMillisecond = 1e6

// Source supplies the records to aggregate.
type Source interface {
	AllRecords(ctx context.Context) []model.EditionRecord
}

// Tally counts wins per winner in a single pass. The result does not depend
// on record order.
func Tally(records []model.EditionRecord) map[string]int {
	counts := make(map[string]int)
	for _, r := range records {
		counts[r.Winner]++
	}
	return counts
}

// Sorted orders counts by count descending, then entity ascending.
func Sorted(counts map[string]int) []model.WinCount {
	out := make([]model.WinCount, 0, len(counts))
	for entity, n := range counts {
		out = append(out, model.WinCount{Entity: entity, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Entity < out[j].Entity
	})
	return out
}

// snapshot is one immutable computation result.
type snapshot struct {
	counts  map[string]int
	ordered []model.WinCount
	total   int
}

// Aggregator memoizes the win counts of a Source.
//
// The counts are computed at most once until Invalidate is called. Readers
// load a published snapshot without locking and never see a partial build.
type Aggregator struct {
	src   Source
	eager bool

	mu     sync.Mutex // serializes builds
	snap   atomic.Pointer[snapshot]
	builds atomic.Int64
}

// New creates an Aggregator over src.
func New(ctx context.Context, src Source, opts ...Option) *Aggregator {
	a := &Aggregator{src: src}
	for _, opt := range opts {
		opt(a)
	}
	if a.eager {
		a.load(ctx)
	}
	return a
}

func (a *Aggregator) load(ctx context.Context) *snapshot {
	if s := a.snap.Load(); s != nil {
		return s
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if s := a.snap.Load(); s != nil {
		return s
	}

	start := time.Now()
	records := a.src.AllRecords(ctx)
	counts := Tally(records)
	s := &snapshot{
		counts:  counts,
		ordered: Sorted(counts),
		total:   len(records),
	}
	a.snap.Store(s)
	a.builds.Add(1)

	metrics.RecordAggregationBuild(float64(time.Since(start).Nanoseconds()) / nanosecondsPerMillisecond)
	metrics.UpdateWinnersTotal(len(counts))
	return s
}

// WinCounts returns a copy of the entity to win count mapping.
func (a *Aggregator) WinCounts(ctx context.Context) map[string]int {
	s := a.load(ctx)
	out := make(map[string]int, len(s.counts))
	for k, v := range s.counts {
		out[k] = v
	}
	return out
}

// Count returns the wins of entity using exact name matching.
func (a *Aggregator) Count(ctx context.Context, entity string) (int, bool) {
	n, ok := a.load(ctx).counts[entity]
	return n, ok
}

// Ordered returns the win counts sorted by count descending, then entity.
func (a *Aggregator) Ordered(ctx context.Context) []model.WinCount {
	s := a.load(ctx)
	out := make([]model.WinCount, len(s.ordered))
	copy(out, s.ordered)
	return out
}

// Total returns the number of records the current counts were built from.
func (a *Aggregator) Total(ctx context.Context) int {
	return a.load(ctx).total
}

// Invalidate drops the memoized counts; the next read recomputes them.
func (a *Aggregator) Invalidate() {
	a.mu.Lock()
	a.snap.Store(nil)
	a.mu.Unlock()
}

// Builds returns how many times the counts have been computed.
func (a *Aggregator) Builds() int64 {
	return a.builds.Load()
}
