package repository

import (
	"errors"
	"fmt"
)

// Sentinel kinds for record store errors.
var (
	ErrValidation = errors.New("invalid edition record")
	ErrEmptyStore = errors.New("no edition records")
)

// ValidationError describes one malformed record found while building a store.
type ValidationError struct {
	Index  int    // position in the input slice
	Year   int    // year of the offending record
	Reason string // what is wrong with it
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: record %d (year %d): %s", ErrValidation, e.Index, e.Year, e.Reason)
}

// Is reports kind equality so callers can match with errors.Is(err, ErrValidation).
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
