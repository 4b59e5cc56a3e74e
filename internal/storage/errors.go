package storage

import (
	"errors"
	"fmt"
)

var (
	// ErrConflict matches every *ConflictError via errors.Is.
	ErrConflict = errors.New("revision conflict")
	ErrNotFound = errors.New("not found")
)

// ConflictError reports an expected revision that no longer matches the
// stored one. Reload and retry.
type ConflictError struct {
	Expected int64
	Current  int64
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("revision conflict: expected rev %d, current rev %d", e.Expected, e.Current)
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

// ExpectRev returns a revision precondition for a mutation. Pass nil to skip
// the check.
func ExpectRev(rev int64) *int64 {
	return &rev
}
