package store

import (
	"errors"
	"strings"
)

// ErrSeedConflict reports that a seed write found existing items.
var ErrSeedConflict = errors.New("seed conflicts with existing items")

// SeedConflictError lists the items that blocked a seed write.
type SeedConflictError struct {
	Items []string
}

func (e *SeedConflictError) Error() string {
	return ErrSeedConflict.Error() + ": " + strings.Join(e.Items, ", ")
}

// Is matches ErrSeedConflict.
func (e *SeedConflictError) Is(target error) bool { return target == ErrSeedConflict }
