package trie

import (
	"github.com/pkg/errors"
)

// ErrInvalidArgument is returned by Set and Del when the key is nil, and by
// an iterator factory given a nil store or key, a negative keylen, or a
// bound below the accepted minimum. Set and Del are methods on *Store and
// do not check for a nil receiver.
var ErrInvalidArgument = errors.New("trie: invalid argument")

// ErrNotFound is returned by NewNeighborIterator when the query key is not
// an item in the store.
var ErrNotFound = errors.New("trie: key not found")

// Status is the latched error code read through an iterator's Err method,
// matching the error codes in spec.md §6.
type Status int

const (
	// StatusOK means the iterator has not latched any error.
	StatusOK Status = 0
	// StatusOutOfSync means a mutating call happened between the iterator's
	// birth and its most recent Next, invalidating any further traversal.
	StatusOutOfSync Status = -1
	// StatusReplaced means a newer dirty iterator took over the store's
	// single dirty slot.
	StatusReplaced Status = -2
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusOutOfSync:
		return "out-of-sync"
	case StatusReplaced:
		return "replaced"
	default:
		return "unknown"
	}
}
