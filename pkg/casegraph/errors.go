package casegraph

import "errors"

var (
	// ErrValidation marks malformed input (empty labels, unknown node
	// types, missing identifiers). Rejected before any mutation.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound marks an edge upsert referencing a node id absent
	// from the case graph.
	ErrNotFound = errors.New("not found")

	// ErrConflict marks a broken per-case exclusion guarantee, e.g. a
	// lost lease mid-batch. Not retryable.
	ErrConflict = errors.New("case lock conflict")
)
