package engine

import (
	"errors"
	"fmt"
)

// Sentinel errors for typed handling on the caller's side.
var (
	// ErrNoActiveTransaction is returned by Commit or Rollback when the
	// transaction stack is empty.
	ErrNoActiveTransaction = errors.New("engine: no active transaction")

	// errWriteConflict is the base sentinel for WriteConflictError, so
	// callers can still errors.Is against a stable value.
	errWriteConflict = errors.New("engine: write conflict")

	// ErrMirrorIOFailure is the base sentinel wrapped around any error the
	// mirror adapter returns from LoadAll, Apply, or Close. The engine
	// never retries; in-memory state stays consistent and the caller
	// decides whether to retry the flush.
	ErrMirrorIOFailure = errors.New("engine: mirror I/O failure")
)

// WriteConflictError reports the first key an outer commit found to have a
// committed version newer than the transaction's snapshot.
type WriteConflictError struct {
	Key string
}

func (e *WriteConflictError) Error() string {
	return fmt.Sprintf("engine: write conflict on key %q", e.Key)
}

// Is lets errors.Is(err, ErrWriteConflict) succeed regardless of which key
// is embedded.
func (e *WriteConflictError) Is(target error) bool {
	return target == errWriteConflict
}

// ErrWriteConflict is the sentinel to compare against with errors.Is; the
// concrete error returned by Commit is always a *WriteConflictError so the
// offending key can be recovered with errors.As.
var ErrWriteConflict = errWriteConflict
