package domain

import "errors"

// Error classes for the rental core. Callers classify failures with errors.Is
// to decide how to report them and whether a retry makes sense.
var (
	// ErrValidation covers malformed input and invalid date ranges. Never retried.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound covers lookups of entities that do not exist.
	ErrNotFound = errors.New("not found")
	// ErrStateConflict covers illegal lifecycle transitions. The caller must
	// re-fetch current state before retrying the operation.
	ErrStateConflict = errors.New("state conflict")
	// ErrBalanceViolation covers payment amounts that are non-positive or
	// would push a rental's paid amount outside [0, total].
	ErrBalanceViolation = errors.New("balance violation")
	// ErrConcurrencyConflict marks a transaction write conflict. The whole
	// use case may be retried from scratch.
	ErrConcurrencyConflict = errors.New("concurrency conflict")
)
