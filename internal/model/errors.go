package model

import "errors"

// Operator-recoverable failures shared across packages. Callers wrap
// these with context and check them with errors.Is.
var (
	// ErrInputMalformed means a statement file has no recognizable
	// date, amount, and description columns. The import aborts before
	// any row is processed.
	ErrInputMalformed = errors.New("statement columns not recognized")

	// ErrSelectionInvalid means a reconciliation was requested with an
	// empty movement or invoice set.
	ErrSelectionInvalid = errors.New("selection needs at least one movement and one invoice")

	// ErrStateConflict means a record cannot be deleted because it is a
	// member of an active reconciliation group.
	ErrStateConflict = errors.New("record is reconciled; delete the group first")
)
