package entities

import "errors"

// Recoverable condition sentinels. Callers match them with errors.Is.
var (
	// ErrInvalidInput reports a negative or otherwise unusable quantity
	// supplied to the requirements engine.
	ErrInvalidInput = errors.New("invalid input")

	// ErrPlanClosed reports a mutation attempted on a CLOSED plan.
	ErrPlanClosed = errors.New("plan is closed")

	// ErrIndexOutOfRange reports an item operation referencing a
	// non-existent list position.
	ErrIndexOutOfRange = errors.New("item index out of range")

	// ErrInvalidQuantity reports a non-positive quantity on add or edit.
	ErrInvalidQuantity = errors.New("invalid quantity")
)
