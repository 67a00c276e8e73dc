package interfaces

import "errors"

// Sentinel errors repositories return so services can map storage
// outcomes onto API error codes without string matching.
var (
	ErrNotFound          = errors.New("not found")
	ErrDuplicate         = errors.New("already exists")
	ErrInsufficientSeats = errors.New("insufficient seats")
	ErrInsufficientUnits = errors.New("insufficient units")
)
