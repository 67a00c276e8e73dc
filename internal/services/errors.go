package services

import "errors"

// Service-level sentinel errors. Handlers translate these into the
// HTTP error taxonomy; repository sentinels (not found, duplicate,
// insufficient inventory) pass through untouched.
var (
	ErrAdminRequired     = errors.New("only admins may grant the admin role")
	ErrForbidden         = errors.New("actor does not own this resource")
	ErrInvalidTransition = errors.New("booking state transition not allowed")
	ErrProposalClosed    = errors.New("proposal is no longer open")
	ErrNotBookable       = errors.New("ride can no longer be booked")
	ErrPaymentFailed     = errors.New("payment capture failed")
)
