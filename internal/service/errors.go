// Package service implements the booking workflow and the validation
// policies for event creation and profile management. Handlers call
// into this package and translate its sentinel errors into HTTP
// responses.
package service

import "errors"

// Booking errors, in the order the preconditions are checked. The
// workflow short-circuits at the first failure.
var (
	// ErrNotAuthenticated means no signed-in requester was supplied.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrAlreadyRegistered means a registration for this (user, event)
	// pair already exists, whether detected client-side or via the
	// storage uniqueness constraint at insert time.
	ErrAlreadyRegistered = errors.New("already registered")

	// ErrInvalidSeatCount means the requested seat count is outside 1..4.
	ErrInvalidSeatCount = errors.New("invalid seat count")

	// ErrInsufficientSeats means the event does not have enough seats
	// left for the request.
	ErrInsufficientSeats = errors.New("insufficient seats")
)
