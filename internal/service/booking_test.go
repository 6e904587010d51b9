package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/SebasVLANQ/calendar/internal/model"
)

func bookableEvent() model.Event {
	return model.Event{
		ID:             10,
		Title:          "Trail Run",
		StartTime:      time.Date(2026, time.June, 20, 9, 0, 0, 0, time.UTC),
		EndTime:        time.Date(2026, time.June, 20, 11, 0, 0, 0, time.UTC),
		SeatsAvailable: 5,
		TotalSeats:     10,
		Status:         model.StatusAvailable,
	}
}

func requester() *model.UserProfile {
	return &model.UserProfile{ID: 42, Email: "alice@example.com", FullName: "Alice Smith"}
}

func TestValidateBookingAccepts(t *testing.T) {
	assert.NoError(t, ValidateBooking(requester(), bookableEvent(), nil, 2))
}

func TestValidateBookingRequiresAuth(t *testing.T) {
	err := ValidateBooking(nil, bookableEvent(), nil, 2)
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestValidateBookingRejectsDuplicate(t *testing.T) {
	regs := []model.EventRegistration{{ID: 1, UserID: 42, EventID: 10, SeatsRequested: 1}}
	err := ValidateBooking(requester(), bookableEvent(), regs, 2)
	assert.ErrorIs(t, err, ErrAlreadyRegistered)
}

func TestValidateBookingIgnoresOtherRegistrations(t *testing.T) {
	regs := []model.EventRegistration{
		{ID: 1, UserID: 42, EventID: 99, SeatsRequested: 1}, // same user, other event
		{ID: 2, UserID: 7, EventID: 10, SeatsRequested: 1},  // other user, same event
	}
	assert.NoError(t, ValidateBooking(requester(), bookableEvent(), regs, 2))
}

func TestValidateBookingSeatCountBounds(t *testing.T) {
	for _, seats := range []int{0, -1, 5, 100} {
		err := ValidateBooking(requester(), bookableEvent(), nil, seats)
		assert.ErrorIs(t, err, ErrInvalidSeatCount, "seats=%d", seats)
	}
	for _, seats := range []int{1, 4} {
		assert.NoError(t, ValidateBooking(requester(), bookableEvent(), nil, seats), "seats=%d", seats)
	}
}

func TestValidateBookingInsufficientSeats(t *testing.T) {
	ev := bookableEvent()
	ev.SeatsAvailable = 2
	err := ValidateBooking(requester(), ev, nil, 3)
	assert.ErrorIs(t, err, ErrInsufficientSeats)

	// Taking exactly the remaining seats is allowed.
	assert.NoError(t, ValidateBooking(requester(), ev, nil, 2))
}

func TestValidateBookingPreconditionOrder(t *testing.T) {
	// Every precondition fails at once; the checks short-circuit in a
	// fixed order, so the reported error follows that order.
	ev := bookableEvent()
	ev.SeatsAvailable = 0
	regs := []model.EventRegistration{{ID: 1, UserID: 42, EventID: 10, SeatsRequested: 1}}

	assert.ErrorIs(t, ValidateBooking(nil, ev, regs, 99), ErrNotAuthenticated)
	assert.ErrorIs(t, ValidateBooking(requester(), ev, regs, 99), ErrAlreadyRegistered)
	assert.ErrorIs(t, ValidateBooking(requester(), ev, nil, 99), ErrInvalidSeatCount)
	assert.ErrorIs(t, ValidateBooking(requester(), ev, nil, 4), ErrInsufficientSeats)
}
