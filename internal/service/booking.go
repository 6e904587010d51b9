package service

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"time"

	"github.com/SebasVLANQ/calendar/internal/model"
	"github.com/SebasVLANQ/calendar/internal/queue"
	"github.com/SebasVLANQ/calendar/internal/repository"
)

// BookingResult is returned on a successful booking. Event is the row
// as reloaded from storage after the transaction committed, never a
// client-computed projection. EmailQueued is false when the
// confirmation message could not be handed to the broker; the booking
// itself stands regardless.
type BookingResult struct {
	Registration model.EventRegistration
	Event        model.Event
	EmailQueued  bool
}

// Booker executes seat reservations. Handlers depend on this interface
// so tests can substitute a mock.
type Booker interface {
	Book(ctx context.Context, eventID, userID uint64, seats int) (*BookingResult, error)
}

// BookingService runs the seat reservation workflow against MySQL and
// publishes confirmation emails to the broker.
type BookingService struct {
	Events   *repository.EventRepo
	Regs     *repository.RegistrationRepo
	Profiles *repository.ProfileRepo

	// publish is swappable for tests; defaults to the RabbitMQ publisher.
	publish func(ctx context.Context, ev queue.RegistrationConfirmedEvent) error
}

// NewBookingService constructs a BookingService. All repositories must
// be non-nil.
func NewBookingService(events *repository.EventRepo, regs *repository.RegistrationRepo, profiles *repository.ProfileRepo) *BookingService {
	if events == nil || regs == nil || profiles == nil {
		panic("nil repository passed to NewBookingService")
	}
	return &BookingService{
		Events:   events,
		Regs:     regs,
		Profiles: profiles,
		publish:  PublishRegistrationConfirmed,
	}
}

// ValidateBooking applies the booking preconditions in order,
// short-circuiting at the first failure: the requester must be signed
// in, must not already hold a registration for the event, must request
// 1..4 seats, and the event must have that many seats left. This is
// the client-side gate; the storage constraint and the conditional
// seat decrement close the remaining race windows.
func ValidateBooking(requester *model.UserProfile, ev model.Event, regs []model.EventRegistration, seats int) error {
	if requester == nil {
		return ErrNotAuthenticated
	}
	for _, reg := range regs {
		if reg.EventID == ev.ID && reg.UserID == requester.ID {
			return ErrAlreadyRegistered
		}
	}
	if seats < MinSeatsPerBooking || seats > MaxSeatsPerBooking {
		return ErrInvalidSeatCount
	}
	if seats > ev.SeatsAvailable {
		return ErrInsufficientSeats
	}
	return nil
}

// Book reserves seats on an event for a user. On success the new
// registration row exists, the event's seats_available has decreased by
// exactly seats, and status is fully-booked iff the count reached 0.
//
// The registration insert and the seat decrement run inside one
// transaction with a conditional update, so concurrent bookings cannot
// oversell: the insert maps a duplicate-key violation to
// ErrAlreadyRegistered and the guarded decrement fails with
// ErrInsufficientSeats when another booking took the seats first.
func (s *BookingService) Book(ctx context.Context, eventID, userID uint64, seats int) (*BookingResult, error) {
	var requester *model.UserProfile
	if userID != 0 {
		p, err := s.Profiles.GetByID(ctx, userID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, ErrNotAuthenticated
			}
			return nil, err
		}
		requester = &p
	}

	ev, err := s.Events.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	var existing []model.EventRegistration
	if requester != nil {
		existing, err = s.Regs.ListByUser(ctx, requester.ID)
		if err != nil {
			return nil, err
		}
	}

	if err := ValidateBooking(requester, ev, existing, seats); err != nil {
		return nil, err
	}

	tx, err := s.Events.DB().BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	reg := model.EventRegistration{
		UserID:         requester.ID,
		EventID:        ev.ID,
		SeatsRequested: seats,
	}
	if err := s.Regs.CreateTx(ctx, tx, &reg); err != nil {
		if errors.Is(err, repository.ErrDuplicateRegistration) {
			return nil, ErrAlreadyRegistered
		}
		return nil, err
	}

	ok, err := s.Events.DecrementSeatsTx(ctx, tx, ev.ID, seats)
	if err != nil {
		return nil, err
	}
	if !ok {
		// Seats were taken between the precondition check and the
		// update; the whole attempt rolls back.
		return nil, ErrInsufficientSeats
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true

	// Reload the authoritative row; the client never trusts a locally
	// computed seat count past the optimistic confirmation message.
	updated, err := s.Events.GetByID(ctx, ev.ID)
	if err != nil {
		return nil, err
	}

	result := &BookingResult{Registration: reg, Event: updated, EmailQueued: true}
	msg := queue.RegistrationConfirmedEvent{
		Event: queue.EventSummary{
			ID:             updated.ID,
			Title:          updated.Title,
			Description:    updated.Description,
			StartTime:      updated.StartTime.UTC().Format(time.RFC3339),
			EndTime:        updated.EndTime.UTC().Format(time.RFC3339),
			Duration:       updated.Duration,
			Difficulty:     updated.Difficulty,
			SeatsAvailable: updated.SeatsAvailable,
		},
		User: queue.RecipientSummary{
			Email:    requester.Email,
			FullName: requester.FullName,
		},
		SeatsRequested: seats,
		ConfirmedAt:    time.Now().UTC().Format(time.RFC3339),
	}
	if err := s.publish(ctx, msg); err != nil {
		// The booking is committed; the email is best-effort.
		log.Printf("booking: confirmation publish failed for registration %d: %v", reg.ID, err)
		result.EmailQueued = false
	}
	return result, nil
}
