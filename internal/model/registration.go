package model

import "time"

// EventRegistration binds one user to one event with a requested seat
// count.  At most one registration may exist per (user, event) pair;
// the unique key on the event_registrations table enforces this.
// Registrations are inserted by the booking workflow and never updated.
//
// Fields:
//  ID               - primary key identifier.
//  UserID           - registering user.
//  EventID          - booked event.
//  SeatsRequested   - seats taken by this registration (1..4).
//  RegistrationDate - timestamp assigned at insert.
type EventRegistration struct {
	ID               uint64    `json:"id"`
	UserID           uint64    `json:"user_id"`
	EventID          uint64    `json:"event_id"`
	SeatsRequested   int       `json:"seats_requested"`
	RegistrationDate time.Time `json:"registration_date"`
}
