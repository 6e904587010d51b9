// Package queue defines message payloads exchanged over the message broker.
package queue

// RegistrationQueueName is the durable queue carrying confirmation
// emails from the booking workflow to the delivery consumer.
const RegistrationQueueName = "registration.confirmed"

// EventSummary is the subset of an event included in a confirmation
// email.
type EventSummary struct {
	ID             uint64 `json:"id"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	StartTime      string `json:"start_time"`
	EndTime        string `json:"end_time"`
	Duration       int    `json:"duration"`
	Difficulty     string `json:"difficulty"`
	SeatsAvailable int    `json:"seats_available"`
}

// RecipientSummary identifies who receives the confirmation email.
type RecipientSummary struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
}

// RegistrationConfirmedEvent is published after a booking commits. It
// contains everything the email consumer needs without querying the
// primary database. A publish or delivery failure never rolls back the
// booking; it only delays the email.
type RegistrationConfirmedEvent struct {
	Event          EventSummary     `json:"event"`
	User           RecipientSummary `json:"user"`
	SeatsRequested int              `json:"seats_requested"`
	ConfirmedAt    string           `json:"confirmed_at"`
}
