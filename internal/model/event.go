package model

import "time"

// Difficulty levels an event can be labelled with.
const (
	DifficultyBeginner     = "Beginner"
	DifficultyIntermediate = "Intermediate"
	DifficultyAdvanced     = "Advanced"
)

// Event status values.  StatusFullyBooked is derived by the booking
// workflow when the last seat is taken; administrators may force any
// status directly.
const (
	StatusAvailable   = "available"
	StatusFullyBooked = "fully-booked"
	StatusCancelled   = "cancelled"
)

// Event represents a scheduled bookable activity with a seat capacity
// and a time range.  Duration is always derived from EndTime-StartTime
// at creation and stored in minutes.  OwnerID references the provider
// profile that created the event and is nil for admin-created events.
//
// Fields:
//  ID             - primary key identifier.
//  Title          - event title.
//  Description    - free-form description.
//  StartTime      - when the event begins (UTC).
//  EndTime        - when the event ends (UTC, after StartTime).
//  Duration       - derived length in minutes.
//  Difficulty     - Beginner, Intermediate or Advanced.
//  SeatsAvailable - remaining bookable seats (>= 0).
//  TotalSeats     - full capacity (>= 1).
//  Status         - available, fully-booked or cancelled.
//  OwnerID        - owning provider, nil when created by an admin.
//  CreatedAt      - creation timestamp.
//  UpdatedAt      - last update timestamp.
type Event struct {
	ID             uint64    `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	StartTime      time.Time `json:"start_time"`
	EndTime        time.Time `json:"end_time"`
	Duration       int       `json:"duration"`
	Difficulty     string    `json:"difficulty"`
	SeatsAvailable int       `json:"seats_available"`
	TotalSeats     int       `json:"total_seats"`
	Status         string    `json:"status"`
	OwnerID        *uint64   `json:"event_owner_id,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ValidStatus reports whether s is one of the three recognised event states.
func ValidStatus(s string) bool {
	return s == StatusAvailable || s == StatusFullyBooked || s == StatusCancelled
}

// ValidDifficulty reports whether d is a recognised difficulty label.
func ValidDifficulty(d string) bool {
	return d == DifficultyBeginner || d == DifficultyIntermediate || d == DifficultyAdvanced
}
