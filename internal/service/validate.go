package service

import (
	"regexp"
	"strings"
	"time"

	"github.com/SebasVLANQ/calendar/internal/model"
)

// Validation limits for event creation and booking.
const (
	MinDurationMinutes = 15
	MinTotalSeats      = 1
	MaxTotalSeats      = 1000
	MinSeatsPerBooking = 1
	MaxSeatsPerBooking = 4
	MinAge             = 13
	MaxAge             = 120
	MinUsernameLen     = 3
	MinPasswordLen     = 6
)

var (
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRe = regexp.MustCompile(`^\+?[\d\s\-()]{10,}$`)
)

// EventForm carries the fields submitted when creating an event.
// Duration is never part of the form; it is always derived from the
// time range.
type EventForm struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Difficulty  string    `json:"difficulty"`
	TotalSeats  int       `json:"total_seats"`
}

// EventFormErrors enumerates every field the create-event form can
// fail on. An empty string means the field passed. Enumerating fields
// in a struct instead of an open-ended map keeps the possible error
// surface visible to the compiler and to API clients.
type EventFormErrors struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	StartTime   string `json:"start_time,omitempty"`
	EndTime     string `json:"end_time,omitempty"`
	Difficulty  string `json:"difficulty,omitempty"`
	TotalSeats  string `json:"total_seats,omitempty"`
}

// OK reports whether no field failed validation.
func (e EventFormErrors) OK() bool { return e == EventFormErrors{} }

// DurationMinutes derives the event duration from its time range.
func DurationMinutes(start, end time.Time) int {
	return int(end.Sub(start) / time.Minute)
}

// ValidateEventForm applies the creation policy: non-empty title and
// description, start strictly in the future relative to now, end
// strictly after start, derived duration of at least 15 minutes and a
// seat capacity of 1..1000. The admin edit path deliberately skips
// this policy; creation and edit are two distinct policies, not one
// policy with an admin escape hatch.
func ValidateEventForm(f EventForm, now time.Time) EventFormErrors {
	var errs EventFormErrors
	if strings.TrimSpace(f.Title) == "" {
		errs.Title = "Event title is required"
	}
	if strings.TrimSpace(f.Description) == "" {
		errs.Description = "Event description is required"
	}
	if f.StartTime.IsZero() {
		errs.StartTime = "Start time is required"
	}
	if f.EndTime.IsZero() {
		errs.EndTime = "End time is required"
	}
	if !f.StartTime.IsZero() && !f.EndTime.IsZero() {
		if !f.StartTime.After(now) {
			errs.StartTime = "Start time must be in the future"
		}
		if !f.EndTime.After(f.StartTime) {
			errs.EndTime = "End time must be after start time"
		} else if DurationMinutes(f.StartTime, f.EndTime) < MinDurationMinutes {
			errs.EndTime = "Event must be at least 15 minutes long"
		}
	}
	if !model.ValidDifficulty(f.Difficulty) {
		errs.Difficulty = "Difficulty must be Beginner, Intermediate or Advanced"
	}
	if f.TotalSeats < MinTotalSeats || f.TotalSeats > MaxTotalSeats {
		errs.TotalSeats = "Total seats must be between 1 and 1000"
	}
	return errs
}

// ProfileForm carries the fields submitted at sign-up or when editing
// a profile. Password fields are only examined at sign-up.
type ProfileForm struct {
	Username           string `json:"username"`
	FullName           string `json:"full_name"`
	Email              string `json:"email"`
	Phone              string `json:"phone"`
	Age                int    `json:"age"`
	CountryOfResidence string `json:"country_of_residence"`
	CityTownName       string `json:"city_town_name"`
	Password           string `json:"password,omitempty"`
	ConfirmPassword    string `json:"confirm_password,omitempty"`
}

// ProfileFormErrors enumerates every field the profile form can fail on.
type ProfileFormErrors struct {
	Username        string `json:"username,omitempty"`
	FullName        string `json:"full_name,omitempty"`
	Email           string `json:"email,omitempty"`
	Phone           string `json:"phone,omitempty"`
	Age             string `json:"age,omitempty"`
	Password        string `json:"password,omitempty"`
	ConfirmPassword string `json:"confirm_password,omitempty"`
}

// OK reports whether no field failed validation.
func (e ProfileFormErrors) OK() bool { return e == ProfileFormErrors{} }

// ValidateProfileForm checks the shared profile fields. When signUp is
// true the email and password fields are validated as well; profile
// edits never touch them (email is read-only after creation and the
// password has its own flow).
func ValidateProfileForm(f ProfileForm, signUp bool) ProfileFormErrors {
	var errs ProfileFormErrors
	if strings.TrimSpace(f.Username) == "" {
		errs.Username = "Username is required"
	} else if len(f.Username) < MinUsernameLen {
		errs.Username = "Username must be at least 3 characters"
	}
	if strings.TrimSpace(f.FullName) == "" {
		errs.FullName = "Full name is required"
	}
	if strings.TrimSpace(f.Phone) == "" {
		errs.Phone = "Phone number is required"
	} else if !phoneRe.MatchString(f.Phone) {
		errs.Phone = "Please enter a valid phone number"
	}
	if f.Age < MinAge || f.Age > MaxAge {
		errs.Age = "Age must be between 13 and 120"
	}
	if signUp {
		if strings.TrimSpace(f.Email) == "" {
			errs.Email = "Email is required"
		} else if !emailRe.MatchString(f.Email) {
			errs.Email = "Please enter a valid email address"
		}
		if f.Password == "" {
			errs.Password = "Password is required"
		} else if len(f.Password) < MinPasswordLen {
			errs.Password = "Password must be at least 6 characters"
		}
		if f.Password != f.ConfirmPassword {
			errs.ConfirmPassword = "Passwords do not match"
		}
	}
	return errs
}
