package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/SebasVLANQ/calendar/internal/model"
)

// RegistrationRepo provides operations on event registrations.
// Registrations are insert-only: a row is created by the booking
// workflow and disappears only when storage cascades an event delete.
type RegistrationRepo struct {
	db *sql.DB
}

// NewRegistrationRepo returns a new RegistrationRepo bound to the given
// database.
func NewRegistrationRepo(db *sql.DB) *RegistrationRepo { return &RegistrationRepo{db: db} }

// CreateTx inserts a registration within the scope of an existing
// transaction and populates the generated ID and timestamp on the
// record. A violation of the unique (user_id, event_id) key is mapped
// to ErrDuplicateRegistration so the booking workflow can report
// "already registered" instead of a generic failure; this covers the
// race where two attempts pass the client-side duplicate check.
func (r *RegistrationRepo) CreateTx(ctx context.Context, tx *sql.Tx, reg *model.EventRegistration) error {
	const q = `INSERT INTO event_registrations (user_id, event_id, seats_requested) VALUES (?, ?, ?)`
	res, err := tx.ExecContext(ctx, q, reg.UserID, reg.EventID, reg.SeatsRequested)
	if err != nil {
		if isDuplicateKey(err, "") {
			return ErrDuplicateRegistration
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	reg.ID = uint64(id)
	// Query back the row so the caller sees the storage-assigned timestamp.
	const sel = `SELECT registration_date FROM event_registrations WHERE id = ?`
	if err := tx.QueryRowContext(ctx, sel, reg.ID).Scan(&reg.RegistrationDate); err != nil {
		return err
	}
	return nil
}

// ListByUser returns every registration belonging to a user, ordered by
// registration date descending. The caller reloads this collection
// after each booking instead of patching it in memory.
func (r *RegistrationRepo) ListByUser(ctx context.Context, userID uint64) ([]model.EventRegistration, error) {
	const q = `SELECT id, user_id, event_id, seats_requested, registration_date
	           FROM event_registrations
	           WHERE user_id = ?
	           ORDER BY registration_date DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	regs := make([]model.EventRegistration, 0)
	for rows.Next() {
		var reg model.EventRegistration
		if err := rows.Scan(&reg.ID, &reg.UserID, &reg.EventID, &reg.SeatsRequested, &reg.RegistrationDate); err != nil {
			return nil, err
		}
		regs = append(regs, reg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return regs, nil
}

// RegistrationDetail is a registration joined with its event summary
// for display. EventTitle falls back to "Unknown Event" when the event
// row no longer exists, so an orphaned registration never breaks a
// listing.
type RegistrationDetail struct {
	ID               uint64     `json:"id"`
	EventID          uint64     `json:"event_id"`
	EventTitle       string     `json:"event_title"`
	EventStart       *time.Time `json:"event_start,omitempty"`
	EventEnd         *time.Time `json:"event_end,omitempty"`
	SeatsRequested   int        `json:"seats_requested"`
	RegistrationDate time.Time  `json:"registration_date"`
}

// ListDetailsByUser returns a user's registrations with event details
// attached, newest first.
func (r *RegistrationRepo) ListDetailsByUser(ctx context.Context, userID uint64) ([]RegistrationDetail, error) {
	const q = `SELECT reg.id, reg.event_id, COALESCE(e.title, 'Unknown Event'),
	                  e.start_time, e.end_time, reg.seats_requested, reg.registration_date
	           FROM event_registrations reg
	           LEFT JOIN events e ON e.id = reg.event_id
	           WHERE reg.user_id = ?
	           ORDER BY reg.registration_date DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	details := make([]RegistrationDetail, 0)
	for rows.Next() {
		var d RegistrationDetail
		var start, end sql.NullTime
		if err := rows.Scan(&d.ID, &d.EventID, &d.EventTitle, &start, &end,
			&d.SeatsRequested, &d.RegistrationDate); err != nil {
			return nil, err
		}
		if start.Valid {
			t := start.Time
			d.EventStart = &t
		}
		if end.Valid {
			t := end.Time
			d.EventEnd = &t
		}
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return details, nil
}

// AttendeeDetail is a registration joined with the registrant's
// profile, used by the admin registrations view.
type AttendeeDetail struct {
	ID               uint64    `json:"id"`
	UserID           uint64    `json:"user_id"`
	Username         string    `json:"username"`
	FullName         string    `json:"full_name"`
	Email            string    `json:"email"`
	SeatsRequested   int       `json:"seats_requested"`
	RegistrationDate time.Time `json:"registration_date"`
}

// ListByEvent returns every registration for an event with registrant
// details, oldest first.
func (r *RegistrationRepo) ListByEvent(ctx context.Context, eventID uint64) ([]AttendeeDetail, error) {
	const q = `SELECT reg.id, reg.user_id, p.username, p.full_name, p.email,
	                  reg.seats_requested, reg.registration_date
	           FROM event_registrations reg
	           JOIN user_profiles p ON p.id = reg.user_id
	           WHERE reg.event_id = ?
	           ORDER BY reg.registration_date ASC`
	rows, err := r.db.QueryContext(ctx, q, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	attendees := make([]AttendeeDetail, 0)
	for rows.Next() {
		var a AttendeeDetail
		if err := rows.Scan(&a.ID, &a.UserID, &a.Username, &a.FullName, &a.Email,
			&a.SeatsRequested, &a.RegistrationDate); err != nil {
			return nil, err
		}
		attendees = append(attendees, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return attendees, nil
}
