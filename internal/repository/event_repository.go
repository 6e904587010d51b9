package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/SebasVLANQ/calendar/internal/model"
)

// EventRepo provides CRUD operations for events. All timestamp fields
// are stored in UTC; the listing order (start time ascending) is the
// order the calendar bucketer and the UI rely on.
type EventRepo struct {
	db *sql.DB
}

// NewEventRepo returns a new EventRepo bound to the given database.
func NewEventRepo(db *sql.DB) *EventRepo { return &EventRepo{db: db} }

// DB exposes the underlying handle so handlers can open transactions
// spanning multiple repositories.
func (r *EventRepo) DB() *sql.DB { return r.db }

const eventColumns = `id, title, description, start_time, end_time, duration, difficulty,
       seats_available, total_seats, status, event_owner_id, created_at, updated_at`

func scanEvent(row interface{ Scan(...interface{}) error }) (model.Event, error) {
	var ev model.Event
	var ownerID sql.NullInt64
	err := row.Scan(
		&ev.ID, &ev.Title, &ev.Description, &ev.StartTime, &ev.EndTime, &ev.Duration,
		&ev.Difficulty, &ev.SeatsAvailable, &ev.TotalSeats, &ev.Status, &ownerID,
		&ev.CreatedAt, &ev.UpdatedAt,
	)
	if err != nil {
		return model.Event{}, err
	}
	if ownerID.Valid {
		oid := uint64(ownerID.Int64)
		ev.OwnerID = &oid
	}
	return ev, nil
}

// ListAll returns every event ordered by start time ascending. This is
// the authoritative collection the UI reloads after each mutation.
func (r *EventRepo) ListAll(ctx context.Context) ([]model.Event, error) {
	const q = `SELECT ` + eventColumns + ` FROM events ORDER BY start_time ASC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	events := make([]model.Event, 0)
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

// GetByID returns a single event or ErrEventNotFound.
func (r *EventRepo) GetByID(ctx context.Context, id uint64) (model.Event, error) {
	const q = `SELECT ` + eventColumns + ` FROM events WHERE id = ?`
	ev, err := scanEvent(r.db.QueryRowContext(ctx, q, id))
	if err == sql.ErrNoRows {
		return model.Event{}, ErrEventNotFound
	}
	return ev, err
}

// Create inserts a new event and populates the generated ID on the
// provided record. Callers are expected to have validated the form and
// derived Duration, SeatsAvailable and Status before calling.
func (r *EventRepo) Create(ctx context.Context, ev *model.Event) error {
	const q = `INSERT INTO events
	           (title, description, start_time, end_time, duration, difficulty,
	            seats_available, total_seats, status, event_owner_id)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	var owner interface{}
	if ev.OwnerID != nil {
		owner = *ev.OwnerID
	}
	res, err := r.db.ExecContext(ctx, q,
		ev.Title, ev.Description, ev.StartTime.UTC(), ev.EndTime.UTC(), ev.Duration,
		ev.Difficulty, ev.SeatsAvailable, ev.TotalSeats, ev.Status, owner)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	ev.ID = uint64(id)
	return nil
}

// Update writes every editable field as submitted. The admin edit path
// intentionally performs no validation here; it trusts the caller.
func (r *EventRepo) Update(ctx context.Context, ev model.Event) error {
	const q = `UPDATE events
	           SET title = ?, description = ?, start_time = ?, end_time = ?, duration = ?,
	               difficulty = ?, seats_available = ?, total_seats = ?, status = ?,
	               updated_at = NOW()
	           WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q,
		ev.Title, ev.Description, ev.StartTime.UTC(), ev.EndTime.UTC(), ev.Duration,
		ev.Difficulty, ev.SeatsAvailable, ev.TotalSeats, ev.Status, ev.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// RowsAffected is 0 both for a missing row and for a no-op
		// update; distinguish by checking existence.
		if _, err := r.GetByID(ctx, ev.ID); err != nil {
			return err
		}
	}
	return nil
}

// UpdateStatus sets the status field directly. No transition table
// restricts which states can follow which; any state reaches any other
// on admin command.
func (r *EventRepo) UpdateStatus(ctx context.Context, id uint64, status string) error {
	const q = `UPDATE events SET status = ?, updated_at = NOW() WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, status, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes an event after verifying ownership. Admins pass
// ownerID 0 to bypass the ownership check; providers may only delete
// their own events and receive ErrForbidden otherwise.
func (r *EventRepo) Delete(ctx context.Context, id, ownerID uint64) error {
	ev, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if ownerID != 0 && (ev.OwnerID == nil || *ev.OwnerID != ownerID) {
		return ErrForbidden
	}
	_, err = r.db.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id)
	return err
}

// DecrementSeatsTx atomically takes n seats from an event inside the
// given transaction. The WHERE guard rejects the update when fewer than
// n seats remain, so two concurrent bookings can never oversell: the
// losing transaction sees zero affected rows and must roll back.
// Status flips to fully-booked exactly when the decrement lands on 0;
// the status assignment precedes the seat assignment because MySQL
// evaluates SET clauses left to right against already-updated values.
func (r *EventRepo) DecrementSeatsTx(ctx context.Context, tx *sql.Tx, eventID uint64, n int) (bool, error) {
	const q = `UPDATE events
	           SET status = IF(seats_available - ? <= 0, 'fully-booked', status),
	               seats_available = seats_available - ?,
	               updated_at = NOW()
	           WHERE id = ? AND seats_available >= ?`
	res, err := tx.ExecContext(ctx, q, n, n, eventID, n)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// isDuplicateKey reports whether err is a MySQL 1062 unique constraint
// violation, optionally on the named key.
func isDuplicateKey(err error, key string) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	if !strings.Contains(msg, "1062") {
		return false
	}
	return key == "" || strings.Contains(msg, key)
}
