package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/SebasVLANQ/calendar/internal/model"
	"github.com/SebasVLANQ/calendar/internal/utils"
)

// ProfileRepo persists user profiles and their credentials. The
// password hash lives on the same row as the profile; handlers never
// see it, only the model.UserProfile projection.
type ProfileRepo struct {
	db *sql.DB
}

// NewProfileRepo returns a new ProfileRepo bound to the given database.
func NewProfileRepo(db *sql.DB) *ProfileRepo { return &ProfileRepo{db: db} }

const profileColumns = `id, username, full_name, email, phone, age,
       country_of_residence, city_town_name, is_admin, role, created_at, updated_at`

func scanProfile(row interface{ Scan(...interface{}) error }) (model.UserProfile, error) {
	var p model.UserProfile
	err := row.Scan(
		&p.ID, &p.Username, &p.FullName, &p.Email, &p.Phone, &p.Age,
		&p.CountryOfResidence, &p.CityTownName, &p.IsAdmin, &p.Role,
		&p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

// Create inserts a profile together with its bcrypt password hash and
// returns the generated ID. Collisions on the unique username or email
// columns surface as ErrUsernameExists / ErrEmailExists so handlers can
// point at the offending field.
func (r *ProfileRepo) Create(ctx context.Context, p *model.UserProfile, password string, cost int) error {
	p.Email = strings.ToLower(strings.TrimSpace(p.Email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return err
	}
	const q = `INSERT INTO user_profiles
	           (username, full_name, email, phone, age, country_of_residence,
	            city_town_name, is_admin, role, password_hash)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q,
		p.Username, p.FullName, p.Email, p.Phone, p.Age,
		p.CountryOfResidence, p.CityTownName, p.IsAdmin, p.Role, hash)
	if err != nil {
		if isDuplicateKey(err, "username") {
			return ErrUsernameExists
		}
		if isDuplicateKey(err, "") {
			return ErrEmailExists
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)
	return nil
}

// GetByID fetches a profile by id.
func (r *ProfileRepo) GetByID(ctx context.Context, id uint64) (model.UserProfile, error) {
	const q = `SELECT ` + profileColumns + ` FROM user_profiles WHERE id = ?`
	return scanProfile(r.db.QueryRowContext(ctx, q, id))
}

// GetByEmail fetches a profile by normalized email.
func (r *ProfileRepo) GetByEmail(ctx context.Context, email string) (model.UserProfile, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	const q = `SELECT ` + profileColumns + ` FROM user_profiles WHERE email = ? LIMIT 1`
	return scanProfile(r.db.QueryRowContext(ctx, q, email))
}

// PasswordHash returns the stored bcrypt hash for a user.
func (r *ProfileRepo) PasswordHash(ctx context.Context, id uint64) (string, error) {
	var hash string
	err := r.db.QueryRowContext(ctx,
		`SELECT password_hash FROM user_profiles WHERE id = ?`, id).Scan(&hash)
	return hash, err
}

// UpdatePassword replaces the stored password hash.
func (r *ProfileRepo) UpdatePassword(ctx context.Context, id uint64, password string, cost int) error {
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		`UPDATE user_profiles SET password_hash = ?, updated_at = NOW() WHERE id = ?`,
		hash, id)
	return err
}

// Update writes the editable profile fields. Email and is_admin are
// deliberately absent: email mirrors the sign-up identity and stays
// read-only, and the admin flag is never set through this path.
func (r *ProfileRepo) Update(ctx context.Context, p model.UserProfile) error {
	const q = `UPDATE user_profiles
	           SET username = ?, full_name = ?, phone = ?, age = ?,
	               country_of_residence = ?, city_town_name = ?, updated_at = NOW()
	           WHERE id = ?`
	_, err := r.db.ExecContext(ctx, q,
		p.Username, p.FullName, p.Phone, p.Age,
		p.CountryOfResidence, p.CityTownName, p.ID)
	if err != nil && isDuplicateKey(err, "username") {
		return ErrUsernameExists
	}
	return err
}

// ListAll returns every profile, newest first. Used by the admin panel
// to show registered users.
func (r *ProfileRepo) ListAll(ctx context.Context) ([]model.UserProfile, error) {
	const q = `SELECT ` + profileColumns + ` FROM user_profiles ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	profiles := make([]model.UserProfile, 0)
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return profiles, nil
}
