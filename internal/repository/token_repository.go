package repository

import (
	"context"
	"database/sql"
	"time"
)

// TokenRepo persists refresh token hashes. Only the SHA-256 hash of a
// token ever reaches this table; the raw value stays with the client,
// so a leaked row cannot be replayed.
type TokenRepo struct {
	db *sql.DB
}

// NewTokenRepo returns a new TokenRepo bound to the given database.
func NewTokenRepo(db *sql.DB) *TokenRepo { return &TokenRepo{db: db} }

// StoreRefresh records a refresh token hash together with its expiry.
func (r *TokenRepo) StoreRefresh(ctx context.Context, userID uint64, tokenHash string, exp time.Time) error {
	const q = `INSERT INTO refresh_tokens (user_id, token_hash, expires_at) VALUES (?, ?, ?)`
	_, err := r.db.ExecContext(ctx, q, userID, tokenHash, exp)
	return err
}

// ValidateRefresh resolves a token hash to its user. Revoked and
// expired tokens report sql.ErrNoRows, indistinguishable from a hash
// that was never stored.
func (r *TokenRepo) ValidateRefresh(ctx context.Context, tokenHash string) (uint64, error) {
	const q = `SELECT user_id, expires_at, revoked_at
	           FROM refresh_tokens
	           WHERE token_hash = ? LIMIT 1`
	var (
		userID    uint64
		expiresAt time.Time
		revokedAt sql.NullTime
	)
	if err := r.db.QueryRowContext(ctx, q, tokenHash).Scan(&userID, &expiresAt, &revokedAt); err != nil {
		return 0, err
	}
	if !refreshUsable(expiresAt, revokedAt, time.Now().UTC()) {
		return 0, sql.ErrNoRows
	}
	return userID, nil
}

// refreshUsable reports whether a stored refresh token may still be
// presented: not revoked and not past its expiry.
func refreshUsable(expiresAt time.Time, revokedAt sql.NullTime, now time.Time) bool {
	return !revokedAt.Valid && !now.After(expiresAt)
}

// RevokeByHash revokes one token. Revoking an unknown or already
// revoked hash is a no-op.
func (r *TokenRepo) RevokeByHash(ctx context.Context, tokenHash string) error {
	const q = `UPDATE refresh_tokens SET revoked_at = NOW()
	           WHERE token_hash = ? AND revoked_at IS NULL`
	_, err := r.db.ExecContext(ctx, q, tokenHash)
	return err
}

// RevokeAllForUser revokes every active token a user holds. Password
// changes call this so stolen sessions die with the old password.
func (r *TokenRepo) RevokeAllForUser(ctx context.Context, userID uint64) error {
	const q = `UPDATE refresh_tokens SET revoked_at = NOW()
	           WHERE user_id = ? AND revoked_at IS NULL`
	_, err := r.db.ExecContext(ctx, q, userID)
	return err
}
