package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefreshUsable(t *testing.T) {
	now := time.Date(2026, time.June, 1, 12, 0, 0, 0, time.UTC)
	live := now.Add(time.Hour)
	past := now.Add(-time.Hour)
	revoked := sql.NullTime{Time: now, Valid: true}
	notRevoked := sql.NullTime{}

	assert.True(t, refreshUsable(live, notRevoked, now))
	assert.False(t, refreshUsable(past, notRevoked, now))
	assert.False(t, refreshUsable(live, revoked, now))
	// Exactly at expiry the token is still usable.
	assert.True(t, refreshUsable(now, notRevoked, now))
}

func tokenRows(userID uint64, expiresAt time.Time, revokedAt interface{}) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"user_id", "expires_at", "revoked_at"}).
		AddRow(userID, expiresAt, revokedAt)
}

func TestValidateRefreshLiveToken(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("FROM refresh_tokens").
		WithArgs("hash").
		WillReturnRows(tokenRows(42, time.Now().UTC().Add(time.Hour), nil))

	userID, err := NewTokenRepo(db).ValidateRefresh(context.Background(), "hash")
	require.NoError(t, err)
	assert.Equal(t, uint64(42), userID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestValidateRefreshRejectsRevokedAndExpired(t *testing.T) {
	cases := []struct {
		name      string
		expiresAt time.Time
		revokedAt interface{}
	}{
		{"revoked", time.Now().UTC().Add(time.Hour), time.Now().UTC()},
		{"expired", time.Now().UTC().Add(-time.Hour), nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			mock.ExpectQuery("FROM refresh_tokens").
				WithArgs("hash").
				WillReturnRows(tokenRows(42, tc.expiresAt, tc.revokedAt))

			_, err = NewTokenRepo(db).ValidateRefresh(context.Background(), "hash")
			assert.ErrorIs(t, err, sql.ErrNoRows)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestValidateRefreshUnknownHash(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("FROM refresh_tokens").
		WithArgs("nope").
		WillReturnError(sql.ErrNoRows)

	_, err = NewTokenRepo(db).ValidateRefresh(context.Background(), "nope")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}
