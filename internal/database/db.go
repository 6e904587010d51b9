// Package database opens the MySQL handle shared by every repository.
// Events, profiles, registrations and refresh tokens live in one
// schema, so a single pooled connection serves the whole API.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"github.com/SebasVLANQ/calendar/internal/config"
)

// Pool sizing for this workload: calendar and listing reads dominate,
// booking transactions are short-lived.
const (
	maxOpenConns    = 25
	maxIdleConns    = 25
	connMaxLifetime = 30 * time.Minute
)

// Open connects to the MySQL instance described by cfg, applies the
// pool settings and verifies the connection with a ping before
// returning the handle.
func Open(cfg config.Config) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn(cfg))
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)
	db.SetConnMaxLifetime(connMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}
	return db, nil
}

// dsn builds the driver connection string. parseTime maps DATETIME
// columns onto time.Time, and loc=UTC keeps every scanned timestamp in
// UTC, the zone the calendar bucketer and the booking workflow assume.
func dsn(cfg config.Config) string {
	auth := cfg.DBUser
	if cfg.DBPass != "" {
		auth = cfg.DBUser + ":" + cfg.DBPass
	}
	return fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
		auth, cfg.DBHost, cfg.DBPort, cfg.DBName)
}
