// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios without
// inspecting driver-specific error strings themselves.
package repository

import "errors"

// ErrForbidden is returned when the caller attempts an operation
// on a resource they do not own. Handlers should translate this
// into an HTTP 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrEventNotFound is returned when an event lookup matches no row.
var ErrEventNotFound = errors.New("event not found")

// ErrDuplicateRegistration is returned when inserting a registration
// violates the unique (user_id, event_id) key. The booking workflow
// translates it into its AlreadyRegistered error rather than a generic
// storage failure.
var ErrDuplicateRegistration = errors.New("duplicate registration")

// ErrUsernameExists is returned when a profile insert collides on the
// unique username column.
var ErrUsernameExists = errors.New("username already exists")

// ErrEmailExists is returned when a profile insert collides on the
// unique email column.
var ErrEmailExists = errors.New("email already exists")
