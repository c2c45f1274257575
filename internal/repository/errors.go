// Package repository is the data access layer. Each repository wraps a
// *sql.DB and exposes typed operations over one table family. Sentinel
// errors defined here let handlers translate failures into HTTP codes
// without inspecting driver errors.
package repository

import (
	"errors"
	"strings"
)

// ErrForbidden is returned when the caller attempts an operation on a
// resource they do not own. Handlers translate it into HTTP 403.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when an update cannot be performed because of
// conflicting state. Handlers translate it into HTTP 409.
var ErrConflict = errors.New("conflict")

// ErrUsernameExists and ErrEmailExists surface the users table unique
// keys as client errors rather than storage failures.
var (
	ErrUsernameExists = errors.New("username already exists")
	ErrEmailExists    = errors.New("email already exists")
)

// ErrDuplicateBooking is returned when a trucker applies twice to the same
// job. The (job_id, trucker_id) unique key raises it even when two
// applications race past the existence check.
var ErrDuplicateBooking = errors.New("duplicate application")

// isDuplicateKey reports whether err is a MySQL 1062 duplicate-key error.
func isDuplicateKey(err error) bool {
	return err != nil && strings.Contains(err.Error(), "1062")
}
