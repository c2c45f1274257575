package model

import "time"

// UserType enumerates the three account roles. Truckers apply to jobs,
// brokers post them, admins run the approval workflow.
type UserType string

const (
	UserTypeTrucker UserType = "trucker"
	UserTypeBroker  UserType = "broker"
	UserTypeAdmin   UserType = "admin"
)

// ValidRegistrationType reports whether a self-registered account may use
// the given role. Admin accounts are provisioned out of band and can never
// be created through the public registration endpoint.
func ValidRegistrationType(t UserType) bool {
	return t == UserTypeTrucker || t == UserTypeBroker
}

// User mirrors the `users` table. The credential column stores the scrypt
// hash and salt together as a single "hash.salt" string.
type User struct {
	ID                uint64
	Username          string
	Credential        string
	Email             string
	FirstName         string
	LastName          string
	Phone             string
	UserType          UserType
	Status            Status
	VerificationToken *string
	TokenExpiry       *time.Time
	VerificationNotes *string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// TokenExpired reports whether the verification token can no longer be
// consumed at the given instant. A missing expiry counts as expired: a
// token without a deadline was never validly issued.
func (u User) TokenExpired(now time.Time) bool {
	return u.TokenExpiry == nil || now.After(*u.TokenExpiry)
}

// FullName is the display name used in conversation summaries and emails.
func (u User) FullName() string {
	if u.FirstName == "" {
		return u.Username
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
