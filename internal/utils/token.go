package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// VerificationToken is the random token mailed to a user after registration
// (and again after admin approval). Only the raw value is embedded in the
// email link; the store keeps it verbatim since it is single-use and short
// lived.
type VerificationToken struct {
	Raw string
	Exp time.Time
}

// NewVerificationToken returns a 64-character random token valid for the
// given number of hours.
func NewVerificationToken(ttlHours int) (VerificationToken, error) {
	raw, err := RandomHex(32)
	if err != nil {
		return VerificationToken{}, err
	}
	return VerificationToken{
		Raw: raw,
		Exp: time.Now().UTC().Add(time.Duration(ttlHours) * time.Hour),
	}, nil
}

// SessionToken is the value stored in the session cookie. The cookie carries
// a signed HS256 JWT wrapping a random session id; the server keeps only a
// SHA-256 hash of that id in the sessions table, so a leaked database dump
// cannot be replayed as a cookie.
type SessionToken struct {
	Cookie string    // signed JWT placed in the cookie
	SID    string    // raw session id (hash of this is persisted)
	Exp    time.Time // UTC expiration time
}

// NewSessionToken mints a session id and wraps it in a signed JWT together
// with the user id and expiry.
func NewSessionToken(secret string, userID uint64, ttlHours int) (SessionToken, error) {
	sid, err := RandomHex(32)
	if err != nil {
		return SessionToken{}, err
	}
	exp := time.Now().UTC().Add(time.Duration(ttlHours) * time.Hour)
	claims := jwt.MapClaims{
		"sid": sid,
		"sub": userID,
		"exp": exp.Unix(),
		"iat": time.Now().UTC().Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return SessionToken{}, err
	}
	return SessionToken{Cookie: signed, SID: sid, Exp: exp}, nil
}

var errInvalidSession = errors.New("invalid session token")

// ParseSessionToken validates the cookie JWT signature and returns the
// embedded session id. Expiry of the session row is still checked against
// the database by the caller; the JWT exp only bounds cookie lifetime.
func ParseSessionToken(secret, cookie string) (string, error) {
	tok, err := jwt.Parse(cookie, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errInvalidSession
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return "", errInvalidSession
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return "", errInvalidSession
	}
	sid, ok := claims["sid"].(string)
	if !ok || sid == "" {
		return "", errInvalidSession
	}
	return sid, nil
}

// HashSessionID returns the SHA-256 hash of a raw session id as hex. Only
// this hash is stored in the sessions table.
func HashSessionID(sid string) string {
	sum := sha256.Sum256([]byte(sid))
	return hex.EncodeToString(sum[:])
}
