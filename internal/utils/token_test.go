package utils

import (
	"testing"
	"time"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	const secret = "test-secret"

	tok, err := NewSessionToken(secret, 42, 72)
	if err != nil {
		t.Fatalf("NewSessionToken() error = %v", err)
	}
	if len(tok.SID) != 64 {
		t.Errorf("SID length = %d, want 64", len(tok.SID))
	}
	if tok.Exp.Before(time.Now().Add(71 * time.Hour)) {
		t.Errorf("Exp = %v, want ~72h from now", tok.Exp)
	}

	sid, err := ParseSessionToken(secret, tok.Cookie)
	if err != nil {
		t.Fatalf("ParseSessionToken() error = %v", err)
	}
	if sid != tok.SID {
		t.Errorf("ParseSessionToken() sid = %q, want %q", sid, tok.SID)
	}
}

func TestParseSessionToken_Invalid(t *testing.T) {
	tok, err := NewSessionToken("right-secret", 1, 1)
	if err != nil {
		t.Fatalf("NewSessionToken() error = %v", err)
	}

	tests := []struct {
		name   string
		secret string
		cookie string
	}{
		{"wrong secret", "wrong-secret", tok.Cookie},
		{"garbage cookie", "right-secret", "not.a.jwt"},
		{"empty cookie", "right-secret", ""},
		{"tampered cookie", "right-secret", tok.Cookie + "x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseSessionToken(tt.secret, tt.cookie); err == nil {
				t.Error("ParseSessionToken() error = nil, want error")
			}
		})
	}
}

func TestNewVerificationToken(t *testing.T) {
	tok, err := NewVerificationToken(24)
	if err != nil {
		t.Fatalf("NewVerificationToken() error = %v", err)
	}
	if len(tok.Raw) != 64 {
		t.Errorf("Raw length = %d, want 64", len(tok.Raw))
	}
	if tok.Exp.Before(time.Now().Add(23 * time.Hour)) {
		t.Errorf("Exp = %v, want ~24h from now", tok.Exp)
	}
	other, _ := NewVerificationToken(24)
	if other.Raw == tok.Raw {
		t.Error("NewVerificationToken() returned the same raw token twice")
	}
}

func TestHashSessionID(t *testing.T) {
	h1 := HashSessionID("abc")
	h2 := HashSessionID("abc")
	if h1 != h2 {
		t.Error("HashSessionID() is not deterministic")
	}
	if len(h1) != 64 {
		t.Errorf("hash length = %d, want 64", len(h1))
	}
	if HashSessionID("abd") == h1 {
		t.Error("HashSessionID() collision on different inputs")
	}
}
