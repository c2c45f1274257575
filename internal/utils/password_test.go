package utils

import (
	"strings"
	"testing"
)

func TestHashPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
	}{
		{"simple password", "secret123"},
		{"empty password", ""},
		{"long password", strings.Repeat("a", 100)},
		{"unicode password", "pässwörd§"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cred, err := HashPassword(tt.password)
			if err != nil {
				t.Fatalf("HashPassword() error = %v", err)
			}
			hash, salt, ok := strings.Cut(cred, ".")
			if !ok {
				t.Fatalf("HashPassword() = %q, want hash.salt format", cred)
			}
			if len(hash) != 64 {
				t.Errorf("hash length = %d, want 64 hex chars", len(hash))
			}
			if len(salt) != 32 {
				t.Errorf("salt length = %d, want 32 hex chars", len(salt))
			}
			if !VerifyPassword(cred, tt.password) {
				t.Error("VerifyPassword() = false for correct password")
			}
		})
	}
}

func TestHashPassword_DifferentSalts(t *testing.T) {
	c1, _ := HashPassword("samepassword")
	c2, _ := HashPassword("samepassword")
	if c1 == c2 {
		t.Error("HashPassword() should produce different credentials for same password")
	}
}

func TestVerifyPassword(t *testing.T) {
	cred, err := HashPassword("correct horse")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}

	tests := []struct {
		name       string
		credential string
		password   string
		want       bool
	}{
		{"correct password", cred, "correct horse", true},
		{"wrong password", cred, "battery staple", false},
		{"empty password", cred, "", false},
		{"missing separator", "deadbeef", "correct horse", false},
		{"bad hash hex", "zz.abcd", "correct horse", false},
		{"bad salt hex", strings.Repeat("ab", 32) + ".zz", "correct horse", false},
		{"truncated hash", "abcd.1234", "correct horse", false},
		{"empty credential", "", "correct horse", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := VerifyPassword(tt.credential, tt.password); got != tt.want {
				t.Errorf("VerifyPassword() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRandomHex(t *testing.T) {
	a, err := RandomHex(32)
	if err != nil {
		t.Fatalf("RandomHex() error = %v", err)
	}
	if len(a) != 64 {
		t.Errorf("RandomHex(32) length = %d, want 64", len(a))
	}
	b, _ := RandomHex(32)
	if a == b {
		t.Error("RandomHex() returned the same value twice")
	}
}
