package model

import (
	"testing"
	"time"
)

func TestValidRegistrationType(t *testing.T) {
	tests := []struct {
		role UserType
		want bool
	}{
		{UserTypeTrucker, true},
		{UserTypeBroker, true},
		{UserTypeAdmin, false},
		{UserType("dispatcher"), false},
		{UserType(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			if got := ValidRegistrationType(tt.role); got != tt.want {
				t.Errorf("ValidRegistrationType(%q) = %v, want %v", tt.role, got, tt.want)
			}
		})
	}
}

func TestUserTokenExpired(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Minute)
	future := now.Add(time.Minute)

	tests := []struct {
		name   string
		expiry *time.Time
		want   bool
	}{
		{"future expiry is valid", &future, false},
		{"past expiry is expired", &past, true},
		{"expiry at now is still valid", &now, false},
		{"missing expiry counts as expired", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := User{TokenExpiry: tt.expiry}
			if got := u.TokenExpired(now); got != tt.want {
				t.Errorf("TokenExpired() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUserFullName(t *testing.T) {
	tests := []struct {
		name string
		user User
		want string
	}{
		{"both names", User{Username: "pm", FirstName: "Pat", LastName: "Miller"}, "Pat Miller"},
		{"first only", User{Username: "pm", FirstName: "Pat"}, "Pat"},
		{"no names", User{Username: "pm"}, "pm"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.user.FullName(); got != tt.want {
				t.Errorf("FullName() = %q, want %q", got, tt.want)
			}
		})
	}
}
