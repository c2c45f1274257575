package model

import "testing"

func TestStatusCanTransition(t *testing.T) {
	tests := []struct {
		name string
		from Status
		to   Status
		want bool
	}{
		{"pending to verified", StatusPending, StatusVerified, true},
		{"pending to approved skips verification", StatusPending, StatusApproved, false},
		{"pending to rejected skips verification", StatusPending, StatusRejected, false},
		{"verified to approved", StatusVerified, StatusApproved, true},
		{"verified to rejected", StatusVerified, StatusRejected, true},
		{"verified back to pending", StatusVerified, StatusPending, false},
		{"approved is terminal", StatusApproved, StatusRejected, false},
		{"rejected is terminal", StatusRejected, StatusApproved, false},
		{"rejected cannot re-verify", StatusRejected, StatusVerified, false},
		{"self transition", StatusVerified, StatusVerified, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.from.CanTransition(tt.to); got != tt.want {
				t.Errorf("%s.CanTransition(%s) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestUserCanLogin(t *testing.T) {
	tests := []struct {
		name string
		user User
		want bool
	}{
		{"approved trucker", User{UserType: UserTypeTrucker, Status: StatusApproved}, true},
		{"approved broker", User{UserType: UserTypeBroker, Status: StatusApproved}, true},
		{"pending trucker", User{UserType: UserTypeTrucker, Status: StatusPending}, false},
		{"verified broker", User{UserType: UserTypeBroker, Status: StatusVerified}, false},
		{"rejected trucker", User{UserType: UserTypeTrucker, Status: StatusRejected}, false},
		{"admin always passes", User{UserType: UserTypeAdmin, Status: StatusPending}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.user.CanLogin(); got != tt.want {
				t.Errorf("CanLogin() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLoginGateMessage(t *testing.T) {
	tests := []struct {
		status Status
		want   string
	}{
		{StatusPending, "account awaiting email verification"},
		{StatusVerified, "account awaiting admin approval"},
		{StatusRejected, "account registration was rejected"},
		{Status("unknown"), "account is not active"},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			u := User{Status: tt.status}
			if got := u.LoginGateMessage(); got != tt.want {
				t.Errorf("LoginGateMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}
