package model

import "testing"

func TestCanTransitionBooking(t *testing.T) {
	tests := []struct {
		name string
		role UserType
		from BookingStatus
		to   BookingStatus
		want bool
	}{
		{"broker accepts pending", UserTypeBroker, BookingStatusPending, BookingStatusAccepted, true},
		{"broker rejects pending", UserTypeBroker, BookingStatusPending, BookingStatusRejected, true},
		{"broker cannot complete", UserTypeBroker, BookingStatusAccepted, BookingStatusCompleted, false},
		{"broker cannot re-decide accepted", UserTypeBroker, BookingStatusAccepted, BookingStatusRejected, false},
		{"broker cannot re-decide rejected", UserTypeBroker, BookingStatusRejected, BookingStatusAccepted, false},
		{"trucker completes accepted", UserTypeTrucker, BookingStatusAccepted, BookingStatusCompleted, true},
		{"trucker completes pending", UserTypeTrucker, BookingStatusPending, BookingStatusCompleted, true},
		{"trucker cannot complete rejected", UserTypeTrucker, BookingStatusRejected, BookingStatusCompleted, false},
		{"trucker cannot accept", UserTypeTrucker, BookingStatusPending, BookingStatusAccepted, false},
		{"trucker cannot reject", UserTypeTrucker, BookingStatusPending, BookingStatusRejected, false},
		{"admin has no say", UserTypeAdmin, BookingStatusPending, BookingStatusAccepted, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CanTransitionBooking(tt.role, tt.from, tt.to)
			if got != tt.want {
				t.Errorf("CanTransitionBooking(%s, %s, %s) = %v, want %v",
					tt.role, tt.from, tt.to, got, tt.want)
			}
		})
	}
}
