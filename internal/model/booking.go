package model

import "time"

// BookingStatus is the application state of a trucker's booking.
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusAccepted  BookingStatus = "accepted"
	BookingStatusRejected  BookingStatus = "rejected"
	BookingStatusCompleted BookingStatus = "completed"
)

// Booking is one trucker's application against one job. At most one
// booking exists per (job, trucker) pair.
type Booking struct {
	ID        uint64
	JobID     uint64
	TruckerID uint64
	Status    BookingStatus
	CreatedAt time.Time
}

// CanTransitionBooking is the role x target-status matrix for booking
// updates. Brokers decide pending applications; the trucker marks the
// work completed, except on an application the broker already rejected.
// Any other combination is an authorization failure, not a validation
// one.
func CanTransitionBooking(role UserType, from, to BookingStatus) bool {
	switch role {
	case UserTypeBroker:
		return from == BookingStatusPending &&
			(to == BookingStatusAccepted || to == BookingStatusRejected)
	case UserTypeTrucker:
		return to == BookingStatusCompleted && from != BookingStatusRejected
	}
	return false
}
