package model

import "time"

// JobStatus is the posting state. New jobs are always created active; the
// public listing only ever shows active postings.
type JobStatus string

const (
	JobStatusActive    JobStatus = "active"
	JobStatusPending   JobStatus = "pending"
	JobStatusCompleted JobStatus = "completed"
	JobStatusCancelled JobStatus = "cancelled"
)

// ValidJobStatus reports whether s is one of the four posting states.
func ValidJobStatus(s JobStatus) bool {
	switch s {
	case JobStatusActive, JobStatusPending, JobStatusCompleted, JobStatusCancelled:
		return true
	}
	return false
}

// Job is a shipping posting owned by exactly one broker. Price is an
// integer currency unit; weight and distance are optional.
type Job struct {
	ID               uint64
	BrokerID         uint64
	Title            string
	Description      string
	OriginCity       string
	OriginState      string
	DestinationCity  string
	DestinationState string
	Distance         *uint32
	Price            uint64
	CargoType        string
	Weight           *uint32
	LoadType         string
	PickupDate       time.Time
	CompanyName      string
	Status           JobStatus
	CreatedAt        time.Time
}
