// Package queue defines message payloads exchanged over the message broker
// and the background consumer that delivers them.
package queue

// EmailKind tags the lifecycle notice an email represents.
type EmailKind string

const (
	EmailVerification EmailKind = "verification"
	EmailApproval     EmailKind = "approval"
	EmailRejection    EmailKind = "rejection"
)

// EmailEvent is published to the email.outbound queue whenever a lifecycle
// transition owes the user a notice. Delivery is best effort: the state
// change that produced the event is already committed and never rolls back
// on a failed send.
type EmailEvent struct {
	Kind     EmailKind `json:"kind"`
	UserID   uint64    `json:"user_id"`
	To       string    `json:"to"`
	Subject  string    `json:"subject"`
	Body     string    `json:"body"`
	QueuedAt string    `json:"queued_at"`
}
