package model

// Status is the account lifecycle state. Accounts move forward only:
//
//	pending -> verified -> approved
//	                    -> rejected
//
// Admin accounts never walk these edges; they are treated as loggable
// regardless of the column value.
type Status string

const (
	StatusPending  Status = "pending"
	StatusVerified Status = "verified"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// statusEdges is the full transition table. Rejected and approved are
// terminal for non-admin accounts.
var statusEdges = map[Status][]Status{
	StatusPending:  {StatusVerified},
	StatusVerified: {StatusApproved, StatusRejected},
}

// CanTransition reports whether the lifecycle allows moving from s to next.
func (s Status) CanTransition(next Status) bool {
	for _, n := range statusEdges[s] {
		if n == next {
			return true
		}
	}
	return false
}

// CanLogin reports whether the account passes the lifecycle login gate.
// Approved accounts and admins of any status may establish a session.
func (u User) CanLogin() bool {
	return u.UserType == UserTypeAdmin || u.Status == StatusApproved
}

// LoginGateMessage is the status-specific explanation returned when the
// gate blocks a login. The wording intentionally tells the user their next
// step; it is evaluated before the password is checked.
func (u User) LoginGateMessage() string {
	switch u.Status {
	case StatusPending:
		return "account awaiting email verification"
	case StatusVerified:
		return "account awaiting admin approval"
	case StatusRejected:
		return "account registration was rejected"
	default:
		return "account is not active"
	}
}
