package model

import "time"

// AdminActionType is the decision recorded in the audit log.
type AdminActionType string

const (
	AdminActionApprove AdminActionType = "approve"
	AdminActionReject  AdminActionType = "reject"
)

// AdminAction is one append-only audit record of an approve/reject
// decision. Rows are never updated or deleted.
type AdminAction struct {
	ID        uint64
	AdminID   uint64
	UserID    uint64
	Action    AdminActionType
	Reason    *string
	CreatedAt time.Time
}
