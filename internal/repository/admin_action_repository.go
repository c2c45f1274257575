package repository

import (
	"context"
	"database/sql"

	"loadboard/internal/model"
)

// AdminActionRepo is the append-only audit log of approve/reject
// decisions. There is deliberately no update or delete operation.
type AdminActionRepo struct{ DB *sql.DB }

func NewAdminActionRepo(db *sql.DB) *AdminActionRepo { return &AdminActionRepo{DB: db} }

// Append records one decision.
func (r *AdminActionRepo) Append(ctx context.Context, adminID, userID uint64, action model.AdminActionType, reason *string) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO admin_actions (admin_id, user_id, action, reason)
		 VALUES (?,?,?,?)`,
		adminID, userID, string(action), reason)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// ListByAdmin returns one admin's decisions, newest first.
func (r *AdminActionRepo) ListByAdmin(ctx context.Context, adminID uint64) ([]model.AdminAction, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, admin_id, user_id, action, reason, created_at
		 FROM admin_actions WHERE admin_id=?
		 ORDER BY created_at DESC, id DESC`, adminID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.AdminAction{}
	for rows.Next() {
		var (
			a      model.AdminAction
			action string
			reason sql.NullString
		)
		if err := rows.Scan(&a.ID, &a.AdminID, &a.UserID, &action, &reason,
			&a.CreatedAt); err != nil {
			return nil, err
		}
		a.Action = model.AdminActionType(action)
		if reason.Valid {
			a.Reason = &reason.String
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
