package handler

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"loadboard/internal/config"
	"loadboard/internal/model"
	"loadboard/internal/repository"
	mailer "loadboard/internal/service"
	"loadboard/internal/utils"
)

// AdminHandler implements the approval workflow and review queues. Every
// decision appends exactly one audit record, whether or not the follow-up
// email could be queued.
type AdminHandler struct {
	Cfg      config.Config
	Users    *repository.UserRepo
	Profiles *repository.ProfileRepo
	Actions  *repository.AdminActionRepo
	Sessions *repository.SessionRepo
	Mail     *mailer.Publisher
}

func NewAdminHandler(cfg config.Config, u *repository.UserRepo, p *repository.ProfileRepo, a *repository.AdminActionRepo, s *repository.SessionRepo, m *mailer.Publisher) *AdminHandler {
	return &AdminHandler{Cfg: cfg, Users: u, Profiles: p, Actions: a, Sessions: s, Mail: m}
}

type approveUserReq struct {
	UserID   uint64 `json:"user_id"`
	Approved bool   `json:"approved"`
	Reason   string `json:"reason,omitempty"`
}

// ApproveUser handles POST /api/admin/approve-user. Approval issues a
// fresh verification token and mails it: the user confirms their address
// once more before the first login. Rejection is terminal and revokes any
// session the account might still hold.
func (h *AdminHandler) ApproveUser(c echo.Context) error {
	adminID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req approveUserReq
	if err := c.Bind(&req); err != nil || req.UserID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "user_id required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load user failed"})
	}
	if u.UserType == model.UserTypeAdmin {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "admin accounts are not subject to approval"})
	}

	target := model.StatusApproved
	if !req.Approved {
		target = model.StatusRejected
	}
	if !u.Status.CanTransition(target) {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "invalid status transition",
			"from":  string(u.Status),
			"to":    string(target),
		})
	}

	if req.Approved {
		token, terr := utils.NewVerificationToken(h.Cfg.VerifyTTLHours)
		if terr != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "approve failed"})
		}
		if err := h.Users.SetStatus(ctx, u.ID, model.StatusApproved, &token.Raw, &token.Exp); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "approve failed"})
		}
		if _, err := h.Actions.Append(ctx, adminID, u.ID, model.AdminActionApprove, nil); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "record action failed"})
		}
		h.Mail.SendApproval(ctx, u, token.Raw)
		return c.JSON(http.StatusOK, echo.Map{"message": "user approved", "user_id": u.ID})
	}

	if err := h.Users.SetStatus(ctx, u.ID, model.StatusRejected, nil, nil); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "reject failed"})
	}
	if req.Reason != "" {
		if err := h.Users.SetVerificationNotes(ctx, u.ID, req.Reason); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "reject failed"})
		}
	}
	var reason *string
	if req.Reason != "" {
		reason = &req.Reason
	}
	if _, err := h.Actions.Append(ctx, adminID, u.ID, model.AdminActionReject, reason); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "record action failed"})
	}
	_ = h.Sessions.RevokeAllForUser(ctx, u.ID)
	h.Mail.SendRejection(ctx, u, req.Reason)
	return c.JSON(http.StatusOK, echo.Map{"message": "user rejected", "user_id": u.ID})
}

// PendingTruckers handles GET /api/admin/pending-truckers: trucker
// accounts that verified their email and await a decision.
func (h *AdminHandler) PendingTruckers(c echo.Context) error {
	return h.listReviewQueue(c, model.UserTypeTrucker)
}

// PendingBrokers handles GET /api/admin/pending-brokers.
func (h *AdminHandler) PendingBrokers(c echo.Context) error {
	return h.listReviewQueue(c, model.UserTypeBroker)
}

func (h *AdminHandler) listReviewQueue(c echo.Context, utype model.UserType) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	users, err := h.Users.ListByStatusAndType(ctx, model.StatusVerified, utype)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load users failed"})
	}
	items := make([]userResp, 0, len(users))
	for _, u := range users {
		items = append(items, toUserResp(u))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items, "count": len(items)})
}

// AllUsers handles GET /api/admin/all-users.
func (h *AdminHandler) AllUsers(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	users, err := h.Users.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load users failed"})
	}
	items := make([]userResp, 0, len(users))
	for _, u := range users {
		items = append(items, toUserResp(u))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items, "count": len(items)})
}

// adminActionResp is the serialized audit record.
type adminActionResp struct {
	ID        uint64    `json:"id"`
	AdminID   uint64    `json:"admin_id"`
	UserID    uint64    `json:"user_id"`
	Action    string    `json:"action"`
	Reason    *string   `json:"reason,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func toAdminActionResps(actions []model.AdminAction) []adminActionResp {
	out := make([]adminActionResp, 0, len(actions))
	for _, a := range actions {
		out = append(out, adminActionResp{
			ID:        a.ID,
			AdminID:   a.AdminID,
			UserID:    a.UserID,
			Action:    string(a.Action),
			Reason:    a.Reason,
			CreatedAt: a.CreatedAt,
		})
	}
	return out
}

// ActionHistory handles GET /api/admin/action-history: the calling
// admin's own decisions, newest first.
func (h *AdminHandler) ActionHistory(c echo.Context) error {
	adminID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	actions, err := h.Actions.ListByAdmin(ctx, adminID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load actions failed"})
	}
	items := toAdminActionResps(actions)
	return c.JSON(http.StatusOK, echo.Map{"items": items, "count": len(items)})
}

// UserProfile handles GET /api/admin/user-profile/:id: the user record
// together with its role profile, for the review screen.
func (h *AdminHandler) UserProfile(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load user failed"})
	}

	resp := echo.Map{"user": toUserResp(u)}
	switch u.UserType {
	case model.UserTypeTrucker:
		if p, perr := h.Profiles.GetTrucker(ctx, u.ID); perr == nil {
			resp["profile"] = toTruckerResp(p)
		}
	case model.UserTypeBroker:
		if p, perr := h.Profiles.GetBroker(ctx, u.ID); perr == nil {
			resp["profile"] = toBrokerResp(p)
		}
	}
	return c.JSON(http.StatusOK, resp)
}
