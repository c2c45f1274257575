package handler

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"loadboard/internal/config"
	"loadboard/internal/model"
	"loadboard/internal/repository"
	mailer "loadboard/internal/service"
	"loadboard/internal/utils"
)

// AuthHandler bundles dependencies for registration, verification, login
// and session management.
type AuthHandler struct {
	Cfg      config.Config
	Users    *repository.UserRepo
	Profiles *repository.ProfileRepo
	Sessions *repository.SessionRepo
	Mail     *mailer.Publisher
}

func NewAuthHandler(cfg config.Config, u *repository.UserRepo, p *repository.ProfileRepo, s *repository.SessionRepo, m *mailer.Publisher) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: u, Profiles: p, Sessions: s, Mail: m}
}

// Register creates a pending user plus its role profile and queues the
// verification email. The response is a success even when the email could
// not be queued; signup must not depend on mail infrastructure.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if fields := req.validate(); len(fields) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed", "fields": fields})
	}

	credential, err := utils.HashPassword(req.Password)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
	}
	token, err := utils.NewVerificationToken(h.Cfg.VerifyTTLHours)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u := model.User{
		Username:          req.Username,
		Credential:        credential,
		Email:             req.Email,
		FirstName:         req.FirstName,
		LastName:          req.LastName,
		Phone:             req.Phone,
		UserType:          model.UserType(req.UserType),
		Status:            model.StatusPending,
		VerificationToken: &token.Raw,
		TokenExpiry:       &token.Exp,
	}
	uid, err := h.Users.Create(ctx, u)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrUsernameExists):
			return c.JSON(http.StatusConflict, echo.Map{"error": "username already exists"})
		case errors.Is(err, repository.ErrEmailExists):
			return c.JSON(http.StatusConflict, echo.Map{"error": "email already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
	}
	u.ID = uid

	if u.UserType == model.UserTypeTrucker {
		err = h.Profiles.CreateTrucker(ctx, req.truckerProfile(uid))
	} else {
		err = h.Profiles.CreateBroker(ctx, req.brokerProfile(uid))
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create profile failed"})
	}

	// Best effort; a broker outage is logged inside the publisher and the
	// user can still be verified via a resent link later.
	h.Mail.SendVerification(ctx, u, token.Raw)

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "registration successful, check your email to verify your account",
		"user":    toUserResp(u),
	})
}

// Verify consumes a verification token from the emailed link. A valid
// token moves pending to verified and is cleared, so presenting it twice
// fails naturally. On success the browser is redirected to the login page.
func (h *AuthHandler) Verify(c echo.Context) error {
	token := strings.TrimSpace(c.QueryParam("token"))
	if token == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "token required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByVerificationToken(ctx, token)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid or already used token"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "verification failed"})
	}
	if u.TokenExpired(time.Now().UTC()) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "token expired"})
	}

	// Approved accounts re-verify after an admin decision; their status
	// stays approved and only the token is consumed.
	next := u.Status
	if u.Status == model.StatusPending {
		next = model.StatusVerified
	}
	if err := h.Users.SetStatus(ctx, u.ID, next, nil, nil); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "verification failed"})
	}

	return c.Redirect(http.StatusFound, h.Cfg.FrontendURL+"/login?verified=1")
}

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login authenticates and establishes a session. The lifecycle gate runs
// before the password comparison so the user learns their next step
// (verify email, await approval) instead of a generic failure.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username/password required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	// The identifier doubles as an email address when it contains '@';
	// usernames cannot contain one.
	var (
		u   model.User
		err error
	)
	if strings.Contains(req.Username, "@") {
		u, err = h.Users.GetByEmail(ctx, req.Username)
	} else {
		u, err = h.Users.GetByUsername(ctx, req.Username)
	}
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !u.CanLogin() {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": u.LoginGateMessage()})
	}
	if !utils.VerifyPassword(u.Credential, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	session, err := utils.NewSessionToken(h.Cfg.SessionSecret, u.ID, h.Cfg.SessionTTLHours)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue session failed"})
	}
	if err := h.Sessions.Store(ctx, u.ID, utils.HashSessionID(session.SID), session.Exp); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save session failed"})
	}

	c.SetCookie(&http.Cookie{
		Name:     "session",
		Value:    session.Cookie,
		Path:     "/",
		Expires:  session.Exp,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return c.JSON(http.StatusOK, echo.Map{"user": toUserResp(u)})
}

// Logout revokes the current session and clears the cookie.
func (h *AuthHandler) Logout(c echo.Context) error {
	cookie, err := c.Cookie("session")
	if err == nil && cookie.Value != "" {
		if sid, perr := utils.ParseSessionToken(h.Cfg.SessionSecret, cookie.Value); perr == nil {
			ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
			defer cancel()
			if rerr := h.Sessions.RevokeByHash(ctx, utils.HashSessionID(sid)); rerr != nil {
				log.Warn().Err(rerr).Msg("logout: revoke session failed")
			}
		}
	}
	c.SetCookie(&http.Cookie{Name: "session", Value: "", Path: "/", MaxAge: -1, HttpOnly: true})
	return c.NoContent(http.StatusNoContent)
}

type updateUserReq struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Phone     *string `json:"phone"`
	Email     *string `json:"email"`
}

// UpdateMe applies a partial update to the caller's own identity fields.
// Username, role and lifecycle status are immutable through this endpoint.
func (h *AuthHandler) UpdateMe(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req updateUserReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Email != nil && !strings.Contains(*req.Email, "@") {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed",
			"fields": map[string]string{"email": "valid email required"}})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	err = h.Users.Update(ctx, uid, repository.UserUpdate{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Email:     req.Email,
	})
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "email already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update user failed"})
	}

	u, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load user failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"user": toUserResp(u)})
}

// Me returns the caller's own record.
func (h *AuthHandler) Me(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	u, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	return c.JSON(http.StatusOK, echo.Map{"user": toUserResp(u)})
}
