// Package middleware contains reusable HTTP middleware: session
// authentication, role enforcement, rate limiting and response caching.
package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"loadboard/internal/model"
	"loadboard/internal/repository"
	"loadboard/internal/utils"
)

// SessionCookieName is the cookie carrying the signed session token.
const SessionCookieName = "session"

// RequireSession validates the session cookie and loads the caller into
// the request context under "user_id", "role", "status" and "username".
// The cookie value is a signed JWT wrapping a random session id; the
// signature gates tampering, the sessions table gates revocation and
// expiry. Both checks must pass.
func RequireSession(secret string, sessions *repository.SessionRepo, users *repository.UserRepo) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
			}
			sid, err := utils.ParseSessionToken(secret, cookie.Value)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid session"})
			}
			ctx := c.Request().Context()
			userID, err := sessions.Validate(ctx, utils.HashSessionID(sid))
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "session expired"})
			}
			u, err := users.GetByID(ctx, userID)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "session expired"})
			}
			// An account rejected after login keeps its cookie but loses
			// access on the next request.
			if !u.CanLogin() {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": u.LoginGateMessage()})
			}
			c.Set("user_id", u.ID)
			c.Set("role", string(u.UserType))
			c.Set("status", string(u.Status))
			c.Set("username", u.Username)
			return next(c)
		}
	}
}

// CallerID returns the authenticated user id placed in context by
// RequireSession.
func CallerID(c echo.Context) (uint64, bool) {
	v, ok := c.Get("user_id").(uint64)
	return v, ok
}

// CallerRole returns the authenticated role placed in context by
// RequireSession.
func CallerRole(c echo.Context) model.UserType {
	if s, ok := c.Get("role").(string); ok {
		return model.UserType(s)
	}
	return ""
}
