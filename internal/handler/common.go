// Package handler implements the HTTP endpoints. Handlers bind and
// validate request bodies, enforce ownership, translate repository
// sentinel errors into status codes and delegate persistence to the
// repositories.
package handler

import (
	"errors"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"loadboard/internal/middleware"
	"loadboard/internal/model"
)

// getUserID extracts the authenticated user id placed in context by the
// session middleware.
func getUserID(c echo.Context) (uint64, error) {
	if id, ok := middleware.CallerID(c); ok {
		return id, nil
	}
	return 0, errors.New("no authenticated user in context")
}

// pathID parses a numeric path parameter, rejecting zero.
func pathID(c echo.Context, name string) (uint64, bool) {
	n, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || n == 0 {
		return 0, false
	}
	return n, true
}

// userResp is the sanitized user representation returned to clients. The
// credential and verification token never leave the server.
type userResp struct {
	ID        uint64    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Phone     string    `json:"phone"`
	UserType  string    `json:"user_type"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

func toUserResp(u model.User) userResp {
	return userResp{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Phone:     u.Phone,
		UserType:  string(u.UserType),
		Status:    string(u.Status),
		CreatedAt: u.CreatedAt,
	}
}
