package handler

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"loadboard/internal/middleware"
	"loadboard/internal/model"
	"loadboard/internal/repository"
)

// BookingHandler serves trucker applications and their status workflow.
type BookingHandler struct {
	Bookings *repository.BookingRepo
	Jobs     *repository.JobRepo
}

func NewBookingHandler(b *repository.BookingRepo, j *repository.JobRepo) *BookingHandler {
	return &BookingHandler{Bookings: b, Jobs: j}
}

type createBookingReq struct {
	JobID uint64 `json:"job_id"`
}

// Create handles POST /api/bookings. The target job must exist; a second
// application by the same trucker is a 400 backed by the unique key, so
// two racing requests still produce exactly one row.
func (h *BookingHandler) Create(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createBookingReq
	if err := c.Bind(&req); err != nil || req.JobID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "job_id required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Jobs.GetByID(ctx, req.JobID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "job not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load job failed"})
	}
	// Friendly pre-check; the unique key remains the authority under
	// concurrency.
	if exists, err := h.Bookings.Exists(ctx, req.JobID, uid); err == nil && exists {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "already applied to this job"})
	}

	id, err := h.Bookings.Create(ctx, req.JobID, uid)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateBooking) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "already applied to this job"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create booking failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": id, "status": string(model.BookingStatusPending)})
}

// ListMine handles GET /api/trucker/bookings.
func (h *BookingHandler) ListMine(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	items, err := h.Bookings.ListByTrucker(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load bookings failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items, "count": len(items)})
}

// ListApplications handles GET /api/broker/jobs/:id/applications. The job
// must belong to the calling broker.
func (h *BookingHandler) ListApplications(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	jobID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid job id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	job, err := h.Jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "job not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load job failed"})
	}
	if job.BrokerID != uid {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}

	items, err := h.Bookings.ListByJob(ctx, jobID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load applications failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items, "count": len(items)})
}

type bookingStatusReq struct {
	Status string `json:"status"`
}

// UpdateStatus handles PUT /api/bookings/:id/status. The caller must be a
// party to the booking (broker owning the job, or the trucker who
// applied) and the role x target-status matrix must allow the move;
// violations are authorization errors, not validation ones.
func (h *BookingHandler) UpdateStatus(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	role := middleware.CallerRole(c)
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	var req bookingStatusReq
	if err := c.Bind(&req); err != nil || req.Status == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "status required"})
	}
	target := model.BookingStatus(req.Status)
	switch target {
	case model.BookingStatusAccepted, model.BookingStatusRejected, model.BookingStatusCompleted:
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown booking status"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	b, err := h.Bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load booking failed"})
	}

	// Ownership: the trucker must own the booking, the broker must own
	// the job it targets.
	switch role {
	case model.UserTypeTrucker:
		if b.TruckerID != uid {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		}
	case model.UserTypeBroker:
		job, jerr := h.Jobs.GetByID(ctx, b.JobID)
		if jerr != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load job failed"})
		}
		if job.BrokerID != uid {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		}
	default:
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}

	if !model.CanTransitionBooking(role, b.Status, target) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "transition not allowed for role"})
	}
	if err := h.Bookings.SetStatus(ctx, id, target); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update booking failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"id": id, "status": string(target)})
}
