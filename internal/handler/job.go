package handler

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"loadboard/internal/model"
	"loadboard/internal/repository"
)

// JobHandler serves job postings: the public listing plus broker-owned
// create/update.
type JobHandler struct {
	Jobs *repository.JobRepo
}

func NewJobHandler(j *repository.JobRepo) *JobHandler {
	return &JobHandler{Jobs: j}
}

// jobResp is the serialized posting. Models carry no JSON tags; every
// response shape is mapped here so the wire format stays snake_case.
type jobResp struct {
	ID               uint64    `json:"id"`
	BrokerID         uint64    `json:"broker_id"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	OriginCity       string    `json:"origin_city"`
	OriginState      string    `json:"origin_state"`
	DestinationCity  string    `json:"destination_city"`
	DestinationState string    `json:"destination_state"`
	Distance         *uint32   `json:"distance,omitempty"`
	Price            uint64    `json:"price"`
	CargoType        string    `json:"cargo_type"`
	Weight           *uint32   `json:"weight,omitempty"`
	LoadType         string    `json:"load_type"`
	PickupDate       time.Time `json:"pickup_date"`
	CompanyName      string    `json:"company_name"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
}

func toJobResp(j model.Job) jobResp {
	return jobResp{
		ID:               j.ID,
		BrokerID:         j.BrokerID,
		Title:            j.Title,
		Description:      j.Description,
		OriginCity:       j.OriginCity,
		OriginState:      j.OriginState,
		DestinationCity:  j.DestinationCity,
		DestinationState: j.DestinationState,
		Distance:         j.Distance,
		Price:            j.Price,
		CargoType:        j.CargoType,
		Weight:           j.Weight,
		LoadType:         j.LoadType,
		PickupDate:       j.PickupDate,
		CompanyName:      j.CompanyName,
		Status:           string(j.Status),
		CreatedAt:        j.CreatedAt,
	}
}

func toJobResps(jobs []model.Job) []jobResp {
	out := make([]jobResp, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, toJobResp(j))
	}
	return out
}

// List handles GET /api/jobs. Only active postings are returned, newest
// first; filters are exact-match query parameters.
func (h *JobHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	jobs, err := h.Jobs.ListActive(ctx, repository.JobFilter{
		OriginState:      c.QueryParam("origin_state"),
		DestinationState: c.QueryParam("destination_state"),
		LoadType:         c.QueryParam("load_type"),
		CargoType:        c.QueryParam("cargo_type"),
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load jobs failed"})
	}
	items := toJobResps(jobs)
	return c.JSON(http.StatusOK, echo.Map{"items": items, "count": len(items)})
}

// Get handles GET /api/jobs/:id.
func (h *JobHandler) Get(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid job id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	j, err := h.Jobs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "job not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load job failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"item": toJobResp(j)})
}

// ListMine handles GET /api/broker/jobs: every posting of the
// authenticated broker regardless of status.
func (h *JobHandler) ListMine(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	jobs, err := h.Jobs.ListByBroker(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load jobs failed"})
	}
	items := toJobResps(jobs)
	return c.JSON(http.StatusOK, echo.Map{"items": items, "count": len(items)})
}

type createJobReq struct {
	Title            string  `json:"title"`
	Description      string  `json:"description"`
	OriginCity       string  `json:"origin_city"`
	OriginState      string  `json:"origin_state"`
	DestinationCity  string  `json:"destination_city"`
	DestinationState string  `json:"destination_state"`
	Distance         *uint32 `json:"distance"`
	Price            uint64  `json:"price"`
	CargoType        string  `json:"cargo_type"`
	Weight           *uint32 `json:"weight"`
	LoadType         string  `json:"load_type"`
	PickupDate       string  `json:"pickup_date"` // RFC 3339 or YYYY-MM-DD
	CompanyName      string  `json:"company_name"`
}

func (r createJobReq) validate() map[string]string {
	fields := map[string]string{}
	if r.Title == "" {
		fields["title"] = "required"
	}
	if r.OriginCity == "" {
		fields["origin_city"] = "required"
	}
	if r.OriginState == "" {
		fields["origin_state"] = "required"
	}
	if r.DestinationCity == "" {
		fields["destination_city"] = "required"
	}
	if r.DestinationState == "" {
		fields["destination_state"] = "required"
	}
	if r.Price == 0 {
		fields["price"] = "must be positive"
	}
	if r.CargoType == "" {
		fields["cargo_type"] = "required"
	}
	if r.LoadType == "" {
		fields["load_type"] = "required"
	}
	if _, err := parsePickupDate(r.PickupDate); err != nil {
		fields["pickup_date"] = "must be RFC 3339 or YYYY-MM-DD"
	}
	return fields
}

func parsePickupDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	return time.Parse("2006-01-02", s)
}

// Create handles POST /api/jobs. Ownership is stamped from the session;
// a broker id in the body is never trusted. Status is forced to active.
func (h *JobHandler) Create(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createJobReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if fields := req.validate(); len(fields) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed", "fields": fields})
	}
	pickup, _ := parsePickupDate(req.PickupDate)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	id, err := h.Jobs.Create(ctx, model.Job{
		BrokerID:         uid,
		Title:            req.Title,
		Description:      req.Description,
		OriginCity:       req.OriginCity,
		OriginState:      req.OriginState,
		DestinationCity:  req.DestinationCity,
		DestinationState: req.DestinationState,
		Distance:         req.Distance,
		Price:            req.Price,
		CargoType:        req.CargoType,
		Weight:           req.Weight,
		LoadType:         req.LoadType,
		PickupDate:       pickup,
		CompanyName:      req.CompanyName,
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create job failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": id})
}

type updateJobReq struct {
	Title            *string `json:"title"`
	Description      *string `json:"description"`
	OriginCity       *string `json:"origin_city"`
	OriginState      *string `json:"origin_state"`
	DestinationCity  *string `json:"destination_city"`
	DestinationState *string `json:"destination_state"`
	Distance         *uint32 `json:"distance"`
	Price            *uint64 `json:"price"`
	CargoType        *string `json:"cargo_type"`
	Weight           *uint32 `json:"weight"`
	LoadType         *string `json:"load_type"`
	PickupDate       *string `json:"pickup_date"`
	CompanyName      *string `json:"company_name"`
	Status           *string `json:"status"`
}

// Update handles PUT /api/jobs/:id, gated on ownership in the repository.
func (h *JobHandler) Update(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid job id"})
	}
	var req updateJobReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	upd := repository.JobUpdate{
		Title:            req.Title,
		Description:      req.Description,
		OriginCity:       req.OriginCity,
		OriginState:      req.OriginState,
		DestinationCity:  req.DestinationCity,
		DestinationState: req.DestinationState,
		Distance:         req.Distance,
		Price:            req.Price,
		CargoType:        req.CargoType,
		Weight:           req.Weight,
		LoadType:         req.LoadType,
		CompanyName:      req.CompanyName,
	}
	if req.PickupDate != nil {
		pickup, perr := parsePickupDate(*req.PickupDate)
		if perr != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed",
				"fields": map[string]string{"pickup_date": "must be RFC 3339 or YYYY-MM-DD"}})
		}
		upd.PickupDate = &pickup
	}
	if req.Status != nil {
		s := model.JobStatus(*req.Status)
		if !model.ValidJobStatus(s) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed",
				"fields": map[string]string{"status": "unknown job status"}})
		}
		upd.Status = &s
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Jobs.Update(ctx, id, uid, upd); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "job not found"})
		case errors.Is(err, repository.ErrForbidden):
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update job failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "job updated"})
}
