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

// ProfileHandler serves the caller's own role profile.
type ProfileHandler struct {
	Profiles *repository.ProfileRepo
}

func NewProfileHandler(p *repository.ProfileRepo) *ProfileHandler {
	return &ProfileHandler{Profiles: p}
}

// GetTrucker handles GET /api/profile/trucker.
func (h *ProfileHandler) GetTrucker(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	p, err := h.Profiles.GetTrucker(ctx, uid)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "profile not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load profile failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"profile": toTruckerResp(p)})
}

// GetBroker handles GET /api/profile/broker.
func (h *ProfileHandler) GetBroker(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	p, err := h.Profiles.GetBroker(ctx, uid)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "profile not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load profile failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"profile": toBrokerResp(p)})
}

// truckerUpdateReq mirrors repository.TruckerUpdate with JSON tags. Nil
// fields are left untouched by the partial merge.
type truckerUpdateReq struct {
	Address        *string          `json:"address"`
	City           *string          `json:"city"`
	State          *string          `json:"state"`
	Zip            *string          `json:"zip"`
	LicenseNumber  *string          `json:"license_number"`
	LicenseClass   *string          `json:"license_class"`
	TruckType      *string          `json:"truck_type"`
	ServiceAreas   *[]string        `json:"service_areas"`
	Available      *bool            `json:"available"`
	CertificateRef *string          `json:"certificate_ref"`
	PermitRef      *string          `json:"permit_ref"`
	Vehicles       *[]model.Vehicle `json:"vehicles"`
}

// UpdateTrucker handles PUT /api/profile/trucker.
func (h *ProfileHandler) UpdateTrucker(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req truckerUpdateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	err = h.Profiles.UpdateTrucker(ctx, uid, repository.TruckerUpdate{
		Address:        req.Address,
		City:           req.City,
		State:          req.State,
		Zip:            req.Zip,
		LicenseNumber:  req.LicenseNumber,
		LicenseClass:   req.LicenseClass,
		TruckType:      req.TruckType,
		ServiceAreas:   req.ServiceAreas,
		Available:      req.Available,
		CertificateRef: req.CertificateRef,
		PermitRef:      req.PermitRef,
		Vehicles:       req.Vehicles,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "profile not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update profile failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "profile updated"})
}

type brokerUpdateReq struct {
	CompanyName     *string `json:"company_name"`
	CompanyAddress  *string `json:"company_address"`
	CompanyCity     *string `json:"company_city"`
	CompanyState    *string `json:"company_state"`
	CompanyZip      *string `json:"company_zip"`
	BusinessType    *string `json:"business_type"`
	TaxID           *string `json:"tax_id"`
	RegistrationRef *string `json:"registration_ref"`
	PermitRef       *string `json:"permit_ref"`
	ContactName     *string `json:"contact_name"`
	ContactPosition *string `json:"contact_position"`
}

// UpdateBroker handles PUT /api/profile/broker.
func (h *ProfileHandler) UpdateBroker(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req brokerUpdateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	err = h.Profiles.UpdateBroker(ctx, uid, repository.BrokerUpdate{
		CompanyName:     req.CompanyName,
		CompanyAddress:  req.CompanyAddress,
		CompanyCity:     req.CompanyCity,
		CompanyState:    req.CompanyState,
		CompanyZip:      req.CompanyZip,
		BusinessType:    req.BusinessType,
		TaxID:           req.TaxID,
		RegistrationRef: req.RegistrationRef,
		PermitRef:       req.PermitRef,
		ContactName:     req.ContactName,
		ContactPosition: req.ContactPosition,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "profile not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update profile failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "profile updated"})
}

type truckerResp struct {
	UserID         uint64          `json:"user_id"`
	Address        string          `json:"address"`
	City           string          `json:"city"`
	State          string          `json:"state"`
	Zip            string          `json:"zip"`
	LicenseNumber  string          `json:"license_number"`
	LicenseClass   string          `json:"license_class"`
	TruckType      string          `json:"truck_type"`
	ServiceAreas   []string        `json:"service_areas"`
	Available      bool            `json:"available"`
	CertificateRef string          `json:"certificate_ref"`
	PermitRef      string          `json:"permit_ref"`
	Vehicles       []model.Vehicle `json:"vehicles"`
}

func toTruckerResp(p model.TruckerProfile) truckerResp {
	return truckerResp{
		UserID:         p.UserID,
		Address:        p.Address,
		City:           p.City,
		State:          p.State,
		Zip:            p.Zip,
		LicenseNumber:  p.LicenseNumber,
		LicenseClass:   p.LicenseClass,
		TruckType:      p.TruckType,
		ServiceAreas:   p.ServiceAreas,
		Available:      p.Available,
		CertificateRef: p.CertificateRef,
		PermitRef:      p.PermitRef,
		Vehicles:       p.Vehicles,
	}
}

type brokerResp struct {
	UserID          uint64 `json:"user_id"`
	CompanyName     string `json:"company_name"`
	CompanyAddress  string `json:"company_address"`
	CompanyCity     string `json:"company_city"`
	CompanyState    string `json:"company_state"`
	CompanyZip      string `json:"company_zip"`
	BusinessType    string `json:"business_type"`
	TaxID           string `json:"tax_id"`
	RegistrationRef string `json:"registration_ref"`
	PermitRef       string `json:"permit_ref"`
	ContactName     string `json:"contact_name"`
	ContactPosition string `json:"contact_position"`
}

func toBrokerResp(p model.BrokerProfile) brokerResp {
	return brokerResp{
		UserID:          p.UserID,
		CompanyName:     p.CompanyName,
		CompanyAddress:  p.CompanyAddress,
		CompanyCity:     p.CompanyCity,
		CompanyState:    p.CompanyState,
		CompanyZip:      p.CompanyZip,
		BusinessType:    p.BusinessType,
		TaxID:           p.TaxID,
		RegistrationRef: p.RegistrationRef,
		PermitRef:       p.PermitRef,
		ContactName:     p.ContactName,
		ContactPosition: p.ContactPosition,
	}
}
