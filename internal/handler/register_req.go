package handler

import (
	"strings"

	"loadboard/internal/model"
)

// registerReq is the untyped registration boundary. The role decides which
// of the two profile payloads must be present; anything that does not
// match its declared shape is rejected with field-level errors before any
// business logic runs.
type registerReq struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	UserType  string `json:"user_type"`

	TruckerProfile *truckerProfileReq `json:"trucker_profile,omitempty"`
	BrokerProfile  *brokerProfileReq  `json:"broker_profile,omitempty"`
}

type truckerProfileReq struct {
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

type brokerProfileReq struct {
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

const minPasswordLen = 8

// validate normalizes the request in place and returns field-level errors.
// An empty map means the request is acceptable.
func (r *registerReq) validate() map[string]string {
	fields := map[string]string{}

	r.Username = strings.TrimSpace(r.Username)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.UserType = strings.ToLower(strings.TrimSpace(r.UserType))

	if r.Username == "" {
		fields["username"] = "required"
	} else if strings.Contains(r.Username, "@") {
		// '@' is reserved so the login identifier can double as an email.
		fields["username"] = "must not contain '@'"
	}
	if len(r.Password) < minPasswordLen {
		fields["password"] = "must be at least 8 characters"
	}
	if r.Email == "" || !strings.Contains(r.Email, "@") {
		fields["email"] = "valid email required"
	}
	if r.FirstName == "" {
		fields["first_name"] = "required"
	}
	if r.LastName == "" {
		fields["last_name"] = "required"
	}

	if !model.ValidRegistrationType(model.UserType(r.UserType)) {
		fields["user_type"] = "must be trucker or broker"
		return fields
	}

	switch model.UserType(r.UserType) {
	case model.UserTypeTrucker:
		if r.BrokerProfile != nil {
			fields["broker_profile"] = "not allowed for trucker registration"
		}
		if r.TruckerProfile == nil {
			fields["trucker_profile"] = "required"
		}
	case model.UserTypeBroker:
		if r.TruckerProfile != nil {
			fields["trucker_profile"] = "not allowed for broker registration"
		}
		if r.BrokerProfile == nil {
			fields["broker_profile"] = "required"
		} else {
			p := r.BrokerProfile
			if p.CompanyName == "" {
				fields["broker_profile.company_name"] = "required"
			}
			if p.CompanyAddress == "" {
				fields["broker_profile.company_address"] = "required"
			}
			if p.CompanyCity == "" {
				fields["broker_profile.company_city"] = "required"
			}
			if p.CompanyState == "" {
				fields["broker_profile.company_state"] = "required"
			}
			if p.CompanyZip == "" {
				fields["broker_profile.company_zip"] = "required"
			}
		}
	}
	return fields
}

func (r *registerReq) truckerProfile(userID uint64) model.TruckerProfile {
	p := r.TruckerProfile
	return model.TruckerProfile{
		UserID:         userID,
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

func (r *registerReq) brokerProfile(userID uint64) model.BrokerProfile {
	p := r.BrokerProfile
	return model.BrokerProfile{
		UserID:          userID,
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
