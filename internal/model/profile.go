package model

import "time"

// Vehicle is one truck in a trucker's fleet, embedded in the trucker
// profile as a JSON column.
type Vehicle struct {
	Type           string `json:"type"`
	Make           string `json:"make"`
	PlateNumber    string `json:"plate_number"`
	WeightCapacity uint32 `json:"weight_capacity"`
	DocumentRef    string `json:"document_ref,omitempty"`
}

// TruckerProfile is the 1:1 role detail record for a trucker account,
// created once at registration. Document fields hold opaque filenames;
// upload mechanics live elsewhere.
type TruckerProfile struct {
	UserID         uint64
	Address        string
	City           string
	State          string
	Zip            string
	LicenseNumber  string
	LicenseClass   string
	TruckType      string
	ServiceAreas   []string
	Available      bool
	CertificateRef string
	PermitRef      string
	Vehicles       []Vehicle
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// BrokerProfile is the 1:1 role detail record for a broker account.
type BrokerProfile struct {
	UserID          uint64
	CompanyName     string
	CompanyAddress  string
	CompanyCity     string
	CompanyState    string
	CompanyZip      string
	BusinessType    string
	TaxID           string
	RegistrationRef string
	PermitRef       string
	ContactName     string
	ContactPosition string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
