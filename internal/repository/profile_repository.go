package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"

	"loadboard/internal/model"
)

// ProfileRepo persists the 1:1 role detail records. A profile row is
// created exactly once, at registration time; updates are partial merges
// and never upsert.
type ProfileRepo struct{ DB *sql.DB }

func NewProfileRepo(db *sql.DB) *ProfileRepo { return &ProfileRepo{DB: db} }

// CreateTrucker inserts the trucker profile row for a freshly registered
// user. Service areas and vehicles are serialized into JSON columns.
func (r *ProfileRepo) CreateTrucker(ctx context.Context, p model.TruckerProfile) error {
	areas, err := json.Marshal(p.ServiceAreas)
	if err != nil {
		return err
	}
	vehicles, err := json.Marshal(p.Vehicles)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx,
		`INSERT INTO trucker_profiles (user_id, address, city, state, zip,
			license_number, license_class, truck_type, service_areas, available,
			certificate_ref, permit_ref, vehicles)
		 VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		p.UserID, p.Address, p.City, p.State, p.Zip, p.LicenseNumber,
		p.LicenseClass, p.TruckType, areas, p.Available, p.CertificateRef,
		p.PermitRef, vehicles)
	if isDuplicateKey(err) {
		return ErrConflict
	}
	return err
}

// CreateBroker inserts the broker profile row.
func (r *ProfileRepo) CreateBroker(ctx context.Context, p model.BrokerProfile) error {
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO broker_profiles (user_id, company_name, company_address,
			company_city, company_state, company_zip, business_type, tax_id,
			registration_ref, permit_ref, contact_name, contact_position)
		 VALUES (?,?,?,?,?,?,?,?,?,?,?,?)`,
		p.UserID, p.CompanyName, p.CompanyAddress, p.CompanyCity,
		p.CompanyState, p.CompanyZip, p.BusinessType, p.TaxID,
		p.RegistrationRef, p.PermitRef, p.ContactName, p.ContactPosition)
	if isDuplicateKey(err) {
		return ErrConflict
	}
	return err
}

// GetTrucker fetches a trucker profile by user id.
func (r *ProfileRepo) GetTrucker(ctx context.Context, userID uint64) (model.TruckerProfile, error) {
	var (
		p        model.TruckerProfile
		areas    sql.NullString
		vehicles sql.NullString
	)
	err := r.DB.QueryRowContext(ctx,
		`SELECT user_id, address, city, state, zip, license_number,
			license_class, truck_type, service_areas, available,
			certificate_ref, permit_ref, vehicles, created_at, updated_at
		 FROM trucker_profiles WHERE user_id=? LIMIT 1`, userID).
		Scan(&p.UserID, &p.Address, &p.City, &p.State, &p.Zip,
			&p.LicenseNumber, &p.LicenseClass, &p.TruckType, &areas,
			&p.Available, &p.CertificateRef, &p.PermitRef, &vehicles,
			&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return model.TruckerProfile{}, err
	}
	if areas.Valid && areas.String != "" {
		if err := json.Unmarshal([]byte(areas.String), &p.ServiceAreas); err != nil {
			return model.TruckerProfile{}, err
		}
	}
	if vehicles.Valid && vehicles.String != "" {
		if err := json.Unmarshal([]byte(vehicles.String), &p.Vehicles); err != nil {
			return model.TruckerProfile{}, err
		}
	}
	return p, nil
}

// GetBroker fetches a broker profile by user id.
func (r *ProfileRepo) GetBroker(ctx context.Context, userID uint64) (model.BrokerProfile, error) {
	var p model.BrokerProfile
	err := r.DB.QueryRowContext(ctx,
		`SELECT user_id, company_name, company_address, company_city,
			company_state, company_zip, business_type, tax_id,
			registration_ref, permit_ref, contact_name, contact_position,
			created_at, updated_at
		 FROM broker_profiles WHERE user_id=? LIMIT 1`, userID).
		Scan(&p.UserID, &p.CompanyName, &p.CompanyAddress, &p.CompanyCity,
			&p.CompanyState, &p.CompanyZip, &p.BusinessType, &p.TaxID,
			&p.RegistrationRef, &p.PermitRef, &p.ContactName,
			&p.ContactPosition, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

// TruckerUpdate carries a partial update of the trucker profile. Nil
// pointers leave the column unchanged.
type TruckerUpdate struct {
	Address        *string
	City           *string
	State          *string
	Zip            *string
	LicenseNumber  *string
	LicenseClass   *string
	TruckType      *string
	ServiceAreas   *[]string
	Available      *bool
	CertificateRef *string
	PermitRef      *string
	Vehicles       *[]model.Vehicle
}

// UpdateTrucker applies a partial merge. It reports sql.ErrNoRows when no
// profile exists for the user; it never creates one.
func (r *ProfileRepo) UpdateTrucker(ctx context.Context, userID uint64, upd TruckerUpdate) error {
	if err := r.requireRow(ctx, "trucker_profiles", userID); err != nil {
		return err
	}
	set := []string{}
	args := []any{}
	add := func(col string, v any) {
		set = append(set, col+"=?")
		args = append(args, v)
	}
	if upd.Address != nil {
		add("address", *upd.Address)
	}
	if upd.City != nil {
		add("city", *upd.City)
	}
	if upd.State != nil {
		add("state", *upd.State)
	}
	if upd.Zip != nil {
		add("zip", *upd.Zip)
	}
	if upd.LicenseNumber != nil {
		add("license_number", *upd.LicenseNumber)
	}
	if upd.LicenseClass != nil {
		add("license_class", *upd.LicenseClass)
	}
	if upd.TruckType != nil {
		add("truck_type", *upd.TruckType)
	}
	if upd.ServiceAreas != nil {
		b, err := json.Marshal(*upd.ServiceAreas)
		if err != nil {
			return err
		}
		add("service_areas", b)
	}
	if upd.Available != nil {
		add("available", *upd.Available)
	}
	if upd.CertificateRef != nil {
		add("certificate_ref", *upd.CertificateRef)
	}
	if upd.PermitRef != nil {
		add("permit_ref", *upd.PermitRef)
	}
	if upd.Vehicles != nil {
		b, err := json.Marshal(*upd.Vehicles)
		if err != nil {
			return err
		}
		add("vehicles", b)
	}
	if len(set) == 0 {
		return nil
	}
	args = append(args, userID)
	_, err := r.DB.ExecContext(ctx,
		`UPDATE trucker_profiles SET `+strings.Join(set, ", ")+` WHERE user_id=?`,
		args...)
	return err
}

// BrokerUpdate carries a partial update of the broker profile.
type BrokerUpdate struct {
	CompanyName     *string
	CompanyAddress  *string
	CompanyCity     *string
	CompanyState    *string
	CompanyZip      *string
	BusinessType    *string
	TaxID           *string
	RegistrationRef *string
	PermitRef       *string
	ContactName     *string
	ContactPosition *string
}

// UpdateBroker applies a partial merge over an existing broker profile.
func (r *ProfileRepo) UpdateBroker(ctx context.Context, userID uint64, upd BrokerUpdate) error {
	if err := r.requireRow(ctx, "broker_profiles", userID); err != nil {
		return err
	}
	set := []string{}
	args := []any{}
	add := func(col string, v any) {
		set = append(set, col+"=?")
		args = append(args, v)
	}
	if upd.CompanyName != nil {
		add("company_name", *upd.CompanyName)
	}
	if upd.CompanyAddress != nil {
		add("company_address", *upd.CompanyAddress)
	}
	if upd.CompanyCity != nil {
		add("company_city", *upd.CompanyCity)
	}
	if upd.CompanyState != nil {
		add("company_state", *upd.CompanyState)
	}
	if upd.CompanyZip != nil {
		add("company_zip", *upd.CompanyZip)
	}
	if upd.BusinessType != nil {
		add("business_type", *upd.BusinessType)
	}
	if upd.TaxID != nil {
		add("tax_id", *upd.TaxID)
	}
	if upd.RegistrationRef != nil {
		add("registration_ref", *upd.RegistrationRef)
	}
	if upd.PermitRef != nil {
		add("permit_ref", *upd.PermitRef)
	}
	if upd.ContactName != nil {
		add("contact_name", *upd.ContactName)
	}
	if upd.ContactPosition != nil {
		add("contact_position", *upd.ContactPosition)
	}
	if len(set) == 0 {
		return nil
	}
	args = append(args, userID)
	_, err := r.DB.ExecContext(ctx,
		`UPDATE broker_profiles SET `+strings.Join(set, ", ")+` WHERE user_id=?`,
		args...)
	return err
}

func (r *ProfileRepo) requireRow(ctx context.Context, table string, userID uint64) error {
	var one int
	return r.DB.QueryRowContext(ctx,
		`SELECT 1 FROM `+table+` WHERE user_id=? LIMIT 1`, userID).Scan(&one)
}
