package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"loadboard/internal/model"
)

// JobRepo persists broker-owned job postings.
type JobRepo struct{ DB *sql.DB }

func NewJobRepo(db *sql.DB) *JobRepo { return &JobRepo{DB: db} }

const jobColumns = `id, broker_id, title, description, origin_city, origin_state,
	destination_city, destination_state, distance, price, cargo_type, weight,
	load_type, pickup_date, company_name, status, created_at`

// Create inserts a posting. The caller stamps BrokerID from the session
// and Status is always forced to active here, regardless of input.
func (r *JobRepo) Create(ctx context.Context, j model.Job) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO jobs (broker_id, title, description, origin_city,
			origin_state, destination_city, destination_state, distance, price,
			cargo_type, weight, load_type, pickup_date, company_name, status)
		 VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		j.BrokerID, j.Title, j.Description, j.OriginCity, j.OriginState,
		j.DestinationCity, j.DestinationState, j.Distance, j.Price,
		j.CargoType, j.Weight, j.LoadType, j.PickupDate, j.CompanyName,
		string(model.JobStatusActive))
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByID fetches one posting.
func (r *JobRepo) GetByID(ctx context.Context, id uint64) (model.Job, error) {
	return scanJob(r.DB.QueryRowContext(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE id=? LIMIT 1`, id))
}

// JobFilter restricts the public listing. All matches are exact; empty
// fields do not filter. The listing itself is always status=active.
type JobFilter struct {
	OriginState      string
	DestinationState string
	LoadType         string
	CargoType        string
}

// ListActive returns active postings matching the filter, newest first.
func (r *JobRepo) ListActive(ctx context.Context, f JobFilter) ([]model.Job, error) {
	where := []string{"status=?"}
	args := []any{string(model.JobStatusActive)}
	if f.OriginState != "" {
		where = append(where, "origin_state=?")
		args = append(args, f.OriginState)
	}
	if f.DestinationState != "" {
		where = append(where, "destination_state=?")
		args = append(args, f.DestinationState)
	}
	if f.LoadType != "" {
		where = append(where, "load_type=?")
		args = append(args, f.LoadType)
	}
	if f.CargoType != "" {
		where = append(where, "cargo_type=?")
		args = append(args, f.CargoType)
	}
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE `+strings.Join(where, " AND ")+`
		 ORDER BY created_at DESC, id DESC`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectJobs(rows)
}

// ListByBroker returns every posting of one broker, newest first, in any
// status.
func (r *JobRepo) ListByBroker(ctx context.Context, brokerID uint64) ([]model.Job, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE broker_id=?
		 ORDER BY created_at DESC, id DESC`, brokerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectJobs(rows)
}

// JobUpdate carries a partial update of a posting. Ownership is checked
// here so a stale handler can never update someone else's job.
type JobUpdate struct {
	Title            *string
	Description      *string
	OriginCity       *string
	OriginState      *string
	DestinationCity  *string
	DestinationState *string
	Distance         *uint32
	Price            *uint64
	CargoType        *string
	Weight           *uint32
	LoadType         *string
	PickupDate       *time.Time
	CompanyName      *string
	Status           *model.JobStatus
}

// Update applies a partial merge, gated on ownership. Returns
// sql.ErrNoRows when the job does not exist and ErrForbidden when it is
// owned by a different broker.
func (r *JobRepo) Update(ctx context.Context, id, brokerID uint64, upd JobUpdate) error {
	var owner uint64
	err := r.DB.QueryRowContext(ctx,
		`SELECT broker_id FROM jobs WHERE id=? LIMIT 1`, id).Scan(&owner)
	if err != nil {
		return err
	}
	if owner != brokerID {
		return ErrForbidden
	}
	set := []string{}
	args := []any{}
	add := func(col string, v any) {
		set = append(set, col+"=?")
		args = append(args, v)
	}
	if upd.Title != nil {
		add("title", *upd.Title)
	}
	if upd.Description != nil {
		add("description", *upd.Description)
	}
	if upd.OriginCity != nil {
		add("origin_city", *upd.OriginCity)
	}
	if upd.OriginState != nil {
		add("origin_state", *upd.OriginState)
	}
	if upd.DestinationCity != nil {
		add("destination_city", *upd.DestinationCity)
	}
	if upd.DestinationState != nil {
		add("destination_state", *upd.DestinationState)
	}
	if upd.Distance != nil {
		add("distance", *upd.Distance)
	}
	if upd.Price != nil {
		add("price", *upd.Price)
	}
	if upd.CargoType != nil {
		add("cargo_type", *upd.CargoType)
	}
	if upd.Weight != nil {
		add("weight", *upd.Weight)
	}
	if upd.LoadType != nil {
		add("load_type", *upd.LoadType)
	}
	if upd.PickupDate != nil {
		add("pickup_date", *upd.PickupDate)
	}
	if upd.CompanyName != nil {
		add("company_name", *upd.CompanyName)
	}
	if upd.Status != nil {
		add("status", string(*upd.Status))
	}
	if len(set) == 0 {
		return nil
	}
	args = append(args, id)
	_, err = r.DB.ExecContext(ctx,
		`UPDATE jobs SET `+strings.Join(set, ", ")+` WHERE id=?`, args...)
	return err
}

func scanJob(row *sql.Row) (model.Job, error) {
	var (
		j        model.Job
		distance sql.NullInt64
		weight   sql.NullInt64
		status   string
	)
	err := row.Scan(&j.ID, &j.BrokerID, &j.Title, &j.Description,
		&j.OriginCity, &j.OriginState, &j.DestinationCity,
		&j.DestinationState, &distance, &j.Price, &j.CargoType, &weight,
		&j.LoadType, &j.PickupDate, &j.CompanyName, &status, &j.CreatedAt)
	if err != nil {
		return model.Job{}, err
	}
	j.Status = model.JobStatus(status)
	if distance.Valid {
		d := uint32(distance.Int64)
		j.Distance = &d
	}
	if weight.Valid {
		w := uint32(weight.Int64)
		j.Weight = &w
	}
	return j, nil
}

func collectJobs(rows *sql.Rows) ([]model.Job, error) {
	out := []model.Job{}
	for rows.Next() {
		var (
			j        model.Job
			distance sql.NullInt64
			weight   sql.NullInt64
			status   string
		)
		if err := rows.Scan(&j.ID, &j.BrokerID, &j.Title, &j.Description,
			&j.OriginCity, &j.OriginState, &j.DestinationCity,
			&j.DestinationState, &distance, &j.Price, &j.CargoType, &weight,
			&j.LoadType, &j.PickupDate, &j.CompanyName, &status,
			&j.CreatedAt); err != nil {
			return nil, err
		}
		j.Status = model.JobStatus(status)
		if distance.Valid {
			d := uint32(distance.Int64)
			j.Distance = &d
		}
		if weight.Valid {
			w := uint32(weight.Int64)
			j.Weight = &w
		}
		out = append(out, j)
	}
	return out, rows.Err()
}
