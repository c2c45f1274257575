package repository

import (
	"context"
	"database/sql"
	"time"

	"loadboard/internal/model"
)

// BookingRepo persists trucker applications against jobs.
type BookingRepo struct{ DB *sql.DB }

func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{DB: db} }

// Create inserts a pending application. The (job_id, trucker_id) unique
// key makes the duplicate check authoritative even under concurrent
// requests; an application-level existence check alone would race.
func (r *BookingRepo) Create(ctx context.Context, jobID, truckerID uint64) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO bookings (job_id, trucker_id, status) VALUES (?,?,?)`,
		jobID, truckerID, string(model.BookingStatusPending))
	if err != nil {
		if isDuplicateKey(err) {
			return 0, ErrDuplicateBooking
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// Exists reports whether the trucker already applied to the job.
func (r *BookingRepo) Exists(ctx context.Context, jobID, truckerID uint64) (bool, error) {
	var one int
	err := r.DB.QueryRowContext(ctx,
		`SELECT 1 FROM bookings WHERE job_id=? AND trucker_id=? LIMIT 1`,
		jobID, truckerID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// GetByID fetches one booking.
func (r *BookingRepo) GetByID(ctx context.Context, id uint64) (model.Booking, error) {
	var (
		b      model.Booking
		status string
	)
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, job_id, trucker_id, status, created_at
		 FROM bookings WHERE id=? LIMIT 1`, id).
		Scan(&b.ID, &b.JobID, &b.TruckerID, &status, &b.CreatedAt)
	if err != nil {
		return model.Booking{}, err
	}
	b.Status = model.BookingStatus(status)
	return b, nil
}

// BookingDetail is a booking joined with its job for listings.
type BookingDetail struct {
	ID               uint64    `json:"id"`
	JobID            uint64    `json:"job_id"`
	TruckerID        uint64    `json:"trucker_id"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
	JobTitle         string    `json:"job_title"`
	OriginCity       string    `json:"origin_city"`
	OriginState      string    `json:"origin_state"`
	DestinationCity  string    `json:"destination_city"`
	DestinationState string    `json:"destination_state"`
	Price            uint64    `json:"price"`
	PickupDate       time.Time `json:"pickup_date"`
	TruckerName      string    `json:"trucker_name,omitempty"`
}

// ListByTrucker returns the trucker's applications with job context,
// newest first.
func (r *BookingRepo) ListByTrucker(ctx context.Context, truckerID uint64) ([]BookingDetail, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT b.id, b.job_id, b.trucker_id, b.status, b.created_at,
			j.title, j.origin_city, j.origin_state, j.destination_city,
			j.destination_state, j.price, j.pickup_date
		 FROM bookings b JOIN jobs j ON j.id = b.job_id
		 WHERE b.trucker_id=?
		 ORDER BY b.created_at DESC, b.id DESC`, truckerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []BookingDetail{}
	for rows.Next() {
		var d BookingDetail
		if err := rows.Scan(&d.ID, &d.JobID, &d.TruckerID, &d.Status,
			&d.CreatedAt, &d.JobTitle, &d.OriginCity, &d.OriginState,
			&d.DestinationCity, &d.DestinationState, &d.Price,
			&d.PickupDate); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// ListByJob returns all applications to one job with the applicant's
// display name, newest first. The handler verifies job ownership first.
func (r *BookingRepo) ListByJob(ctx context.Context, jobID uint64) ([]BookingDetail, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT b.id, b.job_id, b.trucker_id, b.status, b.created_at,
			j.title, j.origin_city, j.origin_state, j.destination_city,
			j.destination_state, j.price, j.pickup_date,
			IF(u.first_name='', u.username, TRIM(CONCAT(u.first_name, ' ', u.last_name)))
		 FROM bookings b
		 JOIN jobs j ON j.id = b.job_id
		 JOIN users u ON u.id = b.trucker_id
		 WHERE b.job_id=?
		 ORDER BY b.created_at DESC, b.id DESC`, jobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []BookingDetail{}
	for rows.Next() {
		var d BookingDetail
		if err := rows.Scan(&d.ID, &d.JobID, &d.TruckerID, &d.Status,
			&d.CreatedAt, &d.JobTitle, &d.OriginCity, &d.OriginState,
			&d.DestinationCity, &d.DestinationState, &d.Price, &d.PickupDate,
			&d.TruckerName); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// SetStatus transitions a booking. The role matrix is enforced by the
// handler through model.CanTransitionBooking before this runs.
func (r *BookingRepo) SetStatus(ctx context.Context, id uint64, status model.BookingStatus) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE bookings SET status=? WHERE id=?`, string(status), id)
	return err
}
