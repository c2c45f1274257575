package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"loadboard/internal/model"
)

// UserRepo persists user identities, credentials and lifecycle state.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

const userColumns = `id, username, credential, email, first_name, last_name, phone,
	user_type, status, verification_token, token_expiry, verification_notes,
	created_at, updated_at`

func scanUser(row *sql.Row) (model.User, error) {
	var (
		u       model.User
		token   sql.NullString
		expiry  sql.NullTime
		notes   sql.NullString
		utype   string
		ustatus string
	)
	err := row.Scan(&u.ID, &u.Username, &u.Credential, &u.Email, &u.FirstName,
		&u.LastName, &u.Phone, &utype, &ustatus, &token, &expiry, &notes,
		&u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return model.User{}, err
	}
	u.UserType = model.UserType(utype)
	u.Status = model.Status(ustatus)
	if token.Valid {
		u.VerificationToken = &token.String
	}
	if expiry.Valid {
		t := expiry.Time
		u.TokenExpiry = &t
	}
	if notes.Valid {
		u.VerificationNotes = &notes.String
	}
	return u, nil
}

// Create inserts a new user and returns its id. Username and email unique
// keys surface as ErrUsernameExists / ErrEmailExists.
func (r *UserRepo) Create(ctx context.Context, u model.User) (uint64, error) {
	u.Username = strings.TrimSpace(u.Username)
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO users (username, credential, email, first_name, last_name,
			phone, user_type, status, verification_token, token_expiry)
		 VALUES (?,?,?,?,?,?,?,?,?,?)`,
		u.Username, u.Credential, u.Email, u.FirstName, u.LastName, u.Phone,
		string(u.UserType), string(u.Status), u.VerificationToken, u.TokenExpiry)
	if err != nil {
		if isDuplicateKey(err) {
			if strings.Contains(err.Error(), "uq_users_email") {
				return 0, ErrEmailExists
			}
			return 0, ErrUsernameExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	return scanUser(r.DB.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id=? LIMIT 1`, id))
}

// GetByUsername fetches a user by exact username.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (model.User, error) {
	return scanUser(r.DB.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE username=? LIMIT 1`,
		strings.TrimSpace(username)))
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	return scanUser(r.DB.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email=? LIMIT 1`,
		strings.ToLower(strings.TrimSpace(email))))
}

// GetByVerificationToken resolves a user by an outstanding token. Consumed
// tokens are nulled, so a second lookup with the same value finds nothing.
func (r *UserRepo) GetByVerificationToken(ctx context.Context, token string) (model.User, error) {
	return scanUser(r.DB.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE verification_token=? LIMIT 1`, token))
}

// SetStatus performs a lifecycle transition, optionally replacing the
// verification token. Passing a nil token clears the token and expiry.
func (r *UserRepo) SetStatus(ctx context.Context, id uint64, status model.Status, token *string, expiry *time.Time) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE users SET status=?, verification_token=?, token_expiry=? WHERE id=?`,
		string(status), token, expiry, id)
	return err
}

// SetVerificationNotes records the human-readable reason attached to an
// admin decision.
func (r *UserRepo) SetVerificationNotes(ctx context.Context, id uint64, notes string) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE users SET verification_notes=? WHERE id=?`, notes, id)
	return err
}

// UserUpdate carries a partial update of mutable identity fields. Nil
// pointers leave the column unchanged.
type UserUpdate struct {
	FirstName *string
	LastName  *string
	Phone     *string
	Email     *string
}

// Update applies a partial merge onto the user row.
func (r *UserRepo) Update(ctx context.Context, id uint64, upd UserUpdate) error {
	set := []string{}
	args := []any{}
	if upd.FirstName != nil {
		set = append(set, "first_name=?")
		args = append(args, *upd.FirstName)
	}
	if upd.LastName != nil {
		set = append(set, "last_name=?")
		args = append(args, *upd.LastName)
	}
	if upd.Phone != nil {
		set = append(set, "phone=?")
		args = append(args, *upd.Phone)
	}
	if upd.Email != nil {
		set = append(set, "email=?")
		args = append(args, strings.ToLower(strings.TrimSpace(*upd.Email)))
	}
	if len(set) == 0 {
		return nil
	}
	args = append(args, id)
	_, err := r.DB.ExecContext(ctx,
		`UPDATE users SET `+strings.Join(set, ", ")+` WHERE id=?`, args...)
	if isDuplicateKey(err) {
		return ErrEmailExists
	}
	return err
}

// ListByStatusAndType returns users of one role in one lifecycle state,
// newest first. Used by the admin review queues.
func (r *UserRepo) ListByStatusAndType(ctx context.Context, status model.Status, utype model.UserType) ([]model.User, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE status=? AND user_type=?
		 ORDER BY created_at DESC, id DESC`,
		string(status), string(utype))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectUsers(rows)
}

// ListAll returns every user, newest first.
func (r *UserRepo) ListAll(ctx context.Context) ([]model.User, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectUsers(rows)
}

func collectUsers(rows *sql.Rows) ([]model.User, error) {
	out := []model.User{}
	for rows.Next() {
		var (
			u       model.User
			token   sql.NullString
			expiry  sql.NullTime
			notes   sql.NullString
			utype   string
			ustatus string
		)
		if err := rows.Scan(&u.ID, &u.Username, &u.Credential, &u.Email,
			&u.FirstName, &u.LastName, &u.Phone, &utype, &ustatus, &token,
			&expiry, &notes, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		u.UserType = model.UserType(utype)
		u.Status = model.Status(ustatus)
		if token.Valid {
			u.VerificationToken = &token.String
		}
		if expiry.Valid {
			t := expiry.Time
			u.TokenExpiry = &t
		}
		if notes.Valid {
			u.VerificationNotes = &notes.String
		}
		out = append(out, u)
	}
	return out, rows.Err()
}
