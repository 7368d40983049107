package repositories

import (
	"context"

	"hrms-backend/internal/db"
	"hrms-backend/internal/models"

	"github.com/jackc/pgx/v5"
)

type UserRepository struct {
	DB db.Queryer
}

func NewUserRepository(conn db.Queryer) *UserRepository {
	return &UserRepository{DB: conn}
}

const userColumns = `id, email, hashed_password, role, is_active, totp_secret, totp_enabled, created_at, updated_at`

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.IsActive,
		&u.TOTPSecret, &u.TOTPEnabled, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, translatePgError(err)
	}
	return &u, nil
}

func (r *UserRepository) Create(ctx context.Context, u *models.User) error {
	if u.Role == "" {
		u.Role = models.RoleEmployee
	}
	err := db.QueryerFromContext(ctx, r.DB).QueryRow(ctx,
		`INSERT INTO users (email, hashed_password, role, is_active)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, updated_at`,
		u.Email, u.PasswordHash, u.Role, u.IsActive,
	).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	return translatePgError(err)
}

func (r *UserRepository) Get(ctx context.Context, id int) (*models.User, error) {
	row := db.QueryerFromContext(ctx, r.DB).QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	row := db.QueryerFromContext(ctx, r.DB).QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

// List returns users ordered by id
func (r *UserRepository) List(ctx context.Context, skip, limit int) ([]*models.User, error) {
	skip, limit = page(skip, limit)
	rows, err := db.QueryerFromContext(ctx, r.DB).Query(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY id OFFSET $1 LIMIT $2`, skip, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []*models.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// Update writes every mutable account field
func (r *UserRepository) Update(ctx context.Context, u *models.User) error {
	err := db.QueryerFromContext(ctx, r.DB).QueryRow(ctx,
		`UPDATE users
		    SET email = $1, hashed_password = $2, role = $3, is_active = $4, updated_at = CURRENT_TIMESTAMP
		  WHERE id = $5
		 RETURNING updated_at`,
		u.Email, u.PasswordHash, u.Role, u.IsActive, u.ID,
	).Scan(&u.UpdatedAt)
	return translatePgError(err)
}

// Delete removes a user. Profile, settings and owned rows cascade.
func (r *UserRepository) Delete(ctx context.Context, id int) error {
	tag, err := db.QueryerFromContext(ctx, r.DB).Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return translatePgError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *UserRepository) CountActive(ctx context.Context) (int, error) {
	var n int
	err := db.QueryerFromContext(ctx, r.DB).QueryRow(ctx,
		`SELECT COUNT(*) FROM users WHERE is_active = TRUE`).Scan(&n)
	return n, err
}

// SetTOTPSecret stores a new secret during setup, before it is verified
func (r *UserRepository) SetTOTPSecret(ctx context.Context, userID int, secret string) error {
	return r.exec(ctx,
		`UPDATE users SET totp_secret = $1, totp_enabled = FALSE, updated_at = CURRENT_TIMESTAMP WHERE id = $2`,
		secret, userID)
}

func (r *UserRepository) EnableTOTP(ctx context.Context, userID int) error {
	return r.exec(ctx,
		`UPDATE users SET totp_enabled = TRUE, updated_at = CURRENT_TIMESTAMP WHERE id = $1`, userID)
}

func (r *UserRepository) DisableTOTP(ctx context.Context, userID int) error {
	return r.exec(ctx,
		`UPDATE users SET totp_enabled = FALSE, totp_secret = '', updated_at = CURRENT_TIMESTAMP WHERE id = $1`, userID)
}

func (r *UserRepository) exec(ctx context.Context, sql string, args ...any) error {
	tag, err := db.QueryerFromContext(ctx, r.DB).Exec(ctx, sql, args...)
	if err != nil {
		return translatePgError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
