package repositories

import (
	"context"

	"hrms-backend/internal/db"
	"hrms-backend/internal/models"

	"github.com/jackc/pgx/v5"
)

type EmployeeProfileRepository struct {
	DB db.Queryer
}

func NewEmployeeProfileRepository(conn db.Queryer) *EmployeeProfileRepository {
	return &EmployeeProfileRepository{DB: conn}
}

const profileColumns = `id, user_id, company_id, employee_code, first_name, last_name, phone, address,
	designation, department, date_of_joining, created_at, updated_at`

func scanProfile(row pgx.Row) (*models.EmployeeProfile, error) {
	var p models.EmployeeProfile
	err := row.Scan(&p.ID, &p.UserID, &p.CompanyID, &p.EmployeeCode, &p.FirstName, &p.LastName,
		&p.Phone, &p.Address, &p.Designation, &p.Department, &p.DateOfJoining, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, translatePgError(err)
	}
	return &p, nil
}

func (r *EmployeeProfileRepository) Create(ctx context.Context, p *models.EmployeeProfile) error {
	err := db.QueryerFromContext(ctx, r.DB).QueryRow(ctx,
		`INSERT INTO employee_profiles
		   (user_id, company_id, employee_code, first_name, last_name, phone, address, designation, department, date_of_joining)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING id, created_at, updated_at`,
		p.UserID, p.CompanyID, p.EmployeeCode, p.FirstName, p.LastName, p.Phone, p.Address,
		p.Designation, p.Department, p.DateOfJoining,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	return translatePgError(err)
}

func (r *EmployeeProfileRepository) Get(ctx context.Context, id int) (*models.EmployeeProfile, error) {
	row := db.QueryerFromContext(ctx, r.DB).QueryRow(ctx,
		`SELECT `+profileColumns+` FROM employee_profiles WHERE id = $1`, id)
	return scanProfile(row)
}

func (r *EmployeeProfileRepository) GetByUserID(ctx context.Context, userID int) (*models.EmployeeProfile, error) {
	row := db.QueryerFromContext(ctx, r.DB).QueryRow(ctx,
		`SELECT `+profileColumns+` FROM employee_profiles WHERE user_id = $1`, userID)
	return scanProfile(row)
}

func (r *EmployeeProfileRepository) List(ctx context.Context, skip, limit int) ([]*models.EmployeeProfile, error) {
	skip, limit = page(skip, limit)
	rows, err := db.QueryerFromContext(ctx, r.DB).Query(ctx,
		`SELECT `+profileColumns+` FROM employee_profiles ORDER BY id OFFSET $1 LIMIT $2`, skip, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	profiles := []*models.EmployeeProfile{}
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

func (r *EmployeeProfileRepository) Update(ctx context.Context, p *models.EmployeeProfile) error {
	err := db.QueryerFromContext(ctx, r.DB).QueryRow(ctx,
		`UPDATE employee_profiles
		    SET company_id = $1, employee_code = $2, first_name = $3, last_name = $4, phone = $5,
		        address = $6, designation = $7, department = $8, date_of_joining = $9,
		        updated_at = CURRENT_TIMESTAMP
		  WHERE id = $10
		 RETURNING updated_at`,
		p.CompanyID, p.EmployeeCode, p.FirstName, p.LastName, p.Phone, p.Address,
		p.Designation, p.Department, p.DateOfJoining, p.ID,
	).Scan(&p.UpdatedAt)
	return translatePgError(err)
}

func (r *EmployeeProfileRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := db.QueryerFromContext(ctx, r.DB).QueryRow(ctx, `SELECT COUNT(*) FROM employee_profiles`).Scan(&n)
	return n, err
}
