package repositories

import (
	"context"

	"hrms-backend/internal/db"
	"hrms-backend/internal/models"

	"github.com/jackc/pgx/v5"
)

type CompanyRepository struct {
	DB db.Queryer
}

func NewCompanyRepository(conn db.Queryer) *CompanyRepository {
	return &CompanyRepository{DB: conn}
}

func scanCompany(row pgx.Row) (*models.Company, error) {
	var c models.Company
	if err := row.Scan(&c.ID, &c.Name, &c.Logo, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, translatePgError(err)
	}
	return &c, nil
}

func (r *CompanyRepository) Create(ctx context.Context, name string, logo *string) (*models.Company, error) {
	row := db.QueryerFromContext(ctx, r.DB).QueryRow(ctx,
		`INSERT INTO companies (name, logo) VALUES ($1, $2)
		 RETURNING id, name, logo, created_at, updated_at`, name, logo)
	return scanCompany(row)
}

// Ensure returns the company with the given name, creating it when missing
func (r *CompanyRepository) Ensure(ctx context.Context, name string) (*models.Company, error) {
	row := db.QueryerFromContext(ctx, r.DB).QueryRow(ctx,
		`INSERT INTO companies (name) VALUES ($1)
		 ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		 RETURNING id, name, logo, created_at, updated_at`, name)
	return scanCompany(row)
}

func (r *CompanyRepository) Get(ctx context.Context, id int) (*models.Company, error) {
	row := db.QueryerFromContext(ctx, r.DB).QueryRow(ctx,
		`SELECT id, name, logo, created_at, updated_at FROM companies WHERE id = $1`, id)
	return scanCompany(row)
}

func (r *CompanyRepository) List(ctx context.Context) ([]*models.Company, error) {
	rows, err := db.QueryerFromContext(ctx, r.DB).Query(ctx,
		`SELECT id, name, logo, created_at, updated_at FROM companies ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	companies := []*models.Company{}
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, err
		}
		companies = append(companies, c)
	}
	return companies, rows.Err()
}
