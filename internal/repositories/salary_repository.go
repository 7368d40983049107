package repositories

import (
	"context"

	"hrms-backend/internal/db"
	"hrms-backend/internal/models"

	"github.com/jackc/pgx/v5"
)

type SalaryRepository struct {
	DB db.Queryer
}

func NewSalaryRepository(conn db.Queryer) *SalaryRepository {
	return &SalaryRepository{DB: conn}
}

const salaryColumns = `id, employee_profile_id, basic_salary, hra, standard_allowance, performance_bonus, lta,
	fixed_allowance, professional_tax, pf_contribution, created_at, updated_at`

func scanSalary(row pgx.Row) (*models.SalaryStructure, error) {
	var s models.SalaryStructure
	err := row.Scan(&s.ID, &s.EmployeeProfileID, &s.BasicSalary, &s.HRA, &s.StandardAllowance,
		&s.PerformanceBonus, &s.LTA, &s.FixedAllowance, &s.ProfessionalTax, &s.PFContribution,
		&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, translatePgError(err)
	}
	return &s, nil
}

// Create inserts a structure. The unique employee_profile_id turns a duplicate into ErrConflict.
func (r *SalaryRepository) Create(ctx context.Context, s *models.SalaryStructure) (*models.SalaryStructure, error) {
	row := db.QueryerFromContext(ctx, r.DB).QueryRow(ctx,
		`INSERT INTO salary_structures
		   (employee_profile_id, basic_salary, hra, standard_allowance, performance_bonus, lta,
		    fixed_allowance, professional_tax, pf_contribution)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING `+salaryColumns,
		s.EmployeeProfileID, s.BasicSalary, s.HRA, s.StandardAllowance, s.PerformanceBonus, s.LTA,
		s.FixedAllowance, s.ProfessionalTax, s.PFContribution)
	return scanSalary(row)
}

func (r *SalaryRepository) Get(ctx context.Context, id int) (*models.SalaryStructure, error) {
	row := db.QueryerFromContext(ctx, r.DB).QueryRow(ctx,
		`SELECT `+salaryColumns+` FROM salary_structures WHERE id = $1`, id)
	return scanSalary(row)
}

func (r *SalaryRepository) GetByEmployee(ctx context.Context, profileID int) (*models.SalaryStructure, error) {
	row := db.QueryerFromContext(ctx, r.DB).QueryRow(ctx,
		`SELECT `+salaryColumns+` FROM salary_structures WHERE employee_profile_id = $1`, profileID)
	return scanSalary(row)
}

func (r *SalaryRepository) Update(ctx context.Context, s *models.SalaryStructure) (*models.SalaryStructure, error) {
	row := db.QueryerFromContext(ctx, r.DB).QueryRow(ctx,
		`UPDATE salary_structures
		    SET basic_salary = $1, hra = $2, standard_allowance = $3, performance_bonus = $4, lta = $5,
		        fixed_allowance = $6, professional_tax = $7, pf_contribution = $8, updated_at = CURRENT_TIMESTAMP
		  WHERE id = $9
		 RETURNING `+salaryColumns,
		s.BasicSalary, s.HRA, s.StandardAllowance, s.PerformanceBonus, s.LTA,
		s.FixedAllowance, s.ProfessionalTax, s.PFContribution, s.ID)
	return scanSalary(row)
}

func (r *SalaryRepository) List(ctx context.Context, skip, limit int) ([]*models.SalaryStructure, error) {
	skip, limit = page(skip, limit)
	rows, err := db.QueryerFromContext(ctx, r.DB).Query(ctx,
		`SELECT `+salaryColumns+` FROM salary_structures ORDER BY id OFFSET $1 LIMIT $2`, skip, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	structures := []*models.SalaryStructure{}
	for rows.Next() {
		s, err := scanSalary(rows)
		if err != nil {
			return nil, err
		}
		structures = append(structures, s)
	}
	return structures, rows.Err()
}
