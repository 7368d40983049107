package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type SalaryStructure struct {
	ID                int             `json:"id"`
	EmployeeProfileID int             `json:"employee_profile_id"`
	BasicSalary       decimal.Decimal `json:"basic_salary"`
	HRA               decimal.Decimal `json:"hra"`
	StandardAllowance decimal.Decimal `json:"standard_allowance"`
	PerformanceBonus  decimal.Decimal `json:"performance_bonus"`
	LTA               decimal.Decimal `json:"lta"`
	FixedAllowance    decimal.Decimal `json:"fixed_allowance"`
	ProfessionalTax   decimal.Decimal `json:"professional_tax"`
	PFContribution    decimal.Decimal `json:"pf_contribution"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// SalaryPayroll is a structure plus its computed figures
type SalaryPayroll struct {
	SalaryStructure
	GrossSalary     decimal.Decimal `json:"gross_salary"`
	TotalDeductions decimal.Decimal `json:"total_deductions"`
	NetSalary       decimal.Decimal `json:"net_salary"`
}

type CreateSalaryStructureRequest struct {
	EmployeeProfileID int             `json:"employee_profile_id"`
	BasicSalary       decimal.Decimal `json:"basic_salary"`
	HRA               decimal.Decimal `json:"hra"`
	StandardAllowance decimal.Decimal `json:"standard_allowance"`
	PerformanceBonus  decimal.Decimal `json:"performance_bonus"`
	LTA               decimal.Decimal `json:"lta"`
	FixedAllowance    decimal.Decimal `json:"fixed_allowance"`
	ProfessionalTax   decimal.Decimal `json:"professional_tax"`
	PFContribution    decimal.Decimal `json:"pf_contribution"`
}

// UpdateSalaryStructureRequest is a partial update
type UpdateSalaryStructureRequest struct {
	BasicSalary       *decimal.Decimal `json:"basic_salary"`
	HRA               *decimal.Decimal `json:"hra"`
	StandardAllowance *decimal.Decimal `json:"standard_allowance"`
	PerformanceBonus  *decimal.Decimal `json:"performance_bonus"`
	LTA               *decimal.Decimal `json:"lta"`
	FixedAllowance    *decimal.Decimal `json:"fixed_allowance"`
	ProfessionalTax   *decimal.Decimal `json:"professional_tax"`
	PFContribution    *decimal.Decimal `json:"pf_contribution"`
}

// PayslipArchive describes an uploaded payslip document
type PayslipArchive struct {
	EmployeeProfileID int       `json:"employee_profile_id"`
	Bucket            string    `json:"bucket"`
	Key               string    `json:"key"`
	ArchivedAt        time.Time `json:"archived_at"`
}
