// Package payroll turns a salary structure into gross, deductions and net pay.
package payroll

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Components are the monthly amounts stored on a salary structure.
type Components struct {
	Basic             decimal.Decimal
	HRA               decimal.Decimal
	StandardAllowance decimal.Decimal
	PerformanceBonus  decimal.Decimal
	LTA               decimal.Decimal
	FixedAllowance    decimal.Decimal
	ProfessionalTax   decimal.Decimal
	PFContribution    decimal.Decimal
}

// Breakdown is the computed result for one structure.
type Breakdown struct {
	Gross           decimal.Decimal `json:"gross_salary"`
	TotalDeductions decimal.Decimal `json:"total_deductions"`
	Net             decimal.Decimal `json:"net_salary"`
}

// Calculate sums earnings and deductions exactly. It never fails.
func Calculate(c Components) Breakdown {
	gross := decimal.Sum(c.Basic, c.HRA, c.StandardAllowance, c.PerformanceBonus, c.LTA, c.FixedAllowance)
	deductions := c.ProfessionalTax.Add(c.PFContribution)
	return Breakdown{
		Gross:           gross,
		TotalDeductions: deductions,
		Net:             gross.Sub(deductions),
	}
}

// Validate rejects negative components.
func (c Components) Validate() error {
	fields := []struct {
		name  string
		value decimal.Decimal
	}{
		{"basic_salary", c.Basic},
		{"hra", c.HRA},
		{"standard_allowance", c.StandardAllowance},
		{"performance_bonus", c.PerformanceBonus},
		{"lta", c.LTA},
		{"fixed_allowance", c.FixedAllowance},
		{"professional_tax", c.ProfessionalTax},
		{"pf_contribution", c.PFContribution},
	}
	for _, f := range fields {
		if f.value.IsNegative() {
			return fmt.Errorf("%s must not be negative", f.name)
		}
	}
	return nil
}
