package services

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"hrms-backend/internal/models"

	"github.com/jung-kurt/gofpdf/v2"
	"github.com/shopspring/decimal"
)

func money(d decimal.Decimal) string {
	return "Rs. " + d.StringFixed(2)
}

// RenderPayslipPDF lays out earnings and deductions side by side with the net
// figure underneath.
func RenderPayslipPDF(profile *models.EmployeeProfile, slip *models.SalaryPayroll, generated time.Time) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(190, 10, "Dayflow HRMS - Salary Slip", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(190, 6, fmt.Sprintf("Generated: %s", generated.Format("02-Jan-2006 03:04 PM")), "", 1, "C", false, 0, "")
	pdf.Ln(5)

	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Employee", "1", 1, "L", true, 0, "")
	pdf.SetFont("Arial", "", 11)
	name := strings.TrimSpace(profile.FirstName + " " + profile.LastName)
	pdf.CellFormat(95, 7, fmt.Sprintf("Name: %s", name), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Code: %s", profile.EmployeeCode), "RB", 1, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Designation: %s", profile.Designation), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Department: %s", profile.Department), "RB", 1, "L", false, 0, "")
	pdf.Ln(5)

	earnings := [][2]string{
		{"Basic Salary", money(slip.BasicSalary)},
		{"HRA", money(slip.HRA)},
		{"Standard Allowance", money(slip.StandardAllowance)},
		{"Performance Bonus", money(slip.PerformanceBonus)},
		{"LTA", money(slip.LTA)},
		{"Fixed Allowance", money(slip.FixedAllowance)},
	}
	deductions := [][2]string{
		{"Professional Tax", money(slip.ProfessionalTax)},
		{"PF Contribution", money(slip.PFContribution)},
	}

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(200, 200, 200)
	pdf.CellFormat(60, 7, "Earnings", "1", 0, "C", true, 0, "")
	pdf.CellFormat(35, 7, "Amount", "1", 0, "C", true, 0, "")
	pdf.CellFormat(60, 7, "Deductions", "1", 0, "C", true, 0, "")
	pdf.CellFormat(35, 7, "Amount", "1", 1, "C", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	for i := range earnings {
		pdf.CellFormat(60, 6, earnings[i][0], "1", 0, "L", false, 0, "")
		pdf.CellFormat(35, 6, earnings[i][1], "1", 0, "R", false, 0, "")
		if i < len(deductions) {
			pdf.CellFormat(60, 6, deductions[i][0], "1", 0, "L", false, 0, "")
			pdf.CellFormat(35, 6, deductions[i][1], "1", 1, "R", false, 0, "")
		} else {
			pdf.CellFormat(60, 6, "", "1", 0, "L", false, 0, "")
			pdf.CellFormat(35, 6, "", "1", 1, "R", false, 0, "")
		}
	}

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(60, 7, "Gross Salary", "1", 0, "L", false, 0, "")
	pdf.CellFormat(35, 7, money(slip.GrossSalary), "1", 0, "R", false, 0, "")
	pdf.CellFormat(60, 7, "Total Deductions", "1", 0, "L", false, 0, "")
	pdf.CellFormat(35, 7, money(slip.TotalDeductions), "1", 1, "R", false, 0, "")
	pdf.Ln(5)

	pdf.SetFillColor(200, 255, 200)
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(190, 10, fmt.Sprintf("Net Salary: %s", money(slip.NetSalary)), "1", 1, "C", true, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
