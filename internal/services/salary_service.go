package services

import (
	"context"
	"errors"
	"fmt"

	"hrms-backend/internal/auth"
	"hrms-backend/internal/models"
	"hrms-backend/internal/payroll"
	"hrms-backend/internal/repositories"
	"hrms-backend/internal/timeutil"

	"github.com/shopspring/decimal"
)

const (
	msgSalaryNotFound         = "Salary structure not found"
	msgSalaryNotFoundEmployee = "Salary structure not found for this employee"
	msgSalaryExists           = "Salary structure already exists for this employee. Use PUT to update."
)

// ErrPayslipStorageDisabled is returned by Archive when no bucket is configured.
var ErrPayslipStorageDisabled = errors.New("payslip storage is not configured")

type SalaryService struct {
	Profiles ProfileStore
	Salaries SalaryStore
	Uploader PayslipUploader
	Activity *ActivityService
	Now      Clock
}

// NewSalaryService wires the service. uploader may be nil.
func NewSalaryService(profiles ProfileStore, salaries SalaryStore, uploader PayslipUploader, activity *ActivityService) *SalaryService {
	return &SalaryService{Profiles: profiles, Salaries: salaries, Uploader: uploader, Activity: activity, Now: timeutil.Now}
}

func components(s *models.SalaryStructure) payroll.Components {
	return payroll.Components{
		Basic:             s.BasicSalary,
		HRA:               s.HRA,
		StandardAllowance: s.StandardAllowance,
		PerformanceBonus:  s.PerformanceBonus,
		LTA:               s.LTA,
		FixedAllowance:    s.FixedAllowance,
		ProfessionalTax:   s.ProfessionalTax,
		PFContribution:    s.PFContribution,
	}
}

// withPayroll attaches the computed gross, deductions and net figures
func withPayroll(s *models.SalaryStructure) *models.SalaryPayroll {
	b := payroll.Calculate(components(s))
	return &models.SalaryPayroll{
		SalaryStructure: *s,
		GrossSalary:     b.Gross,
		TotalDeductions: b.TotalDeductions,
		NetSalary:       b.Net,
	}
}

func (s *SalaryService) Create(ctx context.Context, actor auth.Actor, req *models.CreateSalaryStructureRequest) (*models.SalaryStructure, error) {
	structure := &models.SalaryStructure{
		EmployeeProfileID: req.EmployeeProfileID,
		BasicSalary:       req.BasicSalary,
		HRA:               req.HRA,
		StandardAllowance: req.StandardAllowance,
		PerformanceBonus:  req.PerformanceBonus,
		LTA:               req.LTA,
		FixedAllowance:    req.FixedAllowance,
		ProfessionalTax:   req.ProfessionalTax,
		PFContribution:    req.PFContribution,
	}
	if err := components(structure).Validate(); err != nil {
		return nil, Invalid(err.Error())
	}
	if _, err := s.Profiles.Get(ctx, req.EmployeeProfileID); err != nil {
		return nil, fromStore(err, msgProfileNotFound)
	}
	if _, err := s.Salaries.GetByEmployee(ctx, req.EmployeeProfileID); err == nil {
		return nil, Conflict(msgSalaryExists)
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	created, err := s.Salaries.Create(ctx, structure)
	if errors.Is(err, repositories.ErrConflict) {
		return nil, Conflict(msgSalaryExists)
	}
	if err != nil {
		return nil, fromStore(err, msgProfileNotFound)
	}
	s.Activity.Record(ctx, actor.UserID, models.ActionSalaryCreated,
		fmt.Sprintf("Salary structure %d created for profile %d.", created.ID, created.EmployeeProfileID))
	return created, nil
}

// Update applies a partial change to the components
func (s *SalaryService) Update(ctx context.Context, actor auth.Actor, id int, req *models.UpdateSalaryStructureRequest) (*models.SalaryStructure, error) {
	structure, err := s.Salaries.Get(ctx, id)
	if err != nil {
		return nil, fromStore(err, msgSalaryNotFound)
	}
	set := func(dst *decimal.Decimal, src *decimal.Decimal) {
		if src != nil {
			*dst = *src
		}
	}
	set(&structure.BasicSalary, req.BasicSalary)
	set(&structure.HRA, req.HRA)
	set(&structure.StandardAllowance, req.StandardAllowance)
	set(&structure.PerformanceBonus, req.PerformanceBonus)
	set(&structure.LTA, req.LTA)
	set(&structure.FixedAllowance, req.FixedAllowance)
	set(&structure.ProfessionalTax, req.ProfessionalTax)
	set(&structure.PFContribution, req.PFContribution)
	if err := components(structure).Validate(); err != nil {
		return nil, Invalid(err.Error())
	}

	updated, err := s.Salaries.Update(ctx, structure)
	if err != nil {
		return nil, fromStore(err, msgSalaryNotFound)
	}
	s.Activity.Record(ctx, actor.UserID, models.ActionSalaryUpdated, fmt.Sprintf("Salary structure %d updated.", id))
	return updated, nil
}

func (s *SalaryService) Mine(ctx context.Context, actor auth.Actor) (*models.SalaryStructure, error) {
	profile, err := profileFor(ctx, s.Profiles, actor)
	if err != nil {
		return nil, err
	}
	structure, err := s.Salaries.GetByEmployee(ctx, profile.ID)
	if err != nil {
		return nil, fromStore(err, msgSalaryNotFoundEmployee)
	}
	return structure, nil
}

// Payroll lists structures with computed figures
func (s *SalaryService) Payroll(ctx context.Context, skip, limit int) ([]*models.SalaryPayroll, error) {
	structures, err := s.Salaries.List(ctx, skip, limit)
	if err != nil {
		return nil, err
	}
	out := make([]*models.SalaryPayroll, 0, len(structures))
	for _, st := range structures {
		out = append(out, withPayroll(st))
	}
	return out, nil
}

// Slip returns one employee's payroll figures to the owner or a privileged caller
func (s *SalaryService) Slip(ctx context.Context, actor auth.Actor, profileID int) (*models.SalaryPayroll, *models.EmployeeProfile, error) {
	profile, err := s.Profiles.Get(ctx, profileID)
	if err != nil {
		return nil, nil, fromStore(err, msgProfileNotFound)
	}
	if !auth.CanAccess(actor, profile.UserID, auth.PrivilegedRoles...) {
		return nil, nil, Forbidden("Not authorized to view this salary slip")
	}
	structure, err := s.Salaries.GetByEmployee(ctx, profileID)
	if err != nil {
		return nil, nil, fromStore(err, msgSalaryNotFoundEmployee)
	}
	return withPayroll(structure), profile, nil
}

// SlipPDF renders the slip as a PDF document
func (s *SalaryService) SlipPDF(ctx context.Context, actor auth.Actor, profileID int) ([]byte, error) {
	slip, profile, err := s.Slip(ctx, actor, profileID)
	if err != nil {
		return nil, err
	}
	return RenderPayslipPDF(profile, slip, s.Now())
}

// Archive renders the slip and uploads it to object storage
func (s *SalaryService) Archive(ctx context.Context, actor auth.Actor, profileID int) (*models.PayslipArchive, error) {
	if s.Uploader == nil {
		return nil, ErrPayslipStorageDisabled
	}
	pdf, err := s.SlipPDF(ctx, actor, profileID)
	if err != nil {
		return nil, err
	}
	at := s.Now()
	bucket, key, err := s.Uploader.Put(ctx, profileID, pdf, at)
	if err != nil {
		return nil, fmt.Errorf("archive payslip: %w", err)
	}
	return &models.PayslipArchive{EmployeeProfileID: profileID, Bucket: bucket, Key: key, ArchivedAt: at}, nil
}
