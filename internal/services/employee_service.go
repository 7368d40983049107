package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"hrms-backend/internal/auth"
	"hrms-backend/internal/models"
	"hrms-backend/internal/repositories"
	"hrms-backend/internal/timeutil"
)

type EmployeeService struct {
	Users    UserStore
	Profiles ProfileStore
}

func NewEmployeeService(users UserStore, profiles ProfileStore) *EmployeeService {
	return &EmployeeService{Users: users, Profiles: profiles}
}

func parseOptionalDate(value string) (*time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	d, err := timeutil.ParseDate(value)
	if err != nil {
		return nil, Invalid("Dates must use the YYYY-MM-DD format")
	}
	return &d, nil
}

// profileFor resolves the caller's own profile
func profileFor(ctx context.Context, profiles ProfileStore, actor auth.Actor) (*models.EmployeeProfile, error) {
	p, err := profiles.GetByUserID(ctx, actor.UserID)
	if err != nil {
		return nil, fromStore(err, msgProfileNotFoundForUser)
	}
	return p, nil
}

func (s *EmployeeService) List(ctx context.Context, skip, limit int) ([]*models.EmployeeProfile, error) {
	return s.Profiles.List(ctx, skip, limit)
}

// Create attaches a profile to an existing account
func (s *EmployeeService) Create(ctx context.Context, req *models.CreateEmployeeProfileRequest) (*models.EmployeeProfile, error) {
	if _, err := s.Users.Get(ctx, req.UserID); err != nil {
		return nil, fromStore(err, msgUserNotFound)
	}
	joined, err := parseOptionalDate(req.DateOfJoining)
	if err != nil {
		return nil, err
	}
	code := strings.TrimSpace(req.EmployeeCode)
	if code == "" {
		code = employeeCode(req.UserID)
	}

	p := &models.EmployeeProfile{
		UserID:        req.UserID,
		CompanyID:     req.CompanyID,
		EmployeeCode:  code,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Phone:         req.Phone,
		Address:       req.Address,
		Designation:   req.Designation,
		Department:    req.Department,
		DateOfJoining: joined,
	}
	if err := s.Profiles.Create(ctx, p); err != nil {
		if errors.Is(err, repositories.ErrConflict) {
			return nil, Conflict("Employee profile already exists for this user or code is taken")
		}
		return nil, fromStore(err, msgProfileNotFound)
	}
	return p, nil
}

func (s *EmployeeService) Me(ctx context.Context, actor auth.Actor) (*models.EmployeeProfile, error) {
	return profileFor(ctx, s.Profiles, actor)
}

func (s *EmployeeService) Get(ctx context.Context, actor auth.Actor, id int) (*models.EmployeeProfile, error) {
	p, err := s.Profiles.Get(ctx, id)
	if err != nil {
		return nil, fromStore(err, msgProfileNotFound)
	}
	if !auth.CanAccess(actor, p.UserID, auth.PrivilegedRoles...) {
		return nil, Forbidden("Not authorized to access this employee profile")
	}
	return p, nil
}

// Update applies a partial update. Company and employee code are privileged.
func (s *EmployeeService) Update(ctx context.Context, actor auth.Actor, id int, req *models.UpdateEmployeeProfileRequest) (*models.EmployeeProfile, error) {
	p, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	privileged := auth.IsPrivileged(actor.Role)
	if (req.CompanyID != nil || req.EmployeeCode != nil) && !privileged {
		return nil, Forbidden("Only HR can change company or employee code")
	}

	if req.CompanyID != nil {
		p.CompanyID = req.CompanyID
	}
	if req.EmployeeCode != nil {
		p.EmployeeCode = strings.TrimSpace(*req.EmployeeCode)
	}
	assign := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	assign(&p.FirstName, req.FirstName)
	assign(&p.LastName, req.LastName)
	assign(&p.Phone, req.Phone)
	assign(&p.Address, req.Address)
	assign(&p.Designation, req.Designation)
	assign(&p.Department, req.Department)
	if req.DateOfJoining != nil {
		if p.DateOfJoining, err = parseOptionalDate(*req.DateOfJoining); err != nil {
			return nil, err
		}
	}

	if err := s.Profiles.Update(ctx, p); err != nil {
		if errors.Is(err, repositories.ErrConflict) {
			return nil, Conflict("Employee code is already in use")
		}
		return nil, fromStore(err, msgProfileNotFound)
	}
	return p, nil
}
