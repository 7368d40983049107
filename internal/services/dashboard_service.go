package services

import (
	"context"
	"errors"

	"hrms-backend/internal/auth"
	"hrms-backend/internal/models"
	"hrms-backend/internal/repositories"
	"hrms-backend/internal/timeutil"
)

type DashboardService struct {
	Users       UserStore
	Profiles    ProfileStore
	Attendance  AttendanceStore
	Corrections CorrectionStore
	Leaves      LeaveStore
	Now         Clock
}

func NewDashboardService(users UserStore, profiles ProfileStore, attendance AttendanceStore, corrections CorrectionStore, leaves LeaveStore) *DashboardService {
	return &DashboardService{
		Users:       users,
		Profiles:    profiles,
		Attendance:  attendance,
		Corrections: corrections,
		Leaves:      leaves,
		Now:         timeutil.Now,
	}
}

// Employee summarises the caller's day
func (s *DashboardService) Employee(ctx context.Context, actor auth.Actor) (*models.EmployeeDashboard, error) {
	profile, err := profileFor(ctx, s.Profiles, actor)
	if err != nil {
		return nil, err
	}
	now := s.Now()

	today, err := s.Attendance.GetForDate(ctx, profile.ID, timeutil.DateOf(now), false)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}
	balances, err := s.Leaves.ListBalances(ctx, profile.ID, now.Year())
	if err != nil {
		return nil, err
	}
	pending, err := s.Corrections.CountPending(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}

	out := &models.EmployeeDashboard{
		Profile:                profile,
		TodayAttendance:        today,
		LeaveBalances:          make([]models.LeaveBalance, 0, len(balances)),
		PendingCorrectionCount: pending,
	}
	for _, b := range balances {
		out.LeaveBalances = append(out.LeaveBalances, *b)
	}
	return out, nil
}

// Admin returns organisation-wide counters
func (s *DashboardService) Admin(ctx context.Context) (*models.AdminDashboard, error) {
	var (
		out models.AdminDashboard
		err error
	)
	if out.EmployeeCount, err = s.Profiles.Count(ctx); err != nil {
		return nil, err
	}
	if out.ActiveEmployeeCount, err = s.Users.CountActive(ctx); err != nil {
		return nil, err
	}
	if out.PendingLeaveRequestsCount, err = s.Leaves.CountPending(ctx); err != nil {
		return nil, err
	}
	if out.PendingCorrectionsCount, err = s.Corrections.CountPending(ctx, 0); err != nil {
		return nil, err
	}
	if out.PresentTodayCount, err = s.Attendance.CountPresentOn(ctx, timeutil.DateOf(s.Now())); err != nil {
		return nil, err
	}
	return &out, nil
}
