package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"hrms-backend/internal/auth"
	"hrms-backend/internal/metrics"
	"hrms-backend/internal/models"
	"hrms-backend/internal/repositories"
	"hrms-backend/internal/timeutil"
)

const (
	msgLeaveNotFound       = "Leave request not found"
	msgInsufficientBalance = "Insufficient leave balance"
)

// LeaveService handles leave requests and the yearly balances they draw from.
// Balances only move when a request is approved.
type LeaveService struct {
	TX       TxManager
	Profiles ProfileStore
	Leaves   LeaveStore
	Activity *ActivityService
	Now      Clock
}

func NewLeaveService(tx TxManager, profiles ProfileStore, leaves LeaveStore, activity *ActivityService) *LeaveService {
	if tx == nil {
		tx = noTx{}
	}
	return &LeaveService{TX: tx, Profiles: profiles, Leaves: leaves, Activity: activity, Now: timeutil.Now}
}

// Apply files a pending request for the caller, or for any profile when the
// caller is privileged.
func (s *LeaveService) Apply(ctx context.Context, actor auth.Actor, req *models.ApplyLeaveRequest) (*models.LeaveRequest, error) {
	leaveType := strings.ToLower(strings.TrimSpace(req.LeaveType))
	if !models.ValidLeaveType(leaveType) {
		return nil, Invalidf("Unknown leave type %q", req.LeaveType)
	}
	start, err := timeutil.ParseDate(req.StartDate)
	if err != nil {
		return nil, Invalid("Dates must use the YYYY-MM-DD format")
	}
	end, err := timeutil.ParseDate(req.EndDate)
	if err != nil {
		return nil, Invalid("Dates must use the YYYY-MM-DD format")
	}
	if end.Before(start) {
		return nil, Invalid("End date cannot be before start date")
	}
	days := timeutil.DaysInclusive(start, end)
	if req.TotalDays != nil {
		if *req.TotalDays <= 0 {
			return nil, Invalid("Total days must be positive")
		}
		days = *req.TotalDays
	}

	profile, err := s.targetProfile(ctx, actor, req.EmployeeProfileID)
	if err != nil {
		return nil, err
	}

	if models.TracksBalance(leaveType) {
		balance, err := s.Leaves.GetBalance(ctx, profile.ID, leaveType, start.Year())
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, Conflict(msgInsufficientBalance)
		}
		if err != nil {
			return nil, err
		}
		if balance.RemainingDays < days {
			return nil, Conflict(msgInsufficientBalance)
		}
	}

	created, err := s.Leaves.Create(ctx, &models.LeaveRequest{
		EmployeeProfileID: profile.ID,
		LeaveType:         leaveType,
		StartDate:         start,
		EndDate:           end,
		TotalDays:         days,
		Reason:            req.Reason,
		Status:            models.LeavePending,
	})
	if err != nil {
		return nil, fromStore(err, msgProfileNotFound)
	}
	s.Activity.Record(ctx, actor.UserID, models.ActionLeaveApplied,
		fmt.Sprintf("Leave %d applied: %s, %d day(s).", created.ID, leaveType, days))
	return created, nil
}

func (s *LeaveService) targetProfile(ctx context.Context, actor auth.Actor, profileID *int) (*models.EmployeeProfile, error) {
	if profileID == nil {
		return profileFor(ctx, s.Profiles, actor)
	}
	profile, err := s.Profiles.Get(ctx, *profileID)
	if err != nil {
		return nil, fromStore(err, msgProfileNotFound)
	}
	if !auth.CanAccess(actor, profile.UserID, auth.PrivilegedRoles...) {
		return nil, Forbidden("Not authorized to apply leave for this employee")
	}
	return profile, nil
}

// Approve consumes the balance in the same transaction as the status change
func (s *LeaveService) Approve(ctx context.Context, actor auth.Actor, id int, comments string) (*models.LeaveRequest, error) {
	return s.decide(ctx, actor, id, models.LeaveApproved, comments)
}

func (s *LeaveService) Reject(ctx context.Context, actor auth.Actor, id int, comments string) (*models.LeaveRequest, error) {
	return s.decide(ctx, actor, id, models.LeaveRejected, comments)
}

func (s *LeaveService) decide(ctx context.Context, actor auth.Actor, id int, status, comments string) (*models.LeaveRequest, error) {
	var decided *models.LeaveRequest
	err := s.TX.WithinReadWrite(ctx, func(ctx context.Context) error {
		req, err := s.Leaves.Get(ctx, id, true)
		if err != nil {
			return fromStore(err, msgLeaveNotFound)
		}
		if req.Status != models.LeavePending {
			return Conflict(msgNotPending)
		}

		if status == models.LeaveApproved && models.TracksBalance(req.LeaveType) {
			_, err := s.Leaves.Consume(ctx, req.EmployeeProfileID, req.LeaveType, req.StartDate.Year(), req.TotalDays)
			if errors.Is(err, repositories.ErrNotFound) {
				return Conflict(msgInsufficientBalance)
			}
			if err != nil {
				return err
			}
		}

		reviewer := actor.UserID
		at := s.Now()
		decided, err = s.Leaves.SetStatus(ctx, id, status, &reviewer, comments, &at)
		if errors.Is(err, repositories.ErrNotFound) {
			return Conflict(msgNotPending)
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	metrics.Decisions.WithLabelValues("leave", status).Inc()
	action := models.ActionLeaveApproved
	if status == models.LeaveRejected {
		action = models.ActionLeaveRejected
	}
	s.Activity.Record(ctx, actor.UserID, action, fmt.Sprintf("Leave %d %s.", id, status))
	return decided, nil
}

// Cancel withdraws the caller's own pending request
func (s *LeaveService) Cancel(ctx context.Context, actor auth.Actor, id int) (*models.LeaveRequest, error) {
	var cancelled *models.LeaveRequest
	err := s.TX.WithinReadWrite(ctx, func(ctx context.Context) error {
		req, err := s.Leaves.Get(ctx, id, true)
		if err != nil {
			return fromStore(err, msgLeaveNotFound)
		}
		profile, err := profileFor(ctx, s.Profiles, actor)
		if err != nil {
			return err
		}
		if req.EmployeeProfileID != profile.ID {
			return Forbidden("Only the requester can cancel a leave request")
		}
		if req.Status != models.LeavePending {
			return Conflict(msgNotPending)
		}
		cancelled, err = s.Leaves.SetStatus(ctx, id, models.LeaveCancelled, nil, "", nil)
		if errors.Is(err, repositories.ErrNotFound) {
			return Conflict(msgNotPending)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	metrics.Decisions.WithLabelValues("leave", models.LeaveCancelled).Inc()
	s.Activity.Record(ctx, actor.UserID, models.ActionLeaveCancelled, fmt.Sprintf("Leave %d cancelled.", id))
	return cancelled, nil
}

func (s *LeaveService) Mine(ctx context.Context, actor auth.Actor) ([]*models.LeaveRequest, error) {
	profile, err := profileFor(ctx, s.Profiles, actor)
	if err != nil {
		return nil, err
	}
	return s.Leaves.ListByEmployee(ctx, profile.ID)
}

func (s *LeaveService) Pending(ctx context.Context) ([]*models.LeaveRequest, error) {
	return s.Leaves.ListByStatus(ctx, models.LeavePending)
}

// Balances returns current-year balances. profileID 0 means the caller's own.
func (s *LeaveService) Balances(ctx context.Context, actor auth.Actor, profileID int) ([]*models.LeaveBalance, error) {
	var (
		profile *models.EmployeeProfile
		err     error
	)
	if profileID == 0 {
		profile, err = profileFor(ctx, s.Profiles, actor)
	} else {
		profile, err = s.Profiles.Get(ctx, profileID)
		err = fromStore(err, msgProfileNotFound)
	}
	if err != nil {
		return nil, err
	}
	if !auth.CanAccess(actor, profile.UserID, auth.PrivilegedRoles...) {
		return nil, Forbidden("Not authorized to view this employee's leave balance")
	}
	return s.Leaves.ListBalances(ctx, profile.ID, s.Now().Year())
}

// Allocate sets a balance row's total, keeping the days already used
func (s *LeaveService) Allocate(ctx context.Context, req *models.AllocateLeaveRequest) (*models.LeaveBalance, error) {
	leaveType := strings.ToLower(strings.TrimSpace(req.LeaveType))
	if !models.TracksBalance(leaveType) {
		return nil, Invalidf("Leave type %q has no balance", req.LeaveType)
	}
	if req.TotalDays < 0 {
		return nil, Invalid("Total days must not be negative")
	}
	year := req.Year
	if year == 0 {
		year = s.Now().Year()
	}
	if _, err := s.Profiles.Get(ctx, req.EmployeeProfileID); err != nil {
		return nil, fromStore(err, msgProfileNotFound)
	}
	balance, err := s.Leaves.Allocate(ctx, req.EmployeeProfileID, leaveType, year, req.TotalDays)
	if errors.Is(err, repositories.ErrCheckViolation) {
		return nil, Conflict("Total days cannot be less than days already used")
	}
	return balance, err
}
