package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hrms-backend/internal/auth"
	"hrms-backend/internal/metrics"
	"hrms-backend/internal/models"
	"hrms-backend/internal/repositories"
	"hrms-backend/internal/timeutil"
)

const (
	msgAlreadyCheckedIn  = "Already checked in for today"
	msgNotCheckedIn      = "You have not checked in today"
	msgAlreadyCheckedOut = "Already checked out for today"
)

// AttendanceService runs the daily check-in/check-out lifecycle.
type AttendanceService struct {
	TX         TxManager
	Profiles   ProfileStore
	Attendance AttendanceStore
	Activity   *ActivityService
	Now        Clock
}

func NewAttendanceService(tx TxManager, profiles ProfileStore, attendance AttendanceStore, activity *ActivityService) *AttendanceService {
	if tx == nil {
		tx = noTx{}
	}
	return &AttendanceService{TX: tx, Profiles: profiles, Attendance: attendance, Activity: activity, Now: timeutil.Now}
}

// CheckIn records the first arrival of the day for the caller
func (s *AttendanceService) CheckIn(ctx context.Context, actor auth.Actor) (*models.Attendance, error) {
	profile, err := profileFor(ctx, s.Profiles, actor)
	if err != nil {
		return nil, err
	}
	now := s.Now()
	today := timeutil.DateOf(now)

	var record *models.Attendance
	err = s.TX.WithinReadWrite(ctx, func(ctx context.Context) error {
		existing, err := s.Attendance.GetForDate(ctx, profile.ID, today, true)
		switch {
		case err == nil && existing.CheckInTime != nil:
			return Conflict(msgAlreadyCheckedIn)
		case err == nil:
			record, err = s.Attendance.MarkCheckIn(ctx, existing.ID, now)
			return err
		case !errors.Is(err, repositories.ErrNotFound):
			return err
		}

		record, err = s.Attendance.InsertCheckIn(ctx, profile.ID, today, now)
		if errors.Is(err, repositories.ErrConflict) {
			return Conflict(msgAlreadyCheckedIn)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	metrics.AttendanceEvents.WithLabelValues("check_in").Inc()
	return record, nil
}

// CheckOut closes today's record. Status is left as is.
func (s *AttendanceService) CheckOut(ctx context.Context, actor auth.Actor) (*models.Attendance, error) {
	profile, err := profileFor(ctx, s.Profiles, actor)
	if err != nil {
		return nil, err
	}
	now := s.Now()
	today := timeutil.DateOf(now)

	var record *models.Attendance
	err = s.TX.WithinReadWrite(ctx, func(ctx context.Context) error {
		existing, err := s.Attendance.GetForDate(ctx, profile.ID, today, true)
		if errors.Is(err, repositories.ErrNotFound) {
			return Conflict(msgNotCheckedIn)
		}
		if err != nil {
			return err
		}
		if existing.CheckInTime == nil {
			return Conflict(msgNotCheckedIn)
		}
		if existing.CheckOutTime != nil {
			return Conflict(msgAlreadyCheckedOut)
		}
		record, err = s.Attendance.MarkCheckOut(ctx, existing.ID, now)
		return err
	})
	if err != nil {
		return nil, err
	}
	metrics.AttendanceEvents.WithLabelValues("check_out").Inc()
	return record, nil
}

// Manual overwrites the (employee, date) record. Repeating the same call
// leaves the same state.
func (s *AttendanceService) Manual(ctx context.Context, actor auth.Actor, req *models.ManualAttendanceRequest) (*models.Attendance, error) {
	status := req.Status
	if status == "" {
		status = models.AttendancePresent
	}
	if !models.ValidAttendanceStatus(status) {
		return nil, Invalidf("Unknown attendance status %q", status)
	}
	if req.CheckOutTime != nil {
		if req.CheckInTime == nil {
			return nil, Invalid("Check-out time requires a check-in time")
		}
		if req.CheckOutTime.Before(*req.CheckInTime) {
			return nil, Invalid("Check-out time cannot be before check-in time")
		}
	}
	day, err := timeutil.ParseDate(req.Date)
	if err != nil {
		return nil, Invalid("Dates must use the YYYY-MM-DD format")
	}
	if _, err := s.Profiles.Get(ctx, req.EmployeeProfileID); err != nil {
		return nil, fromStore(err, msgProfileNotFound)
	}

	record, err := s.Attendance.Upsert(ctx, &models.Attendance{
		EmployeeProfileID: req.EmployeeProfileID,
		Date:              day,
		CheckInTime:       req.CheckInTime,
		CheckOutTime:      req.CheckOutTime,
		Status:            status,
		Notes:             req.Notes,
	})
	if err != nil {
		return nil, fromStore(err, msgProfileNotFound)
	}
	metrics.AttendanceEvents.WithLabelValues("manual").Inc()
	s.Activity.Record(ctx, actor.UserID, models.ActionManualAttendance,
		fmt.Sprintf("Attendance for profile %d on %s set to %s.", record.EmployeeProfileID, day.Format(timeutil.DateLayout), status))
	return record, nil
}

// Daily lists every record for one day; a zero day means today
func (s *AttendanceService) Daily(ctx context.Context, day time.Time) ([]*models.Attendance, error) {
	if day.IsZero() {
		day = timeutil.DateOf(s.Now())
	}
	return s.Attendance.List(ctx, models.AttendanceFilter{From: day, To: day, Limit: 1000})
}

// Weekly lists the Monday..Sunday window containing day
func (s *AttendanceService) Weekly(ctx context.Context, day time.Time) ([]*models.Attendance, error) {
	if day.IsZero() {
		day = timeutil.DateOf(s.Now())
	}
	monday, sunday := timeutil.WeekBounds(day)
	return s.Attendance.List(ctx, models.AttendanceFilter{From: monday, To: sunday, Limit: 1000})
}

// Me returns the caller's history, newest first
func (s *AttendanceService) Me(ctx context.Context, actor auth.Actor, skip, limit int) ([]*models.Attendance, error) {
	profile, err := profileFor(ctx, s.Profiles, actor)
	if err != nil {
		return nil, err
	}
	return s.Attendance.List(ctx, models.AttendanceFilter{EmployeeProfileID: profile.ID, Skip: skip, Limit: limit})
}

func (s *AttendanceService) All(ctx context.Context, f models.AttendanceFilter) ([]*models.Attendance, error) {
	return s.Attendance.List(ctx, f)
}

// ByEmployee returns one employee's history to its owner or a privileged caller
func (s *AttendanceService) ByEmployee(ctx context.Context, actor auth.Actor, profileID, skip, limit int) ([]*models.Attendance, error) {
	profile, err := s.Profiles.Get(ctx, profileID)
	if err != nil {
		return nil, fromStore(err, msgProfileNotFound)
	}
	if !auth.CanAccess(actor, profile.UserID, auth.PrivilegedRoles...) {
		return nil, Forbidden("Not authorized to view this employee's attendance")
	}
	return s.Attendance.List(ctx, models.AttendanceFilter{EmployeeProfileID: profile.ID, Skip: skip, Limit: limit})
}
