package services

import (
	"context"
	"errors"
	"fmt"

	"hrms-backend/internal/auth"
	"hrms-backend/internal/metrics"
	"hrms-backend/internal/models"
	"hrms-backend/internal/repositories"
	"hrms-backend/internal/timeutil"
)

const (
	msgAttendanceNotFound = "Attendance record not found"
	msgCorrectionNotFound = "Correction request not found"
)

// CorrectionService moves attendance correction requests from pending to a
// terminal state.
type CorrectionService struct {
	TX          TxManager
	Profiles    ProfileStore
	Attendance  AttendanceStore
	Corrections CorrectionStore
	Activity    *ActivityService
	Now         Clock
}

func NewCorrectionService(tx TxManager, profiles ProfileStore, attendance AttendanceStore, corrections CorrectionStore, activity *ActivityService) *CorrectionService {
	if tx == nil {
		tx = noTx{}
	}
	return &CorrectionService{
		TX:          tx,
		Profiles:    profiles,
		Attendance:  attendance,
		Corrections: corrections,
		Activity:    activity,
		Now:         timeutil.Now,
	}
}

func (s *CorrectionService) Create(ctx context.Context, actor auth.Actor, req *models.CreateCorrectionRequest) (*models.AttendanceCorrectionRequest, error) {
	if req.RequestedCheckInTime != nil && req.RequestedCheckOutTime != nil &&
		req.RequestedCheckOutTime.Before(*req.RequestedCheckInTime) {
		return nil, Invalid("Check-out time cannot be before check-in time")
	}

	var created *models.AttendanceCorrectionRequest
	err := s.TX.WithinReadWrite(ctx, func(ctx context.Context) error {
		record, err := s.Attendance.Get(ctx, req.AttendanceID)
		if err != nil {
			return fromStore(err, msgAttendanceNotFound)
		}
		owner, err := s.Profiles.Get(ctx, record.EmployeeProfileID)
		if err != nil {
			return fromStore(err, msgProfileNotFound)
		}
		if owner.UserID != actor.UserID {
			return Forbidden("Not authorized to request correction for this attendance record")
		}

		pending, err := s.Corrections.HasPending(ctx, record.ID)
		if err != nil {
			return err
		}
		if pending {
			return Conflict("A correction request is already pending for this attendance record")
		}

		created, err = s.Corrections.Create(ctx, &models.AttendanceCorrectionRequest{
			AttendanceID:          record.ID,
			RequestedByID:         actor.UserID,
			Reason:                req.Reason,
			RequestedCheckInTime:  req.RequestedCheckInTime,
			RequestedCheckOutTime: req.RequestedCheckOutTime,
			Status:                models.CorrectionPending,
		})
		if errors.Is(err, repositories.ErrConflict) {
			return Conflict("A correction request is already pending for this attendance record")
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	s.Activity.Record(ctx, actor.UserID, models.ActionCorrectionCreated,
		fmt.Sprintf("Correction %d requested for attendance %d.", created.ID, created.AttendanceID))
	return created, nil
}

// Approve copies the requested times onto the attendance record verbatim
func (s *CorrectionService) Approve(ctx context.Context, actor auth.Actor, id int, comments string) (*models.AttendanceCorrectionRequest, error) {
	return s.review(ctx, actor, id, models.CorrectionApproved, comments)
}

// Reject leaves the attendance record untouched
func (s *CorrectionService) Reject(ctx context.Context, actor auth.Actor, id int, comments string) (*models.AttendanceCorrectionRequest, error) {
	return s.review(ctx, actor, id, models.CorrectionRejected, comments)
}

func (s *CorrectionService) review(ctx context.Context, actor auth.Actor, id int, status, comments string) (*models.AttendanceCorrectionRequest, error) {
	var reviewed *models.AttendanceCorrectionRequest
	err := s.TX.WithinReadWrite(ctx, func(ctx context.Context) error {
		req, err := s.Corrections.Get(ctx, id, true)
		if err != nil {
			return fromStore(err, msgCorrectionNotFound)
		}
		if req.Status != models.CorrectionPending {
			return Conflict(msgNotPending)
		}

		if status == models.CorrectionApproved {
			err := s.Attendance.SetTimes(ctx, req.AttendanceID, req.RequestedCheckInTime, req.RequestedCheckOutTime)
			if err != nil && !errors.Is(err, repositories.ErrNotFound) {
				return err
			}
		}

		reviewed, err = s.Corrections.Review(ctx, id, status, actor.UserID, comments, s.Now())
		if errors.Is(err, repositories.ErrNotFound) {
			return Conflict(msgNotPending)
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	metrics.Decisions.WithLabelValues("correction", status).Inc()
	action := models.ActionCorrectionApprove
	if status == models.CorrectionRejected {
		action = models.ActionCorrectionReject
	}
	s.Activity.Record(ctx, actor.UserID, action, fmt.Sprintf("Correction %d %s.", id, status))
	return reviewed, nil
}

func (s *CorrectionService) Pending(ctx context.Context) ([]*models.AttendanceCorrectionRequest, error) {
	return s.Corrections.ListByStatus(ctx, models.CorrectionPending)
}

func (s *CorrectionService) Mine(ctx context.Context, actor auth.Actor) ([]*models.AttendanceCorrectionRequest, error) {
	return s.Corrections.ListByRequester(ctx, actor.UserID)
}
