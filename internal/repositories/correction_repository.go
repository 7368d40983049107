package repositories

import (
	"context"
	"time"

	"hrms-backend/internal/db"
	"hrms-backend/internal/models"

	"github.com/jackc/pgx/v5"
)

type CorrectionRepository struct {
	DB db.Queryer
}

func NewCorrectionRepository(conn db.Queryer) *CorrectionRepository {
	return &CorrectionRepository{DB: conn}
}

const correctionColumns = `id, attendance_id, requested_by_id, reason, requested_check_in_time, requested_check_out_time,
	status, reviewed_by_id, reviewed_at, reviewer_comments, created_at`

func scanCorrection(row pgx.Row) (*models.AttendanceCorrectionRequest, error) {
	var c models.AttendanceCorrectionRequest
	err := row.Scan(&c.ID, &c.AttendanceID, &c.RequestedByID, &c.Reason, &c.RequestedCheckInTime,
		&c.RequestedCheckOutTime, &c.Status, &c.ReviewedByID, &c.ReviewedAt, &c.ReviewerComments, &c.CreatedAt)
	if err != nil {
		return nil, translatePgError(err)
	}
	return &c, nil
}

// Create inserts a pending request. A second pending request for the same
// attendance record fails with ErrConflict on the partial unique index.
func (r *CorrectionRepository) Create(ctx context.Context, c *models.AttendanceCorrectionRequest) (*models.AttendanceCorrectionRequest, error) {
	row := db.QueryerFromContext(ctx, r.DB).QueryRow(ctx,
		`INSERT INTO attendance_correction_requests
		   (attendance_id, requested_by_id, reason, requested_check_in_time, requested_check_out_time, status)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+correctionColumns,
		c.AttendanceID, c.RequestedByID, c.Reason, c.RequestedCheckInTime, c.RequestedCheckOutTime, models.CorrectionPending)
	return scanCorrection(row)
}

// Get loads a request, locking it when lock is set
func (r *CorrectionRepository) Get(ctx context.Context, id int, lock bool) (*models.AttendanceCorrectionRequest, error) {
	query := `SELECT ` + correctionColumns + ` FROM attendance_correction_requests WHERE id = $1`
	if lock {
		query += ` FOR UPDATE`
	}
	return scanCorrection(db.QueryerFromContext(ctx, r.DB).QueryRow(ctx, query, id))
}

func (r *CorrectionRepository) HasPending(ctx context.Context, attendanceID int) (bool, error) {
	var exists bool
	err := db.QueryerFromContext(ctx, r.DB).QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM attendance_correction_requests WHERE attendance_id = $1 AND status = $2)`,
		attendanceID, models.CorrectionPending).Scan(&exists)
	return exists, err
}

func (r *CorrectionRepository) ListByStatus(ctx context.Context, status string) ([]*models.AttendanceCorrectionRequest, error) {
	return r.list(ctx, `WHERE status = $1 ORDER BY created_at, id`, status)
}

func (r *CorrectionRepository) ListByRequester(ctx context.Context, userID int) ([]*models.AttendanceCorrectionRequest, error) {
	return r.list(ctx, `WHERE requested_by_id = $1 ORDER BY created_at DESC, id DESC`, userID)
}

func (r *CorrectionRepository) list(ctx context.Context, where string, args ...any) ([]*models.AttendanceCorrectionRequest, error) {
	rows, err := db.QueryerFromContext(ctx, r.DB).Query(ctx,
		`SELECT `+correctionColumns+` FROM attendance_correction_requests `+where, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requests := []*models.AttendanceCorrectionRequest{}
	for rows.Next() {
		c, err := scanCorrection(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, c)
	}
	return requests, rows.Err()
}

// Review moves a pending request to a terminal status. The status guard makes
// a concurrent second review return ErrNotFound.
func (r *CorrectionRepository) Review(ctx context.Context, id int, status string, reviewerID int, comments string, at time.Time) (*models.AttendanceCorrectionRequest, error) {
	row := db.QueryerFromContext(ctx, r.DB).QueryRow(ctx,
		`UPDATE attendance_correction_requests
		    SET status = $1, reviewed_by_id = $2, reviewer_comments = $3, reviewed_at = $4
		  WHERE id = $5 AND status = $6
		 RETURNING `+correctionColumns,
		status, reviewerID, comments, at, id, models.CorrectionPending)
	return scanCorrection(row)
}

// CountPending counts open requests, optionally only those raised by userID
func (r *CorrectionRepository) CountPending(ctx context.Context, userID int) (int, error) {
	var n int
	q := db.QueryerFromContext(ctx, r.DB)
	var err error
	if userID > 0 {
		err = q.QueryRow(ctx,
			`SELECT COUNT(*) FROM attendance_correction_requests WHERE status = $1 AND requested_by_id = $2`,
			models.CorrectionPending, userID).Scan(&n)
	} else {
		err = q.QueryRow(ctx,
			`SELECT COUNT(*) FROM attendance_correction_requests WHERE status = $1`,
			models.CorrectionPending).Scan(&n)
	}
	return n, err
}
