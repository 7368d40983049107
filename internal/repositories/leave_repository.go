package repositories

import (
	"context"
	"time"

	"hrms-backend/internal/db"
	"hrms-backend/internal/models"

	"github.com/jackc/pgx/v5"
)

type LeaveRepository struct {
	DB db.Queryer
}

func NewLeaveRepository(conn db.Queryer) *LeaveRepository {
	return &LeaveRepository{DB: conn}
}

const leaveColumns = `id, employee_profile_id, leave_type, start_date, end_date, total_days, reason, status,
	reviewed_by_id, reviewed_at, reviewer_comments, created_at`

const balanceColumns = `id, employee_profile_id, leave_type, year, total_days, used_days, remaining_days`

func scanLeave(row pgx.Row) (*models.LeaveRequest, error) {
	var l models.LeaveRequest
	err := row.Scan(&l.ID, &l.EmployeeProfileID, &l.LeaveType, &l.StartDate, &l.EndDate, &l.TotalDays,
		&l.Reason, &l.Status, &l.ReviewedByID, &l.ReviewedAt, &l.ReviewerComments, &l.CreatedAt)
	if err != nil {
		return nil, translatePgError(err)
	}
	return &l, nil
}

func scanBalance(row pgx.Row) (*models.LeaveBalance, error) {
	var b models.LeaveBalance
	err := row.Scan(&b.ID, &b.EmployeeProfileID, &b.LeaveType, &b.Year, &b.TotalDays, &b.UsedDays, &b.RemainingDays)
	if err != nil {
		return nil, translatePgError(err)
	}
	return &b, nil
}

func (r *LeaveRepository) Create(ctx context.Context, l *models.LeaveRequest) (*models.LeaveRequest, error) {
	row := db.QueryerFromContext(ctx, r.DB).QueryRow(ctx,
		`INSERT INTO leave_requests (employee_profile_id, leave_type, start_date, end_date, total_days, reason, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING `+leaveColumns,
		l.EmployeeProfileID, l.LeaveType, l.StartDate, l.EndDate, l.TotalDays, l.Reason, models.LeavePending)
	return scanLeave(row)
}

// Get loads a request, locking it when lock is set
func (r *LeaveRepository) Get(ctx context.Context, id int, lock bool) (*models.LeaveRequest, error) {
	query := `SELECT ` + leaveColumns + ` FROM leave_requests WHERE id = $1`
	if lock {
		query += ` FOR UPDATE`
	}
	return scanLeave(db.QueryerFromContext(ctx, r.DB).QueryRow(ctx, query, id))
}

func (r *LeaveRepository) ListByEmployee(ctx context.Context, profileID int) ([]*models.LeaveRequest, error) {
	return r.list(ctx, `WHERE employee_profile_id = $1 ORDER BY start_date DESC, id DESC`, profileID)
}

func (r *LeaveRepository) ListByStatus(ctx context.Context, status string) ([]*models.LeaveRequest, error) {
	return r.list(ctx, `WHERE status = $1 ORDER BY created_at, id`, status)
}

func (r *LeaveRepository) list(ctx context.Context, where string, args ...any) ([]*models.LeaveRequest, error) {
	rows, err := db.QueryerFromContext(ctx, r.DB).Query(ctx, `SELECT `+leaveColumns+` FROM leave_requests `+where, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requests := []*models.LeaveRequest{}
	for rows.Next() {
		l, err := scanLeave(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, l)
	}
	return requests, rows.Err()
}

// SetStatus moves a pending request on. Requests that are no longer pending
// are left alone and ErrNotFound is returned.
func (r *LeaveRepository) SetStatus(ctx context.Context, id int, status string, reviewerID *int, comments string, at *time.Time) (*models.LeaveRequest, error) {
	row := db.QueryerFromContext(ctx, r.DB).QueryRow(ctx,
		`UPDATE leave_requests
		    SET status = $1, reviewed_by_id = $2, reviewer_comments = $3, reviewed_at = $4
		  WHERE id = $5 AND status = $6
		 RETURNING `+leaveColumns,
		status, reviewerID, comments, at, id, models.LeavePending)
	return scanLeave(row)
}

func (r *LeaveRepository) CountPending(ctx context.Context) (int, error) {
	var n int
	err := db.QueryerFromContext(ctx, r.DB).QueryRow(ctx,
		`SELECT COUNT(*) FROM leave_requests WHERE status = $1`, models.LeavePending).Scan(&n)
	return n, err
}

func (r *LeaveRepository) GetBalance(ctx context.Context, profileID int, leaveType string, year int) (*models.LeaveBalance, error) {
	row := db.QueryerFromContext(ctx, r.DB).QueryRow(ctx,
		`SELECT `+balanceColumns+` FROM leave_balances
		  WHERE employee_profile_id = $1 AND leave_type = $2 AND year = $3`,
		profileID, leaveType, year)
	return scanBalance(row)
}

func (r *LeaveRepository) ListBalances(ctx context.Context, profileID, year int) ([]*models.LeaveBalance, error) {
	rows, err := db.QueryerFromContext(ctx, r.DB).Query(ctx,
		`SELECT `+balanceColumns+` FROM leave_balances
		  WHERE employee_profile_id = $1 AND year = $2 ORDER BY leave_type`,
		profileID, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	balances := []*models.LeaveBalance{}
	for rows.Next() {
		b, err := scanBalance(rows)
		if err != nil {
			return nil, err
		}
		balances = append(balances, b)
	}
	return balances, rows.Err()
}

// Consume moves days from remaining to used. It matches no row, and returns
// ErrNotFound, when the balance is missing or too small.
func (r *LeaveRepository) Consume(ctx context.Context, profileID int, leaveType string, year, days int) (*models.LeaveBalance, error) {
	row := db.QueryerFromContext(ctx, r.DB).QueryRow(ctx,
		`UPDATE leave_balances
		    SET used_days = used_days + $1, remaining_days = remaining_days - $1
		  WHERE employee_profile_id = $2 AND leave_type = $3 AND year = $4 AND remaining_days >= $1
		 RETURNING `+balanceColumns,
		days, profileID, leaveType, year)
	return scanBalance(row)
}

// Allocate sets the total for a balance row, keeping days already used
func (r *LeaveRepository) Allocate(ctx context.Context, profileID int, leaveType string, year, total int) (*models.LeaveBalance, error) {
	row := db.QueryerFromContext(ctx, r.DB).QueryRow(ctx,
		`INSERT INTO leave_balances (employee_profile_id, leave_type, year, total_days, used_days, remaining_days)
		 VALUES ($1, $2, $3, $4, 0, $4)
		 ON CONFLICT (employee_profile_id, leave_type, year) DO UPDATE
		    SET total_days = EXCLUDED.total_days,
		        remaining_days = EXCLUDED.total_days - leave_balances.used_days
		 RETURNING `+balanceColumns,
		profileID, leaveType, year, total)
	return scanBalance(row)
}
