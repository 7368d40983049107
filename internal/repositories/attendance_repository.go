package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"hrms-backend/internal/db"
	"hrms-backend/internal/models"

	"github.com/jackc/pgx/v5"
)

type AttendanceRepository struct {
	DB db.Queryer
}

func NewAttendanceRepository(conn db.Queryer) *AttendanceRepository {
	return &AttendanceRepository{DB: conn}
}

const attendanceColumns = `id, employee_profile_id, date, check_in_time, check_out_time, status, notes`

func scanAttendance(row pgx.Row) (*models.Attendance, error) {
	var a models.Attendance
	err := row.Scan(&a.ID, &a.EmployeeProfileID, &a.Date, &a.CheckInTime, &a.CheckOutTime, &a.Status, &a.Notes)
	if err != nil {
		return nil, translatePgError(err)
	}
	return &a, nil
}

func (r *AttendanceRepository) Get(ctx context.Context, id int) (*models.Attendance, error) {
	row := db.QueryerFromContext(ctx, r.DB).QueryRow(ctx,
		`SELECT `+attendanceColumns+` FROM attendances WHERE id = $1`, id)
	return scanAttendance(row)
}

// GetForDate returns the (employee, date) record. With lock set the row is
// locked until the surrounding transaction ends.
func (r *AttendanceRepository) GetForDate(ctx context.Context, profileID int, date time.Time, lock bool) (*models.Attendance, error) {
	query := `SELECT ` + attendanceColumns + ` FROM attendances WHERE employee_profile_id = $1 AND date = $2`
	if lock {
		query += ` FOR UPDATE`
	}
	row := db.QueryerFromContext(ctx, r.DB).QueryRow(ctx, query, profileID, date)
	return scanAttendance(row)
}

// InsertCheckIn creates today's record. A concurrent insert for the same
// (employee, date) yields ErrConflict instead of a constraint error.
func (r *AttendanceRepository) InsertCheckIn(ctx context.Context, profileID int, date, at time.Time) (*models.Attendance, error) {
	row := db.QueryerFromContext(ctx, r.DB).QueryRow(ctx,
		`INSERT INTO attendances (employee_profile_id, date, check_in_time, status)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (employee_profile_id, date) DO NOTHING
		 RETURNING `+attendanceColumns,
		profileID, date, at, models.AttendancePresent)
	a, err := scanAttendance(row)
	if errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("%w: uq_attendance_employee_date", ErrConflict)
	}
	return a, err
}

// MarkCheckIn sets the check-in on an existing record and flips it to present
func (r *AttendanceRepository) MarkCheckIn(ctx context.Context, id int, at time.Time) (*models.Attendance, error) {
	row := db.QueryerFromContext(ctx, r.DB).QueryRow(ctx,
		`UPDATE attendances SET check_in_time = $1, status = $2 WHERE id = $3
		 RETURNING `+attendanceColumns, at, models.AttendancePresent, id)
	return scanAttendance(row)
}

func (r *AttendanceRepository) MarkCheckOut(ctx context.Context, id int, at time.Time) (*models.Attendance, error) {
	row := db.QueryerFromContext(ctx, r.DB).QueryRow(ctx,
		`UPDATE attendances SET check_out_time = $1 WHERE id = $2
		 RETURNING `+attendanceColumns, at, id)
	return scanAttendance(row)
}

// Upsert overwrites the (employee, date) record in one statement
func (r *AttendanceRepository) Upsert(ctx context.Context, a *models.Attendance) (*models.Attendance, error) {
	row := db.QueryerFromContext(ctx, r.DB).QueryRow(ctx,
		`INSERT INTO attendances (employee_profile_id, date, check_in_time, check_out_time, status, notes)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (employee_profile_id, date) DO UPDATE
		    SET check_in_time = EXCLUDED.check_in_time,
		        check_out_time = EXCLUDED.check_out_time,
		        status = EXCLUDED.status,
		        notes = EXCLUDED.notes
		 RETURNING `+attendanceColumns,
		a.EmployeeProfileID, a.Date, a.CheckInTime, a.CheckOutTime, a.Status, a.Notes)
	return scanAttendance(row)
}

// SetTimes copies both times verbatim, nil clears the column
func (r *AttendanceRepository) SetTimes(ctx context.Context, id int, checkIn, checkOut *time.Time) error {
	tag, err := db.QueryerFromContext(ctx, r.DB).Exec(ctx,
		`UPDATE attendances SET check_in_time = $1, check_out_time = $2 WHERE id = $3`,
		checkIn, checkOut, id)
	if err != nil {
		return translatePgError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns records newest first
func (r *AttendanceRepository) List(ctx context.Context, f models.AttendanceFilter) ([]*models.Attendance, error) {
	var (
		conds []string
		args  []any
	)
	if f.EmployeeProfileID > 0 {
		args = append(args, f.EmployeeProfileID)
		conds = append(conds, fmt.Sprintf("employee_profile_id = $%d", len(args)))
	}
	if !f.From.IsZero() {
		args = append(args, f.From)
		conds = append(conds, fmt.Sprintf("date >= $%d", len(args)))
	}
	if !f.To.IsZero() {
		args = append(args, f.To)
		conds = append(conds, fmt.Sprintf("date <= $%d", len(args)))
	}

	query := `SELECT ` + attendanceColumns + ` FROM attendances`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	skip, limit := page(f.Skip, f.Limit)
	args = append(args, skip, limit)
	query += fmt.Sprintf(` ORDER BY date DESC, id DESC OFFSET $%d LIMIT $%d`, len(args)-1, len(args))

	rows, err := db.QueryerFromContext(ctx, r.DB).Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []*models.Attendance{}
	for rows.Next() {
		a, err := scanAttendance(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, a)
	}
	return records, rows.Err()
}

func (r *AttendanceRepository) CountPresentOn(ctx context.Context, date time.Time) (int, error) {
	var n int
	err := db.QueryerFromContext(ctx, r.DB).QueryRow(ctx,
		`SELECT COUNT(*) FROM attendances WHERE date = $1 AND status IN ($2, $3)`,
		date, models.AttendancePresent, models.AttendanceHalfDay).Scan(&n)
	return n, err
}
