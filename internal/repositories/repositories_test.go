package repositories

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"hrms-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v4"
)

type stubRow struct {
	scanFn func(dest ...any) error
}

func (s stubRow) Scan(dest ...any) error {
	return s.scanFn(dest...)
}

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	t.Cleanup(mock.Close)
	return mock
}

func TestTranslatePgError(t *testing.T) {
	tests := []struct {
		name string
		in   error
		want error
	}{
		{"no rows", pgx.ErrNoRows, ErrNotFound},
		{"unique", &pgconn.PgError{Code: uniqueViolationCode, ConstraintName: "users_email_key"}, ErrConflict},
		{"foreign key", &pgconn.PgError{Code: foreignKeyViolationCode}, ErrInvalidReference},
		{"check", &pgconn.PgError{Code: checkViolationCode}, ErrCheckViolation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := translatePgError(tt.in); !errors.Is(got, tt.want) {
				t.Fatalf("translatePgError(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}

	other := errors.New("random")
	if translatePgError(other) != other {
		t.Fatalf("unexpected translation for generic error")
	}
	if translatePgError(nil) != nil {
		t.Fatalf("nil must stay nil")
	}
}

func TestPage(t *testing.T) {
	if s, l := page(-5, 0); s != 0 || l != 100 {
		t.Fatalf("page(-5, 0) = %d, %d", s, l)
	}
	if s, l := page(10, 20); s != 10 || l != 20 {
		t.Fatalf("page(10, 20) = %d, %d", s, l)
	}
	if _, l := page(0, 5000); l != 100 {
		t.Fatalf("oversized limit not clamped: %d", l)
	}
}

func TestScanAttendance_NullableTimes(t *testing.T) {
	checkIn := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

	row := stubRow{scanFn: func(dest ...any) error {
		if len(dest) != 7 {
			return errors.New("unexpected dest length")
		}
		*(dest[0].(*int)) = 1
		*(dest[1].(*int)) = 2
		*(dest[2].(*time.Time)) = time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
		*(dest[3].(**time.Time)) = &checkIn
		*(dest[4].(**time.Time)) = nil
		*(dest[5].(*string)) = models.AttendancePresent
		*(dest[6].(*string)) = ""
		return nil
	}}

	a, err := scanAttendance(row)
	if err != nil {
		t.Fatalf("scanAttendance: %v", err)
	}
	if a.CheckInTime == nil || !a.CheckInTime.Equal(checkIn) {
		t.Fatalf("unexpected check-in %v", a.CheckInTime)
	}
	if a.CheckOutTime != nil {
		t.Fatalf("expected no check-out")
	}
}

func TestScanCorrection_NoRows(t *testing.T) {
	row := stubRow{scanFn: func(dest ...any) error { return pgx.ErrNoRows }}
	if _, err := scanCorrection(row); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUserRepository_GetByEmail(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock)
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM users WHERE email = $1`)).
		WithArgs("alice@x.com").
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "email", "hashed_password", "role", "is_active", "totp_secret", "totp_enabled", "created_at", "updated_at",
		}).AddRow(3, "alice@x.com", "hash", models.RoleEmployee, true, "", false, created, created))

	u, err := repo.GetByEmail(context.Background(), "alice@x.com")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if u.ID != 3 || u.PasswordHash != "hash" || !u.IsActive {
		t.Fatalf("unexpected user %+v", u)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUserRepository_GetMissing(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM users WHERE id = $1`)).
		WithArgs(99).
		WillReturnRows(pgxmock.NewRows([]string{"id"}))

	if _, err := repo.Get(context.Background(), 99); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUserRepository_CreateDuplicateEmail(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users`)).
		WithArgs("dup@x.com", "hash", models.RoleEmployee, true).
		WillReturnError(&pgconn.PgError{Code: uniqueViolationCode, ConstraintName: "users_email_key"})

	err := repo.Create(context.Background(), &models.User{Email: "dup@x.com", PasswordHash: "hash", IsActive: true})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestUserRepository_DeleteMissing(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM users WHERE id = $1`)).
		WithArgs(5).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	if err := repo.Delete(context.Background(), 5); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUserRepository_CountActive(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM users WHERE is_active = TRUE`)).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(4))

	n, err := repo.CountActive(context.Background())
	if err != nil || n != 4 {
		t.Fatalf("CountActive = %d, %v", n, err)
	}
}

func TestAttendanceRepository_InsertCheckInLosesRace(t *testing.T) {
	mock := newMock(t)
	repo := NewAttendanceRepository(mock)
	day := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	at := day.Add(9 * time.Hour)

	mock.ExpectQuery(regexp.QuoteMeta(`ON CONFLICT (employee_profile_id, date) DO NOTHING`)).
		WithArgs(2, day, at, models.AttendancePresent).
		WillReturnRows(pgxmock.NewRows([]string{"id"}))

	_, err := repo.InsertCheckIn(context.Background(), 2, day, at)
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAttendanceRepository_ListBuildsFilters(t *testing.T) {
	mock := newMock(t)
	repo := NewAttendanceRepository(mock)
	from := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 6)

	mock.ExpectQuery(regexp.QuoteMeta(
		`WHERE employee_profile_id = $1 AND date >= $2 AND date <= $3 ORDER BY date DESC, id DESC OFFSET $4 LIMIT $5`)).
		WithArgs(7, from, to, 0, 100).
		WillReturnRows(pgxmock.NewRows([]string{"id"}))

	records, err := repo.List(context.Background(), models.AttendanceFilter{EmployeeProfileID: 7, From: from, To: to})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected no records, got %d", len(records))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAttendanceRepository_ForUpdateLock(t *testing.T) {
	mock := newMock(t)
	repo := NewAttendanceRepository(mock)
	day := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE employee_profile_id = $1 AND date = $2 FOR UPDATE`)).
		WithArgs(2, day).
		WillReturnRows(pgxmock.NewRows([]string{"id"}))

	if _, err := repo.GetForDate(context.Background(), 2, day, true); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCorrectionRepository_HasPending(t *testing.T) {
	mock := newMock(t)
	repo := NewCorrectionRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS`)).
		WithArgs(11, models.CorrectionPending).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	ok, err := repo.HasPending(context.Background(), 11)
	if err != nil || !ok {
		t.Fatalf("HasPending = %v, %v", ok, err)
	}
}

func TestSettingsRepository_GetOrCreate(t *testing.T) {
	mock := newMock(t)
	repo := NewSettingsRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta(`ON CONFLICT (user_id) DO UPDATE SET user_id = EXCLUDED.user_id`)).
		WithArgs(3, models.DefaultTheme, models.DefaultLanguage).
		WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "receive_notifications", "theme", "language"}).
			AddRow(1, 3, true, "light", "en"))

	s, err := repo.GetOrCreate(context.Background(), 3)
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	if !s.ReceiveNotifications || s.Theme != "light" || s.Language != "en" {
		t.Fatalf("unexpected settings %+v", s)
	}
}

func TestActivityLogRepository_Create(t *testing.T) {
	mock := newMock(t)
	repo := NewActivityLogRepository(mock)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO activity_logs`)).
		WithArgs(3, models.ActionLogin, "").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	if err := repo.Create(context.Background(), 3, models.ActionLogin, ""); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestLeaveRepository_ConsumeInsufficient(t *testing.T) {
	mock := newMock(t)
	repo := NewLeaveRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta(`AND remaining_days >= $1`)).
		WithArgs(5, 2, models.LeavePaid, 2026).
		WillReturnRows(pgxmock.NewRows([]string{"id"}))

	if _, err := repo.Consume(context.Background(), 2, models.LeavePaid, 2026, 5); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
