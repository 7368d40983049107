package services

import (
	"context"
	"time"

	"hrms-backend/internal/models"
)

// TxManager runs fn inside a transaction. Implemented by db.TransactionManager.
type TxManager interface {
	WithinReadOnly(ctx context.Context, fn func(context.Context) error) error
	WithinReadWrite(ctx context.Context, fn func(context.Context) error) error
}

type UserStore interface {
	Create(ctx context.Context, u *models.User) error
	Get(ctx context.Context, id int) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context, skip, limit int) ([]*models.User, error)
	Update(ctx context.Context, u *models.User) error
	Delete(ctx context.Context, id int) error
	CountActive(ctx context.Context) (int, error)
	SetTOTPSecret(ctx context.Context, userID int, secret string) error
	EnableTOTP(ctx context.Context, userID int) error
	DisableTOTP(ctx context.Context, userID int) error
}

type CompanyStore interface {
	Create(ctx context.Context, name string, logo *string) (*models.Company, error)
	Ensure(ctx context.Context, name string) (*models.Company, error)
	Get(ctx context.Context, id int) (*models.Company, error)
	List(ctx context.Context) ([]*models.Company, error)
}

type ProfileStore interface {
	Create(ctx context.Context, p *models.EmployeeProfile) error
	Get(ctx context.Context, id int) (*models.EmployeeProfile, error)
	GetByUserID(ctx context.Context, userID int) (*models.EmployeeProfile, error)
	List(ctx context.Context, skip, limit int) ([]*models.EmployeeProfile, error)
	Update(ctx context.Context, p *models.EmployeeProfile) error
	Count(ctx context.Context) (int, error)
}

type AttendanceStore interface {
	Get(ctx context.Context, id int) (*models.Attendance, error)
	GetForDate(ctx context.Context, profileID int, date time.Time, lock bool) (*models.Attendance, error)
	InsertCheckIn(ctx context.Context, profileID int, date, at time.Time) (*models.Attendance, error)
	MarkCheckIn(ctx context.Context, id int, at time.Time) (*models.Attendance, error)
	MarkCheckOut(ctx context.Context, id int, at time.Time) (*models.Attendance, error)
	Upsert(ctx context.Context, a *models.Attendance) (*models.Attendance, error)
	SetTimes(ctx context.Context, id int, checkIn, checkOut *time.Time) error
	List(ctx context.Context, f models.AttendanceFilter) ([]*models.Attendance, error)
	CountPresentOn(ctx context.Context, date time.Time) (int, error)
}

type CorrectionStore interface {
	Create(ctx context.Context, c *models.AttendanceCorrectionRequest) (*models.AttendanceCorrectionRequest, error)
	Get(ctx context.Context, id int, lock bool) (*models.AttendanceCorrectionRequest, error)
	HasPending(ctx context.Context, attendanceID int) (bool, error)
	ListByStatus(ctx context.Context, status string) ([]*models.AttendanceCorrectionRequest, error)
	ListByRequester(ctx context.Context, userID int) ([]*models.AttendanceCorrectionRequest, error)
	Review(ctx context.Context, id int, status string, reviewerID int, comments string, at time.Time) (*models.AttendanceCorrectionRequest, error)
	CountPending(ctx context.Context, userID int) (int, error)
}

type SalaryStore interface {
	Create(ctx context.Context, s *models.SalaryStructure) (*models.SalaryStructure, error)
	Get(ctx context.Context, id int) (*models.SalaryStructure, error)
	GetByEmployee(ctx context.Context, profileID int) (*models.SalaryStructure, error)
	Update(ctx context.Context, s *models.SalaryStructure) (*models.SalaryStructure, error)
	List(ctx context.Context, skip, limit int) ([]*models.SalaryStructure, error)
}

type LeaveStore interface {
	Create(ctx context.Context, l *models.LeaveRequest) (*models.LeaveRequest, error)
	Get(ctx context.Context, id int, lock bool) (*models.LeaveRequest, error)
	ListByEmployee(ctx context.Context, profileID int) ([]*models.LeaveRequest, error)
	ListByStatus(ctx context.Context, status string) ([]*models.LeaveRequest, error)
	SetStatus(ctx context.Context, id int, status string, reviewerID *int, comments string, at *time.Time) (*models.LeaveRequest, error)
	CountPending(ctx context.Context) (int, error)
	GetBalance(ctx context.Context, profileID int, leaveType string, year int) (*models.LeaveBalance, error)
	ListBalances(ctx context.Context, profileID, year int) ([]*models.LeaveBalance, error)
	Consume(ctx context.Context, profileID int, leaveType string, year, days int) (*models.LeaveBalance, error)
	Allocate(ctx context.Context, profileID int, leaveType string, year, total int) (*models.LeaveBalance, error)
}

type SettingsStore interface {
	GetOrCreate(ctx context.Context, userID int) (*models.UserSettings, error)
	Update(ctx context.Context, s *models.UserSettings) error
}

type ActivityStore interface {
	Create(ctx context.Context, userID int, action, details string) error
	List(ctx context.Context, skip, limit int) ([]*models.ActivityLog, error)
}

// TokenIssuer is implemented by auth.JWTManager.
type TokenIssuer interface {
	GenerateToken(user *models.User) (string, error)
	TTL() time.Duration
}

// TokenRevoker is implemented by cache.TokenStore.
type TokenRevoker interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) bool
}

// PayslipUploader is implemented by storage.PayslipStore.
type PayslipUploader interface {
	Put(ctx context.Context, employeeProfileID int, pdf []byte, at time.Time) (bucket, key string, err error)
}

// Clock returns the current time. Services default to timeutil.Now.
type Clock func() time.Time

// noTx runs fn directly. Used when no transaction manager is wired.
type noTx struct{}

func (noTx) WithinReadOnly(ctx context.Context, fn func(context.Context) error) error { return fn(ctx) }
func (noTx) WithinReadWrite(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}
