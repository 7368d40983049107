package services

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"hrms-backend/internal/models"
	"hrms-backend/internal/repositories"
)

// In-memory stand-ins for the repositories. They mirror the guards the SQL
// enforces (unique keys, pending-only updates, non-negative balances).

type fakeUsers struct {
	mu   sync.Mutex
	rows map[int]*models.User
	next int
}

func newFakeUsers() *fakeUsers { return &fakeUsers{rows: map[int]*models.User{}} }

func (f *fakeUsers) Create(_ context.Context, u *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.rows {
		if existing.Email == u.Email {
			return fmt.Errorf("%w: users_email_key", repositories.ErrConflict)
		}
	}
	f.next++
	u.ID = f.next
	c := *u
	f.rows[u.ID] = &c
	return nil
}

func (f *fakeUsers) Get(_ context.Context, id int) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.rows[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	c := *u
	return &c, nil
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.rows {
		if u.Email == email {
			c := *u
			return &c, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeUsers) List(_ context.Context, _, _ int) ([]*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []*models.User{}
	for _, u := range f.rows {
		c := *u
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeUsers) Update(_ context.Context, u *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.rows[u.ID]; !ok {
		return repositories.ErrNotFound
	}
	c := *u
	f.rows[u.ID] = &c
	return nil
}

func (f *fakeUsers) Delete(_ context.Context, id int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.rows[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.rows, id)
	return nil
}

func (f *fakeUsers) CountActive(_ context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, u := range f.rows {
		if u.IsActive {
			n++
		}
	}
	return n, nil
}

func (f *fakeUsers) mutate(id int, fn func(*models.User)) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.rows[id]
	if !ok {
		return repositories.ErrNotFound
	}
	fn(u)
	return nil
}

func (f *fakeUsers) SetTOTPSecret(_ context.Context, id int, secret string) error {
	return f.mutate(id, func(u *models.User) { u.TOTPSecret = secret })
}

func (f *fakeUsers) EnableTOTP(_ context.Context, id int) error {
	return f.mutate(id, func(u *models.User) { u.TOTPEnabled = true })
}

func (f *fakeUsers) DisableTOTP(_ context.Context, id int) error {
	return f.mutate(id, func(u *models.User) { u.TOTPEnabled = false; u.TOTPSecret = "" })
}

type fakeCompanies struct {
	rows []*models.Company
}

func (f *fakeCompanies) Create(_ context.Context, name string, logo *string) (*models.Company, error) {
	for _, c := range f.rows {
		if c.Name == name {
			return nil, repositories.ErrConflict
		}
	}
	c := &models.Company{ID: len(f.rows) + 1, Name: name, Logo: logo}
	f.rows = append(f.rows, c)
	return c, nil
}

func (f *fakeCompanies) Ensure(ctx context.Context, name string) (*models.Company, error) {
	for _, c := range f.rows {
		if c.Name == name {
			return c, nil
		}
	}
	return f.Create(ctx, name, nil)
}

func (f *fakeCompanies) Get(_ context.Context, id int) (*models.Company, error) {
	for _, c := range f.rows {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeCompanies) List(_ context.Context) ([]*models.Company, error) {
	return f.rows, nil
}

type fakeProfiles struct {
	rows map[int]*models.EmployeeProfile
	next int
}

func newFakeProfiles() *fakeProfiles { return &fakeProfiles{rows: map[int]*models.EmployeeProfile{}} }

func (f *fakeProfiles) Create(_ context.Context, p *models.EmployeeProfile) error {
	for _, existing := range f.rows {
		if existing.UserID == p.UserID || existing.EmployeeCode == p.EmployeeCode {
			return repositories.ErrConflict
		}
	}
	f.next++
	p.ID = f.next
	c := *p
	f.rows[p.ID] = &c
	return nil
}

func (f *fakeProfiles) Get(_ context.Context, id int) (*models.EmployeeProfile, error) {
	p, ok := f.rows[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	c := *p
	return &c, nil
}

func (f *fakeProfiles) GetByUserID(_ context.Context, userID int) (*models.EmployeeProfile, error) {
	for _, p := range f.rows {
		if p.UserID == userID {
			c := *p
			return &c, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeProfiles) List(_ context.Context, _, _ int) ([]*models.EmployeeProfile, error) {
	out := []*models.EmployeeProfile{}
	for _, p := range f.rows {
		c := *p
		out = append(out, &c)
	}
	return out, nil
}

func (f *fakeProfiles) Update(_ context.Context, p *models.EmployeeProfile) error {
	if _, ok := f.rows[p.ID]; !ok {
		return repositories.ErrNotFound
	}
	c := *p
	f.rows[p.ID] = &c
	return nil
}

func (f *fakeProfiles) Count(_ context.Context) (int, error) { return len(f.rows), nil }

type fakeAttendance struct {
	rows map[int]*models.Attendance
	next int
}

func newFakeAttendance() *fakeAttendance { return &fakeAttendance{rows: map[int]*models.Attendance{}} }

func (f *fakeAttendance) find(profileID int, date time.Time) *models.Attendance {
	for _, a := range f.rows {
		if a.EmployeeProfileID == profileID && a.Date.Equal(date) {
			return a
		}
	}
	return nil
}

func (f *fakeAttendance) Get(_ context.Context, id int) (*models.Attendance, error) {
	a, ok := f.rows[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	c := *a
	return &c, nil
}

func (f *fakeAttendance) GetForDate(_ context.Context, profileID int, date time.Time, _ bool) (*models.Attendance, error) {
	a := f.find(profileID, date)
	if a == nil {
		return nil, repositories.ErrNotFound
	}
	c := *a
	return &c, nil
}

func (f *fakeAttendance) InsertCheckIn(_ context.Context, profileID int, date, at time.Time) (*models.Attendance, error) {
	if f.find(profileID, date) != nil {
		return nil, repositories.ErrConflict
	}
	f.next++
	a := &models.Attendance{ID: f.next, EmployeeProfileID: profileID, Date: date, CheckInTime: &at, Status: models.AttendancePresent}
	f.rows[a.ID] = a
	c := *a
	return &c, nil
}

func (f *fakeAttendance) MarkCheckIn(_ context.Context, id int, at time.Time) (*models.Attendance, error) {
	a, ok := f.rows[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	a.CheckInTime = &at
	a.Status = models.AttendancePresent
	c := *a
	return &c, nil
}

func (f *fakeAttendance) MarkCheckOut(_ context.Context, id int, at time.Time) (*models.Attendance, error) {
	a, ok := f.rows[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	a.CheckOutTime = &at
	c := *a
	return &c, nil
}

func (f *fakeAttendance) Upsert(_ context.Context, in *models.Attendance) (*models.Attendance, error) {
	a := f.find(in.EmployeeProfileID, in.Date)
	if a == nil {
		f.next++
		a = &models.Attendance{ID: f.next, EmployeeProfileID: in.EmployeeProfileID, Date: in.Date}
		f.rows[a.ID] = a
	}
	a.CheckInTime, a.CheckOutTime, a.Status, a.Notes = in.CheckInTime, in.CheckOutTime, in.Status, in.Notes
	c := *a
	return &c, nil
}

func (f *fakeAttendance) SetTimes(_ context.Context, id int, checkIn, checkOut *time.Time) error {
	a, ok := f.rows[id]
	if !ok {
		return repositories.ErrNotFound
	}
	a.CheckInTime, a.CheckOutTime = checkIn, checkOut
	return nil
}

func (f *fakeAttendance) List(_ context.Context, filter models.AttendanceFilter) ([]*models.Attendance, error) {
	out := []*models.Attendance{}
	for _, a := range f.rows {
		if filter.EmployeeProfileID > 0 && a.EmployeeProfileID != filter.EmployeeProfileID {
			continue
		}
		if !filter.From.IsZero() && a.Date.Before(filter.From) {
			continue
		}
		if !filter.To.IsZero() && a.Date.After(filter.To) {
			continue
		}
		c := *a
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (f *fakeAttendance) CountPresentOn(_ context.Context, date time.Time) (int, error) {
	n := 0
	for _, a := range f.rows {
		if a.Date.Equal(date) && (a.Status == models.AttendancePresent || a.Status == models.AttendanceHalfDay) {
			n++
		}
	}
	return n, nil
}

type fakeCorrections struct {
	rows map[int]*models.AttendanceCorrectionRequest
	next int
}

func newFakeCorrections() *fakeCorrections {
	return &fakeCorrections{rows: map[int]*models.AttendanceCorrectionRequest{}}
}

func (f *fakeCorrections) Create(ctx context.Context, c *models.AttendanceCorrectionRequest) (*models.AttendanceCorrectionRequest, error) {
	if pending, _ := f.HasPending(ctx, c.AttendanceID); pending {
		return nil, repositories.ErrConflict
	}
	f.next++
	stored := *c
	stored.ID = f.next
	f.rows[stored.ID] = &stored
	out := stored
	return &out, nil
}

func (f *fakeCorrections) Get(_ context.Context, id int, _ bool) (*models.AttendanceCorrectionRequest, error) {
	c, ok := f.rows[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	out := *c
	return &out, nil
}

func (f *fakeCorrections) HasPending(_ context.Context, attendanceID int) (bool, error) {
	for _, c := range f.rows {
		if c.AttendanceID == attendanceID && c.Status == models.CorrectionPending {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeCorrections) filter(keep func(*models.AttendanceCorrectionRequest) bool) []*models.AttendanceCorrectionRequest {
	out := []*models.AttendanceCorrectionRequest{}
	for _, c := range f.rows {
		if keep(c) {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out
}

func (f *fakeCorrections) ListByStatus(_ context.Context, status string) ([]*models.AttendanceCorrectionRequest, error) {
	return f.filter(func(c *models.AttendanceCorrectionRequest) bool { return c.Status == status }), nil
}

func (f *fakeCorrections) ListByRequester(_ context.Context, userID int) ([]*models.AttendanceCorrectionRequest, error) {
	return f.filter(func(c *models.AttendanceCorrectionRequest) bool { return c.RequestedByID == userID }), nil
}

func (f *fakeCorrections) Review(_ context.Context, id int, status string, reviewerID int, comments string, at time.Time) (*models.AttendanceCorrectionRequest, error) {
	c, ok := f.rows[id]
	if !ok || c.Status != models.CorrectionPending {
		return nil, repositories.ErrNotFound
	}
	c.Status, c.ReviewedByID, c.ReviewerComments, c.ReviewedAt = status, &reviewerID, comments, &at
	out := *c
	return &out, nil
}

func (f *fakeCorrections) CountPending(_ context.Context, userID int) (int, error) {
	return len(f.filter(func(c *models.AttendanceCorrectionRequest) bool {
		return c.Status == models.CorrectionPending && (userID == 0 || c.RequestedByID == userID)
	})), nil
}

type fakeSalaries struct {
	rows map[int]*models.SalaryStructure
	next int
}

func newFakeSalaries() *fakeSalaries { return &fakeSalaries{rows: map[int]*models.SalaryStructure{}} }

func (f *fakeSalaries) Create(ctx context.Context, s *models.SalaryStructure) (*models.SalaryStructure, error) {
	if _, err := f.GetByEmployee(ctx, s.EmployeeProfileID); err == nil {
		return nil, repositories.ErrConflict
	}
	f.next++
	stored := *s
	stored.ID = f.next
	f.rows[stored.ID] = &stored
	out := stored
	return &out, nil
}

func (f *fakeSalaries) Get(_ context.Context, id int) (*models.SalaryStructure, error) {
	s, ok := f.rows[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	out := *s
	return &out, nil
}

func (f *fakeSalaries) GetByEmployee(_ context.Context, profileID int) (*models.SalaryStructure, error) {
	for _, s := range f.rows {
		if s.EmployeeProfileID == profileID {
			out := *s
			return &out, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeSalaries) Update(_ context.Context, s *models.SalaryStructure) (*models.SalaryStructure, error) {
	if _, ok := f.rows[s.ID]; !ok {
		return nil, repositories.ErrNotFound
	}
	stored := *s
	f.rows[s.ID] = &stored
	out := stored
	return &out, nil
}

func (f *fakeSalaries) List(_ context.Context, _, _ int) ([]*models.SalaryStructure, error) {
	out := []*models.SalaryStructure{}
	for _, s := range f.rows {
		c := *s
		out = append(out, &c)
	}
	return out, nil
}

type balanceKey struct {
	profileID int
	leaveType string
	year      int
}

type fakeLeaves struct {
	rows     map[int]*models.LeaveRequest
	balances map[balanceKey]*models.LeaveBalance
	next     int
}

func newFakeLeaves() *fakeLeaves {
	return &fakeLeaves{rows: map[int]*models.LeaveRequest{}, balances: map[balanceKey]*models.LeaveBalance{}}
}

func (f *fakeLeaves) Create(_ context.Context, l *models.LeaveRequest) (*models.LeaveRequest, error) {
	f.next++
	stored := *l
	stored.ID = f.next
	f.rows[stored.ID] = &stored
	out := stored
	return &out, nil
}

func (f *fakeLeaves) Get(_ context.Context, id int, _ bool) (*models.LeaveRequest, error) {
	l, ok := f.rows[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	out := *l
	return &out, nil
}

func (f *fakeLeaves) ListByEmployee(_ context.Context, profileID int) ([]*models.LeaveRequest, error) {
	out := []*models.LeaveRequest{}
	for _, l := range f.rows {
		if l.EmployeeProfileID == profileID {
			c := *l
			out = append(out, &c)
		}
	}
	return out, nil
}

func (f *fakeLeaves) ListByStatus(_ context.Context, status string) ([]*models.LeaveRequest, error) {
	out := []*models.LeaveRequest{}
	for _, l := range f.rows {
		if l.Status == status {
			c := *l
			out = append(out, &c)
		}
	}
	return out, nil
}

func (f *fakeLeaves) SetStatus(_ context.Context, id int, status string, reviewerID *int, comments string, at *time.Time) (*models.LeaveRequest, error) {
	l, ok := f.rows[id]
	if !ok || l.Status != models.LeavePending {
		return nil, repositories.ErrNotFound
	}
	l.Status, l.ReviewedByID, l.ReviewerComments, l.ReviewedAt = status, reviewerID, comments, at
	out := *l
	return &out, nil
}

func (f *fakeLeaves) CountPending(ctx context.Context) (int, error) {
	pending, _ := f.ListByStatus(ctx, models.LeavePending)
	return len(pending), nil
}

func (f *fakeLeaves) GetBalance(_ context.Context, profileID int, leaveType string, year int) (*models.LeaveBalance, error) {
	b, ok := f.balances[balanceKey{profileID, leaveType, year}]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	out := *b
	return &out, nil
}

func (f *fakeLeaves) ListBalances(_ context.Context, profileID, year int) ([]*models.LeaveBalance, error) {
	out := []*models.LeaveBalance{}
	for k, b := range f.balances {
		if k.profileID == profileID && k.year == year {
			c := *b
			out = append(out, &c)
		}
	}
	return out, nil
}

func (f *fakeLeaves) Consume(_ context.Context, profileID int, leaveType string, year, days int) (*models.LeaveBalance, error) {
	b, ok := f.balances[balanceKey{profileID, leaveType, year}]
	if !ok || b.RemainingDays < days {
		return nil, repositories.ErrNotFound
	}
	b.UsedDays += days
	b.RemainingDays -= days
	out := *b
	return &out, nil
}

func (f *fakeLeaves) Allocate(_ context.Context, profileID int, leaveType string, year, total int) (*models.LeaveBalance, error) {
	k := balanceKey{profileID, leaveType, year}
	b, ok := f.balances[k]
	if !ok {
		b = &models.LeaveBalance{ID: len(f.balances) + 1, EmployeeProfileID: profileID, LeaveType: leaveType, Year: year}
		f.balances[k] = b
	}
	if total < b.UsedDays {
		return nil, repositories.ErrCheckViolation
	}
	b.TotalDays = total
	b.RemainingDays = total - b.UsedDays
	out := *b
	return &out, nil
}

type fakeSettings struct {
	rows map[int]*models.UserSettings
}

func (f *fakeSettings) GetOrCreate(_ context.Context, userID int) (*models.UserSettings, error) {
	s, ok := f.rows[userID]
	if !ok {
		s = &models.UserSettings{ID: len(f.rows) + 1, UserID: userID, ReceiveNotifications: true,
			Theme: models.DefaultTheme, Language: models.DefaultLanguage}
		f.rows[userID] = s
	}
	out := *s
	return &out, nil
}

func (f *fakeSettings) Update(_ context.Context, s *models.UserSettings) error {
	if _, ok := f.rows[s.UserID]; !ok {
		return repositories.ErrNotFound
	}
	c := *s
	f.rows[s.UserID] = &c
	return nil
}

type fakeActivity struct {
	entries []*models.ActivityLog
	fail    bool
}

func (f *fakeActivity) Create(_ context.Context, userID int, action, details string) error {
	if f.fail {
		return fmt.Errorf("insert activity_logs: connection reset")
	}
	f.entries = append(f.entries, &models.ActivityLog{ID: len(f.entries) + 1, UserID: userID, Action: action, Details: details})
	return nil
}

func (f *fakeActivity) List(_ context.Context, _, _ int) ([]*models.ActivityLog, error) {
	return f.entries, nil
}

func (f *fakeActivity) actions() []string {
	out := make([]string, 0, len(f.entries))
	for _, e := range f.entries {
		out = append(out, e.Action)
	}
	return out
}

type fakeIssuer struct{}

func (fakeIssuer) GenerateToken(u *models.User) (string, error) {
	return fmt.Sprintf("token-%d", u.ID), nil
}

func (fakeIssuer) TTL() time.Duration { return time.Hour }

type fakeRevoker struct {
	revoked map[string]time.Duration
	err     error
}

func (f *fakeRevoker) Revoke(_ context.Context, id string, ttl time.Duration) error {
	if f.err != nil {
		return f.err
	}
	f.revoked[id] = ttl
	return nil
}

func (f *fakeRevoker) IsRevoked(_ context.Context, id string) bool {
	_, ok := f.revoked[id]
	return ok
}

type fakeUploader struct {
	puts map[string][]byte
}

func (f *fakeUploader) Put(_ context.Context, profileID int, pdf []byte, at time.Time) (string, string, error) {
	key := fmt.Sprintf("payslips/%d/%s.pdf", profileID, at.Format("20060102"))
	f.puts[key] = pdf
	return "slips", key, nil
}
