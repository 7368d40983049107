package services

import (
	"context"
	"testing"
	"time"

	"hrms-backend/internal/auth"
	"hrms-backend/internal/models"
	"hrms-backend/internal/timeutil"
)

type testEnv struct {
	clock time.Time

	users       *fakeUsers
	companies   *fakeCompanies
	profiles    *fakeProfiles
	attendance  *fakeAttendance
	corrections *fakeCorrections
	salaries    *fakeSalaries
	leaves      *fakeLeaves
	settings    *fakeSettings
	activityLog *fakeActivity
	revoker     *fakeRevoker

	activity    *ActivityService
	auth        *AuthService
	userSvc     *UserService
	employees   *EmployeeService
	attendSvc   *AttendanceService
	correctSvc  *CorrectionService
	leaveSvc    *LeaveService
	salarySvc   *SalaryService
	settingsSvc *SettingsService
	dashboard   *DashboardService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	e := &testEnv{
		clock:       time.Date(2025, time.March, 10, 9, 0, 0, 0, timeutil.Location),
		users:       newFakeUsers(),
		companies:   &fakeCompanies{},
		profiles:    newFakeProfiles(),
		attendance:  newFakeAttendance(),
		corrections: newFakeCorrections(),
		salaries:    newFakeSalaries(),
		leaves:      newFakeLeaves(),
		settings:    &fakeSettings{rows: map[int]*models.UserSettings{}},
		activityLog: &fakeActivity{},
		revoker:     &fakeRevoker{revoked: map[string]time.Duration{}},
	}
	e.activity = NewActivityService(e.activityLog, nil)
	e.auth = NewAuthService(nil, e.users, e.profiles, e.companies, e.settings, fakeIssuer{}, e.revoker, e.activity, "Dayflow", nil)
	e.auth.Now = e.now
	e.userSvc = NewUserService(nil, e.users, e.settings, e.activity)
	e.employees = NewEmployeeService(e.users, e.profiles)
	e.attendSvc = NewAttendanceService(nil, e.profiles, e.attendance, e.activity)
	e.attendSvc.Now = e.now
	e.correctSvc = NewCorrectionService(nil, e.profiles, e.attendance, e.corrections, e.activity)
	e.correctSvc.Now = e.now
	e.leaveSvc = NewLeaveService(nil, e.profiles, e.leaves, e.activity)
	e.leaveSvc.Now = e.now
	e.salarySvc = NewSalaryService(e.profiles, e.salaries, nil, e.activity)
	e.salarySvc.Now = e.now
	e.settingsSvc = NewSettingsService(nil, e.settings)
	e.dashboard = NewDashboardService(e.users, e.profiles, e.attendance, e.corrections, e.leaves)
	e.dashboard.Now = e.now
	return e
}

func (e *testEnv) now() time.Time { return e.clock }

func (e *testEnv) advance(d time.Duration) { e.clock = e.clock.Add(d) }

func actorOf(u *models.User) auth.Actor {
	return auth.Actor{UserID: u.ID, Email: u.Email, Role: u.Role}
}

// employee registers a self-service account and returns its actor and profile
func (e *testEnv) employee(t *testing.T, email string) (auth.Actor, *models.EmployeeProfile) {
	t.Helper()
	ctx := context.Background()
	u, err := e.auth.Register(ctx, &models.RegisterRequest{Email: email, Password: "secret123", FirstName: "Test", LastName: "User"})
	if err != nil {
		t.Fatalf("register %s: %v", email, err)
	}
	p, err := e.profiles.GetByUserID(ctx, u.ID)
	if err != nil {
		t.Fatalf("profile for %s: %v", email, err)
	}
	return actorOf(u), p
}

// staff creates an account with a privileged role and no profile
func (e *testEnv) staff(t *testing.T, email, role string) auth.Actor {
	t.Helper()
	u, err := e.userSvc.Create(context.Background(), auth.Actor{Role: models.RoleAdmin},
		&models.CreateUserRequest{Email: email, Password: "secret123", Role: role})
	if err != nil {
		t.Fatalf("create %s: %v", email, err)
	}
	return actorOf(u)
}

func wantKind(t *testing.T, err error, k Kind, msg string) {
	t.Helper()
	if !IsKind(err, k) {
		t.Fatalf("expected %s error, got %v", k, err)
	}
	if msg != "" && err.Error() != msg {
		t.Fatalf("expected message %q, got %q", msg, err.Error())
	}
}
