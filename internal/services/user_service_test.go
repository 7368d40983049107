package services

import (
	"context"
	"testing"

	"hrms-backend/internal/models"
)

func TestUsers_AccessRules(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	owner, _ := e.employee(t, "el@x.com")
	other, _ := e.employee(t, "fo@x.com")
	admin := e.staff(t, "admin@x.com", models.RoleAdmin)

	if _, err := e.userSvc.Get(ctx, owner, owner.UserID); err != nil {
		t.Fatalf("self get: %v", err)
	}
	_, err := e.userSvc.Get(ctx, other, owner.UserID)
	wantKind(t, err, KindForbidden, "")
	_, err = e.userSvc.Get(ctx, admin, 999)
	wantKind(t, err, KindNotFound, "User not found")

	role := models.RoleAdmin
	_, err = e.userSvc.Update(ctx, owner, owner.UserID, &models.UpdateUserRequest{Role: &role})
	wantKind(t, err, KindForbidden, "")

	updated, err := e.userSvc.Update(ctx, admin, owner.UserID, &models.UpdateUserRequest{Role: &role})
	if err != nil {
		t.Fatalf("admin update: %v", err)
	}
	if updated.Role != models.RoleAdmin {
		t.Fatalf("role not changed: %+v", updated)
	}
}

func TestUsers_HROfficerCannotTouchOtherAccounts(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	hr := e.staff(t, "hr@x.com", models.RoleHROfficer)
	admin := e.staff(t, "admin@x.com", models.RoleAdmin)
	emp, _ := e.employee(t, "ivy@x.com")

	_, err := e.userSvc.Get(ctx, hr, admin.UserID)
	wantKind(t, err, KindForbidden, "")
	_, err = e.userSvc.Get(ctx, hr, emp.UserID)
	wantKind(t, err, KindForbidden, "")

	pw, email := "hijacked1", "hr-owned@x.com"
	_, err = e.userSvc.Update(ctx, hr, admin.UserID, &models.UpdateUserRequest{Password: &pw, Email: &email})
	wantKind(t, err, KindForbidden, "")
	_, err = e.userSvc.Update(ctx, hr, emp.UserID, &models.UpdateUserRequest{Password: &pw})
	wantKind(t, err, KindForbidden, "")

	if _, err := e.auth.Login(ctx, &models.LoginRequest{Email: "admin@x.com", Password: "secret123"}); err != nil {
		t.Fatalf("admin credentials changed: %v", err)
	}
	if _, err := e.userSvc.Update(ctx, hr, hr.UserID, &models.UpdateUserRequest{Password: &pw}); err != nil {
		t.Fatalf("hr self update: %v", err)
	}
}

func TestUsers_SelfUpdatePassword(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	owner, _ := e.employee(t, "gia@x.com")

	pw := "n3wpassword"
	if _, err := e.userSvc.Update(ctx, owner, owner.UserID, &models.UpdateUserRequest{Password: &pw}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if _, err := e.auth.Login(ctx, &models.LoginRequest{Email: "gia@x.com", Password: pw}); err != nil {
		t.Fatalf("login with new password: %v", err)
	}
}

func TestUsers_CreateAndDelete(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	admin := e.staff(t, "admin@x.com", models.RoleAdmin)

	_, err := e.userSvc.Create(ctx, admin, &models.CreateUserRequest{Email: "x@x.com", Password: "p", Role: "boss"})
	wantKind(t, err, KindInvalid, "")
	_, err = e.userSvc.Create(ctx, admin, &models.CreateUserRequest{Email: "admin@x.com", Password: "secret1"})
	wantKind(t, err, KindConflict, "Email already registered")
	_, err = e.userSvc.Create(ctx, admin, &models.CreateUserRequest{Email: "short@x.com", Password: "p"})
	wantKind(t, err, KindInvalid, "Password must be at least 6 characters")

	u, err := e.userSvc.Create(ctx, admin, &models.CreateUserRequest{Email: "hr2@x.com", Password: "secret1", Role: models.RoleHROfficer})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := e.userSvc.Delete(ctx, admin, u.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	wantKind(t, e.userSvc.Delete(ctx, admin, u.ID), KindNotFound, "User not found")
}

func TestEmployees_UpdateRules(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	owner, profile := e.employee(t, "hu@x.com")
	hr := e.staff(t, "hr@x.com", models.RoleHROfficer)

	phone := "555-0100"
	p, err := e.employees.Update(ctx, owner, profile.ID, &models.UpdateEmployeeProfileRequest{Phone: &phone})
	if err != nil {
		t.Fatalf("self update: %v", err)
	}
	if p.Phone != phone {
		t.Fatalf("phone not updated")
	}

	code := "HR-1"
	_, err = e.employees.Update(ctx, owner, profile.ID, &models.UpdateEmployeeProfileRequest{EmployeeCode: &code})
	wantKind(t, err, KindForbidden, "")

	joined := "2024-01-15"
	p, err = e.employees.Update(ctx, hr, profile.ID, &models.UpdateEmployeeProfileRequest{EmployeeCode: &code, DateOfJoining: &joined})
	if err != nil {
		t.Fatalf("hr update: %v", err)
	}
	if p.EmployeeCode != code || p.DateOfJoining == nil || p.DateOfJoining.Format("2006-01-02") != joined {
		t.Fatalf("unexpected profile %+v", p)
	}
}

func TestSettings_DefaultsAndUpdate(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	admin := e.staff(t, "admin@x.com", models.RoleAdmin)
	delete(e.settings.rows, admin.UserID)

	s, err := e.settingsSvc.Get(ctx, admin)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !s.ReceiveNotifications || s.Theme != "light" || s.Language != "en" {
		t.Fatalf("unexpected defaults %+v", s)
	}

	dark := "Dark"
	s, err = e.settingsSvc.Update(ctx, admin, &models.UpdateSettingsRequest{Theme: &dark})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if s.Theme != "dark" {
		t.Fatalf("theme not updated: %+v", s)
	}

	neon := "neon"
	_, err = e.settingsSvc.Update(ctx, admin, &models.UpdateSettingsRequest{Theme: &neon})
	wantKind(t, err, KindInvalid, "")
}

func TestDashboard_Counts(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	actor, profile := e.employee(t, "ivy@x.com")
	e.employee(t, "jay@x.com")
	_, _ = e.leaveSvc.Allocate(ctx, &models.AllocateLeaveRequest{EmployeeProfileID: profile.ID, LeaveType: models.LeavePaid, TotalDays: 4})
	_, _ = e.leaveSvc.Apply(ctx, actor, &models.ApplyLeaveRequest{LeaveType: "paid", StartDate: "2025-03-20", EndDate: "2025-03-20"})
	rec, _ := e.attendSvc.CheckIn(ctx, actor)
	_, _ = e.correctSvc.Create(ctx, actor, &models.CreateCorrectionRequest{AttendanceID: rec.ID})

	mine, err := e.dashboard.Employee(ctx, actor)
	if err != nil {
		t.Fatalf("employee dashboard: %v", err)
	}
	if mine.TodayAttendance == nil || len(mine.LeaveBalances) != 1 || mine.PendingCorrectionCount != 1 {
		t.Fatalf("unexpected employee dashboard %+v", mine)
	}

	admin, err := e.dashboard.Admin(ctx)
	if err != nil {
		t.Fatalf("admin dashboard: %v", err)
	}
	want := models.AdminDashboard{EmployeeCount: 2, ActiveEmployeeCount: 2, PendingLeaveRequestsCount: 1, PendingCorrectionsCount: 1, PresentTodayCount: 1}
	if *admin != want {
		t.Fatalf("got %+v, want %+v", *admin, want)
	}
}
