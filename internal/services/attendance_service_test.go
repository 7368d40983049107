package services

import (
	"context"
	"testing"
	"time"

	"hrms-backend/internal/auth"
	"hrms-backend/internal/models"
)

func TestCheckIn_TwiceSameDay(t *testing.T) {
	e := newTestEnv(t)
	actor, _ := e.employee(t, "ann@x.com")
	ctx := context.Background()

	if _, err := e.attendSvc.CheckIn(ctx, actor); err != nil {
		t.Fatalf("first check-in: %v", err)
	}
	_, err := e.attendSvc.CheckIn(ctx, actor)
	wantKind(t, err, KindConflict, "Already checked in for today")
}

func TestCheckOut_WithoutCheckIn(t *testing.T) {
	e := newTestEnv(t)
	actor, _ := e.employee(t, "ben@x.com")

	_, err := e.attendSvc.CheckOut(context.Background(), actor)
	wantKind(t, err, KindConflict, "You have not checked in today")
}

func TestCheckIn_NextDayStartsNewRecord(t *testing.T) {
	e := newTestEnv(t)
	actor, _ := e.employee(t, "cat@x.com")
	ctx := context.Background()

	if _, err := e.attendSvc.CheckIn(ctx, actor); err != nil {
		t.Fatalf("day one: %v", err)
	}
	e.advance(24 * time.Hour)
	if _, err := e.attendSvc.CheckIn(ctx, actor); err != nil {
		t.Fatalf("day two: %v", err)
	}
	history, err := e.attendSvc.Me(ctx, actor, 0, 10)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 2 || !history[0].Date.After(history[1].Date) {
		t.Fatalf("expected two records newest first, got %+v", history)
	}
}

func TestCheckIn_OnExistingRecordWithoutCheckIn(t *testing.T) {
	e := newTestEnv(t)
	actor, profile := e.employee(t, "dee@x.com")
	hr := e.staff(t, "hr@x.com", models.RoleHROfficer)
	ctx := context.Background()

	_, err := e.attendSvc.Manual(ctx, hr, &models.ManualAttendanceRequest{
		EmployeeProfileID: profile.ID,
		Date:              e.clock.Format("2006-01-02"),
		Status:            models.AttendanceAbsent,
	})
	if err != nil {
		t.Fatalf("manual: %v", err)
	}

	rec, err := e.attendSvc.CheckIn(ctx, actor)
	if err != nil {
		t.Fatalf("check-in: %v", err)
	}
	if rec.Status != models.AttendancePresent || rec.CheckInTime == nil {
		t.Fatalf("expected record flipped to present, got %+v", rec)
	}
}

func TestCheckIn_NoProfile(t *testing.T) {
	e := newTestEnv(t)
	hr := e.staff(t, "hr@x.com", models.RoleHROfficer)

	_, err := e.attendSvc.CheckIn(context.Background(), hr)
	wantKind(t, err, KindNotFound, "Employee profile not found for this user")
}

func TestManual_Idempotent(t *testing.T) {
	e := newTestEnv(t)
	_, profile := e.employee(t, "eve@x.com")
	hr := e.staff(t, "hr@x.com", models.RoleHROfficer)
	ctx := context.Background()

	in := e.clock
	out := e.clock.Add(4 * time.Hour)
	req := &models.ManualAttendanceRequest{
		EmployeeProfileID: profile.ID,
		Date:              "2025-03-07",
		CheckInTime:       &in,
		CheckOutTime:      &out,
		Status:            models.AttendanceHalfDay,
		Notes:             "doctor",
	}

	first, err := e.attendSvc.Manual(ctx, hr, req)
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	second, err := e.attendSvc.Manual(ctx, hr, req)
	if err != nil {
		t.Fatalf("second: %v", err)
	}
	if first.ID != second.ID || second.Status != models.AttendanceHalfDay || second.Notes != "doctor" {
		t.Fatalf("manual entry not idempotent: %+v vs %+v", first, second)
	}
	if len(e.attendance.rows) != 1 {
		t.Fatalf("expected one record, got %d", len(e.attendance.rows))
	}
}

func TestManual_Validation(t *testing.T) {
	e := newTestEnv(t)
	_, profile := e.employee(t, "fin@x.com")
	hr := e.staff(t, "hr@x.com", models.RoleHROfficer)
	ctx := context.Background()
	in := e.clock
	before := e.clock.Add(-time.Hour)

	cases := []struct {
		name string
		req  models.ManualAttendanceRequest
		kind Kind
	}{
		{"bad status", models.ManualAttendanceRequest{EmployeeProfileID: profile.ID, Date: "2025-03-07", Status: "vacation"}, KindInvalid},
		{"check-out without check-in", models.ManualAttendanceRequest{EmployeeProfileID: profile.ID, Date: "2025-03-07", CheckOutTime: &in}, KindInvalid},
		{"check-out before check-in", models.ManualAttendanceRequest{EmployeeProfileID: profile.ID, Date: "2025-03-07", CheckInTime: &in, CheckOutTime: &before}, KindInvalid},
		{"bad date", models.ManualAttendanceRequest{EmployeeProfileID: profile.ID, Date: "07/03/2025"}, KindInvalid},
		{"unknown profile", models.ManualAttendanceRequest{EmployeeProfileID: 999, Date: "2025-03-07"}, KindNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := tc.req
			_, err := e.attendSvc.Manual(ctx, hr, &req)
			wantKind(t, err, tc.kind, "")
		})
	}
}

func TestWeekly_MondayToSunday(t *testing.T) {
	e := newTestEnv(t)
	_, profile := e.employee(t, "gil@x.com")
	hr := e.staff(t, "hr@x.com", models.RoleHROfficer)
	ctx := context.Background()

	for _, d := range []string{"2025-03-09", "2025-03-10", "2025-03-16", "2025-03-17"} {
		if _, err := e.attendSvc.Manual(ctx, hr, &models.ManualAttendanceRequest{EmployeeProfileID: profile.ID, Date: d}); err != nil {
			t.Fatalf("manual %s: %v", d, err)
		}
	}

	// 2025-03-12 is a Wednesday; its week runs 10th..16th
	week, err := e.attendSvc.Weekly(ctx, time.Date(2025, 3, 12, 0, 0, 0, 0, e.clock.Location()))
	if err != nil {
		t.Fatalf("weekly: %v", err)
	}
	if len(week) != 2 {
		t.Fatalf("expected 2 records in week, got %d", len(week))
	}

	daily, err := e.attendSvc.Daily(ctx, time.Time{})
	if err != nil {
		t.Fatalf("daily: %v", err)
	}
	if len(daily) != 1 {
		t.Fatalf("expected today's record only, got %d", len(daily))
	}
}

func TestByEmployee_Access(t *testing.T) {
	e := newTestEnv(t)
	owner, profile := e.employee(t, "hana@x.com")
	other, _ := e.employee(t, "ivan@x.com")
	hr := e.staff(t, "hr@x.com", models.RoleHROfficer)
	ctx := context.Background()

	for _, actor := range []auth.Actor{owner, hr} {
		if _, err := e.attendSvc.ByEmployee(ctx, actor, profile.ID, 0, 10); err != nil {
			t.Fatalf("%s should see history: %v", actor.Email, err)
		}
	}
	_, err := e.attendSvc.ByEmployee(ctx, other, profile.ID, 0, 10)
	wantKind(t, err, KindForbidden, "")
}
