package models

type EmployeeDashboard struct {
	Profile                *EmployeeProfile `json:"profile"`
	TodayAttendance        *Attendance      `json:"today_attendance"`
	LeaveBalances          []LeaveBalance   `json:"leave_balances"`
	PendingCorrectionCount int              `json:"pending_correction_count"`
}

type AdminDashboard struct {
	EmployeeCount             int `json:"employee_count"`
	ActiveEmployeeCount       int `json:"active_employee_count"`
	PendingLeaveRequestsCount int `json:"pending_leave_requests_count"`
	PendingCorrectionsCount   int `json:"pending_corrections_count"`
	PresentTodayCount         int `json:"present_today_count"`
}
