package models

import "time"

const (
	AttendancePresent = "present"
	AttendanceAbsent  = "absent"
	AttendanceHalfDay = "half_day"
	AttendanceLeave   = "leave"
)

func ValidAttendanceStatus(s string) bool {
	switch s {
	case AttendancePresent, AttendanceAbsent, AttendanceHalfDay, AttendanceLeave:
		return true
	}
	return false
}

// Attendance is one employee's record for one calendar day.
type Attendance struct {
	ID                int        `json:"id"`
	EmployeeProfileID int        `json:"employee_profile_id"`
	Date              time.Time  `json:"date"`
	CheckInTime       *time.Time `json:"check_in_time"`
	CheckOutTime      *time.Time `json:"check_out_time"`
	Status            string     `json:"status"`
	Notes             string     `json:"notes"`
}

// ManualAttendanceRequest overwrites the (employee, date) record
type ManualAttendanceRequest struct {
	EmployeeProfileID int        `json:"employee_profile_id"`
	Date              string     `json:"date"` // YYYY-MM-DD
	CheckInTime       *time.Time `json:"check_in_time"`
	CheckOutTime      *time.Time `json:"check_out_time"`
	Status            string     `json:"status"`
	Notes             string     `json:"notes"`
}

// AttendanceFilter narrows list queries. Zero values mean "no filter".
type AttendanceFilter struct {
	EmployeeProfileID int
	From              time.Time
	To                time.Time
	Skip              int
	Limit             int
}
