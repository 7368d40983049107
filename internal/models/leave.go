package models

import "time"

const (
	LeavePaid   = "paid"
	LeaveSick   = "sick"
	LeaveUnpaid = "unpaid"
)

const (
	LeavePending   = "pending"
	LeaveApproved  = "approved"
	LeaveRejected  = "rejected"
	LeaveCancelled = "cancelled"
)

func ValidLeaveType(t string) bool {
	switch t {
	case LeavePaid, LeaveSick, LeaveUnpaid:
		return true
	}
	return false
}

// TracksBalance reports whether the leave type draws from a balance row.
func TracksBalance(t string) bool {
	return t == LeavePaid || t == LeaveSick
}

type LeaveRequest struct {
	ID                int        `json:"id"`
	EmployeeProfileID int        `json:"employee_profile_id"`
	LeaveType         string     `json:"leave_type"`
	StartDate         time.Time  `json:"start_date"`
	EndDate           time.Time  `json:"end_date"`
	TotalDays         int        `json:"total_days"`
	Reason            string     `json:"reason"`
	Status            string     `json:"status"`
	ReviewedByID      *int       `json:"reviewed_by_id"`
	ReviewedAt        *time.Time `json:"reviewed_at"`
	ReviewerComments  string     `json:"reviewer_comments"`
	CreatedAt         time.Time  `json:"created_at"`
}

type LeaveBalance struct {
	ID                int    `json:"id"`
	EmployeeProfileID int    `json:"employee_profile_id"`
	LeaveType         string `json:"leave_type"`
	Year              int    `json:"year"`
	TotalDays         int    `json:"total_days"`
	UsedDays          int    `json:"used_days"`
	RemainingDays     int    `json:"remaining_days"`
}

type ApplyLeaveRequest struct {
	EmployeeProfileID *int   `json:"employee_profile_id"` // privileged callers only
	LeaveType         string `json:"leave_type"`
	StartDate         string `json:"start_date"` // YYYY-MM-DD
	EndDate           string `json:"end_date"`
	TotalDays         *int   `json:"total_days"`
	Reason            string `json:"reason"`
}

// AllocateLeaveRequest sets the total days for a balance row
type AllocateLeaveRequest struct {
	EmployeeProfileID int    `json:"employee_profile_id"`
	LeaveType         string `json:"leave_type"`
	Year              int    `json:"year"`
	TotalDays         int    `json:"total_days"`
}
