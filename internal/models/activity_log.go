package models

import "time"

type ActivityLog struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	Action    string    `json:"action"`
	Details   string    `json:"details"`
	Timestamp time.Time `json:"timestamp"`
}

// Actions recorded in the activity log
const (
	ActionRegister          = "user_registered"
	ActionLogin             = "user_logged_in"
	ActionLogout            = "user_logged_out"
	ActionUserCreated       = "user_created"
	ActionUserDeleted       = "user_deleted"
	ActionCorrectionCreated = "correction_requested"
	ActionCorrectionApprove = "correction_approved"
	ActionCorrectionReject  = "correction_rejected"
	ActionLeaveApplied      = "leave_applied"
	ActionLeaveApproved     = "leave_approved"
	ActionLeaveRejected     = "leave_rejected"
	ActionLeaveCancelled    = "leave_cancelled"
	ActionSalaryCreated     = "salary_structure_created"
	ActionSalaryUpdated     = "salary_structure_updated"
	ActionManualAttendance  = "attendance_manual_entry"
)
