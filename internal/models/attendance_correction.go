package models

import "time"

const (
	CorrectionPending  = "pending"
	CorrectionApproved = "approved"
	CorrectionRejected = "rejected"
)

type AttendanceCorrectionRequest struct {
	ID                    int        `json:"id"`
	AttendanceID          int        `json:"attendance_id"`
	RequestedByID         int        `json:"requested_by_id"`
	Reason                string     `json:"reason"`
	RequestedCheckInTime  *time.Time `json:"requested_check_in_time"`
	RequestedCheckOutTime *time.Time `json:"requested_check_out_time"`
	Status                string     `json:"status"`
	ReviewedByID          *int       `json:"reviewed_by_id"`
	ReviewedAt            *time.Time `json:"reviewed_at"`
	ReviewerComments      string     `json:"reviewer_comments"`
	CreatedAt             time.Time  `json:"created_at"`
}

type CreateCorrectionRequest struct {
	AttendanceID          int        `json:"attendance_id"`
	Reason                string     `json:"reason"`
	RequestedCheckInTime  *time.Time `json:"requested_check_in_time"`
	RequestedCheckOutTime *time.Time `json:"requested_check_out_time"`
}

type ReviewRequest struct {
	ReviewerComments string `json:"reviewer_comments"`
}
