package models

import "time"

// EmployeeProfile is the employment record linked 1:1 to a user account.
type EmployeeProfile struct {
	ID            int        `json:"id"`
	UserID        int        `json:"user_id"`
	CompanyID     *int       `json:"company_id"`
	EmployeeCode  string     `json:"employee_code"`
	FirstName     string     `json:"first_name"`
	LastName      string     `json:"last_name"`
	Phone         string     `json:"phone"`
	Address       string     `json:"address"`
	Designation   string     `json:"designation"`
	Department    string     `json:"department"`
	DateOfJoining *time.Time `json:"date_of_joining"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

type CreateEmployeeProfileRequest struct {
	UserID        int    `json:"user_id"`
	CompanyID     *int   `json:"company_id"`
	EmployeeCode  string `json:"employee_code"`
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	Designation   string `json:"designation"`
	Department    string `json:"department"`
	DateOfJoining string `json:"date_of_joining"` // YYYY-MM-DD
}

// UpdateEmployeeProfileRequest is a partial update. CompanyID and EmployeeCode
// are only honoured for privileged callers.
type UpdateEmployeeProfileRequest struct {
	CompanyID     *int    `json:"company_id"`
	EmployeeCode  *string `json:"employee_code"`
	FirstName     *string `json:"first_name"`
	LastName      *string `json:"last_name"`
	Phone         *string `json:"phone"`
	Address       *string `json:"address"`
	Designation   *string `json:"designation"`
	Department    *string `json:"department"`
	DateOfJoining *string `json:"date_of_joining"`
}
