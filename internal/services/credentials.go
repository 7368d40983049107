package services

import (
	"errors"

	"hrms-backend/internal/auth"
)

// hashPassword turns a too-short password into a validation error so every
// account path reports it the same way.
func hashPassword(password string) (string, error) {
	hash, err := auth.HashPassword(password)
	if errors.Is(err, auth.ErrPasswordTooShort) {
		return "", Invalid("Password must be at least 6 characters")
	}
	return hash, err
}
