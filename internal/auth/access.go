package auth

import "hrms-backend/internal/models"

// PrivilegedRoles may act on any employee's resources.
var PrivilegedRoles = []string{models.RoleAdmin, models.RoleHROfficer}

// Actor is the authenticated caller.
type Actor struct {
	UserID int
	Email  string
	Role   string
}

// HasRole reports whether role is one of roles.
func HasRole(role string, roles ...string) bool {
	for _, r := range roles {
		if role == r {
			return true
		}
	}
	return false
}

func IsPrivileged(role string) bool {
	return HasRole(role, PrivilegedRoles...)
}

// CanAccess is the single ownership predicate: the owner of a resource, or a
// caller holding one of roles, may act on it.
func CanAccess(actor Actor, ownerUserID int, roles ...string) bool {
	if actor.UserID != 0 && actor.UserID == ownerUserID {
		return true
	}
	return HasRole(actor.Role, roles...)
}
