package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"hrms-backend/internal/auth"
	"hrms-backend/internal/models"
	"hrms-backend/internal/repositories"
)

// UserService manages accounts on behalf of administrators and their owners.
type UserService struct {
	TX       TxManager
	Users    UserStore
	Settings SettingsStore
	Activity *ActivityService
}

func NewUserService(tx TxManager, users UserStore, settings SettingsStore, activity *ActivityService) *UserService {
	if tx == nil {
		tx = noTx{}
	}
	return &UserService{TX: tx, Users: users, Settings: settings, Activity: activity}
}

func (s *UserService) List(ctx context.Context, skip, limit int) ([]*models.User, error) {
	return s.Users.List(ctx, skip, limit)
}

// Create adds an account with any role. Admin only, enforced at the route.
func (s *UserService) Create(ctx context.Context, actor auth.Actor, req *models.CreateUserRequest) (*models.User, error) {
	email := normalizeEmail(req.Email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, Invalid("A valid email is required")
	}
	role := req.Role
	if role == "" {
		role = models.RoleEmployee
	}
	if !models.ValidRole(role) {
		return nil, Invalidf("Unknown role %q", role)
	}
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	user := &models.User{Email: email, PasswordHash: hash, Role: role, IsActive: active}

	err = s.TX.WithinReadWrite(ctx, func(ctx context.Context) error {
		if err := s.Users.Create(ctx, user); err != nil {
			if errors.Is(err, repositories.ErrConflict) {
				return Conflict(msgEmailRegistered)
			}
			return err
		}
		_, err := s.Settings.GetOrCreate(ctx, user.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.Activity.Record(ctx, actor.UserID, models.ActionUserCreated, fmt.Sprintf("User %s created with role %s.", user.Email, user.Role))
	return user, nil
}

// Get returns an account to its owner or an administrator
func (s *UserService) Get(ctx context.Context, actor auth.Actor, id int) (*models.User, error) {
	user, err := s.Users.Get(ctx, id)
	if err != nil {
		return nil, fromStore(err, msgUserNotFound)
	}
	if !auth.CanAccess(actor, user.ID, models.RoleAdmin) {
		return nil, Forbidden("Not authorized to access this user's profile")
	}
	return user, nil
}

// Update applies a partial update for the account owner or an administrator.
// Role and active flag are admin only.
func (s *UserService) Update(ctx context.Context, actor auth.Actor, id int, req *models.UpdateUserRequest) (*models.User, error) {
	var user *models.User
	err := s.TX.WithinReadWrite(ctx, func(ctx context.Context) error {
		var err error
		user, err = s.Users.Get(ctx, id)
		if err != nil {
			return fromStore(err, msgUserNotFound)
		}
		if !auth.CanAccess(actor, user.ID, models.RoleAdmin) {
			return Forbidden("Not authorized to update this user")
		}
		if (req.Role != nil || req.IsActive != nil) && actor.Role != models.RoleAdmin {
			return Forbidden("Only administrators can change role or active status")
		}

		if req.Email != nil {
			email := normalizeEmail(*req.Email)
			if email == "" || !strings.Contains(email, "@") {
				return Invalid("A valid email is required")
			}
			user.Email = email
		}
		if req.Password != nil && *req.Password != "" {
			hash, err := hashPassword(*req.Password)
			if err != nil {
				return err
			}
			user.PasswordHash = hash
		}
		if req.Role != nil {
			if !models.ValidRole(*req.Role) {
				return Invalidf("Unknown role %q", *req.Role)
			}
			user.Role = *req.Role
		}
		if req.IsActive != nil {
			user.IsActive = *req.IsActive
		}

		if err := s.Users.Update(ctx, user); err != nil {
			if errors.Is(err, repositories.ErrConflict) {
				return Conflict(msgEmailRegistered)
			}
			return fromStore(err, msgUserNotFound)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Delete removes an account. Profile, attendance and settings cascade.
func (s *UserService) Delete(ctx context.Context, actor auth.Actor, id int) error {
	if err := s.Users.Delete(ctx, id); err != nil {
		return fromStore(err, msgUserNotFound)
	}
	s.Activity.Record(ctx, actor.UserID, models.ActionUserDeleted, fmt.Sprintf("User %d deleted.", id))
	return nil
}
