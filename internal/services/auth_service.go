package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"hrms-backend/internal/auth"
	"hrms-backend/internal/cache"
	"hrms-backend/internal/metrics"
	"hrms-backend/internal/models"
	"hrms-backend/internal/repositories"
	"hrms-backend/internal/timeutil"

	"go.uber.org/zap"
)

// AuthService handles registration, login and logout.
type AuthService struct {
	TX             TxManager
	Users          UserStore
	Profiles       ProfileStore
	Companies      CompanyStore
	Settings       SettingsStore
	Tokens         TokenIssuer
	Revoked        TokenRevoker
	Activity       *ActivityService
	DefaultCompany string
	Now            Clock
	Log            *zap.Logger
}

func NewAuthService(tx TxManager, users UserStore, profiles ProfileStore, companies CompanyStore,
	settings SettingsStore, tokens TokenIssuer, revoked TokenRevoker, activity *ActivityService,
	defaultCompany string, log *zap.Logger) *AuthService {
	if tx == nil {
		tx = noTx{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &AuthService{
		TX:             tx,
		Users:          users,
		Profiles:       profiles,
		Companies:      companies,
		Settings:       settings,
		Tokens:         tokens,
		Revoked:        revoked,
		Activity:       activity,
		DefaultCompany: defaultCompany,
		Now:            timeutil.Now,
		Log:            log,
	}
}

func employeeCode(userID int) string {
	return fmt.Sprintf("EMP%05d", userID)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates an employee account with default settings and a profile on
// the default company. Self-registration never grants a privileged role.
func (s *AuthService) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	email := normalizeEmail(req.Email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, Invalid("A valid email is required")
	}
	hash, err := hashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	user := &models.User{Email: email, PasswordHash: hash, Role: models.RoleEmployee, IsActive: true}

	err = s.TX.WithinReadWrite(ctx, func(ctx context.Context) error {
		if existing, err := s.Users.GetByEmail(ctx, email); err == nil && existing != nil {
			return Conflict(msgEmailRegistered)
		} else if err != nil && !errors.Is(err, repositories.ErrNotFound) {
			return err
		}

		if err := s.Users.Create(ctx, user); err != nil {
			if errors.Is(err, repositories.ErrConflict) {
				return Conflict(msgEmailRegistered)
			}
			return err
		}
		if _, err := s.Settings.GetOrCreate(ctx, user.ID); err != nil {
			return err
		}

		var companyID *int
		if s.DefaultCompany != "" {
			company, err := s.Companies.Ensure(ctx, s.DefaultCompany)
			if err != nil {
				return err
			}
			companyID = &company.ID
		}
		return s.Profiles.Create(ctx, &models.EmployeeProfile{
			UserID:       user.ID,
			CompanyID:    companyID,
			EmployeeCode: employeeCode(user.ID),
			FirstName:    strings.TrimSpace(req.FirstName),
			LastName:     strings.TrimSpace(req.LastName),
		})
	})
	if err != nil {
		return nil, err
	}

	s.Activity.Record(ctx, user.ID, models.ActionRegister, fmt.Sprintf("User %s registered.", user.Email))
	return user, nil
}

// Login verifies credentials and issues a bearer token
func (s *AuthService) Login(ctx context.Context, req *models.LoginRequest) (*models.TokenResponse, error) {
	user, err := s.Users.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}
	if user == nil || !auth.VerifyPassword(user.PasswordHash, req.Password) {
		metrics.LoginAttempts.WithLabelValues("bad_credentials").Inc()
		return nil, Unauthorized(msgBadCredentials)
	}
	if !user.IsActive {
		metrics.LoginAttempts.WithLabelValues("inactive").Inc()
		return nil, Forbidden("Inactive user")
	}
	if user.TOTPEnabled {
		if req.TOTPCode == "" {
			metrics.LoginAttempts.WithLabelValues("totp_required").Inc()
			return nil, Unauthorized("Two-factor code required")
		}
		if !validTOTP(req.TOTPCode, user.TOTPSecret) {
			metrics.LoginAttempts.WithLabelValues("totp_invalid").Inc()
			return nil, Unauthorized(msgInvalidTOTP)
		}
	}

	token, err := s.Tokens.GenerateToken(user)
	if err != nil {
		return nil, err
	}
	metrics.LoginAttempts.WithLabelValues("success").Inc()
	s.Activity.Record(ctx, user.ID, models.ActionLogin, fmt.Sprintf("User %s logged in.", user.Email))
	return &models.TokenResponse{AccessToken: token, TokenType: "bearer"}, nil
}

// Logout revokes the token until it would have expired. Without a revocation
// store the client is expected to discard the token.
func (s *AuthService) Logout(ctx context.Context, actor auth.Actor, tokenID string, expiresAt time.Time) error {
	if s.Revoked != nil && tokenID != "" {
		ttl := expiresAt.Sub(s.Now())
		if ttl > 0 {
			if err := s.Revoked.Revoke(ctx, tokenID, ttl); err != nil {
				if !errors.Is(err, cache.ErrUnavailable) {
					return err
				}
				s.Log.Debug("token revocation skipped, cache unavailable", zap.Int("user_id", actor.UserID))
			}
		}
	}
	s.Activity.Record(ctx, actor.UserID, models.ActionLogout, fmt.Sprintf("User %s logged out.", actor.Email))
	return nil
}

// Me returns the caller's account
func (s *AuthService) Me(ctx context.Context, actor auth.Actor) (*models.User, error) {
	user, err := s.Users.Get(ctx, actor.UserID)
	if err != nil {
		return nil, fromStore(err, msgUserNotFound)
	}
	return user, nil
}

// SeedAdmin creates the configured administrator once. An existing account
// with that email is left as is.
func (s *AuthService) SeedAdmin(ctx context.Context, email, password string) error {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil
	}
	if _, err := s.Users.GetByEmail(ctx, email); err == nil {
		return nil
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return err
	}

	hash, err := hashPassword(password)
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	admin := &models.User{Email: email, PasswordHash: hash, Role: models.RoleAdmin, IsActive: true}
	err = s.TX.WithinReadWrite(ctx, func(ctx context.Context) error {
		if err := s.Users.Create(ctx, admin); err != nil {
			return err
		}
		_, err := s.Settings.GetOrCreate(ctx, admin.ID)
		return err
	})
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	s.Log.Info("admin account created", zap.String("email", email))
	return nil
}
