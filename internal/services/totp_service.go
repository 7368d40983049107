package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"image/png"

	"hrms-backend/internal/auth"
	"hrms-backend/internal/models"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

const (
	totpIssuer     = "Dayflow HRMS"
	msgInvalidTOTP = "Invalid two-factor code"
)

// TOTPService manages the optional second login factor.
type TOTPService struct {
	Users UserStore
}

func NewTOTPService(users UserStore) *TOTPService {
	return &TOTPService{Users: users}
}

func validTOTP(code, secret string) bool {
	return secret != "" && totp.Validate(code, secret)
}

// Setup generates a fresh secret and QR code. The secret is stored but stays
// inactive until Enable confirms a code.
func (s *TOTPService) Setup(ctx context.Context, actor auth.Actor) (*models.TOTPSetupResponse, error) {
	user, err := s.Users.Get(ctx, actor.UserID)
	if err != nil {
		return nil, fromStore(err, msgUserNotFound)
	}
	if user.TOTPEnabled {
		return nil, Conflict("Two-factor authentication is already enabled")
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      totpIssuer,
		AccountName: user.Email,
		Period:      30,
		Digits:      otp.DigitsSix,
		Algorithm:   otp.AlgorithmSHA1,
	})
	if err != nil {
		return nil, err
	}
	if err := s.Users.SetTOTPSecret(ctx, user.ID, key.Secret()); err != nil {
		return nil, err
	}

	img, err := key.Image(200, 200)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}

	return &models.TOTPSetupResponse{
		Secret:      key.Secret(),
		QRCode:      "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()),
		Issuer:      totpIssuer,
		AccountName: user.Email,
	}, nil
}

// Enable turns on 2FA once the caller proves they hold the secret
func (s *TOTPService) Enable(ctx context.Context, actor auth.Actor, code string) error {
	user, err := s.Users.Get(ctx, actor.UserID)
	if err != nil {
		return fromStore(err, msgUserNotFound)
	}
	if user.TOTPSecret == "" {
		return Conflict("Two-factor setup has not been started")
	}
	if !validTOTP(code, user.TOTPSecret) {
		return Invalid(msgInvalidTOTP)
	}
	return s.Users.EnableTOTP(ctx, user.ID)
}

// Disable requires both the password and a current code
func (s *TOTPService) Disable(ctx context.Context, actor auth.Actor, password, code string) error {
	user, err := s.Users.Get(ctx, actor.UserID)
	if err != nil {
		return fromStore(err, msgUserNotFound)
	}
	if !user.TOTPEnabled {
		return Conflict("Two-factor authentication is not enabled")
	}
	if !auth.VerifyPassword(user.PasswordHash, password) {
		return Unauthorized("Incorrect password")
	}
	if !validTOTP(code, user.TOTPSecret) {
		return Invalid(msgInvalidTOTP)
	}
	return s.Users.DisableTOTP(ctx, user.ID)
}
