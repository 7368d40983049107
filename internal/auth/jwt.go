package auth

import (
	"errors"
	"fmt"
	"time"

	"hrms-backend/internal/config"
	"hrms-backend/internal/models"
	"hrms-backend/internal/timeutil"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims carry the user identity. Subject holds the email and ID a unique token id used for revocation.
type Claims struct {
	UserID int    `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

type JWTManager struct {
	secret []byte
	method jwt.SigningMethod
	ttl    time.Duration
	issuer string
}

func NewJWTManager(cfg *config.Config) (*JWTManager, error) {
	method := jwt.GetSigningMethod(cfg.JWT.Algorithm)
	if method == nil {
		return nil, fmt.Errorf("auth: unknown signing method %q", cfg.JWT.Algorithm)
	}
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("auth: signing method %q is not HMAC", cfg.JWT.Algorithm)
	}
	return &JWTManager{
		secret: []byte(cfg.JWT.Secret),
		method: method,
		ttl:    time.Duration(cfg.JWT.ExpireMinutes) * time.Minute,
		issuer: cfg.JWT.Issuer,
	}, nil
}

// GenerateToken creates a new access token for a user
func (j *JWTManager) GenerateToken(user *models.User) (string, error) {
	now := timeutil.Now()

	claims := &Claims{
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Email,
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    j.issuer,
		},
	}

	token := jwt.NewWithClaims(j.method, claims)
	return token.SignedString(j.secret)
}

// ValidateToken verifies a token and returns the claims
func (j *JWTManager) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return j.secret, nil
	}, jwt.WithValidMethods([]string{j.method.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.UserID == 0 {
		return nil, errors.New("token has no user")
	}
	return claims, nil
}

// TTL is how long issued tokens stay valid.
func (j *JWTManager) TTL() time.Duration {
	return j.ttl
}
