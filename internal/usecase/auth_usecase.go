package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"decor_admin/internal/domain"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

const RoleAdmin = "admin"

type SessionClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

type AuthUseCase interface {
	Login(ctx context.Context, password string) (token string, expiresAt time.Time, err error)
	ValidateToken(token string) (*SessionClaims, error)
}

type authUseCase struct {
	settingsRepo domain.SettingsRepository
	secret       []byte
	ttl          time.Duration
	now          func() time.Time
	log          *logrus.Logger
}

func NewAuthUseCase(repo domain.SettingsRepository, secret string, ttl time.Duration, logger *logrus.Logger) AuthUseCase {
	return &authUseCase{
		settingsRepo: repo,
		secret:       []byte(secret),
		ttl:          ttl,
		now:          time.Now,
		log:          logger,
	}
}

func (uc *authUseCase) Login(ctx context.Context, password string) (string, time.Time, error) {
	if password == "" {
		uc.log.Warn("Use Case: Login attempt without password")
		return "", time.Time{}, fmt.Errorf("password is required: %w", domain.ErrInvalidArgument)
	}

	hash, err := uc.settingsRepo.GetSetting(ctx, domain.SettingAccount)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			uc.log.Error("Use Case: Login failed - no admin account configured")
			return "", time.Time{}, fmt.Errorf("invalid password: %w", domain.ErrUnauthorized)
		}
		uc.log.Errorf("Use Case: Login failed - could not read account: %v", err)
		return "", time.Time{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		uc.log.Warn("Use Case: Login failed - invalid password")
		return "", time.Time{}, fmt.Errorf("invalid password: %w", domain.ErrUnauthorized)
	}

	issuedAt := uc.now()
	expiresAt := issuedAt.Add(uc.ttl)
	claims := SessionClaims{
		Role: RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(uc.secret)
	if err != nil {
		uc.log.Errorf("Use Case: Failed to sign session token: %v", err)
		return "", time.Time{}, fmt.Errorf("failed to sign session token: %w", err)
	}

	uc.log.Info("Use Case: Admin logged in")
	return token, expiresAt, nil
}

func (uc *authUseCase) ValidateToken(token string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return uc.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(uc.now),
	)
	if err != nil {
		return nil, fmt.Errorf("invalid session token: %w: %w", domain.ErrUnauthorized, err)
	}
	if claims.Role != RoleAdmin {
		return nil, fmt.Errorf("session role '%s' is not allowed: %w", claims.Role, domain.ErrUnauthorized)
	}
	return claims, nil
}
