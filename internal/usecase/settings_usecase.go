package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"decor_admin/internal/domain"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

type SettingsUseCase interface {
	ChangePassword(ctx context.Context, currentPassword, newPassword string) error
	SetPassword(ctx context.Context, password string) error
	GetTelegram(ctx context.Context) (*domain.TelegramSettings, error)
	UpdateTelegram(ctx context.Context, settings domain.TelegramSettings) error
}

type settingsUseCase struct {
	settingsRepo domain.SettingsRepository
	log          *logrus.Logger
}

func NewSettingsUseCase(repo domain.SettingsRepository, logger *logrus.Logger) SettingsUseCase {
	return &settingsUseCase{
		settingsRepo: repo,
		log:          logger,
	}
}

func (uc *settingsUseCase) ChangePassword(ctx context.Context, currentPassword, newPassword string) error {
	if currentPassword == "" || newPassword == "" {
		uc.log.Warn("Use Case: Password change attempted with missing fields")
		return fmt.Errorf("current and new password are required: %w", domain.ErrInvalidArgument)
	}

	hash, err := uc.settingsRepo.GetSetting(ctx, domain.SettingAccount)
	if err != nil {
		uc.log.Errorf("Use Case: Password change failed - could not read account: %v", err)
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(currentPassword)); err != nil {
		uc.log.Warn("Use Case: Password change failed - current password mismatch")
		return fmt.Errorf("current password is incorrect: %w", domain.ErrInvalidArgument)
	}

	if err := uc.storePassword(ctx, newPassword); err != nil {
		return err
	}
	uc.log.Info("Use Case: Admin password changed")
	return nil
}

// SetPassword replaces the admin password without checking the old one.
func (uc *settingsUseCase) SetPassword(ctx context.Context, password string) error {
	if err := uc.storePassword(ctx, password); err != nil {
		return err
	}
	uc.log.Info("Use Case: Admin password set")
	return nil
}

func (uc *settingsUseCase) storePassword(ctx context.Context, password string) error {
	if err := validatePassword(password); err != nil {
		uc.log.Warnf("Use Case: Password validation error: %v", err)
		return fmt.Errorf("%w: %w", domain.ErrInvalidArgument, err)
	}
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		uc.log.Errorf("Use Case: Failed to hash password: %v", err)
		return fmt.Errorf("internal error processing password: %w", err)
	}
	if err := uc.settingsRepo.UpsertSetting(ctx, domain.SettingAccount, string(hashedPassword)); err != nil {
		uc.log.Errorf("Use Case: Repository failed to store password: %v", err)
		return err
	}
	return nil
}

func (uc *settingsUseCase) GetTelegram(ctx context.Context) (*domain.TelegramSettings, error) {
	token, err := uc.optionalSetting(ctx, domain.SettingTelegramBotToken)
	if err != nil {
		return nil, err
	}
	adminID, err := uc.optionalSetting(ctx, domain.SettingTelegramAdminID)
	if err != nil {
		return nil, err
	}
	return &domain.TelegramSettings{BotToken: token, AdminUserID: adminID}, nil
}

func (uc *settingsUseCase) UpdateTelegram(ctx context.Context, settings domain.TelegramSettings) error {
	token := strings.TrimSpace(settings.BotToken)
	adminID := strings.TrimSpace(settings.AdminUserID)
	if token == "" || adminID == "" {
		uc.log.Warn("Use Case: Telegram settings update with missing fields")
		return fmt.Errorf("bot token and admin user id are required: %w", domain.ErrInvalidArgument)
	}

	if err := uc.settingsRepo.UpsertSetting(ctx, domain.SettingTelegramBotToken, token); err != nil {
		uc.log.Errorf("Use Case: Repository failed to store telegram bot token: %v", err)
		return err
	}
	if err := uc.settingsRepo.UpsertSetting(ctx, domain.SettingTelegramAdminID, adminID); err != nil {
		uc.log.Errorf("Use Case: Repository failed to store telegram admin id: %v", err)
		return err
	}
	uc.log.Info("Use Case: Telegram settings updated")
	return nil
}

func (uc *settingsUseCase) optionalSetting(ctx context.Context, key string) (string, error) {
	value, err := uc.settingsRepo.GetSetting(ctx, key)
	if errors.Is(err, domain.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to read setting '%s': %v", key, err)
		return "", err
	}
	return value, nil
}

// validatePassword enforces basic password complexity rules.
// bcrypt only hashes the first 72 bytes and rejects longer input.
const maxPasswordBytes = 72

func validatePassword(password string) error {
	if len(password) < 8 {
		return errors.New("password must be at least 8 characters long")
	}
	if len(password) > maxPasswordBytes {
		return fmt.Errorf("password must be at most %d bytes long", maxPasswordBytes)
	}
	hasUpper := false
	hasLower := false
	hasDigit := false
	for _, char := range password {
		switch {
		case unicode.IsUpper(char):
			hasUpper = true
		case unicode.IsLower(char):
			hasLower = true
		case unicode.IsDigit(char):
			hasDigit = true
		}
	}
	if !hasUpper {
		return errors.New("password must contain at least one uppercase letter")
	}
	if !hasLower {
		return errors.New("password must contain at least one lowercase letter")
	}
	if !hasDigit {
		return errors.New("password must contain at least one digit")
	}
	return nil
}
