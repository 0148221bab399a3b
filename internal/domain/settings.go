package domain

import "context"

const (
	SettingAccount          = "account"
	SettingTelegramBotToken = "telegram_bot_token"
	SettingTelegramAdminID  = "telegram_admin_id"
)

type SettingsRepository interface {
	GetSetting(ctx context.Context, key string) (string, error)
	UpsertSetting(ctx context.Context, key, value string) error
}
