package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"decor_admin/internal/domain"

	"github.com/sirupsen/logrus"
)

type postgresSettingsRepository struct {
	db  *sql.DB
	log *logrus.Logger
}

func NewPostgresSettingsRepository(db *sql.DB, logger *logrus.Logger) domain.SettingsRepository {
	return &postgresSettingsRepository{
		db:  db,
		log: logger,
	}
}

func (r *postgresSettingsRepository) GetSetting(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = $1`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.Debugf("Setting '%s' is not set", key)
			return "", fmt.Errorf("setting '%s': %w", key, domain.ErrNotFound)
		}
		r.log.Errorf("Failed to read setting '%s': %v", key, err)
		return "", fmt.Errorf("could not read setting: %w", err)
	}
	return value, nil
}

func (r *postgresSettingsRepository) UpsertSetting(ctx context.Context, key, value string) error {
	query := `
        INSERT INTO settings (key, value) VALUES ($1, $2)
        ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`
	if _, err := r.db.ExecContext(ctx, query, key, value); err != nil {
		r.log.Errorf("Failed to store setting '%s': %v", key, err)
		return fmt.Errorf("could not store setting: %w", err)
	}
	r.log.Infof("Setting '%s' stored", key)
	return nil
}
