package repository

import (
	"context"
	"errors"

	"jamjournal/internal/db"

	"github.com/jackc/pgx/v5"
)

// SettingsRepo: таблица key/value с настройками сайта.
type SettingsRepo struct {
	db db.PgxIface
}

func NewSettingsRepo(pool db.PgxIface) *SettingsRepo { return &SettingsRepo{db: pool} }

// GetSetting: ok=false, если ключа нет.
func (r *SettingsRepo) GetSetting(ctx context.Context, key string) (string, bool, error) {
	var v string
	err := r.db.QueryRow(ctx, `SELECT value FROM settings WHERE key_name = $1`, key).Scan(&v)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, storeErr("get setting", err)
	}
	return v, true, nil
}

func (r *SettingsRepo) SetSetting(ctx context.Context, key, value string) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO settings (key_name, value) VALUES ($1, $2)
		ON CONFLICT (key_name) DO UPDATE SET value = EXCLUDED.value`, key, value)
	return storeErr("set setting", err)
}
