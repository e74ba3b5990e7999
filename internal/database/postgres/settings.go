package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/futebadosparcas/matchday/internal/xp"
)

// SettingsRepository reads app_settings documents
type SettingsRepository struct {
	db *pgxpool.Pool
}

// NewSettingsRepository creates a new SettingsRepository
func NewSettingsRepository(db *pgxpool.Pool) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// GetXPSettings returns nil without error when no overrides are stored under key
func (r *SettingsRepository) GetXPSettings(ctx context.Context, key string) (*xp.Overrides, error) {
	var raw []byte
	err := r.db.QueryRow(ctx, `SELECT value FROM app_settings WHERE key = $1`, key).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get settings %s: %w", key, err)
	}

	var o xp.Overrides
	if err := json.Unmarshal(raw, &o); err != nil {
		return nil, fmt.Errorf("failed to decode settings %s: %w", key, err)
	}
	return &o, nil
}

// PutXPSettings stores overrides under key
func (r *SettingsRepository) PutXPSettings(ctx context.Context, key string, o xp.Overrides) error {
	raw, err := json.Marshal(o)
	if err != nil {
		return fmt.Errorf("failed to encode settings %s: %w", key, err)
	}
	_, err = r.db.Exec(ctx, `
		INSERT INTO app_settings (key, value, updated_at) VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`, key, raw)
	if err != nil {
		return fmt.Errorf("failed to put settings %s: %w", key, err)
	}
	return nil
}
