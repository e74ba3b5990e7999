package repository

import (
	"context"

	"github.com/futebadosparcas/matchday/internal/xp"
)

// Settings defines access to the app_settings store
type Settings interface {
	// GetXPSettings returns nil without error when no overrides are stored
	GetXPSettings(ctx context.Context, key string) (*xp.Overrides, error)
	PutXPSettings(ctx context.Context, key string, o xp.Overrides) error
}
