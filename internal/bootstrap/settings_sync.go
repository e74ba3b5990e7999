package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/futebadosparcas/matchday/internal/repository"
	"github.com/futebadosparcas/matchday/internal/xp"
)

// SyncXPSettings stores the built-in weight table when none is stored yet, so
// operators always have a complete row to edit. Existing rows are left alone.
func SyncXPSettings(ctx context.Context, store repository.Settings) error {
	existing, err := store.GetXPSettings(ctx, xp.SettingsKey)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedLoadSettings, err)
	}
	if existing != nil {
		slog.Info(LogMsgSettingsPresent)
		return nil
	}

	if err := store.PutXPSettings(ctx, xp.SettingsKey, xp.DefaultSettings().Overrides()); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedSeedSettings, err)
	}
	slog.Info(LogMsgSettingsSeeded)
	return nil
}
