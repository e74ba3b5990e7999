package postgres

import "github.com/futebadosparcas/matchday/internal/repository"

var (
	_ repository.Finalize      = (*FinalizeRepository)(nil)
	_ repository.League        = (*LeagueRepository)(nil)
	_ repository.SoftDelete    = (*SoftDeleteRepository)(nil)
	_ repository.Settings      = (*SettingsRepository)(nil)
	_ repository.Maintenance   = (*MaintenanceRepository)(nil)
	_ repository.Notifications = (*NotificationRepository)(nil)
)
