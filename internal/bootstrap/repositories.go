package bootstrap

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/futebadosparcas/matchday/internal/database/postgres"
)

// Repositories holds all repository implementations used by the application.
type Repositories struct {
	Finalize      *postgres.FinalizeRepository
	League        *postgres.LeagueRepository
	SoftDelete    *postgres.SoftDeleteRepository
	Settings      *postgres.SettingsRepository
	Maintenance   *postgres.MaintenanceRepository
	Notifications *postgres.NotificationRepository
}

// InitializeRepositories creates all repository implementations over one pool.
func InitializeRepositories(dbPool *pgxpool.Pool) *Repositories {
	return &Repositories{
		Finalize:      postgres.NewFinalizeRepository(dbPool),
		League:        postgres.NewLeagueRepository(dbPool),
		SoftDelete:    postgres.NewSoftDeleteRepository(dbPool),
		Settings:      postgres.NewSettingsRepository(dbPool),
		Maintenance:   postgres.NewMaintenanceRepository(dbPool),
		Notifications: postgres.NewNotificationRepository(dbPool),
	}
}
