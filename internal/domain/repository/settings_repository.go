package repository

import (
	"context"

	"github.com/jmuthomi/tillpoint-api/internal/domain/entity"
)

// SettingsRepository defines the interface for store settings data access
type SettingsRepository interface {
	// Get returns the store settings row, creating defaults when missing
	Get(ctx context.Context) (*entity.StoreSettings, error)
	Update(ctx context.Context, settings *entity.StoreSettings) error
}
