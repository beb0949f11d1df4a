package repository

import (
	"context"
	"errors"

	"github.com/jmuthomi/tillpoint-api/internal/domain/entity"
	domainRepo "github.com/jmuthomi/tillpoint-api/internal/domain/repository"
	"gorm.io/gorm"
)

type settingsRepository struct {
	db *gorm.DB
}

// NewSettingsRepository creates a new settings repository
func NewSettingsRepository(db *gorm.DB) domainRepo.SettingsRepository {
	return &settingsRepository{db: db}
}

// Get returns the store settings row, creating a default one when the
// installation has none yet.
func (r *settingsRepository) Get(ctx context.Context) (*entity.StoreSettings, error) {
	var settings entity.StoreSettings
	err := dbFromContext(ctx, r.db).WithContext(ctx).First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		settings = entity.StoreSettings{}
		if err := dbFromContext(ctx, r.db).WithContext(ctx).Create(&settings).Error; err != nil {
			return nil, err
		}
		return &settings, nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

func (r *settingsRepository) Update(ctx context.Context, settings *entity.StoreSettings) error {
	return dbFromContext(ctx, r.db).WithContext(ctx).Save(settings).Error
}
