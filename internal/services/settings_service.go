package services

import (
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/subvault/billing-backend/internal/models"
)

// SettingsService manages admin-set billing settings such as the GST rate
// and platform fee used for display breakdowns.
type SettingsService struct {
	db *gorm.DB
}

func NewSettingsService(db *gorm.DB) *SettingsService {
	return &SettingsService{db: db}
}

// DecimalValue returns the setting as a decimal, falling back when the key
// is absent or unparseable.
func (s *SettingsService) DecimalValue(key, fallback string) decimal.Decimal {
	def, err := decimal.NewFromString(fallback)
	if err != nil {
		def = decimal.Zero
	}

	var setting models.BillingSetting
	if err := s.db.Where("key = ?", key).First(&setting).Error; err != nil {
		return def
	}

	value, err := decimal.NewFromString(setting.Value)
	if err != nil {
		slog.Warn("billing setting is not a decimal", "key", key, "value", setting.Value)
		return def
	}
	return value
}

// All returns every billing setting keyed by name.
func (s *SettingsService) All() (map[string]string, error) {
	var settings []models.BillingSetting
	if err := s.db.Find(&settings).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch settings: %w", err)
	}

	result := make(map[string]string, len(settings))
	for _, setting := range settings {
		result[setting.Key] = setting.Value
	}
	return result, nil
}

// Set upserts one setting by key.
func (s *SettingsService) Set(key, value, valueType string) error {
	if valueType == "" {
		valueType = "string"
	}
	setting := models.BillingSetting{Key: key, Value: value, Type: valueType}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "type"}),
	}).Create(&setting).Error
	if err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	return nil
}

// Delete removes one setting by key.
func (s *SettingsService) Delete(key string) error {
	return s.db.Where("key = ?", key).Delete(&models.BillingSetting{}).Error
}
