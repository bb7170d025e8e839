package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Display-rate setting keys read by the purchase breakdown.
const (
	SettingGSTRate         = "gst_rate_percent"
	SettingPlatformFeeRate = "platform_fee_percent"
)

// BillingSetting stores admin-managed billing configuration values such as
// the GST rate and platform fee used for display breakdowns.
type BillingSetting struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Key       string    `gorm:"size:100;not null;uniqueIndex" json:"key"`
	Value     string    `gorm:"type:text;not null" json:"value"`
	Type      string    `gorm:"size:20;default:'string'" json:"type"` // string, bool, int, decimal
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate ensures UUID is set before creation
func (s *BillingSetting) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName specifies the table name for BillingSetting
func (BillingSetting) TableName() string {
	return "billing_settings"
}
