package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Inventory item status values
const (
	ItemStatusPresent = "present"
	ItemStatusMissing = "missing"
	ItemStatusDamaged = "damaged"
)

// InventoryItem represents a single tool tracked inside a toolbox
type InventoryItem struct {
	ID              uuid.UUID  `gorm:"type:text;primary_key" json:"id"`
	ToolboxID       uuid.UUID  `gorm:"type:text;not null;index" json:"toolbox_id"`
	ItemName        string     `gorm:"not null" json:"item_name"`
	ItemDescription string     `json:"item_description"`
	Quantity        int        `gorm:"default:1" json:"quantity"`
	Status          string     `gorm:"default:present;index" json:"status"`
	LastVerified    *time.Time `json:"last_verified"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// BeforeCreate hook to generate UUID
func (i *InventoryItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
