package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Toolbox status values
const (
	ToolboxStatusOperational = "operational"
	ToolboxStatusMaintenance = "maintenance"
	ToolboxStatusOffline     = "offline"
)

// Toolbox represents a physical toolbox tracked by the system
type Toolbox struct {
	ID                  uuid.UUID `gorm:"type:text;primary_key" json:"id"`
	Name                string    `gorm:"uniqueIndex;not null" json:"name"`
	Zone                string    `gorm:"index" json:"zone"`
	LocationDescription string    `json:"location_description"`
	RaspberryPiSerial   *string   `gorm:"uniqueIndex" json:"raspberry_pi_serial"`
	Status              string    `gorm:"default:operational;index" json:"status"`
	TotalItems          int       `gorm:"default:0" json:"total_items"`
	ImageURL            string    `json:"image_url"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// BeforeCreate hook to generate UUID
func (t *Toolbox) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
