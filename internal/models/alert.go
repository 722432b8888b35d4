package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Alert severities
const (
	SeverityLow      = "low"
	SeverityMedium   = "medium"
	SeverityHigh     = "high"
	SeverityCritical = "critical"
)

// Alert is a system notification, optionally tied to a toolbox
type Alert struct {
	ID         uuid.UUID  `gorm:"type:text;primary_key" json:"id"`
	ToolboxID  *uuid.UUID `gorm:"type:text;index" json:"toolbox_id"`
	AlertType  string     `gorm:"not null" json:"alert_type"`
	Severity   string     `gorm:"default:medium;index" json:"severity"`
	Message    string     `gorm:"not null" json:"message"`
	IsResolved bool       `gorm:"default:false;index" json:"is_resolved"`
	CreatedAt  time.Time  `gorm:"index" json:"created_at"`
	ResolvedAt *time.Time `json:"resolved_at"`
	ResolvedBy *uuid.UUID `gorm:"type:text" json:"resolved_by"`
}

// BeforeCreate hook to generate UUID
func (a *Alert) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
