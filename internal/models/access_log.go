package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Access log action types
const (
	ActionOpen         = "open"
	ActionClose        = "close"
	ActionAccessDenied = "access_denied"
)

// AccessLog is an immutable record of one open/close/denied event
// against a toolbox by a technician.
type AccessLog struct {
	ID                uuid.UUID `gorm:"type:text;primary_key" json:"id"`
	ToolboxID         uuid.UUID `gorm:"type:text;not null;index" json:"toolbox_id"`
	TechnicianID      uuid.UUID `gorm:"type:text;not null;index" json:"technician_id"`
	ActionType        string    `gorm:"not null;index" json:"action_type"`
	Timestamp         time.Time `gorm:"index" json:"timestamp"`
	BeforeImageID     string    `json:"before_image_id"`
	AfterImageID      string    `json:"after_image_id"`
	ConditionImageURL string    `json:"condition_image_url"`
	ItemsBefore       int       `json:"items_before"`
	ItemsAfter        int       `json:"items_after"`
	ItemsMissing      int       `gorm:"default:0" json:"items_missing"`
	MissingItemsList  string    `json:"missing_items_list"`
	Notes             string    `json:"notes"`
	IPAddress         string    `json:"ip_address"`
}

// BeforeCreate assigns the UUID and the server-side timestamp.
// The timestamp is never client-supplied.
func (l *AccessLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	if l.Timestamp.IsZero() {
		l.Timestamp = time.Now().UTC()
	}
	return nil
}
