package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Image types
const (
	ImageTypeBefore    = "before"
	ImageTypeAfter     = "after"
	ImageTypeReference = "reference"
)

// Image is a stored photo of a toolbox, optionally linked to an access log
type Image struct {
	ID             uuid.UUID  `gorm:"type:text;primary_key" json:"id"`
	ToolboxID      uuid.UUID  `gorm:"type:text;not null;index" json:"toolbox_id"`
	AccessLogID    *uuid.UUID `gorm:"type:text;index" json:"access_log_id"`
	ImageURL       string     `gorm:"not null" json:"image_url"`
	ImageType      string     `json:"image_type"`
	FileSize       int64      `json:"file_size"`
	Width          int        `json:"width"`
	Height         int        `json:"height"`
	PerceptualHash string     `json:"perceptual_hash"`
	CapturedAt     time.Time  `json:"captured_at"`
	UploadedAt     time.Time  `json:"uploaded_at"`
	ImageMetadata  string     `json:"image_metadata"`
}

// BeforeCreate hook to generate UUID and timestamps
func (i *Image) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	now := time.Now().UTC()
	if i.CapturedAt.IsZero() {
		i.CapturedAt = now
	}
	if i.UploadedAt.IsZero() {
		i.UploadedAt = now
	}
	return nil
}
