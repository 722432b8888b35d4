package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// APIRequestLog records one handled HTTP request for observability
type APIRequestLog struct {
	ID             uuid.UUID  `gorm:"type:text;primary_key" json:"id"`
	Timestamp      time.Time  `gorm:"index" json:"timestamp"`
	Method         string     `gorm:"not null" json:"method"`
	Endpoint       string     `gorm:"not null;index" json:"endpoint"`
	StatusCode     int        `gorm:"index" json:"status_code"`
	ResponseTimeMs int64      `json:"response_time_ms"`
	UserID         *uuid.UUID `gorm:"type:text" json:"user_id"`
	TechnicianID   *uuid.UUID `gorm:"type:text" json:"technician_id"`
	ToolboxID      *uuid.UUID `gorm:"type:text" json:"toolbox_id"`
	IPAddress      string     `json:"ip_address"`
	UserAgent      string     `json:"user_agent"`
	RequestBody    string     `json:"request_body"`
	ResponseBody   string     `json:"response_body"`
	ErrorMessage   string     `json:"error_message"`
}

// BeforeCreate hook to generate UUID and timestamp
func (l *APIRequestLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	if l.Timestamp.IsZero() {
		l.Timestamp = time.Now().UTC()
	}
	return nil
}
