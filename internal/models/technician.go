package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Technician status values
const (
	TechnicianStatusActive    = "active"
	TechnicianStatusInactive  = "inactive"
	TechnicianStatusSuspended = "suspended"
)

// Technician represents a field technician identified by an NFC card
type Technician struct {
	ID         uuid.UUID `gorm:"type:text;primary_key" json:"id"`
	NFCCardUID string    `gorm:"column:nfc_card_uid;uniqueIndex;not null" json:"nfc_card_uid"`
	EmployeeID string    `gorm:"uniqueIndex;not null" json:"employee_id"`
	FirstName  string    `gorm:"not null" json:"first_name"`
	LastName   string    `gorm:"not null" json:"last_name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	Department string    `json:"department"`
	Status     string    `gorm:"default:active;index" json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// BeforeCreate hook to generate UUID
func (t *Technician) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
