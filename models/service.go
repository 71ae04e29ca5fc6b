package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service struct {
	ID       uuid.UUID  `gorm:"type:uuid;primary_key"`
	TenantID uuid.UUID  `gorm:"type:uuid;index;not null"`
	BranchID *uuid.UUID `gorm:"type:uuid;index"` // nil = shared catalog item, visible at every branch

	Name            string  `gorm:"not null"`
	Description     string
	Price           float64 `gorm:"type:decimal(10,2);not null"`
	DurationMinutes int     `gorm:"not null"`
	IsActive        bool    `gorm:"default:true"`

	Appointments []Appointment `gorm:"foreignKey:ServiceID"`
}

func (s *Service) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}
