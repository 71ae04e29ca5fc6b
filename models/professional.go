package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Professional struct {
	ID       uuid.UUID  `gorm:"type:uuid;primary_key"`
	TenantID uuid.UUID  `gorm:"type:uuid;index;not null"`
	BranchID *uuid.UUID `gorm:"type:uuid;index"` // nil = works at every branch

	Name     string `gorm:"not null"`
	Phone    string
	IsActive bool `gorm:"default:true"`

	Appointments []Appointment `gorm:"foreignKey:ProfessionalID"`

	gorm.Model
}

func (p *Professional) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return
}
