package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Client struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key"`
	TenantID uuid.UUID `gorm:"type:uuid;index;not null"`

	Name  string `gorm:"not null"`
	Phone string
	Email string
	Notes string

	// WalkIn marks the synthetic placeholder generated by the quick
	// service flow, as opposed to a registered customer.
	WalkIn bool `gorm:"default:false"`

	LastVisit *time.Time
	IsActive  bool `gorm:"default:true"`

	Appointments []Appointment `gorm:"foreignKey:ClientID"`

	gorm.Model
}

func (c *Client) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return
}
