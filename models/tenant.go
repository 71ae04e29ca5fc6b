package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Tenant struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key"`
	Name    string    `gorm:"not null"`
	Address string

	Branches      []Branch       `gorm:"foreignKey:TenantID"`
	Users         []User         `gorm:"foreignKey:TenantID"`
	Professionals []Professional `gorm:"foreignKey:TenantID"`
	Services      []Service      `gorm:"foreignKey:TenantID"`
	Clients       []Client       `gorm:"foreignKey:TenantID"`
}

type Branch struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key"`
	TenantID uuid.UUID `gorm:"type:uuid;index;not null"`
	Name     string    `gorm:"not null"`
	Address  string
	IsActive bool `gorm:"default:true"`

	gorm.Model
}

func (b *Branch) BeforeCreate(tx *gorm.DB) (err error) {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return
}

// AdminCredential holds the tenant-level secondary password consulted by the
// sensitive action gate. One row per tenant; absence means the gate is open.
type AdminCredential struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key"`
	TenantID     uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	PasswordHash string    `gorm:"not null"`

	gorm.Model
}

func (a *AdminCredential) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return
}
