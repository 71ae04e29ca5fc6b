package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductCategory struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key"`
	TenantID uuid.UUID `gorm:"type:uuid;index;not null"`
	Name     string    `gorm:"not null"`

	Products []StockProduct `gorm:"foreignKey:CategoryID"`

	gorm.Model
}

func (c *ProductCategory) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return
}

type StockProduct struct {
	ID         uuid.UUID  `gorm:"type:uuid;primary_key"`
	TenantID   uuid.UUID  `gorm:"type:uuid;index;not null"`
	BranchID   *uuid.UUID `gorm:"type:uuid;index"` // nil = stocked tenant-wide
	CategoryID uuid.UUID  `gorm:"type:uuid;index;not null"`

	Name     string  `gorm:"not null"`
	Price    float64 `gorm:"type:decimal(10,2);not null"`
	Quantity int     `gorm:"not null;default:0"` // never driven negative

	Sales []StockSale `gorm:"foreignKey:ProductID"`

	gorm.Model
}

func (p *StockProduct) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return
}
