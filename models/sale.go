package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	SalePaymentPending = "pending"
	SalePaymentPaid    = "paid"
)

type StockSale struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	TenantID  uuid.UUID `gorm:"type:uuid;index;not null"`
	ProductID uuid.UUID `gorm:"type:uuid;index;not null"`

	// ProductName is a snapshot taken at sale time so the row stays
	// readable after the product (or its whole category) is deleted.
	ProductName string  `gorm:"not null"`
	Quantity    int     `gorm:"not null"`
	UnitPrice   float64 `gorm:"type:decimal(10,2);not null"` // price snapshot
	TotalPrice  float64 `gorm:"type:decimal(10,2);not null"`

	PaymentStatus string `gorm:"type:varchar(20);not null;default:'pending'"`
	PaymentMethod string
	Notes         string

	SoldAt time.Time `gorm:"default:CURRENT_TIMESTAMP"`

	gorm.Model
}

func (s *StockSale) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}
