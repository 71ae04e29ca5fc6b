package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusScheduled = "scheduled"
	StatusConfirmed = "confirmed"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

const (
	PaymentPending         = "pending"
	PaymentAwaitingPayment = "awaiting_payment"
	PaymentPaid            = "paid"
	PaymentCancelled       = "cancelled"
)

// appointmentTransitions lists, per target status, the statuses a row may
// come from. Anything not listed is an illegal edge; cancelled is terminal.
var appointmentTransitions = map[string][]string{
	StatusConfirmed: {StatusScheduled},
	StatusCompleted: {StatusScheduled, StatusConfirmed},
	StatusCancelled: {StatusScheduled, StatusConfirmed},
}

func ValidAppointmentTransition(from, to string) bool {
	allowed, ok := appointmentTransitions[to]
	if !ok {
		return false
	}
	for _, status := range allowed {
		if status == from {
			return true
		}
	}
	return false
}

type Appointment struct {
	ID       uuid.UUID  `gorm:"type:uuid;primary_key"`
	TenantID uuid.UUID  `gorm:"type:uuid;index;not null"`
	BranchID *uuid.UUID `gorm:"type:uuid;index"`

	ClientID       uuid.UUID `gorm:"type:uuid;index;not null"`
	ServiceID      uuid.UUID `gorm:"type:uuid;index;not null"`
	ProfessionalID uuid.UUID `gorm:"type:uuid;index;not null"`

	// Calendar date and local time-of-day, stored as strings on purpose:
	// physical-location scheduling must not drift with timezones.
	Date string `gorm:"type:varchar(10);index;not null"` // "2006-01-02"
	Time string `gorm:"type:varchar(5);not null"`        // "15:04"

	Status        string  `gorm:"type:varchar(20);not null;default:'scheduled'"`
	PaymentStatus string  `gorm:"type:varchar(20);not null;default:'pending'"`
	PaymentMethod string
	TotalPrice    float64 `gorm:"type:decimal(10,2);not null"`
	Notes         string

	Client       Client       `gorm:"foreignKey:ClientID"`
	Service      Service      `gorm:"foreignKey:ServiceID"`
	Professional Professional `gorm:"foreignKey:ProfessionalID"`

	gorm.Model
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return
}
