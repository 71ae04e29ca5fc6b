// services/appointments.go
package services

import (
	"errors"
	"fmt"
	"time"

	"agendaplus-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const dateLayout = "2006-01-02"

type AppointmentService struct {
	db *gorm.DB
}

func NewAppointmentService(db *gorm.DB) *AppointmentService {
	return &AppointmentService{db: db}
}

// forUpdate adds SELECT ... FOR UPDATE on databases that support it. SQLite
// serializes writers on its own and rejects the clause.
func forUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

type CreateAppointmentInput struct {
	BranchID       *uuid.UUID
	ClientID       uuid.UUID
	ServiceID      uuid.UUID
	ProfessionalID uuid.UUID
	Date           string // "2006-01-02"
	Time           string // "15:04"
	Notes          string
}

type TransitionInput struct {
	Status        string
	PaymentStatus string // required when completing: "paid" or "pending"
	PaymentMethod string
}

type QuickServiceInput struct {
	BranchID       *uuid.UUID
	ClientID       *uuid.UUID // nil synthesizes a walk-in placeholder
	ClientName     string
	ProfessionalID uuid.UUID
	ServiceIDs     []uuid.UUID
	FinishAsPaid   bool
	PaymentMethod  string
}

// Create books a new appointment in status scheduled. The conflict check
// against (professional, date, time) runs inside the same transaction as the
// insert so two simultaneous bookings cannot both claim the slot.
func (s *AppointmentService) Create(scope Scope, input CreateAppointmentInput) (*models.Appointment, error) {
	if input.ClientID == uuid.Nil || input.ServiceID == uuid.Nil || input.ProfessionalID == uuid.Nil {
		return nil, fmt.Errorf("%w: client, service and professional are required", ErrValidation)
	}
	if _, err := time.Parse(dateLayout, input.Date); err != nil {
		return nil, fmt.Errorf("%w: invalid date %q", ErrValidation, input.Date)
	}
	if _, err := time.Parse(clockLayout, input.Time); err != nil {
		return nil, fmt.Errorf("%w: invalid time %q", ErrValidation, input.Time)
	}
	if !scope.AdmitsBranch(input.BranchID) {
		return nil, fmt.Errorf("%w: branch outside caller scope", ErrValidation)
	}

	var appointment models.Appointment
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var client models.Client
		if err := scope.Tenant(tx).First(&client, "id = ?", input.ClientID).Error; err != nil {
			return notFoundAsValidation(err, "client not found")
		}

		var service models.Service
		if err := scope.Branch(tx).First(&service, "id = ?", input.ServiceID).Error; err != nil {
			return notFoundAsValidation(err, "service not found")
		}

		// Lock the professional row to serialize concurrent bookings for
		// the same professional; the conflict count below then decides.
		var professional models.Professional
		if err := scope.Branch(forUpdate(tx)).
			First(&professional, "id = ?", input.ProfessionalID).Error; err != nil {
			return notFoundAsValidation(err, "professional not found")
		}

		var taken int64
		if err := tx.Model(&models.Appointment{}).
			Where("tenant_id = ? AND professional_id = ? AND date = ? AND time = ? AND status <> ?",
				scope.TenantID, input.ProfessionalID, input.Date, input.Time, models.StatusCancelled).
			Count(&taken).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrTransient, err)
		}
		if taken > 0 {
			return fmt.Errorf("%w: slot %s %s already booked for this professional", ErrConflict, input.Date, input.Time)
		}

		appointment = models.Appointment{
			TenantID:       scope.TenantID,
			BranchID:       input.BranchID,
			ClientID:       client.ID,
			ServiceID:      service.ID,
			ProfessionalID: professional.ID,
			Date:           input.Date,
			Time:           input.Time,
			Status:         models.StatusScheduled,
			PaymentStatus:  models.PaymentPending,
			TotalPrice:     service.Price,
			Notes:          input.Notes,
		}
		if err := tx.Create(&appointment).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrTransient, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &appointment, nil
}

// Transition moves an appointment along the legal edges only:
// scheduled→confirmed, scheduled|confirmed→completed, scheduled|confirmed→cancelled.
// Cancelling zeroes the price and cancels the payment; completing requires the
// caller to settle on paid or pending.
func (s *AppointmentService) Transition(scope Scope, appointmentID uuid.UUID, input TransitionInput) (*models.Appointment, error) {
	var appointment models.Appointment
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := scope.Branch(forUpdate(tx)).
			First(&appointment, "id = ?", appointmentID).Error; err != nil {
			return notFoundAsValidation(err, "appointment not found")
		}

		if !models.ValidAppointmentTransition(appointment.Status, input.Status) {
			return fmt.Errorf("%w: cannot transition %s appointment to %s", ErrIntegrity, appointment.Status, input.Status)
		}

		updates := map[string]interface{}{"status": input.Status}
		switch input.Status {
		case models.StatusCancelled:
			updates["total_price"] = 0.0
			updates["payment_status"] = models.PaymentCancelled
		case models.StatusCompleted:
			if input.PaymentStatus != models.PaymentPaid && input.PaymentStatus != models.PaymentPending {
				return fmt.Errorf("%w: completing requires payment status paid or pending", ErrValidation)
			}
			updates["payment_status"] = input.PaymentStatus
			if input.PaymentMethod != "" {
				updates["payment_method"] = input.PaymentMethod
			}
		}

		if err := tx.Model(&appointment).Updates(updates).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrTransient, err)
		}
		if err := tx.First(&appointment, "id = ?", appointment.ID).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrTransient, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &appointment, nil
}

// MarkAwaitingPayment flags a still-open appointment as awaiting payment,
// e.g. after a charge link was sent to the client.
func (s *AppointmentService) MarkAwaitingPayment(scope Scope, appointmentID uuid.UUID) (*models.Appointment, error) {
	var appointment models.Appointment
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := forUpdate(scope.Branch(tx)).First(&appointment, "id = ?", appointmentID).Error; err != nil {
			return notFoundAsValidation(err, "appointment not found")
		}
		if appointment.Status == models.StatusCancelled || appointment.Status == models.StatusCompleted {
			return fmt.Errorf("%w: cannot await payment on a %s appointment", ErrIntegrity, appointment.Status)
		}
		if err := tx.Model(&appointment).
			Update("payment_status", models.PaymentAwaitingPayment).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrTransient, err)
		}
		appointment.PaymentStatus = models.PaymentAwaitingPayment
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &appointment, nil
}

// AddServiceLines appends extra services to an already-completed visit, one
// appointment row per service, each created directly completed and paid. The
// rows share the anchor's client, professional and date; their times are the
// slot allocator's gap-free sequence continuing after the anchor service.
func (s *AppointmentService) AddServiceLines(scope Scope, anchorID uuid.UUID, serviceIDs []uuid.UUID) ([]models.Appointment, error) {
	if len(serviceIDs) == 0 {
		return nil, fmt.Errorf("%w: at least one service is required", ErrValidation)
	}

	var created []models.Appointment
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var anchor models.Appointment
		if err := scope.Branch(tx).First(&anchor, "id = ?", anchorID).Error; err != nil {
			return notFoundAsValidation(err, "appointment not found")
		}
		if anchor.Status != models.StatusCompleted {
			return fmt.Errorf("%w: can only add services to a completed visit", ErrIntegrity)
		}

		var anchorService models.Service
		if err := scope.Branch(tx).First(&anchorService, "id = ?", anchor.ServiceID).Error; err != nil {
			return notFoundAsValidation(err, "anchor service not found")
		}

		services := make([]models.Service, 0, len(serviceIDs))
		durations := []int{anchorService.DurationMinutes}
		for _, serviceID := range serviceIDs {
			var service models.Service
			if err := scope.Branch(tx).First(&service, "id = ?", serviceID).Error; err != nil {
				return notFoundAsValidation(err, "service not found: "+serviceID.String())
			}
			services = append(services, service)
			durations = append(durations, service.DurationMinutes)
		}

		slots, err := AllocateSlots(anchor.Time, durations)
		if err != nil {
			return err
		}

		for i, service := range services {
			line := models.Appointment{
				TenantID:       scope.TenantID,
				BranchID:       anchor.BranchID,
				ClientID:       anchor.ClientID,
				ServiceID:      service.ID,
				ProfessionalID: anchor.ProfessionalID,
				Date:           anchor.Date,
				Time:           slots[i+1], // slot 0 is the anchor itself
				Status:         models.StatusCompleted,
				PaymentStatus:  models.PaymentPaid,
				PaymentMethod:  anchor.PaymentMethod,
				TotalPrice:     service.Price,
			}
			if err := tx.Create(&line).Error; err != nil {
				return fmt.Errorf("%w: %v", ErrTransient, err)
			}
			created = append(created, line)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// CancelServiceLine soft-cancels a single row of a visit. The row survives
// for audit; cancellation zeroes it out of any financial aggregate.
func (s *AppointmentService) CancelServiceLine(scope Scope, appointmentID uuid.UUID) (*models.Appointment, error) {
	return s.Transition(scope, appointmentID, TransitionInput{Status: models.StatusCancelled})
}

// QuickService records a walk-in visit: one completed appointment row per
// selected service, times chained gap-free from the current wall-clock time.
// These are retroactive bookkeeping entries, not reservations, so they are
// deliberately not checked against the professional's existing bookings.
func (s *AppointmentService) QuickService(scope Scope, input QuickServiceInput) ([]models.Appointment, error) {
	if len(input.ServiceIDs) == 0 {
		return nil, fmt.Errorf("%w: at least one service is required", ErrValidation)
	}
	if input.ProfessionalID == uuid.Nil {
		return nil, fmt.Errorf("%w: professional is required", ErrValidation)
	}
	if !scope.AdmitsBranch(input.BranchID) {
		return nil, fmt.Errorf("%w: branch outside caller scope", ErrValidation)
	}

	now := time.Now()
	anchorDate := now.Format(dateLayout)
	anchorTime := now.Format(clockLayout)

	paymentStatus := models.PaymentPending
	if input.FinishAsPaid {
		paymentStatus = models.PaymentPaid
	}

	var created []models.Appointment
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var professional models.Professional
		if err := scope.Branch(tx).First(&professional, "id = ?", input.ProfessionalID).Error; err != nil {
			return notFoundAsValidation(err, "professional not found")
		}

		clientID, err := s.resolveWalkInClient(tx, scope, input)
		if err != nil {
			return err
		}

		services := make([]models.Service, 0, len(input.ServiceIDs))
		durations := make([]int, 0, len(input.ServiceIDs))
		for _, serviceID := range input.ServiceIDs {
			var service models.Service
			if err := scope.Branch(tx).First(&service, "id = ?", serviceID).Error; err != nil {
				return notFoundAsValidation(err, "service not found: "+serviceID.String())
			}
			services = append(services, service)
			durations = append(durations, service.DurationMinutes)
		}

		slots, err := AllocateSlots(anchorTime, durations)
		if err != nil {
			return err
		}

		for i, service := range services {
			row := models.Appointment{
				TenantID:       scope.TenantID,
				BranchID:       input.BranchID,
				ClientID:       clientID,
				ServiceID:      service.ID,
				ProfessionalID: professional.ID,
				Date:           anchorDate,
				Time:           slots[i],
				Status:         models.StatusCompleted,
				PaymentStatus:  paymentStatus,
				PaymentMethod:  input.PaymentMethod,
				TotalPrice:     service.Price,
			}
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("%w: %v", ErrTransient, err)
			}
			created = append(created, row)
		}

		if err := tx.Model(&models.Client{}).Where("id = ?", clientID).
			Update("last_visit", now).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrTransient, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *AppointmentService) resolveWalkInClient(tx *gorm.DB, scope Scope, input QuickServiceInput) (uuid.UUID, error) {
	if input.ClientID != nil {
		var client models.Client
		if err := scope.Tenant(tx).First(&client, "id = ?", *input.ClientID).Error; err != nil {
			return uuid.Nil, notFoundAsValidation(err, "client not found")
		}
		return client.ID, nil
	}

	name := input.ClientName
	if name == "" {
		name = "Walk-in"
	}
	client := models.Client{
		TenantID: scope.TenantID,
		Name:     name,
		WalkIn:   true,
		IsActive: true,
	}
	if err := tx.Create(&client).Error; err != nil {
		return uuid.Nil, fmt.Errorf("%w: %v", ErrTransient, err)
	}
	return client.ID, nil
}

// TakenTimes lists the already-booked, non-cancelled times of one
// professional on one date. The public booking flow offers only anchors not
// in this list; Create's in-transaction re-check stays the authoritative guard.
func (s *AppointmentService) TakenTimes(scope Scope, professionalID uuid.UUID, date string) ([]string, error) {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return nil, fmt.Errorf("%w: invalid date %q", ErrValidation, date)
	}

	var times []string
	err := s.db.Model(&models.Appointment{}).
		Where("tenant_id = ? AND professional_id = ? AND date = ? AND status <> ?",
			scope.TenantID, professionalID, date, models.StatusCancelled).
		Order("time").
		Pluck("time", &times).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransient, err)
	}
	return times, nil
}

// List returns the branch-scoped appointments for a date range, newest day first.
func (s *AppointmentService) List(scope Scope, from, to string) ([]models.Appointment, error) {
	query := scope.Branch(s.db.Model(&models.Appointment{}))
	if from != "" {
		query = query.Where("date >= ?", from)
	}
	if to != "" {
		query = query.Where("date <= ?", to)
	}

	var appointments []models.Appointment
	if err := query.Order("date desc, time").Find(&appointments).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransient, err)
	}
	return appointments, nil
}

func notFoundAsValidation(err error, msg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s", ErrValidation, msg)
	}
	return fmt.Errorf("%w: %v", ErrTransient, err)
}
