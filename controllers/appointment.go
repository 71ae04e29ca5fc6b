// controllers/appointment.go
package controllers

import (
	"net/http"

	"agendaplus-backend/services"
	"agendaplus-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CreateAppointmentInput struct {
	BranchID       *uuid.UUID `json:"branchId"`
	ClientID       uuid.UUID  `json:"clientId" binding:"required"`
	ServiceID      uuid.UUID  `json:"serviceId" binding:"required"`
	ProfessionalID uuid.UUID  `json:"professionalId" binding:"required"`
	Date           string     `json:"date" binding:"required"` // "2006-01-02"
	Time           string     `json:"time" binding:"required"` // "15:04"
	Notes          string     `json:"notes"`
}

type TransitionAppointmentInput struct {
	Status        string `json:"status" binding:"required,oneof=confirmed completed cancelled"`
	PaymentStatus string `json:"paymentStatus" binding:"omitempty,oneof=paid pending"`
	PaymentMethod string `json:"paymentMethod"`
}

type AddServiceLinesInput struct {
	ServiceIDs []uuid.UUID `json:"serviceIds" binding:"required,min=1"`
}

// CreateAppointment books a slot. On success the client is notified outside
// the transaction, fire-and-forget.
func CreateAppointment(c *gin.Context) {
	scope, ok := currentScope(c)
	if !ok {
		return
	}

	var input CreateAppointmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	appointment, err := appointmentService.Create(scope, services.CreateAppointmentInput{
		BranchID:       input.BranchID,
		ClientID:       input.ClientID,
		ServiceID:      input.ServiceID,
		ProfessionalID: input.ProfessionalID,
		Date:           input.Date,
		Time:           input.Time,
		Notes:          input.Notes,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	go notifier.BookingConfirmed(*appointment)

	c.JSON(http.StatusCreated, appointment)
}

// GetAppointments lists branch-scoped appointments, optionally bounded by
// ?from=...&to=... dates.
func GetAppointments(c *gin.Context) {
	scope, ok := currentScope(c)
	if !ok {
		return
	}

	appointments, err := appointmentService.List(scope, c.Query("from"), c.Query("to"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, appointments)
}

// GetAvailability lists the taken times of a professional on a date so the
// booking UI can offer only free anchors.
func GetAvailability(c *gin.Context) {
	scope, ok := currentScope(c)
	if !ok {
		return
	}
	professionalID, err := uuid.Parse(c.Query("professionalId"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid professionalId")
		return
	}

	taken, err := appointmentService.TakenTimes(scope, professionalID, c.Query("date"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"takenTimes": taken})
}

// TransitionAppointment moves an appointment to confirmed, completed or
// cancelled along the legal edges.
func TransitionAppointment(c *gin.Context) {
	scope, ok := currentScope(c)
	if !ok {
		return
	}
	appointmentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input TransitionAppointmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	appointment, err := appointmentService.Transition(scope, appointmentID, services.TransitionInput{
		Status:        input.Status,
		PaymentStatus: input.PaymentStatus,
		PaymentMethod: input.PaymentMethod,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, appointment)
}

// MarkAwaitingPayment flags an open appointment as awaiting payment.
func MarkAwaitingPayment(c *gin.Context) {
	scope, ok := currentScope(c)
	if !ok {
		return
	}
	appointmentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	appointment, err := appointmentService.MarkAwaitingPayment(scope, appointmentID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, appointment)
}

// AddServiceLines appends extra completed services to a finished visit.
// Gated behind the admin password when one is configured.
func AddServiceLines(c *gin.Context) {
	scope, ok := currentScope(c)
	if !ok {
		return
	}
	userUUID, ok := currentUserID(c)
	if !ok {
		return
	}
	anchorID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input AddServiceLinesInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	result, executed, err := gateService.Request(userUUID, services.PendingAction{
		Kind:  services.ActionAddServiceLine,
		Scope: scope,
		AddServiceLine: &services.AddServiceLineAction{
			AnchorID:   anchorID,
			ServiceIDs: input.ServiceIDs,
		},
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if !executed {
		c.JSON(http.StatusAccepted, gin.H{"pending": true, "message": "Admin password required"})
		return
	}

	c.JSON(http.StatusCreated, result)
}

// CancelServiceLine soft-cancels one row of a visit. Gated.
func CancelServiceLine(c *gin.Context) {
	scope, ok := currentScope(c)
	if !ok {
		return
	}
	userUUID, ok := currentUserID(c)
	if !ok {
		return
	}
	appointmentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	result, executed, err := gateService.Request(userUUID, services.PendingAction{
		Kind:  services.ActionCancelServiceLine,
		Scope: scope,
		CancelServiceLine: &services.CancelServiceLineAction{
			AppointmentID: appointmentID,
		},
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if !executed {
		c.JSON(http.StatusAccepted, gin.H{"pending": true, "message": "Admin password required"})
		return
	}

	c.JSON(http.StatusOK, result)
}
