// controllers/quickservice.go
package controllers

import (
	"net/http"

	"agendaplus-backend/services"
	"agendaplus-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type QuickServiceInput struct {
	BranchID       *uuid.UUID  `json:"branchId"`
	ClientID       *uuid.UUID  `json:"clientId"` // omit to record an anonymous walk-in
	ClientName     string      `json:"clientName"`
	ProfessionalID uuid.UUID   `json:"professionalId" binding:"required"`
	ServiceIDs     []uuid.UUID `json:"serviceIds" binding:"required,min=1"`
	FinishAsPaid   bool        `json:"finishAsPaid"`
	PaymentMethod  string      `json:"paymentMethod"`
}

// QuickService records a walk-in checkout: every selected service becomes a
// completed appointment row, times chained from now.
func QuickService(c *gin.Context) {
	scope, ok := currentScope(c)
	if !ok {
		return
	}

	var input QuickServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	rows, err := appointmentService.QuickService(scope, services.QuickServiceInput{
		BranchID:       input.BranchID,
		ClientID:       input.ClientID,
		ClientName:     input.ClientName,
		ProfessionalID: input.ProfessionalID,
		ServiceIDs:     input.ServiceIDs,
		FinishAsPaid:   input.FinishAsPaid,
		PaymentMethod:  input.PaymentMethod,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, rows)
}
