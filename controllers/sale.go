// controllers/sale.go
package controllers

import (
	"net/http"

	"agendaplus-backend/services"
	"agendaplus-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type RecordSaleInput struct {
	ProductID     uuid.UUID `json:"productId" binding:"required"`
	Quantity      int       `json:"quantity" binding:"required,min=1"`
	UnitPrice     *float64  `json:"unitPrice" binding:"omitempty,min=0"`
	PaymentStatus string    `json:"paymentStatus" binding:"required,oneof=pending paid"`
	PaymentMethod string    `json:"paymentMethod"`
	Notes         string    `json:"notes"`
}

type EditSaleInput struct {
	Quantity      *int    `json:"quantity" binding:"omitempty,min=1"`
	PaymentStatus *string `json:"paymentStatus" binding:"omitempty,oneof=pending paid"`
	PaymentMethod *string `json:"paymentMethod"`
	Notes         *string `json:"notes"`
}

// RecordSale sells stock over the counter.
func RecordSale(c *gin.Context) {
	scope, ok := currentScope(c)
	if !ok {
		return
	}

	var input RecordSaleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	sale, err := inventoryService.RecordSale(scope, services.RecordSaleInput{
		ProductID:     input.ProductID,
		Quantity:      input.Quantity,
		UnitPrice:     input.UnitPrice,
		PaymentStatus: input.PaymentStatus,
		PaymentMethod: input.PaymentMethod,
		Notes:         input.Notes,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, sale)
}

func GetSales(c *gin.Context) {
	scope, ok := currentScope(c)
	if !ok {
		return
	}

	sales, err := inventoryService.ListSales(scope)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, sales)
}

// EditSale adjusts a recorded sale. Gated behind the admin password.
func EditSale(c *gin.Context) {
	scope, ok := currentScope(c)
	if !ok {
		return
	}
	userUUID, ok := currentUserID(c)
	if !ok {
		return
	}
	saleID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input EditSaleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	result, executed, err := gateService.Request(userUUID, services.PendingAction{
		Kind:  services.ActionEditSale,
		Scope: scope,
		EditSale: &services.EditSaleAction{
			SaleID: saleID,
			Input: services.EditSaleInput{
				Quantity:      input.Quantity,
				PaymentStatus: input.PaymentStatus,
				PaymentMethod: input.PaymentMethod,
				Notes:         input.Notes,
			},
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

// DeleteSale removes a sale and restores its stock. Gated behind the admin
// password.
func DeleteSale(c *gin.Context) {
	scope, ok := currentScope(c)
	if !ok {
		return
	}
	userUUID, ok := currentUserID(c)
	if !ok {
		return
	}
	saleID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	_, executed, err := gateService.Request(userUUID, services.PendingAction{
		Kind:  services.ActionDeleteSale,
		Scope: scope,
		DeleteSale: &services.DeleteSaleAction{
			SaleID: saleID,
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

	c.JSON(http.StatusOK, gin.H{"message": "Sale deleted"})
}
