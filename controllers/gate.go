// controllers/gate.go
package controllers

import (
	"net/http"

	"agendaplus-backend/utils"

	"github.com/gin-gonic/gin"
)

type SubmitGateInput struct {
	Password string `json:"password" binding:"required"`
}

type SetGatePasswordInput struct {
	Password string `json:"password" binding:"required,min=4"`
}

// GetGateStatus tells the UI whether a password is configured for the tenant
// and whether this session has an action waiting for confirmation.
func GetGateStatus(c *gin.Context) {
	scope, ok := currentScope(c)
	if !ok {
		return
	}
	userUUID, ok := currentUserID(c)
	if !ok {
		return
	}

	hasPassword, err := gateService.HasPassword(scope.TenantID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	kind, pending := gateService.Pending(userUUID)
	response := gin.H{"hasPassword": hasPassword, "pending": pending}
	if pending {
		response["pendingKind"] = kind
	}
	c.JSON(http.StatusOK, response)
}

// SubmitGatePassword confirms the session's pending action with the admin
// password. A wrong password keeps the action parked for another attempt.
func SubmitGatePassword(c *gin.Context) {
	scope, ok := currentScope(c)
	if !ok {
		return
	}
	userUUID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input SubmitGateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	result, err := gateService.Submit(userUUID, scope.TenantID, input.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if result == nil {
		c.JSON(http.StatusOK, gin.H{"message": "Action executed"})
		return
	}
	c.JSON(http.StatusOK, result)
}

// SetGatePassword provisions or rotates the tenant's admin password.
func SetGatePassword(c *gin.Context) {
	scope, ok := currentScope(c)
	if !ok {
		return
	}

	var input SetGatePasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if err := gateService.SetPassword(scope, input.Password); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Admin password updated"})
}
