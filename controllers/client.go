// controllers/client.go
package controllers

import (
	"net/http"

	"agendaplus-backend/services"
	"agendaplus-backend/utils"

	"github.com/gin-gonic/gin"
)

type CreateClientInput struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone"`
	Email string `json:"email" binding:"omitempty,email"`
	Notes string `json:"notes"`
}

type UpdateClientInput struct {
	Name  *string `json:"name"`
	Phone *string `json:"phone"`
	Email *string `json:"email" binding:"omitempty,email"`
	Notes *string `json:"notes"`
}

func CreateClient(c *gin.Context) {
	scope, ok := currentScope(c)
	if !ok {
		return
	}

	var input CreateClientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if input.Phone != "" && !utils.ValidatePhone(input.Phone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number")
		return
	}

	client, err := clientService.Create(scope, services.ClientInput{
		Name:  input.Name,
		Phone: input.Phone,
		Email: input.Email,
		Notes: input.Notes,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, client)
}

func GetClients(c *gin.Context) {
	scope, ok := currentScope(c)
	if !ok {
		return
	}

	clients, err := clientService.List(scope)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, clients)
}

func GetClient(c *gin.Context) {
	scope, ok := currentScope(c)
	if !ok {
		return
	}
	clientID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	client, err := clientService.Get(scope, clientID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, client)
}

// UpdateClient edits a client's record. The edit is in the sensitive action
// catalog, so with an admin password configured it parks until confirmed.
func UpdateClient(c *gin.Context) {
	scope, ok := currentScope(c)
	if !ok {
		return
	}
	userUUID, ok := currentUserID(c)
	if !ok {
		return
	}
	clientID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input UpdateClientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if input.Phone != nil && *input.Phone != "" && !utils.ValidatePhone(*input.Phone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number")
		return
	}

	result, executed, err := gateService.Request(userUUID, services.PendingAction{
		Kind:  services.ActionEditClient,
		Scope: scope,
		EditClient: &services.EditClientAction{
			ClientID: clientID,
			Input: services.UpdateClientInput{
				Name:  input.Name,
				Phone: input.Phone,
				Email: input.Email,
				Notes: input.Notes,
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
