// controllers/professional.go
package controllers

import (
	"errors"
	"net/http"

	"agendaplus-backend/config"
	"agendaplus-backend/models"
	"agendaplus-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreateProfessionalInput struct {
	Name     string     `json:"name" binding:"required"`
	Phone    string     `json:"phone"`
	BranchID *uuid.UUID `json:"branchId"` // omit for a professional shared across branches
}

type UpdateProfessionalInput struct {
	Name     *string `json:"name"`
	Phone    *string `json:"phone"`
	IsActive *bool   `json:"isActive"`
}

func CreateProfessional(c *gin.Context) {
	scope, ok := currentScope(c)
	if !ok {
		return
	}

	var input CreateProfessionalInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if !scope.AdmitsBranch(input.BranchID) {
		utils.RespondWithError(c, http.StatusForbidden, "Branch outside caller scope")
		return
	}

	professional := models.Professional{
		TenantID: scope.TenantID,
		BranchID: input.BranchID,
		Name:     input.Name,
		Phone:    input.Phone,
		IsActive: true,
	}
	if err := config.DB.Create(&professional).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create professional")
		return
	}

	c.JSON(http.StatusCreated, professional)
}

func GetProfessionals(c *gin.Context) {
	scope, ok := currentScope(c)
	if !ok {
		return
	}

	var professionals []models.Professional
	if err := scope.Branch(config.DB).Order("name").Find(&professionals).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve professionals")
		return
	}

	c.JSON(http.StatusOK, professionals)
}

func UpdateProfessional(c *gin.Context) {
	scope, ok := currentScope(c)
	if !ok {
		return
	}
	professionalID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input UpdateProfessionalInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var professional models.Professional
	if err := scope.Branch(config.DB).First(&professional, "id = ?", professionalID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Professional not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil {
		professional.Name = *input.Name
	}
	if input.Phone != nil {
		professional.Phone = *input.Phone
	}
	if input.IsActive != nil {
		professional.IsActive = *input.IsActive
	}

	if err := config.DB.Save(&professional).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update professional")
		return
	}

	c.JSON(http.StatusOK, professional)
}
