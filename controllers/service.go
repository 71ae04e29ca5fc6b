// controllers/service.go
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

// CreateServiceInput defines the expected JSON structure for creating a service
type CreateServiceInput struct {
	Name            string     `json:"name" binding:"required"`
	Description     string     `json:"description"`
	Price           float64    `json:"price" binding:"min=0"`
	DurationMinutes int        `json:"durationMinutes" binding:"required,min=1"`
	BranchID        *uuid.UUID `json:"branchId"` // omit for a shared catalog item
}

// UpdateServiceInput defines the expected JSON structure for updating a service
type UpdateServiceInput struct {
	Name            *string  `json:"name"`
	Description     *string  `json:"description"`
	Price           *float64 `json:"price"`
	DurationMinutes *int     `json:"durationMinutes"`
	IsActive        *bool    `json:"isActive"`
}

// CreateService creates a new service in the tenant's catalog
func CreateService(c *gin.Context) {
	scope, ok := currentScope(c)
	if !ok {
		return
	}

	var input CreateServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if !scope.AdmitsBranch(input.BranchID) {
		utils.RespondWithError(c, http.StatusForbidden, "Branch outside caller scope")
		return
	}

	service := models.Service{
		TenantID:        scope.TenantID,
		BranchID:        input.BranchID,
		Name:            input.Name,
		Description:     input.Description,
		Price:           input.Price,
		DurationMinutes: input.DurationMinutes,
		IsActive:        true,
	}

	if err := config.DB.Create(&service).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create service")
		return
	}

	c.JSON(http.StatusCreated, service)
}

// GetServices retrieves the services visible at the caller's branch
func GetServices(c *gin.Context) {
	scope, ok := currentScope(c)
	if !ok {
		return
	}

	var services []models.Service
	if err := scope.Branch(config.DB).Order("name").Find(&services).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve services")
		return
	}

	c.JSON(http.StatusOK, services)
}

// GetService retrieves a specific service by ID
func GetService(c *gin.Context) {
	scope, ok := currentScope(c)
	if !ok {
		return
	}
	serviceID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var service models.Service
	if err := scope.Branch(config.DB).First(&service, "id = ?", serviceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, service)
}

// UpdateService updates an existing service
func UpdateService(c *gin.Context) {
	scope, ok := currentScope(c)
	if !ok {
		return
	}
	serviceID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input UpdateServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var service models.Service
	if err := scope.Branch(config.DB).First(&service, "id = ?", serviceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil {
		service.Name = *input.Name
	}
	if input.Description != nil {
		service.Description = *input.Description
	}
	if input.Price != nil {
		if *input.Price < 0 {
			utils.RespondWithError(c, http.StatusBadRequest, "Price cannot be negative")
			return
		}
		service.Price = *input.Price
	}
	if input.DurationMinutes != nil {
		if *input.DurationMinutes < 1 {
			utils.RespondWithError(c, http.StatusBadRequest, "Duration must be positive")
			return
		}
		service.DurationMinutes = *input.DurationMinutes
	}
	if input.IsActive != nil {
		service.IsActive = *input.IsActive
	}

	if err := config.DB.Save(&service).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update service")
		return
	}

	c.JSON(http.StatusOK, service)
}
