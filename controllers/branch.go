// controllers/branch.go
package controllers

import (
	"net/http"

	"agendaplus-backend/config"
	"agendaplus-backend/models"
	"agendaplus-backend/utils"

	"github.com/gin-gonic/gin"
)

type CreateBranchInput struct {
	Name    string `json:"name" binding:"required"`
	Address string `json:"address"`
}

// CreateBranch opens a new location under the tenant. Owner only.
func CreateBranch(c *gin.Context) {
	scope, ok := currentScope(c)
	if !ok {
		return
	}
	if !scope.Owner() {
		utils.RespondWithError(c, http.StatusForbidden, "Only the owner can manage branches")
		return
	}

	var input CreateBranchInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	branch := models.Branch{
		TenantID: scope.TenantID,
		Name:     input.Name,
		Address:  input.Address,
		IsActive: true,
	}
	if err := config.DB.Create(&branch).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create branch")
		return
	}

	c.JSON(http.StatusCreated, branch)
}

// GetBranches lists the tenant's locations.
func GetBranches(c *gin.Context) {
	scope, ok := currentScope(c)
	if !ok {
		return
	}

	var branches []models.Branch
	if err := config.DB.Where("tenant_id = ?", scope.TenantID).
		Order("name").Find(&branches).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve branches")
		return
	}

	c.JSON(http.StatusOK, branches)
}
