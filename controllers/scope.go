// controllers/scope.go
package controllers

import (
	"errors"
	"net/http"

	"agendaplus-backend/services"
	"agendaplus-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// currentScope rebuilds the caller's tenancy scope from the claims the auth
// middleware put on the context. Computed once here, passed explicitly into
// every service call.
func currentScope(c *gin.Context) (services.Scope, bool) {
	tenantID, exists := c.Get("tenantId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "Tenant ID not found in context")
		return services.Scope{}, false
	}
	tenantUUID, err := uuid.Parse(tenantID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid tenant ID format")
		return services.Scope{}, false
	}

	role, _ := c.Get("role")
	roleStr, _ := role.(string)

	scope := services.Scope{TenantID: tenantUUID, Role: roleStr}

	if branchID, ok := c.Get("branchId"); ok {
		if branchStr, ok := branchID.(string); ok && branchStr != "" {
			branchUUID, err := uuid.Parse(branchStr)
			if err != nil {
				utils.RespondWithError(c, http.StatusInternalServerError, "Invalid branch ID format")
				return services.Scope{}, false
			}
			scope.BranchID = &branchUUID
		}
	}
	return scope, true
}

func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return uuid.Nil, false
	}
	userUUID, err := uuid.Parse(userID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid user ID format")
		return uuid.Nil, false
	}
	return userUUID, true
}

func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid "+name+" format")
		return uuid.Nil, false
	}
	return id, true
}

// respondServiceError maps the core's error taxonomy onto HTTP statuses.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrConflict):
		utils.RespondWithError(c, http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrAuthorization):
		utils.RespondWithError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, services.ErrIntegrity):
		utils.RespondWithError(c, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, services.ErrTransient):
		utils.RespondWithError(c, http.StatusServiceUnavailable, err.Error())
	default:
		utils.RespondWithError(c, http.StatusInternalServerError, "Internal error")
	}
}
