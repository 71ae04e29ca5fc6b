// controllers/inventory.go
package controllers

import (
	"net/http"

	"agendaplus-backend/services"
	"agendaplus-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CreateCategoryInput struct {
	Name string `json:"name" binding:"required"`
}

type CreateProductInput struct {
	BranchID   *uuid.UUID `json:"branchId"`
	CategoryID uuid.UUID  `json:"categoryId" binding:"required"`
	Name       string     `json:"name" binding:"required"`
	Price      float64    `json:"price" binding:"min=0"`
	Quantity   int        `json:"quantity" binding:"min=0"`
}

type UpdateProductInput struct {
	Name     *string  `json:"name"`
	Price    *float64 `json:"price"`
	Quantity *int     `json:"quantity"`
}

func CreateCategory(c *gin.Context) {
	scope, ok := currentScope(c)
	if !ok {
		return
	}

	var input CreateCategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	category, err := inventoryService.CreateCategory(scope, input.Name)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, category)
}

// DeleteCategory cascades to every product in the category. The UI asks for
// explicit confirmation before calling this.
func DeleteCategory(c *gin.Context) {
	scope, ok := currentScope(c)
	if !ok {
		return
	}
	categoryID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := inventoryService.DeleteCategory(scope, categoryID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Category and its products deleted"})
}

func CreateProduct(c *gin.Context) {
	scope, ok := currentScope(c)
	if !ok {
		return
	}

	var input CreateProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	product, err := inventoryService.CreateProduct(scope, services.ProductInput{
		BranchID:   input.BranchID,
		CategoryID: input.CategoryID,
		Name:       input.Name,
		Price:      input.Price,
		Quantity:   input.Quantity,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, product)
}

func GetProducts(c *gin.Context) {
	scope, ok := currentScope(c)
	if !ok {
		return
	}

	products, err := inventoryService.ListProducts(scope)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, products)
}

// UpdateProduct edits a product. Gated behind the admin password.
func UpdateProduct(c *gin.Context) {
	scope, ok := currentScope(c)
	if !ok {
		return
	}
	userUUID, ok := currentUserID(c)
	if !ok {
		return
	}
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input UpdateProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	result, executed, err := gateService.Request(userUUID, services.PendingAction{
		Kind:  services.ActionEditStockProduct,
		Scope: scope,
		EditStockProduct: &services.EditStockProductAction{
			ProductID: productID,
			Input: services.UpdateProductInput{
				Name:     input.Name,
				Price:    input.Price,
				Quantity: input.Quantity,
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

// DeleteProduct removes a product. Gated behind the admin password.
func DeleteProduct(c *gin.Context) {
	scope, ok := currentScope(c)
	if !ok {
		return
	}
	userUUID, ok := currentUserID(c)
	if !ok {
		return
	}
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	_, executed, err := gateService.Request(userUUID, services.PendingAction{
		Kind:  services.ActionDeleteStockProduct,
		Scope: scope,
		DeleteStockProduct: &services.DeleteStockProductAction{
			ProductID: productID,
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

	c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
}
