// services/inventory.go
package services

import (
	"fmt"

	"agendaplus-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InventoryService struct {
	db *gorm.DB
}

func NewInventoryService(db *gorm.DB) *InventoryService {
	return &InventoryService{db: db}
}

type RecordSaleInput struct {
	ProductID     uuid.UUID
	Quantity      int
	UnitPrice     *float64 // nil snapshots the product's current price
	PaymentStatus string
	PaymentMethod string
	Notes         string
}

type EditSaleInput struct {
	Quantity      *int
	PaymentStatus *string
	PaymentMethod *string
	Notes         *string
}

// RecordSale sells quantity units of a product. The stock check and the
// decrement are one guarded UPDATE inside the same transaction as the sale
// insert, so two concurrent sales of the last unit cannot both succeed.
func (s *InventoryService) RecordSale(scope Scope, input RecordSaleInput) (*models.StockSale, error) {
	if input.Quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be at least 1", ErrValidation)
	}
	if input.PaymentStatus != models.SalePaymentPending && input.PaymentStatus != models.SalePaymentPaid {
		return nil, fmt.Errorf("%w: payment status must be pending or paid", ErrValidation)
	}

	var sale models.StockSale
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var product models.StockProduct
		if err := scope.Branch(tx).First(&product, "id = ?", input.ProductID).Error; err != nil {
			return notFoundAsValidation(err, "product not found")
		}

		// Guarded decrement: only fires while enough stock remains.
		result := tx.Model(&models.StockProduct{}).
			Where("id = ? AND quantity >= ?", product.ID, input.Quantity).
			Update("quantity", gorm.Expr("quantity - ?", input.Quantity))
		if result.Error != nil {
			return fmt.Errorf("%w: %v", ErrTransient, result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("%w: insufficient stock for %q", ErrConflict, product.Name)
		}

		unitPrice := product.Price
		if input.UnitPrice != nil {
			unitPrice = *input.UnitPrice
		}

		sale = models.StockSale{
			TenantID:      scope.TenantID,
			ProductID:     product.ID,
			ProductName:   product.Name,
			Quantity:      input.Quantity,
			UnitPrice:     unitPrice,
			TotalPrice:    unitPrice * float64(input.Quantity),
			PaymentStatus: input.PaymentStatus,
			PaymentMethod: input.PaymentMethod,
			Notes:         input.Notes,
		}
		if err := tx.Create(&sale).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrTransient, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &sale, nil
}

// EditSale changes a sale's quantity or payment fields. A quantity change
// moves the delta back or forth on the owning product's stock and recomputes
// the total from the original unit-price snapshot, all in one transaction.
func (s *InventoryService) EditSale(scope Scope, saleID uuid.UUID, input EditSaleInput) (*models.StockSale, error) {
	var sale models.StockSale
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := scope.Tenant(tx).First(&sale, "id = ?", saleID).Error; err != nil {
			return notFoundAsValidation(err, "sale not found")
		}

		updates := map[string]interface{}{}

		if input.Quantity != nil {
			newQuantity := *input.Quantity
			if newQuantity < 1 {
				return fmt.Errorf("%w: quantity must be at least 1", ErrValidation)
			}
			delta := newQuantity - sale.Quantity
			if delta > 0 {
				result := tx.Model(&models.StockProduct{}).
					Where("id = ? AND quantity >= ?", sale.ProductID, delta).
					Update("quantity", gorm.Expr("quantity - ?", delta))
				if result.Error != nil {
					return fmt.Errorf("%w: %v", ErrTransient, result.Error)
				}
				if result.RowsAffected == 0 {
					return fmt.Errorf("%w: insufficient stock for %q", ErrConflict, sale.ProductName)
				}
			} else if delta < 0 {
				if err := tx.Model(&models.StockProduct{}).
					Where("id = ?", sale.ProductID).
					Update("quantity", gorm.Expr("quantity + ?", -delta)).Error; err != nil {
					return fmt.Errorf("%w: %v", ErrTransient, err)
				}
			}
			updates["quantity"] = newQuantity
			updates["total_price"] = sale.UnitPrice * float64(newQuantity)
		}

		if input.PaymentStatus != nil {
			if *input.PaymentStatus != models.SalePaymentPending && *input.PaymentStatus != models.SalePaymentPaid {
				return fmt.Errorf("%w: payment status must be pending or paid", ErrValidation)
			}
			updates["payment_status"] = *input.PaymentStatus
		}
		if input.PaymentMethod != nil {
			updates["payment_method"] = *input.PaymentMethod
		}
		if input.Notes != nil {
			updates["notes"] = *input.Notes
		}

		if len(updates) == 0 {
			return nil
		}
		if err := tx.Model(&sale).Updates(updates).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrTransient, err)
		}
		if err := tx.First(&sale, "id = ?", sale.ID).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrTransient, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &sale, nil
}

// DeleteSale removes a sale and puts its units back on the shelf. If the
// product was deleted in the meantime there is nothing to restore to.
func (s *InventoryService) DeleteSale(scope Scope, saleID uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var sale models.StockSale
		if err := scope.Tenant(tx).First(&sale, "id = ?", saleID).Error; err != nil {
			return notFoundAsValidation(err, "sale not found")
		}

		if err := tx.Model(&models.StockProduct{}).
			Where("id = ?", sale.ProductID).
			Update("quantity", gorm.Expr("quantity + ?", sale.Quantity)).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrTransient, err)
		}

		if err := tx.Delete(&sale).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrTransient, err)
		}
		return nil
	})
}

type ProductInput struct {
	BranchID   *uuid.UUID
	CategoryID uuid.UUID
	Name       string
	Price      float64
	Quantity   int
}

type UpdateProductInput struct {
	Name     *string
	Price    *float64
	Quantity *int
}

func (s *InventoryService) CreateProduct(scope Scope, input ProductInput) (*models.StockProduct, error) {
	if input.Name == "" || input.CategoryID == uuid.Nil {
		return nil, fmt.Errorf("%w: name and category are required", ErrValidation)
	}
	if input.Price < 0 || input.Quantity < 0 {
		return nil, fmt.Errorf("%w: price and quantity cannot be negative", ErrValidation)
	}
	if !scope.AdmitsBranch(input.BranchID) {
		return nil, fmt.Errorf("%w: branch outside caller scope", ErrValidation)
	}

	var category models.ProductCategory
	if err := scope.Tenant(s.db).First(&category, "id = ?", input.CategoryID).Error; err != nil {
		return nil, notFoundAsValidation(err, "category not found")
	}

	product := models.StockProduct{
		TenantID:   scope.TenantID,
		BranchID:   input.BranchID,
		CategoryID: category.ID,
		Name:       input.Name,
		Price:      input.Price,
		Quantity:   input.Quantity,
	}
	if err := s.db.Create(&product).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransient, err)
	}
	return &product, nil
}

func (s *InventoryService) UpdateProduct(scope Scope, productID uuid.UUID, input UpdateProductInput) (*models.StockProduct, error) {
	var product models.StockProduct
	if err := scope.Branch(s.db).First(&product, "id = ?", productID).Error; err != nil {
		return nil, notFoundAsValidation(err, "product not found")
	}

	updates := map[string]interface{}{}
	if input.Name != nil {
		updates["name"] = *input.Name
	}
	if input.Price != nil {
		if *input.Price < 0 {
			return nil, fmt.Errorf("%w: price cannot be negative", ErrValidation)
		}
		updates["price"] = *input.Price
	}
	if input.Quantity != nil {
		if *input.Quantity < 0 {
			return nil, fmt.Errorf("%w: quantity cannot be negative", ErrIntegrity)
		}
		updates["quantity"] = *input.Quantity
	}

	if len(updates) > 0 {
		if err := s.db.Model(&product).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("%w: %v", ErrTransient, err)
		}
		if err := s.db.First(&product, "id = ?", product.ID).Error; err != nil {
			return nil, fmt.Errorf("%w: %v", ErrTransient, err)
		}
	}
	return &product, nil
}

func (s *InventoryService) DeleteProduct(scope Scope, productID uuid.UUID) error {
	var product models.StockProduct
	if err := scope.Branch(s.db).First(&product, "id = ?", productID).Error; err != nil {
		return notFoundAsValidation(err, "product not found")
	}
	if err := s.db.Delete(&product).Error; err != nil {
		return fmt.Errorf("%w: %v", ErrTransient, err)
	}
	return nil
}

func (s *InventoryService) CreateCategory(scope Scope, name string) (*models.ProductCategory, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	category := models.ProductCategory{TenantID: scope.TenantID, Name: name}
	if err := s.db.Create(&category).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransient, err)
	}
	return &category, nil
}

// DeleteCategory removes a category and every product in it. Destructive;
// callers confirm explicitly. Sale history survives on its product-name and
// unit-price snapshots.
func (s *InventoryService) DeleteCategory(scope Scope, categoryID uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var category models.ProductCategory
		if err := scope.Tenant(tx).First(&category, "id = ?", categoryID).Error; err != nil {
			return notFoundAsValidation(err, "category not found")
		}

		if err := tx.Where("category_id = ?", category.ID).
			Delete(&models.StockProduct{}).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrTransient, err)
		}
		if err := tx.Delete(&category).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrTransient, err)
		}
		return nil
	})
}

func (s *InventoryService) ListProducts(scope Scope) ([]models.StockProduct, error) {
	var products []models.StockProduct
	if err := scope.Branch(s.db).Order("name").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransient, err)
	}
	return products, nil
}

func (s *InventoryService) ListSales(scope Scope) ([]models.StockSale, error) {
	var sales []models.StockSale
	if err := scope.Tenant(s.db).Order("created_at desc").Find(&sales).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransient, err)
	}
	return sales, nil
}
