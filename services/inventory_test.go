// services/inventory_test.go
package services

import (
	"testing"

	"agendaplus-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func inventoryFixture(t *testing.T) (*InventoryService, Scope, models.ProductCategory, models.StockProduct) {
	db := newTestDB(t)
	scope := ownerScope(t, db)
	category, product := seedProduct(t, db, scope, "Shampoo", 25, 10)
	return NewInventoryService(db), scope, category, product
}

func reloadProduct(t *testing.T, svc *InventoryService, product models.StockProduct) models.StockProduct {
	t.Helper()
	var fresh models.StockProduct
	require.NoError(t, svc.db.First(&fresh, "id = ?", product.ID).Error)
	return fresh
}

func TestRecordSaleDecrementsStock(t *testing.T) {
	svc, scope, _, product := inventoryFixture(t)

	sale, err := svc.RecordSale(scope, RecordSaleInput{
		ProductID:     product.ID,
		Quantity:      3,
		PaymentStatus: models.SalePaymentPaid,
	})
	require.NoError(t, err)

	assert.Equal(t, 3, sale.Quantity)
	assert.Equal(t, 25.0, sale.UnitPrice) // product price snapshot
	assert.Equal(t, 75.0, sale.TotalPrice)
	assert.Equal(t, "Shampoo", sale.ProductName)
	assert.Equal(t, 7, reloadProduct(t, svc, product).Quantity)
}

func TestRecordSaleRejectsOversell(t *testing.T) {
	svc, scope, _, product := inventoryFixture(t)

	// Product holds 10; draw it down to 3 first.
	_, err := svc.RecordSale(scope, RecordSaleInput{
		ProductID:     product.ID,
		Quantity:      7,
		PaymentStatus: models.SalePaymentPaid,
	})
	require.NoError(t, err)

	_, err = svc.RecordSale(scope, RecordSaleInput{
		ProductID:     product.ID,
		Quantity:      5,
		PaymentStatus: models.SalePaymentPaid,
	})
	assert.ErrorIs(t, err, ErrConflict)

	// Nothing changed and no sale row was written.
	assert.Equal(t, 3, reloadProduct(t, svc, product).Quantity)
	var count int64
	require.NoError(t, svc.db.Model(&models.StockSale{}).
		Where("product_id = ?", product.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestRecordSaleValidation(t *testing.T) {
	svc, scope, _, product := inventoryFixture(t)

	_, err := svc.RecordSale(scope, RecordSaleInput{
		ProductID:     product.ID,
		Quantity:      0,
		PaymentStatus: models.SalePaymentPaid,
	})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.RecordSale(scope, RecordSaleInput{
		ProductID:     product.ID,
		Quantity:      1,
		PaymentStatus: "refunded",
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestEditSaleIncreaseQuantity(t *testing.T) {
	svc, scope, _, product := inventoryFixture(t)

	sale, err := svc.RecordSale(scope, RecordSaleInput{
		ProductID:     product.ID,
		Quantity:      2,
		PaymentStatus: models.SalePaymentPaid,
	})
	require.NoError(t, err)

	newQuantity := 5
	edited, err := svc.EditSale(scope, sale.ID, EditSaleInput{Quantity: &newQuantity})
	require.NoError(t, err)

	assert.Equal(t, 5, edited.Quantity)
	assert.Equal(t, 125.0, edited.TotalPrice) // unit_price * newQuantity
	assert.Equal(t, 5, reloadProduct(t, svc, product).Quantity)
}

func TestEditSaleDecreaseRestoresStock(t *testing.T) {
	svc, scope, _, product := inventoryFixture(t)

	sale, err := svc.RecordSale(scope, RecordSaleInput{
		ProductID:     product.ID,
		Quantity:      6,
		PaymentStatus: models.SalePaymentPaid,
	})
	require.NoError(t, err)
	require.Equal(t, 4, reloadProduct(t, svc, product).Quantity)

	newQuantity := 2
	edited, err := svc.EditSale(scope, sale.ID, EditSaleInput{Quantity: &newQuantity})
	require.NoError(t, err)

	assert.Equal(t, 50.0, edited.TotalPrice)
	assert.Equal(t, 8, reloadProduct(t, svc, product).Quantity)
}

func TestEditSaleRejectsDeltaBeyondStock(t *testing.T) {
	svc, scope, _, product := inventoryFixture(t)

	sale, err := svc.RecordSale(scope, RecordSaleInput{
		ProductID:     product.ID,
		Quantity:      8,
		PaymentStatus: models.SalePaymentPaid,
	})
	require.NoError(t, err)
	require.Equal(t, 2, reloadProduct(t, svc, product).Quantity)

	newQuantity := 11 // delta 3 > remaining 2
	_, err = svc.EditSale(scope, sale.ID, EditSaleInput{Quantity: &newQuantity})
	assert.ErrorIs(t, err, ErrConflict)

	assert.Equal(t, 2, reloadProduct(t, svc, product).Quantity)
	var fresh models.StockSale
	require.NoError(t, svc.db.First(&fresh, "id = ?", sale.ID).Error)
	assert.Equal(t, 8, fresh.Quantity)
}

func TestDeleteSaleRestoresStock(t *testing.T) {
	svc, scope, _, product := inventoryFixture(t)

	sale, err := svc.RecordSale(scope, RecordSaleInput{
		ProductID:     product.ID,
		Quantity:      4,
		PaymentStatus: models.SalePaymentPending,
	})
	require.NoError(t, err)
	require.Equal(t, 6, reloadProduct(t, svc, product).Quantity)

	require.NoError(t, svc.DeleteSale(scope, sale.ID))

	assert.Equal(t, 10, reloadProduct(t, svc, product).Quantity)
	var count int64
	require.NoError(t, svc.db.Model(&models.StockSale{}).
		Where("id = ?", sale.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestStockNeverGoesNegative(t *testing.T) {
	svc, scope, _, product := inventoryFixture(t)

	// Any interleaving of sells, edits and deletes keeps quantity >= 0.
	sale, err := svc.RecordSale(scope, RecordSaleInput{
		ProductID:     product.ID,
		Quantity:      10,
		PaymentStatus: models.SalePaymentPaid,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, reloadProduct(t, svc, product).Quantity)

	_, err = svc.RecordSale(scope, RecordSaleInput{
		ProductID:     product.ID,
		Quantity:      1,
		PaymentStatus: models.SalePaymentPaid,
	})
	assert.ErrorIs(t, err, ErrConflict)

	require.NoError(t, svc.DeleteSale(scope, sale.ID))
	assert.Equal(t, 10, reloadProduct(t, svc, product).Quantity)
}

func TestUpdateProductRejectsNegativeQuantity(t *testing.T) {
	svc, scope, _, product := inventoryFixture(t)

	bad := -1
	_, err := svc.UpdateProduct(scope, product.ID, UpdateProductInput{Quantity: &bad})
	assert.ErrorIs(t, err, ErrIntegrity)
}

func TestDeleteCategoryCascadesButKeepsSaleHistory(t *testing.T) {
	svc, scope, category, product := inventoryFixture(t)

	sale, err := svc.RecordSale(scope, RecordSaleInput{
		ProductID:     product.ID,
		Quantity:      2,
		PaymentStatus: models.SalePaymentPaid,
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteCategory(scope, category.ID))

	var products []models.StockProduct
	require.NoError(t, svc.db.Where("category_id = ?", category.ID).Find(&products).Error)
	assert.Empty(t, products)

	// The sale row survives on its snapshots.
	var fresh models.StockSale
	require.NoError(t, svc.db.First(&fresh, "id = ?", sale.ID).Error)
	assert.Equal(t, "Shampoo", fresh.ProductName)
	assert.Equal(t, 50.0, fresh.TotalPrice)
}
