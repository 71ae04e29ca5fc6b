// services/testutil_test.go
package services

import (
	"testing"

	"agendaplus-backend/models"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// One connection so every test statement sees the same in-memory DB.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.Tenant{},
		&models.Branch{},
		&models.Professional{},
		&models.Service{},
		&models.Client{},
		&models.Appointment{},
		&models.ProductCategory{},
		&models.StockProduct{},
		&models.StockSale{},
		&models.AdminCredential{},
		&models.ReminderLog{},
	))
	return db
}

func ownerScope(t *testing.T, db *gorm.DB) Scope {
	t.Helper()
	tenant := models.Tenant{ID: uuid.New(), Name: "Studio Bela"}
	require.NoError(t, db.Create(&tenant).Error)
	return Scope{TenantID: tenant.ID, Role: "owner"}
}

func staffScope(scope Scope, branchID uuid.UUID) Scope {
	return Scope{TenantID: scope.TenantID, Role: "staff", BranchID: &branchID}
}

func seedBranch(t *testing.T, db *gorm.DB, scope Scope, name string) models.Branch {
	t.Helper()
	branch := models.Branch{TenantID: scope.TenantID, Name: name, IsActive: true}
	require.NoError(t, db.Create(&branch).Error)
	return branch
}

func seedProfessional(t *testing.T, db *gorm.DB, scope Scope, name string, branchID *uuid.UUID) models.Professional {
	t.Helper()
	professional := models.Professional{
		TenantID: scope.TenantID,
		BranchID: branchID,
		Name:     name,
		IsActive: true,
	}
	require.NoError(t, db.Create(&professional).Error)
	return professional
}

func seedService(t *testing.T, db *gorm.DB, scope Scope, name string, price float64, duration int) models.Service {
	t.Helper()
	service := models.Service{
		TenantID:        scope.TenantID,
		Name:            name,
		Price:           price,
		DurationMinutes: duration,
		IsActive:        true,
	}
	require.NoError(t, db.Create(&service).Error)
	return service
}

func seedClient(t *testing.T, db *gorm.DB, scope Scope, name string) models.Client {
	t.Helper()
	client := models.Client{TenantID: scope.TenantID, Name: name, IsActive: true}
	require.NoError(t, db.Create(&client).Error)
	return client
}

func seedProduct(t *testing.T, db *gorm.DB, scope Scope, name string, price float64, quantity int) (models.ProductCategory, models.StockProduct) {
	t.Helper()
	category := models.ProductCategory{TenantID: scope.TenantID, Name: name + " category"}
	require.NoError(t, db.Create(&category).Error)
	product := models.StockProduct{
		TenantID:   scope.TenantID,
		CategoryID: category.ID,
		Name:       name,
		Price:      price,
		Quantity:   quantity,
	}
	require.NoError(t, db.Create(&product).Error)
	return category, product
}
