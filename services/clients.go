// services/clients.go
package services

import (
	"fmt"

	"agendaplus-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ClientService struct {
	db *gorm.DB
}

func NewClientService(db *gorm.DB) *ClientService {
	return &ClientService{db: db}
}

type ClientInput struct {
	Name  string
	Phone string
	Email string
	Notes string
}

type UpdateClientInput struct {
	Name  *string
	Phone *string
	Email *string
	Notes *string
}

func (s *ClientService) Create(scope Scope, input ClientInput) (*models.Client, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	client := models.Client{
		TenantID: scope.TenantID,
		Name:     input.Name,
		Phone:    input.Phone,
		Email:    input.Email,
		Notes:    input.Notes,
		IsActive: true,
	}
	if err := s.db.Create(&client).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransient, err)
	}
	return &client, nil
}

func (s *ClientService) Update(scope Scope, clientID uuid.UUID, input UpdateClientInput) (*models.Client, error) {
	var client models.Client
	if err := scope.Tenant(s.db).First(&client, "id = ?", clientID).Error; err != nil {
		return nil, notFoundAsValidation(err, "client not found")
	}

	updates := map[string]interface{}{}
	if input.Name != nil {
		if *input.Name == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", ErrValidation)
		}
		updates["name"] = *input.Name
	}
	if input.Phone != nil {
		updates["phone"] = *input.Phone
	}
	if input.Email != nil {
		updates["email"] = *input.Email
	}
	if input.Notes != nil {
		updates["notes"] = *input.Notes
	}

	if len(updates) > 0 {
		if err := s.db.Model(&client).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("%w: %v", ErrTransient, err)
		}
		if err := s.db.First(&client, "id = ?", client.ID).Error; err != nil {
			return nil, fmt.Errorf("%w: %v", ErrTransient, err)
		}
	}
	return &client, nil
}

func (s *ClientService) List(scope Scope) ([]models.Client, error) {
	var clients []models.Client
	if err := scope.Tenant(s.db).Order("name").Find(&clients).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransient, err)
	}
	return clients, nil
}

func (s *ClientService) Get(scope Scope, clientID uuid.UUID) (*models.Client, error) {
	var client models.Client
	if err := scope.Tenant(s.db).First(&client, "id = ?", clientID).Error; err != nil {
		return nil, notFoundAsValidation(err, "client not found")
	}
	return &client, nil
}
