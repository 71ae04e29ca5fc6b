// services/gate.go
package services

import (
	"errors"
	"fmt"
	"sync"

	"agendaplus-backend/models"
	"agendaplus-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ActionKind tags the fixed catalog of mutations the gate protects.
type ActionKind string

const (
	ActionEditClient         ActionKind = "edit_client"
	ActionCancelServiceLine  ActionKind = "cancel_service_line"
	ActionAddServiceLine     ActionKind = "add_service_line"
	ActionEditStockProduct   ActionKind = "edit_stock_product"
	ActionDeleteStockProduct ActionKind = "delete_stock_product"
	ActionEditSale           ActionKind = "edit_sale"
	ActionDeleteSale         ActionKind = "delete_sale"
)

// PendingAction is a tagged variant: exactly the payload field matching Kind
// is set. It carries the scope under which it was requested so execution
// later runs with the same visibility.
type PendingAction struct {
	Kind  ActionKind
	Scope Scope

	EditClient         *EditClientAction
	CancelServiceLine  *CancelServiceLineAction
	AddServiceLine     *AddServiceLineAction
	EditStockProduct   *EditStockProductAction
	DeleteStockProduct *DeleteStockProductAction
	EditSale           *EditSaleAction
	DeleteSale         *DeleteSaleAction
}

type EditClientAction struct {
	ClientID uuid.UUID
	Input    UpdateClientInput
}

type CancelServiceLineAction struct {
	AppointmentID uuid.UUID
}

type AddServiceLineAction struct {
	AnchorID   uuid.UUID
	ServiceIDs []uuid.UUID
}

type EditStockProductAction struct {
	ProductID uuid.UUID
	Input     UpdateProductInput
}

type DeleteStockProductAction struct {
	ProductID uuid.UUID
}

type EditSaleAction struct {
	SaleID uuid.UUID
	Input  EditSaleInput
}

type DeleteSaleAction struct {
	SaleID uuid.UUID
}

// GateService guards a fixed catalog of sensitive mutations behind the
// tenant's secondary admin password. At most one action is pending per caller
// session; a new request overwrites an unconfirmed one (last-request-wins).
// Pending state never times out; it lives until confirmed, replaced, or the
// session is cleared.
type GateService struct {
	db           *gorm.DB
	appointments *AppointmentService
	inventory    *InventoryService
	clients      *ClientService

	mu      sync.Mutex
	pending map[uuid.UUID]*PendingAction // keyed by user (session) id
}

func NewGateService(db *gorm.DB, appointments *AppointmentService, inventory *InventoryService, clients *ClientService) *GateService {
	return &GateService{
		db:           db,
		appointments: appointments,
		inventory:    inventory,
		clients:      clients,
		pending:      make(map[uuid.UUID]*PendingAction),
	}
}

// HasPassword reports whether the tenant configured an admin password.
func (g *GateService) HasPassword(tenantID uuid.UUID) (bool, error) {
	var count int64
	if err := g.db.Model(&models.AdminCredential{}).
		Where("tenant_id = ?", tenantID).Count(&count).Error; err != nil {
		return false, fmt.Errorf("%w: %v", ErrTransient, err)
	}
	return count > 0, nil
}

// SetPassword provisions or rotates the tenant's admin password. Owner only.
func (g *GateService) SetPassword(scope Scope, password string) error {
	if !scope.Owner() {
		return fmt.Errorf("%w: only the owner can set the admin password", ErrAuthorization)
	}
	if len(password) < 4 {
		return fmt.Errorf("%w: password too short", ErrValidation)
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTransient, err)
	}

	var credential models.AdminCredential
	err = g.db.Where("tenant_id = ?", scope.TenantID).First(&credential).Error
	switch {
	case err == nil:
		credential.PasswordHash = hash
		err = g.db.Save(&credential).Error
	case errors.Is(err, gorm.ErrRecordNotFound):
		credential = models.AdminCredential{TenantID: scope.TenantID, PasswordHash: hash}
		err = g.db.Create(&credential).Error
	default:
		return fmt.Errorf("%w: %v", ErrTransient, err)
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTransient, err)
	}
	return nil
}

// Validate checks a candidate password against the tenant's stored hash.
func (g *GateService) Validate(tenantID uuid.UUID, password string) (bool, error) {
	var credential models.AdminCredential
	if err := g.db.Where("tenant_id = ?", tenantID).First(&credential).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("%w: %v", ErrTransient, err)
	}
	return utils.CheckPasswordHash(password, credential.PasswordHash), nil
}

// Request gates one mutation. Without a configured password the action runs
// immediately and its result is returned with executed=true. With one, the
// action is parked for the session, replacing any unconfirmed prior request.
func (g *GateService) Request(userID uuid.UUID, action PendingAction) (result interface{}, executed bool, err error) {
	gated, err := g.HasPassword(action.Scope.TenantID)
	if err != nil {
		return nil, false, err
	}
	if !gated {
		result, err = g.execute(&action)
		return result, true, err
	}

	g.mu.Lock()
	g.pending[userID] = &action
	g.mu.Unlock()
	return nil, false, nil
}

// Submit confirms the session's pending action with the admin password. On a
// match the action executes exactly once and is cleared; on a mismatch it is
// retained for another attempt.
func (g *GateService) Submit(userID uuid.UUID, tenantID uuid.UUID, password string) (interface{}, error) {
	g.mu.Lock()
	action, ok := g.pending[userID]
	g.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("%w: no action pending confirmation", ErrValidation)
	}

	valid, err := g.Validate(tenantID, password)
	if err != nil {
		return nil, err
	}
	if !valid {
		return nil, fmt.Errorf("%w: wrong admin password", ErrAuthorization)
	}

	// Claim the action: only the goroutine that removes this exact entry may
	// execute it. A concurrent Submit or a replacing Request loses the claim.
	g.mu.Lock()
	current, ok := g.pending[userID]
	if !ok || current != action {
		g.mu.Unlock()
		return nil, fmt.Errorf("%w: no action pending confirmation", ErrValidation)
	}
	delete(g.pending, userID)
	g.mu.Unlock()

	return g.execute(action)
}

// Pending returns the kind of the session's parked action, if any.
func (g *GateService) Pending(userID uuid.UUID) (ActionKind, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	action, ok := g.pending[userID]
	if !ok {
		return "", false
	}
	return action.Kind, true
}

// ClearSession drops any pending action for a finished session.
func (g *GateService) ClearSession(userID uuid.UUID) {
	g.mu.Lock()
	delete(g.pending, userID)
	g.mu.Unlock()
}

// execute is the single dispatch point for every gated mutation.
func (g *GateService) execute(action *PendingAction) (interface{}, error) {
	switch action.Kind {
	case ActionEditClient:
		return g.clients.Update(action.Scope, action.EditClient.ClientID, action.EditClient.Input)
	case ActionCancelServiceLine:
		return g.appointments.CancelServiceLine(action.Scope, action.CancelServiceLine.AppointmentID)
	case ActionAddServiceLine:
		return g.appointments.AddServiceLines(action.Scope, action.AddServiceLine.AnchorID, action.AddServiceLine.ServiceIDs)
	case ActionEditStockProduct:
		return g.inventory.UpdateProduct(action.Scope, action.EditStockProduct.ProductID, action.EditStockProduct.Input)
	case ActionDeleteStockProduct:
		return nil, g.inventory.DeleteProduct(action.Scope, action.DeleteStockProduct.ProductID)
	case ActionEditSale:
		return g.inventory.EditSale(action.Scope, action.EditSale.SaleID, action.EditSale.Input)
	case ActionDeleteSale:
		return nil, g.inventory.DeleteSale(action.Scope, action.DeleteSale.SaleID)
	default:
		return nil, fmt.Errorf("%w: unknown gated action %q", ErrValidation, action.Kind)
	}
}
