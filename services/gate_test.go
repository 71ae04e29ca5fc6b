// services/gate_test.go
package services

import (
	"errors"
	"sync"
	"testing"

	"agendaplus-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func gateFixture(t *testing.T) (*GateService, Scope, *gorm.DB) {
	db := newTestDB(t)
	scope := ownerScope(t, db)

	appointments := NewAppointmentService(db)
	inventory := NewInventoryService(db)
	clients := NewClientService(db)
	return NewGateService(db, appointments, inventory, clients), scope, db
}

func editClientAction(scope Scope, clientID uuid.UUID, name string) PendingAction {
	return PendingAction{
		Kind:  ActionEditClient,
		Scope: scope,
		EditClient: &EditClientAction{
			ClientID: clientID,
			Input:    UpdateClientInput{Name: &name},
		},
	}
}

func TestGateWithoutPasswordExecutesImmediately(t *testing.T) {
	gate, scope, db := gateFixture(t)
	client := seedClient(t, db, scope, "Joana")
	session := uuid.New()

	result, executed, err := gate.Request(session, editClientAction(scope, client.ID, "Joana Silva"))
	require.NoError(t, err)
	assert.True(t, executed)
	assert.Equal(t, "Joana Silva", result.(*models.Client).Name)

	_, pending := gate.Pending(session)
	assert.False(t, pending)
}

func TestGateParksActionUntilConfirmed(t *testing.T) {
	gate, scope, db := gateFixture(t)
	client := seedClient(t, db, scope, "Joana")
	session := uuid.New()

	require.NoError(t, gate.SetPassword(scope, "super-secret"))

	_, executed, err := gate.Request(session, editClientAction(scope, client.ID, "Joana Silva"))
	require.NoError(t, err)
	assert.False(t, executed)

	// Nothing happened yet.
	var fresh models.Client
	require.NoError(t, db.First(&fresh, "id = ?", client.ID).Error)
	assert.Equal(t, "Joana", fresh.Name)

	result, err := gate.Submit(session, scope.TenantID, "super-secret")
	require.NoError(t, err)
	assert.Equal(t, "Joana Silva", result.(*models.Client).Name)

	// Executed exactly once and cleared.
	_, err = gate.Submit(session, scope.TenantID, "super-secret")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestGateWrongPasswordKeepsActionPending(t *testing.T) {
	gate, scope, db := gateFixture(t)
	client := seedClient(t, db, scope, "Joana")
	session := uuid.New()

	require.NoError(t, gate.SetPassword(scope, "super-secret"))

	_, _, err := gate.Request(session, editClientAction(scope, client.ID, "Joana Silva"))
	require.NoError(t, err)

	_, err = gate.Submit(session, scope.TenantID, "wrong")
	assert.ErrorIs(t, err, ErrAuthorization)

	kind, pending := gate.Pending(session)
	assert.True(t, pending)
	assert.Equal(t, ActionEditClient, kind)

	// The retry with the right password still works.
	_, err = gate.Submit(session, scope.TenantID, "super-secret")
	assert.NoError(t, err)
}

func TestGateLastRequestWins(t *testing.T) {
	gate, scope, db := gateFixture(t)
	client := seedClient(t, db, scope, "Joana")
	session := uuid.New()

	require.NoError(t, gate.SetPassword(scope, "super-secret"))

	_, _, err := gate.Request(session, editClientAction(scope, client.ID, "First"))
	require.NoError(t, err)
	_, _, err = gate.Request(session, editClientAction(scope, client.ID, "Second"))
	require.NoError(t, err)

	result, err := gate.Submit(session, scope.TenantID, "super-secret")
	require.NoError(t, err)
	assert.Equal(t, "Second", result.(*models.Client).Name)
}

func TestGateSessionsAreIndependent(t *testing.T) {
	gate, scope, db := gateFixture(t)
	client := seedClient(t, db, scope, "Joana")

	require.NoError(t, gate.SetPassword(scope, "super-secret"))

	sessionA := uuid.New()
	sessionB := uuid.New()

	_, _, err := gate.Request(sessionA, editClientAction(scope, client.ID, "From A"))
	require.NoError(t, err)

	_, err = gate.Submit(sessionB, scope.TenantID, "super-secret")
	assert.ErrorIs(t, err, ErrValidation) // B has nothing pending

	_, err = gate.Submit(sessionA, scope.TenantID, "super-secret")
	assert.NoError(t, err)
}

func TestGateClearSession(t *testing.T) {
	gate, scope, db := gateFixture(t)
	client := seedClient(t, db, scope, "Joana")
	session := uuid.New()

	require.NoError(t, gate.SetPassword(scope, "super-secret"))

	_, _, err := gate.Request(session, editClientAction(scope, client.ID, "Joana Silva"))
	require.NoError(t, err)

	gate.ClearSession(session)

	_, err = gate.Submit(session, scope.TenantID, "super-secret")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestGateSetPasswordOwnerOnly(t *testing.T) {
	gate, scope, db := gateFixture(t)
	branch := seedBranch(t, db, scope, "Centro")

	staff := staffScope(scope, branch.ID)
	err := gate.SetPassword(staff, "super-secret")
	assert.ErrorIs(t, err, ErrAuthorization)
}

func TestGateValidate(t *testing.T) {
	gate, scope, _ := gateFixture(t)

	// No credential configured yet.
	hasPassword, err := gate.HasPassword(scope.TenantID)
	require.NoError(t, err)
	assert.False(t, hasPassword)

	ok, err := gate.Validate(scope.TenantID, "anything")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, gate.SetPassword(scope, "super-secret"))

	hasPassword, err = gate.HasPassword(scope.TenantID)
	require.NoError(t, err)
	assert.True(t, hasPassword)

	ok, err = gate.Validate(scope.TenantID, "super-secret")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = gate.Validate(scope.TenantID, "nope")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGateConcurrentSubmitExecutesOnce(t *testing.T) {
	gate, scope, db := gateFixture(t)
	client := seedClient(t, db, scope, "Joana")
	corte := seedService(t, db, scope, "Corte", 30, 30)
	barba := seedService(t, db, scope, "Barba", 20, 20)
	professional := seedProfessional(t, db, scope, "Ana", nil)
	session := uuid.New()

	anchor, err := gate.appointments.Create(scope, CreateAppointmentInput{
		ClientID:       client.ID,
		ServiceID:      corte.ID,
		ProfessionalID: professional.ID,
		Date:           "2026-09-10",
		Time:           "14:00",
	})
	require.NoError(t, err)
	_, err = gate.appointments.Transition(scope, anchor.ID, TransitionInput{
		Status:        models.StatusCompleted,
		PaymentStatus: models.PaymentPaid,
	})
	require.NoError(t, err)

	require.NoError(t, gate.SetPassword(scope, "super-secret"))

	_, executed, err := gate.Request(session, PendingAction{
		Kind:  ActionAddServiceLine,
		Scope: scope,
		AddServiceLine: &AddServiceLineAction{
			AnchorID:   anchor.ID,
			ServiceIDs: []uuid.UUID{barba.ID},
		},
	})
	require.NoError(t, err)
	require.False(t, executed)

	// Two rushed confirmations of the same pending action: only one may win
	// the claim, or the extra service would be booked and billed twice.
	var wg sync.WaitGroup
	results := make(chan error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := gate.Submit(session, scope.TenantID, "super-secret")
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var successes, misses int
	for err := range results {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, ErrValidation):
			misses++
		default:
			t.Fatalf("unexpected submit error: %v", err)
		}
	}
	assert.Equal(t, 1, successes)
	assert.Equal(t, 1, misses)

	var lines int64
	require.NoError(t, db.Model(&models.Appointment{}).
		Where("service_id = ?", barba.ID).Count(&lines).Error)
	assert.EqualValues(t, 1, lines)
}

func TestGateDispatchesInventoryActions(t *testing.T) {
	gate, scope, db := gateFixture(t)
	_, product := seedProduct(t, db, scope, "Shampoo", 25, 10)
	session := uuid.New()

	newPrice := 30.0
	result, executed, err := gate.Request(session, PendingAction{
		Kind:  ActionEditStockProduct,
		Scope: scope,
		EditStockProduct: &EditStockProductAction{
			ProductID: product.ID,
			Input:     UpdateProductInput{Price: &newPrice},
		},
	})
	require.NoError(t, err)
	require.True(t, executed)
	assert.Equal(t, 30.0, result.(*models.StockProduct).Price)

	_, executed, err = gate.Request(session, PendingAction{
		Kind:               ActionDeleteStockProduct,
		Scope:              scope,
		DeleteStockProduct: &DeleteStockProductAction{ProductID: product.ID},
	})
	require.NoError(t, err)
	require.True(t, executed)

	var count int64
	require.NoError(t, db.Model(&models.StockProduct{}).
		Where("id = ?", product.ID).Count(&count).Error)
	assert.Zero(t, count)
}
