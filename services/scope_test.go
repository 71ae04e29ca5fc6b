// services/scope_test.go
package services

import (
	"testing"

	"agendaplus-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScopeOwnerSeesEveryBranch(t *testing.T) {
	db := newTestDB(t)
	scope := ownerScope(t, db)

	branchA := seedBranch(t, db, scope, "Centro")
	branchB := seedBranch(t, db, scope, "Norte")

	seedProfessional(t, db, scope, "Ana", &branchA.ID)
	seedProfessional(t, db, scope, "Bruno", &branchB.ID)
	seedProfessional(t, db, scope, "Carla", nil) // shared

	var professionals []models.Professional
	require.NoError(t, scope.Branch(db).Find(&professionals).Error)
	assert.Len(t, professionals, 3)
}

func TestScopeStaffSeesOwnBranchAndShared(t *testing.T) {
	db := newTestDB(t)
	owner := ownerScope(t, db)

	branchA := seedBranch(t, db, owner, "Centro")
	branchB := seedBranch(t, db, owner, "Norte")

	seedProfessional(t, db, owner, "Ana", &branchA.ID)
	seedProfessional(t, db, owner, "Bruno", &branchB.ID)
	shared := seedProfessional(t, db, owner, "Carla", nil)

	scope := staffScope(owner, branchA.ID)

	var professionals []models.Professional
	require.NoError(t, scope.Branch(db).Find(&professionals).Error)
	require.Len(t, professionals, 2)
	for _, p := range professionals {
		if p.BranchID != nil {
			assert.Equal(t, branchA.ID, *p.BranchID)
		} else {
			assert.Equal(t, shared.ID, p.ID)
		}
	}
}

func TestScopeStaffNeverSeesOtherTenants(t *testing.T) {
	db := newTestDB(t)
	tenantOne := ownerScope(t, db)
	tenantTwo := ownerScope(t, db)

	seedProfessional(t, db, tenantTwo, "Elsewhere", nil)

	branch := seedBranch(t, db, tenantOne, "Centro")
	scope := staffScope(tenantOne, branch.ID)

	var professionals []models.Professional
	require.NoError(t, scope.Branch(db).Find(&professionals).Error)
	assert.Empty(t, professionals)
}

func TestScopeStaffWithoutBranchSeesOnlyShared(t *testing.T) {
	db := newTestDB(t)
	owner := ownerScope(t, db)

	branch := seedBranch(t, db, owner, "Centro")
	seedProfessional(t, db, owner, "Ana", &branch.ID)
	seedProfessional(t, db, owner, "Carla", nil)

	scope := Scope{TenantID: owner.TenantID, Role: "staff"}

	var professionals []models.Professional
	require.NoError(t, scope.Branch(db).Find(&professionals).Error)
	require.Len(t, professionals, 1)
	assert.Nil(t, professionals[0].BranchID)
}

func TestScopeAdmitsBranch(t *testing.T) {
	db := newTestDB(t)
	owner := ownerScope(t, db)
	branchA := seedBranch(t, db, owner, "Centro")
	branchB := seedBranch(t, db, owner, "Norte")

	staff := staffScope(owner, branchA.ID)

	assert.True(t, owner.AdmitsBranch(&branchB.ID))
	assert.True(t, staff.AdmitsBranch(nil)) // shared resources admitted
	assert.True(t, staff.AdmitsBranch(&branchA.ID))
	assert.False(t, staff.AdmitsBranch(&branchB.ID))
}
