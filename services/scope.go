// services/scope.go
package services

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Scope is the tenancy filter for one authenticated caller. It is computed
// once per request by the auth middleware and passed explicitly into every
// service call instead of being rebuilt per screen.
type Scope struct {
	TenantID uuid.UUID
	Role     string
	BranchID *uuid.UUID
}

// Owner reports whether the caller operates tenant-wide.
func (s Scope) Owner() bool {
	return s.Role == "owner"
}

// Tenant narrows a query to the caller's tenant only. Used for resources
// that have no branch column (clients, categories, sales).
func (s Scope) Tenant(db *gorm.DB) *gorm.DB {
	return db.Where("tenant_id = ?", s.TenantID)
}

// Branch narrows a query to the caller's tenant and, for non-owners, to rows
// belonging to the assigned branch or shared across branches (branch_id NULL).
// A NULL branch_id is a deliberate tenant-wide resource, visible everywhere.
func (s Scope) Branch(db *gorm.DB) *gorm.DB {
	db = db.Where("tenant_id = ?", s.TenantID)
	if s.Owner() {
		return db
	}
	if s.BranchID == nil {
		// Staff without an assigned branch only see shared resources.
		return db.Where("branch_id IS NULL")
	}
	return db.Where("(branch_id = ? OR branch_id IS NULL)", *s.BranchID)
}

// AdmitsBranch reports whether the caller may touch a row carrying the given
// branch id. Mirrors Branch for writes that are validated in memory.
func (s Scope) AdmitsBranch(branchID *uuid.UUID) bool {
	if s.Owner() || branchID == nil {
		return true
	}
	return s.BranchID != nil && *s.BranchID == *branchID
}
