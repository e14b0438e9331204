// Package scope implements the branch-scope visibility policy shared by every
// scoped resource (agreements, templates, vendors, projects, invites, members).
//
// Each scoped row carries organization_id plus a nullable branch_office_id: a
// null branch means the row is organization-wide and visible to all branches,
// a non-null branch means the row is owned by that branch.
package scope

import (
	"errors"

	"gorm.io/gorm"

	"github.com/contractdesk/contract-management-api/internal/models"
)

// ResourceScope narrows a listing to a slice of the organization's rows.
type ResourceScope string

const (
	// ScopeDefault applies the caller's natural visibility: branch members see
	// their branch plus organization-wide rows, org admins see everything.
	ScopeDefault ResourceScope = ""
	// ScopeAll is an org admin browsing every row in the organization.
	ScopeAll ResourceScope = "all"
	// ScopeOrganization limits to organization-wide rows only.
	ScopeOrganization ResourceScope = "organization"
	// ScopeBranch limits to branch-owned rows.
	ScopeBranch ResourceScope = "branch"
)

// Valid reports whether s is a recognized scope value.
func (s ResourceScope) Valid() bool {
	switch s {
	case ScopeDefault, ScopeAll, ScopeOrganization, ScopeBranch:
		return true
	}
	return false
}

// Params selects which rows of an organization a query may touch.
// BranchOfficeID is the caller's own branch for branch roles, or an explicitly
// chosen target branch for an org admin browsing one branch.
type Params struct {
	OrganizationID uint64
	BranchOfficeID *uint64
	Scope          ResourceScope
}

// Branch returns a GORM scope applying the row filter for p. The cases are
// evaluated in order, first match wins:
//
//  1. scope=branch with a concrete branch        -> branch_office_id = X
//  2. scope=branch without a branch              -> branch_office_id IS NOT NULL
//  3. scope=organization                         -> branch_office_id IS NULL
//  4. no scope but a branch is known             -> branch_office_id = X OR IS NULL
//  5. no scope, no branch                        -> no branch filter
//
// Every case is additionally constrained to the organization.
func Branch(p Params) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		db = db.Where("organization_id = ?", p.OrganizationID)

		switch {
		case p.Scope == ScopeBranch && p.BranchOfficeID != nil:
			return db.Where("branch_office_id = ?", *p.BranchOfficeID)
		case p.Scope == ScopeBranch:
			return db.Where("branch_office_id IS NOT NULL")
		case p.Scope == ScopeOrganization:
			return db.Where("branch_office_id IS NULL")
		case p.Scope == ScopeDefault && p.BranchOfficeID != nil:
			return db.Where("branch_office_id = ? OR branch_office_id IS NULL", *p.BranchOfficeID)
		default:
			// ScopeAll, or an org admin with no branch selected.
			return db
		}
	}
}

// ForPrincipal builds Params for a listing request. Branch roles always query
// from their own branch; org admins may target a specific branch or none.
func ForPrincipal(principal models.Principal, requested ResourceScope, targetBranchID *uint64) Params {
	p := Params{
		OrganizationID: principal.OrganizationID,
		Scope:          requested,
	}
	if principal.IsOrgAdmin() {
		p.BranchOfficeID = targetBranchID
	} else {
		p.BranchOfficeID = principal.BranchOfficeID
	}
	return p
}

var (
	// ErrBranchRequired is returned when a branch role has no branch assignment.
	// That membership is in a locked state and cannot own resources.
	ErrBranchRequired = errors.New("a branch office assignment is required for this action")
)

// ResolveWriteBranch decides the branch_office_id stored on a newly created
// scoped resource. Branch roles are forced to their own branch; the requested
// value is never trusted for them. Org admins store the branch they explicitly
// chose, or null for an organization-wide resource.
func ResolveWriteBranch(principal models.Principal, requested *uint64) (*uint64, error) {
	if principal.IsOrgAdmin() {
		return requested, nil
	}
	if principal.BranchOfficeID == nil {
		return nil, ErrBranchRequired
	}
	return principal.BranchOfficeID, nil
}
