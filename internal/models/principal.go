package models

// Principal is the resolved identity threaded through service calls: the
// signed-in user plus their organization membership. Services take an explicit
// Principal rather than reading ambient state.
type Principal struct {
	UserID         uint64
	OrganizationID uint64
	Role           OrganizationRole
	BranchOfficeID *uint64
}

func (p Principal) IsOrgAdmin() bool {
	return p.Role == RoleOrgAdmin
}

func (p Principal) IsBranchAdmin() bool {
	return p.Role == RoleBranchAdmin
}

// HasBranch reports whether the principal is bound to a concrete branch office.
// A branch role without a branch is a locked state: the membership exists but
// resource management is blocked until an admin re-invites them.
func (p Principal) HasBranch() bool {
	return p.BranchOfficeID != nil
}
