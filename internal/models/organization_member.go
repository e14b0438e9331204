package models

import "time"

type OrganizationRole string

const (
	RoleOrgAdmin    OrganizationRole = "org_admin"
	RoleBranchAdmin OrganizationRole = "branch_admin"
	RoleBranchUser  OrganizationRole = "branch_user"
)

// Valid reports whether the role is one of the known roles.
func (r OrganizationRole) Valid() bool {
	switch r {
	case RoleOrgAdmin, RoleBranchAdmin, RoleBranchUser:
		return true
	}
	return false
}

// OrganizationMember binds a user to an organization. BranchOfficeID is nil
// only for org admins; branch roles carry the branch they belong to.
type OrganizationMember struct {
	ID             uint64           `gorm:"primarykey" json:"id"`
	OrganizationID uint64           `gorm:"not null;uniqueIndex:idx_members_user_org" json:"organization_id"`
	UserID         uint64           `gorm:"not null;uniqueIndex:idx_members_user_org" json:"user_id"`
	Role           OrganizationRole `gorm:"type:varchar(20);not null" json:"role"`
	BranchOfficeID *uint64          `gorm:"index" json:"branch_office_id"`
	Department     *string          `gorm:"type:varchar(100)" json:"department"`
	JoinedAt       time.Time        `json:"joined_at"`

	// Relations
	Organization Organization  `gorm:"foreignKey:OrganizationID" json:"organization,omitempty"`
	User         User          `gorm:"foreignKey:UserID" json:"user,omitempty"`
	BranchOffice *BranchOffice `gorm:"foreignKey:BranchOfficeID" json:"branch_office,omitempty"`
}
