package dto

import (
	"time"

	"github.com/contractdesk/contract-management-api/internal/models"
	"github.com/contractdesk/contract-management-api/internal/services"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID       uint64 `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name,omitempty"`
}

// OrganizationDTO represents an organization in API responses
type OrganizationDTO struct {
	ID           uint64             `json:"id"`
	Name         string             `json:"name"`
	Headquarters string             `json:"headquarters,omitempty"`
	BillingPlan  models.BillingPlan `json:"billing_plan"`
}

// MembershipDTO is the resolved membership the navigation layer consumes:
// the organization, the role flags, and the branch assignment.
type MembershipDTO struct {
	Organization   OrganizationDTO         `json:"organization"`
	Role           models.OrganizationRole `json:"role"`
	IsOrgAdmin     bool                    `json:"is_org_admin"`
	IsBranchAdmin  bool                    `json:"is_branch_admin"`
	BranchOfficeID *uint64                 `json:"branch_office_id"`
	BranchCode     string                  `json:"branch_code,omitempty"`
	Department     *string                 `json:"department,omitempty"`
}

// MemberDTO represents a member in an organization listing
type MemberDTO struct {
	User           UserDTO                 `json:"user"`
	Role           models.OrganizationRole `json:"role"`
	BranchOfficeID *uint64                 `json:"branch_office_id"`
	BranchCode     string                  `json:"branch_code,omitempty"`
	Department     *string                 `json:"department,omitempty"`
	JoinedAt       time.Time               `json:"joined_at"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:       user.ID,
		Email:    user.Email,
		FullName: user.FullName,
	}
}

// ToOrganizationDTO converts an Organization model to OrganizationDTO
func ToOrganizationDTO(org models.Organization) OrganizationDTO {
	return OrganizationDTO{
		ID:           org.ID,
		Name:         org.Name,
		Headquarters: org.Headquarters,
		BillingPlan:  org.BillingPlan,
	}
}

// ToMembershipDTO converts a resolved membership to DTO
func ToMembershipDTO(resolved services.ResolvedMembership) MembershipDTO {
	dto := MembershipDTO{
		Organization:   ToOrganizationDTO(resolved.Organization),
		Role:           resolved.Role,
		IsOrgAdmin:     resolved.Role == models.RoleOrgAdmin,
		IsBranchAdmin:  resolved.Role == models.RoleBranchAdmin,
		BranchOfficeID: resolved.BranchOfficeID,
		Department:     resolved.Department,
	}
	if resolved.BranchOffice != nil {
		dto.BranchCode = resolved.BranchOffice.Code
	}
	return dto
}

// ToMemberDTO converts a member to DTO
func ToMemberDTO(member models.OrganizationMember) MemberDTO {
	dto := MemberDTO{
		User:           ToUserDTO(member.User),
		Role:           member.Role,
		BranchOfficeID: member.BranchOfficeID,
		Department:     member.Department,
		JoinedAt:       member.JoinedAt,
	}
	if member.BranchOffice != nil {
		dto.BranchCode = member.BranchOffice.Code
	}
	return dto
}
