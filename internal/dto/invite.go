package dto

import (
	"time"

	"github.com/contractdesk/contract-management-api/internal/models"
)

// InviteDTO represents an invite in admin listings. The token itself is never
// listed; only the deep link returned at creation carries it.
type InviteDTO struct {
	ID             uint64                  `json:"id"`
	BranchOfficeID uint64                  `json:"branch_office_id"`
	BranchCode     string                  `json:"branch_code,omitempty"`
	Email          string                  `json:"email"`
	Role           models.OrganizationRole `json:"role"`
	Status         models.InviteStatus     `json:"status"`
	CreatedAt      time.Time               `json:"created_at"`
	AcceptedAt     *time.Time              `json:"accepted_at,omitempty"`
}

// PublicInviteDTO is what the pre-authentication acceptance screen sees:
// enough to render "join <branch> of <org> as <role>", nothing more.
type PublicInviteDTO struct {
	OrganizationName string                  `json:"organization_name"`
	BranchCode       string                  `json:"branch_code"`
	BranchLocation   string                  `json:"branch_location,omitempty"`
	Email            string                  `json:"email"`
	Role             models.OrganizationRole `json:"role"`
	FullName         *string                 `json:"full_name,omitempty"`
	Status           models.InviteStatus     `json:"status"`
}

// CreatedInviteDTO pairs the stored invite with its shareable link.
type CreatedInviteDTO struct {
	Invite    InviteDTO `json:"invite"`
	Link      string    `json:"link"`
	EmailSent bool      `json:"email_sent"`
}

// ToInviteDTO converts an invite to DTO
func ToInviteDTO(invite models.BranchInvite) InviteDTO {
	return InviteDTO{
		ID:             invite.ID,
		BranchOfficeID: invite.BranchOfficeID,
		BranchCode:     invite.BranchOffice.Code,
		Email:          invite.Email,
		Role:           invite.Role,
		Status:         invite.Status,
		CreatedAt:      invite.CreatedAt,
		AcceptedAt:     invite.AcceptedAt,
	}
}

// ToPublicInviteDTO converts an invite to the public acceptance-screen DTO
func ToPublicInviteDTO(invite models.BranchInvite) PublicInviteDTO {
	return PublicInviteDTO{
		OrganizationName: invite.Organization.Name,
		BranchCode:       invite.BranchOffice.Code,
		BranchLocation:   invite.BranchOffice.Location,
		Email:            invite.Email,
		Role:             invite.Role,
		FullName:         invite.FullName,
		Status:           invite.Status,
	}
}
