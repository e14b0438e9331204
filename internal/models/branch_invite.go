package models

import "time"

type InviteStatus string

const (
	InviteStatusPending  InviteStatus = "pending"
	InviteStatusAccepted InviteStatus = "accepted"
	InviteStatusRevoked  InviteStatus = "revoked"
)

// BranchInvite is a single-use, tokenized invitation to join a branch office.
// pending -> accepted and pending -> revoked are the only transitions.
type BranchInvite struct {
	ID             uint64           `gorm:"primarykey" json:"id"`
	OrganizationID uint64           `gorm:"not null;index" json:"organization_id"`
	BranchOfficeID uint64           `gorm:"not null;index" json:"branch_office_id"`
	Email          string           `gorm:"type:varchar(255);not null" json:"email"`
	Role           OrganizationRole `gorm:"type:varchar(20);not null" json:"role"`
	FullName       *string          `gorm:"type:varchar(255)" json:"full_name"`
	Department     *string          `gorm:"type:varchar(100)" json:"department"`
	Title          *string          `gorm:"type:varchar(100)" json:"title"`
	ContactEmail   *string          `gorm:"type:varchar(255)" json:"contact_email"`
	InviteToken    string           `gorm:"type:varchar(100);uniqueIndex;not null" json:"-"`
	Status         InviteStatus     `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	UserID         *uint64          `json:"user_id"`
	AcceptedAt     *time.Time       `json:"accepted_at"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`

	// Relations
	Organization Organization `gorm:"foreignKey:OrganizationID" json:"organization,omitempty"`
	BranchOffice BranchOffice `gorm:"foreignKey:BranchOfficeID" json:"branch_office,omitempty"`
}
