package models

import (
	"time"

	"gorm.io/gorm"
)

type TemplateVisibility string

const (
	VisibilityBranch       TemplateVisibility = "branch"
	VisibilityOrganization TemplateVisibility = "organization"
)

// Template is a reusable agreement blueprint. Branch admins can only author
// branch-visible templates; organization-wide visibility is an org admin choice.
type Template struct {
	ID             uint64             `gorm:"primarykey" json:"id"`
	OrganizationID uint64             `gorm:"not null;index" json:"organization_id"`
	BranchOfficeID *uint64            `gorm:"index" json:"branch_office_id"`
	Name           string             `gorm:"type:varchar(255);not null" json:"name"`
	Category       string             `gorm:"type:varchar(100)" json:"category"`
	Content        string             `gorm:"type:text" json:"content"`
	Visibility     TemplateVisibility `gorm:"type:varchar(20);not null;default:'branch'" json:"visibility"`
	CreatedBy      uint64             `gorm:"not null" json:"created_by"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
	DeletedAt      gorm.DeletedAt     `gorm:"index" json:"-"`
}
