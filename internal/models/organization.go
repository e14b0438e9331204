package models

import (
	"time"

	"gorm.io/gorm"
)

type BillingPlan string

const (
	PlanStarter    BillingPlan = "starter"
	PlanBusiness   BillingPlan = "business"
	PlanEnterprise BillingPlan = "enterprise"
)

type Organization struct {
	ID           uint64         `gorm:"primarykey" json:"id"`
	OwnerUserID  uint64         `gorm:"uniqueIndex;not null" json:"owner_user_id"`
	Name         string         `gorm:"type:varchar(255);not null" json:"name"`
	Headquarters string         `gorm:"type:varchar(255)" json:"headquarters"`
	BillingPlan  BillingPlan    `gorm:"type:varchar(20);not null;default:'starter'" json:"billing_plan"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Branches []BranchOffice       `gorm:"foreignKey:OrganizationID" json:"branches,omitempty"`
	Members  []OrganizationMember `gorm:"foreignKey:OrganizationID" json:"members,omitempty"`
}
