package models

import (
	"time"

	"gorm.io/gorm"
)

type BranchOffice struct {
	ID             uint64         `gorm:"primarykey" json:"id"`
	OrganizationID uint64         `gorm:"not null;index" json:"organization_id"`
	Code           string         `gorm:"type:varchar(50);not null" json:"code"`
	Location       string         `gorm:"type:varchar(255)" json:"location"`
	Headcount      int            `json:"headcount"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Organization Organization `gorm:"foreignKey:OrganizationID" json:"organization,omitempty"`
}
