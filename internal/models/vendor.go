package models

import (
	"time"

	"gorm.io/gorm"
)

// VendorDocument is one uploaded attachment on a vendor record.
type VendorDocument struct {
	Name       string    `json:"name"`
	URL        string    `json:"url"`
	UploadedAt time.Time `json:"uploaded_at"`
}

type Vendor struct {
	ID             uint64         `gorm:"primarykey" json:"id"`
	OrganizationID uint64         `gorm:"not null;index" json:"organization_id"`
	BranchOfficeID *uint64        `gorm:"index" json:"branch_office_id"`
	Name           string         `gorm:"type:varchar(255);not null" json:"name"`
	Category       string         `gorm:"type:varchar(100)" json:"category"`
	ContactEmail   string         `gorm:"type:varchar(255)" json:"contact_email"`
	Documents      DocumentList   `gorm:"type:text" json:"documents"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}
