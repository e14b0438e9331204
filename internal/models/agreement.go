package models

import (
	"time"

	"gorm.io/gorm"
)

type AgreementStatus string

const (
	AgreementStatusDraft       AgreementStatus = "draft"
	AgreementStatusReview      AgreementStatus = "review"
	AgreementStatusLegalReview AgreementStatus = "legal_review"
	AgreementStatusApproved    AgreementStatus = "approved"
	AgreementStatusActive      AgreementStatus = "active"
	AgreementStatusExpired     AgreementStatus = "expired"
	AgreementStatusArchived    AgreementStatus = "archived"
)

// Valid reports whether the status is a known stage. Transition order is not
// enforced; drafts can be saved at any stage directly.
func (s AgreementStatus) Valid() bool {
	switch s {
	case AgreementStatusDraft, AgreementStatusReview, AgreementStatusLegalReview,
		AgreementStatusApproved, AgreementStatusActive, AgreementStatusExpired,
		AgreementStatusArchived:
		return true
	}
	return false
}

type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// Section is one clause of an agreement, owned exclusively by the agreement row.
type Section struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Comment is an inline discussion entry on an agreement.
type Comment struct {
	Author    string    `json:"author"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// AuditEntry records one change to an agreement. The log is append-only.
type AuditEntry struct {
	Actor     string    `json:"actor"`
	Action    string    `json:"action"`
	Detail    string    `json:"detail,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Agreement carries a client-suppliable uuid primary key so draft-then-finalize
// flows can upsert without a separate create/update branch. A nil BranchOfficeID
// means the agreement is organization-wide.
type Agreement struct {
	ID             string          `gorm:"type:uuid;primarykey" json:"id"`
	OrganizationID uint64          `gorm:"not null;index" json:"organization_id"`
	BranchOfficeID *uint64         `gorm:"index" json:"branch_office_id"`
	ProjectID      *uint64         `gorm:"index" json:"project_id"`
	Title          string          `gorm:"type:varchar(255);not null" json:"title"`
	Counterparty   string          `gorm:"type:varchar(255)" json:"counterparty"`
	Status         AgreementStatus `gorm:"type:varchar(20);not null;default:'draft'" json:"status"`
	RiskLevel      RiskLevel       `gorm:"type:varchar(10)" json:"risk_level"`
	Version        int             `gorm:"not null;default:1" json:"version"`
	Sections       SectionList     `gorm:"type:text" json:"sections"`
	Tags           StringList      `gorm:"type:text" json:"tags"`
	Comments       CommentList     `gorm:"type:text" json:"comments"`
	AuditLog       AuditEntryList  `gorm:"type:text" json:"audit_log"`
	CreatedBy      uint64          `gorm:"not null" json:"created_by"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	DeletedAt      gorm.DeletedAt  `gorm:"index" json:"-"`

	// Relations
	Project *Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
}
