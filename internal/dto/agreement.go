package dto

import (
	"time"

	"github.com/contractdesk/contract-management-api/internal/models"
)

// AgreementListItemDTO represents an agreement in list responses (minimal data)
type AgreementListItemDTO struct {
	ID             string                 `json:"id"`
	Title          string                 `json:"title"`
	Counterparty   string                 `json:"counterparty,omitempty"`
	Status         models.AgreementStatus `json:"status"`
	RiskLevel      models.RiskLevel       `json:"risk_level,omitempty"`
	Version        int                    `json:"version"`
	BranchOfficeID *uint64                `json:"branch_office_id"`
	ProjectID      *uint64                `json:"project_id"`
	CreatedAt      time.Time              `json:"created_at"`
	UpdatedAt      time.Time              `json:"updated_at"`
}

// AgreementListResponse represents a paginated list of agreements
type AgreementListResponse struct {
	Agreements []AgreementListItemDTO `json:"agreements"`
	Page       int                    `json:"page"`
	PageSize   int                    `json:"page_size"`
	TotalCount int64                  `json:"total_count"`
}

// ToAgreementListItemDTO converts an agreement to the list item DTO
func ToAgreementListItemDTO(agreement models.Agreement) AgreementListItemDTO {
	return AgreementListItemDTO{
		ID:             agreement.ID,
		Title:          agreement.Title,
		Counterparty:   agreement.Counterparty,
		Status:         agreement.Status,
		RiskLevel:      agreement.RiskLevel,
		Version:        agreement.Version,
		BranchOfficeID: agreement.BranchOfficeID,
		ProjectID:      agreement.ProjectID,
		CreatedAt:      agreement.CreatedAt,
		UpdatedAt:      agreement.UpdatedAt,
	}
}

// ToAgreementListResponse converts agreements to a paginated list response
func ToAgreementListResponse(agreements []models.Agreement, page, pageSize int, total int64) AgreementListResponse {
	items := make([]AgreementListItemDTO, len(agreements))
	for i, agreement := range agreements {
		items[i] = ToAgreementListItemDTO(agreement)
	}
	return AgreementListResponse{
		Agreements: items,
		Page:       page,
		PageSize:   pageSize,
		TotalCount: total,
	}
}
