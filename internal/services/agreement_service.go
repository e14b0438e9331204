package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/contractdesk/contract-management-api/internal/models"
	"github.com/contractdesk/contract-management-api/internal/repository"
	"github.com/contractdesk/contract-management-api/internal/scope"
)

var (
	ErrAgreementNotFound      = errors.New("agreement not found")
	ErrAgreementTitleRequired = errors.New("agreement title is required")
	ErrAgreementStatusInvalid = errors.New("unknown agreement status")
	ErrAgreementIDInvalid     = errors.New("agreement id must be a uuid")
	ErrProjectWrongOrg        = errors.New("project belongs to a different organization")
	ErrAIServiceNotConfigured = errors.New("AI service is not configured")
)

// AgreementService handles agreement business logic.
type AgreementService struct {
	agreementRepo repository.AgreementRepository
	projectRepo   repository.ProjectRepository
	orgRepo       repository.OrganizationRepository
	aiService     *AIService
}

// NewAgreementService creates a new AgreementService.
func NewAgreementService(agreementRepo repository.AgreementRepository, projectRepo repository.ProjectRepository, orgRepo repository.OrganizationRepository, aiService *AIService) *AgreementService {
	return &AgreementService{
		agreementRepo: agreementRepo,
		projectRepo:   projectRepo,
		orgRepo:       orgRepo,
		aiService:     aiService,
	}
}

// ListAgreementsInput represents filters for listing agreements.
type ListAgreementsInput struct {
	Scope          scope.ResourceScope
	TargetBranchID *uint64
	Status         *models.AgreementStatus
	ProjectID      *uint64
	Page           int
	PageSize       int
}

// ListAgreements returns agreements visible to the principal, newest first.
func (s *AgreementService) ListAgreements(principal models.Principal, input ListAgreementsInput) ([]models.Agreement, int64, error) {
	if !input.Scope.Valid() {
		input.Scope = scope.ScopeDefault
	}
	p := scope.ForPrincipal(principal, input.Scope, input.TargetBranchID)

	agreements, total, err := s.agreementRepo.List(p, repository.AgreementFilter{
		Status:    input.Status,
		ProjectID: input.ProjectID,
		Page:      input.Page,
		PageSize:  input.PageSize,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list agreements: %w", err)
	}
	return agreements, total, nil
}

// GetAgreement returns one agreement if the principal can see it.
func (s *AgreementService) GetAgreement(principal models.Principal, id string) (*models.Agreement, error) {
	agreement, err := s.agreementRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAgreementNotFound
		}
		return nil, fmt.Errorf("failed to find agreement: %w", err)
	}
	if !s.visible(principal, agreement) {
		return nil, ErrAgreementNotFound
	}
	return agreement, nil
}

// visible applies the default scope rule to a single row: branch members see
// their own branch's agreements plus organization-wide ones.
func (s *AgreementService) visible(principal models.Principal, agreement *models.Agreement) bool {
	if agreement.OrganizationID != principal.OrganizationID {
		return false
	}
	if principal.IsOrgAdmin() {
		return true
	}
	if agreement.BranchOfficeID == nil {
		return true
	}
	return principal.BranchOfficeID != nil && *principal.BranchOfficeID == *agreement.BranchOfficeID
}

// UpsertAgreementInput carries the full agreement payload. The id may be
// client-supplied so drafts can be saved repeatedly without a create/update
// branch; an empty id gets one assigned.
type UpsertAgreementInput struct {
	ID             string
	Title          string
	Counterparty   string
	BranchOfficeID *uint64
	ProjectID      *uint64
	Status         models.AgreementStatus
	RiskLevel      models.RiskLevel
	Version        int
	Sections       []models.Section
	Tags           []string
	Comments       []models.Comment
	AuditLog       []models.AuditEntry
}

// UpsertAgreement writes the full agreement row, re-serializing every embedded
// collection. Version is caller-managed; concurrent writers are not detected,
// last write wins.
func (s *AgreementService) UpsertAgreement(principal models.Principal, input UpsertAgreementInput) (*models.Agreement, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrAgreementTitleRequired
	}

	status := input.Status
	if status == "" {
		status = models.AgreementStatusDraft
	}
	if !status.Valid() {
		return nil, ErrAgreementStatusInvalid
	}

	id := input.ID
	if id == "" {
		id = uuid.NewString()
	} else if _, err := uuid.Parse(id); err != nil {
		return nil, ErrAgreementIDInvalid
	}

	branchID, err := resolveWriteBranch(s.orgRepo, principal, input.BranchOfficeID)
	if err != nil {
		return nil, err
	}

	if input.ProjectID != nil {
		project, err := s.projectRepo.FindByID(*input.ProjectID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrProjectNotFound
			}
			return nil, fmt.Errorf("failed to find project: %w", err)
		}
		if project.OrganizationID != principal.OrganizationID {
			return nil, ErrProjectWrongOrg
		}
	}

	// An existing row keeps its branch assignment and creator; the scope of an
	// agreement does not move between branches on re-save by a branch member.
	createdBy := principal.UserID
	if existing, err := s.agreementRepo.FindByID(id); err == nil {
		if !s.visible(principal, existing) {
			return nil, ErrAgreementNotFound
		}
		if !principal.IsOrgAdmin() {
			branchID = existing.BranchOfficeID
		}
		createdBy = existing.CreatedBy
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing agreement: %w", err)
	}

	version := input.Version
	if version <= 0 {
		version = 1
	}

	agreement := &models.Agreement{
		ID:             id,
		OrganizationID: principal.OrganizationID,
		BranchOfficeID: branchID,
		ProjectID:      input.ProjectID,
		Title:          strings.TrimSpace(input.Title),
		Counterparty:   strings.TrimSpace(input.Counterparty),
		Status:         status,
		RiskLevel:      input.RiskLevel,
		Version:        version,
		Sections:       input.Sections,
		Tags:           input.Tags,
		Comments:       input.Comments,
		AuditLog:       input.AuditLog,
		CreatedBy:      createdBy,
	}

	if err := s.agreementRepo.Upsert(agreement); err != nil {
		return nil, fmt.Errorf("failed to save agreement: %w", err)
	}
	return agreement, nil
}

// AddComment appends a comment to the agreement's embedded discussion.
func (s *AgreementService) AddComment(principal models.Principal, id string, author, body string) (*models.Agreement, error) {
	agreement, err := s.GetAgreement(principal, id)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(body) == "" {
		return nil, fmt.Errorf("comment body is required")
	}

	agreement.Comments = append(agreement.Comments, models.Comment{
		Author:    author,
		Body:      body,
		CreatedAt: time.Now(),
	})
	agreement.AuditLog = append(agreement.AuditLog, models.AuditEntry{
		Actor:     author,
		Action:    "comment_added",
		CreatedAt: time.Now(),
	})

	if err := s.agreementRepo.Upsert(agreement); err != nil {
		return nil, fmt.Errorf("failed to save agreement: %w", err)
	}
	return agreement, nil
}

// DeleteAgreement soft deletes an agreement the principal can see.
func (s *AgreementService) DeleteAgreement(principal models.Principal, id string) error {
	if _, err := s.GetAgreement(principal, id); err != nil {
		return err
	}
	if err := s.agreementRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete agreement: %w", err)
	}
	return nil
}

// GenerateClause drafts clause prose for a section title.
func (s *AgreementService) GenerateClause(ctx context.Context, sectionTitle, contextText string) (string, error) {
	if s.aiService == nil {
		return "", ErrAIServiceNotConfigured
	}
	return s.aiService.GenerateClause(ctx, sectionTitle, contextText)
}

// AnalyzeRisk classifies risk for agreement text.
func (s *AgreementService) AnalyzeRisk(ctx context.Context, text string) (*RiskAssessment, error) {
	if s.aiService == nil {
		return nil, ErrAIServiceNotConfigured
	}
	return s.aiService.AnalyzeRisk(ctx, text)
}
