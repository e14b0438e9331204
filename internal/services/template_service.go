package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/contractdesk/contract-management-api/internal/models"
	"github.com/contractdesk/contract-management-api/internal/repository"
	"github.com/contractdesk/contract-management-api/internal/scope"
)

var (
	ErrTemplateNotFound     = errors.New("template not found")
	ErrTemplateNameRequired = errors.New("template name is required")
)

// TemplateService handles agreement template business logic.
type TemplateService struct {
	templateRepo repository.TemplateRepository
	orgRepo      repository.OrganizationRepository
}

// NewTemplateService creates a new TemplateService.
func NewTemplateService(templateRepo repository.TemplateRepository, orgRepo repository.OrganizationRepository) *TemplateService {
	return &TemplateService{
		templateRepo: templateRepo,
		orgRepo:      orgRepo,
	}
}

// ListTemplates returns templates visible to the principal, newest first.
func (s *TemplateService) ListTemplates(principal models.Principal, requested scope.ResourceScope, targetBranchID *uint64) ([]models.Template, error) {
	p := scope.ForPrincipal(principal, requested, targetBranchID)
	templates, err := s.templateRepo.List(p)
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	return templates, nil
}

// CreateTemplateInput represents parameters to create a template.
type CreateTemplateInput struct {
	Name           string
	Category       string
	Content        string
	Visibility     models.TemplateVisibility
	BranchOfficeID *uint64
}

// CreateTemplate creates a template. The client-supplied visibility is only
// honored for org admins: a branch admin's template is always branch-visible
// in their own branch, whatever the payload says.
func (s *TemplateService) CreateTemplate(principal models.Principal, input CreateTemplateInput) (*models.Template, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrTemplateNameRequired
	}

	visibility := input.Visibility
	requestedBranch := input.BranchOfficeID

	if !principal.IsOrgAdmin() {
		visibility = models.VisibilityBranch
	} else if visibility == models.VisibilityOrganization {
		// Organization-wide templates carry no branch.
		requestedBranch = nil
	} else if visibility == "" {
		visibility = models.VisibilityBranch
	}

	branchID, err := resolveWriteBranch(s.orgRepo, principal, requestedBranch)
	if err != nil {
		return nil, err
	}
	if visibility == models.VisibilityBranch && branchID == nil {
		// An org admin creating a branch-visible template must pick a branch.
		return nil, scope.ErrBranchRequired
	}

	template := &models.Template{
		OrganizationID: principal.OrganizationID,
		BranchOfficeID: branchID,
		Name:           strings.TrimSpace(input.Name),
		Category:       strings.TrimSpace(input.Category),
		Content:        input.Content,
		Visibility:     visibility,
		CreatedBy:      principal.UserID,
	}

	if err := s.templateRepo.Create(template); err != nil {
		return nil, fmt.Errorf("failed to create template: %w", err)
	}
	return template, nil
}

// UpdateTemplateInput carries the editable template fields. Visibility and
// branch assignment do not move after creation.
type UpdateTemplateInput struct {
	Name     *string
	Category *string
	Content  *string
}

// UpdateTemplate updates a template the principal can see.
func (s *TemplateService) UpdateTemplate(principal models.Principal, id uint64, input UpdateTemplateInput) (*models.Template, error) {
	template, err := s.GetTemplate(principal, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrTemplateNameRequired
		}
		template.Name = name
	}
	if input.Category != nil {
		template.Category = strings.TrimSpace(*input.Category)
	}
	if input.Content != nil {
		template.Content = *input.Content
	}

	if err := s.templateRepo.Update(template); err != nil {
		return nil, fmt.Errorf("failed to update template: %w", err)
	}
	return template, nil
}

// GetTemplate returns one template if the principal can see it.
func (s *TemplateService) GetTemplate(principal models.Principal, id uint64) (*models.Template, error) {
	template, err := s.templateRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, fmt.Errorf("failed to find template: %w", err)
	}
	if template.OrganizationID != principal.OrganizationID {
		return nil, ErrTemplateNotFound
	}
	if !principal.IsOrgAdmin() && template.BranchOfficeID != nil {
		if principal.BranchOfficeID == nil || *principal.BranchOfficeID != *template.BranchOfficeID {
			return nil, ErrTemplateNotFound
		}
	}
	return template, nil
}
