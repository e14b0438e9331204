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
	ErrProjectNotFound      = errors.New("project not found")
	ErrProjectNameRequired  = errors.New("project name is required")
	ErrProjectStatusInvalid = errors.New("unknown project status")
)

// ProjectService handles project registry business logic.
type ProjectService struct {
	projectRepo repository.ProjectRepository
	orgRepo     repository.OrganizationRepository
}

// NewProjectService creates a new ProjectService.
func NewProjectService(projectRepo repository.ProjectRepository, orgRepo repository.OrganizationRepository) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		orgRepo:     orgRepo,
	}
}

// ListProjects returns projects visible to the principal, newest first.
func (s *ProjectService) ListProjects(principal models.Principal, requested scope.ResourceScope, targetBranchID *uint64) ([]models.Project, error) {
	p := scope.ForPrincipal(principal, requested, targetBranchID)
	projects, err := s.projectRepo.List(p)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// CreateProjectInput represents parameters to create a project.
type CreateProjectInput struct {
	Name           string
	Description    string
	BranchOfficeID *uint64
}

// CreateProject creates a project with the branch forced by the scope rules.
func (s *ProjectService) CreateProject(principal models.Principal, input CreateProjectInput) (*models.Project, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrProjectNameRequired
	}

	branchID, err := resolveWriteBranch(s.orgRepo, principal, input.BranchOfficeID)
	if err != nil {
		return nil, err
	}

	project := &models.Project{
		OrganizationID: principal.OrganizationID,
		BranchOfficeID: branchID,
		Name:           strings.TrimSpace(input.Name),
		Description:    strings.TrimSpace(input.Description),
		Status:         models.ProjectStatusActive,
	}

	if err := s.projectRepo.Create(project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}
	return project, nil
}

// UpdateProjectInput carries the editable project fields.
type UpdateProjectInput struct {
	Name        *string
	Description *string
	Status      *models.ProjectStatus
}

// UpdateProject updates a project the principal can see.
func (s *ProjectService) UpdateProject(principal models.Principal, id uint64, input UpdateProjectInput) (*models.Project, error) {
	project, err := s.GetProject(principal, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrProjectNameRequired
		}
		project.Name = name
	}
	if input.Description != nil {
		project.Description = strings.TrimSpace(*input.Description)
	}
	if input.Status != nil {
		switch *input.Status {
		case models.ProjectStatusActive, models.ProjectStatusOnHold, models.ProjectStatusCompleted:
			project.Status = *input.Status
		default:
			return nil, ErrProjectStatusInvalid
		}
	}

	if err := s.projectRepo.Update(project); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}
	return project, nil
}

// GetProject returns one project if the principal can see it.
func (s *ProjectService) GetProject(principal models.Principal, id uint64) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	if project.OrganizationID != principal.OrganizationID {
		return nil, ErrProjectNotFound
	}
	if !principal.IsOrgAdmin() && project.BranchOfficeID != nil {
		if principal.BranchOfficeID == nil || *principal.BranchOfficeID != *project.BranchOfficeID {
			return nil, ErrProjectNotFound
		}
	}
	return project, nil
}
