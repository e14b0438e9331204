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
	ErrOrganizationNotFound    = errors.New("organization not found")
	ErrInvalidOrganizationName = errors.New("organization name cannot be empty")
	ErrInvalidBillingPlan      = errors.New("unknown billing plan")
	ErrBranchCodeRequired      = errors.New("branch code is required")
	ErrBranchCodeTaken         = errors.New("branch code already in use")
)

// OrganizationService provides business logic for organization and branch
// office operations.
type OrganizationService struct {
	orgRepo repository.OrganizationRepository
}

// NewOrganizationService creates a new OrganizationService.
func NewOrganizationService(orgRepo repository.OrganizationRepository) *OrganizationService {
	return &OrganizationService{
		orgRepo: orgRepo,
	}
}

// GetOrganization returns the principal's organization.
func (s *OrganizationService) GetOrganization(principal models.Principal) (*models.Organization, error) {
	org, err := s.orgRepo.FindByID(principal.OrganizationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("failed to find organization: %w", err)
	}
	return org, nil
}

// UpdateOrganizationInput carries the editable organization fields.
type UpdateOrganizationInput struct {
	Name        *string
	BillingPlan *models.BillingPlan
}

// UpdateOrganization updates the organization name and billing plan. Owner and
// headquarters are immutable after signup.
func (s *OrganizationService) UpdateOrganization(principal models.Principal, input UpdateOrganizationInput) (*models.Organization, error) {
	org, err := s.GetOrganization(principal)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrInvalidOrganizationName
		}
		org.Name = name
	}
	if input.BillingPlan != nil {
		switch *input.BillingPlan {
		case models.PlanStarter, models.PlanBusiness, models.PlanEnterprise:
			org.BillingPlan = *input.BillingPlan
		default:
			return nil, ErrInvalidBillingPlan
		}
	}

	if err := s.orgRepo.Update(org); err != nil {
		return nil, fmt.Errorf("failed to update organization: %w", err)
	}
	return org, nil
}

// CreateBranchInput represents parameters to create a branch office.
type CreateBranchInput struct {
	Code      string
	Location  string
	Headcount int
}

// CreateBranch creates a branch office in the principal's organization. The
// code is the human identifier shown in invite emails and listings.
func (s *OrganizationService) CreateBranch(principal models.Principal, input CreateBranchInput) (*models.BranchOffice, error) {
	code := strings.TrimSpace(input.Code)
	if code == "" {
		return nil, ErrBranchCodeRequired
	}

	branches, err := s.orgRepo.ListBranches(principal.OrganizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list branches: %w", err)
	}
	for _, b := range branches {
		if strings.EqualFold(b.Code, code) {
			return nil, ErrBranchCodeTaken
		}
	}

	branch := &models.BranchOffice{
		OrganizationID: principal.OrganizationID,
		Code:           code,
		Location:       strings.TrimSpace(input.Location),
		Headcount:      input.Headcount,
	}
	if err := s.orgRepo.CreateBranch(branch); err != nil {
		return nil, fmt.Errorf("failed to create branch office: %w", err)
	}
	return branch, nil
}

// UpdateBranchInput carries the editable branch office fields.
type UpdateBranchInput struct {
	Location  *string
	Headcount *int
}

// UpdateBranch updates a branch office's location and headcount.
func (s *OrganizationService) UpdateBranch(principal models.Principal, branchID uint64, input UpdateBranchInput) (*models.BranchOffice, error) {
	branch, err := s.orgRepo.FindBranch(branchID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBranchNotFound
		}
		return nil, fmt.Errorf("failed to find branch office: %w", err)
	}
	if branch.OrganizationID != principal.OrganizationID {
		return nil, ErrBranchNotFound
	}

	if input.Location != nil {
		branch.Location = strings.TrimSpace(*input.Location)
	}
	if input.Headcount != nil {
		branch.Headcount = *input.Headcount
	}

	if err := s.orgRepo.UpdateBranch(branch); err != nil {
		return nil, fmt.Errorf("failed to update branch office: %w", err)
	}
	return branch, nil
}

// ListBranches lists branch offices of the principal's organization.
func (s *OrganizationService) ListBranches(principal models.Principal) ([]models.BranchOffice, error) {
	branches, err := s.orgRepo.ListBranches(principal.OrganizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list branches: %w", err)
	}
	return branches, nil
}

// ListMembers lists members visible to the principal: org admins see the whole
// organization, branch members see their branch plus unassigned org admins.
func (s *OrganizationService) ListMembers(principal models.Principal) ([]models.OrganizationMember, error) {
	p := scope.ForPrincipal(principal, scope.ScopeDefault, nil)
	members, err := s.orgRepo.ListMembers(p)
	if err != nil {
		return nil, fmt.Errorf("failed to list organization members: %w", err)
	}
	return members, nil
}
