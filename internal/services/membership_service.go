package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/contractdesk/contract-management-api/internal/models"
	"github.com/contractdesk/contract-management-api/internal/repository"
)

// MembershipService resolves the signed-in user's organization membership.
type MembershipService struct {
	orgRepo repository.OrganizationRepository
}

// NewMembershipService creates a new MembershipService.
func NewMembershipService(orgRepo repository.OrganizationRepository) *MembershipService {
	return &MembershipService{
		orgRepo: orgRepo,
	}
}

// ResolvedMembership is the membership joined with its organization, plus the
// role flags the navigation layer consumes.
type ResolvedMembership struct {
	Organization   models.Organization
	Role           models.OrganizationRole
	BranchOfficeID *uint64
	BranchOffice   *models.BranchOffice
	Department     *string
}

// Principal converts the resolved membership into the principal threaded
// through service calls.
func (m *ResolvedMembership) Principal(userID uint64) models.Principal {
	return models.Principal{
		UserID:         userID,
		OrganizationID: m.Organization.ID,
		Role:           m.Role,
		BranchOfficeID: m.BranchOfficeID,
	}
}

// ResolveMembership finds the user's membership. A user who owns an
// organization but has no membership row gets one synthesized: organization
// creation and membership creation are separate writes that can partially
// fail, and the resolver converges that state instead of leaving a dangling
// org. Returns (nil, nil) when the user has neither — that signals onboarding,
// not an error.
func (s *MembershipService) ResolveMembership(userID uint64) (*ResolvedMembership, error) {
	member, err := s.orgRepo.FindMembershipByUserID(userID)
	if err == nil {
		return &ResolvedMembership{
			Organization:   member.Organization,
			Role:           member.Role,
			BranchOfficeID: member.BranchOfficeID,
			BranchOffice:   member.BranchOffice,
			Department:     member.Department,
		}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to find membership: %w", err)
	}

	org, err := s.orgRepo.FindByOwnerUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find organization for owner: %w", err)
	}

	if err := s.SynthesizeOwnerMembership(userID, org.ID); err != nil {
		return nil, err
	}

	return &ResolvedMembership{
		Organization: *org,
		Role:         models.RoleOrgAdmin,
	}, nil
}

// SynthesizeOwnerMembership creates the org_admin membership row for an
// organization owner. The upsert makes repeated reconciliation a no-op, so the
// repair can be retried freely.
func (s *MembershipService) SynthesizeOwnerMembership(userID, organizationID uint64) error {
	member := &models.OrganizationMember{
		OrganizationID: organizationID,
		UserID:         userID,
		Role:           models.RoleOrgAdmin,
		JoinedAt:       time.Now(),
	}
	if err := s.orgRepo.UpsertMember(member); err != nil {
		return fmt.Errorf("failed to synthesize owner membership: %w", err)
	}
	return nil
}
