package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/contractdesk/contract-management-api/internal/models"
	"github.com/contractdesk/contract-management-api/internal/repository"
	"github.com/contractdesk/contract-management-api/internal/scope"
)

// resolveWriteBranch decides the branch stored on a newly created scoped
// resource and validates an org admin's explicit branch choice against their
// organization. Branch roles never get to pick: their own branch is forced.
func resolveWriteBranch(orgRepo repository.OrganizationRepository, principal models.Principal, requested *uint64) (*uint64, error) {
	branchID, err := scope.ResolveWriteBranch(principal, requested)
	if err != nil {
		return nil, err
	}

	if branchID != nil && principal.IsOrgAdmin() {
		branch, err := orgRepo.FindBranch(*branchID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrBranchNotFound
			}
			return nil, fmt.Errorf("failed to find branch office: %w", err)
		}
		if branch.OrganizationID != principal.OrganizationID {
			return nil, ErrBranchWrongOrg
		}
	}

	return branchID, nil
}
