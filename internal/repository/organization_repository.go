package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/contractdesk/contract-management-api/internal/models"
	"github.com/contractdesk/contract-management-api/internal/scope"
)

// GormOrganizationRepository is a GORM implementation of OrganizationRepository
type GormOrganizationRepository struct {
	db *gorm.DB
}

// NewOrganizationRepository creates a new OrganizationRepository
func NewOrganizationRepository(db *gorm.DB) OrganizationRepository {
	return &GormOrganizationRepository{db: db}
}

// FindByID finds an organization by ID
func (r *GormOrganizationRepository) FindByID(id uint64) (*models.Organization, error) {
	var org models.Organization
	if err := r.db.First(&org, id).Error; err != nil {
		return nil, err
	}
	return &org, nil
}

// FindByOwnerUserID finds the organization owned by a user
func (r *GormOrganizationRepository) FindByOwnerUserID(userID uint64) (*models.Organization, error) {
	var org models.Organization
	if err := r.db.Where("owner_user_id = ?", userID).First(&org).Error; err != nil {
		return nil, err
	}
	return &org, nil
}

// Update updates an organization
func (r *GormOrganizationRepository) Update(org *models.Organization) error {
	return r.db.Save(org).Error
}

// CreateBranch creates a branch office
func (r *GormOrganizationRepository) CreateBranch(branch *models.BranchOffice) error {
	return r.db.Create(branch).Error
}

// FindBranch finds a branch office by ID
func (r *GormOrganizationRepository) FindBranch(id uint64) (*models.BranchOffice, error) {
	var branch models.BranchOffice
	if err := r.db.First(&branch, id).Error; err != nil {
		return nil, err
	}
	return &branch, nil
}

// UpdateBranch updates a branch office
func (r *GormOrganizationRepository) UpdateBranch(branch *models.BranchOffice) error {
	return r.db.Save(branch).Error
}

// ListBranches lists branch offices of an organization
func (r *GormOrganizationRepository) ListBranches(organizationID uint64) ([]models.BranchOffice, error) {
	var branches []models.BranchOffice
	if err := r.db.Where("organization_id = ?", organizationID).
		Order("created_at DESC").
		Find(&branches).Error; err != nil {
		return nil, err
	}
	return branches, nil
}

// UpsertMember inserts a membership row. The unique index on
// (user_id, organization_id) makes the write idempotent: a conflicting insert
// is a no-op, so retries after partial invite acceptance are safe.
func (r *GormOrganizationRepository) UpsertMember(member *models.OrganizationMember) error {
	return r.db.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "organization_id"}},
			DoNothing: true,
		}).
		Create(member).Error
}

// FindMember finds a specific organization member
func (r *GormOrganizationRepository) FindMember(organizationID, userID uint64) (*models.OrganizationMember, error) {
	var member models.OrganizationMember
	if err := r.db.Where("organization_id = ? AND user_id = ?", organizationID, userID).
		First(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// FindMembershipByUserID finds a user's membership joined with its organization
// and branch office
func (r *GormOrganizationRepository) FindMembershipByUserID(userID uint64) (*models.OrganizationMember, error) {
	var member models.OrganizationMember
	if err := r.db.Preload("Organization").Preload("BranchOffice").
		Where("user_id = ?", userID).
		First(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// ListMembers lists members visible under the given scope
func (r *GormOrganizationRepository) ListMembers(p scope.Params) ([]models.OrganizationMember, error) {
	var members []models.OrganizationMember
	if err := r.db.Preload("User").Preload("BranchOffice").
		Scopes(scope.Branch(p)).
		Order("joined_at DESC").
		Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}
