package repository

import (
	"time"

	"github.com/contractdesk/contract-management-api/internal/models"
	"github.com/contractdesk/contract-management-api/internal/scope"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// CreateWithOrganization creates a user, their organization, and the
	// org_admin membership within a single transaction.
	CreateWithOrganization(user *models.User, org *models.Organization, member *models.OrganizationMember) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)
}

// OrganizationRepository defines the interface for organization, branch office
// and membership data access
type OrganizationRepository interface {
	// FindByID finds an organization by ID
	FindByID(id uint64) (*models.Organization, error)

	// FindByOwnerUserID finds the organization owned by a user
	FindByOwnerUserID(userID uint64) (*models.Organization, error)

	// Update updates an organization
	Update(org *models.Organization) error

	// CreateBranch creates a branch office
	CreateBranch(branch *models.BranchOffice) error

	// FindBranch finds a branch office by ID
	FindBranch(id uint64) (*models.BranchOffice, error)

	// UpdateBranch updates a branch office
	UpdateBranch(branch *models.BranchOffice) error

	// ListBranches lists branch offices of an organization
	ListBranches(organizationID uint64) ([]models.BranchOffice, error)

	// UpsertMember inserts a membership row; an existing row for the same
	// (user, organization) pair is left untouched.
	UpsertMember(member *models.OrganizationMember) error

	// FindMember finds a specific organization member
	FindMember(organizationID, userID uint64) (*models.OrganizationMember, error)

	// FindMembershipByUserID finds a user's membership joined with its
	// organization and branch office.
	FindMembershipByUserID(userID uint64) (*models.OrganizationMember, error)

	// ListMembers lists members visible under the given scope
	ListMembers(p scope.Params) ([]models.OrganizationMember, error)
}

// InviteRepository defines the interface for branch invite data access
type InviteRepository interface {
	// Create inserts a pending invite
	Create(invite *models.BranchInvite) error

	// FindByID finds an invite by ID
	FindByID(id uint64) (*models.BranchInvite, error)

	// FindByToken finds an invite by its bearer token, joined with the branch
	// and organization for the acceptance screen.
	FindByToken(token string) (*models.BranchInvite, error)

	// List lists invites visible under the given scope, newest first
	List(p scope.Params) ([]models.BranchInvite, error)

	// MarkAccepted flips a pending invite to accepted, recording the new user
	// and timestamp. Returns the number of rows updated; zero means the invite
	// was not pending anymore.
	MarkAccepted(id uint64, userID uint64, acceptedAt time.Time) (int64, error)

	// Revoke flips a pending invite to revoked. Returns the number of rows
	// updated; zero means the invite was not pending anymore.
	Revoke(id uint64) (int64, error)
}

// AgreementFilter holds filtering options for listing agreements
type AgreementFilter struct {
	Status    *models.AgreementStatus
	ProjectID *uint64
	Page      int
	PageSize  int
}

// AgreementRepository defines the interface for agreement data access
type AgreementRepository interface {
	// Upsert writes an agreement keyed by its client-supplied id, inserting or
	// replacing the full row including embedded collections.
	Upsert(agreement *models.Agreement) error

	// FindByID finds an agreement by ID
	FindByID(id string) (*models.Agreement, error)

	// List retrieves agreements under the given scope, newest first
	List(p scope.Params, filter AgreementFilter) ([]models.Agreement, int64, error)

	// Delete soft deletes an agreement
	Delete(id string) error
}

// TemplateRepository defines the interface for template data access
type TemplateRepository interface {
	Create(template *models.Template) error
	FindByID(id uint64) (*models.Template, error)
	Update(template *models.Template) error
	List(p scope.Params) ([]models.Template, error)
}

// VendorRepository defines the interface for vendor data access
type VendorRepository interface {
	Create(vendor *models.Vendor) error
	FindByID(id uint64) (*models.Vendor, error)
	Update(vendor *models.Vendor) error
	List(p scope.Params) ([]models.Vendor, error)
}

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	Create(project *models.Project) error
	FindByID(id uint64) (*models.Project, error)
	Update(project *models.Project) error
	List(p scope.Params) ([]models.Project, error)
}
