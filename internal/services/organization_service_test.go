package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/contractdesk/contract-management-api/internal/models"
	"github.com/contractdesk/contract-management-api/internal/repository"
)

type organizationTestEnv struct {
	db      *gorm.DB
	service *OrganizationService

	org   models.Organization
	admin models.Principal
}

func setupOrganizationTestEnv(t *testing.T) organizationTestEnv {
	t.Helper()

	db := openTestDB(t)

	owner := models.User{Email: "owner@acme.test", PasswordHash: "x"}
	require.NoError(t, db.Create(&owner).Error)
	org := models.Organization{OwnerUserID: owner.ID, Name: "Acme", BillingPlan: models.PlanStarter}
	require.NoError(t, db.Create(&org).Error)

	service := NewOrganizationService(repository.NewOrganizationRepository(db))

	return organizationTestEnv{
		db:      db,
		service: service,
		org:     org,
		admin: models.Principal{
			UserID:         owner.ID,
			OrganizationID: org.ID,
			Role:           models.RoleOrgAdmin,
		},
	}
}

func TestOrganizationService_UpdateOrganization(t *testing.T) {
	env := setupOrganizationTestEnv(t)

	plan := models.PlanEnterprise
	org, err := env.service.UpdateOrganization(env.admin, UpdateOrganizationInput{
		Name:        strPtr("Acme Holdings"),
		BillingPlan: &plan,
	})
	require.NoError(t, err)
	require.Equal(t, "Acme Holdings", org.Name)
	require.Equal(t, models.PlanEnterprise, org.BillingPlan)

	badPlan := models.BillingPlan("platinum")
	_, err = env.service.UpdateOrganization(env.admin, UpdateOrganizationInput{
		BillingPlan: &badPlan,
	})
	require.ErrorIs(t, err, ErrInvalidBillingPlan)

	_, err = env.service.UpdateOrganization(env.admin, UpdateOrganizationInput{
		Name: strPtr("  "),
	})
	require.ErrorIs(t, err, ErrInvalidOrganizationName)
}

func TestOrganizationService_CreateBranch(t *testing.T) {
	env := setupOrganizationTestEnv(t)

	branch, err := env.service.CreateBranch(env.admin, CreateBranchInput{
		Code:      "NYC-01",
		Location:  "New York",
		Headcount: 25,
	})
	require.NoError(t, err)
	require.Equal(t, "NYC-01", branch.Code)

	// Codes are unique per organization, case-insensitively.
	_, err = env.service.CreateBranch(env.admin, CreateBranchInput{Code: "nyc-01"})
	require.ErrorIs(t, err, ErrBranchCodeTaken)

	_, err = env.service.CreateBranch(env.admin, CreateBranchInput{Code: "  "})
	require.ErrorIs(t, err, ErrBranchCodeRequired)

	// The same code is free in another organization.
	otherOwner := models.User{Email: "other@acme.test", PasswordHash: "x"}
	require.NoError(t, env.db.Create(&otherOwner).Error)
	otherOrg := models.Organization{OwnerUserID: otherOwner.ID, Name: "Other"}
	require.NoError(t, env.db.Create(&otherOrg).Error)
	otherAdmin := models.Principal{UserID: otherOwner.ID, OrganizationID: otherOrg.ID, Role: models.RoleOrgAdmin}

	_, err = env.service.CreateBranch(otherAdmin, CreateBranchInput{Code: "NYC-01"})
	require.NoError(t, err)
}

func TestOrganizationService_UpdateBranch(t *testing.T) {
	env := setupOrganizationTestEnv(t)

	branch, err := env.service.CreateBranch(env.admin, CreateBranchInput{Code: "NYC-01"})
	require.NoError(t, err)

	headcount := 40
	updated, err := env.service.UpdateBranch(env.admin, branch.ID, UpdateBranchInput{
		Location:  strPtr("Brooklyn"),
		Headcount: &headcount,
	})
	require.NoError(t, err)
	require.Equal(t, "Brooklyn", updated.Location)
	require.Equal(t, 40, updated.Headcount)

	// A branch of another organization is invisible.
	otherOwner := models.User{Email: "other@acme.test", PasswordHash: "x"}
	require.NoError(t, env.db.Create(&otherOwner).Error)
	otherOrg := models.Organization{OwnerUserID: otherOwner.ID, Name: "Other"}
	require.NoError(t, env.db.Create(&otherOrg).Error)
	otherAdmin := models.Principal{UserID: otherOwner.ID, OrganizationID: otherOrg.ID, Role: models.RoleOrgAdmin}

	_, err = env.service.UpdateBranch(otherAdmin, branch.ID, UpdateBranchInput{})
	require.ErrorIs(t, err, ErrBranchNotFound)
}

func TestOrganizationService_ListMembers_Scoped(t *testing.T) {
	env := setupOrganizationTestEnv(t)

	branchA, err := env.service.CreateBranch(env.admin, CreateBranchInput{Code: "NYC-01"})
	require.NoError(t, err)
	branchB, err := env.service.CreateBranch(env.admin, CreateBranchInput{Code: "SFO-01"})
	require.NoError(t, err)

	users := make([]models.User, 3)
	for i, email := range []string{"admin@acme.test", "a@acme.test", "b@acme.test"} {
		users[i] = models.User{Email: email, PasswordHash: "x"}
		require.NoError(t, env.db.Create(&users[i]).Error)
	}

	members := []models.OrganizationMember{
		{OrganizationID: env.org.ID, UserID: users[0].ID, Role: models.RoleOrgAdmin},
		{OrganizationID: env.org.ID, UserID: users[1].ID, Role: models.RoleBranchUser, BranchOfficeID: &branchA.ID},
		{OrganizationID: env.org.ID, UserID: users[2].ID, Role: models.RoleBranchUser, BranchOfficeID: &branchB.ID},
	}
	require.NoError(t, env.db.Create(&members).Error)

	// The org admin sees everyone.
	all, err := env.service.ListMembers(env.admin)
	require.NoError(t, err)
	require.Len(t, all, 3)

	// A branch member sees their branch plus unassigned org admins.
	branchMember := models.Principal{
		UserID:         users[1].ID,
		OrganizationID: env.org.ID,
		Role:           models.RoleBranchUser,
		BranchOfficeID: &branchA.ID,
	}
	visible, err := env.service.ListMembers(branchMember)
	require.NoError(t, err)
	require.Len(t, visible, 2)
	for _, m := range visible {
		if m.BranchOfficeID != nil {
			require.Equal(t, branchA.ID, *m.BranchOfficeID)
		}
	}
}
