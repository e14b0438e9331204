package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/contractdesk/contract-management-api/internal/models"
	"github.com/contractdesk/contract-management-api/internal/repository"
	"github.com/contractdesk/contract-management-api/internal/scope"
)

type templateTestEnv struct {
	db      *gorm.DB
	service *TemplateService

	org         models.Organization
	branch      models.BranchOffice
	admin       models.Principal
	branchAdmin models.Principal
}

func setupTemplateTestEnv(t *testing.T) templateTestEnv {
	t.Helper()

	db := openTestDB(t)

	owner := models.User{Email: "owner@acme.test", PasswordHash: "x"}
	require.NoError(t, db.Create(&owner).Error)
	org := models.Organization{OwnerUserID: owner.ID, Name: "Acme"}
	require.NoError(t, db.Create(&org).Error)
	branch := models.BranchOffice{OrganizationID: org.ID, Code: "NYC-01"}
	require.NoError(t, db.Create(&branch).Error)

	service := NewTemplateService(
		repository.NewTemplateRepository(db),
		repository.NewOrganizationRepository(db),
	)

	return templateTestEnv{
		db:      db,
		service: service,
		org:     org,
		branch:  branch,
		admin: models.Principal{
			UserID:         owner.ID,
			OrganizationID: org.ID,
			Role:           models.RoleOrgAdmin,
		},
		branchAdmin: models.Principal{
			UserID:         50,
			OrganizationID: org.ID,
			Role:           models.RoleBranchAdmin,
			BranchOfficeID: &branch.ID,
		},
	}
}

func TestTemplateService_CreateTemplate_VisibilityOverride(t *testing.T) {
	env := setupTemplateTestEnv(t)

	// A branch admin asking for organization-wide visibility gets a
	// branch-visible template in their own branch instead.
	template, err := env.service.CreateTemplate(env.branchAdmin, CreateTemplateInput{
		Name:       "NDA Standard",
		Visibility: models.VisibilityOrganization,
	})
	require.NoError(t, err)
	require.Equal(t, models.VisibilityBranch, template.Visibility)
	require.Equal(t, env.branch.ID, *template.BranchOfficeID)
}

func TestTemplateService_CreateTemplate_OrgAdmin(t *testing.T) {
	env := setupTemplateTestEnv(t)

	t.Run("organization visibility carries no branch", func(t *testing.T) {
		template, err := env.service.CreateTemplate(env.admin, CreateTemplateInput{
			Name:           "MSA Standard",
			Visibility:     models.VisibilityOrganization,
			BranchOfficeID: &env.branch.ID,
		})
		require.NoError(t, err)
		require.Equal(t, models.VisibilityOrganization, template.Visibility)
		require.Nil(t, template.BranchOfficeID)
	})

	t.Run("branch visibility needs a branch", func(t *testing.T) {
		_, err := env.service.CreateTemplate(env.admin, CreateTemplateInput{
			Name:       "SOW Standard",
			Visibility: models.VisibilityBranch,
		})
		require.ErrorIs(t, err, scope.ErrBranchRequired)

		template, err := env.service.CreateTemplate(env.admin, CreateTemplateInput{
			Name:           "SOW Standard",
			Visibility:     models.VisibilityBranch,
			BranchOfficeID: &env.branch.ID,
		})
		require.NoError(t, err)
		require.Equal(t, env.branch.ID, *template.BranchOfficeID)
	})
}

func TestTemplateService_Visibility(t *testing.T) {
	env := setupTemplateTestEnv(t)

	otherBranch := models.BranchOffice{OrganizationID: env.org.ID, Code: "SFO-01"}
	require.NoError(t, env.db.Create(&otherBranch).Error)

	orgWide, err := env.service.CreateTemplate(env.admin, CreateTemplateInput{
		Name:       "MSA Standard",
		Visibility: models.VisibilityOrganization,
	})
	require.NoError(t, err)

	foreign, err := env.service.CreateTemplate(env.admin, CreateTemplateInput{
		Name:           "SFO Local",
		Visibility:     models.VisibilityBranch,
		BranchOfficeID: &otherBranch.ID,
	})
	require.NoError(t, err)

	// The branch admin sees org-wide templates but not another branch's.
	got, err := env.service.GetTemplate(env.branchAdmin, orgWide.ID)
	require.NoError(t, err)
	require.Equal(t, orgWide.ID, got.ID)

	_, err = env.service.GetTemplate(env.branchAdmin, foreign.ID)
	require.ErrorIs(t, err, ErrTemplateNotFound)

	templates, err := env.service.ListTemplates(env.branchAdmin, scope.ScopeDefault, nil)
	require.NoError(t, err)
	require.Len(t, templates, 1)
	require.Equal(t, orgWide.ID, templates[0].ID)
}

func TestTemplateService_UpdateTemplate(t *testing.T) {
	env := setupTemplateTestEnv(t)

	template, err := env.service.CreateTemplate(env.branchAdmin, CreateTemplateInput{
		Name: "NDA Standard",
	})
	require.NoError(t, err)

	updated, err := env.service.UpdateTemplate(env.branchAdmin, template.ID, UpdateTemplateInput{
		Name:    strPtr("NDA v2"),
		Content: strPtr("Full text"),
	})
	require.NoError(t, err)
	require.Equal(t, "NDA v2", updated.Name)
	require.Equal(t, "Full text", updated.Content)
	// Visibility and branch do not move on update.
	require.Equal(t, models.VisibilityBranch, updated.Visibility)
	require.Equal(t, env.branch.ID, *updated.BranchOfficeID)
}
