package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/contractdesk/contract-management-api/internal/models"
	"github.com/contractdesk/contract-management-api/internal/repository"
	"github.com/contractdesk/contract-management-api/internal/scope"
)

type agreementTestEnv struct {
	db      *gorm.DB
	service *AgreementService

	org    models.Organization
	branch models.BranchOffice
	admin  models.Principal
	member models.Principal
}

func setupAgreementTestEnv(t *testing.T) agreementTestEnv {
	t.Helper()

	db := openTestDB(t)

	owner := models.User{Email: "owner@acme.test", PasswordHash: "x"}
	require.NoError(t, db.Create(&owner).Error)
	org := models.Organization{OwnerUserID: owner.ID, Name: "Acme"}
	require.NoError(t, db.Create(&org).Error)
	branch := models.BranchOffice{OrganizationID: org.ID, Code: "NYC-01"}
	require.NoError(t, db.Create(&branch).Error)

	service := NewAgreementService(
		repository.NewAgreementRepository(db),
		repository.NewProjectRepository(db),
		repository.NewOrganizationRepository(db),
		nil,
	)

	return agreementTestEnv{
		db:      db,
		service: service,
		org:     org,
		branch:  branch,
		admin: models.Principal{
			UserID:         owner.ID,
			OrganizationID: org.ID,
			Role:           models.RoleOrgAdmin,
		},
		member: models.Principal{
			UserID:         77,
			OrganizationID: org.ID,
			Role:           models.RoleBranchUser,
			BranchOfficeID: &branch.ID,
		},
	}
}

func TestAgreementService_UpsertAgreement_RoundTrip(t *testing.T) {
	env := setupAgreementTestEnv(t)

	id := uuid.NewString()
	saved, err := env.service.UpsertAgreement(env.member, UpsertAgreementInput{
		ID:           id,
		Title:        "Catering Services 2026",
		Counterparty: "Globex",
		Sections: []models.Section{
			{Title: "Scope of Work", Content: "Catering for all events."},
		},
		Tags: []string{"catering", "services"},
	})
	require.NoError(t, err)
	require.Equal(t, id, saved.ID)
	require.Equal(t, models.AgreementStatusDraft, saved.Status)
	require.Equal(t, 1, saved.Version)
	// Branch members' agreements land on their own branch.
	require.Equal(t, env.branch.ID, *saved.BranchOfficeID)
	require.Equal(t, env.member.UserID, saved.CreatedBy)

	// Saving the same id again replaces the row in place.
	saved, err = env.service.UpsertAgreement(env.member, UpsertAgreementInput{
		ID:      id,
		Title:   "Catering Services 2026 (rev)",
		Status:  models.AgreementStatusReview,
		Version: 2,
		Sections: []models.Section{
			{Title: "Scope of Work", Content: "Catering for all events."},
			{Title: "Payment Terms", Content: "Net 30."},
		},
	})
	require.NoError(t, err)
	require.Equal(t, 2, saved.Version)

	got, err := env.service.GetAgreement(env.member, id)
	require.NoError(t, err)
	require.Equal(t, "Catering Services 2026 (rev)", got.Title)
	require.Equal(t, models.AgreementStatusReview, got.Status)
	require.Len(t, got.Sections, 2)

	var count int64
	require.NoError(t, env.db.Model(&models.Agreement{}).Count(&count).Error)
	require.Equal(t, int64(1), count)
}

func TestAgreementService_UpsertAgreement_Validation(t *testing.T) {
	env := setupAgreementTestEnv(t)

	t.Run("title required", func(t *testing.T) {
		_, err := env.service.UpsertAgreement(env.member, UpsertAgreementInput{Title: "  "})
		require.ErrorIs(t, err, ErrAgreementTitleRequired)
	})

	t.Run("id must be a uuid", func(t *testing.T) {
		_, err := env.service.UpsertAgreement(env.member, UpsertAgreementInput{
			ID:    "not-a-uuid",
			Title: "x",
		})
		require.ErrorIs(t, err, ErrAgreementIDInvalid)
	})

	t.Run("unknown status", func(t *testing.T) {
		_, err := env.service.UpsertAgreement(env.member, UpsertAgreementInput{
			Title:  "x",
			Status: "signed-ish",
		})
		require.ErrorIs(t, err, ErrAgreementStatusInvalid)
	})

	t.Run("empty id gets one assigned", func(t *testing.T) {
		saved, err := env.service.UpsertAgreement(env.member, UpsertAgreementInput{Title: "x"})
		require.NoError(t, err)
		_, err = uuid.Parse(saved.ID)
		require.NoError(t, err)
	})

	t.Run("project of another organization is rejected", func(t *testing.T) {
		otherOwner := models.User{Email: "other@acme.test", PasswordHash: "x"}
		require.NoError(t, env.db.Create(&otherOwner).Error)
		otherOrg := models.Organization{OwnerUserID: otherOwner.ID, Name: "Other"}
		require.NoError(t, env.db.Create(&otherOrg).Error)
		foreignProject := models.Project{OrganizationID: otherOrg.ID, Name: "Foreign", Status: models.ProjectStatusActive}
		require.NoError(t, env.db.Create(&foreignProject).Error)

		_, err := env.service.UpsertAgreement(env.member, UpsertAgreementInput{
			Title:     "x",
			ProjectID: &foreignProject.ID,
		})
		require.ErrorIs(t, err, ErrProjectWrongOrg)
	})
}

func TestAgreementService_UpsertAgreement_BranchPinned(t *testing.T) {
	env := setupAgreementTestEnv(t)

	saved, err := env.service.UpsertAgreement(env.member, UpsertAgreementInput{
		Title: "Catering Services 2026",
	})
	require.NoError(t, err)
	require.Equal(t, env.branch.ID, *saved.BranchOfficeID)

	// A branch member re-saving cannot move the agreement to another branch.
	otherBranch := models.BranchOffice{OrganizationID: env.org.ID, Code: "SFO-01"}
	require.NoError(t, env.db.Create(&otherBranch).Error)

	saved, err = env.service.UpsertAgreement(env.member, UpsertAgreementInput{
		ID:             saved.ID,
		Title:          "Catering Services 2026",
		BranchOfficeID: &otherBranch.ID,
	})
	require.NoError(t, err)
	require.Equal(t, env.branch.ID, *saved.BranchOfficeID)

	// An org admin can.
	saved, err = env.service.UpsertAgreement(env.admin, UpsertAgreementInput{
		ID:             saved.ID,
		Title:          "Catering Services 2026",
		BranchOfficeID: &otherBranch.ID,
	})
	require.NoError(t, err)
	require.Equal(t, otherBranch.ID, *saved.BranchOfficeID)
}

func TestAgreementService_Visibility(t *testing.T) {
	env := setupAgreementTestEnv(t)

	otherBranch := models.BranchOffice{OrganizationID: env.org.ID, Code: "SFO-01"}
	require.NoError(t, env.db.Create(&otherBranch).Error)

	foreign, err := env.service.UpsertAgreement(env.admin, UpsertAgreementInput{
		Title:          "SFO Lease",
		BranchOfficeID: &otherBranch.ID,
	})
	require.NoError(t, err)
	orgWide, err := env.service.UpsertAgreement(env.admin, UpsertAgreementInput{
		Title: "Master Services",
	})
	require.NoError(t, err)

	_, err = env.service.GetAgreement(env.member, foreign.ID)
	require.ErrorIs(t, err, ErrAgreementNotFound)

	got, err := env.service.GetAgreement(env.member, orgWide.ID)
	require.NoError(t, err)
	require.Equal(t, orgWide.ID, got.ID)

	agreements, total, err := env.service.ListAgreements(env.member, ListAgreementsInput{
		Scope: scope.ScopeDefault,
	})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Len(t, agreements, 1)
	require.Equal(t, orgWide.ID, agreements[0].ID)

	// Deleting a row you cannot see is a not-found, and changes nothing.
	err = env.service.DeleteAgreement(env.member, foreign.ID)
	require.ErrorIs(t, err, ErrAgreementNotFound)
}

func TestAgreementService_ListAgreements_StatusFilter(t *testing.T) {
	env := setupAgreementTestEnv(t)

	_, err := env.service.UpsertAgreement(env.admin, UpsertAgreementInput{
		Title: "Draft One",
	})
	require.NoError(t, err)
	_, err = env.service.UpsertAgreement(env.admin, UpsertAgreementInput{
		Title:  "Active One",
		Status: models.AgreementStatusActive,
	})
	require.NoError(t, err)

	active := models.AgreementStatusActive
	agreements, total, err := env.service.ListAgreements(env.admin, ListAgreementsInput{
		Status: &active,
	})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Len(t, agreements, 1)
	require.Equal(t, "Active One", agreements[0].Title)
}

func TestAgreementService_AddComment(t *testing.T) {
	env := setupAgreementTestEnv(t)

	saved, err := env.service.UpsertAgreement(env.member, UpsertAgreementInput{
		Title: "Catering Services 2026",
	})
	require.NoError(t, err)

	updated, err := env.service.AddComment(env.member, saved.ID, "maria@example.test", "Payment terms look off.")
	require.NoError(t, err)
	require.Len(t, updated.Comments, 1)
	require.Equal(t, "maria@example.test", updated.Comments[0].Author)
	require.Len(t, updated.AuditLog, 1)
	require.Equal(t, "comment_added", updated.AuditLog[0].Action)

	got, err := env.service.GetAgreement(env.member, saved.ID)
	require.NoError(t, err)
	require.Len(t, got.Comments, 1)
}

func TestAgreementService_AIUnconfigured(t *testing.T) {
	env := setupAgreementTestEnv(t)

	_, err := env.service.GenerateClause(context.Background(), "Termination", "")
	require.ErrorIs(t, err, ErrAIServiceNotConfigured)

	_, err = env.service.AnalyzeRisk(context.Background(), "some text")
	require.ErrorIs(t, err, ErrAIServiceNotConfigured)
}
