package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/contractdesk/contract-management-api/internal/models"
	"github.com/contractdesk/contract-management-api/internal/repository"
)

func uint64Ptr(v uint64) *uint64 {
	return &v
}

func strPtr(s string) *string {
	return &s
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Organization{},
		&models.BranchOffice{},
		&models.OrganizationMember{},
		&models.BranchInvite{},
		&models.Agreement{},
		&models.Template{},
		&models.Vendor{},
		&models.Project{},
	)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return db
}

type membershipTestEnv struct {
	db      *gorm.DB
	orgRepo repository.OrganizationRepository
	service *MembershipService
}

func setupMembershipTestEnv(t *testing.T) membershipTestEnv {
	t.Helper()

	db := openTestDB(t)
	orgRepo := repository.NewOrganizationRepository(db)

	return membershipTestEnv{
		db:      db,
		orgRepo: orgRepo,
		service: NewMembershipService(orgRepo),
	}
}

func TestMembershipService_ResolveMembership_Existing(t *testing.T) {
	env := setupMembershipTestEnv(t)

	user := models.User{Email: "admin@acme.test", PasswordHash: "x"}
	require.NoError(t, env.db.Create(&user).Error)
	org := models.Organization{OwnerUserID: user.ID, Name: "Acme"}
	require.NoError(t, env.db.Create(&org).Error)
	branch := models.BranchOffice{OrganizationID: org.ID, Code: "NYC-01"}
	require.NoError(t, env.db.Create(&branch).Error)
	member := models.OrganizationMember{
		OrganizationID: org.ID,
		UserID:         user.ID,
		Role:           models.RoleBranchAdmin,
		BranchOfficeID: &branch.ID,
		Department:     strPtr("Legal"),
	}
	require.NoError(t, env.db.Create(&member).Error)

	resolved, err := env.service.ResolveMembership(user.ID)
	require.NoError(t, err)
	require.NotNil(t, resolved)
	require.Equal(t, org.ID, resolved.Organization.ID)
	require.Equal(t, models.RoleBranchAdmin, resolved.Role)
	require.Equal(t, branch.ID, *resolved.BranchOfficeID)
	require.Equal(t, "Legal", *resolved.Department)

	principal := resolved.Principal(user.ID)
	require.Equal(t, user.ID, principal.UserID)
	require.Equal(t, org.ID, principal.OrganizationID)
	require.True(t, principal.IsBranchAdmin())
}

func TestMembershipService_ResolveMembership_SelfHeal(t *testing.T) {
	env := setupMembershipTestEnv(t)

	// An owned organization without a membership row: the partial state left
	// behind when membership creation failed after organization creation.
	user := models.User{Email: "owner@acme.test", PasswordHash: "x"}
	require.NoError(t, env.db.Create(&user).Error)
	org := models.Organization{OwnerUserID: user.ID, Name: "Acme"}
	require.NoError(t, env.db.Create(&org).Error)

	resolved, err := env.service.ResolveMembership(user.ID)
	require.NoError(t, err)
	require.NotNil(t, resolved)
	require.Equal(t, models.RoleOrgAdmin, resolved.Role)
	require.Nil(t, resolved.BranchOfficeID)

	var count int64
	require.NoError(t, env.db.Model(&models.OrganizationMember{}).
		Where("user_id = ? AND organization_id = ?", user.ID, org.ID).
		Count(&count).Error)
	require.Equal(t, int64(1), count)

	// Resolving again must not create a second row.
	resolved, err = env.service.ResolveMembership(user.ID)
	require.NoError(t, err)
	require.NotNil(t, resolved)
	require.Equal(t, models.RoleOrgAdmin, resolved.Role)

	require.NoError(t, env.db.Model(&models.OrganizationMember{}).
		Where("user_id = ? AND organization_id = ?", user.ID, org.ID).
		Count(&count).Error)
	require.Equal(t, int64(1), count)
}

func TestMembershipService_ResolveMembership_Onboarding(t *testing.T) {
	env := setupMembershipTestEnv(t)

	user := models.User{Email: "nobody@acme.test", PasswordHash: "x"}
	require.NoError(t, env.db.Create(&user).Error)

	// No membership, no owned organization: the onboarding signal.
	resolved, err := env.service.ResolveMembership(user.ID)
	require.NoError(t, err)
	require.Nil(t, resolved)
}
