package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/contractdesk/contract-management-api/internal/models"
	"github.com/contractdesk/contract-management-api/internal/repository"
)

type memoryUploader struct {
	files map[string][]byte
}

func (u *memoryUploader) Upload(path string, data []byte) (string, error) {
	if u.files == nil {
		u.files = map[string][]byte{}
	}
	u.files[path] = data
	return "https://cdn.acme.test/uploads/" + path, nil
}

type vendorTestEnv struct {
	db       *gorm.DB
	uploader *memoryUploader
	service  *VendorService

	org    models.Organization
	branch models.BranchOffice
	admin  models.Principal
	member models.Principal
}

func setupVendorTestEnv(t *testing.T) vendorTestEnv {
	t.Helper()

	db := openTestDB(t)

	owner := models.User{Email: "owner@acme.test", PasswordHash: "x"}
	require.NoError(t, db.Create(&owner).Error)
	org := models.Organization{OwnerUserID: owner.ID, Name: "Acme"}
	require.NoError(t, db.Create(&org).Error)
	branch := models.BranchOffice{OrganizationID: org.ID, Code: "NYC-01"}
	require.NoError(t, db.Create(&branch).Error)

	uploader := &memoryUploader{}
	service := NewVendorService(
		repository.NewVendorRepository(db),
		repository.NewOrganizationRepository(db),
		uploader,
	)

	return vendorTestEnv{
		db:       db,
		uploader: uploader,
		service:  service,
		org:      org,
		branch:   branch,
		admin: models.Principal{
			UserID:         owner.ID,
			OrganizationID: org.ID,
			Role:           models.RoleOrgAdmin,
		},
		member: models.Principal{
			UserID:         99,
			OrganizationID: org.ID,
			Role:           models.RoleBranchUser,
			BranchOfficeID: &branch.ID,
		},
	}
}

func TestVendorService_CreateVendor_BranchForced(t *testing.T) {
	env := setupVendorTestEnv(t)

	otherBranch := models.BranchOffice{OrganizationID: env.org.ID, Code: "SFO-01"}
	require.NoError(t, env.db.Create(&otherBranch).Error)

	// A branch member's requested branch is ignored; the vendor lands on
	// their own branch.
	vendor, err := env.service.CreateVendor(env.member, CreateVendorInput{
		Name:           "Globex Catering",
		BranchOfficeID: &otherBranch.ID,
	})
	require.NoError(t, err)
	require.Equal(t, env.branch.ID, *vendor.BranchOfficeID)

	// An org admin may place the vendor org-wide.
	vendor, err = env.service.CreateVendor(env.admin, CreateVendorInput{
		Name: "Initech Consulting",
	})
	require.NoError(t, err)
	require.Nil(t, vendor.BranchOfficeID)
}

func TestVendorService_CreateVendor_BranchValidated(t *testing.T) {
	env := setupVendorTestEnv(t)

	_, err := env.service.CreateVendor(env.admin, CreateVendorInput{
		Name:           "Globex Catering",
		BranchOfficeID: uint64Ptr(9999),
	})
	require.ErrorIs(t, err, ErrBranchNotFound)

	otherOwner := models.User{Email: "other@acme.test", PasswordHash: "x"}
	require.NoError(t, env.db.Create(&otherOwner).Error)
	otherOrg := models.Organization{OwnerUserID: otherOwner.ID, Name: "Other"}
	require.NoError(t, env.db.Create(&otherOrg).Error)
	foreignBranch := models.BranchOffice{OrganizationID: otherOrg.ID, Code: "LON-01"}
	require.NoError(t, env.db.Create(&foreignBranch).Error)

	_, err = env.service.CreateVendor(env.admin, CreateVendorInput{
		Name:           "Globex Catering",
		BranchOfficeID: &foreignBranch.ID,
	})
	require.ErrorIs(t, err, ErrBranchWrongOrg)
}

func TestVendorService_AttachDocuments_Cap(t *testing.T) {
	env := setupVendorTestEnv(t)

	vendor, err := env.service.CreateVendor(env.member, CreateVendorInput{
		Name: "Globex Catering",
	})
	require.NoError(t, err)

	_, err = env.service.AttachDocuments(env.member, vendor.ID, []DocumentUpload{
		{Name: "contract.pdf", Data: []byte("pdf")},
		{Name: "insurance.pdf", Data: []byte("pdf")},
	})
	require.NoError(t, err)

	// Two documents stored, two more would exceed the cap of three: the whole
	// batch is rejected and nothing is uploaded.
	uploadsBefore := len(env.uploader.files)
	_, err = env.service.AttachDocuments(env.member, vendor.ID, []DocumentUpload{
		{Name: "w9.pdf", Data: []byte("pdf")},
		{Name: "nda.pdf", Data: []byte("pdf")},
	})
	require.ErrorIs(t, err, ErrVendorDocumentsLimit)
	require.Len(t, env.uploader.files, uploadsBefore)

	current, err := env.service.GetVendor(env.member, vendor.ID)
	require.NoError(t, err)
	require.Len(t, current.Documents, 2)

	// A single document still fits.
	current, err = env.service.AttachDocuments(env.member, vendor.ID, []DocumentUpload{
		{Name: "w9.pdf", Data: []byte("pdf")},
	})
	require.NoError(t, err)
	require.Len(t, current.Documents, 3)

	_, err = env.service.AttachDocuments(env.member, vendor.ID, []DocumentUpload{
		{Name: "extra.pdf", Data: []byte("pdf")},
	})
	require.ErrorIs(t, err, ErrVendorDocumentsLimit)
}

func TestVendorService_AttachDocuments_EmptyBatch(t *testing.T) {
	env := setupVendorTestEnv(t)

	vendor, err := env.service.CreateVendor(env.member, CreateVendorInput{Name: "Globex"})
	require.NoError(t, err)

	_, err = env.service.AttachDocuments(env.member, vendor.ID, nil)
	require.ErrorIs(t, err, ErrNoDocumentsProvided)
}

func TestVendorService_Visibility(t *testing.T) {
	env := setupVendorTestEnv(t)

	otherBranch := models.BranchOffice{OrganizationID: env.org.ID, Code: "SFO-01"}
	require.NoError(t, env.db.Create(&otherBranch).Error)

	vendor, err := env.service.CreateVendor(env.admin, CreateVendorInput{
		Name:           "Globex Catering",
		BranchOfficeID: &otherBranch.ID,
	})
	require.NoError(t, err)

	// A member of another branch cannot see or modify the vendor.
	_, err = env.service.GetVendor(env.member, vendor.ID)
	require.ErrorIs(t, err, ErrVendorNotFound)

	vendors, err := env.service.ListVendors(env.member, "", nil)
	require.NoError(t, err)
	require.Empty(t, vendors)

	// The org admin sees it.
	got, err := env.service.GetVendor(env.admin, vendor.ID)
	require.NoError(t, err)
	require.Equal(t, vendor.ID, got.ID)
}
