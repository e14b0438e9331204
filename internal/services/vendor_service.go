package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/contractdesk/contract-management-api/internal/constants"
	"github.com/contractdesk/contract-management-api/internal/models"
	"github.com/contractdesk/contract-management-api/internal/repository"
	"github.com/contractdesk/contract-management-api/internal/scope"
	"github.com/contractdesk/contract-management-api/internal/storage"
)

var (
	ErrVendorNotFound       = errors.New("vendor not found")
	ErrVendorNameRequired   = errors.New("vendor name is required")
	ErrVendorDocumentsLimit = fmt.Errorf("a vendor can carry at most %d documents", constants.MaxVendorDocuments)
	ErrNoDocumentsProvided  = errors.New("at least one document is required")
)

// VendorService handles vendor registry business logic.
type VendorService struct {
	vendorRepo repository.VendorRepository
	orgRepo    repository.OrganizationRepository
	uploader   storage.Uploader
}

// NewVendorService creates a new VendorService.
func NewVendorService(vendorRepo repository.VendorRepository, orgRepo repository.OrganizationRepository, uploader storage.Uploader) *VendorService {
	return &VendorService{
		vendorRepo: vendorRepo,
		orgRepo:    orgRepo,
		uploader:   uploader,
	}
}

// ListVendors returns vendors visible to the principal, newest first.
func (s *VendorService) ListVendors(principal models.Principal, requested scope.ResourceScope, targetBranchID *uint64) ([]models.Vendor, error) {
	p := scope.ForPrincipal(principal, requested, targetBranchID)
	vendors, err := s.vendorRepo.List(p)
	if err != nil {
		return nil, fmt.Errorf("failed to list vendors: %w", err)
	}
	return vendors, nil
}

// CreateVendorInput represents parameters to create a vendor.
type CreateVendorInput struct {
	Name           string
	Category       string
	ContactEmail   string
	BranchOfficeID *uint64
}

// CreateVendor creates a vendor. Branch members get the vendor pinned to
// their own branch; org admins may pick a branch or leave it org-wide.
func (s *VendorService) CreateVendor(principal models.Principal, input CreateVendorInput) (*models.Vendor, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrVendorNameRequired
	}

	branchID, err := resolveWriteBranch(s.orgRepo, principal, input.BranchOfficeID)
	if err != nil {
		return nil, err
	}

	vendor := &models.Vendor{
		OrganizationID: principal.OrganizationID,
		BranchOfficeID: branchID,
		Name:           strings.TrimSpace(input.Name),
		Category:       strings.TrimSpace(input.Category),
		ContactEmail:   strings.TrimSpace(input.ContactEmail),
		Documents:      models.DocumentList{},
	}

	if err := s.vendorRepo.Create(vendor); err != nil {
		return nil, fmt.Errorf("failed to create vendor: %w", err)
	}
	return vendor, nil
}

// UpdateVendorInput carries the editable vendor fields.
type UpdateVendorInput struct {
	Name         *string
	Category     *string
	ContactEmail *string
}

// UpdateVendor updates a vendor the principal can see.
func (s *VendorService) UpdateVendor(principal models.Principal, id uint64, input UpdateVendorInput) (*models.Vendor, error) {
	vendor, err := s.GetVendor(principal, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrVendorNameRequired
		}
		vendor.Name = name
	}
	if input.Category != nil {
		vendor.Category = strings.TrimSpace(*input.Category)
	}
	if input.ContactEmail != nil {
		vendor.ContactEmail = strings.TrimSpace(*input.ContactEmail)
	}

	if err := s.vendorRepo.Update(vendor); err != nil {
		return nil, fmt.Errorf("failed to update vendor: %w", err)
	}
	return vendor, nil
}

// GetVendor returns one vendor if the principal can see it.
func (s *VendorService) GetVendor(principal models.Principal, id uint64) (*models.Vendor, error) {
	vendor, err := s.vendorRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVendorNotFound
		}
		return nil, fmt.Errorf("failed to find vendor: %w", err)
	}
	if vendor.OrganizationID != principal.OrganizationID {
		return nil, ErrVendorNotFound
	}
	if !principal.IsOrgAdmin() && vendor.BranchOfficeID != nil {
		if principal.BranchOfficeID == nil || *principal.BranchOfficeID != *vendor.BranchOfficeID {
			return nil, ErrVendorNotFound
		}
	}
	return vendor, nil
}

// DocumentUpload is one file to attach to a vendor.
type DocumentUpload struct {
	Name string
	Data []byte
}

// AttachDocuments uploads a batch of documents and appends them to the vendor.
// The cap check runs before any upload: a batch that would push the vendor
// past the document limit is rejected whole, nothing is partially applied.
func (s *VendorService) AttachDocuments(principal models.Principal, vendorID uint64, uploads []DocumentUpload) (*models.Vendor, error) {
	if len(uploads) == 0 {
		return nil, ErrNoDocumentsProvided
	}

	vendor, err := s.GetVendor(principal, vendorID)
	if err != nil {
		return nil, err
	}

	if len(vendor.Documents)+len(uploads) > constants.MaxVendorDocuments {
		return nil, ErrVendorDocumentsLimit
	}

	now := time.Now()
	docs := make([]models.VendorDocument, 0, len(uploads))
	for _, upload := range uploads {
		path := fmt.Sprintf("vendors/%d/%d-%s", vendor.ID, now.UnixNano(), upload.Name)
		url, err := s.uploader.Upload(path, upload.Data)
		if err != nil {
			return nil, fmt.Errorf("failed to upload document %s: %w", upload.Name, err)
		}
		docs = append(docs, models.VendorDocument{
			Name:       upload.Name,
			URL:        url,
			UploadedAt: now,
		})
	}

	vendor.Documents = append(vendor.Documents, docs...)
	if err := s.vendorRepo.Update(vendor); err != nil {
		return nil, fmt.Errorf("failed to save vendor documents: %w", err)
	}
	return vendor, nil
}
