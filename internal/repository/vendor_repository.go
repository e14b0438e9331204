package repository

import (
	"gorm.io/gorm"

	"github.com/contractdesk/contract-management-api/internal/models"
	"github.com/contractdesk/contract-management-api/internal/scope"
)

// GormVendorRepository is a GORM implementation of VendorRepository
type GormVendorRepository struct {
	db *gorm.DB
}

// NewVendorRepository creates a new VendorRepository
func NewVendorRepository(db *gorm.DB) VendorRepository {
	return &GormVendorRepository{db: db}
}

func (r *GormVendorRepository) Create(vendor *models.Vendor) error {
	return r.db.Create(vendor).Error
}

func (r *GormVendorRepository) FindByID(id uint64) (*models.Vendor, error) {
	var vendor models.Vendor
	if err := r.db.First(&vendor, id).Error; err != nil {
		return nil, err
	}
	return &vendor, nil
}

// Update saves the vendor, re-serializing the document list.
func (r *GormVendorRepository) Update(vendor *models.Vendor) error {
	return r.db.Save(vendor).Error
}

func (r *GormVendorRepository) List(p scope.Params) ([]models.Vendor, error) {
	var vendors []models.Vendor
	if err := r.db.Scopes(scope.Branch(p)).
		Order("created_at DESC").
		Find(&vendors).Error; err != nil {
		return nil, err
	}
	return vendors, nil
}
