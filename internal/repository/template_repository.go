package repository

import (
	"gorm.io/gorm"

	"github.com/contractdesk/contract-management-api/internal/models"
	"github.com/contractdesk/contract-management-api/internal/scope"
)

// GormTemplateRepository is a GORM implementation of TemplateRepository
type GormTemplateRepository struct {
	db *gorm.DB
}

// NewTemplateRepository creates a new TemplateRepository
func NewTemplateRepository(db *gorm.DB) TemplateRepository {
	return &GormTemplateRepository{db: db}
}

func (r *GormTemplateRepository) Create(template *models.Template) error {
	return r.db.Create(template).Error
}

func (r *GormTemplateRepository) FindByID(id uint64) (*models.Template, error) {
	var template models.Template
	if err := r.db.First(&template, id).Error; err != nil {
		return nil, err
	}
	return &template, nil
}

func (r *GormTemplateRepository) Update(template *models.Template) error {
	return r.db.Save(template).Error
}

func (r *GormTemplateRepository) List(p scope.Params) ([]models.Template, error) {
	var templates []models.Template
	if err := r.db.Scopes(scope.Branch(p)).
		Order("created_at DESC").
		Find(&templates).Error; err != nil {
		return nil, err
	}
	return templates, nil
}
