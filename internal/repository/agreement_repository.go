package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/contractdesk/contract-management-api/internal/database"
	"github.com/contractdesk/contract-management-api/internal/models"
	"github.com/contractdesk/contract-management-api/internal/scope"
	"github.com/contractdesk/contract-management-api/internal/utils"
)

// GormAgreementRepository is a GORM implementation of AgreementRepository
type GormAgreementRepository struct {
	db *gorm.DB
}

// NewAgreementRepository creates a new AgreementRepository
func NewAgreementRepository(db *gorm.DB) AgreementRepository {
	return &GormAgreementRepository{db: db}
}

// Upsert writes an agreement keyed by its client-supplied id. The whole row is
// replaced on conflict, which re-serializes every embedded collection
// (sections, tags, comments, audit log) on each write.
func (r *GormAgreementRepository) Upsert(agreement *models.Agreement) error {
	return r.db.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(agreement).Error
}

// FindByID finds an agreement by ID
func (r *GormAgreementRepository) FindByID(id string) (*models.Agreement, error) {
	var agreement models.Agreement
	if err := r.db.Preload("Project").
		Where("id = ?", id).
		First(&agreement).Error; err != nil {
		return nil, err
	}
	return &agreement, nil
}

// List retrieves agreements under the given scope, newest first
func (r *GormAgreementRepository) List(p scope.Params, filter AgreementFilter) ([]models.Agreement, int64, error) {
	var agreements []models.Agreement

	query := r.db.Model(&models.Agreement{}).Scopes(scope.Branch(p))

	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.ProjectID != nil {
		query = query.Where("project_id = ?", *filter.ProjectID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("created_at DESC")
	if filter.Page > 0 && filter.PageSize > 0 {
		listQuery = listQuery.Scopes(database.Paginate(utils.PaginationParams{
			Page:   filter.Page,
			Limit:  filter.PageSize,
			Offset: (filter.Page - 1) * filter.PageSize,
		}))
	}

	if err := listQuery.Find(&agreements).Error; err != nil {
		return nil, 0, err
	}

	return agreements, total, nil
}

// Delete soft deletes an agreement
func (r *GormAgreementRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&models.Agreement{}).Error
}
