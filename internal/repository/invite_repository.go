package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/contractdesk/contract-management-api/internal/models"
	"github.com/contractdesk/contract-management-api/internal/scope"
)

// GormInviteRepository is a GORM implementation of InviteRepository
type GormInviteRepository struct {
	db *gorm.DB
}

// NewInviteRepository creates a new InviteRepository
func NewInviteRepository(db *gorm.DB) InviteRepository {
	return &GormInviteRepository{db: db}
}

// Create inserts a pending invite
func (r *GormInviteRepository) Create(invite *models.BranchInvite) error {
	return r.db.Create(invite).Error
}

// FindByID finds an invite by ID
func (r *GormInviteRepository) FindByID(id uint64) (*models.BranchInvite, error) {
	var invite models.BranchInvite
	if err := r.db.First(&invite, id).Error; err != nil {
		return nil, err
	}
	return &invite, nil
}

// FindByToken finds an invite by its bearer token, joined with the branch and
// organization for the acceptance screen
func (r *GormInviteRepository) FindByToken(token string) (*models.BranchInvite, error) {
	var invite models.BranchInvite
	if err := r.db.Preload("Organization").Preload("BranchOffice").
		Where("invite_token = ?", token).
		First(&invite).Error; err != nil {
		return nil, err
	}
	return &invite, nil
}

// List lists invites visible under the given scope, newest first
func (r *GormInviteRepository) List(p scope.Params) ([]models.BranchInvite, error) {
	var invites []models.BranchInvite
	if err := r.db.Preload("BranchOffice").
		Scopes(scope.Branch(p)).
		Order("created_at DESC").
		Find(&invites).Error; err != nil {
		return nil, err
	}
	return invites, nil
}

// MarkAccepted flips a pending invite to accepted. The status guard in the
// WHERE clause is what makes tokens single-use: a second acceptance matches
// zero rows.
func (r *GormInviteRepository) MarkAccepted(id uint64, userID uint64, acceptedAt time.Time) (int64, error) {
	result := r.db.Model(&models.BranchInvite{}).
		Where("id = ? AND status = ?", id, models.InviteStatusPending).
		Updates(map[string]interface{}{
			"status":      models.InviteStatusAccepted,
			"user_id":     userID,
			"accepted_at": acceptedAt,
		})
	return result.RowsAffected, result.Error
}

// Revoke flips a pending invite to revoked
func (r *GormInviteRepository) Revoke(id uint64) (int64, error) {
	result := r.db.Model(&models.BranchInvite{}).
		Where("id = ? AND status = ?", id, models.InviteStatusPending).
		Update("status", models.InviteStatusRevoked)
	return result.RowsAffected, result.Error
}
