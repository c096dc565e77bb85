package rules

import (
	"context"

	"gorm.io/gorm"

	"github.com/tripdesk/tripdesk-backend/pkg/db/models"
	"github.com/tripdesk/tripdesk-backend/pkg/enums"
)

// Repository reads and updates the persisted rule toggles.
type Repository interface {
	FindByNames(ctx context.Context, names []enums.AssignmentRuleName) ([]models.AssignmentRule, error)
	List(ctx context.Context) ([]models.AssignmentRule, error)
	SetEnabled(ctx context.Context, name enums.AssignmentRuleName, enabled bool) (int64, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a rules repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindByNames(ctx context.Context, names []enums.AssignmentRuleName) ([]models.AssignmentRule, error) {
	if len(names) == 0 {
		return nil, nil
	}
	var rows []models.AssignmentRule
	err := r.db.WithContext(ctx).
		Where("name IN ?", names).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) List(ctx context.Context) ([]models.AssignmentRule, error) {
	var rows []models.AssignmentRule
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) SetEnabled(ctx context.Context, name enums.AssignmentRuleName, enabled bool) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.AssignmentRule{}).
		Where("name = ?", name).
		Update("enabled", enabled)
	return result.RowsAffected, result.Error
}
