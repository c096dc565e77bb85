package countries

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tripdesk/tripdesk-backend/pkg/db/models"
)

// Repository reads the canonical countries table.
type Repository interface {
	FindByName(ctx context.Context, name string) (*models.Country, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Country, error)
	List(ctx context.Context) ([]models.Country, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a countries repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindByName(ctx context.Context, name string) (*models.Country, error) {
	var country models.Country
	err := r.db.WithContext(ctx).
		Where("LOWER(name) = LOWER(?)", strings.TrimSpace(name)).
		First(&country).Error
	if err != nil {
		return nil, err
	}
	return &country, nil
}

func (r *repository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Country, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []models.Country
	err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) List(ctx context.Context) ([]models.Country, error) {
	var rows []models.Country
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
