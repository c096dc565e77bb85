package enquiries

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tripdesk/tripdesk-backend/pkg/db/models"
	"github.com/tripdesk/tripdesk-backend/pkg/enums"
	"github.com/tripdesk/tripdesk-backend/pkg/pagination"
)

// ListFilter narrows the enquiry listing.
type ListFilter struct {
	Status  *enums.EnquiryStatus
	StaffID *uuid.UUID
	Country string
}

// Repository owns enquiry rows and the assignment history log.
type Repository interface {
	FindByCode(ctx context.Context, code string) (*models.Enquiry, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Enquiry, error)
	List(ctx context.Context, filter ListFilter, cursor *pagination.Cursor, limit int) ([]models.Enquiry, error)
	ListUnassignedCodes(ctx context.Context, limit int) ([]string, error)
	CountActiveByStaff(ctx context.Context, staffID uuid.UUID, country string) (int64, error)
	AssignOnce(tx *gorm.DB, enquiryID, staffID uuid.UUID, assignedAt time.Time) (int64, error)
	InsertHistory(tx *gorm.DB, record models.AssignmentHistory) error
	LastAssigned(ctx context.Context, staffIDs []uuid.UUID) (*uuid.UUID, error)
	HistoryForEnquiry(ctx context.Context, enquiryID uuid.UUID) ([]models.AssignmentHistory, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds an enquiries repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindByCode(ctx context.Context, code string) (*models.Enquiry, error) {
	var enquiry models.Enquiry
	err := r.db.WithContext(ctx).
		Where("enquiry_code = ?", strings.TrimSpace(code)).
		First(&enquiry).Error
	if err != nil {
		return nil, err
	}
	return &enquiry, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Enquiry, error) {
	var enquiry models.Enquiry
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&enquiry).Error; err != nil {
		return nil, err
	}
	return &enquiry, nil
}

func (r *repository) List(ctx context.Context, filter ListFilter, cursor *pagination.Cursor, limit int) ([]models.Enquiry, error) {
	query := r.db.WithContext(ctx).Model(&models.Enquiry{})
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.StaffID != nil {
		query = query.Where("assigned_staff_id = ?", *filter.StaffID)
	}
	if country := strings.TrimSpace(filter.Country); country != "" {
		query = query.Where("LOWER(destination_country) = LOWER(?)", country)
	}
	if cursor != nil {
		query = query.Where(
			"created_at < ? OR (created_at = ? AND id < ?)",
			cursor.CreatedAt, cursor.CreatedAt, cursor.ID,
		)
	}

	var enquiries []models.Enquiry
	err := query.
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&enquiries).Error
	if err != nil {
		return nil, err
	}
	return enquiries, nil
}

func (r *repository) ListUnassignedCodes(ctx context.Context, limit int) ([]string, error) {
	var codes []string
	err := r.db.WithContext(ctx).
		Model(&models.Enquiry{}).
		Where("status = ?", enums.EnquiryStatusNew).
		Where("assigned_staff_id IS NULL").
		Order("created_at ASC").
		Limit(limit).
		Pluck("enquiry_code", &codes).Error
	if err != nil {
		return nil, err
	}
	return codes, nil
}

func (r *repository) CountActiveByStaff(ctx context.Context, staffID uuid.UUID, country string) (int64, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Enquiry{}).
		Where("assigned_staff_id = ?", staffID).
		Where("status = ?", enums.EnquiryStatusAssigned)
	if country = strings.TrimSpace(country); country != "" {
		query = query.Where("LOWER(destination_country) = LOWER(?)", country)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// AssignOnce conditionally claims the enquiry. The status guard makes the
// write a no-op when another run got there first; callers check the
// affected-row count.
func (r *repository) AssignOnce(tx *gorm.DB, enquiryID, staffID uuid.UUID, assignedAt time.Time) (int64, error) {
	result := tx.Model(&models.Enquiry{}).
		Where("id = ?", enquiryID).
		Where("status = ?", enums.EnquiryStatusNew).
		Where("assigned_staff_id IS NULL").
		Updates(map[string]any{
			"status":            enums.EnquiryStatusAssigned,
			"assigned_staff_id": staffID,
			"assigned_at":       assignedAt,
		})
	return result.RowsAffected, result.Error
}

func (r *repository) InsertHistory(tx *gorm.DB, record models.AssignmentHistory) error {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	return tx.Create(&record).Error
}

// LastAssigned returns the staff ID on the most recent history row whose
// staff is within the candidate set, or nil on a cold start.
func (r *repository) LastAssigned(ctx context.Context, staffIDs []uuid.UUID) (*uuid.UUID, error) {
	if len(staffIDs) == 0 {
		return nil, nil
	}
	var record models.AssignmentHistory
	err := r.db.WithContext(ctx).
		Where("staff_id IN ?", staffIDs).
		Order("assigned_at DESC").
		Order("id DESC").
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record.StaffID, nil
}

func (r *repository) HistoryForEnquiry(ctx context.Context, enquiryID uuid.UUID) ([]models.AssignmentHistory, error) {
	var records []models.AssignmentHistory
	err := r.db.WithContext(ctx).
		Where("enquiry_id = ?", enquiryID).
		Order("assigned_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}
