package staff

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tripdesk/tripdesk-backend/internal/assignment"
	"github.com/tripdesk/tripdesk-backend/pkg/db/models"
)

// Repository reads and maintains the staff roster and its sequence.
type Repository interface {
	FetchSequence(ctx context.Context) ([]models.StaffSequenceEntry, error)
	FetchEnabledSequence(ctx context.Context) ([]models.StaffSequenceEntry, error)
	ReorderSequence(tx *gorm.DB, staffIDs []uuid.UUID) error
	SetAutoAssign(ctx context.Context, staffID uuid.UUID, enabled bool) (int64, error)
	FindMemberByID(ctx context.Context, id uuid.UUID) (*models.StaffMember, error)
	ListMembers(ctx context.Context) ([]models.StaffMember, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a staff repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FetchSequence(ctx context.Context) ([]models.StaffSequenceEntry, error) {
	var entries []models.StaffSequenceEntry
	err := r.db.WithContext(ctx).
		Order("sequence_order ASC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *repository) FetchEnabledSequence(ctx context.Context) ([]models.StaffSequenceEntry, error) {
	var entries []models.StaffSequenceEntry
	err := r.db.WithContext(ctx).
		Where("auto_assign_enabled = ?", true).
		Order("sequence_order ASC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// ReorderSequence rewrites sequence_order to match the given ID order,
// starting at 1. Runs inside the caller's transaction.
func (r *repository) ReorderSequence(tx *gorm.DB, staffIDs []uuid.UUID) error {
	for position, staffID := range staffIDs {
		err := tx.Model(&models.StaffSequenceEntry{}).
			Where("staff_id = ?", staffID).
			Update("sequence_order", position+1).Error
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *repository) SetAutoAssign(ctx context.Context, staffID uuid.UUID, enabled bool) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.StaffSequenceEntry{}).
		Where("staff_id = ?", staffID).
		Update("auto_assign_enabled", enabled)
	return result.RowsAffected, result.Error
}

func (r *repository) FindMemberByID(ctx context.Context, id uuid.UUID) (*models.StaffMember, error) {
	var member models.StaffMember
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *repository) ListMembers(ctx context.Context) ([]models.StaffMember, error) {
	var members []models.StaffMember
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&members).Error
	if err != nil {
		return nil, err
	}
	return members, nil
}

// TableDirectory resolves staff metadata from the primary staff table.
type TableDirectory struct {
	db *gorm.DB
}

// NewTableDirectory builds the primary directory adapter.
func NewTableDirectory(db *gorm.DB) *TableDirectory {
	return &TableDirectory{db: db}
}

func (d *TableDirectory) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]assignment.StaffRecord, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var members []models.StaffMember
	err := d.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&members).Error
	if err != nil {
		return nil, err
	}
	records := make([]assignment.StaffRecord, 0, len(members))
	for _, member := range members {
		records = append(records, assignment.StaffRecord{
			ID:                   member.ID,
			Name:                 member.Name,
			Status:               member.Status,
			OperationalCountries: member.OperationalCountries,
		})
	}
	return records, nil
}

// ProfileDirectory resolves staff metadata from the legacy profiles table.
// It backs up the primary directory for installations that never migrated.
type ProfileDirectory struct {
	db *gorm.DB
}

// NewProfileDirectory builds the fallback directory adapter.
func NewProfileDirectory(db *gorm.DB) *ProfileDirectory {
	return &ProfileDirectory{db: db}
}

func (d *ProfileDirectory) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]assignment.StaffRecord, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var profiles []models.Profile
	err := d.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&profiles).Error
	if err != nil {
		return nil, err
	}
	records := make([]assignment.StaffRecord, 0, len(profiles))
	for _, profile := range profiles {
		records = append(records, assignment.StaffRecord{
			ID:                   profile.ID,
			Name:                 profile.Name,
			Status:               profile.Status,
			OperationalCountries: profile.OperationalCountries,
		})
	}
	return records, nil
}
