package agents

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tripdesk/tripdesk-backend/pkg/db/models"
)

// Repository reads agent-staff pairings.
type Repository interface {
	FindForAgent(ctx context.Context, agentID string, staffIDs []uuid.UUID) (*models.AgentStaffAssignment, error)
	ListForAgent(ctx context.Context, agentID string) ([]models.AgentStaffAssignment, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds an agents repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// FindForAgent returns the pairing for the agent restricted to the given
// staff set. When an agent carries several pairings the most recently
// created one wins, with the row ID as a deterministic tie-break.
func (r *repository) FindForAgent(ctx context.Context, agentID string, staffIDs []uuid.UUID) (*models.AgentStaffAssignment, error) {
	if strings.TrimSpace(agentID) == "" || len(staffIDs) == 0 {
		return nil, nil
	}
	var row models.AgentStaffAssignment
	err := r.db.WithContext(ctx).
		Where("agent_id = ?", agentID).
		Where("staff_id IN ?", staffIDs).
		Order("created_at DESC").
		Order("id DESC").
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *repository) ListForAgent(ctx context.Context, agentID string) ([]models.AgentStaffAssignment, error) {
	var rows []models.AgentStaffAssignment
	err := r.db.WithContext(ctx).
		Where("agent_id = ?", agentID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
