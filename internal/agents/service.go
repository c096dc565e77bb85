package agents

import (
	"context"

	"github.com/google/uuid"

	"github.com/tripdesk/tripdesk-backend/pkg/db/models"
)

// Service resolves agent-staff relationships for the assignment engine.
type Service interface {
	FindForAgent(ctx context.Context, agentID string, staffIDs []uuid.UUID) (*uuid.UUID, error)
	ListForAgent(ctx context.Context, agentID string) ([]models.AgentStaffAssignment, error)
}

type service struct {
	repo Repository
}

// NewService wires the agents service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) FindForAgent(ctx context.Context, agentID string, staffIDs []uuid.UUID) (*uuid.UUID, error) {
	row, err := s.repo.FindForAgent(ctx, agentID, staffIDs)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, nil
	}
	staffID := row.StaffID
	return &staffID, nil
}

func (s *service) ListForAgent(ctx context.Context, agentID string) ([]models.AgentStaffAssignment, error) {
	return s.repo.ListForAgent(ctx, agentID)
}
