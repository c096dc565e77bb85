package rules

import (
	"context"

	"github.com/tripdesk/tripdesk-backend/pkg/db/models"
	"github.com/tripdesk/tripdesk-backend/pkg/enums"
	pkgerrors "github.com/tripdesk/tripdesk-backend/pkg/errors"
	"github.com/tripdesk/tripdesk-backend/pkg/logger"
)

// Service exposes the rule toggles. EnabledMap feeds the assignment engine;
// a nil entry means no explicit value is stored and the fail-open default
// applies downstream.
type Service interface {
	EnabledMap(ctx context.Context, names []enums.AssignmentRuleName) (map[enums.AssignmentRuleName]*bool, error)
	List(ctx context.Context) ([]models.AssignmentRule, error)
	SetEnabled(ctx context.Context, name enums.AssignmentRuleName, enabled bool) error
}

type service struct {
	repo Repository
	logg *logger.Logger
}

// NewService wires the rules service.
func NewService(repo Repository, logg *logger.Logger) Service {
	return &service{repo: repo, logg: logg}
}

func (s *service) EnabledMap(ctx context.Context, names []enums.AssignmentRuleName) (map[enums.AssignmentRuleName]*bool, error) {
	rows, err := s.repo.FindByNames(ctx, names)
	if err != nil {
		return nil, err
	}

	stored := make(map[enums.AssignmentRuleName]bool, len(rows))
	for _, row := range rows {
		stored[row.Name] = row.Enabled
	}

	result := make(map[enums.AssignmentRuleName]*bool, len(names))
	for _, name := range names {
		if enabled, ok := stored[name]; ok {
			value := enabled
			result[name] = &value
		} else {
			result[name] = nil
		}
	}
	return result, nil
}

func (s *service) List(ctx context.Context) ([]models.AssignmentRule, error) {
	return s.repo.List(ctx)
}

func (s *service) SetEnabled(ctx context.Context, name enums.AssignmentRuleName, enabled bool) error {
	if !name.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "unknown assignment rule")
	}
	affected, err := s.repo.SetEnabled(ctx, name, enabled)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating rule toggle")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "assignment rule not found")
	}

	if s.logg != nil {
		logCtx := s.logg.WithRule(ctx, name.String())
		logCtx = s.logg.WithField(logCtx, "enabled", enabled)
		s.logg.Info(logCtx, "assignment rule toggled")
	}
	return nil
}
