package countries

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tripdesk/tripdesk-backend/pkg/db/models"
	pkgerrors "github.com/tripdesk/tripdesk-backend/pkg/errors"
)

// Service resolves country names. Staff rows may carry operational
// countries as country-table IDs or as literal names; the resolver maps
// whatever it can and passes literal values through.
type Service interface {
	GetByName(ctx context.Context, name string) (*models.Country, error)
	List(ctx context.Context) ([]models.Country, error)
	OperationalCountryNames(ctx context.Context, raw []string) ([]string, error)
}

type service struct {
	repo Repository
}

// NewService wires the countries service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetByName(ctx context.Context, name string) (*models.Country, error) {
	if strings.TrimSpace(name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "country name is required")
	}
	country, err := s.repo.FindByName(ctx, name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "country not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading country")
	}
	return country, nil
}

func (s *service) List(ctx context.Context) ([]models.Country, error) {
	return s.repo.List(ctx)
}

// OperationalCountryNames maps raw operational values to canonical names.
// UUID-shaped values are looked up against the countries table; anything
// else is kept verbatim as a literal name.
func (s *service) OperationalCountryNames(ctx context.Context, raw []string) ([]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var ids []uuid.UUID
	var literals []string
	for _, value := range raw {
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			continue
		}
		if id, err := uuid.Parse(trimmed); err == nil {
			ids = append(ids, id)
		} else {
			literals = append(literals, trimmed)
		}
	}

	names := literals
	if len(ids) > 0 {
		rows, err := s.repo.FindByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		for _, row := range rows {
			names = append(names, row.Name)
		}
	}
	return names, nil
}
