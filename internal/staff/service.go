package staff

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tripdesk/tripdesk-backend/pkg/db/models"
	"github.com/tripdesk/tripdesk-backend/pkg/enums"
	pkgerrors "github.com/tripdesk/tripdesk-backend/pkg/errors"
	"github.com/tripdesk/tripdesk-backend/pkg/logger"
	"github.com/tripdesk/tripdesk-backend/pkg/outbox"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type outboxPublisher interface {
	Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
}

// Service maintains the roster and the round-robin sequence.
type Service interface {
	FetchEnabled(ctx context.Context) ([]models.StaffSequenceEntry, error)
	FetchSequence(ctx context.Context) ([]models.StaffSequenceEntry, error)
	Reorder(ctx context.Context, staffIDs []uuid.UUID) error
	SetAutoAssign(ctx context.Context, staffID uuid.UUID, enabled bool) error
	ListMembers(ctx context.Context) ([]models.StaffMember, error)
	GetMember(ctx context.Context, id uuid.UUID) (*models.StaffMember, error)
}

type service struct {
	repo   Repository
	tx     txRunner
	outbox outboxPublisher
	logg   *logger.Logger
}

// NewService wires the staff service.
func NewService(repo Repository, tx txRunner, outboxSvc outboxPublisher, logg *logger.Logger) Service {
	return &service{repo: repo, tx: tx, outbox: outboxSvc, logg: logg}
}

// FetchEnabled returns the enabled roster ordered by sequence. This is the
// sequence the assignment engine rotates over.
func (s *service) FetchEnabled(ctx context.Context) ([]models.StaffSequenceEntry, error) {
	return s.repo.FetchEnabledSequence(ctx)
}

func (s *service) FetchSequence(ctx context.Context) ([]models.StaffSequenceEntry, error) {
	return s.repo.FetchSequence(ctx)
}

// Reorder rewrites the sequence to the given staff ID order and emits a
// sequence_reordered event in the same transaction.
func (s *service) Reorder(ctx context.Context, staffIDs []uuid.UUID) error {
	if len(staffIDs) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "staff id list is required")
	}
	seen := make(map[uuid.UUID]bool, len(staffIDs))
	for _, staffID := range staffIDs {
		if staffID == uuid.Nil {
			return pkgerrors.New(pkgerrors.CodeValidation, "staff id cannot be empty")
		}
		if seen[staffID] {
			return pkgerrors.New(pkgerrors.CodeValidation, "duplicate staff id in sequence")
		}
		seen[staffID] = true
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.ReorderSequence(tx, staffIDs); err != nil {
			return err
		}
		if s.outbox == nil {
			return nil
		}
		return s.outbox.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventSequenceReordered,
			AggregateType: enums.AggregateStaffSequence,
			AggregateID:   staffIDs[0],
			Data:          outbox.SequenceReorderedEvent{StaffIDs: staffIDs},
		})
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reordering staff sequence")
	}

	if s.logg != nil {
		s.logg.Info(s.logg.WithField(ctx, "staff_count", len(staffIDs)), "staff sequence reordered")
	}
	return nil
}

func (s *service) SetAutoAssign(ctx context.Context, staffID uuid.UUID, enabled bool) error {
	if staffID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "staff id is required")
	}
	affected, err := s.repo.SetAutoAssign(ctx, staffID, enabled)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating auto-assign flag")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "staff member is not in the sequence")
	}
	return nil
}

func (s *service) ListMembers(ctx context.Context) ([]models.StaffMember, error) {
	return s.repo.ListMembers(ctx)
}

func (s *service) GetMember(ctx context.Context, id uuid.UUID) (*models.StaffMember, error) {
	member, err := s.repo.FindMemberByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "staff member not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading staff member")
	}
	return member, nil
}
