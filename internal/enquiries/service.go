package enquiries

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tripdesk/tripdesk-backend/pkg/db/models"
	"github.com/tripdesk/tripdesk-backend/pkg/enums"
	pkgerrors "github.com/tripdesk/tripdesk-backend/pkg/errors"
	"github.com/tripdesk/tripdesk-backend/pkg/logger"
	"github.com/tripdesk/tripdesk-backend/pkg/outbox"
	"github.com/tripdesk/tripdesk-backend/pkg/pagination"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type outboxPublisher interface {
	Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
}

// Service owns enquiry reads and the single assignment write-back. It backs
// the assignment engine's enquiry, workload, and history lookups.
type Service interface {
	FindByCode(ctx context.Context, code string) (*models.Enquiry, error)
	Get(ctx context.Context, code string) (*models.Enquiry, error)
	List(ctx context.Context, filter ListFilter, page pagination.Params) ([]models.Enquiry, string, error)
	ListUnassignedCodes(ctx context.Context, limit int) ([]string, error)
	History(ctx context.Context, code string) ([]models.AssignmentHistory, error)
	Assign(ctx context.Context, enquiryID, staffID uuid.UUID, assignedBy string, method enums.AssignmentMethod, automatic bool) error
	CountActive(ctx context.Context, staffID uuid.UUID, country string) (int, error)
	LastAssigned(ctx context.Context, staffIDs []uuid.UUID) (*uuid.UUID, error)
}

type service struct {
	repo   Repository
	tx     txRunner
	outbox outboxPublisher
	logg   *logger.Logger
}

// NewService wires the enquiries service.
func NewService(repo Repository, tx txRunner, outboxSvc outboxPublisher, logg *logger.Logger) Service {
	return &service{repo: repo, tx: tx, outbox: outboxSvc, logg: logg}
}

// FindByCode resolves an enquiry for the assignment engine. A missing row
// is not an error here; the engine treats nil as a silent no-op.
func (s *service) FindByCode(ctx context.Context, code string) (*models.Enquiry, error) {
	enquiry, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return enquiry, nil
}

// Get resolves an enquiry for the API, surfacing a typed not-found.
func (s *service) Get(ctx context.Context, code string) (*models.Enquiry, error) {
	enquiry, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "enquiry not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading enquiry")
	}
	return enquiry, nil
}

func (s *service) List(ctx context.Context, filter ListFilter, page pagination.Params) ([]models.Enquiry, string, error) {
	cursor, err := pagination.ParseCursor(page.Cursor)
	if err != nil {
		return nil, "", pkgerrors.New(pkgerrors.CodeValidation, "invalid cursor")
	}
	limit := pagination.NormalizeLimit(page.Limit)

	rows, err := s.repo.List(ctx, filter, cursor, pagination.LimitWithBuffer(page.Limit))
	if err != nil {
		return nil, "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing enquiries")
	}

	nextCursor := ""
	if len(rows) > limit {
		rows = rows[:limit]
		last := rows[len(rows)-1]
		nextCursor = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
	}
	return rows, nextCursor, nil
}

func (s *service) ListUnassignedCodes(ctx context.Context, limit int) ([]string, error) {
	if limit <= 0 {
		limit = pagination.DefaultLimit
	}
	return s.repo.ListUnassignedCodes(ctx, limit)
}

func (s *service) History(ctx context.Context, code string) ([]models.AssignmentHistory, error) {
	enquiry, err := s.Get(ctx, code)
	if err != nil {
		return nil, err
	}
	records, err := s.repo.HistoryForEnquiry(ctx, enquiry.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading assignment history")
	}
	return records, nil
}

// Assign claims the enquiry, appends the history row, and queues the domain
// event in one transaction. Losing the conditional update to a concurrent
// run surfaces as a state conflict.
func (s *service) Assign(ctx context.Context, enquiryID, staffID uuid.UUID, assignedBy string, method enums.AssignmentMethod, automatic bool) error {
	if enquiryID == uuid.Nil || staffID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "enquiry id and staff id are required")
	}

	assignedAt := time.Now().UTC()
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		affected, err := s.repo.AssignOnce(tx, enquiryID, staffID, assignedAt)
		if err != nil {
			return err
		}
		if affected == 0 {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "enquiry is no longer assignable")
		}

		if err := s.repo.InsertHistory(tx, models.AssignmentHistory{
			EnquiryID:  enquiryID,
			StaffID:    staffID,
			AssignedBy: assignedBy,
			Method:     method,
			Automatic:  automatic,
			AssignedAt: assignedAt,
		}); err != nil {
			return err
		}

		if s.outbox == nil {
			return nil
		}
		return s.outbox.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventEnquiryAssigned,
			AggregateType: enums.AggregateEnquiry,
			AggregateID:   enquiryID,
			Actor:         &outbox.ActorRef{AssignedBy: assignedBy, StaffID: &staffID},
			Data: outbox.EnquiryAssignedEvent{
				EnquiryID:  enquiryID,
				StaffID:    staffID,
				Method:     method,
				Automatic:  automatic,
				AssignedAt: assignedAt,
			},
		})
	})
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return typed
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "assigning enquiry")
	}

	if s.logg != nil {
		logCtx := s.logg.WithStaffID(ctx, staffID.String())
		logCtx = s.logg.WithRule(logCtx, method.String())
		s.logg.Info(logCtx, "enquiry assignment persisted")
	}
	return nil
}

// CountActive reports the staff member's live workload. Errors propagate;
// the engine's workload counter degrades them to zero.
func (s *service) CountActive(ctx context.Context, staffID uuid.UUID, country string) (int, error) {
	count, err := s.repo.CountActiveByStaff(ctx, staffID, country)
	if err != nil {
		return 0, err
	}
	return int(count), nil
}

func (s *service) LastAssigned(ctx context.Context, staffIDs []uuid.UUID) (*uuid.UUID, error) {
	return s.repo.LastAssigned(ctx, staffIDs)
}
