package enquiries

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/tripdesk/tripdesk-backend/pkg/db/models"
	"github.com/tripdesk/tripdesk-backend/pkg/enums"
	pkgerrors "github.com/tripdesk/tripdesk-backend/pkg/errors"
	"github.com/tripdesk/tripdesk-backend/pkg/outbox"
	"github.com/tripdesk/tripdesk-backend/pkg/pagination"
)

type stubRepo struct {
	enquiry        *models.Enquiry
	findErr        error
	listRows       []models.Enquiry
	assignAffected int64
	assignErr      error
	history        []models.AssignmentHistory
	lastAssigned   *uuid.UUID
	activeCount    int64
}

func (s *stubRepo) FindByCode(_ context.Context, _ string) (*models.Enquiry, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	return s.enquiry, nil
}

func (s *stubRepo) FindByID(_ context.Context, _ uuid.UUID) (*models.Enquiry, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	return s.enquiry, nil
}

func (s *stubRepo) List(_ context.Context, _ ListFilter, _ *pagination.Cursor, _ int) ([]models.Enquiry, error) {
	return s.listRows, nil
}

func (s *stubRepo) ListUnassignedCodes(_ context.Context, _ int) ([]string, error) {
	return nil, nil
}

func (s *stubRepo) CountActiveByStaff(_ context.Context, _ uuid.UUID, _ string) (int64, error) {
	return s.activeCount, nil
}

func (s *stubRepo) AssignOnce(_ *gorm.DB, _, _ uuid.UUID, _ time.Time) (int64, error) {
	return s.assignAffected, s.assignErr
}

func (s *stubRepo) InsertHistory(_ *gorm.DB, record models.AssignmentHistory) error {
	s.history = append(s.history, record)
	return nil
}

func (s *stubRepo) LastAssigned(_ context.Context, _ []uuid.UUID) (*uuid.UUID, error) {
	return s.lastAssigned, nil
}

func (s *stubRepo) HistoryForEnquiry(_ context.Context, _ uuid.UUID) ([]models.AssignmentHistory, error) {
	return s.history, nil
}

type stubTx struct{}

func (stubTx) WithTx(_ context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

type stubOutbox struct {
	events []outbox.DomainEvent
}

func (s *stubOutbox) Emit(_ context.Context, _ *gorm.DB, event outbox.DomainEvent) error {
	s.events = append(s.events, event)
	return nil
}

func TestServiceAssignPersistsHistoryAndEvent(t *testing.T) {
	repo := &stubRepo{assignAffected: 1}
	emitted := &stubOutbox{}
	svc := NewService(repo, stubTx{}, emitted, nil)

	enquiryID, staffID := uuid.New(), uuid.New()
	err := svc.Assign(context.Background(), enquiryID, staffID, "auto-assign", enums.MethodWorkloadBalance, true)
	require.NoError(t, err)

	require.Len(t, repo.history, 1)
	record := repo.history[0]
	assert.Equal(t, enquiryID, record.EnquiryID)
	assert.Equal(t, staffID, record.StaffID)
	assert.Equal(t, enums.MethodWorkloadBalance, record.Method)
	assert.True(t, record.Automatic)

	require.Len(t, emitted.events, 1)
	event := emitted.events[0]
	assert.Equal(t, enums.EventEnquiryAssigned, event.EventType)
	assert.Equal(t, enquiryID, event.AggregateID)
	require.NotNil(t, event.Actor)
	assert.Equal(t, "auto-assign", event.Actor.AssignedBy)
}

func TestServiceAssignLosingRaceIsStateConflict(t *testing.T) {
	repo := &stubRepo{assignAffected: 0}
	svc := NewService(repo, stubTx{}, &stubOutbox{}, nil)

	err := svc.Assign(context.Background(), uuid.New(), uuid.New(), "auto-assign", enums.MethodRoundRobin, true)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeStateConflict, typed.Code())
	assert.Empty(t, repo.history)
}

func TestServiceAssignValidatesIDs(t *testing.T) {
	svc := NewService(&stubRepo{}, stubTx{}, &stubOutbox{}, nil)

	err := svc.Assign(context.Background(), uuid.Nil, uuid.New(), "auto-assign", enums.MethodRoundRobin, true)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestServiceFindByCodeMissingIsNil(t *testing.T) {
	svc := NewService(&stubRepo{findErr: gorm.ErrRecordNotFound}, stubTx{}, &stubOutbox{}, nil)

	enquiry, err := svc.FindByCode(context.Background(), "ENQ-404")
	require.NoError(t, err)
	assert.Nil(t, enquiry)
}

func TestServiceGetMissingIsNotFound(t *testing.T) {
	svc := NewService(&stubRepo{findErr: gorm.ErrRecordNotFound}, stubTx{}, &stubOutbox{}, nil)

	_, err := svc.Get(context.Background(), "ENQ-404")
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestServiceListReturnsNextCursorWhenMoreRows(t *testing.T) {
	rows := make([]models.Enquiry, 0, 3)
	base := time.Now()
	for i := 0; i < 3; i++ {
		rows = append(rows, models.Enquiry{
			ID:          uuid.New(),
			EnquiryCode: "ENQ",
			CreatedAt:   base.Add(-time.Duration(i) * time.Minute),
		})
	}
	svc := NewService(&stubRepo{listRows: rows}, stubTx{}, &stubOutbox{}, nil)

	page, nextCursor, err := svc.List(context.Background(), ListFilter{}, pagination.Params{Limit: 2})
	require.NoError(t, err)
	require.Len(t, page, 2)
	require.NotEmpty(t, nextCursor)

	cursor, err := pagination.ParseCursor(nextCursor)
	require.NoError(t, err)
	assert.Equal(t, page[1].ID, cursor.ID)
}

func TestServiceListRejectsBadCursor(t *testing.T) {
	svc := NewService(&stubRepo{}, stubTx{}, &stubOutbox{}, nil)

	_, _, err := svc.List(context.Background(), ListFilter{}, pagination.Params{Cursor: "%%%not-base64%%%"})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}
