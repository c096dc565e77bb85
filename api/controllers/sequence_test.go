package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/tripdesk/tripdesk-backend/pkg/db/models"
)

type testStaffService struct {
	fetchFn   func(ctx context.Context) ([]models.StaffSequenceEntry, error)
	reorderFn func(ctx context.Context, staffIDs []uuid.UUID) error
}

func (s *testStaffService) FetchEnabled(ctx context.Context) ([]models.StaffSequenceEntry, error) {
	return s.FetchSequence(ctx)
}

func (s *testStaffService) FetchSequence(ctx context.Context) ([]models.StaffSequenceEntry, error) {
	if s.fetchFn != nil {
		return s.fetchFn(ctx)
	}
	return nil, nil
}

func (s *testStaffService) Reorder(ctx context.Context, staffIDs []uuid.UUID) error {
	if s.reorderFn != nil {
		return s.reorderFn(ctx, staffIDs)
	}
	return nil
}

func (s *testStaffService) SetAutoAssign(context.Context, uuid.UUID, bool) error {
	return nil
}

func (s *testStaffService) ListMembers(context.Context) ([]models.StaffMember, error) {
	return nil, nil
}

func (s *testStaffService) GetMember(context.Context, uuid.UUID) (*models.StaffMember, error) {
	return nil, nil
}

func TestReorderSequenceSuccess(t *testing.T) {
	s1 := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	s2 := uuid.MustParse("22222222-2222-2222-2222-222222222222")

	var got []uuid.UUID
	svc := &testStaffService{
		reorderFn: func(ctx context.Context, staffIDs []uuid.UUID) error {
			got = staffIDs
			return nil
		},
	}

	body := strings.NewReader(`{"staff_ids": ["` + s2.String() + `", "` + s1.String() + `"]}`)
	req := httptest.NewRequest(http.MethodPut, "/api/v1/assignment/sequence", body)

	resp := httptest.NewRecorder()
	ReorderSequence(svc, testLogg())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", resp.Code, resp.Body.String())
	}
	if len(got) != 2 || got[0] != s2 || got[1] != s1 {
		t.Fatalf("unexpected order %v", got)
	}
}

func TestReorderSequenceRejectsEmptyList(t *testing.T) {
	body := strings.NewReader(`{"staff_ids": []}`)
	req := httptest.NewRequest(http.MethodPut, "/api/v1/assignment/sequence", body)

	resp := httptest.NewRecorder()
	ReorderSequence(&testStaffService{}, testLogg())(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status %d", resp.Code)
	}
}
