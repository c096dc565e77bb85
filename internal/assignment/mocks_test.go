package assignment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tripdesk/tripdesk-backend/pkg/db/models"
	"github.com/tripdesk/tripdesk-backend/pkg/enums"
)

type assignCall struct {
	enquiryID  uuid.UUID
	staffID    uuid.UUID
	assignedBy string
	method     enums.AssignmentMethod
	automatic  bool
}

type stubEnquiries struct {
	enquiry   *models.Enquiry
	findErr   error
	assignErr error
	assigned  []assignCall
}

func (s *stubEnquiries) FindByCode(_ context.Context, _ string) (*models.Enquiry, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	return s.enquiry, nil
}

func (s *stubEnquiries) Assign(_ context.Context, enquiryID, staffID uuid.UUID, assignedBy string, method enums.AssignmentMethod, automatic bool) error {
	if s.assignErr != nil {
		return s.assignErr
	}
	s.assigned = append(s.assigned, assignCall{
		enquiryID:  enquiryID,
		staffID:    staffID,
		assignedBy: assignedBy,
		method:     method,
		automatic:  automatic,
	})
	return nil
}

type stubSequence struct {
	entries []models.StaffSequenceEntry
	err     error
}

func (s *stubSequence) FetchEnabled(_ context.Context) ([]models.StaffSequenceEntry, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := make([]models.StaffSequenceEntry, len(s.entries))
	copy(out, s.entries)
	return out, nil
}

type stubDirectory struct {
	records []StaffRecord
	err     error
}

func (s *stubDirectory) FindByIDs(_ context.Context, _ []uuid.UUID) ([]StaffRecord, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.records, nil
}

// stubCountries maps raw operational values to canonical names. Unmapped
// values are dropped, mirroring the real resolver.
type stubCountries struct {
	mapping map[string]string
	err     error
}

func (s *stubCountries) OperationalCountryNames(_ context.Context, raw []string) ([]string, error) {
	if s.err != nil {
		return nil, s.err
	}
	var names []string
	for _, value := range raw {
		if name, ok := s.mapping[value]; ok {
			names = append(names, name)
		}
	}
	return names, nil
}

type stubRelations struct {
	staffID     *uuid.UUID
	err         error
	gotAgent    string
	gotStaffIDs []uuid.UUID
}

func (s *stubRelations) FindForAgent(_ context.Context, agentID string, staffIDs []uuid.UUID) (*uuid.UUID, error) {
	s.gotAgent = agentID
	s.gotStaffIDs = staffIDs
	if s.err != nil {
		return nil, s.err
	}
	return s.staffID, nil
}

type stubHistory struct {
	lastID *uuid.UUID
	err    error
}

func (s *stubHistory) LastAssigned(_ context.Context, _ []uuid.UUID) (*uuid.UUID, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.lastID, nil
}

type stubWorkload struct {
	counts       map[uuid.UUID]int
	err          error
	gotCountries []string
}

func (s *stubWorkload) CountActive(_ context.Context, staffID uuid.UUID, country string) (int, error) {
	s.gotCountries = append(s.gotCountries, country)
	if s.err != nil {
		return 0, s.err
	}
	return s.counts[staffID], nil
}

type stubToggles struct {
	values map[enums.AssignmentRuleName]*bool
	err    error
}

func (s *stubToggles) EnabledMap(_ context.Context, _ []enums.AssignmentRuleName) (map[enums.AssignmentRuleName]*bool, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.values, nil
}

type stubLocker struct {
	busy    bool
	err     error
	setKeys []string
	delKeys []string
}

func (s *stubLocker) SetNX(_ context.Context, key string, _ any, _ time.Duration) (bool, error) {
	s.setKeys = append(s.setKeys, key)
	if s.err != nil {
		return false, s.err
	}
	return !s.busy, nil
}

func (s *stubLocker) Del(_ context.Context, keys ...string) error {
	s.delKeys = append(s.delKeys, keys...)
	return nil
}

func (s *stubLocker) AssignmentLockKey(enquiryID string) string {
	return "td:assignment:lock:" + enquiryID
}

func boolPtr(v bool) *bool { return &v }

func disabled(names ...enums.AssignmentRuleName) *stubToggles {
	values := make(map[enums.AssignmentRuleName]*bool)
	for _, name := range names {
		values[name] = boolPtr(false)
	}
	return &stubToggles{values: values}
}
