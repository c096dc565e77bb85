package assignment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tripdesk/tripdesk-backend/pkg/db/models"
	"github.com/tripdesk/tripdesk-backend/pkg/enums"
)

// StaffRecord is the normalized directory row the engine works with. Both
// the staff and profiles tables project into this shape.
type StaffRecord struct {
	ID                   uuid.UUID
	Name                 string
	Status               string
	OperationalCountries []string
}

// EligibleStaff combines a sequence entry and a directory row with the
// computed workload. One exists only for staff that are active, in the
// enabled sequence, and (when country filtering applies) operate in the
// destination country.
type EligibleStaff struct {
	StaffID              uuid.UUID
	Name                 string
	SequenceOrder        int
	WorkloadCount        int
	OperationalCountries []string
}

// EnquiryStore loads enquiries and performs the single assignment write-back.
type EnquiryStore interface {
	FindByCode(ctx context.Context, code string) (*models.Enquiry, error)
	Assign(ctx context.Context, enquiryID, staffID uuid.UUID, assignedBy string, method enums.AssignmentMethod, automatic bool) error
}

// SequenceSource provides the enabled roster ordered ascending by sequence order.
type SequenceSource interface {
	FetchEnabled(ctx context.Context) ([]models.StaffSequenceEntry, error)
}

// StaffDirectory looks up staff metadata by ID. Implementations back onto
// either the staff table or the profiles fallback.
type StaffDirectory interface {
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]StaffRecord, error)
}

// CountryResolver maps raw operational-country values, which may be country
// IDs or literal names, to canonical country names.
type CountryResolver interface {
	OperationalCountryNames(ctx context.Context, raw []string) ([]string, error)
}

// RelationSource finds an existing agent-staff pairing within a candidate set.
type RelationSource interface {
	FindForAgent(ctx context.Context, agentID string, staffIDs []uuid.UUID) (*uuid.UUID, error)
}

// HistorySource answers "who was assigned most recently" within a candidate set.
type HistorySource interface {
	LastAssigned(ctx context.Context, staffIDs []uuid.UUID) (*uuid.UUID, error)
}

// WorkloadSource counts active enquiries per staff member, optionally scoped
// to a destination country.
type WorkloadSource interface {
	CountActive(ctx context.Context, staffID uuid.UUID, country string) (int, error)
}

// RuleToggleSource reports the persisted enabled state per rule. A nil entry
// means the store has no explicit value for that rule.
type RuleToggleSource interface {
	EnabledMap(ctx context.Context, names []enums.AssignmentRuleName) (map[enums.AssignmentRuleName]*bool, error)
}

// Locker guards concurrent assignment runs for the same enquiry.
type Locker interface {
	SetNX(ctx context.Context, key string, value any, ttl time.Duration) (bool, error)
	Del(ctx context.Context, keys ...string) error
	AssignmentLockKey(enquiryID string) string
}
