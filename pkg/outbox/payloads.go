package outbox

import (
	"time"

	"github.com/google/uuid"

	"github.com/tripdesk/tripdesk-backend/pkg/enums"
)

// EnquiryAssignedEvent is emitted when an enquiry is routed to a staff member.
type EnquiryAssignedEvent struct {
	EnquiryID   uuid.UUID              `json:"enquiryId"`
	EnquiryCode string                 `json:"enquiryCode"`
	StaffID     uuid.UUID              `json:"staffId"`
	Method      enums.AssignmentMethod `json:"method"`
	Automatic   bool                   `json:"automatic"`
	AssignedAt  time.Time              `json:"assignedAt"`
}

// EnquiryUnassignedEvent is emitted when an assignment is cleared.
type EnquiryUnassignedEvent struct {
	EnquiryID   uuid.UUID `json:"enquiryId"`
	EnquiryCode string    `json:"enquiryCode"`
	StaffID     uuid.UUID `json:"staffId"`
	Reason      string    `json:"reason,omitempty"`
}

// SequenceReorderedEvent is emitted after the round robin sequence changes.
type SequenceReorderedEvent struct {
	StaffIDs []uuid.UUID `json:"staffIds"`
}
