package enums

import "fmt"

// OutboxAggregateType maps to the aggregate_type column in outbox_events.
type OutboxAggregateType string

const (
	AggregateEnquiry       OutboxAggregateType = "enquiry"
	AggregateStaffSequence OutboxAggregateType = "staff_sequence"
)

var validOutboxAggregates = []OutboxAggregateType{
	AggregateEnquiry,
	AggregateStaffSequence,
}

// IsValid reports whether the value is a known OutboxAggregateType.
func (a OutboxAggregateType) IsValid() bool {
	for _, candidate := range validOutboxAggregates {
		if candidate == a {
			return true
		}
	}
	return false
}

// OutboxEventType maps to the event_type column in outbox_events.
type OutboxEventType string

const (
	EventEnquiryAssigned   OutboxEventType = "enquiry_assigned"
	EventEnquiryUnassigned OutboxEventType = "enquiry_unassigned"
	EventSequenceReordered OutboxEventType = "sequence_reordered"
)

var validOutboxEvents = []OutboxEventType{
	EventEnquiryAssigned,
	EventEnquiryUnassigned,
	EventSequenceReordered,
}

// IsValid reports whether the value is a known OutboxEventType.
func (e OutboxEventType) IsValid() bool {
	for _, candidate := range validOutboxEvents {
		if candidate == e {
			return true
		}
	}
	return false
}

// ParseOutboxEventType converts raw input into an OutboxEventType.
func ParseOutboxEventType(value string) (OutboxEventType, error) {
	for _, candidate := range validOutboxEvents {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid outbox event type %q", value)
}
