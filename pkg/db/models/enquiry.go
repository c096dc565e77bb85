package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tripdesk/tripdesk-backend/pkg/enums"
)

// Enquiry is an inbound travel request. The engine only ever writes the
// assignment columns; everything else is owned by the intake flow.
type Enquiry struct {
	ID                 uuid.UUID            `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	EnquiryCode        string               `gorm:"column:enquiry_code;type:text;not null;uniqueIndex"`
	CustomerName       string               `gorm:"column:customer_name;not null"`
	CustomerEmail      *string              `gorm:"column:customer_email"`
	DestinationCountry string               `gorm:"column:destination_country;type:text;not null;default:''"`
	AgentID            *uuid.UUID           `gorm:"column:agent_id;type:uuid"`
	LegacyAgentID      *string              `gorm:"column:legacy_agent_id;type:text"`
	Status             enums.EnquiryStatus  `gorm:"column:status;type:text;not null;default:'new'"`
	AssignedStaffID    *uuid.UUID           `gorm:"column:assigned_staff_id;type:uuid"`
	AssignedAt         *time.Time           `gorm:"column:assigned_at"`
	TravelDate         *time.Time           `gorm:"column:travel_date"`
	PartySize          int                  `gorm:"column:party_size;not null;default:1"`
	EstimatedBudget    decimal.NullDecimal  `gorm:"column:estimated_budget;type:numeric(12,2)"`
	QuotedAmount       decimal.NullDecimal  `gorm:"column:quoted_amount;type:numeric(12,2)"`
	Notes              *string              `gorm:"column:notes"`
	CreatedAt          time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}

// AgentRef returns the agent reference the relationship rule should use:
// the UUID column when present, otherwise the legacy numeric ID as text.
func (e Enquiry) AgentRef() string {
	if e.AgentID != nil && *e.AgentID != uuid.Nil {
		return e.AgentID.String()
	}
	if e.LegacyAgentID != nil {
		return *e.LegacyAgentID
	}
	return ""
}
