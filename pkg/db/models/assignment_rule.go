package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/tripdesk/tripdesk-backend/pkg/enums"
)

// AssignmentRule is a persisted rule toggle. Rules without a row default to
// enabled; the engine treats the absence of a toggle as fail-open.
type AssignmentRule struct {
	ID          uuid.UUID                `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name        enums.AssignmentRuleName `gorm:"column:name;type:text;not null;uniqueIndex"`
	Enabled     bool                     `gorm:"column:enabled;not null;default:true"`
	Description *string                  `gorm:"column:description"`
	UpdatedAt   time.Time                `gorm:"column:updated_at;autoUpdateTime"`
}

func (AssignmentRule) TableName() string { return "assignment_rules" }
