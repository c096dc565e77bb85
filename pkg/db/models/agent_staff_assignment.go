package models

import (
	"time"

	"github.com/google/uuid"
)

// AgentStaffAssignment is a persisted agent-to-staff pairing. The engine
// reads these to honor existing relationships; it never writes them.
type AgentStaffAssignment struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	AgentID   string    `gorm:"column:agent_id;type:text;not null;index"`
	StaffID   uuid.UUID `gorm:"column:staff_id;type:uuid;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (AgentStaffAssignment) TableName() string { return "agent_staff_assignments" }
