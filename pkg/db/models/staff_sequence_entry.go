package models

import (
	"time"

	"github.com/google/uuid"
)

// StaffSequenceEntry is an ordered roster entry. Sequence order drives both
// the round-robin rotation and the plain-sequence fallback.
type StaffSequenceEntry struct {
	ID                uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	StaffID           uuid.UUID `gorm:"column:staff_id;type:uuid;not null;uniqueIndex"`
	SequenceOrder     int       `gorm:"column:sequence_order;not null"`
	AutoAssignEnabled bool      `gorm:"column:auto_assign_enabled;not null;default:true"`
	CreatedAt         time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (StaffSequenceEntry) TableName() string { return "staff_sequence" }
