package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/tripdesk/tripdesk-backend/pkg/enums"
)

// AssignmentHistory is the append-only assignment log. The most recent row
// per candidate set anchors the round-robin rotation.
type AssignmentHistory struct {
	ID         uuid.UUID              `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	EnquiryID  uuid.UUID              `gorm:"column:enquiry_id;type:uuid;not null;index"`
	StaffID    uuid.UUID              `gorm:"column:staff_id;type:uuid;not null;index"`
	AssignedBy string                 `gorm:"column:assigned_by;type:text;not null"`
	Method     enums.AssignmentMethod `gorm:"column:method;type:text;not null"`
	Automatic  bool                   `gorm:"column:automatic;not null;default:true"`
	AssignedAt time.Time              `gorm:"column:assigned_at;autoCreateTime;index:idx_assignment_history_assigned_at,sort:desc"`
}

func (AssignmentHistory) TableName() string { return "assignment_history" }
