package models

import (
	"time"

	"github.com/google/uuid"
	dbtypes "github.com/tripdesk/tripdesk-backend/pkg/db/types"
)

// StaffMember is a row in the primary staff directory.
type StaffMember struct {
	ID                   uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name                 string              `gorm:"column:name;not null"`
	Email                *string             `gorm:"column:email"`
	Status               string              `gorm:"column:status;type:text;not null;default:'active'"`
	OperationalCountries dbtypes.StringArray `gorm:"column:operational_countries;type:text[];not null;default:ARRAY[]::text[]"`
	CreatedAt            time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt            time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}

func (StaffMember) TableName() string { return "staff" }

// Profile is the legacy fallback directory. Migrated installations still
// keep staff rows here; the read shape matches StaffMember.
type Profile struct {
	ID                   uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name                 string              `gorm:"column:name;not null"`
	Email                *string             `gorm:"column:email"`
	Status               string              `gorm:"column:status;type:text;not null;default:'active'"`
	OperationalCountries dbtypes.StringArray `gorm:"column:operational_countries;type:text[];not null;default:ARRAY[]::text[]"`
	CreatedAt            time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt            time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}

func (Profile) TableName() string { return "profiles" }
