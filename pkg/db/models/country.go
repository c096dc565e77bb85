package models

import (
	"time"

	"github.com/google/uuid"
)

// Country canonicalizes destination names. Operational-country values on
// staff rows may reference these rows by ID or carry the name verbatim.
type Country struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name      string    `gorm:"column:name;type:text;not null;uniqueIndex"`
	ISOCode   *string   `gorm:"column:iso_code;type:text"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
