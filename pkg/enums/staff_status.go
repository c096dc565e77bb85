package enums

import "strings"

// StaffStatus describes whether a staff member can receive work.
type StaffStatus string

const (
	StaffStatusActive   StaffStatus = "active"
	StaffStatusInactive StaffStatus = "inactive"
	StaffStatusOnLeave  StaffStatus = "on_leave"
)

// String implements fmt.Stringer.
func (s StaffStatus) String() string {
	return string(s)
}

// IsActive reports whether the raw status value counts as active for
// assignment purposes. The comparison is case-insensitive and an empty
// value defaults to active, matching how legacy staff rows were imported.
func IsActiveStaffStatus(raw string) bool {
	if strings.TrimSpace(raw) == "" {
		return true
	}
	return strings.EqualFold(raw, string(StaffStatusActive))
}
