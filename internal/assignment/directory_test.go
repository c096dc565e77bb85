package assignment

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripdesk/tripdesk-backend/pkg/db/models"
)

func seqEntry(staffID uuid.UUID, order int, enabled bool) models.StaffSequenceEntry {
	return models.StaffSequenceEntry{
		ID:                uuid.New(),
		StaffID:           staffID,
		SequenceOrder:     order,
		AutoAssignEnabled: enabled,
	}
}

func TestEligibleStaffOrdersBySequence(t *testing.T) {
	s1, s2, s3 := uuid.New(), uuid.New(), uuid.New()
	resolver := &directoryResolver{
		sequence: &stubSequence{entries: []models.StaffSequenceEntry{
			seqEntry(s3, 3, true),
			seqEntry(s1, 1, true),
			seqEntry(s2, 2, true),
		}},
		directories: []StaffDirectory{&stubDirectory{records: []StaffRecord{
			{ID: s2, Name: "Bea", Status: "active"},
			{ID: s1, Name: "Ana", Status: "active"},
			{ID: s3, Name: "Cai", Status: "active"},
		}}},
		workload: &stubWorkload{},
	}

	pool := resolver.EligibleStaff(context.Background(), "", false)
	require.Len(t, pool, 3)
	assert.Equal(t, s1, pool[0].StaffID)
	assert.Equal(t, s2, pool[1].StaffID)
	assert.Equal(t, s3, pool[2].StaffID)
}

func TestEligibleStaffExcludesDisabledAndInactive(t *testing.T) {
	active, inactive, off := uuid.New(), uuid.New(), uuid.New()
	resolver := &directoryResolver{
		sequence: &stubSequence{entries: []models.StaffSequenceEntry{
			seqEntry(active, 1, true),
			seqEntry(inactive, 2, true),
			seqEntry(off, 3, false),
		}},
		directories: []StaffDirectory{&stubDirectory{records: []StaffRecord{
			{ID: active, Name: "Ana", Status: "active"},
			{ID: inactive, Name: "Bea", Status: "on_leave"},
			{ID: off, Name: "Cai", Status: "active"},
		}}},
		workload: &stubWorkload{},
	}

	pool := resolver.EligibleStaff(context.Background(), "", false)
	require.Len(t, pool, 1)
	assert.Equal(t, active, pool[0].StaffID)
}

func TestEligibleStaffMissingStatusDefaultsToActive(t *testing.T) {
	staffID := uuid.New()
	resolver := &directoryResolver{
		sequence: &stubSequence{entries: []models.StaffSequenceEntry{
			seqEntry(staffID, 1, true),
		}},
		directories: []StaffDirectory{&stubDirectory{records: []StaffRecord{
			{ID: staffID, Name: "Ana"},
		}}},
		workload: &stubWorkload{},
	}

	pool := resolver.EligibleStaff(context.Background(), "", false)
	require.Len(t, pool, 1)
}

func TestEligibleStaffCountryFilterExcludesMismatch(t *testing.T) {
	thai, other := uuid.New(), uuid.New()
	resolver := &directoryResolver{
		sequence: &stubSequence{entries: []models.StaffSequenceEntry{
			seqEntry(thai, 1, true),
			seqEntry(other, 2, true),
		}},
		directories: []StaffDirectory{&stubDirectory{records: []StaffRecord{
			{ID: thai, Name: "Ana", Status: "active", OperationalCountries: []string{"Thailand", "Vietnam"}},
			{ID: other, Name: "Bea", Status: "active", OperationalCountries: []string{"Japan"}},
		}}},
		workload: &stubWorkload{},
	}

	pool := resolver.EligibleStaff(context.Background(), "thailand", true)
	require.Len(t, pool, 1)
	assert.Equal(t, thai, pool[0].StaffID)
}

func TestEligibleStaffMapsCountryIDsToNames(t *testing.T) {
	staffID := uuid.New()
	countryID := uuid.NewString()
	resolver := &directoryResolver{
		sequence: &stubSequence{entries: []models.StaffSequenceEntry{
			seqEntry(staffID, 1, true),
		}},
		directories: []StaffDirectory{&stubDirectory{records: []StaffRecord{
			{ID: staffID, Name: "Ana", Status: "active", OperationalCountries: []string{countryID}},
		}}},
		countries: &stubCountries{mapping: map[string]string{countryID: "Thailand"}},
		workload:  &stubWorkload{},
	}

	pool := resolver.EligibleStaff(context.Background(), "Thailand", true)
	require.Len(t, pool, 1)
	assert.Equal(t, []string{"Thailand"}, pool[0].OperationalCountries)
}

func TestEligibleStaffUnmappedValuesTreatedAsLiteralNames(t *testing.T) {
	staffID := uuid.New()
	resolver := &directoryResolver{
		sequence: &stubSequence{entries: []models.StaffSequenceEntry{
			seqEntry(staffID, 1, true),
		}},
		directories: []StaffDirectory{&stubDirectory{records: []StaffRecord{
			{ID: staffID, Name: "Ana", Status: "active", OperationalCountries: []string{"Thailand"}},
		}}},
		countries: &stubCountries{mapping: map[string]string{}},
		workload:  &stubWorkload{},
	}

	pool := resolver.EligibleStaff(context.Background(), "Thailand", true)
	require.Len(t, pool, 1)
}

func TestEligibleStaffFallsBackToSecondaryDirectory(t *testing.T) {
	staffID := uuid.New()
	resolver := &directoryResolver{
		sequence: &stubSequence{entries: []models.StaffSequenceEntry{
			seqEntry(staffID, 1, true),
		}},
		directories: []StaffDirectory{
			&stubDirectory{},
			&stubDirectory{records: []StaffRecord{
				{ID: staffID, Name: "Ana", Status: "active"},
			}},
		},
		workload: &stubWorkload{},
	}

	pool := resolver.EligibleStaff(context.Background(), "", false)
	require.Len(t, pool, 1)
	assert.Equal(t, "Ana", pool[0].Name)
}

func TestEligibleStaffWorkloadScopedByCountryOnlyWhenFiltering(t *testing.T) {
	staffID := uuid.New()
	workload := &stubWorkload{counts: map[uuid.UUID]int{staffID: 4}}
	resolver := &directoryResolver{
		sequence: &stubSequence{entries: []models.StaffSequenceEntry{
			seqEntry(staffID, 1, true),
		}},
		directories: []StaffDirectory{&stubDirectory{records: []StaffRecord{
			{ID: staffID, Name: "Ana", Status: "active", OperationalCountries: []string{"Thailand"}},
		}}},
		workload: workload,
	}

	pool := resolver.EligibleStaff(context.Background(), "Thailand", true)
	require.Len(t, pool, 1)
	assert.Equal(t, 4, pool[0].WorkloadCount)
	require.Equal(t, []string{"Thailand"}, workload.gotCountries)

	workload.gotCountries = nil
	resolver.EligibleStaff(context.Background(), "Thailand", false)
	require.Equal(t, []string{""}, workload.gotCountries)
}

func TestEligibleStaffFailsSafeOnErrors(t *testing.T) {
	staffID := uuid.New()

	sequenceDown := &directoryResolver{
		sequence: &stubSequence{err: assert.AnError},
	}
	assert.Empty(t, sequenceDown.EligibleStaff(context.Background(), "", false))

	directoryDown := &directoryResolver{
		sequence: &stubSequence{entries: []models.StaffSequenceEntry{
			seqEntry(staffID, 1, true),
		}},
		directories: []StaffDirectory{&stubDirectory{err: assert.AnError}},
	}
	assert.Empty(t, directoryDown.EligibleStaff(context.Background(), "", false))

	workloadDown := &directoryResolver{
		sequence: &stubSequence{entries: []models.StaffSequenceEntry{
			seqEntry(staffID, 1, true),
		}},
		directories: []StaffDirectory{&stubDirectory{records: []StaffRecord{
			{ID: staffID, Name: "Ana", Status: "active"},
		}}},
		workload: &stubWorkload{err: assert.AnError},
	}
	pool := workloadDown.EligibleStaff(context.Background(), "", false)
	require.Len(t, pool, 1)
	assert.Zero(t, pool[0].WorkloadCount)
}
