package assignment

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/tripdesk/tripdesk-backend/pkg/db/models"
	"github.com/tripdesk/tripdesk-backend/pkg/enums"
	"github.com/tripdesk/tripdesk-backend/pkg/logger"
)

// directoryResolver builds the eligible candidate pool from the enabled
// sequence, the staff directories, and the workload counter. Directories
// are tried in order; the first that returns rows wins.
type directoryResolver struct {
	sequence    SequenceSource
	directories []StaffDirectory
	countries   CountryResolver
	workload    WorkloadSource
	logg        *logger.Logger
}

// EligibleStaff returns the candidate pool ordered ascending by sequence
// order. Any fetch or lookup failure degrades to an empty pool; the
// orchestrator treats that as "no match, next tier".
func (r *directoryResolver) EligibleStaff(ctx context.Context, country string, enforceCountryFilter bool) []EligibleStaff {
	entries, err := r.enabledSequence(ctx)
	if err != nil {
		r.warn(ctx, "fetching staff sequence failed", err)
		return nil
	}
	if len(entries) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, 0, len(entries))
	orderByID := make(map[uuid.UUID]int, len(entries))
	for _, entry := range entries {
		ids = append(ids, entry.StaffID)
		orderByID[entry.StaffID] = entry.SequenceOrder
	}

	records, err := r.lookupStaff(ctx, ids)
	if err != nil {
		r.warn(ctx, "staff directory lookup failed", err)
		return nil
	}

	pool := make([]EligibleStaff, 0, len(records))
	for _, record := range records {
		order, inSequence := orderByID[record.ID]
		if !inSequence || !enums.IsActiveStaffStatus(record.Status) {
			continue
		}

		countryNames := r.countryNames(ctx, record.OperationalCountries)
		if enforceCountryFilter && !containsFold(countryNames, country) {
			continue
		}

		scope := ""
		if enforceCountryFilter {
			scope = country
		}
		pool = append(pool, EligibleStaff{
			StaffID:              record.ID,
			Name:                 record.Name,
			SequenceOrder:        order,
			WorkloadCount:        r.countWorkload(ctx, record.ID, scope),
			OperationalCountries: countryNames,
		})
	}

	sort.SliceStable(pool, func(i, j int) bool {
		return pool[i].SequenceOrder < pool[j].SequenceOrder
	})
	return pool
}

func (r *directoryResolver) enabledSequence(ctx context.Context) ([]models.StaffSequenceEntry, error) {
	entries, err := r.sequence.FetchEnabled(ctx)
	if err != nil {
		return nil, err
	}
	filtered := entries[:0]
	for _, entry := range entries {
		if entry.AutoAssignEnabled {
			filtered = append(filtered, entry)
		}
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].SequenceOrder < filtered[j].SequenceOrder
	})
	return filtered, nil
}

func (r *directoryResolver) lookupStaff(ctx context.Context, ids []uuid.UUID) ([]StaffRecord, error) {
	var lastErr error
	for _, directory := range r.directories {
		records, err := directory.FindByIDs(ctx, ids)
		if err != nil {
			lastErr = err
			continue
		}
		if len(records) > 0 {
			return records, nil
		}
	}
	return nil, lastErr
}

// countryNames maps raw operational values through the country table. When
// no mapping produces a name, the raw values are treated as literal names.
func (r *directoryResolver) countryNames(ctx context.Context, raw []string) []string {
	if len(raw) == 0 {
		return nil
	}
	if r.countries != nil {
		names, err := r.countries.OperationalCountryNames(ctx, raw)
		if err == nil && len(names) > 0 {
			return names
		}
		if err != nil {
			r.warn(ctx, "mapping operational countries failed", err)
		}
	}
	return raw
}

func (r *directoryResolver) countWorkload(ctx context.Context, staffID uuid.UUID, country string) int {
	if r.workload == nil {
		return 0
	}
	count, err := r.workload.CountActive(ctx, staffID, country)
	if err != nil || count < 0 {
		return 0
	}
	return count
}

func (r *directoryResolver) warn(ctx context.Context, msg string, err error) {
	if r.logg == nil {
		return
	}
	r.logg.Warn(r.logg.WithField(ctx, "error", err.Error()), msg)
}

func containsFold(values []string, target string) bool {
	for _, value := range values {
		if strings.EqualFold(strings.TrimSpace(value), strings.TrimSpace(target)) {
			return true
		}
	}
	return false
}
