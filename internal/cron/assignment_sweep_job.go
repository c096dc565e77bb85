package cron

import (
	"context"
	"fmt"

	"go.uber.org/multierr"

	"github.com/tripdesk/tripdesk-backend/internal/assignment"
	"github.com/tripdesk/tripdesk-backend/pkg/logger"
)

const defaultSweepBatchSize = 50

type sweepSource interface {
	ListUnassignedCodes(ctx context.Context, limit int) ([]string, error)
}

type sweepAssigner interface {
	Assign(ctx context.Context, enquiryCode string) (*assignment.Decision, error)
}

// AssignmentSweepJob picks up enquiries that arrived without triggering an
// assignment, for example while the API was down, and runs the engine over
// them in batches.
type AssignmentSweepJob struct {
	source    sweepSource
	engine    sweepAssigner
	batchSize int
	logg      *logger.Logger
}

// NewAssignmentSweepJob builds the sweep job.
func NewAssignmentSweepJob(source sweepSource, engine sweepAssigner, batchSize int, logg *logger.Logger) *AssignmentSweepJob {
	if batchSize <= 0 {
		batchSize = defaultSweepBatchSize
	}
	return &AssignmentSweepJob{
		source:    source,
		engine:    engine,
		batchSize: batchSize,
		logg:      logg,
	}
}

// Name identifies the job in logs and metrics.
func (j *AssignmentSweepJob) Name() string { return "assignment_sweep" }

// Run assigns one batch of unassigned enquiries. Per-enquiry failures are
// collected so a single bad row cannot stall the rest of the batch.
func (j *AssignmentSweepJob) Run(ctx context.Context) error {
	codes, err := j.source.ListUnassignedCodes(ctx, j.batchSize)
	if err != nil {
		return fmt.Errorf("listing unassigned enquiries: %w", err)
	}
	if len(codes) == 0 {
		return nil
	}

	var errs error
	assigned := 0
	for _, code := range codes {
		decision, assignErr := j.engine.Assign(ctx, code)
		if assignErr != nil {
			errs = multierr.Append(errs, fmt.Errorf("enquiry %s: %w", code, assignErr))
			continue
		}
		if decision != nil {
			assigned++
		}
	}

	if j.logg != nil {
		logCtx := j.logg.WithFields(ctx, map[string]any{
			"scanned":  len(codes),
			"assigned": assigned,
			"failed":   len(multierr.Errors(errs)),
		})
		j.logg.Info(logCtx, "assignment sweep finished")
	}
	return errs
}
