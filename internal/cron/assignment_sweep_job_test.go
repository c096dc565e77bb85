package cron

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"github.com/tripdesk/tripdesk-backend/internal/assignment"
	"github.com/tripdesk/tripdesk-backend/pkg/enums"
)

type stubSweepSource struct {
	codes []string
	err   error
}

func (s *stubSweepSource) ListUnassignedCodes(_ context.Context, _ int) ([]string, error) {
	return s.codes, s.err
}

type stubAssigner struct {
	decisions map[string]*assignment.Decision
	errs      map[string]error
	calls     []string
}

func (s *stubAssigner) Assign(_ context.Context, code string) (*assignment.Decision, error) {
	s.calls = append(s.calls, code)
	if err := s.errs[code]; err != nil {
		return nil, err
	}
	return s.decisions[code], nil
}

func TestAssignmentSweepJobAssignsBatch(t *testing.T) {
	engine := &stubAssigner{
		decisions: map[string]*assignment.Decision{
			"ENQ-1": {EnquiryID: uuid.New(), EnquiryCode: "ENQ-1", StaffID: uuid.New(), Method: enums.MethodRoundRobin},
		},
	}
	job := NewAssignmentSweepJob(&stubSweepSource{codes: []string{"ENQ-1", "ENQ-2"}}, engine, 10, nil)

	require.NoError(t, job.Run(context.Background()))
	assert.Equal(t, []string{"ENQ-1", "ENQ-2"}, engine.calls)
}

func TestAssignmentSweepJobCollectsPerEnquiryErrors(t *testing.T) {
	engine := &stubAssigner{
		errs: map[string]error{"ENQ-2": errors.New("boom")},
		decisions: map[string]*assignment.Decision{
			"ENQ-3": {EnquiryCode: "ENQ-3"},
		},
	}
	job := NewAssignmentSweepJob(&stubSweepSource{codes: []string{"ENQ-1", "ENQ-2", "ENQ-3"}}, engine, 10, nil)

	err := job.Run(context.Background())
	require.Error(t, err)
	require.Len(t, multierr.Errors(err), 1)
	// A failing enquiry must not block the rest of the batch.
	assert.Equal(t, []string{"ENQ-1", "ENQ-2", "ENQ-3"}, engine.calls)
}

func TestAssignmentSweepJobSourceErrorSurfaces(t *testing.T) {
	job := NewAssignmentSweepJob(&stubSweepSource{err: errors.New("db down")}, &stubAssigner{}, 10, nil)

	require.Error(t, job.Run(context.Background()))
}

func TestAssignmentSweepJobEmptyBatchIsNoop(t *testing.T) {
	engine := &stubAssigner{}
	job := NewAssignmentSweepJob(&stubSweepSource{}, engine, 10, nil)

	require.NoError(t, job.Run(context.Background()))
	assert.Empty(t, engine.calls)
}
