package assignment

import (
	"context"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tripdesk/tripdesk-backend/pkg/db/models"
	"github.com/tripdesk/tripdesk-backend/pkg/enums"
	"github.com/tripdesk/tripdesk-backend/pkg/logger"
	"github.com/tripdesk/tripdesk-backend/pkg/metrics"
)

const defaultLockTTL = 30 * time.Second

// Decision describes a completed assignment.
type Decision struct {
	EnquiryID   uuid.UUID
	EnquiryCode string
	StaffID     uuid.UUID
	Method      enums.AssignmentMethod
}

// Engine runs the prioritized assignment cascade for a single enquiry:
// agent-staff relationship, then workload balance, then round robin, with
// the plain sequence order as the deepest fallback. Rule toggles gate each
// tier and fail open when absent.
type Engine struct {
	enquiries  EnquiryStore
	resolver   *directoryResolver
	relations  RelationSource
	history    HistorySource
	toggles    RuleToggleSource
	locks      Locker
	metrics    *metrics.AssignmentMetrics
	logg       *logger.Logger
	assignedBy string
	lockTTL    time.Duration
}

// Params collects the engine collaborators.
type Params struct {
	Enquiries   EnquiryStore
	Sequence    SequenceSource
	Directories []StaffDirectory
	Countries   CountryResolver
	Workload    WorkloadSource
	Relations   RelationSource
	History     HistorySource
	Toggles     RuleToggleSource
	Locks       Locker
	Metrics     *metrics.AssignmentMetrics
	Logger      *logger.Logger
	AssignedBy  string
	LockTTL     time.Duration
}

// NewEngine wires the cascade with its collaborators.
func NewEngine(p Params) *Engine {
	if p.LockTTL <= 0 {
		p.LockTTL = defaultLockTTL
	}
	if p.Logger == nil {
		p.Logger = logger.New(logger.Options{ServiceName: "assignment", Level: zerolog.Disabled, Output: io.Discard})
	}
	if p.AssignedBy == "" {
		p.AssignedBy = "auto-assign"
	}
	return &Engine{
		enquiries: p.Enquiries,
		resolver: &directoryResolver{
			sequence:    p.Sequence,
			directories: p.Directories,
			countries:   p.Countries,
			workload:    p.Workload,
			logg:        p.Logger,
		},
		relations:  p.Relations,
		history:    p.History,
		toggles:    p.Toggles,
		locks:      p.Locks,
		metrics:    p.Metrics,
		logg:       p.Logger,
		assignedBy: p.AssignedBy,
		lockTTL:    p.LockTTL,
	}
}

// Assign loads the enquiry and runs the cascade. A nil decision with a nil
// error means no assignment happened: enquiry missing or already assigned,
// empty roster, or another run holding the lock. At most one write-back
// occurs per invocation.
func (e *Engine) Assign(ctx context.Context, enquiryCode string) (*Decision, error) {
	started := time.Now()
	ctx = e.logg.WithEnquiryCode(ctx, enquiryCode)

	enquiry, err := e.enquiries.FindByCode(ctx, enquiryCode)
	if err != nil || enquiry == nil {
		if err != nil {
			e.logg.Warn(e.logg.WithField(ctx, "error", err.Error()), "enquiry lookup failed, skipping assignment")
		}
		e.observe("skipped", started)
		return nil, nil
	}
	if enquiry.AssignedStaffID != nil || enquiry.Status != enums.EnquiryStatusNew {
		e.logg.Debug(ctx, "enquiry not assignable, skipping")
		e.observe("skipped", started)
		return nil, nil
	}

	if e.locks != nil {
		key := e.locks.AssignmentLockKey(enquiry.ID.String())
		acquired, lockErr := e.locks.SetNX(ctx, key, 1, e.lockTTL)
		if lockErr != nil {
			e.logg.Warn(e.logg.WithField(ctx, "error", lockErr.Error()), "assignment lock unavailable, proceeding unguarded")
		} else if !acquired {
			e.logg.Debug(ctx, "assignment already in progress, skipping")
			e.observe("locked", started)
			return nil, nil
		} else {
			defer func() {
				_ = e.locks.Del(context.WithoutCancel(ctx), key)
			}()
		}
	}

	toggles := resolveToggles(ctx, e.toggles)
	country := strings.TrimSpace(enquiry.DestinationCountry)

	var decision *Decision
	if country == "" || !toggles.enabled(enums.RuleExpertiseMatch) {
		decision, err = e.assignBySequence(ctx, enquiry, toggles, country)
	} else {
		decision, err = e.assignByExpertise(ctx, enquiry, toggles, country)
	}
	if err != nil {
		e.observe("error", started)
		return nil, err
	}
	if decision == nil {
		e.metrics.IncNoCandidate()
		e.observe("no_candidate", started)
		return nil, nil
	}
	e.observe("assigned", started)
	return decision, nil
}

// assignBySequence handles enquiries without a usable destination country,
// or with expertise matching switched off. Candidates come from the raw
// enabled sequence.
func (e *Engine) assignBySequence(ctx context.Context, enquiry *models.Enquiry, toggles ruleSet, country string) (*Decision, error) {
	seqIDs := e.sequenceIDs(ctx)
	if len(seqIDs) == 0 {
		e.logg.Debug(ctx, "staff sequence empty, nothing to assign")
		return nil, nil
	}

	if toggles.enabled(enums.RuleAgentStaffRelationship) {
		if staffID := e.findRelation(ctx, enquiry.AgentRef(), seqIDs); staffID != nil {
			return e.assignTo(ctx, enquiry, *staffID, enums.MethodAgentStaffRelationship)
		}
	}

	if toggles.enabled(enums.RuleWorkloadBalance) {
		eligible := e.resolver.EligibleStaff(ctx, country, false)
		if decision, done, err := e.assignByWorkload(ctx, enquiry, toggles, eligible); done {
			return decision, err
		}
	}

	method := enums.MethodSequenceOrder
	if toggles.enabled(enums.RuleRoundRobin) {
		method = enums.MethodRoundRobinSequenceOnly
	}
	if pick := pickRoundRobin(ctx, e.history, seqIDs, nil); pick != nil {
		return e.assignTo(ctx, enquiry, *pick, method)
	}
	return nil, nil
}

// assignByExpertise handles enquiries with a known destination and expertise
// matching on. Candidates are restricted to staff operating in that country.
func (e *Engine) assignByExpertise(ctx context.Context, enquiry *models.Enquiry, toggles ruleSet, country string) (*Decision, error) {
	eligible := e.resolver.EligibleStaff(ctx, country, true)
	if len(eligible) == 0 {
		seqIDs := e.sequenceIDs(ctx)
		if len(seqIDs) == 0 {
			return nil, nil
		}
		method := enums.MethodSequenceOrder
		if toggles.enabled(enums.RuleRoundRobin) {
			method = enums.MethodRoundRobinSequenceOnly
		}
		if pick := pickRoundRobin(ctx, e.history, seqIDs, nil); pick != nil {
			return e.assignTo(ctx, enquiry, *pick, method)
		}
		return nil, nil
	}

	eligibleIDs := eligibleIDs(eligible)

	if toggles.enabled(enums.RuleAgentStaffRelationship) {
		if staffID := e.findRelation(ctx, enquiry.AgentRef(), eligibleIDs); staffID != nil {
			return e.assignTo(ctx, enquiry, *staffID, enums.MethodAgentStaffRelationship)
		}
	}

	if toggles.enabled(enums.RuleWorkloadBalance) {
		if decision, done, err := e.assignByWorkload(ctx, enquiry, toggles, eligible); done {
			return decision, err
		}
	}

	if toggles.enabled(enums.RuleRoundRobin) {
		if pick := pickRoundRobin(ctx, e.history, eligibleIDs, nil); pick != nil {
			return e.assignTo(ctx, enquiry, *pick, enums.MethodRoundRobin)
		}
		return nil, nil
	}
	if pick := pickRoundRobin(ctx, e.history, e.sequenceIDs(ctx), nil); pick != nil {
		return e.assignTo(ctx, enquiry, *pick, enums.MethodSequenceOrder)
	}
	return nil, nil
}

// assignByWorkload ranks the pool by workload. A unique minimum wins
// outright; ties go to round robin within the tied set, or to the sequence
// rotation when round robin is off. done reports whether this tier decided.
func (e *Engine) assignByWorkload(ctx context.Context, enquiry *models.Enquiry, toggles ruleSet, eligible []EligibleStaff) (*Decision, bool, error) {
	if len(eligible) == 0 {
		return nil, false, nil
	}

	ranked := make([]EligibleStaff, len(eligible))
	copy(ranked, eligible)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].WorkloadCount < ranked[j].WorkloadCount
	})

	minCount := ranked[0].WorkloadCount
	tied := make([]uuid.UUID, 0, len(ranked))
	for _, candidate := range ranked {
		if candidate.WorkloadCount != minCount {
			break
		}
		tied = append(tied, candidate.StaffID)
	}

	if len(tied) == 1 {
		decision, err := e.assignTo(ctx, enquiry, tied[0], enums.MethodWorkloadBalance)
		return decision, true, err
	}

	allowed := idSet(tied)
	if toggles.enabled(enums.RuleRoundRobin) {
		if pick := pickRoundRobin(ctx, e.history, eligibleIDs(eligible), allowed); pick != nil {
			decision, err := e.assignTo(ctx, enquiry, *pick, enums.MethodRoundRobinTieBreak)
			return decision, true, err
		}
		return nil, false, nil
	}
	if pick := pickRoundRobin(ctx, e.history, e.sequenceIDs(ctx), allowed); pick != nil {
		decision, err := e.assignTo(ctx, enquiry, *pick, enums.MethodSequenceOrderTieBreak)
		return decision, true, err
	}
	return nil, false, nil
}

// assignTo performs the single write-back and records the decision.
func (e *Engine) assignTo(ctx context.Context, enquiry *models.Enquiry, staffID uuid.UUID, method enums.AssignmentMethod) (*Decision, error) {
	if err := e.enquiries.Assign(ctx, enquiry.ID, staffID, e.assignedBy, method, true); err != nil {
		return nil, err
	}

	logCtx := e.logg.WithStaffID(ctx, staffID.String())
	logCtx = e.logg.WithRule(logCtx, method.String())
	e.logg.Info(logCtx, "enquiry assigned")
	e.metrics.IncAssigned(method.String())

	return &Decision{
		EnquiryID:   enquiry.ID,
		EnquiryCode: enquiry.EnquiryCode,
		StaffID:     staffID,
		Method:      method,
	}, nil
}

// sequenceIDs returns the enabled sequence as ordered staff IDs. Errors
// degrade to an empty list.
func (e *Engine) sequenceIDs(ctx context.Context) []uuid.UUID {
	entries, err := e.resolver.enabledSequence(ctx)
	if err != nil {
		e.logg.Warn(e.logg.WithField(ctx, "error", err.Error()), "fetching staff sequence failed")
		return nil
	}
	ids := make([]uuid.UUID, 0, len(entries))
	for _, entry := range entries {
		ids = append(ids, entry.StaffID)
	}
	return ids
}

// findRelation looks for an existing agent pairing within the candidate set.
// Errors and blank agent references resolve to no relation.
func (e *Engine) findRelation(ctx context.Context, agentRef string, staffIDs []uuid.UUID) *uuid.UUID {
	if e.relations == nil || strings.TrimSpace(agentRef) == "" || len(staffIDs) == 0 {
		return nil
	}
	staffID, err := e.relations.FindForAgent(ctx, agentRef, staffIDs)
	if err != nil {
		e.logg.Warn(e.logg.WithField(ctx, "error", err.Error()), "agent relation lookup failed")
		return nil
	}
	return staffID
}

func (e *Engine) observe(outcome string, started time.Time) {
	e.metrics.ObserveDuration(outcome, time.Since(started))
}

func eligibleIDs(pool []EligibleStaff) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(pool))
	for _, candidate := range pool {
		ids = append(ids, candidate.StaffID)
	}
	return ids
}
