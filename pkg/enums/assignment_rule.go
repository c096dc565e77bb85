package enums

import "fmt"

// AssignmentRuleName identifies a toggleable auto-assignment rule.
type AssignmentRuleName string

const (
	RuleExpertiseMatch         AssignmentRuleName = "expertise-match"
	RuleAgentStaffRelationship AssignmentRuleName = "agent-staff-relationship"
	RuleWorkloadBalance        AssignmentRuleName = "workload-balance"
	RuleRoundRobin             AssignmentRuleName = "round-robin"
)

// AllAssignmentRules lists every rule the orchestrator consults, in cascade order.
var AllAssignmentRules = []AssignmentRuleName{
	RuleExpertiseMatch,
	RuleAgentStaffRelationship,
	RuleWorkloadBalance,
	RuleRoundRobin,
}

// String implements fmt.Stringer.
func (r AssignmentRuleName) String() string {
	return string(r)
}

// IsValid reports whether the value is a known AssignmentRuleName.
func (r AssignmentRuleName) IsValid() bool {
	for _, candidate := range AllAssignmentRules {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseAssignmentRuleName converts raw input into an AssignmentRuleName.
func ParseAssignmentRuleName(value string) (AssignmentRuleName, error) {
	for _, candidate := range AllAssignmentRules {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid assignment rule %q", value)
}
