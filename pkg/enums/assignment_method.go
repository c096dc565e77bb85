package enums

// AssignmentMethod records which cascade tier produced an assignment. The
// labels surface verbatim in history rows and the back-office UI.
type AssignmentMethod string

const (
	MethodAgentStaffRelationship AssignmentMethod = "Agent-Staff Relationship"
	MethodWorkloadBalance        AssignmentMethod = "Workload Balance"
	MethodRoundRobinTieBreak     AssignmentMethod = "Round Robin (Tie-break)"
	MethodSequenceOrderTieBreak  AssignmentMethod = "Sequence Order (Tie-break)"
	MethodRoundRobinSequenceOnly AssignmentMethod = "Round Robin (Sequence Only)"
	MethodRoundRobin             AssignmentMethod = "Round Robin"
	MethodSequenceOrder          AssignmentMethod = "Sequence Order"
	MethodManual                 AssignmentMethod = "Manual"
)

// String implements fmt.Stringer.
func (m AssignmentMethod) String() string {
	return string(m)
}
