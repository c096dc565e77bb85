package assignment

import (
	"context"

	"github.com/tripdesk/tripdesk-backend/pkg/enums"
)

// RuleToggle is the resolved state of a single rule. Defaulted is true when
// the store had no explicit value and the fail-open default applied.
type RuleToggle struct {
	Name      enums.AssignmentRuleName
	Enabled   bool
	Defaulted bool
}

// ruleSet holds every toggle resolved once at the start of a run.
type ruleSet map[enums.AssignmentRuleName]RuleToggle

func (r ruleSet) enabled(name enums.AssignmentRuleName) bool {
	toggle, ok := r[name]
	if !ok {
		return true
	}
	return toggle.Enabled
}

// resolveToggles loads the toggle map, filling in the enabled default for
// every rule the store has no value for. A store error fails open to all
// rules enabled.
func resolveToggles(ctx context.Context, source RuleToggleSource) ruleSet {
	set := make(ruleSet, len(enums.AllAssignmentRules))
	for _, name := range enums.AllAssignmentRules {
		set[name] = RuleToggle{Name: name, Enabled: true, Defaulted: true}
	}
	if source == nil {
		return set
	}

	stored, err := source.EnabledMap(ctx, enums.AllAssignmentRules)
	if err != nil {
		return set
	}
	for name, enabled := range stored {
		if enabled == nil {
			continue
		}
		set[name] = RuleToggle{Name: name, Enabled: *enabled}
	}
	return set
}
