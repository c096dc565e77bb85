package assignment

import (
	"context"

	"github.com/google/uuid"
)

// nextRoundRobin walks the ordered candidate list cyclically, starting one
// past the position of lastID. A nil or unknown lastID starts the walk at
// index 0, so a cold start deterministically picks the first candidate.
func nextRoundRobin(ordered []uuid.UUID, allowed map[uuid.UUID]bool, lastID *uuid.UUID) *uuid.UUID {
	candidates := ordered
	if allowed != nil {
		candidates = make([]uuid.UUID, 0, len(ordered))
		for _, id := range ordered {
			if allowed[id] {
				candidates = append(candidates, id)
			}
		}
	}
	if len(candidates) == 0 {
		return nil
	}

	startIndex := -1
	if lastID != nil {
		for i, id := range candidates {
			if id == *lastID {
				startIndex = i
				break
			}
		}
	}

	next := candidates[(startIndex+1)%len(candidates)]
	return &next
}

// pickRoundRobin anchors the rotation on the most recent history entry among
// the candidates. History errors degrade to a cold start.
func pickRoundRobin(ctx context.Context, history HistorySource, ordered []uuid.UUID, allowed map[uuid.UUID]bool) *uuid.UUID {
	candidates := ordered
	if allowed != nil {
		candidates = make([]uuid.UUID, 0, len(ordered))
		for _, id := range ordered {
			if allowed[id] {
				candidates = append(candidates, id)
			}
		}
	}
	if len(candidates) == 0 {
		return nil
	}

	var lastID *uuid.UUID
	if history != nil {
		if found, err := history.LastAssigned(ctx, candidates); err == nil {
			lastID = found
		}
	}
	return nextRoundRobin(candidates, nil, lastID)
}

func idSet(ids []uuid.UUID) map[uuid.UUID]bool {
	set := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
