package poll

import (
	"fmt"
	"time"

	"livepoll/pkg/types"
)

// IsComplete decides whether the active question is finished. Pure: same
// inputs, same answer. The only clock dependency is the explicit expiry
// comparison against the caller-supplied now.
//
// A question is complete when any of:
//   - no question is active (trivially complete),
//   - the declared voting window has elapsed,
//   - no respondents are connected,
//   - every distinct connected respondent identity has voted.
//
// Respondents who voted and then disconnected do not block completion;
// connected respondents who never voted do.
func IsComplete(q *types.Question, active types.ActiveQuestion, now time.Time, liveRespondentIDs []string) bool {
	if !active.IsActive() {
		return true
	}

	if active.Expired(now) {
		return true
	}

	if q == nil || q.ID != active.QuestionID {
		// The active ID always references a stored question; anything
		// else is a coordinator bug, not a user-facing condition.
		panic(fmt.Sprintf("completion check: active question %q not supplied", active.QuestionID))
	}

	// Distinct identities, not connections: a respondent with two tabs
	// open counts once.
	respondents := make(map[string]struct{}, len(liveRespondentIDs))
	for _, id := range liveRespondentIDs {
		respondents[id] = struct{}{}
	}
	if len(respondents) == 0 {
		return true
	}

	voters := q.Voters()
	voted := 0
	for id := range respondents {
		if _, ok := voters[id]; ok {
			voted++
		}
	}
	return voted == len(respondents)
}
