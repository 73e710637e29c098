package poll

import (
	"sync"

	"livepoll/pkg/types"
)

// Registry tracks currently connected participants keyed by transport
// handle. It deliberately tracks handles, not identity uniqueness: the
// same participant ID reconnecting under a new handle yields two entries
// until the old handle disconnects.
type Registry struct {
	mu           sync.RWMutex
	participants map[string]*types.Participant
}

// NewRegistry creates an empty membership registry.
func NewRegistry() *Registry {
	return &Registry{
		participants: make(map[string]*types.Participant),
	}
}

// Register inserts or overwrites the participant for a handle. Overwrite
// keeps re-registration on the same handle idempotent rather than
// corrupting the map.
func (r *Registry) Register(handle, participantID, displayName string) *types.Participant {
	p := &types.Participant{
		Handle:      handle,
		ID:          participantID,
		DisplayName: displayName,
		Presenter:   displayName == types.PresenterName,
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.participants[handle] = p
	return p
}

// Remove deletes the participant for a handle and returns it so the
// caller can decide whether a completion re-check is needed. Removing an
// absent handle is a no-op.
func (r *Registry) Remove(handle string) (*types.Participant, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.participants[handle]
	if !ok {
		return nil, false
	}
	delete(r.participants, handle)
	return p, true
}

// Get returns the participant registered for a handle.
func (r *Registry) Get(handle string) (*types.Participant, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.participants[handle]
	return p, ok
}

// LiveRespondentIDs returns the participant IDs of all connected
// non-presenters, one entry per live connection. Callers that need
// distinct identities must deduplicate.
func (r *Registry) LiveRespondentIDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.participants))
	for _, p := range r.participants {
		if !p.Presenter {
			ids = append(ids, p.ID)
		}
	}
	return ids
}

// Count returns the number of live connections.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.participants)
}
