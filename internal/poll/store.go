package poll

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"livepoll/pkg/types"
)

// Store is the append-only log of every question posted in the session.
// Questions are never removed; completed questions stay available for
// history and re-activation. State is volatile and lost on restart.
type Store struct {
	mu        sync.RWMutex
	questions []*types.Question
	byID      map[string]*types.Question
}

// NewStore creates an empty question store.
func NewStore() *Store {
	return &Store{
		byID: make(map[string]*types.Question),
	}
}

// NewQuestion builds a question with a generated ID and zeroed tallies.
func NewQuestion(text string, options []string, creatorHandle string, now time.Time) *types.Question {
	opts := make([]*types.Option, len(options))
	for i, optText := range options {
		opts[i] = &types.Option{Text: optText, VoterIDs: []string{}}
	}
	return &types.Question{
		ID:            uuid.NewString(),
		Text:          text,
		Options:       opts,
		CreatorHandle: creatorHandle,
		CreatedAt:     now,
	}
}

// Append adds a question to the log.
func (s *Store) Append(q *types.Question) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.questions = append(s.questions, q)
	s.byID[q.ID] = q
}

// Get returns the question with the given ID.
func (s *Store) Get(id string) (*types.Question, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	q, ok := s.byID[id]
	return q, ok
}

// All returns the questions in posting order. The slice is a copy; the
// questions themselves are shared.
func (s *Store) All() []*types.Question {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]*types.Question, len(s.questions))
	copy(all, s.questions)
	return all
}

// Len returns the number of questions ever posted.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.questions)
}
