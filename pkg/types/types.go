package types

import (
	"time"
)

// Inbound intent type tags. One tag per client-originated intent; the
// disconnect intent is transport-driven and never appears on the wire.
const (
	IntentRegisterParticipant = "register_participant"
	IntentPostQuestion        = "post_question"
	IntentSubmitVote          = "submit_vote"
	IntentActivateQuestion    = "activate_question"
	IntentDeactivateQuestion  = "deactivate_question"
	IntentChatMessage         = "chat_message"
)

// Outbound event type tags.
const (
	EventInitialState        = "initial_state"
	EventQuestionCreated     = "question_created"
	EventQuestionActivated   = "question_activated"
	EventResultsUpdated      = "results_updated"
	EventQuestionDeactivated = "question_deactivated"
	EventPostRejected        = "post_rejected"
	EventActivateRejected    = "activate_rejected"
	EventChatMessage         = "chat_message"
)

// PresenterName is the display name that marks a connection as the
// presenter. Identity is self-declared; there is no other signal.
const PresenterName = "Teacher"

// Participant is a live connection's declared identity.
// Handle is transport-assigned and unique per connection; ID is
// client-supplied and may legitimately reappear under a new handle after
// a reconnect.
type Participant struct {
	Handle      string `json:"handle"`
	ID          string `json:"participantId"`
	DisplayName string `json:"displayName"`
	Presenter   bool   `json:"isPresenter"`
}

// Option is one answer choice on a question. Votes must always equal
// len(VoterIDs); RecordVote on the owning Question is the only mutation
// path.
type Option struct {
	Text     string   `json:"text"`
	Votes    int      `json:"votes"`
	VoterIDs []string `json:"voterIds"`
}

// Question is an entry in the append-only question log. Immutable after
// creation except for option vote tallies.
type Question struct {
	ID            string    `json:"id"`
	Text          string    `json:"text"`
	Options       []*Option `json:"options"`
	CreatorHandle string    `json:"creatorId"`
	CreatedAt     time.Time `json:"timestamp"`
}

// OptionByText returns the option with the given text, or nil.
func (q *Question) OptionByText(text string) *Option {
	for _, opt := range q.Options {
		if opt.Text == text {
			return opt
		}
	}
	return nil
}

// HasVoted reports whether the participant appears in any option's voter
// list for this question.
func (q *Question) HasVoted(participantID string) bool {
	for _, opt := range q.Options {
		for _, id := range opt.VoterIDs {
			if id == participantID {
				return true
			}
		}
	}
	return false
}

// Voters returns the combined voter ID set across all options.
func (q *Question) Voters() map[string]struct{} {
	voters := make(map[string]struct{})
	for _, opt := range q.Options {
		for _, id := range opt.VoterIDs {
			voters[id] = struct{}{}
		}
	}
	return voters
}

// RecordVote applies a single vote. This is the only path that mutates an
// option, which is what keeps Votes == len(VoterIDs) an invariant rather
// than a convention.
func (q *Question) RecordVote(optionText, participantID string) error {
	if q.HasVoted(participantID) {
		return ErrDuplicateVote
	}
	opt := q.OptionByText(optionText)
	if opt == nil {
		return ErrUnknownOption
	}
	opt.Votes++
	opt.VoterIDs = append(opt.VoterIDs, participantID)
	return nil
}

// ActiveQuestion is the coordinator's ternary active-state record. The
// zero value means no question is active; a non-zero QuestionID implies
// StartTime and Duration are both set.
type ActiveQuestion struct {
	QuestionID string
	StartTime  time.Time
	Duration   time.Duration
}

// IsActive reports whether a question is currently open for voting.
func (a ActiveQuestion) IsActive() bool {
	return a.QuestionID != ""
}

// ExpiresAt returns the declared expiry instant.
func (a ActiveQuestion) ExpiresAt() time.Time {
	return a.StartTime.Add(a.Duration)
}

// Expired reports whether the voting window has closed as of now. The
// window closes at the expiry instant itself, matching the timer's view;
// late-vote checks are stricter and use After directly.
func (a ActiveQuestion) Expired(now time.Time) bool {
	return a.IsActive() && !now.Before(a.ExpiresAt())
}

// ChatMessage is a relay-only payload. The coordinator retransmits it
// verbatim and retains nothing.
type ChatMessage struct {
	ParticipantID string `json:"participantId"`
	DisplayName   string `json:"displayName"`
	Text          string `json:"text"`
	Timestamp     int64  `json:"timestamp"`
}
