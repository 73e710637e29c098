package poll

import (
	"livepoll/pkg/types"
)

// Intent is the closed set of operations the coordinator accepts. The
// unexported marker keeps the set closed to this package, so the
// coordinator's type switch is exhaustive over everything that can
// reach it.
type Intent interface {
	isIntent()
}

// RegisterParticipant declares a connection's identity and role.
type RegisterParticipant struct {
	Handle        string
	ParticipantID string
	DisplayName   string
}

// PostQuestion creates a new question and opens it for voting.
type PostQuestion struct {
	Handle          string
	QuestionText    string
	Options         []string
	DurationSeconds int
}

// SubmitVote records one respondent's answer to the active question.
type SubmitVote struct {
	Handle        string
	QuestionID    string
	OptionText    string
	ParticipantID string
}

// ActivateQuestion reopens voting on an existing question.
type ActivateQuestion struct {
	Handle          string
	QuestionID      string
	DurationSeconds int
}

// DeactivateQuestion is the administrative override: close voting
// unconditionally.
type DeactivateQuestion struct {
	Handle string
}

// Disconnect is transport-driven: a connection went away.
type Disconnect struct {
	Handle string
}

// RelayChat asks for a verbatim chat broadcast.
type RelayChat struct {
	Handle  string
	Message types.ChatMessage
}

// expiryFired is the timer's completion signal. Internal only.
type expiryFired struct {
	QuestionID string
}

func (RegisterParticipant) isIntent() {}
func (PostQuestion) isIntent()        {}
func (SubmitVote) isIntent()          {}
func (ActivateQuestion) isIntent()    {}
func (DeactivateQuestion) isIntent()  {}
func (Disconnect) isIntent()          {}
func (RelayChat) isIntent()           {}
func (expiryFired) isIntent()         {}
