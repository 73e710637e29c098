package poll

import (
	"testing"
	"time"

	"livepoll/pkg/types"
)

func activeFixture() (*types.Question, types.ActiveQuestion, time.Time) {
	now := time.Unix(1700000000, 0)
	q := NewQuestion("ok?", []string{"yes", "no"}, "h1", now)
	active := types.ActiveQuestion{QuestionID: q.ID, StartTime: now, Duration: 60 * time.Second}
	return q, active, now
}

func TestIsComplete_IdleIsTriviallyComplete(t *testing.T) {
	if !IsComplete(nil, types.ActiveQuestion{}, time.Now(), []string{"alice"}) {
		t.Error("no active question should be trivially complete")
	}
}

func TestIsComplete_Expired(t *testing.T) {
	q, active, now := activeFixture()
	if IsComplete(q, active, now, []string{"alice"}) {
		t.Error("fresh question with a silent respondent should be incomplete")
	}
	if !IsComplete(q, active, now.Add(60*time.Second), []string{"alice"}) {
		t.Error("elapsed window should be complete regardless of votes")
	}
}

func TestIsComplete_NoRespondents(t *testing.T) {
	q, active, now := activeFixture()
	if !IsComplete(q, active, now, nil) {
		t.Error("no connected respondents means no one left to answer")
	}
}

func TestIsComplete_AllVoted(t *testing.T) {
	q, active, now := activeFixture()
	_ = q.RecordVote("yes", "alice")

	if IsComplete(q, active, now, []string{"alice", "bob"}) {
		t.Error("bob has not voted yet")
	}

	_ = q.RecordVote("no", "bob")
	if !IsComplete(q, active, now, []string{"alice", "bob"}) {
		t.Error("every connected respondent voted")
	}
}

func TestIsComplete_DisconnectedVoterDoesNotBlock(t *testing.T) {
	q, active, now := activeFixture()
	_ = q.RecordVote("yes", "alice")
	// alice voted then disconnected; bob voted and is still here.
	_ = q.RecordVote("no", "bob")

	if !IsComplete(q, active, now, []string{"bob"}) {
		t.Error("departed voters must not block completion")
	}
}

func TestIsComplete_DuplicateConnectionsCountOnce(t *testing.T) {
	q, active, now := activeFixture()
	_ = q.RecordVote("yes", "alice")

	// alice has two live tabs; her single vote covers both.
	if !IsComplete(q, active, now, []string{"alice", "alice"}) {
		t.Error("distinct identities, not connections, decide coverage")
	}
}

func TestIsComplete_Deterministic(t *testing.T) {
	q, active, now := activeFixture()
	_ = q.RecordVote("yes", "alice")
	respondents := []string{"alice", "bob"}

	first := IsComplete(q, active, now, respondents)
	for i := 0; i < 10; i++ {
		if IsComplete(q, active, now, respondents) != first {
			t.Fatal("repeated evaluation with fixed inputs changed answer")
		}
	}
}

func TestIsComplete_MissingQuestionPanics(t *testing.T) {
	_, active, now := activeFixture()
	defer func() {
		if recover() == nil {
			t.Error("active state without its question is an invariant violation and must not be masked")
		}
	}()
	IsComplete(nil, active, now, []string{"alice"})
}
