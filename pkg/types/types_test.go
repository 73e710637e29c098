package types

import (
	"testing"
	"time"
)

func sampleQuestion() *Question {
	return &Question{
		ID:   "q1",
		Text: "favorite color?",
		Options: []*Option{
			{Text: "red", VoterIDs: []string{}},
			{Text: "blue", VoterIDs: []string{}},
		},
		CreatorHandle: "h1",
		CreatedAt:     time.Unix(1700000000, 0),
	}
}

func checkTallyInvariant(t *testing.T, q *Question) {
	t.Helper()
	for _, opt := range q.Options {
		if opt.Votes != len(opt.VoterIDs) {
			t.Errorf("option %q: votes=%d voterIds=%d", opt.Text, opt.Votes, len(opt.VoterIDs))
		}
	}
}

func TestQuestion_RecordVote(t *testing.T) {
	q := sampleQuestion()

	if err := q.RecordVote("red", "alice"); err != nil {
		t.Fatalf("first vote should succeed, got %v", err)
	}
	checkTallyInvariant(t, q)

	if q.OptionByText("red").Votes != 1 {
		t.Errorf("expected 1 vote for red, got %d", q.OptionByText("red").Votes)
	}
	if !q.HasVoted("alice") {
		t.Error("alice should be recorded as a voter")
	}
}

func TestQuestion_RecordVote_Duplicate(t *testing.T) {
	q := sampleQuestion()

	if err := q.RecordVote("red", "alice"); err != nil {
		t.Fatalf("first vote should succeed, got %v", err)
	}

	// Second vote, even for a different option, must change nothing.
	if err := q.RecordVote("blue", "alice"); err != ErrDuplicateVote {
		t.Errorf("expected ErrDuplicateVote, got %v", err)
	}
	if q.OptionByText("red").Votes != 1 || q.OptionByText("blue").Votes != 0 {
		t.Errorf("duplicate vote mutated tallies: red=%d blue=%d",
			q.OptionByText("red").Votes, q.OptionByText("blue").Votes)
	}
	checkTallyInvariant(t, q)
}

func TestQuestion_RecordVote_UnknownOption(t *testing.T) {
	q := sampleQuestion()

	if err := q.RecordVote("green", "alice"); err != ErrUnknownOption {
		t.Errorf("expected ErrUnknownOption, got %v", err)
	}
	checkTallyInvariant(t, q)
	if q.HasVoted("alice") {
		t.Error("failed vote should not record a voter")
	}
}

func TestQuestion_Voters(t *testing.T) {
	q := sampleQuestion()
	_ = q.RecordVote("red", "alice")
	_ = q.RecordVote("blue", "bob")

	voters := q.Voters()
	if len(voters) != 2 {
		t.Fatalf("expected 2 voters, got %d", len(voters))
	}
	if _, ok := voters["alice"]; !ok {
		t.Error("alice missing from voter set")
	}
	if _, ok := voters["bob"]; !ok {
		t.Error("bob missing from voter set")
	}
}

func TestActiveQuestion_ZeroValueIsIdle(t *testing.T) {
	var a ActiveQuestion
	if a.IsActive() {
		t.Error("zero value should be idle")
	}
	if a.Expired(time.Now()) {
		t.Error("idle state should not report expired")
	}
}

func TestActiveQuestion_Expired(t *testing.T) {
	start := time.Unix(1700000000, 0)
	a := ActiveQuestion{QuestionID: "q1", StartTime: start, Duration: 60 * time.Second}

	if a.Expired(start.Add(59 * time.Second)) {
		t.Error("should not be expired inside the window")
	}
	if !a.Expired(start.Add(60 * time.Second)) {
		t.Error("should be expired at the expiry instant")
	}
	if !a.Expired(start.Add(61 * time.Second)) {
		t.Error("should be expired after the window")
	}
}

func TestEnvelope_RoundTrip(t *testing.T) {
	env, err := NewEnvelope(EventChatMessage, ChatMessage{
		ParticipantID: "p1",
		DisplayName:   "Ana",
		Text:          "hello",
		Timestamp:     1700000000000,
	})
	if err != nil {
		t.Fatalf("NewEnvelope failed: %v", err)
	}
	if env.Type != EventChatMessage {
		t.Errorf("expected type %s, got %s", EventChatMessage, env.Type)
	}

	var msg ChatMessage
	if err := env.DecodePayload(&msg); err != nil {
		t.Fatalf("DecodePayload failed: %v", err)
	}
	if msg.DisplayName != "Ana" || msg.Text != "hello" {
		t.Errorf("payload mangled: %+v", msg)
	}
}

func TestEnvelope_NilPayload(t *testing.T) {
	env, err := NewEnvelope(EventQuestionDeactivated, nil)
	if err != nil {
		t.Fatalf("NewEnvelope failed: %v", err)
	}
	if len(env.Payload) != 0 {
		t.Errorf("expected empty payload, got %s", env.Payload)
	}

	var v struct{}
	if err := env.DecodePayload(&v); err != ErrEmptyPayload {
		t.Errorf("expected ErrEmptyPayload, got %v", err)
	}
}
