package poll

import (
	"livepoll/pkg/types"
)

// Outbound event payloads. Field names match what the frontend already
// consumes: camelCase keys, epoch-millisecond timestamps, null for the
// inactive state.

// InitialStatePayload is the full-state snapshot sent to one
// newly-registered connection.
type InitialStatePayload struct {
	Questions               []*types.Question `json:"questions"`
	ActiveQuestionID        *string           `json:"activeQuestionId"`
	ActiveQuestionStartTime *int64            `json:"activeQuestionStartTime"`
	ActiveQuestionDuration  *int64            `json:"activeQuestionDurationMs"`
}

// QuestionCreatedPayload announces a new entry in the question log.
type QuestionCreatedPayload struct {
	Question *types.Question `json:"question"`
}

// QuestionActivatedPayload opens a voting window.
type QuestionActivatedPayload struct {
	QuestionID string `json:"questionId"`
	StartTime  int64  `json:"startTime"`
	DurationMs int64  `json:"durationMs"`
}

// ResultsUpdatedPayload carries the refreshed tallies after a counted
// vote.
type ResultsUpdatedPayload struct {
	QuestionID     string          `json:"questionId"`
	UpdatedOptions []*types.Option `json:"updatedOptions"`
}

// RejectedPayload explains a post/activate conflict to the originating
// connection only.
type RejectedPayload struct {
	Reason string `json:"reason"`
}

func newInitialStatePayload(questions []*types.Question, active types.ActiveQuestion) *InitialStatePayload {
	payload := &InitialStatePayload{Questions: questions}
	if questions == nil {
		payload.Questions = []*types.Question{}
	}
	if active.IsActive() {
		id := active.QuestionID
		start := active.StartTime.UnixMilli()
		duration := active.Duration.Milliseconds()
		payload.ActiveQuestionID = &id
		payload.ActiveQuestionStartTime = &start
		payload.ActiveQuestionDuration = &duration
	}
	return payload
}

func newQuestionActivatedPayload(active types.ActiveQuestion) *QuestionActivatedPayload {
	return &QuestionActivatedPayload{
		QuestionID: active.QuestionID,
		StartTime:  active.StartTime.UnixMilli(),
		DurationMs: active.Duration.Milliseconds(),
	}
}
