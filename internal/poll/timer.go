package poll

import (
	"sync"
	"time"
)

// ExpiryTimer is the single-shot countdown for the active question.
// There is never more than one outstanding timer: arming cancels any
// prior one. Stop cannot win every race against an in-flight firing, so
// the coordinator also checks the fired question ID against the current
// active ID before acting.
type ExpiryTimer struct {
	mu         sync.Mutex
	timer      *time.Timer
	questionID string
}

// NewExpiryTimer creates a disarmed timer.
func NewExpiryTimer() *ExpiryTimer {
	return &ExpiryTimer{}
}

// Arm schedules fire(questionID) after d, cancelling any prior schedule.
func (t *ExpiryTimer) Arm(questionID string, d time.Duration, fire func(questionID string)) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.timer != nil {
		t.timer.Stop()
	}
	t.questionID = questionID
	t.timer = time.AfterFunc(d, func() {
		fire(questionID)
	})
}

// Disarm cancels the outstanding schedule, if any.
func (t *ExpiryTimer) Disarm() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.questionID = ""
}

// ArmedFor returns the question ID the timer is currently armed for, or
// empty when disarmed.
func (t *ExpiryTimer) ArmedFor() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.questionID
}
