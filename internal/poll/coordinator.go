package poll

import (
	"context"
	"log"
	"sync"
	"time"

	"livepoll/pkg/types"
)

// Broadcaster is the coordinator's view of the transport: emit to all
// connections or to one. Implemented by the WebSocket gateway; keeping
// it an interface here avoids an import cycle and keeps the coordinator
// unaware of framing.
type Broadcaster interface {
	BroadcastAll(env *types.Envelope)
	SendTo(handle string, env *types.Envelope)
}

// Coordinator owns all session state: the question store, the membership
// registry, the active-question record and the expiry timer. Every
// intent — network, timer or disconnect — is applied by a single
// goroutine draining one channel, so each transition reads, decides,
// mutates and broadcasts atomically, in arrival order.
type Coordinator struct {
	intents    chan Intent
	shutdownCh chan struct{}

	store       *Store
	registry    *Registry
	timer       *ExpiryTimer
	broadcaster Broadcaster

	// active is touched only by the run goroutine (or by apply in
	// tests that never start the loop).
	active types.ActiveQuestion

	now func() time.Time

	running bool
	mu      sync.RWMutex
}

// NewCoordinator wires the coordinator to its collaborators.
func NewCoordinator(store *Store, registry *Registry, timer *ExpiryTimer, broadcaster Broadcaster) *Coordinator {
	return &Coordinator{
		intents:     make(chan Intent, 256),
		shutdownCh:  make(chan struct{}),
		store:       store,
		registry:    registry,
		timer:       timer,
		broadcaster: broadcaster,
		now:         time.Now,
	}
}

// Start begins intent processing.
func (c *Coordinator) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.running {
		c.mu.Unlock()
		return ErrCoordinatorAlreadyRunning
	}
	c.running = true
	c.mu.Unlock()

	log.Println("Starting session coordinator...")
	go c.run(ctx)
	return nil
}

// Stop shuts down intent processing and disarms the timer.
func (c *Coordinator) Stop() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.running {
		return ErrCoordinatorNotRunning
	}
	c.running = false

	log.Println("Stopping session coordinator...")
	c.timer.Disarm()

	select {
	case <-c.shutdownCh:
	default:
		close(c.shutdownCh)
	}
	return nil
}

// Dispatch queues an intent. The send blocks rather than drops: vote
// dedup and completion detection depend on strict sequential
// application, so backpressure is the correct failure mode here.
func (c *Coordinator) Dispatch(i Intent) error {
	c.mu.RLock()
	if !c.running {
		c.mu.RUnlock()
		return ErrCoordinatorNotRunning
	}
	c.mu.RUnlock()

	select {
	case c.intents <- i:
		return nil
	case <-c.shutdownCh:
		return ErrCoordinatorNotRunning
	}
}

func (c *Coordinator) run(ctx context.Context) {
	defer log.Println("Session coordinator stopped")

	for {
		select {
		case i := <-c.intents:
			c.apply(i)
		case <-c.shutdownCh:
			return
		case <-ctx.Done():
			return
		}
	}
}

// apply executes one transition. Exhaustive over the closed Intent set.
func (c *Coordinator) apply(i Intent) {
	switch intent := i.(type) {
	case RegisterParticipant:
		c.handleRegister(intent)
	case PostQuestion:
		c.handlePost(intent)
	case SubmitVote:
		c.handleVote(intent)
	case ActivateQuestion:
		c.handleActivate(intent)
	case DeactivateQuestion:
		c.handleDeactivate(intent)
	case Disconnect:
		c.handleDisconnect(intent)
	case RelayChat:
		c.handleChat(intent)
	case expiryFired:
		c.handleExpiry(intent)
	default:
		log.Printf("Dropping unknown intent type %T", i)
	}
}

func (c *Coordinator) handleRegister(intent RegisterParticipant) {
	if !types.IsValidParticipantID(intent.ParticipantID) {
		log.Printf("Registration dropped for handle %s: %v", intent.Handle, types.ErrInvalidParticipantID)
		return
	}
	if !types.IsValidDisplayName(intent.DisplayName) {
		log.Printf("Registration dropped for handle %s: %v", intent.Handle, types.ErrInvalidDisplayName)
		return
	}

	p := c.registry.Register(intent.Handle, intent.ParticipantID, intent.DisplayName)
	log.Printf("Participant registered: handle=%s id=%s name=%s presenter=%t",
		p.Handle, p.ID, p.DisplayName, p.Presenter)

	c.sendTo(intent.Handle, types.EventInitialState,
		newInitialStatePayload(c.store.All(), c.active))
}

func (c *Coordinator) handlePost(intent PostQuestion) {
	if c.active.IsActive() {
		c.sendTo(intent.Handle, types.EventPostRejected, &RejectedPayload{
			Reason: "cannot post a new question until the current one is complete (all respondents answered or timer expired)",
		})
		return
	}

	if err := types.ValidateQuestion(intent.QuestionText, intent.Options, intent.DurationSeconds); err != nil {
		c.sendTo(intent.Handle, types.EventPostRejected, &RejectedPayload{Reason: err.Error()})
		return
	}

	q := NewQuestion(intent.QuestionText, intent.Options, intent.Handle, c.now())
	c.store.Append(q)
	log.Printf("Question posted: id=%s text=%q options=%d", q.ID, q.Text, len(q.Options))

	c.openVoting(q.ID, time.Duration(intent.DurationSeconds)*time.Second)
	c.broadcast(types.EventQuestionCreated, &QuestionCreatedPayload{Question: q})
	c.broadcast(types.EventQuestionActivated, newQuestionActivatedPayload(c.active))
}

func (c *Coordinator) handleVote(intent SubmitVote) {
	// Protocol violations below are dropped silently (logged only):
	// answering a vote with an error would hand probing clients a
	// timing oracle.
	if !c.active.IsActive() || intent.QuestionID != c.active.QuestionID {
		log.Printf("Vote dropped: question %s is not active", intent.QuestionID)
		return
	}

	now := c.now()
	if now.After(c.active.ExpiresAt()) {
		log.Printf("Vote dropped: voting window closed for question %s", intent.QuestionID)
		return
	}

	q, ok := c.store.Get(intent.QuestionID)
	if !ok {
		log.Printf("Vote dropped: active question %s missing from store", intent.QuestionID)
		return
	}

	if err := q.RecordVote(intent.OptionText, intent.ParticipantID); err != nil {
		log.Printf("Vote dropped for question %s by %s: %v", intent.QuestionID, intent.ParticipantID, err)
		return
	}
	log.Printf("Vote counted: question=%s option=%q participant=%s", q.ID, intent.OptionText, intent.ParticipantID)

	c.broadcast(types.EventResultsUpdated, &ResultsUpdatedPayload{
		QuestionID:     q.ID,
		UpdatedOptions: q.Options,
	})

	if IsComplete(q, c.active, now, c.registry.LiveRespondentIDs()) {
		log.Printf("Question %s completed: all connected respondents voted", q.ID)
		c.closeVoting()
	}
}

func (c *Coordinator) handleActivate(intent ActivateQuestion) {
	if c.active.IsActive() {
		c.sendTo(intent.Handle, types.EventActivateRejected, &RejectedPayload{
			Reason: "cannot activate a question until the current one is complete (all respondents answered or timer expired)",
		})
		return
	}

	if _, ok := c.store.Get(intent.QuestionID); !ok {
		c.sendTo(intent.Handle, types.EventActivateRejected, &RejectedPayload{
			Reason: "question not found",
		})
		return
	}

	if intent.DurationSeconds <= 0 {
		c.sendTo(intent.Handle, types.EventActivateRejected, &RejectedPayload{
			Reason: types.ErrInvalidDuration.Error(),
		})
		return
	}

	log.Printf("Question re-activated: id=%s", intent.QuestionID)
	c.openVoting(intent.QuestionID, time.Duration(intent.DurationSeconds)*time.Second)
	c.broadcast(types.EventQuestionActivated, newQuestionActivatedPayload(c.active))
}

func (c *Coordinator) handleDeactivate(intent DeactivateQuestion) {
	if !c.active.IsActive() {
		return // administrative override no-ops when idle
	}
	log.Printf("Question %s deactivated by request from handle %s", c.active.QuestionID, intent.Handle)
	c.closeVoting()
}

func (c *Coordinator) handleDisconnect(intent Disconnect) {
	p, ok := c.registry.Remove(intent.Handle)
	if !ok {
		return // idempotent: already gone
	}
	log.Printf("Participant disconnected: handle=%s id=%s", p.Handle, p.ID)

	// Presenter departures never affect question state. A respondent
	// leaving can make the remaining set fully accounted for.
	if p.Presenter || !c.active.IsActive() {
		return
	}

	q, _ := c.store.Get(c.active.QuestionID)
	if IsComplete(q, c.active, c.now(), c.registry.LiveRespondentIDs()) {
		log.Printf("Question %s completed: last unanswered respondent disconnected", c.active.QuestionID)
		c.closeVoting()
	}
}

func (c *Coordinator) handleChat(intent RelayChat) {
	// Pure relay: no validation beyond framing, no retention.
	c.broadcast(types.EventChatMessage, intent.Message)
}

func (c *Coordinator) handleExpiry(intent expiryFired) {
	// A firing that lost the Disarm race carries the old question ID
	// and must not close the new question's window.
	if !c.active.IsActive() || intent.QuestionID != c.active.QuestionID {
		log.Printf("Ignoring stale expiry for question %s", intent.QuestionID)
		return
	}
	log.Printf("Question %s timer expired", intent.QuestionID)
	c.closeVoting()
}

// openVoting sets the active record and arms the timer in the same
// transition, so the old timer and the new state never coexist.
func (c *Coordinator) openVoting(questionID string, duration time.Duration) {
	c.active = types.ActiveQuestion{
		QuestionID: questionID,
		StartTime:  c.now(),
		Duration:   duration,
	}
	c.timer.Arm(questionID, duration, c.onExpiry)
}

// closeVoting clears the active record, disarms the timer and announces
// the deactivation. State mutation strictly precedes the broadcast.
func (c *Coordinator) closeVoting() {
	c.timer.Disarm()
	c.active = types.ActiveQuestion{}
	c.broadcast(types.EventQuestionDeactivated, nil)
}

// onExpiry runs on the timer goroutine and re-enters through the intent
// channel so expiry is serialized like every other transition.
func (c *Coordinator) onExpiry(questionID string) {
	if err := c.Dispatch(expiryFired{QuestionID: questionID}); err != nil {
		log.Printf("Expiry signal for question %s not delivered: %v", questionID, err)
	}
}

func (c *Coordinator) broadcast(eventType string, payload interface{}) {
	env, err := types.NewEnvelope(eventType, payload)
	if err != nil {
		log.Printf("Failed to encode %s event: %v", eventType, err)
		return
	}
	c.broadcaster.BroadcastAll(env)
}

func (c *Coordinator) sendTo(handle, eventType string, payload interface{}) {
	env, err := types.NewEnvelope(eventType, payload)
	if err != nil {
		log.Printf("Failed to encode %s event: %v", eventType, err)
		return
	}
	c.broadcaster.SendTo(handle, env)
}
