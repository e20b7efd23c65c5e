package leadform

import (
	"context"
	"sync"
	"time"

	"rentaid-waitlist/pkg/models"
)

// Session is one visitor's form instance: both form records, the gate and
// the post-success reset.
type Session struct {
	id         string
	resetDelay time.Duration
	submitter  *Submitter

	mu        sync.Mutex
	state     FormState
	submitted bool
	closed    bool

	gate  Gate
	reset ResetTimer
}

// Snapshot is a read-only view of a session
type Snapshot struct {
	ID           string    `json:"id"`
	Form         FormState `json:"form"`
	Submitted    bool      `json:"submitted"`
	Submitting   bool      `json:"submitting"`
	ResetPending bool      `json:"resetPending"`
}

// Result is the terminal outcome of one submit attempt
type Result struct {
	ID      string         `json:"id,omitempty"`
	Variant models.Variant `json:"variant,omitempty"`
	Message string         `json:"message"`
	Err     error          `json:"-"`
}

func (r Result) OK() bool {
	return r.Err == nil
}

// NewSession creates an empty session with the form hidden and initial as the active variant
func NewSession(id string, initial models.Variant, submitter *Submitter, resetDelay time.Duration) *Session {
	if resetDelay <= 0 {
		resetDelay = DefaultResetDelay
	}
	return &Session{
		id:         id,
		resetDelay: resetDelay,
		submitter:  submitter,
		state:      NewFormState(initial),
	}
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) SetField(variant models.Variant, field string, value interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.SetField(variant, field, value)
}

// SelectVariant switches the active variant; both records are kept
func (s *Session) SelectVariant(variant models.Variant) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Select(variant)
}

// Open shows the form for variant
func (s *Session) Open(variant models.Variant) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Select(variant)
	s.state.Open = true
}

// Dismiss closes the form, drops a pending reset and discards what was entered
func (s *Session) Dismiss() {
	s.reset.Cancel()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearLocked()
}

// Close tears the session down. No reset fires afterwards.
func (s *Session) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.reset.Cancel()
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		ID:           s.id,
		Form:         s.state,
		Submitted:    s.submitted,
		Submitting:   s.gate.InFlight(),
		ResetPending: s.reset.Pending(),
	}
}

// Submit sends the active form. Only one submit runs at a time; a second
// call while one is in flight returns ErrSubmissionInFlight and does nothing.
// Failures leave the form open with its input intact.
func (s *Session) Submit(ctx context.Context) Result {
	if !s.gate.TryAcquire() {
		return Result{Err: ErrSubmissionInFlight, Message: UserMessage(ErrSubmissionInFlight)}
	}
	defer s.gate.Release()

	s.mu.Lock()
	variant := s.state.Active
	form := s.state.Record(variant)
	s.mu.Unlock()

	id, err := s.submitter.Submit(ctx, form)
	if err != nil {
		return Result{Variant: variant, Message: UserMessage(err), Err: err}
	}

	s.mu.Lock()
	s.submitted = true
	// no reset is scheduled once Close has run
	if !s.closed {
		s.reset.Schedule(s.resetDelay, s.clearAfterSuccess)
	}
	s.mu.Unlock()

	return Result{ID: id, Variant: variant, Message: SuccessMessage(variant)}
}

func (s *Session) clearAfterSuccess() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearLocked()
}

func (s *Session) clearLocked() {
	s.submitted = false
	s.state.Open = false
	s.state.Reset()
}
