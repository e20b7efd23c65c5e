package sessions

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"rentaid-waitlist/pkg/leadform"
	"rentaid-waitlist/pkg/models"
	"rentaid-waitlist/pkg/preference"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session expired")
)

type liveSession struct {
	session   *leadform.Session
	visitorID string
	expiresAt time.Time
}

// Registry holds the live form sessions. Idle sessions expire after ttl and
// are closed so that no reset timer outlives them.
type Registry struct {
	submitter  *leadform.Submitter
	prefs      preference.Store
	resetDelay time.Duration
	ttl        time.Duration
	log        *zap.Logger
	now        func() time.Time

	mu      sync.RWMutex
	pending map[string]*liveSession
}

func NewRegistry(
	submitter *leadform.Submitter,
	prefs preference.Store,
	resetDelay, ttl time.Duration,
	log *zap.Logger,
) *Registry {
	if prefs == nil {
		prefs = preference.NewMemoryStore()
	}
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Registry{
		submitter:  submitter,
		prefs:      prefs,
		resetDelay: resetDelay,
		ttl:        ttl,
		log:        log,
		now:        time.Now,
		pending:    make(map[string]*liveSession),
	}
}

// Create starts a session for visitorID. The stored preference is read once
// here and seeds the active variant.
func (r *Registry) Create(ctx context.Context, visitorID string) *leadform.Session {
	initial := models.VariantTenant
	variant, ok, err := r.prefs.Get(ctx, visitorID)
	switch {
	case err != nil:
		r.log.Warn("Error reading user type preference", zap.Error(err))
	case ok:
		initial = variant
	}

	session := leadform.NewSession(uuid.NewString(), initial, r.submitter, r.resetDelay)

	r.mu.Lock()
	r.pending[session.ID()] = &liveSession{
		session:   session,
		visitorID: visitorID,
		expiresAt: r.now().Add(r.ttl),
	}
	r.mu.Unlock()

	r.log.Debug("Created form session",
		zap.String("session_id", session.ID()),
		zap.String("variant", string(initial)),
	)
	return session
}

// Get returns a live session and extends its expiry
func (r *Registry) Get(id string) (*leadform.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	live, exists := r.pending[id]
	if !exists {
		return nil, ErrSessionNotFound
	}
	if r.now().After(live.expiresAt) {
		delete(r.pending, id)
		live.session.Close()
		return nil, ErrSessionExpired
	}
	live.expiresAt = r.now().Add(r.ttl)
	return live.session, nil
}

// SelectVariant switches the session's active variant and persists it as
// the visitor's preference. A failed write is logged only.
func (r *Registry) SelectVariant(ctx context.Context, id string, variant models.Variant) error {
	session, err := r.Get(id)
	if err != nil {
		return err
	}
	session.SelectVariant(variant)

	r.mu.RLock()
	visitorID := ""
	if live, ok := r.pending[id]; ok {
		visitorID = live.visitorID
	}
	r.mu.RUnlock()

	if visitorID == "" {
		return nil
	}
	if err := r.prefs.Set(ctx, visitorID, variant); err != nil {
		r.log.Warn("Error saving user type preference", zap.Error(err))
	}
	return nil
}

func (r *Registry) Remove(id string) {
	r.mu.Lock()
	live, exists := r.pending[id]
	delete(r.pending, id)
	r.mu.Unlock()

	if exists {
		live.session.Close()
	}
}

// Sweep closes and drops every expired session, returning how many went
func (r *Registry) Sweep() int {
	now := r.now()
	var expired []*leadform.Session

	r.mu.Lock()
	for id, live := range r.pending {
		if now.After(live.expiresAt) {
			expired = append(expired, live.session)
			delete(r.pending, id)
		}
	}
	r.mu.Unlock()

	for _, session := range expired {
		session.Close()
	}
	return len(expired)
}

// Run sweeps on every interval until ctx is done, then closes everything
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.closeAll()
			return
		case <-ticker.C:
			if n := r.Sweep(); n > 0 {
				r.log.Debug("Expired form sessions", zap.Int("count", n))
			}
		}
	}
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.pending)
}

func (r *Registry) closeAll() {
	r.mu.Lock()
	all := r.pending
	r.pending = make(map[string]*liveSession)
	r.mu.Unlock()

	for _, live := range all {
		live.session.Close()
	}
}
