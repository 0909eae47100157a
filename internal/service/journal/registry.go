package journal

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"journal/internal/domain"
	models "journal/internal/domain/models/journal"
	journalSvc "journal/internal/domain/services/journal"
)

// Session limits used when no option overrides them
const (
	DefaultIdleTimeout = 30 * time.Minute
	DefaultMaxSessions = 8
)

// Session is one live editor owned by a user
type Session struct {
	ID      string
	UserID  string
	Editor  *Editor
	Outbox  *Outbox
	Created time.Time

	lastUsed time.Time // guarded by Registry.mu
}

// Registry holds the live editor sessions of the HTTP API. Sessions idle
// longer than the idle timeout are closed, and a user opening more than
// the per-user maximum loses their least recently used session.
type Registry struct {
	entries     journalSvc.EntryService
	staging     *Staging
	logger      *slog.Logger
	idleTimeout time.Duration
	maxSessions int
	now         func() time.Time

	mu       sync.RWMutex
	sessions map[string]*Session
}

// RegistryOption configures a Registry
type RegistryOption func(*Registry)

// WithIdleTimeout sets how long an unused session lives
func WithIdleTimeout(d time.Duration) RegistryOption {
	return func(r *Registry) {
		if d > 0 {
			r.idleTimeout = d
		}
	}
}

// WithMaxSessions caps the live sessions of one user
func WithMaxSessions(n int) RegistryOption {
	return func(r *Registry) {
		if n > 0 {
			r.maxSessions = n
		}
	}
}

// NewRegistry creates an empty registry. Staged uploads are read from staging.
func NewRegistry(entries journalSvc.EntryService, staging *Staging, logger *slog.Logger, opts ...RegistryOption) *Registry {
	r := &Registry{
		entries:     entries,
		staging:     staging,
		logger:      logger,
		idleTimeout: DefaultIdleTimeout,
		maxSessions: DefaultMaxSessions,
		now:         time.Now,
		sessions:    make(map[string]*Session),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Open creates a session for userID and loads key into it
func (r *Registry) Open(ctx context.Context, userID string, key models.DateKey) (*Session, error) {
	outbox := &Outbox{}
	now := r.now()
	s := &Session{
		ID:       uuid.NewString(),
		UserID:   userID,
		Outbox:   outbox,
		Created:  now,
		lastUsed: now,
	}
	s.Editor = NewEditor(r.entries, r.staging, outbox, outbox, r.logger.With("session_id", s.ID))

	if err := s.Editor.Load(ctx, key); err != nil {
		return nil, err
	}

	r.mu.Lock()
	dropped := r.expireLocked(now)
	dropped = append(dropped, r.evictLocked(userID)...)
	r.sessions[s.ID] = s
	r.mu.Unlock()

	r.release(dropped, "evicted")
	r.logger.Info("editor session opened", "session_id", s.ID, "user_id", userID, "date_key", key)
	return s, nil
}

// Get returns the session id of userID and marks it used. Sessions of other
// users and expired sessions are not found.
func (r *Registry) Get(userID, id string) (*Session, error) {
	now := r.now()

	r.mu.Lock()
	s, ok := r.sessions[id]
	if !ok || s.UserID != userID {
		r.mu.Unlock()
		return nil, &domain.NotFoundError{Message: "editor session not found"}
	}
	if r.expired(s, now) {
		delete(r.sessions, id)
		r.mu.Unlock()
		r.release([]*Session{s}, "expired")
		return nil, &domain.NotFoundError{Message: "editor session expired"}
	}
	s.lastUsed = now
	r.mu.Unlock()

	return s, nil
}

// Close ends a session and drops its staged uploads
func (r *Registry) Close(userID, id string) error {
	r.mu.Lock()
	s, ok := r.sessions[id]
	if !ok || s.UserID != userID {
		r.mu.Unlock()
		return &domain.NotFoundError{Message: "editor session not found"}
	}
	delete(r.sessions, id)
	r.mu.Unlock()

	r.release([]*Session{s}, "closed")
	return nil
}

// Sweep closes every expired session and returns how many were closed
func (r *Registry) Sweep() int {
	r.mu.Lock()
	dropped := r.expireLocked(r.now())
	r.mu.Unlock()

	r.release(dropped, "expired")
	return len(dropped)
}

// Run sweeps expired sessions until ctx is done
func (r *Registry) Run(ctx context.Context) {
	ticker := time.NewTicker(r.idleTimeout / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Sweep()
		}
	}
}

// Len returns the number of live sessions
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// expired reports whether s has been idle too long. A session in the middle
// of a save is never expired.
func (r *Registry) expired(s *Session, now time.Time) bool {
	return now.Sub(s.lastUsed) > r.idleTimeout && !s.Editor.Snapshot().Uploading
}

// expireLocked removes expired sessions. Caller holds mu.
func (r *Registry) expireLocked(now time.Time) []*Session {
	var dropped []*Session
	for id, s := range r.sessions {
		if r.expired(s, now) {
			delete(r.sessions, id)
			dropped = append(dropped, s)
		}
	}
	return dropped
}

// evictLocked makes room for one more session of userID by removing their
// least recently used ones. Caller holds mu.
func (r *Registry) evictLocked(userID string) []*Session {
	var owned []*Session
	for _, s := range r.sessions {
		if s.UserID == userID {
			owned = append(owned, s)
		}
	}
	if len(owned) < r.maxSessions {
		return nil
	}

	sort.Slice(owned, func(i, j int) bool { return owned[i].lastUsed.Before(owned[j].lastUsed) })
	dropped := owned[:len(owned)-r.maxSessions+1]
	for _, s := range dropped {
		delete(r.sessions, s.ID)
	}
	return dropped
}

// release discards the staged uploads of sessions already removed from the map
func (r *Registry) release(dropped []*Session, reason string) {
	for _, s := range dropped {
		if r.staging != nil {
			r.staging.Discard(s.ID)
		}
		r.logger.Info("editor session closed", "session_id", s.ID, "user_id", s.UserID, "reason", reason)
	}
}
