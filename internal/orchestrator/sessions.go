package orchestrator

import (
	"context"
	"sync"
	"time"

	"github.com/apex/log"
	"github.com/google/uuid"
)

// Sessions keeps one Controller per browser session
type Sessions struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*Controller

	factory func() *Controller
	ttl     time.Duration
	now     func() time.Time
	logger  log.Interface
}

// NewSessions creates an empty registry. factory builds the controller of a new session.
func NewSessions(factory func() *Controller, ttl time.Duration, logger log.Interface) *Sessions {
	if logger == nil {
		logger = log.Log
	}
	return &Sessions{
		sessions: make(map[uuid.UUID]*Controller),
		factory:  factory,
		ttl:      ttl,
		now:      time.Now,
		logger:   logger,
	}
}

// Get returns the controller for id, creating a new session when id is
// malformed or unknown. created reports whether a new session was made.
func (s *Sessions) Get(id string) (sid uuid.UUID, ctrl *Controller, created bool) {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	if parsed, err := uuid.Parse(id); err == nil {
		if ctrl, ok := s.sessions[parsed]; ok {
			ctrl.touch(now)
			return parsed, ctrl, false
		}
	}

	sid = uuid.New()
	ctrl = s.factory()
	ctrl.touch(now)
	s.sessions[sid] = ctrl
	s.logger.WithField("session", sid.String()).Debug("new session")
	return sid, ctrl, true
}

// Len returns the number of live sessions
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Evict drops sessions idle for longer than the TTL and returns how many were removed
func (s *Sessions) Evict() int {
	if s.ttl <= 0 {
		return 0
	}
	cutoff := s.now().Add(-s.ttl)

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, ctrl := range s.sessions {
		if ctrl.idleSince(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// Run evicts idle sessions every interval until ctx is done
func (s *Sessions) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if n := s.Evict(); n > 0 {
				s.logger.WithField("evicted", n).Debug("dropped idle sessions")
			}
		}
	}
}
