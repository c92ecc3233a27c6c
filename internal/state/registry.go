package state

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Registry hands out one Shopping per session id.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Shopping
}

func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]*Shopping)}
}

func (r *Registry) Get(sessionID string) *Shopping {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[sessionID]
	if !ok {
		s = NewShopping()
		r.sessions[sessionID] = s
	}
	s.markSeen()
	return s
}

func (r *Registry) Drop(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, sessionID)
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// EmptyIdle is how long a state holding no cart lines and no addresses
// survives a sweep.
const EmptyIdle = 30 * time.Minute

// Sweep drops sessions idle for longer than maxIdle, and empty ones idle for
// longer than EmptyIdle, and returns how many went.
func (r *Registry) Sweep(now time.Time, maxIdle time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	emptyIdle := min(maxIdle, EmptyIdle)
	n := 0
	for id, s := range r.sessions {
		idle, empty := s.idleSince(now)
		if idle > maxIdle || (empty && idle > emptyIdle) {
			delete(r.sessions, id)
			n++
		}
	}
	return n
}

// RunSweeper sweeps every interval until ctx is done.
func (r *Registry) RunSweeper(ctx context.Context, interval, maxIdle time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			if n := r.Sweep(now, maxIdle); n > 0 {
				slog.Debug("shopping state swept", slog.Int("dropped", n), slog.Int("live", r.Len()))
			}
		}
	}
}
