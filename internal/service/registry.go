package service

import (
	"context"
	"sync"
	"time"
)

type closer interface {
	Close()
}

type registryEntry[S closer] struct {
	session  S
	lastSeen time.Time
}

// registry holds sessions by id and closes them once they sit idle longer than ttl.
type registry[S closer] struct {
	mu    sync.Mutex
	items map[string]*registryEntry[S]
	ttl   time.Duration
	now   func() time.Time
}

func newRegistry[S closer](ttl time.Duration) *registry[S] {
	return &registry[S]{
		items: make(map[string]*registryEntry[S]),
		ttl:   ttl,
		now:   time.Now,
	}
}

func (r *registry[S]) put(id string, s S) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[id] = &registryEntry[S]{session: s, lastSeen: r.now()}
}

func (r *registry[S]) get(id string) (S, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.items[id]
	if !ok {
		var zero S
		return zero, false
	}
	e.lastSeen = r.now()
	return e.session, true
}

func (r *registry[S]) remove(id string) (S, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.items[id]
	if !ok {
		var zero S
		return zero, false
	}
	delete(r.items, id)
	return e.session, true
}

func (r *registry[S]) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items)
}

// sweep closes and drops every idle session and returns how many it dropped.
func (r *registry[S]) sweep() int {
	if r.ttl <= 0 {
		return 0
	}
	cutoff := r.now().Add(-r.ttl)

	r.mu.Lock()
	var expired []S
	for id, e := range r.items {
		if e.lastSeen.Before(cutoff) {
			expired = append(expired, e.session)
			delete(r.items, id)
		}
	}
	r.mu.Unlock()

	for _, s := range expired {
		s.Close()
	}
	return len(expired)
}

// closeAll closes every session.
func (r *registry[S]) closeAll() {
	r.mu.Lock()
	all := r.items
	r.items = make(map[string]*registryEntry[S])
	r.mu.Unlock()

	for _, e := range all {
		e.session.Close()
	}
}

// janitor sweeps every interval until ctx is done.
func (r *registry[S]) janitor(ctx context.Context, interval time.Duration, onSweep func(int)) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.sweep(); n > 0 && onSweep != nil {
				onSweep(n)
			}
		}
	}
}
