// Package prefs persists the dark-mode flag for a visitor across a fast
// local tier and an authoritative remote tier. The local tier answers
// immediately; the remote tier overrides on load and is written
// best-effort on save. No failure in this package ever reaches the user.
package prefs

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Store holds the in-memory flag for one identity and fans writes out to
// the tiers. A nil remote tier means local-only mode.
type Store struct {
	mu        sync.Mutex
	identity  string
	value     bool
	local     LocalTier
	remote    RemoteTier
	log       *zap.Logger
	listeners map[int]func(bool)
	nextID    int
}

func NewStore(local LocalTier, remote RemoteTier, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{
		local:     local,
		remote:    remote,
		log:       log,
		listeners: make(map[int]func(bool)),
	}
}

// Init loads the flag for the given identity: local first, remote
// override, default false. It always resolves; remote failures keep the
// local value. Subscribers are notified with the resolved value.
func (s *Store) Init(ctx context.Context, identity string) bool {
	s.mu.Lock()
	s.identity = identity
	if v, ok := s.local.Read(ctx, identity); ok {
		s.value = v
	}
	s.mu.Unlock()

	if s.remote != nil {
		v, ok, err := s.remote.Load(ctx, identity)
		switch {
		case err != nil:
			s.log.Warn("remote preference read failed, keeping local value",
				zap.String("identity", identity), zap.Error(err))
		case ok:
			s.mu.Lock()
			s.value = v
			s.mu.Unlock()
		}
	}

	s.mu.Lock()
	resolved := s.value
	fns := s.snapshotListeners()
	s.mu.Unlock()

	for _, fn := range fns {
		fn(resolved)
	}
	return resolved
}

// Get returns the current in-memory value of the flag.
func (s *Store) Get() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}

// Set updates the in-memory value and the local tier synchronously, then
// issues a best-effort remote merge write. The user-visible state is
// never rolled back on remote failure.
func (s *Store) Set(ctx context.Context, enabled bool) {
	s.mu.Lock()
	changed := s.value != enabled
	s.value = enabled
	identity := s.identity
	fns := s.snapshotListeners()
	s.mu.Unlock()

	if changed {
		for _, fn := range fns {
			fn(enabled)
		}
	}

	if err := s.local.Write(ctx, identity, enabled); err != nil {
		s.log.Warn("local preference write failed",
			zap.String("identity", identity), zap.Error(err))
	}

	if s.remote != nil {
		go func() {
			if err := s.remote.Save(context.Background(), identity, enabled); err != nil {
				s.log.Warn("remote preference write failed, will reconcile on next write",
					zap.String("identity", identity), zap.Error(err))
			}
		}()
	}
}

// Subscribe registers a listener for flag changes. The returned function
// removes it.
func (s *Store) Subscribe(fn func(bool)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// snapshotListeners must be called with the lock held.
func (s *Store) snapshotListeners() []func(bool) {
	fns := make([]func(bool), 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	return fns
}
