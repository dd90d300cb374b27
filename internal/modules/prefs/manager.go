package prefs

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Manager hands out one initialized Store per identity and keeps it for
// the life of the process, so the in-memory flag stays stable between
// requests of the same visitor.
type Manager struct {
	mu     sync.Mutex
	stores map[string]*managedStore
	local  LocalTier
	remote RemoteTier
	log    *zap.Logger
}

type managedStore struct {
	store *Store
	once  sync.Once
}

func NewManager(local LocalTier, remote RemoteTier, log *zap.Logger) *Manager {
	return &Manager{
		stores: make(map[string]*managedStore),
		local:  local,
		remote: remote,
		log:    log,
	}
}

// ForIdentity returns the store for an identity, initializing it on first
// access. Concurrent first accesses share a single Init.
func (m *Manager) ForIdentity(ctx context.Context, identity string) *Store {
	m.mu.Lock()
	entry, exists := m.stores[identity]
	if !exists {
		entry = &managedStore{store: NewStore(m.local, m.remote, m.log)}
		m.stores[identity] = entry
	}
	m.mu.Unlock()

	entry.once.Do(func() {
		entry.store.Init(ctx, identity)
	})
	return entry.store
}
