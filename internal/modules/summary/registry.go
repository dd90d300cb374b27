package summary

import (
	"sync"

	"go.uber.org/zap"
)

// Registry owns one fetcher per publication. Fetchers are independent;
// there is no shared queue.
type Registry struct {
	mu       sync.Mutex
	fetchers map[string]*Fetcher
	client   Summarizer
	log      *zap.Logger
}

func NewRegistry(client Summarizer, log *zap.Logger) *Registry {
	return &Registry{
		fetchers: make(map[string]*Fetcher),
		client:   client,
		log:      log,
	}
}

// ForPublication returns the fetcher for a publication, creating it on
// first access.
func (r *Registry) ForPublication(d Descriptor) *Fetcher {
	r.mu.Lock()
	defer r.mu.Unlock()
	if f, exists := r.fetchers[d.ID]; exists {
		return f
	}
	f := NewFetcher(d, r.client, r.log)
	r.fetchers[d.ID] = f
	return f
}

// Evict closes and removes a publication's fetcher; a fetch still in
// flight discards its result.
func (r *Registry) Evict(id string) {
	r.mu.Lock()
	f, exists := r.fetchers[id]
	delete(r.fetchers, id)
	r.mu.Unlock()
	if exists {
		f.Close()
	}
}
