// Package summary drives on-demand plain-language summaries of listed
// publications. Each publication owns one Fetcher holding the tagged
// state of its single outstanding request.
package summary

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// State is the tag of a fetcher's current phase.
type State string

const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
	StateShown   State = "shown"
	StateFailed  State = "failed"
)

// Snapshot is an immutable view of a fetcher for the HTTP layer.
type Snapshot struct {
	State   State  `json:"state"`
	Summary string `json:"summary,omitempty"`
	Error   string `json:"error,omitempty"`
	Visible bool   `json:"visible"`
}

// Summarizer turns a prompt into a short completion. *Client satisfies it.
type Summarizer interface {
	Summarize(ctx context.Context, prompt string) (string, error)
}

// Fetcher holds the tri-state machine of one publication's summary
// request. At most one request is in flight at a time; a closed fetcher
// silently discards any late result.
type Fetcher struct {
	mu         sync.Mutex
	descriptor Descriptor
	client     Summarizer
	log        *zap.Logger

	state    State
	summary  string
	errMsg   string
	visible  bool
	closed   bool
	inflight chan struct{}
}

func NewFetcher(d Descriptor, client Summarizer, log *zap.Logger) *Fetcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Fetcher{
		descriptor: d,
		client:     client,
		log:        log,
		state:      StateIdle,
	}
}

// Request is the single user-facing action:
//
//	Idle / Failed   -> start a fetch, Loading and visible
//	Loading         -> ignored
//	Shown           -> toggle visibility, no network call
//
// It returns the snapshot after the transition; the fetch itself
// completes asynchronously.
func (f *Fetcher) Request(ctx context.Context) Snapshot {
	f.mu.Lock()

	switch f.state {
	case StateLoading:
		snap := f.snapshotLocked()
		f.mu.Unlock()
		return snap

	case StateShown:
		f.visible = !f.visible
		snap := f.snapshotLocked()
		f.mu.Unlock()
		return snap
	}

	// Idle or Failed: start a fetch.
	f.state = StateLoading
	f.visible = true
	f.errMsg = ""
	f.inflight = make(chan struct{})
	done := f.inflight
	prompt := BuildPrompt(f.descriptor)
	snap := f.snapshotLocked()
	f.mu.Unlock()

	// The fetch outlives the triggering request; the client timeout bounds it.
	fetchCtx := context.WithoutCancel(ctx)
	go func() {
		text, err := f.client.Summarize(fetchCtx, prompt)
		f.complete(text, err, done)
	}()

	return snap
}

func (f *Fetcher) complete(text string, err error, done chan struct{}) {
	defer close(done)

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		// owning item went away while loading; discard
		return
	}
	if err != nil {
		f.state = StateFailed
		f.errMsg = err.Error()
		f.log.Warn("summary request failed",
			zap.String("publication", f.descriptor.ID), zap.String("reason", f.errMsg))
		return
	}
	f.state = StateShown
	f.summary = text
}

// Snapshot returns the current state.
func (f *Fetcher) Snapshot() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snapshotLocked()
}

// Done returns a channel closed once no request is in flight. It lets the
// HTTP layer answer the happy path synchronously.
func (f *Fetcher) Done() <-chan struct{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == StateLoading && f.inflight != nil {
		return f.inflight
	}
	closed := make(chan struct{})
	close(closed)
	return closed
}

// Close discards the fetcher. A fetch completing afterwards is a no-op.
func (f *Fetcher) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
}

func (f *Fetcher) snapshotLocked() Snapshot {
	return Snapshot{
		State:   f.state,
		Summary: f.summary,
		Error:   f.errMsg,
		Visible: f.visible,
	}
}
