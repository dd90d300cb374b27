package prefs

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

type fakeRemote struct {
	mu      sync.Mutex
	enabled bool
	ok      bool
	loadErr error
	saveErr error
	loads   int
	saves   []bool
	savedCh chan struct{}
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{savedCh: make(chan struct{}, 16)}
}

func (r *fakeRemote) Load(ctx context.Context, identity string) (bool, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loads++
	return r.enabled, r.ok, r.loadErr
}

func (r *fakeRemote) Save(ctx context.Context, identity string, enabled bool) error {
	r.mu.Lock()
	r.saves = append(r.saves, enabled)
	err := r.saveErr
	r.mu.Unlock()
	r.savedCh <- struct{}{}
	return err
}

func (r *fakeRemote) waitSave(t *testing.T) {
	t.Helper()
	select {
	case <-r.savedCh:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for remote save")
	}
}

func (r *fakeRemote) saveCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.saves)
}

func TestInitDefaultsFalseWhenBothTiersEmpty(t *testing.T) {
	t.Parallel()

	store := NewStore(NewMemoryTier(), newFakeRemote(), nil)
	if got := store.Init(context.Background(), "i1"); got {
		t.Fatal("expected default false")
	}
	if store.Get() {
		t.Fatal("Get() should be false after empty init")
	}
}

func TestInitAdoptsLocalValue(t *testing.T) {
	t.Parallel()

	local := NewMemoryTier()
	if err := local.Write(context.Background(), "i1", true); err != nil {
		t.Fatalf("seed local: %v", err)
	}

	store := NewStore(local, newFakeRemote(), nil)
	if got := store.Init(context.Background(), "i1"); !got {
		t.Fatal("expected local value true")
	}
}

func TestInitRemoteOverridesLocal(t *testing.T) {
	t.Parallel()

	local := NewMemoryTier()
	if err := local.Write(context.Background(), "i1", false); err != nil {
		t.Fatalf("seed local: %v", err)
	}
	remote := newFakeRemote()
	remote.enabled = true
	remote.ok = true

	store := NewStore(local, remote, nil)

	var notified []bool
	store.Subscribe(func(v bool) { notified = append(notified, v) })

	if got := store.Init(context.Background(), "i1"); !got {
		t.Fatal("remote true should override local false")
	}
	if len(notified) != 1 || !notified[0] {
		t.Fatalf("subscriber should see resolved value true, got %v", notified)
	}
}

func TestInitRemoteFailureKeepsLocal(t *testing.T) {
	t.Parallel()

	local := NewMemoryTier()
	if err := local.Write(context.Background(), "i1", true); err != nil {
		t.Fatalf("seed local: %v", err)
	}
	remote := newFakeRemote()
	remote.loadErr = errors.New("unreachable")

	store := NewStore(local, remote, nil)
	if got := store.Init(context.Background(), "i1"); !got {
		t.Fatal("remote failure must keep local value")
	}
}

func TestInitCorruptLocalTreatedAsAbsent(t *testing.T) {
	t.Parallel()

	local := NewMemoryTier()
	local.Put("i1", `"not-a-bool"`)

	store := NewStore(local, nil, nil)
	if got := store.Init(context.Background(), "i1"); got {
		t.Fatal("corrupt local value must yield the default")
	}

	// a subsequent set replaces the corrupt entry
	store.Set(context.Background(), true)
	if v, ok := local.Read(context.Background(), "i1"); !ok || !v {
		t.Fatalf("set must replace corrupt local entry, got ok=%v v=%v", ok, v)
	}
}

func TestSetUpdatesMemoryAndLocalDespiteRemoteFailure(t *testing.T) {
	t.Parallel()

	local := NewMemoryTier()
	remote := newFakeRemote()
	remote.saveErr = errors.New("unreachable")

	store := NewStore(local, remote, nil)
	store.Init(context.Background(), "i1")
	store.Set(context.Background(), true)
	remote.waitSave(t)

	if !store.Get() {
		t.Fatal("Get() must reflect the last set regardless of remote failure")
	}
	if v, ok := local.Read(context.Background(), "i1"); !ok || !v {
		t.Fatal("local tier must hold the value after set")
	}
}

func TestSetWithoutRemoteConfigSucceeds(t *testing.T) {
	t.Parallel()

	local := NewMemoryTier()
	store := NewStore(local, nil, nil)
	store.Init(context.Background(), "i1")
	store.Set(context.Background(), true)

	if !store.Get() {
		t.Fatal("local-only set must succeed")
	}
	if v, ok := local.Read(context.Background(), "i1"); !ok || !v {
		t.Fatal("local tier must hold the value")
	}
}

func TestSetNotifiesOnceForRepeatedValue(t *testing.T) {
	t.Parallel()

	store := NewStore(NewMemoryTier(), nil, nil)
	store.Init(context.Background(), "i1")

	var notified []bool
	store.Subscribe(func(v bool) { notified = append(notified, v) })

	store.Set(context.Background(), true)
	store.Set(context.Background(), true)

	if len(notified) != 1 || !notified[0] {
		t.Fatalf("expected a single notification for repeated set, got %v", notified)
	}
}

func TestSetDispatchesRemoteMergeWrite(t *testing.T) {
	t.Parallel()

	remote := newFakeRemote()
	store := NewStore(NewMemoryTier(), remote, nil)
	store.Init(context.Background(), "i1")

	store.Set(context.Background(), true)
	remote.waitSave(t)

	if remote.saveCount() != 1 {
		t.Fatalf("expected one remote save, got %d", remote.saveCount())
	}
}

func TestUnsubscribeStopsNotifications(t *testing.T) {
	t.Parallel()

	store := NewStore(NewMemoryTier(), nil, nil)
	store.Init(context.Background(), "i1")

	calls := 0
	unsub := store.Subscribe(func(bool) { calls++ })
	unsub()

	store.Set(context.Background(), true)
	if calls != 0 {
		t.Fatalf("unsubscribed listener was notified %d times", calls)
	}
}

func TestManagerReusesStorePerIdentity(t *testing.T) {
	t.Parallel()

	mgr := NewManager(NewMemoryTier(), nil, nil)
	a := mgr.ForIdentity(context.Background(), "i1")
	a.Set(context.Background(), true)

	b := mgr.ForIdentity(context.Background(), "i1")
	if a != b {
		t.Fatal("manager must reuse the store for the same identity")
	}
	if !b.Get() {
		t.Fatal("value must persist across manager lookups")
	}

	other := mgr.ForIdentity(context.Background(), "i2")
	if other.Get() {
		t.Fatal("identities must be isolated")
	}
}
