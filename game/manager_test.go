package game

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

type fakePublisher struct {
	mutex     sync.Mutex
	events    []Event
	snapshots map[string][]byte
	deleted   []string
}

func newFakePublisher() *fakePublisher {
	return &fakePublisher{snapshots: make(map[string][]byte)}
}

func (p *fakePublisher) PublishEvent(_ context.Context, _ string, e Event) error {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	p.events = append(p.events, e)
	return nil
}

func (p *fakePublisher) PutSnapshot(_ context.Context, id string, data []byte) error {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	p.snapshots[id] = data
	return nil
}

func (p *fakePublisher) DeleteSnapshot(_ context.Context, id string) error {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	delete(p.snapshots, id)
	p.deleted = append(p.deleted, id)
	return nil
}

func (p *fakePublisher) snapshot(id string) (Snapshot, bool) {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	data, ok := p.snapshots[id]
	if !ok {
		return Snapshot{}, false
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, false
	}
	return snap, true
}

func newTestManager(t *testing.T, publisher Publisher) *Manager {
	t.Helper()
	m := NewManager(context.Background(), publisher, ManagerConfig{
		TickRate:      200,
		BroadcastRate: 50,
		NewLayout: func() Layout {
			return StaticLayout{
				Goal:         WinZone{Position: mgl64.Vec3{0, 0, -80}, Radius: WinZoneRadius},
				MonsterStart: mgl64.Vec3{60, 0, 60},
			}
		},
	})
	t.Cleanup(func() { m.Shutdown() })
	return m
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func TestManagerOpenIsPerOwner(t *testing.T) {
	m := newTestManager(t, nil)

	a, err := m.Open("alice")
	if err != nil {
		t.Fatal(err)
	}
	again, err := m.Open("alice")
	if err != nil {
		t.Fatal(err)
	}
	if a != again {
		t.Fatalf("second Open returned %s, want %s", again, a)
	}

	b, err := m.Open("bob")
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Fatalf("owners share a session")
	}

	if _, err := m.Open(""); err == nil {
		t.Fatalf("empty owner should be rejected")
	}
}

func TestManagerDrivesSessionAndBroadcasts(t *testing.T) {
	publisher := newFakePublisher()
	m := newTestManager(t, publisher)

	id, err := m.Open("alice")
	if err != nil {
		t.Fatal(err)
	}
	if err := m.Post("alice", StartCommand{}); err != nil {
		t.Fatal(err)
	}

	waitFor(t, "a playing snapshot", func() bool {
		snap, ok := publisher.snapshot(id)
		return ok && snap.Phase == PhasePlaying && snap.Elapsed > 0
	})

	waitFor(t, "the manager snapshot to catch up", func() bool {
		snap, err := m.Snapshot("alice")
		return err == nil && snap.Phase == PhasePlaying
	})

	publisher.mutex.Lock()
	var sawPhase bool
	for _, e := range publisher.events {
		if e.Kind == EventDanger {
			t.Fatalf("danger updates should ride in the snapshot, not as events")
		}
		if e.Kind == EventPhase && e.Detail == string(PhasePlaying) {
			sawPhase = true
		}
	}
	publisher.mutex.Unlock()
	if !sawPhase {
		t.Fatalf("expected a playing phase event")
	}

	if err := m.Close("alice"); err != nil {
		t.Fatal(err)
	}
	if _, ok := publisher.snapshot(id); ok {
		t.Fatalf("snapshot should be deleted on close")
	}
	if _, ok := m.Lookup("alice"); ok {
		t.Fatalf("closed session still registered")
	}
}

func TestManagerUnknownOwner(t *testing.T) {
	m := newTestManager(t, nil)

	if err := m.Post("nobody", StartCommand{}); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("Post err = %v, want ErrSessionNotFound", err)
	}
	if _, err := m.Snapshot("nobody"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("Snapshot err = %v, want ErrSessionNotFound", err)
	}
	if err := m.Close("nobody"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("Close err = %v, want ErrSessionNotFound", err)
	}
}

func TestManagerShutdown(t *testing.T) {
	m := newTestManager(t, nil)
	if _, err := m.Open("alice"); err != nil {
		t.Fatal(err)
	}

	if err := m.Shutdown(); err != nil {
		t.Fatal(err)
	}
	if _, err := m.Open("bob"); !errors.Is(err, ErrSessionClosed) {
		t.Fatalf("Open after shutdown err = %v, want ErrSessionClosed", err)
	}
}
