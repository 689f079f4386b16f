package bus

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mark3labs/hollow-pines/game"
	"github.com/nats-io/nats.go/jetstream"
)

func startBus(t *testing.T) *Bus {
	t.Helper()
	b, err := Start(context.Background(), Options{StoreDir: t.TempDir()})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	t.Cleanup(b.Close)
	return b
}

func TestSnapshotRoundTrip(t *testing.T) {
	b := startBus(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	watcher, err := b.WatchSnapshot(ctx, "abc")
	if err != nil {
		t.Fatal(err)
	}
	defer watcher.Stop()

	if err := b.PutSnapshot(ctx, "abc", []byte(`{"phase":"playing"}`)); err != nil {
		t.Fatal(err)
	}

	select {
	case entry := <-watcher.Updates():
		if entry == nil || string(entry.Value()) != `{"phase":"playing"}` {
			t.Fatalf("unexpected watch entry %v", entry)
		}
	case <-ctx.Done():
		t.Fatalf("no watch update")
	}

	got, err := b.Snapshot(ctx, "abc")
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != `{"phase":"playing"}` {
		t.Fatalf("snapshot = %s", got)
	}

	if err := b.DeleteSnapshot(ctx, "abc"); err != nil {
		t.Fatal(err)
	}
	if _, err := b.Snapshot(ctx, "abc"); !errors.Is(err, jetstream.ErrKeyNotFound) {
		t.Fatalf("err = %v, want ErrKeyNotFound", err)
	}
	if err := b.DeleteSnapshot(ctx, "missing"); err != nil {
		t.Fatalf("deleting a missing key: %v", err)
	}
}

func TestEventsFanOutPerSession(t *testing.T) {
	b := startBus(t)

	events := make(chan game.Event, 4)
	sub, err := b.SubscribeEvents("abc", events)
	if err != nil {
		t.Fatal(err)
	}
	defer sub.Unsubscribe()
	if err := b.Conn().Flush(); err != nil {
		t.Fatal(err)
	}

	ctx := context.Background()
	if err := b.PublishEvent(ctx, "other", game.Event{Kind: game.EventCatch}); err != nil {
		t.Fatal(err)
	}
	if err := b.PublishEvent(ctx, "abc", game.Event{Kind: game.EventItem, Value: 2, Detail: "rusted key"}); err != nil {
		t.Fatal(err)
	}

	select {
	case e := <-events:
		if e.Kind != game.EventItem || e.Detail != "rusted key" || e.Value != 2 {
			t.Fatalf("event = %+v", e)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("no event delivered")
	}

	select {
	case e := <-events:
		t.Fatalf("received another session's event %+v", e)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestSubject(t *testing.T) {
	if got := Subject("abc", game.EventFootstep); got != "session.abc.footstep" {
		t.Fatalf("Subject = %q", got)
	}
}
