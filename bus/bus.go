package bus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mark3labs/hollow-pines/game"
	"github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

const (
	// DefaultBucket holds the live snapshot of every running session
	DefaultBucket = "sessions"

	subjectPrefix = "session"
)

// Options configures the embedded broker
type Options struct {
	StoreDir     string
	Bucket       string
	ReadyTimeout time.Duration
}

// Bus is an in-process NATS server with a JetStream KV bucket for session
// snapshots and core subjects for session events.
type Bus struct {
	ns  *server.Server
	nc  *nats.Conn
	js  jetstream.JetStream
	kv  jetstream.KeyValue
	log *log.Logger

	ownStore string
}

var _ game.Publisher = (*Bus)(nil)

// Start boots the server, connects to it in process and creates the bucket
func Start(ctx context.Context, opts Options) (*Bus, error) {
	if opts.Bucket == "" {
		opts.Bucket = DefaultBucket
	}
	if opts.ReadyTimeout <= 0 {
		opts.ReadyTimeout = 5 * time.Second
	}

	b := &Bus{log: log.WithPrefix("bus")}

	if opts.StoreDir == "" {
		dir, err := os.MkdirTemp("", "hollow-pines-nats-*")
		if err != nil {
			return nil, fmt.Errorf("create store dir: %w", err)
		}
		opts.StoreDir = dir
		b.ownStore = dir
	}

	ns, err := server.NewServer(&server.Options{
		ServerName: "hollow-pines",
		DontListen: true,
		JetStream:  true,
		StoreDir:   opts.StoreDir,
		NoSigs:     true,
		NoLog:      true,
	})
	if err != nil {
		b.removeStore()
		return nil, fmt.Errorf("create nats server: %w", err)
	}
	b.ns = ns

	ns.Start()
	if !ns.ReadyForConnections(opts.ReadyTimeout) {
		b.Close()
		return nil, errors.New("nats server not ready for connections")
	}

	nc, err := nats.Connect("", nats.InProcessServer(ns), nats.Name("hollow-pines"))
	if err != nil {
		b.Close()
		return nil, fmt.Errorf("connect to nats: %w", err)
	}
	b.nc = nc

	js, err := jetstream.New(nc)
	if err != nil {
		b.Close()
		return nil, fmt.Errorf("create jetstream context: %w", err)
	}
	b.js = js

	kv, err := js.CreateOrUpdateKeyValue(ctx, jetstream.KeyValueConfig{
		Bucket:      opts.Bucket,
		Description: "live session snapshots",
		History:     1,
		Storage:     jetstream.MemoryStorage,
	})
	if err != nil {
		b.Close()
		return nil, fmt.Errorf("create kv bucket %s: %w", opts.Bucket, err)
	}
	b.kv = kv

	b.log.Info("NATS server started", "bucket", opts.Bucket, "store", opts.StoreDir)
	return b, nil
}

// Conn exposes the client connection
func (b *Bus) Conn() *nats.Conn { return b.nc }

// Subject is the subject a session event of kind is published on
func Subject(sessionID string, kind game.EventKind) string {
	return fmt.Sprintf("%s.%s.%s", subjectPrefix, sessionID, kind)
}

// PublishEvent sends a session event on its subject
func (b *Bus) PublishEvent(_ context.Context, sessionID string, event game.Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	if err := b.nc.Publish(Subject(sessionID, event.Kind), data); err != nil {
		return fmt.Errorf("publish %s: %w", event.Kind, err)
	}
	return nil
}

// PutSnapshot stores the latest session snapshot
func (b *Bus) PutSnapshot(ctx context.Context, sessionID string, data []byte) error {
	if _, err := b.kv.Put(ctx, sessionID, data); err != nil {
		return fmt.Errorf("put snapshot: %w", err)
	}
	return nil
}

// DeleteSnapshot removes a session's snapshot
func (b *Bus) DeleteSnapshot(ctx context.Context, sessionID string) error {
	if err := b.kv.Delete(ctx, sessionID); err != nil && !errors.Is(err, jetstream.ErrKeyNotFound) {
		return fmt.Errorf("delete snapshot: %w", err)
	}
	return nil
}

// Snapshot reads the stored snapshot for a session
func (b *Bus) Snapshot(ctx context.Context, sessionID string) ([]byte, error) {
	entry, err := b.kv.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return entry.Value(), nil
}

// WatchSnapshot creates a watcher for changes to one session's snapshot.
// The caller owns the watcher and must Stop it.
func (b *Bus) WatchSnapshot(ctx context.Context, sessionID string) (jetstream.KeyWatcher, error) {
	watcher, err := b.kv.Watch(ctx, sessionID, jetstream.UpdatesOnly())
	if err != nil {
		return nil, fmt.Errorf("failed to create KV watcher: %w", err)
	}
	return watcher, nil
}

// SubscribeEvents delivers every event for a session to ch until the
// subscription is removed.
func (b *Bus) SubscribeEvents(sessionID string, ch chan<- game.Event) (*nats.Subscription, error) {
	return b.nc.Subscribe(fmt.Sprintf("%s.%s.>", subjectPrefix, sessionID), func(msg *nats.Msg) {
		var event game.Event
		if err := json.Unmarshal(msg.Data, &event); err != nil {
			b.log.Warn("bad event payload", "subject", msg.Subject, "err", err)
			return
		}
		select {
		case ch <- event:
		default:
			b.log.Debug("event dropped for slow watcher", "subject", msg.Subject)
		}
	})
}

// Close drains the connection and shuts the server down
func (b *Bus) Close() {
	if b.nc != nil {
		if err := b.nc.Drain(); err != nil {
			b.log.Warn("drain nats connection", "err", err)
		}
	}
	if b.ns != nil {
		b.ns.Shutdown()
		b.ns.WaitForShutdown()
	}
	b.removeStore()
}

func (b *Bus) removeStore() {
	if b.ownStore == "" {
		return
	}
	if err := os.RemoveAll(b.ownStore); err != nil {
		b.log.Warn("remove store dir", "dir", b.ownStore, "err", err)
	}
	b.ownStore = ""
}
