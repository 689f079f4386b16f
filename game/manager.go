package game

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

var (
	// ErrSessionNotFound is returned for an owner with no running session
	ErrSessionNotFound = errors.New("session not found")
	// ErrSessionClosed is returned once the manager has shut down
	ErrSessionClosed = errors.New("session manager closed")
)

// Publisher fans session output out to watchers
type Publisher interface {
	PublishEvent(ctx context.Context, sessionID string, event Event) error
	PutSnapshot(ctx context.Context, sessionID string, data []byte) error
	DeleteSnapshot(ctx context.Context, sessionID string) error
}

// ManagerConfig controls how sessions are built and driven
type ManagerConfig struct {
	TickRate      int // ticks per second
	BroadcastRate int // snapshots per second
	Session       SessionConfig
	NewLayout     func() Layout
	Clock         Clock
	Logger        *log.Logger
}

// Manager owns every running session, one goroutine each
type Manager struct {
	ctx       context.Context
	cfg       ManagerConfig
	publisher Publisher
	log       *log.Logger

	mutex    sync.RWMutex
	sessions map[string]*runner // keyed by owner
	closed   bool
	wg       sync.WaitGroup
}

type runner struct {
	session *Session
	quit    chan struct{}
	done    chan struct{}

	mutex    sync.RWMutex
	snapshot Snapshot
}

// NewManager creates a session manager. A nil publisher drops all output.
func NewManager(ctx context.Context, publisher Publisher, cfg ManagerConfig) *Manager {
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}
	if cfg.BroadcastRate <= 0 || cfg.BroadcastRate > cfg.TickRate {
		cfg.BroadcastRate = cfg.TickRate
	}
	if cfg.NewLayout == nil {
		cfg.NewLayout = func() Layout { return NewForest(1337, 5) }
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}

	return &Manager{
		ctx:       ctx,
		cfg:       cfg,
		publisher: publisher,
		log:       cfg.Logger.WithPrefix("manager"),
		sessions:  make(map[string]*runner),
	}
}

// Open returns the owner's session ID, creating and starting a session if
// the owner has none.
func (m *Manager) Open(owner string) (string, error) {
	if owner == "" {
		return "", fmt.Errorf("owner cannot be empty")
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.closed {
		return "", ErrSessionClosed
	}
	if r, ok := m.sessions[owner]; ok {
		return r.session.ID, nil
	}

	sessionCfg := m.cfg.Session
	sessionCfg.Logger = m.cfg.Logger.WithPrefix("session")
	s := NewSession(uuid.NewString(), owner, m.cfg.NewLayout(), sessionCfg)

	r := &runner{
		session:  s,
		quit:     make(chan struct{}),
		done:     make(chan struct{}),
		snapshot: s.Snapshot(),
	}
	m.sessions[owner] = r

	m.wg.Add(1)
	go m.run(r)

	m.log.Info("session opened", "id", s.ID, "owner", owner)
	return s.ID, nil
}

// Lookup returns the session ID for owner
func (m *Manager) Lookup(owner string) (string, bool) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	r, ok := m.sessions[owner]
	if !ok {
		return "", false
	}
	return r.session.ID, true
}

// Post forwards a command to the owner's session
func (m *Manager) Post(owner string, cmd Command) error {
	r, err := m.runner(owner)
	if err != nil {
		return err
	}
	return r.session.Post(cmd)
}

// Snapshot returns the most recently broadcast state of the owner's session
func (m *Manager) Snapshot(owner string) (Snapshot, error) {
	r, err := m.runner(owner)
	if err != nil {
		return Snapshot{}, err
	}

	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return r.snapshot, nil
}

// Close stops the owner's session and removes its stored snapshot
func (m *Manager) Close(owner string) error {
	m.mutex.Lock()
	r, ok := m.sessions[owner]
	if ok {
		delete(m.sessions, owner)
	}
	m.mutex.Unlock()

	if !ok {
		return fmt.Errorf("close %q: %w", owner, ErrSessionNotFound)
	}

	close(r.quit)
	<-r.done
	m.log.Info("session closed", "id", r.session.ID, "owner", owner)

	if m.publisher == nil {
		return nil
	}
	if err := m.publisher.DeleteSnapshot(m.ctx, r.session.ID); err != nil {
		return fmt.Errorf("delete snapshot for %s: %w", r.session.ID, err)
	}
	return nil
}

// Shutdown stops every session. Open fails afterwards.
func (m *Manager) Shutdown() error {
	m.mutex.Lock()
	m.closed = true
	owners := make([]string, 0, len(m.sessions))
	for owner := range m.sessions {
		owners = append(owners, owner)
	}
	m.mutex.Unlock()

	var errs []error
	for _, owner := range owners {
		if err := m.Close(owner); err != nil {
			errs = append(errs, err)
		}
	}
	m.wg.Wait()
	return errors.Join(errs...)
}

func (m *Manager) runner(owner string) (*runner, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	if m.closed {
		return nil, ErrSessionClosed
	}
	r, ok := m.sessions[owner]
	if !ok {
		return nil, fmt.Errorf("owner %q: %w", owner, ErrSessionNotFound)
	}
	return r, nil
}

// run is the session loop
func (m *Manager) run(r *runner) {
	defer m.wg.Done()
	defer close(r.done)

	ticker := time.NewTicker(time.Second / time.Duration(m.cfg.TickRate))
	defer ticker.Stop()

	clock := NewTicker(m.cfg.Clock)
	clock.Tick()

	broadcastEvery := m.cfg.TickRate / m.cfg.BroadcastRate
	tick := 0

	for {
		select {
		case <-r.quit:
			return
		case <-m.ctx.Done():
			return
		case <-ticker.C:
			events := r.session.Tick(clock.Tick())
			tick++

			phaseChanged := m.publishEvents(r.session.ID, events)
			if phaseChanged || tick%broadcastEvery == 0 {
				m.broadcast(r)
			}
		}
	}
}

// publishEvents sends discrete events and reports whether the phase changed.
// Danger updates travel in the snapshot instead.
func (m *Manager) publishEvents(sessionID string, events []Event) bool {
	phaseChanged := false
	for _, e := range events {
		if e.Kind == EventPhase {
			phaseChanged = true
		}
		if e.Kind == EventDanger || m.publisher == nil {
			continue
		}
		if err := m.publisher.PublishEvent(m.ctx, sessionID, e); err != nil {
			m.log.Warn("publish event", "session", sessionID, "kind", e.Kind, "err", err)
		}
	}
	return phaseChanged
}

func (m *Manager) broadcast(r *runner) {
	snapshot := r.session.Snapshot()

	r.mutex.Lock()
	r.snapshot = snapshot
	r.mutex.Unlock()

	if m.publisher == nil {
		return
	}

	data, err := json.Marshal(snapshot)
	if err != nil {
		m.log.Error("marshal snapshot", "session", snapshot.ID, "err", err)
		return
	}
	if err := m.publisher.PutSnapshot(m.ctx, snapshot.ID, data); err != nil {
		m.log.Warn("store snapshot", "session", snapshot.ID, "err", err)
	}
}
