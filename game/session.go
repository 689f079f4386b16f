package game

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
)

var (
	// ErrInboxFull is returned when a session cannot accept another command
	ErrInboxFull = errors.New("session inbox full")
)

const (
	inboxSize   = 64
	maxMessages = 5
)

// GamePhase is the session-level state
type GamePhase string

const (
	PhaseMenu      GamePhase = "menu"
	PhasePlaying   GamePhase = "playing"
	PhaseJumpscare GamePhase = "jumpscare"
	PhaseGameOver  GamePhase = "gameover"
	PhaseWin       GamePhase = "win"
)

// EventKind names a session event; it doubles as the bus subject suffix
type EventKind string

const (
	EventDanger   EventKind = "danger"
	EventCatch    EventKind = "catch"
	EventWin      EventKind = "win"
	EventFootstep EventKind = "footstep"
	EventItem     EventKind = "item"
	EventPhase    EventKind = "phase"
	EventBattery  EventKind = "battery"
	EventMessage  EventKind = "message"
)

// Event is something that happened during a tick
type Event struct {
	Kind   EventKind `json:"kind"`
	Value  float64   `json:"value,omitempty"`
	Detail string    `json:"detail,omitempty"`
}

// Narrator produces flavor text asynchronously. deliver may be called from
// any goroutine, at most once.
type Narrator interface {
	Narrate(prompt string, deliver func(text string))
}

// Command is applied to a session by its owning goroutine
type Command interface {
	apply(s *Session)
}

// InputCommand replaces the held controls. Interact and ToggleLight fire once.
type InputCommand struct{ Input Input }

// StartCommand leaves the menu
type StartCommand struct{}

// RestartCommand returns to the menu with a fresh level state
type RestartCommand struct{}

// MessageCommand carries resolved flavor text
type MessageCommand struct{ Text string }

func (c InputCommand) apply(s *Session) {
	s.input = c.Input
	if c.Input.Interact {
		s.pendingInteract = true
	}
	if c.Input.ToggleLight {
		s.pendingToggle = true
	}
}

func (StartCommand) apply(s *Session) {
	if err := s.Start(); err != nil {
		s.log.Debug("start ignored", "err", err)
	}
}

func (RestartCommand) apply(s *Session) { s.Restart() }

func (c MessageCommand) apply(s *Session) {
	s.messages = append(s.messages, c.Text)
	if len(s.messages) > maxMessages {
		s.messages = s.messages[len(s.messages)-maxMessages:]
	}
	s.events = append(s.events, Event{Kind: EventMessage, Detail: c.Text})
}

// SessionConfig holds the per-session tuning that comes from configuration
type SessionConfig struct {
	JumpscareDuration time.Duration
	SoundVolume       float64
	Narrator          Narrator
	Listener          *Listener
	Logger            *log.Logger
}

// Session is one player's run through the forest. It is owned by a single
// goroutine; other goroutines talk to it through Post.
type Session struct {
	ID    string
	Owner string

	cfg    SessionConfig
	log    *log.Logger
	layout Layout

	phase     GamePhase
	player    *Player
	monster   *Monster
	battery   *Battery
	items     Items
	obstacles []Obstacle
	winZone   WinZone

	input           Input
	pendingInteract bool
	pendingToggle   bool

	elapsed       float64
	scareDeadline float64
	danger        float64
	messages      []string
	events        []Event

	inbox chan Command
}

// NewSession creates a session in the menu phase
func NewSession(id, owner string, layout Layout, cfg SessionConfig) *Session {
	if cfg.JumpscareDuration <= 0 {
		cfg.JumpscareDuration = 2500 * time.Millisecond
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}

	s := &Session{
		ID:     id,
		Owner:  owner,
		cfg:    cfg,
		log:    logger.With("session", id),
		layout: layout,
		inbox:  make(chan Command, inboxSize),
	}
	s.obstacles = layout.Obstacles()
	s.winZone = layout.WinZone()
	s.reset()
	return s
}

func (s *Session) reset() {
	s.phase = PhaseMenu
	s.player = NewPlayer(s.layout.PlayerSpawn())
	s.monster = NewMonster(s.layout.MonsterSpawn())
	s.battery = NewBattery()
	s.items = Items(s.layout.Items())
	s.input = Input{}
	s.pendingInteract = false
	s.pendingToggle = false
	s.elapsed = 0
	s.scareDeadline = 0
	s.danger = 0
	s.messages = nil
}

// Post queues a command without blocking
func (s *Session) Post(cmd Command) error {
	select {
	case s.inbox <- cmd:
		return nil
	default:
		return ErrInboxFull
	}
}

// Phase is the current game phase
func (s *Session) Phase() GamePhase { return s.phase }

// Start moves from the menu into play and wakes the monster
func (s *Session) Start() error {
	if s.phase != PhaseMenu {
		return fmt.Errorf("start from %s: %w", s.phase, ErrInvalidTransition)
	}
	if err := s.monster.Transition(Pursuing); err != nil {
		return err
	}
	s.setPhase(PhasePlaying)
	s.narrate(fmt.Sprintf("The player enters the forest looking for %d lost things.", len(s.items)))
	return nil
}

// Restart returns to the menu and rebuilds every actor
func (s *Session) Restart() {
	from := s.phase
	s.reset()
	s.events = append(s.events, Event{Kind: EventPhase, Detail: string(PhaseMenu)})
	s.log.Info("session restarted", "from", from)
}

// Tick advances the session by dt seconds and returns the events it produced
func (s *Session) Tick(dt float64) []Event {
	dt = ClampDelta(dt)
	s.drain()

	active := s.phase == PhasePlaying || s.phase == PhaseJumpscare
	if active {
		s.elapsed += dt
		s.regulateBattery(dt)
		s.handleActions()
	}

	if s.phase == PhaseJumpscare && s.elapsed >= s.scareDeadline {
		s.endScare()
		active = false
	}

	// The monster chases where the player was at the start of the tick
	view := PlayerView{Position: s.player.Position, Yaw: s.player.Yaw}

	playerSignals := s.player.Update(dt, s.input, PlayerEnv{
		Active:      active,
		Scaring:     s.phase == PhaseJumpscare,
		CanWin:      s.items.AllCollected(),
		SoundVolume: s.cfg.SoundVolume,
		Obstacles:   s.obstacles,
		WinZone:     s.winZone,
	})
	monsterSignals := s.monster.Update(dt, MonsterEnv{
		Active:      active,
		Player:      view,
		SoundVolume: s.cfg.SoundVolume,
	})

	s.cfg.Listener.dispatchPlayer(playerSignals)
	s.cfg.Listener.dispatchMonster(monsterSignals)
	s.collect(playerSignals, monsterSignals)

	switch {
	case playerSignals.Won && s.phase == PhasePlaying:
		s.win()
	case monsterSignals.Caught && s.phase == PhasePlaying:
		s.caught()
	}

	events := s.events
	s.events = nil
	return events
}

func (s *Session) drain() {
	for {
		select {
		case cmd := <-s.inbox:
			cmd.apply(s)
		default:
			return
		}
	}
}

func (s *Session) regulateBattery(dt float64) {
	if s.battery.Advance(dt) {
		s.log.Info("flashlight died")
		s.events = append(s.events, Event{Kind: EventBattery, Value: s.battery.Level, Detail: "depleted"})
	}
}

func (s *Session) handleActions() {
	if s.pendingToggle {
		s.pendingToggle = false
		if s.phase == PhasePlaying {
			on := s.battery.Toggle()
			s.log.Debug("flashlight toggled", "on", on, "level", s.battery.Level)
		}
	}

	if s.pendingInteract {
		s.pendingInteract = false
		if s.phase != PhasePlaying {
			return
		}
		item, ok := s.items.Collect(s.player.Eye(), s.player.Look())
		if !ok {
			return
		}
		remaining := s.items.Remaining()
		s.log.Info("item collected", "item", item.Name, "remaining", remaining)
		s.events = append(s.events, Event{Kind: EventItem, Value: float64(remaining), Detail: item.Name})
		if remaining == 0 {
			s.narrate(fmt.Sprintf("The player found the %s, the last of them. The way out is open.", item.Name))
		} else {
			s.narrate(fmt.Sprintf("The player found the %s. %d still lost.", item.Name, remaining))
		}
	}
}

func (s *Session) collect(ps PlayerSignals, ms MonsterSignals) {
	if ps.Footstep != nil {
		s.events = append(s.events, Event{Kind: EventFootstep, Value: ps.Footstep.Volume, Detail: "player"})
	}
	if ms.Footstep != nil {
		s.events = append(s.events, Event{Kind: EventFootstep, Value: ms.Footstep.Volume, Detail: "monster"})
	}
	if ms.DangerSet {
		s.danger = ms.Danger
		s.events = append(s.events, Event{Kind: EventDanger, Value: ms.Danger})
	}
}

func (s *Session) win() {
	if err := s.monster.Transition(Dormant); err != nil {
		s.log.Warn("monster transition", "err", err)
	}
	s.danger = 0
	s.events = append(s.events, Event{Kind: EventWin})
	s.setPhase(PhaseWin)
	s.narrate("The player escaped the forest.")
}

func (s *Session) caught() {
	if err := s.monster.Transition(Jumpscare); err != nil {
		s.log.Warn("monster transition", "err", err)
		return
	}
	s.scareDeadline = s.elapsed + s.cfg.JumpscareDuration.Seconds()
	s.events = append(s.events, Event{Kind: EventCatch})
	s.setPhase(PhaseJumpscare)
}

func (s *Session) endScare() {
	if err := s.monster.Transition(Dormant); err != nil {
		s.log.Warn("monster transition", "err", err)
	}
	s.setPhase(PhaseGameOver)
	s.narrate("The thing in the pines caught the player.")
}

func (s *Session) setPhase(phase GamePhase) {
	s.log.Info("phase changed", "from", s.phase, "to", phase, "elapsed", s.elapsed)
	s.phase = phase
	s.events = append(s.events, Event{Kind: EventPhase, Detail: string(phase)})
}

// narrate asks the narrator for a line; the result lands in the inbox
func (s *Session) narrate(prompt string) {
	if s.cfg.Narrator == nil {
		return
	}
	s.cfg.Narrator.Narrate(prompt, func(text string) {
		if err := s.Post(MessageCommand{Text: text}); err != nil {
			s.log.Warn("dropped flavor text", "err", err)
		}
	})
}

// Snapshot is the serializable view of a session
type Snapshot struct {
	ID             string    `json:"id"`
	Phase          GamePhase `json:"phase"`
	Elapsed        float64   `json:"elapsed"`
	Player         Player    `json:"player"`
	Monster        Monster   `json:"monster"`
	Danger         float64   `json:"danger"`
	Battery        Battery   `json:"battery"`
	Items          Items     `json:"items"`
	ItemsRemaining int       `json:"itemsRemaining"`
	WinZone        WinZone   `json:"winZone"`
	Messages       []string  `json:"messages"`
	Timestamp      int64     `json:"timestamp"`
}

// Snapshot copies the current state
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		ID:             s.ID,
		Phase:          s.phase,
		Elapsed:        s.elapsed,
		Player:         *s.player,
		Monster:        *s.monster,
		Danger:         s.danger,
		Battery:        *s.battery,
		Items:          append(Items(nil), s.items...),
		ItemsRemaining: s.items.Remaining(),
		WinZone:        s.winZone,
		Messages:       append([]string(nil), s.messages...),
		Timestamp:      DefaultTimeStamper(),
	}
}
