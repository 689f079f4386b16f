package game

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

type recordingNarrator struct {
	prompts []string
}

func (n *recordingNarrator) Narrate(prompt string, deliver func(string)) {
	n.prompts = append(n.prompts, prompt)
	deliver("omen: " + prompt)
}

func testLayout() StaticLayout {
	return StaticLayout{
		Goal:         WinZone{Position: mgl64.Vec3{0, 0, -80}, Radius: WinZoneRadius},
		MonsterStart: mgl64.Vec3{60, 0, 60},
	}
}

func newTestSession(t *testing.T, layout Layout, cfg SessionConfig) *Session {
	t.Helper()
	if cfg.SoundVolume == 0 {
		cfg.SoundVolume = 1
	}
	return NewSession("test", "owner", layout, cfg)
}

func hasEvent(events []Event, kind EventKind) bool {
	for _, e := range events {
		if e.Kind == kind {
			return true
		}
	}
	return false
}

func TestSessionStartOnlyFromMenu(t *testing.T) {
	s := newTestSession(t, testLayout(), SessionConfig{})
	if s.Phase() != PhaseMenu {
		t.Fatalf("phase = %s, want menu", s.Phase())
	}

	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if s.Phase() != PhasePlaying || s.monster.State != Pursuing {
		t.Fatalf("phase = %s monster = %s, want playing/pursuing", s.Phase(), s.monster.State)
	}

	if err := s.Start(); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("second Start err = %v, want ErrInvalidTransition", err)
	}
}

func TestSessionMenuIsFrozen(t *testing.T) {
	s := newTestSession(t, testLayout(), SessionConfig{})
	if err := s.Post(InputCommand{Input: Input{Forward: true}}); err != nil {
		t.Fatal(err)
	}

	before := s.player.Position
	for i := 0; i < 10; i++ {
		s.Tick(0.1)
	}
	if s.player.Position != before || s.monster.Position != testLayout().MonsterStart {
		t.Fatalf("actors moved in the menu")
	}
	if s.elapsed != 0 {
		t.Fatalf("elapsed = %f, want 0 in menu", s.elapsed)
	}
}

func TestSessionCatchRunsJumpscareThenGameOver(t *testing.T) {
	layout := testLayout()
	layout.MonsterStart = mgl64.Vec3{0.5, GroundHeight, 0}

	var catches int
	s := newTestSession(t, layout, SessionConfig{
		JumpscareDuration: 500 * time.Millisecond,
		Listener:          &Listener{OnCatch: func() { catches++ }},
	})
	if err := s.Start(); err != nil {
		t.Fatal(err)
	}

	events := s.Tick(0.1)
	if !hasEvent(events, EventCatch) {
		t.Fatalf("expected a catch event, got %+v", events)
	}
	if s.Phase() != PhaseJumpscare || s.monster.State != Jumpscare {
		t.Fatalf("phase = %s monster = %s, want jumpscare", s.Phase(), s.monster.State)
	}

	// Input is ignored while the scare plays
	if err := s.Post(InputCommand{Input: Input{Forward: true, Sprint: true}}); err != nil {
		t.Fatal(err)
	}
	frozen := s.player.Position

	ticks := 0
	for s.Phase() == PhaseJumpscare && ticks < 50 {
		events := s.Tick(0.1)
		ticks++
		if hasEvent(events, EventCatch) {
			t.Fatalf("catch repeated during the jumpscare")
		}
		if s.player.Position != frozen {
			t.Fatalf("player moved during the jumpscare")
		}
	}

	if s.Phase() != PhaseGameOver {
		t.Fatalf("phase = %s, want gameover", s.Phase())
	}
	if ticks < 4 || ticks > 6 {
		t.Fatalf("jumpscare lasted %d ticks, want about 5", ticks)
	}
	if s.monster.State != Dormant || s.monster.Teleported {
		t.Fatalf("monster = %s teleported=%v, want dormant and reset", s.monster.State, s.monster.Teleported)
	}
	if catches != 1 {
		t.Fatalf("listener saw %d catches, want 1", catches)
	}
}

func TestSessionJumpscareTeleportsMonster(t *testing.T) {
	layout := testLayout()
	layout.MonsterStart = mgl64.Vec3{0.5, GroundHeight, 0}
	s := newTestSession(t, layout, SessionConfig{JumpscareDuration: time.Second})
	if err := s.Start(); err != nil {
		t.Fatal(err)
	}

	s.Tick(0.016)
	s.Tick(0.016)

	want := mgl64.Vec3{0, GroundHeight - ScareDrop, -ScareForwardDistance}
	if !s.monster.Position.ApproxEqualThreshold(want, 1e-9) {
		t.Fatalf("monster at %v, want %v", s.monster.Position, want)
	}
}

func TestSessionWinWithAllItems(t *testing.T) {
	layout := testLayout()
	layout.Goal = WinZone{Position: mgl64.Vec3{0, 0, 0}, Radius: WinZoneRadius}
	layout.ItemList = []Item{{ID: "item-1", Name: "rusted key", Position: mgl64.Vec3{0, GroundHeight, -1.5}}}

	narrator := &recordingNarrator{}
	s := newTestSession(t, layout, SessionConfig{Narrator: narrator})
	if err := s.Start(); err != nil {
		t.Fatal(err)
	}

	if events := s.Tick(0.016); hasEvent(events, EventWin) {
		t.Fatalf("won before collecting the item")
	}

	if err := s.Post(InputCommand{Input: Input{Interact: true}}); err != nil {
		t.Fatal(err)
	}
	events := s.Tick(0.016)
	if !hasEvent(events, EventItem) {
		t.Fatalf("expected an item event, got %+v", events)
	}
	if !hasEvent(events, EventWin) || s.Phase() != PhaseWin {
		t.Fatalf("phase = %s, want win once every item is collected", s.Phase())
	}

	// Win is terminal
	s.Tick(0.016)
	if s.Phase() != PhaseWin {
		t.Fatalf("phase = %s after win", s.Phase())
	}

	snap := s.Snapshot()
	if snap.ItemsRemaining != 0 {
		t.Fatalf("remaining = %d, want 0", snap.ItemsRemaining)
	}
	if len(snap.Messages) == 0 {
		t.Fatalf("expected narrated messages, prompts were %v", narrator.prompts)
	}
}

func TestSessionInteractIsOneShot(t *testing.T) {
	layout := testLayout()
	layout.ItemList = []Item{
		{ID: "a", Position: mgl64.Vec3{0, GroundHeight, -1}},
		{ID: "b", Position: mgl64.Vec3{0, GroundHeight, -2.5}},
	}
	s := newTestSession(t, layout, SessionConfig{})
	if err := s.Start(); err != nil {
		t.Fatal(err)
	}

	if err := s.Post(InputCommand{Input: Input{Interact: true}}); err != nil {
		t.Fatal(err)
	}
	s.Tick(0.016)
	s.Tick(0.016)
	s.Tick(0.016)

	if got := s.items.Remaining(); got != 1 {
		t.Fatalf("remaining = %d, want 1 after a single interact", got)
	}
}

func TestSessionWinBeatsCatchOnSameTick(t *testing.T) {
	layout := testLayout()
	layout.Goal = WinZone{Position: mgl64.Vec3{0, 0, 0}, Radius: WinZoneRadius}
	layout.MonsterStart = mgl64.Vec3{0.5, GroundHeight, 0}

	s := newTestSession(t, layout, SessionConfig{})
	if err := s.Start(); err != nil {
		t.Fatal(err)
	}

	events := s.Tick(0.016)
	if s.Phase() != PhaseWin || hasEvent(events, EventCatch) {
		t.Fatalf("phase = %s events = %+v, want a win without a catch", s.Phase(), events)
	}
	if s.monster.State != Dormant {
		t.Fatalf("monster = %s, want dormant after a win", s.monster.State)
	}
}

func TestSessionBatteryDrainsWhileLit(t *testing.T) {
	s := newTestSession(t, testLayout(), SessionConfig{})
	if err := s.Start(); err != nil {
		t.Fatal(err)
	}
	if err := s.Post(InputCommand{Input: Input{ToggleLight: true}}); err != nil {
		t.Fatal(err)
	}

	// The first tick recharges a full battery, then turns the light on
	for i := 0; i < 11; i++ {
		s.Tick(0.1)
	}
	if !s.battery.LightOn {
		t.Fatalf("light should be on")
	}
	if math.Abs(s.battery.Level-99.2) > 1e-9 {
		t.Fatalf("battery = %f, want 99.2", s.battery.Level)
	}
}

func TestSessionRestartRebuildsActors(t *testing.T) {
	layout := testLayout()
	layout.ItemList = []Item{{ID: "a", Position: mgl64.Vec3{0, GroundHeight, -1}}}
	s := newTestSession(t, layout, SessionConfig{Narrator: &recordingNarrator{}})
	if err := s.Start(); err != nil {
		t.Fatal(err)
	}
	if err := s.Post(InputCommand{Input: Input{Forward: true, Interact: true}}); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 20; i++ {
		s.Tick(0.05)
	}
	if len(s.Snapshot().Messages) == 0 {
		t.Fatalf("expected narration during the first run")
	}

	if err := s.Post(RestartCommand{}); err != nil {
		t.Fatal(err)
	}
	s.Tick(0.05)

	if s.Phase() != PhaseMenu {
		t.Fatalf("phase = %s, want menu", s.Phase())
	}
	if s.player.Position != (mgl64.Vec3{0, GroundHeight, 0}) {
		t.Fatalf("player at %v, want spawn", s.player.Position)
	}
	if s.monster.State != Dormant || s.monster.Position != layout.MonsterStart {
		t.Fatalf("monster not rebuilt: %+v", s.monster)
	}
	if s.items.Remaining() != 1 {
		t.Fatalf("items not restored")
	}
	if msgs := s.Snapshot().Messages; len(msgs) != 0 {
		t.Fatalf("messages carried over from the last run: %q", msgs)
	}

	if err := s.Post(StartCommand{}); err != nil {
		t.Fatal(err)
	}
	s.Tick(0.05)
	if s.Phase() != PhasePlaying {
		t.Fatalf("phase = %s, want playing after restart and start", s.Phase())
	}
}

func TestSessionPostNeverBlocks(t *testing.T) {
	s := newTestSession(t, testLayout(), SessionConfig{})

	var err error
	for i := 0; i <= inboxSize; i++ {
		err = s.Post(InputCommand{})
	}
	if !errors.Is(err, ErrInboxFull) {
		t.Fatalf("err = %v, want ErrInboxFull", err)
	}
}
