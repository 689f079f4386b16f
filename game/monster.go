package game

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// ErrInvalidTransition is returned when a pursuit phase change is not allowed
var ErrInvalidTransition = errors.New("invalid transition")

// PursuitState is the monster's behavior phase
type PursuitState int

const (
	Dormant PursuitState = iota
	Pursuing
	Jumpscare
)

func (s PursuitState) String() string {
	switch s {
	case Dormant:
		return "dormant"
	case Pursuing:
		return "pursuing"
	case Jumpscare:
		return "jumpscare"
	default:
		return fmt.Sprintf("PursuitState(%d)", int(s))
	}
}

func (s PursuitState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *PursuitState) UnmarshalText(text []byte) error {
	for _, state := range []PursuitState{Dormant, Pursuing, Jumpscare} {
		if state.String() == string(text) {
			*s = state
			return nil
		}
	}
	return fmt.Errorf("unknown pursuit state %q", text)
}

// CanTransition reports whether the monster may move from s to next
func (s PursuitState) CanTransition(next PursuitState) bool {
	switch s {
	case Dormant:
		return next == Pursuing
	case Pursuing:
		return next == Jumpscare || next == Dormant
	case Jumpscare:
		return next == Dormant
	}
	return false
}

// PlayerView is the part of the player the monster may observe, taken before
// the player's own update for the tick.
type PlayerView struct {
	Position mgl64.Vec3
	Yaw      float64
}

// MonsterEnv carries the orchestrator flags for one monster update
type MonsterEnv struct {
	Active      bool
	Player      PlayerView
	SoundVolume float64
}

// Monster is the single pursuing actor
type Monster struct {
	Actor
	State      PursuitState `json:"state"`
	Speed      float64      `json:"speed"`
	Teleported bool         `json:"teleported"`

	steps stepTimer
}

// NewMonster creates a dormant monster at spawn
func NewMonster(spawn mgl64.Vec3) *Monster {
	return &Monster{
		Actor: Actor{Position: spawn},
		State: Dormant,
	}
}

// Transition moves the monster to next or returns ErrInvalidTransition.
// Entering Dormant clears the teleport latch.
func (m *Monster) Transition(next PursuitState) error {
	if !m.State.CanTransition(next) {
		return fmt.Errorf("monster %s -> %s: %w", m.State, next, ErrInvalidTransition)
	}

	m.State = next
	m.steps.reset()
	switch next {
	case Dormant:
		m.Teleported = false
		m.Speed = 0
	case Jumpscare:
		m.Speed = 0
	}
	return nil
}

// Update advances the monster one tick according to its phase
func (m *Monster) Update(dt float64, env MonsterEnv) MonsterSignals {
	if !env.Active {
		return MonsterSignals{}
	}

	switch m.State {
	case Pursuing:
		return m.pursue(dt, env)
	case Jumpscare:
		m.scare(env.Player)
	}
	return MonsterSignals{}
}

func (m *Monster) pursue(dt float64, env MonsterEnv) MonsterSignals {
	var signals MonsterSignals

	distance := env.Player.Position.Sub(m.Position).Len()
	speed := MonsterWalkSpeed
	if distance < MonsterAttackRange {
		speed = MonsterAttackSpeed
	}
	m.Speed = speed

	// Move only on the ground plane
	direction := SafeNormalize2(Horizontal(env.Player.Position).Sub(Horizontal(m.Position)))
	step := direction.Mul(speed * dt)
	m.Position[0] += step[0]
	m.Position[2] += step[1]
	m.Velocity = mgl64.Vec3{direction[0] * speed, 0, direction[1] * speed}

	if direction.Len() > 0 {
		m.Yaw = LerpAngle(m.Yaw, math.Atan2(direction[0], direction[1]), MonsterTurnBlend)
	}

	signals.Danger = DangerLevel(distance)
	signals.DangerSet = true

	if distance < MonsterCatchRange {
		signals.Caught = true
	}

	interval := MonsterStepInterval * (MonsterWalkSpeed / speed)
	if m.steps.advance(dt, interval) {
		if volume := monsterStepVolume(distance, env.SoundVolume); volume > 0 {
			signals.Footstep = &Footstep{Source: m.Position, Volume: volume}
		}
	}

	return signals
}

// scare places the monster in the player's face once per episode
func (m *Monster) scare(player PlayerView) {
	if m.Teleported {
		return
	}

	ahead := Horizontal(player.Position).Add(Forward(player.Yaw).Mul(ScareForwardDistance))
	m.Position = mgl64.Vec3{ahead[0], player.Position[1] - ScareDrop, ahead[1]}
	m.Velocity = mgl64.Vec3{}

	toPlayer := SafeNormalize2(Horizontal(player.Position).Sub(ahead))
	m.Yaw = math.Atan2(toPlayer[0], toPlayer[1])
	m.Teleported = true
}

