package game

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/mark3labs/hollow-pines/game/physics"
)

// Player is the locomotion state of the human-controlled actor
type Player struct {
	Actor
	Pitch            float64 `json:"pitch"`
	Grounded         bool    `json:"grounded"`
	VerticalVelocity float64 `json:"verticalVelocity"`

	steps stepTimer
}

// PlayerEnv carries the orchestrator flags and level data for one update
type PlayerEnv struct {
	Active      bool
	Scaring     bool
	CanWin      bool
	SoundVolume float64
	Obstacles   []Obstacle
	WinZone     WinZone
}

// NewPlayer places a grounded player at spawn
func NewPlayer(spawn mgl64.Vec2) *Player {
	return &Player{
		Actor: Actor{
			Position: mgl64.Vec3{spawn[0], GroundHeight, spawn[1]},
		},
		Grounded: true,
	}
}

// Eye is the point item rays are cast from
func (p *Player) Eye() mgl64.Vec3 {
	return p.Position
}

// Look is the unit camera direction
func (p *Player) Look() mgl64.Vec3 {
	return physics.LookDirection(p.Yaw, p.Pitch)
}

// Update integrates one tick of player movement
func (p *Player) Update(dt float64, in Input, env PlayerEnv) PlayerSignals {
	var signals PlayerSignals

	if !env.Active || env.Scaring {
		p.Velocity = mgl64.Vec3{}
		return signals
	}

	p.Yaw = in.Yaw
	p.Pitch = in.Pitch

	// Desired horizontal velocity in camera space
	local := mgl64.Vec2{
		boolAxis(in.Left) - boolAxis(in.Right),
		boolAxis(in.Back) - boolAxis(in.Forward),
	}
	moving := local.Len() > physics.Epsilon

	var target mgl64.Vec2
	if moving {
		speed := WalkSpeed
		if in.Sprint {
			speed = SprintSpeed
		}
		target = RotateYaw(SafeNormalize2(local), p.Yaw).Mul(speed)
	}

	p.Velocity[0] += (target[0] - p.Velocity[0]) * VelocityBlend
	p.Velocity[2] += (target[1] - p.Velocity[2]) * VelocityBlend

	p.updateVertical(dt, in.Jump)

	prev := Horizontal(p.Position)
	candidate := prev.Add(Horizontal(p.Velocity).Mul(dt))
	candidate = physics.ResolveObstacles(candidate, PlayerRadius, env.Obstacles)
	next := physics.CommitWithinBounds(prev, candidate, WorldBoundary)
	p.Position[0] = next[0]
	p.Position[2] = next[1]

	if moving && p.Grounded {
		interval, volume := WalkStepInterval, WalkStepVolume
		if in.Sprint {
			interval, volume = SprintStepInterval, SprintStepVolume
		}
		if p.steps.advance(dt, interval) {
			signals.Footstep = &Footstep{
				Source: p.Position,
				Volume: env.SoundVolume * volume,
			}
		}
	} else {
		p.steps.reset()
	}

	if env.CanWin && env.WinZone.Contains(p.Position) {
		signals.Won = true
	}

	return signals
}

func (p *Player) updateVertical(dt float64, jump bool) {
	if !p.Grounded {
		p.VerticalVelocity -= Gravity * dt
		p.Position[1] += p.VerticalVelocity * dt
		if p.Position[1] <= GroundHeight {
			p.Position[1] = GroundHeight
			p.VerticalVelocity = 0
			p.Grounded = true
		}
	}

	// A jump takes effect from the next tick's integration
	if jump && p.Grounded {
		p.VerticalVelocity = JumpVelocity
		p.Grounded = false
	}
	p.Velocity[1] = p.VerticalVelocity
}

func boolAxis(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
