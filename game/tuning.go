package game

// World
const (
	WorldBoundary = 98.5 // |x| and |z| must stay strictly below this
	GroundHeight  = 1.7  // eye height of a grounded player
	MaxTickDelta  = 0.1  // longest dt a single tick integrates
)

// Player locomotion
const (
	PlayerRadius       = 0.6
	WalkSpeed          = 5.0
	SprintSpeed        = 9.0
	VelocityBlend      = 0.15 // applied once per tick, not scaled by dt
	Gravity            = 22.0
	JumpVelocity       = 8.5
	WalkStepInterval   = 0.42
	SprintStepInterval = 0.28
	WalkStepVolume     = 0.4
	SprintStepVolume   = 0.7
)

// Monster pursuit
const (
	MonsterWalkSpeed     = 4.6
	MonsterAttackSpeed   = 6.8
	MonsterAttackRange   = 14.0
	MonsterCatchRange    = 1.9
	MonsterTurnBlend     = 0.1
	DangerRadius         = 35.0
	MonsterAudibleRange  = 45.0
	MonsterStepInterval  = 0.55 // at MonsterWalkSpeed; shrinks as speed rises
	MonsterStepVolume    = 0.9
	ScareForwardDistance = 1.2
	ScareDrop            = 1.2
)

// Flashlight battery, regulated on a fixed cadence
const (
	BatteryMax      = 100.0
	BatteryDrain    = 0.08
	BatteryRecharge = 0.04
	BatteryCadence  = 0.1 // seconds
)

// Items and goal
const (
	ItemRadius    = 0.6
	InteractReach = 3.0
	WinZoneRadius = 4.0
)
