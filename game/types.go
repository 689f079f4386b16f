package game

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/mark3labs/hollow-pines/game/shared"
)

// Obstacle is a static circular collider on the ground plane
type Obstacle = shared.Obstacle

// Actor is the shared kinematic state of the player and the monster
type Actor struct {
	Position mgl64.Vec3 `json:"position"`
	Velocity mgl64.Vec3 `json:"velocity"`
	Yaw      float64    `json:"yaw"`
}

// WinZone is the circular goal area the player must reach with every item
type WinZone struct {
	Position mgl64.Vec3 `json:"position"`
	Radius   float64    `json:"radius"`
}

// Contains reports whether p is inside the zone on the ground plane
func (w WinZone) Contains(p mgl64.Vec3) bool {
	return HorizontalDistance(p, w.Position) < w.Radius
}

// Input is the per-tick control state sent by a client
type Input struct {
	Forward bool    `json:"forward"`
	Back    bool    `json:"back"`
	Left    bool    `json:"left"`
	Right   bool    `json:"right"`
	Sprint  bool    `json:"sprint"`
	Jump    bool    `json:"jump"`
	Yaw     float64 `json:"yaw"`
	Pitch   float64 `json:"pitch"`

	// Edge-triggered actions, consumed by the tick that sees them
	Interact    bool `json:"interact"`
	ToggleLight bool `json:"toggleLight"`
}

// Footstep is an audible step emitted by an actor
type Footstep struct {
	Source mgl64.Vec3 `json:"source"`
	Volume float64    `json:"volume"`
}

// PlayerSignals is what a single player update reports
type PlayerSignals struct {
	Footstep *Footstep
	Won      bool
}

// MonsterSignals is what a single monster update reports
type MonsterSignals struct {
	Danger    float64
	DangerSet bool
	Caught    bool
	Footstep  *Footstep
}

// Layout describes the static content of a level
type Layout interface {
	shared.ObstacleProvider
	Items() []Item
	WinZone() WinZone
	PlayerSpawn() mgl64.Vec2
	MonsterSpawn() mgl64.Vec3
}

// StaticLayout is a fixed Layout, mostly useful in tests
type StaticLayout struct {
	ObstacleList []Obstacle
	ItemList     []Item
	Goal         WinZone
	PlayerStart  mgl64.Vec2
	MonsterStart mgl64.Vec3
}

func (l StaticLayout) Obstacles() []Obstacle {
	return append([]Obstacle(nil), l.ObstacleList...)
}

func (l StaticLayout) Items() []Item {
	return append([]Item(nil), l.ItemList...)
}

func (l StaticLayout) WinZone() WinZone { return l.Goal }
func (l StaticLayout) PlayerSpawn() mgl64.Vec2 { return l.PlayerStart }
func (l StaticLayout) MonsterSpawn() mgl64.Vec3 {
	return l.MonsterStart
}

// TimeStamper is a utility function type for getting current time
type TimeStamper func() int64

// DefaultTimeStamper returns the current time in milliseconds
func DefaultTimeStamper() int64 {
	return time.Now().UnixMilli()
}
