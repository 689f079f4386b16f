package shared

import "github.com/go-gl/mathgl/mgl64"

// ObstacleKind is cosmetic only; collision treats every kind the same
type ObstacleKind string

const (
	KindTree     ObstacleKind = "tree"
	KindRock     ObstacleKind = "rock"
	KindWillow   ObstacleKind = "willow"
	KindDeadTree ObstacleKind = "dead_tree"
)

// Obstacle is a static circular collider on the ground plane.
// Position holds (x, z).
type Obstacle struct {
	Position mgl64.Vec2   `json:"position"`
	Radius   float64      `json:"radius"`
	Kind     ObstacleKind `json:"kind"`
}

// ObstacleProvider yields the obstacle set for one session.
// The returned slice is built once and never mutated by the simulation.
type ObstacleProvider interface {
	Obstacles() []Obstacle
}
