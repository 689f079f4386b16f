package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/mark3labs/hollow-pines/game/shared"
)

// Epsilon is the shortest length that is still safe to normalize
const Epsilon = 1e-9

// CheckCollision checks if two circles on the ground plane are intersecting
func CheckCollision(a mgl64.Vec2, radiusA float64, b mgl64.Vec2, radiusB float64) bool {
	dx := a[0] - b[0]
	dz := a[1] - b[1]
	sumRadii := radiusA + radiusB
	return dx*dx+dz*dz < sumRadii*sumRadii
}

// ResolveObstacles pushes a circle at candidate out of every obstacle it
// overlaps. Obstacles are visited once, in slice order, and each push moves
// the candidate along the obstacle-to-candidate displacement by exactly the
// overlap. A later push may leave a small overlap with an earlier obstacle.
//
// A candidate sitting exactly on an obstacle center has no push direction and
// is left where it is.
func ResolveObstacles(candidate mgl64.Vec2, radius float64, obstacles []shared.Obstacle) mgl64.Vec2 {
	x, z := candidate[0], candidate[1]

	for _, obs := range obstacles {
		dx := x - obs.Position[0]
		dz := z - obs.Position[1]
		sumRadii := radius + obs.Radius

		distanceSquared := dx*dx + dz*dz
		if distanceSquared >= sumRadii*sumRadii {
			continue
		}

		distance := math.Sqrt(distanceSquared)
		if distance < Epsilon {
			continue
		}

		overlap := sumRadii - distance
		x += dx / distance * overlap
		z += dz / distance * overlap
	}

	return mgl64.Vec2{x, z}
}

// Penetration returns how deep a circle at p sits inside obs, or zero when
// they do not overlap.
func Penetration(p mgl64.Vec2, radius float64, obs shared.Obstacle) float64 {
	depth := radius + obs.Radius - p.Sub(obs.Position).Len()
	if depth < 0 {
		return 0
	}
	return depth
}
