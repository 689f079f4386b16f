package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// CommitWithinBounds keeps each axis of next that stays strictly inside
// (-limit, limit). An axis that would leave the square keeps its value from
// prev, so a blocked axis never stops motion along the other one.
func CommitWithinBounds(prev, next mgl64.Vec2, limit float64) mgl64.Vec2 {
	committed := next
	for axis := range committed {
		if math.Abs(committed[axis]) >= limit {
			committed[axis] = prev[axis]
		}
	}
	return committed
}

// InBounds reports whether p lies strictly inside (-limit, limit) on both axes
func InBounds(p mgl64.Vec2, limit float64) bool {
	return math.Abs(p[0]) < limit && math.Abs(p[1]) < limit
}
