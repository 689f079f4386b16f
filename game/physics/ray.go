package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// RaySphere casts a ray from origin along dir and returns the distance to the
// first point where it enters the sphere, if that point is within maxDist.
// An origin already inside the sphere hits at distance zero.
func RaySphere(origin, dir mgl64.Vec3, maxDist float64, center mgl64.Vec3, radius float64) (float64, bool) {
	// Vector from sphere center to ray origin
	offset := origin.Sub(center)
	c := offset.Dot(offset) - radius*radius
	if c <= 0 {
		return 0, true
	}

	length := dir.Len()
	if length < Epsilon {
		return 0, false
	}
	dir = dir.Mul(1 / length)

	// Quadratic with a == 1 for a unit direction
	b := 2 * offset.Dot(dir)
	discriminant := b*b - 4*c
	if discriminant < 0 {
		return 0, false
	}

	t := (-b - math.Sqrt(discriminant)) / 2
	if t < 0 || t > maxDist {
		return 0, false
	}
	return t, true
}

// LookDirection returns the unit view vector for a camera yaw and pitch.
// Yaw zero looks down -Z; positive pitch looks up.
func LookDirection(yaw, pitch float64) mgl64.Vec3 {
	cosPitch := math.Cos(pitch)
	return mgl64.Vec3{
		-math.Sin(yaw) * cosPitch,
		math.Sin(pitch),
		-math.Cos(yaw) * cosPitch,
	}
}
