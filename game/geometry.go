package game

import (
	"math"

	"github.com/delaneyj/toolbelt"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/mark3labs/hollow-pines/game/physics"
)

// Horizontal drops the Y component, returning (x, z)
func Horizontal(v mgl64.Vec3) mgl64.Vec2 {
	return mgl64.Vec2{v[0], v[2]}
}

// HorizontalDistance is the distance between a and b on the ground plane
func HorizontalDistance(a, b mgl64.Vec3) float64 {
	return Horizontal(a).Sub(Horizontal(b)).Len()
}

// SafeNormalize2 returns the unit vector of v, or the zero vector when v is
// too short to normalize.
func SafeNormalize2(v mgl64.Vec2) mgl64.Vec2 {
	length := v.Len()
	if length < physics.Epsilon {
		return mgl64.Vec2{}
	}
	return v.Mul(1 / length)
}

// RotateYaw rotates (x, z) about the vertical axis by yaw radians.
// Yaw zero faces -Z.
func RotateYaw(v mgl64.Vec2, yaw float64) mgl64.Vec2 {
	sin, cos := math.Sincos(yaw)
	return mgl64.Vec2{
		v[0]*cos + v[1]*sin,
		-v[0]*sin + v[1]*cos,
	}
}

// Forward is the unit ground-plane direction an actor with this yaw faces
func Forward(yaw float64) mgl64.Vec2 {
	return RotateYaw(mgl64.Vec2{0, -1}, yaw)
}

// normalizeAngle normalizes an angle to be between -π and π
func normalizeAngle(angle float64) float64 {
	angle = math.Mod(angle, 2*math.Pi)
	if angle > math.Pi {
		angle -= 2 * math.Pi
	} else if angle < -math.Pi {
		angle += 2 * math.Pi
	}
	return angle
}

// LerpAngle moves from toward to by fraction t along the shorter arc
func LerpAngle(from, to, t float64) float64 {
	return normalizeAngle(from + normalizeAngle(to-from)*t)
}

// DangerLevel maps a monster distance to [0, 1]: 1 on contact, 0 at
// DangerRadius and beyond.
func DangerLevel(distance float64) float64 {
	return toolbelt.Clamp(1-distance/DangerRadius, 0, 1)
}

// monsterStepVolume attenuates a monster footstep linearly with distance and
// mutes it beyond the audible range.
func monsterStepVolume(distance, soundVolume float64) float64 {
	if distance >= MonsterAudibleRange {
		return 0
	}
	return soundVolume * MonsterStepVolume * toolbelt.Clamp(1-distance/MonsterAudibleRange, 0, 1)
}
