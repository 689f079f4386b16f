package game

import (
	"github.com/delaneyj/toolbelt"
)

// Battery is the flashlight charge, regulated on a BatteryCadence schedule
type Battery struct {
	Level   float64 `json:"level"`
	LightOn bool    `json:"lightOn"`

	acc float64
}

// NewBattery returns a full battery with the light off
func NewBattery() *Battery {
	return &Battery{Level: BatteryMax}
}

// Advance feeds dt seconds into the cadence accumulator and runs one
// regulation step per elapsed cadence. It reports whether the light was
// forced off.
func (b *Battery) Advance(dt float64) (depleted bool) {
	b.acc += dt
	for b.acc >= BatteryCadence {
		b.acc -= BatteryCadence
		if b.Regulate() {
			depleted = true
		}
	}
	return depleted
}

// Regulate runs a single cadence step: drain while lit, recharge otherwise.
// It reports whether this step emptied the battery and turned the light off.
func (b *Battery) Regulate() bool {
	if b.LightOn {
		b.Level = toolbelt.Clamp(b.Level-BatteryDrain, 0, BatteryMax)
	} else {
		b.Level = toolbelt.Clamp(b.Level+BatteryRecharge, 0, BatteryMax)
	}

	if b.LightOn && b.Level <= 0 {
		b.LightOn = false
		return true
	}
	return false
}

// Toggle flips the light and reports whether it is now on. An empty
// battery refuses to turn on.
func (b *Battery) Toggle() bool {
	if !b.LightOn && b.Level <= 0 {
		return false
	}
	b.LightOn = !b.LightOn
	return b.LightOn
}
