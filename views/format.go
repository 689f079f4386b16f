package views

import (
	"fmt"

	"github.com/mark3labs/hollow-pines/game"
)

func phaseLine(phase game.GamePhase) string {
	switch phase {
	case game.PhaseMenu:
		return "The pines are waiting."
	case game.PhasePlaying:
		return "Find what was lost. Do not look back."
	case game.PhaseJumpscare:
		return "IT FOUND YOU"
	case game.PhaseGameOver:
		return "You did not make it out."
	case game.PhaseWin:
		return "You escaped the forest."
	default:
		return ""
	}
}

func dangerStyle(danger float64) string {
	return fmt.Sprintf("width: %.0f%%", danger*100)
}

func batteryLine(b game.Battery) string {
	light := "off"
	if b.LightOn {
		light = "on"
	}
	return fmt.Sprintf("Flashlight %s, battery %.1f%%", light, b.Level)
}
