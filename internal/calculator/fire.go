package calculator

import (
	"time"

	"SolveStreak/internal/model"
)

// FireWindow is how recent the last increase must be for the fire signal.
const FireWindow = 24 * time.Hour

// CalculateFire reports whether the last observed increase happened strictly
// less than FireWindow before now. A zero timestamp never fires.
func CalculateFire(lastActivity float64, now time.Time) bool {
	if lastActivity <= 0 {
		return false
	}
	return model.UnixSeconds(now)-lastActivity < FireWindow.Seconds()
}
