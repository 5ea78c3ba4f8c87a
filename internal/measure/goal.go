package measure

import "math"

// DefaultCheckpoints is how many intermediate targets a new goal gets.
const DefaultCheckpoints = 4

// Progress describes how far the current weight is along a goal.
type Progress struct {
	// Fraction of the planned change achieved, clamped to [0, 1].
	Fraction float64
	// Checkpoints are the evenly spaced intermediate targets in kg, the last
	// one being the goal itself.
	Checkpoints []float64
	// Passed counts checkpoints already reached.
	Passed int
	// NextKg is the next checkpoint not yet reached, or the goal.
	NextKg float64
}

// GoalProgress measures currentKg against a goal running from startKg to
// goalKg. Gaining goals work the same way as losing ones.
func GoalProgress(startKg, goalKg, currentKg float64, checkpoints int) Progress {
	if checkpoints < 1 {
		checkpoints = 1
	}
	total := startKg - goalKg
	p := Progress{NextKg: goalKg, Checkpoints: make([]float64, checkpoints)}

	step := total / float64(checkpoints)
	for i := range p.Checkpoints {
		p.Checkpoints[i] = roundTenth(startKg - float64(i+1)*step)
	}
	if total == 0 {
		p.Fraction = 1
		p.Passed = checkpoints
		return p
	}

	p.Fraction = math.Max(0, math.Min(1, (startKg-currentKg)/total))
	for _, cp := range p.Checkpoints {
		if reached(currentKg, cp, total) {
			p.Passed++
			continue
		}
		p.NextKg = cp
		break
	}
	return p
}

// reached reports whether current is at or past checkpoint cp for a goal
// moving in the direction of total.
func reached(current, cp, total float64) bool {
	if total > 0 {
		return current <= cp
	}
	return current >= cp
}
