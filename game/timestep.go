package game

// Timestep converts variable frame times into a whole number of fixed ticks.
type Timestep struct {
	step       float64
	maxCatchUp int
	acc        float64
}

// NewTimestep creates an accumulator for ticks of step seconds. At most
// maxCatchUp ticks run per frame; any backlog beyond that is dropped.
func NewTimestep(step float64, maxCatchUp int) Timestep {
	if maxCatchUp < 1 {
		maxCatchUp = 1
	}
	return Timestep{step: step, maxCatchUp: maxCatchUp}
}

// Advance adds dt seconds and returns how many ticks should run now.
func (t *Timestep) Advance(dt float64) int {
	if dt > 0 {
		t.acc += dt
	}
	n := 0
	for t.acc >= t.step && n < t.maxCatchUp {
		t.acc -= t.step
		n++
	}
	if t.acc >= t.step {
		t.acc = 0
	}
	return n
}

// Alpha is the fraction of a tick left in the accumulator, for interpolation.
func (t *Timestep) Alpha() float64 {
	return t.acc / t.step
}
