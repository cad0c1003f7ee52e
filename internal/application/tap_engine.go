package application

// TapPlan is one batch submission derived from the requested tap count.
// Count is what the backend receives; it deliberately under-reports the true
// tap count by one energy unit, which is how the backend reconciles taps
// against energy cost.
type TapPlan struct {
	AvailableTaps int
	Taps          int
	Count         int
}

// TapEngine derives how many taps to submit given available energy and the
// configured energy floor.
type TapEngine struct {
	MinAvailableEnergy int
}

// PlanTaps clamps the requested taps to the available energy, then pulls the
// request back whenever the post-tap energy would land more than one unit
// below the floor. The floor check divides before flooring, so it is done in
// float space.
func (e TapEngine) PlanTaps(availableEnergy, taps, earnPerTap int) TapPlan {
	if earnPerTap < 1 {
		earnPerTap = 1
	}

	if taps > availableEnergy {
		taps = availableEnergy
	}

	if float64(availableEnergy)-float64(taps)/float64(earnPerTap)-1 < float64(e.MinAvailableEnergy) {
		taps = availableEnergy - e.MinAvailableEnergy
		if taps < 1 {
			taps = 1
		}
	}

	count := taps/earnPerTap - 1
	if count < 1 {
		count = 1
	}

	return TapPlan{AvailableTaps: availableEnergy, Taps: taps, Count: count}
}
