package rules

// Fate describes what happens to a single cell during one generation step.
type Fate uint8

const (
	// Dormant is a dead cell that stays dead.
	Dormant Fate = iota
	// Birth is a dead cell with exactly three live neighbors.
	Birth
	// Survival is a live cell with two or three live neighbors.
	Survival
	// Underpopulation is a live cell with fewer than two live neighbors.
	Underpopulation
	// Overpopulation is a live cell with more than three live neighbors.
	Overpopulation
)

// Alive reports the cell state after the transition.
func (f Fate) Alive() bool {
	return f == Birth || f == Survival
}

// Flipped reports whether the transition changes the cell state.
func (f Fate) Flipped() bool {
	return f == Birth || f == Underpopulation || f == Overpopulation
}

func (f Fate) String() string {
	switch f {
	case Birth:
		return "birth"
	case Survival:
		return "survival"
	case Underpopulation:
		return "underpopulation"
	case Overpopulation:
		return "overpopulation"
	default:
		return "dormant"
	}
}

/*
Apply classifies a cell under Conway's B3/S23 rule.

neighbors is expected in [0, 8]; any count outside {2, 3} kills a live cell.
*/
func Apply(alive bool, neighbors int) Fate {
	if !alive {
		if neighbors == 3 {
			return Birth
		}
		return Dormant
	}
	switch {
	case neighbors < 2:
		return Underpopulation
	case neighbors > 3:
		return Overpopulation
	default:
		return Survival
	}
}
