package domain

// attackWeight favors building the computer's own lines over blocking.
const attackWeight = 1.1

// Selector picks the computer's next move.
type Selector interface {
	ChooseMove(b Board, ai Player) (row, col int)
}

// Heuristic is the default Selector: win, else block, else the best
// single-ply Score.
type Heuristic struct{}

// ChooseMove implements Selector.
func (Heuristic) ChooseMove(b Board, ai Player) (int, int) { return ChooseMove(b, ai) }

// ChooseMove returns the cell the computer plays as ai. Cells are visited
// row-major and ties keep the first cell seen. It panics on a full board.
func ChooseMove(b Board, ai Player) (int, int) {
	if b.Full() {
		panic("domain: ChooseMove on a full board")
	}
	if r, c, ok := firstWinningCell(b, ai); ok {
		return r, c
	}
	opp := ai.Opponent()
	if r, c, ok := firstWinningCell(b, opp); ok {
		return r, c
	}

	bestR, bestC := -1, -1
	best := -1.0
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if b.at(r, c) != Empty {
				continue
			}
			attack := float64(Score(b, r, c, ai)) * attackWeight
			defend := float64(Score(b, r, c, opp))
			s := attack
			if defend > s {
				s = defend
			}
			if s > best {
				best, bestR, bestC = s, r, c
			}
		}
	}
	return bestR, bestC
}

// firstWinningCell finds the first empty cell where p completes five.
func firstWinningCell(b Board, p Player) (int, int, bool) {
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if b.at(r, c) != Empty {
				continue
			}
			if w, ok := FindWinner(b.With(r, c, p.Cell())); ok && w == p {
				return r, c, true
			}
		}
	}
	return 0, 0, false
}
