package domain

// axes lists the line directions as (dRow, dCol): horizontal, vertical,
// down-right and down-left. Order matters for FindWinner and Score.
var axes = [4][2]int{{0, 1}, {1, 0}, {1, 1}, {1, -1}}

// FindWinner scans the board row-major and returns the color of the first
// run of WinLength stones found. Longer runs count as well.
func FindWinner(b Board) (Player, bool) {
	line, ok := WinningLine(b)
	if !ok {
		return 0, false
	}
	return line[0].Player, true
}

// WinningLine returns the WinLength cells of the run FindWinner reports.
func WinningLine(b Board) ([]Move, bool) {
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			cur := b.at(r, c)
			if cur == Empty {
				continue
			}
			for _, ax := range axes {
				if runFrom(b, r, c, ax[0], ax[1], cur) {
					line := make([]Move, WinLength)
					for i := range line {
						line[i] = Move{Row: r + i*ax[0], Col: c + i*ax[1], Player: Player(cur)}
					}
					return line, true
				}
			}
		}
	}
	return nil, false
}

func runFrom(b Board, r, c, dr, dc int, cur Cell) bool {
	end := WinLength - 1
	if !InBounds(r+end*dr, c+end*dc) {
		return false
	}
	for i := 1; i <= end; i++ {
		if b.at(r+i*dr, c+i*dc) != cur {
			return false
		}
	}
	return true
}
