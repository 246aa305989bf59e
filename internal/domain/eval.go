package domain

import "fmt"

// Score values for a single axis.
const (
	scoreFive        = 100000
	scoreOpenFour    = 10000
	scoreClosedFour  = 1000
	scoreOpenThree   = 1000
	scoreClosedThree = 100
	scoreOpenTwo     = 100
	scoreClosedTwo   = 10
	scoreSpace       = 10
)

// reach is how far each side of an axis is walked.
const reach = WinLength - 1

// Score rates placing p's stone on the empty cell (row, col). Each axis is
// walked up to four cells both ways; the walk stops at the first empty cell,
// opposing stone or board edge. Only contiguous own stones count, so split
// shapes like _XX_X_ are underrated.
//
// Score panics if (row, col) is off the board or occupied.
func Score(b Board, row, col int, p Player) int {
	if b.At(row, col) != Empty {
		panic(fmt.Sprintf("domain: scoring occupied cell (%d,%d)", row, col))
	}
	own := p.Cell()
	total := 0
	for _, ax := range axes {
		count, blocked, space := 1, 0, 0
		for _, sign := range [2]int{1, -1} {
			dr, dc := ax[0]*sign, ax[1]*sign
			for i := 1; i <= reach; i++ {
				r, c := row+dr*i, col+dc*i
				if !InBounds(r, c) {
					blocked++
					break
				}
				v := b.at(r, c)
				if v == own {
					count++
					continue
				}
				if v == Empty {
					space++
				} else {
					blocked++
				}
				break
			}
		}
		total += lineValue(count, blocked) + space*scoreSpace
	}
	return total
}

func lineValue(count, blocked int) int {
	switch {
	case count >= WinLength:
		return scoreFive
	case blocked >= 2:
		return 0
	case count == 4:
		if blocked == 0 {
			return scoreOpenFour
		}
		return scoreClosedFour
	case count == 3:
		if blocked == 0 {
			return scoreOpenThree
		}
		return scoreClosedThree
	case count == 2:
		if blocked == 0 {
			return scoreOpenTwo
		}
		return scoreClosedTwo
	}
	return 0
}
