package domain

import "fmt"

// Size is the board edge length; WinLength is the run needed to win.
const (
	Size      = 15
	WinLength = 5
)

// Cell represents a board cell state.
type Cell uint8

const (
	Empty Cell = iota
	Black
	White
)

func (c Cell) String() string {
	switch c {
	case Black:
		return "black"
	case White:
		return "white"
	default:
		return "empty"
	}
}

// Player is the color of a side. Black always moves first.
type Player uint8

const (
	PlayerBlack Player = Player(Black)
	PlayerWhite Player = Player(White)
)

// Cell returns the stone this player places.
func (p Player) Cell() Cell { return Cell(p) }

// Opponent returns the other color.
func (p Player) Opponent() Player {
	if p == PlayerBlack {
		return PlayerWhite
	}
	return PlayerBlack
}

func (p Player) String() string { return p.Cell().String() }

// Move is a single stone placement.
type Move struct {
	Row    int    `json:"row"`
	Col    int    `json:"col"`
	Player Player `json:"player"`
}

// Board is a fixed 15x15 grid stored row-major. It is a value type: copying
// a Board copies every cell, so snapshots never alias each other.
type Board [Size * Size]Cell

// InBounds reports whether (r, c) addresses a cell.
func InBounds(r, c int) bool {
	return r >= 0 && r < Size && c >= 0 && c < Size
}

// At returns the cell at row r, column c. It panics when (r, c) is off the board.
func (b Board) At(r, c int) Cell {
	mustInBounds(r, c)
	return b[r*Size+c]
}

// With returns a copy of b with (r, c) set to cell.
func (b Board) With(r, c int, cell Cell) Board {
	mustInBounds(r, c)
	b[r*Size+c] = cell
	return b
}

// Count returns the number of cells holding cell.
func (b Board) Count(cell Cell) int {
	n := 0
	for _, v := range b {
		if v == cell {
			n++
		}
	}
	return n
}

// Full reports whether no empty cell remains.
func (b Board) Full() bool {
	for _, v := range b {
		if v == Empty {
			return false
		}
	}
	return true
}

// Diff returns the coordinates of cells that differ between a and b.
func Diff(a, b Board) [][2]int {
	var out [][2]int
	for i := range a {
		if a[i] != b[i] {
			out = append(out, [2]int{i / Size, i % Size})
		}
	}
	return out
}

func (b Board) at(r, c int) Cell { return b[r*Size+c] }

func mustInBounds(r, c int) {
	if !InBounds(r, c) {
		panic(fmt.Sprintf("domain: cell (%d,%d) outside %dx%d board", r, c, Size, Size))
	}
}

// MarshalText encodes the player as "black" or "white".
func (p Player) MarshalText() ([]byte, error) {
	switch p {
	case PlayerBlack, PlayerWhite:
		return []byte(p.String()), nil
	}
	return nil, fmt.Errorf("domain: invalid player %d", p)
}

// UnmarshalText accepts "black" or "white".
func (p *Player) UnmarshalText(b []byte) error {
	switch string(b) {
	case "black":
		*p = PlayerBlack
	case "white":
		*p = PlayerWhite
	default:
		return fmt.Errorf("domain: invalid player %q", b)
	}
	return nil
}
