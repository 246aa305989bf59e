package domain

import "testing"

// put returns b with every listed cell set to cell.
func put(b Board, cell Cell, cells ...[2]int) Board {
	for _, rc := range cells {
		b = b.With(rc[0], rc[1], cell)
	}
	return b
}

// drawBoard fills every cell in 2-wide stripes that shift each row, so no
// line ever holds more than two stones of one color.
func drawBoard() Board {
	var b Board
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			b = b.With(r, c, drawCell(r, c))
		}
	}
	return b
}

func drawCell(r, c int) Cell {
	if (c+2*r)%4 < 2 {
		return Black
	}
	return White
}

func TestEmptyBoard(t *testing.T) {
	var b Board
	if b.Count(Empty) != Size*Size {
		t.Fatalf("expected %d empty cells, got %d", Size*Size, b.Count(Empty))
	}
	if b.Full() {
		t.Fatalf("empty board reported full")
	}
}

func TestWithCopies(t *testing.T) {
	var b Board
	next := b.With(3, 4, Black)
	if b.At(3, 4) != Empty {
		t.Fatalf("With mutated the source board")
	}
	if next.At(3, 4) != Black {
		t.Fatalf("expected black at (3,4), got %v", next.At(3, 4))
	}
	if d := Diff(b, next); len(d) != 1 || d[0] != [2]int{3, 4} {
		t.Fatalf("expected exactly one differing cell, got %v", d)
	}
}

func TestAtOutOfBoundsPanics(t *testing.T) {
	cases := [][2]int{{-1, 0}, {0, -1}, {Size, 0}, {0, Size}}
	for _, rc := range cases {
		func() {
			defer func() {
				if recover() == nil {
					t.Fatalf("expected panic for %v", rc)
				}
			}()
			var b Board
			b.At(rc[0], rc[1])
		}()
	}
}

func TestDrawBoardIsFullAndBalanced(t *testing.T) {
	b := drawBoard()
	if !b.Full() {
		t.Fatalf("expected full board")
	}
	if n := b.Count(Black); n != 113 {
		t.Fatalf("expected 113 black stones, got %d", n)
	}
	if n := b.Count(White); n != 112 {
		t.Fatalf("expected 112 white stones, got %d", n)
	}
}

func TestPlayerOpponent(t *testing.T) {
	if PlayerBlack.Opponent() != PlayerWhite || PlayerWhite.Opponent() != PlayerBlack {
		t.Fatalf("opponent mapping broken")
	}
	if PlayerBlack.Cell() != Black || PlayerWhite.Cell() != White {
		t.Fatalf("cell mapping broken")
	}
}
