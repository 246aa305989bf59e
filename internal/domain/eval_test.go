package domain

import "testing"

func row(r int, cols ...int) [][2]int {
	out := make([][2]int, len(cols))
	for i, c := range cols {
		out[i] = [2]int{r, c}
	}
	return out
}

func TestLineValueTable(t *testing.T) {
	want := map[int][3]int{
		5: {100000, 100000, 100000},
		4: {10000, 1000, 0},
		3: {1000, 100, 0},
		2: {100, 10, 0},
		1: {0, 0, 0},
	}
	for count, byBlocked := range want {
		for blocked, v := range byBlocked {
			if got := lineValue(count, blocked); got != v {
				t.Fatalf("count=%d blocked=%d: expected %d, got %d", count, blocked, v, got)
			}
		}
	}
	if got := lineValue(6, 2); got != scoreFive {
		t.Fatalf("runs longer than five should score as five, got %d", got)
	}
}

func TestScore(t *testing.T) {
	cases := []struct {
		name   string
		black  [][2]int
		white  [][2]int
		r, c   int
		player Player
		want   int
	}{
		// Open on every side: four axes of two spaces each.
		{name: "empty center", r: 7, c: 7, player: PlayerBlack, want: 80},
		// Two edges block; the down-left axis has no space either way.
		{name: "empty corner", r: 0, c: 0, player: PlayerBlack, want: 30},
		{name: "top edge", r: 0, c: 7, player: PlayerWhite, want: 50},
		{name: "open four", black: row(7, 4, 5, 6), r: 7, c: 7, player: PlayerBlack, want: 10000 + 20 + 60},
		{name: "closed four", black: row(7, 4, 5, 6), white: row(7, 3), r: 7, c: 7, player: PlayerBlack, want: 1000 + 10 + 60},
		{name: "dead four", black: row(7, 4, 5, 6), white: row(7, 3, 8), r: 7, c: 7, player: PlayerBlack, want: 60},
		{name: "open three", black: row(7, 5, 6), r: 7, c: 7, player: PlayerBlack, want: 1000 + 20 + 60},
		{name: "closed three at edge", black: row(7, 0, 1), r: 7, c: 2, player: PlayerBlack, want: 100 + 10 + 60},
		{name: "open two", black: row(7, 8), r: 7, c: 7, player: PlayerBlack, want: 100 + 20 + 60},
		{name: "closed two", black: row(7, 8), white: row(7, 9), r: 7, c: 7, player: PlayerBlack, want: 10 + 10 + 60},
		{name: "five from four steps", black: row(7, 8, 9, 10, 11), r: 7, c: 7, player: PlayerBlack, want: 100000 + 10 + 60},
		// The walk stops at the first gap, so (7,5) is never reached.
		{name: "gap stops walk", black: row(7, 5, 8), r: 7, c: 7, player: PlayerBlack, want: 100 + 20 + 60},
		{name: "opponent stone blocks", black: row(7, 8), r: 7, c: 7, player: PlayerWhite, want: 10 + 60},
		{name: "both sides opponent", black: row(7, 6, 8), r: 7, c: 7, player: PlayerWhite, want: 60},
	}
	for _, tc := range cases {
		var b Board
		b = put(b, Black, tc.black...)
		b = put(b, White, tc.white...)
		if got := Score(b, tc.r, tc.c, tc.player); got != tc.want {
			t.Fatalf("%s: expected %d, got %d", tc.name, tc.want, got)
		}
	}
}

func TestScoreDiagonals(t *testing.T) {
	var b Board
	b = put(b, White, [2]int{5, 5}, [2]int{6, 6})
	// down-right open three, the other axes stay open.
	if got := Score(b, 7, 7, PlayerWhite); got != 1000+20+60 {
		t.Fatalf("down-right: expected 1080, got %d", got)
	}
	b = Board{}
	b = put(b, White, [2]int{6, 8}, [2]int{5, 9})
	if got := Score(b, 7, 7, PlayerWhite); got != 1000+20+60 {
		t.Fatalf("down-left: expected 1080, got %d", got)
	}
}

func TestScoreOccupiedPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic scoring an occupied cell")
		}
	}()
	var b Board
	b = b.With(3, 3, Black)
	Score(b, 3, 3, PlayerWhite)
}
