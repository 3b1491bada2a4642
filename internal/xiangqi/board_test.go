package xiangqi

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type placed struct {
	at    Coord
	typ   PieceType
	color Color
}

func boardOf(ps ...placed) Board {
	b := make(Board, len(ps))
	for _, p := range ps {
		b[p.at] = newPiece(p.typ, p.color, p.at)
	}
	return b
}

func at(x, y int) Coord { return Coord{X: x, Y: y} }

func TestInitialBoardLayout(t *testing.T) {
	b := NewInitialBoard()
	if len(b) != 32 {
		t.Fatalf("initial board has %d pieces, want 32", len(b))
	}
	if got := b.Count(Red); got != 16 {
		t.Fatalf("red pieces = %d, want 16", got)
	}
	if got := b.Count(Black); got != 16 {
		t.Fatalf("black pieces = %d, want 16", got)
	}
	if !b.HasGeneral(Red) || !b.HasGeneral(Black) {
		t.Fatalf("both generals must be present")
	}

	want := map[Coord]Piece{
		at(4, 9): {Type: PieceGeneral, Color: Red, ID: "red-general-4-9"},
		at(4, 0): {Type: PieceGeneral, Color: Black, ID: "black-general-4-0"},
		at(1, 2): {Type: PieceCannon, Color: Black, ID: "black-cannon-1-2"},
		at(7, 7): {Type: PieceCannon, Color: Red, ID: "red-cannon-7-7"},
		at(0, 6): {Type: PieceSoldier, Color: Red, ID: "red-soldier-0-6"},
		at(8, 3): {Type: PieceSoldier, Color: Black, ID: "black-soldier-8-3"},
	}
	for c, wantPiece := range want {
		got, ok := b.At(c)
		if !ok {
			t.Fatalf("no piece at %s", c)
		}
		if diff := cmp.Diff(wantPiece, got); diff != "" {
			t.Errorf("piece at %s mismatch (-want +got):\n%s", c, diff)
		}
	}
}

func TestInBounds(t *testing.T) {
	cases := []struct {
		c    Coord
		want bool
	}{
		{at(0, 0), true},
		{at(8, 9), true},
		{at(9, 0), false},
		{at(0, 10), false},
		{at(-1, 4), false},
		{at(4, -1), false},
	}
	for _, tc := range cases {
		if got := tc.c.InBounds(); got != tc.want {
			t.Errorf("InBounds(%s) = %v, want %v", tc.c, got, tc.want)
		}
	}
}

func TestWithMoveRelocatesAndCaptures(t *testing.T) {
	b := boardOf(
		placed{at(0, 9), PieceChariot, Red},
		placed{at(0, 3), PieceSoldier, Black},
	)
	nb, err := b.WithMove(at(0, 9), at(0, 3))
	if err != nil {
		t.Fatalf("WithMove: %v", err)
	}
	if _, ok := nb.At(at(0, 9)); ok {
		t.Fatalf("origin square should be empty")
	}
	got, ok := nb.At(at(0, 3))
	if !ok || got.ID != "red-chariot-0-9" {
		t.Fatalf("destination holds %+v, want the red chariot", got)
	}
	if len(nb) != 1 {
		t.Fatalf("captured piece should be removed, board has %d pieces", len(nb))
	}
	// 原棋盘不受影响
	if len(b) != 2 {
		t.Fatalf("source board mutated")
	}
}

func TestWithMoveEmptyOrigin(t *testing.T) {
	_, err := NewInitialBoard().WithMove(at(4, 4), at(4, 5))
	if !errors.Is(err, ErrNoPiece) || !errors.Is(err, ErrPrecondition) {
		t.Fatalf("expected ErrNoPiece wrapping ErrPrecondition, got %v", err)
	}
}

func TestBoardString(t *testing.T) {
	s := NewInitialBoard().String()
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	if len(lines) != Ranks+1 {
		t.Fatalf("got %d lines, want %d", len(lines), Ranks+1)
	}
	if lines[0] != "  0 1 2 3 4 5 6 7 8" {
		t.Fatalf("header = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "0 BC BH BE BA BG") {
		t.Fatalf("black back rank = %q", lines[1])
	}
	if !strings.HasPrefix(lines[8], "7  . RN") {
		t.Fatalf("red cannon rank = %q", lines[8])
	}
}

func TestCoordsOrder(t *testing.T) {
	b := boardOf(
		placed{at(5, 9), PieceAdvisor, Red},
		placed{at(8, 0), PieceChariot, Black},
		placed{at(0, 9), PieceChariot, Red},
	)
	want := []Coord{at(8, 0), at(0, 9), at(5, 9)}
	if diff := cmp.Diff(want, b.Coords()); diff != "" {
		t.Fatalf("Coords mismatch (-want +got):\n%s", diff)
	}
}
