package xiangqi

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const initialFEN = "rnbakabnr/9/1c5c1/p1p1p1p1p/9/9/P1P1P1P1P/1C5C1/9/RNBAKABNR w"

func TestEncodeInitial(t *testing.T) {
	if got := NewInitialBoard().Encode(Red); got != initialFEN {
		t.Fatalf("Encode = %q, want %q", got, initialFEN)
	}
}

func TestDecodeInitialMatchesLayout(t *testing.T) {
	b, turn, err := DecodeFEN(initialFEN)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if turn != Red {
		t.Fatalf("turn = %s, want red", turn)
	}
	if diff := cmp.Diff(NewInitialBoard(), b); diff != "" {
		t.Fatalf("decoded board mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeEncodeAfterMoves(t *testing.T) {
	b := NewInitialBoard()
	b, _ = b.WithMove(at(7, 7), at(4, 7))
	b, _ = b.WithMove(at(7, 0), at(6, 2))
	fen := b.Encode(Black)

	decoded, turn, err := DecodeFEN(fen)
	if err != nil {
		t.Fatalf("decode %q: %v", fen, err)
	}
	if turn != Black {
		t.Fatalf("turn = %s, want black", turn)
	}
	if got := decoded.Encode(turn); got != fen {
		t.Fatalf("round trip = %q, want %q", got, fen)
	}
}

func TestDecodeInvalid(t *testing.T) {
	bad := []string{
		"",
		"rnbakabnr/9/1c5c1 w",
		"rnbakabnr/9/1c5c1/p1p1p1p1p/9/9/P1P1P1P1P/1C5C1/9/RNBAKABN w",
		"rnbakabnr/9/1c5c1/p1p1p1p1p/9/9/P1P1P1P1P/1C5C1/9/RNBAKABNRR w",
		"rnbakabnr/9/1c5c1/p1p1p1p1p/9/9/P1P1P1P1P/1C5C1/9/RNBAKXBNR w",
		"rnbakabnr/9/1c5c1/p1p1p1p1p/9/9/P1P1P1P1P/1C5C1/9/RNBAKABNR x",
		"rnbakabnr/9/1c5c1/p1p1p1p1p/9/9/P1P1P1P1P/1C5C1/9/RNBAKABNR",
	}
	for _, fen := range bad {
		if _, _, err := DecodeFEN(fen); !errors.Is(err, ErrInvalidFEN) {
			t.Errorf("DecodeFEN(%q) err = %v, want ErrInvalidFEN", fen, err)
		}
	}
}
