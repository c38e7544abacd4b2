package gosling_test

import (
	"testing"

	gm "gosling/goslingmg"
)

func playMoves(t *testing.T, b *gm.Board, moves ...string) {
	t.Helper()
	for _, moveString := range moves {
		move := findMove(t, b, moveString)
		if !b.MakeMove(move) {
			t.Fatalf("move %s rejected", moveString)
		}
	}
}

func TestRepetitionDetectedAfterKnightShuffle(t *testing.T) {
	b, err := gm.ParseFEN(gm.StartPos)
	if err != nil {
		t.Fatal(err)
	}
	playMoves(t, b,
		"g1f3", "g8f6", "f3g1", "f6g8",
		"g1f3", "g8f6", "f3g1", "f6g8",
	)
	if !b.IsRepetition() {
		t.Fatal("knight shuffle should be detected as a repetition")
	}
}

func TestNoRepetitionOnFreshPosition(t *testing.T) {
	b, err := gm.ParseFEN(gm.StartPos)
	if err != nil {
		t.Fatal(err)
	}
	playMoves(t, b, "e2e4", "e7e5", "g1f3")
	if b.IsRepetition() {
		t.Fatal("no position has repeated yet")
	}
}

func TestRepetitionScanStopsAtPawnMove(t *testing.T) {
	b, err := gm.ParseFEN(gm.StartPos)
	if err != nil {
		t.Fatal(err)
	}
	// The pawn move resets the fifty-move counter, so the earlier knight
	// wanderings are unreachable by the repetition scan.
	playMoves(t, b,
		"g1f3", "g8f6", "f3g1", "f6g8",
		"e2e4", "e7e5",
	)
	if b.IsRepetition() {
		t.Fatal("scan must not cross the last pawn move")
	}
}
