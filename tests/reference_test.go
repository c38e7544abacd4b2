package gosling_test

import (
	"testing"

	"github.com/dylhunn/dragontoothmg"

	gm "gosling/goslingmg"
)

// These tests run the same positions through dragontoothmg and compare
// counts. The published perft numbers already pin the standard positions;
// the differential run covers a wider mix cheaply.

var referenceFENs = []string{
	gm.StartPos,
	"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
	"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2pP/R2Q1RK1 w kq - 0 1",
	"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
	"r4rk1/1pp1qppp/p1np1n2/2b1p1B1/2B1P1b1/P1NP1N2/1PP1QPPP/R4RK1 w - - 0 10",
	"k7/8/8/3pP3/8/8/8/7K w - d6 0 2",
	"1n5k/P7/8/8/8/8/8/7K w - - 0 1",
	"8/8/8/4k3/8/4K3/4P3/8 b - - 0 40",
}

func legalMoveCount(b *gm.Board) int {
	count := 0
	ml := gm.NewMoveList(b, false)
	for i := 0; i < ml.Len(); i++ {
		if b.MakeMove(ml.Get(i)) {
			b.UndoMove()
			count++
		}
	}
	return count
}

func TestLegalMoveCountsMatchReference(t *testing.T) {
	for _, fen := range referenceFENs {
		board, err := gm.ParseFEN(fen)
		if err != nil {
			t.Fatalf("ParseFEN(%q): %v", fen, err)
		}
		reference := dragontoothmg.ParseFen(fen)
		want := len(reference.GenerateLegalMoves())
		if got := legalMoveCount(board); got != want {
			t.Fatalf("%s: legal move count %d, reference says %d", fen, got, want)
		}
	}
}

func referencePerft(b *dragontoothmg.Board, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	var nodes uint64
	for _, move := range b.GenerateLegalMoves() {
		unapply := b.Apply(move)
		nodes += referencePerft(b, depth-1)
		unapply()
	}
	return nodes
}

func TestPerftMatchesReference(t *testing.T) {
	depth := 3
	if testing.Short() {
		depth = 2
	}
	for _, fen := range referenceFENs {
		board, err := gm.ParseFEN(fen)
		if err != nil {
			t.Fatalf("ParseFEN(%q): %v", fen, err)
		}
		reference := dragontoothmg.ParseFen(fen)
		want := referencePerft(&reference, depth)
		if got := gm.Perft(board, depth); got != want {
			t.Fatalf("%s: perft(%d) = %d, reference says %d", fen, depth, got, want)
		}
	}
}
