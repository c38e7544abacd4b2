package gosling_test

import (
	"math/rand"
	"testing"

	gm "gosling/goslingmg"
)

// findMove locates a generated move by its coordinate string, so the tests
// never have to hand-assemble move words.
func findMove(t *testing.T, b *gm.Board, moveString string) gm.Move {
	t.Helper()
	ml := gm.NewMoveList(b, false)
	for i := 0; i < ml.Len(); i++ {
		if ml.Get(i).String() == moveString {
			return ml.Get(i)
		}
	}
	t.Fatalf("move %s not generated in position %s", moveString, b.ToFEN())
	return gm.MoveNone
}

func makeUndoRoundTrip(t *testing.T, fen, moveString string) {
	t.Helper()
	b, err := gm.ParseFEN(fen)
	if err != nil {
		t.Fatal(err)
	}
	startFEN := b.ToFEN()
	startKey := b.PositionKey()
	move := findMove(t, b, moveString)
	if !b.MakeMove(move) {
		t.Fatalf("MakeMove(%s) rejected a legal move", moveString)
	}
	if !b.Validate() {
		t.Fatalf("board invalid after MakeMove(%s)", moveString)
	}
	b.UndoMove()
	if !b.Validate() {
		t.Fatalf("board invalid after UndoMove(%s)", moveString)
	}
	if got := b.ToFEN(); got != startFEN {
		t.Fatalf("FEN mismatch after undo: got %q want %q", got, startFEN)
	}
	if b.PositionKey() != startKey {
		t.Fatalf("position key mismatch after undo of %s", moveString)
	}
	if b.PositionKey() != b.GeneratePositionKey() {
		t.Fatalf("incremental key diverged from recomputed key")
	}
}

func TestMakeUndoNormalMove(t *testing.T) {
	makeUndoRoundTrip(t, gm.StartPos, "e2e4")
	makeUndoRoundTrip(t, gm.StartPos, "g1f3")
}

func TestMakeUndoCapture(t *testing.T) {
	makeUndoRoundTrip(t, "r3k3/8/8/8/8/8/8/R3K3 w - - 0 1", "a1a8")
	makeUndoRoundTrip(t, "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", "e5f7")
}

func TestMakeUndoEnPassant(t *testing.T) {
	makeUndoRoundTrip(t, "k7/8/8/3pP3/8/8/8/7K w - d6 0 2", "e5d6")
	makeUndoRoundTrip(t, "7k/8/8/8/3Pp3/8/8/K7 b - d3 0 1", "e4d3")
}

func TestMakeUndoCastling(t *testing.T) {
	makeUndoRoundTrip(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", "e1g1")
	makeUndoRoundTrip(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", "e1c1")
	makeUndoRoundTrip(t, "r3k2r/8/8/8/8/8/8/R3K2R b KQkq - 0 1", "e8g8")
	makeUndoRoundTrip(t, "r3k2r/8/8/8/8/8/8/R3K2R b KQkq - 0 1", "e8c8")
}

func TestMakeUndoPromotion(t *testing.T) {
	makeUndoRoundTrip(t, "1n5k/P7/8/8/8/8/8/7K w - - 0 1", "a7a8q")
	makeUndoRoundTrip(t, "1n5k/P7/8/8/8/8/8/7K w - - 0 1", "a7b8n")
}

func TestCastlingMovesRookAndSetsFlag(t *testing.T) {
	b, err := gm.ParseFEN("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	move := findMove(t, b, "e1g1")
	if !b.MakeMove(move) {
		t.Fatal("castle rejected")
	}
	if b.PieceOn(gm.F1) != gm.WhiteRook {
		t.Fatalf("expected rook on f1 after castling, got %v", b.PieceOn(gm.F1))
	}
	if !b.HasCastled(gm.White) {
		t.Fatal("hasCastled not set after castling")
	}
	if b.CastlePerms()&(gm.CastleWK|gm.CastleWQ) != 0 {
		t.Fatal("white castle rights not cleared after castling")
	}
	b.UndoMove()
	if b.HasCastled(gm.White) {
		t.Fatal("hasCastled not cleared after undo")
	}
}

func TestIllegalMoveRejectedAndStateRestored(t *testing.T) {
	// The e-file pin: the bishop on e7 cannot leave the file without
	// exposing the black king to the white rook.
	b, err := gm.ParseFEN("4k3/4b3/8/8/8/8/8/4R1K1 b - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	before := b.ToFEN()
	move := findMove(t, b, "e7d6")
	if b.MakeMove(move) {
		t.Fatal("pinned bishop move should be illegal")
	}
	if got := b.ToFEN(); got != before {
		t.Fatalf("board changed after rejected move: %q -> %q", before, got)
	}
	if !b.Validate() {
		t.Fatal("board invalid after rejected move")
	}
}

// TestRandomPlayoutsKeepInvariants plays random legal games and checks the
// audit after every make and undo. This is the broad net for incremental
// update bugs that the targeted cases above miss.
func TestRandomPlayoutsKeepInvariants(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))
	for game := 0; game < 20; game++ {
		b, err := gm.ParseFEN(gm.StartPos)
		if err != nil {
			t.Fatal(err)
		}
		var made int
		for move := 0; move < 60; move++ {
			ml := gm.NewMoveList(b, false)
			var legal []gm.Move
			for i := 0; i < ml.Len(); i++ {
				if b.MakeMove(ml.Get(i)) {
					b.UndoMove()
					legal = append(legal, ml.Get(i))
				}
			}
			if len(legal) == 0 {
				break
			}
			if !b.MakeMove(legal[rnd.Intn(len(legal))]) {
				t.Fatal("legal move rejected on replay")
			}
			made++
			if !b.Validate() {
				t.Fatalf("game %d: invariants broken after move %d: %s", game, move, b.ToFEN())
			}
			if b.PositionKey() != b.GeneratePositionKey() {
				t.Fatalf("game %d: incremental key diverged at move %d", game, move)
			}
		}
		for ; made > 0; made-- {
			b.UndoMove()
			if !b.Validate() {
				t.Fatalf("game %d: invariants broken during unwind", game)
			}
		}
		if b.ToFEN() != gm.StartPos {
			t.Fatalf("game %d: unwind did not restore the start position: %s", game, b.ToFEN())
		}
	}
}
