package gosling_test

import (
	"sort"
	"strings"
	"testing"

	gm "gosling/goslingmg"
)

func legalMoveStrings(b *gm.Board) []string {
	ml := gm.NewMoveList(b, false)
	var out []string
	for i := 0; i < ml.Len(); i++ {
		if b.MakeMove(ml.Get(i)) {
			b.UndoMove()
			out = append(out, ml.Get(i).String())
		}
	}
	sort.Strings(out)
	return out
}

func TestStartPositionHasTwentyMoves(t *testing.T) {
	b, err := gm.ParseFEN(gm.StartPos)
	if err != nil {
		t.Fatal(err)
	}
	if got := len(legalMoveStrings(b)); got != 20 {
		t.Fatalf("start position legal moves: got %d want 20", got)
	}
}

func TestCaptureGeneratorIsCaptureSubset(t *testing.T) {
	fens := []string{
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
		"k7/8/8/3pP3/8/8/8/7K w - d6 0 2",
	}
	for _, fen := range fens {
		b, err := gm.ParseFEN(fen)
		if err != nil {
			t.Fatal(err)
		}
		all := make(map[gm.Move]bool)
		ml := gm.NewMoveList(b, false)
		for i := 0; i < ml.Len(); i++ {
			all[ml.Get(i)] = true
		}
		captures := gm.NewMoveList(b, true)
		for i := 0; i < captures.Len(); i++ {
			move := captures.Get(i)
			if !move.IsCapture() && !move.IsPromotion() {
				t.Fatalf("%s: capture generator emitted quiet move %s", fen, move.String())
			}
			if !all[move] {
				t.Fatalf("%s: capture generator emitted %s not in the full move list", fen, move.String())
			}
		}
		// And every capture in the full list shows up in the capture list.
		capSet := make(map[gm.Move]bool)
		for i := 0; i < captures.Len(); i++ {
			capSet[captures.Get(i)] = true
		}
		for move := range all {
			if move.IsCapture() && !capSet[move] {
				t.Fatalf("%s: capture %s missing from the capture generator", fen, move.String())
			}
		}
	}
}

// mirrorFEN flips a position vertically and swaps the colors, producing
// the color-mirrored position.
func mirrorFEN(t *testing.T, fen string) string {
	t.Helper()
	fields := strings.Fields(fen)
	rows := strings.Split(fields[0], "/")
	swapCase := func(s string) string {
		var sb strings.Builder
		for _, c := range s {
			switch {
			case c >= 'a' && c <= 'z':
				sb.WriteRune(c - 'a' + 'A')
			case c >= 'A' && c <= 'Z':
				sb.WriteRune(c - 'A' + 'a')
			default:
				sb.WriteRune(c)
			}
		}
		return sb.String()
	}
	mirrored := make([]string, 8)
	for i := range rows {
		mirrored[7-i] = swapCase(rows[i])
	}
	side := "w"
	if fields[1] == "w" {
		side = "b"
	}
	castle := fields[2]
	if castle != "-" {
		castle = swapCase(castle)
		// Keep the canonical ordering KQkq.
		order := []byte{}
		for _, c := range []byte{'K', 'Q', 'k', 'q'} {
			if strings.IndexByte(castle, c) >= 0 {
				order = append(order, c)
			}
		}
		castle = string(order)
	}
	ep := fields[3]
	if ep != "-" {
		rank := ep[1]
		ep = string(ep[0]) + string('1'+'8'-rank)
	}
	return strings.Join([]string{strings.Join(mirrored, "/"), side, castle, ep, fields[4], fields[5]}, " ")
}

func mirrorMoveString(moveString string) string {
	flip := func(r byte) byte { return '1' + '8' - r }
	out := []byte{moveString[0], flip(moveString[1]), moveString[2], flip(moveString[3])}
	if len(moveString) == 5 {
		out = append(out, moveString[4])
	}
	return string(out)
}

// TestMoveGenColorSymmetry checks that mirroring a position vertically and
// flipping the side to move yields the mirrored move list.
func TestMoveGenColorSymmetry(t *testing.T) {
	fens := []string{
		gm.StartPos,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
	}
	for _, fen := range fens {
		b, err := gm.ParseFEN(fen)
		if err != nil {
			t.Fatal(err)
		}
		mirrored, err := gm.ParseFEN(mirrorFEN(t, fen))
		if err != nil {
			t.Fatalf("mirror of %q did not parse: %v", fen, err)
		}
		moves := legalMoveStrings(b)
		want := make([]string, len(moves))
		for i, moveString := range moves {
			want[i] = mirrorMoveString(moveString)
		}
		sort.Strings(want)
		got := legalMoveStrings(mirrored)
		if len(got) != len(want) {
			t.Fatalf("%s: mirrored move count %d != %d", fen, len(got), len(want))
		}
		for i := range got {
			if got[i] != want[i] {
				t.Fatalf("%s: mirrored move list differs at %d: got %s want %s", fen, i, got[i], want[i])
			}
		}
	}
}

func TestOrderMovesPutsHashMoveFirst(t *testing.T) {
	b, err := gm.ParseFEN(gm.StartPos)
	if err != nil {
		t.Fatal(err)
	}
	var killers [gm.MaxSearchDepth][2]gm.Move
	var history [gm.NumPieceTypes][64]int32
	var counters [gm.NumPieceTypes][64]gm.Move
	ml := gm.NewMoveList(b, false)
	pv := ml.Get(ml.Len() - 1)
	ml.OrderMoves(pv, &killers, &history, &counters)
	if ml.Get(0) != pv {
		t.Fatalf("hash move not ordered first: got %s want %s", ml.Get(0).String(), pv.String())
	}
}

func TestOrderMovesCapturesBeforeKillers(t *testing.T) {
	// Kiwipete has both captures and plenty of quiet moves.
	b, err := gm.ParseFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	var killers [gm.MaxSearchDepth][2]gm.Move
	var history [gm.NumPieceTypes][64]int32
	var counters [gm.NumPieceTypes][64]gm.Move
	ml := gm.NewMoveList(b, false)
	// Mark some quiet move as the killer for ply 0.
	for i := 0; i < ml.Len(); i++ {
		if !ml.Get(i).IsCapture() && !ml.Get(i).IsPromotion() {
			killers[0][0] = ml.Get(i)
			break
		}
	}
	ml.OrderMoves(gm.MoveNone, &killers, &history, &counters)
	seenKiller := false
	for i := 0; i < ml.Len(); i++ {
		move := ml.Get(i)
		if move == killers[0][0] {
			seenKiller = true
			continue
		}
		if move.IsCapture() && seenKiller {
			t.Fatalf("capture %s ordered after the killer move", move.String())
		}
	}
	if !seenKiller {
		t.Fatal("killer move missing from ordered list")
	}
}
