package bench

import (
	"testing"

	gm "gosling/goslingmg"
)

func benchMoveGen(b *testing.B, fen string, onlyCaptures bool) {
	board, err := gm.ParseFEN(fen)
	if err != nil {
		b.Fatalf("ParseFEN: %v", err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = gm.NewMoveList(board, onlyCaptures)
	}
}

func BenchmarkMoveGen_Initial(b *testing.B) {
	benchMoveGen(b, gm.StartPos, false)
}

func BenchmarkMoveGen_Kiwipete(b *testing.B) {
	benchMoveGen(b, "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", false)
}

func BenchmarkMoveGen_KiwipeteCaptures(b *testing.B) {
	benchMoveGen(b, "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", true)
}

func BenchmarkSquaresAttacked(b *testing.B) {
	board, err := gm.ParseFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	if err != nil {
		b.Fatalf("ParseFEN: %v", err)
	}
	king := board.PieceBitboard(gm.WhiteKing)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = board.SquaresAttacked(king, gm.Black)
	}
}
