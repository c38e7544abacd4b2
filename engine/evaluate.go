package engine

import (
	"math/bits"

	gm "gosling/goslingmg"
)

// pieceSquare[piece][sq] estimates how much a piece likes a square, in
// centipawns on top of its material value. Knights and bishops prefer the
// center, rooks the seventh rank and open center files, pawns want to
// advance, kings want to stay tucked away behind the castled files. The
// black tables are the white ones mirrored by rank.
var pieceSquare = [gm.NumPieceTypes][64]int{
	{ // white pawn
		0, 0, 0, 0, 0, 0, 0, 0,
		10, 10, 0, -10, -10, 0, 10, 10,
		5, 0, 0, 5, 5, 0, 0, 5,
		0, 0, 10, 20, 20, 10, 0, 0,
		10, 10, 20, 30, 30, 20, 10, 10,
		30, 30, 30, 40, 40, 30, 30, 30,
		70, 70, 70, 70, 70, 70, 70, 70,
		0, 0, 0, 0, 0, 0, 0, 0,
	},
	{ // white knight
		-10, -10, 0, 0, 0, 0, -10, -10,
		0, 0, 0, 5, 5, 0, 0, 0,
		0, 0, 10, 10, 10, 10, 0, 0,
		0, 5, 10, 20, 20, 10, 5, 0,
		5, 10, 15, 20, 20, 15, 10, 5,
		5, 10, 10, 20, 20, 10, 10, 5,
		0, 0, 5, 10, 10, 5, 0, 0,
		-10, 0, 0, 0, 0, 0, 0, -10,
	},
	{ // white bishop
		-20, 0, -10, 0, 0, -10, 0, -20,
		0, 10, 0, 10, 10, 0, 10, 0,
		0, 0, 10, 15, 15, 10, 0, 0,
		0, 10, 15, 20, 20, 15, 10, 0,
		0, 10, 15, 20, 20, 15, 10, 0,
		0, 0, 10, 15, 15, 10, 0, 0,
		0, 0, 0, 10, 10, 0, 0, 0,
		-20, 0, 0, 0, 0, 0, 0, -20,
	},
	{ // white rook
		0, 0, 5, 20, 20, 5, 0, 0,
		0, 0, 5, 5, 5, 5, 0, 0,
		0, 0, 5, 5, 5, 5, 0, 0,
		0, 0, 5, 5, 5, 5, 0, 0,
		0, 0, 5, 5, 5, 5, 0, 0,
		0, 0, 5, 5, 5, 5, 0, 0,
		20, 20, 20, 20, 20, 20, 20, 20,
		0, 0, 5, 5, 5, 5, 0, 0,
	},
	{ // white queen
		0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 10, 10, 10, 10, 0, 0,
		0, 0, 10, 10, 10, 10, 0, 0,
		0, 0, 10, 10, 10, 10, 0, 0,
		0, 0, 10, 10, 10, 10, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0,
	},
	{ // white king
		0, 0, 15, 0, -10, 0, 20, 0,
		0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0,
	},
	{ // black pawn
		0, 0, 0, 0, 0, 0, 0, 0,
		70, 70, 70, 70, 70, 70, 70, 70,
		30, 30, 30, 40, 40, 30, 30, 30,
		10, 10, 20, 30, 30, 20, 10, 10,
		0, 0, 10, 20, 20, 10, 0, 0,
		5, 0, 0, 5, 5, 0, 0, 5,
		10, 10, 0, -10, -10, 0, 10, 10,
		0, 0, 0, 0, 0, 0, 0, 0,
	},
	{ // black knight
		-10, 0, 0, 0, 0, 0, 0, -10,
		0, 0, 5, 10, 10, 5, 0, 0,
		5, 10, 10, 20, 20, 10, 10, 5,
		5, 10, 15, 20, 20, 15, 10, 5,
		0, 5, 10, 20, 20, 10, 5, 0,
		0, 0, 10, 10, 10, 10, 0, 0,
		0, 0, 0, 5, 5, 0, 0, 0,
		-10, -10, 0, 0, 0, 0, -10, -10,
	},
	{ // black bishop
		-20, 0, 0, 0, 0, 0, 0, -20,
		0, 0, 0, 10, 10, 0, 0, 0,
		0, 0, 10, 15, 15, 10, 0, 0,
		0, 10, 15, 20, 20, 15, 10, 0,
		0, 10, 15, 20, 20, 15, 10, 0,
		0, 0, 10, 15, 15, 10, 0, 0,
		0, 10, 0, 10, 10, 0, 10, 0,
		-20, 0, -10, 0, 0, -10, 0, -20,
	},
	{ // black rook
		0, 0, 5, 5, 5, 5, 0, 0,
		20, 20, 20, 20, 20, 20, 20, 20,
		0, 0, 5, 5, 5, 5, 0, 0,
		0, 0, 5, 5, 5, 5, 0, 0,
		0, 0, 5, 5, 5, 5, 0, 0,
		0, 0, 5, 5, 5, 5, 0, 0,
		0, 0, 5, 5, 5, 5, 0, 0,
		0, 0, 5, 20, 20, 5, 0, 0,
	},
	{ // black queen
		0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 10, 10, 10, 10, 0, 0,
		0, 0, 10, 10, 10, 10, 0, 0,
		0, 0, 10, 10, 10, 10, 0, 0,
		0, 0, 10, 10, 10, 10, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0,
	},
	{ // black king
		0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 15, 0, -10, 0, 20, 0,
	},
}

// File masks for the pawn-structure terms: the file itself, its two
// neighbours, and the union of all three.
var sameFile = [8]uint64{
	0x0101010101010101, 0x0202020202020202,
	0x0404040404040404, 0x0808080808080808,
	0x1010101010101010, 0x2020202020202020,
	0x4040404040404040, 0x8080808080808080,
}
var sideFiles = [8]uint64{
	0x0202020202020202, 0x0505050505050505,
	0x0A0A0A0A0A0A0A0A, 0x1414141414141414,
	0x2828282828282828, 0x5050505050505050,
	0xA0A0A0A0A0A0A0A0, 0x4040404040404040,
}
var adjFiles = [8]uint64{
	0x0303030303030303, 0x0707070707070707,
	0x0E0E0E0E0E0E0E0E, 0x1C1C1C1C1C1C1C1C,
	0x3838383838383838, 0x7070707070707070,
	0xE0E0E0E0E0E0E0E0, 0xC0C0C0C0C0C0C0C0,
}

// Pawn-structure penalties and bonuses, in centipawns.
const (
	isolatedPawnPenalty  = 15
	doubledPawnPenalty   = 5
	protectedPawnBonus   = 5
	passedPawnBonus      = 20
	blockedPawnPenalty   = 3
	backwardsPawnPenalty = 10
)

func pawnIsIsolated(square int, friendlyPawns uint64) bool {
	return friendlyPawns&sideFiles[square&7] == 0
}

func pawnIsDoubled(square int, friendlyPawns uint64) bool {
	return bits.OnesCount64(sameFile[square&7]&friendlyPawns) > 1
}

// A passed pawn has no enemy pawn ahead of it on its own or either
// adjacent file. The rank shift pushes the adjacent-file mask past the
// pawn; shifting by 64 or more simply leaves no mask, which is right for
// pawns about to promote.
func whitePawnIsPassed(square int, enemyPawns uint64) bool {
	file, rank := square&7, square>>3
	return enemyPawns&(adjFiles[file]<<uint((rank+1)*8)) == 0
}

func blackPawnIsPassed(square int, enemyPawns uint64) bool {
	file, rank := square&7, square>>3
	return enemyPawns&(adjFiles[file]>>uint((8-rank)*8)) == 0
}

// A backwards pawn has no friendly pawn beside or behind it and cannot
// advance because the stop square is covered by an enemy pawn.
func whitePawnIsBackwards(square int, friendlyPawns, enemyPawns uint64) bool {
	file, rank := square&7, square>>3
	behind := sideFiles[file] >> uint((7-rank)*8)
	sq := uint64(1) << uint(square)
	blockers := (sq << 15 &^ gm.FileH) | (sq << 17 &^ gm.FileA)
	return behind&friendlyPawns == 0 && blockers&enemyPawns != 0
}

func blackPawnIsBackwards(square int, friendlyPawns, enemyPawns uint64) bool {
	file, rank := square&7, square>>3
	behind := sideFiles[file] << uint(rank*8)
	sq := uint64(1) << uint(square)
	blockers := (sq >> 15 &^ gm.FileA) | (sq >> 17 &^ gm.FileH)
	return behind&friendlyPawns == 0 && blockers&enemyPawns != 0
}

// evaluatePosition scores the position in centipawns from the side to
// move's perspective: material difference, piece-square values, and the
// pawn-structure terms. Deterministic, pure in the board state, and always
// well inside the mate band.
func (e *Engine) evaluatePosition() int {
	b := &e.board
	eval := b.Material(gm.White) - b.Material(gm.Black)
	for bb := b.ColorBitboard(gm.White); bb != 0; bb &= bb - 1 {
		square := bits.TrailingZeros64(bb)
		eval += pieceSquare[b.PieceOn(square)][square]
	}
	for bb := b.ColorBitboard(gm.Black); bb != 0; bb &= bb - 1 {
		square := bits.TrailingZeros64(bb)
		eval -= pieceSquare[b.PieceOn(square)][square]
	}

	whitePawns := b.PieceBitboard(gm.WhitePawn)
	blackPawns := b.PieceBitboard(gm.BlackPawn)
	whitePawnAttacks := gm.WhitePawnAttacksLeft(whitePawns) | gm.WhitePawnAttacksRight(whitePawns)
	blackPawnAttacks := gm.BlackPawnAttacksLeft(blackPawns) | gm.BlackPawnAttacksRight(blackPawns)

	for bb := whitePawns; bb != 0; bb &= bb - 1 {
		pawn := bits.TrailingZeros64(bb)
		if pawnIsIsolated(pawn, whitePawns) {
			eval -= isolatedPawnPenalty
		}
		if pawnIsDoubled(pawn, whitePawns) {
			eval -= doubledPawnPenalty
		}
		if whitePawnAttacks&(1<<uint(pawn)) != 0 {
			eval += protectedPawnBonus
		}
		if whitePawnIsPassed(pawn, blackPawns) {
			eval += passedPawnBonus
		}
		if b.PieceOn(pawn+8) != gm.NoPiece {
			eval -= blockedPawnPenalty
		} else if whitePawnIsBackwards(pawn, whitePawns, blackPawns) {
			eval -= backwardsPawnPenalty
		}
	}
	for bb := blackPawns; bb != 0; bb &= bb - 1 {
		pawn := bits.TrailingZeros64(bb)
		if pawnIsIsolated(pawn, blackPawns) {
			eval += isolatedPawnPenalty
		}
		if pawnIsDoubled(pawn, blackPawns) {
			eval += doubledPawnPenalty
		}
		if blackPawnAttacks&(1<<uint(pawn)) != 0 {
			eval -= protectedPawnBonus
		}
		if blackPawnIsPassed(pawn, whitePawns) {
			eval -= passedPawnBonus
		}
		if b.PieceOn(pawn-8) != gm.NoPiece {
			eval += blockedPawnPenalty
		} else if blackPawnIsBackwards(pawn, blackPawns, whitePawns) {
			eval += backwardsPawnPenalty
		}
	}

	if b.Side() == gm.White {
		return eval
	}
	return -eval
}
