package goslingmg

import "math/bits"

// Piece codes. White pieces are 0-5, black pieces are 6-11, so that
// piece / 6 gives the color and the pieceColor table stays branch-free.
type Piece int

const (
	WhitePawn Piece = iota
	WhiteKnight
	WhiteBishop
	WhiteRook
	WhiteQueen
	WhiteKing
	BlackPawn
	BlackKnight
	BlackBishop
	BlackRook
	BlackQueen
	BlackKing

	NoPiece Piece = 12
)

const NumPieceTypes = 12

type Color int

const (
	White Color = iota
	Black
	BothColors
)

// Square indices: A1 = 0, B1 = 1, ..., H8 = 63. File = sq & 7, rank = sq >> 3.
const (
	A1 = iota
	B1
	C1
	D1
	E1
	F1
	G1
	H1
)
const (
	A8 = 56 + iota
	B8
	C8
	D8
	E8
	F8
	G8
	H8
)

const NoSquare = -1

// Castling right bit flags, matching the order of the FEN castle field.
const (
	CastleWK = 0x1
	CastleWQ = 0x2
	CastleBK = 0x4
	CastleBQ = 0x8
)

// MaxSearchDepth bounds the search recursion and sizes the killer tables.
const MaxSearchDepth = 128

var pieceColor = [NumPieceTypes]Color{
	White, White, White, White, White, White,
	Black, Black, Black, Black, Black, Black,
}

// Material values in centipawns. Kings carry no material (they are never
// captured), so checkmate is handled by the search rather than the counts.
var pieceMaterial = [NumPieceTypes]int{
	100, 325, 330, 500, 900, 0, 100, 325, 330, 500, 900, 0,
}

const startingMaterial = 4010

var pieceChar = [NumPieceTypes]byte{
	'p', 'n', 'b', 'r', 'q', 'k', 'p', 'n', 'b', 'r', 'q', 'k',
}

// pieceOfType[color][t] maps a colorless type index (0=pawn .. 5=king) to the
// concrete piece code for that color.
var pieceOfType = [2][6]Piece{
	{WhitePawn, WhiteKnight, WhiteBishop, WhiteRook, WhiteQueen, WhiteKing},
	{BlackPawn, BlackKnight, BlackBishop, BlackRook, BlackQueen, BlackKing},
}

var defaultPieces = [64]Piece{
	WhiteRook, WhiteKnight, WhiteBishop, WhiteQueen, WhiteKing, WhiteBishop, WhiteKnight, WhiteRook,
	WhitePawn, WhitePawn, WhitePawn, WhitePawn, WhitePawn, WhitePawn, WhitePawn, WhitePawn,
	NoPiece, NoPiece, NoPiece, NoPiece, NoPiece, NoPiece, NoPiece, NoPiece,
	NoPiece, NoPiece, NoPiece, NoPiece, NoPiece, NoPiece, NoPiece, NoPiece,
	NoPiece, NoPiece, NoPiece, NoPiece, NoPiece, NoPiece, NoPiece, NoPiece,
	NoPiece, NoPiece, NoPiece, NoPiece, NoPiece, NoPiece, NoPiece, NoPiece,
	BlackPawn, BlackPawn, BlackPawn, BlackPawn, BlackPawn, BlackPawn, BlackPawn, BlackPawn,
	BlackRook, BlackKnight, BlackBishop, BlackQueen, BlackKing, BlackBishop, BlackKnight, BlackRook,
}

// undo holds everything needed to reverse one half-move exactly.
type undo struct {
	move            Move
	castlePerms     int
	fiftyMoveCount  int
	fullMoveNumber  int
	enPassantSquare int
	positionKey     uint64
}

// Board is the authoritative game state. The 12 piece bitboards, 3 color
// bitboards, mailbox and material counts are kept in lockstep by
// addPiece/clearPiece/movePiece; the position key is maintained
// incrementally and must always equal GeneratePositionKey().
type Board struct {
	pieceBitboards [NumPieceTypes]uint64
	colorBitboards [3]uint64
	pieces         [64]Piece

	sideToMove      Color
	ply             int
	searchPly       int
	castlePerms     int
	fiftyMoveCount  int
	fullMoveNumber  int
	enPassantSquare int
	material        [2]int
	hasCastled      [2]bool
	history         []undo
	positionKey     uint64
}

// PieceOn returns the piece on the given square, or NoPiece.
func (b *Board) PieceOn(sq int) Piece { return b.pieces[sq] }

// Side reports which color is to move.
func (b *Board) Side() Color { return b.sideToMove }

// PieceBitboard returns the bitboard of the given piece type.
func (b *Board) PieceBitboard(piece Piece) uint64 { return b.pieceBitboards[piece] }

// ColorBitboard returns the occupancy of one color, or of both with BothColors.
func (b *Board) ColorBitboard(color Color) uint64 { return b.colorBitboards[color] }

// CastlePerms returns the current castle-rights mask.
func (b *Board) CastlePerms() int { return b.castlePerms }

// EnPassantSquare returns the en passant target square, or NoSquare.
func (b *Board) EnPassantSquare() int { return b.enPassantSquare }

// FiftyMoveCount returns the half-move count since the last capture or pawn move.
func (b *Board) FiftyMoveCount() int { return b.fiftyMoveCount }

// FullMoveNumber returns the full-move counter from the FEN (incremented after Black moves).
func (b *Board) FullMoveNumber() int { return b.fullMoveNumber }

// PositionKey returns the incrementally maintained zobrist key.
func (b *Board) PositionKey() uint64 { return b.positionKey }

// SearchPly returns the number of half-moves made in the current search.
func (b *Board) SearchPly() int { return b.searchPly }

// Ply returns the number of half-moves made on the board since setup.
func (b *Board) Ply() int { return b.ply }

// HasCastled reports whether the given side has castled (and not undone it).
func (b *Board) HasCastled(color Color) bool { return b.hasCastled[color] }

// Material returns the summed piece material of one side.
func (b *Board) Material(color Color) int { return b.material[color] }

// PreviousMove returns the last move made, or MoveNone before any move.
func (b *Board) PreviousMove() Move {
	if b.ply == 0 || len(b.history) == 0 {
		return MoveNone
	}
	return b.history[len(b.history)-1].move
}

// ResetSearchPly zeroes the search ply counter. Called before every search.
func (b *Board) ResetSearchPly() {
	b.searchPly = 0
}

// Reset sets the board to the standard starting position.
func (b *Board) Reset() {
	b.pieceBitboards[WhitePawn] = 0x000000000000FF00
	b.pieceBitboards[WhiteKnight] = 0x0000000000000042
	b.pieceBitboards[WhiteBishop] = 0x0000000000000024
	b.pieceBitboards[WhiteRook] = 0x0000000000000081
	b.pieceBitboards[WhiteQueen] = 0x0000000000000008
	b.pieceBitboards[WhiteKing] = 0x0000000000000010
	b.pieceBitboards[BlackPawn] = 0x00FF000000000000
	b.pieceBitboards[BlackKnight] = 0x4200000000000000
	b.pieceBitboards[BlackBishop] = 0x2400000000000000
	b.pieceBitboards[BlackRook] = 0x8100000000000000
	b.pieceBitboards[BlackQueen] = 0x0800000000000000
	b.pieceBitboards[BlackKing] = 0x1000000000000000
	b.colorBitboards[White] = 0x000000000000FFFF
	b.colorBitboards[Black] = 0xFFFF000000000000
	b.colorBitboards[BothColors] = 0xFFFF00000000FFFF
	b.pieces = defaultPieces
	b.sideToMove = White
	b.castlePerms = 0xF
	b.enPassantSquare = NoSquare
	b.ply, b.searchPly, b.fiftyMoveCount = 0, 0, 0
	b.fullMoveNumber = 1
	b.material[White], b.material[Black] = startingMaterial, startingMaterial
	b.history = b.history[:0]
	b.hasCastled[White], b.hasCastled[Black] = false, false
	b.positionKey = b.GeneratePositionKey()
}

// addPiece places a piece on an empty square, updating bitboards, material
// and the position key together.
func (b *Board) addPiece(square int, piece Piece) {
	b.pieces[square] = piece
	mask := uint64(1) << uint(square)
	b.pieceBitboards[piece] ^= mask
	b.colorBitboards[pieceColor[piece]] ^= mask
	b.colorBitboards[BothColors] ^= mask
	b.material[pieceColor[piece]] += pieceMaterial[piece]
	b.positionKey ^= pieceKey(piece, square)
}

// clearPiece removes the piece on the given square. The square must be occupied.
func (b *Board) clearPiece(square int) {
	piece := b.pieces[square]
	b.pieces[square] = NoPiece
	mask := uint64(1) << uint(square)
	b.pieceBitboards[piece] ^= mask
	b.colorBitboards[pieceColor[piece]] ^= mask
	b.colorBitboards[BothColors] ^= mask
	b.material[pieceColor[piece]] -= pieceMaterial[piece]
	b.positionKey ^= pieceKey(piece, square)
}

// movePiece moves a piece between squares. 'from' must be occupied and 'to' empty.
func (b *Board) movePiece(from, to int) {
	piece := b.pieces[from]
	b.pieces[to] = piece
	b.pieces[from] = NoPiece
	mask := (uint64(1) << uint(to)) | (uint64(1) << uint(from))
	b.pieceBitboards[piece] ^= mask
	b.colorBitboards[pieceColor[piece]] ^= mask
	b.colorBitboards[BothColors] ^= mask
	b.positionKey ^= pieceKey(piece, from)
	b.positionKey ^= pieceKey(piece, to)
}

// InCheck reports whether the given color's king is attacked.
func (b *Board) InCheck(color Color) bool {
	king := b.pieceBitboards[pieceOfType[color][5]]
	return b.SquaresAttacked(king, color^1)
}

// IsRepetition reports whether the current position occurred before in the
// move history. Only positions with the same side to move can repeat, so the
// scan steps backwards two half-moves at a time, and it stops at the last
// irreversible move (bounded by the fifty-move counter). A single match is
// enough: continuing the search past a repeat of an already-searched
// position cannot change its outcome.
func (b *Board) IsRepetition() bool {
	size := len(b.history)
	stop := size - b.fiftyMoveCount
	if stop < 0 {
		stop = 0
	}
	for i := size - 2; i >= stop; i -= 2 {
		if b.positionKey == b.history[i].positionKey {
			return true
		}
	}
	return false
}

// Validate recomputes every derived field from the mailbox and compares it
// against the stored state. Used by tests and the debug paths; a false
// return means make/undo corrupted the board.
func (b *Board) Validate() bool {
	var pieceBBs [NumPieceTypes]uint64
	var colorBBs [3]uint64
	var material [2]int
	kings := [2]int{}
	for sq := 0; sq < 64; sq++ {
		p := b.pieces[sq]
		if p == NoPiece {
			continue
		}
		if p < 0 || p >= NumPieceTypes {
			return false
		}
		mask := uint64(1) << uint(sq)
		pieceBBs[p] |= mask
		colorBBs[pieceColor[p]] |= mask
		colorBBs[BothColors] |= mask
		material[pieceColor[p]] += pieceMaterial[p]
		if p == WhiteKing {
			kings[White]++
		}
		if p == BlackKing {
			kings[Black]++
		}
	}
	if pieceBBs != b.pieceBitboards || colorBBs != b.colorBitboards {
		return false
	}
	if material != b.material {
		return false
	}
	if kings[White] != 1 || kings[Black] != 1 {
		return false
	}
	if b.pieceBitboards[WhitePawn]&0xFF000000000000FF != 0 {
		return false
	}
	if b.pieceBitboards[BlackPawn]&0xFF000000000000FF != 0 {
		return false
	}
	if b.positionKey != b.GeneratePositionKey() {
		return false
	}
	return b.sideToMove == White || b.sideToMove == Black
}

// audit is a no-op unless built with -tags boardaudit.
func (b *Board) audit() {
	if auditEnabled && !b.Validate() {
		panic("board state corrupt: " + b.ToFEN())
	}
}

func lsb(bitboard uint64) int { return bits.TrailingZeros64(bitboard) }

func msb(bitboard uint64) int { return 63 - bits.LeadingZeros64(bitboard) }

func countBits(bitboard uint64) int { return bits.OnesCount64(bitboard) }
