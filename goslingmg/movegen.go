package goslingmg

import "sort"

// MoveList holds the pseudo-legal moves of a position together with their
// ordering scores. A pseudo-legal move obeys the piece movement rules but
// may leave the mover's own king in check; MakeMove rejects those when the
// search tries them.
type MoveList struct {
	board *Board
	moves []scoredMove
}

type scoredMove struct {
	move  Move
	score int32
}

// Move-ordering scores. The tiers are strictly separated so that any move
// of a higher tier sorts above every move of a lower tier, no matter the
// sub-score: the hash move first, then captures and promotions by
// MVV-LVA, then the two killers, then the counter move, then quiet moves by
// history, then a fixed per-piece baseline.
const (
	pvScore      int32 = 2000000000
	captureBase  int32 = 1000000
	killerScore1 int32 = 900000
	killerScore2 int32 = 800000
	counterScore int32 = 700000
	historyBase  int32 = 100
	historyCap   int32 = 500000
)

// captureScore[attacker][victim] prefers strong victims and weak attackers.
// Only opposite-color pairs are ever looked up; same-color entries stay 0.
var captureScore = [NumPieceTypes][NumPieceTypes]int32{
	{0, 0, 0, 0, 0, 0, 150, 320, 330, 350, 390, 0},
	{0, 0, 0, 0, 0, 0, 140, 240, 260, 310, 380, 0},
	{0, 0, 0, 0, 0, 0, 130, 230, 250, 300, 370, 0},
	{0, 0, 0, 0, 0, 0, 120, 200, 210, 270, 360, 0},
	{0, 0, 0, 0, 0, 0, 110, 180, 190, 220, 280, 0},
	{0, 0, 0, 0, 0, 0, 100, 160, 170, 290, 340, 0},
	{150, 320, 330, 350, 390, 0, 0, 0, 0, 0, 0, 0},
	{140, 240, 260, 310, 380, 0, 0, 0, 0, 0, 0, 0},
	{130, 230, 250, 300, 370, 0, 0, 0, 0, 0, 0, 0},
	{120, 200, 210, 270, 360, 0, 0, 0, 0, 0, 0, 0},
	{110, 180, 190, 220, 280, 0, 0, 0, 0, 0, 0, 0},
	{100, 160, 170, 290, 340, 0, 0, 0, 0, 0, 0, 0},
}

// Quiet-move baseline: try pawn moves first and king moves last.
var quietScore = [NumPieceTypes]int32{6, 5, 4, 3, 2, 1, 6, 5, 4, 3, 2, 1}

var promotionScore = [NumPieceTypes]int32{
	0, 315, 325, 345, 385, 0,
	0, 315, 325, 345, 385, 0,
}

const (
	enPassantScore = captureBase + 155
	castleScore    = 8
	pawnStartScore = 7
)

// NewMoveList generates every pseudo-legal move of the position. With
// onlyCaptures set it generates the captures used by quiescence (including
// capture-promotions and en passant), skipping quiet pawn pushes (quiet
// push-promotions among them), pawn starts and castling.
func NewMoveList(board *Board, onlyCaptures bool) *MoveList {
	ml := &MoveList{board: board, moves: make([]scoredMove, 0, 48)}
	if onlyCaptures {
		ml.generateCaptureMoves()
	} else {
		ml.generateMoves()
	}
	return ml
}

// Len returns the number of generated moves.
func (ml *MoveList) Len() int { return len(ml.moves) }

// Get returns the i'th move.
func (ml *MoveList) Get(i int) Move { return ml.moves[i].move }

// generatePieceMoves emits a quiet move or a capture for every set bit of
// the attack board of the (non-pawn) piece on sq.
func (ml *MoveList) generatePieceMoves(sq int, attacks uint64) {
	b := ml.board
	for attacks != 0 {
		to := lsb(attacks)
		if b.pieces[to] == NoPiece {
			ml.moves = append(ml.moves, scoredMove{
				newMove(sq, to, NoPiece, 0), quietScore[b.pieces[sq]]})
		} else {
			ml.moves = append(ml.moves, scoredMove{
				newMove(sq, to, b.pieces[to], CaptureFlag),
				captureBase + captureScore[b.pieces[sq]][b.pieces[to]]})
		}
		attacks &= attacks - 1
	}
}

// addPawnMove expands a pawn move that reaches the back rank into the four
// promotions, lifting the score into the capture tier; other pawn moves are
// added unchanged.
func (ml *MoveList) addPawnMove(move Move, score int32) {
	to := move.To()
	if uint64(1)<<uint(to)&0xFF000000000000FF != 0 {
		move = (move &^ (0xF << 16)) | PromotionFlag
		if score < captureBase {
			score = captureBase
		}
		side := ml.board.sideToMove
		for t := 1; t <= 4; t++ { // knight, bishop, rook, queen
			piece := pieceOfType[side][t]
			ml.moves = append(ml.moves, scoredMove{
				move | Move(uint32(piece)<<16), score + promotionScore[piece]})
		}
	} else {
		ml.moves = append(ml.moves, scoredMove{move, score})
	}
}

func (ml *MoveList) generateWhitePawnMoves() {
	b := ml.board
	allPieces := b.colorBitboards[BothColors]
	pawns := b.pieceBitboards[WhitePawn]
	pawnMoves := (pawns << 8) &^ allPieces
	pawnStarts := ((pawnMoves & 0x0000000000FF0000) << 8) &^ allPieces
	for bb := pawnMoves; bb != 0; bb &= bb - 1 {
		to := lsb(bb)
		ml.addPawnMove(newMove(to-8, to, NoPiece, 0), quietScore[WhitePawn])
	}
	enemyPieces := b.colorBitboards[Black]
	attacksLeft := WhitePawnAttacksLeft(pawns) & enemyPieces
	attacksRight := WhitePawnAttacksRight(pawns) & enemyPieces
	for bb := attacksLeft; bb != 0; bb &= bb - 1 {
		to := lsb(bb)
		ml.addPawnMove(newMove(to-7, to, b.pieces[to], CaptureFlag),
			captureBase+captureScore[WhitePawn][b.pieces[to]])
	}
	for bb := attacksRight; bb != 0; bb &= bb - 1 {
		to := lsb(bb)
		ml.addPawnMove(newMove(to-9, to, b.pieces[to], CaptureFlag),
			captureBase+captureScore[WhitePawn][b.pieces[to]])
	}
	for bb := pawnStarts; bb != 0; bb &= bb - 1 {
		to := lsb(bb)
		ml.moves = append(ml.moves, scoredMove{
			newMove(to-16, to, NoPiece, PawnStartFlag), pawnStartScore})
	}
	if ep := b.enPassantSquare; ep != NoSquare {
		// The wrap guards skip origins that would fall off the board edge.
		if ep != 47 && b.pieces[ep-7] == WhitePawn {
			ml.moves = append(ml.moves, scoredMove{
				newMove(ep-7, ep, NoPiece, EnPassantFlag), enPassantScore})
		}
		if ep != 40 && b.pieces[ep-9] == WhitePawn {
			ml.moves = append(ml.moves, scoredMove{
				newMove(ep-9, ep, NoPiece, EnPassantFlag), enPassantScore})
		}
	}
}

func (ml *MoveList) generateBlackPawnMoves() {
	b := ml.board
	allPieces := b.colorBitboards[BothColors]
	pawns := b.pieceBitboards[BlackPawn]
	pawnMoves := (pawns >> 8) &^ allPieces
	pawnStarts := ((pawnMoves & 0x0000FF0000000000) >> 8) &^ allPieces
	for bb := pawnMoves; bb != 0; bb &= bb - 1 {
		to := lsb(bb)
		ml.addPawnMove(newMove(to+8, to, NoPiece, 0), quietScore[BlackPawn])
	}
	enemyPieces := b.colorBitboards[White]
	attacksLeft := BlackPawnAttacksLeft(pawns) & enemyPieces
	attacksRight := BlackPawnAttacksRight(pawns) & enemyPieces
	for bb := attacksLeft; bb != 0; bb &= bb - 1 {
		to := lsb(bb)
		ml.addPawnMove(newMove(to+7, to, b.pieces[to], CaptureFlag),
			captureBase+captureScore[BlackPawn][b.pieces[to]])
	}
	for bb := attacksRight; bb != 0; bb &= bb - 1 {
		to := lsb(bb)
		ml.addPawnMove(newMove(to+9, to, b.pieces[to], CaptureFlag),
			captureBase+captureScore[BlackPawn][b.pieces[to]])
	}
	for bb := pawnStarts; bb != 0; bb &= bb - 1 {
		to := lsb(bb)
		ml.moves = append(ml.moves, scoredMove{
			newMove(to+16, to, NoPiece, PawnStartFlag), pawnStartScore})
	}
	if ep := b.enPassantSquare; ep != NoSquare {
		if ep != 16 && b.pieces[ep+7] == BlackPawn {
			ml.moves = append(ml.moves, scoredMove{
				newMove(ep+7, ep, NoPiece, EnPassantFlag), enPassantScore})
		}
		if ep != 23 && b.pieces[ep+9] == BlackPawn {
			ml.moves = append(ml.moves, scoredMove{
				newMove(ep+9, ep, NoPiece, EnPassantFlag), enPassantScore})
		}
	}
}

// Castle generation requires the squares between king and rook to be empty
// and the king's start, transit and landing squares to be safe. The rights
// mask already guarantees the king and rook sit on their home squares.
func (ml *MoveList) generateWhiteCastleMoves() {
	b := ml.board
	allPieces := b.colorBitboards[BothColors]
	if b.castlePerms&CastleWK != 0 {
		if allPieces&0x60 == 0 && !b.SquaresAttacked(0x70, Black) {
			ml.moves = append(ml.moves, scoredMove{
				newMove(E1, G1, NoPiece, CastleFlag), castleScore})
		}
	}
	if b.castlePerms&CastleWQ != 0 {
		if allPieces&0xE == 0 && !b.SquaresAttacked(0x1C, Black) {
			ml.moves = append(ml.moves, scoredMove{
				newMove(E1, C1, NoPiece, CastleFlag), castleScore})
		}
	}
}

func (ml *MoveList) generateBlackCastleMoves() {
	b := ml.board
	allPieces := b.colorBitboards[BothColors]
	if b.castlePerms&CastleBK != 0 {
		if allPieces&0x6000000000000000 == 0 &&
			!b.SquaresAttacked(0x7000000000000000, White) {
			ml.moves = append(ml.moves, scoredMove{
				newMove(E8, G8, NoPiece, CastleFlag), castleScore})
		}
	}
	if b.castlePerms&CastleBQ != 0 {
		if allPieces&0x0E00000000000000 == 0 &&
			!b.SquaresAttacked(0x1C00000000000000, White) {
			ml.moves = append(ml.moves, scoredMove{
				newMove(E8, C8, NoPiece, CastleFlag), castleScore})
		}
	}
}

func (ml *MoveList) generateMoves() {
	b := ml.board
	allPieces := b.colorBitboards[BothColors]
	var knights, bishops, rooks, queens, king, samePieces uint64
	if b.sideToMove == White {
		knights = b.pieceBitboards[WhiteKnight]
		bishops = b.pieceBitboards[WhiteBishop]
		rooks = b.pieceBitboards[WhiteRook]
		queens = b.pieceBitboards[WhiteQueen]
		king = b.pieceBitboards[WhiteKing]
		samePieces = b.colorBitboards[White]
		ml.generateWhitePawnMoves()
		ml.generateWhiteCastleMoves()
	} else {
		knights = b.pieceBitboards[BlackKnight]
		bishops = b.pieceBitboards[BlackBishop]
		rooks = b.pieceBitboards[BlackRook]
		queens = b.pieceBitboards[BlackQueen]
		king = b.pieceBitboards[BlackKing]
		samePieces = b.colorBitboards[Black]
		ml.generateBlackPawnMoves()
		ml.generateBlackCastleMoves()
	}
	for bb := knights; bb != 0; bb &= bb - 1 {
		sq := lsb(bb)
		ml.generatePieceMoves(sq, KnightAttacks(sq)&^samePieces)
	}
	for bb := bishops; bb != 0; bb &= bb - 1 {
		sq := lsb(bb)
		ml.generatePieceMoves(sq, BishopAttacks(sq, allPieces)&^samePieces)
	}
	for bb := rooks; bb != 0; bb &= bb - 1 {
		sq := lsb(bb)
		ml.generatePieceMoves(sq, RookAttacks(sq, allPieces)&^samePieces)
	}
	for bb := queens; bb != 0; bb &= bb - 1 {
		sq := lsb(bb)
		ml.generatePieceMoves(sq, QueenAttacks(sq, allPieces)&^samePieces)
	}
	ml.generatePieceMoves(lsb(king), KingAttacks(king)&^samePieces)
}

func (ml *MoveList) generateCaptureMoves() {
	b := ml.board
	allPieces := b.colorBitboards[BothColors]
	var knights, bishops, rooks, queens, king, enemyPieces uint64
	if b.sideToMove == White {
		knights = b.pieceBitboards[WhiteKnight]
		bishops = b.pieceBitboards[WhiteBishop]
		rooks = b.pieceBitboards[WhiteRook]
		queens = b.pieceBitboards[WhiteQueen]
		king = b.pieceBitboards[WhiteKing]
		enemyPieces = b.colorBitboards[Black]
		ml.generateWhitePawnCaptureMoves()
	} else {
		knights = b.pieceBitboards[BlackKnight]
		bishops = b.pieceBitboards[BlackBishop]
		rooks = b.pieceBitboards[BlackRook]
		queens = b.pieceBitboards[BlackQueen]
		king = b.pieceBitboards[BlackKing]
		enemyPieces = b.colorBitboards[White]
		ml.generateBlackPawnCaptureMoves()
	}
	for bb := knights; bb != 0; bb &= bb - 1 {
		sq := lsb(bb)
		ml.generatePieceMoves(sq, KnightAttacks(sq)&enemyPieces)
	}
	for bb := bishops; bb != 0; bb &= bb - 1 {
		sq := lsb(bb)
		ml.generatePieceMoves(sq, BishopAttacks(sq, allPieces)&enemyPieces)
	}
	for bb := rooks; bb != 0; bb &= bb - 1 {
		sq := lsb(bb)
		ml.generatePieceMoves(sq, RookAttacks(sq, allPieces)&enemyPieces)
	}
	for bb := queens; bb != 0; bb &= bb - 1 {
		sq := lsb(bb)
		ml.generatePieceMoves(sq, QueenAttacks(sq, allPieces)&enemyPieces)
	}
	ml.generatePieceMoves(lsb(king), KingAttacks(king)&enemyPieces)
}

func (ml *MoveList) generateWhitePawnCaptureMoves() {
	b := ml.board
	pawns := b.pieceBitboards[WhitePawn]
	enemyPieces := b.colorBitboards[Black]
	attacksLeft := WhitePawnAttacksLeft(pawns) & enemyPieces
	attacksRight := WhitePawnAttacksRight(pawns) & enemyPieces
	for bb := attacksLeft; bb != 0; bb &= bb - 1 {
		to := lsb(bb)
		ml.addPawnMove(newMove(to-7, to, b.pieces[to], CaptureFlag),
			captureBase+captureScore[WhitePawn][b.pieces[to]])
	}
	for bb := attacksRight; bb != 0; bb &= bb - 1 {
		to := lsb(bb)
		ml.addPawnMove(newMove(to-9, to, b.pieces[to], CaptureFlag),
			captureBase+captureScore[WhitePawn][b.pieces[to]])
	}
	if ep := b.enPassantSquare; ep != NoSquare {
		if ep != 47 && b.pieces[ep-7] == WhitePawn {
			ml.moves = append(ml.moves, scoredMove{
				newMove(ep-7, ep, NoPiece, EnPassantFlag), enPassantScore})
		}
		if ep != 40 && b.pieces[ep-9] == WhitePawn {
			ml.moves = append(ml.moves, scoredMove{
				newMove(ep-9, ep, NoPiece, EnPassantFlag), enPassantScore})
		}
	}
}

func (ml *MoveList) generateBlackPawnCaptureMoves() {
	b := ml.board
	pawns := b.pieceBitboards[BlackPawn]
	enemyPieces := b.colorBitboards[White]
	attacksLeft := BlackPawnAttacksLeft(pawns) & enemyPieces
	attacksRight := BlackPawnAttacksRight(pawns) & enemyPieces
	for bb := attacksLeft; bb != 0; bb &= bb - 1 {
		to := lsb(bb)
		ml.addPawnMove(newMove(to+7, to, b.pieces[to], CaptureFlag),
			captureBase+captureScore[BlackPawn][b.pieces[to]])
	}
	for bb := attacksRight; bb != 0; bb &= bb - 1 {
		to := lsb(bb)
		ml.addPawnMove(newMove(to+9, to, b.pieces[to], CaptureFlag),
			captureBase+captureScore[BlackPawn][b.pieces[to]])
	}
	if ep := b.enPassantSquare; ep != NoSquare {
		if ep != 16 && b.pieces[ep+7] == BlackPawn {
			ml.moves = append(ml.moves, scoredMove{
				newMove(ep+7, ep, NoPiece, EnPassantFlag), enPassantScore})
		}
		if ep != 23 && b.pieces[ep+9] == BlackPawn {
			ml.moves = append(ml.moves, scoredMove{
				newMove(ep+9, ep, NoPiece, EnPassantFlag), enPassantScore})
		}
	}
}

// OrderMoves overlays the search heuristics onto the generation-time scores
// and sorts the list in descending order. The hash move (if any) goes
// first, killers and the counter move lift their quiet moves above the
// rest, and the history table ranks the remaining quiet moves.
func (ml *MoveList) OrderMoves(bestMove Move,
	killers *[MaxSearchDepth][2]Move,
	searchHistory *[NumPieceTypes][64]int32,
	counterMoves *[NumPieceTypes][64]Move) {

	b := ml.board
	sp := b.searchPly
	for i := range ml.moves {
		m := ml.moves[i].move
		if m == bestMove {
			ml.moves[i].score = pvScore
			continue
		}
		if m == killers[sp][0] {
			ml.moves[i].score = killerScore1
			continue
		}
		if m == killers[sp][1] {
			ml.moves[i].score = killerScore2
			continue
		}
		if !m.IsCapture() && !m.IsPromotion() {
			if prev := b.PreviousMove(); prev != MoveNone {
				prevTo := prev.To()
				prevPiece := b.pieces[prevTo]
				if prevPiece != NoPiece && m == counterMoves[prevPiece][prevTo] {
					ml.moves[i].score = counterScore
					continue
				}
			}
			piece := b.pieces[m.From()]
			if h := searchHistory[piece][m.To()]; h > 0 {
				if h > historyCap {
					h = historyCap
				}
				ml.moves[i].score = historyBase + h
			}
		}
	}
	sort.SliceStable(ml.moves, func(i, j int) bool {
		return ml.moves[i].score > ml.moves[j].score
	})
}
