package goslingmg

// castlePermissions is an AND-mask per square. Moving from or to a square
// keeps only the rights its mask allows, so a single
// "castlePerms &= castlePermissions[from] & castlePermissions[to]" handles
// king moves, rook moves and rook captures alike. Every square except the
// king and rook home squares is 0xF (no change).
var castlePermissions = [64]int{
	0xD, 0xF, 0xF, 0xF, 0xC, 0xF, 0xF, 0xE,
	0xF, 0xF, 0xF, 0xF, 0xF, 0xF, 0xF, 0xF,
	0xF, 0xF, 0xF, 0xF, 0xF, 0xF, 0xF, 0xF,
	0xF, 0xF, 0xF, 0xF, 0xF, 0xF, 0xF, 0xF,
	0xF, 0xF, 0xF, 0xF, 0xF, 0xF, 0xF, 0xF,
	0xF, 0xF, 0xF, 0xF, 0xF, 0xF, 0xF, 0xF,
	0xF, 0xF, 0xF, 0xF, 0xF, 0xF, 0xF, 0xF,
	0x7, 0xF, 0xF, 0xF, 0x3, 0xF, 0xF, 0xB,
}

// MakeMove applies a pseudo-legal move. It records an undo entry, updates
// the mailbox, bitboards, material, castle rights, en passant square,
// fifty-move counter, side to move and position key together, then checks
// whether the mover's king was left attacked. If so the move is taken back
// and MakeMove returns false; the board is then bit-for-bit unchanged.
func (b *Board) MakeMove(move Move) bool {
	from, to := move.From(), move.To()
	b.history = append(b.history, undo{
		move:            move,
		castlePerms:     b.castlePerms,
		fiftyMoveCount:  b.fiftyMoveCount,
		fullMoveNumber:  b.fullMoveNumber,
		enPassantSquare: b.enPassantSquare,
		positionKey:     b.positionKey,
	})
	b.ply++
	b.searchPly++
	if b.sideToMove == Black {
		b.fullMoveNumber++
	}

	// An en passant opportunity lasts exactly one move: the key must drop
	// the old file before a new one can be folded in.
	if b.enPassantSquare != NoSquare {
		b.positionKey ^= enPassantKey(b.enPassantSquare)
		b.enPassantSquare = NoSquare
	}

	if move&CaptureFlag != 0 || b.pieces[from] == WhitePawn || b.pieces[from] == BlackPawn {
		b.fiftyMoveCount = 0
	} else {
		b.fiftyMoveCount++
	}

	b.positionKey ^= castleKey(b.castlePerms)
	b.castlePerms &= castlePermissions[from] & castlePermissions[to]
	b.positionKey ^= castleKey(b.castlePerms)

	switch move & MoveFlags {
	case CaptureFlag:
		b.clearPiece(to)
	case CaptureAndPromotionFlag:
		b.clearPiece(to)
		fallthrough
	case PromotionFlag:
		b.clearPiece(from)
		b.addPiece(from, move.Promoted())
	case CastleFlag:
		switch to {
		case G1:
			b.movePiece(H1, F1)
		case C1:
			b.movePiece(A1, D1)
		case G8:
			b.movePiece(H8, F8)
		case C8:
			b.movePiece(A8, D8)
		}
		b.hasCastled[b.sideToMove] = true
	case PawnStartFlag:
		b.enPassantSquare = (to + from) / 2
		b.positionKey ^= enPassantKey(b.enPassantSquare)
	case EnPassantFlag:
		b.clearPiece(to + int(b.sideToMove)*16 - 8)
	}
	b.movePiece(from, to)

	king := pieceOfType[b.sideToMove][5]
	b.sideToMove ^= 1
	b.positionKey ^= sideKey
	if b.SquaresAttacked(b.pieceBitboards[king], b.sideToMove) {
		b.UndoMove()
		return false
	}
	b.audit()
	return true
}

// UndoMove reverses the last move exactly, restoring the position key from
// the undo record.
func (b *Board) UndoMove() {
	b.ply--
	b.searchPly--
	b.sideToMove ^= 1
	prev := b.history[len(b.history)-1]
	move := prev.move
	from, to := move.From(), move.To()
	b.movePiece(to, from)
	switch move & MoveFlags {
	case CaptureFlag:
		b.addPiece(to, move.Captured())
	case CaptureAndPromotionFlag:
		b.addPiece(to, move.Captured())
		fallthrough
	case PromotionFlag:
		b.clearPiece(from)
		b.addPiece(from, pieceOfType[b.sideToMove][0])
	case CastleFlag:
		switch to {
		case G1:
			b.movePiece(F1, H1)
		case C1:
			b.movePiece(D1, A1)
		case G8:
			b.movePiece(F8, H8)
		case C8:
			b.movePiece(D8, A8)
		}
		b.hasCastled[b.sideToMove] = false
	case EnPassantFlag:
		b.addPiece(to+int(b.sideToMove)*16-8, pieceOfType[b.sideToMove^1][0])
	}
	b.castlePerms = prev.castlePerms
	b.fiftyMoveCount = prev.fiftyMoveCount
	b.fullMoveNumber = prev.fullMoveNumber
	b.enPassantSquare = prev.enPassantSquare
	b.positionKey = prev.positionKey
	b.history = b.history[:len(b.history)-1]
	b.audit()
}

// SquaresAttacked reports whether any square in the mask is attacked by a
// piece of the given side. It unions the attack boards of every piece of
// that side and intersects with the mask; the same primitive answers
// check detection, castle-path safety and mate-vs-stalemate.
func (b *Board) SquaresAttacked(squares uint64, side Color) bool {
	var attacks, knights, bishops, rooks, queens uint64
	if side == White {
		attacks = KingAttacks(b.pieceBitboards[WhiteKing])
		attacks |= WhitePawnAttacksLeft(b.pieceBitboards[WhitePawn])
		attacks |= WhitePawnAttacksRight(b.pieceBitboards[WhitePawn])
		knights = b.pieceBitboards[WhiteKnight]
		bishops = b.pieceBitboards[WhiteBishop]
		rooks = b.pieceBitboards[WhiteRook]
		queens = b.pieceBitboards[WhiteQueen]
	} else {
		attacks = KingAttacks(b.pieceBitboards[BlackKing])
		attacks |= BlackPawnAttacksLeft(b.pieceBitboards[BlackPawn])
		attacks |= BlackPawnAttacksRight(b.pieceBitboards[BlackPawn])
		knights = b.pieceBitboards[BlackKnight]
		bishops = b.pieceBitboards[BlackBishop]
		rooks = b.pieceBitboards[BlackRook]
		queens = b.pieceBitboards[BlackQueen]
	}
	allPieces := b.colorBitboards[BothColors]
	for bb := knights; bb != 0; bb &= bb - 1 {
		attacks |= KnightAttacks(lsb(bb))
	}
	for bb := bishops; bb != 0; bb &= bb - 1 {
		attacks |= BishopAttacks(lsb(bb), allPieces)
	}
	for bb := rooks; bb != 0; bb &= bb - 1 {
		attacks |= RookAttacks(lsb(bb), allPieces)
	}
	for bb := queens; bb != 0; bb &= bb - 1 {
		attacks |= QueenAttacks(lsb(bb), allPieces)
	}
	return attacks&squares != 0
}
