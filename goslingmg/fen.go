package goslingmg

import (
	"fmt"
	"strconv"
	"strings"
)

// StartPos is the FEN string of the standard initial position.
const StartPos = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

var pieceFromChar = map[byte]Piece{
	'P': WhitePawn, 'N': WhiteKnight, 'B': WhiteBishop,
	'R': WhiteRook, 'Q': WhiteQueen, 'K': WhiteKing,
	'p': BlackPawn, 'n': BlackKnight, 'b': BlackBishop,
	'r': BlackRook, 'q': BlackQueen, 'k': BlackKing,
}

// The 16 accepted castle-rights strings, indexed by the rights mask they
// encode. Anything else in the castle field is rejected.
var castlePermStrings = [16]string{
	"-", "K", "Q", "KQ", "k", "Kk", "Qk", "KQk",
	"q", "Kq", "Qq", "KQq", "kq", "Kkq", "Qkq", "KQkq",
}

func containsOnly(s, chars string) bool {
	for i := 0; i < len(s); i++ {
		if !strings.ContainsRune(chars, rune(s[i])) {
			return false
		}
	}
	return true
}

// ParseFEN builds a fresh board from a FEN string.
func ParseFEN(fen string) (*Board, error) {
	b := &Board{}
	if err := b.SetToFEN(fen); err != nil {
		return nil, err
	}
	return b, nil
}

// SetToFEN sets the board to the position described by the 6-field FEN
// string. Malformed input is rejected with an error and the board keeps
// whatever state it had before the call. After a successful parse the
// board satisfies every representation invariant (the audit that Validate
// performs).
func (b *Board) SetToFEN(fen string) error {
	if fen == StartPos {
		b.Reset()
		return nil
	}
	tokens := strings.Fields(fen)
	if len(tokens) != 6 {
		return fmt.Errorf("invalid fen %q: requires 6 fields, found %d", fen, len(tokens))
	}

	// Field 1: piece layout.
	if !containsOnly(tokens[0], "PNBRQKpnbrqk/12345678") {
		return fmt.Errorf("invalid fen %q: bad character in piece layout", fen)
	}
	rows := strings.Split(tokens[0], "/")
	if len(rows) != 8 {
		return fmt.Errorf("invalid fen %q: piece layout does not have 8 rows", fen)
	}
	var pieces [64]Piece
	for i := range pieces {
		pieces[i] = NoPiece
	}
	kings := [2]int{}
	for row := 0; row < 8; row++ {
		cnt := 0
		for i := 0; i < len(rows[row]); i++ {
			if c := rows[row][i]; c >= '1' && c <= '8' {
				cnt += int(c - '0')
			} else {
				cnt++
			}
		}
		if cnt != 8 {
			return fmt.Errorf("invalid fen %q: row %d does not sum to 8 squares", fen, row+1)
		}
		square := (7 - row) * 8
		for i := 0; i < len(rows[row]); i++ {
			c := rows[row][i]
			if piece, ok := pieceFromChar[c]; ok {
				pieces[square] = piece
				if piece == WhiteKing {
					kings[White]++
				} else if piece == BlackKing {
					kings[Black]++
				}
				square++
			} else {
				square += int(c - '0')
			}
		}
	}
	if kings[White] != 1 || kings[Black] != 1 {
		return fmt.Errorf("invalid fen %q: each side must have exactly one king", fen)
	}
	for sq := 0; sq < 8; sq++ {
		if pieces[sq] == WhitePawn || pieces[sq] == BlackPawn ||
			pieces[sq+56] == WhitePawn || pieces[sq+56] == BlackPawn {
			return fmt.Errorf("invalid fen %q: pawn on first or last rank", fen)
		}
	}

	// Field 2: side to move.
	var side Color
	switch tokens[1] {
	case "w":
		side = White
	case "b":
		side = Black
	default:
		return fmt.Errorf("invalid fen %q: bad side-to-move field %q", fen, tokens[1])
	}

	// Field 3: castle rights, one of the 16 canonical strings. A right is
	// only meaningful with the king and rook still on their home squares.
	castlePerms := NoSquare
	for i, s := range castlePermStrings {
		if s == tokens[2] {
			castlePerms = i
			break
		}
	}
	if castlePerms == NoSquare {
		return fmt.Errorf("invalid fen %q: bad castle rights field %q", fen, tokens[2])
	}
	if castlePerms&CastleWK != 0 && (pieces[E1] != WhiteKing || pieces[H1] != WhiteRook) {
		return fmt.Errorf("invalid fen %q: castle right K without king/rook in place", fen)
	}
	if castlePerms&CastleWQ != 0 && (pieces[E1] != WhiteKing || pieces[A1] != WhiteRook) {
		return fmt.Errorf("invalid fen %q: castle right Q without king/rook in place", fen)
	}
	if castlePerms&CastleBK != 0 && (pieces[E8] != BlackKing || pieces[H8] != BlackRook) {
		return fmt.Errorf("invalid fen %q: castle right k without king/rook in place", fen)
	}
	if castlePerms&CastleBQ != 0 && (pieces[E8] != BlackKing || pieces[A8] != BlackRook) {
		return fmt.Errorf("invalid fen %q: castle right q without king/rook in place", fen)
	}

	// Field 4: en passant square, "-" or a square on rank 3 or rank 6.
	enPassant := NoSquare
	if tokens[3] != "-" {
		if len(tokens[3]) != 2 || tokens[3][0] < 'a' || tokens[3][0] > 'h' ||
			(tokens[3][1] != '3' && tokens[3][1] != '6') {
			return fmt.Errorf("invalid fen %q: bad en passant field %q", fen, tokens[3])
		}
		enPassant = int(tokens[3][0]-'a') + int(tokens[3][1]-'1')*8
	}

	// Field 5: fifty-move counter.
	if !containsOnly(tokens[4], "0123456789") {
		return fmt.Errorf("invalid fen %q: bad fifty-move field %q", fen, tokens[4])
	}
	fiftyMoveCount, err := strconv.Atoi(tokens[4])
	if err != nil || fiftyMoveCount < 0 || fiftyMoveCount > 100 {
		return fmt.Errorf("invalid fen %q: fifty-move count must be 0..100", fen)
	}

	// Field 6: full-move number.
	if !containsOnly(tokens[5], "0123456789") {
		return fmt.Errorf("invalid fen %q: bad move-number field %q", fen, tokens[5])
	}
	fullMove, err := strconv.Atoi(tokens[5])
	if err != nil || fullMove < 1 {
		return fmt.Errorf("invalid fen %q: move number must be >= 1", fen)
	}

	// All fields parsed; only now touch the board.
	b.pieces = pieces
	b.sideToMove = side
	b.castlePerms = castlePerms
	b.enPassantSquare = enPassant
	b.fiftyMoveCount = fiftyMoveCount
	b.fullMoveNumber = fullMove
	b.ply, b.searchPly = 0, 0
	b.history = b.history[:0]
	b.hasCastled[White], b.hasCastled[Black] = false, false

	for piece := 0; piece < NumPieceTypes; piece++ {
		b.pieceBitboards[piece] = 0
	}
	b.colorBitboards[White], b.colorBitboards[Black], b.colorBitboards[BothColors] = 0, 0, 0
	b.material[White], b.material[Black] = 0, 0
	for sq := 0; sq < 64; sq++ {
		if b.pieces[sq] == NoPiece {
			continue
		}
		p := b.pieces[sq]
		b.material[pieceColor[p]] += pieceMaterial[p]
		b.pieceBitboards[p] |= 1 << uint(sq)
		b.colorBitboards[pieceColor[p]] |= 1 << uint(sq)
		b.colorBitboards[BothColors] |= 1 << uint(sq)
	}
	b.positionKey = b.GeneratePositionKey()
	return nil
}

// ToFEN renders the current position back into FEN form.
func (b *Board) ToFEN() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			p := b.pieces[rank*8+file]
			if p == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte('0' + byte(empty))
				empty = 0
			}
			c := pieceChar[p]
			if pieceColor[p] == White {
				c -= 'a' - 'A'
			}
			sb.WriteByte(c)
		}
		if empty > 0 {
			sb.WriteByte('0' + byte(empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}
	if b.sideToMove == White {
		sb.WriteString(" w ")
	} else {
		sb.WriteString(" b ")
	}
	sb.WriteString(castlePermStrings[b.castlePerms])
	sb.WriteByte(' ')
	if b.enPassantSquare == NoSquare {
		sb.WriteByte('-')
	} else {
		sb.WriteByte('a' + byte(b.enPassantSquare&7))
		sb.WriteByte('1' + byte(b.enPassantSquare>>3))
	}
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(b.fiftyMoveCount))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(b.fullMoveNumber))
	return sb.String()
}
