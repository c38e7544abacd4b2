package engine

import (
	"fmt"
	"sync/atomic"

	gm "gosling/goslingmg"
)

// Engine owns the board, the transposition table and the search state. One
// search runs at a time; while it runs, the search goroutine has exclusive
// use of everything here except the stop flag, which the UCI loop flips
// from the outside.
//
// searchKillers holds the last two quiet moves that caused a beta cutoff at
// each search ply. searchHistory accumulates depth^2 weight per (piece, to)
// for quiet cutoff moves. counterMoves remembers the quiet reply that
// refuted the opponent's previous move, keyed by the piece that made that
// move and its destination square.
type Engine struct {
	board gm.Board
	table TransTable
	info  SearchInfo
	stop  atomic.Bool

	searchHistory [gm.NumPieceTypes][64]int32
	searchKillers [gm.MaxSearchDepth][2]gm.Move
	counterMoves  [gm.NumPieceTypes][64]gm.Move
	pvMove        gm.Move

	moveOverhead int

	logger engineLogger
}

// NewEngine creates an engine with default settings. Nothing heavy happens
// until Initialize, and no log file is opened until SetLogFile; the UCI
// layer drives both.
func NewEngine() *Engine {
	e := &Engine{
		pvMove:       gm.MoveNone,
		moveOverhead: DefaultMoveOverhead,
	}
	e.table.SetSize(DefaultHashSizeMB)
	e.board.Reset()
	return e
}

// Initialize builds the attack tables and allocates the transposition
// table. Safe to call any number of times; only the first call (or the
// first after a Hash resize) does work.
func (e *Engine) Initialize() {
	gm.InitAttackTables()
	if entries := e.table.Initialize(); entries > 0 {
		e.Log(fmt.Sprintf("hash table initialized to %d entries", entries))
	}
}

// SetHashTableSize applies the Hash option (size in MB).
func (e *Engine) SetHashTableSize(sizeMB int) {
	e.table.SetSize(sizeMB)
	e.Log(fmt.Sprintf("setting hash table size to %d MB", sizeMB))
}

// SetMoveOverhead applies the Move Overhead option (milliseconds reserved
// per move against transport lag).
func (e *Engine) SetMoveOverhead(overhead int) {
	if overhead < 0 {
		overhead = 0
	}
	e.moveOverhead = overhead
	e.Log(fmt.Sprintf("setting move overhead to %d ms", overhead))
}

// SetupBoard sets the position from a FEN string (default: the standard
// start). On a parse error the previous position is kept.
func (e *Engine) SetupBoard(fen string) error {
	if fen == "" {
		fen = gm.StartPos
	}
	return e.board.SetToFEN(fen)
}

// NewGame resets the position to the standard start.
func (e *Engine) NewGame() {
	e.board.Reset()
}

// Board exposes the engine's position for tests and tooling.
func (e *Engine) Board() *gm.Board { return &e.board }

// parseMoveString resolves a UCI coordinate string ("e2e4", "b7b8q")
// against the current position's move list, so all the flags come along
// for free. Returns MoveNone when no generated move matches.
func (e *Engine) parseMoveString(moveString string) gm.Move {
	if len(moveString) != 4 && len(moveString) != 5 {
		return gm.MoveNone
	}
	low := func(c byte) byte {
		if c >= 'A' && c <= 'Z' {
			return c + 'a' - 'A'
		}
		return c
	}
	fileFrom, rankFrom := low(moveString[0]), moveString[1]
	fileTo, rankTo := low(moveString[2]), moveString[3]
	if fileFrom < 'a' || fileFrom > 'h' || rankFrom < '1' || rankFrom > '8' ||
		fileTo < 'a' || fileTo > 'h' || rankTo < '1' || rankTo > '8' {
		return gm.MoveNone
	}
	from := int(fileFrom-'a') + int(rankFrom-'1')*8
	to := int(fileTo-'a') + int(rankTo-'1')*8
	ml := gm.NewMoveList(&e.board, false)
	for i := 0; i < ml.Len(); i++ {
		move := ml.Get(i)
		if move.From() != from || move.To() != to {
			continue
		}
		if len(moveString) == 4 {
			if !move.IsPromotion() {
				return move
			}
			continue
		}
		if move.IsPromotion() && move.String()[4] == low(moveString[4]) {
			return move
		}
	}
	return gm.MoveNone
}

// MakeMoves plays out a list of UCI move strings on the current position.
// The first string that does not resolve to a legal move aborts the rest,
// per the protocol's error handling: log it and keep the board as played
// so far.
func (e *Engine) MakeMoves(moves []string) error {
	for _, moveString := range moves {
		move := e.parseMoveString(moveString)
		if move == gm.MoveNone {
			return fmt.Errorf("move %q not found in position %s", moveString, e.board.ToFEN())
		}
		if !e.board.MakeMove(move) {
			return fmt.Errorf("move %q leaves the king in check in position %s", moveString, e.board.ToFEN())
		}
	}
	return nil
}

// StopSearch flips the stop flag. The search polls it every few thousand
// nodes and unwinds; this is the only cross-goroutine communication.
func (e *Engine) StopSearch() {
	e.stop.Store(true)
}
