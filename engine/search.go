package engine

import (
	"fmt"
	"strings"
	"time"

	gm "gosling/goslingmg"
)

// Score constants. INF bounds the alpha-beta window and fits in the
// transposition table's 16-bit score field; Mate is the base checkmate
// score, discounted by the ply at which the mate is found so that shorter
// mates score higher. Anything beyond MateThreshold is reported to the GUI
// as a mate distance rather than centipawns.
const (
	INF           = 32500
	Mate          = 30000
	MateThreshold = 20000
)

// SearchInfo carries the limits of one search as given by the go command,
// plus the counters the search maintains. Time and Inc are per color.
type SearchInfo struct {
	Nodes     uint64
	TimeSet   bool
	StartTime time.Time
	StopTime  time.Time
	MaxDepth  int
	Inc       [2]int
	Time      [2]int
	Movetime  int
	Movestogo int
}

// NewSearchInfo returns a SearchInfo with every limit unset.
func NewSearchInfo() SearchInfo {
	return SearchInfo{
		MaxDepth:  -1,
		Time:      [2]int{-1, -1},
		Movetime:  -1,
		Movestogo: 30,
	}
}

// setupSearch resets the per-search state: node count, stop flag, search
// ply, killers, history and counter moves, and computes the stop time from
// the clock limits.
func (e *Engine) setupSearch() {
	e.Initialize()
	e.pvMove = gm.MoveNone
	e.info.Nodes = 0
	e.stop.Store(false)
	e.info.StartTime = time.Now()
	e.setupTimeControls()
	e.board.ResetSearchPly()
	e.searchHistory = [gm.NumPieceTypes][64]int32{}
	e.searchKillers = [gm.MaxSearchDepth][2]gm.Move{}
	e.counterMoves = [gm.NumPieceTypes][64]gm.Move{}
}

// checkup tests the wall clock. Called every 4096 nodes from both search
// functions; on expiry it raises the same stop flag the UCI loop uses.
func (e *Engine) checkup() {
	if e.info.TimeSet && time.Now().After(e.info.StopTime) {
		e.stop.Store(true)
	}
}

// quiescence searches only captures (and en passant) below the nominal
// horizon, so the static evaluation is never taken in the middle of a
// capture sequence. The stand-pat score acts as the floor: the side to
// move can always decline the remaining captures.
func (e *Engine) quiescence(alpha, beta int) int {
	e.info.Nodes++
	if e.info.Nodes&0xFFF == 0 {
		e.checkup()
	}
	if e.stop.Load() || (e.board.SearchPly() > 0 && e.board.IsRepetition()) ||
		e.board.FiftyMoveCount() >= 100 {
		return 0
	}
	if e.board.SearchPly() >= gm.MaxSearchDepth {
		return e.evaluatePosition()
	}
	bestEval := e.evaluatePosition()
	if bestEval > alpha {
		if bestEval >= beta {
			return beta
		}
		alpha = bestEval
	}
	ml := gm.NewMoveList(&e.board, true)
	ml.OrderMoves(gm.MoveNone, &e.searchKillers, &e.searchHistory, &e.counterMoves)
	for i := 0; i < ml.Len(); i++ {
		if !e.board.MakeMove(ml.Get(i)) {
			continue
		}
		eval := -e.quiescence(-beta, -alpha)
		e.board.UndoMove()
		if e.stop.Load() {
			return 0
		}
		if eval > alpha {
			if eval >= beta {
				return beta
			}
			alpha = eval
		}
	}
	return alpha
}

// alphaBeta is the negamax search. Alpha is the best score the side to
// move is already assured of, beta the best the opponent allows; the
// recursive call negates and swaps the window. Scores above beta prune the
// branch (the opponent had a better option earlier in the tree).
func (e *Engine) alphaBeta(alpha, beta, depth int) int {
	if depth <= 0 {
		return e.quiescence(alpha, beta)
	}
	e.info.Nodes++
	if e.info.Nodes&0xFFF == 0 {
		e.checkup()
	}
	if e.stop.Load() || (e.board.SearchPly() > 0 && e.board.IsRepetition()) ||
		e.board.FiftyMoveCount() >= 100 {
		return 0
	}
	if e.board.SearchPly() >= gm.MaxSearchDepth {
		return e.evaluatePosition()
	}

	key := e.board.PositionKey()
	bestMove, bestEval, usable := e.table.Probe(key, depth, alpha, beta)
	if usable {
		if e.board.SearchPly() == 0 {
			e.pvMove = bestMove
		}
		return bestEval
	}
	bestEval = -INF

	ml := gm.NewMoveList(&e.board, false)
	ml.OrderMoves(bestMove, &e.searchKillers, &e.searchHistory, &e.counterMoves)
	legalMoves, oldAlpha := 0, alpha
	prevMove := e.board.PreviousMove()
	var prevPiece gm.Piece = gm.NoPiece
	if prevMove != gm.MoveNone {
		prevPiece = e.board.PieceOn(prevMove.To())
	}

	for i := 0; i < ml.Len(); i++ {
		move := ml.Get(i)
		if !e.board.MakeMove(move) {
			continue
		}
		eval := -e.alphaBeta(-beta, -alpha, depth-1)
		e.board.UndoMove()
		if e.stop.Load() {
			return 0
		}
		legalMoves++
		if eval <= bestEval {
			continue
		}
		bestEval = eval
		bestMove = move
		if e.board.SearchPly() == 0 {
			e.pvMove = bestMove
		}
		if eval <= alpha {
			continue
		}
		if eval >= beta {
			if !move.IsCapture() {
				sp := e.board.SearchPly()
				e.searchKillers[sp][1] = e.searchKillers[sp][0]
				e.searchKillers[sp][0] = move
				if prevPiece != gm.NoPiece {
					e.counterMoves[prevPiece][prevMove.To()] = move
				}
				piece := e.board.PieceOn(move.From())
				e.searchHistory[piece][move.To()] += int32(depth * depth)
			}
			e.table.Store(key, bestMove, beta, depth, BoundLower)
			return beta
		}
		alpha = eval
	}

	if legalMoves == 0 {
		king := gm.WhiteKing
		if e.board.Side() == gm.Black {
			king = gm.BlackKing
		}
		if e.board.SquaresAttacked(e.board.PieceBitboard(king), e.board.Side()^1) {
			return -(Mate - e.board.SearchPly())
		}
		return 0
	}
	if alpha != oldAlpha {
		e.table.Store(key, bestMove, bestEval, depth, BoundExact)
	} else {
		e.table.Store(key, bestMove, alpha, depth, BoundUpper)
	}
	return alpha
}

// getPVLine walks the principal variation out of the transposition table:
// probe the best move for the current key, play it, repeat up to depth
// plies or until the table misses, then take everything back.
func (e *Engine) getPVLine(depth int) []string {
	var moves []string
	for ; depth > 0; depth-- {
		stored := e.table.ProbeMove(e.board.PositionKey())
		if stored == gm.MoveNone || !e.board.MakeMove(stored) {
			break
		}
		moves = append(moves, stored.String())
	}
	for range moves {
		e.board.UndoMove()
	}
	return moves
}

// scoreString formats a score for the info line: centipawns normally, a
// mate distance in full moves once the score is inside the mate band.
func scoreString(eval int) string {
	if eval > MateThreshold {
		return fmt.Sprintf("mate %d", (Mate-eval+1)/2)
	}
	if eval < -MateThreshold {
		return fmt.Sprintf("mate %d", -((Mate + eval + 1) / 2))
	}
	return fmt.Sprintf("cp %d", eval)
}

// firstLegalMove returns the first legal move of the position, the
// fallback for a search stopped before depth 1 completed.
func (e *Engine) firstLegalMove() gm.Move {
	ml := gm.NewMoveList(&e.board, false)
	for i := 0; i < ml.Len(); i++ {
		if e.board.MakeMove(ml.Get(i)) {
			e.board.UndoMove()
			return ml.Get(i)
		}
	}
	return gm.MoveNone
}

// SearchPosition runs iterative deepening: a full search to depth 1, then
// 2, and so on, printing an info line per completed depth. If time runs
// out mid-iteration the previous depth's best move stands. Each depth
// reuses the previous one's transposition entries for move ordering, which
// is what makes the deeper iterations affordable.
func (e *Engine) SearchPosition(info SearchInfo) string {
	e.info = info
	e.setupSearch()
	for depth := 1; depth <= e.info.MaxDepth; depth++ {
		prevBest := e.pvMove
		eval := e.alphaBeta(-INF, INF, depth)
		if e.stop.Load() {
			e.pvMove = prevBest
			break
		}
		elapsed := time.Since(e.info.StartTime).Milliseconds()
		var sb strings.Builder
		fmt.Fprintf(&sb, "info score %s depth %d nodes %d time %d",
			scoreString(eval), depth, e.info.Nodes, elapsed)
		if elapsed > 0 {
			fmt.Fprintf(&sb, " nps %d", e.info.Nodes*1000/uint64(elapsed))
		}
		sb.WriteString(" pv")
		for _, moveString := range e.getPVLine(depth) {
			sb.WriteByte(' ')
			sb.WriteString(moveString)
		}
		fmt.Println(sb.String())
		e.Log(sb.String())
		if eval > MateThreshold {
			break
		}
	}
	if e.pvMove == gm.MoveNone {
		// Stopped before the first iteration finished; any legal move
		// beats forfeiting on time.
		e.pvMove = e.firstLegalMove()
	}
	bestMove := e.pvMove.String()
	fmt.Println("bestmove " + bestMove)
	e.Log("bestmove " + bestMove)
	return bestMove
}
