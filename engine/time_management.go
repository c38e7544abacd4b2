package engine

import (
	"time"

	gm "gosling/goslingmg"
)

// DefaultMoveOverhead is the per-move safety margin in milliseconds,
// reserved against transport and scheduling lag so the engine never flags
// on a move it already finished thinking about.
const DefaultMoveOverhead = 100

// setupTimeControls turns the go-command limits into a stop time. A fixed
// movetime replaces the side's clock with one move to go. The side's clock
// is then split across the remaining moves, the increment is added, and the
// move overhead subtracted; this applies to a movetime too. Without any
// clock there is no time limit and the search runs on depth alone.
func (e *Engine) setupTimeControls() {
	side := e.board.Side()
	if e.info.Movetime != -1 {
		e.info.Time[side] = e.info.Movetime
		e.info.Movestogo = 1
	}
	if e.info.MaxDepth == -1 {
		e.info.MaxDepth = gm.MaxSearchDepth
	}
	if e.info.Time[side] != -1 {
		e.info.TimeSet = true
		budget := e.info.Time[side]/e.info.Movestogo + e.info.Inc[side] - e.moveOverhead
		budget = max2(budget, 0)
		e.info.StopTime = e.info.StartTime.Add(time.Duration(budget) * time.Millisecond)
	}
	e.Logf("timeSet: %v, time: %d, inc: %d, movestogo: %d, depth: %d",
		e.info.TimeSet, e.info.Time[side], e.info.Inc[side], e.info.Movestogo, e.info.MaxDepth)
}
