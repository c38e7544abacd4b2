package engine

import (
	"fmt"
	"os"
	"sync"

	"github.com/rs/zerolog"
)

// DefaultLogFile is where the engine logs unless the Log File option says
// otherwise. An empty path disables logging entirely.
const DefaultLogFile = "gosling.log"

// engineLogger wraps a zerolog logger writing to an append-only file. UCI
// GUIs swallow stderr, so a file is the only place diagnostics survive; it
// records every line received, the info and bestmove lines sent, and
// search setup details. The
// mutex covers the file swap in SetLogFile, which can race with a running
// search's log calls.
type engineLogger struct {
	mu   sync.Mutex
	path string
	file *os.File
	log  zerolog.Logger
}

func (l *engineLogger) open(path string) {
	l.path = path
	if l.file != nil {
		l.file.Close()
		l.file = nil
	}
	l.log = zerolog.Nop()
	if path == "" {
		return
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot open log file %q: %v\n", path, err)
		return
	}
	l.file = file
	l.log = zerolog.New(file).With().Timestamp().Logger()
}

// SetLogFile applies the Log File option. An empty string (or the UCI
// "<empty>" placeholder) turns logging off.
func (e *Engine) SetLogFile(path string) {
	if path == "<empty>" || path == `"<empty>"` || path == `""` {
		path = ""
	}
	e.logger.mu.Lock()
	defer e.logger.mu.Unlock()
	if path == e.logger.path {
		return
	}
	e.logger.open(path)
}

// Log writes one message to the log file, if one is open.
func (e *Engine) Log(message string) {
	e.logger.mu.Lock()
	e.logger.log.Info().Msg(message)
	e.logger.mu.Unlock()
}

// Logf is Log with formatting.
func (e *Engine) Logf(format string, args ...any) {
	e.Log(fmt.Sprintf(format, args...))
}
