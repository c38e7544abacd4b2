package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"gosling/engine"
	gm "gosling/goslingmg"
)

const (
	engineName   = "Gosling 1.0"
	engineAuthor = "Goose"
)

func main() {
	uciLoop()
}

// uciLoop reads UCI commands from stdin and dispatches them. The loop
// itself never searches: go spawns a goroutine running SearchPosition and
// keeps reading, so stop and quit arrive while the engine is thinking.
// The goroutine is joined before a new search starts and before exit; the
// stop flag is the only state shared with it.
func uciLoop() {
	e := engine.NewEngine()
	e.SetLogFile(engine.DefaultLogFile)
	scanner := bufio.NewScanner(os.Stdin)
	var searchWG sync.WaitGroup

	for scanner.Scan() {
		line := scanner.Text()
		e.Log(">> " + line)
		tokens := strings.Fields(line)
		if len(tokens) == 0 {
			continue
		}
		switch tokens[0] {
		case "uci":
			fmt.Println("id name", engineName)
			fmt.Println("id author", engineAuthor)
			fmt.Printf("option name Hash type spin default %d min %d max %d\n",
				engine.DefaultHashSizeMB, engine.MinHashSizeMB, engine.MaxHashSizeMB)
			fmt.Printf("option name Move Overhead type spin default %d min 0 max 5000\n",
				engine.DefaultMoveOverhead)
			fmt.Printf("option name Log File type string default %s\n", engine.DefaultLogFile)
			fmt.Println("uciok")
		case "isready":
			e.Initialize()
			fmt.Println("readyok")
		case "setoption":
			processSetOption(e, tokens[1:])
		case "ucinewgame":
			searchWG.Wait()
			e.NewGame()
		case "position":
			searchWG.Wait()
			processPosition(e, line)
		case "go":
			searchWG.Wait()
			info := parseGoCommand(tokens[1:])
			searchWG.Add(1)
			go func() {
				defer searchWG.Done()
				e.SearchPosition(info)
			}()
		case "stop":
			e.StopSearch()
		case "quit":
			e.StopSearch()
			searchWG.Wait()
			return
		default:
			// Protocol errors never kill the loop; log and move on.
			e.Log("unknown command: " + line)
		}
	}
	searchWG.Wait()
}

// processSetOption handles "setoption name <name> [value <v>]". Option
// names can contain spaces (Move Overhead, Log File), so everything
// between "name" and "value" is the name and everything after "value" is
// the value.
func processSetOption(e *engine.Engine, tokens []string) {
	var name, value []string
	inValue := false
	for i, token := range tokens {
		switch {
		case i == 0 && token == "name":
		case token == "value" && !inValue:
			inValue = true
		case inValue:
			value = append(value, token)
		default:
			name = append(name, token)
		}
	}
	switch strings.Join(name, " ") {
	case "Hash":
		if size, err := strconv.Atoi(strings.Join(value, " ")); err == nil {
			e.SetHashTableSize(size)
		} else {
			e.Log("malformed Hash value")
		}
	case "Move Overhead":
		if overhead, err := strconv.Atoi(strings.Join(value, " ")); err == nil {
			e.SetMoveOverhead(overhead)
		} else {
			e.Log("malformed Move Overhead value")
		}
	case "Log File":
		e.SetLogFile(strings.Join(value, " "))
	default:
		e.Log("unknown option: " + strings.Join(name, " "))
	}
}

// processPosition handles "position {startpos | fen <fen>} [moves ...]".
// A bad FEN leaves the previous position in place; a bad move string stops
// the move list there.
func processPosition(e *engine.Engine, line string) {
	posScanner := bufio.NewScanner(strings.NewReader(line))
	posScanner.Split(bufio.ScanWords)
	posScanner.Scan() // skip "position"
	if !posScanner.Scan() {
		e.Log("malformed position command")
		return
	}
	switch posScanner.Text() {
	case "startpos":
		if err := e.SetupBoard(""); err != nil {
			e.Log(err.Error())
			return
		}
		posScanner.Scan() // advance to "moves", if present
	case "fen":
		fen := ""
		for posScanner.Scan() && posScanner.Text() != "moves" {
			if fen != "" {
				fen += " "
			}
			fen += posScanner.Text()
		}
		if err := e.SetupBoard(fen); err != nil {
			fmt.Fprintln(os.Stderr, err)
			e.Log(err.Error())
			return
		}
	default:
		e.Log("invalid position subcommand: " + posScanner.Text())
		return
	}
	if posScanner.Text() != "moves" {
		return
	}
	var moves []string
	for posScanner.Scan() {
		moves = append(moves, posScanner.Text())
	}
	if err := e.MakeMoves(moves); err != nil {
		fmt.Fprintln(os.Stderr, err)
		e.Log(err.Error())
	}
}

// parseGoCommand reads the search limits off a go command. Unknown or
// malformed values are skipped; whatever parsed still applies.
func parseGoCommand(tokens []string) engine.SearchInfo {
	info := engine.NewSearchInfo()
	readInt := func(i int) (int, bool) {
		if i+1 >= len(tokens) {
			return 0, false
		}
		n, err := strconv.Atoi(tokens[i+1])
		return n, err == nil
	}
	for i := 0; i < len(tokens); i++ {
		switch tokens[i] {
		case "depth":
			if n, ok := readInt(i); ok {
				info.MaxDepth = n
				i++
			}
		case "wtime":
			if n, ok := readInt(i); ok {
				info.Time[gm.White] = n
				i++
			}
		case "btime":
			if n, ok := readInt(i); ok {
				info.Time[gm.Black] = n
				i++
			}
		case "winc":
			if n, ok := readInt(i); ok {
				info.Inc[gm.White] = n
				i++
			}
		case "binc":
			if n, ok := readInt(i); ok {
				info.Inc[gm.Black] = n
				i++
			}
		case "movetime":
			if n, ok := readInt(i); ok {
				info.Movetime = n
				i++
			}
		case "movestogo":
			if n, ok := readInt(i); ok && n > 0 {
				info.Movestogo = n
				i++
			}
		case "infinite":
		}
	}
	return info
}
