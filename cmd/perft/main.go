package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/dylhunn/dragontoothmg"

	gm "gosling/goslingmg"
)

func main() {
	fen := flag.String("fen", gm.StartPos, "FEN string (defaults to initial position)")
	depth := flag.Int("depth", 0, "Perft depth (required)")
	divide := flag.Bool("divide", false, "Print per-move node counts at root")
	repeat := flag.Int("repeat", 1, "Repeat perft N times and report aggregate (for steadier timings)")
	label := flag.String("label", "", "Optional label prefix for one-line output")
	check := flag.Bool("check", false, "Also run dragontoothmg over the position and compare counts")
	flag.Parse()

	if *depth <= 0 {
		fmt.Fprintln(os.Stderr, "-depth must be > 0")
		os.Exit(2)
	}

	board, err := gm.ParseFEN(*fen)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ParseFEN error: %v\n", err)
		os.Exit(2)
	}

	if *divide {
		div := gm.PerftDivide(board, *depth)
		type kv struct {
			m gm.Move
			n uint64
		}
		arr := make([]kv, 0, len(div))
		var sum uint64
		for m, n := range div {
			arr = append(arr, kv{m, n})
			sum += n
		}
		sort.Slice(arr, func(i, j int) bool { return arr[i].m.String() < arr[j].m.String() })
		for _, x := range arr {
			fmt.Printf("%s: %d\n", x.m.String(), x.n)
		}
		fmt.Printf("Total: %d\n", sum)
		return
	}

	var totalNodes uint64
	start := time.Now()
	for i := 0; i < *repeat; i++ {
		totalNodes += gm.Perft(board, *depth)
	}
	elapsed := time.Since(start)
	nps := float64(totalNodes) / elapsed.Seconds()
	fmt.Printf("%s \t%d \t\t%d \t\t%s \t%.0f\n", *label, *depth, totalNodes, elapsed, nps)

	if *check {
		reference := dragontoothmg.ParseFen(*fen)
		refNodes := dragonPerft(&reference, *depth) * uint64(*repeat)
		status := "OK"
		if refNodes != totalNodes {
			status = "MISMATCH"
		}
		fmt.Printf("dragontoothmg \t%d \t\t%d \t\t%s\n", *depth, refNodes, status)
		if refNodes != totalNodes {
			os.Exit(1)
		}
	}
}

// dragonPerft runs the same leaf count over the reference move generator.
func dragonPerft(b *dragontoothmg.Board, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	var nodes uint64
	for _, move := range b.GenerateLegalMoves() {
		unapply := b.Apply(move)
		nodes += dragonPerft(b, depth-1)
		unapply()
	}
	return nodes
}
