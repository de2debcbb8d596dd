package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/sokoban-opt/vicinity/sokoboard"
)

// parsedLevel holds both boards a level file describes: the initial
// occupancy (where the boxes and player actually start) and the goal
// occupancy (where every box must end up). Static geometry — walls,
// player- and box-reachable cells — is shared between the two.
type parsedLevel struct {
	Initial sokoboard.Board
	End     sokoboard.Board
}

// loadLevel reads a classic XSB-style Sokoban grid:
//
//	#  wall
//	.  floor (player/box reachable, no goal)
//	@  player start
//	+  player start, standing on a goal
//	$  box start
//	*  box start, already on a goal
//	g  goal (no box there initially)
//
// Any other rune, including blank runs past the end of a row, is
// treated as outside the level (a wall) — this harness favors a
// strict, unambiguous grid over guessing at open-ended layouts.
func loadLevel(path string) (parsedLevel, error) {
	f, err := os.Open(path)
	if err != nil {
		return parsedLevel{}, fmt.Errorf("vicinitybench: open level: %w", err)
	}
	defer f.Close()

	var rows []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if line == "" {
			continue
		}
		rows = append(rows, line)
	}
	if err := scanner.Err(); err != nil {
		return parsedLevel{}, fmt.Errorf("vicinitybench: read level: %w", err)
	}
	if len(rows) == 0 {
		return parsedLevel{}, fmt.Errorf("vicinitybench: level %q is empty", path)
	}

	height := len(rows)
	width := 0
	for _, r := range rows {
		if len(r) > width {
			width = len(r)
		}
	}

	initial := sokoboard.Board{
		Width: width, Height: height,
		Walls:       make([]bool, width*height),
		PlayerCells: make([]bool, width*height),
		BoxCells:    make([]bool, width*height),
		PlayerAt:    -1,
		Occupied:    make([]bool, width*height),
	}
	end := sokoboard.Board{
		Width: width, Height: height,
		Walls:       initial.Walls,
		PlayerCells: initial.PlayerCells,
		BoxCells:    initial.BoxCells,
		PlayerAt:    -1,
		Occupied:    make([]bool, width*height),
	}

	for y, row := range rows {
		for x := 0; x < width; x++ {
			idx := initial.Index(x, y)
			ch := byte(' ')
			if x < len(row) {
				ch = row[x]
			}
			switch ch {
			case '#':
				initial.Walls[idx] = true
			case '.':
				initial.PlayerCells[idx] = true
				initial.BoxCells[idx] = true
			case '@':
				initial.PlayerCells[idx] = true
				initial.BoxCells[idx] = true
				initial.PlayerAt = idx
			case '+':
				initial.PlayerCells[idx] = true
				initial.BoxCells[idx] = true
				initial.PlayerAt = idx
				end.Occupied[idx] = true
			case '$':
				initial.PlayerCells[idx] = true
				initial.BoxCells[idx] = true
				initial.Occupied[idx] = true
			case '*':
				initial.PlayerCells[idx] = true
				initial.BoxCells[idx] = true
				initial.Occupied[idx] = true
				end.Occupied[idx] = true
			case 'g':
				initial.PlayerCells[idx] = true
				initial.BoxCells[idx] = true
				end.Occupied[idx] = true
			default:
				initial.Walls[idx] = true
			}
		}
	}

	if initial.PlayerAt < 0 {
		return parsedLevel{}, fmt.Errorf("vicinitybench: level %q has no player start (@ or +)", path)
	}

	return parsedLevel{Initial: initial, End: end}, nil
}

// renderMoves writes sol's moves back out as the same U/D/L/R letters
// loadSeed reads, so a benchmark result can be fed back in as a new
// seed file.
func renderMoves(sol sokoboard.Solution) string {
	var b strings.Builder
	for _, d := range sol.Moves {
		switch d {
		case sokoboard.Up:
			b.WriteByte('U')
		case sokoboard.Down:
			b.WriteByte('D')
		case sokoboard.Left:
			b.WriteByte('L')
		case sokoboard.Right:
			b.WriteByte('R')
		}
	}
	return b.String()
}

var directionLetters = map[byte]sokoboard.Direction{
	'U': sokoboard.Up, 'u': sokoboard.Up,
	'D': sokoboard.Down, 'd': sokoboard.Down,
	'L': sokoboard.Left, 'l': sokoboard.Left,
	'R': sokoboard.Right, 'r': sokoboard.Right,
}

// loadSeed reads a seed solution as U/D/L/R letters (either case),
// possibly over several lines; blank lines and lines starting with #
// are skipped.
// It does not validate the moves against any board — replaySolution
// does that once the level is known, and reports a precise error if
// the seed does not actually reach a legal sequence of board states.
func loadSeed(path string) (sokoboard.Solution, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return sokoboard.Solution{}, fmt.Errorf("vicinitybench: open seed: %w", err)
	}

	var moves []sokoboard.Direction
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		for i := 0; i < len(line); i++ {
			dir, ok := directionLetters[line[i]]
			if !ok {
				return sokoboard.Solution{}, fmt.Errorf("vicinitybench: seed %q: unrecognized move character %q", path, line[i])
			}
			moves = append(moves, dir)
		}
	}
	if len(moves) == 0 {
		return sokoboard.Solution{}, fmt.Errorf("vicinitybench: seed %q has no moves", path)
	}

	return sokoboard.Solution{Moves: moves, MovesCount: len(moves)}, nil
}
