package tilebox

import "github.com/vovakirdan/tilebox/internal/board"

// Snapshot captures the game state for determinism testing and debugging.
type Snapshot struct {
	Tick     uint64
	Phase    Phase
	Session  Session
	Tiles    []board.Tile
	Pending  []string // Timeline task names, head first
	Exiting  int      // Tiles still fading out
	Paused   bool
	TooSmall bool
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Tick:     g.tick,
		Phase:    g.Phase(),
		Session:  g.session,
		Tiles:    g.board.Tiles(),
		Pending:  g.timeline.Names(),
		Exiting:  len(g.exiting),
		Paused:   g.paused,
		TooSmall: g.tooSmall,
	}
}

// Grid returns the board as rows of color indexes, -1 marking empty cells.
// Rows are indexed by J and columns by I.
func (s Snapshot) Grid(width, height int) [][]int {
	grid := make([][]int, height)
	for j := range grid {
		grid[j] = make([]int, width)
		for i := range grid[j] {
			grid[j][i] = -1
		}
	}
	for _, t := range s.Tiles {
		if t.Pos.J >= 0 && t.Pos.J < height && t.Pos.I >= 0 && t.Pos.I < width {
			grid[t.Pos.J][t.Pos.I] = int(t.Color)
		}
	}
	return grid
}
