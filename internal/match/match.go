// Package match finds connected groups of same-colored tiles on a board
// and removes the groups that are large enough to score.
package match

import "github.com/vovakirdan/tilebox/internal/board"

// DefaultMinSize is the smallest group that gets collected.
const DefaultMinSize = 3

// FindClusters returns every maximal 4-connected group of same-colored tiles.
// Discovery follows the board's tile enumeration order; each tile appears in
// exactly one group.
func FindClusters(b *board.Board) [][]board.Tile {
	pass := b.NewSearchPass()

	var clusters [][]board.Tile
	for _, t := range b.Tiles() {
		var group []board.Tile
		fill(b, t, t.Color, pass, &group)
		if len(group) > 0 {
			clusters = append(clusters, group)
		}
	}
	return clusters
}

// fill is a depth-first flood fill from t over tiles of the given color.
// Visit marks each tile once per pass, which bounds the recursion.
func fill(b *board.Board, t board.Tile, color board.Color, pass uint64, group *[]board.Tile) {
	if t.Color != color || !b.Visit(t.ID, pass) {
		return
	}
	*group = append(*group, t)

	for _, d := range board.Directions {
		if next, ok := b.TileAt(t.Pos.Add(d)); ok {
			fill(b, next, color, pass, group)
		}
	}
}

// Collect removes every group of at least minSize tiles and returns the
// removed tiles with AnimateExit set to animate. Smaller groups are left in
// place. When nothing qualifies the board is untouched and the result is empty.
func Collect(b *board.Board, minSize int, animate bool) []board.Tile {
	if minSize < 1 {
		minSize = DefaultMinSize
	}

	var removed []board.Tile
	for _, group := range FindClusters(b) {
		if len(group) < minSize {
			continue
		}
		for _, t := range group {
			b.MarkExit(t.ID, animate)
			if gone, ok := b.Remove(t.ID); ok {
				removed = append(removed, gone)
			}
		}
	}
	return removed
}
