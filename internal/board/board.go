// Package board implements the tile grid: a fixed set of cells built once
// from width x height, and the colored tiles that slide between them.
//
// Cells and tiles refer to each other by index and id rather than by
// pointer, so the board owns everything and navigation stays O(1) both ways.
package board

import (
	"errors"

	"github.com/google/uuid"
)

// ErrInvalidSize is returned by New for non-positive dimensions.
var ErrInvalidSize = errors.New("board: width and height must be positive")

// Rand is the subset of *math/rand.Rand used to pick empty cells.
type Rand interface {
	Intn(n int) int
}

// Board holds the cells of the grid and the tiles placed on them.
type Board struct {
	width  int
	height int
	cells  []Cell // index = i*height + j
	tiles  []*Tile
	byID   map[TileID]*Tile
	lastID TileID
	pass   uint64
}

// New creates a board with one empty cell per coordinate in [0,width) x [0,height).
func New(width, height int) (*Board, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidSize
	}

	b := &Board{
		width:  width,
		height: height,
		cells:  make([]Cell, 0, width*height),
		byID:   make(map[TileID]*Tile),
	}
	for i := range width {
		for j := range height {
			b.cells = append(b.cells, Cell{Pos: Coord{I: i, J: j}})
		}
	}
	return b, nil
}

// Width returns the number of columns.
func (b *Board) Width() int {
	return b.width
}

// Height returns the number of rows.
func (b *Board) Height() int {
	return b.height
}

// Size returns the number of cells.
func (b *Board) Size() int {
	return len(b.cells)
}

// Len returns the number of live tiles.
func (b *Board) Len() int {
	return len(b.tiles)
}

// IsFull reports whether every cell is occupied.
func (b *Board) IsFull() bool {
	return len(b.tiles) >= len(b.cells)
}

// InBounds returns true if the coordinate belongs to the board.
func (b *Board) InBounds(c Coord) bool {
	return c.I >= 0 && c.I < b.width && c.J >= 0 && c.J < b.height
}

// index converts a coordinate to a cell index, or -1 if out of bounds.
func (b *Board) index(c Coord) int {
	if !b.InBounds(c) {
		return -1
	}
	return c.I*b.height + c.J
}

// Cell returns the cell at the given coordinate.
func (b *Board) Cell(c Coord) (Cell, bool) {
	idx := b.index(c)
	if idx < 0 {
		return Cell{}, false
	}
	return b.cells[idx], true
}

// Cells returns a copy of all cells in construction order.
func (b *Board) Cells() []Cell {
	out := make([]Cell, len(b.cells))
	copy(out, b.cells)
	return out
}

// Tile returns the live tile with the given id.
func (b *Board) Tile(id TileID) (Tile, bool) {
	t, ok := b.byID[id]
	if !ok {
		return Tile{}, false
	}
	return *t, true
}

// TileAt returns the tile occupying the cell at c.
func (b *Board) TileAt(c Coord) (Tile, bool) {
	idx := b.index(c)
	if idx < 0 || b.cells[idx].tile == NoTile {
		return Tile{}, false
	}
	return b.Tile(b.cells[idx].tile)
}

// Tiles returns a copy of the live tiles in enumeration order.
func (b *Board) Tiles() []Tile {
	out := make([]Tile, len(b.tiles))
	for i, t := range b.tiles {
		out[i] = *t
	}
	return out
}

// Clear removes every tile and releases all cell occupancy.
func (b *Board) Clear() {
	for len(b.tiles) > 0 {
		b.Remove(b.tiles[len(b.tiles)-1].ID)
	}
}

// Insert creates a tile of the given color on the empty cell at c.
// It fails without side effects if c is outside the board or occupied.
func (b *Board) Insert(color Color, c Coord) (Tile, bool) {
	idx := b.index(c)
	if idx < 0 || b.cells[idx].tile != NoTile {
		return Tile{}, false
	}

	b.lastID++
	t := &Tile{
		ID:    b.lastID,
		Key:   "tile=" + uuid.NewString(),
		Color: color,
		cell:  -1,
		slot:  len(b.tiles),
	}
	b.place(t, idx)
	b.tiles = append(b.tiles, t)
	b.byID[t.ID] = t
	return *t, true
}

// Remove takes the tile off the board and returns its final state.
// It fails if the tile is not currently placed.
func (b *Board) Remove(id TileID) (Tile, bool) {
	t, ok := b.byID[id]
	if !ok || t.cell < 0 {
		return Tile{}, false
	}

	b.cells[t.cell].tile = NoTile
	t.cell = -1

	last := len(b.tiles) - 1
	moved := b.tiles[last]
	b.tiles[t.slot] = moved
	moved.slot = t.slot
	b.tiles[last] = nil
	b.tiles = b.tiles[:last]
	delete(b.byID, id)

	return *t, true
}

// MarkExit records whether the tile's removal should be animated.
func (b *Board) MarkExit(id TileID, animate bool) bool {
	t, ok := b.byID[id]
	if !ok {
		return false
	}
	t.AnimateExit = animate
	return true
}

// Slide moves every tile in direction d as far as it can go.
// Passes over the tile list repeat until a full pass moves nothing.
// Returns true if at least one tile moved.
func (b *Board) Slide(d Direction) bool {
	if !d.Valid() {
		return false
	}

	collapsed := false
	for moved := true; moved; {
		moved = false
		for _, t := range b.tiles {
			if b.step(t, d) {
				moved = true
			}
		}
		collapsed = collapsed || moved
	}
	return collapsed
}

// step moves a tile one cell in direction d if the neighbor exists and is empty.
func (b *Board) step(t *Tile, d Direction) bool {
	idx := b.index(t.Pos.Add(d))
	if idx < 0 || b.cells[idx].tile != NoTile {
		return false
	}
	b.place(t, idx)
	return true
}

// place links tile and cell, releasing the tile's previous cell.
func (b *Board) place(t *Tile, idx int) {
	if t.cell >= 0 {
		b.cells[t.cell].tile = NoTile
	}
	b.cells[idx].tile = t.ID
	t.cell = idx
	t.Pos = b.cells[idx].Pos
}

// RandomEmptyCell picks a uniformly random unoccupied cell.
// Returns false if the board is full.
func (b *Board) RandomEmptyCell(rng Rand) (Coord, bool) {
	empty := make([]int, 0, len(b.cells)-len(b.tiles))
	for idx := range b.cells {
		if b.cells[idx].tile == NoTile {
			empty = append(empty, idx)
		}
	}
	if len(empty) == 0 {
		return Coord{}, false
	}
	return b.cells[empty[rng.Intn(len(empty))]].Pos, true
}

// NewSearchPass starts a new flood-fill pass and returns its identifier.
func (b *Board) NewSearchPass() uint64 {
	b.pass++
	return b.pass
}

// Visit marks the tile as seen in the given pass.
// Returns false if the tile is unknown or was already visited in this pass.
func (b *Board) Visit(id TileID, pass uint64) bool {
	t, ok := b.byID[id]
	if !ok || t.search == pass {
		return false
	}
	t.search = pass
	return true
}
