package board

import (
	"errors"
	"math/rand"
	"testing"
)

// checkLinks verifies that cell and tile back-references agree.
func checkLinks(t *testing.T, b *Board) {
	t.Helper()

	occupied := 0
	for idx, c := range b.cells {
		if c.tile == NoTile {
			continue
		}
		occupied++
		tile, ok := b.byID[c.tile]
		if !ok {
			t.Fatalf("cell %v references unknown tile %d", c.Pos, c.tile)
		}
		if tile.cell != idx {
			t.Errorf("cell %v holds tile %d, but tile points at cell index %d", c.Pos, tile.ID, tile.cell)
		}
	}

	if occupied != len(b.tiles) {
		t.Errorf("occupied cells = %d, live tiles = %d", occupied, len(b.tiles))
	}

	for slot, tile := range b.tiles {
		if tile.slot != slot {
			t.Errorf("tile %d has slot %d, stored at %d", tile.ID, tile.slot, slot)
		}
		if tile.cell < 0 {
			t.Fatalf("live tile %d is not placed", tile.ID)
		}
		if b.cells[tile.cell].tile != tile.ID {
			t.Errorf("tile %d points at cell %v which holds %d", tile.ID, b.cells[tile.cell].Pos, b.cells[tile.cell].tile)
		}
		if tile.Pos != b.cells[tile.cell].Pos {
			t.Errorf("tile %d position %v does not mirror cell %v", tile.ID, tile.Pos, b.cells[tile.cell].Pos)
		}
	}
}

func mustBoard(t *testing.T, w, h int) *Board {
	t.Helper()
	b, err := New(w, h)
	if err != nil {
		t.Fatalf("New(%d, %d) failed: %v", w, h, err)
	}
	return b
}

func TestNewBoard(t *testing.T) {
	b := mustBoard(t, 4, 3)

	if b.Size() != 12 {
		t.Errorf("Size() = %d, want 12", b.Size())
	}
	if b.Len() != 0 {
		t.Errorf("Len() = %d, want 0", b.Len())
	}

	seen := make(map[Coord]bool)
	for _, c := range b.Cells() {
		if seen[c.Pos] {
			t.Errorf("duplicate cell %v", c.Pos)
		}
		seen[c.Pos] = true
		if !c.Empty() {
			t.Errorf("new cell %v should be empty", c.Pos)
		}
	}

	for i := range 4 {
		for j := range 3 {
			c, ok := b.Cell(Coord{I: i, J: j})
			if !ok || c.Pos != (Coord{I: i, J: j}) {
				t.Errorf("Cell(%d, %d) = %v, %v", i, j, c.Pos, ok)
			}
		}
	}
}

func TestNewBoardInvalidSize(t *testing.T) {
	tests := []struct {
		name string
		w, h int
	}{
		{"zero width", 0, 5},
		{"zero height", 5, 0},
		{"negative", -1, 3},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.w, tc.h)
			if !errors.Is(err, ErrInvalidSize) {
				t.Errorf("New(%d, %d) error = %v, want ErrInvalidSize", tc.w, tc.h, err)
			}
		})
	}
}

func TestInsert(t *testing.T) {
	b := mustBoard(t, 3, 3)

	tile, ok := b.Insert(2, Coord{I: 1, J: 1})
	if !ok {
		t.Fatal("Insert on empty cell should succeed")
	}
	if tile.Pos != (Coord{I: 1, J: 1}) || tile.Color != 2 || !tile.Placed() {
		t.Errorf("inserted tile = %+v", tile)
	}
	if tile.Key == "" {
		t.Error("inserted tile should have a key")
	}
	checkLinks(t, b)

	if _, ok := b.Insert(3, Coord{I: 1, J: 1}); ok {
		t.Error("Insert on occupied cell should fail")
	}
	if _, ok := b.Insert(3, Coord{I: 3, J: 0}); ok {
		t.Error("Insert outside the board should fail")
	}
	if b.Len() != 1 {
		t.Errorf("failed inserts should not add tiles, Len() = %d", b.Len())
	}

	other, _ := b.Insert(2, Coord{I: 0, J: 0})
	if other.ID == tile.ID || other.Key == tile.Key {
		t.Error("tiles should have distinct ids and keys")
	}
}

func TestRemove(t *testing.T) {
	b := mustBoard(t, 3, 3)
	a, _ := b.Insert(0, Coord{I: 0, J: 0})
	m, _ := b.Insert(1, Coord{I: 1, J: 0})
	z, _ := b.Insert(2, Coord{I: 2, J: 0})

	removed, ok := b.Remove(a.ID)
	if !ok {
		t.Fatal("Remove of a placed tile should succeed")
	}
	if removed.Placed() {
		t.Error("removed tile should not report placed")
	}
	checkLinks(t, b)

	if c, _ := b.Cell(Coord{I: 0, J: 0}); !c.Empty() {
		t.Error("cell should be released after Remove")
	}
	if _, ok := b.Remove(a.ID); ok {
		t.Error("second Remove of the same tile should fail")
	}

	for _, id := range []TileID{m.ID, z.ID} {
		if _, ok := b.Tile(id); !ok {
			t.Errorf("tile %d should still be live", id)
		}
	}
}

func TestClear(t *testing.T) {
	b := mustBoard(t, 3, 3)
	for i := range 3 {
		for j := range 3 {
			b.Insert(Color(i), Coord{I: i, J: j})
		}
	}
	if !b.IsFull() {
		t.Fatal("board with 9 tiles should be full")
	}

	b.Clear()

	if b.IsFull() {
		t.Error("IsFull() should be false after Clear")
	}
	if b.Len() != 0 {
		t.Errorf("Len() = %d after Clear, want 0", b.Len())
	}
	for _, c := range b.Cells() {
		if !c.Empty() {
			t.Errorf("cell %v still occupied after Clear", c.Pos)
		}
	}
	checkLinks(t, b)
}

func TestSlideSaturates(t *testing.T) {
	b := mustBoard(t, 3, 1)
	tile, _ := b.Insert(0, Coord{I: 0, J: 0})

	if !b.Slide(Right) {
		t.Fatal("Slide should report movement")
	}

	got, _ := b.Tile(tile.ID)
	if got.Pos != (Coord{I: 2, J: 0}) {
		t.Errorf("tile slid to %v, want rightmost cell (2, 0)", got.Pos)
	}
	checkLinks(t, b)
}

func TestSlideIdempotentAtFixpoint(t *testing.T) {
	dirs := []Direction{Left, Right, Up, Down}

	for _, d := range dirs {
		t.Run(d.String(), func(t *testing.T) {
			b := mustBoard(t, 5, 5)
			rng := rand.New(rand.NewSource(7))
			for range 12 {
				c, _ := b.RandomEmptyCell(rng)
				b.Insert(Color(rng.Intn(5)), c)
			}

			b.Slide(d)
			checkLinks(t, b)

			if b.Slide(d) {
				t.Errorf("second Slide(%s) should report no movement", d)
			}
		})
	}
}

func TestSlidePacksLines(t *testing.T) {
	b := mustBoard(t, 4, 4)
	b.Insert(0, Coord{I: 0, J: 0})
	b.Insert(1, Coord{I: 2, J: 0})
	b.Insert(2, Coord{I: 3, J: 2})
	b.Insert(3, Coord{I: 1, J: 3})

	b.Slide(Left)

	want := map[Coord]Color{
		{I: 0, J: 0}: 0,
		{I: 1, J: 0}: 1,
		{I: 0, J: 2}: 2,
		{I: 0, J: 3}: 3,
	}
	for c, color := range want {
		tile, ok := b.TileAt(c)
		if !ok {
			t.Errorf("expected tile at %v", c)
			continue
		}
		if tile.Color != color {
			t.Errorf("tile at %v has color %d, want %d", c, tile.Color, color)
		}
	}
	checkLinks(t, b)
}

func TestSlideBlocked(t *testing.T) {
	b := mustBoard(t, 2, 2)
	b.Insert(0, Coord{I: 0, J: 0})
	b.Insert(1, Coord{I: 0, J: 1})

	if b.Slide(Left) {
		t.Error("tiles already against the left wall should not move")
	}
	if b.Slide(Direction{DI: 1, DJ: 1}) {
		t.Error("diagonal direction should be rejected")
	}
}

func TestRandomEmptyCell(t *testing.T) {
	b := mustBoard(t, 2, 2)
	rng := rand.New(rand.NewSource(1))

	b.Insert(0, Coord{I: 0, J: 0})
	b.Insert(0, Coord{I: 1, J: 0})
	b.Insert(0, Coord{I: 0, J: 1})

	for range 20 {
		c, ok := b.RandomEmptyCell(rng)
		if !ok || c != (Coord{I: 1, J: 1}) {
			t.Fatalf("RandomEmptyCell() = %v, %v; want (1, 1)", c, ok)
		}
	}

	b.Insert(0, Coord{I: 1, J: 1})
	if _, ok := b.RandomEmptyCell(rng); ok {
		t.Error("RandomEmptyCell on a full board should report none")
	}
}

func TestLinksAfterMixedOperations(t *testing.T) {
	b := mustBoard(t, 6, 6)
	rng := rand.New(rand.NewSource(42))
	dirs := []Direction{Left, Right, Up, Down}

	for step := range 200 {
		switch rng.Intn(3) {
		case 0:
			if c, ok := b.RandomEmptyCell(rng); ok {
				b.Insert(Color(rng.Intn(5)), c)
			}
		case 1:
			b.Slide(dirs[rng.Intn(len(dirs))])
		case 2:
			if tiles := b.Tiles(); len(tiles) > 0 {
				b.Remove(tiles[rng.Intn(len(tiles))].ID)
			}
		}
		checkLinks(t, b)
		if t.Failed() {
			t.Fatalf("links broken at step %d", step)
		}
	}
}

func TestVisit(t *testing.T) {
	b := mustBoard(t, 2, 2)
	tile, _ := b.Insert(0, Coord{})

	pass := b.NewSearchPass()
	if !b.Visit(tile.ID, pass) {
		t.Error("first Visit in a pass should succeed")
	}
	if b.Visit(tile.ID, pass) {
		t.Error("second Visit in the same pass should fail")
	}
	if !b.Visit(tile.ID, b.NewSearchPass()) {
		t.Error("Visit in a new pass should succeed")
	}
	if b.Visit(NoTile, pass) {
		t.Error("Visit of an unknown tile should fail")
	}
}
