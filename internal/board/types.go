package board

// Coord is a cell coordinate: I is the column, J is the row.
type Coord struct {
	I, J int
}

// Add returns the neighboring coordinate in direction d.
func (c Coord) Add(d Direction) Coord {
	return Coord{I: c.I + d.DI, J: c.J + d.DJ}
}

// Direction is a unit step along one axis.
type Direction struct {
	DI, DJ int
}

// The four slide directions. J grows downward.
var (
	Left  = Direction{DI: -1}
	Right = Direction{DI: 1}
	Up    = Direction{DJ: -1}
	Down  = Direction{DJ: 1}
)

// Directions lists the 4-neighborhood in flood-fill order.
var Directions = [4]Direction{Up, Down, Left, Right}

// Valid reports whether d is one of the four unit vectors.
func (d Direction) Valid() bool {
	return d == Left || d == Right || d == Up || d == Down
}

// String returns a human-readable name for the direction.
func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	case Up:
		return "up"
	case Down:
		return "down"
	default:
		return "none"
	}
}

// Color is an index into the game's tile palette.
type Color uint8

// TileID identifies a tile for the lifetime of a board. Ids are never reused.
type TileID uint64

// NoTile is the zero TileID, meaning "no tile".
const NoTile TileID = 0

// Cell is a fixed grid position holding at most one tile.
type Cell struct {
	Pos  Coord
	tile TileID
}

// Tile returns the id of the occupying tile, or NoTile.
func (c Cell) Tile() TileID {
	return c.tile
}

// Empty reports whether no tile occupies the cell.
func (c Cell) Empty() bool {
	return c.tile == NoTile
}

// Tile is a colored occupant of a cell.
type Tile struct {
	ID          TileID
	Key         string // stable key for renderers diffing tiles between frames
	Color       Color
	Pos         Coord
	AnimateExit bool

	cell   int // index into Board.cells, -1 once removed
	slot   int // index into Board.tiles
	search uint64
}

// Placed reports whether the tile currently occupies a cell.
func (t Tile) Placed() bool {
	return t.cell >= 0
}
