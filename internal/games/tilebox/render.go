package tilebox

import (
	"fmt"
	"time"

	"github.com/vovakirdan/tilebox/internal/board"
	"github.com/vovakirdan/tilebox/internal/core"
)

const (
	cellWidth  = 4 // Characters per cell horizontally
	cellHeight = 2 // Rows per cell
	hudHeight  = 3
	blinkEvery = 100 * time.Millisecond

	boardW = BoardWidth*cellWidth + 3
	boardH = BoardHeight*cellHeight + 1

	minScreenW = boardW + 2
	minScreenH = hudHeight + boardH + 2
)

// palette maps tile colors to screen colors. Only the first PaletteSize
// entries are used in a game.
var palette = [...]core.Color{
	core.ColorBlue,
	core.ColorRed,
	core.ColorYellow,
	core.ColorGreen,
	core.ColorMagenta,
	core.ColorOrange,
}

// TileColor returns the screen color of a tile color.
func TileColor(c board.Color) core.Color {
	if int(c) < len(palette) {
		return palette[c]
	}
	return core.ColorWhite
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	boardX := (g.screenW - boardW) / 2
	boardY := hudHeight

	g.renderHUD(dst, boardX)
	g.renderBoard(dst, boardX, boardY)
	g.renderOverlays(dst, boardX, boardY)

	dst.DrawTextCentered(boardY+boardH, "←↑↓→ slide  P pause  Q quit")
}

func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need %dx%d", minScreenW, minScreenH))
}

// renderHUD draws the title, score and best score.
func (g *Game) renderHUD(dst *core.Screen, boardX int) {
	dst.DrawTextCentered(0, "T I L E B O X")

	score := fmt.Sprintf("Score: %d", g.session.Score)
	dst.DrawTextColor(boardX, 1, score, core.ColorWhite)

	best := fmt.Sprintf("Best: %d", g.session.Best)
	bestX := boardX + boardW - len(best)
	dst.DrawTextColor(bestX, 1, best, core.ColorCyan)
}

// renderBoard draws the frame, empty cells, tiles and fading tiles.
func (g *Game) renderBoard(dst *core.Screen, boardX, boardY int) {
	dst.DrawBox(core.NewRect(boardX, boardY, boardW, boardH))

	for _, cell := range g.board.Cells() {
		if cell.Empty() {
			x, y := cellOrigin(boardX, boardY, cell.Pos)
			dst.SetColor(x+cellWidth/2-1, y, '·', core.ColorGray)
		}
	}

	for _, t := range g.board.Tiles() {
		g.drawTile(dst, boardX, boardY, t.Pos, '█', TileColor(t.Color))
	}

	// Removed tiles blink in place until the collect animation ends.
	if len(g.exiting) > 0 && (g.exitClock/blinkEvery)%2 == 0 {
		for _, t := range g.exiting {
			if t.AnimateExit {
				g.drawTile(dst, boardX, boardY, t.Pos, '▒', TileColor(t.Color))
			}
		}
	}
}

func (g *Game) drawTile(dst *core.Screen, boardX, boardY int, pos board.Coord, fill rune, c core.Color) {
	x, y := cellOrigin(boardX, boardY, pos)
	dst.FillRect(core.NewRect(x, y, cellWidth-1, cellHeight-1), fill, c)
}

// cellOrigin returns the top-left screen position of a cell inside the frame.
func cellOrigin(boardX, boardY int, pos board.Coord) (int, int) {
	return boardX + 1 + pos.I*cellWidth + 1, boardY + 1 + pos.J*cellHeight
}

// renderOverlays draws pause and game over boxes over the board.
func (g *Game) renderOverlays(dst *core.Screen, boardX, boardY int) {
	centerX := boardX + boardW/2
	centerY := boardY + boardH/2

	switch {
	case g.session.GameOver:
		result := fmt.Sprintf("Score: %d  Best: %d", g.session.Score, g.session.Best)
		g.drawOverlay(dst, centerX, centerY, "GAME OVER", result, "Enter to play again")
	case g.paused:
		g.drawOverlay(dst, centerX, centerY, "PAUSED", "Press P to resume")
	}
}

// drawOverlay draws a boxed, centered block of lines.
func (g *Game) drawOverlay(dst *core.Screen, centerX, centerY int, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		if n := len([]rune(line)); n > maxLen {
			maxLen = n
		}
	}

	w := maxLen + 4
	h := len(lines) + 2
	r := core.NewRect(centerX-w/2, centerY-h/2, w, h)

	dst.FillRect(r, ' ', core.ColorDefault)
	dst.DrawBox(r)
	for i, line := range lines {
		x := centerX - len([]rune(line))/2
		dst.DrawTextColor(x, r.Y+1+i, line, core.ColorWhite)
	}
}
