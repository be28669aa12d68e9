package tui

import "github.com/vovakirdan/tilebox/internal/core"

// Game is what the platform drives. Games contain pure logic with no
// Bubble Tea dependency; the platform handles input mapping, timing and
// drawing the screen buffer.
type Game interface {
	// ID returns the identifier used for score storage.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset initializes the game for the given screen size and seed.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by one fixed tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current game state into the provided screen buffer.
	Render(dst *core.Screen)

	// State returns the current game state.
	State() core.GameState
}

// Resizer is implemented by games that can adapt to a new screen size
// without restarting.
type Resizer interface {
	Resize(w, h int)
}
