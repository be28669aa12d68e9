package tilebox

import "github.com/vovakirdan/tilebox/internal/board"

// Phase is the controller's position in the turn cycle.
type Phase int

const (
	PhaseIdle         Phase = iota // No game started yet
	PhaseAwaitingMove              // Idle timer armed, directional intents accepted
	PhaseResolving                 // Slide/collect/insert chain in flight
	PhaseGameOver                  // Board filled up, waiting for a new game
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseAwaitingMove:
		return "awaiting_move"
	case PhaseResolving:
		return "resolving"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Session is the mutable state of one game. It is reset by every StartGame.
type Session struct {
	Score    int  // Tiles collected so far
	Inserted int  // Tiles inserted so far, shortens the idle budget
	GameOver bool // Set once the board fills up
	Best     int  // Best score known, including this session
	Started  bool // StartGame has run at least once
}

// Listener receives game-level signals. Calls happen synchronously on the
// goroutine that drives the game, so implementations must not block.
type Listener interface {
	GameStarted()
	TilesCollected(tiles []board.Tile)
	GameOver(score, best int)
}

// BestScoreStore persists the best score between runs.
type BestScoreStore interface {
	LoadBestScore() (int, error)
	SaveBestScore(score int) error
}

type nopListener struct{}

func (nopListener) GameStarted()                {}
func (nopListener) TilesCollected([]board.Tile) {}
func (nopListener) GameOver(score, best int)    {}

type memoryBest struct{ best int }

func (m *memoryBest) LoadBestScore() (int, error) { return m.best, nil }

func (m *memoryBest) SaveBestScore(score int) error {
	if score > m.best {
		m.best = score
	}
	return nil
}
