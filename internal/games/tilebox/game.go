// Package tilebox implements the tile-matching puzzle: slide every tile in one
// direction, collect same-colored groups of three or more, and keep the board
// from filling up while new tiles keep dropping in.
package tilebox

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tilebox/internal/board"
	"github.com/vovakirdan/tilebox/internal/config"
	"github.com/vovakirdan/tilebox/internal/core"
	"github.com/vovakirdan/tilebox/internal/match"
	"github.com/vovakirdan/tilebox/internal/timeline"
)

// Board dimensions are fixed for every game.
const (
	BoardWidth  = 6
	BoardHeight = 6
)

// Task names used on the timeline.
const (
	taskAwaitUser  = "await-user"
	taskSlideBoard = "slide-board"
	taskCollect    = "collect-tiles"
	taskNewTile    = "new-tile"
)

// GameID is the identifier used for score storage.
const GameID = "tilebox"

// Game is the tilebox controller. It owns the board, the timeline and the
// session, and is driven by Step (fixed ticks) or Tick (arbitrary deltas).
type Game struct {
	cfg      config.TileboxConfig
	rng      *rand.Rand
	board    *board.Board
	timeline *timeline.Timeline
	session  Session
	tick     uint64

	listener Listener
	store    BestScoreStore
	logger   *log.Logger

	tickDur time.Duration

	// Tiles removed by the running collect task, drawn while they fade out.
	exiting   []board.Tile
	exitClock time.Duration

	// Screen dimensions
	screenW int
	screenH int

	paused   bool
	tooSmall bool
}

// Option configures a Game at construction.
type Option func(*Game)

// WithConfig sets timing and rule parameters. Invalid configs are ignored.
func WithConfig(cfg config.TileboxConfig) Option {
	return func(g *Game) {
		if err := cfg.Validate(); err != nil {
			g.logger.Warn("ignoring invalid config", "err", err)
			return
		}
		g.cfg = cfg
	}
}

// WithListener registers a receiver for game-level signals.
func WithListener(l Listener) Option {
	return func(g *Game) {
		if l != nil {
			g.listener = l
		}
	}
}

// WithBestScoreStore sets where the best score is loaded from and saved to.
func WithBestScoreStore(s BestScoreStore) Option {
	return func(g *Game) {
		if s != nil {
			g.store = s
		}
	}
}

// WithLogger sets the logger used by the game and its timeline.
func WithLogger(l *log.Logger) Option {
	return func(g *Game) {
		if l != nil {
			g.logger = l
		}
	}
}

// New creates a game in the idle phase. Call Reset or StartGame to play.
func New(opts ...Option) *Game {
	g := &Game{
		cfg:      config.DefaultTileboxConfig(),
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		listener: nopListener{},
		store:    &memoryBest{},
		logger:   log.New(io.Discard),
		tickDur:  time.Second / 60,
		screenW:  core.DefaultConfig().ScreenW,
		screenH:  core.DefaultConfig().ScreenH,
	}
	for _, opt := range opts {
		opt(g)
	}

	b, err := board.New(BoardWidth, BoardHeight)
	if err != nil {
		panic(err) // fixed dimensions are always valid
	}
	g.board = b
	g.timeline = timeline.New(g.logger.WithPrefix("timeline"))
	return g
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Tilebox"
}

// Reset applies the runtime config and starts a fresh game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g.rng = rand.New(rand.NewSource(seed))
	if cfg.TickRate > 0 {
		g.tickDur = time.Second / time.Duration(cfg.TickRate)
	}
	g.tick = 0
	g.paused = false
	g.Resize(cfg.ScreenW, cfg.ScreenH)
	g.StartGame()
}

// Resize updates the screen dimensions used for layout.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.tooSmall = w < minScreenW || h < minScreenH
}

// StartGame resets the session, clears the board and the timeline, and arms
// the idle timer. It can be called in any phase.
func (g *Game) StartGame() {
	g.timeline.Clear()
	g.board.Clear()
	g.exiting = nil
	g.exitClock = 0

	best := g.session.Best
	if stored, err := g.store.LoadBestScore(); err != nil {
		g.logger.Warn("cannot load best score", "err", err)
	} else if stored > best {
		best = stored
	}
	g.session = Session{Best: best, Started: true}

	g.logger.Info("game started", "best", best)
	g.listener.GameStarted()
	g.awaitUserMove()
}

// Phase reports where the controller is in the turn cycle.
func (g *Game) Phase() Phase {
	switch {
	case !g.session.Started:
		return PhaseIdle
	case g.session.GameOver:
		return PhaseGameOver
	}
	if head, ok := g.timeline.Head(); ok && head == taskAwaitUser {
		return PhaseAwaitingMove
	}
	return PhaseResolving
}

// Session returns a copy of the current session.
func (g *Game) Session() Session {
	return g.session
}

// Board exposes the board for read-only queries.
func (g *Game) Board() *board.Board {
	return g.board
}

// Slide applies a directional intent. It is accepted only while awaiting a
// move and only if at least one tile actually moves; otherwise nothing
// changes and false is returned.
func (g *Game) Slide(d board.Direction) bool {
	if g.Phase() != PhaseAwaitingMove {
		return false
	}
	if !g.board.Slide(d) {
		return false
	}

	g.logger.Debug("slide", "dir", d, "tiles", g.board.Len())
	g.timeline.Clear()
	g.timeline.Enqueue(
		timeline.Task{
			Name:  taskSlideBoard,
			Start: func() time.Duration { return g.cfg.Timing.Slide },
		},
		g.collectTask(),
		g.newTileTask(),
	)
	return true
}

// Tick advances the timeline by dt. Negative deltas are treated as zero.
func (g *Game) Tick(dt time.Duration) {
	if dt < 0 {
		dt = 0
	}
	g.timeline.Tick(dt)
}

// Step advances the game by one fixed tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) && !g.session.GameOver {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	if g.session.GameOver {
		if in.Has(core.ActionConfirm) || in.Has(core.ActionRestart) {
			g.StartGame()
		}
		return core.StepResult{State: g.State()}
	}

	switch {
	case in.Has(core.ActionUp):
		g.Slide(board.Up)
	case in.Has(core.ActionDown):
		g.Slide(board.Down)
	case in.Has(core.ActionLeft):
		g.Slide(board.Left)
	case in.Has(core.ActionRight):
		g.Slide(board.Right)
	}

	g.Tick(g.tickDur)
	return core.StepResult{State: g.State()}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:     g.session.Score,
		BestScore: g.session.Best,
		Inserted:  g.session.Inserted,
		GameOver:  g.session.GameOver,
		Paused:    g.paused || g.tooSmall,
	}
}

// idleBudget is how long the player has before a tile drops in on its own.
func (g *Game) idleBudget() time.Duration {
	t := g.cfg.Timing
	d := t.NextTile - time.Duration(g.session.Inserted)*time.Millisecond
	if d < t.NextTileFloor {
		d = t.NextTileFloor
	}
	return d
}

// awaitUserMove arms the idle timer. When it expires a tile is inserted.
func (g *Game) awaitUserMove() {
	g.timeline.Enqueue(timeline.Task{
		Name:  taskAwaitUser,
		Start: g.idleBudget,
		Finish: func() {
			g.timeline.Enqueue(g.newTileTask())
		},
	})
}

// newTileTask drops a random tile on a random empty cell. The game ends on a
// full board, either before the insert or right after it, before any collect.
func (g *Game) newTileTask() timeline.Task {
	return timeline.Task{
		Name: taskNewTile,
		Start: func() time.Duration {
			if g.session.GameOver {
				return timeline.Skip
			}
			t, ok := g.addNewTile()
			if !ok {
				g.endGame()
				return timeline.Skip
			}
			g.logger.Debug("tile inserted", "pos", t.Pos, "color", t.Color, "inserted", g.session.Inserted)
			return g.cfg.Timing.Insert
		},
		Finish: func() {
			if g.board.IsFull() {
				g.endGame()
				return
			}
			g.timeline.Enqueue(g.collectTask())
			g.awaitUserMove()
		},
	}
}

// addNewTile inserts one tile with a random palette color.
func (g *Game) addNewTile() (board.Tile, bool) {
	pos, ok := g.board.RandomEmptyCell(g.rng)
	if !ok {
		return board.Tile{}, false
	}
	color := board.Color(g.rng.Intn(g.cfg.Rules.PaletteSize))
	t, ok := g.board.Insert(color, pos)
	if !ok {
		return board.Tile{}, false
	}
	g.session.Inserted++
	return t, true
}

// collectTask removes every qualifying group once and scores it. Removals are
// animated only while the score is below the configured threshold.
func (g *Game) collectTask() timeline.Task {
	return timeline.Task{
		Name: taskCollect,
		Start: func() time.Duration {
			animate := g.session.Score < g.cfg.Rules.AnimateUntilScore
			removed := match.Collect(g.board, g.cfg.Rules.MatchSize, animate)
			if len(removed) == 0 {
				return timeline.Skip
			}

			g.session.Score += len(removed)
			g.logger.Debug("tiles collected", "count", len(removed), "score", g.session.Score)
			g.listener.TilesCollected(removed)

			if !animate {
				return 0
			}
			g.exiting = removed
			g.exitClock = 0
			return g.cfg.Timing.Collect
		},
		Update: func(dt time.Duration) {
			g.exitClock += dt
		},
		Finish: func() {
			g.exiting = nil
			if g.board.Len() == 0 {
				// Never leave the player with an empty board.
				g.timeline.Clear()
				g.timeline.Enqueue(g.newTileTask())
			}
		},
		Cancel: func() {
			g.exiting = nil
		},
	}
}

// endGame stops the session, records the best score and notifies listeners.
func (g *Game) endGame() {
	if g.session.GameOver {
		return
	}
	g.timeline.Clear()
	g.session.GameOver = true
	g.paused = false

	if g.session.Score > g.session.Best {
		g.session.Best = g.session.Score
		if err := g.store.SaveBestScore(g.session.Best); err != nil {
			g.logger.Warn("cannot save best score", "err", err)
		}
	}

	g.logger.Info("game over", "score", g.session.Score, "best", g.session.Best, "inserted", g.session.Inserted)
	g.listener.GameOver(g.session.Score, g.session.Best)
}
