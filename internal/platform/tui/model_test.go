package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tilebox/internal/core"
	"github.com/vovakirdan/tilebox/internal/storage"
)

// stubGame records what the platform feeds it.
type stubGame struct {
	resets  int
	steps   []core.InputFrame
	state   core.GameState
	resized [2]int
}

func (g *stubGame) ID() string               { return "stub" }
func (g *stubGame) Title() string            { return "Stub" }
func (g *stubGame) Reset(core.RuntimeConfig) { g.resets++ }
func (g *stubGame) State() core.GameState    { return g.state }
func (g *stubGame) Resize(w, h int)          { g.resized = [2]int{w, h} }
func (g *stubGame) Render(dst *core.Screen)  { dst.DrawText(0, 0, "stub game") }

func (g *stubGame) Step(in core.InputFrame) core.StepResult {
	frame := core.NewInputFrame()
	for a, on := range in.Actions {
		if on {
			frame.Set(a)
		}
	}
	g.steps = append(g.steps, frame)
	return core.StepResult{State: g.state}
}

func newTestModel(t *testing.T, g *stubGame, store *storage.Store) Model {
	t.Helper()
	return NewModel(g, store, core.RuntimeConfig{ScreenW: 40, ScreenH: 10, TickRate: 60, Seed: 1}, nil)
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	mm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return mm
}

func TestModelResetsGameOnce(t *testing.T) {
	g := &stubGame{}
	newTestModel(t, g, nil)
	if g.resets != 1 {
		t.Errorf("Reset called %d times, want 1", g.resets)
	}
}

func TestModelForwardsKeysOnNextTick(t *testing.T) {
	g := &stubGame{}
	m := newTestModel(t, g, nil)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m = update(t, m, TickMsg{})
	m = update(t, m, TickMsg{})

	if len(g.steps) != 2 {
		t.Fatalf("Step called %d times, want 2", len(g.steps))
	}
	if !g.steps[0].Has(core.ActionRight) {
		t.Error("first tick should carry ActionRight")
	}
	if g.steps[1].Has(core.ActionRight) {
		t.Error("input must be cleared after a tick")
	}
}

func TestModelQuit(t *testing.T) {
	m := newTestModel(t, &stubGame{}, nil)

	next, cmd := m.Update(runeKey('q'))
	if cmd == nil {
		t.Fatal("quit should return a command")
	}
	if next.(Model).View() != "" {
		t.Error("view should be empty after quitting")
	}
}

func TestModelResizeKeepsGame(t *testing.T) {
	g := &stubGame{}
	m := newTestModel(t, g, nil)

	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})

	if g.resets != 1 {
		t.Error("resize should not restart the game")
	}
	if g.resized != [2]int{100, 30} {
		t.Errorf("Resize got %v, want [100 30]", g.resized)
	}
	if m.screen.Width() != 100 || m.screen.Height() != 30 {
		t.Errorf("screen is %dx%d, want 100x30", m.screen.Width(), m.screen.Height())
	}
}

func TestModelSavesScoreOncePerGameOver(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	g := &stubGame{}
	m := newTestModel(t, g, store)

	g.state = core.GameState{Score: 12, Inserted: 30, GameOver: true}
	m = update(t, m, TickMsg{})
	m = update(t, m, TickMsg{})

	// New game, then a second game over.
	g.state = core.GameState{}
	m = update(t, m, TickMsg{})
	g.state = core.GameState{Score: 5, Inserted: 9, GameOver: true}
	update(t, m, TickMsg{})

	scores, err := store.AllScores("stub")
	if err != nil {
		t.Fatalf("AllScores() failed: %v", err)
	}
	if len(scores) != 2 {
		t.Fatalf("saved %d scores, want 2", len(scores))
	}
	if scores[0].Score != 12 || scores[0].Inserted != 30 {
		t.Errorf("top score = %+v, want score 12 with 30 tiles", scores[0])
	}
}

func TestModelView(t *testing.T) {
	m := newTestModel(t, &stubGame{}, nil)
	if !strings.Contains(m.View(), "stub game") {
		t.Error("view should contain the game's render output")
	}
}

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(12, 2)
	s.DrawTextColor(0, 0, "red", core.ColorRed)
	s.DrawText(4, 0, "plain")
	s.DrawTextColor(0, 1, "gray", core.ColorGray)

	out := RenderScreen(s)
	for _, want := range []string{"red", "plain", "gray"} {
		if !strings.Contains(out, want) {
			t.Errorf("RenderScreen() missing %q", want)
		}
	}
	if got := strings.Count(out, "\n"); got != 1 {
		t.Errorf("RenderScreen() has %d newlines, want 1", got)
	}
}
