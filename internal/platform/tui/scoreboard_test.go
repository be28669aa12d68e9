package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tilebox/internal/storage"
)

func TestScoreboardShowsScores(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	store.SaveScore("tilebox", 21, 40)
	store.SaveScore("tilebox", 9, 18)
	store.RecordBestScore("tilebox", 21)

	m := NewScoreboardModel(store, "tilebox", "Tilebox", 80, 24)
	if len(m.scores) != 2 {
		t.Fatalf("loaded %d scores, want 2", len(m.scores))
	}

	view := m.View()
	for _, want := range []string{"HIGH SCORES - Tilebox", "Best: 21", "#1", "40"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestScoreboardEmpty(t *testing.T) {
	m := NewScoreboardModel(nil, "tilebox", "Tilebox", 80, 24)
	if !strings.Contains(m.View(), "No scores recorded yet") {
		t.Error("empty scoreboard should say so")
	}
}

func TestScoreboardQuit(t *testing.T) {
	m := NewScoreboardModel(nil, "tilebox", "Tilebox", 80, 24)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Error("esc should quit")
	}
	if next.(ScoreboardModel).View() != "" {
		t.Error("view should be empty after quitting")
	}
}

func TestScoreRows(t *testing.T) {
	rows := ScoreRows([]storage.ScoreEntry{{Score: 30, Inserted: 50}, {Score: 3, Inserted: 7}})
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[1][0] != "#2" || rows[1][1] != "3" || rows[1][2] != "7" {
		t.Errorf("second row = %v", rows[1])
	}
}
