package sound

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/tilebox/internal/board"
)

// SampleRate is the output rate of every effect.
const SampleRate = beep.SampleRate(44100)

// Player turns game signals into sound effects. Until Init succeeds every
// signal is dropped, so a machine without audio output still plays silently.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	initialized bool
	logger      *log.Logger
}

// NewPlayer creates a player with the given master volume in [0, 1].
func NewPlayer(volume float64, logger *log.Logger) *Player {
	if volume < 0 {
		volume = 0
	}
	if volume > 1 {
		volume = 1
	}
	return &Player{
		mixer:  &beep.Mixer{},
		volume: volume,
		logger: logger,
	}
}

// Init opens the speaker. Calling it again after success is a no-op.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(SampleRate, SampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Close silences pending effects and stops accepting new ones.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.initialized = false
}

// GameStarted plays the start jingle.
func (p *Player) GameStarted() {
	p.play(StartEffect(SampleRate))
}

// TilesCollected plays a chime scaled to the number of tiles.
func (p *Player) TilesCollected(tiles []board.Tile) {
	if len(tiles) == 0 {
		return
	}
	p.play(CollectEffect(len(tiles), SampleRate))
}

// GameOver plays the game over phrase.
func (p *Player) GameOver(score, best int) {
	p.play(GameOverEffect(SampleRate))
}

func (p *Player) play(s beep.Streamer) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Add(withVolume(s, p.volume))
	playing := p.mixer.Len()
	speaker.Unlock()

	if p.logger != nil {
		p.logger.Debug("sound queued", "playing", playing)
	}
}
