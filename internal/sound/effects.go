package sound

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

const (
	startNote    = 90 * time.Millisecond
	collectNote  = 70 * time.Millisecond
	gameOverNote = 180 * time.Millisecond

	// Collect chimes climb one semitone per extra tile, up to an octave.
	maxCollectSteps = 12
)

// StartEffect is a rising two-note jingle.
func StartEffect(rate beep.SampleRate) beep.Streamer {
	return beep.Seq(
		note(523.25, startNote, WaveTriangle, rate), // C5
		note(783.99, startNote, WaveTriangle, rate), // G5
	)
}

// CollectEffect is a chime whose pitch grows with the number of collected
// tiles, layered with an octave overtone.
func CollectEffect(count int, rate beep.SampleRate) beep.Streamer {
	steps := count - 3
	if steps < 0 {
		steps = 0
	}
	if steps > maxCollectSteps {
		steps = maxCollectSteps
	}
	freq := 659.25 * math.Pow(2, float64(steps)/12) // from E5

	return beep.Mix(
		withVolume(note(freq, collectNote, WaveSine, rate), 0.7),
		withVolume(note(freq*2, collectNote, WaveSine, rate), 0.3),
	)
}

// GameOverEffect is a falling three-note phrase.
func GameOverEffect(rate beep.SampleRate) beep.Streamer {
	return beep.Seq(
		note(392.00, gameOverNote, WaveSquare, rate),   // G4
		note(311.13, gameOverNote, WaveSquare, rate),   // Eb4
		note(261.63, 2*gameOverNote, WaveSquare, rate), // C4
	)
}
