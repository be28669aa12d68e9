// Package sound synthesizes short effects for game events and plays them
// through the system speaker.
package sound

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Wave is an oscillator shape.
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveTriangle
)

// tone is a fixed-length oscillator.
type tone struct {
	freq  float64
	phase float64
	left  int
	wave  Wave
	rate  beep.SampleRate
}

// Tone returns a streamer producing freq Hz for duration.
func Tone(freq float64, duration time.Duration, wave Wave, rate beep.SampleRate) beep.Streamer {
	return &tone{freq: freq, left: rate.N(duration), wave: wave, rate: rate}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	if t.left <= 0 {
		return 0, false
	}
	for i := range samples {
		if t.left <= 0 {
			return i, true
		}

		var v float64
		switch t.wave {
		case WaveSine:
			v = math.Sin(2 * math.Pi * t.phase)
		case WaveSquare:
			v = 1
			if t.phase >= 0.5 {
				v = -1
			}
		case WaveTriangle:
			v = 4*math.Abs(t.phase-0.5) - 1
		}
		samples[i][0] = v
		samples[i][1] = v

		t.phase += t.freq / float64(t.rate)
		t.phase -= math.Floor(t.phase)
		t.left--
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }

// fade applies a linear attack and release to a streamer of known length.
type fade struct {
	s       beep.Streamer
	pos     int
	total   int
	attack  int
	release int
}

// Fade shapes s with a linear attack and release.
func Fade(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &fade{
		s:       s,
		total:   rate.N(duration),
		attack:  rate.N(attack),
		release: rate.N(release),
	}
}

func (f *fade) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = f.s.Stream(samples)
	for i := 0; i < n; i++ {
		gain := 1.0
		if f.attack > 0 && f.pos < f.attack {
			gain = float64(f.pos) / float64(f.attack)
		}
		if left := f.total - f.pos; f.release > 0 && left < f.release {
			gain = math.Max(0, float64(left)/float64(f.release))
		}
		samples[i][0] *= gain
		samples[i][1] *= gain
		f.pos++
	}
	return n, ok
}

func (f *fade) Err() error { return f.s.Err() }

// withVolume scales s linearly by vol. Zero or less is silent.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// note is a shaped tone with a short click-free envelope.
func note(freq float64, d time.Duration, wave Wave, rate beep.SampleRate) beep.Streamer {
	return Fade(Tone(freq, d, wave, rate), d, 5*time.Millisecond, d/2, rate)
}
