package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

const (
	toneAttack  = 5 * time.Millisecond
	toneRelease = 20 * time.Millisecond
)

// Tone builds the finite, enveloped sine blip described by opts
func Tone(opts Options, rate beep.SampleRate) (beep.Streamer, error) {
	opts = opts.normalized()

	sine, err := generators.SineTone(rate, opts.Frequency)
	if err != nil {
		return nil, err
	}
	shaped := newEnvelope(beep.Take(rate.N(opts.Duration), sine), opts.Duration, toneAttack, toneRelease, rate)
	return newVolume(shaped, opts.Volume), nil
}

// envelope applies a linear attack and release to a finite stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	totalSamples   int
}

func newEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := min(rate.N(attack), total)
	rel := min(rate.N(release), total-att)

	return &envelope{
		streamer:       s,
		attackSamples:  att,
		releaseSamples: rel,
		totalSamples:   total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, false
		}
		vol := e.gain(e.position)
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

// gain is the envelope level at sample pos
func (e *envelope) gain(pos int) float64 {
	if pos < e.attackSamples {
		return float64(pos) / float64(e.attackSamples)
	}
	if releaseStart := e.totalSamples - e.releaseSamples; pos >= releaseStart && e.releaseSamples > 0 {
		return math.Max(0, float64(e.totalSamples-pos)/float64(e.releaseSamples))
	}
	return 1
}

func (e *envelope) Err() error { return e.streamer.Err() }

// math.Log2(0) is -Inf, so zero volume is expressed as silence
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}
