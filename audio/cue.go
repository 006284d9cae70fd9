// Package audio plays short cues while the simulator runs. Every operation is
// a no-op until Initialize succeeds, so the simulator works without a sound
// device
package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(48000)

// Options shape the region-change tone
type Options struct {
	Frequency float64       // Hz
	Duration  time.Duration // tone length including attack and release
	Volume    float64       // linear gain, 0 mutes
}

// DefaultOptions is a short A4 blip
var DefaultOptions = Options{
	Frequency: 440,
	Duration:  60 * time.Millisecond,
	Volume:    0.5,
}

func (o Options) normalized() Options {
	if o.Frequency <= 0 {
		o.Frequency = DefaultOptions.Frequency
	}
	if o.Duration <= 0 {
		o.Duration = DefaultOptions.Duration
	}
	if o.Volume < 0 {
		o.Volume = 0
	}
	return o
}

// Cue beeps whenever the camera crosses into another BSP region
type Cue struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	opts        Options
	region      int
	seen        bool
	initialized bool
}

// NewCue creates a silent cue; call Initialize to reach the speaker
func NewCue(opts Options) *Cue {
	return &Cue{
		mixer:  &beep.Mixer{},
		opts:   opts.normalized(),
		region: -1,
	}
}

// Initialize opens the speaker. Safe to call more than once
func (c *Cue) Initialize() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100)); err != nil {
		return err
	}

	speaker.Play(c.mixer)
	c.initialized = true
	return nil
}

// Cleanup drops pending tones and releases the speaker
func (c *Cue) Cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return
	}

	speaker.Lock()
	c.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	c.initialized = false
}

// Active reports whether tones reach the speaker
func (c *Cue) Active() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.initialized
}

// Region records the node containing the camera and plays the tone when it
// differs from the previous one. Returns true on a change
func (c *Cue) Region(idx int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if idx == c.region {
		return false
	}
	c.region = idx

	// An empty tree has no region to enter
	if idx < 0 {
		return false
	}
	// Entering the first region on startup is not a crossing
	if !c.seen {
		c.seen = true
		return false
	}
	c.play()
	return true
}

// Play sounds the tone once
func (c *Cue) Play() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.play()
}

func (c *Cue) play() {
	if !c.initialized {
		return
	}
	s, err := Tone(c.opts, sampleRate)
	if err != nil {
		return
	}
	speaker.Lock()
	c.mixer.Add(s)
	speaker.Unlock()
}
