// Package ambience plays the rain soundscape that accompanies the rain field
// and fades it out when the rain stops.
package ambience

import (
	"fmt"
	"log"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// FadeOut is the default fade used when the rain halts.
const FadeOut = 1200 * time.Millisecond

// Player owns the speaker and the rain streamer.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	rain        *RainNoise
	ctrl        *beep.Ctrl
	volume      *effects.Volume
	initialized bool
}

// NewPlayer creates a player at the given linear volume in [0, 1].
func NewPlayer(volume float64) *Player {
	p := &Player{
		mixer: &beep.Mixer{},
		rain:  NewRainNoise(sampleRate, 1, uint64(time.Now().UnixNano())),
	}
	p.ctrl = &beep.Ctrl{Streamer: p.rain, Paused: true}
	p.volume = &effects.Volume{Streamer: p.ctrl, Base: 2}
	p.SetVolume(volume)
	p.mixer.Add(p.volume)
	return p
}

// Initialize opens the audio device and starts mixing.
func (p *Player) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// SetVolume sets the master volume. Zero or less is silent.
func (p *Player) SetVolume(v float64) {
	if p.initialized {
		speaker.Lock()
		defer speaker.Unlock()
	}
	if v <= 0 {
		p.volume.Silent = true
		p.volume.Volume = 0
		return
	}
	p.volume.Silent = false
	p.volume.Volume = math.Log2(math.Min(v, 1))
}

// Volume returns the master volume as a linear gain.
func (p *Player) Volume() float64 {
	if p.volume.Silent {
		return 0
	}
	return math.Pow(p.volume.Base, p.volume.Volume)
}

// StartRain unpauses the rain at full gain.
func (p *Player) StartRain() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.rain.FadeTo(1, 0)
	p.setPaused(false)
}

// StopRain fades the rain out over d. The streamer keeps running silent so a
// later StartRain needs no re-wiring.
func (p *Player) StopRain(d time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.rain.FadeTo(0, d)
	log.Printf("[ambience] rain fading out over %v", d)
}

// Playing reports whether the rain streamer is unpaused.
func (p *Player) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return !p.ctrl.Paused
}

// Close pauses everything and clears the mixer.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	p.setPaused(true)
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.initialized = false
}

func (p *Player) setPaused(paused bool) {
	if p.initialized {
		speaker.Lock()
		defer speaker.Unlock()
	}
	p.ctrl.Paused = paused
}
