package ambience

import (
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/gopxl/beep"
)

// RainNoise is an endless streamer of soft rain: low-passed white noise with
// a slow swell and sparse droplet ticks. Its gain ramps linearly toward a
// target so level changes never click.
type RainNoise struct {
	mu     sync.Mutex
	sr     beep.SampleRate
	rng    *rand.Rand
	gain   float64
	target float64
	step   float64 // gain change per sample

	low   float64 // one-pole low-pass state
	pos   int
	swell int // samples per swell cycle
	tick  float64
}

// NewRainNoise creates a rain streamer at sr starting at gain.
func NewRainNoise(sr beep.SampleRate, gain float64, seed uint64) *RainNoise {
	return &RainNoise{
		sr:     sr,
		rng:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		gain:   gain,
		target: gain,
		swell:  sr.N(7 * time.Second),
	}
}

// FadeTo ramps the gain to target over d. A non-positive d jumps at once.
func (r *RainNoise) FadeTo(target float64, d time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.target = target
	n := r.sr.N(d)
	if n <= 0 {
		r.gain = target
		r.step = 0
		return
	}
	r.step = math.Abs(target-r.gain) / float64(n)
}

// Gain returns the current gain.
func (r *RainNoise) Gain() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.gain
}

// Stream implements beep.Streamer.
func (r *RainNoise) Stream(samples [][2]float64) (n int, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range samples {
		r.advanceGain()

		white := r.rng.Float64()*2 - 1
		r.low += 0.08 * (white - r.low)

		cycle := float64(r.pos%r.swell) / float64(r.swell)
		swell := 0.75 + 0.25*math.Sin(2*math.Pi*cycle)

		// Occasional droplet: a short decaying click mixed over the hiss.
		if r.rng.Float64() < 0.0004 {
			r.tick = 0.5 + 0.5*r.rng.Float64()
		}
		drop := r.tick * white
		r.tick *= 0.985

		v := r.gain * (swell*r.low*2.2 + 0.15*drop)
		samples[i][0] = v
		samples[i][1] = v
		r.pos++
	}
	return len(samples), true
}

// Err implements beep.Streamer.
func (r *RainNoise) Err() error { return nil }

func (r *RainNoise) advanceGain() {
	switch {
	case r.gain < r.target:
		r.gain = math.Min(r.target, r.gain+r.step)
	case r.gain > r.target:
		r.gain = math.Max(r.target, r.gain-r.step)
	}
	if r.step == 0 {
		r.gain = r.target
	}
}
