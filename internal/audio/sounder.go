// Package audio plays level sound clips through beep.
package audio

import (
	"fmt"
	"log"
	"math"
	"os"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/wav"

	"levelengine/internal/config"
	"levelengine/internal/resource"
	"levelengine/internal/threading/core"
)

const placeholderLength = 120 * time.Millisecond

// Sounder plays named clips with distance attenuation. Clips are decoded
// once per level and kept in a cache that Reset drops.
type Sounder struct {
	mu          sync.Mutex
	cfg         config.AudioConfig
	format      beep.Format
	mixer       *beep.Mixer
	clips       *resource.Cache[*beep.Buffer]
	initialized bool
}

// New creates a sounder. Clip names resolve to files through the config.
func New(cfg *config.Config) *Sounder {
	rate := cfg.Audio.SampleRate
	if rate <= 0 {
		rate = 44100
	}
	s := &Sounder{
		cfg:    cfg.Audio,
		format: beep.Format{SampleRate: beep.SampleRate(rate), NumChannels: 2, Precision: 2},
		mixer:  &beep.Mixer{},
	}
	s.clips = resource.NewCache("clip", func(clip string) (*beep.Buffer, error) {
		buf, err := s.decode(cfg.GetClipPath(clip))
		if err != nil {
			// Cached like a real clip so a missing file is only tried once per level.
			log.Printf("[audio] clip %q: %v, using a placeholder tone", clip, err)
			return s.placeholder(clip), nil
		}
		return buf, nil
	})
	return s
}

// Initialize opens the speaker. Without it Play is a no-op.
func (s *Sounder) Initialize() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized || !s.cfg.Enabled {
		return nil
	}
	rate := s.format.SampleRate
	if err := speaker.Init(rate, rate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("failed to init speaker: %w", err)
	}
	speaker.Play(s.mixer)
	s.initialized = true
	return nil
}

// Cleanup silences everything
func (s *Sounder) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return
	}
	speaker.Lock()
	s.mixer.Clear()
	speaker.Unlock()
	s.initialized = false
}

// Preload decodes clips ahead of time
func (s *Sounder) Preload(clips []string) {
	core.ParallelForEach(clips, func(clip string) {
		if _, err := s.clips.Get(clip); err != nil {
			log.Printf("[audio] preload: %v", err)
		}
	})
}

// Reset drops the decoded clips, e.g. when the level changes
func (s *Sounder) Reset() {
	s.clips.Clear()
}

// Play implements level.Sounder
func (s *Sounder) Play(clip string, distance float64) {
	s.mu.Lock()
	ready := s.initialized
	s.mu.Unlock()
	if !ready {
		return
	}

	st, ok := s.stream(clip, distance)
	if !ok {
		return
	}
	speaker.Lock()
	s.mixer.Add(st)
	speaker.Unlock()
}

// stream builds the attenuated streamer for one play. It reports false
// when the clip is out of earshot.
func (s *Sounder) stream(clip string, distance float64) (beep.Streamer, bool) {
	vol := Attenuation(distance, s.cfg.Falloff, s.cfg.MaxRange)
	if vol <= 0 {
		return nil, false
	}

	buf, err := s.clips.Get(clip)
	if err != nil {
		return nil, false
	}
	return newVolume(buf.Streamer(0, buf.Len()), vol), true
}

// placeholder renders a short tone standing in for a clip that failed to load
func (s *Sounder) placeholder(clip string) *beep.Buffer {
	buf := beep.NewBuffer(s.format)
	buf.Append(beep.Take(s.format.SampleRate.N(placeholderLength), newTone(clipPitch(clip), s.format.SampleRate)))
	return buf
}

func (s *Sounder) decode(path string) (*beep.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	streamer, format, err := wav.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	defer streamer.Close()

	buf := beep.NewBuffer(s.format)
	if format.SampleRate != s.format.SampleRate {
		buf.Append(beep.Resample(4, format.SampleRate, s.format.SampleRate, streamer))
	} else {
		buf.Append(streamer)
	}
	return buf, nil
}

// Attenuation returns the volume multiplier for a sound heard from
// distance away. It halves every falloff units and is 0 past maxRange.
func Attenuation(distance, falloff, maxRange float64) float64 {
	if distance < 0 {
		distance = -distance
	}
	if maxRange > 0 && distance > maxRange {
		return 0
	}
	if falloff <= 0 {
		return 1
	}
	return math.Pow(0.5, distance/falloff)
}

// math.Log2(0) is -Inf, so zero volume is expressed as silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}
