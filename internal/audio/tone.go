package audio

import (
	"hash/fnv"
	"math"
	"time"

	"github.com/gopxl/beep"
)

// tone is a decaying sine used when a clip file is missing
type tone struct {
	freq  float64
	phase float64
	pos   int
	rate  beep.SampleRate
}

func newTone(freq float64, rate beep.SampleRate) beep.Streamer {
	return &tone{freq: freq, rate: rate}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		env := math.Exp(-float64(t.pos) / float64(t.rate.N(40*time.Millisecond)))
		val := 0.3 * env * math.Sin(2*math.Pi*t.phase)
		samples[i][0] = val
		samples[i][1] = val
		t.phase += t.freq / float64(t.rate)
		t.phase -= math.Floor(t.phase)
		t.pos++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }

// clipPitch gives each clip name a stable pitch between 220 and 880 Hz
func clipPitch(clip string) float64 {
	h := fnv.New32a()
	h.Write([]byte(clip))
	return 220 + float64(h.Sum32()%661)
}
