package sound

import (
	"math"
	"testing"
	"time"
)

func drain(t *testing.T, n int, hz, gain float64) [][2]float64 {
	t.Helper()
	s := Tone(hz, n, gain)
	var out [][2]float64
	buf := make([][2]float64, 300)
	for {
		k, ok := s.Stream(buf)
		out = append(out, buf[:k]...)
		if !ok {
			break
		}
	}
	if err := s.Err(); err != nil {
		t.Fatalf("Err() = %v", err)
	}
	return out
}

func TestToneLength(t *testing.T) {
	n := sampleRate.N(60 * time.Millisecond)
	if got := len(drain(t, n, 880, 0.3)); got != n {
		t.Fatalf("tone produced %d samples, want %d", got, n)
	}
}

func TestToneAmplitudeAndFade(t *testing.T) {
	const gain = 0.25
	out := drain(t, 2000, 440, gain)
	peak := 0.0
	for _, s := range out {
		if s[0] != s[1] {
			t.Fatalf("channels differ: %v", s)
		}
		peak = math.Max(peak, math.Abs(s[0]))
	}
	if peak > gain+1e-12 || peak < gain*0.9 {
		t.Fatalf("peak = %v, want close to %v", peak, gain)
	}
	if out[0][0] != 0 {
		t.Fatalf("tone does not start silent: %v", out[0][0])
	}
	if math.Abs(out[len(out)-1][0]) > gain/float64(fadeSamples)+1e-12 {
		t.Fatalf("tone does not fade out: %v", out[len(out)-1][0])
	}
}

func TestSilentChimeIsSafe(t *testing.T) {
	var c *Chime
	c.Press()
	(&Chime{}).Release()
}
