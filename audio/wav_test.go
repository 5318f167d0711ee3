package audio

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/faiface/beep/wav"
)

func TestStreamerPullsFixedTotal(t *testing.T) {
	calls := 0
	s := NewStreamer(func(dst []float64) {
		for i := range dst {
			dst[i] = 0.5
		}
		calls++
	}, 1000)

	buf := make([][2]float64, 512)
	if n, ok := s.Stream(buf); n != 512 || !ok {
		t.Fatalf("first pull = (%d, %v), want (512, true)", n, ok)
	}
	if buf[0] != [2]float64{0.5, 0.5} {
		t.Fatalf("frame 0 = %v, want both channels 0.5", buf[0])
	}
	if n, ok := s.Stream(buf); n != 488 || !ok {
		t.Fatalf("second pull = (%d, %v), want (488, true)", n, ok)
	}
	if n, ok := s.Stream(buf); n != 0 || ok {
		t.Fatalf("drained pull = (%d, %v), want (0, false)", n, ok)
	}
	if calls != 2 {
		t.Errorf("render ran %d times, want 2", calls)
	}
	if s.Err() != nil {
		t.Errorf("Err = %v", s.Err())
	}
}

func TestStreamerEmptyTotal(t *testing.T) {
	s := NewStreamer(func(dst []float64) {
		t.Error("render called with no samples to pull")
	}, 0)

	buf := make([][2]float64, 16)
	if n, ok := s.Stream(buf); n != 0 || ok {
		t.Fatalf("Stream = (%d, %v), want (0, false)", n, ok)
	}
}

func TestWriteWAVRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tone.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	render := func(dst []float64) {
		for i := range dst {
			dst[i] = 0.25
		}
	}
	if err := WriteWAV(f, render, 8000, 0.5); err != nil {
		t.Fatalf("WriteWAV: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	rf, err := os.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	s, format, err := wav.Decode(rf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	defer s.Close()

	if int(format.SampleRate) != 8000 {
		t.Errorf("SampleRate = %d, want 8000", format.SampleRate)
	}
	if format.NumChannels != 2 {
		t.Errorf("NumChannels = %d, want 2", format.NumChannels)
	}
	if s.Len() != 4000 {
		t.Errorf("Len = %d samples, want 4000", s.Len())
	}

	frame := make([][2]float64, 1)
	if n, ok := s.Stream(frame); n != 1 || !ok {
		t.Fatalf("Stream = (%d, %v), want (1, true)", n, ok)
	}
	for c, v := range frame[0] {
		if math.Abs(v-0.25) > 0.01 {
			t.Errorf("channel %d = %g, want about 0.25", c, v)
		}
	}
}

func TestWriteWAVRejectsBadInput(t *testing.T) {
	render := func(dst []float64) {}
	if err := WriteWAV(nil, render, 0, 1); err == nil {
		t.Error("zero sample rate: expected an error")
	}
	if err := WriteWAV(nil, render, 44100, 0); err == nil {
		t.Error("zero length: expected an error")
	}
}
