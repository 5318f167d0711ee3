package audio

import (
	"fmt"
	"io"

	"github.com/faiface/beep"
	"github.com/faiface/beep/wav"
)

// Streamer exposes a mono render callback as a beep stream of a fixed
// number of samples, duplicated to both channels.
type Streamer struct {
	render func(dst []float64)
	remain int
	mono   []float64
}

// NewStreamer wraps render, limited to total samples.
func NewStreamer(render func(dst []float64), total int) *Streamer {
	return &Streamer{render: render, remain: max(total, 0)}
}

func (s *Streamer) Stream(samples [][2]float64) (n int, ok bool) {
	if s.remain <= 0 || s.render == nil {
		return 0, false
	}

	n = min(len(samples), s.remain)
	if cap(s.mono) < n {
		s.mono = make([]float64, n)
	}
	mono := s.mono[:n]
	s.render(mono)
	for i, v := range mono {
		samples[i][0] = v
		samples[i][1] = v
	}
	s.remain -= n

	return n, true
}

func (s *Streamer) Err() error { return nil }

// WriteWAV pulls seconds of audio through render and encodes it as a
// 16-bit stereo WAV file.
func WriteWAV(w io.WriteSeeker, render func(dst []float64), sampleRate int, seconds float64) error {
	if sampleRate <= 0 {
		return fmt.Errorf("audio: sample rate must be positive: %d", sampleRate)
	}
	total := int(seconds * float64(sampleRate))
	if total <= 0 {
		return fmt.Errorf("audio: render length must be positive: %v s", seconds)
	}

	format := beep.Format{
		SampleRate:  beep.SampleRate(sampleRate),
		NumChannels: 2,
		Precision:   2,
	}
	return wav.Encode(w, NewStreamer(render, total), format)
}
