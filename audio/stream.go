package audio

import "math"

// Stream adapts a mono render callback to the byte reader an oto player
// pulls from. Each sample is written as 32-bit float little endian to
// both stereo channels. Read never reports EOF; the generator keeps
// producing for as long as the player asks.
type Stream struct {
	render func(dst []float64)
	mono   []float64
}

// NewStream wraps render for playback. A nil render yields silence.
func NewStream(render func(dst []float64)) *Stream {
	return &Stream{render: render}
}

func (s *Stream) Read(p []byte) (int, error) {
	frames := len(p) / frameBytes
	if frames == 0 {
		return 0, nil
	}
	n := frames * frameBytes

	if s.render == nil {
		clear(p[:n])
		return n, nil
	}

	if cap(s.mono) < frames {
		s.mono = make([]float64, frames)
	}
	mono := s.mono[:frames]
	s.render(mono)
	for i, v := range mono {
		putStereoF32(p, i, v)
	}

	return n, nil
}

// putStereoF32 writes a [-1, 1] sample as float32 LE to both stereo
// channels at frame i.
func putStereoF32(buf []byte, i int, sample float64) {
	v := math.Float32bits(float32(sample))
	buf[i*8] = byte(v)
	buf[i*8+1] = byte(v >> 8)
	buf[i*8+2] = byte(v >> 16)
	buf[i*8+3] = byte(v >> 24)
	buf[i*8+4] = byte(v)
	buf[i*8+5] = byte(v >> 8)
	buf[i*8+6] = byte(v >> 16)
	buf[i*8+7] = byte(v >> 24)
}
