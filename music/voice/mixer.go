package voice

// scheduled pairs a voice with its absolute start position and mix gain.
type scheduled struct {
	voice Voice
	start int64
	gain  float64
}

// Mixer sums scheduled voices into a mono stream. Voices may start in the
// future; they stay queued until the render position reaches them and are
// dropped once their envelope reports done. The mixer is not safe for
// concurrent use; the engine serializes access around it.
type Mixer struct {
	active []scheduled
}

// NewMixer returns an empty mixer.
func NewMixer() *Mixer {
	return &Mixer{active: make([]scheduled, 0, 64)}
}

// Add queues v with the given mix gain, starting at the absolute sample
// position start. Nil voices are ignored.
func (m *Mixer) Add(v Voice, start int64, gain float64) {
	if v == nil {
		return
	}
	m.active = append(m.active, scheduled{voice: v, start: start, gain: gain})
}

// Sample renders the mix at the absolute position pos and compacts the
// voice list, dropping every voice whose envelope has completed.
func (m *Mixer) Sample(pos int64) float64 {
	sum := 0.0
	w := 0
	for _, sv := range m.active {
		if n := int(pos - sv.start); n >= 0 {
			if sv.voice.Done(n) {
				continue
			}
			sum += sv.gain * sv.voice.Sample(n)
		}
		m.active[w] = sv
		w++
	}
	clear(m.active[w:])
	m.active = m.active[:w]
	return sum
}

// Len returns the number of queued and sounding voices.
func (m *Mixer) Len() int {
	return len(m.active)
}

// Reset drops every voice immediately.
func (m *Mixer) Reset() {
	clear(m.active)
	m.active = m.active[:0]
}
