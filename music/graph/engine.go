package graph

import (
	"fmt"
	"math"

	"github.com/iamhimateja/vinyl-sub001/dsp/effects"
	"github.com/iamhimateja/vinyl-sub001/dsp/effects/dynamics"
	"github.com/iamhimateja/vinyl-sub001/dsp/effects/reverb"
	"github.com/iamhimateja/vinyl-sub001/dsp/filter/biquad"
	"github.com/iamhimateja/vinyl-sub001/dsp/filter/design"
	"github.com/iamhimateja/vinyl-sub001/dsp/spectrum"
	"github.com/iamhimateja/vinyl-sub001/music/voice"
)

const (
	toneOpenHz   = 20000.0
	toneClosedHz = 2500.0

	// toneOpenMaxRatio caps the open cutoff below Nyquist at low sample
	// rates; at 44.1 kHz the full toneOpenHz applies.
	toneOpenMaxRatio = 0.49

	reverbSendGain = 0.35
	reverbBlock    = 256

	delaySendGain = 0.25
	delayBeats    = 0.75
	delayFeedback = 0.4

	masterGain  = 0.75
	analyzerFFT = 256
)

// Engine is the fixed mono render chain:
//
//	voices -> tone lowpass -> dry + reverb send + delay send -> compressor
//	       -> master gain -> analysis tap -> output
//
// Effect toggles move send gains and the tone cutoff; the topology never
// changes, so switching an effect off lets its tail ring out. Engine is
// not safe for concurrent use; the generator serializes access around it.
type Engine struct {
	sampleRate float64
	tempo      float64
	openHz     float64

	mixer    *voice.Mixer
	tone     *biquad.Section
	rev      *reverb.ConvolutionReverb
	echo     *effects.Delay
	comp     *dynamics.Compressor
	analyzer *spectrum.Analyzer

	reverbOn bool
	delayOn  bool
	filterOn bool

	pos int64
	wet []float64
}

// New builds the graph at the given sample rate and tempo. seed fixes the
// synthetic impulse response so renders are reproducible.
func New(sampleRate, bpm float64, seed int64) (*Engine, error) {
	ir, err := reverb.SyntheticIR(sampleRate, reverb.DefaultIRSeconds, seed)
	if err != nil {
		return nil, err
	}
	rev, err := reverb.NewConvolutionReverb(ir, reverbBlock)
	if err != nil {
		return nil, err
	}
	rev.SetWetDry(1, 0)

	echo, err := effects.NewDelay(sampleRate)
	if err != nil {
		return nil, err
	}
	if err := echo.SetFeedback(delayFeedback); err != nil {
		return nil, err
	}
	if err := echo.SetMix(1); err != nil {
		return nil, err
	}

	comp, err := dynamics.NewCompressor(sampleRate)
	if err != nil {
		return nil, err
	}

	analyzer, err := spectrum.NewAnalyzer(analyzerFFT)
	if err != nil {
		return nil, err
	}

	openHz := min(toneOpenHz, toneOpenMaxRatio*sampleRate)
	e := &Engine{
		sampleRate: sampleRate,
		openHz:     openHz,
		mixer:      voice.NewMixer(),
		tone:       biquad.NewSection(design.Lowpass(openHz, 0, sampleRate)),
		rev:        rev,
		echo:       echo,
		comp:       comp,
		analyzer:   analyzer,
	}
	if err := e.SetTempo(bpm); err != nil {
		return nil, err
	}

	return e, nil
}

// SampleRate returns the render rate in Hz.
func (e *Engine) SampleRate() float64 { return e.sampleRate }

// Tempo returns the current tempo in BPM.
func (e *Engine) Tempo() float64 { return e.tempo }

// Pos returns the absolute position of the next sample to render.
func (e *Engine) Pos() int64 { return e.pos }

// Voices returns the number of queued and sounding voices.
func (e *Engine) Voices() int { return e.mixer.Len() }

// Reverb reports whether the reverb send is open.
func (e *Engine) Reverb() bool { return e.reverbOn }

// Delay reports whether the delay send is open.
func (e *Engine) Delay() bool { return e.delayOn }

// Filter reports whether the tone filter is darkened.
func (e *Engine) Filter() bool { return e.filterOn }

// SetTempo retunes the delay line to delayBeats of a beat at bpm so echoes
// stay locked to the step grid.
func (e *Engine) SetTempo(bpm float64) error {
	if bpm <= 0 || math.IsNaN(bpm) || math.IsInf(bpm, 0) {
		return fmt.Errorf("graph: tempo must be positive and finite: %f", bpm)
	}
	if err := e.echo.SetTime(delayBeats * 60 / bpm); err != nil {
		return err
	}
	e.tempo = bpm

	return nil
}

// SetReverb opens or closes the reverb send.
func (e *Engine) SetReverb(on bool) { e.reverbOn = on }

// SetDelay opens or closes the delay send.
func (e *Engine) SetDelay(on bool) { e.delayOn = on }

// SetFilter darkens the tone filter to toneClosedHz or reopens it. The
// delay line inside the section is kept, so the swap does not click.
func (e *Engine) SetFilter(on bool) {
	e.filterOn = on
	hz := e.openHz
	if on {
		hz = toneClosedHz
	}
	e.tone.SetCoefficients(design.Lowpass(hz, 0, e.sampleRate))
}

// Schedule queues v to start at the absolute sample position at with the
// given mix gain.
func (e *Engine) Schedule(v voice.Voice, at int64, gain float64) {
	e.mixer.Add(v, at, gain)
}

// Render fills dst with the next block of mono output and advances the
// render position. A convolution failure mutes the reverb return for the
// block.
func (e *Engine) Render(dst []float64) {
	n := len(dst)
	if n == 0 {
		return
	}

	if len(e.wet) < n {
		e.wet = make([]float64, n)
	}
	wet := e.wet[:n]

	reverbSend := 0.0
	if e.reverbOn {
		reverbSend = reverbSendGain
	}
	delaySend := 0.0
	if e.delayOn {
		delaySend = delaySendGain
	}

	for i := range dst {
		s := e.tone.ProcessSample(e.mixer.Sample(e.pos + int64(i)))
		dst[i] = s
		wet[i] = s * reverbSend
	}
	e.pos += int64(n)

	if err := e.rev.ProcessInPlace(wet); err != nil {
		clear(wet)
	}

	for i := range dst {
		out := dst[i] + wet[i] + e.echo.ProcessSample(dst[i]*delaySend)
		out = e.comp.ProcessSample(out) * masterGain
		e.analyzer.PushSample(out)
		dst[i] = out
	}
}

// FrequencyData fills dst with the smoothed output spectrum mapped onto
// [0, 1], lowest bin first. All zeros before the first rendered frame.
func (e *Engine) FrequencyData(dst []float64) int {
	return e.analyzer.FrequencyData(dst)
}

// WaveformData fills dst with the most recent output samples clamped to
// [-1, 1]. All zeros before any rendering.
func (e *Engine) WaveformData(dst []float64) int {
	return e.analyzer.WaveformData(dst)
}

// Metrics returns compressor metering for display.
func (e *Engine) Metrics() dynamics.CompressorMetrics {
	return e.comp.Metrics()
}

// Reset drops all voices, clears every processor tail and rewinds the
// render position. Effect switches and tempo are preserved.
func (e *Engine) Reset() {
	e.mixer.Reset()
	e.tone.Reset()
	e.rev.Reset()
	e.echo.Reset()
	e.comp.Reset()
	e.analyzer.Reset()
	e.pos = 0
}
