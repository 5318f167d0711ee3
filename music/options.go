package music

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/iamhimateja/vinyl-sub001/music/genre"
)

const (
	defaultSampleRate = 44100.0
	defaultLookahead  = 120 * time.Millisecond
	defaultTick       = 20 * time.Millisecond
)

type config struct {
	sampleRate float64
	seed       int64
	genre      genre.Genre
	onStep     func(step, bar int)
	onNote     func(NoteEvent)
	lookahead  float64 // seconds
	tick       time.Duration
	sink       Sink
	clock      Clock
}

func defaultConfig() config {
	return config{
		sampleRate: defaultSampleRate,
		seed:       time.Now().UnixNano(),
		genre:      genre.Lofi,
		lookahead:  defaultLookahead.Seconds(),
		tick:       defaultTick,
	}
}

// Option configures a [Generator].
type Option func(*config) error

// WithSampleRate sets the render sample rate in Hz (default 44100).
func WithSampleRate(rate float64) Option {
	return func(cfg *config) error {
		if rate <= 0 || math.IsNaN(rate) || math.IsInf(rate, 0) {
			return fmt.Errorf("music: sample rate must be > 0 and finite: %f", rate)
		}

		cfg.sampleRate = rate

		return nil
	}
}

// WithSeed fixes the random seed so the same configuration always plays
// the same piece (default: current time).
func WithSeed(seed int64) Option {
	return func(cfg *config) error {
		cfg.seed = seed
		return nil
	}
}

// WithGenre sets the starting genre (default [genre.Lofi]).
func WithGenre(g genre.Genre) Option {
	return func(cfg *config) error {
		if !g.Valid() {
			return fmt.Errorf("music: unknown genre: %d", g)
		}

		cfg.genre = g

		return nil
	}
}

// WithStepCallback registers fn to run once per scheduled step, before the
// step's voices are placed. fn runs on the scheduling goroutine with the
// generator lock held; it must not call back into the Generator.
func WithStepCallback(fn func(step, bar int)) Option {
	return func(cfg *config) error {
		cfg.onStep = fn
		return nil
	}
}

// WithNoteCallback registers fn to run for every scheduled bass, lead and
// arpeggio note. Same constraints as [WithStepCallback].
func WithNoteCallback(fn func(NoteEvent)) Option {
	return func(cfg *config) error {
		cfg.onNote = fn
		return nil
	}
}

// WithLookahead sets how far ahead of the clock steps are scheduled
// (default 120 ms).
func WithLookahead(d time.Duration) Option {
	return func(cfg *config) error {
		if d <= 0 {
			return fmt.Errorf("music: lookahead must be > 0: %v", d)
		}

		cfg.lookahead = d.Seconds()

		return nil
	}
}

// WithTickInterval sets the driver goroutine's wake interval (default
// 20 ms). Scheduling also advances on every render pull, so a long
// interval only matters when nothing is consuming audio.
func WithTickInterval(d time.Duration) Option {
	return func(cfg *config) error {
		if d <= 0 {
			return fmt.Errorf("music: tick interval must be > 0: %v", d)
		}

		cfg.tick = d

		return nil
	}
}

// WithSink sets the output sink. Without one, Play opens the system audio
// device.
func WithSink(s Sink) Option {
	return func(cfg *config) error {
		if s == nil {
			return errors.New("music: sink must not be nil")
		}

		cfg.sink = s

		return nil
	}
}

// WithClock sets the scheduler clock. The default clock follows the
// engine's sample position, so scheduling keeps pace with the sink.
func WithClock(c Clock) Option {
	return func(cfg *config) error {
		if c == nil {
			return errors.New("music: clock must not be nil")
		}

		cfg.clock = c

		return nil
	}
}
