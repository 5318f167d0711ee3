// Command vinylgen plays endless procedural background music in the
// terminal, renders it to a WAV file, or mirrors the note stream to a
// MIDI output.
package main

import (
	"fmt"
	"log"
	"os"
	"time"

	arg "github.com/alexflint/go-arg"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iamhimateja/vinyl-sub001/audio"
	"github.com/iamhimateja/vinyl-sub001/midibridge"
	"github.com/iamhimateja/vinyl-sub001/music"
	"github.com/iamhimateja/vinyl-sub001/music/genre"
)

const sampleRate = 44100

type cli struct {
	Genre   string  `arg:"-g,--genre" default:"lofi" help:"genre to play (lofi, techno, 80s-synth, ambient, house, drum-and-bass, trap)"`
	Tempo   float64 `arg:"-t,--tempo" help:"tempo in BPM, clamped to the genre range (0 keeps the genre default)"`
	Seed    int64   `arg:"-s,--seed" help:"random seed; 0 derives one from the clock"`
	Render  string  `arg:"-r,--render" help:"render to this WAV file instead of playing"`
	Seconds float64 `arg:"--seconds" default:"30" help:"length of the WAV render in seconds"`
	MIDI    string  `arg:"--midi" help:"mirror notes to the first MIDI output matching this name"`
}

func (cli) Description() string {
	return "vinylgen generates endless background music, one seed per piece."
}

func main() {
	var args cli
	arg.MustParse(&args)

	g, err := genre.Parse(args.Genre)
	if err != nil {
		log.Fatal(err)
	}

	opts := []music.Option{music.WithGenre(g)}
	if args.Seed != 0 {
		opts = append(opts, music.WithSeed(args.Seed))
	}

	if args.Render != "" {
		if err := renderWAV(args, opts); err != nil {
			log.Fatal(err)
		}
		return
	}

	if args.MIDI != "" {
		bridge, err := midibridge.Open(args.MIDI)
		if err != nil {
			log.Fatal(err)
		}
		defer bridge.Close()
		opts = append(opts, music.WithNoteCallback(bridge.Note))
	}

	// The TUI reads the step stream through a bounded channel; the
	// callback runs inside the generator and must never block on a slow
	// terminal.
	steps := make(chan stepMsg, 8)
	opts = append(opts, music.WithStepCallback(func(step, bar int) {
		select {
		case steps <- stepMsg{step: step, bar: bar}:
		default:
		}
	}))

	gen, err := music.New(opts...)
	if err != nil {
		log.Fatal(err)
	}
	defer gen.Close()
	if args.Tempo > 0 {
		gen.SetTempo(args.Tempo)
	}

	p := tea.NewProgram(newModel(gen, steps), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Fatal(err)
	}
}

// renderWAV runs the generator against the offline sink, so the piece
// renders as fast as the disk takes it.
func renderWAV(args cli, opts []music.Option) error {
	off := audio.NewOffline()
	opts = append(opts, music.WithSink(off), music.WithTickInterval(time.Hour))
	gen, err := music.New(opts...)
	if err != nil {
		return err
	}
	defer gen.Close()

	if args.Tempo > 0 {
		gen.SetTempo(args.Tempo)
	}
	if err := gen.Play(); err != nil {
		return err
	}

	f, err := os.Create(args.Render)
	if err != nil {
		return err
	}
	if err := audio.WriteWAV(f, off.Render, sampleRate, args.Seconds); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	fmt.Printf("wrote %.0f s of %s at %.0f BPM to %s\n", args.Seconds, gen.Genre(), gen.Tempo(), args.Render)
	return nil
}
