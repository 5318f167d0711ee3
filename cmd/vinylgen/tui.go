package main

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/iamhimateja/vinyl-sub001/music"
	"github.com/iamhimateja/vinyl-sub001/music/genre"
)

const spectrumCols = 32

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	litStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("219"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	barStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("117"))
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

type stepMsg struct {
	step int
	bar  int
}

type frameMsg time.Time

type model struct {
	gen   *music.Generator
	steps chan stepMsg

	step     int
	bar      int
	err      error
	quitting bool
}

func newModel(gen *music.Generator, steps chan stepMsg) model {
	return model{gen: gen, steps: steps, step: -1}
}

// listenSteps blocks on the step channel and re-arms after every message.
func listenSteps(steps chan stepMsg) tea.Cmd {
	return func() tea.Msg { return <-steps }
}

// frame refreshes the spectrum and meters between steps.
func frame() tea.Cmd {
	return tea.Tick(50*time.Millisecond, func(t time.Time) tea.Msg { return frameMsg(t) })
}

func (m model) Init() tea.Cmd {
	return tea.Batch(listenSteps(m.steps), frame())
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			_ = m.gen.Stop()
			return m, tea.Quit

		case " ":
			if m.gen.Playing() {
				m.err = m.gen.Stop()
			} else {
				m.err = m.gen.Play()
			}

		case "g":
			next := (m.gen.Genre() + 1) % genre.Genre(len(genre.Genres()))
			m.err = m.gen.SetGenre(next)
			m.step, m.bar = -1, 0

		case "+", "=":
			m.gen.SetTempo(m.gen.Tempo() + 5)

		case "-", "_":
			m.gen.SetTempo(m.gen.Tempo() - 5)

		case "r":
			m.err = m.gen.ToggleEffect(music.EffectReverb)
		case "d":
			m.err = m.gen.ToggleEffect(music.EffectDelay)
		case "f":
			m.err = m.gen.ToggleEffect(music.EffectFilter)
		case "v":
			m.err = m.gen.ToggleEffect(music.EffectVinyl)
		}

	case stepMsg:
		m.step, m.bar = msg.step, msg.bar
		return m, listenSteps(m.steps)

	case frameMsg:
		return m, frame()
	}

	return m, nil
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	state := "STOP"
	if m.gen.Playing() {
		state = "PLAY"
	}

	var b strings.Builder
	b.WriteString("\n ")
	b.WriteString(headerStyle.Render(fmt.Sprintf("vinylgen  %s  %-13s %5.0f BPM", state, m.gen.Genre(), m.gen.Tempo())))
	b.WriteString("\n\n ")
	b.WriteString(m.stepRow())
	b.WriteString(dimStyle.Render(fmt.Sprintf("  bar %d", m.bar)))
	b.WriteString("\n\n ")
	b.WriteString(barStyle.Render(spectrum(m.gen.FrequencyData())))
	b.WriteString("\n\n ")
	b.WriteString(m.statusLine())
	b.WriteString("\n\n ")
	b.WriteString(dimStyle.Render("space:play/stop  g:genre  +/-:tempo  r/d/f/v:effects  q:quit"))
	if m.err != nil {
		b.WriteString("\n\n ")
		b.WriteString(errStyle.Render(m.err.Error()))
	}
	b.WriteString("\n")
	return b.String()
}

func (m model) stepRow() string {
	var b strings.Builder
	for i := range genre.StepCount {
		if i > 0 {
			b.WriteString(" ")
		}
		switch {
		case i == m.step:
			b.WriteString(litStyle.Render("■"))
		case i%4 == 0:
			b.WriteString(dimStyle.Render("▫"))
		default:
			b.WriteString(dimStyle.Render("·"))
		}
	}
	return b.String()
}

// spectrum folds the 128-bin snapshot into a fixed row of block glyphs.
func spectrum(bins []float64) string {
	blocks := []rune(" ▁▂▃▄▅▆▇█")
	per := max(len(bins)/spectrumCols, 1)

	var b strings.Builder
	for c := 0; c < spectrumCols && c*per < len(bins); c++ {
		sum := 0.0
		n := 0
		for i := c * per; i < (c+1)*per && i < len(bins); i++ {
			sum += bins[i]
			n++
		}
		level := sum / float64(n)
		idx := min(max(int(level*float64(len(blocks)-1)), 0), len(blocks)-1)
		b.WriteRune(blocks[idx])
	}
	return b.String()
}

func (m model) statusLine() string {
	fx := m.gen.Effects()
	gr := m.gen.Metrics().GainReduction
	db := 0.0
	if gr > 0 && gr < 1 {
		db = 20 * math.Log10(gr)
	}
	return dimStyle.Render(fmt.Sprintf("reverb:%s delay:%s filter:%s vinyl:%s   GR %5.1f dB",
		onOff(fx.Reverb), onOff(fx.Delay), onOff(fx.Filter), onOff(fx.Vinyl), db))
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}
