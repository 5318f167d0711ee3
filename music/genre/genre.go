package genre

import (
	"fmt"
	"strings"
)

// StepCount is the number of sixteenth-note steps in a bar.
const StepCount = 16

// Genre identifies one of the built-in generative styles.
type Genre int

const (
	Lofi Genre = iota
	Techno
	Synthwave
	Ambient
	House
	DrumAndBass
	Trap

	genreCount
)

// Genres returns all built-in genres in declaration order.
func Genres() []Genre {
	out := make([]Genre, genreCount)
	for i := range out {
		out[i] = Genre(i)
	}
	return out
}

// Valid reports whether g is a built-in genre.
func (g Genre) Valid() bool {
	return g >= 0 && g < genreCount
}

func (g Genre) String() string {
	switch g {
	case Lofi:
		return "lofi"
	case Techno:
		return "techno"
	case Synthwave:
		return "80s-synth"
	case Ambient:
		return "ambient"
	case House:
		return "house"
	case DrumAndBass:
		return "drum-and-bass"
	case Trap:
		return "trap"
	default:
		return "unknown"
	}
}

// Parse maps a genre name to its Genre value. Matching is case-insensitive;
// the "80s-synth" style also answers to "synthwave", and "drum-and-bass" to
// "dnb".
func Parse(name string) (Genre, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "lofi":
		return Lofi, nil
	case "techno":
		return Techno, nil
	case "80s-synth", "synthwave":
		return Synthwave, nil
	case "ambient":
		return Ambient, nil
	case "house":
		return House, nil
	case "drum-and-bass", "dnb":
		return DrumAndBass, nil
	case "trap":
		return Trap, nil
	default:
		return 0, fmt.Errorf("unknown genre %q", name)
	}
}

// Profile describes the fixed musical character of one genre.
type Profile struct {
	TempoMin     float64 // BPM
	TempoDefault float64
	TempoMax     float64
	Swing        float64 // fraction of a step duration added to odd steps
	RootNote     int     // MIDI note anchoring the bass register
	DrumFire     float64 // probability a patterned drum hit actually fires
	MelodyChance float64 // probability of a lead note per melody slot
	Arpeggiated  bool    // arpeggio layer runs at half-step resolution
	DrivingBass  bool    // saw bass instead of triangle
	CalmLead     bool    // sine lead instead of saw
	ClapBackbeat bool    // snare row triggers the clap voice
	Vinyl        bool    // crackle layer allowed when the vinyl effect is on
	PadStretch   float64 // multiplier on pad attack and sustain
}

var profiles = [genreCount]Profile{
	Lofi: {
		TempoMin: 60, TempoDefault: 75, TempoMax: 90,
		Swing:        0.16,
		RootNote:     45, // A2
		DrumFire:     0.95,
		MelodyChance: 0.30,
		CalmLead:     true,
		Vinyl:        true,
		PadStretch:   1,
	},
	Techno: {
		TempoMin: 120, TempoDefault: 132, TempoMax: 150,
		RootNote:     36, // C2
		DrumFire:     0.95,
		MelodyChance: 0.15,
		Arpeggiated:  true,
		DrivingBass:  true,
		ClapBackbeat: true,
		PadStretch:   1,
	},
	Synthwave: {
		TempoMin: 90, TempoDefault: 108, TempoMax: 126,
		RootNote:     45, // A2
		DrumFire:     0.95,
		MelodyChance: 0.40,
		Arpeggiated:  true,
		DrivingBass:  true,
		PadStretch:   1,
	},
	Ambient: {
		TempoMin: 50, TempoDefault: 70, TempoMax: 90,
		RootNote:     48, // C3
		DrumFire:     0.40,
		MelodyChance: 0.20,
		CalmLead:     true,
		PadStretch:   2,
	},
	House: {
		TempoMin: 115, TempoDefault: 124, TempoMax: 132,
		Swing:        0.08,
		RootNote:     41, // F2
		DrumFire:     0.95,
		MelodyChance: 0.25,
		Arpeggiated:  true,
		DrivingBass:  true,
		ClapBackbeat: true,
		PadStretch:   1,
	},
	DrumAndBass: {
		TempoMin: 160, TempoDefault: 174, TempoMax: 188,
		RootNote:     40, // E2
		DrumFire:     0.95,
		MelodyChance: 0.25,
		Arpeggiated:  true,
		DrivingBass:  true,
		PadStretch:   1,
	},
	Trap: {
		TempoMin: 125, TempoDefault: 140, TempoMax: 160,
		Swing:        0.04,
		RootNote:     36, // C2
		DrumFire:     0.95,
		MelodyChance: 0.30,
		Arpeggiated:  true,
		DrivingBass:  true,
		ClapBackbeat: true,
		PadStretch:   1,
	},
}

// Profile returns the genre's character profile. Unknown values fall back
// to the Lofi profile.
func (g Genre) Profile() Profile {
	if !g.Valid() {
		g = Lofi
	}
	return profiles[g]
}

// TempoRange returns the genre's minimum, default and maximum tempo in BPM.
func (g Genre) TempoRange() (minBPM, defaultBPM, maxBPM float64) {
	p := g.Profile()
	return p.TempoMin, p.TempoDefault, p.TempoMax
}

// ClampTempo limits bpm to the genre's tempo range. Values that are not a
// number map to the genre default.
func (g Genre) ClampTempo(bpm float64) float64 {
	p := g.Profile()
	if bpm != bpm {
		return p.TempoDefault
	}
	return min(p.TempoMax, max(p.TempoMin, bpm))
}
