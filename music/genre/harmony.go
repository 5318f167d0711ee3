package genre

import "math"

// Chord is a set of semitone offsets from the genre root, low to high.
type Chord []int

// Progression is the four-chord cycle of a section, indexed by bar.
type Progression [4]Chord

// Scale is a set of semitone offsets within one octave, starting at 0.
type Scale []int

// NoteHz converts a MIDI note number to a frequency in Hz using equal
// temperament tuned to A4 = 440 Hz. Fractional notes yield detuned pitches.
func NoteHz(note float64) float64 {
	return 440 * math.Pow(2, (note-69)/12)
}

// Tone resolves an arpeggio index to a semitone offset within the chord,
// climbing an octave each time the index wraps past the last chord tone.
func (c Chord) Tone(i int) int {
	if len(c) == 0 {
		return 0
	}
	if i < 0 {
		i = -i
	}
	return c[i%len(c)] + 12*(i/len(c))
}

// Degree resolves a signed scale degree to a semitone offset. Degrees wrap
// within the octave; negative values resolve one octave lower.
func (s Scale) Degree(v int) int {
	if len(s) == 0 {
		return 0
	}
	d := v
	if d < 0 {
		d = -d
	}
	off := s[d%len(s)]
	if v < 0 {
		off -= 12
	}
	return off
}

var lofiProgressions = []Progression{
	{
		{0, 3, 7, 10},   // i7
		{5, 8, 12, 15},  // iv7
		{8, 12, 15, 19}, // VImaj7
		{7, 10, 14, 17}, // v7
	},
	{
		{0, 3, 7, 14},    // i add9
		{10, 14, 17, 20}, // VII7
		{8, 12, 15, 19},  // VImaj7
		{5, 8, 12, 15},   // iv7
	},
}

var technoProgressions = []Progression{
	{
		{0, 3, 7},    // i
		{0, 3, 7},    // i
		{8, 12, 15},  // VI
		{10, 14, 17}, // VII
	},
	{
		{0, 3, 7, 12}, // i
		{5, 8, 12},    // iv
		{0, 3, 7, 12}, // i
		{10, 14, 17},  // VII
	},
}

var synthwaveProgressions = []Progression{
	{
		{0, 3, 7},    // i
		{8, 12, 15},  // VI
		{3, 7, 10},   // III
		{10, 14, 17}, // VII
	},
	{
		{0, 3, 7, 12}, // i
		{5, 8, 12},    // iv
		{8, 12, 15},   // VI
		{7, 10, 14},   // v
	},
}

var ambientProgressions = []Progression{
	{
		{0, 2, 7, 12},   // Isus2
		{5, 7, 12, 17},  // IVsus2
		{8, 10, 15, 20}, // VIsus2
		{7, 12, 14, 19}, // Vsus
	},
	{
		{0, 3, 7, 14},   // i9
		{5, 8, 12, 19},  // iv9
		{0, 3, 7, 14},   // i9
		{7, 10, 14, 21}, // v9
	},
}

var houseProgressions = []Progression{
	{
		{0, 3, 7, 10},   // i7
		{5, 8, 12, 15},  // iv7
		{0, 3, 7, 10},   // i7
		{7, 10, 14, 17}, // v7
	},
	{
		{0, 3, 7, 14},    // i9
		{8, 12, 15, 19},  // VImaj7
		{5, 8, 12, 15},   // iv7
		{10, 14, 17, 20}, // VII7
	},
}

var dnbProgressions = []Progression{
	{
		{0, 3, 7, 12},    // i
		{8, 12, 15, 20},  // VI
		{0, 3, 7, 12},    // i
		{10, 14, 17, 22}, // VII
	},
	{
		{0, 5, 7, 12},   // isus4
		{3, 7, 10, 15},  // III7
		{0, 5, 7, 12},   // isus4
		{7, 10, 14, 19}, // v
	},
}

var trapProgressions = []Progression{
	{
		{0, 3, 7},    // i
		{0, 3, 7},    // i
		{8, 12, 15},  // VI
		{10, 14, 17}, // VII
	},
	{
		{0, 3, 7, 12},  // i
		{5, 8, 12, 17}, // iv
		{0, 3, 7, 12},  // i
		{7, 11, 14},    // V
	},
}

var progressionPools = [genreCount][]Progression{
	Lofi:        lofiProgressions,
	Techno:      technoProgressions,
	Synthwave:   synthwaveProgressions,
	Ambient:     ambientProgressions,
	House:       houseProgressions,
	DrumAndBass: dnbProgressions,
	Trap:        trapProgressions,
}

var (
	minorPentatonic = Scale{0, 3, 5, 7, 10}
	majorPentatonic = Scale{0, 2, 4, 7, 9}
	naturalMinor    = Scale{0, 2, 3, 5, 7, 8, 10}
	harmonicMinor   = Scale{0, 2, 3, 5, 7, 8, 11}
	dorian          = Scale{0, 2, 3, 5, 7, 9, 10}
	phrygian        = Scale{0, 1, 3, 5, 7, 8, 10}
	lydian          = Scale{0, 2, 4, 6, 7, 9, 11}
)

var scalePools = [genreCount][]Scale{
	Lofi:        {minorPentatonic, dorian},
	Techno:      {naturalMinor, phrygian},
	Synthwave:   {naturalMinor, dorian},
	Ambient:     {majorPentatonic, lydian},
	House:       {minorPentatonic, dorian},
	DrumAndBass: {naturalMinor, minorPentatonic},
	Trap:        {harmonicMinor, phrygian},
}

// Arpeggio shapes are chord-tone index walks; indexes past the last chord
// tone continue into the next octave.
var (
	arpUp       = []int{0, 1, 2, 3}
	arpUpDown   = []int{0, 1, 2, 3, 2, 1}
	arpUpOctave = []int{0, 1, 2, 3, 4, 5, 6, 7}
	arpBroken   = []int{0, 2, 1, 3}
)

var arpPools = [genreCount][][]int{
	Lofi:        {arpBroken},
	Techno:      {arpUp, arpUpOctave},
	Synthwave:   {arpUp, arpUpDown},
	Ambient:     {arpUpDown},
	House:       {arpUp, arpBroken},
	DrumAndBass: {arpUpOctave, arpBroken},
	Trap:        {arpBroken, arpUp},
}

// Melody contours are signed scale-degree walks; negative entries resolve
// an octave lower.
var contourPools = [genreCount][][]int{
	Lofi: {
		{0, 2, 1, 4, 2, 0, -1, 2},
		{4, 2, 0, 1, -2, 0, 3, 2},
	},
	Techno: {
		{0, 0, 5, 0, 3, 0, 7, 5},
		{0, 3, 0, 5, 0, 3, 2, 0},
	},
	Synthwave: {
		{0, 2, 4, 5, 4, 2, 1, 0},
		{7, 5, 4, 2, 4, 5, 2, 0},
	},
	Ambient: {
		{0, 2, 4, 2, 0, -2, 0, 2},
		{4, 3, 1, 0, 1, 3, 2, 0},
	},
	House: {
		{0, 2, 0, 4, 0, 2, 5, 4},
		{0, 4, 2, 5, 4, 2, 0, -2},
	},
	DrumAndBass: {
		{0, 3, 5, 3, 0, -2, 0, 3},
		{7, 5, 3, 5, 0, 3, 5, 7},
	},
	Trap: {
		{0, 3, 0, 2, 0, 5, 3, 0},
		{5, 3, 2, 0, 3, 2, 0, -2},
	},
}
