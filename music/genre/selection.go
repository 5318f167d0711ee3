package genre

// Selection is one draw from a genre's pattern pools, fixed for the length
// of a section. Drawn slices are copies, so a Selection can be handed to
// the render goroutine without sharing state with the package tables.
type Selection struct {
	Drums       StepPattern
	Bass        BassPattern
	Progression Progression
	Scale       Scale
	Arp         []int
	Contour     []int
}

// Roll draws a fresh selection from the genre's pools. Unknown genres draw
// from the Lofi pools.
func (g Genre) Roll(rng *Rand) Selection {
	if !g.Valid() {
		g = Lofi
	}
	if rng == nil {
		rng = NewRand(1)
	}

	drums := drumPools[g]
	bass := bassPools[g]
	progs := progressionPools[g]
	scales := scalePools[g]
	arps := arpPools[g]
	contours := contourPools[g]

	var sel Selection
	sel.Drums = drums[rng.Intn(len(drums))]
	sel.Bass = bass[rng.Intn(len(bass))]

	prog := progs[rng.Intn(len(progs))]
	for i, chord := range prog {
		sel.Progression[i] = Chord(cloneInts(chord))
	}

	sel.Scale = Scale(cloneInts(scales[rng.Intn(len(scales))]))
	sel.Arp = cloneInts(arps[rng.Intn(len(arps))])
	sel.Contour = cloneInts(contours[rng.Intn(len(contours))])

	return sel
}

// ChordAt returns the chord active on the given bar.
func (s *Selection) ChordAt(bar int) Chord {
	if bar < 0 {
		bar = 0
	}
	return s.Progression[bar%len(s.Progression)]
}

func cloneInts(src []int) []int {
	out := make([]int, len(src))
	copy(out, src)
	return out
}
