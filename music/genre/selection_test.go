package genre

import (
	"reflect"
	"testing"
)

func containsStep(pool []StepPattern, p StepPattern) bool {
	for _, c := range pool {
		if c == p {
			return true
		}
	}
	return false
}

func containsBass(pool []BassPattern, p BassPattern) bool {
	for _, c := range pool {
		if c == p {
			return true
		}
	}
	return false
}

func containsProgression(pool []Progression, p Progression) bool {
	for _, c := range pool {
		if reflect.DeepEqual(c, p) {
			return true
		}
	}
	return false
}

func containsScale(pool []Scale, s Scale) bool {
	for _, c := range pool {
		if reflect.DeepEqual(c, s) {
			return true
		}
	}
	return false
}

func containsInts(pool [][]int, v []int) bool {
	for _, c := range pool {
		if reflect.DeepEqual(c, v) {
			return true
		}
	}
	return false
}

func TestRollDeterministic(t *testing.T) {
	for _, g := range Genres() {
		a := g.Roll(NewRand(99))
		b := g.Roll(NewRand(99))
		if !reflect.DeepEqual(a, b) {
			t.Errorf("%s: same seed produced different selections", g)
		}
	}
}

func TestRollStaysInGenrePools(t *testing.T) {
	for _, g := range Genres() {
		rng := NewRand(uint64(g) + 1)
		for range 25 {
			sel := g.Roll(rng)
			if !containsStep(drumPools[g], sel.Drums) {
				t.Errorf("%s: drums not drawn from the genre pool", g)
			}
			if !containsBass(bassPools[g], sel.Bass) {
				t.Errorf("%s: bass not drawn from the genre pool", g)
			}
			if !containsProgression(progressionPools[g], sel.Progression) {
				t.Errorf("%s: progression not drawn from the genre pool", g)
			}
			if !containsScale(scalePools[g], sel.Scale) {
				t.Errorf("%s: scale not drawn from the genre pool", g)
			}
			if !containsInts(arpPools[g], sel.Arp) {
				t.Errorf("%s: arp shape not drawn from the genre pool", g)
			}
			if !containsInts(contourPools[g], sel.Contour) {
				t.Errorf("%s: contour not drawn from the genre pool", g)
			}
		}
	}
}

func TestRollCopiesTables(t *testing.T) {
	sel := Lofi.Roll(NewRand(4))
	wantChord := sel.Progression[0][0]
	wantScale := sel.Scale[0]
	wantArp := sel.Arp[0]
	wantContour := sel.Contour[0]

	sel.Progression[0][0] += 99
	sel.Scale[0] += 99
	sel.Arp[0] += 99
	sel.Contour[0] += 99

	again := Lofi.Roll(NewRand(4))
	if again.Progression[0][0] != wantChord || again.Scale[0] != wantScale ||
		again.Arp[0] != wantArp || again.Contour[0] != wantContour {
		t.Error("mutating a selection changed the shared tables")
	}
}

func TestChordAtCycles(t *testing.T) {
	sel := House.Roll(NewRand(2))
	for bar := range 12 {
		want := sel.Progression[bar%4]
		if !reflect.DeepEqual(sel.ChordAt(bar), want) {
			t.Errorf("bar %d: wrong chord", bar)
		}
	}
	if !reflect.DeepEqual(sel.ChordAt(-1), sel.Progression[0]) {
		t.Error("negative bar should resolve to the first chord")
	}
}

func TestRollInvalidGenreFallsBack(t *testing.T) {
	sel := Genre(99).Roll(NewRand(8))
	if !containsStep(drumPools[Lofi], sel.Drums) {
		t.Error("invalid genre should draw from the lofi pools")
	}
}

func TestRollNilRand(t *testing.T) {
	sel := Techno.Roll(nil)
	if !containsStep(drumPools[Techno], sel.Drums) {
		t.Error("nil rng should still draw a valid selection")
	}
}
