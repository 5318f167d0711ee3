// Package genre defines the generative styles of the player. Each genre
// carries a tempo range, swing amount, pitch register and probability
// profile, plus pools of drum step patterns, bass patterns, chord
// progressions, scales, arpeggio shapes and melody contours. A Selection is
// one draw from those pools; the scheduler re-rolls it at section
// boundaries so the piece evolves without repeating a fixed loop.
package genre
