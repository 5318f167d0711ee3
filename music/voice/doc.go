// Package voice implements the short-lived synthesizer voices the engine
// schedules on the step grid: drum hits, bass plucks, pad chords, lead and
// arpeggio notes and vinyl crackle.
//
// A voice renders mono samples relative to its own start and reports when
// its envelope has finished. The Mixer sums voices on an absolute sample
// timeline and drops them as they finish, so callers fire and forget.
package voice
