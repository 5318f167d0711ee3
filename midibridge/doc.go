// Package midibridge mirrors the generator's scheduled notes to an OS
// MIDI output, so an external synth can double the bass, lead and
// arpeggio layers. The mirror is best effort: it anchors the generator's
// clock to wall time when the first note arrives and re-anchors whenever
// the clock restarts, so playback carries a constant latency of roughly
// the scheduler's lookahead.
//
// Port discovery goes through whatever gomidi driver the importing
// program registers; with none registered no ports are visible and Open
// reports that no output matched.
package midibridge
