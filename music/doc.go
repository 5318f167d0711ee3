// Package music generates endless background music. A Generator owns the
// genre state, a lookahead step scheduler and the render graph; a Sink
// pulls the rendered audio. Everything audible derives from one seed, so
// the same configuration always plays the same piece.
//
// All Generator methods are safe for concurrent use; mutable state sits
// behind one mutex. Callbacks run on the scheduling goroutine with that
// mutex held; they must hand work to a channel instead of calling back
// into the Generator.
package music
