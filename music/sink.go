package music

// Sink carries rendered audio away from a Generator. The realtime and
// offline sinks in the audio package both satisfy it.
//
// Start hands the sink a callback that fills dst with mono samples; the
// sink decides when and how often to call it. Stop pauses delivery
// without releasing resources so playback can resume with another Start.
type Sink interface {
	Start(render func(dst []float64)) error
	Stop() error
	Close() error
}
