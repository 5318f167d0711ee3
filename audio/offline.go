package audio

// Offline is a sink that produces no sound. Start hands the render
// callback back to the caller, who then pulls blocks synchronously, so a
// piece renders as fast as the DSP runs instead of in real time.
type Offline struct {
	render func(dst []float64)
}

// NewOffline returns an idle offline sink.
func NewOffline() *Offline {
	return &Offline{}
}

// Start captures the render callback for pulling through Render.
func (o *Offline) Start(render func(dst []float64)) error {
	o.render = render
	return nil
}

// Stop is a no-op; the caller decides when to stop pulling.
func (o *Offline) Stop() error { return nil }

// Close drops the captured callback.
func (o *Offline) Close() error {
	o.render = nil
	return nil
}

// Render pulls the next block of mono samples, or silence before Start.
func (o *Offline) Render(dst []float64) {
	if o.render == nil {
		clear(dst)
		return
	}
	o.render(dst)
}
