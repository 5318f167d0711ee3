package audio

import (
	"fmt"

	"github.com/hajimehoshi/oto/v2"
)

const (
	channelCount = 2
	bitDepth     = 0 // 32-bit float (oto.FormatFloat32LE)

	frameBytes = channelCount * 4
)

// Device plays a mono render callback on the system audio output. A
// process gets a single oto context, so a Device should be opened once
// and restarted rather than recreated.
type Device struct {
	ctx    *oto.Context
	player oto.Player
}

// NewDevice opens the output at the given sample rate and blocks until
// the backend is ready to accept samples.
func NewDevice(sampleRate int) (*Device, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("audio: sample rate must be positive: %d", sampleRate)
	}

	ctx, ready, err := oto.NewContext(sampleRate, channelCount, bitDepth)
	if err != nil {
		return nil, fmt.Errorf("audio: open device: %w", err)
	}
	<-ready

	return &Device{ctx: ctx}, nil
}

// Start begins pulling blocks through render. Any previous player is
// closed first, so audio buffered before a restart is dropped instead of
// leaking into the new stream.
func (d *Device) Start(render func(dst []float64)) error {
	if err := d.ctx.Resume(); err != nil {
		return fmt.Errorf("audio: resume context: %w", err)
	}
	if d.player != nil {
		if err := d.player.Close(); err != nil {
			return fmt.Errorf("audio: close stale player: %w", err)
		}
	}

	d.player = d.ctx.NewPlayer(NewStream(render))
	d.player.Play()

	return d.player.Err()
}

// Stop pauses playback. The context stays open for a later Start.
func (d *Device) Stop() error {
	if d.player == nil {
		return nil
	}
	d.player.Pause()
	return d.player.Err()
}

// Close releases the player and suspends the shared context.
func (d *Device) Close() error {
	if d.player != nil {
		if err := d.player.Close(); err != nil {
			return err
		}
		d.player = nil
	}
	return d.ctx.Suspend()
}
