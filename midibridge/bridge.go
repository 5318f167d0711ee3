package midibridge

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"

	"github.com/iamhimateja/vinyl-sub001/music"
)

// minGate keeps a note off from landing before its note on when an event
// carries a zero duration.
const minGate = time.Millisecond

// Bridge forwards note events to one MIDI output port. Feed it from a
// generator note callback via [Bridge.Note]; a dispatch goroutine sends
// each note when its clock time comes due.
type Bridge struct {
	send func(gomidi.Message) error
	name string

	mu       sync.Mutex
	queue    []music.NoteEvent
	epoch    time.Time // wall time of the generator clock's zero
	anchored bool
	lastAt   float64

	wake chan struct{}
	stop chan struct{}
	once sync.Once
}

// Open connects to the first MIDI output whose name contains portName,
// matched case-insensitively, and starts the dispatch loop.
func Open(portName string) (*Bridge, error) {
	if strings.TrimSpace(portName) == "" {
		return nil, errors.New("midibridge: port name must not be empty")
	}

	var out drivers.Out
	for _, port := range gomidi.GetOutPorts() {
		if strings.Contains(strings.ToLower(port.String()), strings.ToLower(portName)) {
			out = port
			break
		}
	}
	if out == nil {
		return nil, fmt.Errorf("midibridge: no MIDI output matching %q", portName)
	}

	send, err := gomidi.SendTo(out)
	if err != nil {
		return nil, fmt.Errorf("midibridge: open %q: %w", out.String(), err)
	}

	b := &Bridge{
		send: send,
		name: out.String(),
		wake: make(chan struct{}, 1),
		stop: make(chan struct{}),
	}
	go b.run()
	return b, nil
}

// Name returns the resolved output port name.
func (b *Bridge) Name() string { return b.name }

// Note queues one scheduled note. It never blocks, so it is safe to use
// directly as a generator note callback. A note whose clock time runs
// backwards marks a playback restart: the pending queue is dropped and the
// clock re-anchors to wall time.
func (b *Bridge) Note(ev music.NoteEvent) {
	b.mu.Lock()
	if !b.anchored || ev.At < b.lastAt {
		b.epoch = time.Now()
		b.anchored = true
		b.queue = b.queue[:0]
	}
	b.lastAt = ev.At
	b.queue = append(b.queue, ev)
	b.mu.Unlock()

	select {
	case b.wake <- struct{}{}:
	default:
	}
}

// Close stops the dispatch loop and releases the MIDI driver.
func (b *Bridge) Close() error {
	b.once.Do(func() {
		close(b.stop)
		gomidi.CloseDriver()
	})
	return nil
}

// run dispatches queued notes in clock order, waking early whenever the
// queue changes.
func (b *Bridge) run() {
	for {
		ev, wait, due := b.next()
		if due {
			b.dispatch(ev)
			continue
		}
		if wait <= 0 {
			select {
			case <-b.stop:
				return
			case <-b.wake:
			}
			continue
		}
		timer := time.NewTimer(wait)
		select {
		case <-b.stop:
			timer.Stop()
			return
		case <-b.wake:
			timer.Stop()
		case <-timer.C:
		}
	}
}

// next pops the earliest queued note if its wall time has come. With the
// queue empty it reports a zero wait; with the earliest note still
// pending it reports how long until it is due.
func (b *Bridge) next() (ev music.NoteEvent, wait time.Duration, due bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	idx := -1
	for i := range b.queue {
		if idx < 0 || b.queue[i].At < b.queue[idx].At {
			idx = i
		}
	}
	if idx < 0 {
		return music.NoteEvent{}, 0, false
	}

	at := b.epoch.Add(time.Duration(b.queue[idx].At * float64(time.Second)))
	if wait := time.Until(at); wait > 0 {
		return music.NoteEvent{}, wait, false
	}

	ev = b.queue[idx]
	b.queue[idx] = b.queue[len(b.queue)-1]
	b.queue = b.queue[:len(b.queue)-1]
	return ev, 0, true
}

func (b *Bridge) dispatch(ev music.NoteEvent) {
	ch := channelFor(ev.Layer)
	note := midiNote(ev.Note)
	_ = b.send(gomidi.NoteOn(ch, note, midiVelocity(ev.Velocity)))

	gate := max(time.Duration(ev.Dur*float64(time.Second)), minGate)
	go func() {
		time.Sleep(gate)
		_ = b.send(gomidi.NoteOff(ch, note))
	}()
}

// channelFor places each layer on its own MIDI channel: bass 1, lead 2,
// arp 3 (0-based on the wire).
func channelFor(layer music.Layer) uint8 {
	switch layer {
	case music.LayerLead:
		return 1
	case music.LayerArp:
		return 2
	default:
		return 0
	}
}

// midiNote rounds a fractional note into the 0..127 MIDI range.
func midiNote(note float64) uint8 {
	return uint8(min(max(int(math.Round(note)), 0), 127))
}

// midiVelocity maps a 0..1 velocity onto 1..127. Velocity 0 is excluded:
// MIDI reads a zero-velocity note on as a note off.
func midiVelocity(v float64) uint8 {
	return uint8(min(max(int(math.Round(v*127)), 1), 127))
}
