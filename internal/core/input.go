package core

import "sync"

// InputEvent is a normalized input event delivered by a host.
// The set of events is closed; hosts translate raw device input
// (keys, gestures, accelerometer, window changes) into these types.
type InputEvent interface {
	inputEvent()
}

// PaddleDrag moves the paddle by a pan delta in play-field points.
// Only DX is used; the paddle moves horizontally.
type PaddleDrag struct {
	DX, DY float64
}

func (PaddleDrag) inputEvent() {}

// LaunchTap launches a new ball, or pushes the live ones once the
// round's ball budget is spent.
type LaunchTap struct{}

func (LaunchTap) inputEvent() {}

// DeviceShake pushes every live ball in a random direction.
type DeviceShake struct{}

func (DeviceShake) inputEvent() {}

// Tilt is an accelerometer sample; X is the lateral component in [-1, 1].
type Tilt struct {
	X float64
}

func (Tilt) inputEvent() {}

// ViewportChanged reports new play-field dimensions in points.
type ViewportChanged struct {
	W, H float64
}

func (ViewportChanged) inputEvent() {}

// Background freezes the simulation (app hidden, terminal focus lost).
type Background struct{}

func (Background) inputEvent() {}

// Foreground resumes a frozen simulation.
type Foreground struct{}

func (Foreground) inputEvent() {}

// RestartRound starts a fresh round after a terminal outcome.
type RestartRound struct{}

func (RestartRound) inputEvent() {}

// InputFrame is the batch of input events collected by a host during one tick.
type InputFrame struct {
	Events []InputEvent
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{}
}

// Push appends an event to the frame.
func (f *InputFrame) Push(ev InputEvent) {
	f.Events = append(f.Events, ev)
}

// Len returns the number of events in the frame.
func (f InputFrame) Len() int {
	return len(f.Events)
}

// Clear drops all events, keeping the backing storage.
func (f *InputFrame) Clear() {
	clear(f.Events)
	f.Events = f.Events[:0]
}

// InputQueue is a FIFO of input events safe for concurrent producers.
// The simulation drains it once per tick on its own goroutine.
type InputQueue struct {
	mu     sync.Mutex
	events []InputEvent
}

// NewInputQueue creates an empty queue.
func NewInputQueue() *InputQueue {
	return &InputQueue{}
}

// Push appends an event. Nil events are ignored.
func (q *InputQueue) Push(ev InputEvent) {
	if ev == nil {
		return
	}
	q.mu.Lock()
	q.events = append(q.events, ev)
	q.mu.Unlock()
}

// Drain removes and returns all queued events in arrival order.
func (q *InputQueue) Drain() []InputEvent {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.events) == 0 {
		return nil
	}
	out := q.events
	q.events = nil
	return out
}

// Len returns the number of queued events.
func (q *InputQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.events)
}
