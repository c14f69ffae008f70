package core

import "sync"

// TiltFeed forwards accelerometer samples from a channel onto an InputQueue.
// It runs on its own goroutine while started; Start and Stop are idempotent
// so hosts can pair them with visibility changes without tracking state.
type TiltFeed struct {
	src <-chan float64
	dst *InputQueue

	mu      sync.Mutex
	running bool
	stop    chan struct{}
	done    chan struct{}
}

// NewTiltFeed creates a stopped feed reading lateral tilt values from src.
func NewTiltFeed(src <-chan float64, dst *InputQueue) *TiltFeed {
	return &TiltFeed{src: src, dst: dst}
}

// Start begins forwarding samples. No-op when already running.
func (f *TiltFeed) Start() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.running {
		return
	}
	f.running = true
	f.stop = make(chan struct{})
	f.done = make(chan struct{})
	go f.loop(f.stop, f.done)
}

// Stop halts forwarding and waits for the goroutine to exit.
// No-op when not running.
func (f *TiltFeed) Stop() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.running {
		return
	}
	f.running = false
	close(f.stop)
	<-f.done
}

// Running reports whether the feed is started.
func (f *TiltFeed) Running() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.running
}

func (f *TiltFeed) loop(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	for {
		select {
		case <-stop:
			return
		case x, ok := <-f.src:
			if !ok {
				return
			}
			f.dst.Push(Tilt{X: x})
		}
	}
}
