// The externally paced tick loop. A tick always runs to completion; pausing
// suspends scheduling of new ticks but never aborts one in progress.
package engine

import (
	"log/slog"
	"sync"
	"time"
)

// Engine drives the simulation forward on a repeating timer.
type Engine struct {
	sim *Simulation

	mu       sync.Mutex
	paused   bool
	tps      float64 // ticks per second
	running  bool
	stop     chan struct{}
	stopOnce sync.Once

	// OnTickDone receives the events drained after each completed tick.
	// Set before Run; called on the engine goroutine.
	OnTickDone func(tick uint64, events []Event)
}

// NewEngine wraps a simulation with a paced tick loop.
func NewEngine(sim *Simulation, ticksPerSecond float64) *Engine {
	if ticksPerSecond <= 0 {
		ticksPerSecond = 4
	}
	return &Engine{sim: sim, tps: ticksPerSecond, stop: make(chan struct{})}
}

// Do runs fn with exclusive access to the simulation, between ticks. All
// external reads and actions go through here; the simulation itself is
// never touched concurrently.
func (e *Engine) Do(fn func(s *Simulation)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	fn(e.sim)
}

// TogglePause flips the paused state and returns the new value.
func (e *Engine) TogglePause() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.paused = !e.paused
	slog.Info("pause toggled", "paused", e.paused)
	return e.paused
}

// SetSpeed changes the tick rate. Non-positive rates are rejected as a no-op.
func (e *Engine) SetSpeed(ticksPerSecond float64) {
	if ticksPerSecond <= 0 {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.tps = ticksPerSecond
	slog.Info("speed changed", "ticks_per_second", ticksPerSecond)
}

// Speed reports the current tick rate.
func (e *Engine) Speed() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tps
}

// Paused reports whether tick scheduling is suspended.
func (e *Engine) Paused() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.paused
}

// Run starts the tick loop and blocks until Stop is called. Once the game
// has a winner, ticks stop advancing but the loop keeps serving Do calls.
func (e *Engine) Run() {
	e.mu.Lock()
	if e.running {
		e.mu.Unlock()
		return
	}
	e.running = true
	e.mu.Unlock()

	slog.Info("simulation engine started", "ticks_per_second", e.tps)

	for {
		e.mu.Lock()
		interval := time.Duration(float64(time.Second) / e.tps)
		paused := e.paused || e.sim.Winner != nil
		e.mu.Unlock()

		select {
		case <-e.stop:
			slog.Info("simulation engine stopped")
			return
		case <-time.After(interval):
		}
		if paused {
			continue
		}

		e.mu.Lock()
		e.sim.Tick()
		tick := e.sim.LastTick
		events := e.sim.DrainEvents()
		e.mu.Unlock()

		if e.OnTickDone != nil {
			e.OnTickDone(tick, events)
		}
	}
}

// Stop halts the tick loop. Any tick in progress completes first.
func (e *Engine) Stop() {
	e.stopOnce.Do(func() { close(e.stop) })
}
