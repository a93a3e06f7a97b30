package sim

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Runner drives an Arena at a fixed tick rate. It satisfies the server
// Service contract: Start blocks until Stop is called or MaxTicks ticks have
// run.
type Runner struct {
	arena    *Arena
	interval time.Duration
	dt       float64
	maxTicks int
	logger   *zap.Logger

	mu       sync.Mutex
	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewRunner returns a Runner ticking arena tickRateHz times per second with a
// fixed step of 1/tickRateHz seconds. maxTicks == 0 runs until stopped.
//
// Precondition: arena must be non-nil; tickRateHz > 0; maxTicks >= 0.
func NewRunner(arena *Arena, tickRateHz, maxTicks int, logger *zap.Logger) (*Runner, error) {
	if arena == nil {
		return nil, fmt.Errorf("sim: arena must not be nil")
	}
	if tickRateHz <= 0 {
		return nil, fmt.Errorf("sim: tick rate must be > 0, got %d", tickRateHz)
	}
	if maxTicks < 0 {
		return nil, fmt.Errorf("sim: max ticks must be >= 0, got %d", maxTicks)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		arena:    arena,
		interval: time.Second / time.Duration(tickRateHz),
		dt:       1 / float64(tickRateHz),
		maxTicks: maxTicks,
		logger:   logger,
		stopCh:   make(chan struct{}),
	}, nil
}

// Start ticks the arena until Stop is called or the tick limit is reached.
func (r *Runner) Start() error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-r.stopCh:
			return nil
		case <-ticker.C:
			if r.step() {
				r.logger.Info("tick limit reached", zap.Int("ticks", r.maxTicks))
				return nil
			}
		}
	}
}

// step runs one tick and reports whether the tick limit has been reached.
func (r *Runner) step() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.arena.Tick(r.dt)
	return r.maxTicks > 0 && r.arena.Stats().Ticks >= r.maxTicks
}

// Stop ends Start. It is safe to call more than once.
func (r *Runner) Stop() {
	r.stopOnce.Do(func() { close(r.stopCh) })
}

// Stats returns the arena counters. Safe to call while Start runs.
func (r *Runner) Stats() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.arena.Stats()
}
