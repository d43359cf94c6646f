// Package scheduler drives the periodic key sending loop. A Loop is a
// two-state machine (inactive/active); while active it fires the key sender
// at a fixed interval against one target window. Ticks run in a single
// goroutine and never overlap.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"specinput/internal/model"
	"specinput/internal/platform"
)

// pollQuantum is how finely the inter-tick wait is sliced so Stop takes
// effect promptly even with long intervals.
const pollQuantum = 100 * time.Millisecond

// failureLogEvery batches failure warnings: one log line per this many
// consecutive failed ticks.
const failureLogEvery = 10

// DefaultMaxFailures is the consecutive-failure run after which an active
// loop assumes its target window has closed and deactivates itself.
const DefaultMaxFailures = 30

// Config describes one automation run.
type Config struct {
	WindowID string
	Keys     []model.KeyEntry
	Interval time.Duration

	// MaxFailures overrides DefaultMaxFailures when > 0; < 0 disables
	// auto-deactivation entirely.
	MaxFailures int

	// OnCycle, when set, is invoked after every successful tick with the
	// total successful-tick count.
	OnCycle func(runs int)

	// OnDeactivate, when set, is invoked when the loop stops on its own after
	// exhausting MaxFailures.
	OnDeactivate func(reason string)
}

// Loop is the automation loop. The zero value is unusable; use New.
type Loop struct {
	sender platform.KeySender

	mu      sync.Mutex
	running bool
	stop    chan struct{}
	done    chan struct{}
}

// New returns an inactive Loop that will deliver keys through sender.
func New(sender platform.KeySender) *Loop {
	return &Loop{sender: sender}
}

// Active reports whether the loop is currently running.
func (l *Loop) Active() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.running
}

// Start validates cfg and transitions the loop to active. Starting an active
// loop is an error; so is a non-positive interval, an empty key sequence, or
// a missing target window.
func (l *Loop) Start(cfg Config) error {
	if cfg.WindowID == "" {
		return fmt.Errorf("no target window selected")
	}
	if len(cfg.Keys) == 0 {
		return fmt.Errorf("key sequence is empty")
	}
	if cfg.Interval <= 0 {
		return fmt.Errorf("interval must be positive, got %v", cfg.Interval)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.running {
		return fmt.Errorf("loop already active")
	}
	l.running = true
	l.stop = make(chan struct{})
	l.done = make(chan struct{})
	go l.run(cfg, l.stop, l.done)
	return nil
}

// Stop transitions the loop to inactive and waits for the in-flight tick, if
// any, to finish. Stopping an inactive loop is a no-op.
func (l *Loop) Stop() {
	l.mu.Lock()
	if !l.running {
		l.mu.Unlock()
		return
	}
	l.running = false
	stop, done := l.stop, l.done
	l.mu.Unlock()

	close(stop)
	<-done
}

// Toggle starts the loop if inactive and stops it if active. It returns the
// resulting active state and any start error.
func (l *Loop) Toggle(cfg Config) (bool, error) {
	if l.Active() {
		l.Stop()
		return false, nil
	}
	if err := l.Start(cfg); err != nil {
		return false, err
	}
	return true, nil
}

func (l *Loop) run(cfg Config, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	maxFailures := cfg.MaxFailures
	if maxFailures == 0 {
		maxFailures = DefaultMaxFailures
	}

	runs := 0
	failures := 0
	for {
		err := l.sender.SendKeys(context.Background(), cfg.WindowID, cfg.Keys)
		if err != nil {
			failures++
			if failures%failureLogEvery == 1 {
				log.Printf("scheduler: failed to send keys to window %s (%d consecutive failures): %v", cfg.WindowID, failures, err)
			}
			if maxFailures > 0 && failures >= maxFailures {
				l.deactivate(cfg, fmt.Sprintf("window %s is not accepting input (gone?)", cfg.WindowID))
				return
			}
		} else {
			failures = 0
			runs++
			if cfg.OnCycle != nil {
				cfg.OnCycle(runs)
			}
		}

		if !sleepInterruptible(cfg.Interval, stop) {
			return
		}
	}
}

// deactivate flips the loop to inactive from inside the run goroutine.
func (l *Loop) deactivate(cfg Config, reason string) {
	l.mu.Lock()
	l.running = false
	l.mu.Unlock()
	log.Printf("scheduler: auto-deactivated: %s", reason)
	if cfg.OnDeactivate != nil {
		cfg.OnDeactivate(reason)
	}
}

// sleepInterruptible waits for d in pollQuantum slices, returning false as
// soon as stop is closed.
func sleepInterruptible(d time.Duration, stop <-chan struct{}) bool {
	deadline := time.Now().Add(d)
	for {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return true
		}
		slice := pollQuantum
		if remaining < slice {
			slice = remaining
		}
		select {
		case <-stop:
			return false
		case <-time.After(slice):
		}
	}
}
