// SPDX-License-Identifier: Apache-2.0

// Package netwatch reports the device's connectivity to the GridBoard
// backend. It is a pure signal source: it probes, remembers the last result
// and notifies subscribers on every transition, but it never retries calls
// or caches application data itself.
package netwatch

import (
	"context"
	"sync"
	"time"

	"github.com/gridboard/mobile-core/internal/config"
	"github.com/gridboard/mobile-core/internal/logger"
)

// Probe checks backend reachability once. A nil return means online.
type Probe func(ctx context.Context) error

// Watcher runs a Probe on a fixed interval and exposes the last observed
// connectivity state. Subscribers receive the new state on every transition.
type Watcher struct {
	probe    Probe
	interval time.Duration
	timeout  time.Duration
	logger   *logger.Logger

	mu      sync.Mutex
	online  bool
	subs    map[int]chan bool
	nextSub int
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// NewWatcher creates a Watcher that considers the device offline until the
// first probe succeeds. The watcher is idle until Start is called.
func NewWatcher(probe Probe, cfg config.Watcher, log *logger.Logger) *Watcher {
	return &Watcher{
		probe:    probe,
		interval: cfg.ProbeInterval,
		timeout:  cfg.ProbeTimeout,
		logger:   log,
		subs:     make(map[int]chan bool),
	}
}

// Start stops any previously running loop, performs one synchronous probe so
// callers observe a settled state immediately, then launches a background
// goroutine probing every interval. The goroutine exits when ctx is
// cancelled or Stop is called.
func (w *Watcher) Start(ctx context.Context) {
	w.Stop()

	w.probeOnce(ctx)

	w.mu.Lock()
	loopCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.wg.Add(1)
	w.mu.Unlock()

	go func() {
		defer w.wg.Done()
		t := time.NewTicker(w.interval)
		defer t.Stop()

		for {
			select {
			case <-loopCtx.Done():
				return
			case <-t.C:
				w.probeOnce(loopCtx)
			}
		}
	}()
}

// Stop cancels the background goroutine and blocks until it has exited.
// Safe to call when the watcher is not running.
func (w *Watcher) Stop() {
	w.mu.Lock()
	cancel := w.cancel
	w.cancel = nil
	w.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	w.wg.Wait()
}

// Online returns the last observed connectivity state.
func (w *Watcher) Online() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.online
}

// Subscribe registers a transition listener and returns its id together with
// the update channel. The channel is buffered; a notification is dropped for
// a subscriber that has not drained the previous one, so consumers must
// treat updates as level signals, not a complete event log.
func (w *Watcher) Subscribe() (int, <-chan bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	id := w.nextSub
	w.nextSub++
	ch := make(chan bool, 1)
	w.subs[id] = ch

	return id, ch
}

// Unsubscribe removes the listener registered under id and closes its
// channel. Unknown ids are ignored.
func (w *Watcher) Unsubscribe(id int) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if ch, ok := w.subs[id]; ok {
		delete(w.subs, id)
		close(ch)
	}
}

func (w *Watcher) probeOnce(ctx context.Context) {
	probeCtx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	err := w.probe(probeCtx)
	online := err == nil

	w.mu.Lock()
	changed := online != w.online
	w.online = online
	var targets []chan bool
	if changed {
		for _, ch := range w.subs {
			targets = append(targets, ch)
		}
	}
	w.mu.Unlock()

	if !changed {
		return
	}

	w.logger.Info().Bool("online", online).Msg("connectivity changed")

	for _, ch := range targets {
		select {
		case ch <- online:
		default:
		}
	}
}
