package frame

import (
	"context"
	"sync"
	"time"
)

// Run ticks at FPS and samples stats every StatsInterval on the calling
// goroutine until ctx is done. It returns ctx.Err() on cancellation, or the
// first Tick error. Only one Run may be active per Driver.
func (d *Driver) Run(ctx context.Context) error {
	d.mu.Lock()
	if d.running {
		d.mu.Unlock()
		return ErrRunning
	}
	d.running = true
	fps, every := d.opts.FPS, d.opts.StatsInterval
	d.mu.Unlock()
	defer func() {
		d.mu.Lock()
		d.running = false
		d.mu.Unlock()
	}()

	frameTick := time.NewTicker(time.Second / time.Duration(fps))
	defer frameTick.Stop()
	statTick := time.NewTicker(every)
	defer statTick.Stop()

	origin := time.Now()
	d.SampleStats(every)
	d.log.Info("frame loop started", "fps", fps, "stats_interval", every)
	for {
		select {
		case <-ctx.Done():
			d.log.Info("frame loop stopped", "frames", d.State().Frames)
			return ctx.Err()
		case now := <-frameTick.C:
			ts := float64(now.Sub(origin)) / float64(time.Millisecond)
			if err := d.Tick(ts); err != nil {
				d.log.Error("tick failed", "err", err)
				return err
			}
		case <-statTick.C:
			d.SampleStats(every)
		}
	}
}

// Handle controls a loop started with Start.
type Handle struct {
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
	err    error
}

// Start runs the loop on a new goroutine.
func (d *Driver) Start(ctx context.Context) *Handle {
	ctx, cancel := context.WithCancel(ctx)
	h := &Handle{cancel: cancel, done: make(chan struct{})}
	go func() {
		defer close(h.done)
		h.err = d.Run(ctx)
	}()
	return h
}

// Stop cancels the loop and waits for it to exit. Safe to call repeatedly.
func (h *Handle) Stop() {
	h.once.Do(h.cancel)
	<-h.done
}

// Done is closed once the loop has exited.
func (h *Handle) Done() <-chan struct{} { return h.done }

// Err returns the loop's exit error after Done is closed.
func (h *Handle) Err() error {
	select {
	case <-h.done:
		return h.err
	default:
		return nil
	}
}
