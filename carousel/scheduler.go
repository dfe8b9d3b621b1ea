package carousel

import (
	"sync"
	"time"
)

// Timer is a pending scheduled callback.
type Timer interface {
	// Stop cancels future runs. It reports whether the timer was still active.
	Stop() bool
}

// Scheduler arms callbacks.
type Scheduler interface {
	// Every runs fn each d until stopped.
	Every(d time.Duration, fn func()) Timer
	// After runs fn once after d unless stopped first.
	After(d time.Duration, fn func()) Timer
}

// RealScheduler schedules on the wall clock.
type RealScheduler struct{}

// After implements Scheduler with time.AfterFunc.
func (RealScheduler) After(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}

// Every implements Scheduler with a time.Ticker serviced by one goroutine.
func (RealScheduler) Every(d time.Duration, fn func()) Timer {
	t := &ticker{t: time.NewTicker(d), done: make(chan struct{})}
	go func() {
		for {
			select {
			case <-t.t.C:
				fn()
			case <-t.done:
				return
			}
		}
	}()
	return t
}

type ticker struct {
	t    *time.Ticker
	done chan struct{}
	once sync.Once
}

func (t *ticker) Stop() bool {
	stopped := false
	t.once.Do(func() {
		t.t.Stop()
		close(t.done)
		stopped = true
	})
	return stopped
}
