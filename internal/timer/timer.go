package timer

import (
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

// spinWindow is how long before a deadline the fast timer stops sleeping.
const spinWindow = 200 * time.Microsecond

// Handle is a cancellable repeating timer.
type Handle interface {
	// Disable stops the timer. It waits for a callback already in progress
	// and guarantees that no further callback starts. It must not be called
	// from the timer's own callback.
	Disable()
}

// Service creates timers and supplies the current time.
type Service struct {
	now    func() time.Time
	active atomic.Int64
}

// Option configures a Service.
type Option func(*Service)

// WithClock replaces time.Now as the source of Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates a timer service.
func NewService(opts ...Option) *Service {
	s := &Service{now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Now returns the current time.
func (s *Service) Now() time.Time {
	return s.now()
}

// Active returns the number of timers that have not been disabled.
func (s *Service) Active() int {
	return int(s.active.Load())
}

// NewTimer starts a standard-resolution timer calling cb every interval.
func (s *Service) NewTimer(cb func(), interval time.Duration) Handle {
	t := s.newTimer(cb)
	go t.runTicker(interval)
	return t
}

// NewFastTimer starts a high-resolution timer calling cb every interval.
func (s *Service) NewFastTimer(cb func(), interval time.Duration) Handle {
	t := s.newTimer(cb)
	go t.runDeadline(interval)
	return t
}

func (s *Service) newTimer(cb func()) *Timer {
	s.active.Add(1)
	return &Timer{cb: cb, stop: make(chan struct{}), service: s}
}

// Timer is the Handle returned by Service.
type Timer struct {
	cb      func()
	service *Service

	mu       sync.Mutex
	disabled bool
	stop     chan struct{}
	once     sync.Once
}

// Disable implements Handle.
func (t *Timer) Disable() {
	t.mu.Lock()
	wasDisabled := t.disabled
	t.disabled = true
	t.mu.Unlock()

	t.once.Do(func() { close(t.stop) })
	if !wasDisabled {
		t.service.active.Add(-1)
	}
}

// fire runs the callback unless the timer was disabled. The lock keeps
// Disable from returning while a callback is running.
func (t *Timer) fire() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.disabled {
		return false
	}
	t.cb()
	return true
}

func (t *Timer) runTicker(interval time.Duration) {
	if interval <= 0 {
		interval = time.Millisecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-t.stop:
			return
		case <-ticker.C:
			if !t.fire() {
				return
			}
		}
	}
}

func (t *Timer) runDeadline(interval time.Duration) {
	if interval <= 0 {
		interval = time.Millisecond
	}
	sleeper := time.NewTimer(time.Hour)
	sleeper.Stop()
	defer sleeper.Stop()

	next := time.Now().Add(interval)
	for {
		if d := time.Until(next) - spinWindow; d > 0 {
			sleeper.Reset(d)
			select {
			case <-t.stop:
				return
			case <-sleeper.C:
			}
		}
		for time.Now().Before(next) {
			select {
			case <-t.stop:
				return
			default:
				runtime.Gosched()
			}
		}

		if !t.fire() {
			return
		}

		next = next.Add(interval)
		// Missed deadlines are dropped rather than fired back to back.
		if now := time.Now(); next.Before(now) {
			next = now.Add(interval)
		}
	}
}
