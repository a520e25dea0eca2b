package timer

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimer_Fires(t *testing.T) {
	s := NewService()
	var count atomic.Int64
	h := s.NewTimer(func() { count.Add(1) }, 10*time.Millisecond)
	defer h.Disable()

	assert.Eventually(t, func() bool { return count.Load() >= 3 }, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, 1, s.Active())
}

func TestNewFastTimer_Fires(t *testing.T) {
	s := NewService()
	var count atomic.Int64
	h := s.NewFastTimer(func() { count.Add(1) }, 2*time.Millisecond)
	defer h.Disable()

	assert.Eventually(t, func() bool { return count.Load() >= 5 }, 2*time.Second, 2*time.Millisecond)
}

func TestDisable_StopsFurtherCallbacks(t *testing.T) {
	for name, start := range map[string]func(*Service, func(), time.Duration) Handle{
		"standard": (*Service).NewTimer,
		"fast":     (*Service).NewFastTimer,
	} {
		t.Run(name, func(t *testing.T) {
			s := NewService()
			var count atomic.Int64
			h := start(s, func() { count.Add(1) }, 2*time.Millisecond)

			require.Eventually(t, func() bool { return count.Load() >= 2 }, 2*time.Second, time.Millisecond)
			h.Disable()
			stopped := count.Load()

			time.Sleep(30 * time.Millisecond)
			assert.Equal(t, stopped, count.Load(), "callback ran after Disable returned")
			assert.Equal(t, 0, s.Active())

			// Disabling twice is harmless.
			h.Disable()
			assert.Equal(t, 0, s.Active())
		})
	}
}

func TestDisable_WaitsForRunningCallback(t *testing.T) {
	s := NewService()
	entered := make(chan struct{})
	release := make(chan struct{})
	var finished atomic.Bool
	var once atomic.Bool

	h := s.NewTimer(func() {
		if once.CompareAndSwap(false, true) {
			close(entered)
			<-release
			finished.Store(true)
		}
	}, 5*time.Millisecond)

	<-entered
	done := make(chan struct{})
	go func() {
		h.Disable()
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("Disable returned while a callback was still running")
	case <-time.After(20 * time.Millisecond):
	}

	close(release)
	<-done
	assert.True(t, finished.Load())
}

func TestWithClock(t *testing.T) {
	fixed := time.Date(2020, 5, 6, 7, 8, 9, 0, time.UTC)
	s := NewService(WithClock(func() time.Time { return fixed }))
	assert.Equal(t, fixed, s.Now())
}
