package flight

import (
	"sync"
	"time"
)

// FrameHandle identifies a requested frame.
type FrameHandle uint64

// Scheduler runs a callback once at the next display frame.
type Scheduler interface {
	RequestFrame(fn func(now time.Time)) FrameHandle
	CancelFrame(h FrameHandle)
}

// DefaultFrameInterval is roughly 60 frames per second.
const DefaultFrameInterval = time.Second / 60

// TickerScheduler fires frames from timers on the monotonic clock.
type TickerScheduler struct {
	interval time.Duration

	mu     sync.Mutex
	next   FrameHandle
	timers map[FrameHandle]*time.Timer
}

func NewTickerScheduler(interval time.Duration) *TickerScheduler {
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	return &TickerScheduler{interval: interval, timers: make(map[FrameHandle]*time.Timer)}
}

func (s *TickerScheduler) RequestFrame(fn func(now time.Time)) FrameHandle {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	h := s.next
	s.timers[h] = time.AfterFunc(s.interval, func() {
		s.mu.Lock()
		_, live := s.timers[h]
		delete(s.timers, h)
		s.mu.Unlock()
		if live {
			fn(time.Now())
		}
	})
	return h
}

func (s *TickerScheduler) CancelFrame(h FrameHandle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.timers[h]; ok {
		t.Stop()
		delete(s.timers, h)
	}
}

// ManualScheduler queues frames until the owner steps its clock. Used for
// tests and for offline rendering.
type ManualScheduler struct {
	mu      sync.Mutex
	now     time.Time
	next    FrameHandle
	pending map[FrameHandle]func(time.Time)
	order   []FrameHandle
}

func NewManualScheduler(start time.Time) *ManualScheduler {
	return &ManualScheduler{now: start, pending: make(map[FrameHandle]func(time.Time))}
}

func (s *ManualScheduler) RequestFrame(fn func(now time.Time)) FrameHandle {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	s.pending[s.next] = fn
	s.order = append(s.order, s.next)
	return s.next
}

func (s *ManualScheduler) CancelFrame(h FrameHandle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pending, h)
}

// Now is the scheduler's clock.
func (s *ManualScheduler) Now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

// Pending counts queued frames.
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// Advance moves the clock by d and runs the frames that were queued before
// the call. Frames requested by those callbacks wait for the next Advance.
// It returns how many frames ran.
func (s *ManualScheduler) Advance(d time.Duration) int {
	s.mu.Lock()
	s.now = s.now.Add(d)
	now := s.now
	order := s.order
	s.order = nil
	var due []func(time.Time)
	for _, h := range order {
		if fn, ok := s.pending[h]; ok {
			due = append(due, fn)
			delete(s.pending, h)
		}
	}
	s.mu.Unlock()

	for _, fn := range due {
		fn(now)
	}
	return len(due)
}
