package feed

import (
	"sync"
	"time"
)

// scriptedSource replays fixed values, then repeats the last one
type scriptedSource struct {
	floats []float64
	ints   []int
	fi, ii int
}

func (s *scriptedSource) Float64() float64 {
	v := s.floats[min(s.fi, len(s.floats)-1)]
	s.fi++
	return v
}

func (s *scriptedSource) IntN(n int) int {
	v := s.ints[min(s.ii, len(s.ints)-1)]
	s.ii++
	return v % n
}

type fakeTicker struct {
	ch      chan time.Time
	mu      sync.Mutex
	stopped bool
}

func (f *fakeTicker) C() <-chan time.Time { return f.ch }

func (f *fakeTicker) Stop() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stopped = true
}

func (f *fakeTicker) isStopped() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stopped
}

type fakeClock struct {
	mu      sync.Mutex
	now     time.Time
	tickers []*fakeTicker
}

func newFakeClock(now time.Time) *fakeClock {
	return &fakeClock{now: now}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) NewTicker(time.Duration) Ticker {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTicker{ch: make(chan time.Time)}
	c.tickers = append(c.tickers, t)
	return t
}

// advance moves the clock forward and tries to deliver a tick. It reports
// whether a running loop received it.
func (c *fakeClock) advance(d time.Duration, wait time.Duration) bool {
	c.mu.Lock()
	c.now = c.now.Add(d)
	now := c.now
	tickers := append([]*fakeTicker(nil), c.tickers...)
	c.mu.Unlock()

	delivered := false
	for _, t := range tickers {
		select {
		case t.ch <- now:
			delivered = true
		case <-time.After(wait):
		}
	}
	return delivered
}

func (c *fakeClock) tickerCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.tickers)
}
