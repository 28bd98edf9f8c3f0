package ancore

import (
	"sync"
	"time"
)

type testMonotonicClock struct {
	mu  sync.Mutex
	now time.Duration
	err error
}

func newTestMonotonicClock(now time.Duration) *testMonotonicClock {
	return &testMonotonicClock{now: now}
}

func (c *testMonotonicClock) Now() (time.Duration, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.err != nil {
		return 0, c.err
	}

	return c.now, nil
}

func (c *testMonotonicClock) set(now time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = now
}

func (c *testMonotonicClock) setError(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.err = err
}

type testSaver struct {
	mu      sync.Mutex
	err     error
	saved   []Anchor
	blockCh chan struct{}
}

func (s *testSaver) Save(anchor Anchor) error {
	if s.blockCh != nil {
		<-s.blockCh
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.saved = append(s.saved, anchor)

	return s.err
}

func (s *testSaver) getSaved() []Anchor {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]Anchor(nil), s.saved...)
}

type testPersistor struct {
	mu        sync.Mutex
	persisted []Anchor
}

func (p *testPersistor) Persist(anchor Anchor) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.persisted = append(p.persisted, anchor)
}

func (p *testPersistor) getPersisted() []Anchor {
	p.mu.Lock()
	defer p.mu.Unlock()

	return append([]Anchor(nil), p.persisted...)
}

type testObserver struct {
	mu         sync.Mutex
	delivers   int
	live       int
	restored   int
	noAnchor   int
	restores   int
	stale      int
	persistOK  int
	persistErr int
}

func (o *testObserver) ObserveDeliver() {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.delivers++
}

func (o *testObserver) ObserveNow(origin Origin) {
	o.mu.Lock()
	defer o.mu.Unlock()

	switch origin {
	case OriginLive:
		o.live++
	case OriginRestored:
		o.restored++
	}
}

func (o *testObserver) ObserveNoAnchor() {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.noAnchor++
}

func (o *testObserver) ObserveRestore() {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.restores++
}

func (o *testObserver) ObserveStale() {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.stale++
}

func (o *testObserver) ObservePersist(err error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if err != nil {
		o.persistErr++
	} else {
		o.persistOK++
	}
}

func (o *testObserver) persistCounts() (int, int) {
	o.mu.Lock()
	defer o.mu.Unlock()

	return o.persistOK, o.persistErr
}
