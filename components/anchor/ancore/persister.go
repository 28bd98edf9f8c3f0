package ancore

import (
	"context"
	"sync"

	"github.com/open-control-systems/time-anchor/components/core"
	"github.com/open-control-systems/time-anchor/components/status"
)

// Persistor schedules the anchor saving.
type Persistor interface {
	// Persist schedules the anchor to be saved, never blocks on I/O.
	Persist(anchor Anchor)
}

// Persister saves anchors in the standalone goroutine.
//
// Remarks:
//   - Requests are coalesced, only the most recent pending anchor is saved.
//   - Save failures are logged and reported to the observer, never to the caller.
type Persister struct {
	ctx      context.Context
	cancel   context.CancelFunc
	saver    Saver
	observer Observer
	wakeCh   chan struct{}
	doneCh   chan struct{}

	mu         sync.Mutex
	started    bool
	pending    Anchor
	hasPending bool
}

// NewPersister is an initialization of Persister.
//
// Parameters:
//   - ctx - parent context, the persister exits when it is done.
//   - saver to perform an actual save.
//   - observer to report save results.
func NewPersister(ctx context.Context, saver Saver, observer Observer) *Persister {
	ctx, cancel := context.WithCancel(ctx)

	return &Persister{
		ctx:      ctx,
		cancel:   cancel,
		saver:    saver,
		observer: observer,
		wakeCh:   make(chan struct{}, 1),
		doneCh:   make(chan struct{}),
	}
}

// Persist schedules the anchor to be saved.
func (p *Persister) Persist(anchor Anchor) {
	p.mu.Lock()
	p.pending = anchor
	p.hasPending = true
	p.mu.Unlock()

	select {
	case p.wakeCh <- struct{}{}:
	default:
	}
}

// Start begins asynchronous anchor saving.
func (p *Persister) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started {
		return status.StatusInvalidState
	}
	p.started = true

	go p.run()

	return nil
}

// Stop saves the pending anchor, if any, and ends asynchronous saving.
func (p *Persister) Stop() error {
	p.mu.Lock()
	started := p.started
	p.mu.Unlock()

	p.cancel()

	if started {
		<-p.doneCh
	}

	return nil
}

// Close implements core.Closer.
func (p *Persister) Close() error {
	return p.Stop()
}

func (p *Persister) run() {
	defer close(p.doneCh)

	for {
		select {
		case <-p.wakeCh:
			p.flush()

		case <-p.ctx.Done():
			p.flush()

			return
		}
	}
}

func (p *Persister) flush() {
	p.mu.Lock()
	anchor, ok := p.pending, p.hasPending
	p.hasPending = false
	p.mu.Unlock()

	if !ok {
		return
	}

	err := p.saver.Save(anchor)
	if err != nil {
		core.LogErr.Printf("anchor-persister: failed to save anchor: %s: %v\n", anchor, err)
	} else {
		core.LogDbg.Printf("anchor-persister: anchor saved: %s\n", anchor)
	}

	p.observer.ObservePersist(err)
}
