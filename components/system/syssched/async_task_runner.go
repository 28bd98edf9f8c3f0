package syssched

import (
	"context"
	"sync"
	"time"

	"github.com/open-control-systems/time-anchor/components/core"
	"github.com/open-control-systems/time-anchor/components/status"
)

// AsyncTaskRunnerParams provides various configuration options for AsyncTaskRunner.
type AsyncTaskRunnerParams struct {
	// UpdateInterval - how often to run the task.
	UpdateInterval time.Duration

	// ExitOnSuccess - stop running the task once it succeeds.
	ExitOnSuccess bool
}

// AsyncTaskRunner periodically runs task in the standalone goroutine.
type AsyncTaskRunner struct {
	ctx     context.Context
	cancel  context.CancelFunc
	doneCh  chan struct{}
	task    Task
	handler core.ErrorHandler
	params  AsyncTaskRunnerParams

	mu      sync.Mutex
	started bool
}

// NewAsyncTaskRunner is an initialization of AsyncTaskRunner.
//
// Parameters:
//   - ctx - parent context, the runner exits when it is done.
//   - task to run periodically.
//   - handler to handle task errors, can be nil.
//   - params - various runner options.
func NewAsyncTaskRunner(
	ctx context.Context,
	task Task,
	handler core.ErrorHandler,
	params AsyncTaskRunnerParams,
) *AsyncTaskRunner {
	ctx, cancel := context.WithCancel(ctx)

	return &AsyncTaskRunner{
		ctx:     ctx,
		cancel:  cancel,
		doneCh:  make(chan struct{}),
		task:    task,
		handler: handler,
		params:  params,
	}
}

// Start begins asynchronous task processing.
func (r *AsyncTaskRunner) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.started {
		return status.StatusInvalidState
	}
	r.started = true

	go r.run()

	return nil
}

// Stop ends asynchronous task processing and waits until the task is finished.
func (r *AsyncTaskRunner) Stop() error {
	r.mu.Lock()
	started := r.started
	r.mu.Unlock()

	r.cancel()

	if started {
		<-r.doneCh
	}

	return nil
}

// Close implements core.Closer.
func (r *AsyncTaskRunner) Close() error {
	return r.Stop()
}

func (r *AsyncTaskRunner) run() {
	defer close(r.doneCh)

	if r.runTask() && r.params.ExitOnSuccess {
		return
	}

	ticker := time.NewTicker(r.params.UpdateInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if r.runTask() && r.params.ExitOnSuccess {
				return
			}

		case <-r.ctx.Done():
			return
		}
	}
}

func (r *AsyncTaskRunner) runTask() bool {
	if err := r.task.Run(); err != nil {
		if r.handler != nil {
			r.handler.HandleError(err)
		}

		return false
	}

	return true
}
