package pipanchor

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/open-control-systems/time-anchor/components/anchor/ancore"
	"github.com/open-control-systems/time-anchor/components/anchor/anprom"
	"github.com/open-control-systems/time-anchor/components/core"
	"github.com/open-control-systems/time-anchor/components/storage/stcore"
	"github.com/open-control-systems/time-anchor/components/system/syscore"
	"github.com/open-control-systems/time-anchor/components/system/syssched"
)

const (
	dbBucket = "time-anchor"
	dbKey    = "anchor"

	defaultRestoreInterval = time.Second * 10
)

// Params provides various configuration options for the anchor pipeline.
type Params struct {
	// DBPath - anchor database file path, the anchor is kept in memory if empty.
	DBPath string

	// DBOpenTimeout - how long to wait for the database file lock.
	DBOpenTimeout time.Duration

	// TrustSystemClock - periodically anchor the local wall clock.
	TrustSystemClock bool

	// SystemClockInterval - how often to anchor the local wall clock.
	SystemClockInterval time.Duration

	// RestoreInterval - how often to retry restoring the persisted anchor
	// until an anchor is live.
	RestoreInterval time.Duration
}

// Pipeline contains various building blocks for the time anchoring.
type Pipeline struct {
	clock     syscore.MonotonicClock
	store     *ancore.Store
	source    *ancore.TimeSource
	persister *ancore.Persister
	restorer  syssched.Starter
	starter   syssched.Starter
}

// NewPipeline initializes all components associated with the time anchoring.
//
// Parameters:
//   - ctx - parent context.
//   - closer - to register all resources that should be closed.
//   - registerer - to register the anchor metrics.
//   - params - various pipeline parameters.
func NewPipeline(
	ctx context.Context,
	closer *core.FanoutCloser,
	registerer prometheus.Registerer,
	params Params,
) (*Pipeline, error) {
	db, err := newDB(params)
	if err != nil {
		return nil, err
	}
	closer.Add("anchor-db", db)

	observer, err := anprom.NewObserver(registerer)
	if err != nil {
		return nil, err
	}

	store := ancore.NewStore(db, dbKey)

	persister := ancore.NewPersister(ctx, store, observer)
	closer.Add("anchor-persister", persister)

	clock := syscore.NewMonotonicClock()
	source := ancore.NewTimeSource(clock, store, persister, observer)

	restoreInterval := params.RestoreInterval
	if restoreInterval <= 0 {
		restoreInterval = defaultRestoreInterval
	}

	restorer := syssched.NewAsyncTaskRunner(ctx, source, source,
		syssched.AsyncTaskRunnerParams{
			UpdateInterval: restoreInterval,
			ExitOnSuccess:  true,
		})
	closer.Add("anchor-restorer", restorer)

	pipeline := &Pipeline{
		clock:     clock,
		store:     store,
		source:    source,
		persister: persister,
		restorer:  restorer,
	}

	if params.TrustSystemClock {
		systemSource := ancore.NewSystemClockSource(&syscore.LocalWallClock{}, clock, source)

		runner := syssched.NewAsyncTaskRunner(ctx, systemSource, systemSource,
			syssched.AsyncTaskRunnerParams{
				UpdateInterval: params.SystemClockInterval,
			})
		closer.Add("system-clock-source", runner)

		pipeline.starter = runner
	}

	return pipeline, nil
}

// GetTimeSource returns the time source to estimate the current time.
func (p *Pipeline) GetTimeSource() *ancore.TimeSource {
	return p.source
}

// GetMonotonicClock returns the clock anchors are captured with.
func (p *Pipeline) GetMonotonicClock() syscore.MonotonicClock {
	return p.clock
}

// Start restores the persisted anchor and starts the asynchronous processing.
func (p *Pipeline) Start() error {
	if err := p.persister.Start(); err != nil {
		return err
	}

	if err := p.source.Restore(); err != nil {
		p.source.HandleError(err)

		core.LogInf.Printf("anchor-pipeline: no anchor restored, waiting for delivery\n")

		// Retried until restored or delivered, Restore succeeds once an anchor is live.
		if err := p.restorer.Start(); err != nil {
			return err
		}
	}

	if p.starter != nil {
		return p.starter.Start()
	}

	return nil
}

func newDB(params Params) (stcore.DB, error) {
	if params.DBPath == "" {
		core.LogWrn.Printf("anchor-pipeline: database path isn't set," +
			" anchor won't survive the restart\n")

		return stcore.NewMemoryDB(), nil
	}

	db, err := stcore.NewBboltDB(stcore.BboltDBParams{
		Path:        params.DBPath,
		Bucket:      dbBucket,
		OpenTimeout: params.DBOpenTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: path=%s: %w", params.DBPath, err)
	}

	return db, nil
}
