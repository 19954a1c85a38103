// Package pipeline orchestrates one update run: fetch every catalogued
// dataset, normalize it, load it into its relational table and rebuild the
// aggregated views. Datasets are processed sequentially; a failing dataset
// is recorded and skipped so the remaining ones still load.
package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"ecotrack/internal/aggregate"
	"ecotrack/internal/clean"
	"ecotrack/internal/model"
	"ecotrack/internal/sidra"
	"ecotrack/internal/store"
)

type Pipeline struct {
	client     *sidra.Client
	cleaner    *clean.Cleaner
	store      *store.Store
	aggregator *aggregate.Aggregator
	log        *zap.Logger
}

func New(client *sidra.Client, cleaner *clean.Cleaner, st *store.Store, agg *aggregate.Aggregator, log *zap.Logger) *Pipeline {
	return &Pipeline{
		client:     client,
		cleaner:    cleaner,
		store:      st,
		aggregator: agg,
		log:        log,
	}
}

// Run executes one full update run and returns its ID. The run fails only
// when a dataset error is recorded or aggregation breaks; datasets that
// come back empty are skipped without failing the run.
func (p *Pipeline) Run(ctx context.Context) (string, error) {
	runID := uuid.New().String()
	if err := p.store.CreateRun(ctx, runID); err != nil {
		return "", err
	}
	if err := p.store.UpdateRunStatus(ctx, runID, model.RunRunning); err != nil {
		return runID, err
	}
	p.log.Info("run started", zap.String("run_id", runID))

	// Aggregation reads every catalogued table, so they all must exist
	// even when a dataset fails to download this cycle.
	for _, ds := range sidra.Datasets() {
		if err := p.store.EnsureDataset(ctx, store.TableName(ds.Sector, ds.Indicator)); err != nil {
			p.finish(runID, model.RunFailed)
			return runID, err
		}
	}

	failures := 0
	for _, ds := range sidra.Datasets() {
		if err := ctx.Err(); err != nil {
			p.finish(runID, model.RunFailed)
			return runID, err
		}
		if err := p.loadDataset(ctx, ds); err != nil {
			if errors.Is(err, clean.ErrEmptyDataset) {
				p.log.Warn("dataset skipped",
					zap.String("sector", ds.Sector),
					zap.String("indicator", ds.Indicator),
					zap.Error(err))
				continue
			}
			failures++
			p.log.Error("dataset failed",
				zap.String("sector", ds.Sector),
				zap.String("indicator", ds.Indicator),
				zap.Error(err))
			if err := p.store.SaveRunError(ctx, runID, stageOf(err), err); err != nil {
				p.log.Error("record run error", zap.Error(err))
			}
		}
	}

	if err := p.aggregator.Run(ctx); err != nil {
		if saveErr := p.store.SaveRunError(ctx, runID, "aggregate", err); saveErr != nil {
			p.log.Error("record run error", zap.Error(saveErr))
		}
		p.finish(runID, model.RunFailed)
		return runID, fmt.Errorf("aggregate: %w", err)
	}

	status := model.RunCompleted
	if failures > 0 {
		status = model.RunFailed
	}
	p.finish(runID, status)
	p.log.Info("run finished",
		zap.String("run_id", runID),
		zap.String("status", status),
		zap.Int("failed_datasets", failures))
	if failures > 0 {
		return runID, fmt.Errorf("%d dataset(s) failed", failures)
	}
	return runID, nil
}

// loadDataset runs fetch, clean and store for one catalogued dataset.
func (p *Pipeline) loadDataset(ctx context.Context, ds sidra.Dataset) error {
	raws, err := p.client.Fetch(ctx, ds)
	if err != nil {
		return &stageError{stage: "fetch", err: err}
	}

	records, dropped, err := p.cleaner.Normalize(raws)
	if err != nil {
		if errors.Is(err, clean.ErrEmptyDataset) {
			return err
		}
		return &stageError{stage: "clean", err: err}
	}

	table := store.TableName(ds.Sector, ds.Indicator)
	inserted, err := p.store.InsertRecords(ctx, table, records)
	if err != nil {
		return &stageError{stage: "store", err: err}
	}

	p.log.Info("dataset loaded",
		zap.String("table", table),
		zap.Int("fetched", len(raws)),
		zap.Int("dropped", dropped),
		zap.Int("inserted", inserted))
	return nil
}

// finish records the final status on its own context so the update still
// lands when the run context was canceled.
func (p *Pipeline) finish(runID, status string) {
	if err := p.store.UpdateRunStatus(context.Background(), runID, status); err != nil {
		p.log.Error("update run status", zap.String("run_id", runID), zap.Error(err))
	}
}

// stageError tags a dataset failure with the pipeline stage it came from,
// so run errors record where the dataset broke.
type stageError struct {
	stage string
	err   error
}

func (e *stageError) Error() string { return e.stage + ": " + e.err.Error() }
func (e *stageError) Unwrap() error { return e.err }

func stageOf(err error) string {
	var se *stageError
	if errors.As(err, &se) {
		return se.stage
	}
	return "pipeline"
}
