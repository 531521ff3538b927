// Package export walks a range of block heights, normalizes every block, and
// writes the records to a storage sink in height order.
package export

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"explorerScope/internal/metrics"
	"explorerScope/internal/model"
	"explorerScope/internal/normalize"
	"explorerScope/internal/retry"
	"explorerScope/internal/shape"
	"explorerScope/internal/storage"
)

// RunConfig holds runtime settings for an export.
type RunConfig struct {
	FromHeight        uint64
	ToHeight          uint64
	BatchSize         uint64
	Workers           int
	CheckpointPath    string
	CheckpointEnabled bool
	MaxRetries        int
	RetryBackoff      time.Duration
}

// Blocks resolves normalized blocks. explorer.Service implements it.
type Blocks interface {
	Block(ctx context.Context, height uint64) (model.BlockRecord, error)
	LatestHeight(ctx context.Context) (uint64, error)
}

// Runner exports blocks to storage.
type Runner struct {
	cfg        RunConfig
	blocks     Blocks
	storage    storage.Storage
	logger     *zap.Logger
	checkpoint *CheckpointStore
}

// NewRunner builds a Runner with its dependencies.
func NewRunner(cfg RunConfig, blocks Blocks, sink storage.Storage, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		cfg:        cfg,
		blocks:     blocks,
		storage:    sink,
		logger:     logger,
		checkpoint: NewCheckpointStore(cfg.CheckpointPath, cfg.CheckpointEnabled),
	}
}

// Run exports every height in the configured range. A zero ToHeight means
// the latest indexed height. Progress resumes from the checkpoint.
func (r *Runner) Run(ctx context.Context) error {
	if r.blocks == nil {
		return fmt.Errorf("block source is nil")
	}
	if r.storage == nil {
		return fmt.Errorf("storage is nil")
	}
	if r.cfg.BatchSize == 0 {
		return fmt.Errorf("batch size must be greater than zero")
	}
	workers := r.cfg.Workers
	if workers <= 0 {
		workers = 1
	}

	from := r.cfg.FromHeight
	to := r.cfg.ToHeight
	if to == 0 {
		latest, err := r.blocks.LatestHeight(ctx)
		if err != nil {
			return fmt.Errorf("get latest height: %w", err)
		}
		to = latest
	}

	cp, ok, err := r.checkpoint.Load()
	if err != nil {
		return err
	}
	resumed := ok && cp.ResumesFrom(from)
	switch {
	case resumed:
		from = cp.LastExportedHeight + 1
		r.logger.Info("resume from checkpoint", zap.Uint64("last_exported", cp.LastExportedHeight), zap.Uint64("from", from))
	case ok:
		r.logger.Warn("checkpoint belongs to another export, starting over",
			zap.Uint64("checkpoint_from", cp.FromHeight),
			zap.Uint64("checkpoint_last_exported", cp.LastExportedHeight),
			zap.Uint64("from", from),
		)
	}

	if from > to || to == 0 {
		r.logger.Info("nothing to export", zap.Uint64("from", from), zap.Uint64("to", to))
		return nil
	}

	if !resumed {
		if err := r.storage.Reset(); err != nil {
			return fmt.Errorf("reset storage: %w", err)
		}
	}

	ranges, err := SplitRange(from, to, r.cfg.BatchSize)
	if err != nil {
		return err
	}

	for _, heights := range ranges {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		r.logger.Info("export batch", zap.Uint64("from", heights.From), zap.Uint64("to", heights.To))

		records, err := r.fetchBatch(ctx, heights, workers)
		if err != nil {
			return err
		}

		if err := r.storage.PutBlockBatch(records); err != nil {
			return fmt.Errorf("store blocks: %w", err)
		}
		metrics.ExportBlocksWritten.Add(float64(len(records)))

		if err := r.checkpoint.Save(r.cfg.FromHeight, heights.To); err != nil {
			return err
		}
		metrics.ExportCheckpointHeight.Set(float64(heights.To))

		r.logger.Info("batch complete", zap.Int("blocks", len(records)), zap.Uint64("from", heights.From), zap.Uint64("to", heights.To))
	}

	return nil
}

// fetchBatch resolves every height concurrently and returns the records in
// height order. Missing and rejected blocks are skipped.
func (r *Runner) fetchBatch(ctx context.Context, heights HeightRange, workers int) ([]model.BlockRecord, error) {
	slots := make([]*model.BlockRecord, heights.Len())

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range slots {
		i := i
		height := heights.From + uint64(i)
		g.Go(func() error {
			record, err := r.blockWithRetry(gctx, height)
			if err != nil {
				if reason, skip := skipReason(err); skip {
					metrics.ExportBlocksSkipped.WithLabelValues(reason).Inc()
					r.logger.Warn("skip block", zap.Uint64("height", height), zap.String("reason", reason), zap.Error(err))
					return nil
				}
				return fmt.Errorf("block %d: %w", height, err)
			}
			slots[i] = &record
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	records := make([]model.BlockRecord, 0, len(slots))
	for _, record := range slots {
		if record != nil {
			records = append(records, *record)
		}
	}
	return records, nil
}

func (r *Runner) blockWithRetry(ctx context.Context, height uint64) (model.BlockRecord, error) {
	var record model.BlockRecord
	err := retry.Do(ctx, r.cfg.MaxRetries, r.cfg.RetryBackoff, func(ctx context.Context) error {
		var err error
		record, err = r.blocks.Block(ctx, height)
		if err == nil {
			return nil
		}
		if _, skip := skipReason(err); skip {
			return retry.Permanent(err)
		}
		r.logger.Warn("block fetch failed", zap.Error(err), zap.Uint64("height", height))
		return err
	})
	return record, err
}

// skipReason reports whether err is a per-block condition that retrying
// cannot fix.
func skipReason(err error) (string, bool) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return "not_found", true
	case errors.Is(err, shape.ErrShapeViolation):
		return "bad_result", true
	case errors.Is(err, normalize.ErrStructuralViolation):
		return "data_integrity", true
	default:
		return "", false
	}
}
