package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/robo-companion/internal/domain/rawdata"
	"github.com/riskibarqy/robo-companion/internal/platform/logging"
)

type ArchiveRecorder interface {
	RecordArchiveWrite(err error)
}

type ArchiveWriterConfig struct {
	Workers      int
	WriteTimeout time.Duration
	Logger       *logging.Logger
	Recorder     ArchiveRecorder
}

// ArchiveWriter persists raw upstream payloads in the background. Archive
// never blocks the caller: when every worker is busy the batch is dropped.
type ArchiveWriter struct {
	repo     rawdata.Repository
	pool     *ants.Pool
	timeout  time.Duration
	logger   *logging.Logger
	recorder ArchiveRecorder
	wg       sync.WaitGroup
}

func NewArchiveWriter(repo rawdata.Repository, cfg ArchiveWriterConfig) (*ArchiveWriter, error) {
	if repo == nil {
		return nil, fmt.Errorf("%w: archive repository is required", ErrInvalidInput)
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = 10 * time.Second
	}

	pool, err := ants.NewPool(cfg.Workers, ants.WithNonblocking(true))
	if err != nil {
		return nil, fmt.Errorf("create archive worker pool: %w", err)
	}

	return &ArchiveWriter{
		repo:     repo,
		pool:     pool,
		timeout:  cfg.WriteTimeout,
		logger:   cfg.Logger.Named("archive_writer"),
		recorder: cfg.Recorder,
	}, nil
}

func (w *ArchiveWriter) Archive(ctx context.Context, items ...rawdata.Payload) {
	if len(items) == 0 {
		return
	}

	batch := make([]rawdata.Payload, 0, len(items))
	for _, item := range items {
		if item.EntityKey == "" || len(item.PayloadJSON) == 0 {
			continue
		}
		if item.PayloadHash == "" {
			item.PayloadHash = HashPayload(item.PayloadJSON)
		}
		if item.FetchedAt.IsZero() {
			item.FetchedAt = time.Now().UTC()
		}
		batch = append(batch, item)
	}
	if len(batch) == 0 {
		return
	}

	writeCtx := context.WithoutCancel(ctx)
	w.wg.Add(1)
	err := w.pool.Submit(func() {
		defer w.wg.Done()
		w.write(writeCtx, batch)
	})
	if err != nil {
		w.wg.Done()
		if errors.Is(err, ants.ErrPoolOverload) {
			w.logger.WarnContext(ctx, "archive pool busy, dropping payloads", "items", len(batch))
		} else {
			w.logger.WarnContext(ctx, "archive submit failed", "items", len(batch), "error", err)
		}
		w.record(err)
	}
}

// Close waits for queued writes up to ctx and releases the pool.
func (w *ArchiveWriter) Close(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		w.pool.Release()
		return nil
	case <-ctx.Done():
		w.pool.Release()
		return fmt.Errorf("archive writer close: %w", ctx.Err())
	}
}

func (w *ArchiveWriter) write(ctx context.Context, batch []rawdata.Payload) {
	ctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	err := w.repo.UpsertMany(ctx, batch)
	if err != nil {
		w.logger.WarnContext(ctx, "archive write failed", "items", len(batch), "error", err)
	}
	w.record(err)
}

func (w *ArchiveWriter) record(err error) {
	if w.recorder != nil {
		w.recorder.RecordArchiveWrite(err)
	}
}

func HashPayload(payload string) string {
	sum := sha256.Sum256([]byte(payload))
	return hex.EncodeToString(sum[:])
}

// Prune deletes archived payloads fetched before now minus retention.
func (w *ArchiveWriter) Prune(ctx context.Context, retention time.Duration) (int64, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ArchiveWriter.Prune")
	defer span.End()

	if retention <= 0 {
		return 0, fmt.Errorf("%w: retention must be positive", ErrInvalidInput)
	}
	deleted, err := w.repo.DeleteOlderThan(ctx, time.Now().UTC().Add(-retention))
	if err != nil {
		return 0, fmt.Errorf("prune archive: %w", err)
	}
	w.logger.InfoContext(ctx, "archive pruned", "deleted", deleted, "retention", retention.String())
	return deleted, nil
}

// Stats reports archived payload counts per upstream source.
func (w *ArchiveWriter) Stats(ctx context.Context) ([]rawdata.SourceStats, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ArchiveWriter.Stats")
	defer span.End()

	stats, err := w.repo.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("archive stats: %w", err)
	}
	return stats, nil
}
