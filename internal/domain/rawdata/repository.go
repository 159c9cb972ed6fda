package rawdata

import (
	"context"
	"time"
)

type Repository interface {
	UpsertMany(ctx context.Context, items []Payload) error
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
	Stats(ctx context.Context) ([]SourceStats, error)
}

// Sink accepts payloads without blocking the caller.
type Sink interface {
	Archive(ctx context.Context, items ...Payload)
}

// NopSink discards everything.
type NopSink struct{}

func (NopSink) Archive(context.Context, ...Payload) {}
