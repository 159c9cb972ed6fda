package logging

import (
	"context"
	"sync/atomic"
)

// MirrorFunc receives every record written through a context-aware method.
// The observability package installs one to feed the otel log pipeline.
type MirrorFunc func(ctx context.Context, level Level, msg string, args ...any)

type mirrorHolder struct {
	fn MirrorFunc
}

var mirror atomic.Pointer[mirrorHolder]

// SetMirror installs fn as the process-wide mirror. Passing nil removes it.
func SetMirror(fn MirrorFunc) {
	if fn == nil {
		mirror.Store(nil)
		return
	}
	mirror.Store(&mirrorHolder{fn: fn})
}

func emitMirror(ctx context.Context, level Level, msg string, args []any) {
	if holder := mirror.Load(); holder != nil && holder.fn != nil {
		holder.fn(ctx, level, msg, args...)
	}
}

// Named returns a child logger whose records carry the component name, e.g.
// an upstream adapter or the http layer.
func (l *Logger) Named(name string) *Logger {
	if l == nil {
		return NewNop()
	}
	return &Logger{zap: l.zap.Named(name)}
}
