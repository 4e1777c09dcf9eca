package logging

import (
	"context"
	"sync"
)

// Recorder keeps the messages logged at Info level and above, in order, and
// forwards every call to a parent logger. Children created with With share
// the same message list.
type Recorder struct {
	parent Logger
	lines  *lines
}

type lines struct {
	mu  sync.Mutex
	buf []string
}

// NewRecorder returns a Recorder forwarding to parent. A nil parent
// discards forwarded output.
func NewRecorder(parent Logger) *Recorder {
	if parent == nil {
		parent = Nop()
	}
	return &Recorder{parent: parent, lines: &lines{}}
}

// Lines returns a copy of the recorded messages.
func (r *Recorder) Lines() []string {
	r.lines.mu.Lock()
	defer r.lines.mu.Unlock()
	out := make([]string, len(r.lines.buf))
	copy(out, r.lines.buf)
	return out
}

func (r *Recorder) record(msg string) {
	r.lines.mu.Lock()
	r.lines.buf = append(r.lines.buf, msg)
	r.lines.mu.Unlock()
}

func (r *Recorder) Debug(ctx context.Context, msg string, args ...any) {
	r.parent.Debug(ctx, msg, args...)
}

func (r *Recorder) Info(ctx context.Context, msg string, args ...any) {
	r.record(msg)
	r.parent.Info(ctx, msg, args...)
}

func (r *Recorder) Warn(ctx context.Context, msg string, args ...any) {
	r.record(msg)
	r.parent.Warn(ctx, msg, args...)
}

func (r *Recorder) Error(ctx context.Context, msg string, args ...any) {
	r.record(msg)
	r.parent.Error(ctx, msg, args...)
}

func (r *Recorder) With(args ...any) Logger {
	return &Recorder{parent: r.parent.With(args...), lines: r.lines}
}
