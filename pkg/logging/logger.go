// Package logging provides tooling for structured logging.
// With logging, you can use context to add logging details to your call stack.
package logging

import (
	"bytes"
	"context"
	"io"
	"os"
	"sync"
	"time"

	"github.com/go-json-experiment/json"
	"go.llib.dev/testcase/clock"
)

type Logger struct {
	Out io.Writer

	// Level is the logging level.
	// The default Level is LevelInfo.
	Level Level
	// Separator is used to seperate log entries from each other.
	// By default, it is a new line.
	Separator string
	// MarshalFunc is used to serialise the logging message event.
	// When nil it defaults to deterministic JSON format.
	MarshalFunc func(any) ([]byte, error)

	outLock sync.Mutex
}

func (l *Logger) Debug(ctx context.Context, msg string, ds ...Detail) {
	l.Log(ctx, LevelDebug, msg, ds...)
}

func (l *Logger) Info(ctx context.Context, msg string, ds ...Detail) {
	l.Log(ctx, LevelInfo, msg, ds...)
}

func (l *Logger) Warn(ctx context.Context, msg string, ds ...Detail) {
	l.Log(ctx, LevelWarn, msg, ds...)
}

func (l *Logger) Error(ctx context.Context, msg string, ds ...Detail) {
	l.Log(ctx, LevelError, msg, ds...)
}

func (l *Logger) Log(ctx context.Context, level Level, msg string, ds ...Detail) {
	if l == nil {
		return
	}
	if !isLevelEnabled(l.getLevel(), level) {
		return
	}
	e := l.toLogEntry(ctx, level, msg, ds)
	bs, err := l.marshalFunc()(e)
	if err != nil {
		return
	}
	l.outLock.Lock()
	defer l.outLock.Unlock()
	_, _ = l.writer().Write(append(bs, []byte(l.separator())...))
}

func (l *Logger) toLogEntry(ctx context.Context, level Level, msg string, ds []Detail) entry {
	le := make(entry)
	for _, d := range detailsFrom(ctx) {
		d.addTo(le)
	}
	for _, d := range ds {
		d.addTo(le)
	}
	le["level"] = level.String()
	le["message"] = msg
	le["timestamp"] = clock.Now().Format(time.RFC3339)
	return le
}

func (l *Logger) writer() io.Writer {
	if l.Out != nil {
		return l.Out
	}
	return os.Stdout
}

func (l *Logger) marshalFunc() func(any) ([]byte, error) {
	if l.MarshalFunc != nil {
		return l.MarshalFunc
	}
	return func(v any) ([]byte, error) {
		return json.Marshal(v, json.Deterministic(true))
	}
}

func (l *Logger) separator() string {
	if l.Separator != "" {
		return l.Separator
	}
	return "\n"
}

func (l *Logger) getLevel() Level {
	if len(l.Level) == 0 {
		return defaultLevel
	}
	return l.Level
}

// Stub returns a Logger that records every level, and the buffer where the logging output will be recorded.
func Stub(tb testingTB) (*Logger, StubOutput) {
	tb.Helper()
	buf := &stubOutput{}
	l := &Logger{
		Level: LevelDebug,
		Out:   buf,
	}
	tb.Cleanup(func() {
		if tb.Failed() {
			tb.Log(buf.String())
		}
	})
	return l, buf
}

type testingTB interface {
	Helper()
	Cleanup(func())
	Failed() bool
	Log(args ...any)
}

type StubOutput interface {
	io.Reader
	String() string
	Bytes() []byte
}

type stubOutput struct {
	m   sync.Mutex
	buf bytes.Buffer
}

func (o *stubOutput) Read(p []byte) (n int, err error) {
	o.m.Lock()
	defer o.m.Unlock()
	return o.buf.Read(p)
}

func (o *stubOutput) Write(p []byte) (n int, err error) {
	o.m.Lock()
	defer o.m.Unlock()
	return o.buf.Write(p)
}

func (o *stubOutput) String() string {
	o.m.Lock()
	defer o.m.Unlock()
	return o.buf.String()
}

func (o *stubOutput) Bytes() []byte {
	o.m.Lock()
	defer o.m.Unlock()
	return append([]byte(nil), o.buf.Bytes()...)
}
