package g3d

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler drops every record. Enabled returns false, so the per-frame
// Debug calls in render cost no formatting while logging is off.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr is loaded on every log call. SetLogger may swap it while
// another goroutine is rendering.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger routes the log output of g3d and render to l. g3d is silent
// until it is called. Pass nil to silence it again.
//
// What is logged, by level:
//   - [slog.LevelDebug]: one record per frame with its FrameStats, mesh
//     buffer uploads, shader validation and texture loads
//   - [slog.LevelInfo]: renderer and pipeline creation, RenderConfig toggles
//   - [slog.LevelWarn]: a hardware rasterizer falling back to recording mode,
//     WGSL that naga could not validate
//
// Example:
//
//	g3d.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the logger set by SetLogger. render logs through it too.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
