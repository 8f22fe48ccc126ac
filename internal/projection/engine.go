package projection

import "time"

// Logger is the minimal logging surface the engine emits diagnostics through.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// NopLogger discards all log output. It is the engine default.
type NopLogger struct{}

func (NopLogger) Debugf(string, ...any) {}
func (NopLogger) Infof(string, ...any)  {}
func (NopLogger) Warnf(string, ...any)  {}
func (NopLogger) Errorf(string, ...any) {}

// Engine runs day-stepped cash-flow projections. Each call is independent
// and re-entrant; all running state is call-local, so concurrent calls with
// different rule sets need no coordination.
type Engine struct {
	Logger Logger

	// Today is the fallback start date used when a rule set carries no
	// explicit start. The engine never reads a clock itself; the caller
	// injects one here.
	Today time.Time

	Debug bool
}

// NewEngine creates a projection engine with a no-op logger.
func NewEngine() *Engine {
	return &Engine{Logger: NopLogger{}}
}

// SetLogger replaces the engine logger. A nil logger installs the no-op
// logger.
func (e *Engine) SetLogger(l Logger) {
	if l == nil {
		e.Logger = NopLogger{}
		return
	}
	e.Logger = l
}
