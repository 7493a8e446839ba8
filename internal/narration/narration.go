// Package narration provides sinks for the roll-by-roll story of a game.
package narration

import (
	"fmt"
	"sync"

	"github.com/pterm/pterm"
	"go.uber.org/zap"
)

// Sink receives one narration line at a time.
type Sink interface {
	Emit(line string)
}

// Emitf formats and emits a line to s.
func Emitf(s Sink, format string, args ...any) {
	s.Emit(fmt.Sprintf(format, args...))
}

type nopSink struct{}

func (nopSink) Emit(string) {}

// Nop returns a sink that discards every line.
func Nop() Sink {
	return nopSink{}
}

// OrNop returns s, or a discarding sink when s is nil.
func OrNop(s Sink) Sink {
	if s == nil {
		return Nop()
	}
	return s
}

// zapSink writes lines as info-level log entries.
type zapSink struct {
	logger *zap.Logger
}

// NewZapSink returns a sink that logs each line at info level.
//
// Precondition: logger must be non-nil.
func NewZapSink(logger *zap.Logger) Sink {
	return &zapSink{logger: logger.Named("narration")}
}

func (z *zapSink) Emit(line string) {
	z.logger.Info(line)
}

// ptermSink prints lines to the terminal.
type ptermSink struct {
	printer pterm.PrefixPrinter
}

// NewPtermSink returns a sink that prints each line with pterm's info prefix.
func NewPtermSink() Sink {
	return &ptermSink{printer: pterm.Info}
}

func (p *ptermSink) Emit(line string) {
	p.printer.Println(line)
}

// Recorder collects every emitted line. It is safe for concurrent use.
type Recorder struct {
	mu    sync.Mutex
	lines []string
}

// Emit appends line.
func (r *Recorder) Emit(line string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines = append(r.lines, line)
}

// Lines returns a copy of every line recorded so far.
func (r *Recorder) Lines() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.lines))
	copy(out, r.lines)
	return out
}
