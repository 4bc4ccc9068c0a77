// Package limiter implements spec §4.5: the resource limiter that enforces
// wall-clock, statement-count, loop-iteration-count, call-depth and
// script-call-depth quotas so that scripts terminate deterministically.
//
// No teacher analog exists (the bytecode VM has no quota system); grounded
// in spirit on the teacher's call-frame/Environment bookkeeping style but
// implemented fresh per spec.
package limiter

import (
	"fmt"
	"time"
)

// Options configures a Limiter's thresholds (spec §6 "Options").
type Options struct {
	MaxWallTime         time.Duration
	MaxStatements       int
	MaxLoopIterations   int
	MaxCallDepth        int
	MaxScriptCallDepth  int
}

// DefaultOptions returns conservative defaults suitable for untrusted,
// semi-trusted script authors (spec §1).
func DefaultOptions() Options {
	return Options{
		MaxWallTime:        2 * time.Second,
		MaxStatements:      1_000_000,
		MaxLoopIterations:  1_000_000,
		MaxCallDepth:       256,
		MaxScriptCallDepth: 32,
	}
}

// Exceeded describes which quota was breached, distinguishing counter
// exceedance from wall-clock exceedance (spec §4.5: "A wall-clock excess
// produces a runtime error with the elapsed time. Counter excess produces a
// runtime error naming the limit.").
type Exceeded struct {
	Kind    string // "wall-clock", "statements", "loop-iterations", "call-depth", "script-call-depth"
	Elapsed time.Duration
	Limit   int
}

func (e *Exceeded) Error() string {
	if e.Kind == "wall-clock" {
		return fmt.Sprintf("execution exceeded wall-clock limit after %s", e.Elapsed)
	}
	return fmt.Sprintf("execution exceeded %s limit of %d", e.Kind, e.Limit)
}

// Limiter enforces Options' quotas over the lifetime of one execution. It is
// not safe for concurrent use — each Execute call owns its own Limiter
// (spec §5).
type Limiter struct {
	opts Options
	start time.Time

	statements      int
	loopIterations  int
	callDepth       int
	maxCallDepth    int
	scriptCallDepth int

	functionCalls int
}

// New creates a Limiter with its wall-clock stopwatch started.
func New(opts Options) *Limiter {
	return &Limiter{opts: opts, start: time.Now()}
}

func (l *Limiter) elapsed() time.Duration { return time.Since(l.start) }

func (l *Limiter) checkWallClock() *Exceeded {
	if l.opts.MaxWallTime > 0 && l.elapsed() > l.opts.MaxWallTime {
		return &Exceeded{Kind: "wall-clock", Elapsed: l.elapsed()}
	}
	return nil
}

// CountStatement pre-increments the statement counter and checks both it and
// the wall clock (spec §4.5).
func (l *Limiter) CountStatement() *Exceeded {
	l.statements++
	if l.opts.MaxStatements > 0 && l.statements > l.opts.MaxStatements {
		return &Exceeded{Kind: "statements", Limit: l.opts.MaxStatements}
	}
	return l.checkWallClock()
}

// EnterLoop brackets one loop iteration: bumps the total iteration counter
// and checks the wall clock on entry (spec §4.5).
func (l *Limiter) EnterLoop() *Exceeded {
	l.loopIterations++
	if l.opts.MaxLoopIterations > 0 && l.loopIterations > l.opts.MaxLoopIterations {
		return &Exceeded{Kind: "loop-iterations", Limit: l.opts.MaxLoopIterations}
	}
	return l.checkWallClock()
}

// ExitLoop is the closing bracket of EnterLoop. It performs no bookkeeping
// today (iteration counts are monotonic) but exists so call sites bracket
// every loop iteration symmetrically, as spec §4.5 specifies.
func (l *Limiter) ExitLoop() {}

// EnterCall brackets a function invocation: enforces call-depth and checks
// the wall clock (spec §4.5).
func (l *Limiter) EnterCall() *Exceeded {
	l.callDepth++
	l.functionCalls++
	if l.callDepth > l.maxCallDepth {
		l.maxCallDepth = l.callDepth
	}
	if l.opts.MaxCallDepth > 0 && l.callDepth > l.opts.MaxCallDepth {
		return &Exceeded{Kind: "call-depth", Limit: l.opts.MaxCallDepth}
	}
	return l.checkWallClock()
}

// ExitCall closes the EnterCall bracket.
func (l *Limiter) ExitCall() { l.callDepth-- }

// EnterScriptCall brackets a nested script invocation via the resolver
// (spec §4.5, §6 "Script resolver").
func (l *Limiter) EnterScriptCall() *Exceeded {
	l.scriptCallDepth++
	if l.opts.MaxScriptCallDepth > 0 && l.scriptCallDepth > l.opts.MaxScriptCallDepth {
		return &Exceeded{Kind: "script-call-depth", Limit: l.opts.MaxScriptCallDepth}
	}
	return l.checkWallClock()
}

// ExitScriptCall closes the EnterScriptCall bracket.
func (l *Limiter) ExitScriptCall() { l.scriptCallDepth-- }

// Metadata snapshots the counters the spec §4.8 result metadata needs.
type Metadata struct {
	Elapsed           time.Duration
	StatementCount    int
	LoopIterations    int
	FunctionCallCount int
	MaxCallDepth      int
}

// Snapshot returns the current Metadata.
func (l *Limiter) Snapshot() Metadata {
	return Metadata{
		Elapsed:           l.elapsed(),
		StatementCount:    l.statements,
		LoopIterations:    l.loopIterations,
		FunctionCallCount: l.functionCalls,
		MaxCallDepth:      l.maxCallDepth,
	}
}
