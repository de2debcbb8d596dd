package progress

import "github.com/sokoban-opt/vicinity/sokoboard"

// ProgressSink receives activity reports from an optimizer run. The
// controller calls it from the goroutine running Controller.Run; the
// generator, search and reconstruction workers never call it.
type ProgressSink interface {
	// SetInfoText replaces the single line a caller would show as the
	// run's current headline status, e.g. "searching vicinity 3/5".
	SetInfoText(msg string)
	// AddLog appends one diagnostic line. Unlike SetInfoText this is
	// additive — callers use it for a scrolling log view.
	AddLog(msg string)
	// NewFoundSolution reports an improved solution alongside the seed
	// set it was compared against, so a sink can show the delta.
	NewFoundSolution(sol sokoboard.Solution, seedSet []sokoboard.Solution)
	// OptimizerEnded reports the run's terminal state. best is nil if
	// the run ended without ever improving on its seed solutions.
	OptimizerEnded(best *sokoboard.Solution)
}

// NoopSink discards every report. It is the default sink so a caller
// that never configures one pays nothing beyond an interface call.
type NoopSink struct{}

func (NoopSink) SetInfoText(string)                                    {}
func (NoopSink) AddLog(string)                                         {}
func (NoopSink) NewFoundSolution(sokoboard.Solution, []sokoboard.Solution) {}
func (NoopSink) OptimizerEnded(*sokoboard.Solution)                    {}
