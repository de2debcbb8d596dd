package optimizer

import (
	"errors"
	"runtime"

	"github.com/sokoban-opt/vicinity/progress"
)

// ErrInvalidMaxCPUs and ErrInvalidMaxBoxConfigurations are returned
// (via Config.err, surfaced by the first Run call) when an Option was
// given an out-of-range value. Invalid options never panic; they make
// the eventual Run fail with a clear error instead.
var (
	ErrInvalidMaxCPUs              = errors.New("optimizer: max CPUs must be at least 1")
	ErrInvalidMaxBoxConfigurations = errors.New("optimizer: max box configurations must be non-negative")
)

// bracket is a known portion of a larger solution lying outside the
// vicinity-search window: its move/push counts are folded into the
// final Solution's totals without being part of the search itself.
type bracket struct {
	moves, pushes int
}

// Config holds every tunable Optimize accepts, built from a Request's
// Option list. The zero Config is never used directly; New always
// starts from defaultConfig and applies opts on top.
type Config struct {
	maxCPUs               int
	iterate               bool
	preservePlayerEnd     bool
	maxBoxConfigurations  int // 0 means AUTO
	prefix                bracket
	prefixLastPushAxis    int
	suffix                bracket
	sink                  progress.ProgressSink
	debug                 bool

	err error
}

func defaultConfig() Config {
	return Config{
		maxCPUs: runtime.NumCPU(),
		sink:    progress.NoopSink{},
	}
}

func (c *Config) setErr(err error) {
	if c.err == nil {
		c.err = err
	}
}

// Option configures one aspect of an Optimize call. Options are
// applied in order; the first invalid one sets Config.err, which Run
// returns before starting any work.
type Option func(*Config)

// WithMaxCPUs bounds how many goroutines generator, vicinity search
// and reconstruction each dispatch concurrently. n must be at least 1.
func WithMaxCPUs(n int) Option {
	return func(c *Config) {
		if n < 1 {
			c.setErr(ErrInvalidMaxCPUs)
			return
		}
		c.maxCPUs = n
	}
}

// WithIterate enables the "adopt and re-run" loop: when a round
// strictly improves on its seed, the improved solution becomes the
// next round's seed and the search repeats until a round fails to
// improve, a fixed point is reached, or the caller stops the run.
func WithIterate(enabled bool) Option {
	return func(c *Config) { c.iterate = enabled }
}

// WithPreservePlayerEnd restricts the backward search's seed to the
// end board's exact recorded player position rather than every
// position reachable around the end box configuration.
func WithPreservePlayerEnd(enabled bool) Option {
	return func(c *Config) { c.preservePlayerEnd = enabled }
}

// WithMaxBoxConfigurations overrides AUTO capacity estimation with a
// fixed box-configuration-set size. n == 0 restores AUTO.
func WithMaxBoxConfigurations(n int) Option {
	return func(c *Config) {
		if n < 0 {
			c.setErr(ErrInvalidMaxBoxConfigurations)
			return
		}
		c.maxBoxConfigurations = n
	}
}

// WithPrefix records the move/push counts (and, for axis-sensitive
// objectives, the axis of the last push) of a portion of a larger
// solution lying before the vicinity-search window. The counts are
// folded into the returned Solution's totals.
func WithPrefix(moves, pushes, lastPushAxis int) Option {
	return func(c *Config) {
		c.prefix = bracket{moves: moves, pushes: pushes}
		c.prefixLastPushAxis = lastPushAxis
	}
}

// WithSuffix records the move/push counts of a portion of a larger
// solution lying after the vicinity-search window, folded into the
// returned Solution's totals the same way WithPrefix is.
func WithSuffix(moves, pushes int) Option {
	return func(c *Config) { c.suffix = bracket{moves: moves, pushes: pushes} }
}

// WithProgressSink directs run reports to p instead of the default
// NoopSink.
func WithProgressSink(p progress.ProgressSink) Option {
	return func(c *Config) {
		if p == nil {
			return
		}
		c.sink = p
	}
}

// WithDebug turns on Controller.debugCheckDepth's informational
// logging. It never changes search behavior.
func WithDebug(enabled bool) Option {
	return func(c *Config) { c.debug = enabled }
}
