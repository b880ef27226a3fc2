package hx

import (
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/vango-dev/hx/pkg/host"
)

// ScheduleFunc runs fn at some later point, typically once the current
// render has been committed.
type ScheduleFunc func(fn func())

// DefaultFrameInterval is the fallback delay NextFrame uses when no host
// frame source is available.
const DefaultFrameInterval = 16 * time.Millisecond

// Config holds process-wide adapter settings. Zero fields fall back to
// the defaults or to the rendering root.
type Config struct {
	// Schedule is the default scheduler for Deferred. Default: NextFrame.
	Schedule ScheduleFunc

	// Clock drives Throttle windows and the NextFrame fallback timer.
	// Default: the rendering root's clock.
	Clock host.Clock

	// FrameInterval is the NextFrame fallback delay.
	// Default: DefaultFrameInterval.
	FrameInterval time.Duration

	// Logger receives wrapper logs. Default: the rendering root's logger.
	Logger *slog.Logger
}

// DefaultConfig returns the configuration used until SetConfig is called.
func DefaultConfig() Config {
	return Config{
		Schedule:      NextFrame,
		FrameInterval: DefaultFrameInterval,
	}
}

var config atomic.Pointer[Config]

func init() {
	c := DefaultConfig()
	config.Store(&c)
}

// SetConfig replaces the process-wide configuration. Zero fields are
// filled from DefaultConfig.
func SetConfig(c Config) {
	d := DefaultConfig()
	if c.Schedule == nil {
		c.Schedule = d.Schedule
	}
	if c.FrameInterval <= 0 {
		c.FrameInterval = d.FrameInterval
	}
	config.Store(&c)
}

// CurrentConfig returns the process-wide configuration.
func CurrentConfig() Config {
	return *config.Load()
}

// clock returns the configured clock, else the current root's, else the
// system clock.
func (c Config) clock() host.Clock {
	if c.Clock != nil {
		return c.Clock
	}
	if r := host.CurrentRoot(); r != nil {
		return r.Clock()
	}
	return host.SystemClock()
}

// logger returns the configured logger, else the current root's, else
// slog.Default().
func (c Config) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	if r := host.CurrentRoot(); r != nil {
		return r.Logger()
	}
	return slog.Default()
}

// NextFrame is the default ScheduleFunc. Called from a render or effect
// it runs fn after the owning root's next commit; anywhere else it falls
// back to a timer of Config.FrameInterval.
func NextFrame(fn func()) {
	if host.RequestFrame(fn) {
		return
	}
	c := CurrentConfig()
	c.clock().AfterFunc(c.FrameInterval, fn)
}
