package engine

import (
	"time"

	"github.com/Carmen-Shannon/oxy-vr/engine/config"
	"github.com/Carmen-Shannon/oxy-vr/engine/overlay"
	"github.com/Carmen-Shannon/oxy-vr/engine/profiler"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithSettings sets the configuration file the tool manager reads class sections from.
// Without it the engine starts from an empty file.
//
// Parameters:
//   - settings: the loaded configuration
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithSettings(settings *config.File) EngineBuilderOption {
	return func(e *engine) {
		e.settings = settings
	}
}

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithProfiler replaces the default once-per-second profiler.
//
// Parameters:
//   - p: the profiler to tick after each step
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiler(p *profiler.Profiler) EngineBuilderOption {
	return func(e *engine) {
		e.profiler = p
	}
}

// WithTickRate sets the step rate used by Run in steps per second.
// Values <= 0 will be treated as the default (60Hz).
//
// Parameters:
//   - fps: target steps per second (default 60)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithTickRate(fps float64) EngineBuilderOption {
	return func(e *engine) {
		if fps <= 0 {
			fps = 60.0
		}
		e.engineTickRate = time.Duration(float64(time.Second) / fps)
	}
}

// WithEventBuffer sets the capacity of the input event queue. Values <= 0 are ignored.
//
// Parameters:
//   - n: maximum number of events queued between steps (default 256)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithEventBuffer(n int) EngineBuilderOption {
	return func(e *engine) {
		if n > 0 {
			e.eventBuffer = n
		}
	}
}

// WithPollCallback sets the platform poll function called by Run before each step.
//
// Parameters:
//   - callback: returns false to stop the engine
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithPollCallback(callback func() bool) EngineBuilderOption {
	return func(e *engine) {
		e.pollCallback = callback
	}
}

// WithTickCallback sets the function called each step after input has been applied.
//
// Parameters:
//   - callback: function receiving the delta time in seconds
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithTickCallback(callback func(deltaTime float32)) EngineBuilderOption {
	return func(e *engine) {
		e.tickCallback = callback
	}
}

// WithRenderCallback sets the function called once per window each step with its overlay.
//
// Parameters:
//   - callback: function receiving the window index and its overlay
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderCallback(callback func(windowIndex int, lines *overlay.Lines)) EngineBuilderOption {
	return func(e *engine) {
		e.renderCallback = callback
	}
}
