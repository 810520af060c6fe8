package engine

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/oxy-vr/engine/config"
	"github.com/Carmen-Shannon/oxy-vr/engine/environment"
	"github.com/Carmen-Shannon/oxy-vr/engine/overlay"
	"github.com/Carmen-Shannon/oxy-vr/engine/profiler"
	"github.com/Carmen-Shannon/oxy-vr/engine/tool"
	"github.com/rs/zerolog/log"
)

// engine implements the Engine interface.
// Events may be posted from any goroutine. Steps run on the goroutine calling Step or Run,
// which must be the platform thread when a window system is attached.
type engine struct {
	mu *sync.Mutex

	env      environment.Environment
	settings *config.File
	tools    tool.Manager

	events      chan Event
	eventBuffer int

	tickRateChannel chan time.Duration

	quitChannel chan struct{}
	quitOnce    sync.Once

	profiler         *profiler.Profiler
	profilingEnabled bool

	engineTickRate time.Duration
	pollCallback   func() bool
	tickCallback   func(deltaTime float32)
	renderCallback func(windowIndex int, lines *overlay.Lines)

	overlays []*overlay.Lines
	steps    atomic.Uint64
	dropped  atomic.Uint64
}

// Engine is the main entry point for the engine.
// It owns the tool manager, feeds device input to it, and drives the per-frame tool update and
// overlay collection for every window of the environment.
type Engine interface {
	// Environment returns the physical environment the engine drives.
	//
	// Returns:
	//   - environment.Environment: the environment
	Environment() environment.Environment

	// Tools returns the engine's tool manager.
	//
	// Returns:
	//   - tool.Manager: the tool manager
	Tools() tool.Manager

	// Settings returns the configuration file tool classes read their sections from.
	//
	// Returns:
	//   - *config.File: the settings
	Settings() *config.File

	// Post queues an input event for the next step. Never blocks; when the queue is full the
	// event is dropped and a warning is logged.
	//
	// Parameters:
	//   - ev: the event to queue
	//
	// Returns:
	//   - bool: false if the event was dropped
	Post(ev Event) bool

	// Step runs one frame. Queued events are applied to their devices and changes are forwarded
	// to the tools, then the tick callback runs, then every tool updates, and finally each
	// window's overlay is collected and handed to the render callback.
	// Must not be called concurrently with itself or Run.
	//
	// Parameters:
	//   - dt: the time since the previous step in seconds
	Step(dt float32)

	// Overlay returns the overlay collected for a window by the last step.
	//
	// Parameters:
	//   - windowIndex: the window index
	//
	// Returns:
	//   - *overlay.Lines: the overlay, or nil if no step has covered the window yet
	Overlay(windowIndex int) *overlay.Lines

	// Steps returns the number of completed steps.
	Steps() uint64

	// Dropped returns the number of events dropped because the queue was full.
	Dropped() uint64

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetTickRate sets the step rate used by Run in steps per second.
	// If Run is active, the change takes effect on the next tick.
	//
	// Parameters:
	//   - fps: target steps per second (defaults to 60 if <= 0)
	SetTickRate(fps float64)

	// SetPollCallback registers the function Run calls before each step to pump platform
	// events. Returning false stops Run.
	//
	// Parameters:
	//   - callback: the platform poll function
	SetPollCallback(callback func() bool)

	// SetTickCallback registers the function called each step after input has been applied.
	//
	// Parameters:
	//   - callback: function receiving the delta time in seconds
	SetTickCallback(callback func(deltaTime float32))

	// SetRenderCallback registers the function called once per window each step with the
	// window's overlay.
	//
	// Parameters:
	//   - callback: function receiving the window index and its overlay
	SetRenderCallback(callback func(windowIndex int, lines *overlay.Lines))

	// Run steps the engine at the tick rate until ctx is done, the poll callback returns false,
	// or Quit is called. Every tool is shut down before Run returns.
	//
	// Parameters:
	//   - ctx: cancels the loop
	//
	// Returns:
	//   - error: ctx.Err() if the context ended the loop, nil otherwise
	Run(ctx context.Context) error

	// Quit signals Run to stop.
	// Safe to call multiple times; subsequent calls are no-ops.
	Quit()
}

var _ Engine = &engine{}

// NewEngine creates a new Engine for env.
// Panics if env is nil.
//
// Parameters:
//   - env: the environment to drive
//   - options: functional options for engine configuration (settings, tick rate, profiling, etc.)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(env environment.Environment, options ...EngineBuilderOption) Engine {
	if env == nil {
		panic("engine: NewEngine requires a non-nil Environment")
	}
	e := &engine{
		mu:               &sync.Mutex{},
		env:              env,
		eventBuffer:      256,
		tickRateChannel:  make(chan time.Duration, 1),
		quitChannel:      make(chan struct{}),
		profiler:         profiler.NewProfiler(time.Second),
		profilingEnabled: false,
		engineTickRate:   time.Second / 60,
	}

	for _, opt := range options {
		opt(e)
	}

	if e.settings == nil {
		e.settings = config.NewFile()
	}
	e.events = make(chan Event, e.eventBuffer)
	e.tools = tool.NewManager(env, e.settings)
	return e
}

func (e *engine) Environment() environment.Environment {
	return e.env
}

func (e *engine) Tools() tool.Manager {
	return e.tools
}

func (e *engine) Settings() *config.File {
	return e.settings
}

func (e *engine) Post(ev Event) bool {
	select {
	case e.events <- ev:
		return true
	default:
		n := e.dropped.Add(1)
		log.Warn().Uint64("dropped", n).Msgf("engine: event queue full, dropping %T", ev)
		return false
	}
}

func (e *engine) Step(dt float32) {
	e.drainEvents()

	e.mu.Lock()
	tickCallback := e.tickCallback
	renderCallback := e.renderCallback
	profiling := e.profilingEnabled
	e.mu.Unlock()

	if tickCallback != nil {
		tickCallback(dt)
	}

	e.tools.Frame()

	n := e.env.NumWindows()
	e.mu.Lock()
	for len(e.overlays) < n {
		e.overlays = append(e.overlays, &overlay.Lines{})
	}
	overlays := e.overlays[:n]
	e.mu.Unlock()

	for i, lines := range overlays {
		lines.Reset()
		e.tools.Display(i, lines)
		if renderCallback != nil {
			renderCallback(i, lines)
		}
	}

	e.steps.Add(1)
	if profiling && e.profiler != nil {
		e.profiler.Tick()
	}
}

// drainEvents applies every queued event without blocking.
// Button and valuator changes reach the tools only when the device state actually changed.
func (e *engine) drainEvents() {
	for {
		select {
		case ev := <-e.events:
			e.apply(ev)
		default:
			return
		}
	}
}

func (e *engine) apply(ev Event) {
	switch ev := ev.(type) {
	case ButtonEvent:
		if ev.Device != nil && ev.Device.SetButtonState(ev.Index, ev.Pressed) {
			e.tools.ButtonChanged(ev.Device, ev.Index, ev.Pressed)
		}
	case ValuatorEvent:
		if ev.Device != nil && ev.Device.SetValuatorValue(ev.Index, ev.Value) {
			e.tools.ValuatorChanged(ev.Device, ev.Index, ev.Device.ValuatorValue(ev.Index))
		}
	case PoseEvent:
		if ev.Device != nil {
			ev.Device.SetTransformation(ev.Transform)
		}
	case RayEvent:
		if ev.Device != nil {
			ev.Device.SetDeviceRay(ev.Direction, ev.Start)
		}
	}
}

func (e *engine) Overlay(windowIndex int) *overlay.Lines {
	e.mu.Lock()
	defer e.mu.Unlock()
	if windowIndex < 0 || windowIndex >= len(e.overlays) {
		return nil
	}
	return e.overlays[windowIndex]
}

func (e *engine) Steps() uint64 {
	return e.steps.Load()
}

func (e *engine) Dropped() uint64 {
	return e.dropped.Load()
}

func (e *engine) Run(ctx context.Context) error {
	defer e.tools.Shutdown()

	e.mu.Lock()
	rate := e.engineTickRate
	e.mu.Unlock()

	ticker := time.NewTicker(rate)
	defer ticker.Stop()

	log.Info().Dur("tick_rate", rate).Int("tools", len(e.tools.Tools())).Msg("engine running")
	lastTick := time.Now()

	for {
		select {
		case <-ctx.Done():
			log.Info().Uint64("steps", e.Steps()).Msg("engine stopped by context")
			return ctx.Err()
		case <-e.quitChannel:
			log.Info().Uint64("steps", e.Steps()).Msg("engine stopped")
			return nil
		case newRate := <-e.tickRateChannel:
			ticker.Reset(newRate)
		case <-ticker.C:
			e.mu.Lock()
			poll := e.pollCallback
			e.mu.Unlock()
			if poll != nil && !poll() {
				e.Quit()
				continue
			}

			now := time.Now()
			dt := float32(now.Sub(lastTick).Seconds())
			lastTick = now
			e.Step(dt)
		}
	}
}

// Quit signals Run to stop.
// Safe to call multiple times; subsequent calls are no-ops due to sync.Once.
func (e *engine) Quit() {
	e.quitOnce.Do(func() {
		close(e.quitChannel)
	})
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.profilingEnabled = true
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.profilingEnabled = false
}

// SetTickRate sets the step rate used by Run.
// A pending rate change that Run has not picked up yet is replaced.
func (e *engine) SetTickRate(fps float64) {
	if fps <= 0 {
		fps = 60
	}
	newRate := time.Duration(float64(time.Second) / fps)

	e.mu.Lock()
	e.engineTickRate = newRate
	e.mu.Unlock()

	select {
	case e.tickRateChannel <- newRate:
	default:
		select {
		case <-e.tickRateChannel:
		default:
		}
		select {
		case e.tickRateChannel <- newRate:
		default:
		}
	}
}

func (e *engine) SetPollCallback(callback func() bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.pollCallback = callback
}

func (e *engine) SetTickCallback(callback func(deltaTime float32)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.tickCallback = callback
}

func (e *engine) SetRenderCallback(callback func(windowIndex int, lines *overlay.Lines)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.renderCallback = callback
}
