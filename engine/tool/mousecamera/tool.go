package mousecamera

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-vr/engine/config"
	"github.com/Carmen-Shannon/oxy-vr/engine/rig"
	"github.com/Carmen-Shannon/oxy-vr/engine/tool"
	"github.com/rs/zerolog/log"
)

// Tool is a mouse camera tool.
type Tool interface {
	tool.Tool

	// Configuration returns the tool's effective settings.
	Configuration() Configuration

	// Configure overrides the tool's settings from an instance section.
	// Takes effect on the next activation for WindowIndex and ApplyScale.
	//
	// Parameters:
	//   - s: the instance configuration section
	Configure(s config.Section)

	// StoreState writes the tool's settings into an instance section.
	//
	// Parameters:
	//   - s: the instance configuration section
	StoreState(s config.Section)

	// Active reports whether the tool currently controls its window.
	Active() bool

	// Mode returns the current interaction mode.
	Mode() Mode

	// Dolly returns the current dolly flag.
	Dolly() bool

	// State returns the accumulated rig state. Only meaningful while active.
	State() RigState
}

type mouseCameraTool struct {
	mu *sync.Mutex

	factory    *factory
	assignment tool.InputAssignment
	config     Configuration

	lease    *rig.Lease
	composer *composer
	state    RigState
	mode     Mode
	dolly    bool
}

var _ Tool = &mouseCameraTool{}

func newTool(f *factory, assignment tool.InputAssignment, cfg Configuration) *mouseCameraTool {
	return &mouseCameraTool{
		mu:         &sync.Mutex{},
		factory:    f,
		assignment: assignment,
		config:     cfg,
		mode:       Idle{},
		dolly:      cfg.InvertDolly,
	}
}

func (t *mouseCameraTool) Factory() tool.Factory {
	return t.factory
}

func (t *mouseCameraTool) Assignment() tool.InputAssignment {
	return t.assignment
}

func (t *mouseCameraTool) Configuration() Configuration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.config
}

func (t *mouseCameraTool) Configure(s config.Section) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.config.Read(s)
}

func (t *mouseCameraTool) StoreState(s config.Section) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.config.Write(s)
}

func (t *mouseCameraTool) Active() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lease != nil
}

func (t *mouseCameraTool) Mode() Mode {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.mode
}

func (t *mouseCameraTool) Dolly() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.dolly
}

func (t *mouseCameraTool) State() RigState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

func (t *mouseCameraTool) Initialize() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.lease != nil {
		return nil
	}

	env := t.factory.manager.Environment()
	lease, err := rig.Acquire(env, t.config.WindowIndex)
	if err != nil {
		return fmt.Errorf("mousecamera: %w", err)
	}
	t.lease = lease
	t.composer, t.state = newComposer(lease, env.Up(), env.Forward(), t.config.ApplyScale)
	t.mode = Idle{}
	t.dolly = t.config.InvertDolly

	log.Info().
		Int("window", lease.WindowIndex()).
		Float64("azimuth", t.state.Azimuth).
		Float64("elevation", t.state.Elevation).
		Msg("mouse camera activated")
	return nil
}

func (t *mouseCameraTool) Deinitialize() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.lease == nil {
		return
	}
	windowIndex := t.lease.WindowIndex()
	t.lease.Release()
	t.lease = nil
	t.composer = nil
	t.mode = Idle{}
	log.Info().Int("window", windowIndex).Msg("mouse camera deactivated")
}

func (t *mouseCameraTool) ButtonCallback(slot int, pressed bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.lease == nil {
		return
	}

	var ev Event
	switch slot {
	case ButtonRotate:
		ev = RotateButton{Pressed: pressed}
	case ButtonPan:
		ev = PanButton{Pressed: pressed}
	case ButtonDollySwitch:
		t.dolly = pressed != t.config.InvertDolly
		ev = DollySwitch{Dolly: t.dolly}
	case ButtonReset:
		if pressed {
			t.composer.apply(t.state)
			log.Debug().Msg("camera state re-applied")
		}
		return
	default:
		return
	}
	t.transition(ev)
}

func (t *mouseCameraTool) ValuatorCallback(slot int, value float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.lease == nil || slot != ValuatorZoom {
		return
	}
	t.transition(ValuatorChange{Value: value})
}

func (t *mouseCameraTool) Frame() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.lease == nil {
		return
	}
	switch t.mode.(type) {
	case Idle, Spinning:
		return
	}

	in := FrameInput{
		Head:            t.lease.Viewer().HeadPosition(),
		ScreenTransform: t.lease.Screen().Transform(),
		ScreenDiagonal:  t.composer.diagonal(),
	}
	if tracksPointer(t.mode) {
		in.Sample = t.sample()
	}
	next, changed := Step(t.mode, &t.state, in, t.config)
	t.mode = next
	if changed {
		t.composer.apply(t.state)
	}
}

// transition applies ev to the current mode. Caller must hold the mutex.
func (t *mouseCameraTool) transition(ev Event) {
	prev := t.mode
	t.mode = Transition(prev, ev, t.dolly, t.sample)
	if prev.Kind() != t.mode.Kind() {
		log.Debug().Stringer("from", prev.Kind()).Stringer("to", t.mode.Kind()).Msg("camera mode changed")
	} else {
		log.Trace().Stringer("mode", prev.Kind()).Interface("event", ev).Msg("camera mode unchanged")
	}
}

// sample intersects the rotate button device's ray with the controlled screen. Caller must hold the mutex.
func (t *mouseCameraTool) sample() Sample {
	return InteractionSample(t.assignment.ButtonDeviceRay(ButtonRotate), t.lease.Screen().Transform())
}
