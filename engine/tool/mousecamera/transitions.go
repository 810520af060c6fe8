package mousecamera

// Button slots of the mouse camera tool.
const (
	ButtonRotate      = 0
	ButtonPan         = 1
	ButtonDollySwitch = 2
	ButtonReset       = 3

	ValuatorZoom = 0
)

// Event is an input event that can change the interaction mode.
type Event interface {
	isEvent()
}

// RotateButton is a press or release of the rotate button.
type RotateButton struct{ Pressed bool }

// PanButton is a press or release of the pan button.
type PanButton struct{ Pressed bool }

// DollySwitch carries the new dolly flag: the zoom/dolly switch state XOR the invert setting.
type DollySwitch struct{ Dolly bool }

// ValuatorChange is a new quick zoom/dolly valuator value.
type ValuatorChange struct{ Value float64 }

func (RotateButton) isEvent()   {}
func (PanButton) isEvent()      {}
func (DollySwitch) isEvent()    {}
func (ValuatorChange) isEvent() {}

// Transition returns the mode following m after ev. Events that do not apply to m leave it
// unchanged. Modes entered from a button take their first sample from sample.
//
// Parameters:
//   - m: the current mode
//   - ev: the input event
//   - dolly: the dolly flag in effect (for DollySwitch events, the flag carried by the event)
//   - sample: takes the current interaction sample
//
// Returns:
//   - Mode: the next mode
func Transition(m Mode, ev Event, dolly bool, sample func() Sample) Mode {
	switch e := ev.(type) {
	case RotateButton:
		if e.Pressed {
			switch m.(type) {
			case Idle, Spinning:
				return Rotating{Last: sample()}
			case Panning:
				return zoom(dolly, sample)
			}
		} else {
			switch m.(type) {
			case Rotating:
				return Idle{}
			case Dollying, Scaling:
				return Panning{Last: sample()}
			}
		}

	case PanButton:
		if e.Pressed {
			switch m.(type) {
			case Idle, Spinning:
				return Panning{Last: sample()}
			case Rotating:
				return zoom(dolly, sample)
			}
		} else {
			switch m.(type) {
			case Panning:
				return Idle{}
			case Dollying, Scaling:
				return Rotating{Last: sample()}
			}
		}

	case DollySwitch:
		if e.Dolly {
			switch mm := m.(type) {
			case Scaling:
				return Dollying{Last: sample()}
			case ScalingWheel:
				return DollyingWheel(mm)
			}
		} else {
			switch mm := m.(type) {
			case Dollying:
				return Scaling{Last: sample()}
			case DollyingWheel:
				return ScalingWheel(mm)
			}
		}

	case ValuatorChange:
		if e.Value != 0 {
			switch m.(type) {
			case Idle, Spinning:
				if dolly {
					return DollyingWheel{Value: e.Value}
				}
				return ScalingWheel{Value: e.Value}
			case DollyingWheel:
				return DollyingWheel{Value: e.Value}
			case ScalingWheel:
				return ScalingWheel{Value: e.Value}
			}
		} else {
			switch m.(type) {
			case DollyingWheel, ScalingWheel:
				return Idle{}
			}
		}
	}
	return m
}

func zoom(dolly bool, sample func() Sample) Mode {
	if dolly {
		return Dollying{Last: sample()}
	}
	return Scaling{Last: sample()}
}
