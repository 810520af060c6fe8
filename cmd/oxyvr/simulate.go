package main

import (
	"fmt"
	"io"

	"github.com/Carmen-Shannon/oxy-vr/common"
	"github.com/Carmen-Shannon/oxy-vr/engine"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/spf13/cobra"
)

// simulation is a scripted mouse session: a drag with one button from the window center,
// optionally held still before release, followed by wheel clicks.
type simulation struct {
	button int
	dragX  float64
	dragY  float64
	steps  int
	hold   int
	wheel  int
	shift  bool
}

func simulateCmd(opts *rootOptions) *cobra.Command {
	sim := simulation{}
	var pan bool
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run a scripted mouse session headless and print the resulting rig",
		Long: `simulate drives the mouse camera without a window. The cursor starts at the window
center, drags by (--dx, --dy) window widths/heights over --steps steps with the left button
(or the right button with --pan), keeps the button down for --hold more steps without moving,
then turns the wheel --wheel clicks. The mouse is re-aimed at the cursor before every step, as
the desktop window does.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings(opts)
			if err != nil {
				return err
			}
			d, err := newDesk(settings)
			if err != nil {
				return err
			}
			defer d.engine.Tools().Shutdown()

			sim.button = common.MouseSlotLeft
			if pan {
				sim.button = common.MouseSlotRight
			}
			sim.run(d)
			return printRig(cmd.OutOrStdout(), d)
		},
	}
	cmd.Flags().Float64Var(&sim.dragX, "dx", 0.25, "horizontal drag in window widths")
	cmd.Flags().Float64Var(&sim.dragY, "dy", 0, "vertical drag in window heights (down is positive)")
	cmd.Flags().IntVar(&sim.steps, "steps", 10, "engine steps the drag is spread over")
	cmd.Flags().IntVar(&sim.hold, "hold", 0, "steps the button stays down after the drag with the cursor still")
	cmd.Flags().IntVar(&sim.wheel, "wheel", 0, "wheel clicks after the drag (negative scrolls down)")
	cmd.Flags().BoolVar(&pan, "pan", false, "drag with the pan button instead of rotate")
	cmd.Flags().BoolVar(&sim.shift, "shift", false, "hold shift during the session (dolly instead of zoom)")
	return cmd
}

func (s simulation) run(d *desk) {
	const dt = float32(1.0 / 60)
	win := d.env.Window(0)
	width, height := win.Width(), win.Height()
	cx, cy := float64(width)/2, float64(height)/2

	cur := engine.NewCursor(d.mouse, win)
	moveTo := func(x, y float64) {
		cur.Move(x, y, width, height)
	}
	step := func() {
		cur.Sync(d.engine)
		d.engine.Step(dt)
	}
	press := func(slot int, pressed bool) {
		d.engine.Post(engine.ButtonEvent{Device: d.mouse, Index: slot, Pressed: pressed})
	}

	if s.shift {
		press(common.MouseSlotShift, true)
	}
	moveTo(cx, cy)
	step()

	if s.steps > 0 && (s.dragX != 0 || s.dragY != 0) {
		press(s.button, true)
		step()
		for i := 1; i <= s.steps; i++ {
			f := float64(i) / float64(s.steps)
			moveTo(cx+s.dragX*float64(width)*f, cy+s.dragY*float64(height)*f)
			step()
		}
		for range s.hold {
			step()
		}
		press(s.button, false)
		step()
	}

	click := 1.0
	clicks := s.wheel
	if clicks < 0 {
		click, clicks = -1, -clicks
	}
	for range clicks {
		d.engine.Post(engine.ValuatorEvent{Device: d.mouse, Index: common.MouseValuatorWheel, Value: click})
		step()
		d.engine.Post(engine.ValuatorEvent{Device: d.mouse, Index: common.MouseValuatorWheel, Value: 0})
		step()
	}
}

func printRig(w io.Writer, d *desk) error {
	state := d.camera.State()
	win := d.env.Window(0)
	scr := win.Screen(common.ChannelLeft)
	sw, sh := scr.Size()
	lines := []string{
		fmt.Sprintf("steps      %d", d.engine.Steps()),
		fmt.Sprintf("mode       %s", d.camera.Mode().Kind()),
		fmt.Sprintf("dolly      %t", d.camera.Dolly()),
		fmt.Sprintf("azimuth    %.4f", state.Azimuth),
		fmt.Sprintf("elevation  %.4f", state.Elevation),
		fmt.Sprintf("scale      %.4f", state.Scale),
		fmt.Sprintf("center     %s", formatVec(state.ScreenCenter)),
		fmt.Sprintf("screen     %s size %.4f x %.4f", formatVec(scr.Center()), sw, sh),
		fmt.Sprintf("head       %s", formatVec(win.Viewer(common.ChannelLeft).HeadPosition())),
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func formatVec(v mgl64.Vec3) string {
	return fmt.Sprintf("(%.4f, %.4f, %.4f)", v[0], v[1], v[2])
}
