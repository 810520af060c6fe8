package main

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"github.com/Carmen-Shannon/oxy-vr/common"
	"github.com/Carmen-Shannon/oxy-vr/engine"
	"github.com/Carmen-Shannon/oxy-vr/engine/camera"
	"github.com/Carmen-Shannon/oxy-vr/engine/overlay"
	"github.com/Carmen-Shannon/oxy-vr/engine/platform"
	"github.com/Carmen-Shannon/oxy-vr/engine/renderer"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func runCmd(opts *rootOptions) *cobra.Command {
	var (
		tickRate float64
		vsync    bool
		software bool
		profile  bool
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Open the environment in a desktop window",
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings(opts)
			if err != nil {
				return err
			}
			d, err := newDesk(settings, engine.WithTickRate(tickRate), engine.WithProfiling(profile))
			if err != nil {
				return err
			}

			win := d.env.Window(0)
			host, err := platform.NewHost(win, d.engine, platform.WithMouse(d.mouse))
			if err != nil {
				return err
			}
			defer host.Close()

			presentMode := renderer.PresentModeUncapped
			if vsync {
				presentMode = renderer.PresentModeVSync
			}
			width, height := host.FramebufferSize()
			r, err := renderer.NewRenderer(renderer.BackendTypeWGPU, host.SurfaceDescriptor(), width, height,
				renderer.WithPresentMode(presentMode),
				renderer.WithClearColor(d.env.BackgroundColor()),
				renderer.WithForceSoftwareRenderer(software),
			)
			if err != nil {
				return err
			}
			defer r.Release()

			cam := camera.NewCamera(win.Screen(common.ChannelLeft), win.Viewer(common.ChannelLeft),
				camera.WithPlanes(d.env.FrontPlaneDist(), d.env.BackPlaneDist()))

			host.SetResizeCallback(func(width, height int) {
				if err := r.Resize(width, height); err != nil {
					log.Error().Err(err).Msg("resize failed")
				}
			})
			d.engine.SetPollCallback(host.Poll)
			d.engine.SetRenderCallback(func(windowIndex int, lines *overlay.Lines) {
				if windowIndex != 0 {
					return
				}
				cam.Update()
				if err := r.DrawFrame(cam, lines); err != nil {
					log.Error().Err(err).Msg("draw failed")
				}
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			if err := d.engine.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			log.Info().Uint64("frames", r.Frames()).Msg("window closed")
			return nil
		},
	}
	cmd.Flags().Float64Var(&tickRate, "tick-rate", 60, "engine steps per second")
	cmd.Flags().BoolVar(&vsync, "vsync", true, "wait for vertical sync when presenting")
	cmd.Flags().BoolVar(&software, "software", false, "force the software (fallback) GPU adapter")
	cmd.Flags().BoolVar(&profile, "profile", false, "log engine stats once per second")
	return cmd
}
