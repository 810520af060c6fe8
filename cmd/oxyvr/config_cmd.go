package main

import (
	"github.com/Carmen-Shannon/oxy-vr/engine/config"
	"github.com/Carmen-Shannon/oxy-vr/engine/environment"
	"github.com/Carmen-Shannon/oxy-vr/engine/tool/mousecamera"
	"github.com/spf13/cobra"
)

func configCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective mouse camera settings as YAML",
		Long: `config merges the --config file over the built-in defaults and prints the complete
tools.MouseCameraTool section, ready to be edited and passed back with --config.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings(opts)
			if err != nil {
				return err
			}
			env, err := environment.FromConfig(settings.Section("environment"))
			if err != nil {
				return err
			}

			cfg := mousecamera.DefaultConfiguration(env.UISize() / env.DisplaySize())
			cfg.Read(settings.Section("tools").Sub(mousecamera.ClassName))

			out := config.NewFile()
			cfg.Write(out.Section("tools").Sub(mousecamera.ClassName))
			_, err = out.WriteTo(cmd.OutOrStdout())
			return err
		},
	}
}
