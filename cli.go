package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
)

const version = "0.2.1"

var cfgFile string

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "hyprdock",
		Short:         "Laptop docking daemon for lid-driven monitor switching",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "path to the config file")

	root.AddCommand(
		newInternalCmd(),
		newExternalCmd(),
		newExtendCmd(),
		newMirrorCmd(),
		newSuspendCmd(),
		newServerCmd(),
		newSelectMonitorCmd(),
	)

	return root
}

// newDockFromFlags loads the config and wires a dock against real process
// spawning. Every subcommand goes through here.
func newDockFromFlags() (*dock, string, error) {
	path := cfgFile
	if path == "" {
		var err error
		path, err = defaultConfigPath()
		if err != nil {
			return nil, "", err
		}
	}

	cfg, err := loadConfig(path)
	if err != nil {
		return nil, "", fmt.Errorf("reading config: %w", err)
	}

	slog.Debug("config loaded", "path", path, "monitor_name", cfg.MonitorName)
	return newDock(cfg, execRunner{}), path, nil
}

func newInternalCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "internal",
		Short: "Switch to the internal monitor only",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, _, err := newDockFromFlags()
			if err != nil {
				return err
			}
			return d.internalMonitor()
		},
	}
}

func newExternalCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "external",
		Short: "Switch to the external monitor only",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, _, err := newDockFromFlags()
			if err != nil {
				return err
			}
			return d.externalMonitor()
		},
	}
}

func newExtendCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "extend",
		Short: "Extend the desktop across both monitors",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, _, err := newDockFromFlags()
			if err != nil {
				return err
			}
			return d.extendMonitor()
		},
	}
}

func newMirrorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mirror",
		Short: "Mirror the internal monitor onto the external one",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, _, err := newDockFromFlags()
			if err != nil {
				return err
			}
			return d.mirrorMonitor()
		},
	}
}

func newSuspendCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "suspend",
		Short: "Lock the screen and suspend",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, _, err := newDockFromFlags()
			if err != nil {
				return err
			}
			return d.lockSystem()
		},
	}
}

func newServerCmd() *cobra.Command {
	var upower bool

	cmd := &cobra.Command{
		Use:   "server",
		Short: "Run the docking daemon, handling lid open/close events",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, cfgPath, err := newDockFromFlags()
			if err != nil {
				return err
			}

			go func() {
				if err := watchConfig(cfgPath); err != nil {
					slog.Error("config watcher stopped", "error", err)
				}
			}()

			if upower {
				return d.serveUpower()
			}
			return d.serve()
		},
	}

	cmd.Flags().BoolVar(&upower, "upower", false, "watch upower over dbus instead of the acpid socket")
	return cmd
}

func newSelectMonitorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "select-monitor",
		Short: "Pick the internal monitor name from the current listing",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, _, err := newDockFromFlags()
			if err != nil {
				return err
			}

			name, err := d.selectMonitor()
			if err != nil {
				return err
			}

			fmt.Println(name)
			return nil
		},
	}
}
