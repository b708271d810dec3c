// orient - sensor orientation frames from the terminal
//
// Builds an UP/FRONT/RIGHT frame from two accelerometer readings (device
// resting upright, then tilted forward) and decomposes further readings
// into signed magnitudes along that frame.
//
// Commands:
//
//	frame      Print the frame built from --up and --up-front
//	decompose  Decompose --vector in the frame
//	batch      Decompose every row of a CSV file
//	snapshot   Render the frame to a PNG image
//	export     Write the frame as a glTF binary (.glb)
//	view       Interactive terminal viewer
package main

import (
	"context"
	"os"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/taigrr/orient/internal/config"
	"github.com/taigrr/orient/internal/logging"
)

func main() {
	root := newRootCmd(logging.NewSlogManager())
	if err := fang.Execute(
		context.Background(),
		root,
		fang.WithNotifySignal(os.Interrupt, syscall.SIGTERM),
	); err != nil {
		os.Exit(1)
	}
}

// newRootCmd builds the command tree. Config and logging are set up in
// PersistentPreRunE so every subcommand sees them.
func newRootCmd(logs *logging.SlogManager) *cobra.Command {
	root := &cobra.Command{
		Use:   "orient",
		Short: "Build orientation frames from sensor readings and decompose vectors in them",
		Long: `orient builds an UP/FRONT/RIGHT reference frame from two readings of a
three-axis sensor: one taken with the device upright (--up) and one taken
after tilting it forward (--up-front). Further readings are decomposed into
signed magnitudes along that frame.`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			flags := cmd.Flags()
			dir, err := flags.GetString("config")
			if err != nil {
				return err
			}
			if err := config.Load(dir); err != nil {
				return err
			}
			if err := bindFlags(cmd, map[string]string{
				"logLevel":  "log-level",
				"logFormat": "log-format",
			}); err != nil {
				return err
			}

			logs.Setup(cmd.ErrOrStderr(), config.GetString("logLevel"), config.GetString("logFormat"))
			logs.Logger().Debug("config loaded", "dir", dir, "command", cmd.Name())
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.String("config", "", "directory containing "+config.FileName)
	pf.String("log-level", "info", "log level (debug, info, warn, error)")
	pf.String("log-format", "text", "log format (text, json)")

	root.AddCommand(
		newFrameCmd(),
		newDecomposeCmd(),
		newBatchCmd(logs),
		newSnapshotCmd(logs),
		newExportCmd(logs),
		newViewCmd(logs),
	)

	return root
}

// bindFlags lets the named flags of cmd override config keys when set.
func bindFlags(cmd *cobra.Command, keys map[string]string) error {
	for key, name := range keys {
		f := cmd.Flags().Lookup(name)
		if f == nil {
			continue
		}
		if err := config.BindFlag(key, f); err != nil {
			return err
		}
	}
	return nil
}
