package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/guettli/eventqueue/pkg/config"
	"github.com/guettli/eventqueue/pkg/evdevsource"
	"github.com/guettli/eventqueue/pkg/types"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type replayOptions struct {
	deviceID uint64
	name     string
	gamePad  bool
	format   string
}

var replayOpts replayOptions

func init() {
	replayCmd := &cobra.Command{
		Use:   "replay file.csv",
		Short: "Build the event queues from a CSV log and print the entries as JSON lines",
		Long: `Build the event queues from a CSV log and print the entries as JSON lines.
The log can be created with the 'csv' sub-command.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validFormat(outputFormat); err != nil {
				return err
			}
			c, err := loadConfig()
			if err != nil {
				return err
			}
			replayOpts.format = outputFormat
			return replay(cmd, c, args[0], replayOpts)
		},
		Args: cobra.ExactArgs(1),
	}
	addConfigFlag(replayCmd)
	addFormatFlag(replayCmd)
	replayCmd.Flags().Uint64Var(&replayOpts.deviceID, "device-id", 1, "device_id of the entries")
	replayCmd.Flags().StringVar(&replayOpts.name, "name", "", "device name used to find the settings in the config (default: the file name)")
	replayCmd.Flags().BoolVar(&replayOpts.gamePad, "game-pad", false, "treat the device as a game pad")
	rootCmd.AddCommand(replayCmd)
}

func replay(cmd *cobra.Command, c *config.Config, csvPath string, opts replayOptions) error {
	file, err := os.Open(csvPath)
	if err != nil {
		return fmt.Errorf("failed to open %q: %w", csvPath, err)
	}
	defer file.Close()

	name := opts.name
	if name == "" {
		name = filepath.Base(csvPath)
	}
	return replayReader(cmd, c, file, name, csvPath, opts)
}

func replayReader(cmd *cobra.Command, c *config.Config, r io.Reader, name, path string, opts replayOptions) error {
	settings, found := c.Lookup(name, path)
	props := settings.DeviceProperties(types.DeviceProperties{
		DeviceID:  types.DeviceID(opts.deviceID),
		Product:   name,
		Path:      path,
		IsGamePad: opts.gamePad,
	})
	log.Debug("replay",
		zap.String("name", name),
		zap.Bool("configured", found),
		zap.Uint64("device_id", uint64(props.DeviceID)))

	s := &source{
		props:  props,
		device: settings,
		reader: evdevsource.NewCsvEventReader(r),
	}
	return newPipeline(log, cmd.OutOrStdout(), opts.format).run(cmd.Context(), []*source{s})
}
