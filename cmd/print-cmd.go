package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/guettli/eventqueue/pkg/evdevsource"
	"github.com/guettli/eventqueue/pkg/types"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var grab bool

func init() {
	printCmd := &cobra.Command{
		Use:   "print [device...]",
		Short: "Read evdev devices and print the entries of the event queues as JSON lines",
		Long: `Read evdev devices and print the entries of the event queues as JSON lines.
If no device was given, then the program listens to all devices and asks for a key press.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validFormat(outputFormat); err != nil {
				return err
			}
			c, err := loadConfig()
			if err != nil {
				return err
			}
			if len(args) == 0 {
				path, err := evdevsource.FindDevice(cmd.Context(), log, evdevsource.DevInput)
				if err != nil {
					return err
				}
				log.Info("using device", zap.String("path", path))
				args = []string{path}
			}

			var (
				sources []*source
				lastID  = types.DeviceID(c.MaxDeviceID())
			)
			for _, path := range args {
				dev, d, err := evdevsource.OpenDevice(path)
				if err != nil {
					return err
				}
				defer dev.Close()
				if grab {
					if err := dev.Grab(); err != nil {
						return fmt.Errorf("failed to grab %q: %w", path, err)
					}
				}
				s := newSource(c, d, dev, &lastID)
				log.Info("reading", zap.String("path", path), zap.String("name", d.Name),
					zap.Uint64("device_id", uint64(s.props.DeviceID)))
				sources = append(sources, s)
			}
			return ignoreCanceled(newPipeline(log, cmd.OutOrStdout(), outputFormat).run(cmd.Context(), sources))
		},
		Args: cobra.ArbitraryArgs,
	}
	addConfigFlag(printCmd)
	addFormatFlag(printCmd)
	printCmd.Flags().BoolVarP(&grab, "grab", "g", false, "grab the devices, so that other programs do not get the events")
	rootCmd.AddCommand(printCmd)
}

// ignoreCanceled treats an interrupted live capture as a normal end.
func ignoreCanceled(err error) error {
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
