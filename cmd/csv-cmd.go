package cmd

import (
	"fmt"
	"time"

	"github.com/guettli/eventqueue/pkg/evdevsource"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func init() {
	csvCmd := &cobra.Command{
		Use:   "csv [device]",
		Short: "Write the raw evdev events of a device in CSV format",
		Long: `Write the raw evdev events of a device in CSV format. The output can be
used as input for the 'replay' sub-command.
If no device was given, then the program listens to all devices and asks for a key press.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) > 0 {
				path = args[0]
			} else {
				p, err := evdevsource.FindDevice(cmd.Context(), log, evdevsource.DevInput)
				if err != nil {
					return err
				}
				path = p
			}
			dev, d, err := evdevsource.OpenDevice(path)
			if err != nil {
				return err
			}
			defer dev.Close()
			log.Info("reading", zap.String("path", path), zap.String("name", d.Name))

			// ReadOne blocks. Closing the device ends it.
			ctx := cmd.Context()
			go func() {
				<-ctx.Done()
				dev.Close()
			}()

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "#Reading %s %s\n", d.Name, time.Now().String())
			for {
				ev, err := dev.ReadOne()
				if err != nil {
					if ctx.Err() != nil {
						return nil
					}
					return err
				}
				if _, err := fmt.Fprint(out, evdevsource.FormatCsvLine(*ev)); err != nil {
					return err
				}
			}
		},
		Args:                  cobra.RangeArgs(0, 1),
		DisableFlagsInUseLine: true,
	}
	rootCmd.AddCommand(csvCmd)
}
