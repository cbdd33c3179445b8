package cmd

import (
	"fmt"

	"github.com/guettli/eventqueue/pkg/evdevsource"
	"github.com/spf13/cobra"
)

func init() {
	devicesCmd := &cobra.Command{
		Use:   "devices",
		Short: "List the evdev devices which can be opened",
		RunE: func(cmd *cobra.Command, args []string) error {
			devices, err := evdevsource.ListDevices(log, evdevsource.DevInput)
			if err != nil {
				return err
			}
			for _, d := range devices {
				kind := ""
				switch {
				case d.IsGamePad:
					kind = "game pad"
				case d.IsKeyboard:
					kind = "keyboard"
				case d.IsPointingDevice:
					kind = "pointing device"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", d.String(), kind)
			}
			return nil
		},
		Args:                  cobra.NoArgs,
		DisableFlagsInUseLine: true,
	}
	rootCmd.AddCommand(devicesCmd)
}
