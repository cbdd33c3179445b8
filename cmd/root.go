package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/guettli/eventqueue/pkg/config"
	"github.com/guettli/eventqueue/pkg/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	debug        bool
	configFile   string
	outputFormat string
	log          = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "eventqueue",
	Short: "eventqueue reads Linux input devices and prints the ordered, normalized event queue as JSON lines.",
	Long:  `eventqueue turns evdev events into HID values, builds event queues (modifiers first, caps lock and pointing buttons tracked) and prints every entry as one JSON line.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log = logger.New(debug)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync(log)
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "log debug messages")
}

func addConfigFlag(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&configFile, "config", "c", "", "yaml file with device settings")
}

func addFormatFlag(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&outputFormat, "format", "f", formatJSON, "output format: json or text")
}

// loadConfig returns nil if no config file was given.
func loadConfig() (*config.Config, error) {
	if configFile == "" {
		return nil, nil
	}
	return config.LoadYamlFile(configFile)
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
