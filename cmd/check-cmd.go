package cmd

import (
	"bufio"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/guettli/eventqueue/pkg/eventqueue"
	"github.com/guettli/eventqueue/pkg/types"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func init() {
	checkCmd := &cobra.Command{
		Use:   "check file.jsonl",
		Short: "Parse a JSON lines entry log and print a summary",
		Long: `Parse a JSON lines entry log (the output of 'print' or 'replay') and print a summary.
The first malformed line aborts the check.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open %q: %w", args[0], err)
			}
			defer file.Close()
			return check(file, cmd.OutOrStdout())
		},
		Args:                  cobra.ExactArgs(1),
		DisableFlagsInUseLine: true,
	}
	rootCmd.AddCommand(checkCmd)
}

// check replays the entries into a queue, so the summary shows the state
// the entries leave behind.
func check(r io.Reader, out io.Writer) error {
	q := eventqueue.NewQueue()
	counts := map[eventqueue.Type]int{}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		entry, err := eventqueue.MakeEntryFromJSON(line)
		if err != nil {
			return fmt.Errorf("line %d: %w", lineNumber, err)
		}
		counts[entry.GetEvent().GetType()]++
		q.PushBackEntry(entry)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading line %d: %w", lineNumber+1, err)
	}

	log.Debug("checked", zap.Int("lines", lineNumber), zap.Int("entries", q.Len()))
	fmt.Fprintf(out, "entries: %d\n", q.Len())
	for t := eventqueue.TypeMomentarySwitchEvent; t <= eventqueue.TypeDeviceKeysAndPointingButtonsAreReleased; t++ {
		if counts[t] > 0 {
			fmt.Fprintf(out, "  %s: %d\n", t, counts[t])
		}
	}
	flags := q.GetModifierFlagManager().MakeModifierFlags().ToSlice()
	slices.Sort(flags)
	fmt.Fprintf(out, "pressed modifier flags: %v\n", flags)
	fmt.Fprintf(out, "pressed pointing buttons: %v\n", q.GetPointingButtonManager().MakeHIDReportButtons())
	env := q.GetManipulatorEnvironment()
	for _, name := range slices.Sorted(maps.Keys(env.GetVariables())) {
		fmt.Fprintf(out, "variable %s: %v\n", name, env.GetVariable(name))
	}
	if a := env.GetFrontmostApplication(); a != (types.Application{}) {
		fmt.Fprintf(out, "frontmost application: %s\n", a.BundleIdentifier)
	}
	return nil
}
