package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// baselineCmd implements the 'obra baseline' command group.
func baselineCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "baseline",
		Short: "Capture and list schedule baselines",
	}

	cmd.AddCommand(
		baselineCaptureCmd(),
		baselineListCmd(),
	)

	return cmd
}

// baselineCaptureCmd implements 'obra baseline capture'.
func baselineCaptureCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "capture [label]",
		Short: "Snapshot the current schedule",
		Args:  cobra.ArbitraryArgs,
		Run: func(_ *cobra.Command, args []string) {
			b, err := getStore().CaptureBaseline(strings.Join(args, " "), now())
			if err != nil {
				printError(err)
			}
			printOutput(formatter.FormatMessage(fmt.Sprintf("Captured baseline %s (%d tasks)", b.ID, b.TaskCount)))
		},
	}
}

// baselineListCmd implements 'obra baseline list'.
func baselineListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List captured baselines, most recent first",
		Run: func(_ *cobra.Command, _ []string) {
			baselines, err := getStore().ListBaselines()
			if err != nil {
				printError(err)
			}
			printOutput(formatter.FormatBaselines(baselines))
		},
	}
}
