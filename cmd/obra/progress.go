package main

import (
	"github.com/spf13/cobra"

	"github.com/hugogabrielsalles97-collab/onstructneon-controle-de-obras-sub001/internal/projection"
	"github.com/hugogabrielsalles97-collab/onstructneon-controle-de-obras-sub001/internal/report"
	"github.com/hugogabrielsalles97-collab/onstructneon-controle-de-obras-sub001/internal/timeline"
)

// curveCmd implements 'obra curve'.
func curveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "curve",
		Short: "Show the planned vs actual S-curve",
		Run: func(_ *cobra.Command, _ []string) {
			tasks, _ := loadAll("")
			printOutput(formatter.FormatSeries(projection.Series(tasks, civilNow())))
		},
	}
}

// timelineCmd implements 'obra timeline'.
func timelineCmd() *cobra.Command {
	var baseline string
	cmd := &cobra.Command{
		Use:   "timeline",
		Short: "Show the Gantt timeline",
		Run: func(_ *cobra.Command, _ []string) {
			tasks, baselines := loadAll(baseline)
			printOutput(formatter.FormatLayout(timeline.Build(tasks, baselines, civilNow())))
		},
	}
	cmd.Flags().StringVarP(&baseline, "baseline", "b", "", "Overlay a baseline snapshot (ID or 'latest')")
	return cmd
}

// summaryCmd implements 'obra summary'.
func summaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show today's planned vs actual progress",
		Run: func(_ *cobra.Command, _ []string) {
			tasks, _ := loadAll("")
			at := civilNow()
			printOutput(formatter.FormatSummary(report.Summarize(tasks, projection.Series(tasks, at), at)))
		},
	}
}
