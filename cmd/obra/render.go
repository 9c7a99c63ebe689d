package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hugogabrielsalles97-collab/onstructneon-controle-de-obras-sub001/internal/projection"
	"github.com/hugogabrielsalles97-collab/onstructneon-controle-de-obras-sub001/internal/render"
	"github.com/hugogabrielsalles97-collab/onstructneon-controle-de-obras-sub001/internal/timeline"
)

// renderCmd implements the 'obra render' command group.
func renderCmd() *cobra.Command {
	var outFile, stylePath string
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render charts as SVG",
	}
	cmd.PersistentFlags().StringVarP(&outFile, "output", "o", "", "Output SVG file (default stdout)")
	cmd.PersistentFlags().StringVar(&stylePath, "style", "", "Style file (default render.style from config)")

	var baseline string
	gantt := &cobra.Command{
		Use:   "gantt",
		Short: "Render the Gantt timeline",
		Run: func(_ *cobra.Command, _ []string) {
			tasks, baselines := loadAll(baseline)
			layout := timeline.Build(tasks, baselines, civilNow())
			writeSVG(outFile, stylePath, func(w io.Writer, style render.Style) error {
				return render.Gantt(w, layout, style)
			})
		},
	}
	gantt.Flags().StringVarP(&baseline, "baseline", "b", "", "Overlay a baseline snapshot (ID or 'latest')")

	curve := &cobra.Command{
		Use:   "curve",
		Short: "Render the planned vs actual S-curve",
		Run: func(_ *cobra.Command, _ []string) {
			tasks, _ := loadAll("")
			samples := projection.Series(tasks, civilNow())
			writeSVG(outFile, stylePath, func(w io.Writer, style render.Style) error {
				return render.SCurve(w, samples, style)
			})
		},
	}

	cmd.AddCommand(gantt, curve)
	return cmd
}

func writeSVG(outFile, stylePath string, draw func(io.Writer, render.Style) error) {
	if stylePath == "" {
		stylePath = cfg.Render.Style
	}
	style, err := render.LoadStyle(stylePath)
	if err != nil {
		printError(err)
	}

	if outFile == "" {
		if err = draw(os.Stdout, style); err != nil {
			printError(err)
		}
		return
	}

	f, err := os.Create(outFile)
	if err != nil {
		printError(fmt.Errorf("error creating output file: %w", err))
	}
	if err = draw(f, style); err != nil {
		_ = f.Close()
		printError(err)
	}
	if err = f.Close(); err != nil {
		printError(err)
	}
	logger.Debug("wrote svg", zap.String("path", outFile))
	printOutput(formatter.FormatMessage("Wrote " + outFile))
}
