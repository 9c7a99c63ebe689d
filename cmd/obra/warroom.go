package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	obraerrors "github.com/hugogabrielsalles97-collab/onstructneon-controle-de-obras-sub001/internal/errors"
	"github.com/hugogabrielsalles97-collab/onstructneon-controle-de-obras-sub001/internal/warroom"
)

// warroomCmd implements 'obra warroom'.
func warroomCmd() *cobra.Command {
	var interval time.Duration
	var baseline string
	var views []string
	cmd := &cobra.Command{
		Use:   "warroom",
		Short: "Rotate the curve, timeline and summary on a TV screen",
		Long: "Cycles through the configured views until interrupted, redrawing\n" +
			"when task files change or the day rolls over.",
		Run: func(c *cobra.Command, _ []string) {
			opts := warroom.Options{
				Interval: cfg.WarRoom.Interval,
				Debounce: cfg.WarRoom.Debounce,
				Location: location,
				Clear:    !jsonOutput,
				Now:      now,
			}
			if c.Flags().Changed("interval") {
				opts.Interval = interval
			}
			names := cfg.WarRoom.Views
			if c.Flags().Changed("views") {
				names = views
			}
			var err error
			if opts.Views, err = warroom.ParseViews(names); err != nil {
				printError(err)
			}
			if !c.Flags().Changed("baseline") {
				baseline = cfg.WarRoom.Baseline
			}

			store := getStore()
			if !store.IsInitialized() {
				printError(obraerrors.NotInitializedError{Path: store.BasePath()})
			}
			opts.WatchDir = store.TasksPath()

			board, err := warroom.New(warroom.StoreSource{Store: store, BaselineID: baseline}, os.Stdout, formatter, opts, logger)
			if err != nil {
				printError(err)
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			if err = board.Run(ctx); err != nil {
				printError(err)
			}
		},
	}
	cmd.Flags().DurationVar(&interval, "interval", 0, "Time each view stays on screen (default warroom.interval)")
	cmd.Flags().StringSliceVar(&views, "views", nil, "Views to rotate: curve, timeline, summary")
	cmd.Flags().StringVarP(&baseline, "baseline", "b", "", "Overlay a baseline snapshot on the timeline (ID or 'latest')")
	return cmd
}
