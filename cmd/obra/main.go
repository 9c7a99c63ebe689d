package main

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hugogabrielsalles97-collab/onstructneon-controle-de-obras-sub001/internal/calendar"
	"github.com/hugogabrielsalles97-collab/onstructneon-controle-de-obras-sub001/internal/config"
	obraerrors "github.com/hugogabrielsalles97-collab/onstructneon-controle-de-obras-sub001/internal/errors"
	"github.com/hugogabrielsalles97-collab/onstructneon-controle-de-obras-sub001/internal/logging"
	"github.com/hugogabrielsalles97-collab/onstructneon-controle-de-obras-sub001/internal/output"
	"github.com/hugogabrielsalles97-collab/onstructneon-controle-de-obras-sub001/internal/storage"
)

const configFile = "config.yaml"

//nolint:gochecknoglobals // CLI flags and shared state are package-level by design
var (
	jsonOutput bool
	verbose    bool
	configPath string
	dirFlag    string
	todayFlag  string

	formatter  output.Formatter
	cfg        *config.Config
	logger     *zap.Logger
	projectDir string
	location   *time.Location
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		if formatter == nil {
			formatter = output.NewHumanFormatter()
		}
		printError(err)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "obra",
		Short: "Construction schedule progress tracker",
		Long: "obra - Planned vs actual progress for construction schedules.\n\n" +
			"Reads task files from a project directory and draws the S-curve,\n" +
			"the Gantt timeline and the daily summary.",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setup,
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	flags.StringVar(&configPath, "config", "", "Config file (default <project>/config.yaml)")
	flags.StringVar(&dirFlag, "dir", "", "Project directory (default: nearest .obra)")
	flags.StringVar(&todayFlag, "today", "", "Pin today's date (YYYY-MM-DD) for reproducible output")

	root.AddCommand(
		initCmd(),
		listCmd(),
		showCmd(),
		curveCmd(),
		timelineCmd(),
		summaryCmd(),
		baselineCmd(),
		renderCmd(),
		warroomCmd(),
	)
	return root
}

// setup resolves the formatter, configuration, logger and project
// directory before any command runs.
func setup(_ *cobra.Command, _ []string) error {
	if jsonOutput {
		formatter = output.NewJSONFormatter()
	} else {
		formatter = output.NewHumanFormatter()
	}

	found, err := storage.FindProjectDir(".")
	if err != nil {
		return err
	}
	path := configPath
	if path == "" {
		path = filepath.Join(found, configFile)
		if dirFlag != "" {
			path = filepath.Join(dirFlag, configFile)
		}
	}
	if cfg, err = config.Load(path); err != nil {
		return err
	}

	switch {
	case dirFlag != "":
		projectDir = dirFlag
	case cfg.Dir != "":
		projectDir = cfg.Dir
	default:
		projectDir = found
	}

	if logger, err = logging.New(cfg.Log.Level, verbose); err != nil {
		return err
	}
	if location, err = cfg.Location(); err != nil {
		return err
	}
	if todayFlag != "" {
		if _, err = calendar.ParseDate(todayFlag); err != nil {
			return obraerrors.InvalidDateError{Field: "today", Value: todayFlag}
		}
	}

	logger.Debug("configured",
		zap.String("dir", projectDir),
		zap.String("config", path),
		zap.String("timezone", location.String()),
	)
	return nil
}

// now returns the current instant, or midday of the pinned --today date in
// the configured zone.
func now() time.Time {
	if todayFlag == "" {
		return time.Now()
	}
	d, err := calendar.ParseDate(todayFlag)
	if err != nil {
		return time.Now()
	}
	return time.Date(d.Year(), d.Month(), d.Day(), 12, 0, 0, 0, location)
}

// civilNow is now() on the civil axis the engines compare against.
func civilNow() time.Time {
	return calendar.Civil(now(), location)
}

func getStore() *storage.Store {
	return storage.NewStore(projectDir, logger)
}

func printOutput(s string) {
	os.Stdout.WriteString(s) //nolint:gosec // stdout write errors are unrecoverable
}

func printError(err error) {
	if logger != nil {
		logger.Debug("command failed", zap.Error(err))
		_ = logger.Sync()
	}
	os.Stdout.WriteString(formatter.FormatError(err)) //nolint:gosec // stdout write errors are unrecoverable
	os.Exit(1)
}
