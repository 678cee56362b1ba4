package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/raykavin/backview"
	"github.com/raykavin/backview/internal/config"
	"github.com/raykavin/backview/pkg/core"
	"github.com/raykavin/backview/pkg/feed"
	"github.com/raykavin/backview/pkg/gesture"
	"github.com/raykavin/backview/pkg/logger"
	"github.com/raykavin/backview/pkg/metric"
	"github.com/raykavin/backview/pkg/plot"
	"github.com/raykavin/backview/pkg/storage"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

// Command line flags
var (
	configPath string

	// Import command flags
	importKey string

	// Curve selection flags shared by replay and serve
	primaryFile  string
	primaryKey   string
	secondary    string
	secondaryKey string
	fromStore    bool

	// Replay command flags
	scriptFile string
)

// Values set by the root command before any subcommand runs
var (
	settings *config.Config
	log      logger.Logger
)

func main() {
	rootCmd := &cobra.Command{
		Use:               "backview",
		Short:             "Interactive viewport over backtest equity curves",
		Version:           "1.0.0",
		PersistentPreRunE: initialize,
		SilenceUsage:      true,
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML configuration file (e.g. ./backview.yaml)")

	rootCmd.AddCommand(buildImportCmd())
	rootCmd.AddCommand(buildReplayCmd())
	rootCmd.AddCommand(buildServeCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func initialize(cmd *cobra.Command, _ []string) error {
	var err error
	settings, err = config.Load(configPath)
	if err != nil {
		return err
	}

	log, err = settings.Log.NewLogger(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	backview.DefaultLog = log

	return nil
}

func buildImportCmd() *cobra.Command {
	importCmd := &cobra.Command{
		Use:   "import FILE...",
		Short: "Import CSV or JSON curves into the curve store",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runImport,
	}

	importCmd.Flags().StringVarP(&importKey, "key", "k", core.KeyEquity, "Series key of the imported curves (e.g. equity, price)")

	return importCmd
}

func runImport(_ *cobra.Command, files []string) error {
	store, err := storage.FromFile(log, settings.Storage.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	progressBar := progressbar.Default(int64(len(files)), "importing")
	for _, file := range files {
		curve, err := loadFile(file, importKey)
		if err != nil {
			return err
		}

		if err := store.SaveCurve(curve); err != nil {
			return fmt.Errorf("failed to save %s: %w", file, err)
		}

		log.WithFields(map[string]any{
			"file":   file,
			"key":    curve.Key,
			"points": len(curve.Points),
		}).Debug("curve imported")

		if err := progressBar.Add(1); err != nil {
			log.Warn("progress bar: ", err)
		}
	}

	return nil
}

func addCurveFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&primaryFile, "primary", "p", "", "Primary curve file, CSV or JSON")
	cmd.Flags().StringVar(&primaryKey, "primary-key", core.KeyEquity, "Series key of the primary curve")
	cmd.Flags().StringVarP(&secondary, "secondary", "s", "", `Secondary curve file, or "drawdown" to derive it from the primary`)
	cmd.Flags().StringVar(&secondaryKey, "secondary-key", core.KeyPrice, "Series key of the secondary curve")
	cmd.Flags().BoolVar(&fromStore, "store", false, "Load the curves from the curve store by key instead of files")
}

func buildReplayCmd() *cobra.Command {
	replayCmd := &cobra.Command{
		Use:   "replay",
		Short: "Apply a gesture script to the chart and print the visible window summary",
		RunE:  runReplay,
	}

	addCurveFlags(replayCmd)
	replayCmd.Flags().StringVarP(&scriptFile, "script", "g", "", "JSON lines gesture script (e.g. ./zoom.jsonl)")

	return replayCmd
}

func runReplay(cmd *cobra.Command, _ []string) error {
	engine, err := buildEngine()
	if err != nil {
		return err
	}

	if scriptFile != "" {
		file, err := os.Open(scriptFile)
		if err != nil {
			return err
		}
		defer file.Close()

		events, err := gesture.ReadScript(file)
		if err != nil {
			return fmt.Errorf("invalid script %s: %w", scriptFile, err)
		}
		engine.Router().Replay(events)
	}

	return engine.Summary(cmd.OutOrStdout())
}

func buildServeCmd() *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the interactive chart over HTTP",
		RunE:  runServe,
	}

	addCurveFlags(serveCmd)

	return serveCmd
}

func runServe(_ *cobra.Command, _ []string) error {
	engine, err := buildEngine()
	if err != nil {
		return err
	}

	options := []plot.Option{
		plot.WithPort(settings.Server.Port),
		plot.WithSeries(engine.Keys()...),
	}
	if settings.Server.Debug {
		options = append(options, plot.WithDebug())
	}

	server, err := plot.NewServer(log, engine.Controller(), engine.Router(), options...)
	if err != nil {
		return err
	}

	return server.Start()
}

func buildEngine() (*backview.Engine, error) {
	primary, second, err := loadCurves()
	if err != nil {
		return nil, err
	}

	options, err := settings.EngineOptions(log)
	if err != nil {
		return nil, err
	}

	return backview.New(primary, second, options...), nil
}

func loadCurves() (primary, second core.Curve, err error) {
	if fromStore {
		store, err := storage.FromFile(log, settings.Storage.Path)
		if err != nil {
			return primary, second, err
		}
		defer store.Close()

		if primary, err = store.Curve(primaryKey); err != nil {
			return primary, second, err
		}
		if secondary != "" && secondary != metric.KeyDrawdown {
			if second, err = store.Curve(secondaryKey); err != nil {
				return primary, second, err
			}
		}
	} else {
		if primaryFile == "" {
			return primary, second, fmt.Errorf("--primary or --store is required")
		}
		if primary, err = loadFile(primaryFile, primaryKey); err != nil {
			return primary, second, err
		}
		if secondary != "" && secondary != metric.KeyDrawdown {
			if second, err = loadFile(secondary, secondaryKey); err != nil {
				return primary, second, err
			}
		}
	}

	if secondary == metric.KeyDrawdown {
		second = metric.DrawdownCurve(primary)
	}

	return primary, second, nil
}

func loadFile(path, key string) (core.Curve, error) {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		file, err := os.Open(path)
		if err != nil {
			return core.Curve{}, err
		}
		defer file.Close()

		return feed.LoadJSON(file, key)
	}

	return feed.LoadCSVFile(path, key)
}
