package commands

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/fraudlens/fraudlens/internal/aggregate"
	"github.com/fraudlens/fraudlens/internal/buildinfo"
	"github.com/fraudlens/fraudlens/internal/config"
	"github.com/fraudlens/fraudlens/internal/importer"
	"github.com/fraudlens/fraudlens/internal/logger"
	"github.com/fraudlens/fraudlens/internal/tui"
	"github.com/fraudlens/fraudlens/internal/viz"
)

// runSurface blocks until the user leaves the terminal UI.
var runSurface = func(ctx context.Context, s *tui.Surface) error {
	return s.Run(ctx)
}

// NewRootCommand creates the fraudlens command. The optional argument names
// the dataset and overrides input.path from the config.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "fraudlens [path]",
		Short:   "Explore confirmed government fraud by agency and program",
		Version: buildinfo.String(),
		Args:    cobra.MaximumNArgs(1),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Resolve(".")
			if err != nil {
				return err
			}
			if len(args) > 0 {
				cfg.Input.Path = args[0]
			}
			return run(cmd.Context(), cfg)
		},
	}

	return rootCmd
}

func run(ctx context.Context, cfg *config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}

	log, closer, err := logger.Open(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		return err
	}
	defer closer.Close()

	log, _ = logger.WithSession(log)
	log.Debug().Str("version", buildinfo.Version).Str("input", cfg.Input.Path).Msg("starting")
	ctx = logger.WithContext(ctx, log)

	records, err := importer.Load(ctx, cfg.Input.Path, cfg.LoaderOptions())
	if err != nil {
		return err
	}

	views := aggregate.NewViews(records)
	if n := views.Excluded(); n > 0 {
		log.Warn().Int("rows", n).Msg("rows without a category were left out of the charts")
	}
	log.Info().
		Int("categories", len(views.Categories())).
		Stringer("total", aggregate.Sum(records)).
		Msg("aggregated fraud data")

	surface := tui.New()
	controller := viz.NewController(views, surface,
		viz.WithTopCategories(cfg.Chart.TopCategories),
		viz.WithTopSubcategories(cfg.Chart.TopSubcategories),
		viz.WithWidth(cfg.Chart.Width),
		viz.WithLogger(uiLogger(log, cfg.Log.File).With().Str("component", "viz").Logger()),
	)
	if err := controller.ShowOverview(); err != nil {
		return fmt.Errorf("showing overview: %w", err)
	}

	runErr := runSurface(ctx, surface)
	state, selected := controller.State()
	if err := controller.Close(); err != nil {
		log.Warn().Err(err).Msg("closing charts")
	}
	if runErr != nil {
		return runErr
	}

	log.Info().Stringer("state", state).Str("selected", selected).Msg("session finished")
	return nil
}

// uiLogger is the logger for code running inside the terminal UI. Without a
// log file it is silent, since stderr shares the screen with the charts.
func uiLogger(log zerolog.Logger, file string) zerolog.Logger {
	if file == "" {
		return zerolog.Nop()
	}
	return log
}
