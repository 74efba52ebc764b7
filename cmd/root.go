// Package cmd implements the truvida CLI commands.
package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/truvida/truvida/internal/clan"
	"github.com/truvida/truvida/internal/cli"
	"github.com/truvida/truvida/internal/config"
	"github.com/truvida/truvida/internal/model"
	"github.com/truvida/truvida/internal/stepsource"
	"github.com/truvida/truvida/internal/storage"
	"github.com/truvida/truvida/internal/store"
	"github.com/truvida/truvida/internal/tracker"
)

var (
	flagDataDir string
	flagDate    string
	flagBackend string
	flagQuiet   bool
	flagVerbose bool
	flagNoColor bool
)

var rootCmd = &cobra.Command{
	Use:           "truvida",
	Short:         "Water and steps tracker",
	Long:          "Track daily water intake and steps against your goals, with streaks, clans and reminders.",
	RunE:          runWith(runToday),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if flagNoColor {
			lipgloss.SetColorProfile(termenv.Ascii)
		}
	},
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		n := tracker.NoticeFor(err)
		fmt.Fprintln(os.Stderr, cli.RenderNotice(n.Level.String(), n.Title, n.Message))
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagDataDir, "data-dir", "d", "", "Directory for the database and daemon files (default "+config.DataDir()+")")
	rootCmd.PersistentFlags().StringVar(&flagDate, "date", "", "Day to act on, YYYY-MM-DD (default today)")
	rootCmd.PersistentFlags().StringVar(&flagBackend, "backend", "", "Storage backend: sqlite, redis or memory")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Only print errors")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Debug logging")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colors")
}

// env is everything a command needs, opened once per invocation.
type env struct {
	cfg   config.Config
	log   zerolog.Logger
	kv    store.Store
	svc   *storage.Service
	tr    *tracker.Tracker
	clans *clan.Registry
}

func newLogger() zerolog.Logger {
	level := zerolog.WarnLevel
	switch {
	case flagVerbose:
		level = zerolog.DebugLevel
	case flagQuiet:
		level = zerolog.ErrorLevel
	}
	w := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen, NoColor: flagNoColor}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// dataDir is where the database and daemon files live.
func dataDir() string {
	if flagDataDir != "" {
		return flagDataDir
	}
	return config.DataDir()
}

func loadConfig(log zerolog.Logger) config.Config {
	cfg, err := config.Load()
	if err != nil {
		// Fall back to defaults so a broken file never blocks the data.
		log.Warn().Err(err).Str("path", config.ConfigPath()).Msg("using default config")
		cfg = config.DefaultConfig()
		config.ApplyEnv(&cfg)
	}
	if flagBackend != "" {
		cfg.Storage.Backend = flagBackend
	}
	if flagDataDir != "" {
		cfg.Storage.SQLitePath = filepath.Join(flagDataDir, "truvida.db")
	}
	return cfg
}

func openEnv(ctx context.Context, log zerolog.Logger) (*env, error) {
	cfg := loadConfig(log)

	kv, err := store.Open(ctx, store.Options{
		Backend:       cfg.Storage.Backend,
		SQLitePath:    cfg.SQLitePath(),
		RedisAddr:     cfg.Storage.RedisAddr,
		RedisPassword: cfg.Storage.RedisPassword,
		RedisDB:       cfg.Storage.RedisDB,
		RedisPrefix:   cfg.Storage.RedisPrefix,
	})
	if err != nil {
		return nil, fmt.Errorf("opening %s store: %w", cfg.Storage.Backend, err)
	}
	log.Debug().Str("backend", cfg.Storage.Backend).Msg("store opened")

	loc, err := cfg.Location()
	if err != nil {
		log.Warn().Err(err).Msg("falling back to local time")
	}

	svc := storage.New(kv,
		storage.WithLogger(log.With().Str("component", "storage").Logger()),
		storage.WithDefaultGlassSize(cfg.Water.DefaultGlassML),
	)

	opts := []tracker.Option{
		tracker.WithLocation(loc),
		tracker.WithGlassSize(cfg.Water.DefaultGlassML),
	}
	if p := stepsource.NewHTTPProvider(cfg.Steps.ProviderURL, cfg.Steps.ProviderToken); p != nil {
		opts = append(opts, tracker.WithStepProvider(p))
	}

	return &env{
		cfg:   cfg,
		log:   log,
		kv:    kv,
		svc:   svc,
		tr:    tracker.New(svc, opts...),
		clans: clan.NewRegistry(svc),
	}, nil
}

func (e *env) Close() {
	if err := e.kv.Close(); err != nil {
		e.log.Warn().Err(err).Msg("closing store")
	}
}

// date returns the --date day, or today in the configured timezone.
func (e *env) date() (string, error) {
	if flagDate == "" {
		return e.tr.Today(), nil
	}
	if _, err := model.ParseDateKey(flagDate, e.tr.Location()); err != nil {
		return "", model.ValidationError{Field: "date", Message: "use the YYYY-MM-DD format"}
	}
	return flagDate, nil
}

// runWith opens the environment around a command body.
func runWith(fn func(ctx context.Context, e *env, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		e, err := openEnv(ctx, newLogger())
		if err != nil {
			return err
		}
		defer e.Close()
		return fn(ctx, e, args)
	}
}

// notify prints a notice unless --quiet.
func notify(n tracker.Notice) {
	if flagQuiet || n.Title == "" {
		return
	}
	fmt.Println(cli.RenderNotice(n.Level.String(), n.Title, n.Message))
}
