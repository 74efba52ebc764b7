package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/truvida/truvida/internal/tui"
	"github.com/truvida/truvida/internal/tui/theme"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive TUI dashboard",
	Args:  cobra.NoArgs,
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	// The alt screen owns the terminal, so logs go to a file.
	logPath := filepath.Join(dataDir(), "tui.log")
	if err := os.MkdirAll(filepath.Dir(logPath), 0o750); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}
	//nolint:gosec // log path is under the user's data directory
	logf, err := os.OpenFile(logPath, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("open tui log file: %w", err)
	}
	defer func() { _ = logf.Close() }()
	log := zerolog.New(logf).Level(zerolog.InfoLevel).With().Timestamp().Logger()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	e, err := openEnv(ctx, log)
	if err != nil {
		return err
	}
	defer e.Close()

	theme.SetActive(e.cfg.Appearance.Theme)

	// Force TrueColor profile so all background styling produces ANSI codes
	if !flagNoColor {
		lipgloss.SetColorProfile(termenv.TrueColor)
	}

	app := tui.NewApp(tui.Options{
		Tracker: e.tr,
		Clans:   e.clans,
		Days:    e.cfg.General.DefaultDays,
	})
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	log.Info().Msg("tui closed")
	return nil
}
