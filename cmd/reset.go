package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/truvida/truvida/internal/tracker"
	"github.com/truvida/truvida/internal/tui"
)

var flagResetYes bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all data (profile, water, steps, clans)",
	Args:  cobra.NoArgs,
	RunE:  runWith(runReset),
}

func init() {
	resetCmd.Flags().BoolVarP(&flagResetYes, "yes", "y", false, "Skip the confirmation")
	rootCmd.AddCommand(resetCmd)
}

func runReset(ctx context.Context, e *env, _ []string) error {
	count, err := e.svc.RecordCount(ctx)
	if err != nil {
		e.log.Warn().Err(err).Msg("counting records")
	}
	if !flagResetYes {
		form, confirmed := tui.ResetForm()
		if err := form.Run(); err != nil {
			return formErr(err)
		}
		if !confirmed() {
			notify(tracker.Notice{Level: tracker.LevelInfo, Title: "Nothing deleted"})
			return nil
		}
	}
	if err := e.tr.ClearAll(ctx); err != nil {
		return err
	}
	e.log.Info().Int("records", count).Msg("all data cleared")
	msg := "All records were deleted."
	if count > 0 {
		msg = fmt.Sprintf("Deleted %d records.", count)
	}
	notify(tracker.Notice{Level: tracker.LevelInfo, Title: "Data cleared", Message: msg})
	return nil
}
