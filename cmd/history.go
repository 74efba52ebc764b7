package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/truvida/truvida/internal/cli"
	"github.com/truvida/truvida/internal/pipeline"
)

var (
	flagHistoryDays int
	flagHistoryAll  bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Daily water and steps with goal streaks",
	Args:  cobra.NoArgs,
	RunE:  runWith(runHistory),
}

func init() {
	historyCmd.Flags().IntVarP(&flagHistoryDays, "days", "n", 0, "Days to show (default general.default_days)")
	historyCmd.Flags().BoolVar(&flagHistoryAll, "all", false, "Every tracked day")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(ctx context.Context, e *env, _ []string) error {
	u, err := e.tr.User(ctx)
	if err != nil {
		return err
	}

	var history []pipeline.DayStats
	title := "HISTORY  all tracked days"
	if flagHistoryAll {
		if history, err = pipeline.LoadTracked(ctx, e.svc, *u); err != nil {
			return err
		}
	} else {
		days := flagHistoryDays
		if days <= 0 {
			days = max(e.cfg.General.DefaultDays, 1)
		}
		history = pipeline.LoadHistory(ctx, e.svc, *u, pipeline.DateRange(e.tr.Now(), days))
		title = fmt.Sprintf("HISTORY  Last %dd", days)
	}

	if len(history) == 0 {
		fmt.Println("\n  No tracked days yet.")
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(title))
	fmt.Println()

	rows := make([][]string, 0, len(history))
	for _, d := range history {
		rows = append(rows, []string{
			d.Date,
			cli.FormatDayOfWeek(d.Date),
			cli.FormatML(d.Water),
			mark(d.WaterMet),
			cli.FormatSteps(d.Steps),
			mark(d.StepsMet),
			fmt.Sprintf("%d", d.Calories),
		})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Date", "Day", "Water", "", "Steps", "", "kcal"},
		Rows:    rows,
	}))

	s := pipeline.Summarize(history)
	steps := make([]float64, len(history))
	for i, d := range history {
		steps[len(history)-1-i] = float64(d.Steps)
	}

	fmt.Println()
	fmt.Printf("  Steps trend      %s\n", cli.RenderSparkline(steps))
	fmt.Printf("  Averages         %s water · %s steps\n",
		cli.FormatML(int(s.AvgWater)), cli.FormatSteps(int(s.AvgSteps)))
	fmt.Printf("  Goals met        water %d/%d · steps %d/%d · both %d\n",
		s.WaterGoalDays, s.Days, s.StepsGoalDays, s.Days, s.BothGoalDays)
	fmt.Printf("  Current streak   %d days (longest %d)\n", s.CurrentStreak, s.LongestStreak)
	if s.BestDay.Steps > 0 {
		fmt.Printf("  Best day         %s with %s steps\n", s.BestDay.Date, cli.FormatSteps(s.BestDay.Steps))
	}
	return nil
}

func mark(met bool) string {
	if met {
		return "✓"
	}
	return "·"
}
