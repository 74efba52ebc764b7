package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/truvida/truvida/internal/cli"
	"github.com/truvida/truvida/internal/model"
)

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show today's water and steps",
	RunE:  runWith(runToday),
}

func init() {
	rootCmd.AddCommand(todayCmd)
}

func runToday(ctx context.Context, e *env, _ []string) error {
	date, err := e.date()
	if err != nil {
		return err
	}
	u, err := e.tr.User(ctx)
	if err != nil {
		return err
	}
	s := e.tr.Day(ctx, date)

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("%s  %s %s",
		model.Greeting(u.Name, e.tr.Now()), cli.FormatDayOfWeek(date), date)))
	fmt.Println()

	fmt.Println(cli.RenderGoalLine("Water", s.WaterProgress,
		cli.FormatML(s.Water.TotalML), cli.FormatML(s.WaterGoal), cli.ColorBlue))
	fmt.Println(cli.RenderGoalLine("Steps", s.StepsProgress,
		cli.FormatSteps(s.Steps.Steps), cli.FormatSteps(s.StepsGoal), cli.ColorOrange))
	fmt.Println()

	water := fmt.Sprintf("%s to go (%d glasses of %s)",
		cli.FormatML(s.WaterRemaining), s.GlassesLeft, cli.FormatML(s.Water.GlassSize))
	if s.WaterGoalMet() {
		water = "goal reached"
	}
	steps := cli.FormatSteps(s.StepsRemaining) + " to go"
	if s.StepsGoalMet() {
		steps = "goal reached"
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Glasses", fmt.Sprintf("%d", s.Water.Glasses)},
			{"Water", water},
			{"Steps", steps},
			{"Calories", fmt.Sprintf("%d kcal", s.Calories)},
			{"Distance", model.FormatDistance(s.DistanceKm) + " km"},
			{"Activity", s.Activity.Name},
		},
	}))
	return nil
}
