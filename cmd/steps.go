package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/truvida/truvida/internal/cli"
	"github.com/truvida/truvida/internal/stepsource"
	"github.com/truvida/truvida/internal/tracker"
)

var stepsCmd = &cobra.Command{
	Use:   "steps",
	Short: "Log and sync steps",
}

var stepsAddCmd = &cobra.Command{
	Use:   "add <n>",
	Short: "Add steps to the day's count",
	Args:  cobra.ExactArgs(1),
	RunE:  runWith(runStepsAdd),
}

var stepsSetCmd = &cobra.Command{
	Use:   "set <n>",
	Short: "Replace the day's step count",
	Args:  cobra.ExactArgs(1),
	RunE:  runWith(runStepsSet),
}

var stepsSyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Fetch the day's count from the configured step provider",
	Args:  cobra.NoArgs,
	RunE:  runWith(runStepsSync),
}

var stepsGoalCmd = &cobra.Command{
	Use:   "goal <n>",
	Short: "Set the daily steps goal",
	Args:  cobra.ExactArgs(1),
	RunE:  runWith(runStepsGoal),
}

func init() {
	stepsCmd.AddCommand(stepsAddCmd, stepsSetCmd, stepsSyncCmd, stepsGoalCmd)
	rootCmd.AddCommand(stepsCmd)
}

func printSteps(ctx context.Context, e *env, res tracker.StepsResult, title string) {
	left := e.tr.Day(ctx, res.Steps.Date).StepsRemaining
	notify(tracker.Success(title, fmt.Sprintf("%s steps · %s to go",
		cli.FormatSteps(res.Steps.Steps), cli.FormatSteps(left))))
	if res.GoalReached {
		notify(tracker.StepsGoalNotice())
	}
}

func runStepsAdd(ctx context.Context, e *env, args []string) error {
	date, err := e.date()
	if err != nil {
		return err
	}
	n, err := intArg("steps", args[0])
	if err != nil {
		return err
	}
	res, err := e.tr.AddSteps(ctx, date, n)
	if err != nil {
		return err
	}
	printSteps(ctx, e, res, "Steps added")
	return nil
}

func runStepsSet(ctx context.Context, e *env, args []string) error {
	date, err := e.date()
	if err != nil {
		return err
	}
	n, err := intArg("steps", args[0])
	if err != nil {
		return err
	}
	res, err := e.tr.SetSteps(ctx, date, n)
	if err != nil {
		return err
	}
	printSteps(ctx, e, res, "Steps updated")
	return nil
}

func runStepsSync(ctx context.Context, e *env, _ []string) error {
	date, err := e.date()
	if err != nil {
		return err
	}
	res, err := e.tr.SyncSteps(ctx, date)
	if err != nil {
		return err
	}
	switch {
	case res.SyncErr != nil:
		e.log.Debug().Err(res.SyncErr).Msg("step provider failed")
		n := tracker.NoticeFor(res.SyncErr)
		n.Message += " Kept the local count."
		notify(n)
	case res.Source != stepsource.SourceProvider:
		notify(tracker.Notice{Level: tracker.LevelInfo, Title: "No step provider",
			Message: "Set steps.provider_url with `truvida config set`."})
	default:
		printSteps(ctx, e, res, "Steps synced")
	}
	return nil
}

func runStepsGoal(ctx context.Context, e *env, args []string) error {
	n, err := intArg("stepsGoal", args[0])
	if err != nil {
		return err
	}
	if _, err := e.tr.SetStepsGoal(ctx, n); err != nil {
		return err
	}
	notify(tracker.Success("Goal updated", "Daily steps goal: "+cli.FormatSteps(n)))
	return nil
}
