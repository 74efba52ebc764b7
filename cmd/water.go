package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/truvida/truvida/internal/cli"
	"github.com/truvida/truvida/internal/model"
	"github.com/truvida/truvida/internal/tracker"
)

var flagGlass int

var waterCmd = &cobra.Command{
	Use:   "water",
	Short: "Log and review water intake",
	RunE:  runWith(runWaterLog),
}

var waterAddCmd = &cobra.Command{
	Use:   "add [ml]",
	Short: "Log a drink (one glass when no amount is given)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runWith(runWaterAdd),
}

var waterUndoCmd = &cobra.Command{
	Use:   "undo",
	Short: "Remove the most recent drink",
	Args:  cobra.NoArgs,
	RunE:  runWith(runWaterUndo),
}

var waterRemoveCmd = &cobra.Command{
	Use:   "remove <entry-id>",
	Short: "Remove a drink by id (see `water log`)",
	Args:  cobra.ExactArgs(1),
	RunE:  runWith(runWaterRemove),
}

var waterLogCmd = &cobra.Command{
	Use:   "log",
	Short: "List the day's drinks",
	Args:  cobra.NoArgs,
	RunE:  runWith(runWaterLog),
}

var waterGoalCmd = &cobra.Command{
	Use:   "goal <ml>",
	Short: "Set the daily water goal",
	Args:  cobra.ExactArgs(1),
	RunE:  runWith(runWaterGoal),
}

func init() {
	waterAddCmd.Flags().IntVarP(&flagGlass, "glass", "g", 0, "Glass size in ml (150, 250, 350, 500 or any 1-2000)")
	waterCmd.AddCommand(waterAddCmd, waterUndoCmd, waterRemoveCmd, waterLogCmd, waterGoalCmd)
	rootCmd.AddCommand(waterCmd)
}

// intArg parses a numeric argument, reporting it as a validation problem.
func intArg(field, s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, model.ValidationError{Field: field, Message: fmt.Sprintf("%q is not a whole number", s)}
	}
	return n, nil
}

func runWaterAdd(ctx context.Context, e *env, args []string) error {
	date, err := e.date()
	if err != nil {
		return err
	}
	amount := 0
	if len(args) == 1 {
		if amount, err = intArg("amount", args[0]); err != nil {
			return err
		}
		if err := model.ValidateWaterAmount(amount); err != nil {
			return err
		}
	}

	res, err := e.tr.AddWater(ctx, date, amount, flagGlass)
	if err != nil {
		return err
	}
	notify(tracker.Success("Water added", fmt.Sprintf("+%s · %s of %s today",
		cli.FormatML(res.Entry.Amount), cli.FormatML(res.Intake.TotalML), cli.FormatML(e.tr.Day(ctx, date).WaterGoal))))
	if res.GoalReached {
		notify(tracker.WaterGoalNotice())
	}
	return nil
}

func runWaterUndo(ctx context.Context, e *env, _ []string) error {
	date, err := e.date()
	if err != nil {
		return err
	}
	res, err := e.tr.RemoveLastWater(ctx, date)
	if err != nil {
		return err
	}
	notify(tracker.Notice{Level: tracker.LevelInfo, Title: "Removed",
		Message: fmt.Sprintf("-%s · %s today", cli.FormatML(res.Entry.Amount), cli.FormatML(res.Intake.TotalML))})
	return nil
}

func runWaterRemove(ctx context.Context, e *env, args []string) error {
	date, err := e.date()
	if err != nil {
		return err
	}
	id := args[0]
	// Accept the short ids printed by `water log`.
	for _, entry := range e.tr.WaterLog(ctx, date) {
		if len(id) >= 8 && len(entry.ID) >= len(id) && entry.ID[:len(id)] == id {
			id = entry.ID
			break
		}
	}
	res, err := e.tr.RemoveWaterEntry(ctx, date, id)
	if err != nil {
		return err
	}
	notify(tracker.Notice{Level: tracker.LevelInfo, Title: "Removed",
		Message: fmt.Sprintf("-%s · %s today", cli.FormatML(res.Entry.Amount), cli.FormatML(res.Intake.TotalML))})
	return nil
}

func runWaterLog(ctx context.Context, e *env, _ []string) error {
	date, err := e.date()
	if err != nil {
		return err
	}
	entries := e.tr.WaterLog(ctx, date)
	s := e.tr.Day(ctx, date)

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("WATER  %s %s", cli.FormatDayOfWeek(date), date)))
	fmt.Println()
	fmt.Println(cli.RenderGoalLine("Water", s.WaterProgress,
		cli.FormatML(s.Water.TotalML), cli.FormatML(s.WaterGoal), cli.ColorBlue))
	fmt.Println()

	if len(entries) == 0 {
		fmt.Println("  No drinks logged.")
		return nil
	}

	rows := make([][]string, 0, len(entries))
	running := 0
	for _, entry := range entries {
		running += entry.Amount
		rows = append(rows, []string{
			entry.Timestamp.In(e.tr.Location()).Format("15:04"),
			cli.FormatML(entry.Amount),
			cli.FormatML(running),
			shortID(entry.ID),
		})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Time", "Amount", "Total", "ID"},
		Rows:    rows,
	}))
	return nil
}

func runWaterGoal(ctx context.Context, e *env, args []string) error {
	ml, err := intArg("waterGoal", args[0])
	if err != nil {
		return err
	}
	if _, err := e.tr.SetWaterGoal(ctx, ml); err != nil {
		return err
	}
	notify(tracker.Success("Goal updated", "Daily water goal: "+cli.FormatML(ml)))
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
