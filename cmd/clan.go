package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/truvida/truvida/internal/clan"
	"github.com/truvida/truvida/internal/cli"
	"github.com/truvida/truvida/internal/tracker"
)

var clanCmd = &cobra.Command{
	Use:   "clan",
	Short: "Join clans and compare progress",
	Args:  cobra.NoArgs,
	RunE:  runWith(runClanList),
}

var clanListCmd = &cobra.Command{
	Use:   "list",
	Short: "List clans",
	Args:  cobra.NoArgs,
	RunE:  runWith(runClanList),
}

var clanJoinCmd = &cobra.Command{
	Use:   "join <id|code>",
	Short: "Join a clan",
	Args:  cobra.ExactArgs(1),
	RunE:  runWith(runClanJoin),
}

var clanLeaveCmd = &cobra.Command{
	Use:   "leave <id|code>",
	Short: "Leave a clan",
	Args:  cobra.ExactArgs(1),
	RunE:  runWith(runClanLeave),
}

var clanBoardCmd = &cobra.Command{
	Use:   "board [id|code]",
	Short: "Show the leaderboard of a clan (default: every joined clan)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runWith(runClanBoard),
}

func init() {
	clanCmd.AddCommand(clanListCmd, clanJoinCmd, clanLeaveCmd, clanBoardCmd)
	rootCmd.AddCommand(clanCmd)
}

func runClanList(ctx context.Context, e *env, _ []string) error {
	list := e.clans.List(ctx)

	fmt.Println()
	fmt.Println(cli.RenderTitle("CLANS"))
	fmt.Println()

	rows := make([][]string, 0, len(list))
	for _, m := range list {
		joined := ""
		if m.Joined {
			joined = "✓"
		}
		rows = append(rows, []string{
			m.ID,
			m.Code,
			m.Title(),
			fmt.Sprintf("%d", m.Members),
			cli.FormatSteps(m.AvgSteps),
			cli.FormatML(m.AvgWater),
			joined,
		})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"ID", "Code", "Clan", "Members", "Avg steps", "Avg water", "Joined"},
		Rows:    rows,
	}))
	return nil
}

func runClanJoin(ctx context.Context, e *env, args []string) error {
	c, err := e.clans.Join(ctx, args[0])
	if err != nil {
		return tracker.ClanOpError(err)
	}
	notify(tracker.Success("Joined", c.Title()))
	return nil
}

func runClanLeave(ctx context.Context, e *env, args []string) error {
	c, err := e.clans.Leave(ctx, args[0])
	if err != nil {
		return tracker.ClanOpError(err)
	}
	notify(tracker.Notice{Level: tracker.LevelInfo, Title: "Left", Message: c.Title()})
	return nil
}

func runClanBoard(ctx context.Context, e *env, args []string) error {
	var clans []clan.Clan
	if len(args) == 1 {
		c, err := clan.Find(args[0])
		if err != nil {
			return err
		}
		clans = []clan.Clan{c}
	} else {
		clans = e.clans.Joined(ctx)
	}
	if len(clans) == 0 {
		fmt.Println("\n  You have not joined any clan. See `truvida clan list`.")
		return nil
	}

	u, err := e.tr.User(ctx)
	if err != nil {
		return err
	}
	date, err := e.date()
	if err != nil {
		return err
	}
	s := e.tr.Day(ctx, date)
	you := clan.Standing{Name: u.Name, Steps: s.Steps.Steps, StepsTarget: s.StepsGoal, Water: s.Water.TotalML}

	for _, c := range clans {
		fmt.Println()
		fmt.Println(cli.RenderTitle(c.Title() + "  LEADERBOARD"))
		fmt.Println()

		board := clan.Leaderboard(c, you)
		rows := make([][]string, 0, len(board))
		for _, r := range board {
			name := r.Name
			if r.You {
				name += " (you)"
			}
			rows = append(rows, []string{
				fmt.Sprintf("%d", r.Rank),
				name,
				cli.FormatSteps(r.Steps),
				cli.FormatPercent(float64(r.Steps) / float64(max(r.StepsTarget, 1))),
				cli.FormatML(r.Water),
			})
		}
		fmt.Print(cli.RenderTable(cli.Table{
			Headers: []string{"#", "Member", "Steps", "Of target", "Water"},
			Rows:    rows,
		}))
	}
	return nil
}
