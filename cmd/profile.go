package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/truvida/truvida/internal/cli"
	"github.com/truvida/truvida/internal/model"
	"github.com/truvida/truvida/internal/tracker"
	"github.com/truvida/truvida/internal/tui"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show or edit your profile",
	Args:  cobra.NoArgs,
	RunE:  runWith(runProfileShow),
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show your profile and goals",
	Args:  cobra.NoArgs,
	RunE:  runWith(runProfileShow),
}

var profileEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit your profile, goals and reminders",
	Args:  cobra.NoArgs,
	RunE:  runWith(runProfileEdit),
}

var profileRemindersCmd = &cobra.Command{
	Use:       "reminders <on|off>",
	Short:     "Turn water reminders on or off",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"on", "off"},
	RunE:      runWith(runProfileReminders),
}

func init() {
	profileCmd.AddCommand(profileShowCmd, profileEditCmd, profileRemindersCmd)
	rootCmd.AddCommand(profileCmd)
}

func runProfileShow(ctx context.Context, e *env, _ []string) error {
	u, err := e.tr.User(ctx)
	if err != nil {
		return err
	}

	reminders := "off"
	if u.NotificationsEnabled {
		reminders = fmt.Sprintf("every %dh", u.WaterReminderInterval)
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("PROFILE"))
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Field", "Value"},
		Rows: [][]string{
			{"Name", u.Name},
			{"Username", u.Username},
			{"Age", fmt.Sprintf("%d", u.Age)},
			{"Height", fmt.Sprintf("%.0f cm", u.Height)},
			{"Weight", fmt.Sprintf("%.1f kg", u.Weight)},
			{"---"},
			{"Water goal", cli.FormatML(u.WaterGoal)},
			{"Steps goal", cli.FormatSteps(u.StepsGoal)},
			{"Reminders", reminders},
			{"Member since", u.CreatedAt.In(e.tr.Location()).Format("Jan 2, 2006")},
		},
	}))
	return nil
}

func runProfileEdit(ctx context.Context, e *env, _ []string) error {
	u, err := e.tr.User(ctx)
	if err != nil {
		return err
	}
	form, result := tui.ProfileForm(*u)
	if err := form.Run(); err != nil {
		return formErr(err)
	}
	if _, err := e.tr.UpdateProfile(ctx, result()); err != nil {
		return err
	}
	notify(tracker.Success("Profile saved", ""))
	return nil
}

func runProfileReminders(ctx context.Context, e *env, args []string) error {
	var on bool
	switch args[0] {
	case "on":
		on = true
	case "off":
	default:
		return model.ValidationError{Field: "reminders", Message: "use on or off"}
	}

	u, err := e.tr.User(ctx)
	if err != nil {
		return err
	}
	p := model.ProfileOf(*u)
	p.NotificationsEnabled = on
	if _, err := e.tr.UpdateProfile(ctx, p); err != nil {
		return err
	}
	notify(tracker.Success("Reminders "+args[0], ""))
	return nil
}
