package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/truvida/truvida/internal/model"
	"github.com/truvida/truvida/internal/tracker"
	"github.com/truvida/truvida/internal/tui"
)

var (
	flagRegName     string
	flagRegAge      int
	flagRegHeight   float64
	flagRegWeight   float64
	flagRegUsername string
	flagRegPassword string
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create your profile",
	Long:  "Create your profile. Without --name an interactive form is shown.",
	Args:  cobra.NoArgs,
	RunE:  runWith(runRegister),
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Check your username and password",
	Args:  cobra.NoArgs,
	RunE:  runWith(runLogin),
}

func init() {
	f := registerCmd.Flags()
	f.StringVar(&flagRegName, "name", "", "Your name")
	f.IntVar(&flagRegAge, "age", 0, "Age in years")
	f.Float64Var(&flagRegHeight, "height", 0, "Height in cm")
	f.Float64Var(&flagRegWeight, "weight", 0, "Weight in kg")
	f.StringVar(&flagRegUsername, "username", "", "Login name")
	f.StringVar(&flagRegPassword, "password", "", "Password (at least 6 characters)")

	loginCmd.Flags().StringVar(&flagRegUsername, "username", "", "Login name")
	loginCmd.Flags().StringVar(&flagRegPassword, "password", "", "Password")

	rootCmd.AddCommand(registerCmd, loginCmd)
}

func runRegister(ctx context.Context, e *env, _ []string) error {
	var r model.Registration
	if flagRegName == "" {
		form, result := tui.RegisterForm()
		if err := form.Run(); err != nil {
			return formErr(err)
		}
		r = result()
	} else {
		r = model.Registration{
			Name:            flagRegName,
			Age:             flagRegAge,
			Height:          flagRegHeight,
			Weight:          flagRegWeight,
			Username:        flagRegUsername,
			Password:        flagRegPassword,
			ConfirmPassword: flagRegPassword,
		}
	}

	u, err := e.tr.Register(ctx, r)
	if err != nil {
		return err
	}
	notify(tracker.Success("Welcome!", fmt.Sprintf("Account created for %s. Goals: %dml water, %d steps a day.",
		u.Name, u.WaterGoal, u.StepsGoal)))
	return nil
}

func runLogin(ctx context.Context, e *env, _ []string) error {
	username, password := flagRegUsername, flagRegPassword
	if username == "" || password == "" {
		form := huh.NewForm(huh.NewGroup(
			huh.NewInput().Title("Username").Value(&username),
			huh.NewInput().Title("Password").EchoMode(huh.EchoModePassword).Value(&password),
		))
		if err := form.Run(); err != nil {
			return formErr(err)
		}
	}

	u, err := e.tr.Login(ctx, username, password)
	if err != nil {
		return err
	}
	notify(tracker.Success("Welcome back", u.Name))
	return nil
}

// errCanceled is returned when the user aborts an interactive form.
var errCanceled = errors.New("canceled")

func formErr(err error) error {
	if errors.Is(err, huh.ErrUserAborted) {
		return errCanceled
	}
	return fmt.Errorf("reading form: %w", err)
}
