package tui

import (
	"errors"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/truvida/truvida/internal/model"
)

type formKind int

const (
	formNone formKind = iota
	formRegister
	formProfile
	formWaterAmount
	formWaterGoal
	formStepsAdd
	formStepsSet
	formStepsGoal
	formReset
)

// formValues backs every huh field. It lives behind a pointer so the bound
// field values survive App copies.
type formValues struct {
	name     string
	age      string
	height   string
	weight   string
	username string
	password string
	confirm  string

	waterGoal     string
	stepsGoal     string
	reminderHours string
	notifications bool

	amount  string
	proceed bool
}

func requiredInt(s string) error {
	if _, err := strconv.Atoi(strings.TrimSpace(s)); err != nil {
		return errors.New("enter a whole number")
	}
	return nil
}

func requiredFloat(s string) error {
	if _, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err != nil {
		return errors.New("enter a number")
	}
	return nil
}

func atoi(s string) int {
	n, _ := strconv.Atoi(strings.TrimSpace(s))
	return n
}

func atof(s string) float64 {
	f, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return f
}

func nonEmpty(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New(field + " is required")
		}
		return nil
	}
}

// validated adapts a model validator taking an int.
func validated(fn func(int) error) func(string) error {
	return func(s string) error {
		if err := requiredInt(s); err != nil {
			return err
		}
		return fn(atoi(s))
	}
}

func newRegisterForm(v *formValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to truvida").
				Description("Create your profile to start tracking water and steps.\nEverything is stored on this machine."),
			huh.NewInput().Title("Name").Value(&v.name).Validate(nonEmpty("name")),
			huh.NewInput().Title("Age").Value(&v.age).Validate(requiredInt),
			huh.NewInput().Title("Height (cm)").Value(&v.height).Validate(requiredFloat),
			huh.NewInput().Title("Weight (kg)").Value(&v.weight).Validate(requiredFloat),
		),
		huh.NewGroup(
			huh.NewInput().Title("Username").Value(&v.username).Validate(nonEmpty("username")),
			huh.NewInput().
				Title("Password").
				Description("At least 6 characters.").
				EchoMode(huh.EchoModePassword).
				Value(&v.password).
				Validate(func(s string) error {
					if len(s) < model.MinPasswordLen {
						return errors.New("password is too short")
					}
					return nil
				}),
			huh.NewInput().
				Title("Confirm password").
				EchoMode(huh.EchoModePassword).
				Value(&v.confirm).
				Validate(func(s string) error {
					if s != v.password {
						return errors.New("passwords do not match")
					}
					return nil
				}),
		),
	).WithTheme(huh.ThemeDracula())
}

func (v *formValues) registration() model.Registration {
	return model.Registration{
		Name:            strings.TrimSpace(v.name),
		Age:             atoi(v.age),
		Height:          atof(v.height),
		Weight:          atof(v.weight),
		Username:        strings.TrimSpace(v.username),
		Password:        v.password,
		ConfirmPassword: v.confirm,
	}
}

func newProfileForm(v *formValues, u model.User) *huh.Form {
	v.name = u.Name
	v.age = strconv.Itoa(u.Age)
	v.height = strconv.FormatFloat(u.Height, 'f', -1, 64)
	v.weight = strconv.FormatFloat(u.Weight, 'f', -1, 64)
	v.waterGoal = strconv.Itoa(u.WaterGoal)
	v.stepsGoal = strconv.Itoa(u.StepsGoal)
	v.reminderHours = strconv.Itoa(u.WaterReminderInterval)
	v.notifications = u.NotificationsEnabled

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Name").Value(&v.name).Validate(nonEmpty("name")),
			huh.NewInput().Title("Age").Value(&v.age).Validate(requiredInt),
			huh.NewInput().Title("Height (cm)").Value(&v.height).Validate(requiredFloat),
			huh.NewInput().Title("Weight (kg)").Value(&v.weight).Validate(requiredFloat),
		).Title("Profile"),
		huh.NewGroup(
			huh.NewInput().Title("Daily water goal (ml)").Value(&v.waterGoal).Validate(requiredInt),
			huh.NewInput().Title("Daily steps goal").Value(&v.stepsGoal).Validate(validated(model.ValidateStepsGoal)),
			huh.NewConfirm().
				Title("Water reminders").
				Affirmative("On").
				Negative("Off").
				Value(&v.notifications),
			huh.NewInput().Title("Reminder interval (hours)").Value(&v.reminderHours).Validate(requiredInt),
		).Title("Goals & reminders"),
	).WithTheme(huh.ThemeDracula())
}

func (v *formValues) profile() model.Profile {
	return model.Profile{
		Name:                  strings.TrimSpace(v.name),
		Age:                   atoi(v.age),
		Height:                atof(v.height),
		Weight:                atof(v.weight),
		WaterGoal:             atoi(v.waterGoal),
		StepsGoal:             atoi(v.stepsGoal),
		NotificationsEnabled:  v.notifications,
		WaterReminderInterval: atoi(v.reminderHours),
	}
}

// newAmountForm prompts for a single number checked by validate.
func newAmountForm(v *formValues, title, initial string, validate func(int) error) *huh.Form {
	v.amount = initial
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title(title).Value(&v.amount).Validate(validated(validate)),
		),
	).WithTheme(huh.ThemeDracula())
}

func newResetForm(v *formValues) *huh.Form {
	v.proceed = false
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Delete all data?").
				Description("Your profile, water and steps history will be removed.").
				Affirmative("Delete").
				Negative("Cancel").
				Value(&v.proceed),
		),
	).WithTheme(huh.ThemeDracula())
}

func positive(n int) error {
	if n <= 0 {
		return model.ValidationError{Field: "steps", Message: "please enter a positive number"}
	}
	return model.ValidateSteps(n)
}

func nonNegative(n int) error {
	return model.ValidateSteps(n)
}

// RegisterForm returns a standalone registration form and a reader for its
// result, for use outside the dashboard.
func RegisterForm() (*huh.Form, func() model.Registration) {
	v := &formValues{}
	return newRegisterForm(v), v.registration
}

// ProfileForm returns a standalone profile editor prefilled from u.
func ProfileForm(u model.User) (*huh.Form, func() model.Profile) {
	v := &formValues{}
	return newProfileForm(v, u), v.profile
}

// ResetForm returns a standalone delete-everything confirmation.
func ResetForm() (*huh.Form, func() bool) {
	v := &formValues{}
	return newResetForm(v), func() bool { return v.proceed }
}
