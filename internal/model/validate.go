package model

import (
	"fmt"
	"strings"
)

// ValidationError describes a rejected field value.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Accepted ranges for profile fields.
const (
	MinAge, MaxAge                   = 1, 120
	MinHeight, MaxHeight             = 50.0, 300.0
	MinWeight, MaxWeight             = 20.0, 500.0
	MinWaterGoal, MaxWaterGoal       = 500, 5000
	MaxQuickWaterGoal                = 10000
	MinStepsGoal, MaxStepsGoal       = 1000, 50000
	MinReminderHours, MaxReminderHrs = 1, 12
	MinPasswordLen                   = 6
	MaxCustomWaterML                 = 2000
	MaxDailySteps                    = 200000
)

// Registration is the input for creating the profile.
type Registration struct {
	Name            string
	Age             int
	Height          float64
	Weight          float64
	Username        string
	Password        string
	ConfirmPassword string
}

// Profile holds the editable profile fields.
type Profile struct {
	Name                  string
	Age                   int
	Height                float64
	Weight                float64
	WaterGoal             int
	StepsGoal             int
	NotificationsEnabled  bool
	WaterReminderInterval int
}

// ProfileOf extracts the editable fields of u.
func ProfileOf(u User) Profile {
	return Profile{
		Name:                  u.Name,
		Age:                   u.Age,
		Height:                u.Height,
		Weight:                u.Weight,
		WaterGoal:             u.WaterGoal,
		StepsGoal:             u.StepsGoal,
		NotificationsEnabled:  u.NotificationsEnabled,
		WaterReminderInterval: u.WaterReminderInterval,
	}
}

// Apply copies p onto u.
func (p Profile) Apply(u *User) {
	u.Name = strings.TrimSpace(p.Name)
	u.Age = p.Age
	u.Height = p.Height
	u.Weight = p.Weight
	u.WaterGoal = p.WaterGoal
	u.StepsGoal = p.StepsGoal
	u.NotificationsEnabled = p.NotificationsEnabled
	u.WaterReminderInterval = p.WaterReminderInterval
}

// ValidateRegistration checks a registration form.
func ValidateRegistration(r Registration) error {
	if strings.TrimSpace(r.Name) == "" || strings.TrimSpace(r.Username) == "" || strings.TrimSpace(r.Password) == "" {
		return ValidationError{Field: "form", Message: "please fill in all fields"}
	}
	if r.Password != r.ConfirmPassword {
		return ValidationError{Field: "password", Message: "passwords do not match"}
	}
	if len(r.Password) < MinPasswordLen {
		return ValidationError{Field: "password", Message: fmt.Sprintf("password must be at least %d characters long", MinPasswordLen)}
	}
	return validateBody(r.Age, r.Height, r.Weight)
}

// ValidateProfile checks an edited profile.
func ValidateProfile(p Profile) error {
	if strings.TrimSpace(p.Name) == "" {
		return ValidationError{Field: "name", Message: "name is required"}
	}
	if err := validateBody(p.Age, p.Height, p.Weight); err != nil {
		return err
	}
	if p.WaterGoal < MinWaterGoal || p.WaterGoal > MaxWaterGoal {
		return ValidationError{Field: "waterGoal", Message: fmt.Sprintf("please enter a valid water goal (%d-%dml)", MinWaterGoal, MaxWaterGoal)}
	}
	if err := ValidateStepsGoal(p.StepsGoal); err != nil {
		return err
	}
	if p.WaterReminderInterval < MinReminderHours || p.WaterReminderInterval > MaxReminderHrs {
		return ValidationError{Field: "waterReminderInterval", Message: fmt.Sprintf("please enter a valid reminder interval (%d-%d hours)", MinReminderHours, MaxReminderHrs)}
	}
	return nil
}

// ValidateWaterGoal checks a goal set from the water screen, which allows a wider range.
func ValidateWaterGoal(ml int) error {
	if ml <= 0 {
		return ValidationError{Field: "waterGoal", Message: "please enter a valid water goal"}
	}
	if ml < MinWaterGoal || ml > MaxQuickWaterGoal {
		return ValidationError{Field: "waterGoal", Message: fmt.Sprintf("water goal should be between %dml and %dml", MinWaterGoal, MaxQuickWaterGoal)}
	}
	return nil
}

// ValidateStepsGoal checks a daily steps goal.
func ValidateStepsGoal(n int) error {
	if n < MinStepsGoal || n > MaxStepsGoal {
		return ValidationError{Field: "stepsGoal", Message: fmt.Sprintf("please enter a valid steps goal (%d-%d)", MinStepsGoal, MaxStepsGoal)}
	}
	return nil
}

// ValidateSteps checks a day's step total.
func ValidateSteps(n int) error {
	if n < 0 {
		return ValidationError{Field: "steps", Message: "steps cannot be negative"}
	}
	if n > MaxDailySteps {
		return ValidationError{Field: "steps", Message: fmt.Sprintf("a day holds at most %d steps", MaxDailySteps)}
	}
	return nil
}

// ValidateWaterAmount checks a custom drink amount.
func ValidateWaterAmount(ml int) error {
	if ml <= 0 || ml > MaxCustomWaterML {
		return ValidationError{Field: "amount", Message: fmt.Sprintf("please enter a valid amount (1-%dml)", MaxCustomWaterML)}
	}
	return nil
}

func validateBody(age int, height, weight float64) error {
	if age < MinAge || age > MaxAge {
		return ValidationError{Field: "age", Message: fmt.Sprintf("please enter a valid age (%d-%d)", MinAge, MaxAge)}
	}
	if height < MinHeight || height > MaxHeight {
		return ValidationError{Field: "height", Message: "please enter a valid height in cm (50-300)"}
	}
	if weight < MinWeight || weight > MaxWeight {
		return ValidationError{Field: "weight", Message: "please enter a valid weight in kg (20-500)"}
	}
	return nil
}
