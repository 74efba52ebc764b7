// Package model defines domain types and pure metric computations for truvida.
package model

import "time"

// Registration defaults applied to every new user.
const (
	DefaultWaterGoalML   = 2000
	DefaultStepsGoal     = 10000
	DefaultReminderHours = 2
	DefaultGlassSizeML   = 250
)

// GlassSizes are the preset glass sizes offered for quick logging, in ml.
var GlassSizes = []int{150, 250, 350, 500}

// User is the single profile stored per installation.
type User struct {
	ID                    string    `json:"id"`
	Name                  string    `json:"name"`
	Age                   int       `json:"age"`
	Height                float64   `json:"height"` // cm
	Weight                float64   `json:"weight"` // kg
	Username              string    `json:"username"`
	Password              string    `json:"password"` // bcrypt hash
	WaterGoal             int       `json:"waterGoal"`
	StepsGoal             int       `json:"stepsGoal"`
	NotificationsEnabled  bool      `json:"notificationsEnabled"`
	WaterReminderInterval int       `json:"waterReminderInterval"` // hours
	CreatedAt             time.Time `json:"createdAt"`
}

// ReminderInterval returns the water reminder cadence as a duration.
func (u User) ReminderInterval() time.Duration {
	h := u.WaterReminderInterval
	if h < 1 {
		h = DefaultReminderHours
	}
	return time.Duration(h) * time.Hour
}
