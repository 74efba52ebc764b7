package daemon

import (
	"time"

	"github.com/truvida/truvida/internal/model"
)

// reminderAnchor is the later of the last drink, the last reminder and the
// start of now's day.
func reminderAnchor(now, lastDrink, lastReminder time.Time) time.Time {
	y, m, d := now.Date()
	anchor := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	for _, t := range []time.Time{lastDrink, lastReminder} {
		if t.After(anchor) {
			anchor = t
		}
	}
	return anchor
}

// NextReminder returns when the next water reminder becomes due.
func NextReminder(u model.User, now, lastDrink, lastReminder time.Time) time.Time {
	return reminderAnchor(now, lastDrink, lastReminder).Add(u.ReminderInterval())
}

// ReminderDue reports whether a water reminder should fire at now.
func ReminderDue(u model.User, now, lastDrink, lastReminder time.Time) bool {
	if !u.NotificationsEnabled {
		return false
	}
	return !now.Before(NextReminder(u, now, lastDrink, lastReminder))
}
