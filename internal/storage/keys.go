package storage

import "strings"

// Entity types. Date-scoped entities are stored under "<entity>_<date>".
const (
	EntityUser          = "user"
	EntityWaterIntake   = "water_intake"
	EntityWaterEntries  = "water_entries"
	EntityStepsData     = "steps_data"
	EntityDailyProgress = "daily_progress"
	EntityClans         = "clans"
	EntityReminder      = "reminder_state"
)

// Key builds the store key for an entity and an optional date.
func Key(entity, date string) string {
	if date == "" {
		return entity
	}
	return entity + "_" + date
}

// DateFromKey returns the date part of a date-scoped key for entity.
func DateFromKey(entity, key string) (string, bool) {
	prefix := entity + "_"
	if !strings.HasPrefix(key, prefix) {
		return "", false
	}
	date := strings.TrimPrefix(key, prefix)
	return date, date != ""
}
