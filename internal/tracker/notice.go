package tracker

import (
	"errors"
	"fmt"

	"github.com/truvida/truvida/internal/clan"
	"github.com/truvida/truvida/internal/model"
	"github.com/truvida/truvida/internal/stepsource"
)

// Op names a user-facing operation for failure messages.
type Op string

const (
	OpRegister  Op = "create account"
	OpProfile   Op = "update profile"
	OpWaterGoal Op = "update water goal"
	OpStepsGoal Op = "update steps goal"
	OpWater     Op = "update water intake"
	OpSteps     Op = "update steps"
	OpClans     Op = "update clans"
	OpClear     Op = "clear data"
)

// OpError wraps a persistence failure with the operation it interrupted.
type OpError struct {
	Op  Op
	Err error
}

func (e *OpError) Error() string { return fmt.Sprintf("%s: %v", e.Op, e.Err) }

func (e *OpError) Unwrap() error { return e.Err }

// ClanOpError tags a clan membership persistence failure with OpClans.
// Catalog and membership errors pass through unchanged.
func ClanOpError(err error) error {
	if err == nil || errors.Is(err, clan.ErrUnknownClan) || errors.Is(err, clan.ErrNotMember) {
		return err
	}
	return &OpError{Op: OpClans, Err: err}
}

// Level is the severity of a Notice.
type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelWarning
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelSuccess:
		return "success"
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

// Notice is a short non-blocking message for the user.
type Notice struct {
	Level   Level
	Title   string
	Message string
}

// Success builds a success notice.
func Success(title, message string) Notice {
	return Notice{Level: LevelSuccess, Title: title, Message: message}
}

// WaterGoalNotice is shown when the water goal is crossed.
func WaterGoalNotice() Notice {
	return Success("Goal Achieved!", "Congratulations! You've reached your daily water goal! 💧")
}

// StepsGoalNotice is shown when the steps goal is crossed.
func StepsGoalNotice() Notice {
	return Success("Goal Achieved!", "Amazing! You've reached your daily steps goal! 🎉")
}

// NoticeFor converts an operation error into a notice. A nil error yields a
// zero Notice.
func NoticeFor(err error) Notice {
	if err == nil {
		return Notice{}
	}

	var verr model.ValidationError
	var opErr *OpError
	switch {
	case errors.As(err, &verr):
		return Notice{Level: LevelWarning, Title: "Invalid input", Message: verr.Message}
	case errors.Is(err, ErrNoUser):
		return Notice{Level: LevelWarning, Title: "Not registered", Message: "Create a profile first with `truvida register`."}
	case errors.Is(err, ErrInvalidCredentials):
		return Notice{Level: LevelError, Title: "Login failed", Message: "Invalid username or password."}
	case errors.Is(err, ErrUsernameTaken):
		return Notice{Level: LevelError, Title: "Registration failed", Message: "Username already exists."}
	case errors.Is(err, ErrNoEntries):
		return Notice{Level: LevelInfo, Title: "Nothing to remove", Message: "No water logged for this day."}
	case errors.Is(err, ErrEntryNotFound):
		return Notice{Level: LevelWarning, Title: "Nothing to remove", Message: "No water entry with that id."}
	case errors.Is(err, stepsource.ErrUnauthorized):
		return Notice{Level: LevelError, Title: "Step sync failed", Message: "The step provider rejected the token."}
	case errors.Is(err, stepsource.ErrRateLimited):
		return Notice{Level: LevelWarning, Title: "Step sync failed", Message: "The step provider is rate limiting, try again later."}
	case errors.Is(err, clan.ErrUnknownClan):
		return Notice{Level: LevelWarning, Title: "Unknown clan", Message: "See `truvida clan list` for ids and codes."}
	case errors.Is(err, clan.ErrNotMember):
		return Notice{Level: LevelInfo, Title: "Not a member", Message: "You have not joined that clan."}
	case errors.As(err, &opErr):
		return Notice{Level: LevelError, Title: "Failed to " + string(opErr.Op), Message: opErr.Err.Error()}
	default:
		return Notice{Level: LevelError, Title: "Error", Message: err.Error()}
	}
}
