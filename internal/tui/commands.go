package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/truvida/truvida/internal/clan"
	"github.com/truvida/truvida/internal/cli"
	"github.com/truvida/truvida/internal/model"
	"github.com/truvida/truvida/internal/pipeline"
	"github.com/truvida/truvida/internal/stepsource"
	"github.com/truvida/truvida/internal/tracker"
)

const (
	opTimeout       = 15 * time.Second
	refreshInterval = 30 * time.Second
	noticeTTL       = 6 * time.Second
)

// dayData is everything the dashboard renders, loaded in one pass.
type dayData struct {
	date    string
	now     time.Time
	user    *model.User
	snap    model.DailySnapshot
	entries []model.WaterEntry
	history []pipeline.DayStats // newest first
	summary pipeline.Summary
	clans   []clan.Membership
}

// dataLoadedMsg carries a fresh dayData.
type dataLoadedMsg struct {
	data dayData
}

// opDoneMsg reports the outcome of a mutation. The dashboard reloads after it.
type opDoneMsg struct {
	notice tracker.Notice
}

type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func loadDataCmd(tr *tracker.Tracker, clans *clan.Registry, days int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()
		return dataLoadedMsg{data: loadData(ctx, tr, clans, days)}
	}
}

func loadData(ctx context.Context, tr *tracker.Tracker, clans *clan.Registry, days int) dayData {
	now := tr.Now()
	d := dayData{
		date: model.DateKey(now),
		now:  now,
	}
	d.user, _ = tr.User(ctx)
	d.snap = tr.Day(ctx, d.date)
	d.entries = tr.WaterLog(ctx, d.date)
	d.clans = clans.List(ctx)

	goals := model.User{WaterGoal: d.snap.WaterGoal, StepsGoal: d.snap.StepsGoal}
	d.history = pipeline.LoadHistory(ctx, tr.Service(), goals, pipeline.DateRange(now, days))
	d.summary = pipeline.Summarize(d.history)
	return d
}

// opCmd runs fn off the UI loop and converts its outcome into a notice.
func opCmd(fn func(ctx context.Context) (tracker.Notice, error)) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()
		n, err := fn(ctx)
		if err != nil {
			return opDoneMsg{notice: tracker.NoticeFor(err)}
		}
		return opDoneMsg{notice: n}
	}
}

func addWaterCmd(tr *tracker.Tracker, date string, amount, glass int) tea.Cmd {
	return opCmd(func(ctx context.Context) (tracker.Notice, error) {
		res, err := tr.AddWater(ctx, date, amount, glass)
		if err != nil {
			return tracker.Notice{}, err
		}
		if res.GoalReached {
			return tracker.WaterGoalNotice(), nil
		}
		return tracker.Success("Water added", "+"+cli.FormatML(res.Entry.Amount)), nil
	})
}

func undoWaterCmd(tr *tracker.Tracker, date string) tea.Cmd {
	return opCmd(func(ctx context.Context) (tracker.Notice, error) {
		res, err := tr.RemoveLastWater(ctx, date)
		if err != nil {
			return tracker.Notice{}, err
		}
		return tracker.Notice{Level: tracker.LevelInfo, Title: "Removed", Message: "-" + cli.FormatML(res.Entry.Amount)}, nil
	})
}

func addStepsCmd(tr *tracker.Tracker, date string, n int) tea.Cmd {
	return opCmd(func(ctx context.Context) (tracker.Notice, error) {
		res, err := tr.AddSteps(ctx, date, n)
		if err != nil {
			return tracker.Notice{}, err
		}
		return stepsNotice(res, "Steps added", "+"+cli.FormatSteps(n)), nil
	})
}

func setStepsCmd(tr *tracker.Tracker, date string, n int) tea.Cmd {
	return opCmd(func(ctx context.Context) (tracker.Notice, error) {
		res, err := tr.SetSteps(ctx, date, n)
		if err != nil {
			return tracker.Notice{}, err
		}
		return stepsNotice(res, "Steps updated", cli.FormatSteps(n)+" steps"), nil
	})
}

func syncStepsCmd(tr *tracker.Tracker, date string) tea.Cmd {
	return opCmd(func(ctx context.Context) (tracker.Notice, error) {
		res, err := tr.SyncSteps(ctx, date)
		if err != nil {
			return tracker.Notice{}, err
		}
		if res.SyncErr != nil {
			n := tracker.NoticeFor(res.SyncErr)
			n.Message += " Kept the local count."
			return n, nil
		}
		if res.Source != stepsource.SourceProvider {
			return tracker.Notice{Level: tracker.LevelInfo, Title: "No step provider", Message: "Set steps.provider_url with `truvida config set`."}, nil
		}
		return stepsNotice(res, "Steps synced", cli.FormatSteps(res.Steps.Steps)+" steps"), nil
	})
}

func stepsNotice(res tracker.StepsResult, title, msg string) tracker.Notice {
	if res.GoalReached {
		return tracker.StepsGoalNotice()
	}
	return tracker.Success(title, msg)
}

func setGoalCmd(tr *tracker.Tracker, water bool, n int) tea.Cmd {
	return opCmd(func(ctx context.Context) (tracker.Notice, error) {
		if water {
			if _, err := tr.SetWaterGoal(ctx, n); err != nil {
				return tracker.Notice{}, err
			}
			return tracker.Success("Goal updated", "Daily water goal: "+cli.FormatML(n)), nil
		}
		if _, err := tr.SetStepsGoal(ctx, n); err != nil {
			return tracker.Notice{}, err
		}
		return tracker.Success("Goal updated", "Daily steps goal: "+cli.FormatSteps(n)), nil
	})
}

func registerCmd(tr *tracker.Tracker, r model.Registration) tea.Cmd {
	return opCmd(func(ctx context.Context) (tracker.Notice, error) {
		u, err := tr.Register(ctx, r)
		if err != nil {
			return tracker.Notice{}, err
		}
		return tracker.Success("Welcome!", fmt.Sprintf("Account created for %s.", u.Name)), nil
	})
}

func updateProfileCmd(tr *tracker.Tracker, p model.Profile, title string) tea.Cmd {
	return opCmd(func(ctx context.Context) (tracker.Notice, error) {
		if _, err := tr.UpdateProfile(ctx, p); err != nil {
			return tracker.Notice{}, err
		}
		return tracker.Success(title, ""), nil
	})
}

func resetCmd(tr *tracker.Tracker) tea.Cmd {
	return opCmd(func(ctx context.Context) (tracker.Notice, error) {
		if err := tr.ClearAll(ctx); err != nil {
			return tracker.Notice{}, err
		}
		return tracker.Notice{Level: tracker.LevelInfo, Title: "Data cleared", Message: "All records were deleted."}, nil
	})
}

func clanCmd(clans *clan.Registry, ref string, join bool) tea.Cmd {
	return opCmd(func(ctx context.Context) (tracker.Notice, error) {
		if join {
			c, err := clans.Join(ctx, ref)
			if err != nil {
				return tracker.Notice{}, tracker.ClanOpError(err)
			}
			return tracker.Success("Joined", c.Title()), nil
		}
		c, err := clans.Leave(ctx, ref)
		if err != nil {
			return tracker.Notice{}, tracker.ClanOpError(err)
		}
		return tracker.Notice{Level: tracker.LevelInfo, Title: "Left", Message: c.Title()}, nil
	})
}
