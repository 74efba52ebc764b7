// Package clan holds the static clan catalog, membership and leaderboards.
package clan

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/truvida/truvida/internal/storage"
)

var (
	// ErrUnknownClan is returned for an id or code not in the catalog.
	ErrUnknownClan = errors.New("clan: unknown clan")
	// ErrNotMember is returned when leaving a clan that was not joined.
	ErrNotMember = errors.New("clan: not a member")
)

// Clan is a catalog entry.
type Clan struct {
	ID       string
	Code     string
	Name     string
	Emoji    string
	Members  int
	AvgSteps int
	AvgWater int // ml

	roster []Standing
}

// Title is the emoji and name.
func (c Clan) Title() string { return c.Emoji + " " + c.Name }

// Catalog lists every clan that can be joined.
var Catalog = []Clan{
	{
		ID: "1", Code: "HYDRO", Name: "Hydration Heroes", Emoji: "💧",
		Members: 12, AvgSteps: 8542, AvgWater: 2400,
		roster: []Standing{
			{Name: "Meera", Steps: 9100, Water: 3000},
			{Name: "Arjun", Steps: 8300, Water: 2600},
			{Name: "Kavya", Steps: 6900, Water: 2400},
		},
	},
	{
		ID: "2", Code: "TITAN", Name: "Step Titans", Emoji: "🔥",
		Members: 8, AvgSteps: 12450, AvgWater: 2800,
		roster: []Standing{
			{Name: "Rishi", Steps: 8700, Water: 2500},
			{Name: "Rahul", Steps: 7800, Water: 2200},
			{Name: "Sneha", Steps: 7200, Water: 2100},
		},
	},
	{
		ID: "3", Code: "FIT", Name: "Fitness Fanatics", Emoji: "💪",
		Members: 15, AvgSteps: 7200, AvgWater: 2200,
		roster: []Standing{
			{Name: "Vikram", Steps: 7600, Water: 2300},
			{Name: "Priya", Steps: 7100, Water: 2000},
			{Name: "Dev", Steps: 5400, Water: 1900},
		},
	},
	{
		ID: "4", Code: "WELL", Name: "Wellness Warriors", Emoji: "🌟",
		Members: 6, AvgSteps: 9800, AvgWater: 2600,
		roster: []Standing{
			{Name: "Anika", Steps: 10400, Water: 2700},
			{Name: "Rohan", Steps: 9200, Water: 2500},
			{Name: "Isha", Steps: 8800, Water: 2600},
		},
	},
}

// Find looks a clan up by id or case-insensitive code.
func Find(ref string) (Clan, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return Clan{}, fmt.Errorf("%w: please enter a clan code", ErrUnknownClan)
	}
	for _, c := range Catalog {
		if c.ID == ref || strings.EqualFold(c.Code, ref) {
			return c, nil
		}
	}
	return Clan{}, fmt.Errorf("%w: %q", ErrUnknownClan, ref)
}

// Membership is a catalog entry with the user's joined flag.
type Membership struct {
	Clan
	Joined bool
}

// Registry tracks which clans the user joined.
type Registry struct {
	svc *storage.Service
}

// NewRegistry creates a Registry over svc.
func NewRegistry(svc *storage.Service) *Registry {
	return &Registry{svc: svc}
}

// List returns the catalog with joined flags.
func (r *Registry) List(ctx context.Context) []Membership {
	joined := r.svc.Clans(ctx)
	out := make([]Membership, 0, len(Catalog))
	for _, c := range Catalog {
		out = append(out, Membership{Clan: c, Joined: slices.Contains(joined, c.ID)})
	}
	return out
}

// Joined returns the clans the user is a member of, in catalog order.
func (r *Registry) Joined(ctx context.Context) []Clan {
	var out []Clan
	for _, m := range r.List(ctx) {
		if m.Joined {
			out = append(out, m.Clan)
		}
	}
	return out
}

// Join adds the clan identified by ref. Joining twice is a no-op.
func (r *Registry) Join(ctx context.Context, ref string) (Clan, error) {
	c, err := Find(ref)
	if err != nil {
		return Clan{}, err
	}
	ids := r.svc.Clans(ctx)
	if slices.Contains(ids, c.ID) {
		return c, nil
	}
	ids = append(ids, c.ID)
	sort.Strings(ids)
	if err := r.svc.SaveClans(ctx, ids); err != nil {
		return Clan{}, fmt.Errorf("joining %s: %w", c.Name, err)
	}
	return c, nil
}

// Leave removes the clan identified by ref.
func (r *Registry) Leave(ctx context.Context, ref string) (Clan, error) {
	c, err := Find(ref)
	if err != nil {
		return Clan{}, err
	}
	ids := r.svc.Clans(ctx)
	i := slices.Index(ids, c.ID)
	if i < 0 {
		return Clan{}, ErrNotMember
	}
	ids = slices.Delete(ids, i, i+1)
	if err := r.svc.SaveClans(ctx, ids); err != nil {
		return Clan{}, fmt.Errorf("leaving %s: %w", c.Name, err)
	}
	return c, nil
}
