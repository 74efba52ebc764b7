package clan

import (
	"context"
	"errors"
	"testing"

	"github.com/truvida/truvida/internal/storage"
	"github.com/truvida/truvida/internal/store"
)

func TestFind(t *testing.T) {
	tests := []struct {
		ref  string
		want string
	}{
		{"1", "Hydration Heroes"},
		{"titan", "Step Titans"},
		{" WELL ", "Wellness Warriors"},
	}
	for _, tt := range tests {
		c, err := Find(tt.ref)
		if err != nil {
			t.Errorf("Find(%q): %v", tt.ref, err)
			continue
		}
		if c.Name != tt.want {
			t.Errorf("Find(%q) = %s, want %s", tt.ref, c.Name, tt.want)
		}
	}
	for _, ref := range []string{"", "9", "nope"} {
		if _, err := Find(ref); !errors.Is(err, ErrUnknownClan) {
			t.Errorf("Find(%q): err = %v, want ErrUnknownClan", ref, err)
		}
	}
}

func TestJoinLeave(t *testing.T) {
	ctx := context.Background()
	r := NewRegistry(storage.New(store.NewMemory()))

	if got := r.Joined(ctx); len(got) != 0 {
		t.Fatalf("Joined on fresh store = %v", got)
	}
	if _, err := r.Join(ctx, "wELL"); err != nil {
		t.Fatal(err)
	}
	if _, err := r.Join(ctx, "2"); err != nil {
		t.Fatal(err)
	}
	if _, err := r.Join(ctx, "2"); err != nil {
		t.Fatalf("second join: %v", err)
	}

	joined := r.Joined(ctx)
	if len(joined) != 2 || joined[0].ID != "2" || joined[1].ID != "4" {
		t.Errorf("Joined = %+v", joined)
	}

	if _, err := r.Leave(ctx, "TITAN"); err != nil {
		t.Fatal(err)
	}
	if _, err := r.Leave(ctx, "TITAN"); !errors.Is(err, ErrNotMember) {
		t.Errorf("second leave: err = %v, want ErrNotMember", err)
	}

	list := r.List(ctx)
	if len(list) != len(Catalog) {
		t.Fatalf("List len = %d", len(list))
	}
	for _, m := range list {
		if m.Joined != (m.ID == "4") {
			t.Errorf("clan %s joined = %v", m.ID, m.Joined)
		}
	}
}

func TestLeaderboard(t *testing.T) {
	c, _ := Find("2")
	rows := Leaderboard(c, Standing{Name: "Ana", Steps: 9500, StepsTarget: 10000, Water: 2700})

	if len(rows) != 4 {
		t.Fatalf("rows = %d, want 4", len(rows))
	}
	want := []string{"Ana", "Rishi", "Rahul", "Sneha"}
	for i, name := range want {
		if rows[i].Name != name || rows[i].Rank != i+1 {
			t.Errorf("row %d = %+v, want %s", i, rows[i], name)
		}
		if rows[i].StepsTarget != 10000 {
			t.Errorf("row %d target = %d", i, rows[i].StepsTarget)
		}
	}
	if !rows[0].You || rows[1].You {
		t.Error("current user not marked")
	}

	// Equal steps fall back to water.
	rows = Leaderboard(c, Standing{Name: "Ana", Steps: 8700, Water: 2600})
	if rows[0].Name != "Ana" || rows[1].Name != "Rishi" {
		t.Errorf("tie order = %s, %s", rows[0].Name, rows[1].Name)
	}
}
