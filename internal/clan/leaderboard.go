package clan

import "sort"

// Standing is one row of a clan leaderboard.
type Standing struct {
	Rank        int
	Name        string
	Steps       int
	StepsTarget int
	Water       int // ml
	You         bool
}

// Leaderboard merges the clan roster with the current user's numbers and ranks
// by steps, then water. you.You is set on the user's row.
func Leaderboard(c Clan, you Standing) []Standing {
	you.You = true
	rows := make([]Standing, 0, len(c.roster)+1)
	rows = append(rows, c.roster...)
	rows = append(rows, you)

	for i := range rows {
		if rows[i].StepsTarget == 0 {
			rows[i].StepsTarget = you.StepsTarget
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Steps != rows[j].Steps {
			return rows[i].Steps > rows[j].Steps
		}
		return rows[i].Water > rows[j].Water
	})
	for i := range rows {
		rows[i].Rank = i + 1
	}
	return rows
}
