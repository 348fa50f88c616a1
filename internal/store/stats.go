package store

import "questline/internal/model"

// Derived queries over quest snapshots. These are pure functions used
// for display; nothing here touches persisted state.

// Completed returns the quests marked completed.
func Completed(quests []model.Quest) []model.Quest {
	var out []model.Quest
	for _, q := range quests {
		if q.Completed {
			out = append(out, q)
		}
	}
	return out
}

// Pending returns the quests not yet completed.
func Pending(quests []model.Quest) []model.Quest {
	var out []model.Quest
	for _, q := range quests {
		if !q.Completed {
			out = append(out, q)
		}
	}
	return out
}

// AssignedTo returns the quests whose single responsible party is allyID.
func AssignedTo(quests []model.Quest, allyID string) []model.Quest {
	var out []model.Quest
	for _, q := range quests {
		if q.AssignedTo == allyID {
			out = append(out, q)
		}
	}
	return out
}

// VisibleTo returns the quests shared with or collaborated on by allyID.
func VisibleTo(quests []model.Quest, allyID string) []model.Quest {
	var out []model.Quest
	for _, q := range quests {
		if contains(q.SharedWith, allyID) || contains(q.Allies, allyID) {
			out = append(out, q)
		}
	}
	return out
}

// ForAlly returns every quest allyID is involved in: assigned, shared
// with, or listed as a collaborator.
func ForAlly(quests []model.Quest, allyID string) []model.Quest {
	var out []model.Quest
	for _, q := range quests {
		if q.AssignedTo == allyID || contains(q.SharedWith, allyID) || contains(q.Allies, allyID) {
			out = append(out, q)
		}
	}
	return out
}

// Counts aggregates collection-level totals for the header stats.
type Counts struct {
	Total     int
	Completed int
	Pending   int
	Shared    int
	Assigned  int
}

// CountQuests computes aggregate counts over a quest snapshot.
func CountQuests(quests []model.Quest) Counts {
	c := Counts{Total: len(quests)}
	for _, q := range quests {
		if q.Completed {
			c.Completed++
		} else {
			c.Pending++
		}
		if len(q.SharedWith) > 0 {
			c.Shared++
		}
		if q.AssignedTo != "" {
			c.Assigned++
		}
	}
	return c
}

// EarnedXP sums the XP reward of completed quests.
func EarnedXP(quests []model.Quest) int {
	total := 0
	for _, q := range quests {
		if q.Completed {
			total += q.XPReward
		}
	}
	return total
}

// TotalXP sums the XP reward of all quests.
func TotalXP(quests []model.Quest) int {
	total := 0
	for _, q := range quests {
		total += q.XPReward
	}
	return total
}

// CompletedSteps returns the completed sub-quests of a quest.
func CompletedSteps(q model.Quest) []model.SubQuest {
	var out []model.SubQuest
	for _, sq := range q.SubQuests {
		if sq.Completed {
			out = append(out, sq)
		}
	}
	return out
}

// Progress returns the checklist completion percentage for a quest:
// 100 * completed / total sub-quests, and 0 for a quest with none.
func Progress(q model.Quest) float64 {
	if len(q.SubQuests) == 0 {
		return 0
	}
	done := 0
	for _, sq := range q.SubQuests {
		if sq.Completed {
			done++
		}
	}
	return float64(done) / float64(len(q.SubQuests)) * 100
}

// AllyProgress reports how many of allyID's quests are completed and
// the XP those completions earned. Used for the ally card display.
func AllyProgress(quests []model.Quest, allyID string) (completed, xp int) {
	for _, q := range ForAlly(quests, allyID) {
		if q.Completed {
			completed++
			xp += q.XPReward
		}
	}
	return completed, xp
}

// SharedWithUnique returns the distinct ally ids a quest is shared
// with, preserving first-seen order. The stored sequence itself is
// never deduplicated.
func SharedWithUnique(q model.Quest) []string {
	seen := make(map[string]bool, len(q.SharedWith))
	var out []string
	for _, id := range q.SharedWith {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
