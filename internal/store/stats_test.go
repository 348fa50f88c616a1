package store

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"questline/internal/model"
)

func TestProgress_ZeroSubQuestsIsZero(t *testing.T) {
	assert.Zero(t, Progress(model.Quest{Title: "Empty"}))
}

func TestProgress_AllCombinations(t *testing.T) {
	cases := []struct {
		name string
		done []bool
		want float64
	}{
		{"none done", []bool{false, false, false, false}, 0},
		{"one of four", []bool{true, false, false, false}, 25},
		{"half", []bool{true, false, true, false}, 50},
		{"three of four", []bool{true, true, true, false}, 75},
		{"all done", []bool{true, true, true, true}, 100},
		{"one of three", []bool{true, false, false}, 100.0 / 3},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			q := model.Quest{}
			for _, d := range tc.done {
				q.SubQuests = append(q.SubQuests, model.SubQuest{Completed: d})
			}
			assert.InDelta(t, tc.want, Progress(q), 0.001)
		})
	}
}

func TestCountQuests(t *testing.T) {
	quests := []model.Quest{
		{ID: "1", Completed: true, SharedWith: []string{"a"}},
		{ID: "2", AssignedTo: "a"},
		{ID: "3"},
	}

	c := CountQuests(quests)
	assert.Equal(t, 3, c.Total)
	assert.Equal(t, 1, c.Completed)
	assert.Equal(t, 2, c.Pending)
	assert.Equal(t, 1, c.Shared)
	assert.Equal(t, 1, c.Assigned)
}

func TestXPAggregation(t *testing.T) {
	quests := []model.Quest{
		{Completed: true, XPReward: 25},
		{Completed: true, XPReward: 50},
		{Completed: false, XPReward: 100},
	}

	assert.Equal(t, 75, EarnedXP(quests))
	assert.Equal(t, 175, TotalXP(quests))
	assert.Equal(t, 0, EarnedXP(nil))
}

func TestFilters(t *testing.T) {
	quests := []model.Quest{
		{ID: "1", Completed: true, AssignedTo: "ally"},
		{ID: "2", SharedWith: []string{"ally"}},
		{ID: "3", Allies: []string{"ally"}},
		{ID: "4"},
	}

	assert.Len(t, Completed(quests), 1)
	assert.Len(t, Pending(quests), 3)
	assert.Len(t, AssignedTo(quests, "ally"), 1)
	assert.Len(t, VisibleTo(quests, "ally"), 2)
	assert.Len(t, ForAlly(quests, "ally"), 3)
	assert.Empty(t, ForAlly(quests, "stranger"))
}

func TestAllyProgress(t *testing.T) {
	quests := []model.Quest{
		{ID: "1", AssignedTo: "ally", Completed: true, XPReward: 50},
		{ID: "2", SharedWith: []string{"ally"}, Completed: true, XPReward: 25},
		{ID: "3", Allies: []string{"ally"}, Completed: false, XPReward: 100},
		{ID: "4", Completed: true, XPReward: 10},
	}

	completed, xp := AllyProgress(quests, "ally")
	assert.Equal(t, 2, completed)
	assert.Equal(t, 75, xp)
}
