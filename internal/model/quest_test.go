package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidEmail(t *testing.T) {
	valid := []string{
		"a@b.co",
		"ana.banana@example.com",
		"x+tag@sub.domain.org",
	}
	for _, e := range valid {
		assert.True(t, ValidEmail(e), e)
	}

	invalid := []string{
		"",
		"not-an-email",
		"missing@dot",
		"@nolocal.com",
		"nodomain@",
		"white space@example.com",
		"trailing@example.com ",
	}
	for _, e := range invalid {
		assert.False(t, ValidEmail(e), e)
	}
}

func TestXPTables(t *testing.T) {
	assert.Equal(t, 10, BaseXP(DifficultyEasy))
	assert.Equal(t, 25, BaseXP(DifficultyMedium))
	assert.Equal(t, 50, BaseXP(DifficultyHard))
	assert.Equal(t, 100, BaseXP(DifficultyLegendary))
	assert.Equal(t, 25, BaseXP(Difficulty("unknown")))

	assert.Equal(t, 5, StepXP(DifficultyEasy))
	assert.Equal(t, 10, StepXP(DifficultyMedium))
	assert.Equal(t, 20, StepXP(DifficultyHard))
	assert.Equal(t, 30, StepXP(DifficultyLegendary))
	assert.Equal(t, 10, StepXP(Difficulty("unknown")))
}

func TestQuestClone_DoesNotAliasSlices(t *testing.T) {
	q := Quest{
		Title:      "Original",
		Tags:       []string{"one"},
		SharedWith: []string{"a"},
		SubQuests:  []SubQuest{{Title: "step"}},
	}

	c := q.Clone()
	c.Tags[0] = "changed"
	c.SharedWith = append(c.SharedWith, "b")
	c.SubQuests[0].Title = "changed"

	assert.Equal(t, "one", q.Tags[0])
	assert.Len(t, q.SharedWith, 1)
	assert.Equal(t, "step", q.SubQuests[0].Title)
}
