package app

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"questline/internal/model"
	"questline/internal/store"
	"questline/tests/testutil"
)

func TestCreateQuestCmd_MutatesStoreAndSignalsChange(t *testing.T) {
	s, _ := testutil.NewTestStore(t)
	m := New(s, model.SkinQuest)

	cmd := m.createQuest(model.Quest{Title: "Slay the dragon"})
	msg := cmd()

	assert.IsType(t, questsChangedMsg{}, msg)
	quests := s.Quests()
	require.Len(t, quests, 1)
	assert.Equal(t, "Slay the dragon", quests[0].Title)
}

func TestToggleQuestCmd_FlipsCompletion(t *testing.T) {
	s, _ := testutil.NewTestStore(t)
	m := New(s, model.SkinQuest)

	q := s.CreateQuest(context.Background(), model.Quest{Title: "Flip me"})

	msg := m.toggleQuest(q.ID, true)()
	assert.IsType(t, questsChangedMsg{}, msg)

	got, ok := s.Quest(q.ID)
	require.True(t, ok)
	assert.True(t, got.Completed)
}

func TestStepCmds_RoundTrip(t *testing.T) {
	s, _ := testutil.NewTestStore(t)
	m := New(s, model.SkinQuest)

	q := s.CreateQuest(context.Background(), model.Quest{Title: "Multi", IsMultiStep: true})

	m.addStep(q.ID, "First step")()
	got, ok := s.Quest(q.ID)
	require.True(t, ok)
	require.Len(t, got.SubQuests, 1)

	m.toggleStep(q.ID, got.SubQuests[0].ID, true)()
	got, _ = s.Quest(q.ID)
	assert.True(t, got.SubQuests[0].Completed)
	assert.InDelta(t, 100, store.Progress(got), 0.001)

	m.deleteStep(q.ID, got.SubQuests[0].ID)()
	got, _ = s.Quest(q.ID)
	assert.Empty(t, got.SubQuests)
}

func TestShareSelectedQuest_NothingFocused(t *testing.T) {
	s, _ := testutil.NewTestStore(t)
	m := New(s, model.SkinQuest)

	ally := s.InviteAlly(context.Background(), "ana@example.com", "Ana")

	msg := m.shareSelectedQuest(ally.ID)()
	shared, ok := msg.(sharedMsg)
	require.True(t, ok)
	assert.Equal(t, "Select something to share first", string(shared))
}

func TestExecuteCommand_Quit(t *testing.T) {
	s, _ := testutil.NewTestStore(t)
	m := New(s, model.SkinQuest)

	cmd := m.executeCommand("quit")
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestExecuteCommand_UnknownIsNoop(t *testing.T) {
	s, _ := testutil.NewTestStore(t)
	m := New(s, model.SkinQuest)

	assert.Nil(t, m.executeCommand("frobnicate"))
}

func TestHeaderStats_CountsAndXP(t *testing.T) {
	s, _ := testutil.NewTestStore(t)
	m := New(s, model.SkinQuest)

	ctx := context.Background()
	q := s.CreateQuest(ctx, model.Quest{Title: "Done", Difficulty: model.DifficultyHard})
	s.CreateQuest(ctx, model.Quest{Title: "Open"})
	s.UpdateQuest(ctx, q.ID, store.QuestUpdate{Completed: store.Ptr(true)})

	assert.Equal(t, "1 open · 1 done · 50XP", m.headerStats())
}
