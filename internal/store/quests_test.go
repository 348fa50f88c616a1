package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"questline/internal/model"
)

func TestCreateQuest_Defaults(t *testing.T) {
	s, _ := newTestStore(t)

	q := s.CreateQuest(context.Background(), model.Quest{Title: "Buy groceries"})

	assert.NotEmpty(t, q.ID)
	assert.False(t, q.Completed)
	assert.Equal(t, model.DifficultyMedium, q.Difficulty)
	assert.Equal(t, model.QuestStatusActive, q.Status)
	assert.Equal(t, model.LocalUserID, q.CreatedBy)
	assert.NotNil(t, q.SubQuests)
	assert.Empty(t, q.SubQuests)
	assert.False(t, q.IsMultiStep)
	assert.Equal(t, model.BaseXP(model.DifficultyMedium), q.XPReward)
	assert.True(t, q.CreatedAt.Equal(q.UpdatedAt))
}

func TestCreateQuest_UniqueIDs(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		q := s.CreateQuest(ctx, model.Quest{Title: "Quest"})
		require.False(t, seen[q.ID], "duplicate id %s", q.ID)
		seen[q.ID] = true
	}
}

func TestCreateQuest_ComputesXPFromDifficultyAndSteps(t *testing.T) {
	s, _ := newTestStore(t)

	q := s.CreateQuest(context.Background(), model.Quest{
		Title:      "Train",
		Difficulty: model.DifficultyHard,
		SubQuests:  []model.SubQuest{{Title: "Warm up"}, {Title: "Lift"}},
	})

	// base 50 + two hard steps at 20 each
	assert.Equal(t, 90, q.XPReward)
	for _, sub := range q.SubQuests {
		assert.NotEmpty(t, sub.ID)
		assert.Equal(t, 20, sub.XPReward)
	}
}

func TestUpdateQuest_MergesOnlyProvidedFields(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	q := s.CreateQuest(ctx, model.Quest{Title: "Buy groceries", Description: "weekly run"})

	s.UpdateQuest(ctx, q.ID, QuestUpdate{Completed: Ptr(true)})

	got, ok := s.Quest(q.ID)
	require.True(t, ok)
	assert.True(t, got.Completed)
	assert.Equal(t, "Buy groceries", got.Title)
	assert.Equal(t, "weekly run", got.Description)
	assert.Equal(t, q.Difficulty, got.Difficulty)
	assert.True(t, got.CreatedAt.Equal(q.CreatedAt))
	assert.True(t, got.UpdatedAt.After(q.UpdatedAt))
}

func TestUpdateQuest_ClearFlags(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	ally := s.InviteAlly(ctx, "a@b.co", "Ana")
	due := s.now()
	q := s.CreateQuest(ctx, model.Quest{Title: "Deadline", DueDate: &due, AssignedTo: ally.ID})

	s.UpdateQuest(ctx, q.ID, QuestUpdate{ClearDueDate: true, ClearAssignedTo: true})

	got, ok := s.Quest(q.ID)
	require.True(t, ok)
	assert.Nil(t, got.DueDate)
	assert.Empty(t, got.AssignedTo)
}

func TestUpdateQuest_UnknownIDIsNoOpWithoutWrite(t *testing.T) {
	s, kv := newTestStore(t)
	ctx := context.Background()

	q := s.CreateQuest(ctx, model.Quest{Title: "Keep me"})
	writes := kv.WriteCount(questsKey)

	s.UpdateQuest(ctx, "no-such-id", QuestUpdate{Completed: Ptr(true)})

	assert.Equal(t, writes, kv.WriteCount(questsKey))
	got, ok := s.Quest(q.ID)
	require.True(t, ok)
	assert.False(t, got.Completed)
	assert.True(t, got.UpdatedAt.Equal(q.UpdatedAt))
}

func TestDeleteQuest_UnknownIDLeavesCollectionIdentical(t *testing.T) {
	s, kv := newTestStore(t)
	ctx := context.Background()

	s.CreateQuest(ctx, model.Quest{Title: "One"})
	s.CreateQuest(ctx, model.Quest{Title: "Two"})
	before := s.Quests()
	writes := kv.WriteCount(questsKey)

	s.DeleteQuest(ctx, "no-such-id")

	assert.Equal(t, before, s.Quests())
	assert.Equal(t, writes, kv.WriteCount(questsKey))
}

func TestDeleteQuest_RemovesMatchingQuest(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	q1 := s.CreateQuest(ctx, model.Quest{Title: "One"})
	q2 := s.CreateQuest(ctx, model.Quest{Title: "Two"})

	s.DeleteQuest(ctx, q1.ID)

	quests := s.Quests()
	require.Len(t, quests, 1)
	assert.Equal(t, q2.ID, quests[0].ID)
}

func TestSubQuests_AddUpdateDelete(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	q := s.CreateQuest(ctx, model.Quest{Title: "Buy groceries", IsMultiStep: true})

	milk, ok := s.AddSubQuest(ctx, q.ID, "Milk")
	require.True(t, ok)
	_, ok = s.AddSubQuest(ctx, q.ID, "Eggs")
	require.True(t, ok)

	got, _ := s.Quest(q.ID)
	require.Len(t, got.SubQuests, 2)
	assert.Equal(t, "Milk", got.SubQuests[0].Title)
	assert.Equal(t, "Eggs", got.SubQuests[1].Title)
	assert.True(t, got.UpdatedAt.After(q.UpdatedAt))

	s.UpdateSubQuest(ctx, q.ID, milk.ID, SubQuestUpdate{Completed: Ptr(true)})
	got, _ = s.Quest(q.ID)
	assert.True(t, got.SubQuests[0].Completed)
	assert.True(t, got.SubQuests[0].UpdatedAt.After(milk.UpdatedAt))
	assert.InDelta(t, 50.0, Progress(got), 0.001)

	s.DeleteSubQuest(ctx, q.ID, milk.ID)
	got, _ = s.Quest(q.ID)
	require.Len(t, got.SubQuests, 1)
	assert.Equal(t, "Eggs", got.SubQuests[0].Title)
}

func TestSubQuests_UnknownParentOrChildIsNoOp(t *testing.T) {
	s, kv := newTestStore(t)
	ctx := context.Background()

	q := s.CreateQuest(ctx, model.Quest{Title: "Parent"})
	sub, _ := s.AddSubQuest(ctx, q.ID, "Step")
	writes := kv.WriteCount(questsKey)

	_, ok := s.AddSubQuest(ctx, "no-such-quest", "Orphan")
	assert.False(t, ok)
	s.UpdateSubQuest(ctx, "no-such-quest", sub.ID, SubQuestUpdate{Completed: Ptr(true)})
	s.UpdateSubQuest(ctx, q.ID, "no-such-sub", SubQuestUpdate{Completed: Ptr(true)})
	s.DeleteSubQuest(ctx, q.ID, "no-such-sub")

	assert.Equal(t, writes, kv.WriteCount(questsKey))
	got, _ := s.Quest(q.ID)
	require.Len(t, got.SubQuests, 1)
	assert.False(t, got.SubQuests[0].Completed)
}

func TestShareQuestWithAlly_AppendsWithoutDeduplication(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	ally := s.InviteAlly(ctx, "ana@example.com", "Ana")
	q := s.CreateQuest(ctx, model.Quest{Title: "Shared"})

	require.True(t, s.ShareQuestWithAlly(ctx, q.ID, ally.ID))
	require.True(t, s.ShareQuestWithAlly(ctx, q.ID, ally.ID))

	got, _ := s.Quest(q.ID)
	// Re-sharing appends again; dedup is a display concern only.
	assert.Equal(t, []string{ally.ID, ally.ID}, got.SharedWith)
	assert.Equal(t, []string{ally.ID}, SharedWithUnique(got))
}

func TestShareQuestWithAlly_UnknownAllyAbortsSilently(t *testing.T) {
	s, kv := newTestStore(t)
	ctx := context.Background()

	q := s.CreateQuest(ctx, model.Quest{Title: "Private"})
	writes := kv.WriteCount(questsKey)

	assert.False(t, s.ShareQuestWithAlly(ctx, q.ID, "no-such-ally"))

	got, _ := s.Quest(q.ID)
	assert.Empty(t, got.SharedWith)
	assert.Equal(t, writes, kv.WriteCount(questsKey))
}

func TestCreateQuestForAlly_ForcesAssignment(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	ally := s.InviteAlly(ctx, "bo@example.com", "Bo")

	q, ok := s.CreateQuestForAlly(ctx, ally.ID, model.Quest{Title: "Delegated", AssignedTo: "ignored"})
	require.True(t, ok)
	assert.Equal(t, ally.ID, q.AssignedTo)

	_, ok = s.CreateQuestForAlly(ctx, "no-such-ally", model.Quest{Title: "Dropped"})
	assert.False(t, ok)
	assert.Len(t, s.Quests(), 1)
}
