package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"questline/internal/model"
)

func TestCreateBoard_StampsIdentityAndDefaults(t *testing.T) {
	s, _ := newTestStore(t)

	b := s.CreateBoard(context.Background(), model.Board{
		Title: "Season one",
		Emoji: "🗡",
		Theme: "dark",
	})

	assert.NotEmpty(t, b.ID)
	assert.Equal(t, "Season one", b.Title)
	assert.Equal(t, model.LocalUserID, b.Owner)
	assert.NotNil(t, b.Allies)
	assert.Empty(t, b.Allies)
	assert.False(t, b.CreatedAt.IsZero())
	assert.True(t, b.CreatedAt.Equal(b.UpdatedAt))
}

func TestCreateBoard_AlwaysStartsEmpty(t *testing.T) {
	s, _ := newTestStore(t)

	// A draft smuggling quests in still comes out empty.
	b := s.CreateBoard(context.Background(), model.Board{
		Title:  "Prefilled",
		Quests: []model.Quest{{ID: "q1", Title: "Smuggled"}},
	})

	assert.NotNil(t, b.Quests)
	assert.Empty(t, b.Quests)

	boards := s.Boards()
	require.Len(t, boards, 1)
	assert.Empty(t, boards[0].Quests)
}

func TestCreateBoard_UniqueIDs(t *testing.T) {
	s, _ := newTestStore(t)

	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		b := s.CreateBoard(context.Background(), model.Board{Title: "B"})
		assert.False(t, seen[b.ID])
		seen[b.ID] = true
	}
}
