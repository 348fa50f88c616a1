package store

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"questline/internal/model"
	"questline/internal/storage"
)

// fakeClock hands out strictly increasing UTC instants so tests can
// assert that UpdatedAt advances without sleeping.
type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.t = c.t.Add(time.Second)
	return c.t
}

func newTestStore(t *testing.T) (*Store, *storage.MemoryKV) {
	t.Helper()
	kv := storage.NewMemoryKV()
	s := New(kv, zerolog.Nop())
	s.now = newFakeClock().Now
	s.Load(context.Background())
	return s, kv
}

func TestLoad_MissingKeysYieldEmptyCollections(t *testing.T) {
	s, _ := newTestStore(t)

	assert.False(t, s.Loading())
	assert.Empty(t, s.Quests())
	assert.Empty(t, s.Allies())
	assert.Empty(t, s.Boards())
}

func TestLoad_CorruptKeyIsEmptyAndDoesNotFailLoad(t *testing.T) {
	kv := storage.NewMemoryKV()
	kv.Seed(questsKey, "{not json")
	kv.Seed(alliesKey, `[{"id":"a1","name":"Ana","email":"a@b.co","status":"invited"}]`)

	s := New(kv, zerolog.Nop())
	s.Load(context.Background())

	assert.False(t, s.Loading())
	assert.Empty(t, s.Quests())

	allies := s.Allies()
	require.Len(t, allies, 1)
	assert.Equal(t, "Ana", allies[0].Name)
}

func TestLoad_MigratesQuestsWrittenByOlderSchema(t *testing.T) {
	// A record predating sub-quests: no subQuests, no isMultiStep.
	kv := storage.NewMemoryKV()
	kv.Seed(questsKey, `[{"id":"q1","title":"Old quest","completed":true,"difficulty":"hard","xpReward":50}]`)

	s := New(kv, zerolog.Nop())
	s.Load(context.Background())

	quests := s.Quests()
	require.Len(t, quests, 1)
	q := quests[0]
	assert.Equal(t, "q1", q.ID)
	assert.Equal(t, "Old quest", q.Title)
	assert.True(t, q.Completed)
	assert.NotNil(t, q.SubQuests)
	assert.Empty(t, q.SubQuests)
	assert.False(t, q.IsMultiStep)
	assert.Equal(t, 50, q.XPReward)
}

func TestRoundTrip_SecondStoreSeesIdenticalCollections(t *testing.T) {
	s, kv := newTestStore(t)
	ctx := context.Background()

	due := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	created := s.CreateQuest(ctx, model.Quest{
		Title:       "Slay the backlog",
		Description: "One ticket at a time",
		Difficulty:  model.DifficultyLegendary,
		DueDate:     &due,
		Tags:        []string{"work", "epic"},
		IsMultiStep: true,
		SubQuests: []model.SubQuest{
			{Title: "Triage"},
			{Title: "Fix"},
		},
	})
	ally := s.InviteAlly(ctx, "ana@example.com", "Ana")
	s.CreateBoard(ctx, model.Board{Title: "Season one", Emoji: "🗡"})

	reloaded := New(kv, zerolog.Nop())
	reloaded.Load(ctx)

	quests := reloaded.Quests()
	require.Len(t, quests, 1)
	got := quests[0]
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, created.Title, got.Title)
	assert.Equal(t, created.Tags, got.Tags)
	assert.Equal(t, created.XPReward, got.XPReward)
	require.Len(t, got.SubQuests, 2)
	assert.Equal(t, created.SubQuests[0].ID, got.SubQuests[0].ID)
	require.NotNil(t, got.DueDate)
	assert.True(t, got.DueDate.Equal(due))
	assert.True(t, got.CreatedAt.Equal(created.CreatedAt))
	assert.True(t, got.UpdatedAt.Equal(created.UpdatedAt))

	allies := reloaded.Allies()
	require.Len(t, allies, 1)
	assert.Equal(t, ally.ID, allies[0].ID)
	assert.Equal(t, ally.Email, allies[0].Email)
	assert.True(t, allies[0].InvitedAt.Equal(ally.InvitedAt))

	boards := reloaded.Boards()
	require.Len(t, boards, 1)
	assert.Equal(t, "Season one", boards[0].Title)
	assert.NotNil(t, boards[0].Quests)
	assert.Empty(t, boards[0].Quests)
}

func TestPersist_WritesWholeCollectionAsJSONArray(t *testing.T) {
	s, kv := newTestStore(t)
	ctx := context.Background()

	s.CreateQuest(ctx, model.Quest{Title: "First"})
	s.CreateQuest(ctx, model.Quest{Title: "Second"})

	raw, ok, err := kv.Get(ctx, questsKey)
	require.NoError(t, err)
	require.True(t, ok)

	var arr []map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &arr))
	require.Len(t, arr, 2)
	assert.Equal(t, "First", arr[0]["title"])
	assert.Equal(t, "Second", arr[1]["title"])
}

func TestPersist_WriteFailureIsSwallowedAndMemoryAdvances(t *testing.T) {
	kv := &failingKV{}
	s := New(kv, zerolog.Nop())
	s.now = newFakeClock().Now
	s.Load(context.Background())

	q := s.CreateQuest(context.Background(), model.Quest{Title: "Unpersisted"})

	assert.NotEmpty(t, q.ID)
	require.Len(t, s.Quests(), 1)
	assert.Equal(t, "Unpersisted", s.Quests()[0].Title)
}

// failingKV errors on every operation.
type failingKV struct{}

func (f *failingKV) Get(context.Context, string) (string, bool, error) {
	return "", false, assert.AnError
}
func (f *failingKV) Set(context.Context, string, string) error { return assert.AnError }
func (f *failingKV) Close() error                              { return nil }

func TestAccessors_ReturnUnaliasedSnapshots(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	s.CreateQuest(ctx, model.Quest{Title: "Original", Tags: []string{"keep"}})

	snap := s.Quests()
	snap[0].Title = "Mutated"
	snap[0].Tags[0] = "mutated"
	snap[0].SubQuests = append(snap[0].SubQuests, model.SubQuest{Title: "sneaky"})

	fresh := s.Quests()
	assert.Equal(t, "Original", fresh[0].Title)
	assert.Equal(t, []string{"keep"}, fresh[0].Tags)
	assert.Empty(t, fresh[0].SubQuests)
}
