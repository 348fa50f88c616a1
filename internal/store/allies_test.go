package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"questline/internal/model"
)

func TestInviteAlly_CreatesInvitedAlly(t *testing.T) {
	s, _ := newTestStore(t)

	a := s.InviteAlly(context.Background(), "a@b.co", "Ana")

	assert.NotEmpty(t, a.ID)
	assert.Equal(t, "Ana", a.Name)
	assert.Equal(t, "a@b.co", a.Email)
	assert.Equal(t, model.AllyStatusInvited, a.Status)
	assert.False(t, a.InvitedAt.IsZero())
	assert.Zero(t, a.Level)
	assert.Zero(t, a.TotalXP)

	require.Len(t, s.Allies(), 1)
}

func TestInviteAlly_DuplicateEmailIsNotDeduplicated(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	first := s.InviteAlly(ctx, "same@example.com", "Ana")
	second := s.InviteAlly(ctx, "same@example.com", "Ana again")

	assert.NotEqual(t, first.ID, second.ID)
	assert.Len(t, s.Allies(), 2)
}

func TestUpdateAllyStatus_ChangesOnlyStatus(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	a := s.InviteAlly(ctx, "a@b.co", "Ana")
	s.UpdateAllyStatus(ctx, a.ID, model.AllyStatusAllied)

	got, ok := s.Ally(a.ID)
	require.True(t, ok)
	assert.Equal(t, model.AllyStatusAllied, got.Status)
	assert.Equal(t, a.Name, got.Name)
	assert.Equal(t, a.Email, got.Email)
	assert.True(t, got.InvitedAt.Equal(a.InvitedAt))
}

func TestUpdateAllyStatus_UnknownIDIsNoOpWithoutWrite(t *testing.T) {
	s, kv := newTestStore(t)
	ctx := context.Background()

	s.InviteAlly(ctx, "a@b.co", "Ana")
	writes := kv.WriteCount(alliesKey)

	s.UpdateAllyStatus(ctx, "no-such-ally", model.AllyStatusAllied)

	assert.Equal(t, writes, kv.WriteCount(alliesKey))
}

func TestAcceptAndDeclineWrappers(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	a := s.InviteAlly(ctx, "a@b.co", "Ana")
	b := s.InviteAlly(ctx, "b@c.co", "Bo")

	s.AcceptAlly(ctx, a.ID)
	s.DeclineAlly(ctx, b.ID)

	gotA, _ := s.Ally(a.ID)
	gotB, _ := s.Ally(b.ID)
	assert.Equal(t, model.AllyStatusAllied, gotA.Status)
	assert.Equal(t, model.AllyStatusDeclined, gotB.Status)
}

func TestRemoveAlly_DoesNotCascadeIntoQuests(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	ally := s.InviteAlly(ctx, "a@b.co", "Ana")
	q, ok := s.CreateQuestForAlly(ctx, ally.ID, model.Quest{Title: "Delegated"})
	require.True(t, ok)
	require.True(t, s.ShareQuestWithAlly(ctx, q.ID, ally.ID))

	s.RemoveAlly(ctx, ally.ID)

	_, found := s.Ally(ally.ID)
	assert.False(t, found)

	// The quest keeps the stale id; lookups simply miss.
	got, _ := s.Quest(q.ID)
	assert.Equal(t, ally.ID, got.AssignedTo)
	assert.Equal(t, []string{ally.ID}, got.SharedWith)
}
