package store

import (
	"context"

	"github.com/google/uuid"

	"questline/internal/model"
)

// CreateBoard assigns identity and timestamps to a board draft, forces
// its quest list to start empty, appends it, persists, and returns it.
func (s *Store) CreateBoard(ctx context.Context, b model.Board) model.Board {
	now := s.now()
	b.ID = uuid.New().String()
	b.Quests = []model.Quest{}
	b.CreatedAt = now
	b.UpdatedAt = now
	if b.Owner == "" {
		b.Owner = model.LocalUserID
	}
	if b.Allies == nil {
		b.Allies = []model.Ally{}
	}

	s.mu.Lock()
	s.boards = append(s.boards, b)
	snap := make([]model.Board, len(s.boards))
	for i, board := range s.boards {
		snap[i] = board.Clone()
	}
	s.mu.Unlock()

	s.persist(ctx, write{boardsKey, snap})
	return b.Clone()
}
