package store

import (
	"context"

	"github.com/google/uuid"

	"questline/internal/model"
)

// InviteAlly creates an ally with a fresh id, invited status, and the
// current time, appends it, persists, and returns it. Input syntax is
// validated by the invite form before this is reached; the store does
// not re-validate, and duplicate-email invitations are not deduplicated.
func (s *Store) InviteAlly(ctx context.Context, email, name string) model.Ally {
	a := model.Ally{
		ID:        uuid.New().String(),
		Name:      name,
		Email:     email,
		Status:    model.AllyStatusInvited,
		InvitedAt: s.now(),
	}

	s.mu.Lock()
	s.allies = append(s.allies, a)
	snap := append([]model.Ally(nil), s.allies...)
	s.mu.Unlock()

	s.persist(ctx, write{alliesKey, snap})
	return a
}

// UpdateAllyStatus sets the status of the matching ally. Any status may
// be set from any other; an unknown id is a no-op with no write.
func (s *Store) UpdateAllyStatus(ctx context.Context, id, status string) {
	s.mu.Lock()
	idx := -1
	for i := range s.allies {
		if s.allies[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return
	}
	s.allies[idx].Status = status
	snap := append([]model.Ally(nil), s.allies...)
	s.mu.Unlock()

	s.persist(ctx, write{alliesKey, snap})
}

// AcceptAlly marks the ally as allied.
func (s *Store) AcceptAlly(ctx context.Context, id string) {
	s.UpdateAllyStatus(ctx, id, model.AllyStatusAllied)
}

// DeclineAlly marks the ally as declined.
func (s *Store) DeclineAlly(ctx context.Context, id string) {
	s.UpdateAllyStatus(ctx, id, model.AllyStatusDeclined)
}

// RemoveAlly deletes the ally with the given id. Quest references are
// weak and are not cascaded: any quest still holding the id keeps it,
// and lookups tolerate the miss.
func (s *Store) RemoveAlly(ctx context.Context, id string) {
	s.mu.Lock()
	kept := s.allies[:0]
	for _, a := range s.allies {
		if a.ID != id {
			kept = append(kept, a)
		}
	}
	if len(kept) == len(s.allies) {
		s.mu.Unlock()
		return
	}
	s.allies = kept
	snap := append([]model.Ally(nil), s.allies...)
	s.mu.Unlock()

	s.persist(ctx, write{alliesKey, snap})
}
