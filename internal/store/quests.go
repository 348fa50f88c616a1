package store

import (
	"context"

	"github.com/google/uuid"

	"questline/internal/model"
)

// CreateQuest assigns a fresh id and timestamps, fills defaults, appends
// the quest, persists, and returns the created quest.
func (s *Store) CreateQuest(ctx context.Context, q model.Quest) model.Quest {
	q = s.newQuest(q)

	s.mu.Lock()
	s.quests = append(s.quests, q)
	snap := cloneQuests(s.quests)
	s.mu.Unlock()

	s.persist(ctx, write{questsKey, snap})
	return q.Clone()
}

// CreateQuestForAlly is CreateQuest with assignment forced to allyID.
// It aborts silently when allyID does not resolve to an existing ally.
func (s *Store) CreateQuestForAlly(ctx context.Context, allyID string, q model.Quest) (model.Quest, bool) {
	s.mu.Lock()
	if _, ok := s.allyLocked(allyID); !ok {
		s.mu.Unlock()
		return model.Quest{}, false
	}
	q = s.newQuest(q)
	q.AssignedTo = allyID
	s.quests = append(s.quests, q)
	snap := cloneQuests(s.quests)
	s.mu.Unlock()

	s.persist(ctx, write{questsKey, snap})
	return q.Clone(), true
}

// newQuest stamps identity, timestamps, and defaults onto a draft quest.
func (s *Store) newQuest(q model.Quest) model.Quest {
	now := s.now()
	q.ID = uuid.New().String()
	q.CreatedAt = now
	q.UpdatedAt = now
	q.Completed = false

	if q.Difficulty == "" {
		q.Difficulty = model.DifficultyMedium
	}
	if q.Status == "" {
		q.Status = model.QuestStatusActive
	}
	if q.Category == "" {
		q.Category = model.CategoryPersonal
	}
	if q.CreatedBy == "" {
		q.CreatedBy = model.LocalUserID
	}
	if q.Tags == nil {
		q.Tags = []string{}
	}
	if q.Allies == nil {
		q.Allies = []string{}
	}
	if q.SharedWith == nil {
		q.SharedWith = []string{}
	}
	if q.SubQuests == nil {
		q.SubQuests = []model.SubQuest{}
	}
	for i := range q.SubQuests {
		if q.SubQuests[i].ID == "" {
			q.SubQuests[i].ID = uuid.New().String()
		}
		if q.SubQuests[i].XPReward == 0 {
			q.SubQuests[i].XPReward = model.StepXP(q.Difficulty)
		}
		q.SubQuests[i].CreatedAt = now
		q.SubQuests[i].UpdatedAt = now
	}
	if q.XPReward == 0 {
		q.XPReward = model.BaseXP(q.Difficulty)
		for _, sq := range q.SubQuests {
			q.XPReward += sq.XPReward
		}
	}
	return q
}

// UpdateQuest shallow-merges upd over the quest with the given id and
// refreshes its UpdatedAt. An unknown id is a no-op and issues no
// persistence write.
func (s *Store) UpdateQuest(ctx context.Context, id string, upd QuestUpdate) {
	s.mu.Lock()
	idx := s.questIndexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return
	}
	q := s.quests[idx].Clone()
	upd.apply(&q)
	q.UpdatedAt = s.now()
	s.quests[idx] = q
	snap := cloneQuests(s.quests)
	s.mu.Unlock()

	s.persist(ctx, write{questsKey, snap})
}

// DeleteQuest removes the quest with the given id; unknown ids are a
// no-op.
func (s *Store) DeleteQuest(ctx context.Context, id string) {
	s.mu.Lock()
	idx := s.questIndexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return
	}
	s.quests = append(s.quests[:idx], s.quests[idx+1:]...)
	snap := cloneQuests(s.quests)
	s.mu.Unlock()

	s.persist(ctx, write{questsKey, snap})
}

// AddSubQuest appends a fresh sub-quest to the named quest and refreshes
// the parent's UpdatedAt. It reports false without mutating anything
// when the quest is unknown.
func (s *Store) AddSubQuest(ctx context.Context, questID, title string) (model.SubQuest, bool) {
	s.mu.Lock()
	idx := s.questIndexLocked(questID)
	if idx < 0 {
		s.mu.Unlock()
		return model.SubQuest{}, false
	}

	now := s.now()
	q := s.quests[idx].Clone()
	sub := model.SubQuest{
		ID:        uuid.New().String(),
		Title:     title,
		Completed: false,
		XPReward:  model.StepXP(q.Difficulty),
		CreatedAt: now,
		UpdatedAt: now,
	}
	q.SubQuests = append(q.SubQuests, sub)
	q.UpdatedAt = now
	s.quests[idx] = q
	snap := cloneQuests(s.quests)
	s.mu.Unlock()

	s.persist(ctx, write{questsKey, snap})
	return sub, true
}

// UpdateSubQuest merges upd into the identified sub-quest, refreshing
// both the sub-quest's and the parent's UpdatedAt. Unknown quest or
// sub-quest ids are a no-op.
func (s *Store) UpdateSubQuest(ctx context.Context, questID, subQuestID string, upd SubQuestUpdate) {
	s.mu.Lock()
	idx := s.questIndexLocked(questID)
	if idx < 0 {
		s.mu.Unlock()
		return
	}
	q := s.quests[idx].Clone()

	subIdx := -1
	for i := range q.SubQuests {
		if q.SubQuests[i].ID == subQuestID {
			subIdx = i
			break
		}
	}
	if subIdx < 0 {
		s.mu.Unlock()
		return
	}

	now := s.now()
	upd.apply(&q.SubQuests[subIdx])
	q.SubQuests[subIdx].UpdatedAt = now
	q.UpdatedAt = now
	s.quests[idx] = q
	snap := cloneQuests(s.quests)
	s.mu.Unlock()

	s.persist(ctx, write{questsKey, snap})
}

// DeleteSubQuest removes the identified sub-quest and refreshes the
// parent's UpdatedAt. Unknown ids are a no-op.
func (s *Store) DeleteSubQuest(ctx context.Context, questID, subQuestID string) {
	s.mu.Lock()
	idx := s.questIndexLocked(questID)
	if idx < 0 {
		s.mu.Unlock()
		return
	}
	q := s.quests[idx].Clone()

	kept := q.SubQuests[:0]
	for _, sub := range q.SubQuests {
		if sub.ID != subQuestID {
			kept = append(kept, sub)
		}
	}
	if len(kept) == len(q.SubQuests) {
		s.mu.Unlock()
		return
	}
	q.SubQuests = kept
	q.UpdatedAt = s.now()
	s.quests[idx] = q
	snap := cloneQuests(s.quests)
	s.mu.Unlock()

	s.persist(ctx, write{questsKey, snap})
}

// ShareQuestWithAlly appends allyID to the quest's SharedWith sequence.
// The append is not deduplicated: sharing twice appends twice. The
// operation aborts silently when the ally does not exist, and reports
// whether a mutation happened.
func (s *Store) ShareQuestWithAlly(ctx context.Context, questID, allyID string) bool {
	s.mu.Lock()
	if _, ok := s.allyLocked(allyID); !ok {
		s.mu.Unlock()
		return false
	}
	idx := s.questIndexLocked(questID)
	if idx < 0 {
		s.mu.Unlock()
		return false
	}

	q := s.quests[idx].Clone()
	q.SharedWith = append(q.SharedWith, allyID)
	q.UpdatedAt = s.now()
	s.quests[idx] = q
	snap := cloneQuests(s.quests)
	s.mu.Unlock()

	s.persist(ctx, write{questsKey, snap})
	return true
}
