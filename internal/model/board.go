package model

import "time"

// Board is a named grouping of quests with its own allies and XP tally
// ("task list" in the task skin). Boards are created empty; the UI does
// not yet move quests onto them, but they are part of the persisted
// contract.
type Board struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Quests      []Quest   `json:"quests"`
	Owner       string    `json:"owner"`
	Allies      []Ally    `json:"allies"`
	Theme       string    `json:"theme,omitempty"`
	Emoji       string    `json:"emoji,omitempty"`
	Level       int       `json:"level"`
	TotalXP     int       `json:"totalXp"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Clone returns a deep copy of the board.
func (b Board) Clone() Board {
	out := b
	out.Quests = make([]Quest, len(b.Quests))
	for i, q := range b.Quests {
		out.Quests[i] = q.Clone()
	}
	out.Allies = append([]Ally(nil), b.Allies...)
	return out
}
