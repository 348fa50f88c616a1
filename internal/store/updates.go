package store

import (
	"time"

	"questline/internal/model"
)

// QuestUpdate is a partial update for a quest: only non-nil fields are
// applied, matching shallow-merge semantics with compile-time field
// safety. Optional fields get explicit Clear flags since a nil pointer
// means "leave untouched".
type QuestUpdate struct {
	Title       *string
	Description *string
	Completed   *bool
	Difficulty  *model.Difficulty
	DueDate     *time.Time
	AssignedTo  *string
	Tags        *[]string
	Allies      *[]string
	SharedWith  *[]string
	IsMultiStep *bool
	XPReward    *int
	Category    *string
	Status      *string

	ClearDueDate    bool
	ClearAssignedTo bool
}

func (u QuestUpdate) apply(q *model.Quest) {
	if u.Title != nil {
		q.Title = *u.Title
	}
	if u.Description != nil {
		q.Description = *u.Description
	}
	if u.Completed != nil {
		q.Completed = *u.Completed
	}
	if u.Difficulty != nil {
		q.Difficulty = *u.Difficulty
	}
	if u.DueDate != nil {
		d := *u.DueDate
		q.DueDate = &d
	}
	if u.ClearDueDate {
		q.DueDate = nil
	}
	if u.AssignedTo != nil {
		q.AssignedTo = *u.AssignedTo
	}
	if u.ClearAssignedTo {
		q.AssignedTo = ""
	}
	if u.Tags != nil {
		q.Tags = append([]string(nil), *u.Tags...)
	}
	if u.Allies != nil {
		q.Allies = append([]string(nil), *u.Allies...)
	}
	if u.SharedWith != nil {
		q.SharedWith = append([]string(nil), *u.SharedWith...)
	}
	if u.IsMultiStep != nil {
		q.IsMultiStep = *u.IsMultiStep
	}
	if u.XPReward != nil {
		q.XPReward = *u.XPReward
	}
	if u.Category != nil {
		q.Category = *u.Category
	}
	if u.Status != nil {
		q.Status = *u.Status
	}
}

// SubQuestUpdate is a partial update for a sub-quest.
type SubQuestUpdate struct {
	Title     *string
	Completed *bool
	XPReward  *int
}

func (u SubQuestUpdate) apply(sq *model.SubQuest) {
	if u.Title != nil {
		sq.Title = *u.Title
	}
	if u.Completed != nil {
		sq.Completed = *u.Completed
	}
	if u.XPReward != nil {
		sq.XPReward = *u.XPReward
	}
}

// Ptr returns a pointer to v, for building update literals.
func Ptr[T any](v T) *T { return &v }
