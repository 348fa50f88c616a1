package model

import "time"

// Ally relationship status constants. The invite starts as
// AllyStatusInvited and flips to allied or declined; any status may be
// set from any other, there is no enforced transition table.
const (
	AllyStatusInvited  = "invited"
	AllyStatusAllied   = "allied"
	AllyStatusDeclined = "declined"
)

// Ally is a collaboration contact ("partner" in the task skin).
// Quests reference allies by id only; removing an ally never cascades.
type Ally struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar,omitempty"`
	Status string `json:"status"`

	InvitedAt time.Time `json:"invitedAt"`

	// Display stats shown on the ally card. The store never derives
	// these; they default to zero for a fresh invite.
	Level           int `json:"level"`
	TotalXP         int `json:"totalXp"`
	QuestsCompleted int `json:"questsCompleted"`
}
