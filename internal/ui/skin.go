package ui

import "questline/internal/model"

// Skin holds the vocabulary used across the interface. The quest skin
// speaks in quests and allies, the task skin in plain tasks and partners.
type Skin struct {
	AppTitle string

	Quest     string
	Quests    string
	SubQuest  string
	SubQuests string
	Ally      string
	Allies    string
	Board     string
	Boards    string

	XPLabel string
}

var questSkin = Skin{
	AppTitle:  "⚔ Questline",
	Quest:     "Quest",
	Quests:    "Quests",
	SubQuest:  "Sub-Quest",
	SubQuests: "Sub-Quests",
	Ally:      "Ally",
	Allies:    "Allies",
	Board:     "Board",
	Boards:    "Boards",
	XPLabel:   "XP",
}

var taskSkin = Skin{
	AppTitle:  "Questline",
	Quest:     "Task",
	Quests:    "Tasks",
	SubQuest:  "Step",
	SubQuests: "Steps",
	Ally:      "Partner",
	Allies:    "Partners",
	Board:     "List",
	Boards:    "Lists",
	XPLabel:   "pts",
}

// SkinFor returns the vocabulary for the configured skin name.
// Unknown names fall back to the quest skin.
func SkinFor(name string) Skin {
	if name == model.SkinTask {
		return taskSkin
	}
	return questSkin
}
