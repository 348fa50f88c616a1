package model

import (
	"regexp"
	"time"
)

// Difficulty grades a quest and drives its XP reward.
type Difficulty string

const (
	DifficultyEasy      Difficulty = "easy"
	DifficultyMedium    Difficulty = "medium"
	DifficultyHard      Difficulty = "hard"
	DifficultyLegendary Difficulty = "legendary"
)

// Quest display status constants. Completion is tracked by the Completed
// flag; Status is a coarser display state carried alongside it.
const (
	QuestStatusActive    = "active"
	QuestStatusCompleted = "completed"
	QuestStatusPaused    = "paused"
	QuestStatusFailed    = "failed"
)

// Quest category constants.
const (
	CategoryPersonal = "personal"
	CategoryWork     = "work"
	CategoryHealth   = "health"
	CategoryLearning = "learning"
	CategorySocial   = "social"
	CategoryCreative = "creative"
)

// LocalUserID identifies the single on-device user. Invitations are
// simulated, so there is never more than one real identity.
const LocalUserID = "local"

// Quest is a unit of trackable work, optionally broken into sub-quests.
// The task/partner vocabulary in the UI is a label skin over this entity.
type Quest struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Completed   bool       `json:"completed"`
	Difficulty  Difficulty `json:"difficulty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`

	// AssignedTo references the single responsible ally by id.
	// References are weak: a removed ally leaves a stale id behind.
	AssignedTo string `json:"assignedTo,omitempty"`
	CreatedBy  string `json:"createdBy"`

	Tags []string `json:"tags"`

	// Allies have collaboration rights; SharedWith have visibility.
	// Neither sequence is deduplicated (re-sharing appends again).
	Allies     []string `json:"allies"`
	SharedWith []string `json:"sharedWith"`

	// SubQuests are owned exclusively by this quest.
	SubQuests []SubQuest `json:"subQuests"`

	// IsMultiStep marks the sub-quests as tracked progress steps.
	// Display-only; SubQuests is always present regardless.
	IsMultiStep bool `json:"isMultiStep"`

	XPReward int    `json:"xpReward"`
	Category string `json:"category,omitempty"`
	Status   string `json:"status,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SubQuest is a nested checklist step with no lifecycle of its own.
type SubQuest struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Completed bool      `json:"completed"`
	XPReward  int       `json:"xpReward"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Clone returns a deep copy of the quest so that callers can hold a
// snapshot without aliasing store-owned slices.
func (q Quest) Clone() Quest {
	out := q
	if q.DueDate != nil {
		d := *q.DueDate
		out.DueDate = &d
	}
	out.Tags = append([]string(nil), q.Tags...)
	out.Allies = append([]string(nil), q.Allies...)
	out.SharedWith = append([]string(nil), q.SharedWith...)
	out.SubQuests = append([]SubQuest(nil), q.SubQuests...)
	return out
}

// BaseXP returns the XP reward earned for completing a quest of the
// given difficulty.
func BaseXP(d Difficulty) int {
	switch d {
	case DifficultyEasy:
		return 10
	case DifficultyMedium:
		return 25
	case DifficultyHard:
		return 50
	case DifficultyLegendary:
		return 100
	default:
		return 25
	}
}

// StepXP returns the XP reward for a single sub-quest step of a quest
// with the given difficulty.
func StepXP(d Difficulty) int {
	switch d {
	case DifficultyEasy:
		return 5
	case DifficultyMedium:
		return 10
	case DifficultyHard:
		return 20
	case DifficultyLegendary:
		return 30
	default:
		return 10
	}
}

// Difficulties lists all difficulty grades in ascending order.
func Difficulties() []Difficulty {
	return []Difficulty{
		DifficultyEasy,
		DifficultyMedium,
		DifficultyHard,
		DifficultyLegendary,
	}
}

// Categories lists the quest categories.
func Categories() []string {
	return []string{
		CategoryPersonal,
		CategoryWork,
		CategoryHealth,
		CategoryLearning,
		CategorySocial,
		CategoryCreative,
	}
}

// emailPattern accepts local@domain.tld: no whitespace, one @, at least
// one dot after the @. Deliberately loose; invitations are simulated.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail reports whether s looks like an email address. Enforced by
// the invite form before an ally is constructed; the store trusts its
// callers and does not re-validate.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}
