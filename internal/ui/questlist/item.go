package questlist

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"questline/internal/model"
	"questline/internal/store"
	"questline/internal/theme"
)

// QuestItem wraps a model.Quest so it can be used in a bubbles/list.
type QuestItem struct {
	Quest model.Quest
}

// FilterValue returns the string used for fuzzy filtering.
func (i QuestItem) FilterValue() string { return i.Quest.Title }

// Title returns the quest title for the list.
func (i QuestItem) Title() string { return i.Quest.Title }

// Description returns a short summary line for the list.
func (i QuestItem) Description() string {
	parts := []string{
		string(i.Quest.Difficulty),
		i.Quest.Category,
		relativeTime(i.Quest.UpdatedAt),
	}
	return strings.Join(parts, " | ")
}

// ItemDelegate implements list.ItemDelegate for rendering quest rows.
type ItemDelegate struct {
	// XPLabel is the suffix rendered after reward values ("XP" or "pts").
	XPLabel string
}

// Height returns the number of lines each item takes.
func (d ItemDelegate) Height() int { return 1 }

// Spacing returns the number of blank lines between items.
func (d ItemDelegate) Spacing() int { return 0 }

// Update handles per-item messages (unused).
func (d ItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render draws a single quest line.
func (d ItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	qi, ok := item.(QuestItem)
	if !ok {
		return
	}

	q := qi.Quest
	isSelected := index == m.Index()

	var prefix string
	if q.Completed {
		prefix = "✓"
	} else {
		prefix = "○"
	}

	diffBadge := theme.DifficultyStyle(string(q.Difficulty)).
		Render(difficultyLabel(q.Difficulty))

	xpBadge := theme.XPStyle.Render(fmt.Sprintf("+%d%s", q.XPReward, d.XPLabel))

	progressStr := ""
	if q.IsMultiStep && len(q.SubQuests) > 0 {
		progressStr = " " + theme.ProgressBar(store.Progress(q), 8)
	}

	dueDateStr := ""
	overdueStr := ""
	if q.DueDate != nil {
		dueDateStr = theme.DueDateStyle.Render(" " + q.DueDate.Format("Jan 02"))
		if !q.Completed && q.DueDate.Before(time.Now()) {
			overdueStr = theme.OverdueStyle.Render(" OVERDUE")
		}
	}

	sharedBadge := ""
	if len(q.SharedWith) > 0 {
		sharedBadge = lipgloss.NewStyle().
			Foreground(theme.ColorBlue).
			Render(fmt.Sprintf(" ⇄%d", len(q.SharedWith)))
	}

	assignedBadge := ""
	if q.AssignedTo != "" && q.AssignedTo != model.LocalUserID {
		assignedBadge = lipgloss.NewStyle().
			Foreground(theme.ColorMagenta).
			Render(" →" + shortID(q.AssignedTo))
	}

	tagBadge := ""
	if len(q.Tags) > 0 {
		display := q.Tags
		if len(display) > 2 {
			display = append(display[:2:2], "…")
		}
		tagBadge = lipgloss.NewStyle().
			Foreground(theme.ColorMagenta).
			Render(" #" + strings.Join(display, ",#"))
	}

	line := fmt.Sprintf(
		"%s %s %s %s%s%s%s%s%s",
		prefix, diffBadge, q.Title, xpBadge,
		progressStr, tagBadge, sharedBadge, assignedBadge,
		dueDateStr+overdueStr,
	)

	if q.Completed {
		line = theme.DimmedStyle.Render(line)
	}

	if isSelected {
		line = theme.SelectedItemStyle.Render(line)
	} else {
		line = theme.ListItemStyle.Render(line)
	}

	fmt.Fprint(w, line)
}

// difficultyLabel returns a short badge label for a difficulty grade.
func difficultyLabel(d model.Difficulty) string {
	switch d {
	case model.DifficultyEasy:
		return "EZ"
	case model.DifficultyMedium:
		return "MED"
	case model.DifficultyHard:
		return "HRD"
	case model.DifficultyLegendary:
		return "LGD"
	default:
		return "???"
	}
}

// shortID truncates an id for inline display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// relativeTime returns a human-friendly relative time string.
func relativeTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}

	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		mins := int(d.Minutes())
		if mins == 1 {
			return "1m ago"
		}
		return fmt.Sprintf("%dm ago", mins)
	case d < 24*time.Hour:
		hrs := int(d.Hours())
		if hrs == 1 {
			return "1h ago"
		}
		return fmt.Sprintf("%dh ago", hrs)
	case d < 7*24*time.Hour:
		days := int(d.Hours() / 24)
		if days == 1 {
			return "1d ago"
		}
		return fmt.Sprintf("%dd ago", days)
	default:
		weeks := int(d.Hours() / 24 / 7)
		if weeks == 1 {
			return "1w ago"
		}
		return fmt.Sprintf("%dw ago", weeks)
	}
}
