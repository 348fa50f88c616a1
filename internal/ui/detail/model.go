package detail

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"questline/internal/keys"
	"questline/internal/model"
	"questline/internal/store"
	"questline/internal/theme"
)

// BackMsg signals the parent to navigate back to the list view.
type BackMsg struct{}

// EditMsg asks the parent to open the edit form for the quest.
type EditMsg struct {
	QuestID string
}

// ToggleMsg asks the parent to flip the quest's completion.
type ToggleMsg struct {
	QuestID   string
	Completed bool
}

// DeleteMsg asks the parent to delete the quest.
type DeleteMsg struct {
	QuestID string
}

// AddStepMsg asks the parent to append a sub-quest.
type AddStepMsg struct {
	QuestID string
	Title   string
}

// ToggleStepMsg asks the parent to flip a sub-quest's completion.
type ToggleStepMsg struct {
	QuestID    string
	SubQuestID string
	Completed  bool
}

// DeleteStepMsg asks the parent to remove a sub-quest.
type DeleteStepMsg struct {
	QuestID    string
	SubQuestID string
}

// Labels carries the skin-dependent strings shown in the detail view.
type Labels struct {
	SubQuests string
	XPLabel   string
}

// Model is the quest detail view component.
type Model struct {
	quest    *model.Quest
	allies   []model.Ally
	viewport viewport.Model
	keys     *keys.KeyMap
	labels   Labels

	cursor    int
	addMode   bool
	stepInput textinput.Model

	width  int
	height int
}

// New creates a new detail view model.
func New(k *keys.KeyMap, labels Labels, width, height int) Model {
	vp := viewport.New(width, height-2)
	vp.Style = lipgloss.NewStyle()

	si := textinput.New()
	si.Placeholder = "new step..."
	si.Prompt = "+ "
	si.Width = width - 4

	return Model{
		viewport:  vp,
		keys:      k,
		labels:    labels,
		stepInput: si,
		width:     width,
		height:    height,
	}
}

// Init returns the initial command for the detail view.
func (m Model) Init() tea.Cmd {
	return nil
}

// SetQuest updates the quest being displayed and re-renders the content.
// Allies are used to resolve ids in the shared section.
func (m *Model) SetQuest(q *model.Quest, allies []model.Ally) {
	m.quest = q
	m.allies = allies
	if q != nil && m.cursor >= len(q.SubQuests) {
		m.cursor = len(q.SubQuests) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.viewport.SetContent(m.renderContent())
}

// Update handles messages for the detail view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	if m.addMode {
		return m.handleAddKeys(keyMsg)
	}
	return m.handleNormalKeys(keyMsg)
}

// handleAddKeys processes key input while typing a new step title.
func (m Model) handleAddKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.addMode = false
		title := strings.TrimSpace(m.stepInput.Value())
		m.stepInput.Reset()
		if title == "" || m.quest == nil {
			return m, nil
		}
		id := m.quest.ID
		return m, func() tea.Msg {
			return AddStepMsg{QuestID: id, Title: title}
		}

	case "esc":
		m.addMode = false
		m.stepInput.Reset()
		return m, nil
	}

	var cmd tea.Cmd
	m.stepInput, cmd = m.stepInput.Update(msg)
	return m, cmd
}

func (m Model) handleNormalKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.quest == nil {
		if key.Matches(msg, m.keys.Back) {
			return m, func() tea.Msg { return BackMsg{} }
		}
		return m, nil
	}
	q := m.quest

	switch {
	case key.Matches(msg, m.keys.Back):
		return m, func() tea.Msg { return BackMsg{} }

	case key.Matches(msg, m.keys.Edit):
		return m, func() tea.Msg { return EditMsg{QuestID: q.ID} }

	case key.Matches(msg, m.keys.Delete):
		if len(q.SubQuests) > 0 {
			sub := q.SubQuests[m.cursor]
			return m, func() tea.Msg {
				return DeleteStepMsg{QuestID: q.ID, SubQuestID: sub.ID}
			}
		}
		return m, func() tea.Msg { return DeleteMsg{QuestID: q.ID} }

	case key.Matches(msg, m.keys.Toggle):
		if len(q.SubQuests) > 0 {
			sub := q.SubQuests[m.cursor]
			return m, func() tea.Msg {
				return ToggleStepMsg{
					QuestID:    q.ID,
					SubQuestID: sub.ID,
					Completed:  !sub.Completed,
				}
			}
		}
		return m, func() tea.Msg {
			return ToggleMsg{QuestID: q.ID, Completed: !q.Completed}
		}

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
			m.viewport.SetContent(m.renderContent())
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(q.SubQuests)-1 {
			m.cursor++
			m.viewport.SetContent(m.renderContent())
		}
		return m, nil

	case msg.String() == "+":
		m.addMode = true
		return m, m.stepInput.Focus()
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the detail view.
func (m Model) View() string {
	if m.quest == nil {
		emptyStyle := lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(theme.ColorGray)
		return emptyStyle.Render("Nothing selected")
	}

	if m.addMode {
		inputBar := lipgloss.NewStyle().
			Foreground(theme.ColorWhite).
			Padding(0, 1).
			Render(m.stepInput.View())
		return lipgloss.JoinVertical(lipgloss.Left, m.viewport.View(), inputBar)
	}

	return m.viewport.View()
}

// renderContent builds the full detail content string for the viewport.
func (m Model) renderContent() string {
	if m.quest == nil {
		return ""
	}

	q := m.quest
	var sections []string

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite)
	title := q.Title
	if q.Completed {
		title = "✓ " + title
	}
	sections = append(sections, titleStyle.Render(title))

	diffBadge := theme.DifficultyStyle(string(q.Difficulty)).
		Render(strings.ToUpper(string(q.Difficulty)))
	xpBadge := theme.XPStyle.Render(fmt.Sprintf("+%d%s", q.XPReward, m.labels.XPLabel))
	catBadge := lipgloss.NewStyle().
		Foreground(theme.ColorBlue).
		Render(q.Category)

	badgeLine := lipgloss.JoinHorizontal(
		lipgloss.Top, diffBadge, "  ", xpBadge, "  ", catBadge,
	)
	sections = append(sections, badgeLine)
	sections = append(sections, "")

	metaStyle := lipgloss.NewStyle().Foreground(theme.ColorGray)
	valStyle := lipgloss.NewStyle().Foreground(theme.ColorWhite)

	if q.DueDate != nil {
		due := valStyle.Render(q.DueDate.Format("2006-01-02"))
		if !q.Completed && q.DueDate.Before(time.Now()) {
			due = theme.OverdueStyle.Render(q.DueDate.Format("2006-01-02") + " OVERDUE")
		}
		sections = append(sections, fmt.Sprintf(
			"%s       %s", metaStyle.Render("Due:"), due,
		))
	}
	if q.AssignedTo != "" && q.AssignedTo != model.LocalUserID {
		sections = append(sections, fmt.Sprintf(
			"%s  %s",
			metaStyle.Render("Assigned:"),
			valStyle.Render(m.allyName(q.AssignedTo)),
		))
	}
	if len(q.Tags) > 0 {
		sections = append(sections, fmt.Sprintf(
			"%s      %s",
			metaStyle.Render("Tags:"),
			valStyle.Render(strings.Join(q.Tags, ", ")),
		))
	}
	if !q.CreatedAt.IsZero() {
		sections = append(sections, fmt.Sprintf(
			"%s   %s",
			metaStyle.Render("Created:"),
			valStyle.Render(q.CreatedAt.Format("2006-01-02 15:04")),
		))
	}
	if !q.UpdatedAt.IsZero() {
		sections = append(sections, fmt.Sprintf(
			"%s   %s",
			metaStyle.Render("Updated:"),
			valStyle.Render(q.UpdatedAt.Format("2006-01-02 15:04")),
		))
	}

	shared := store.SharedWithUnique(*q)
	if len(shared) > 0 {
		names := make([]string, len(shared))
		for i, id := range shared {
			names[i] = m.allyName(id)
		}
		sections = append(sections, fmt.Sprintf(
			"%s    %s",
			metaStyle.Render("Shared:"),
			valStyle.Render(strings.Join(names, ", ")),
		))
	}

	sepStyle := lipgloss.NewStyle().Foreground(theme.ColorSubtle)
	separator := sepStyle.Render(strings.Repeat("─", min(m.width-4, 80)))
	sections = append(sections, "")
	sections = append(sections, separator)
	sections = append(sections, "")

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite)

	if q.Description != "" {
		sections = append(sections, headerStyle.Render("Description"))
		sections = append(sections, q.Description)
		sections = append(sections, "")
	}

	if q.IsMultiStep || len(q.SubQuests) > 0 {
		progress := store.Progress(*q)
		sections = append(sections, headerStyle.Render(fmt.Sprintf(
			"%s (%d/%d)",
			m.labels.SubQuests,
			len(store.CompletedSteps(*q)),
			len(q.SubQuests),
		)))
		sections = append(sections, theme.ProgressBar(progress, min(m.width-8, 40))+
			fmt.Sprintf(" %.0f%%", progress))
		sections = append(sections, "")

		for i, sub := range q.SubQuests {
			glyph := "○"
			if sub.Completed {
				glyph = "✓"
			}
			line := fmt.Sprintf("%s %s %s",
				glyph, sub.Title,
				theme.XPStyle.Render(fmt.Sprintf("+%d%s", sub.XPReward, m.labels.XPLabel)),
			)
			if sub.Completed {
				line = theme.DimmedStyle.Render(line)
			}
			if i == m.cursor {
				line = theme.SelectedItemStyle.Render(line)
			} else {
				line = theme.ListItemStyle.Render(line)
			}
			sections = append(sections, line)
		}
		sections = append(sections, "")
		sections = append(sections, theme.HelpStyle.Render(
			"x toggle · + add · d delete",
		))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// allyName resolves an ally id to a display name, falling back to the id.
func (m Model) allyName(id string) string {
	for _, a := range m.allies {
		if a.ID == id {
			return a.Name
		}
	}
	return id
}

// SetSize updates the detail view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height - 2
	m.stepInput.Width = width - 4
	m.viewport.SetContent(m.renderContent())
}
