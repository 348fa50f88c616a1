package questlist

import (
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"questline/internal/keys"
	"questline/internal/model"
	"questline/internal/store"
	"questline/internal/theme"
)

// QuestsLoadedMsg is sent when quests have been loaded from the store.
type QuestsLoadedMsg struct {
	Quests []model.Quest
}

// SelectedQuestMsg is sent when a user selects a quest to view details.
type SelectedQuestMsg struct {
	QuestID string
}

// Model is the main quest list view component.
type Model struct {
	list        list.Model
	store       *store.Store
	keys        *keys.KeyMap
	query       string
	hideDone    bool
	searchMode  bool
	searchInput textinput.Model
	width       int
	height      int
}

// New creates a new quest list model.
func New(s *store.Store, k *keys.KeyMap, xpLabel, listTitle string, width, height int) Model {
	delegate := ItemDelegate{XPLabel: xpLabel}
	l := list.New([]list.Item{}, delegate, width, height-2)
	l.Title = listTitle
	l.SetShowStatusBar(true)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = theme.HeaderStyle

	si := textinput.New()
	si.Placeholder = "search..."
	si.Prompt = "/ "
	si.Width = width - 4

	return Model{
		list:        l,
		store:       s,
		keys:        k,
		searchInput: si,
		width:       width,
		height:      height,
	}
}

// Init returns a command that loads the initial set of quests.
func (m Model) Init() tea.Cmd {
	return m.LoadQuests()
}

// Update handles messages for the quest list view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case QuestsLoadedMsg:
		items := make([]list.Item, len(msg.Quests))
		for i, q := range msg.Quests {
			items[i] = QuestItem{Quest: q}
		}
		cmd := m.list.SetItems(items)
		return m, cmd

	case tea.KeyMsg:
		if m.searchMode {
			return m.handleSearchKeys(msg)
		}
		return m.handleNormalKeys(msg)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// handleSearchKeys processes key input while in search mode.
func (m Model) handleSearchKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searchMode = false
		m.query = m.searchInput.Value()
		return m, m.LoadQuests()

	case "esc":
		m.searchMode = false
		m.searchInput.Reset()
		m.query = ""
		return m, m.LoadQuests()
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

// handleNormalKeys processes key input in normal (non-search) mode.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Select):
		item, ok := m.list.SelectedItem().(QuestItem)
		if !ok {
			return m, nil
		}
		return m, func() tea.Msg {
			return SelectedQuestMsg{QuestID: item.Quest.ID}
		}

	case key.Matches(msg, m.keys.Search):
		m.searchMode = true
		m.searchInput.Reset()
		return m, m.searchInput.Focus()

	case key.Matches(msg, m.keys.HideDone):
		m.hideDone = !m.hideDone
		return m, m.LoadQuests()
	}

	// Delegate to the list for navigation keys (up/down/pgup/pgdn)
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the quest list view.
func (m Model) View() string {
	if m.searchMode {
		searchBar := lipgloss.NewStyle().
			Foreground(theme.ColorWhite).
			Padding(0, 1).
			Render(m.searchInput.View())
		return lipgloss.JoinVertical(lipgloss.Left, searchBar, m.list.View())
	}

	if len(m.list.Items()) == 0 {
		return m.renderEmptyState()
	}

	return m.list.View()
}

// renderEmptyState shows guidance text when no quests match.
func (m Model) renderEmptyState() string {
	style := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.ColorGray)

	if m.query != "" || m.hideDone {
		return style.Render("Nothing matches.\nTry adjusting your search or filters.")
	}

	return style.Render("The log is empty.\n\nPress n to start something new.")
}

// SelectedQuestID returns the id of the currently focused quest,
// or "" when the list is empty.
func (m Model) SelectedQuestID() string {
	item, ok := m.list.SelectedItem().(QuestItem)
	if !ok {
		return ""
	}
	return item.Quest.ID
}

// LoadQuests returns a tea.Cmd that reads the store with the current
// search query and filters applied.
func (m Model) LoadQuests() tea.Cmd {
	s := m.store
	query := strings.ToLower(m.query)
	hideDone := m.hideDone
	return func() tea.Msg {
		quests := s.Quests()

		filtered := quests[:0]
		for _, q := range quests {
			if hideDone && q.Completed {
				continue
			}
			if query != "" && !strings.Contains(strings.ToLower(q.Title), query) {
				continue
			}
			filtered = append(filtered, q)
		}

		// Pending first, then most recently updated.
		sort.SliceStable(filtered, func(i, j int) bool {
			if filtered[i].Completed != filtered[j].Completed {
				return !filtered[i].Completed
			}
			return filtered[i].UpdatedAt.After(filtered[j].UpdatedAt)
		})

		return QuestsLoadedMsg{Quests: filtered}
	}
}

// SetSize updates the list dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height-2)
	m.searchInput.Width = width - 4
}
