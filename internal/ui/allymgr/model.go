package allymgr

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"questline/internal/keys"
	"questline/internal/model"
	"questline/internal/store"
	"questline/internal/theme"
)

// CloseMsg signals the parent to close the ally view.
type CloseMsg struct{}

// ChangedMsg signals that allies or their quests were modified.
type ChangedMsg struct{}

// ShareQuestMsg asks the parent to pick a quest to share with the ally.
type ShareQuestMsg struct {
	AllyID string
}

// AssignQuestMsg asks the parent to open the quest form with assignment
// to the ally.
type AssignQuestMsg struct {
	AllyID string
}

type allyMode int

const (
	modeList allyMode = iota
	modeInvite
	modeConfirmRemove
)

type formBindings struct {
	name    string
	email   string
	confirm bool
}

type alliesLoadedMsg struct {
	allies []model.Ally
}

type allySavedMsg struct{ note string }
type allyRemovedMsg struct{}

// Labels carries the skin-dependent strings shown in the ally manager.
type Labels struct {
	Title   string
	Ally    string
	Quests  string
	XPLabel string
}

// Model is the Bubble Tea model for ally management.
type Model struct {
	mode        allyMode
	store       *store.Store
	keys        *keys.KeyMap
	labels      Labels
	allies      []model.Ally
	selectedIdx int
	form        *huh.Form
	confirmForm *huh.Form
	fb          *formBindings
	statusMsg   string
	width       int
	height      int
}

// New creates a new ally manager model.
func New(s *store.Store, k *keys.KeyMap, labels Labels, width, height int) Model {
	return Model{
		mode:   modeList,
		store:  s,
		keys:   k,
		labels: labels,
		fb:     &formBindings{},
		width:  width, height: height,
	}
}

// Init loads allies from the store.
func (m Model) Init() tea.Cmd {
	return m.loadAllies()
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case alliesLoadedMsg:
		m.allies = msg.allies
		if m.selectedIdx >= len(m.allies) && m.selectedIdx > 0 {
			m.selectedIdx = len(m.allies) - 1
		}
		return m, nil

	case allySavedMsg:
		m.statusMsg = msg.note
		m.mode = modeList
		return m, tea.Batch(m.loadAllies(), func() tea.Msg { return ChangedMsg{} })

	case allyRemovedMsg:
		m.statusMsg = "Removed"
		m.mode = modeList
		return m, tea.Batch(m.loadAllies(), func() tea.Msg { return ChangedMsg{} })

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.updateActiveForm(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch m.mode {
	case modeList:
		return m.handleListKey(msg)
	case modeInvite:
		return m.updateForm(msg)
	case modeConfirmRemove:
		return m.updateConfirm(msg)
	}
	return m, nil
}

func (m Model) handleListKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		return m, func() tea.Msg { return CloseMsg{} }

	case key.Matches(msg, m.keys.Down):
		if len(m.allies) > 0 {
			m.selectedIdx = (m.selectedIdx + 1) % len(m.allies)
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if len(m.allies) > 0 {
			m.selectedIdx--
			if m.selectedIdx < 0 {
				m.selectedIdx = len(m.allies) - 1
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.Invite):
		m.fb.name = ""
		m.fb.email = ""
		m.form = m.buildInviteForm()
		m.mode = modeInvite
		return m, m.form.Init()

	case key.Matches(msg, m.keys.Accept):
		if len(m.allies) == 0 {
			return m, nil
		}
		return m, m.setStatus(m.allies[m.selectedIdx].ID, model.AllyStatusAllied)

	case key.Matches(msg, m.keys.Decline):
		if len(m.allies) == 0 {
			return m, nil
		}
		return m, m.setStatus(m.allies[m.selectedIdx].ID, model.AllyStatusDeclined)

	case key.Matches(msg, m.keys.Share):
		if len(m.allies) == 0 {
			return m, nil
		}
		a := m.allies[m.selectedIdx]
		if a.Status != model.AllyStatusAllied {
			m.statusMsg = "Only allied members can receive shares"
			return m, nil
		}
		return m, func() tea.Msg { return ShareQuestMsg{AllyID: a.ID} }

	case key.Matches(msg, m.keys.Assign):
		if len(m.allies) == 0 {
			return m, nil
		}
		a := m.allies[m.selectedIdx]
		if a.Status != model.AllyStatusAllied {
			m.statusMsg = "Only allied members can be assigned"
			return m, nil
		}
		return m, func() tea.Msg { return AssignQuestMsg{AllyID: a.ID} }

	case key.Matches(msg, m.keys.Delete):
		if len(m.allies) == 0 {
			return m, nil
		}
		m.fb.confirm = false
		m.confirmForm = m.buildConfirmForm()
		m.mode = modeConfirmRemove
		return m, m.confirmForm.Init()
	}
	return m, nil
}

func (m Model) buildInviteForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Placeholder("Display name").
				Value(&m.fb.name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Email").
				Placeholder("ally@example.com").
				Value(&m.fb.email).
				Validate(func(s string) error {
					if !model.ValidEmail(strings.TrimSpace(s)) {
						return fmt.Errorf("enter a valid email address")
					}
					return nil
				}),
		),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m Model) buildConfirmForm() *huh.Form {
	name := ""
	if m.selectedIdx < len(m.allies) {
		name = m.allies[m.selectedIdx].Name
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Remove %s %q?", m.labels.Ally, name)).
				Description("Their shared and assigned entries are kept as-is.").
				Affirmative("Yes, remove").
				Negative("Cancel").
				Value(&m.fb.confirm),
		),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m Model) updateForm(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}
	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}
	if m.form.State == huh.StateCompleted {
		return m, m.invite()
	}
	if m.form.State == huh.StateAborted {
		m.mode = modeList
		return m, nil
	}
	return m, cmd
}

func (m Model) updateConfirm(msg tea.Msg) (Model, tea.Cmd) {
	if m.confirmForm == nil {
		return m, nil
	}
	mdl, cmd := m.confirmForm.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.confirmForm = f
	}
	if m.confirmForm.State == huh.StateCompleted {
		if m.fb.confirm {
			a := m.allies[m.selectedIdx]
			return m, m.remove(a.ID)
		}
		m.mode = modeList
		return m, nil
	}
	if m.confirmForm.State == huh.StateAborted {
		m.mode = modeList
		return m, nil
	}
	return m, cmd
}

func (m Model) updateActiveForm(msg tea.Msg) (Model, tea.Cmd) {
	switch m.mode {
	case modeInvite:
		return m.updateForm(msg)
	case modeConfirmRemove:
		return m.updateConfirm(msg)
	}
	return m, nil
}

// View renders the ally manager.
func (m Model) View() string {
	switch m.mode {
	case modeInvite:
		return m.viewForm(m.form)
	case modeConfirmRemove:
		return m.viewForm(m.confirmForm)
	default:
		return m.viewList()
	}
}

func (m Model) viewList() string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite).MarginBottom(1)
	b.WriteString(titleStyle.Render(m.labels.Title))
	b.WriteString("\n")
	b.WriteString(theme.DimmedStyle.Render(m.statsLine()))
	b.WriteString("\n\n")

	if len(m.allies) == 0 {
		emptyStyle := lipgloss.NewStyle().Foreground(theme.ColorGray).Italic(true)
		b.WriteString(emptyStyle.Render("Nobody here yet. Press 'i' to send an invitation."))
	} else {
		quests := m.store.Quests()
		for i, a := range m.allies {
			statusBadge := theme.AllyStatusStyle(a.Status).Render(a.Status)

			label := fmt.Sprintf("%s %s  %s", statusBadge, a.Name,
				theme.DimmedStyle.Render(a.Email))

			if a.Status == model.AllyStatusAllied {
				completed, xp := store.AllyProgress(quests, a.ID)
				involved := len(store.ForAlly(quests, a.ID))
				label += theme.DimmedStyle.Render(fmt.Sprintf(
					"  %d %s · %d done · ", involved, m.labels.Quests, completed,
				)) + theme.XPStyle.Render(fmt.Sprintf("%d%s", xp, m.labels.XPLabel))
			}

			if i == m.selectedIdx {
				b.WriteString(theme.SelectedItemStyle.Render(label))
			} else {
				b.WriteString(theme.ListItemStyle.Render(label))
			}
			b.WriteString("\n")
		}
	}

	if m.statusMsg != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.ColorYellow).Italic(true).Render(m.statusMsg))
	}

	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.ColorGray).Render(
		"i invite | y accept | N decline | s share | g assign | d remove | esc back",
	))

	return lipgloss.NewStyle().Padding(1, 2).Width(m.width).Height(m.height).Render(b.String())
}

// statsLine summarizes the roster and shared workload for the header.
func (m Model) statsLine() string {
	allied, invited := 0, 0
	for _, a := range m.allies {
		switch a.Status {
		case model.AllyStatusAllied:
			allied++
		case model.AllyStatusInvited:
			invited++
		}
	}
	counts := store.CountQuests(m.store.Quests())
	return fmt.Sprintf(
		"%d allied · %d pending · %d shared · %d assigned",
		allied, invited, counts.Shared, counts.Assigned,
	)
}

func (m Model) viewForm(f *huh.Form) string {
	if f == nil {
		return ""
	}
	return lipgloss.NewStyle().Padding(1, 2).Render(f.View())
}

// SetSize updates dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m Model) formWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 100 {
		w = 100
	}
	return w
}

func (m Model) formHeight() int {
	h := m.height - 4
	if h < 10 {
		h = 10
	}
	return h
}

func (m Model) loadAllies() tea.Cmd {
	s := m.store
	return func() tea.Msg {
		return alliesLoadedMsg{allies: s.Allies()}
	}
}

func (m Model) invite() tea.Cmd {
	s := m.store
	name := strings.TrimSpace(m.fb.name)
	email := strings.TrimSpace(m.fb.email)
	return func() tea.Msg {
		s.InviteAlly(context.Background(), email, name)
		return allySavedMsg{note: "Invitation sent"}
	}
}

func (m Model) setStatus(id, status string) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		s.UpdateAllyStatus(context.Background(), id, status)
		return allySavedMsg{note: "Status updated"}
	}
}

func (m Model) remove(id string) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		s.RemoveAlly(context.Background(), id)
		return allyRemovedMsg{}
	}
}
