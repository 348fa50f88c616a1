package boardmgr

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

// CloseMsg signals the parent to close the board view.
type CloseMsg struct{}

// ChangedMsg signals that boards were modified.
type ChangedMsg struct{}

type boardMode int

const (
	modeList boardMode = iota
	modeForm
)

type formBindings struct {
	title       string
	description string
	emoji       string
	theme       string
}

type boardsLoadedMsg struct {
	boards []model.Board
}

type boardSavedMsg struct{}

// Labels carries the skin-dependent strings shown in the board manager.
type Labels struct {
	Title string
	Board string
}

// Model is the Bubble Tea model for board management.
type Model struct {
	mode        boardMode
	store       *store.Store
	keys        *keys.KeyMap
	labels      Labels
	boards      []model.Board
	selectedIdx int
	form        *huh.Form
	fb          *formBindings
	statusMsg   string
	width       int
	height      int
}

// New creates a new board manager model.
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

// Init loads boards from the store.
func (m Model) Init() tea.Cmd {
	return m.loadBoards()
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case boardsLoadedMsg:
		m.boards = msg.boards
		if m.selectedIdx >= len(m.boards) && m.selectedIdx > 0 {
			m.selectedIdx = len(m.boards) - 1
		}
		return m, nil

	case boardSavedMsg:
		m.statusMsg = "Saved"
		m.mode = modeList
		return m, tea.Batch(m.loadBoards(), func() tea.Msg { return ChangedMsg{} })

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.mode == modeForm {
		return m.updateForm(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.mode == modeForm {
		return m.updateForm(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Back):
		return m, func() tea.Msg { return CloseMsg{} }

	case key.Matches(msg, m.keys.Down):
		if len(m.boards) > 0 {
			m.selectedIdx = (m.selectedIdx + 1) % len(m.boards)
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if len(m.boards) > 0 {
			m.selectedIdx--
			if m.selectedIdx < 0 {
				m.selectedIdx = len(m.boards) - 1
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.New):
		*m.fb = formBindings{emoji: "🗺"}
		m.form = m.buildForm()
		m.mode = modeForm
		return m, m.form.Init()
	}
	return m, nil
}

func (m Model) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Placeholder(m.labels.Board+" title").
				Value(&m.fb.title).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("title is required")
					}
					return nil
				}),
			huh.NewText().
				Title("Description").
				Placeholder("Optional description").
				Value(&m.fb.description),
			huh.NewInput().
				Title("Emoji").
				Placeholder("🗺").
				Value(&m.fb.emoji),
			huh.NewInput().
				Title("Theme").
				Placeholder("default").
				Value(&m.fb.theme),
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
		return m, m.saveBoard()
	}
	if m.form.State == huh.StateAborted {
		m.mode = modeList
		return m, nil
	}
	return m, cmd
}

// View renders the board manager.
func (m Model) View() string {
	if m.mode == modeForm {
		if m.form == nil {
			return ""
		}
		return lipgloss.NewStyle().Padding(1, 2).Render(m.form.View())
	}
	return m.viewList()
}

func (m Model) viewList() string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite).MarginBottom(1)
	b.WriteString(titleStyle.Render(m.labels.Title))
	b.WriteString("\n\n")

	if len(m.boards) == 0 {
		emptyStyle := lipgloss.NewStyle().Foreground(theme.ColorGray).Italic(true)
		b.WriteString(emptyStyle.Render("No " + strings.ToLower(m.labels.Title) + " yet. Press 'n' to create one."))
	} else {
		for i, board := range m.boards {
			emoji := board.Emoji
			if emoji == "" {
				emoji = "🗺"
			}

			label := fmt.Sprintf("%s  %s", emoji, board.Title)
			counts := store.CountQuests(board.Quests)
			label += theme.DimmedStyle.Render(fmt.Sprintf(
				"  %d/%d done", counts.Completed, counts.Total,
			))
			if board.TotalXP > 0 {
				label += "  " + theme.XPStyle.Render(fmt.Sprintf("%dXP", board.TotalXP))
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
		"n new | esc back",
	))

	return lipgloss.NewStyle().Padding(1, 2).Width(m.width).Height(m.height).Render(b.String())
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

func (m Model) loadBoards() tea.Cmd {
	s := m.store
	return func() tea.Msg {
		return boardsLoadedMsg{boards: s.Boards()}
	}
}

func (m Model) saveBoard() tea.Cmd {
	s := m.store
	fb := *m.fb
	return func() tea.Msg {
		s.CreateBoard(context.Background(), model.Board{
			Title:       fb.title,
			Description: fb.description,
			Emoji:       strings.TrimSpace(fb.emoji),
			Theme:       strings.TrimSpace(fb.theme),
		})
		return boardSavedMsg{}
	}
}
