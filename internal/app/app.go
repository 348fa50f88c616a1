package app

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"questline/internal/keys"
	"questline/internal/store"
	"questline/internal/ui"
	"questline/internal/ui/allymgr"
	"questline/internal/ui/boardmgr"
	"questline/internal/ui/command"
	"questline/internal/ui/detail"
	helpview "questline/internal/ui/help"
	"questline/internal/ui/questform"
	"questline/internal/ui/questlist"
)

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewList ViewState = iota
	ViewDetail
	ViewHelp
	ViewCommand
	ViewQuestCreate
	ViewQuestEdit
	ViewAllies
	ViewBoards
)

// Model is the root Bubble Tea model that manages view routing, layout,
// and access to the store.
type Model struct {
	currentView  ViewState
	previousView ViewState
	layout       ui.Layout
	store        *store.Store
	keys         *keys.KeyMap
	skin         ui.Skin

	questList   questlist.Model
	detailView  detail.Model
	helpView    helpview.Model
	commandView command.Model
	formView    questform.Model
	allyView    allymgr.Model
	boardView   boardmgr.Model

	// openQuestID is the quest shown in the detail view.
	openQuestID string
	// assignAllyID, when set, routes the next form submission through
	// assignment to that ally.
	assignAllyID string

	ready     bool
	statusMsg string
}

// New creates a new root application model with the given store and skin.
func New(s *store.Store, skinName string) Model {
	k := keys.DefaultKeyMap()
	skin := ui.SkinFor(skinName)

	return Model{
		currentView: ViewList,
		store:       s,
		keys:        k,
		skin:        skin,
		questList:   questlist.New(s, k, skin.XPLabel, skin.Quests, 80, 24),
		detailView: detail.New(k, detail.Labels{
			SubQuests: skin.SubQuests,
			XPLabel:   skin.XPLabel,
		}, 80, 24),
		helpView:    helpview.New(k, 80, 24),
		commandView: command.New(80, 24),
		formView: questform.New(questform.Labels{
			CreateTitle: "New " + skin.Quest,
			EditTitle:   "Edit " + skin.Quest,
			StepsTitle:  skin.SubQuests,
			AlliesTitle: skin.Allies,
			XPLabel:     skin.XPLabel,
		}, 80, 24),
		allyView: allymgr.New(s, k, allymgr.Labels{
			Title:   skin.Allies,
			Ally:    skin.Ally,
			Quests:  skin.Quests,
			XPLabel: skin.XPLabel,
		}, 80, 24),
		boardView: boardmgr.New(s, k, boardmgr.Labels{
			Title: skin.Boards,
			Board: skin.Board,
		}, 80, 24),
	}
}

// Init returns the initial command to populate the quest list.
func (m Model) Init() tea.Cmd {
	return m.questList.Init()
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		contentWidth := m.layout.ContentWidth()
		contentHeight := m.layout.ContentHeight()
		m.questList.SetSize(contentWidth, contentHeight)
		m.detailView.SetSize(contentWidth, contentHeight)
		m.helpView.SetSize(contentWidth, contentHeight)
		m.commandView.SetSize(contentWidth, contentHeight)
		m.formView.SetSize(contentWidth, contentHeight)
		m.allyView.SetSize(contentWidth, contentHeight)
		m.boardView.SetSize(contentWidth, contentHeight)
		// Forward to active view so huh forms can calculate their layout.
		return m.updateActiveView(msg)

	case questlist.SelectedQuestMsg:
		m.previousView = m.currentView
		m.currentView = ViewDetail
		m.openQuestID = msg.QuestID
		m.refreshDetail()
		return m, nil

	case questform.QuestCreatedMsg:
		m.currentView = ViewList
		if m.assignAllyID != "" {
			allyID := m.assignAllyID
			m.assignAllyID = ""
			return m, m.createQuestForAlly(allyID, msg.Draft)
		}
		return m, m.createQuest(msg.Draft)

	case questform.QuestUpdatedMsg:
		if m.openQuestID != "" {
			m.currentView = ViewDetail
		} else {
			m.currentView = ViewList
		}
		return m, m.updateQuest(msg.ID, msg.Update)

	case questform.CancelMsg:
		m.assignAllyID = ""
		if m.openQuestID != "" {
			m.currentView = ViewDetail
		} else {
			m.currentView = ViewList
		}
		return m, nil

	case detail.BackMsg:
		m.currentView = ViewList
		m.openQuestID = ""
		return m, m.questList.LoadQuests()

	case detail.EditMsg:
		if q, ok := m.store.Quest(msg.QuestID); ok {
			m.previousView = m.currentView
			m.currentView = ViewQuestEdit
			m.formView.SetAllies(m.store.Allies())
			return m, m.formView.StartEdit(q)
		}
		return m, nil

	case detail.ToggleMsg:
		return m, m.toggleQuest(msg.QuestID, msg.Completed)

	case detail.DeleteMsg:
		m.currentView = ViewList
		m.openQuestID = ""
		return m, m.deleteQuest(msg.QuestID)

	case detail.AddStepMsg:
		return m, m.addStep(msg.QuestID, msg.Title)

	case detail.ToggleStepMsg:
		return m, m.toggleStep(msg.QuestID, msg.SubQuestID, msg.Completed)

	case detail.DeleteStepMsg:
		return m, m.deleteStep(msg.QuestID, msg.SubQuestID)

	case questsChangedMsg:
		m.refreshDetail()
		return m, m.questList.LoadQuests()

	case allymgr.CloseMsg:
		m.currentView = ViewList
		return m, m.questList.LoadQuests()

	case allymgr.ChangedMsg:
		m.formView.SetAllies(m.store.Allies())
		return m, nil

	case allymgr.ShareQuestMsg:
		return m, m.shareSelectedQuest(msg.AllyID)

	case allymgr.AssignQuestMsg:
		m.assignAllyID = msg.AllyID
		m.previousView = m.currentView
		m.currentView = ViewQuestCreate
		m.formView.SetAllies(m.store.Allies())
		return m, m.formView.StartCreate()

	case sharedMsg:
		m.statusMsg = string(msg)
		return m, m.questList.LoadQuests()

	case boardmgr.CloseMsg:
		m.currentView = ViewList
		return m, nil

	case boardmgr.ChangedMsg:
		return m, nil

	case command.CommandMsg:
		m.currentView = m.previousView
		return m, m.executeCommand(string(msg))

	case tea.KeyMsg:
		m.statusMsg = ""
		if handled, mdl, cmd := m.handleGlobalKey(msg); handled {
			return mdl, cmd
		}
	}

	return m.updateActiveView(msg)
}

// handleGlobalKey processes keys that work regardless of the focused
// sub-view. Views with text input keep focus, so global shortcuts only
// fire from browsing views.
func (m Model) handleGlobalKey(msg tea.KeyMsg) (bool, tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return true, m, tea.Quit

	case "q":
		if m.currentView == ViewList {
			return true, m, tea.Quit
		}

	case "?":
		if m.currentView == ViewHelp {
			m.currentView = m.previousView
			return true, m, nil
		}
		if m.currentView == ViewList || m.currentView == ViewDetail {
			m.previousView = m.currentView
			m.currentView = ViewHelp
			return true, m, nil
		}

	case ":":
		if m.currentView == ViewCommand {
			m.currentView = m.previousView
			return true, m, nil
		}
		if m.currentView == ViewList || m.currentView == ViewDetail {
			m.previousView = m.currentView
			m.currentView = ViewCommand
			return true, m, m.commandView.Focus()
		}

	case "n":
		if m.currentView == ViewList {
			m.previousView = m.currentView
			m.currentView = ViewQuestCreate
			m.openQuestID = ""
			m.formView.SetAllies(m.store.Allies())
			return true, m, m.formView.StartCreate()
		}

	case "e":
		if m.currentView == ViewList {
			id := m.questList.SelectedQuestID()
			if q, ok := m.store.Quest(id); ok {
				m.previousView = m.currentView
				m.currentView = ViewQuestEdit
				m.openQuestID = ""
				m.formView.SetAllies(m.store.Allies())
				return true, m, m.formView.StartEdit(q)
			}
		}

	case "x":
		if m.currentView == ViewList {
			id := m.questList.SelectedQuestID()
			if q, ok := m.store.Quest(id); ok {
				return true, m, m.toggleQuest(q.ID, !q.Completed)
			}
		}

	case "d":
		if m.currentView == ViewList {
			if id := m.questList.SelectedQuestID(); id != "" {
				return true, m, m.deleteQuest(id)
			}
		}

	case "a":
		if m.currentView == ViewList {
			m.previousView = m.currentView
			m.currentView = ViewAllies
			return true, m, m.allyView.Init()
		}

	case "b":
		if m.currentView == ViewList {
			m.previousView = m.currentView
			m.currentView = ViewBoards
			return true, m, m.boardView.Init()
		}
	}

	return false, m, nil
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewList:
		m.questList, cmd = m.questList.Update(msg)
	case ViewDetail:
		m.detailView, cmd = m.detailView.Update(msg)
	case ViewHelp:
		m.helpView, cmd = m.helpView.Update(msg)
	case ViewCommand:
		m.commandView, cmd = m.commandView.Update(msg)
	case ViewQuestCreate, ViewQuestEdit:
		m.formView, cmd = m.formView.Update(msg)
	case ViewAllies:
		m.allyView, cmd = m.allyView.Update(msg)
	case ViewBoards:
		m.boardView, cmd = m.boardView.Update(msg)
	}

	return m, cmd
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready || m.store.Loading() {
		return "Loading..."
	}

	header := m.layout.RenderHeader(m.skin.AppTitle, m.headerStats())
	content := m.renderContent()
	statusBar := m.layout.RenderStatusBar(m.keyHints())

	return m.layout.RenderWithFrame(header, content, statusBar)
}

// renderContent returns the rendered string for the current active view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewList:
		return m.questList.View()
	case ViewDetail:
		return m.detailView.View()
	case ViewHelp:
		return m.helpView.View()
	case ViewCommand:
		return m.commandView.View()
	case ViewQuestCreate, ViewQuestEdit:
		return m.formView.View()
	case ViewAllies:
		return m.allyView.View()
	case ViewBoards:
		return m.boardView.View()
	default:
		return ""
	}
}

// headerStats summarizes the collection for the header's right side.
func (m Model) headerStats() string {
	quests := m.store.Quests()
	counts := store.CountQuests(quests)
	return fmt.Sprintf(
		"%d open · %d done · %d%s",
		counts.Pending, counts.Completed, store.EarnedXP(quests), m.skin.XPLabel,
	)
}

// keyHints returns keyboard shortcut hints for the status bar.
func (m Model) keyHints() string {
	if m.statusMsg != "" && m.currentView == ViewList {
		return m.statusMsg
	}

	switch m.currentView {
	case ViewHelp:
		return "? close help | esc back"
	case ViewCommand:
		return ": close command | enter execute | esc back"
	case ViewDetail:
		return "x toggle | + add step | e edit | d delete | esc back"
	case ViewQuestCreate, ViewQuestEdit:
		return "enter submit | esc cancel"
	case ViewAllies:
		return "i invite | y accept | N decline | s share | g assign | d remove | esc back"
	case ViewBoards:
		return "n new | esc back"
	default:
		return "q quit | ? help | n new | e edit | x done | / search | a allies | b boards"
	}
}

// refreshDetail re-reads the open quest and pushes it into the detail
// view. A vanished quest clears the panel.
func (m *Model) refreshDetail() {
	if m.openQuestID == "" {
		return
	}
	if q, ok := m.store.Quest(m.openQuestID); ok {
		m.detailView.SetQuest(&q, m.store.Allies())
	} else {
		m.detailView.SetQuest(nil, nil)
	}
}

// executeCommand handles a command string from the command palette.
func (m *Model) executeCommand(cmd string) tea.Cmd {
	switch cmd {
	case "quit", "q":
		return tea.Quit
	case "new", "new quest", "new task":
		m.previousView = m.currentView
		m.currentView = ViewQuestCreate
		m.formView.SetAllies(m.store.Allies())
		return m.formView.StartCreate()
	case "allies", "partners":
		m.previousView = m.currentView
		m.currentView = ViewAllies
		return m.allyView.Init()
	case "boards", "lists":
		m.previousView = m.currentView
		m.currentView = ViewBoards
		return m.boardView.Init()
	case "help":
		m.previousView = m.currentView
		m.currentView = ViewHelp
		return nil
	default:
		return nil
	}
}
