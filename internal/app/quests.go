package app

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"questline/internal/model"
	"questline/internal/store"
)

// questsChangedMsg signals that the quest collection was mutated and
// dependent views should reload their snapshots.
type questsChangedMsg struct{}

// sharedMsg carries a status line after a share attempt.
type sharedMsg string

func changed() tea.Msg { return questsChangedMsg{} }

func (m Model) createQuest(draft model.Quest) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		s.CreateQuest(context.Background(), draft)
		return changed()
	}
}

func (m Model) createQuestForAlly(allyID string, draft model.Quest) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		s.CreateQuestForAlly(context.Background(), allyID, draft)
		return changed()
	}
}

func (m Model) updateQuest(id string, upd store.QuestUpdate) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		s.UpdateQuest(context.Background(), id, upd)
		return changed()
	}
}

func (m Model) toggleQuest(id string, completed bool) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		s.UpdateQuest(context.Background(), id, store.QuestUpdate{
			Completed: store.Ptr(completed),
		})
		return changed()
	}
}

func (m Model) deleteQuest(id string) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		s.DeleteQuest(context.Background(), id)
		return changed()
	}
}

func (m Model) addStep(questID, title string) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		s.AddSubQuest(context.Background(), questID, title)
		return changed()
	}
}

func (m Model) toggleStep(questID, subQuestID string, completed bool) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		s.UpdateSubQuest(context.Background(), questID, subQuestID, store.SubQuestUpdate{
			Completed: store.Ptr(completed),
		})
		return changed()
	}
}

func (m Model) deleteStep(questID, subQuestID string) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		s.DeleteSubQuest(context.Background(), questID, subQuestID)
		return changed()
	}
}

// shareSelectedQuest shares the quest focused in the list view with the
// given ally. Without a focused quest there is nothing to share.
func (m Model) shareSelectedQuest(allyID string) tea.Cmd {
	s := m.store
	questID := m.questList.SelectedQuestID()
	return func() tea.Msg {
		if questID == "" {
			return sharedMsg("Select something to share first")
		}
		if s.ShareQuestWithAlly(context.Background(), questID, allyID) {
			return sharedMsg("Shared")
		}
		return sharedMsg("Share failed")
	}
}
