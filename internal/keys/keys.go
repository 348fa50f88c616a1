package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the global keybindings for the application.
type KeyMap struct {
	// Navigation
	Down key.Binding
	Up   key.Binding

	// Selection
	Select key.Binding

	// Back / Quit
	Back key.Binding
	Quit key.Binding

	// Search
	Search key.Binding

	// Command palette
	Command key.Binding

	// Help toggle
	Help key.Binding

	// Quest actions
	New      key.Binding
	Edit     key.Binding
	Toggle   key.Binding
	Delete   key.Binding
	HideDone key.Binding

	// Views
	Allies key.Binding
	Boards key.Binding

	// Ally actions
	Invite  key.Binding
	Accept  key.Binding
	Decline key.Binding
	Share   key.Binding
	Assign  key.Binding
}

// DefaultKeyMap returns the default set of keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open detail"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Command: key.NewBinding(
			key.WithKeys(":"),
			key.WithHelp(":", "command palette"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		New: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new quest"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit quest"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "toggle complete"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		HideDone: key.NewBinding(
			key.WithKeys("H"),
			key.WithHelp("H", "hide completed"),
		),
		Allies: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "allies"),
		),
		Boards: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "boards"),
		),
		Invite: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "invite"),
		),
		Accept: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "accept"),
		),
		Decline: key.NewBinding(
			key.WithKeys("N"),
			key.WithHelp("N", "decline"),
		),
		Share: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "share quest"),
		),
		Assign: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "give quest"),
		),
	}
}

// ShortHelp returns the most essential keybindings for the compact help view.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.Up, k.Down, k.Select, k.Back,
		k.Quit, k.Help, k.Search,
	}
}

// FullHelp returns all keybindings grouped by category for the expanded
// help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select, k.Back, k.Quit},
		{k.New, k.Edit, k.Toggle, k.Delete, k.HideDone},
		{k.Allies, k.Boards, k.Invite, k.Accept, k.Decline},
		{k.Share, k.Assign, k.Search, k.Command, k.Help},
	}
}
