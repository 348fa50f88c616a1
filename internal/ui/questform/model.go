package questform

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"questline/internal/model"
	"questline/internal/store"
	"questline/internal/theme"
)

// QuestCreatedMsg is dispatched when a new quest is submitted via the form.
type QuestCreatedMsg struct {
	Draft model.Quest
}

// QuestUpdatedMsg is dispatched when an existing quest is edited via the form.
type QuestUpdatedMsg struct {
	ID     string
	Update store.QuestUpdate
}

// CancelMsg is dispatched when the user cancels the form.
type CancelMsg struct{}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	title       string
	description string
	difficulty  model.Difficulty
	dueDate     string
	category    string
	tags        string
	allyIDs     []string
	multiStep   bool
	steps       string
}

// Model is the Bubble Tea model for the quest create/edit form.
type Model struct {
	form     *huh.Form
	fb       *formBindings
	editMode bool
	editID   string
	allies   []model.Ally
	labels   Labels
	width    int
	height   int
}

// Labels carries the skin-dependent strings shown on the form.
type Labels struct {
	CreateTitle string
	EditTitle   string
	StepsTitle  string
	AlliesTitle string
	XPLabel     string
}

// New creates a new quest form model.
func New(labels Labels, width, height int) Model {
	return Model{
		fb:     &formBindings{difficulty: model.DifficultyMedium, category: model.CategoryPersonal},
		labels: labels,
		width:  width,
		height: height,
	}
}

// SetAllies sets the allies available in the share selector. Only allied
// entries are offered.
func (m *Model) SetAllies(allies []model.Ally) {
	m.allies = nil
	for _, a := range allies {
		if a.Status == model.AllyStatusAllied {
			m.allies = append(m.allies, a)
		}
	}
}

// StartCreate initializes the form for creating a new quest.
func (m *Model) StartCreate() tea.Cmd {
	m.editMode = false
	m.editID = ""
	*m.fb = formBindings{
		difficulty: model.DifficultyMedium,
		category:   model.CategoryPersonal,
	}
	m.form = m.buildForm(true)
	return m.form.Init()
}

// StartEdit initializes the form for editing an existing quest.
func (m *Model) StartEdit(q model.Quest) tea.Cmd {
	m.editMode = true
	m.editID = q.ID
	*m.fb = formBindings{
		title:       q.Title,
		description: q.Description,
		difficulty:  q.Difficulty,
		category:    q.Category,
		tags:        strings.Join(q.Tags, ", "),
		allyIDs:     append([]string(nil), q.Allies...),
		multiStep:   q.IsMultiStep,
	}
	if q.DueDate != nil {
		m.fb.dueDate = q.DueDate.Format("2006-01-02")
	}
	m.form = m.buildForm(false)
	return m.form.Init()
}

// Update handles messages for the quest form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		return m, m.handleSubmit()
	}
	if m.form.State == huh.StateAborted {
		return m, func() tea.Msg { return CancelMsg{} }
	}

	return m, cmd
}

// View renders the quest form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleText := m.labels.CreateTitle
	if m.editMode {
		titleText = m.labels.EditTitle
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	content := titleStyle.Render(titleText) + "\n" + m.form.View()

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(content)
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) buildForm(create bool) *huh.Form {
	fields := []huh.Field{
		huh.NewInput().
			Title("Title").
			Placeholder("What is the objective?").
			Value(&m.fb.title).
			Validate(validateRequired("Title")),
		huh.NewText().
			Title("Description").
			Placeholder("Optional details...").
			Value(&m.fb.description),
		huh.NewSelect[model.Difficulty]().
			Title("Difficulty").
			Options(m.difficultyOptions()...).
			Value(&m.fb.difficulty),
		huh.NewSelect[string]().
			Title("Category").
			Options(m.categoryOptions()...).
			Value(&m.fb.category),
		huh.NewInput().
			Title("Due Date").
			Placeholder("YYYY-MM-DD (optional)").
			Value(&m.fb.dueDate).
			Validate(validateOptionalDate),
		huh.NewInput().
			Title("Tags").
			Placeholder("comma, separated (optional)").
			Value(&m.fb.tags),
	}

	if allyField := m.allyField(); allyField != nil {
		fields = append(fields, allyField)
	}

	if create {
		fields = append(fields,
			huh.NewConfirm().
				Title(m.labels.StepsTitle+"?").
				Value(&m.fb.multiStep),
			huh.NewText().
				Title(m.labels.StepsTitle).
				Placeholder("one per line (optional)").
				Value(&m.fb.steps),
		)
	}

	return huh.NewForm(
		huh.NewGroup(fields...),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m *Model) difficultyOptions() []huh.Option[model.Difficulty] {
	difficulties := model.Difficulties()
	opts := make([]huh.Option[model.Difficulty], 0, len(difficulties))
	for _, d := range difficulties {
		label := fmt.Sprintf("%s (+%d%s)", titleCase(string(d)), model.BaseXP(d), m.labels.XPLabel)
		opts = append(opts, huh.NewOption(label, d))
	}
	return opts
}

func (m *Model) categoryOptions() []huh.Option[string] {
	categories := model.Categories()
	opts := make([]huh.Option[string], 0, len(categories))
	for _, c := range categories {
		opts = append(opts, huh.NewOption(titleCase(c), c))
	}
	return opts
}

func (m *Model) allyField() huh.Field {
	if len(m.allies) == 0 {
		return nil
	}
	opts := make([]huh.Option[string], len(m.allies))
	for i, a := range m.allies {
		opts[i] = huh.NewOption(a.Name, a.ID)
	}
	return huh.NewMultiSelect[string]().
		Title(m.labels.AlliesTitle).
		Options(opts...).
		Value(&m.fb.allyIDs)
}

func (m Model) handleSubmit() tea.Cmd {
	var due *time.Time
	if d := strings.TrimSpace(m.fb.dueDate); d != "" {
		if t, err := time.Parse("2006-01-02", d); err == nil {
			due = &t
		}
	}

	tags := splitTags(m.fb.tags)
	allyIDs := m.fb.allyIDs

	if m.editMode {
		id := m.editID
		upd := store.QuestUpdate{
			Title:       store.Ptr(m.fb.title),
			Description: store.Ptr(m.fb.description),
			Difficulty:  store.Ptr(m.fb.difficulty),
			Category:    store.Ptr(m.fb.category),
			Tags:        &tags,
			Allies:      &allyIDs,
		}
		if due != nil {
			upd.DueDate = due
		} else {
			upd.ClearDueDate = true
		}
		return func() tea.Msg { return QuestUpdatedMsg{ID: id, Update: upd} }
	}

	draft := model.Quest{
		Title:       m.fb.title,
		Description: m.fb.description,
		Difficulty:  m.fb.difficulty,
		Category:    m.fb.category,
		DueDate:     due,
		Tags:        tags,
		Allies:      allyIDs,
		IsMultiStep: m.fb.multiStep,
	}
	for _, line := range strings.Split(m.fb.steps, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		draft.SubQuests = append(draft.SubQuests, model.SubQuest{Title: line})
		draft.IsMultiStep = true
	}
	return func() tea.Msg { return QuestCreatedMsg{Draft: draft} }
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

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func splitTags(s string) []string {
	var tags []string
	for _, t := range strings.Split(s, ",") {
		t = strings.TrimSpace(t)
		if t != "" {
			tags = append(tags, t)
		}
	}
	if tags == nil {
		tags = []string{}
	}
	return tags
}

func validateRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
		return nil
	}
}

func validateOptionalDate(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	_, err := time.Parse("2006-01-02", s)
	if err != nil {
		return fmt.Errorf("invalid date format, use YYYY-MM-DD")
	}
	return nil
}
