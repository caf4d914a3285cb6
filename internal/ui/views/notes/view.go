package notes

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	notesdto "lumen/internal/modules/notes/dto"
	"lumen/internal/ui/theme"
)

type NotesPort interface {
	List(ctx context.Context) ([]notesdto.NoteOutput, error)
	Create(ctx context.Context) (notesdto.NoteOutput, error)
	Rename(ctx context.Context, input notesdto.RenameInput) (notesdto.NoteOutput, error)
	AppendLine(ctx context.Context, input notesdto.AppendLineInput) (notesdto.NoteOutput, error)
	EditLine(ctx context.Context, input notesdto.EditLineInput) (notesdto.NoteOutput, error)
	Delete(ctx context.Context, noteID string) error
}

type NotesLoadedMsg struct {
	Notes []notesdto.NoteOutput
	// Select is the note to show after loading; empty keeps the current one.
	Select string
	Err    error
}

type StatusMsg struct{ Text string }

type mode int

const (
	modeBrowse mode = iota
	modeWrite
	modeTitle
	modeLine
)

type noteItem struct{ note notesdto.NoteOutput }

func (i noteItem) Title() string       { return i.note.Title }
func (i noteItem) Description() string { return i.note.Date.Local().Format("January 2, 2006") }
func (i noteItem) FilterValue() string { return i.note.Title }

type Model struct {
	port    NotesPort
	list    list.Model
	body    viewport.Model
	line    textinput.Model
	title   textinput.Model
	edit    textinput.Model
	notes   []notesdto.NoteOutput
	current string
	cursor  int
	mode    mode
	width   int
	height  int
}

func New(port NotesPort) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Notes"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	line := textinput.New()
	line.Placeholder = "Start typing…"
	line.Prompt = "› "

	title := textinput.New()
	title.Placeholder = "Add a title"
	title.CharLimit = 120

	edit := textinput.New()
	edit.Prompt = "✎ "

	return Model{port: port, list: l, body: viewport.New(0, 0), line: line, title: title, edit: edit}
}

func (m Model) Init() tea.Cmd {
	return m.loadCmd("")
}

// Reload refetches notes, keeping the current selection when it still exists.
func (m Model) Reload() tea.Cmd {
	return m.loadCmd(m.current)
}

// InputFocused reports whether typing goes to a text field.
func (m Model) InputFocused() bool {
	return m.mode != modeBrowse || m.list.FilterState() == list.Filtering
}

// CurrentID is the note shown in the body pane.
func (m Model) CurrentID() string { return m.current }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case NotesLoadedMsg:
		if msg.Err != nil {
			return m, status("notes: " + msg.Err.Error())
		}
		m.notes = msg.Notes
		items := make([]list.Item, len(msg.Notes))
		for i, n := range msg.Notes {
			items[i] = noteItem{note: n}
		}
		cmd := m.list.SetItems(items)
		m.selectNote(msg.Select)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	// Filter results and cursor blinks.
	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	cmds = append(cmds, cmd)
	switch m.mode {
	case modeWrite:
		m.line, cmd = m.line.Update(msg)
	case modeTitle:
		m.title, cmd = m.title.Update(msg)
	case modeLine:
		m.edit, cmd = m.edit.Update(msg)
	default:
		cmd = nil
	}
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// NewNote creates a note and opens it with the title editor focused.
func (m Model) NewNote() (Model, tea.Cmd) {
	port := m.port
	return m, func() tea.Msg {
		note, err := port.Create(context.Background())
		if err != nil {
			return NotesLoadedMsg{Err: err}
		}
		notes, err := port.List(context.Background())
		return NotesLoadedMsg{Notes: notes, Select: note.ID, Err: err}
	}
}

// EditTitle focuses the title field of the current note.
func (m Model) EditTitle() (Model, tea.Cmd) {
	note, ok := m.currentNote()
	if !ok {
		return m, nil
	}
	m.blurAll()
	m.mode = modeTitle
	m.title.SetValue(note.Title)
	m.title.CursorEnd()
	return m, m.title.Focus()
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch m.mode {
	case modeWrite:
		return m.updateWrite(msg)
	case modeTitle:
		return m.updateTitle(msg)
	case modeLine:
		return m.updateLine(msg)
	}

	if m.list.FilterState() == list.Filtering {
		return m.updateList(msg)
	}
	switch msg.String() {
	case "enter", "i":
		m.blurAll()
		m.mode = modeWrite
		return m, m.line.Focus()
	case "r":
		return m.EditTitle()
	case "d":
		return m.deleteCurrent()
	case "[":
		m.moveCursor(-1)
		return m, nil
	case "]":
		m.moveCursor(1)
		return m, nil
	case "e":
		note, ok := m.currentNote()
		if !ok || len(note.Content) == 0 {
			return m, nil
		}
		m.blurAll()
		m.mode = modeLine
		m.edit.SetValue(note.Content[m.cursor])
		m.edit.CursorEnd()
		return m, m.edit.Focus()
	case "pgup", "pgdown":
		var cmd tea.Cmd
		m.body, cmd = m.body.Update(msg)
		return m, cmd
	}
	return m.updateList(msg)
}

func (m Model) updateList(msg tea.KeyMsg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	if item, ok := m.list.SelectedItem().(noteItem); ok && item.note.ID != m.current {
		m.current = item.note.ID
		m.cursor = max(len(item.note.Content)-1, 0)
		m.refreshBody()
	}
	return m, cmd
}

func (m Model) updateWrite(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.blurAll()
		return m, nil
	case "enter":
		text := m.line.Value()
		m.line.SetValue("")
		id, port := m.current, m.port
		return m, func() tea.Msg {
			if _, err := port.AppendLine(context.Background(), notesdto.AppendLineInput{NoteID: id, Text: text}); err != nil {
				return NotesLoadedMsg{Err: err}
			}
			notes, err := port.List(context.Background())
			return NotesLoadedMsg{Notes: notes, Select: id, Err: err}
		}
	}
	var cmd tea.Cmd
	m.line, cmd = m.line.Update(msg)
	return m, cmd
}

func (m Model) updateTitle(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.blurAll()
		return m, nil
	case "enter":
		title := m.title.Value()
		if strings.TrimSpace(title) == "" {
			return m, status("title cannot be empty")
		}
		m.blurAll()
		id, port := m.current, m.port
		return m, func() tea.Msg {
			if _, err := port.Rename(context.Background(), notesdto.RenameInput{NoteID: id, Title: title}); err != nil {
				return NotesLoadedMsg{Err: err}
			}
			notes, err := port.List(context.Background())
			return NotesLoadedMsg{Notes: notes, Select: id, Err: err}
		}
	}
	var cmd tea.Cmd
	m.title, cmd = m.title.Update(msg)
	return m, cmd
}

func (m Model) updateLine(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.blurAll()
		return m, nil
	case "enter":
		text := m.edit.Value()
		m.blurAll()
		id, idx, port := m.current, m.cursor, m.port
		return m, func() tea.Msg {
			if _, err := port.EditLine(context.Background(), notesdto.EditLineInput{NoteID: id, Index: idx, Text: text}); err != nil {
				return NotesLoadedMsg{Err: err}
			}
			notes, err := port.List(context.Background())
			return NotesLoadedMsg{Notes: notes, Select: id, Err: err}
		}
	}
	var cmd tea.Cmd
	m.edit, cmd = m.edit.Update(msg)
	return m, cmd
}

func (m Model) deleteCurrent() (Model, tea.Cmd) {
	id, port := m.current, m.port
	if id == "" {
		return m, nil
	}
	m.current = ""
	return m, func() tea.Msg {
		if err := port.Delete(context.Background(), id); err != nil {
			return NotesLoadedMsg{Err: err}
		}
		notes, err := port.List(context.Background())
		return NotesLoadedMsg{Notes: notes, Err: err}
	}
}

func (m *Model) blurAll() {
	m.mode = modeBrowse
	m.line.Blur()
	m.title.Blur()
	m.edit.Blur()
}

func (m *Model) moveCursor(delta int) {
	note, ok := m.currentNote()
	if !ok || len(note.Content) == 0 {
		return
	}
	m.cursor = min(max(m.cursor+delta, 0), len(note.Content)-1)
	m.refreshBody()
}

// selectNote shows id, or the first note when id is empty or gone.
func (m *Model) selectNote(id string) {
	if id == "" {
		id = m.current
	}
	idx := 0
	for i, n := range m.notes {
		if n.ID == id {
			idx = i
			break
		}
	}
	if len(m.notes) == 0 {
		m.current = ""
		m.refreshBody()
		return
	}
	m.list.Select(idx)
	if m.notes[idx].ID != m.current {
		m.cursor = max(len(m.notes[idx].Content)-1, 0)
	}
	m.current = m.notes[idx].ID
	m.cursor = min(m.cursor, max(len(m.notes[idx].Content)-1, 0))
	m.refreshBody()
}

func (m Model) currentNote() (notesdto.NoteOutput, bool) {
	for _, n := range m.notes {
		if n.ID == m.current {
			return n, true
		}
	}
	return notesdto.NoteOutput{}, false
}

func (m *Model) refreshBody() {
	note, ok := m.currentNote()
	if !ok {
		m.body.SetContent(theme.Muted.Render("No note selected"))
		return
	}
	var sb strings.Builder
	for i, line := range note.Content {
		marker := "  "
		if i == m.cursor {
			marker = theme.Hot.Render("▎ ")
		}
		sb.WriteString(marker + line + "\n")
	}
	m.body.SetContent(sb.String())
	m.body.GotoBottom()
}

func (m *Model) resize() {
	listW := m.width * 3 / 10
	m.list.SetSize(listW, m.height)
	bodyW := m.width - listW - 4
	m.body.Width = bodyW
	m.body.Height = max(m.height-8, 1)
	m.line.Width = bodyW - 4
	m.title.Width = bodyW - 4
	m.edit.Width = bodyW - 4
	m.refreshBody()
}

func (m Model) View() string {
	listW := m.width * 3 / 10
	listPane := lipgloss.NewStyle().Width(listW).Height(m.height).Render(m.list.View())

	note, _ := m.currentNote()
	var head string
	if m.mode == modeTitle {
		head = m.title.View()
	} else {
		head = theme.Title.Render(note.Title)
	}
	date := ""
	if !note.Date.IsZero() {
		date = strings.ToUpper(note.Date.Local().Format("January 2, 2006"))
	}

	input := m.line.View()
	if m.mode == modeLine {
		input = m.edit.View()
	}
	footer := theme.Muted.Render(m.hint())

	right := lipgloss.JoinVertical(lipgloss.Left,
		head,
		theme.Muted.Render(date),
		"",
		m.body.View(),
		input,
		footer,
	)
	style := theme.Pane
	if m.mode != modeBrowse {
		style = theme.PaneActive
	}
	bodyPane := style.Width(m.width - listW - 2).Height(max(m.height-2, 1)).Render(right)
	return lipgloss.JoinHorizontal(lipgloss.Top, listPane, bodyPane)
}

func (m Model) hint() string {
	switch m.mode {
	case modeWrite:
		return "enter add line  esc done"
	case modeTitle:
		return "enter save title  esc cancel"
	case modeLine:
		return "enter save line  esc cancel"
	}
	return fmt.Sprintf("enter write  r rename  [ ] line  e edit line  d delete  (%d notes)", len(m.notes))
}

func (m Model) loadCmd(selectID string) tea.Cmd {
	port := m.port
	return func() tea.Msg {
		notes, err := port.List(context.Background())
		return NotesLoadedMsg{Notes: notes, Select: selectID, Err: err}
	}
}

func status(text string) tea.Cmd {
	return func() tea.Msg { return StatusMsg{Text: text} }
}
