package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	dashboarddto "lumen/internal/modules/dashboard/dto"
	focusdomain "lumen/internal/modules/focus/domain"
	notesdto "lumen/internal/modules/notes/dto"
	"lumen/internal/modules/shortcut/domain"
	"lumen/internal/modules/shortcut/service"
	"lumen/internal/platform/kvstore"
	"lumen/internal/ui/components"
	"lumen/internal/ui/theme"
	dashboardview "lumen/internal/ui/views/dashboard"
	focusview "lumen/internal/ui/views/focus"
	notesview "lumen/internal/ui/views/notes"
)

// ─── ports ───────────────────────────────────────────────────────────────────

type controllerPort interface {
	focusview.ControllerPort
	SetBound(minutes int) focusdomain.Snapshot
	Refresh(ctx context.Context) focusdomain.Snapshot
}

type notesPort interface {
	List(ctx context.Context) ([]notesdto.NoteOutput, error)
	Create(ctx context.Context) (notesdto.NoteOutput, error)
	Rename(ctx context.Context, input notesdto.RenameInput) (notesdto.NoteOutput, error)
	AppendLine(ctx context.Context, input notesdto.AppendLineInput) (notesdto.NoteOutput, error)
	EditLine(ctx context.Context, input notesdto.EditLineInput) (notesdto.NoteOutput, error)
	Delete(ctx context.Context, noteID string) error
}

type dashboardPort interface {
	Summary(ctx context.Context) (dashboarddto.SummaryOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

// StoreChangedMsg reports that another process wrote key in the store.
type StoreChangedMsg struct{ Key string }

// ─── layout ──────────────────────────────────────────────────────────────────

// Rows taken by the tab bar above the page and the status bar below it.
const (
	headerRows = 2
	footerRows = 2
)

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It owns page routing, the shortcut
// dispatcher, the help overlay and the timer modal; pages render themselves.
type Model struct {
	ctrl       controllerPort
	dispatcher *service.Dispatcher
	keys       components.ShortcutKeys
	help       help.Model

	focusView     focusview.Model
	notesView     notesview.Model
	dashboardView dashboardview.Model
	timerConfig   components.TimerConfig

	page      domain.Page
	direction domain.Direction
	showHelp  bool
	status    string
	width     int
	height    int
}

func NewModel(
	ctrl controllerPort,
	notes notesPort,
	dashboard dashboardPort,
	dispatcher *service.Dispatcher,
	startPage domain.Page,
) Model {
	return Model{
		ctrl:          ctrl,
		dispatcher:    dispatcher,
		keys:          components.NewShortcutKeys(dispatcher.Table()),
		help:          help.New(),
		focusView:     focusview.New(ctrl, nil),
		notesView:     notesview.New(notes),
		dashboardView: dashboardview.New(dashboard),
		timerConfig:   components.NewTimerConfig(),
		page:          domain.ParsePage(string(startPage)),
		status:        "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.notesView.Init(), m.dashboardView.Init())
}

// ─── update ──────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = m.width
		m.timerConfig.SetWidth(min(m.width-4, 56))
		m.propagateSize()
		return m, nil

	case focusview.SnapshotMsg:
		prev := m.focusView.Snapshot().State
		m.focusView, cmd = m.focusView.Update(msg)
		if msg.Snapshot.State == focusdomain.StateCompleted && prev != focusdomain.StateCompleted {
			m.status = fmt.Sprintf("session saved (%ds)", msg.Snapshot.LastDuration)
			return m, tea.Batch(cmd, m.dashboardView.Reload())
		}
		return m, cmd

	case StoreChangedMsg:
		switch msg.Key {
		case kvstore.KeyNotes:
			return m, m.notesView.Reload()
		case kvstore.KeyFocusSessions:
			ctrl := m.ctrl
			refresh := func() tea.Msg {
				return focusview.SnapshotMsg{Snapshot: ctrl.Refresh(context.Background())}
			}
			return m, tea.Batch(refresh, m.dashboardView.Reload())
		}
		return m, nil

	case components.TimerConfigSubmitMsg:
		snap := m.ctrl.SetBound(msg.Minutes)
		m.focusView, cmd = m.focusView.Update(focusview.SnapshotMsg{Snapshot: snap})
		if snap.BoundMinutes > 0 {
			m.status = fmt.Sprintf("%dm timer set", snap.BoundMinutes)
		} else {
			m.status = "timer disabled"
		}
		return m, cmd

	case components.TimerConfigCancelMsg:
		m.status = "ready"
		return m, nil

	case notesview.StatusMsg:
		m.status = msg.Text
		return m, nil

	case notesview.NotesLoadedMsg:
		if msg.Err != nil {
			m.status = "notes: " + msg.Err.Error()
		}
		m.notesView, cmd = m.notesView.Update(msg)
		return m, cmd

	case dashboardview.SummaryLoadedMsg:
		m.dashboardView, cmd = m.dashboardView.Update(msg)
		return m, cmd

	case tea.MouseMsg:
		if m.page != domain.PageFocus || m.showHelp || m.timerConfig.Visible() {
			if msg.Action == tea.MouseActionRelease {
				m.focusView = m.focusView.CancelHold()
			}
			return m, nil
		}
		msg.Y -= headerRows
		m.focusView, cmd = m.focusView.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	// Remaining messages (ticks, frames) go to every page that may be waiting on them.
	var cmds []tea.Cmd
	m.focusView, cmd = m.focusView.Update(msg)
	cmds = append(cmds, cmd)
	m.dashboardView, cmd = m.dashboardView.Update(msg)
	cmds = append(cmds, cmd)
	m.notesView, cmd = m.notesView.Update(msg)
	cmds = append(cmds, cmd)
	if m.timerConfig.Visible() {
		m.timerConfig, cmd = m.timerConfig.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.showHelp && msg.String() == "esc" {
		m.showHelp = false
		return m, nil
	}

	res := m.dispatcher.Dispatch(service.Event{
		Combo:        domain.NormalizeTerminal(msg.String()),
		Page:         m.page,
		InputFocused: m.inputFocused(),
	})
	if res.Handled {
		return m.runAction(res)
	}
	if m.showHelp {
		return m, nil
	}

	var cmd tea.Cmd
	switch {
	case m.timerConfig.Visible():
		m.timerConfig, cmd = m.timerConfig.Update(msg)
	case m.page == domain.PageNotes:
		m.notesView, cmd = m.notesView.Update(msg)
	}
	return m, cmd
}

func (m Model) runAction(res service.Result) (tea.Model, tea.Cmd) {
	switch res.Action {
	case domain.ActionShowHelp:
		m.showHelp = !m.showHelp
		m.focusView = m.focusView.CancelHold()
		return m, nil
	case domain.ActionNavigatePrevious, domain.ActionNavigateNext:
		m.focusView = m.focusView.CancelHold()
		m.showHelp = false
		m.timerConfig.Close()
		m.page = res.Target
		m.direction = res.Direction
		if m.page == domain.PageDashboard {
			return m, m.dashboardView.Reload()
		}
		return m, nil
	case domain.ActionCreateNote:
		var cmd tea.Cmd
		m.notesView, cmd = m.notesView.NewNote()
		m.status = "note created"
		return m, cmd
	case domain.ActionEditTitle:
		var cmd tea.Cmd
		m.notesView, cmd = m.notesView.EditTitle()
		return m, cmd
	case domain.ActionToggleTimerConfig:
		m.focusView = m.focusView.CancelHold()
		return m, m.timerConfig.Open(m.focusView.Snapshot().BoundMinutes)
	case domain.ActionStartOrStopFocus:
		var cmd tea.Cmd
		m.focusView, cmd = m.focusView.Toggle()
		return m, cmd
	}
	return m, nil
}

// inputFocused reports whether a text field owns the keyboard.
func (m Model) inputFocused() bool {
	if m.timerConfig.Visible() {
		return true
	}
	return m.page == domain.PageNotes && m.notesView.InputFocused()
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	contentH := max(m.height-headerRows-footerRows, 1)

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.Place(m.width, contentH, lipgloss.Center, lipgloss.Center,
			m.keys.Dialog(m.help, min(m.width-4, 80)))
	case m.timerConfig.Visible():
		content = lipgloss.Place(m.width, contentH, lipgloss.Center, lipgloss.Center,
			m.timerConfig.View())
	default:
		content = lipgloss.NewStyle().Height(contentH).MaxHeight(contentH).Render(m.activeView())
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.renderTabBar(), content, m.renderStatusBar())
}

func (m Model) activeView() string {
	switch m.page {
	case domain.PageNotes:
		return m.notesView.View()
	case domain.PageDashboard:
		return m.dashboardView.View()
	}
	return m.focusView.View()
}

func (m Model) renderTabBar() string {
	parts := make([]string, len(domain.PageOrder))
	for i, p := range domain.PageOrder {
		if p == m.page {
			parts[i] = theme.Hot.Render(" " + p.Title() + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + p.Title() + " ")
		}
	}
	sep := theme.Muted.Render(" │ ")
	bar := "lumen  " + strings.Join(parts, sep)
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	if snap := m.focusView.Snapshot(); snap.Active() {
		left = theme.Hot.Render("● focusing") + "  " + left
	}
	right := m.help.ShortHelpView(m.keys.ShortHelp())
	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: max(m.height-headerRows-footerRows, 1)}
	m.focusView, _ = m.focusView.Update(sz)
	m.notesView, _ = m.notesView.Update(sz)
	m.dashboardView, _ = m.dashboardView.Update(sz)
}
