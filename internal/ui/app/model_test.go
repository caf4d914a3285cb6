package app

import (
	"context"
	"slices"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	dashboarddto "lumen/internal/modules/dashboard/dto"
	focusdomain "lumen/internal/modules/focus/domain"
	notesdto "lumen/internal/modules/notes/dto"
	"lumen/internal/modules/shortcut/domain"
	"lumen/internal/modules/shortcut/service"
	"lumen/internal/platform/kvstore"
	"lumen/internal/ui/components"
	notesview "lumen/internal/ui/views/notes"
)

type fakeController struct {
	snap  focusdomain.Snapshot
	calls []string
	bound int
}

func (f *fakeController) BeginPress() focusdomain.Snapshot {
	f.calls = append(f.calls, "begin")
	f.snap.State = focusdomain.StatePressing
	f.snap.PressStartedAt = time.Now()
	return f.snap
}

func (f *fakeController) CancelPress() focusdomain.Snapshot {
	f.calls = append(f.calls, "cancel")
	f.snap.State = focusdomain.StateIdle
	return f.snap
}

func (f *fakeController) Toggle() focusdomain.Snapshot {
	f.calls = append(f.calls, "toggle")
	f.snap.State = focusdomain.StateFocusing
	f.snap.SessionID = "s1"
	return f.snap
}

func (f *fakeController) Snapshot() focusdomain.Snapshot { return f.snap }

func (f *fakeController) Refresh(context.Context) focusdomain.Snapshot {
	f.calls = append(f.calls, "refresh")
	return f.snap
}

func (f *fakeController) SetBound(minutes int) focusdomain.Snapshot {
	f.bound = minutes
	f.snap.BoundMinutes = minutes
	return f.snap
}

type fakeNotes struct {
	notes   []notesdto.NoteOutput
	created int
}

func (f *fakeNotes) List(context.Context) ([]notesdto.NoteOutput, error) { return f.notes, nil }
func (f *fakeNotes) Create(context.Context) (notesdto.NoteOutput, error) {
	f.created++
	n := notesdto.NoteOutput{ID: "new", Title: "Add a title", Date: time.Now()}
	f.notes = append([]notesdto.NoteOutput{n}, f.notes...)
	return n, nil
}
func (f *fakeNotes) Rename(context.Context, notesdto.RenameInput) (notesdto.NoteOutput, error) {
	return notesdto.NoteOutput{}, nil
}
func (f *fakeNotes) AppendLine(context.Context, notesdto.AppendLineInput) (notesdto.NoteOutput, error) {
	return notesdto.NoteOutput{}, nil
}
func (f *fakeNotes) EditLine(context.Context, notesdto.EditLineInput) (notesdto.NoteOutput, error) {
	return notesdto.NoteOutput{}, nil
}
func (f *fakeNotes) Delete(context.Context, string) error { return nil }

type fakeDashboard struct{}

func (fakeDashboard) Summary(context.Context) (dashboarddto.SummaryOutput, error) {
	return dashboarddto.SummaryOutput{Empty: true}, nil
}

func newTestModel() (Model, *fakeController, *fakeNotes) {
	ctrl := &fakeController{}
	notes := &fakeNotes{notes: []notesdto.NoteOutput{{ID: "n1", Title: "First", Date: time.Now()}}}
	dispatcher := service.NewDispatcher(domain.NewTable(domain.PlatformWindows), nil)
	m := NewModel(ctrl, notes, fakeDashboard{}, dispatcher, domain.PageFocus)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 30})
	return updated.(Model), ctrl, notes
}

func altKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}, Alt: true}
}

func send(m Model, msg tea.Msg) (Model, tea.Cmd) {
	updated, cmd := m.Update(msg)
	return updated.(Model), cmd
}

func TestNavigationShortcutsWrap(t *testing.T) {
	m, _, _ := newTestModel()

	m, _ = send(m, tea.KeyMsg{Type: tea.KeyLeft, Alt: true})
	if m.page != domain.PageDashboard {
		t.Fatalf("page = %s, want dashboard", m.page)
	}
	if m.direction != domain.Forward {
		t.Errorf("direction = %s, want forward", m.direction)
	}

	m, _ = send(m, tea.KeyMsg{Type: tea.KeyRight, Alt: true})
	if m.page != domain.PageFocus {
		t.Fatalf("page = %s, want focus", m.page)
	}
	m, _ = send(m, tea.KeyMsg{Type: tea.KeyRight, Alt: true})
	if m.page != domain.PageNotes {
		t.Fatalf("page = %s, want notes", m.page)
	}
}

func TestHelpOverlayToggles(t *testing.T) {
	m, _, _ := newTestModel()

	m, _ = send(m, altKey('?'))
	if !m.showHelp {
		t.Fatal("help should be visible")
	}
	m, _ = send(m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.showHelp {
		t.Fatal("esc should close help")
	}
}

func TestStartStopShortcutOnlyOnFocusPage(t *testing.T) {
	m, ctrl, _ := newTestModel()

	m, _ = send(m, altKey('s'))
	if len(ctrl.calls) != 1 || ctrl.calls[0] != "toggle" {
		t.Fatalf("calls = %v, want [toggle]", ctrl.calls)
	}

	m, _ = send(m, tea.KeyMsg{Type: tea.KeyRight, Alt: true})
	_, _ = send(m, altKey('s'))
	if len(ctrl.calls) != 1 {
		t.Fatalf("alt+s on notes page should be ignored, calls = %v", ctrl.calls)
	}
}

func TestInputFocusSuppressesCreateNote(t *testing.T) {
	m, _, notes := newTestModel()
	m.page = domain.PageNotes
	m, _ = send(m, notesview.NotesLoadedMsg{Notes: notes.notes})

	m, _ = send(m, tea.KeyMsg{Type: tea.KeyEnter})
	if !m.inputFocused() {
		t.Fatal("enter should focus the line input")
	}
	m, cmd := send(m, altKey('n'))
	if cmd != nil {
		cmd()
	}
	if notes.created != 0 {
		t.Fatal("create-note must be suppressed while typing")
	}

	m, _ = send(m, tea.KeyMsg{Type: tea.KeyLeft, Alt: true})
	if m.page != domain.PageFocus {
		t.Fatalf("navigation must still work while typing, page = %s", m.page)
	}
}

func TestCreateNoteShortcut(t *testing.T) {
	m, _, notes := newTestModel()
	m.page = domain.PageNotes

	m, cmd := send(m, altKey('n'))
	if cmd == nil {
		t.Fatal("expected a create command")
	}
	msg := cmd()
	if notes.created != 1 {
		t.Fatalf("created = %d, want 1", notes.created)
	}
	m, _ = send(m, msg)
	if m.notesView.CurrentID() != "new" {
		t.Fatalf("current note = %q, want new", m.notesView.CurrentID())
	}
}

func TestOrbHoldDrivesController(t *testing.T) {
	m, ctrl, _ := newTestModel()

	// 80x30 leaves a 26-row page; the orb centre lands at page (39, 10).
	press := tea.MouseMsg{X: 39, Y: 10 + headerRows, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	m, _ = send(m, press)
	if len(ctrl.calls) != 1 || ctrl.calls[0] != "begin" {
		t.Fatalf("calls = %v, want [begin]", ctrl.calls)
	}

	release := tea.MouseMsg{X: 39, Y: 10 + headerRows, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft}
	_, _ = send(m, release)
	if len(ctrl.calls) != 2 || ctrl.calls[1] != "cancel" {
		t.Fatalf("calls = %v, want [begin cancel]", ctrl.calls)
	}
}

func orbPress() tea.MouseMsg {
	return tea.MouseMsg{X: 39, Y: 10 + headerRows, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func orbRelease() tea.MouseMsg {
	return tea.MouseMsg{X: 39, Y: 10 + headerRows, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft}
}

func TestNavigatingMidHoldCancelsPress(t *testing.T) {
	m, ctrl, _ := newTestModel()

	m, _ = send(m, orbPress())
	m, _ = send(m, tea.KeyMsg{Type: tea.KeyRight, Alt: true})
	if m.page != domain.PageNotes {
		t.Fatalf("page = %s, want notes", m.page)
	}
	if want := []string{"begin", "cancel"}; !slices.Equal(ctrl.calls, want) {
		t.Fatalf("calls = %v, want %v", ctrl.calls, want)
	}

	// The release lands on another page and must not cancel twice.
	_, _ = send(m, orbRelease())
	if len(ctrl.calls) != 2 {
		t.Fatalf("calls = %v after release", ctrl.calls)
	}
}

func TestOpeningHelpMidHoldCancelsPress(t *testing.T) {
	m, ctrl, _ := newTestModel()

	m, _ = send(m, orbPress())
	m, _ = send(m, altKey('?'))
	if !m.showHelp {
		t.Fatal("help should be visible")
	}
	if want := []string{"begin", "cancel"}; !slices.Equal(ctrl.calls, want) {
		t.Fatalf("calls = %v, want %v", ctrl.calls, want)
	}
	if ctrl.snap.State != focusdomain.StateIdle {
		t.Fatalf("state = %s, want idle", ctrl.snap.State)
	}
}

func TestReleaseBehindTimerModalCancelsPress(t *testing.T) {
	m, ctrl, _ := newTestModel()

	m, _ = send(m, orbPress())
	m.timerConfig.Open(0)
	_, _ = send(m, orbRelease())
	if want := []string{"begin", "cancel"}; !slices.Equal(ctrl.calls, want) {
		t.Fatalf("calls = %v, want %v", ctrl.calls, want)
	}
}

func TestFocusSessionsChangeRefreshesController(t *testing.T) {
	m, ctrl, _ := newTestModel()

	_, cmd := send(m, StoreChangedMsg{Key: kvstore.KeyFocusSessions})
	if cmd == nil {
		t.Fatal("expected refresh commands")
	}
	batch, ok := cmd().(tea.BatchMsg)
	if !ok {
		t.Fatalf("expected a batch, got %T", cmd())
	}
	for _, c := range batch {
		if c != nil {
			c()
		}
	}
	if !slices.Contains(ctrl.calls, "refresh") {
		t.Fatalf("calls = %v, want refresh", ctrl.calls)
	}
}

func TestPressOutsideOrbIsIgnored(t *testing.T) {
	m, ctrl, _ := newTestModel()
	_, _ = send(m, tea.MouseMsg{X: 0, Y: headerRows, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if len(ctrl.calls) != 0 {
		t.Fatalf("calls = %v, want none", ctrl.calls)
	}
}

func TestTimerConfigSubmitSetsBound(t *testing.T) {
	m, ctrl, _ := newTestModel()

	m, _ = send(m, altKey('t'))
	if !m.timerConfig.Visible() {
		t.Fatal("alt+t should open the timer modal")
	}
	m, _ = send(m, components.TimerConfigSubmitMsg{Minutes: 25})
	if ctrl.bound != 25 {
		t.Fatalf("bound = %d, want 25", ctrl.bound)
	}
	if m.focusView.Snapshot().BoundMinutes != 25 {
		t.Fatalf("focus view not refreshed: %+v", m.focusView.Snapshot())
	}
}
