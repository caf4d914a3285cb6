package focus

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"lumen/internal/modules/focus/domain"
	"lumen/internal/ui/theme"
)

const (
	orbWidth  = 23
	orbHeight = 9
	// lines under the orb: blank, caption, progress, hint
	footerLines = 4
	frameRate   = 50 * time.Millisecond
)

// ControllerPort is the slice of the session controller the focus page drives.
type ControllerPort interface {
	BeginPress() domain.Snapshot
	CancelPress() domain.Snapshot
	Toggle() domain.Snapshot
	Snapshot() domain.Snapshot
}

// SnapshotMsg delivers a controller snapshot to the program.
type SnapshotMsg struct{ Snapshot domain.Snapshot }

type frameMsg struct{}

type Model struct {
	ctrl     ControllerPort
	now      func() time.Time
	snap     domain.Snapshot
	bar      progress.Model
	width    int
	height   int
	holding  bool
	animated bool
}

func New(ctrl ControllerPort, now func() time.Time) Model {
	if now == nil {
		now = time.Now
	}
	bar := progress.New(progress.WithGradient(string(theme.Lavender), string(theme.Peach)), progress.WithoutPercentage())
	bar.Width = orbWidth * 2
	return Model{ctrl: ctrl, now: now, snap: ctrl.Snapshot(), bar: bar}
}

func (m Model) Snapshot() domain.Snapshot { return m.snap }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.bar.Width = min(max(msg.Width/2, 10), 60)

	case SnapshotMsg:
		m.snap = msg.Snapshot
		return m, m.animate()

	case frameMsg:
		m.animated = false
		return m, m.animate()

	case tea.MouseMsg:
		return m.handleMouse(msg)
	}
	return m, nil
}

// Toggle runs the keyboard start/stop shortcut.
func (m Model) Toggle() (Model, tea.Cmd) {
	m.holding = false
	m.snap = m.ctrl.Toggle()
	return m, m.animate()
}

// CancelHold abandons an orb hold whose release will not reach this page,
// as when the user navigates away or opens an overlay mid-press.
func (m Model) CancelHold() Model {
	if !m.holding {
		return m
	}
	m.holding = false
	m.snap = m.ctrl.CancelPress()
	return m
}

// handleMouse maps a left-button hold on the orb to the press gesture.
// Releasing or leaving the orb before the deadline cancels it.
func (m Model) handleMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || !m.OnOrb(msg.X, msg.Y) {
			return m, nil
		}
		m.holding = true
		m.snap = m.ctrl.BeginPress()
		return m, m.animate()
	case tea.MouseActionMotion:
		if m.holding && !m.OnOrb(msg.X, msg.Y) {
			m.holding = false
			m.snap = m.ctrl.CancelPress()
		}
	case tea.MouseActionRelease:
		if m.holding {
			m.holding = false
			m.snap = m.ctrl.CancelPress()
		}
	}
	return m, nil
}

// animate schedules redraw frames while a press is armed so the hold fill
// grows. Only one frame is in flight at a time.
func (m *Model) animate() tea.Cmd {
	if m.snap.State != domain.StatePressing || m.animated {
		return nil
	}
	m.animated = true
	return tea.Tick(frameRate, func(time.Time) tea.Msg { return frameMsg{} })
}

// orbOrigin is the top-left cell of the orb within the page.
func (m Model) orbOrigin() (int, int) {
	x := max((m.width-orbWidth)/2, 0)
	y := max((m.height-orbHeight-footerLines)/2, 0)
	return x, y
}

// OnOrb reports whether page-relative cell (x, y) lies inside the orb.
func (m Model) OnOrb(x, y int) bool {
	ox, oy := m.orbOrigin()
	return insideEllipse(x-ox, y-oy)
}

func insideEllipse(col, row int) bool {
	if col < 0 || row < 0 || col >= orbWidth || row >= orbHeight {
		return false
	}
	cx, cy := float64(orbWidth-1)/2, float64(orbHeight-1)/2
	dx := (float64(col) - cx) / (cx + 0.5)
	dy := (float64(row) - cy) / (cy + 0.5)
	return dx*dx+dy*dy <= 1
}

func (m Model) View() string {
	ox, oy := m.orbOrigin()
	var sb strings.Builder
	sb.WriteString(strings.Repeat("\n", oy))
	sb.WriteString(m.renderOrb(ox))
	sb.WriteString("\n")
	center := lipgloss.NewStyle().Width(m.width).Align(lipgloss.Center)
	sb.WriteString(center.Render(theme.Caption.Render(m.caption())) + "\n")
	if m.snap.BoundMinutes > 0 && (m.snap.Active() || m.snap.State == domain.StateCompleted) {
		sb.WriteString(center.Render(m.bar.ViewAs(m.snap.Progress/100)) + "\n")
	} else {
		sb.WriteString("\n")
	}
	sb.WriteString(center.Render(theme.Muted.Render(m.hint())))
	return sb.String()
}

func (m Model) renderOrb(left int) string {
	fill := m.holdFraction()
	style := lipgloss.NewStyle().Foreground(theme.OrbColor(m.snap.State.String()))
	base := lipgloss.NewStyle().Foreground(theme.OrbColor(m.origin().String()))
	pad := strings.Repeat(" ", left)

	var sb strings.Builder
	for row := 0; row < orbHeight; row++ {
		// The hold fill rises from the bottom row.
		filled := float64(orbHeight-row) <= fill*float64(orbHeight)
		var line strings.Builder
		for col := 0; col < orbWidth; col++ {
			if insideEllipse(col, row) {
				line.WriteString("█")
			} else {
				line.WriteString(" ")
			}
		}
		s := line.String()
		if m.snap.State == domain.StatePressing && !filled {
			s = base.Render(s)
		} else {
			s = style.Render(s)
		}
		sb.WriteString(pad + s + "\n")
	}
	return sb.String()
}

func (m Model) origin() domain.State {
	if m.snap.State == domain.StatePressing {
		return m.snap.Origin
	}
	return m.snap.State
}

// holdFraction is how much of the press deadline has passed, 0..1.
func (m Model) holdFraction() float64 {
	if m.snap.State != domain.StatePressing || m.snap.PressStartedAt.IsZero() {
		return 0
	}
	f := float64(m.now().Sub(m.snap.PressStartedAt)) / float64(domain.PressHold)
	return math.Max(0, math.Min(f, 1))
}

func (m Model) caption() string {
	switch m.snap.State {
	case domain.StateFocusing:
		return "FOCUSING  " + clockText(m.snap.Elapsed)
	case domain.StatePressing:
		if m.snap.Origin == domain.StateFocusing {
			return "HOLD TO STOP  " + clockText(m.snap.Elapsed)
		}
		return "HOLD TO START"
	case domain.StateCompleted:
		return fmt.Sprintf("COMPLETED %dS FOCUSING", m.snap.LastDuration)
	}
	return ""
}

func (m Model) hint() string {
	bound := "no timer"
	if m.snap.BoundMinutes > 0 {
		bound = fmt.Sprintf("%dm timer set", m.snap.BoundMinutes)
	}
	return "hold the orb to start or stop  ·  " + bound
}

func clockText(d time.Duration) string {
	total := int(d / time.Second)
	h, mnt, s := total/3600, (total%3600)/60, total%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, mnt, s)
	}
	return fmt.Sprintf("%02d:%02d", mnt, s)
}
