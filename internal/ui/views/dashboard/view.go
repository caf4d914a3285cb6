package dashboard

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	dashboarddto "lumen/internal/modules/dashboard/dto"
	"lumen/internal/ui/theme"
)

type SummaryPort interface {
	Summary(ctx context.Context) (dashboarddto.SummaryOutput, error)
}

type SummaryLoadedMsg struct {
	Summary dashboarddto.SummaryOutput
	Err     error
}

type Model struct {
	port    SummaryPort
	summary dashboarddto.SummaryOutput
	spinner spinner.Model
	loading bool
	err     error
	width   int
	height  int
}

func New(port SummaryPort) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)
	return Model{port: port, spinner: sp, loading: true}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.Reload(), m.spinner.Tick)
}

func (m Model) Reload() tea.Cmd {
	port := m.port
	return func() tea.Msg {
		summary, err := port.Summary(context.Background())
		return SummaryLoadedMsg{Summary: summary, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case SummaryLoadedMsg:
		m.loading = false
		m.err = msg.Err
		if msg.Err == nil {
			m.summary = msg.Summary
		}
	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading focus history…")
	}
	if m.err != nil {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			theme.Error.Render("dashboard: "+m.err.Error()))
	}
	if m.summary.Empty {
		msg := theme.Title.Render("No focus sessions yet") + "\n\n" +
			theme.Muted.Render("Hold the orb on the Focus page to record your first session.")
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, msg)
	}

	header := lipgloss.JoinHorizontal(lipgloss.Top,
		stat("Total focus", fmt.Sprintf("%.2fh", m.summary.TotalHours)),
		"   ",
		stat("Daily average", fmt.Sprintf("%.1fh", m.summary.DailyAverage)),
		"   ",
		stat("Days", fmt.Sprintf("%d", len(m.summary.Days))),
	)
	chart := renderChart(m.summary.Days, max(m.width-24, 10))
	body := lipgloss.JoinVertical(lipgloss.Left,
		theme.Title.Render("Focus over the last 3 weeks"),
		"",
		header,
		"",
		chart,
	)
	return theme.Pane.Width(max(m.width-2, 1)).Render(body)
}

func stat(label, value string) string {
	return theme.Muted.Render(label) + "\n" + theme.Hot.Render(value)
}

// renderChart draws one horizontal bar per day scaled to the busiest day.
func renderChart(days []dashboarddto.DayOutput, width int) string {
	peak := 0.0
	for _, d := range days {
		peak = max(peak, d.Hours)
	}
	var sb strings.Builder
	for _, d := range days {
		label := d.Date
		if t, err := time.Parse(time.DateOnly, d.Date); err == nil {
			label = t.Format("Jan 02")
		}
		n := 0
		if peak > 0 {
			n = int(d.Hours / peak * float64(width))
		}
		if d.Hours > 0 && n == 0 {
			n = 1
		}
		sb.WriteString(fmt.Sprintf("%s  %s %s\n",
			theme.Muted.Render(label),
			theme.Bar.Render(strings.Repeat("▇", n)),
			fmt.Sprintf("%.2fh", d.Hours)))
	}
	return strings.TrimRight(sb.String(), "\n")
}
