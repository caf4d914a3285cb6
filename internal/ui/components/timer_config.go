package components

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"lumen/internal/modules/focus/domain"
	"lumen/internal/ui/theme"
)

// TimerConfigSubmitMsg carries the chosen bound in minutes; 0 clears it.
type TimerConfigSubmitMsg struct{ Minutes int }

// TimerConfigCancelMsg is emitted when the modal closes without a change.
type TimerConfigCancelMsg struct{}

// TimerConfig is the bound editor overlay. Digits are typed into a
// textinput; up/down step by one minute and shift+up/down by ten.
type TimerConfig struct {
	input   textinput.Model
	visible bool
	width   int
}

func NewTimerConfig() TimerConfig {
	ti := textinput.New()
	ti.Placeholder = "minutes"
	ti.CharLimit = 3
	ti.Width = 6
	ti.Validate = func(s string) error {
		for _, r := range s {
			if r < '0' || r > '9' {
				return strconv.ErrSyntax
			}
		}
		return nil
	}
	return TimerConfig{input: ti}
}

func (c TimerConfig) Visible() bool { return c.visible }

// Open shows the modal seeded with the current bound and focuses the input.
func (c *TimerConfig) Open(minutes int) tea.Cmd {
	c.visible = true
	if minutes > 0 {
		c.input.SetValue(strconv.Itoa(minutes))
	} else {
		c.input.SetValue("")
	}
	c.input.CursorEnd()
	return c.input.Focus()
}

func (c *TimerConfig) Close() {
	c.visible = false
	c.input.Blur()
}

func (c *TimerConfig) SetWidth(w int) { c.width = w }

// Minutes parses the current input, clamped to the allowed range.
func (c TimerConfig) Minutes() int {
	n, err := strconv.Atoi(strings.TrimSpace(c.input.Value()))
	if err != nil {
		return 0
	}
	return domain.ClampMinutes(n)
}

func (c TimerConfig) Update(msg tea.Msg) (TimerConfig, tea.Cmd) {
	if !c.visible {
		return c, nil
	}
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc":
			c.Close()
			return c, func() tea.Msg { return TimerConfigCancelMsg{} }
		case "enter":
			minutes := c.Minutes()
			c.Close()
			return c, func() tea.Msg { return TimerConfigSubmitMsg{Minutes: minutes} }
		case "up", "+":
			c.step(1)
			return c, nil
		case "down", "-":
			c.step(-1)
			return c, nil
		case "shift+up", "pgup":
			c.step(10)
			return c, nil
		case "shift+down", "pgdown":
			c.step(-10)
			return c, nil
		case "x":
			c.input.SetValue("")
			return c, nil
		}
	}
	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return c, cmd
}

func (c *TimerConfig) step(delta int) {
	c.input.SetValue(strconv.Itoa(domain.ClampMinutes(c.Minutes() + delta)))
	c.input.CursorEnd()
}

func (c TimerConfig) View() string {
	if !c.visible {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Focus timer") + "\n\n")
	sb.WriteString(c.input.View() + theme.Muted.Render(" minutes") + "\n\n")
	sb.WriteString(theme.Muted.Render("↑/↓ ±1  shift+↑/↓ ±10  x clear  enter set  esc close"))

	w := c.width
	if w < 20 {
		w = 48
	}
	return theme.Modal.Width(w - 2).Render(sb.String())
}
