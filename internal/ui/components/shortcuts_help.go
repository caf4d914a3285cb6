package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"lumen/internal/modules/shortcut/domain"
	"lumen/internal/ui/theme"
)

// ShortcutKeys adapts a platform shortcut table to bubbles/help. Key names
// are terminal names; help text shows the platform labels.
type ShortcutKeys struct {
	table  domain.Table
	groups [][]key.Binding
	short  []key.Binding
}

func NewShortcutKeys(table domain.Table) ShortcutKeys {
	k := ShortcutKeys{table: table}
	for _, group := range []domain.Group{domain.GroupNavigation, domain.GroupNotes, domain.GroupFocus} {
		var col []key.Binding
		for _, b := range table.Bindings {
			if b.Group == group {
				col = append(col, toKey(b))
			}
		}
		k.groups = append(k.groups, col)
	}
	helpKey := toKey(table.Help)
	quit := key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit"))
	k.groups = append(k.groups, []key.Binding{helpKey, quit})
	k.short = []key.Binding{k.groups[0][0], k.groups[0][1], helpKey, quit}
	return k
}

func (k ShortcutKeys) ShortHelp() []key.Binding { return k.short }

func (k ShortcutKeys) FullHelp() [][]key.Binding { return k.groups }

// Dialog renders the full shortcuts overlay with group titles.
func (k ShortcutKeys) Dialog(h help.Model, width int) string {
	platform := "Windows"
	if k.table.Platform == domain.PlatformMac {
		platform = "Mac"
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Keyboard Shortcuts ("+platform+")") + "\n")
	sb.WriteString(theme.Muted.Render("Press "+k.table.Help.Label+" to show this dialog") + "\n\n")

	titles := []string{string(domain.GroupNavigation), string(domain.GroupNotes), string(domain.GroupFocus), "General"}
	cols := make([]string, 0, len(k.groups))
	for i, group := range k.groups {
		col := theme.Hot.Render(titles[i]) + "\n" + h.FullHelpView([][]key.Binding{group})
		cols = append(cols, lipgloss.NewStyle().PaddingRight(3).Render(col))
	}
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cols...))
	sb.WriteString("\n\n" + theme.Muted.Render("esc to close"))

	if width < 20 {
		width = 72
	}
	return theme.Modal.Width(width - 2).Render(sb.String())
}

func toKey(b domain.Binding) key.Binding {
	return key.NewBinding(key.WithKeys(terminalKey(b.Combo)), key.WithHelp(b.Label, b.Description))
}

// terminalKey turns a normalized combo back into the name bubbletea reports.
func terminalKey(combo string) string {
	switch combo {
	case "alt+←":
		return "alt+left"
	case "alt+→":
		return "alt+right"
	}
	return combo
}
