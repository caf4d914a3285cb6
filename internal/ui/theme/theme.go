package theme

import "github.com/charmbracelet/lipgloss"

// Palette is catppuccin mocha with a warm accent for the orb.
var (
	Base      = lipgloss.Color("#1e1e2e")
	Mantle    = lipgloss.Color("#181825")
	Surface0  = lipgloss.Color("#313244")
	Surface1  = lipgloss.Color("#45475a")
	Text      = lipgloss.Color("#cdd6f4")
	Subtext0  = lipgloss.Color("#a6adc8")
	Lavender  = lipgloss.Color("#b4befe")
	Sapphire  = lipgloss.Color("#74c7ec")
	Green     = lipgloss.Color("#a6e3a1")
	Peach     = lipgloss.Color("#fab387")
	Rosewater = lipgloss.Color("#f5e0dc")

	Pane = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Surface1).
		Background(Mantle).
		Foreground(Text).
		Padding(1)

	PaneActive = Pane.BorderForeground(Lavender)

	Modal = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Peach).
		Background(Mantle).
		Foreground(Text).
		Padding(1, 2)

	Title = lipgloss.NewStyle().Foreground(Sapphire).Bold(true)
	Muted = lipgloss.NewStyle().Foreground(Subtext0)
	Hot   = lipgloss.NewStyle().Foreground(Peach).Bold(true)
	Error = lipgloss.NewStyle().Foreground(lipgloss.Color("#f38ba8"))

	// Caption is the uppercase status line under the orb.
	Caption = lipgloss.NewStyle().Foreground(Subtext0).Bold(true)

	Bar = lipgloss.NewStyle().Foreground(Sapphire)
)

// OrbColor picks the orb fill for a controller state name.
func OrbColor(state string) lipgloss.Color {
	switch state {
	case "pressing":
		return Peach
	case "focusing":
		return Lavender
	case "completed":
		return Green
	}
	return Surface1
}
