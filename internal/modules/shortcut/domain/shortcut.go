package domain

import "strings"

type Action string

const (
	ActionNavigatePrevious  Action = "navigate-previous"
	ActionNavigateNext      Action = "navigate-next"
	ActionCreateNote        Action = "create-note"
	ActionEditTitle         Action = "edit-title"
	ActionToggleTimerConfig Action = "toggle-timer-config"
	ActionStartOrStopFocus  Action = "start-or-stop-focus"
	ActionShowHelp          Action = "show-shortcuts-help"
)

type Platform string

const (
	PlatformMac     Platform = "mac"
	PlatformWindows Platform = "windows"
)

// DetectPlatform maps a GOOS value to the label table to show.
func DetectPlatform(goos string) Platform {
	if strings.Contains(strings.ToLower(goos), "darwin") {
		return PlatformMac
	}
	return PlatformWindows
}

// ParsePlatform resolves a configured platform; "auto" or empty defers to goos.
func ParsePlatform(value, goos string) Platform {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case string(PlatformMac):
		return PlatformMac
	case string(PlatformWindows):
		return PlatformWindows
	}
	return DetectPlatform(goos)
}

// Group names a section of the help overlay.
type Group string

const (
	GroupNavigation Group = "Navigation"
	GroupNotes      Group = "Notes"
	GroupFocus      Group = "Focus"
)

// Binding ties a normalized combo to an action and its display label.
type Binding struct {
	Action      Action
	Combo       string
	Label       string
	Description string
	Group       Group
	// Page limits the binding to one page. Empty means everywhere.
	Page Page
}

// Table is the full binding set for one platform.
type Table struct {
	Platform Platform
	Help     Binding
	Bindings []Binding
}

func NewTable(p Platform) Table {
	mod := "Alt"
	if p == PlatformMac {
		mod = "⌥"
	}
	label := func(key string) string { return mod + " + " + key }
	return Table{
		Platform: p,
		Help:     Binding{Action: ActionShowHelp, Combo: "alt+?", Label: label("?"), Description: "Show shortcuts"},
		Bindings: []Binding{
			{Action: ActionNavigatePrevious, Combo: "alt+←", Label: label("←"), Description: "Previous Page", Group: GroupNavigation},
			{Action: ActionNavigateNext, Combo: "alt+→", Label: label("→"), Description: "Next Page", Group: GroupNavigation},
			{Action: ActionCreateNote, Combo: "alt+n", Label: label("N"), Description: "New Note", Group: GroupNotes, Page: PageNotes},
			{Action: ActionEditTitle, Combo: "alt+e", Label: label("E"), Description: "Edit Title", Group: GroupNotes, Page: PageNotes},
			{Action: ActionToggleTimerConfig, Combo: "alt+t", Label: label("T"), Description: "Toggle Timer", Group: GroupFocus, Page: PageFocus},
			{Action: ActionStartOrStopFocus, Combo: "alt+s", Label: label("S"), Description: "Start Focus", Group: GroupFocus, Page: PageFocus},
		},
	}
}

// Lookup finds the binding for a normalized combo, the help combo included.
func (t Table) Lookup(combo string) (Binding, bool) {
	if combo == t.Help.Combo {
		return t.Help, true
	}
	for _, b := range t.Bindings {
		if b.Combo == combo {
			return b, true
		}
	}
	return Binding{}, false
}

// Binding returns the entry for action.
func (t Table) Binding(action Action) (Binding, bool) {
	if action == ActionShowHelp {
		return t.Help, true
	}
	for _, b := range t.Bindings {
		if b.Action == action {
			return b, true
		}
	}
	return Binding{}, false
}

// Normalize builds the canonical combo string for a key event: an "alt+"
// prefix when alt is held, arrows as ← and →, everything else lowercased.
func Normalize(key string, alt bool) string {
	var name string
	switch key {
	case "ArrowLeft", "left", "←":
		name = "←"
	case "ArrowRight", "right", "→":
		name = "→"
	default:
		name = strings.ToLower(key)
	}
	if alt {
		return "alt+" + name
	}
	return name
}

// NormalizeTerminal accepts terminal key names such as "alt+left" or "alt+N".
func NormalizeTerminal(name string) string {
	if rest, ok := strings.CutPrefix(name, "alt+"); ok && rest != "" {
		return Normalize(rest, true)
	}
	return Normalize(name, false)
}
