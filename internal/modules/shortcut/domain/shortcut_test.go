package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lumen/internal/modules/shortcut/domain"
)

func TestNormalize(t *testing.T) {
	t.Parallel()
	cases := []struct {
		key  string
		alt  bool
		want string
	}{
		{"ArrowLeft", true, "alt+←"},
		{"ArrowRight", true, "alt+→"},
		{"left", true, "alt+←"},
		{"N", true, "alt+n"},
		{"?", true, "alt+?"},
		{"x", false, "x"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, domain.Normalize(tc.key, tc.alt), tc.key)
	}
}

func TestNormalizeTerminal(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "alt+←", domain.NormalizeTerminal("alt+left"))
	assert.Equal(t, "alt+→", domain.NormalizeTerminal("alt+right"))
	assert.Equal(t, "alt+s", domain.NormalizeTerminal("alt+S"))
	assert.Equal(t, "enter", domain.NormalizeTerminal("enter"))
}

func TestTablesShareCombosButNotLabels(t *testing.T) {
	t.Parallel()
	mac := domain.NewTable(domain.PlatformMac)
	win := domain.NewTable(domain.PlatformWindows)

	require.Len(t, mac.Bindings, len(win.Bindings))
	for i := range mac.Bindings {
		assert.Equal(t, mac.Bindings[i].Combo, win.Bindings[i].Combo)
		assert.Equal(t, mac.Bindings[i].Action, win.Bindings[i].Action)
	}

	left, ok := mac.Binding(domain.ActionNavigatePrevious)
	require.True(t, ok)
	assert.Equal(t, "⌥ + ←", left.Label)
	left, ok = win.Binding(domain.ActionNavigatePrevious)
	require.True(t, ok)
	assert.Equal(t, "Alt + ←", left.Label)
	assert.Equal(t, "Alt + ?", win.Help.Label)
}

func TestParsePlatform(t *testing.T) {
	t.Parallel()
	assert.Equal(t, domain.PlatformMac, domain.ParsePlatform("auto", "darwin"))
	assert.Equal(t, domain.PlatformWindows, domain.ParsePlatform("", "linux"))
	assert.Equal(t, domain.PlatformMac, domain.ParsePlatform("mac", "windows"))
	assert.Equal(t, domain.PlatformWindows, domain.ParsePlatform("Windows", "darwin"))
}

func TestAdjacentAndDirection(t *testing.T) {
	t.Parallel()
	assert.Equal(t, domain.PageDashboard, domain.Adjacent(domain.PageNotes, domain.Forward))
	assert.Equal(t, domain.PageFocus, domain.Adjacent(domain.PageDashboard, domain.Forward))
	assert.Equal(t, domain.PageDashboard, domain.Adjacent(domain.PageFocus, domain.Backward))
	assert.Equal(t, domain.PageFocus, domain.Adjacent(domain.Page("settings"), domain.Backward))

	assert.Equal(t, domain.Forward, domain.TransitionDirection(domain.PageNotes, domain.PageNotes))
	assert.Equal(t, domain.Forward, domain.TransitionDirection(domain.PageFocus, domain.PageDashboard))
	assert.Equal(t, domain.Backward, domain.TransitionDirection(domain.PageDashboard, domain.PageNotes))
	assert.Equal(t, domain.PageFocus, domain.ParsePage("nope"))
}
