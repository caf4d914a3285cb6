package domain

import (
	"strings"
	"time"
)

// DefaultTitle is the placeholder a fresh note carries until renamed.
const DefaultTitle = "Add a title"

// SpacerLine is stored when an empty line is entered, keeping paragraph breaks.
const SpacerLine = " "

type Note struct {
	ID      string
	Title   string
	Content []string
	Date    time.Time
}

func NewNote(id string, now time.Time) Note {
	return Note{ID: id, Title: DefaultTitle, Content: []string{}, Date: now}
}

// ValidTitle reports whether title has any visible characters.
func ValidTitle(title string) bool {
	return strings.TrimSpace(title) != ""
}

// LineFor maps entered text to the stored line.
func LineFor(text string) string {
	if strings.TrimSpace(text) == "" {
		return SpacerLine
	}
	return text
}
