package dto

import "time"

type NoteOutput struct {
	ID      string
	Title   string
	Content []string
	Date    time.Time
}

type RenameInput struct {
	NoteID string
	Title  string
}

type AppendLineInput struct {
	NoteID string
	Text   string
}

type EditLineInput struct {
	NoteID string
	Index  int
	Text   string
}

type ExportInput struct {
	NoteID string
	Dir    string
}

type ExportOutput struct {
	NoteID string
	Path   string
}
