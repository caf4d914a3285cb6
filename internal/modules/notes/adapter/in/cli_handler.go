package in

import (
	"context"

	notesdto "lumen/internal/modules/notes/dto"
	notesin "lumen/internal/modules/notes/port/in"
)

type CLIHandler struct {
	usecase notesin.Usecase
}

func NewCLIHandler(usecase notesin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context) ([]notesdto.NoteOutput, error) {
	return h.usecase.List(ctx)
}

func (h CLIHandler) Show(ctx context.Context, noteID string) (notesdto.NoteOutput, error) {
	return h.usecase.Get(ctx, noteID)
}

// New creates a note and, when title is set, renames it straight away.
func (h CLIHandler) New(ctx context.Context, title string) (notesdto.NoteOutput, error) {
	note, err := h.usecase.Create(ctx)
	if err != nil || title == "" {
		return note, err
	}
	return h.usecase.Rename(ctx, notesdto.RenameInput{NoteID: note.ID, Title: title})
}

func (h CLIHandler) Append(ctx context.Context, noteID, text string) (notesdto.NoteOutput, error) {
	return h.usecase.AppendLine(ctx, notesdto.AppendLineInput{NoteID: noteID, Text: text})
}

func (h CLIHandler) Rename(ctx context.Context, noteID, title string) (notesdto.NoteOutput, error) {
	return h.usecase.Rename(ctx, notesdto.RenameInput{NoteID: noteID, Title: title})
}

func (h CLIHandler) Delete(ctx context.Context, noteID string) error {
	return h.usecase.Delete(ctx, noteID)
}

func (h CLIHandler) Export(ctx context.Context, noteID, dir string) (notesdto.ExportOutput, error) {
	return h.usecase.Export(ctx, notesdto.ExportInput{NoteID: noteID, Dir: dir})
}
