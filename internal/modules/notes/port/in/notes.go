package in

import (
	"context"

	"lumen/internal/modules/notes/dto"
)

type Usecase interface {
	List(ctx context.Context) ([]dto.NoteOutput, error)
	Get(ctx context.Context, noteID string) (dto.NoteOutput, error)
	Create(ctx context.Context) (dto.NoteOutput, error)
	Rename(ctx context.Context, input dto.RenameInput) (dto.NoteOutput, error)
	AppendLine(ctx context.Context, input dto.AppendLineInput) (dto.NoteOutput, error)
	EditLine(ctx context.Context, input dto.EditLineInput) (dto.NoteOutput, error)
	Delete(ctx context.Context, noteID string) error
	Export(ctx context.Context, input dto.ExportInput) (dto.ExportOutput, error)
}
