package out

import (
	"context"

	"lumen/internal/modules/notes/domain"
)

// NoteStore persists the ordered notes sequence, newest first. found is false
// when nothing has been stored yet.
type NoteStore interface {
	LoadNotes(ctx context.Context) (notes []domain.Note, found bool, err error)
	SaveNotes(ctx context.Context, notes []domain.Note) error
}

// NoteExporter writes one note outside the store and returns where it went.
type NoteExporter interface {
	Export(ctx context.Context, dir string, note domain.Note) (path string, err error)
}
