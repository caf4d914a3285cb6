package usecase

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"lumen/internal/modules/notes/domain"
	notesdto "lumen/internal/modules/notes/dto"
	notesin "lumen/internal/modules/notes/port/in"
	notesout "lumen/internal/modules/notes/port/out"
	"lumen/internal/platform/clock"
	apperrors "lumen/internal/platform/errors"
	"lumen/internal/platform/id"
)

type Interactor struct {
	mu       sync.Mutex
	clock    clock.Clock
	ids      id.Generator
	store    notesout.NoteStore
	exporter notesout.NoteExporter
	log      *zap.Logger
}

func NewInteractor(clock clock.Clock, ids id.Generator, store notesout.NoteStore, exporter notesout.NoteExporter, log *zap.Logger) notesin.Usecase {
	if log == nil {
		log = zap.NewNop()
	}
	return &Interactor{clock: clock, ids: ids, store: store, exporter: exporter, log: log}
}

func (i *Interactor) List(ctx context.Context) ([]notesdto.NoteOutput, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	notes, err := i.load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]notesdto.NoteOutput, 0, len(notes))
	for _, n := range notes {
		out = append(out, toOutput(n))
	}
	return out, nil
}

func (i *Interactor) Get(ctx context.Context, noteID string) (notesdto.NoteOutput, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	notes, err := i.load(ctx)
	if err != nil {
		return notesdto.NoteOutput{}, err
	}
	idx, err := find(notes, noteID)
	if err != nil {
		return notesdto.NoteOutput{}, err
	}
	return toOutput(notes[idx]), nil
}

// Create puts a fresh placeholder note at the front of the list.
func (i *Interactor) Create(ctx context.Context) (notesdto.NoteOutput, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	notes, err := i.load(ctx)
	if err != nil {
		return notesdto.NoteOutput{}, err
	}
	note := domain.NewNote(i.ids.New(), i.clock.Now())
	notes = append([]domain.Note{note}, notes...)
	if err := i.store.SaveNotes(ctx, notes); err != nil {
		return notesdto.NoteOutput{}, err
	}
	return toOutput(note), nil
}

func (i *Interactor) Rename(ctx context.Context, input notesdto.RenameInput) (notesdto.NoteOutput, error) {
	if !domain.ValidTitle(input.Title) {
		return notesdto.NoteOutput{}, fmt.Errorf("title must not be empty: %w", apperrors.ErrInvalidInput)
	}
	return i.update(ctx, input.NoteID, func(n *domain.Note) error {
		n.Title = input.Title
		return nil
	})
}

func (i *Interactor) AppendLine(ctx context.Context, input notesdto.AppendLineInput) (notesdto.NoteOutput, error) {
	return i.update(ctx, input.NoteID, func(n *domain.Note) error {
		n.Content = append(n.Content, domain.LineFor(input.Text))
		return nil
	})
}

func (i *Interactor) EditLine(ctx context.Context, input notesdto.EditLineInput) (notesdto.NoteOutput, error) {
	return i.update(ctx, input.NoteID, func(n *domain.Note) error {
		if input.Index < 0 || input.Index >= len(n.Content) {
			return fmt.Errorf("line %d out of range: %w", input.Index, apperrors.ErrInvalidInput)
		}
		n.Content[input.Index] = input.Text
		return nil
	})
}

func (i *Interactor) Delete(ctx context.Context, noteID string) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	notes, err := i.load(ctx)
	if err != nil {
		return err
	}
	idx, err := find(notes, noteID)
	if err != nil {
		return err
	}
	notes = append(notes[:idx], notes[idx+1:]...)
	if len(notes) == 0 {
		notes = []domain.Note{domain.NewNote(i.ids.New(), i.clock.Now())}
	}
	return i.store.SaveNotes(ctx, notes)
}

func (i *Interactor) Export(ctx context.Context, input notesdto.ExportInput) (notesdto.ExportOutput, error) {
	if input.Dir == "" {
		return notesdto.ExportOutput{}, fmt.Errorf("export dir is required: %w", apperrors.ErrInvalidInput)
	}
	note, err := i.Get(ctx, input.NoteID)
	if err != nil {
		return notesdto.ExportOutput{}, err
	}
	path, err := i.exporter.Export(ctx, input.Dir, domain.Note{ID: note.ID, Title: note.Title, Content: note.Content, Date: note.Date})
	if err != nil {
		return notesdto.ExportOutput{}, fmt.Errorf("export note %s: %w", input.NoteID, err)
	}
	i.log.Info("note exported", zap.String("id", note.ID), zap.String("path", path))
	return notesdto.ExportOutput{NoteID: note.ID, Path: path}, nil
}

func (i *Interactor) update(ctx context.Context, noteID string, mutate func(*domain.Note) error) (notesdto.NoteOutput, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	notes, err := i.load(ctx)
	if err != nil {
		return notesdto.NoteOutput{}, err
	}
	idx, err := find(notes, noteID)
	if err != nil {
		return notesdto.NoteOutput{}, err
	}
	if err := mutate(&notes[idx]); err != nil {
		return notesdto.NoteOutput{}, err
	}
	if err := i.store.SaveNotes(ctx, notes); err != nil {
		return notesdto.NoteOutput{}, err
	}
	return toOutput(notes[idx]), nil
}

// load returns the stored notes, never empty. A missing key is seeded with a
// default note and persisted; a malformed value falls back to an unsaved
// default so the next write replaces it.
func (i *Interactor) load(ctx context.Context) ([]domain.Note, error) {
	notes, found, err := i.store.LoadNotes(ctx)
	switch {
	case err != nil && !found:
		return nil, err
	case err != nil:
		i.log.Warn("stored notes are malformed; starting from a default note", zap.Error(err))
		return []domain.Note{domain.NewNote(i.ids.New(), i.clock.Now())}, nil
	case !found || len(notes) == 0:
		notes = []domain.Note{domain.NewNote(i.ids.New(), i.clock.Now())}
		if err := i.store.SaveNotes(ctx, notes); err != nil {
			return nil, err
		}
	}
	return notes, nil
}

func find(notes []domain.Note, noteID string) (int, error) {
	for idx, n := range notes {
		if n.ID == noteID {
			return idx, nil
		}
	}
	return -1, fmt.Errorf("note %s: %w", noteID, apperrors.ErrNotFound)
}

func toOutput(n domain.Note) notesdto.NoteOutput {
	return notesdto.NoteOutput{
		ID:      n.ID,
		Title:   n.Title,
		Content: append([]string(nil), n.Content...),
		Date:    n.Date,
	}
}
