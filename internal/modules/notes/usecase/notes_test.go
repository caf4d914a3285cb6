package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	notesout "lumen/internal/modules/notes/adapter/out"
	"lumen/internal/modules/notes/domain"
	notesdto "lumen/internal/modules/notes/dto"
	notesin "lumen/internal/modules/notes/port/in"
	"lumen/internal/modules/notes/usecase"
	apperrors "lumen/internal/platform/errors"
	"lumen/internal/platform/kvstore"
)

type fixedClock struct{ now time.Time }

func (f fixedClock) Now() time.Time { return f.now }

type counterID struct{ n int }

func (c *counterID) New() string {
	c.n++
	return fmt.Sprintf("note-%d", c.n)
}

func newInteractor(t *testing.T) (notesin.Usecase, *kvstore.MemoryStore) {
	t.Helper()
	gw := kvstore.NewMemoryStore()
	clk := fixedClock{now: time.Date(2024, 4, 24, 9, 0, 0, 0, time.UTC)}
	return usecase.NewInteractor(clk, &counterID{}, notesout.NewGatewayNoteStore(gw), notesout.NewMarkdownExporter(), zap.NewNop()), gw
}

func TestListSeedsDefaultNoteWhenMissing(t *testing.T) {
	t.Parallel()
	uc, gw := newInteractor(t)

	notes, err := uc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, domain.DefaultTitle, notes[0].Title)
	assert.Empty(t, notes[0].Content)

	_, ok, err := gw.Load(context.Background(), kvstore.KeyNotes)
	require.NoError(t, err)
	assert.True(t, ok, "default note must be persisted")
}

func TestMalformedNotesFallBackWithoutPersisting(t *testing.T) {
	t.Parallel()
	uc, gw := newInteractor(t)
	ctx := context.Background()
	require.NoError(t, gw.Save(ctx, kvstore.KeyNotes, []byte("garbage")))

	notes, err := uc.List(ctx)
	require.NoError(t, err)
	require.Len(t, notes, 1)

	raw, _, err := gw.Load(ctx, kvstore.KeyNotes)
	require.NoError(t, err)
	assert.Equal(t, "garbage", string(raw))
}

func TestCreatePrependsNote(t *testing.T) {
	t.Parallel()
	uc, _ := newInteractor(t)
	ctx := context.Background()

	_, err := uc.List(ctx)
	require.NoError(t, err)
	created, err := uc.Create(ctx)
	require.NoError(t, err)

	notes, err := uc.List(ctx)
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.Equal(t, created.ID, notes[0].ID)
}

func TestRenameRejectsBlankTitle(t *testing.T) {
	t.Parallel()
	uc, _ := newInteractor(t)
	ctx := context.Background()
	note, err := uc.Create(ctx)
	require.NoError(t, err)

	_, err = uc.Rename(ctx, notesdto.RenameInput{NoteID: note.ID, Title: "   "})
	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))

	renamed, err := uc.Rename(ctx, notesdto.RenameInput{NoteID: note.ID, Title: "Reading list"})
	require.NoError(t, err)
	assert.Equal(t, "Reading list", renamed.Title)

	_, err = uc.Rename(ctx, notesdto.RenameInput{NoteID: "missing", Title: "x"})
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestAppendAndEditLines(t *testing.T) {
	t.Parallel()
	uc, _ := newInteractor(t)
	ctx := context.Background()
	note, err := uc.Create(ctx)
	require.NoError(t, err)

	_, err = uc.AppendLine(ctx, notesdto.AppendLineInput{NoteID: note.ID, Text: "first"})
	require.NoError(t, err)
	_, err = uc.AppendLine(ctx, notesdto.AppendLineInput{NoteID: note.ID, Text: ""})
	require.NoError(t, err)
	out, err := uc.AppendLine(ctx, notesdto.AppendLineInput{NoteID: note.ID, Text: "third"})
	require.NoError(t, err)
	assert.Equal(t, []string{"first", " ", "third"}, out.Content)

	out, err = uc.EditLine(ctx, notesdto.EditLineInput{NoteID: note.ID, Index: 0, Text: "edited"})
	require.NoError(t, err)
	assert.Equal(t, "edited", out.Content[0])

	_, err = uc.EditLine(ctx, notesdto.EditLineInput{NoteID: note.ID, Index: 3, Text: "x"})
	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))
}

func TestDeleteLastNoteReseeds(t *testing.T) {
	t.Parallel()
	uc, _ := newInteractor(t)
	ctx := context.Background()

	notes, err := uc.List(ctx)
	require.NoError(t, err)
	require.NoError(t, uc.Delete(ctx, notes[0].ID))

	after, err := uc.List(ctx)
	require.NoError(t, err)
	require.Len(t, after, 1)
	assert.NotEqual(t, notes[0].ID, after[0].ID)

	assert.True(t, errors.Is(uc.Delete(ctx, "missing"), apperrors.ErrNotFound))
}

func TestExportWritesMarkdownFile(t *testing.T) {
	t.Parallel()
	uc, _ := newInteractor(t)
	ctx := context.Background()
	dir := t.TempDir()

	note, err := uc.Create(ctx)
	require.NoError(t, err)
	_, err = uc.Rename(ctx, notesdto.RenameInput{NoteID: note.ID, Title: "Reading list"})
	require.NoError(t, err)

	out, err := uc.Export(ctx, notesdto.ExportInput{NoteID: note.ID, Dir: dir})
	require.NoError(t, err)
	assert.Equal(t, note.ID, out.NoteID)
	assert.Equal(t, filepath.Join(dir, "reading-list-note-2.md"), out.Path)

	_, err = uc.Export(ctx, notesdto.ExportInput{NoteID: "missing", Dir: dir})
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
	_, err = uc.Export(ctx, notesdto.ExportInput{NoteID: note.ID})
	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))
}
