package out

import (
	"context"
	"fmt"
	"time"

	"lumen/internal/modules/notes/domain"
	notesout "lumen/internal/modules/notes/port/out"
	"lumen/internal/platform/kvstore"
)

const isoMillis = "2006-01-02T15:04:05.000Z07:00"

type noteRecord struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Content []string `json:"content"`
	Date    string   `json:"date"`
}

type GatewayNoteStore struct {
	gateway kvstore.Gateway
}

func NewGatewayNoteStore(gateway kvstore.Gateway) notesout.NoteStore {
	return &GatewayNoteStore{gateway: gateway}
}

func (s *GatewayNoteStore) LoadNotes(ctx context.Context) ([]domain.Note, bool, error) {
	records, found, err := kvstore.LoadSeq[noteRecord](ctx, s.gateway, kvstore.KeyNotes)
	if err != nil || !found {
		return nil, found, err
	}
	notes := make([]domain.Note, 0, len(records))
	for _, r := range records {
		date, err := time.Parse(time.RFC3339Nano, r.Date)
		if err != nil {
			return nil, true, fmt.Errorf("note %s date: %w", r.ID, err)
		}
		content := r.Content
		if content == nil {
			content = []string{}
		}
		notes = append(notes, domain.Note{ID: r.ID, Title: r.Title, Content: content, Date: date})
	}
	return notes, true, nil
}

func (s *GatewayNoteStore) SaveNotes(ctx context.Context, notes []domain.Note) error {
	records := make([]noteRecord, 0, len(notes))
	for _, n := range notes {
		content := n.Content
		if content == nil {
			content = []string{}
		}
		records = append(records, noteRecord{
			ID:      n.ID,
			Title:   n.Title,
			Content: content,
			Date:    n.Date.UTC().Format(isoMillis),
		})
	}
	return kvstore.SaveSeq(ctx, s.gateway, kvstore.KeyNotes, records)
}
