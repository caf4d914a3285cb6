package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"lumen/internal/modules/notes/domain"
	notesout "lumen/internal/modules/notes/port/out"
	"lumen/internal/platform/markdown"
	"lumen/internal/platform/slug"
)

type frontmatter struct {
	ID    string `yaml:"id"`
	Title string `yaml:"title"`
	Date  string `yaml:"date"`
}

// MarkdownExporter writes a note as <slug>-<id prefix>.md with YAML
// frontmatter. Exporting the same note again overwrites its file.
type MarkdownExporter struct{}

func NewMarkdownExporter() notesout.NoteExporter {
	return MarkdownExporter{}
}

func (MarkdownExporter) Export(_ context.Context, dir string, note domain.Note) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	body := make([]string, 0, len(note.Content)+2)
	body = append(body, "# "+note.Title, "")
	for _, line := range note.Content {
		if line == domain.SpacerLine {
			line = ""
		}
		body = append(body, line)
	}
	doc, err := markdown.Render(frontmatter{
		ID:    note.ID,
		Title: note.Title,
		Date:  note.Date.UTC().Format(isoMillis),
	}, strings.Join(body, "\n"))
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, fileName(note))
	if err := os.WriteFile(path, doc, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

func fileName(note domain.Note) string {
	prefix := note.ID
	if len(prefix) > 8 {
		prefix = prefix[:8]
	}
	return slug.Make(note.Title, "note") + "-" + slug.Make(prefix, "x") + ".md"
}
