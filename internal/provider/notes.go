package provider

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bkwi/beacon/internal/appdirs"
	"github.com/bkwi/beacon/internal/store"
)

const notesFileName = "notes.json"

type Note struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type notesDocument struct {
	Notes []Note `json:"notes"`
}

type notesProvider struct {
	mu    sync.Mutex
	path  string
	notes []Note
}

func NewNotes(Deps) (Provider, error) {
	path, err := appdirs.DataFilePath(notesFileName)
	if err != nil {
		return nil, err
	}
	return newNotesAt(path)
}

func newNotesAt(path string) (*notesProvider, error) {
	p := &notesProvider{path: path}
	var doc notesDocument
	if _, err := store.LoadJSON(path, &doc); err != nil {
		return nil, err
	}
	p.notes = doc.Notes
	return p, nil
}

func (*notesProvider) Mode() Mode         { return ModeNotes }
func (*notesProvider) Prefixes() []string { return []string{"note", "notes"} }

func (p *notesProvider) List(_ context.Context, query string) ([]Result, error) {
	trimmed := strings.TrimSpace(query)
	lowered := strings.ToLower(trimmed)

	if text, ok := creationText(lowered, trimmed); ok {
		return []Result{{
			Title:    fmt.Sprintf("Add note: %s", text),
			Subtitle: "Create a new note",
			Icon:     "document-new",
			Score:    1,
			Action:   Action{Kind: ActionInvoke, InvokeMode: ModeNotes, InvokeID: "add", InvokeArg: text},
		}}, nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if filter, ok := deletionText(lowered, trimmed); ok {
		out := []Result{}
		for _, note := range p.notes {
			if filter != "" && !strings.Contains(strings.ToLower(note.Title), filter) &&
				!strings.Contains(strings.ToLower(note.Content), filter) {
				continue
			}
			out = append(out, Result{
				Title:    "Delete note: " + note.Title,
				Subtitle: firstLine(note.Content),
				Icon:     "edit-delete",
				Score:    1,
				Action:   Action{Kind: ActionInvoke, InvokeMode: ModeNotes, InvokeID: "delete", InvokeArg: note.ID},
			})
		}
		return out, nil
	}

	out := []Result{}
	for _, note := range p.notes {
		titleHit := strings.Contains(strings.ToLower(note.Title), lowered)
		if trimmed != "" && !titleHit &&
			!strings.Contains(strings.ToLower(note.Content), lowered) {
			continue
		}
		// A body-only match would score zero against the title later.
		score := 0.0
		if trimmed != "" && !titleHit {
			score = 0.3
		}
		out = append(out, Result{
			Title:    note.Title,
			Subtitle: firstLine(note.Content),
			Icon:     "text-x-generic",
			Score:    score,
			Action:   Action{Kind: ActionCopy, Text: note.Content},
		})
	}

	if trimmed == "" && len(p.notes) > 0 {
		out = append(out, Result{
			Title:    "Clear all notes",
			Subtitle: fmt.Sprintf("Delete %d notes", len(p.notes)),
			Icon:     "edit-delete",
			Action:   Action{Kind: ActionInvoke, InvokeMode: ModeNotes, InvokeID: "clear"},
		})
	}
	return out, nil
}

func (p *notesProvider) Invoke(id, arg string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch id {
	case "add":
		text := strings.TrimSpace(arg)
		if text == "" {
			return fmt.Errorf("note text is required")
		}
		now := time.Now().UTC().Format(time.RFC3339)
		p.notes = append([]Note{{
			ID:        uuid.NewString(),
			Title:     firstLine(text),
			Content:   text,
			CreatedAt: now,
			UpdatedAt: now,
		}}, p.notes...)
	case "delete":
		idx := -1
		for i, note := range p.notes {
			if note.ID == arg {
				idx = i
				break
			}
		}
		if idx < 0 {
			return fmt.Errorf("no note with id %s", arg)
		}
		p.notes = append(p.notes[:idx], p.notes[idx+1:]...)
	case "clear":
		p.notes = nil
	default:
		return fmt.Errorf("unknown notes operation: %s", id)
	}
	return store.SaveJSON(p.path, notesDocument{Notes: p.notes})
}

// creationText recognizes the "add ..." and "new ..." forms that turn
// a search into a create action.
func creationText(lowered, trimmed string) (string, bool) {
	for _, prefix := range []string{"add ", "new "} {
		if strings.HasPrefix(lowered, prefix) {
			text := strings.TrimSpace(trimmed[len(prefix):])
			if text != "" {
				return text, true
			}
		}
	}
	return "", false
}

// deletionText recognizes the "delete ..." and "rm ..." forms that
// turn a search into per-entry delete actions. A bare "delete" lists
// everything.
func deletionText(lowered, trimmed string) (string, bool) {
	for _, prefix := range []string{"delete", "rm"} {
		if lowered == prefix {
			return "", true
		}
		if strings.HasPrefix(lowered, prefix+" ") {
			return strings.ToLower(strings.TrimSpace(trimmed[len(prefix)+1:])), true
		}
	}
	return "", false
}

func firstLine(text string) string {
	if idx := strings.IndexByte(text, '\n'); idx >= 0 {
		return text[:idx]
	}
	return text
}
