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

const snippetsFileName = "snippets.json"

type Snippet struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
}

type snippetsDocument struct {
	Snippets []Snippet `json:"snippets"`
}

type snippetsProvider struct {
	mu       sync.Mutex
	path     string
	snippets []Snippet
}

func NewSnippets(Deps) (Provider, error) {
	path, err := appdirs.DataFilePath(snippetsFileName)
	if err != nil {
		return nil, err
	}
	return newSnippetsAt(path)
}

func newSnippetsAt(path string) (*snippetsProvider, error) {
	p := &snippetsProvider{path: path}
	var doc snippetsDocument
	if _, err := store.LoadJSON(path, &doc); err != nil {
		return nil, err
	}
	p.snippets = doc.Snippets
	return p, nil
}

func (*snippetsProvider) Mode() Mode         { return ModeSnippets }
func (*snippetsProvider) Prefixes() []string { return []string{"snip", "snippet", "snippets"} }

func (p *snippetsProvider) List(_ context.Context, query string) ([]Result, error) {
	trimmed := strings.TrimSpace(query)
	lowered := strings.ToLower(trimmed)

	// "add name: content" creates a snippet in one go.
	if text, ok := creationText(lowered, trimmed); ok {
		name, content := splitSnippet(text)
		title := fmt.Sprintf("Add snippet: %s", name)
		if content == "" {
			title = fmt.Sprintf("Add snippet: %s (name: content)", name)
		}
		return []Result{{
			Title:    title,
			Subtitle: "Create a new snippet",
			Icon:     "document-new",
			Score:    1,
			Action:   Action{Kind: ActionInvoke, InvokeMode: ModeSnippets, InvokeID: "add", InvokeArg: text},
		}}, nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if filter, ok := deletionText(lowered, trimmed); ok {
		out := []Result{}
		for _, snippet := range p.snippets {
			if filter != "" && !strings.Contains(strings.ToLower(snippet.Name), filter) &&
				!strings.Contains(strings.ToLower(snippet.Content), filter) {
				continue
			}
			out = append(out, Result{
				Title:    "Delete snippet: " + snippet.Name,
				Subtitle: firstLine(snippet.Content),
				Icon:     "edit-delete",
				Score:    1,
				Action:   Action{Kind: ActionInvoke, InvokeMode: ModeSnippets, InvokeID: "delete", InvokeArg: snippet.ID},
			})
		}
		return out, nil
	}

	out := []Result{}
	for _, snippet := range p.snippets {
		nameHit := strings.Contains(strings.ToLower(snippet.Name), lowered)
		if trimmed != "" && !nameHit &&
			!strings.Contains(strings.ToLower(snippet.Content), lowered) {
			continue
		}
		score := 0.0
		if trimmed != "" && !nameHit {
			score = 0.3
		}
		out = append(out, Result{
			Title:    snippet.Name,
			Subtitle: firstLine(snippet.Content),
			Icon:     "edit-paste",
			Score:    score,
			Action:   Action{Kind: ActionCopy, Text: snippet.Content},
		})
	}
	return out, nil
}

func (p *snippetsProvider) Invoke(id, arg string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch id {
	case "add":
		name, content := splitSnippet(strings.TrimSpace(arg))
		if name == "" {
			return fmt.Errorf("snippet name is required")
		}
		if content == "" {
			content = name
		}
		p.snippets = append(p.snippets, Snippet{
			ID:        uuid.NewString(),
			Name:      name,
			Content:   content,
			CreatedAt: time.Now().UTC().Format(time.RFC3339),
		})
	case "delete":
		idx := -1
		for i, snippet := range p.snippets {
			if snippet.ID == arg {
				idx = i
				break
			}
		}
		if idx < 0 {
			return fmt.Errorf("no snippet with id %s", arg)
		}
		p.snippets = append(p.snippets[:idx], p.snippets[idx+1:]...)
	default:
		return fmt.Errorf("unknown snippets operation: %s", id)
	}
	return store.SaveJSON(p.path, snippetsDocument{Snippets: p.snippets})
}

func splitSnippet(text string) (name, content string) {
	if idx := strings.Index(text, ":"); idx >= 0 {
		return strings.TrimSpace(text[:idx]), strings.TrimSpace(text[idx+1:])
	}
	return strings.TrimSpace(text), ""
}
