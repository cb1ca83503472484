package provider

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bkwi/beacon/internal/appdirs"
	"github.com/bkwi/beacon/internal/store"
)

const todosFileName = "todos.json"

type Todo struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
	CreatedAt string `json:"created_at"`
}

type todosDocument struct {
	Todos []Todo `json:"todos"`
}

type todosProvider struct {
	mu    sync.Mutex
	path  string
	todos []Todo
}

func NewTodos(Deps) (Provider, error) {
	path, err := appdirs.DataFilePath(todosFileName)
	if err != nil {
		return nil, err
	}
	return newTodosAt(path)
}

func newTodosAt(path string) (*todosProvider, error) {
	p := &todosProvider{path: path}
	var doc todosDocument
	if _, err := store.LoadJSON(path, &doc); err != nil {
		return nil, err
	}
	p.todos = doc.Todos
	return p, nil
}

func (*todosProvider) Mode() Mode         { return ModeTodos }
func (*todosProvider) Prefixes() []string { return []string{"todo", "todos", "task", "tasks"} }

func (p *todosProvider) List(_ context.Context, query string) ([]Result, error) {
	trimmed := strings.TrimSpace(query)
	lowered := strings.ToLower(trimmed)

	if text, ok := creationText(lowered, trimmed); ok {
		return []Result{{
			Title:    fmt.Sprintf("Add todo: %s", text),
			Subtitle: "Create a new todo",
			Icon:     "document-new",
			Score:    1,
			Action:   Action{Kind: ActionInvoke, InvokeMode: ModeTodos, InvokeID: "add", InvokeArg: text},
		}}, nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	sorted := make([]Todo, len(p.todos))
	copy(sorted, p.todos)
	sort.SliceStable(sorted, func(i, j int) bool {
		return !sorted[i].Completed && sorted[j].Completed
	})

	out := []Result{}
	for _, todo := range sorted {
		if trimmed != "" && !strings.Contains(strings.ToLower(todo.Text), lowered) {
			continue
		}
		marker := "○"
		subtitle := "Mark as done"
		if todo.Completed {
			marker = "✓"
			subtitle = "Mark as not done"
		}
		out = append(out, Result{
			Title:    fmt.Sprintf("%s %s", marker, todo.Text),
			Subtitle: subtitle,
			Icon:     "checkbox",
			Action:   Action{Kind: ActionInvoke, InvokeMode: ModeTodos, InvokeID: "toggle", InvokeArg: todo.ID},
		})
	}

	if trimmed == "" && hasCompleted(p.todos) {
		out = append(out, Result{
			Title:    "Clear completed todos",
			Subtitle: "Remove every completed item",
			Icon:     "edit-delete",
			Action:   Action{Kind: ActionInvoke, InvokeMode: ModeTodos, InvokeID: "clear-completed"},
		})
	}
	return out, nil
}

func (p *todosProvider) Invoke(id, arg string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch id {
	case "add":
		text := strings.TrimSpace(arg)
		if text == "" {
			return fmt.Errorf("todo text is required")
		}
		p.todos = append(p.todos, Todo{
			ID:        uuid.NewString(),
			Text:      text,
			CreatedAt: time.Now().UTC().Format(time.RFC3339),
		})
	case "toggle":
		idx := -1
		for i, todo := range p.todos {
			if todo.ID == arg {
				idx = i
				break
			}
		}
		if idx < 0 {
			return fmt.Errorf("no todo with id %s", arg)
		}
		p.todos[idx].Completed = !p.todos[idx].Completed
	case "clear-completed":
		kept := make([]Todo, 0, len(p.todos))
		for _, todo := range p.todos {
			if !todo.Completed {
				kept = append(kept, todo)
			}
		}
		p.todos = kept
	default:
		return fmt.Errorf("unknown todos operation: %s", id)
	}
	return store.SaveJSON(p.path, todosDocument{Todos: p.todos})
}

func hasCompleted(todos []Todo) bool {
	for _, todo := range todos {
		if todo.Completed {
			return true
		}
	}
	return false
}
