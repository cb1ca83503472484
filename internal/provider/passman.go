package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/atotto/clipboard"
)

const passmanMaxItems = 20

// bwItem is one vault entry from "bw list items".
type bwItem struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Type  int    `json:"type"`
	Login struct {
		Username string `json:"username"`
		TOTP     string `json:"totp"`
	} `json:"login"`
}

// Vault item types as the CLI reports them.
const (
	bwTypeLogin      = 1
	bwTypeSecureNote = 2
	bwTypeCard       = 3
	bwTypeIdentity   = 4
)

// passmanProvider fronts the Bitwarden CLI. Secrets never appear in
// result rows; selecting an item copies the secret via a separate
// "bw get" call.
type passmanProvider struct {
	run commandRunner
}

func NewPassman(Deps) (Provider, error) {
	return &passmanProvider{run: execRunner}, nil
}

func (*passmanProvider) Mode() Mode { return ModePassman }
func (*passmanProvider) Prefixes() []string {
	return []string{"bw", "bitwarden", "pass", "password"}
}

func (p *passmanProvider) List(ctx context.Context, query string) ([]Result, error) {
	status, err := p.status(ctx)
	if err != nil {
		if isNotInstalled(err) {
			return []Result{{
				Title:    "Bitwarden CLI not found",
				Subtitle: "Install it with: npm install -g @bitwarden/cli",
				Icon:     "dialog-warning",
				Score:    1,
				Action:   Action{Kind: ActionNone},
			}}, nil
		}
		return nil, err
	}

	switch status {
	case "unauthenticated":
		return []Result{{
			Title:    "Not logged in to Bitwarden",
			Subtitle: "Run: bw login",
			Icon:     "dialog-password",
			Score:    1,
			Action:   Action{Kind: ActionNone},
		}}, nil
	case "locked":
		return []Result{{
			Title:    "Vault is locked",
			Subtitle: "Run: bw unlock (then export BW_SESSION)",
			Icon:     "dialog-password",
			Score:    1,
			Action:   Action{Kind: ActionNone},
		}}, nil
	}

	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return p.utilityResults(), nil
	}
	return p.search(ctx, trimmed)
}

func (p *passmanProvider) search(ctx context.Context, query string) ([]Result, error) {
	output, err := p.run(ctx, "bw", "list", "items", "--search", query)
	if err != nil {
		return nil, fmt.Errorf("could not search vault: %w", err)
	}

	var items []bwItem
	if err := json.Unmarshal(output, &items); err != nil {
		return nil, fmt.Errorf("could not parse vault items: %w", err)
	}
	if len(items) > passmanMaxItems {
		items = items[:passmanMaxItems]
	}

	out := []Result{}
	for _, item := range items {
		out = append(out, itemResults(item)...)
	}
	return out, nil
}

// itemResults turns a vault item into launcher rows. Logins get a
// password row plus username and TOTP rows where present. bw already
// matched these items (by name, URI or username), so every row carries
// its own score; the engine must not drop URI-matched items whose name
// never contains the query.
func itemResults(item bwItem) []Result {
	if item.Type != bwTypeLogin {
		label := map[int]string{
			bwTypeSecureNote: "Secure note",
			bwTypeCard:       "Card",
			bwTypeIdentity:   "Identity",
		}[item.Type]
		if label == "" {
			label = "Item"
		}
		return []Result{{
			Title:    item.Name,
			Subtitle: label + ", select to copy",
			Icon:     "dialog-password",
			Score:    0.5,
			Action:   Action{Kind: ActionInvoke, InvokeMode: ModePassman, InvokeID: "copy-notes", InvokeArg: item.ID},
		}}
	}

	out := []Result{{
		Title:    item.Name,
		Subtitle: "Copy password" + usernameHint(item.Login.Username),
		Icon:     "dialog-password",
		Score:    0.5,
		Action:   Action{Kind: ActionInvoke, InvokeMode: ModePassman, InvokeID: "copy-password", InvokeArg: item.ID},
	}}
	if item.Login.Username != "" {
		out = append(out, Result{
			Title:    item.Name + " (username)",
			Subtitle: "Copy " + item.Login.Username,
			Icon:     "dialog-password",
			Score:    0.5,
			Action:   Action{Kind: ActionCopy, Text: item.Login.Username},
		})
	}
	if item.Login.TOTP != "" {
		out = append(out, Result{
			Title:    item.Name + " (TOTP)",
			Subtitle: "Copy current one-time code",
			Icon:     "dialog-password",
			Score:    0.5,
			Action:   Action{Kind: ActionInvoke, InvokeMode: ModePassman, InvokeID: "copy-totp", InvokeArg: item.ID},
		})
	}
	return out
}

func usernameHint(username string) string {
	if username == "" {
		return ""
	}
	return " for " + username
}

func (p *passmanProvider) utilityResults() []Result {
	return []Result{
		{
			Title:    "Search vault",
			Subtitle: "Type to search Bitwarden items",
			Icon:     "dialog-password",
			Action:   Action{Kind: ActionNone},
		},
		{
			Title:    "Generate password",
			Subtitle: "20 characters, copied to the clipboard",
			Icon:     "dialog-password",
			Action:   Action{Kind: ActionInvoke, InvokeMode: ModePassman, InvokeID: "generate"},
		},
		{
			Title:    "Sync vault",
			Subtitle: "bw sync",
			Icon:     "view-refresh",
			Action:   Action{Kind: ActionInvoke, InvokeMode: ModePassman, InvokeID: "sync"},
		},
		{
			Title:    "Lock vault",
			Subtitle: "bw lock",
			Icon:     "system-lock-screen",
			Action:   Action{Kind: ActionInvoke, InvokeMode: ModePassman, InvokeID: "lock"},
		},
	}
}

func (p *passmanProvider) Invoke(id, arg string) error {
	ctx := context.Background()
	switch id {
	case "copy-password":
		return p.copyField(ctx, "password", arg)
	case "copy-totp":
		return p.copyField(ctx, "totp", arg)
	case "copy-notes":
		return p.copyField(ctx, "notes", arg)
	case "generate":
		output, err := p.run(ctx, "bw", "generate", "-ulns", "--length", "20")
		if err != nil {
			return fmt.Errorf("could not generate password: %w", err)
		}
		if err := clipboard.WriteAll(strings.TrimSpace(string(output))); err != nil {
			return fmt.Errorf("could not copy password: %w", err)
		}
		return nil
	case "sync":
		_, err := p.run(ctx, "bw", "sync")
		return err
	case "lock":
		_, err := p.run(ctx, "bw", "lock")
		return err
	default:
		return fmt.Errorf("unknown passman operation: %s", id)
	}
}

func (p *passmanProvider) copyField(ctx context.Context, field, itemID string) error {
	output, err := p.run(ctx, "bw", "get", field, itemID)
	if err != nil {
		return fmt.Errorf("could not get %s: %w", field, err)
	}
	if err := clipboard.WriteAll(strings.TrimSpace(string(output))); err != nil {
		return fmt.Errorf("could not copy %s: %w", field, err)
	}
	return nil
}

// status parses the "status" field of "bw status": unlocked, locked
// or unauthenticated.
func (p *passmanProvider) status(ctx context.Context) (string, error) {
	output, err := p.run(ctx, "bw", "status")
	if err != nil {
		return "", err
	}
	var parsed struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(output, &parsed); err != nil {
		return "", fmt.Errorf("could not parse bw status: %w", err)
	}
	return parsed.Status, nil
}

func isNotInstalled(err error) bool {
	return errors.Is(err, exec.ErrNotFound)
}
