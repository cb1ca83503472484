package provider

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bkwi/beacon/internal/appdirs"
	"github.com/bkwi/beacon/internal/store"
)

const sshFileName = "ssh_connections.json"

type SSHConnection struct {
	ID        string `json:"id"`
	User      string `json:"user,omitempty"`
	Host      string `json:"host"`
	Port      int    `json:"port,omitempty"`
	CreatedAt string `json:"created_at"`
}

type sshDocument struct {
	Connections []SSHConnection `json:"connections"`
}

// sshHost is a host block parsed out of ~/.ssh/config.
type sshHost struct {
	Alias    string
	HostName string
	User     string
	Port     int
}

type sshProvider struct {
	mu         sync.Mutex
	path       string
	configPath string
	saved      []SSHConnection
}

func NewSSH(Deps) (Provider, error) {
	path, err := appdirs.DataFilePath(sshFileName)
	if err != nil {
		return nil, err
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("could not resolve home directory: %w", err)
	}
	return newSSHAt(path, filepath.Join(home, ".ssh", "config"))
}

func newSSHAt(path, configPath string) (*sshProvider, error) {
	p := &sshProvider{path: path, configPath: configPath}
	var doc sshDocument
	if _, err := store.LoadJSON(path, &doc); err != nil {
		return nil, err
	}
	p.saved = doc.Connections
	return p, nil
}

func (*sshProvider) Mode() Mode         { return ModeSSH }
func (*sshProvider) Prefixes() []string { return []string{"ssh"} }

func (p *sshProvider) List(_ context.Context, query string) ([]Result, error) {
	trimmed := strings.TrimSpace(query)
	lowered := strings.ToLower(trimmed)

	if text, ok := creationText(lowered, trimmed); ok {
		user, host, port := parseTarget(text)
		if host != "" {
			return []Result{{
				Title:    fmt.Sprintf("Save connection: %s", text),
				Subtitle: describeTarget(user, host, port),
				Icon:     "network-server",
				Score:    1,
				Action:   Action{Kind: ActionInvoke, InvokeMode: ModeSSH, InvokeID: "add", InvokeArg: text},
			}}, nil
		}
	}

	if filter, ok := deletionText(lowered, trimmed); ok {
		p.mu.Lock()
		defer p.mu.Unlock()
		out := []Result{}
		for _, conn := range p.saved {
			label := conn.Host
			if conn.User != "" {
				label = conn.User + "@" + conn.Host
			}
			if filter != "" && !strings.Contains(strings.ToLower(label), filter) {
				continue
			}
			out = append(out, Result{
				Title:    "Delete saved connection: " + label,
				Subtitle: describeTarget(conn.User, conn.Host, conn.Port),
				Icon:     "edit-delete",
				Score:    1,
				Action:   Action{Kind: ActionInvoke, InvokeMode: ModeSSH, InvokeID: "delete", InvokeArg: conn.ID},
			})
		}
		return out, nil
	}

	out := []Result{}
	for _, host := range parseSSHConfig(p.configPath) {
		if trimmed != "" && !strings.Contains(strings.ToLower(host.Alias), lowered) &&
			!strings.Contains(strings.ToLower(host.HostName), lowered) {
			continue
		}
		target := host.HostName
		if target == "" {
			target = host.Alias
		}
		if host.User != "" {
			target = host.User + "@" + target
		}
		out = append(out, Result{
			Title:    host.Alias,
			Subtitle: describeTarget(host.User, host.HostName, host.Port),
			Icon:     "network-server",
			Action:   Action{Kind: ActionSSHConnect, Host: target, Port: host.Port},
		})
	}

	p.mu.Lock()
	saved := make([]SSHConnection, len(p.saved))
	copy(saved, p.saved)
	p.mu.Unlock()

	for _, conn := range saved {
		label := conn.Host
		if conn.User != "" {
			label = conn.User + "@" + conn.Host
		}
		if trimmed != "" && !strings.Contains(strings.ToLower(label), lowered) {
			continue
		}
		out = append(out, Result{
			Title:    label,
			Subtitle: describeTarget(conn.User, conn.Host, conn.Port),
			Icon:     "network-server",
			Action:   Action{Kind: ActionSSHConnect, Host: label, Port: conn.Port},
		})
	}
	return out, nil
}

func (p *sshProvider) Invoke(id, arg string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch id {
	case "add":
		user, host, port := parseTarget(strings.TrimSpace(arg))
		if host == "" {
			return fmt.Errorf("connection target is required, e.g. user@host:22")
		}
		p.saved = append(p.saved, SSHConnection{
			ID:        uuid.NewString(),
			User:      user,
			Host:      host,
			Port:      port,
			CreatedAt: time.Now().UTC().Format(time.RFC3339),
		})
	case "delete":
		idx := -1
		for i, conn := range p.saved {
			if conn.ID == arg {
				idx = i
				break
			}
		}
		if idx < 0 {
			return fmt.Errorf("no saved connection with id %s", arg)
		}
		p.saved = append(p.saved[:idx], p.saved[idx+1:]...)
	default:
		return fmt.Errorf("unknown ssh operation: %s", id)
	}
	return store.SaveJSON(p.path, sshDocument{Connections: p.saved})
}

// parseSSHConfig extracts Host blocks, skipping wildcard patterns.
// Parse errors and a missing file both yield an empty list.
func parseSSHConfig(path string) []sshHost {
	file, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer file.Close()

	hosts := []sshHost{}
	var current *sshHost

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		key := strings.ToLower(fields[0])
		value := strings.Join(fields[1:], " ")

		switch key {
		case "host":
			if current != nil {
				hosts = append(hosts, *current)
			}
			current = nil
			alias := fields[1]
			if strings.ContainsAny(alias, "*?") {
				continue
			}
			current = &sshHost{Alias: alias}
		case "hostname":
			if current != nil {
				current.HostName = value
			}
		case "user":
			if current != nil {
				current.User = value
			}
		case "port":
			if current != nil {
				if port, err := strconv.Atoi(value); err == nil {
					current.Port = port
				}
			}
		}
	}
	if current != nil {
		hosts = append(hosts, *current)
	}
	return hosts
}

// parseTarget splits "user@host:port" into its parts. User and port
// are optional.
func parseTarget(text string) (user, host string, port int) {
	target := strings.Fields(text)
	if len(target) == 0 {
		return "", "", 0
	}
	spec := target[0]
	if idx := strings.Index(spec, "@"); idx >= 0 {
		user = spec[:idx]
		spec = spec[idx+1:]
	}
	if idx := strings.LastIndex(spec, ":"); idx >= 0 {
		if n, err := strconv.Atoi(spec[idx+1:]); err == nil {
			port = n
			spec = spec[:idx]
		}
	}
	return user, spec, port
}

func describeTarget(user, host string, port int) string {
	out := host
	if out == "" {
		out = "ssh config host"
	}
	if user != "" {
		out = user + "@" + out
	}
	if port > 0 && port != 22 {
		out = fmt.Sprintf("%s:%d", out, port)
	}
	return "Connect to " + out
}
