package provider

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

const sshConfigFixture = `# personal hosts
Host prod
    HostName prod.example.com
    User deploy
    Port 2222

Host *
    ForwardAgent yes

Host staging
    HostName staging.example.com
`

func writeSSHConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config")
	if err := os.WriteFile(path, []byte(sshConfigFixture), 0o600); err != nil {
		t.Fatalf("write ssh config failed: %v", err)
	}
	return path
}

func TestSSHConfigHostsAreListed(t *testing.T) {
	p, err := newSSHAt(filepath.Join(t.TempDir(), sshFileName), writeSSHConfig(t))
	if err != nil {
		t.Fatalf("newSSHAt failed: %v", err)
	}

	results, err := p.List(context.Background(), "")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 hosts (wildcard skipped), got %d", len(results))
	}
	if results[0].Title != "prod" {
		t.Fatalf("expected prod first, got %q", results[0].Title)
	}
	action := results[0].Action
	if action.Kind != ActionSSHConnect || action.Host != "deploy@prod.example.com" || action.Port != 2222 {
		t.Fatalf("unexpected action: %+v", action)
	}
}

func TestSSHSavedConnections(t *testing.T) {
	path := filepath.Join(t.TempDir(), sshFileName)
	p, err := newSSHAt(path, filepath.Join(t.TempDir(), "missing-config"))
	if err != nil {
		t.Fatalf("newSSHAt failed: %v", err)
	}

	if err := p.Invoke("add", "alice@devbox:2200"); err != nil {
		t.Fatalf("Invoke add failed: %v", err)
	}

	reopened, err := newSSHAt(path, filepath.Join(t.TempDir(), "missing-config"))
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	results, err := reopened.List(context.Background(), "devbox")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected saved connection, got %d results", len(results))
	}
	action := results[0].Action
	if action.Host != "alice@devbox" || action.Port != 2200 {
		t.Fatalf("unexpected action: %+v", action)
	}
}

func TestSSHAddQueryProducesSaveAction(t *testing.T) {
	p, err := newSSHAt(filepath.Join(t.TempDir(), sshFileName), filepath.Join(t.TempDir(), "missing"))
	if err != nil {
		t.Fatalf("newSSHAt failed: %v", err)
	}

	results, err := p.List(context.Background(), "add bob@example.org")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(results) != 1 || results[0].Action.InvokeID != "add" {
		t.Fatalf("expected save action, got %+v", results)
	}
}

func TestSSHDeleteQueryProducesDeleteRows(t *testing.T) {
	p, err := newSSHAt(filepath.Join(t.TempDir(), sshFileName), writeSSHConfig(t))
	if err != nil {
		t.Fatalf("newSSHAt failed: %v", err)
	}
	if err := p.Invoke("add", "alice@devbox:2200"); err != nil {
		t.Fatalf("Invoke add failed: %v", err)
	}

	// Only saved connections are deletable; config hosts never show up.
	results, err := p.List(context.Background(), "delete")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 delete row, got %d", len(results))
	}
	action := results[0].Action
	if action.Kind != ActionInvoke || action.InvokeID != "delete" {
		t.Fatalf("unexpected delete action: %+v", action)
	}

	if err := p.Invoke(action.InvokeID, action.InvokeArg); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if len(p.saved) != 0 {
		t.Fatalf("saved connection was not deleted, %d left", len(p.saved))
	}
}

func TestParseTarget(t *testing.T) {
	cases := []struct {
		in   string
		user string
		host string
		port int
	}{
		{"alice@devbox:2200", "alice", "devbox", 2200},
		{"devbox", "", "devbox", 0},
		{"root@10.0.0.1", "root", "10.0.0.1", 0},
		{"box:22", "", "box", 22},
	}
	for _, tc := range cases {
		user, host, port := parseTarget(tc.in)
		if user != tc.user || host != tc.host || port != tc.port {
			t.Fatalf("parseTarget(%q) = (%q, %q, %d), want (%q, %q, %d)",
				tc.in, user, host, port, tc.user, tc.host, tc.port)
		}
	}
}

func TestMissingSSHConfigIsNotAnError(t *testing.T) {
	p, err := newSSHAt(filepath.Join(t.TempDir(), sshFileName), filepath.Join(t.TempDir(), "nope"))
	if err != nil {
		t.Fatalf("newSSHAt failed: %v", err)
	}
	results, err := p.List(context.Background(), "")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("expected no results, got %d", len(results))
	}
}
