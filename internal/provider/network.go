package provider

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// wifiNetwork is one row of nmcli's terse wifi listing.
type wifiNetwork struct {
	SSID     string
	Signal   int
	Security string
	InUse    bool
}

type networkProvider struct {
	run commandRunner
}

func NewNetwork(Deps) (Provider, error) {
	return &networkProvider{run: execRunner}, nil
}

func (*networkProvider) Mode() Mode         { return ModeNetwork }
func (*networkProvider) Prefixes() []string { return []string{"wifi", "network"} }

func (p *networkProvider) List(ctx context.Context, query string) ([]Result, error) {
	output, err := p.run(ctx, "nmcli", "-t", "-f", "SSID,SIGNAL,SECURITY,IN-USE", "device", "wifi", "list")
	if err != nil {
		return nil, fmt.Errorf("could not list wifi networks: %w", err)
	}

	lowered := strings.ToLower(strings.TrimSpace(query))
	out := []Result{}
	for _, network := range parseWifiList(string(output)) {
		if lowered != "" && !strings.Contains(strings.ToLower(network.SSID), lowered) {
			continue
		}
		title := network.SSID
		subtitle := fmt.Sprintf("Signal %d%%, %s", network.Signal, securityLabel(network.Security))
		if network.InUse {
			title = "✓ " + title
			subtitle += ", connected"
		}
		out = append(out, Result{
			Title:    title,
			Subtitle: subtitle,
			Icon:     "network-wireless",
			Action:   Action{Kind: ActionConnectNetwork, Device: network.SSID},
		})
	}

	if lowered == "" {
		out = append(out,
			Result{
				Title:    "Rescan networks",
				Subtitle: "nmcli device wifi rescan",
				Icon:     "view-refresh",
				Action:   Action{Kind: ActionInvoke, InvokeMode: ModeNetwork, InvokeID: "scan"},
			},
			Result{
				Title:    "Toggle wifi",
				Subtitle: "Turn the radio on or off",
				Icon:     "network-wireless",
				Action:   Action{Kind: ActionInvoke, InvokeMode: ModeNetwork, InvokeID: "toggle"},
			},
			Result{
				Title:    "Disconnect",
				Subtitle: "Drop the current connection",
				Icon:     "network-offline",
				Action:   Action{Kind: ActionInvoke, InvokeMode: ModeNetwork, InvokeID: "disconnect"},
			},
		)
	}
	return out, nil
}

func (p *networkProvider) Invoke(id, _ string) error {
	ctx := context.Background()
	switch id {
	case "scan":
		_, err := p.run(ctx, "nmcli", "device", "wifi", "rescan")
		return err
	case "toggle":
		output, err := p.run(ctx, "nmcli", "radio", "wifi")
		if err != nil {
			return fmt.Errorf("could not read wifi radio state: %w", err)
		}
		next := "on"
		if strings.TrimSpace(string(output)) == "enabled" {
			next = "off"
		}
		_, err = p.run(ctx, "nmcli", "radio", "wifi", next)
		return err
	case "disconnect":
		_, err := p.run(ctx, "nmcli", "device", "disconnect", "wlan0")
		return err
	default:
		return fmt.Errorf("unknown network operation: %s", id)
	}
}

// parseWifiList reads nmcli terse output. Colons inside SSIDs arrive
// escaped as "\:"; rows without an SSID are hidden networks and are
// dropped.
func parseWifiList(output string) []wifiNetwork {
	networks := []wifiNetwork{}
	seen := map[string]struct{}{}
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fields := splitTerse(line)
		if len(fields) < 4 || fields[0] == "" {
			continue
		}
		if _, dup := seen[fields[0]]; dup {
			continue
		}
		seen[fields[0]] = struct{}{}

		signal, _ := strconv.Atoi(fields[1])
		networks = append(networks, wifiNetwork{
			SSID:     fields[0],
			Signal:   signal,
			Security: fields[2],
			InUse:    fields[3] == "*",
		})
	}
	return networks
}

// splitTerse splits an nmcli -t row on unescaped colons.
func splitTerse(line string) []string {
	fields := []string{}
	var current strings.Builder
	escaped := false
	for _, r := range line {
		switch {
		case escaped:
			current.WriteRune(r)
			escaped = false
		case r == '\\':
			escaped = true
		case r == ':':
			fields = append(fields, current.String())
			current.Reset()
		default:
			current.WriteRune(r)
		}
	}
	fields = append(fields, current.String())
	return fields
}

func securityLabel(security string) string {
	if security == "" || security == "--" {
		return "open"
	}
	return security
}
