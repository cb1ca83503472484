package provider

import (
	"context"
	"fmt"
	"strings"
)

// bluetoothDevice is one paired device reported by bluetoothctl.
type bluetoothDevice struct {
	MAC  string
	Name string
}

type bluetoothProvider struct {
	run commandRunner
}

func NewBluetooth(Deps) (Provider, error) {
	return &bluetoothProvider{run: execRunner}, nil
}

func (*bluetoothProvider) Mode() Mode         { return ModeBluetooth }
func (*bluetoothProvider) Prefixes() []string { return []string{"bt", "bluetooth"} }

func (p *bluetoothProvider) List(ctx context.Context, query string) ([]Result, error) {
	output, err := p.run(ctx, "bluetoothctl", "devices", "Paired")
	if err != nil {
		return nil, fmt.Errorf("could not list paired devices: %w", err)
	}

	lowered := strings.ToLower(strings.TrimSpace(query))
	out := []Result{}
	for _, device := range parsePairedDevices(string(output)) {
		if lowered != "" && !strings.Contains(strings.ToLower(device.Name), lowered) {
			continue
		}
		out = append(out, Result{
			Title:    device.Name,
			Subtitle: device.MAC + ", select to connect",
			Icon:     "bluetooth",
			Action:   Action{Kind: ActionConnectBluetooth, Device: device.MAC},
		})
	}

	if lowered == "" {
		out = append(out,
			Result{
				Title:    "Scan for devices",
				Subtitle: "bluetoothctl scan on",
				Icon:     "view-refresh",
				Action:   Action{Kind: ActionInvoke, InvokeMode: ModeBluetooth, InvokeID: "scan"},
			},
			Result{
				Title:    "Toggle bluetooth",
				Subtitle: "Power the adapter on or off",
				Icon:     "bluetooth",
				Action:   Action{Kind: ActionInvoke, InvokeMode: ModeBluetooth, InvokeID: "toggle"},
			},
		)
	}
	return out, nil
}

func (p *bluetoothProvider) Invoke(id, _ string) error {
	ctx := context.Background()
	switch id {
	case "scan":
		_, err := p.run(ctx, "bluetoothctl", "--timeout", "10", "scan", "on")
		return err
	case "toggle":
		output, err := p.run(ctx, "bluetoothctl", "show")
		if err != nil {
			return fmt.Errorf("could not read adapter state: %w", err)
		}
		next := "on"
		if strings.Contains(string(output), "Powered: yes") {
			next = "off"
		}
		_, err = p.run(ctx, "bluetoothctl", "power", next)
		return err
	default:
		return fmt.Errorf("unknown bluetooth operation: %s", id)
	}
}

// parsePairedDevices reads "Device <MAC> <Name>" lines.
func parsePairedDevices(output string) []bluetoothDevice {
	devices := []bluetoothDevice{}
	for _, line := range strings.Split(output, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 3 || fields[0] != "Device" {
			continue
		}
		devices = append(devices, bluetoothDevice{
			MAC:  fields[1],
			Name: strings.Join(fields[2:], " "),
		})
	}
	return devices
}
