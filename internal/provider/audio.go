package provider

import (
	"context"
	"fmt"
	"strings"
)

// audioSink is one row of pactl's short sink listing.
type audioSink struct {
	Index  string
	Name   string
	Active bool
}

type audioProvider struct {
	run commandRunner
}

func NewAudio(Deps) (Provider, error) {
	return &audioProvider{run: execRunner}, nil
}

func (*audioProvider) Mode() Mode         { return ModeAudio }
func (*audioProvider) Prefixes() []string { return []string{"vol", "volume", "audio"} }

func (p *audioProvider) List(ctx context.Context, query string) ([]Result, error) {
	output, err := p.run(ctx, "pactl", "list", "short", "sinks")
	if err != nil {
		return nil, fmt.Errorf("could not list audio sinks: %w", err)
	}

	lowered := strings.ToLower(strings.TrimSpace(query))
	out := []Result{}
	for _, sink := range parseSinkList(string(output)) {
		if lowered != "" && !strings.Contains(strings.ToLower(sink.Name), lowered) {
			continue
		}
		title := sink.Name
		if sink.Active {
			title = "▶ " + title
		}
		out = append(out, Result{
			Title:    title,
			Subtitle: "Set as default output",
			Icon:     "audio-card",
			Action:   Action{Kind: ActionSetAudioSink, Device: sink.Name},
		})
	}

	if lowered == "" {
		out = append(out,
			Result{
				Title:    "Volume up",
				Subtitle: "+5%",
				Icon:     "audio-volume-high",
				Action:   Action{Kind: ActionInvoke, InvokeMode: ModeAudio, InvokeID: "vol-up"},
			},
			Result{
				Title:    "Volume down",
				Subtitle: "-5%",
				Icon:     "audio-volume-low",
				Action:   Action{Kind: ActionInvoke, InvokeMode: ModeAudio, InvokeID: "vol-down"},
			},
			Result{
				Title:    "Toggle mute",
				Subtitle: "Mute or unmute the default sink",
				Icon:     "audio-volume-muted",
				Action:   Action{Kind: ActionInvoke, InvokeMode: ModeAudio, InvokeID: "mute"},
			},
		)
	}
	return out, nil
}

func (p *audioProvider) Invoke(id, _ string) error {
	ctx := context.Background()
	switch id {
	case "vol-up":
		_, err := p.run(ctx, "pactl", "set-sink-volume", "@DEFAULT_SINK@", "+5%")
		return err
	case "vol-down":
		_, err := p.run(ctx, "pactl", "set-sink-volume", "@DEFAULT_SINK@", "-5%")
		return err
	case "mute":
		_, err := p.run(ctx, "pactl", "set-sink-mute", "@DEFAULT_SINK@", "toggle")
		return err
	default:
		return fmt.Errorf("unknown audio operation: %s", id)
	}
}

// parseSinkList reads tab-separated "index name module format state"
// rows; a RUNNING state marks the sink currently in use.
func parseSinkList(output string) []audioSink {
	sinks := []audioSink{}
	for _, line := range strings.Split(output, "\n") {
		fields := strings.Split(strings.TrimSpace(line), "\t")
		if len(fields) < 2 || fields[0] == "" {
			continue
		}
		sink := audioSink{Index: fields[0], Name: fields[1]}
		if len(fields) >= 5 {
			sink.Active = strings.EqualFold(fields[4], "RUNNING")
		}
		sinks = append(sinks, sink)
	}
	return sinks
}
