package provider

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/client"
)

// dockerProvider lists containers through the Docker API and toggles
// them between running and stopped. A missing daemon surfaces as a
// registry issue at startup, not a crash.
type dockerProvider struct {
	cli *client.Client
}

func NewDocker(Deps) (Provider, error) {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return nil, fmt.Errorf("could not create docker client: %w", err)
	}
	return &dockerProvider{cli: cli}, nil
}

func (*dockerProvider) Mode() Mode         { return ModeDocker }
func (*dockerProvider) Prefixes() []string { return []string{"docker", "container", "containers"} }

func (p *dockerProvider) List(ctx context.Context, query string) ([]Result, error) {
	containers, err := p.cli.ContainerList(ctx, types.ContainerListOptions{All: true})
	if err != nil {
		return nil, fmt.Errorf("could not list containers: %w", err)
	}

	lowered := strings.ToLower(strings.TrimSpace(query))
	out := []Result{}
	for _, ctr := range containers {
		name := containerName(ctr.Names, ctr.ID)
		if lowered != "" && !strings.Contains(strings.ToLower(name), lowered) &&
			!strings.Contains(strings.ToLower(ctr.Image), lowered) {
			continue
		}
		running := ctr.State == "running"
		verb := "start"
		marker := "○"
		if running {
			verb = "stop"
			marker = "●"
		}
		out = append(out, Result{
			Title:    fmt.Sprintf("%s %s", marker, name),
			Subtitle: fmt.Sprintf("%s (%s), select to %s", ctr.Image, ctr.Status, verb),
			Icon:     "utilities-terminal",
			Action:   Action{Kind: ActionDockerToggle, ContainerID: ctr.ID, Running: running},
		})
	}
	return out, nil
}

// Invoke starts or stops the container named by arg.
func (p *dockerProvider) Invoke(id, arg string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	switch id {
	case "start":
		if err := p.cli.ContainerStart(ctx, arg, types.ContainerStartOptions{}); err != nil {
			return fmt.Errorf("could not start container: %w", err)
		}
		return nil
	case "stop":
		if err := p.cli.ContainerStop(ctx, arg, container.StopOptions{}); err != nil {
			return fmt.Errorf("could not stop container: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unknown docker operation: %s", id)
	}
}

func containerName(names []string, id string) string {
	if len(names) > 0 {
		return strings.TrimPrefix(names[0], "/")
	}
	if len(id) > 12 {
		return id[:12]
	}
	return id
}
