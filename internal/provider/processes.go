package provider

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/bkwi/beacon/internal/fuzzy"
)

const processesMaxResults = 50

// runningProcess is one /proc entry with enough accounting to rank by
// consumed CPU time.
type runningProcess struct {
	PID      int
	Name     string
	CPUTicks uint64
	RSSBytes uint64
}

type processesProvider struct {
	procRoot string
	pageSize uint64
}

func NewProcesses(Deps) (Provider, error) {
	return &processesProvider{procRoot: "/proc", pageSize: uint64(os.Getpagesize())}, nil
}

func (*processesProvider) Mode() Mode         { return ModeProcesses }
func (*processesProvider) Prefixes() []string { return []string{"ps", "proc", "process"} }

func (p *processesProvider) List(ctx context.Context, query string) ([]Result, error) {
	processes, err := p.scan(ctx)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(processes, func(i, j int) bool {
		return processes[i].CPUTicks > processes[j].CPUTicks
	})

	lowered := strings.ToLower(strings.TrimSpace(query))
	out := []Result{}
	for _, proc := range processes {
		if lowered != "" && !fuzzy.Matches(lowered, proc.Name) {
			continue
		}
		out = append(out, Result{
			Title:    proc.Name,
			Subtitle: fmt.Sprintf("PID %d, %s, select to kill", proc.PID, humanize.Bytes(proc.RSSBytes)),
			Icon:     "application-x-executable",
			Action:   Action{Kind: ActionKillProcess, PID: proc.PID},
		})
		if len(out) >= processesMaxResults {
			break
		}
	}
	return out, nil
}

func (p *processesProvider) scan(ctx context.Context) ([]runningProcess, error) {
	entries, err := os.ReadDir(p.procRoot)
	if err != nil {
		return nil, fmt.Errorf("could not read %s: %w", p.procRoot, err)
	}

	processes := []runningProcess{}
	for _, entry := range entries {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		pid, err := strconv.Atoi(entry.Name())
		if err != nil {
			continue
		}
		proc, ok := p.readProcess(pid)
		if !ok {
			continue
		}
		processes = append(processes, proc)
	}
	return processes, nil
}

// readProcess pulls name and utime+stime out of /proc/<pid>/stat and
// resident memory out of statm. Processes that vanish mid-read are
// skipped.
func (p *processesProvider) readProcess(pid int) (runningProcess, bool) {
	statBytes, err := os.ReadFile(filepath.Join(p.procRoot, strconv.Itoa(pid), "stat"))
	if err != nil {
		return runningProcess{}, false
	}
	name, cpuTicks, ok := parseProcStat(string(statBytes))
	if !ok {
		return runningProcess{}, false
	}

	proc := runningProcess{PID: pid, Name: name, CPUTicks: cpuTicks}
	if statmBytes, err := os.ReadFile(filepath.Join(p.procRoot, strconv.Itoa(pid), "statm")); err == nil {
		fields := strings.Fields(string(statmBytes))
		if len(fields) >= 2 {
			if pages, err := strconv.ParseUint(fields[1], 10, 64); err == nil {
				proc.RSSBytes = pages * p.pageSize
			}
		}
	}
	return proc, true
}

// parseProcStat extracts comm and utime+stime. The comm field is
// parenthesized and may itself contain spaces or parens, so the stat
// line is split around the last closing paren.
func parseProcStat(stat string) (name string, cpuTicks uint64, ok bool) {
	open := strings.IndexByte(stat, '(')
	close := strings.LastIndexByte(stat, ')')
	if open < 0 || close < open {
		return "", 0, false
	}
	name = stat[open+1 : close]

	fields := strings.Fields(stat[close+1:])
	// fields[0] is state; utime and stime are the 14th and 15th
	// fields of the full line, i.e. offsets 11 and 12 after comm.
	if len(fields) < 13 {
		return "", 0, false
	}
	utime, err1 := strconv.ParseUint(fields[11], 10, 64)
	stime, err2 := strconv.ParseUint(fields[12], 10, 64)
	if err1 != nil || err2 != nil {
		return "", 0, false
	}
	return name, utime + stime, true
}
