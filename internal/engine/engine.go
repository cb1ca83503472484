// Package engine turns raw launcher input into a ranked result list.
// Every keystroke becomes one query round: route to a mode, ask that
// mode's provider under a deadline, rescore, sort, cap.
package engine

import (
	"context"
	"log/slog"
	"sort"
	"sync/atomic"
	"time"

	"github.com/bkwi/beacon/internal/fuzzy"
	"github.com/bkwi/beacon/internal/provider"
	"github.com/bkwi/beacon/internal/router"
)

const (
	providerTimeout = 300 * time.Millisecond
	queryTimeout    = 500 * time.Millisecond

	// Rescored candidates below this are dropped from the round.
	// Providers that match on fields the title and subtitle never show
	// assign their own score, which rescoring leaves alone.
	minScore = 0.05
)

// Response is one completed query round. Seq identifies the round;
// callers drop responses whose Seq is no longer the latest.
type Response struct {
	Seq     uint64
	Mode    provider.Mode
	Query   string
	Results []provider.Result
}

type Engine struct {
	registry   *provider.Registry
	router     *router.Router
	maxResults int
	logger     *slog.Logger
	seq        atomic.Uint64
}

func New(registry *provider.Registry, rt *router.Router, maxResults int, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	if maxResults <= 0 {
		maxResults = 50
	}
	return &Engine{registry: registry, router: rt, maxResults: maxResults, logger: logger}
}

// Latest reports the most recently claimed sequence number.
func (e *Engine) Latest() uint64 {
	return e.seq.Load()
}

// NextSeq claims the sequence number for a round about to start. The
// caller must claim it at dispatch time, before the round's work is
// scheduled, so that rounds started later always carry larger numbers
// than rounds started earlier regardless of execution order.
func (e *Engine) NextSeq() uint64 {
	return e.seq.Add(1)
}

// Query runs the round identified by seq. The response carries seq
// back; by the time it arrives a newer round may have been claimed,
// in which case the caller discards it.
func (e *Engine) Query(ctx context.Context, seq uint64, query string) Response {
	match := e.router.Resolve(query)
	resp := Response{Seq: seq, Mode: match.Mode, Query: query}

	p, ok := e.registry.ForMode(match.Mode)
	if !ok {
		return resp
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	residual := match.Residual
	if match.Mode == provider.ModeWebSearch && match.Prefix != "" {
		// The search provider picks its engine from the first token,
		// so the routing prefix has to travel with the terms.
		residual = match.Prefix + " " + match.Residual
	}

	results, err := e.list(ctx, p, residual)
	if err != nil {
		e.logger.Debug("provider failed", "mode", match.Mode, "error", err)
		return resp
	}

	if !isSynthetic(p) {
		results = rescore(results, match.Residual)
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > e.maxResults {
		results = results[:e.maxResults]
	}
	resp.Results = results
	return resp
}

// list calls the provider on its own goroutine so a backend that
// ignores ctx cannot stall the round past the provider deadline.
func (e *Engine) list(ctx context.Context, p provider.Provider, query string) ([]provider.Result, error) {
	ctx, cancel := context.WithTimeout(ctx, providerTimeout)
	defer cancel()

	type outcome struct {
		results []provider.Result
		err     error
	}
	ch := make(chan outcome, 1)
	go func() {
		results, err := p.List(ctx, query)
		ch <- outcome{results: results, err: err}
	}()

	select {
	case out := <-ch:
		return out.results, out.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// rescore ranks unscored results against the residual by title, then
// subtitle, and drops whatever falls below the minimum. Pre-scored
// results pass through untouched.
func rescore(results []provider.Result, query string) []provider.Result {
	kept := results[:0]
	for _, result := range results {
		if result.Score == 0 {
			score := fuzzy.Score(query, result.Title)
			if s := fuzzy.Score(query, result.Subtitle); s > score {
				score = s
			}
			if score < minScore {
				continue
			}
			result.Score = score
		}
		kept = append(kept, result)
	}
	return kept
}

func isSynthetic(p provider.Provider) bool {
	s, ok := p.(provider.Synthetic)
	return ok && s.Synthetic()
}
