// Package router decides which search domain a raw query belongs to.
// Resolution is prefix-first: an explicit mode prefix always wins, then
// the query shape is checked for arithmetic and unit conversions, and
// everything else falls through to application search.
package router

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/bkwi/beacon/internal/provider"
)

// Match is the routing decision for one query. Prefix holds the alias
// that selected the mode, empty when the mode was inferred from shape.
type Match struct {
	Mode     provider.Mode
	Residual string
	Prefix   string
}

type Router struct {
	table []provider.PrefixBinding
}

func New(table []provider.PrefixBinding) *Router {
	return &Router{table: table}
}

var converterShape = regexp.MustCompile(`^(\d+\.?\d*)\s*([a-zA-Z]+)\s+(?:to|in)\s+([a-zA-Z]+)$`)

func (r *Router) Resolve(query string) Match {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return Match{Mode: provider.ModeApps}
	}

	token, rest := splitFirstToken(trimmed)
	lowered := strings.ToLower(token)
	for _, binding := range r.table {
		if binding.Prefix == lowered {
			return Match{Mode: binding.Mode, Residual: rest, Prefix: lowered}
		}
	}

	if looksLikeMath(trimmed) {
		return Match{Mode: provider.ModeCalculator, Residual: trimmed}
	}
	if converterShape.MatchString(strings.ToLower(trimmed)) {
		return Match{Mode: provider.ModeConverter, Residual: trimmed}
	}

	return Match{Mode: provider.ModeApps, Residual: trimmed}
}

func splitFirstToken(query string) (token, rest string) {
	idx := strings.IndexFunc(query, unicode.IsSpace)
	if idx < 0 {
		return query, ""
	}
	return query[:idx], strings.TrimSpace(query[idx:])
}

// looksLikeMath mirrors how people type quick sums into the launcher:
// at least one arithmetic operator next to at least one digit.
func looksLikeMath(query string) bool {
	hasOperator := strings.ContainsAny(query, "+-*/^%()")
	hasDigit := strings.ContainsFunc(query, unicode.IsDigit)
	return hasOperator && hasDigit
}
