// Package safety keeps obvious secrets out of persisted state. The
// clipboard daemon consults it before anything is written to disk.
package safety

import "regexp"

var secretPatterns = []*regexp.Regexp{
	// key=value and key: value assignments with a secret-ish key.
	regexp.MustCompile(`(?i)\b[a-z0-9_]*(?:token|secret|password|passwd|api[_-]?key|access[_-]?key)[a-z0-9_]*\s*[=:]\s*\S+`),
	// Authorization headers.
	regexp.MustCompile(`(?i)\bauthorization\s*:\s*bearer\s+\S+`),
	// PEM private key blocks.
	regexp.MustCompile(`-----BEGIN [A-Z ]*PRIVATE KEY-----`),
	// AWS access key ids.
	regexp.MustCompile(`\bAKIA[0-9A-Z]{16}\b`),
	// GitHub personal access tokens.
	regexp.MustCompile(`\bgh[pousr]_[A-Za-z0-9]{36,}\b`),
	// Slack tokens.
	regexp.MustCompile(`\bxox[baprs]-[A-Za-z0-9-]{10,}\b`),
}

// ContainsSecret reports whether text looks like credential material.
func ContainsSecret(text string) bool {
	for _, pattern := range secretPatterns {
		if pattern.MatchString(text) {
			return true
		}
	}
	return false
}

// RedactText scrubs matched secret spans so diagnostic output can
// quote user text without leaking credentials.
func RedactText(input string) string {
	redacted := input
	for _, pattern := range secretPatterns {
		redacted = pattern.ReplaceAllString(redacted, "<redacted>")
	}
	return redacted
}
