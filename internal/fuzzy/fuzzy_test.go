package fuzzy

import (
	"strings"
	"testing"
)

func TestScoreStaysWithinUnitInterval(t *testing.T) {
	cases := [][2]string{
		{"ff", "Firefox"},
		{"firefox", "Firefox"},
		{"x", "Firefox"},
		{"code", "Visual Studio Code"},
		{"vsc", "Visual Studio Code"},
		{"zzz", "Firefox"},
		{"", "anything"},
	}
	for _, c := range cases {
		got := Score(c[0], c[1])
		if got < 0 || got > 1 {
			t.Fatalf("Score(%q, %q) = %v, want within [0, 1]", c[0], c[1], got)
		}
	}
}

func TestScoreIsCaseInsensitive(t *testing.T) {
	a := Score("firefox", "Firefox Browser")
	b := Score("FIREFOX", "firefox browser")
	if a != b {
		t.Fatalf("expected case-folded scores to match, got %v and %v", a, b)
	}
}

func TestExactMatchScoresOne(t *testing.T) {
	if got := Score("firefox", "Firefox"); got != 1 {
		t.Fatalf("expected exact match to score 1, got %v", got)
	}
}

func TestNonSubsequenceScoresZero(t *testing.T) {
	if got := Score("xfz", "Firefox"); got != 0 {
		t.Fatalf("expected non-subsequence to score 0, got %v", got)
	}
	if got := Score("firefoxx", "Firefox"); got != 0 {
		t.Fatalf("expected overlong query to score 0, got %v", got)
	}
}

func TestEmptyQueryMatchesEverything(t *testing.T) {
	for _, candidate := range []string{"Firefox", "kitty", "Visual Studio Code"} {
		if got := Score("", candidate); got <= 0 {
			t.Fatalf("expected empty query to match %q, got %v", candidate, got)
		}
	}
}

func TestContiguousBeatsScattered(t *testing.T) {
	contiguous := Score("fire", "Firefox")
	scattered := Score("fire", "File Browser Extra")
	if contiguous <= scattered {
		t.Fatalf("expected contiguous match (%v) to beat scattered (%v)", contiguous, scattered)
	}
}

func TestPrefixBeatsMidWordMatch(t *testing.T) {
	prefix := Score("term", "Terminal")
	mid := Score("term", "xterm-wrapper")
	if prefix <= mid {
		t.Fatalf("expected prefix match (%v) to beat mid-word match (%v)", prefix, mid)
	}
}

func TestWordBoundaryInitialsMatch(t *testing.T) {
	got := Score("vsc", "Visual Studio Code")
	if got <= 0 {
		t.Fatalf("expected initials to match, got %v", got)
	}
	worse := Score("vsc", strings.Repeat("xv", 10)+"sxc")
	if got <= worse {
		t.Fatalf("expected boundary-aligned match (%v) to beat buried match (%v)", got, worse)
	}
}

func TestShorterCandidateWinsOnTies(t *testing.T) {
	short := Score("dock", "Docker")
	long := Score("dock", "Docker Desktop Companion Tool")
	if short <= long {
		t.Fatalf("expected shorter candidate (%v) to outrank longer one (%v)", short, long)
	}
}

func TestMatchesAgreesWithScore(t *testing.T) {
	if !Matches("ff", "Firefox") {
		t.Fatalf("expected ff to match Firefox")
	}
	if Matches("q", "Firefox") {
		t.Fatalf("expected q not to match Firefox")
	}
	if !Matches("", "Firefox") {
		t.Fatalf("expected empty query to match")
	}
}
