package match

import (
	"strings"
	"unicode"
)

// CompanyKey reduces a free-text company name to a canonical comparison key:
// the lowercase, punctuation-stripped first whitespace-delimited word.
// Returns "" for empty input.
//
// The first-word reduction is intentionally coarse: it tolerates suffix
// variation ("Acme Inc" vs "Acme Corporation") at the cost of possible false
// merges between companies sharing a first word. Known precision/recall
// tradeoff, not a bug.
func CompanyKey(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return ""
	}

	var b strings.Builder
	for _, r := range strings.ToLower(fields[0]) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Resolver matches an extracted company name against candidate company names
// and returns the index of the match. Swapping implementations changes the
// identity heuristic without touching the sync orchestrator.
type Resolver interface {
	Match(extracted string, candidates []string) (int, bool)
}

// FirstWordResolver matches on exact CompanyKey equality
type FirstWordResolver struct{}

func (FirstWordResolver) Match(extracted string, candidates []string) (int, bool) {
	key := CompanyKey(extracted)
	if key == "" {
		return 0, false
	}
	for i, c := range candidates {
		if CompanyKey(c) == key {
			return i, true
		}
	}
	return 0, false
}

// FuzzyResolver matches company keys within a maximum edit distance,
// absorbing typos in extracted names ("Acmee" vs "Acme")
type FuzzyResolver struct {
	MaxDistance int
}

func (r FuzzyResolver) Match(extracted string, candidates []string) (int, bool) {
	key := CompanyKey(extracted)
	if key == "" {
		return 0, false
	}

	best := -1
	bestDist := r.MaxDistance + 1
	for i, c := range candidates {
		ck := CompanyKey(c)
		if ck == "" {
			continue
		}
		if ck == key {
			return i, true
		}
		if d := editDistance(key, ck); d < bestDist {
			best = i
			bestDist = d
		}
	}
	if best >= 0 && bestDist <= r.MaxDistance {
		return best, true
	}
	return 0, false
}

// editDistance is the Levenshtein distance between two strings
func editDistance(s1, s2 string) int {
	if len(s1) == 0 {
		return len(s2)
	}
	if len(s2) == 0 {
		return len(s1)
	}

	r1 := []rune(s1)
	r2 := []rune(s2)
	m := len(r1)
	n := len(r2)

	d := make([][]int, m+1)
	for i := range d {
		d[i] = make([]int, n+1)
	}
	for i := 0; i <= m; i++ {
		d[i][0] = i
	}
	for j := 0; j <= n; j++ {
		d[0][j] = j
	}

	for i := 1; i <= m; i++ {
		for j := 1; j <= n; j++ {
			cost := 0
			if r1[i-1] != r2[j-1] {
				cost = 1
			}
			d[i][j] = min3(
				d[i-1][j]+1,      // deletion
				d[i][j-1]+1,      // insertion
				d[i-1][j-1]+cost, // substitution
			)
		}
	}

	return d[m][n]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}

// NewResolver returns the resolver named by kind: "fuzzy" or "first-word"
func NewResolver(kind string, maxDistance int) Resolver {
	if kind == "fuzzy" {
		if maxDistance <= 0 {
			maxDistance = 1
		}
		return FuzzyResolver{MaxDistance: maxDistance}
	}
	return FirstWordResolver{}
}
