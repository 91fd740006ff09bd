package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompanyKey(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"suffix stripped", "Acme Inc.", "acme"},
		{"uppercase", "ACME", "acme"},
		{"suffix variation", "Acme Corporation", "acme"},
		{"empty", "", ""},
		{"whitespace only", "   ", ""},
		{"punctuation", "O'Brien & Sons", "obrien"},
		{"leading whitespace", "  Globex LLC", "globex"},
		{"digits kept", "3M Company", "3m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CompanyKey(tt.in))
		})
	}
}

func TestCompanyKeyEquivalence(t *testing.T) {
	// "Acme Inc." and "ACME" must reduce to the same key
	assert.Equal(t, CompanyKey("Acme Inc."), CompanyKey("ACME"))
}

func TestFirstWordResolver(t *testing.T) {
	r := FirstWordResolver{}
	candidates := []string{"Globex Corporation", "Acme Corp", "Initech"}

	idx, ok := r.Match("Acme", candidates)
	assert.True(t, ok)
	assert.Equal(t, 1, idx)

	_, ok = r.Match("Hooli", candidates)
	assert.False(t, ok)

	_, ok = r.Match("", candidates)
	assert.False(t, ok)
}

func TestFuzzyResolver(t *testing.T) {
	r := FuzzyResolver{MaxDistance: 1}
	candidates := []string{"Globex Corporation", "Acme Corp"}

	// exact key match wins
	idx, ok := r.Match("Acme Inc", candidates)
	assert.True(t, ok)
	assert.Equal(t, 1, idx)

	// one-character typo within distance
	idx, ok = r.Match("Acmee", candidates)
	assert.True(t, ok)
	assert.Equal(t, 1, idx)

	// too far away
	_, ok = r.Match("Initech", candidates)
	assert.False(t, ok)
}

func TestEditDistance(t *testing.T) {
	assert.Equal(t, 0, editDistance("acme", "acme"))
	assert.Equal(t, 1, editDistance("acme", "acmee"))
	assert.Equal(t, 4, editDistance("", "acme"))
	assert.Equal(t, 3, editDistance("kitten", "sitting"))
}

func TestNewResolver(t *testing.T) {
	_, ok := NewResolver("fuzzy", 2).(FuzzyResolver)
	assert.True(t, ok)

	_, ok = NewResolver("first-word", 0).(FirstWordResolver)
	assert.True(t, ok)

	// unknown kinds fall back to first-word
	_, ok = NewResolver("embedding", 0).(FirstWordResolver)
	assert.True(t, ok)
}
