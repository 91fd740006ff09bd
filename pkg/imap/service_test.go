package imap

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseQueryKeywords(t *testing.T) {
	query := `newer_than:7d subject:(application OR interview OR offer) "thank you"`
	got := parseQueryKeywords(query)

	assert.Equal(t, []string{"application", "interview", "offer", "thank", "you"}, got)
}

func TestParseQueryKeywords_OperatorGluedToKeyword(t *testing.T) {
	// default mailbox query: the first keyword is glued to the subject operator
	query := "newer_than:7d subject:(application OR interview OR offer OR recruiter)"
	got := parseQueryKeywords(query)

	assert.Equal(t, []string{"application", "interview", "offer", "recruiter"}, got)
}

func TestParseQueryKeywords_Empty(t *testing.T) {
	assert.Nil(t, parseQueryKeywords(""))
	assert.Nil(t, parseQueryKeywords("newer_than:7d in:inbox"))
}

func TestMatchesKeywords(t *testing.T) {
	keywords := []string{"application", "interview"}

	assert.True(t, matchesKeywords("Your Application at Acme", keywords))
	assert.True(t, matchesKeywords("INTERVIEW invitation", keywords))
	assert.False(t, matchesKeywords("Weekly newsletter", keywords))
	// no keywords means everything passes
	assert.True(t, matchesKeywords("anything", nil))
}

func TestExtractBodyText_PlainPreferred(t *testing.T) {
	raw := strings.Join([]string{
		"From: hr@acme.com",
		"To: me@example.com",
		"Subject: Interview",
		"MIME-Version: 1.0",
		"Content-Type: multipart/alternative; boundary=sep",
		"",
		"--sep",
		"Content-Type: text/html",
		"",
		"<p>html body</p>",
		"--sep",
		"Content-Type: text/plain",
		"",
		"plain body",
		"--sep--",
		"",
	}, "\r\n")

	got := extractBodyText(strings.NewReader(raw))
	assert.Equal(t, "plain body", strings.TrimSpace(got))
}

func TestExtractBodyText_HTMLFallback(t *testing.T) {
	raw := strings.Join([]string{
		"From: hr@acme.com",
		"To: me@example.com",
		"Subject: Interview",
		"MIME-Version: 1.0",
		"Content-Type: text/html",
		"",
		"<p>only html</p>",
		"",
	}, "\r\n")

	got := extractBodyText(strings.NewReader(raw))
	assert.Equal(t, "<p>only html</p>", strings.TrimSpace(got))
}
