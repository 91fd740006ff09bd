package ai

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseApplicationExtraction_PlainJSON(t *testing.T) {
	text := `{"companyName":"Acme","role":"Engineer","status":"ACTIVE","nextStep":"Pending response","summary":"Applied to Acme"}`

	got, err := ParseApplicationExtraction(text)
	require.NoError(t, err)
	assert.Equal(t, "Acme", got.CompanyName)
	assert.Equal(t, "Engineer", got.Role)
	assert.Equal(t, "ACTIVE", got.Status)
	assert.Equal(t, "Pending response", got.NextStep)
	assert.Equal(t, "Applied to Acme", got.Summary)
}

func TestParseApplicationExtraction_CodeFence(t *testing.T) {
	text := "```json\n{\"companyName\":\"Acme\",\"role\":\"Engineer\",\"status\":\"OFFER\",\"nextStep\":\"\",\"summary\":\"Offer received\"}\n```"

	got, err := ParseApplicationExtraction(text)
	require.NoError(t, err)
	assert.Equal(t, "OFFER", got.Status)
}

func TestParseApplicationExtraction_BareFence(t *testing.T) {
	text := "```\n{\"companyName\":\"Globex\",\"role\":\"PM\",\"status\":\"REJECTED\",\"nextStep\":\"\",\"summary\":\"Rejected\"}\n```"

	got, err := ParseApplicationExtraction(text)
	require.NoError(t, err)
	assert.Equal(t, "Globex", got.CompanyName)
}

func TestParseApplicationExtraction_SurroundingProse(t *testing.T) {
	text := "Here is the extracted data:\n{\"companyName\":\"Acme\",\"role\":\"Engineer\",\"status\":\"active\",\"nextStep\":\"\",\"summary\":\"s\"}\nHope that helps!"

	got, err := ParseApplicationExtraction(text)
	require.NoError(t, err)
	// status is normalized to upper case
	assert.Equal(t, "ACTIVE", got.Status)
}

func TestParseApplicationExtraction_Unusable(t *testing.T) {
	cases := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"whitespace", "   \n  "},
		{"no json", "I could not find any job application in this email."},
		{"malformed", "{companyName: Acme"},
		{"missing company", `{"companyName":"","role":"Engineer","status":"ACTIVE"}`},
		{"unknown status", `{"companyName":"Acme","role":"Engineer","status":"INTERVIEWING"}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseApplicationExtraction(tc.text)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrUnusableExtraction))
		})
	}
}

func TestBuildExtractionPrompt_Truncation(t *testing.T) {
	body := strings.Repeat("x", maxBodyChars+500)
	prompt := buildExtractionPrompt("Interview invite", body)

	// raw character cut, nothing beyond the cap leaks into the prompt
	assert.NotContains(t, prompt, strings.Repeat("x", maxBodyChars+1))
	assert.Contains(t, prompt, "Interview invite")
}
