package ai

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var ErrUnusableExtraction = errors.New("unusable extraction response")

// ParseApplicationExtraction defensively parses a model response expected to
// contain a single JSON object. Models routinely wrap JSON in markdown code
// fences or surrounding prose, so both are stripped before unmarshalling.
func ParseApplicationExtraction(text string) (*ApplicationExtraction, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrUnusableExtraction
	}

	// Strip markdown code fences if present
	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimSuffix(text, "```")
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(text, "```")
	}
	text = strings.TrimSpace(text)

	// Slice out the first JSON object in case of surrounding prose
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end < start {
		return nil, ErrUnusableExtraction
	}
	text = text[start : end+1]

	var extraction ApplicationExtraction
	if err := json.Unmarshal([]byte(text), &extraction); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnusableExtraction, err)
	}

	if strings.TrimSpace(extraction.CompanyName) == "" {
		return nil, fmt.Errorf("%w: missing companyName", ErrUnusableExtraction)
	}

	extraction.Status = strings.ToUpper(strings.TrimSpace(extraction.Status))
	switch extraction.Status {
	case "ACTIVE", "OFFER", "REJECTED":
	default:
		return nil, fmt.Errorf("%w: unknown status %q", ErrUnusableExtraction, extraction.Status)
	}

	return &extraction, nil
}
