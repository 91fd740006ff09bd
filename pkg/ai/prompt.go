package ai

import "fmt"

// maxBodyChars bounds the prompt size. The body is truncated at a raw
// character count, not at a sentence boundary.
const maxBodyChars = 4000

// buildExtractionPrompt assembles the prompt sent to the extraction model
func buildExtractionPrompt(subject, body string) string {
	if len(body) > maxBodyChars {
		body = body[:maxBodyChars]
	}

	return fmt.Sprintf(`You are an assistant that extracts job application data from emails.

Analyze the email below and return a single JSON object with exactly these fields:
- "companyName": the hiring company's name
- "role": the position applied for
- "status": one of "ACTIVE", "OFFER", "REJECTED"
- "nextStep": the next action for the candidate, or "" if none
- "summary": a one-sentence summary of the email

Return ONLY the JSON object, no other text.

Subject: %s

Body:
%s

JSON:`, subject, body)
}
