package domain

import (
	"time"

	"golang.org/x/oauth2"
)

// MailMessage is the provider-neutral shape of one fetched email
type MailMessage struct {
	ID         string
	Subject    string
	Body       string // plain-text part preferred, else top-level body
	ReceivedAt time.Time
}

// HasBody reports whether a decodable body was found
func (m *MailMessage) HasBody() bool {
	return m != nil && m.Body != ""
}

// TokenUpdateFunc persists a refreshed OAuth token back onto the user record
type TokenUpdateFunc func(token *oauth2.Token) error
