package imap

import (
	"context"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
	"time"

	appdomain "jobdeck-backend/internal/application/domain"

	"github.com/emersion/go-imap"
	"github.com/emersion/go-imap/client"
	"github.com/emersion/go-message/mail"
)

const defaultTimeout = 30 * time.Second

// Service creates per-user IMAP mailbox clients. It covers users who connect
// a plain IMAP account instead of granting Gmail access.
type Service struct {
	windowDays int
}

// NewService creates an IMAP service. windowDays bounds how far back
// message searches look.
func NewService(windowDays int) *Service {
	if windowDays <= 0 {
		windowDays = 7
	}
	return &Service{windowDays: windowDays}
}

// Client is an authenticated IMAP session with INBOX selected
type Client struct {
	cl         *client.Client
	windowDays int
}

// ClientFor dials the user's IMAP server over TLS, logs in and selects INBOX.
// The caller must Close the client when done.
func (s *Service) ClientFor(host, username, password string) (*Client, error) {
	if !strings.Contains(host, ":") {
		host = host + ":993"
	}

	cl, err := client.DialTLS(host, nil)
	if err != nil {
		return nil, fmt.Errorf("IMAP connection error: %w", err)
	}
	cl.Timeout = defaultTimeout

	if err := cl.Login(username, password); err != nil {
		_ = cl.Logout()
		return nil, fmt.Errorf("IMAP login failed: %w", err)
	}

	if _, err := cl.Select("INBOX", true); err != nil {
		_ = cl.Logout()
		return nil, fmt.Errorf("unable to select INBOX: %w", err)
	}

	return &Client{cl: cl, windowDays: s.windowDays}, nil
}

// ListMessageIDs searches recent messages and returns the UIDs of those whose
// subject matches the query keywords. IMAP has no Gmail query language, so the
// recency window comes from the service config and the query is reduced to
// bare keywords matched against subjects.
func (c *Client) ListMessageIDs(ctx context.Context, query string, maxResults int64) ([]string, error) {
	c.applyDeadline(ctx)

	criteria := imap.NewSearchCriteria()
	criteria.Since = time.Now().AddDate(0, 0, -c.windowDays)

	uids, err := c.cl.UidSearch(criteria)
	if err != nil {
		return nil, fmt.Errorf("error searching for recent emails: %w", err)
	}
	if len(uids) == 0 {
		return nil, nil
	}

	// Most recent first, capped like the Gmail path
	if maxResults > 0 && int64(len(uids)) > maxResults {
		uids = uids[int64(len(uids))-maxResults:]
	}

	keywords := parseQueryKeywords(query)
	envelopes, err := c.fetchEnvelopes(uids)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(envelopes))
	for _, env := range envelopes {
		if matchesKeywords(env.subject, keywords) {
			ids = append(ids, strconv.FormatUint(uint64(env.uid), 10))
		}
	}
	return ids, nil
}

// GetMessage fetches the full message for a UID and extracts its subject,
// plain text body and internal date
func (c *Client) GetMessage(ctx context.Context, id string) (*appdomain.MailMessage, error) {
	c.applyDeadline(ctx)

	uid, err := strconv.ParseUint(id, 10, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid message id %q: %w", id, err)
	}

	seqSet := new(imap.SeqSet)
	seqSet.AddNum(uint32(uid))

	section := &imap.BodySectionName{Peek: true}
	items := []imap.FetchItem{section.FetchItem(), imap.FetchEnvelope, imap.FetchInternalDate, imap.FetchUid}

	messages := make(chan *imap.Message, 1)
	done := make(chan error, 1)
	go func() {
		done <- c.cl.UidFetch(seqSet, items, messages)
	}()

	var msg *imap.Message
	for m := range messages {
		msg = m
	}
	if err := <-done; err != nil {
		return nil, fmt.Errorf("error fetching message UID %d: %w", uid, err)
	}
	if msg == nil {
		return nil, fmt.Errorf("no message retrieved for UID %d", uid)
	}

	result := &appdomain.MailMessage{
		ID:         id,
		ReceivedAt: msg.InternalDate,
	}
	if msg.Envelope != nil {
		result.Subject = msg.Envelope.Subject
	}

	if r := msg.GetBody(section); r != nil {
		result.Body = extractBodyText(r)
	}

	return result, nil
}

// Close logs out from the IMAP server
func (c *Client) Close() error {
	return c.cl.Logout()
}

func (c *Client) applyDeadline(ctx context.Context) {
	if deadline, ok := ctx.Deadline(); ok {
		c.cl.Timeout = time.Until(deadline)
	}
}

type envelopeInfo struct {
	uid     uint32
	subject string
}

func (c *Client) fetchEnvelopes(uids []uint32) ([]envelopeInfo, error) {
	seqSet := new(imap.SeqSet)
	seqSet.AddNum(uids...)

	items := []imap.FetchItem{imap.FetchEnvelope, imap.FetchUid}

	messages := make(chan *imap.Message, len(uids))
	done := make(chan error, 1)
	go func() {
		done <- c.cl.UidFetch(seqSet, items, messages)
	}()

	var envelopes []envelopeInfo
	for msg := range messages {
		if msg.Envelope == nil {
			continue
		}
		envelopes = append(envelopes, envelopeInfo{uid: msg.Uid, subject: msg.Envelope.Subject})
	}
	if err := <-done; err != nil {
		return nil, fmt.Errorf("error fetching envelopes: %w", err)
	}
	return envelopes, nil
}

// extractBodyText parses a raw RFC 2822 message and returns its text. A
// text/plain part takes precedence over text/html.
func extractBodyText(r io.Reader) string {
	mr, err := mail.CreateReader(r)
	if err != nil {
		log.Printf("[IMAP] Failed to parse message body: %v", err)
		return ""
	}
	defer mr.Close()

	var plain, html string
	for {
		p, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			break
		}

		h, ok := p.Header.(*mail.InlineHeader)
		if !ok {
			continue
		}
		contentType, _, err := h.ContentType()
		if err != nil {
			continue
		}

		body, err := io.ReadAll(p.Body)
		if err != nil {
			continue
		}

		switch {
		case strings.HasPrefix(contentType, "text/plain") && plain == "":
			plain = string(body)
		case strings.HasPrefix(contentType, "text/html") && html == "":
			html = string(body)
		}
	}

	if plain != "" {
		return plain
	}
	return html
}

// valueOperators are Gmail operators whose value is not subject text, so the
// whole token is dropped rather than reduced to a keyword
var valueOperators = map[string]bool{
	"newer_than": true,
	"older_than": true,
	"before":     true,
	"after":      true,
	"in":         true,
	"is":         true,
	"has":        true,
	"from":       true,
	"to":         true,
	"cc":         true,
	"bcc":        true,
	"label":      true,
	"category":   true,
	"filename":   true,
	"larger":     true,
	"smaller":    true,
}

// parseQueryKeywords reduces a Gmail-style search query to bare keywords.
// Value operators like "newer_than:7d" and connectives are dropped; for text
// operators like "subject:(application" the keyword after the colon is kept.
func parseQueryKeywords(query string) []string {
	var keywords []string
	for _, token := range strings.Fields(query) {
		token = strings.Trim(token, "(){}\"")
		if idx := strings.LastIndex(token, ":"); idx >= 0 {
			if valueOperators[strings.ToLower(token[:idx])] {
				continue
			}
			token = strings.Trim(token[idx+1:], "(){}\"")
		}
		if token == "" {
			continue
		}
		switch strings.ToUpper(token) {
		case "OR", "AND", "NOT":
			continue
		}
		keywords = append(keywords, strings.ToLower(token))
	}
	return keywords
}

func matchesKeywords(subject string, keywords []string) bool {
	if len(keywords) == 0 {
		return true
	}
	subject = strings.ToLower(subject)
	for _, kw := range keywords {
		if strings.Contains(subject, kw) {
			return true
		}
	}
	return false
}
