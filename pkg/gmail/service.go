package gmail

import (
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"strings"
	"time"

	appdomain "jobdeck-backend/internal/application/domain"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

// TokenUpdateFunc is a callback function that handles token updates
type TokenUpdateFunc = appdomain.TokenUpdateFunc

// Service creates per-user Gmail clients from the app's OAuth credentials
type Service struct {
	clientID     string
	clientSecret string
}

type notifyTokenSource struct {
	src      oauth2.TokenSource
	current  *oauth2.Token
	callback TokenUpdateFunc
}

func (s *notifyTokenSource) Token() (*oauth2.Token, error) {
	t, err := s.src.Token()
	if err != nil {
		return nil, err
	}
	if s.callback != nil && s.current.AccessToken != t.AccessToken {
		s.current = t
		if err := s.callback(t); err != nil {
			log.Printf("[Gmail] Failed to persist refreshed token: %v", err)
		}
	}
	return t, nil
}

func NewService(clientID, clientSecret string) *Service {
	return &Service{
		clientID:     clientID,
		clientSecret: clientSecret,
	}
}

// Client is a Gmail mailbox bound to one user's tokens
type Client struct {
	srv *gmail.Service
}

// ClientFor builds a mailbox client from the user's stored grant. Refreshed
// tokens are persisted through onTokenRefresh.
func (s *Service) ClientFor(ctx context.Context, accessToken, refreshToken string, onTokenRefresh TokenUpdateFunc) (*Client, error) {
	token := &oauth2.Token{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
	}

	// Only force refresh if we have a refresh token
	if refreshToken != "" {
		token.Expiry = time.Now()
	}

	config := &oauth2.Config{
		ClientID:     s.clientID,
		ClientSecret: s.clientSecret,
		Endpoint:     google.Endpoint,
	}

	tokenSource := config.TokenSource(ctx, token)

	// Wrap token source to detect refreshes
	wrappedSource := &notifyTokenSource{
		src:      tokenSource,
		current:  token,
		callback: onTokenRefresh,
	}

	client := oauth2.NewClient(ctx, wrappedSource)

	srv, err := gmail.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("unable to create Gmail service: %v", err)
	}

	return &Client{srv: srv}, nil
}

// ListMessageIDs returns the IDs of messages matching the query. Only the
// first page is read; the recency window in the query bounds the volume.
func (c *Client) ListMessageIDs(ctx context.Context, query string, maxResults int64) ([]string, error) {
	if maxResults <= 0 || maxResults > 500 {
		maxResults = 100
	}

	resp, err := c.srv.Users.Messages.List("me").
		Q(query).
		MaxResults(maxResults).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("unable to list messages: %v", err)
	}

	ids := make([]string, 0, len(resp.Messages))
	for _, msg := range resp.Messages {
		ids = append(ids, msg.Id)
	}
	return ids, nil
}

// GetMessage fetches one message in full format and decodes its subject,
// body text and internal timestamp
func (c *Client) GetMessage(ctx context.Context, id string) (*appdomain.MailMessage, error) {
	msg, err := c.srv.Users.Messages.Get("me", id).Format("full").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve message: %v", err)
	}

	return convertMessage(msg), nil
}

// Watch sets up push notifications for the user's mailbox
func (c *Client) Watch(ctx context.Context, topicName string) error {
	// Stop any existing watch first to avoid the "only one user push
	// notification client allowed" error
	_ = c.srv.Users.Stop("me").Context(ctx).Do()

	req := &gmail.WatchRequest{
		TopicName: topicName,
		LabelIds:  []string{"INBOX"},
	}

	resp, err := c.srv.Users.Watch("me", req).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("unable to watch mailbox: %v", err)
	}
	log.Printf("[Gmail] Watch started. Expiration: %d, HistoryId: %d", resp.Expiration, resp.HistoryId)

	return nil
}

// Close satisfies the mailbox client contract. Gmail connections are plain
// HTTP, so there is nothing to release.
func (c *Client) Close() error {
	return nil
}

// Stop stops push notifications for the user's mailbox
func (c *Client) Stop(ctx context.Context) error {
	if err := c.srv.Users.Stop("me").Context(ctx).Do(); err != nil {
		return fmt.Errorf("unable to stop mailbox watch: %v", err)
	}
	return nil
}

// Helper functions

func convertMessage(msg *gmail.Message) *appdomain.MailMessage {
	return &appdomain.MailMessage{
		ID:         msg.Id,
		Subject:    getHeader(msg.Payload.Headers, "Subject"),
		Body:       getBodyText(msg.Payload),
		ReceivedAt: time.Unix(0, msg.InternalDate*int64(time.Millisecond)),
	}
}

func getHeader(headers []*gmail.MessagePartHeader, name string) string {
	for _, header := range headers {
		if strings.EqualFold(header.Name, name) {
			return header.Value
		}
	}
	return ""
}

// getBodyText returns the decoded message body. A text/plain part takes
// precedence; otherwise the top-level body is used. Returns "" when nothing
// decodes.
func getBodyText(payload *gmail.MessagePart) string {
	if payload == nil {
		return ""
	}

	if plain := findPlainPart(payload.Parts); plain != "" {
		return plain
	}

	if payload.Body != nil && payload.Body.Data != "" {
		if data, err := base64.URLEncoding.DecodeString(payload.Body.Data); err == nil {
			return string(data)
		}
	}

	return ""
}

func findPlainPart(parts []*gmail.MessagePart) string {
	for _, part := range parts {
		if part.MimeType == "text/plain" && part.Body != nil && part.Body.Data != "" {
			if data, err := base64.URLEncoding.DecodeString(part.Body.Data); err == nil {
				return string(data)
			}
		}
		if len(part.Parts) > 0 {
			if nested := findPlainPart(part.Parts); nested != "" {
				return nested
			}
		}
	}
	return ""
}
