package gmail

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"google.golang.org/api/gmail/v1"
)

func enc(s string) string {
	return base64.URLEncoding.EncodeToString([]byte(s))
}

func TestGetBodyText_PlainPartPreferred(t *testing.T) {
	payload := &gmail.MessagePart{
		MimeType: "multipart/alternative",
		Body:     &gmail.MessagePartBody{Data: enc("top level")},
		Parts: []*gmail.MessagePart{
			{MimeType: "text/html", Body: &gmail.MessagePartBody{Data: enc("<p>html</p>")}},
			{MimeType: "text/plain", Body: &gmail.MessagePartBody{Data: enc("plain text wins")}},
		},
	}

	assert.Equal(t, "plain text wins", getBodyText(payload))
}

func TestGetBodyText_FallsBackToTopLevelBody(t *testing.T) {
	payload := &gmail.MessagePart{
		MimeType: "text/html",
		Body:     &gmail.MessagePartBody{Data: enc("<p>only html</p>")},
	}

	assert.Equal(t, "<p>only html</p>", getBodyText(payload))
}

func TestGetBodyText_NestedPlainPart(t *testing.T) {
	payload := &gmail.MessagePart{
		MimeType: "multipart/mixed",
		Parts: []*gmail.MessagePart{
			{
				MimeType: "multipart/alternative",
				Parts: []*gmail.MessagePart{
					{MimeType: "text/plain", Body: &gmail.MessagePartBody{Data: enc("nested plain")}},
					{MimeType: "text/html", Body: &gmail.MessagePartBody{Data: enc("<p>nested html</p>")}},
				},
			},
		},
	}

	assert.Equal(t, "nested plain", getBodyText(payload))
}

func TestGetBodyText_Empty(t *testing.T) {
	assert.Equal(t, "", getBodyText(nil))
	assert.Equal(t, "", getBodyText(&gmail.MessagePart{MimeType: "text/plain"}))
}

func TestConvertMessage(t *testing.T) {
	msg := &gmail.Message{
		Id:           "msg-1",
		InternalDate: 1717000000000,
		Payload: &gmail.MessagePart{
			Headers: []*gmail.MessagePartHeader{
				{Name: "From", Value: "hr@acme.com"},
				{Name: "subject", Value: "Interview invite"},
			},
			Body: &gmail.MessagePartBody{Data: enc("We would like to invite you")},
		},
	}

	got := convertMessage(msg)
	assert.Equal(t, "msg-1", got.ID)
	// header lookup is case insensitive
	assert.Equal(t, "Interview invite", got.Subject)
	assert.Equal(t, "We would like to invite you", got.Body)
	assert.Equal(t, time.UnixMilli(1717000000000), got.ReceivedAt)
}
