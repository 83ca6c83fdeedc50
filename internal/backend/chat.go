package backend

import (
	"context"
	"net/http"
)

type chatEnvelope struct {
	Reply string `json:"reply"`
}

// SendChatMessage relays a support-chat message and returns the bot's reply.
func (c *Client) SendChatMessage(ctx context.Context, message string) (string, error) {
	var out chatEnvelope
	err := c.do(ctx, "send chat message", http.MethodPost, "/chatbot/message", map[string]string{
		"message": message,
	}, &out)
	if err != nil {
		return "", err
	}
	return out.Reply, nil
}
