// Package line wraps the LINE Messaging API client used for webhook
// parsing and outbound messages.
package line

import (
	"context"
	"fmt"
	"net/http"

	"github.com/line/line-bot-sdk-go/v7/linebot"
)

type Client struct {
	bot *linebot.Client
}

func NewClient(channelSecret, channelToken string) (*Client, error) {
	b, err := linebot.New(channelSecret, channelToken)
	if err != nil {
		return nil, fmt.Errorf("create linebot client: %w", err)
	}
	return &Client{bot: b}, nil
}

// ParseRequest verifies the X-Line-Signature header against the raw body
// and decodes the webhook events. Returns linebot.ErrInvalidSignature on
// a signature mismatch.
func (c *Client) ParseRequest(r *http.Request) ([]*linebot.Event, error) {
	return c.bot.ParseRequest(r)
}

// Reply sends one text message back to the inbound conversation. The
// reply token is single-use: at most one reply per inbound event.
func (c *Client) Reply(ctx context.Context, replyToken, text string) error {
	_, err := c.bot.ReplyMessage(replyToken, linebot.NewTextMessage(text)).WithContext(ctx).Do()
	if err != nil {
		return fmt.Errorf("reply message: %w", err)
	}
	return nil
}

// Push proactively sends a text message to the given recipient.
func (c *Client) Push(ctx context.Context, to, text string) error {
	_, err := c.bot.PushMessage(to, linebot.NewTextMessage(text)).WithContext(ctx).Do()
	if err != nil {
		return fmt.Errorf("push message: %w", err)
	}
	return nil
}
