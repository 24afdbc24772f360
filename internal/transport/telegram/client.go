package telegram

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// Client adapts one account's bot.Bot to the send capabilities the processor
// and router consume.
type Client struct {
	bot *bot.Bot
}

// SetBot attaches the bot once it has been constructed. The bot needs its
// update handler at creation time and the handler needs the client, hence the
// two-phase wiring.
func (c *Client) SetBot(b *bot.Bot) {
	c.bot = b
}

func (c *Client) SendPhoto(ctx context.Context, chatID int64, mediaRef, caption string) error {
	_, err := c.bot.SendPhoto(ctx, &bot.SendPhotoParams{
		ChatID:  chatID,
		Photo:   &models.InputFileString{Data: mediaRef},
		Caption: caption,
	})
	return err
}

func (c *Client) ReplyText(ctx context.Context, chatID int64, text string) error {
	_, err := c.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
	return err
}
