package telegram

import (
	"context"
	"log/slog"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/reshetovitsme/photo-relay-bot/internal/modules/account/domain"
	"github.com/reshetovitsme/photo-relay-bot/internal/modules/admin"
	"github.com/reshetovitsme/photo-relay-bot/internal/modules/forward"
)

// NewUpdateHandler builds the default update handler for one account's bot.
// The account binding is explicit so no handler captures mutable state from an
// enclosing scope. sharedAdmin marks the single bot that answers commands on
// the shared admin channel; without it every bot in that channel would reply.
func NewUpdateHandler(account *domain.Account, client *Client, processor *forward.Processor, router *admin.Router, sharedAdmin bool) bot.HandlerFunc {
	return func(ctx context.Context, b *bot.Bot, update *models.Update) {
		msg := update.Message
		if update.ChannelPost != nil {
			msg = update.ChannelPost
		}
		if msg == nil {
			return
		}

		chatID := msg.Chat.ID
		switch {
		case chatID == account.SourceChatID:
			if len(msg.Photo) == 0 {
				return
			}
			// Largest photo size is last.
			photo := msg.Photo[len(msg.Photo)-1]
			event := domain.PhotoEvent{MediaRef: photo.FileID, MessageID: msg.ID}
			if err := processor.HandlePhoto(ctx, event); err != nil {
				slog.Error("Photo processing failed",
					"account_id", account.ID, "message_id", msg.ID, "error", err)
			}
		case msg.Text != "" && (account.IsAdminChat(chatID) || (sharedAdmin && router.IsSharedAdminChat(chatID))):
			router.HandleText(ctx, client, chatID, msg.Text)
		}
	}
}
