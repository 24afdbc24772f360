package telegram

import (
	"context"
	"log/slog"

	"github.com/go-telegram/bot"
	"github.com/samber/oops"

	"github.com/reshetovitsme/photo-relay-bot/internal/modules/account/registry"
	"github.com/reshetovitsme/photo-relay-bot/internal/modules/admin"
	"github.com/reshetovitsme/photo-relay-bot/internal/modules/forward"
	"github.com/reshetovitsme/photo-relay-bot/internal/shared/config"
)

// Relay owns one Telegram bot per account. Each bot gets its own processor
// bound to its account; the first bot additionally answers the shared admin
// channel.
type Relay struct {
	cfg       *config.Config
	registry  *registry.Registry
	router    *admin.Router
	extractor forward.Extractor
	bots      []*bot.Bot
}

func NewRelay(cfg *config.Config, reg *registry.Registry, router *admin.Router) *Relay {
	return &Relay{cfg: cfg, registry: reg, router: router}
}

// SetExtractor wires an optional geolocation extractor shared by all accounts
// that have geo stamping enabled.
func (r *Relay) SetExtractor(e forward.Extractor) {
	r.extractor = e
}

// Start creates and launches one bot per account. Update delivery begins
// immediately; per-account serialization is enforced by the registry lock, not
// by the bots.
func (r *Relay) Start(ctx context.Context) error {
	for i, account := range r.registry.Accounts() {
		client := &Client{}
		processor := forward.NewProcessor(account, r.registry, client,
			r.cfg.ThrottleMinSeconds, r.cfg.ThrottleMaxSeconds)
		if account.GeoStamp && r.extractor != nil {
			processor.SetExtractor(r.extractor)
		}

		handler := NewUpdateHandler(account, client, processor, r.router, i == 0)
		b, err := bot.New(account.BotToken,
			bot.WithDefaultHandler(handler),
			bot.WithServerURL(r.cfg.TelegramAPIURL),
		)
		if err != nil {
			return oops.With("account_id", account.ID).Wrapf(err, "failed to create telegram bot")
		}
		client.SetBot(b)
		r.bots = append(r.bots, b)

		slog.Info("Account configured",
			"account_id", account.ID,
			"source_chat_id", account.SourceChatID,
			"destination_chat_id", account.DestinationChatID,
			"geo_stamp", account.GeoStamp)
	}

	for _, b := range r.bots {
		go b.Start(ctx)
	}
	slog.Info("Relay started", "accounts", len(r.bots))
	return nil
}

// Stop closes all bot sessions.
func (r *Relay) Stop(ctx context.Context) {
	for _, b := range r.bots {
		b.Close(ctx)
	}
}
