package forward

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/samber/oops"

	"github.com/reshetovitsme/photo-relay-bot/internal/modules/account/domain"
	"github.com/reshetovitsme/photo-relay-bot/internal/modules/account/registry"
	"github.com/reshetovitsme/photo-relay-bot/internal/modules/caption"
	"github.com/reshetovitsme/photo-relay-bot/internal/modules/geo"
)

const dateLayout = "2006-01-02"

// Transport is the outbound send capability of the chat client.
type Transport interface {
	SendPhoto(ctx context.Context, chatID int64, mediaRef, caption string) error
}

// Extractor reads geolocation data off a photo. Optional; only consulted for
// accounts with geo stamping enabled.
type Extractor interface {
	Extract(ctx context.Context, mediaRef string) (geo.Extraction, error)
}

// Processor handles one account's inbound photo stream. All state access
// happens inside the registry's per-account lock, so photo handling and admin
// commands for the same account never interleave.
type Processor struct {
	account   *domain.Account
	registry  *registry.Registry
	transport Transport
	extractor Extractor

	now      func() time.Time
	throttle func() time.Duration
}

func NewProcessor(account *domain.Account, reg *registry.Registry, transport Transport, throttleMin, throttleMax int) *Processor {
	return &Processor{
		account:   account,
		registry:  reg,
		transport: transport,
		now:       time.Now,
		throttle: func() time.Duration {
			return time.Duration(throttleMin+rand.IntN(throttleMax-throttleMin+1)) * time.Second
		},
	}
}

// SetExtractor wires the geolocation extractor for this account.
func (p *Processor) SetExtractor(e Extractor) {
	p.extractor = e
}

// HandlePhoto runs one inbound photo through the account's critical section:
// drop if stopped, lazy daily rollover, caption render from a counter
// snapshot, send, counter bump on success only, then the throttle delay. The
// delay stays inside the lock so a burst for one account cannot bypass it.
func (p *Processor) HandlePhoto(ctx context.Context, event domain.PhotoEvent) error {
	return p.registry.WithState(p.account.ID, func(state *domain.State) error {
		if !state.IsActive {
			slog.Debug("Account stopped, dropping photo",
				"account_id", p.account.ID, "message_id", event.MessageID)
			return nil
		}

		// The first photo ever seen records the date without resetting, so
		// the configured initial daily counter survives until a real
		// date change.
		today := p.now().Format(dateLayout)
		if state.LastProcessedDate == "" {
			state.LastProcessedDate = today
		} else if state.LastProcessedDate != today {
			state.DailyCounter = 1
			state.LastProcessedDate = today
		}

		daily := state.DailyCounter
		history := state.HistoryCounter
		fields := state.Fields

		text, err := p.renderCaption(ctx, event, fields, daily, history)
		if err != nil {
			// Dropped before any send attempt; counters untouched.
			return err
		}

		if err := p.transport.SendPhoto(ctx, p.account.DestinationChatID, event.MediaRef, text); err != nil {
			p.wait()
			return oops.
				With("account_id", p.account.ID).
				With("message_id", event.MessageID).
				Wrapf(err, "send failed")
		}

		state.DailyCounter++
		state.HistoryCounter++
		slog.Info("Photo forwarded",
			"account_id", p.account.ID, "daily", daily, "history", history)

		p.wait()
		return nil
	})
}

func (p *Processor) renderCaption(ctx context.Context, event domain.PhotoEvent, fields domain.TemplateFields, daily, history int) (string, error) {
	if !p.account.GeoStamp || p.extractor == nil {
		return caption.Render(fields, daily, history), nil
	}

	extraction, err := p.extractor.Extract(ctx, event.MediaRef)
	if err != nil {
		return "", oops.
			With("account_id", p.account.ID).
			With("message_id", event.MessageID).
			Wrapf(err, "extraction failed")
	}
	lat, err := geo.ParseDMS(extraction.Lat, geo.Latitude)
	if err != nil {
		return "", oops.With("account_id", p.account.ID).Wrap(err)
	}
	lon, err := geo.ParseDMS(extraction.Lon, geo.Longitude)
	if err != nil {
		return "", oops.With("account_id", p.account.ID).Wrap(err)
	}
	// An extracted date overrides the caption's date for this photo only.
	if extraction.Date != "" {
		fields.Date = extraction.Date
	}
	return caption.WithGPS(caption.Render(fields, daily, history), lat, lon), nil
}

// wait applies the bounded random outbound throttle. It runs after any send
// attempt, success or failure, and is not cancellable.
func (p *Processor) wait() {
	if delay := p.throttle(); delay > 0 {
		time.Sleep(delay)
	}
}
