package admin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/samber/oops"

	"github.com/reshetovitsme/photo-relay-bot/internal/modules/account/domain"
	"github.com/reshetovitsme/photo-relay-bot/internal/modules/account/registry"
	apperrors "github.com/reshetovitsme/photo-relay-bot/internal/shared/errors"
)

const usage = `Commands:
/start [<account_id>] - resume forwarding
/stop [<account_id>] - pause forwarding
/set [<account_id>] <KEY>=<value> - update a field
/status [<account_id>] - show counters

Keys: STAFF_NAME, DATE, PHOTO_LOCATION, START_DAILY_NUM, START_HISTORY_NUM`

// Replier sends the synchronous reply back on the channel a command arrived on.
type Replier interface {
	ReplyText(ctx context.Context, chatID int64, text string) error
}

// Router parses admin text and mutates registry entries under the same
// per-account lock the photo processor uses.
type Router struct {
	registry          *registry.Registry
	sharedAdminChatID int64
}

func NewRouter(reg *registry.Registry, sharedAdminChatID int64) *Router {
	return &Router{registry: reg, sharedAdminChatID: sharedAdminChatID}
}

// IsSharedAdminChat reports whether chatID is the shared admin channel.
func (r *Router) IsSharedAdminChat(chatID int64) bool {
	return r.sharedAdminChatID != 0 && chatID == r.sharedAdminChatID
}

// HandleText applies one admin line and always replies on the origin channel,
// either with a confirmation or with the specific failure reason.
func (r *Router) HandleText(ctx context.Context, replier Replier, originChatID int64, text string) {
	cmd, err := Parse(text)
	if err != nil {
		r.reply(ctx, replier, originChatID, errorReply(err))
		return
	}

	account, err := r.resolve(cmd, originChatID)
	if err != nil {
		r.reply(ctx, replier, originChatID, errorReply(err))
		return
	}

	confirmation, err := r.apply(account.ID, cmd)
	if err != nil {
		r.reply(ctx, replier, originChatID, errorReply(err))
		return
	}
	r.reply(ctx, replier, originChatID, confirmation)
}

// resolve picks the target account: an explicit token always wins, otherwise
// a per-account admin channel implies its bound account. On the shared
// channel a token is mandatory.
func (r *Router) resolve(cmd Command, originChatID int64) (*domain.Account, error) {
	if cmd.AccountID != 0 {
		account, ok := r.registry.Account(cmd.AccountID)
		if !ok {
			return nil, oops.With("account_id", cmd.AccountID).Wrap(apperrors.ErrAccountNotFound)
		}
		return account, nil
	}
	if account, ok := r.registry.ByAdminChat(originChatID); ok {
		return account, nil
	}
	return nil, apperrors.ErrMissingAccountID
}

func (r *Router) apply(accountID int, cmd Command) (string, error) {
	var confirmation string
	err := r.registry.WithState(accountID, func(state *domain.State) error {
		switch cmd.Verb {
		case VerbStart:
			state.IsActive = true
			confirmation = fmt.Sprintf("✅ Account %d started", accountID)
		case VerbStop:
			state.IsActive = false
			confirmation = fmt.Sprintf("✅ Account %d stopped", accountID)
		case VerbStatus:
			status := "stopped"
			if state.IsActive {
				status = "active"
			}
			confirmation = fmt.Sprintf("Account %d: %s, daily %d, history %d",
				accountID, status, state.DailyCounter, state.HistoryCounter)
		case VerbSet:
			if err := applySet(state, cmd); err != nil {
				return err
			}
			confirmation = fmt.Sprintf("✅ %s set to %s for account %d", cmd.Key, cmd.Value, accountID)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return confirmation, nil
}

// applySet mutates exactly one field; a validation failure changes nothing.
func applySet(state *domain.State, cmd Command) error {
	switch cmd.Key {
	case KeyStaffName:
		state.Fields.StaffName = cmd.Value
	case KeyDate:
		state.Fields.Date = cmd.Value
	case KeyPhotoLocation:
		state.Fields.PhotoLocation = cmd.Value
	case KeyStartDailyNum, KeyStartHistoryNum:
		n, err := strconv.Atoi(strings.TrimSpace(cmd.Value))
		if err != nil {
			return oops.With("key", cmd.Key).With("value", cmd.Value).Wrap(apperrors.ErrInvalidValue)
		}
		if cmd.Key == KeyStartDailyNum {
			state.DailyCounter = n
		} else {
			state.HistoryCounter = n
		}
	default:
		return oops.With("key", cmd.Key).Wrap(apperrors.ErrUnknownKey)
	}
	return nil
}

func errorReply(err error) string {
	switch {
	case errors.Is(err, apperrors.ErrUnknownCommand), errors.Is(err, apperrors.ErrBadSyntax):
		return "❌ " + err.Error() + "\n\n" + usage
	case errors.Is(err, apperrors.ErrUnknownKey):
		return "❌ Unknown key. Valid keys: STAFF_NAME, DATE, PHOTO_LOCATION, START_DAILY_NUM, START_HISTORY_NUM"
	case errors.Is(err, apperrors.ErrInvalidValue):
		return "❌ This key expects an integer value"
	case errors.Is(err, apperrors.ErrAccountNotFound):
		return "❌ " + err.Error()
	case errors.Is(err, apperrors.ErrMissingAccountID):
		return "❌ Account id required on the shared admin channel, e.g. /stop 2"
	default:
		return "❌ " + err.Error()
	}
}

func (r *Router) reply(ctx context.Context, replier Replier, chatID int64, text string) {
	if err := replier.ReplyText(ctx, chatID, text); err != nil {
		slog.Error("Failed to send admin reply", "chat_id", chatID, "error", err)
	}
}
