package admin

import (
	"strconv"
	"strings"

	"github.com/samber/oops"

	apperrors "github.com/reshetovitsme/photo-relay-bot/internal/shared/errors"
)

// Verb is the recognized admin command verb.
type Verb int

const (
	VerbStart Verb = iota
	VerbStop
	VerbSet
	VerbStatus
)

// Recognized /set keys.
const (
	KeyStaffName       = "STAFF_NAME"
	KeyDate            = "DATE"
	KeyPhotoLocation   = "PHOTO_LOCATION"
	KeyStartDailyNum   = "START_DAILY_NUM"
	KeyStartHistoryNum = "START_HISTORY_NUM"
)

var validKeys = map[string]bool{
	KeyStaffName:       true,
	KeyDate:            true,
	KeyPhotoLocation:   true,
	KeyStartDailyNum:   true,
	KeyStartHistoryNum: true,
}

// Command is one parsed admin instruction. AccountID is 0 when the command
// carried no explicit account token.
type Command struct {
	Verb      Verb
	AccountID int
	Key       string
	Value     string
}

// Parse tokenizes one admin text line into a typed Command. Verbs and keys are
// case-insensitive; the /set value is everything after the first "=", verbatim.
func Parse(text string) (Command, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" || !strings.HasPrefix(trimmed, "/") {
		return Command{}, oops.With("text", text).Wrap(apperrors.ErrUnknownCommand)
	}

	verbToken := trimmed
	rest := ""
	if i := strings.IndexAny(trimmed, " \t"); i >= 0 {
		verbToken = trimmed[:i]
		rest = strings.TrimSpace(trimmed[i:])
	}
	// Telegram appends the bot username in groups: /start@SomeBot
	verbToken, _, _ = strings.Cut(strings.ToLower(verbToken), "@")

	var cmd Command
	switch verbToken {
	case "/start":
		cmd.Verb = VerbStart
	case "/stop":
		cmd.Verb = VerbStop
	case "/set":
		cmd.Verb = VerbSet
	case "/status":
		cmd.Verb = VerbStatus
	default:
		return Command{}, oops.With("verb", verbToken).Wrap(apperrors.ErrUnknownCommand)
	}

	// Optional leading account id token.
	if rest != "" {
		tok := rest
		if i := strings.IndexAny(rest, " \t"); i >= 0 {
			tok = rest[:i]
		}
		if id, err := strconv.Atoi(tok); err == nil && id > 0 {
			cmd.AccountID = id
			rest = strings.TrimSpace(rest[len(tok):])
		}
	}

	if cmd.Verb != VerbSet {
		if rest != "" {
			return Command{}, oops.With("text", text).Wrap(apperrors.ErrBadSyntax)
		}
		return cmd, nil
	}

	key, value, found := strings.Cut(rest, "=")
	key = strings.ToUpper(strings.TrimSpace(key))
	if !found || key == "" {
		return Command{}, oops.With("text", text).Wrap(apperrors.ErrBadSyntax)
	}
	if !validKeys[key] {
		return Command{}, oops.With("key", key).Wrap(apperrors.ErrUnknownKey)
	}
	cmd.Key = key
	cmd.Value = value
	return cmd, nil
}
