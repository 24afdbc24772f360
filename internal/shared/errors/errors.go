package errors

import "errors"

var (
	ErrNoAccounts       = errors.New("no account configurations found: set ACCOUNT_1_BOT_TOKEN, ACCOUNT_1_SOURCE_CHAT_ID, ACCOUNT_1_DESTINATION_CHAT_ID")
	ErrAccountNotFound  = errors.New("account not found")
	ErrUnknownCommand   = errors.New("unknown command")
	ErrMissingAccountID = errors.New("account id required")
	ErrBadSyntax        = errors.New("malformed command")
	ErrUnknownKey       = errors.New("unknown key")
	ErrInvalidValue     = errors.New("invalid value")
)
