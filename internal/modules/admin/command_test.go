package admin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/reshetovitsme/photo-relay-bot/internal/shared/errors"
)

func TestParseStartStop(t *testing.T) {
	cmd, err := Parse("/start")
	require.NoError(t, err)
	assert.Equal(t, VerbStart, cmd.Verb)
	assert.Equal(t, 0, cmd.AccountID)

	cmd, err = Parse("/stop 2")
	require.NoError(t, err)
	assert.Equal(t, VerbStop, cmd.Verb)
	assert.Equal(t, 2, cmd.AccountID)
}

func TestParseCaseInsensitiveVerb(t *testing.T) {
	cmd, err := Parse("/STOP 3")
	require.NoError(t, err)
	assert.Equal(t, VerbStop, cmd.Verb)
	assert.Equal(t, 3, cmd.AccountID)
}

func TestParseSurroundingWhitespace(t *testing.T) {
	cmd, err := Parse("   /start 1   ")
	require.NoError(t, err)
	assert.Equal(t, VerbStart, cmd.Verb)
	assert.Equal(t, 1, cmd.AccountID)
}

func TestParseBotNameSuffix(t *testing.T) {
	cmd, err := Parse("/start@SomeRelayBot")
	require.NoError(t, err)
	assert.Equal(t, VerbStart, cmd.Verb)
}

func TestParseSet(t *testing.T) {
	cmd, err := Parse("/set 1 STAFF_NAME=Acme")
	require.NoError(t, err)
	assert.Equal(t, VerbSet, cmd.Verb)
	assert.Equal(t, 1, cmd.AccountID)
	assert.Equal(t, KeyStaffName, cmd.Key)
	assert.Equal(t, "Acme", cmd.Value)
}

func TestParseSetKeyCaseInsensitive(t *testing.T) {
	cmd, err := Parse("/set staff_name=Acme")
	require.NoError(t, err)
	assert.Equal(t, KeyStaffName, cmd.Key)
	assert.Equal(t, "Acme", cmd.Value)
}

func TestParseSetValueVerbatim(t *testing.T) {
	cmd, err := Parse("/set STAFF_NAME=John Smith")
	require.NoError(t, err)
	assert.Equal(t, "John Smith", cmd.Value)

	// Only the first "=" splits key from value.
	cmd, err = Parse("/set PHOTO_LOCATION=a=b")
	require.NoError(t, err)
	assert.Equal(t, KeyPhotoLocation, cmd.Key)
	assert.Equal(t, "a=b", cmd.Value)
}

func TestParseSetMissingEquals(t *testing.T) {
	_, err := Parse("/set STAFF_NAME")
	require.ErrorIs(t, err, apperrors.ErrBadSyntax)
}

func TestParseSetUnknownKey(t *testing.T) {
	_, err := Parse("/set FAVORITE_COLOR=blue")
	require.ErrorIs(t, err, apperrors.ErrUnknownKey)
}

func TestParseSetMissingAssignment(t *testing.T) {
	_, err := Parse("/set 2")
	require.ErrorIs(t, err, apperrors.ErrBadSyntax)
}

func TestParseUnknownCommand(t *testing.T) {
	_, err := Parse("/frobnicate")
	require.ErrorIs(t, err, apperrors.ErrUnknownCommand)

	_, err = Parse("hello there")
	require.ErrorIs(t, err, apperrors.ErrUnknownCommand)

	_, err = Parse("")
	require.ErrorIs(t, err, apperrors.ErrUnknownCommand)
}

func TestParseTrailingJunk(t *testing.T) {
	_, err := Parse("/start 1 now")
	require.ErrorIs(t, err, apperrors.ErrBadSyntax)
}

func TestParseStatus(t *testing.T) {
	cmd, err := Parse("/status 4")
	require.NoError(t, err)
	assert.Equal(t, VerbStatus, cmd.Verb)
	assert.Equal(t, 4, cmd.AccountID)
}
