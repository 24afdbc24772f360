package registry

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reshetovitsme/photo-relay-bot/internal/modules/account/domain"
	"github.com/reshetovitsme/photo-relay-bot/internal/shared/config"
	apperrors "github.com/reshetovitsme/photo-relay-bot/internal/shared/errors"
)

func testConfig() *config.Config {
	return &config.Config{
		Accounts: []config.AccountSlot{
			{
				ID: 1, BotToken: "t1", SourceChatID: 101, DestinationChatID: 201,
				AdminChatID: 301, Date: "2026-08-29", StaffName: "Ann",
				PhotoLocation: "Haikou", StartDailyNum: 3, StartHistoryNum: 40,
			},
			{
				ID: 2, BotToken: "t2", SourceChatID: 102, DestinationChatID: 202,
				StartDailyNum: 1, StartHistoryNum: 1, GeoStamp: true,
			},
		},
	}
}

func TestNewSeedsStateFromSlots(t *testing.T) {
	reg := New(testConfig())

	state, err := reg.Snapshot(1)
	require.NoError(t, err)
	assert.True(t, state.IsActive)
	assert.Equal(t, 3, state.DailyCounter)
	assert.Equal(t, 40, state.HistoryCounter)
	assert.Equal(t, "Ann", state.Fields.StaffName)
	assert.Equal(t, "2026-08-29", state.Fields.Date)
	assert.Equal(t, "Haikou", state.Fields.PhotoLocation)
	assert.Empty(t, state.LastProcessedDate)
}

func TestAccountLookup(t *testing.T) {
	reg := New(testConfig())

	account, ok := reg.Account(2)
	require.True(t, ok)
	assert.Equal(t, int64(102), account.SourceChatID)
	assert.True(t, account.GeoStamp)

	_, ok = reg.Account(7)
	assert.False(t, ok)
}

func TestAccountsReturnsSlotOrder(t *testing.T) {
	reg := New(testConfig())

	accounts := reg.Accounts()
	require.Len(t, accounts, 2)
	assert.Equal(t, 1, accounts[0].ID)
	assert.Equal(t, 2, accounts[1].ID)
}

func TestWithStateUnknownAccount(t *testing.T) {
	reg := New(testConfig())

	err := reg.WithState(99, func(*domain.State) error { return nil })
	require.ErrorIs(t, err, apperrors.ErrAccountNotFound)
}

func TestByAdminChat(t *testing.T) {
	reg := New(testConfig())

	account, ok := reg.ByAdminChat(301)
	require.True(t, ok)
	assert.Equal(t, 1, account.ID)

	_, ok = reg.ByAdminChat(999)
	assert.False(t, ok)
}

func TestWithStateSerializesAccess(t *testing.T) {
	reg := New(testConfig())

	const workers = 8
	const perWorker = 200

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range perWorker {
				_ = reg.WithState(1, func(state *domain.State) error {
					state.HistoryCounter++
					return nil
				})
			}
		}()
	}
	wg.Wait()

	state, err := reg.Snapshot(1)
	require.NoError(t, err)
	assert.Equal(t, 40+workers*perWorker, state.HistoryCounter)
}
