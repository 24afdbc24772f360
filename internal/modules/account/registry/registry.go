package registry

import (
	"sync"

	"github.com/samber/oops"

	"github.com/reshetovitsme/photo-relay-bot/internal/modules/account/domain"
	"github.com/reshetovitsme/photo-relay-bot/internal/shared/config"
	apperrors "github.com/reshetovitsme/photo-relay-bot/internal/shared/errors"
)

type entry struct {
	account *domain.Account
	mu      sync.Mutex
	state   domain.State
}

// Registry owns all account records and their mutable state. State is only
// reachable through WithState, which holds that account's lock for the whole
// callback; the photo processor and the admin router share the same lock, so
// their critical sections for one account never interleave.
type Registry struct {
	entries map[int]*entry
	order   []int
}

// New builds the registry from the discovered account slots.
func New(cfg *config.Config) *Registry {
	r := &Registry{entries: make(map[int]*entry)}
	for _, slot := range cfg.Accounts {
		acc := &domain.Account{
			ID:                slot.ID,
			BotToken:          slot.BotToken,
			SourceChatID:      slot.SourceChatID,
			DestinationChatID: slot.DestinationChatID,
			GeoStamp:          slot.GeoStamp,
		}
		if slot.AdminChatID != 0 {
			acc.AdminChatIDs = append(acc.AdminChatIDs, slot.AdminChatID)
		}
		r.entries[slot.ID] = &entry{
			account: acc,
			state: domain.State{
				IsActive:       true,
				DailyCounter:   slot.StartDailyNum,
				HistoryCounter: slot.StartHistoryNum,
				Fields: domain.TemplateFields{
					Date:          slot.Date,
					StaffName:     slot.StaffName,
					PhotoLocation: slot.PhotoLocation,
				},
			},
		}
		r.order = append(r.order, slot.ID)
	}
	return r
}

// Account returns the immutable account record.
func (r *Registry) Account(id int) (*domain.Account, bool) {
	e, ok := r.entries[id]
	if !ok {
		return nil, false
	}
	return e.account, true
}

// Accounts returns all accounts in slot order.
func (r *Registry) Accounts() []*domain.Account {
	accounts := make([]*domain.Account, 0, len(r.order))
	for _, id := range r.order {
		accounts = append(accounts, r.entries[id].account)
	}
	return accounts
}

// WithState runs fn with exclusive access to the account's state. fn must not
// retain the pointer past its return.
func (r *Registry) WithState(id int, fn func(state *domain.State) error) error {
	e, ok := r.entries[id]
	if !ok {
		return oops.With("account_id", id).Wrap(apperrors.ErrAccountNotFound)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(&e.state)
}

// Snapshot returns a copy of the account's state taken under its lock.
func (r *Registry) Snapshot(id int) (domain.State, error) {
	var snap domain.State
	err := r.WithState(id, func(state *domain.State) error {
		snap = *state
		return nil
	})
	return snap, err
}

// ByAdminChat resolves the account bound to a per-account admin channel.
func (r *Registry) ByAdminChat(chatID int64) (*domain.Account, bool) {
	for _, id := range r.order {
		if r.entries[id].account.IsAdminChat(chatID) {
			return r.entries[id].account, true
		}
	}
	return nil, false
}
