package domain

// Account holds the static routing identity of one forwarding pipeline.
// It is immutable after creation; mutable runtime state lives in State.
type Account struct {
	ID                int     `json:"id"`
	BotToken          string  `json:"-"`
	SourceChatID      int64   `json:"source_chat_id"`
	DestinationChatID int64   `json:"destination_chat_id"`
	AdminChatIDs      []int64 `json:"admin_chat_ids,omitempty"`
	GeoStamp          bool    `json:"geo_stamp,omitempty"`
}

// TemplateFields are the caption metadata fields, mutable via admin commands.
type TemplateFields struct {
	Date          string `json:"date"`
	StaffName     string `json:"staff_name"`
	PhotoLocation string `json:"photo_location"`
}

// State is the mutable per-account record. It is owned by the registry and
// must only be read or written while holding that account's lock.
type State struct {
	IsActive          bool           `json:"is_active"`
	DailyCounter      int            `json:"daily_counter"`
	HistoryCounter    int            `json:"history_counter"`
	LastProcessedDate string         `json:"last_processed_date"` // YYYY-MM-DD
	Fields            TemplateFields `json:"fields"`
}

// PhotoEvent is one inbound photo from an account's source channel.
type PhotoEvent struct {
	MediaRef  string
	MessageID int
}

// IsAdminChat reports whether chatID is one of the account's admin channels.
func (a *Account) IsAdminChat(chatID int64) bool {
	for _, id := range a.AdminChatIDs {
		if id == chatID {
			return true
		}
	}
	return false
}
