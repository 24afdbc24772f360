package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/samber/lo"
	"github.com/samber/oops"

	apperrors "github.com/reshetovitsme/photo-relay-bot/internal/shared/errors"
)

//go:generate go run github.com/abice/go-enum --file=$GOFILE --names --nocase

// AppEnv represents the application environment
// ENUM(local,production,development,testing)
type AppEnv string

// AccountSlot is one numbered account configuration record. Slots are probed
// from 1 upward; the first slot missing a required key terminates discovery.
type AccountSlot struct {
	ID                int
	BotToken          string
	SourceChatID      int64
	DestinationChatID int64
	AdminChatID       int64
	Date              string
	StaffName         string
	PhotoLocation     string
	StartDailyNum     int
	StartHistoryNum   int
	GeoStamp          bool
}

type Config struct {
	TelegramAPIURL     string `koanf:"telegram_api_url"`
	HTTPPort           string `koanf:"http_port"`
	AdminChatID        int64  `koanf:"admin_chat_id"`
	ThrottleMinSeconds int    `koanf:"throttle_min_seconds"`
	ThrottleMaxSeconds int    `koanf:"throttle_max_seconds"`
	AppEnv             AppEnv `koanf:"app_env"`

	Accounts []AccountSlot `koanf:"-"`
}

func Load() (*Config, error) {
	k := koanf.New(".")

	// Try to load config file from various formats
	configFiles := []string{
		"config.yaml",
		"config.yml",
		"config.json",
		"config.toml",
	}

	// Use lo.Find to find the first existing config file
	configFile, found := lo.Find(configFiles, func(file string) bool {
		_, err := os.Stat(file)
		return err == nil
	})

	if found {
		var parser koanf.Parser
		ext := filepath.Ext(configFile)

		switch ext {
		case ".yaml", ".yml":
			parser = yaml.Parser()
		case ".json":
			parser = json.Parser()
		case ".toml":
			parser = toml.Parser()
		default:
			return nil, oops.Errorf("unsupported config file extension: %s", ext)
		}

		if err := k.Load(file.Provider(configFile), parser); err != nil {
			return nil, oops.With("config_file", configFile).Wrap(err)
		}
	}

	// Load environment variables (they override config file values)
	// Convert ACCOUNT_1_BOT_TOKEN -> account_1_bot_token
	if err := k.Load(env.Provider("", ".", func(s string) string {
		return strings.ToLower(s)
	}), nil); err != nil {
		return nil, oops.With("context", "loading environment variables").Wrap(err)
	}

	// Set defaults
	if !k.Exists("telegram_api_url") {
		k.Set("telegram_api_url", "https://api.telegram.org")
	}
	if !k.Exists("http_port") {
		k.Set("http_port", "8080")
	}
	if !k.Exists("throttle_min_seconds") {
		k.Set("throttle_min_seconds", 15)
	}
	if !k.Exists("throttle_max_seconds") {
		k.Set("throttle_max_seconds", 20)
	}
	if !k.Exists("app_env") {
		k.Set("app_env", "production")
	}

	// Unmarshal into struct
	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, oops.With("context", "unmarshaling config").Wrap(err)
	}

	// Parse AppEnv from string if needed
	if appEnvStr := k.String("app_env"); appEnvStr != "" {
		if env, err := ParseAppEnv(appEnvStr); err == nil {
			cfg.AppEnv = env
		} else {
			cfg.AppEnv = AppEnvProduction
		}
	} else {
		cfg.AppEnv = AppEnvProduction
	}

	cfg.Accounts = probeAccounts(k)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// probeAccounts enumerates numbered account slots. A slot is usable only if
// all three required keys are present; the first incomplete slot ends the
// scan, so the account count is implied by the configuration itself.
func probeAccounts(k *koanf.Koanf) []AccountSlot {
	var slots []AccountSlot
	for n := 1; ; n++ {
		prefix := fmt.Sprintf("account_%d_", n)

		token := k.String(prefix + "bot_token")
		source := k.Int64(prefix + "source_chat_id")
		dest := k.Int64(prefix + "destination_chat_id")
		if token == "" || source == 0 || dest == 0 {
			break
		}

		slot := AccountSlot{
			ID:                n,
			BotToken:          token,
			SourceChatID:      source,
			DestinationChatID: dest,
			AdminChatID:       k.Int64(prefix + "admin_chat_id"),
			Date:              k.String(prefix + "date"),
			StaffName:         k.String(prefix + "staff_name"),
			PhotoLocation:     k.String(prefix + "photo_location"),
			StartDailyNum:     1,
			StartHistoryNum:   1,
			GeoStamp:          k.Bool(prefix + "geo_stamp"),
		}
		if k.Exists(prefix + "start_daily_num") {
			slot.StartDailyNum = k.Int(prefix + "start_daily_num")
		}
		if k.Exists(prefix + "start_history_num") {
			slot.StartHistoryNum = k.Int(prefix + "start_history_num")
		}

		slots = append(slots, slot)
	}
	return slots
}

func (c *Config) validate() error {
	if len(c.Accounts) == 0 {
		return apperrors.ErrNoAccounts
	}
	if c.ThrottleMinSeconds < 1 || c.ThrottleMaxSeconds < c.ThrottleMinSeconds {
		return oops.
			With("throttle_min_seconds", c.ThrottleMinSeconds).
			With("throttle_max_seconds", c.ThrottleMaxSeconds).
			Errorf("invalid throttle bounds")
	}
	for _, slot := range c.Accounts {
		if slot.StartDailyNum < 1 || slot.StartHistoryNum < 1 {
			return oops.With("account_id", slot.ID).Errorf("start counters must be >= 1")
		}
	}
	return nil
}
