// Package config loads bot settings from a TOML file, a .env file and the
// environment, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/eliseohh/demobot/internal/keychain"
	"github.com/eliseohh/demobot/internal/outbox"
)

const DefaultPath = "demobot.toml"

// ErrNoToken means no bot token was found in any source.
var ErrNoToken = errors.New("no bot token: set TELEGRAM_TOKEN, add token to the config file, or run `demobot token set`")

type Config struct {
	Token        string        `toml:"token"`
	Language     string        `toml:"language"`
	LogLevel     string        `toml:"log_level"`
	PollTimeout  time.Duration `toml:"poll_timeout"`
	AllowedChats []int64       `toml:"allowed_chats"`

	// APIURL overrides the Bot API endpoint, e.g. for a local Bot API server.
	APIURL string `toml:"api_url"`

	Journal JournalConfig `toml:"journal"`
	Tap     TapConfig     `toml:"tap"`
	Outbox  OutboxConfig  `toml:"outbox"`
}

type JournalConfig struct {
	Path string `toml:"path"`
}

type TapConfig struct {
	Addr string `toml:"addr"`
}

type OutboxConfig struct {
	URL   string `toml:"url"`
	Queue string `toml:"queue"`
}

func Default() *Config {
	return &Config{
		Language:    "en",
		LogLevel:    "info",
		PollTimeout: 10 * time.Second,
		Outbox:      OutboxConfig{Queue: outbox.DefaultQueue},
	}
}

// Load reads .env (if present), then path, then environment overrides.
// A missing file is an error only when explicit is true.
func Load(path string, explicit bool) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return load(path, explicit, os.Getenv)
}

func load(path string, explicit bool, getenv func(string) string) (*Config, error) {
	cfg := Default()

	if path != "" {
		md, err := toml.DecodeFile(path, cfg)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			if explicit {
				return nil, fmt.Errorf("config file %s not found", path)
			}
		case err != nil:
			return nil, fmt.Errorf("parse %s: %w", path, err)
		default:
			if undecoded := md.Undecoded(); len(undecoded) > 0 {
				keys := make([]string, len(undecoded))
				for i, k := range undecoded {
					keys[i] = k.String()
				}
				sort.Strings(keys)
				return nil, fmt.Errorf("unknown keys in %s: %s", path, strings.Join(keys, ", "))
			}
		}
	}

	if err := cfg.applyEnv(getenv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(getenv func(string) string) error {
	set := func(key string, dst *string) {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			*dst = v
		}
	}
	set("TELEGRAM_TOKEN", &c.Token)
	set("BOT_LANGUAGE", &c.Language)
	set("BOT_LOG_LEVEL", &c.LogLevel)
	set("BOT_API_URL", &c.APIURL)
	set("BOT_JOURNAL", &c.Journal.Path)
	set("BOT_TAP_ADDR", &c.Tap.Addr)
	set("BOT_OUTBOX_URL", &c.Outbox.URL)
	set("BOT_OUTBOX_QUEUE", &c.Outbox.Queue)

	if v := strings.TrimSpace(getenv("BOT_POLL_TIMEOUT")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("BOT_POLL_TIMEOUT: %w", err)
		}
		c.PollTimeout = d
	}

	if v := strings.TrimSpace(getenv("BOT_ALLOWED_CHATS")); v != "" {
		var chats []int64
		for _, f := range strings.Split(v, ",") {
			id, err := strconv.ParseInt(strings.TrimSpace(f), 10, 64)
			if err != nil {
				return fmt.Errorf("BOT_ALLOWED_CHATS: invalid chat id %q", f)
			}
			chats = append(chats, id)
		}
		c.AllowedChats = chats
	}
	return nil
}

func (c *Config) Validate() error {
	if c.PollTimeout <= 0 {
		return fmt.Errorf("poll_timeout must be positive, got %s", c.PollTimeout)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	if c.Outbox.URL != "" && c.Outbox.Queue == "" {
		return errors.New("outbox.queue is required when outbox.url is set")
	}
	return nil
}

// Level parses LogLevel.
func (c *Config) Level() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("log_level: %w", err)
	}
	return lvl, nil
}

// ResolveToken returns the configured token, falling back to the keychain.
func (c *Config) ResolveToken() (string, error) {
	return c.resolveToken(keychain.Get)
}

func (c *Config) resolveToken(lookup func(account string) (string, error)) (string, error) {
	if c.Token != "" {
		return c.Token, nil
	}
	tok, err := lookup(keychain.TokenAccount)
	switch {
	case errors.Is(err, keychain.ErrNotFound):
		return "", ErrNoToken
	case err != nil:
		return "", fmt.Errorf("read token from keychain: %w", err)
	case tok == "":
		return "", ErrNoToken
	}
	return tok, nil
}
