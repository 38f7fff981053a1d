package cli

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"time"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/acceptor/pkg/domain"
	"github.com/aretw0/acceptor/pkg/persistence/middleware"
)

// DefaultConfigFile is read from the working directory when --config is not set.
const DefaultConfigFile = "acceptor.yaml"

// DefaultTimeout bounds a single check.
const DefaultTimeout = 3 * time.Second

// Config is the content of acceptor.yaml. JSON files are accepted too.
type Config struct {
	// Timeout bounds each check. Zero disables the bound.
	Timeout time.Duration `yaml:"timeout"`
	// Ignore lists the input symbols skipped silently. Unset keeps the
	// default (newline); an empty list ignores nothing.
	Ignore  []string      `yaml:"ignore"`
	Redis   RedisConfig   `yaml:"redis"`
	History HistoryConfig `yaml:"history"`
	Log     LogConfig     `yaml:"log"`
}

// RedisConfig enables the Redis result history when Addr is set.
type RedisConfig struct {
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	Prefix   string        `yaml:"prefix"`
	TTL      time.Duration `yaml:"ttl"`
}

// HistoryConfig bounds the result history.
type HistoryConfig struct {
	// Limit is the number of records kept per machine. Zero keeps everything.
	Limit int `yaml:"limit"`
	// Redact lists regular expressions masked out of stored inputs.
	Redact []string `yaml:"redact"`
	// Key is a hex encoded AES-256 key sealing stored inputs. OldKeys are
	// still accepted for reading.
	Key     string   `yaml:"key"`
	OldKeys []string `yaml:"old_keys"`
}

// Middlewares builds the store middlewares for the history settings.
// Redaction runs before encryption.
func (h HistoryConfig) Middlewares() ([]middleware.Middleware, error) {
	var mws []middleware.Middleware
	if len(h.Redact) > 0 {
		mw, err := middleware.NewRedactMiddleware(h.Redact)
		if err != nil {
			return nil, err
		}
		mws = append(mws, mw)
	}
	if h.Key != "" {
		active, err := decodeKey("history.key", h.Key)
		if err != nil {
			return nil, err
		}
		cfg := middleware.EncryptionConfig{ActiveKey: active}
		for i, k := range h.OldKeys {
			old, err := decodeKey(fmt.Sprintf("history.old_keys[%d]", i), k)
			if err != nil {
				return nil, err
			}
			cfg.FallbackKeys = append(cfg.FallbackKeys, old)
		}
		mw, err := middleware.NewEncryptionMiddleware(cfg)
		if err != nil {
			return nil, err
		}
		mws = append(mws, mw)
	}
	return mws, nil
}

func decodeKey(field, s string) ([]byte, error) {
	key, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", field, err)
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("%s: want 32 bytes, got %d", field, len(key))
	}
	return key, nil
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() Config {
	return Config{
		Timeout: DefaultTimeout,
		History: HistoryConfig{Limit: 100},
		Log:     LogConfig{Level: "info"},
	}
}

// LoadConfig reads path over the defaults. A missing file is not an error
// when path is the default file name.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	explicit := path != ""
	if !explicit {
		path = DefaultConfigFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	// JSON is a subset of YAML, so one decoder serves both.
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks values the decoder cannot.
func (c Config) Validate() error {
	var errs []error
	if c.Timeout < 0 {
		errs = append(errs, errors.New("timeout must not be negative"))
	}
	for i, s := range c.Ignore {
		if utf8.RuneCountInString(s) != 1 {
			errs = append(errs, fmt.Errorf("ignore[%d]: %q is not a single symbol", i, s))
		}
	}
	if c.History.Limit < 0 {
		errs = append(errs, errors.New("history.limit must not be negative"))
	}
	if _, err := c.History.Middlewares(); err != nil {
		errs = append(errs, err)
	}
	if c.Redis.TTL < 0 {
		errs = append(errs, errors.New("redis.ttl must not be negative"))
	}
	return errors.Join(errs...)
}

// IgnoredSymbols converts Ignore. The boolean is false when Ignore is unset.
func (c Config) IgnoredSymbols() ([]domain.Symbol, bool) {
	if c.Ignore == nil {
		return nil, false
	}
	out := make([]domain.Symbol, 0, len(c.Ignore))
	for _, s := range c.Ignore {
		r, _ := utf8.DecodeRuneInString(s)
		out = append(out, domain.Symbol(r))
	}
	return out, true
}
