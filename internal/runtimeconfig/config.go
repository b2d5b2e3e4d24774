package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrBusinessIDRequired      = errors.New("sitebuilder config: business id is required")
	ErrDebounceInvalid         = errors.New("sitebuilder config: autosave debounce must be positive")
	ErrPollIntervalInvalid     = errors.New("sitebuilder config: provision poll interval must be positive")
	ErrPollAttemptsInvalid     = errors.New("sitebuilder config: provision poll attempt cap must be positive")
	ErrCacheDriverUnknown      = errors.New("sitebuilder config: cache driver is invalid")
	ErrCacheDSNRequired        = errors.New("sitebuilder config: cache dsn is required for the sqlite driver")
	ErrRemoteBaseURLRequired   = errors.New("sitebuilder config: remote base url is required")
	ErrRemoteTimeoutInvalid    = errors.New("sitebuilder config: remote timeout must be zero or positive")
	ErrLoggingProviderRequired = errors.New("sitebuilder config: logging provider is required when logging is enabled")
	ErrLoggingProviderUnknown  = errors.New("sitebuilder config: logging provider is invalid")
	ErrLoggingLevelInvalid     = errors.New("sitebuilder config: logging level is invalid")
	ErrLoggingFormatInvalid    = errors.New("sitebuilder config: logging format is invalid")
)

// Config aggregates adapter bindings and tunables for the site builder
// module. Fields use simple types so host applications can map them from
// their own configuration systems.
type Config struct {
	BusinessID string
	Autosave   AutosaveConfig
	Provision  ProvisionConfig
	Cache      CacheConfig
	Remote     RemoteConfig
	Tokens     TokensConfig
	Logging    LoggingConfig
}

// AutosaveConfig tunes the debounced dual-write autosave.
type AutosaveConfig struct {
	Debounce time.Duration
}

// ProvisionConfig tunes the provisioning status poll loop.
type ProvisionConfig struct {
	PollInterval    time.Duration
	MaxPollAttempts int
	// ApexDomain is an optional custom domain forwarded with provision
	// requests.
	ApexDomain string
}

// CacheConfig selects the local draft cache backend.
type CacheConfig struct {
	// Driver is "memory" or "sqlite".
	Driver string
	DSN    string
}

// RemoteConfig points the module at the backing site service.
type RemoteConfig struct {
	BaseURL string
	Token   string
	Timeout time.Duration
}

// TokensConfig locates the design token manifest feeding theme defaults. The
// manifest names the theme it registers.
type TokensConfig struct {
	ManifestPath string
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Enabled   bool
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// DefaultConfig returns opinionated defaults for an editor session.
func DefaultConfig() Config {
	return Config{
		Autosave: AutosaveConfig{
			Debounce: 2 * time.Second,
		},
		Provision: ProvisionConfig{
			PollInterval:    10 * time.Second,
			MaxPollAttempts: 30,
		},
		Cache: CacheConfig{
			Driver: "memory",
		},
		Remote: RemoteConfig{
			Timeout: 15 * time.Second,
		},
		Tokens: TokensConfig{},
		Logging: LoggingConfig{
			Enabled:  true,
			Provider: "console",
			Level:    "info",
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.BusinessID) == "" {
		return ErrBusinessIDRequired
	}
	if cfg.Autosave.Debounce <= 0 {
		return ErrDebounceInvalid
	}
	if cfg.Provision.PollInterval <= 0 {
		return ErrPollIntervalInvalid
	}
	if cfg.Provision.MaxPollAttempts <= 0 {
		return ErrPollAttemptsInvalid
	}
	switch driver := normalize(cfg.Cache.Driver); driver {
	case "memory":
	case "sqlite":
		if strings.TrimSpace(cfg.Cache.DSN) == "" {
			return ErrCacheDSNRequired
		}
	default:
		return fmt.Errorf("%w: %s", ErrCacheDriverUnknown, driver)
	}
	if strings.TrimSpace(cfg.Remote.BaseURL) == "" {
		return ErrRemoteBaseURLRequired
	}
	if cfg.Remote.Timeout < 0 {
		return ErrRemoteTimeoutInvalid
	}
	if cfg.Logging.Enabled {
		provider := normalize(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedProvider(provider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if provider == "gologger" {
			if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
				return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
			}
		}
	}
	return nil
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
