package sitebuilder

import "github.com/goliatone/go-sitebuilder/internal/runtimeconfig"

var (
	ErrBusinessIDRequired      = runtimeconfig.ErrBusinessIDRequired
	ErrDebounceInvalid         = runtimeconfig.ErrDebounceInvalid
	ErrPollIntervalInvalid     = runtimeconfig.ErrPollIntervalInvalid
	ErrPollAttemptsInvalid     = runtimeconfig.ErrPollAttemptsInvalid
	ErrCacheDriverUnknown      = runtimeconfig.ErrCacheDriverUnknown
	ErrCacheDSNRequired        = runtimeconfig.ErrCacheDSNRequired
	ErrRemoteBaseURLRequired   = runtimeconfig.ErrRemoteBaseURLRequired
	ErrRemoteTimeoutInvalid    = runtimeconfig.ErrRemoteTimeoutInvalid
	ErrLoggingProviderRequired = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown  = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid     = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid    = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config          = runtimeconfig.Config
	AutosaveConfig  = runtimeconfig.AutosaveConfig
	ProvisionConfig = runtimeconfig.ProvisionConfig
	CacheConfig     = runtimeconfig.CacheConfig
	RemoteConfig    = runtimeconfig.RemoteConfig
	TokensConfig    = runtimeconfig.TokensConfig
	LoggingConfig   = runtimeconfig.LoggingConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
