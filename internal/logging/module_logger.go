package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-sitebuilder/pkg/interfaces"
)

const (
	rootModule      = "sitebuilder"
	renderModule    = "sitebuilder.render"
	themeModule     = "sitebuilder.theme"
	variablesModule = "sitebuilder.variables"
	lifecycleModule = "sitebuilder.lifecycle"
	provisionModule = "sitebuilder.provision"
	remoteModule    = "sitebuilder.remote"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The returned logger attaches
// the module identifier as structured context so downstream entries can be
// filtered predictably.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// RenderLogger returns the logger namespace reserved for the render pipeline.
func RenderLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, renderModule)
}

// ThemeLogger returns the logger namespace reserved for theme resolution.
func ThemeLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, themeModule)
}

// VariablesLogger returns the logger namespace reserved for variable mapping.
func VariablesLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, variablesModule)
}

// LifecycleLogger returns the logger namespace reserved for the draft lifecycle.
func LifecycleLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, lifecycleModule)
}

// ProvisionLogger returns the logger namespace reserved for provisioning.
func ProvisionLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, provisionModule)
}

// RemoteLogger returns the logger namespace reserved for the remote store adapter.
func RemoteLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, remoteModule)
}

// SectionLogger annotates a logger with section identity fields. Empty values
// are skipped so callers can pass through whatever they have.
func SectionLogger(logger interfaces.Logger, sectionType, sectionID string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(sectionType); trimmed != "" {
		fields["section_type"] = trimmed
	}
	if trimmed := strings.TrimSpace(sectionID); trimmed != "" {
		fields["section_id"] = trimmed
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that drops every log entry. It satisfies the Logger
// contract so services can safely operate when logging is disabled.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
