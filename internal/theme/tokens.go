package theme

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	gotheme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-sitebuilder/siteconfig"
)

// ManifestLoader resolves a design-token manifest from a theme path.
type ManifestLoader interface {
	Load(themePath string) (*gotheme.Manifest, error)
}

type fsManifestLoader struct{}

func (fsManifestLoader) Load(themePath string) (*gotheme.Manifest, error) {
	cleaned := filepath.Clean(strings.TrimSpace(themePath))
	if cleaned == "" {
		return nil, fmt.Errorf("theme path required")
	}
	return gotheme.LoadDir(os.DirFS(cleaned), ".")
}

// TokenSource supplies the built-in design-token defaults, the lowest layer
// of the presentation variable cascade. Tokens live in a go-theme manifest
// whose variants are keyed by color mode, so light and dark modes can carry
// distinct defaults.
type TokenSource struct {
	registry  *gotheme.MemoryRegistry
	loader    ManifestLoader
	themePath string
	themeName string

	mu     sync.Mutex
	loaded bool
	failed bool
}

// TokenSourceOption configures a TokenSource.
type TokenSourceOption func(*TokenSource)

// WithManifestLoader overrides the filesystem loader (primarily for tests).
func WithManifestLoader(loader ManifestLoader) TokenSourceOption {
	return func(s *TokenSource) {
		if loader != nil {
			s.loader = loader
		}
	}
}

// NewTokenSource builds a token source for the manifest at themePath. An
// empty path yields a source that always returns empty defaults, keeping the
// cascade well defined without a manifest.
func NewTokenSource(themePath string, opts ...TokenSourceOption) *TokenSource {
	s := &TokenSource{
		registry:  gotheme.NewRegistry(),
		loader:    fsManifestLoader{},
		themePath: strings.TrimSpace(themePath),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Defaults returns the token-default variables for the given color mode.
// Failures load-degrade to an empty set; token defaults are an enrichment
// layer, never a requirement.
func (s *TokenSource) Defaults(mode siteconfig.ColorMode) siteconfig.VariableSet {
	if s == nil || s.themePath == "" {
		return siteconfig.VariableSet{}
	}

	if err := s.ensureLoaded(); err != nil {
		return siteconfig.VariableSet{}
	}

	selector := gotheme.Selector{
		Registry:       s.registry,
		DefaultTheme:   s.themeName,
		DefaultVariant: string(siteconfig.ModeLight),
	}

	selection, err := selector.Select(s.themeName, string(mode))
	if err != nil {
		return siteconfig.VariableSet{}
	}

	vars := siteconfig.VariableSet{}
	for key, value := range selection.CSSVariables("sb") {
		vars[normalizeTokenKey(key)] = value
	}
	return vars
}

func (s *TokenSource) ensureLoaded() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loaded {
		return nil
	}
	if s.failed {
		return fmt.Errorf("token manifest previously failed to load")
	}

	manifest, err := s.loader.Load(s.themePath)
	if err != nil {
		s.failed = true
		return fmt.Errorf("load token manifest from %s: %w", s.themePath, err)
	}

	name := strings.TrimSpace(manifest.Name)
	if name == "" {
		name = "defaults"
		normalized := *manifest
		normalized.Name = name
		manifest = &normalized
	}

	if err := s.registry.Register(manifest); err != nil {
		s.failed = true
		return fmt.Errorf("register token manifest: %w", err)
	}

	s.themeName = name
	s.loaded = true
	return nil
}

// normalizeTokenKey guarantees the reserved namespace prefix on token keys so
// manifest authors cannot leak foreign variables into the cascade.
func normalizeTokenKey(key string) string {
	key = strings.TrimSpace(key)
	if strings.HasPrefix(key, "--sb-") {
		return key
	}
	trimmed := strings.TrimLeft(key, "-")
	trimmed = strings.TrimPrefix(trimmed, "sb-")
	return "--sb-" + trimmed
}
