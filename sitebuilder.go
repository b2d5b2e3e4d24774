package sitebuilder

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"github.com/goliatone/go-sitebuilder/internal/commands"
	sitecmd "github.com/goliatone/go-sitebuilder/internal/commands/site"
	"github.com/goliatone/go-sitebuilder/internal/domain"
	"github.com/goliatone/go-sitebuilder/internal/lifecycle"
	"github.com/goliatone/go-sitebuilder/internal/logging"
	"github.com/goliatone/go-sitebuilder/internal/logging/gologger"
	"github.com/goliatone/go-sitebuilder/internal/provision"
	"github.com/goliatone/go-sitebuilder/internal/remote"
	"github.com/goliatone/go-sitebuilder/internal/render"
	"github.com/goliatone/go-sitebuilder/internal/theme"
	"github.com/goliatone/go-sitebuilder/pkg/interfaces"
	"github.com/goliatone/go-sitebuilder/siteconfig"
)

// LifecycleManager exports the draft lifecycle contract for consumers.
type LifecycleManager = lifecycle.Manager

// LifecycleSnapshot exports the observer snapshot DTO.
type LifecycleSnapshot = lifecycle.Snapshot

// LocalCache exports the local draft cache contract.
type LocalCache = lifecycle.LocalCache

// CacheRecord exports the local draft cache record.
type CacheRecord = lifecycle.CacheRecord

// ProvisionMachine exports the provisioning state machine.
type ProvisionMachine = provision.Machine

// ProvisionState exports the provisioning state DTO.
type ProvisionState = provision.State

// RemoteStore exports the remote persistence contract.
type RemoteStore = remote.Store

// DraftPayload exports the remote persistence envelope.
type DraftPayload = remote.DraftPayload

// SiteVersion exports the version history DTO.
type SiteVersion = remote.Version

// RenderPipeline exports the config-to-presentation pipeline.
type RenderPipeline = render.Pipeline

// RenderResult exports the full render pass output.
type RenderResult = render.Result

// RenderedSection exports the per-section render output.
type RenderedSection = render.RenderedSection

// EvalContext exports the render evaluation context.
type EvalContext = render.EvalContext

// Surface selects the render consumer.
type Surface = render.Surface

const (
	SurfaceEditor    = render.SurfaceEditor
	SurfacePublished = render.SurfacePublished
)

// ProvisionStatus exports the hosting allocation lifecycle status.
type ProvisionStatus = domain.ProvisionStatus

// PublishStatus exports the derived publish presentation status.
type PublishStatus = domain.PublishStatus

const (
	ProvisionNotProvisioned = domain.ProvisionNotProvisioned
	ProvisionProvisioning   = domain.ProvisionProvisioning
	ProvisionProvisioned    = domain.ProvisionProvisioned
	ProvisionError          = domain.ProvisionError

	PublishNotProvisioned = domain.PublishNotProvisioned
	PublishProvisioning   = domain.PublishProvisioning
	PublishProvisioned    = domain.PublishProvisioned
	PublishPublishing     = domain.PublishPublishing
	PublishLive           = domain.PublishLive
	PublishError          = domain.PublishError
)

// ProvisionSiteCommand exports the provisioning command message.
type ProvisionSiteCommand = sitecmd.ProvisionSiteCommand

// PublishSiteCommand exports the publish command message.
type PublishSiteCommand = sitecmd.PublishSiteCommand

// RestoreVersionCommand exports the restore command message.
type RestoreVersionCommand = sitecmd.RestoreVersionCommand

// Module is the top level site builder runtime facade for one business.
type Module struct {
	cfg      Config
	provider interfaces.LoggerProvider

	db       *bun.DB
	store    remote.Store
	cache    lifecycle.LocalCache
	manager  *lifecycle.Manager
	machine  *provision.Machine
	resolver *theme.Resolver
	pipeline *render.Pipeline
}

// Option overrides module wiring, primarily for tests and embedding hosts.
type Option func(*Module)

// WithRemoteStore replaces the HTTP-backed remote store.
func WithRemoteStore(store remote.Store) Option {
	return func(m *Module) {
		if store != nil {
			m.store = store
		}
	}
}

// WithLocalCache replaces the configured local cache.
func WithLocalCache(cache lifecycle.LocalCache) Option {
	return func(m *Module) {
		if cache != nil {
			m.cache = cache
		}
	}
}

// WithLoggerProvider replaces the configured logger provider.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(m *Module) {
		if provider != nil {
			m.provider = provider
		}
	}
}

// New constructs a site builder module using the provided configuration.
func New(cfg Config, opts ...Option) (*Module, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	m := &Module{cfg: cfg}
	for _, opt := range opts {
		opt(m)
	}

	if m.provider == nil && cfg.Logging.Enabled {
		provider, err := buildLoggerProvider(cfg.Logging)
		if err != nil {
			return nil, err
		}
		m.provider = provider
	}

	if m.store == nil {
		httpOpts := []remote.HTTPOption{
			remote.WithHTTPLogger(logging.RemoteLogger(m.provider)),
		}
		if cfg.Remote.Token != "" {
			httpOpts = append(httpOpts, remote.WithToken(cfg.Remote.Token))
		}
		if cfg.Remote.Timeout > 0 {
			httpOpts = append(httpOpts, remote.WithHTTPClient(&http.Client{Timeout: cfg.Remote.Timeout}))
		}
		m.store = remote.NewHTTPStore(cfg.Remote.BaseURL, httpOpts...)
	}

	if m.cache == nil {
		cache, db, err := buildLocalCache(cfg.Cache)
		if err != nil {
			return nil, err
		}
		m.cache = cache
		m.db = db
	}

	m.manager = lifecycle.NewManager(cfg.BusinessID, m.store, m.cache,
		lifecycle.WithDebounce(cfg.Autosave.Debounce),
		lifecycle.WithLogger(logging.LifecycleLogger(m.provider)),
	)
	m.machine = provision.NewMachine(cfg.BusinessID, m.store, m.manager,
		provision.WithPollInterval(cfg.Provision.PollInterval),
		provision.WithMaxPollAttempts(cfg.Provision.MaxPollAttempts),
		provision.WithApexDomain(cfg.Provision.ApexDomain),
		provision.WithLogger(logging.ProvisionLogger(m.provider)),
	)
	m.resolver = theme.NewResolver(
		theme.WithTokenSource(theme.NewTokenSource(cfg.Tokens.ManifestPath)),
		theme.WithLogger(logging.ThemeLogger(m.provider)),
	)
	m.pipeline = render.New(
		render.WithResolver(m.resolver),
		render.WithLogger(logging.RenderLogger(m.provider)),
	)
	return m, nil
}

// Lifecycle returns the draft lifecycle manager.
func (m *Module) Lifecycle() *LifecycleManager {
	return m.manager
}

// Provision returns the provisioning state machine.
func (m *Module) Provision() *ProvisionMachine {
	return m.machine
}

// Pipeline returns the render pipeline.
func (m *Module) Pipeline() *RenderPipeline {
	return m.pipeline
}

// Render produces the presentation form of cfg for the given context.
func (m *Module) Render(cfg siteconfig.SiteConfig, ectx EvalContext) RenderResult {
	return m.pipeline.Render(cfg, ectx)
}

// RenderDraft renders the effective editor config: the active preview overlay
// when one is set, the working draft otherwise.
func (m *Module) RenderDraft(ectx EvalContext) (RenderResult, bool) {
	cfg := m.manager.EffectiveConfig()
	if cfg == nil {
		return RenderResult{}, false
	}
	return m.pipeline.Render(*cfg, ectx), true
}

// Store returns the remote store the module was wired with.
func (m *Module) Store() RemoteStore {
	return m.store
}

// Cache returns the local draft cache.
func (m *Module) Cache() LocalCache {
	return m.cache
}

// ProvisionSiteHandler returns a command handler bound to this module.
func (m *Module) ProvisionSiteHandler() *sitecmd.ProvisionSiteHandler {
	return sitecmd.NewProvisionSiteHandler(m.machine, commands.CommandLogger(m.provider, "site"))
}

// PublishSiteHandler returns a command handler bound to this module.
func (m *Module) PublishSiteHandler() *sitecmd.PublishSiteHandler {
	return sitecmd.NewPublishSiteHandler(m.machine, commands.CommandLogger(m.provider, "site"))
}

// RestoreVersionHandler returns a command handler bound to this module.
func (m *Module) RestoreVersionHandler() *sitecmd.RestoreVersionHandler {
	return sitecmd.NewRestoreVersionHandler(m.manager, commands.CommandLogger(m.provider, "site"))
}

// Close releases the module: the poll loop stops, pending autosaves flush,
// and the embedded database (when configured) closes.
func (m *Module) Close(ctx context.Context) error {
	m.machine.Close()
	err := m.manager.Close(ctx)
	if m.db != nil {
		if closeErr := m.db.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}
	return err
}

func buildLoggerProvider(cfg LoggingConfig) (interfaces.LoggerProvider, error) {
	format := cfg.Format
	if strings.EqualFold(strings.TrimSpace(cfg.Provider), "console") && format == "" {
		format = "console"
	}
	return gologger.NewProvider(gologger.Config{
		Level:     cfg.Level,
		Format:    format,
		AddSource: cfg.AddSource,
		Focus:     cfg.Focus,
	})
}

func buildLocalCache(cfg CacheConfig) (lifecycle.LocalCache, *bun.DB, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Driver)) {
	case "", "memory":
		return lifecycle.NewMemoryCache(), nil, nil
	case "sqlite":
		sqlDB, err := sql.Open("sqlite3", cfg.DSN)
		if err != nil {
			return nil, nil, fmt.Errorf("sitebuilder: open cache database: %w", err)
		}
		bunDB := bun.NewDB(sqlDB, sqlitedialect.New())
		if _, err := bunDB.NewCreateTable().
			Model((*lifecycle.CacheRecord)(nil)).
			IfNotExists().
			Exec(context.Background()); err != nil {
			_ = bunDB.Close()
			return nil, nil, fmt.Errorf("sitebuilder: prepare cache table: %w", err)
		}
		return lifecycle.NewBunCache(bunDB), bunDB, nil
	default:
		return nil, nil, fmt.Errorf("%w: %s", ErrCacheDriverUnknown, cfg.Driver)
	}
}
