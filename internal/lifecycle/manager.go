package lifecycle

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"time"

	"github.com/goliatone/go-sitebuilder/internal/logging"
	"github.com/goliatone/go-sitebuilder/internal/remote"
	"github.com/goliatone/go-sitebuilder/internal/scheduler"
	"github.com/goliatone/go-sitebuilder/pkg/interfaces"
	"github.com/goliatone/go-sitebuilder/siteconfig"
)

// DefaultDebounce is the autosave quiet window: edits within it collapse into
// a single remote write.
const DefaultDebounce = 2 * time.Second

var (
	ErrClosed  = errors.New("lifecycle: manager closed")
	ErrNoDraft = errors.New("lifecycle: no draft loaded")
)

// Snapshot is an immutable view of the editing state handed to observers.
type Snapshot struct {
	BusinessID       string
	Slug             string
	Draft            *siteconfig.SiteConfig
	Published        *siteconfig.SiteConfig
	Previewing       bool
	PreviewVersionID string
}

// Manager owns the draft lifecycle for one business: local-first hydration,
// debounced dual-write autosave, and version preview/restore. All exported
// methods are safe for concurrent use.
type Manager struct {
	mu sync.Mutex

	businessID string
	store      remote.Store
	cache      LocalCache
	sched      interfaces.TaskScheduler
	debounce   time.Duration
	logger     interfaces.Logger
	now        func() time.Time

	draft     *siteconfig.SiteConfig
	published *siteconfig.SiteConfig
	slug      string

	// skipNextAutosave suppresses exactly one autosave flush. Set by restore:
	// the server already holds the reverted draft, so echoing it back would
	// mint a redundant version.
	skipNextAutosave bool

	preview          *siteconfig.SiteConfig
	previewVersionID string

	observers  map[int]func(Snapshot)
	observerID int
	closed     bool
}

// Option configures a Manager.
type Option func(*Manager)

// WithScheduler overrides the task scheduler. Tests install a manual
// scheduler to step the debounce window deterministically.
func WithScheduler(sched interfaces.TaskScheduler) Option {
	return func(m *Manager) {
		if sched != nil {
			m.sched = sched
		}
	}
}

// WithDebounce overrides the autosave quiet window.
func WithDebounce(debounce time.Duration) Option {
	return func(m *Manager) {
		if debounce > 0 {
			m.debounce = debounce
		}
	}
}

// WithLogger installs the diagnostics logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithNow overrides the clock used for cache timestamps.
func WithNow(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// NewManager constructs a lifecycle manager for one business.
func NewManager(businessID string, store remote.Store, cache LocalCache, opts ...Option) *Manager {
	m := &Manager{
		businessID: businessID,
		store:      store,
		cache:      cache,
		sched:      scheduler.NewTimerScheduler(),
		debounce:   DefaultDebounce,
		logger:     logging.NoOp(),
		now:        time.Now,
		observers:  make(map[int]func(Snapshot)),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Manager) autosaveKey() string {
	return "autosave:" + m.businessID
}

// Hydrate loads editing state local-first: the cached record is adopted
// immediately so the editor never waits on the network, then the remote draft
// is fetched and adopted only when it does not regress the local one. Remote
// failure degrades to whatever the cache held.
func (m *Manager) Hydrate(ctx context.Context) error {
	record, err := m.cache.Get(ctx, m.businessID)
	if err != nil && !errors.Is(err, ErrCacheMiss) {
		m.logger.Warn("local cache read failed", "business_id", m.businessID, "error", err)
		record = nil
	}

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return ErrClosed
	}
	if record != nil {
		m.draft = record.Draft
		m.published = record.Published
		m.slug = record.Slug
		m.skipNextAutosave = record.RevertPending
	}
	m.mu.Unlock()

	payload, err := m.store.GetDraft(ctx, m.businessID)
	if err != nil {
		if errors.Is(err, remote.ErrDraftNotFound) {
			m.notify()
			return nil
		}
		m.logger.Warn("remote hydration failed, using cached draft",
			"business_id", m.businessID, "error", err)
		m.notify()
		return nil
	}

	m.mu.Lock()
	if payload.Slug != "" {
		m.slug = payload.Slug
	}
	if payload.Published != nil {
		m.published = payload.Published
	}
	// The server copy wins whenever it is reachable, but an empty remote
	// draft never replaces local content; the last-known-good draft stays.
	if payload.Draft != nil && len(payload.Draft.Sections) > 0 {
		m.draft = payload.Draft
	} else if payload.Draft != nil {
		m.logger.Warn("ignoring empty remote draft", "business_id", m.businessID)
	}
	m.mu.Unlock()

	if err := m.persistLocal(ctx); err != nil {
		m.logger.Warn("local cache write failed", "business_id", m.businessID, "error", err)
	}
	m.notify()
	return nil
}

// Draft returns a copy of the working draft, or nil when none is loaded.
func (m *Manager) Draft() *siteconfig.SiteConfig {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.draft.Clone()
}

// Published returns a copy of the last published config.
func (m *Manager) Published() *siteconfig.SiteConfig {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.published.Clone()
}

// Slug returns the current site slug.
func (m *Manager) Slug() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slug
}

// SetDraft replaces the working draft. The local cache is written
// synchronously; the remote write is debounced, so a burst of edits collapses
// into one save. A remote failure never loses work: the local copy is already
// durable and the next edit retries.
func (m *Manager) SetDraft(ctx context.Context, cfg *siteconfig.SiteConfig) error {
	if cfg == nil {
		return ErrNoDraft
	}

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return ErrClosed
	}
	m.draft = cfg.Clone()
	m.mu.Unlock()

	if err := m.persistLocal(ctx); err != nil {
		return err
	}
	m.sched.Schedule(m.autosaveKey(), m.debounce, m.flushAutosave)
	m.notify()
	return nil
}

// SetSlug updates the site slug after validating its shape. Like draft edits
// the slug write is locally durable immediately and debounced remotely.
func (m *Manager) SetSlug(ctx context.Context, slug string) error {
	if err := siteconfig.ValidateSiteSlug(slug); err != nil {
		return err
	}

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return ErrClosed
	}
	m.slug = slug
	m.mu.Unlock()

	if err := m.persistLocal(ctx); err != nil {
		return err
	}
	m.sched.Schedule(m.autosaveKey(), m.debounce, m.flushAutosave)
	m.notify()
	return nil
}

func (m *Manager) flushAutosave() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := m.Flush(ctx); err != nil {
		m.logger.Warn("autosave flush failed, local copy retained",
			"business_id", m.businessID, "error", err)
	}
}

// Flush performs the pending remote write immediately, cancelling the
// debounce timer. A restore-suppressed flush consumes the suppression and
// writes nothing.
func (m *Manager) Flush(ctx context.Context) error {
	m.sched.Cancel(m.autosaveKey())

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return ErrClosed
	}
	if m.skipNextAutosave {
		m.skipNextAutosave = false
		m.mu.Unlock()
		m.logger.Debug("autosave suppressed after restore", "business_id", m.businessID)
		return m.persistLocal(ctx)
	}
	payload := remote.DraftPayload{
		Slug:  m.slug,
		Draft: m.draft.Clone(),
	}
	m.mu.Unlock()

	if payload.Draft == nil {
		return nil
	}
	return m.store.SaveDraft(ctx, m.businessID, payload)
}

// StartPreview overlays a historical version for read-only viewing. The
// working draft is untouched; render consumers read EffectiveConfig.
func (m *Manager) StartPreview(ctx context.Context, versionID string) error {
	cfg, err := m.store.VersionContent(ctx, m.businessID, versionID)
	if err != nil {
		return err
	}

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return ErrClosed
	}
	m.preview = cfg
	m.previewVersionID = versionID
	m.mu.Unlock()

	m.notify()
	return nil
}

// StopPreview drops the preview overlay, returning to the working draft.
func (m *Manager) StopPreview() {
	m.mu.Lock()
	m.preview = nil
	m.previewVersionID = ""
	m.mu.Unlock()
	m.notify()
}

// Previewing reports whether a version overlay is active and which one.
func (m *Manager) Previewing() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.previewVersionID, m.preview != nil
}

// EffectiveConfig returns the config render consumers should show: the
// preview overlay when active, the working draft otherwise.
func (m *Manager) EffectiveConfig() *siteconfig.SiteConfig {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.preview != nil {
		return m.preview.Clone()
	}
	return m.draft.Clone()
}

// RestoreVersion makes a historical version the working draft. The server
// performs the revert, so the returned draft is already persisted remotely;
// the local adoption schedules the usual autosave and arms the one-shot
// suppression so that autosave writes nothing.
func (m *Manager) RestoreVersion(ctx context.Context, versionID string) error {
	cfg, err := m.store.RevertVersion(ctx, m.businessID, versionID)
	if err != nil {
		return err
	}

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return ErrClosed
	}
	m.skipNextAutosave = true
	m.draft = cfg.Clone()
	m.preview = nil
	m.previewVersionID = ""
	m.mu.Unlock()

	if err := m.persistLocal(ctx); err != nil {
		return err
	}
	m.sched.Schedule(m.autosaveKey(), m.debounce, m.flushAutosave)
	m.notify()
	return nil
}

// ListVersions returns the saved version history, newest first.
func (m *Manager) ListVersions(ctx context.Context) ([]remote.Version, error) {
	return m.store.ListVersions(ctx, m.businessID)
}

// HasUnpublishedChanges reports whether the working draft differs from the
// last published config.
func (m *Manager) HasUnpublishedChanges() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.draft == nil {
		return false
	}
	if m.published == nil {
		return true
	}
	return !reflect.DeepEqual(m.draft, m.published)
}

// MarkPublished records that the current draft is now live.
func (m *Manager) MarkPublished(ctx context.Context) error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return ErrClosed
	}
	if m.draft == nil {
		m.mu.Unlock()
		return ErrNoDraft
	}
	m.published = m.draft.Clone()
	m.mu.Unlock()

	if err := m.persistLocal(ctx); err != nil {
		return err
	}
	m.notify()
	return nil
}

// Subscribe registers an observer notified after every state change. The
// returned function removes the observer.
func (m *Manager) Subscribe(fn func(Snapshot)) func() {
	if fn == nil {
		return func() {}
	}
	m.mu.Lock()
	m.observerID++
	id := m.observerID
	m.observers[id] = fn
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		delete(m.observers, id)
		m.mu.Unlock()
	}
}

// Snapshot returns the current editing state.
func (m *Manager) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

// Close cancels pending autosaves and rejects further mutation. A pending
// debounced write is flushed first so closing cannot drop an edit.
func (m *Manager) Close(ctx context.Context) error {
	var flushErr error
	if m.sched.Pending(m.autosaveKey()) {
		flushErr = m.Flush(ctx)
	}

	m.mu.Lock()
	m.closed = true
	m.observers = make(map[int]func(Snapshot))
	m.mu.Unlock()

	m.sched.Cancel(m.autosaveKey())
	return flushErr
}

func (m *Manager) snapshotLocked() Snapshot {
	return Snapshot{
		BusinessID:       m.businessID,
		Slug:             m.slug,
		Draft:            m.draft.Clone(),
		Published:        m.published.Clone(),
		Previewing:       m.preview != nil,
		PreviewVersionID: m.previewVersionID,
	}
}

func (m *Manager) persistLocal(ctx context.Context) error {
	m.mu.Lock()
	record := &CacheRecord{
		BusinessID:    m.businessID,
		Slug:          m.slug,
		Draft:         m.draft.Clone(),
		Published:     m.published.Clone(),
		RevertPending: m.skipNextAutosave,
		UpdatedAt:     m.now(),
	}
	m.mu.Unlock()

	return m.cache.Put(ctx, record)
}

func (m *Manager) notify() {
	m.mu.Lock()
	snapshot := m.snapshotLocked()
	observers := make([]func(Snapshot), 0, len(m.observers))
	for _, fn := range m.observers {
		observers = append(observers, fn)
	}
	m.mu.Unlock()

	for _, fn := range observers {
		fn(snapshot)
	}
}
