package provision

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/goliatone/go-sitebuilder/internal/domain"
	"github.com/goliatone/go-sitebuilder/internal/lifecycle"
	"github.com/goliatone/go-sitebuilder/internal/logging"
	"github.com/goliatone/go-sitebuilder/internal/remote"
	"github.com/goliatone/go-sitebuilder/internal/scheduler"
	"github.com/goliatone/go-sitebuilder/pkg/interfaces"
	"github.com/goliatone/go-sitebuilder/siteconfig"
)

const (
	// DefaultPollInterval is the delay between provisioning status checks.
	DefaultPollInterval = 10 * time.Second
	// DefaultMaxPollAttempts caps the status checks for one provisioning
	// request. Hitting the cap surfaces an error state instead of polling
	// forever.
	DefaultMaxPollAttempts = 30
)

var (
	ErrClosed         = errors.New("provision: machine closed")
	ErrInProgress     = errors.New("provision: provisioning already in progress")
	ErrNotProvisioned = errors.New("provision: site not provisioned")
	ErrPublishing     = errors.New("provision: publish already in flight")
)

// State is the externally visible provisioning and publish state.
type State struct {
	ProvisionStatus domain.ProvisionStatus
	PublishStatus   domain.PublishStatus
	Slug            string
	URL             string
	Err             string
	Attempts        int
	Polling         bool
}

// Machine drives the provision and publish lifecycle for one business. Slug
// validation happens before any network call; the status poll runs on the
// shared scheduler so a superseding request replaces the pending check.
type Machine struct {
	mu sync.Mutex

	businessID string
	store      remote.Store
	manager    *lifecycle.Manager
	sched      interfaces.TaskScheduler
	interval   time.Duration
	maxPolls   int
	logger     interfaces.Logger

	apexDomain string

	status     domain.ProvisionStatus
	live       bool
	slug       string
	url        string
	lastErr    string
	attempts   int
	polling    bool
	publishing bool
	closed     bool

	observer func(State)
}

// Option configures a Machine.
type Option func(*Machine)

// WithScheduler overrides the task scheduler.
func WithScheduler(sched interfaces.TaskScheduler) Option {
	return func(m *Machine) {
		if sched != nil {
			m.sched = sched
		}
	}
}

// WithPollInterval overrides the status poll interval.
func WithPollInterval(interval time.Duration) Option {
	return func(m *Machine) {
		if interval > 0 {
			m.interval = interval
		}
	}
}

// WithMaxPollAttempts overrides the poll attempt cap.
func WithMaxPollAttempts(max int) Option {
	return func(m *Machine) {
		if max > 0 {
			m.maxPolls = max
		}
	}
}

// WithLogger installs the diagnostics logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(m *Machine) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithApexDomain sets the custom apex domain sent with provision requests.
func WithApexDomain(apexDomain string) Option {
	return func(m *Machine) {
		m.apexDomain = apexDomain
	}
}

// WithObserver registers a callback invoked after every state change.
func WithObserver(fn func(State)) Option {
	return func(m *Machine) {
		m.observer = fn
	}
}

// NewMachine constructs a provisioning machine for one business.
func NewMachine(businessID string, store remote.Store, manager *lifecycle.Manager, opts ...Option) *Machine {
	m := &Machine{
		businessID: businessID,
		store:      store,
		manager:    manager,
		sched:      scheduler.NewTimerScheduler(),
		interval:   DefaultPollInterval,
		maxPolls:   DefaultMaxPollAttempts,
		logger:     logging.NoOp(),
		status:     domain.ProvisionNotProvisioned,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Machine) pollKey() string {
	return "provision-poll:" + m.businessID
}

// RefreshStatus pulls the remote lifecycle state once, without starting a
// poll loop. Used at session start to pick up state from earlier sessions.
func (m *Machine) RefreshStatus(ctx context.Context) error {
	settings, err := m.store.GetSiteSettings(ctx, m.businessID)
	if err != nil {
		return err
	}

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return ErrClosed
	}
	m.adoptSettingsLocked(settings)
	resume := m.status == domain.ProvisionProvisioning && !m.polling
	if resume {
		m.polling = true
		m.attempts = 0
	}
	m.mu.Unlock()

	if resume {
		m.sched.Schedule(m.pollKey(), m.interval, m.poll)
	}
	m.notify()
	return nil
}

// StartProvisioning validates the slug and requests provisioning, then polls
// the status until a terminal state or the attempt cap. A second call while
// a poll is pending supersedes it: the pending check is replaced and the
// attempt budget restarts.
func (m *Machine) StartProvisioning(ctx context.Context, slug string) error {
	if err := siteconfig.ValidateSiteSlug(slug); err != nil {
		return err
	}

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return ErrClosed
	}
	if m.status == domain.ProvisionProvisioned {
		m.mu.Unlock()
		return fmt.Errorf("provision: site already provisioned under %q", m.slug)
	}
	m.mu.Unlock()

	if err := m.store.Provision(ctx, m.businessID, remote.ProvisionRequest{Slug: slug, ApexDomain: m.apexDomain}); err != nil {
		m.mu.Lock()
		if errors.Is(err, remote.ErrSlugTaken) {
			m.lastErr = "slug already taken"
		} else {
			m.lastErr = err.Error()
		}
		m.mu.Unlock()
		m.notify()
		return err
	}

	m.mu.Lock()
	m.status = domain.ProvisionProvisioning
	m.slug = slug
	m.lastErr = ""
	m.attempts = 0
	m.polling = true
	m.mu.Unlock()

	m.sched.Schedule(m.pollKey(), m.interval, m.poll)
	m.notify()
	return nil
}

// Retry restarts provisioning after an error using the last requested slug.
func (m *Machine) Retry(ctx context.Context) error {
	m.mu.Lock()
	if m.status != domain.ProvisionError {
		status := m.status
		m.mu.Unlock()
		return fmt.Errorf("provision: retry from %q not allowed", status)
	}
	slug := m.slug
	m.status = domain.ProvisionNotProvisioned
	m.mu.Unlock()

	return m.StartProvisioning(ctx, slug)
}

func (m *Machine) poll() {
	m.mu.Lock()
	if m.closed || !m.polling {
		m.mu.Unlock()
		return
	}
	m.attempts++
	attempt := m.attempts
	m.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), m.interval)
	settings, err := m.store.GetSiteSettings(ctx, m.businessID)
	cancel()

	m.mu.Lock()
	if m.closed || !m.polling {
		m.mu.Unlock()
		return
	}

	if err != nil {
		m.polling = false
		m.status = domain.ProvisionError
		m.lastErr = err.Error()
		m.mu.Unlock()
		m.logger.Error("provision status check failed",
			"business_id", m.businessID, "attempt", attempt, "error", err)
		m.notify()
		return
	}
	m.adoptSettingsLocked(settings)

	switch {
	case m.status == domain.ProvisionProvisioned:
		m.polling = false
		m.lastErr = ""
		m.mu.Unlock()
		m.logger.Info("site provisioned", "business_id", m.businessID, "slug", m.slug)
		m.notify()
		return
	case m.status == domain.ProvisionError:
		m.polling = false
		m.mu.Unlock()
		m.notify()
		return
	case attempt >= m.maxPolls:
		m.polling = false
		m.status = domain.ProvisionError
		m.lastErr = fmt.Sprintf("provisioning timed out after %d checks", attempt)
		m.mu.Unlock()
		m.logger.Error("provisioning timed out",
			"business_id", m.businessID, "attempts", attempt)
		m.notify()
		return
	}
	m.mu.Unlock()

	m.sched.Schedule(m.pollKey(), m.interval, m.poll)
	m.notify()
}

func (m *Machine) adoptSettingsLocked(settings remote.SiteSettings) {
	if settings.Slug != "" {
		m.slug = settings.Slug
	}
	if settings.URL != "" {
		m.url = settings.URL
	}
	if settings.ProvisionStatus.Known() {
		m.status = settings.ProvisionStatus
	}
	if settings.PublishStatus == domain.PublishLive {
		m.live = true
	}
	if settings.ProvisionError != "" {
		m.lastErr = settings.ProvisionError
	}
}

// Publish promotes the current draft to the live site. Requires a
// provisioned site; concurrent calls collapse to one in-flight publish.
func (m *Machine) Publish(ctx context.Context) error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return ErrClosed
	}
	if m.status != domain.ProvisionProvisioned {
		m.mu.Unlock()
		return ErrNotProvisioned
	}
	if m.publishing {
		m.mu.Unlock()
		return ErrPublishing
	}
	m.publishing = true
	m.mu.Unlock()
	m.notify()

	// Flush the draft ahead of publish so the server promotes what the
	// editor is actually showing, not a debounce-stale copy.
	if m.manager != nil {
		if err := m.manager.Flush(ctx); err != nil {
			m.logger.Warn("pre-publish flush failed", "business_id", m.businessID, "error", err)
		}
	}

	err := m.store.Publish(ctx, m.businessID)

	m.mu.Lock()
	m.publishing = false
	if err != nil {
		m.lastErr = err.Error()
		m.mu.Unlock()
		m.notify()
		return err
	}
	m.live = true
	m.lastErr = ""
	m.mu.Unlock()

	if m.manager != nil {
		if err := m.manager.MarkPublished(ctx); err != nil {
			m.logger.Warn("publish bookkeeping failed", "business_id", m.businessID, "error", err)
		}
	}
	m.notify()
	return nil
}

// State reports the current provisioning and publish state.
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stateLocked()
}

// Close stops the poll loop and rejects further transitions.
func (m *Machine) Close() {
	m.mu.Lock()
	m.closed = true
	m.polling = false
	m.mu.Unlock()
	m.sched.Cancel(m.pollKey())
}

// publishStatusLocked derives the presentation state: publishing wins while
// in flight, then the provisioning lifecycle, then live vs provisioned.
func (m *Machine) publishStatusLocked() domain.PublishStatus {
	switch {
	case m.publishing:
		return domain.PublishPublishing
	case m.status == domain.ProvisionError:
		return domain.PublishError
	case m.status == domain.ProvisionProvisioning:
		return domain.PublishProvisioning
	case m.status == domain.ProvisionNotProvisioned:
		return domain.PublishNotProvisioned
	case m.live:
		return domain.PublishLive
	default:
		return domain.PublishProvisioned
	}
}

func (m *Machine) stateLocked() State {
	return State{
		ProvisionStatus: m.status,
		PublishStatus:   m.publishStatusLocked(),
		Slug:            m.slug,
		URL:             m.url,
		Err:             m.lastErr,
		Attempts:        m.attempts,
		Polling:         m.polling,
	}
}

func (m *Machine) notify() {
	m.mu.Lock()
	observer := m.observer
	state := m.stateLocked()
	m.mu.Unlock()

	if observer != nil {
		observer(state)
	}
}
