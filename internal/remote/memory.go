package remote

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/goliatone/go-sitebuilder/internal/domain"
	"github.com/goliatone/go-sitebuilder/siteconfig"
)

// MemoryStore is an in-memory Store for tests and offline development. It
// keeps full version history per business and lets callers script failures
// and provisioning status sequences.
type MemoryStore struct {
	mu sync.Mutex

	drafts        map[string]DraftPayload
	settings      map[string]SiteSettings
	settingsQueue map[string][]SiteSettings
	versions      map[string][]Version
	contents      map[string]*siteconfig.SiteConfig

	saveErr      error
	getErr       error
	settingsErr  error
	provisionErr error
	publishErr   error

	saveCalls      int
	settingsCalls  int
	provisionCalls int
	publishCalls   int

	now func() time.Time
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore constructs an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		drafts:        make(map[string]DraftPayload),
		settings:      make(map[string]SiteSettings),
		settingsQueue: make(map[string][]SiteSettings),
		versions:      make(map[string][]Version),
		contents:      make(map[string]*siteconfig.SiteConfig),
		now:           time.Now,
	}
}

// SeedDraft installs a draft payload for a business.
func (s *MemoryStore) SeedDraft(businessID string, payload DraftPayload) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts[businessID] = clonePayload(payload)
}

// SeedSettings sets the steady-state settings returned once the queue drains.
func (s *MemoryStore) SeedSettings(businessID string, settings SiteSettings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings[businessID] = settings
}

// QueueSettings appends scripted settings responses consumed in order before
// the steady-state settings. Poll-loop tests script transitions with this.
func (s *MemoryStore) QueueSettings(businessID string, responses ...SiteSettings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settingsQueue[businessID] = append(s.settingsQueue[businessID], responses...)
}

// FailSaves makes SaveDraft return err until cleared with nil.
func (s *MemoryStore) FailSaves(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saveErr = err
}

// FailGets makes GetDraft return err until cleared with nil.
func (s *MemoryStore) FailGets(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.getErr = err
}

// FailSettings makes GetSiteSettings return err until cleared with nil.
func (s *MemoryStore) FailSettings(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settingsErr = err
}

// FailProvision makes Provision return err until cleared with nil.
func (s *MemoryStore) FailProvision(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.provisionErr = err
}

// FailPublish makes Publish return err until cleared with nil.
func (s *MemoryStore) FailPublish(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.publishErr = err
}

// SaveCalls reports how many SaveDraft calls were accepted or rejected.
func (s *MemoryStore) SaveCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveCalls
}

// SettingsCalls reports how many GetSiteSettings calls were made.
func (s *MemoryStore) SettingsCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settingsCalls
}

// ProvisionCalls reports how many Provision calls were made.
func (s *MemoryStore) ProvisionCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.provisionCalls
}

// PublishCalls reports how many Publish calls were made.
func (s *MemoryStore) PublishCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.publishCalls
}

func (s *MemoryStore) GetDraft(_ context.Context, businessID string) (DraftPayload, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.getErr != nil {
		return DraftPayload{}, s.getErr
	}
	payload, ok := s.drafts[businessID]
	if !ok {
		return DraftPayload{}, ErrDraftNotFound
	}
	return clonePayload(payload), nil
}

func (s *MemoryStore) SaveDraft(_ context.Context, businessID string, payload DraftPayload) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.saveCalls++
	if s.saveErr != nil {
		return s.saveErr
	}

	stored := clonePayload(payload)
	if stored.Published == nil {
		if existing, ok := s.drafts[businessID]; ok {
			stored.Published = existing.Published
		}
	}
	s.drafts[businessID] = stored

	if stored.Draft != nil {
		versionID := "v" + strconv.Itoa(len(s.versions[businessID])+1)
		version := Version{
			ID:            versionID,
			CreatedAt:     s.now(),
			SectionsCount: len(stored.Draft.Sections),
			ThemeName:     stored.Draft.Theme.Accent,
			IsCurrent:     true,
		}
		for _, section := range stored.Draft.Sections {
			version.SectionTypePreview = append(version.SectionTypePreview, string(section.Type))
		}
		history := s.versions[businessID]
		for i := range history {
			history[i].IsCurrent = false
		}
		s.versions[businessID] = append([]Version{version}, history...)
		s.contents[businessID+":"+versionID] = stored.Draft.Clone()
	}
	return nil
}

func (s *MemoryStore) GetSiteSettings(_ context.Context, businessID string) (SiteSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.settingsCalls++
	if s.settingsErr != nil {
		return SiteSettings{}, s.settingsErr
	}
	if queue := s.settingsQueue[businessID]; len(queue) > 0 {
		next := queue[0]
		s.settingsQueue[businessID] = queue[1:]
		return next, nil
	}
	settings, ok := s.settings[businessID]
	if !ok {
		return SiteSettings{ProvisionStatus: domain.ProvisionNotProvisioned}, nil
	}
	return settings, nil
}

func (s *MemoryStore) Provision(_ context.Context, businessID string, req ProvisionRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.provisionCalls++
	if s.provisionErr != nil {
		return s.provisionErr
	}
	settings := s.settings[businessID]
	settings.Slug = req.Slug
	settings.ProvisionStatus = domain.ProvisionProvisioning
	s.settings[businessID] = settings

	draft := s.drafts[businessID]
	draft.Slug = req.Slug
	s.drafts[businessID] = draft
	return nil
}

func (s *MemoryStore) Publish(_ context.Context, businessID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.publishCalls++
	if s.publishErr != nil {
		return s.publishErr
	}
	payload, ok := s.drafts[businessID]
	if !ok || payload.Draft == nil {
		return ErrDraftNotFound
	}
	payload.Published = payload.Draft.Clone()
	s.drafts[businessID] = payload

	settings := s.settings[businessID]
	settings.PublishStatus = domain.PublishLive
	s.settings[businessID] = settings

	if history := s.versions[businessID]; len(history) > 0 {
		for i := range history {
			history[i].IsPublished = history[i].IsCurrent
		}
		s.versions[businessID] = history
	}
	return nil
}

func (s *MemoryStore) ListVersions(_ context.Context, businessID string) ([]Version, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	history := s.versions[businessID]
	out := make([]Version, len(history))
	copy(out, history)
	return out, nil
}

func (s *MemoryStore) VersionContent(_ context.Context, businessID, versionID string) (*siteconfig.SiteConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg, ok := s.contents[businessID+":"+versionID]
	if !ok {
		return nil, ErrVersionNotFound
	}
	return cfg.Clone(), nil
}

func (s *MemoryStore) RevertVersion(_ context.Context, businessID, versionID string) (*siteconfig.SiteConfig, error) {
	s.mu.Lock()

	cfg, ok := s.contents[businessID+":"+versionID]
	if !ok {
		s.mu.Unlock()
		return nil, ErrVersionNotFound
	}
	restored := cfg.Clone()
	payload := s.drafts[businessID]
	s.mu.Unlock()

	payload.Draft = restored
	if err := s.SaveDraft(context.Background(), businessID, payload); err != nil {
		return nil, err
	}
	return restored.Clone(), nil
}

func (s *MemoryStore) PublicSiteData(_ context.Context, slug string) (PublicSite, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for businessID, settings := range s.settings {
		if settings.Slug != slug {
			continue
		}
		payload, ok := s.drafts[businessID]
		if !ok || payload.Published == nil {
			break
		}
		return PublicSite{
			Slug:      slug,
			Config:    payload.Published.Clone(),
			UpdatedAt: s.now(),
		}, nil
	}
	return PublicSite{}, ErrDraftNotFound
}

func clonePayload(payload DraftPayload) DraftPayload {
	out := DraftPayload{Slug: payload.Slug}
	if payload.Draft != nil {
		out.Draft = payload.Draft.Clone()
	}
	if payload.Published != nil {
		out.Published = payload.Published.Clone()
	}
	return out
}
