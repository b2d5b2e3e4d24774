package remote

import (
	"context"
	"errors"
	"time"

	"github.com/goliatone/go-sitebuilder/internal/domain"
	"github.com/goliatone/go-sitebuilder/siteconfig"
)

var (
	ErrDraftNotFound   = errors.New("remote: draft not found")
	ErrVersionNotFound = errors.New("remote: version not found")
	ErrSlugTaken       = errors.New("remote: slug already taken")
	ErrUnavailable     = errors.New("remote: service unavailable")
)

// DraftPayload is the persistence envelope the backing service stores per
// business: the working draft, the last published config, and the site slug.
type DraftPayload struct {
	Slug      string                 `json:"slug,omitempty"`
	Draft     *siteconfig.SiteConfig `json:"draft,omitempty"`
	Published *siteconfig.SiteConfig `json:"published,omitempty"`
}

// SiteSettings reports the remote lifecycle state for a business site.
type SiteSettings struct {
	Slug            string                 `json:"slug"`
	URL             string                 `json:"url,omitempty"`
	ProvisionStatus domain.ProvisionStatus `json:"provision_status"`
	PublishStatus   domain.PublishStatus   `json:"publish_status"`
	ProvisionError  string                 `json:"provision_error,omitempty"`
}

// ProvisionRequest is the provisioning payload. ApexDomain is only sent when
// the business brings a custom domain.
type ProvisionRequest struct {
	Slug       string `json:"slug"`
	ApexDomain string `json:"apex_domain,omitempty"`
}

// Version is a saved draft snapshot as listed by the version history API.
type Version struct {
	ID                 string    `json:"id"`
	Note               string    `json:"note,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	SectionsCount      int       `json:"sections_count"`
	ThemeName          string    `json:"theme_name,omitempty"`
	DraftName          string    `json:"draft_name,omitempty"`
	IsCurrent          bool      `json:"is_current"`
	IsPublished        bool      `json:"is_published"`
	SectionTypePreview []string  `json:"section_type_preview,omitempty"`
}

// PublicSite is the published presentation payload served to visitors.
type PublicSite struct {
	Slug      string                 `json:"slug"`
	Config    *siteconfig.SiteConfig `json:"config"`
	UpdatedAt time.Time              `json:"updated_at"`
}

// Store is the remote persistence and lifecycle API. All methods are
// blocking; callers bound them with context deadlines.
type Store interface {
	// GetDraft fetches the persistence envelope for a business. A business
	// with no saved draft returns ErrDraftNotFound.
	GetDraft(ctx context.Context, businessID string) (DraftPayload, error)

	// SaveDraft persists the working draft. Remote failure must not prevent
	// local persistence; callers treat errors as retryable.
	SaveDraft(ctx context.Context, businessID string, payload DraftPayload) error

	// GetSiteSettings reports provisioning and publish state.
	GetSiteSettings(ctx context.Context, businessID string) (SiteSettings, error)

	// Provision requests site provisioning under the requested slug and,
	// optionally, a custom apex domain.
	Provision(ctx context.Context, businessID string, req ProvisionRequest) error

	// Publish promotes the current draft to the live site.
	Publish(ctx context.Context, businessID string) error

	// ListVersions returns the saved version history, newest first.
	ListVersions(ctx context.Context, businessID string) ([]Version, error)

	// VersionContent fetches a version's full config without altering the
	// working draft.
	VersionContent(ctx context.Context, businessID, versionID string) (*siteconfig.SiteConfig, error)

	// RevertVersion makes the given version the working draft server-side and
	// returns the resulting config.
	RevertVersion(ctx context.Context, businessID, versionID string) (*siteconfig.SiteConfig, error)

	// PublicSiteData fetches the published site payload by slug.
	PublicSiteData(ctx context.Context, slug string) (PublicSite, error)
}
