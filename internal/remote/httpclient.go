package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/goliatone/go-sitebuilder/internal/logging"
	"github.com/goliatone/go-sitebuilder/internal/validation"
	"github.com/goliatone/go-sitebuilder/pkg/interfaces"
	"github.com/goliatone/go-sitebuilder/siteconfig"
)

const defaultTimeout = 15 * time.Second

// HTTPStore talks to the site backend over its JSON API. It implements Store;
// the in-memory store in this package covers tests and offline development.
type HTTPStore struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     interfaces.Logger
}

var _ Store = (*HTTPStore)(nil)

// HTTPOption configures an HTTPStore.
type HTTPOption func(*HTTPStore)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(client *http.Client) HTTPOption {
	return func(s *HTTPStore) {
		if client != nil {
			s.httpClient = client
		}
	}
}

// WithToken sets the bearer token attached to every request.
func WithToken(token string) HTTPOption {
	return func(s *HTTPStore) {
		s.token = token
	}
}

// WithHTTPLogger installs the diagnostics logger.
func WithHTTPLogger(logger interfaces.Logger) HTTPOption {
	return func(s *HTTPStore) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewHTTPStore constructs a client for the backend rooted at baseURL.
func NewHTTPStore(baseURL string, opts ...HTTPOption) *HTTPStore {
	store := &HTTPStore{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     logging.NoOp(),
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

func (s *HTTPStore) GetDraft(ctx context.Context, businessID string) (DraftPayload, error) {
	raw, err := s.getRaw(ctx, "/businesses/"+url.PathEscape(businessID)+"/site/draft")
	if err != nil {
		return DraftPayload{}, err
	}

	var envelope struct {
		Slug      string          `json:"slug"`
		Draft     json.RawMessage `json:"draft"`
		Published json.RawMessage `json:"published"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return DraftPayload{}, fmt.Errorf("remote: decode draft envelope: %w", err)
	}

	payload := DraftPayload{Slug: envelope.Slug}
	if payload.Draft, err = decodeConfig(envelope.Draft); err != nil {
		return DraftPayload{}, err
	}
	if payload.Published, err = decodeConfig(envelope.Published); err != nil {
		return DraftPayload{}, err
	}
	return payload, nil
}

func (s *HTTPStore) SaveDraft(ctx context.Context, businessID string, payload DraftPayload) error {
	return s.do(ctx, http.MethodPut, "/businesses/"+url.PathEscape(businessID)+"/site/draft", payload, nil)
}

func (s *HTTPStore) GetSiteSettings(ctx context.Context, businessID string) (SiteSettings, error) {
	var settings SiteSettings
	if err := s.do(ctx, http.MethodGet, "/businesses/"+url.PathEscape(businessID)+"/site/settings", nil, &settings); err != nil {
		return SiteSettings{}, err
	}
	return settings, nil
}

func (s *HTTPStore) Provision(ctx context.Context, businessID string, req ProvisionRequest) error {
	return s.do(ctx, http.MethodPost, "/businesses/"+url.PathEscape(businessID)+"/site/provision", req, nil)
}

func (s *HTTPStore) Publish(ctx context.Context, businessID string) error {
	return s.do(ctx, http.MethodPost, "/businesses/"+url.PathEscape(businessID)+"/site/publish", nil, nil)
}

func (s *HTTPStore) ListVersions(ctx context.Context, businessID string) ([]Version, error) {
	var versions []Version
	if err := s.do(ctx, http.MethodGet, "/businesses/"+url.PathEscape(businessID)+"/site/versions", nil, &versions); err != nil {
		return nil, err
	}
	return versions, nil
}

func (s *HTTPStore) VersionContent(ctx context.Context, businessID, versionID string) (*siteconfig.SiteConfig, error) {
	raw, err := s.getRaw(ctx, "/businesses/"+url.PathEscape(businessID)+"/site/versions/"+url.PathEscape(versionID))
	if err != nil {
		return nil, err
	}
	return decodeConfig(raw)
}

func (s *HTTPStore) RevertVersion(ctx context.Context, businessID, versionID string) (*siteconfig.SiteConfig, error) {
	endpoint := "/businesses/" + url.PathEscape(businessID) + "/site/versions/" + url.PathEscape(versionID) + "/revert"
	req, err := s.newRequest(ctx, http.MethodPost, endpoint, nil)
	if err != nil {
		return nil, err
	}
	raw, err := s.execute(req)
	if err != nil {
		return nil, err
	}
	return decodeConfig(raw)
}

func (s *HTTPStore) PublicSiteData(ctx context.Context, slug string) (PublicSite, error) {
	var site PublicSite
	if err := s.do(ctx, http.MethodGet, "/sites/"+url.PathEscape(slug), nil, &site); err != nil {
		return PublicSite{}, err
	}
	return site, nil
}

func (s *HTTPStore) do(ctx context.Context, method, endpoint string, body, result any) error {
	req, err := s.newRequest(ctx, method, endpoint, body)
	if err != nil {
		return err
	}
	raw, err := s.execute(req)
	if err != nil {
		return err
	}
	if result == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, result); err != nil {
		return fmt.Errorf("remote: decode %s response: %w", endpoint, err)
	}
	return nil
}

func (s *HTTPStore) getRaw(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := s.newRequest(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	return s.execute(req)
}

func (s *HTTPStore) newRequest(ctx context.Context, method, endpoint string, body any) (*http.Request, error) {
	base, err := url.Parse(s.baseURL)
	if err != nil {
		return nil, fmt.Errorf("remote: parse base url: %w", err)
	}
	base.Path = path.Join(strings.TrimSuffix(base.Path, "/"), strings.TrimPrefix(endpoint, "/"))

	var reader io.Reader = http.NoBody
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("remote: encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, base.String(), reader)
	if err != nil {
		return nil, fmt.Errorf("remote: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	return req, nil
}

func (s *HTTPStore) execute(req *http.Request) ([]byte, error) {
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", ErrUnavailable, err)
	}

	if resp.StatusCode >= 400 {
		s.logger.Warn("remote request failed",
			"method", req.Method,
			"path", req.URL.Path,
			"status", resp.StatusCode,
		)
		return nil, statusError(resp.StatusCode, raw)
	}
	return raw, nil
}

func statusError(status int, body []byte) error {
	message := strings.TrimSpace(strings.ReplaceAll(string(body), "\n", " "))
	if len(message) > 256 {
		message = message[:256]
	}
	switch status {
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrDraftNotFound, message)
	case http.StatusConflict:
		return fmt.Errorf("%w: %s", ErrSlugTaken, message)
	default:
		return fmt.Errorf("%w: status %d: %s", ErrUnavailable, status, message)
	}
}

// decodeConfig validates the structural contract before decoding so a
// corrupted remote document can never replace a healthy local config.
func decodeConfig(raw json.RawMessage) (*siteconfig.SiteConfig, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}
	if err := validation.ValidateSiteConfigJSON(trimmed); err != nil {
		return nil, fmt.Errorf("remote: draft rejected: %w", err)
	}
	var cfg siteconfig.SiteConfig
	if err := json.Unmarshal(trimmed, &cfg); err != nil {
		return nil, fmt.Errorf("remote: decode config: %w", err)
	}
	return &cfg, nil
}
