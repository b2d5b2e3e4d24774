package siteconfig

import (
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-slug"
)

var (
	anchorPattern   = regexp.MustCompile(`^[a-z0-9-]+$`)
	siteSlugPattern = regexp.MustCompile(`^[a-z0-9-]{2,50}$`)
)

// SlugNormalizer exposes the slug normalizer interface.
type SlugNormalizer = slug.Normalizer

// DefaultSlugNormalizer returns the default slug normalizer.
func DefaultSlugNormalizer() SlugNormalizer {
	return slug.Default()
}

// NormalizeAnchor converts arbitrary input into a valid section anchor.
// Inputs that cannot be normalized into [a-z0-9-]+ yield an empty string,
// which callers treat as "no anchor" rather than an error.
func NormalizeAnchor(value string) string {
	normalized, err := slug.Normalize(value)
	if err != nil || !anchorPattern.MatchString(normalized) {
		return ""
	}
	return normalized
}

// IsValidAnchor reports whether value is already a valid section anchor.
func IsValidAnchor(value string) bool {
	return anchorPattern.MatchString(value)
}

// ValidateSiteSlug enforces the provisioning slug rules. Invalid slugs must
// never reach the remote provisioning call.
func ValidateSiteSlug(value string) error {
	return validation.Validate(value,
		validation.Required.Error("site slug is required"),
		validation.Match(siteSlugPattern).Error("site slug must match ^[a-z0-9-]{2,50}$"),
	)
}
