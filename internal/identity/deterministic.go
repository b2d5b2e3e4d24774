package identity

import (
	"strconv"
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// UUID derives a deterministic UUID from a stable key using go-hashid.
//
// Callers must ensure key construction prevents cross-entity collisions
// (prefix by domain/type).
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

// CacheRecordUUID derives the cache record identity for a business.
func CacheRecordUUID(businessID string) uuid.UUID {
	return UUID("go-sitebuilder:cache:" + strings.TrimSpace(businessID))
}

// SectionUUID derives a stable section identity at creation time from the
// business and a per-business sequence value.
func SectionUUID(businessID string, sequence int64) uuid.UUID {
	return UUID("go-sitebuilder:section:" + strings.TrimSpace(businessID) + ":" + strconv.FormatInt(sequence, 10))
}
