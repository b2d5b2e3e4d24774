package lifecycle

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-sitebuilder/siteconfig"
)

var ErrCacheMiss = errors.New("lifecycle: cache miss")

// CacheRecord is the locally persisted editing state for one business. The
// draft survives restarts so the editor hydrates instantly without waiting on
// the network; RevertPending survives too so a restore keeps suppressing its
// one autosave across a restart.
type CacheRecord struct {
	bun.BaseModel `bun:"table:site_cache_records,alias:scr"`

	ID            uuid.UUID              `bun:",pk,type:uuid" json:"id"`
	BusinessID    string                 `bun:"business_id,notnull,unique" json:"business_id"`
	Slug          string                 `bun:"slug" json:"slug"`
	Draft         *siteconfig.SiteConfig `bun:"draft,type:jsonb" json:"draft,omitempty"`
	Published     *siteconfig.SiteConfig `bun:"published,type:jsonb" json:"published,omitempty"`
	RevertPending bool                   `bun:"revert_pending,notnull,default:false" json:"revert_pending"`
	UpdatedAt     time.Time              `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// Clone deep-copies the record so callers can mutate without aliasing cache
// internals.
func (r *CacheRecord) Clone() *CacheRecord {
	if r == nil {
		return nil
	}
	out := *r
	out.Draft = r.Draft.Clone()
	out.Published = r.Published.Clone()
	return &out
}

// LocalCache persists per-business editing state on the editor's side of the
// network. Implementations must return ErrCacheMiss for unknown businesses.
type LocalCache interface {
	Get(ctx context.Context, businessID string) (*CacheRecord, error)
	Put(ctx context.Context, record *CacheRecord) error
	Delete(ctx context.Context, businessID string) error
}
