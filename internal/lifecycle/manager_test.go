package lifecycle

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goliatone/go-sitebuilder/internal/remote"
	"github.com/goliatone/go-sitebuilder/internal/scheduler"
	"github.com/goliatone/go-sitebuilder/siteconfig"
)

const testBusinessID = "biz-123"

func draftWithTitle(title string) *siteconfig.SiteConfig {
	return &siteconfig.SiteConfig{
		Version:    "1",
		BusinessID: testBusinessID,
		Sections: []siteconfig.Section{
			{Type: siteconfig.SectionHero, Title: title},
		},
	}
}

func newTestManager(t *testing.T, store remote.Store, cache LocalCache) (*Manager, *scheduler.ManualScheduler) {
	t.Helper()
	sched := scheduler.NewManualScheduler()
	manager := NewManager(testBusinessID, store, cache, WithScheduler(sched))
	t.Cleanup(func() {
		if err := manager.Close(context.Background()); err != nil && !errors.Is(err, ErrClosed) {
			t.Errorf("close: %v", err)
		}
	})
	return manager, sched
}

func TestHydrateAdoptsCachedRecordWhenRemoteFails(t *testing.T) {
	store := remote.NewMemoryStore()
	store.FailGets(remote.ErrUnavailable)

	cache := NewMemoryCache()
	if err := cache.Put(context.Background(), &CacheRecord{
		BusinessID: testBusinessID,
		Slug:       "cached-shop",
		Draft:      draftWithTitle("from cache"),
	}); err != nil {
		t.Fatalf("seed cache: %v", err)
	}

	manager, _ := newTestManager(t, store, cache)
	if err := manager.Hydrate(context.Background()); err != nil {
		t.Fatalf("hydrate must degrade, not fail: %v", err)
	}

	draft := manager.Draft()
	if draft == nil || draft.Sections[0].Title != "from cache" {
		t.Fatalf("cached draft not adopted: %+v", draft)
	}
	if manager.Slug() != "cached-shop" {
		t.Fatalf("cached slug not adopted: %q", manager.Slug())
	}
}

func TestHydrateRemoteWinsWhenReachable(t *testing.T) {
	store := remote.NewMemoryStore()
	store.SeedDraft(testBusinessID, remote.DraftPayload{
		Slug:  "remote-shop",
		Draft: draftWithTitle("from server"),
	})

	cache := NewMemoryCache()
	if err := cache.Put(context.Background(), &CacheRecord{
		BusinessID: testBusinessID,
		Slug:       "cached-shop",
		Draft:      draftWithTitle("from cache"),
	}); err != nil {
		t.Fatalf("seed cache: %v", err)
	}

	manager, _ := newTestManager(t, store, cache)
	if err := manager.Hydrate(context.Background()); err != nil {
		t.Fatalf("hydrate: %v", err)
	}

	draft := manager.Draft()
	if draft.Sections[0].Title != "from server" {
		t.Fatalf("server draft must win when reachable, got %q", draft.Sections[0].Title)
	}
	if manager.Slug() != "remote-shop" {
		t.Fatalf("server slug must win, got %q", manager.Slug())
	}

	// The adopted server copy must land back in the cache.
	record, err := cache.Get(context.Background(), testBusinessID)
	if err != nil {
		t.Fatalf("cache read-back: %v", err)
	}
	if record.Draft.Sections[0].Title != "from server" {
		t.Fatalf("cache not refreshed after hydration: %q", record.Draft.Sections[0].Title)
	}
}

func TestHydrateIgnoresEmptyRemoteDraft(t *testing.T) {
	store := remote.NewMemoryStore()
	store.SeedDraft(testBusinessID, remote.DraftPayload{
		Slug: "remote-shop",
		Draft: &siteconfig.SiteConfig{
			Version:    "1",
			BusinessID: testBusinessID,
			Sections:   []siteconfig.Section{},
		},
	})

	cache := NewMemoryCache()
	if err := cache.Put(context.Background(), &CacheRecord{
		BusinessID: testBusinessID,
		Slug:       "cached-shop",
		Draft:      draftWithTitle("from cache"),
	}); err != nil {
		t.Fatalf("seed cache: %v", err)
	}

	manager, _ := newTestManager(t, store, cache)
	if err := manager.Hydrate(context.Background()); err != nil {
		t.Fatalf("hydrate: %v", err)
	}

	draft := manager.Draft()
	if draft == nil || len(draft.Sections) == 0 {
		t.Fatal("an empty server draft must never regress the local one")
	}
	if draft.Sections[0].Title != "from cache" {
		t.Fatalf("local draft replaced: %q", draft.Sections[0].Title)
	}
	// Non-draft fields still come from the server.
	if manager.Slug() != "remote-shop" {
		t.Fatalf("server slug must still win, got %q", manager.Slug())
	}
}

func TestHydrateMissingEverywhereLeavesNoDraft(t *testing.T) {
	manager, _ := newTestManager(t, remote.NewMemoryStore(), NewMemoryCache())
	if err := manager.Hydrate(context.Background()); err != nil {
		t.Fatalf("hydrate: %v", err)
	}
	if manager.Draft() != nil {
		t.Fatal("no draft anywhere means no draft loaded")
	}
}

func TestSetDraftDebouncesRemoteWrites(t *testing.T) {
	store := remote.NewMemoryStore()
	manager, sched := newTestManager(t, store, NewMemoryCache())

	for i, title := range []string{"one", "two", "three"} {
		if err := manager.SetDraft(context.Background(), draftWithTitle(title)); err != nil {
			t.Fatalf("edit %d: %v", i, err)
		}
	}

	if store.SaveCalls() != 0 {
		t.Fatalf("no remote write before the quiet window elapses, got %d", store.SaveCalls())
	}
	if delay, ok := sched.Delay("autosave:" + testBusinessID); !ok || delay != DefaultDebounce {
		t.Fatalf("autosave scheduled with delay %v, pending=%v", delay, ok)
	}

	sched.Fire("autosave:" + testBusinessID)
	if store.SaveCalls() != 1 {
		t.Fatalf("burst of edits must collapse into one save, got %d", store.SaveCalls())
	}

	payload, err := store.GetDraft(context.Background(), testBusinessID)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if payload.Draft.Sections[0].Title != "three" {
		t.Fatalf("the last edit must be the one saved, got %q", payload.Draft.Sections[0].Title)
	}
}

func TestSetDraftLocalWriteSurvivesRemoteFailure(t *testing.T) {
	store := remote.NewMemoryStore()
	store.FailSaves(remote.ErrUnavailable)
	cache := NewMemoryCache()
	manager, sched := newTestManager(t, store, cache)

	if err := manager.SetDraft(context.Background(), draftWithTitle("offline edit")); err != nil {
		t.Fatalf("edit: %v", err)
	}
	sched.Fire("autosave:" + testBusinessID)

	record, err := cache.Get(context.Background(), testBusinessID)
	if err != nil {
		t.Fatalf("local copy must be durable despite remote failure: %v", err)
	}
	if record.Draft.Sections[0].Title != "offline edit" {
		t.Fatalf("unexpected local draft %q", record.Draft.Sections[0].Title)
	}

	// The next edit retries the remote write.
	store.FailSaves(nil)
	if err := manager.SetDraft(context.Background(), draftWithTitle("back online")); err != nil {
		t.Fatalf("edit: %v", err)
	}
	sched.Fire("autosave:" + testBusinessID)
	if store.SaveCalls() != 2 {
		t.Fatalf("expected a failed and a successful save, got %d", store.SaveCalls())
	}
}

func TestSetSlugValidatesShape(t *testing.T) {
	manager, _ := newTestManager(t, remote.NewMemoryStore(), NewMemoryCache())

	if err := manager.SetSlug(context.Background(), "My Shop!"); err == nil {
		t.Fatal("invalid slug must be rejected")
	}
	if err := manager.SetSlug(context.Background(), "my-shop"); err != nil {
		t.Fatalf("valid slug rejected: %v", err)
	}
	if manager.Slug() != "my-shop" {
		t.Fatalf("slug not adopted: %q", manager.Slug())
	}
}

func TestFlushWritesPendingEditImmediately(t *testing.T) {
	store := remote.NewMemoryStore()
	manager, sched := newTestManager(t, store, NewMemoryCache())

	if err := manager.SetDraft(context.Background(), draftWithTitle("pending")); err != nil {
		t.Fatalf("edit: %v", err)
	}
	if err := manager.Flush(context.Background()); err != nil {
		t.Fatalf("flush: %v", err)
	}

	if store.SaveCalls() != 1 {
		t.Fatalf("flush must save, got %d calls", store.SaveCalls())
	}
	if sched.Pending("autosave:" + testBusinessID) {
		t.Fatal("flush must cancel the debounce timer")
	}
}

func TestPreviewOverlaysWithoutTouchingDraft(t *testing.T) {
	store := remote.NewMemoryStore()
	manager, sched := newTestManager(t, store, NewMemoryCache())

	if err := manager.SetDraft(context.Background(), draftWithTitle("original")); err != nil {
		t.Fatalf("edit: %v", err)
	}
	sched.Fire("autosave:" + testBusinessID) // mints v1

	if err := manager.SetDraft(context.Background(), draftWithTitle("newer")); err != nil {
		t.Fatalf("edit: %v", err)
	}
	sched.Fire("autosave:" + testBusinessID) // mints v2

	if err := manager.StartPreview(context.Background(), "v1"); err != nil {
		t.Fatalf("start preview: %v", err)
	}

	if id, active := manager.Previewing(); !active || id != "v1" {
		t.Fatalf("previewing = %q/%v", id, active)
	}
	if got := manager.EffectiveConfig().Sections[0].Title; got != "original" {
		t.Fatalf("effective config must show the previewed version, got %q", got)
	}
	if got := manager.Draft().Sections[0].Title; got != "newer" {
		t.Fatalf("working draft must be untouched by preview, got %q", got)
	}

	manager.StopPreview()
	if _, active := manager.Previewing(); active {
		t.Fatal("stop preview must drop the overlay")
	}
	if got := manager.EffectiveConfig().Sections[0].Title; got != "newer" {
		t.Fatalf("effective config must return to the draft, got %q", got)
	}
}

func TestStartPreviewUnknownVersion(t *testing.T) {
	manager, _ := newTestManager(t, remote.NewMemoryStore(), NewMemoryCache())

	err := manager.StartPreview(context.Background(), "v99")
	if !errors.Is(err, remote.ErrVersionNotFound) {
		t.Fatalf("expected ErrVersionNotFound, got %v", err)
	}
	if _, active := manager.Previewing(); active {
		t.Fatal("failed preview must not activate the overlay")
	}
}

func TestRestoreSuppressesExactlyOneAutosave(t *testing.T) {
	store := remote.NewMemoryStore()
	manager, sched := newTestManager(t, store, NewMemoryCache())

	if err := manager.SetDraft(context.Background(), draftWithTitle("original")); err != nil {
		t.Fatalf("edit: %v", err)
	}
	sched.Fire("autosave:" + testBusinessID) // v1

	if err := manager.SetDraft(context.Background(), draftWithTitle("newer")); err != nil {
		t.Fatalf("edit: %v", err)
	}
	sched.Fire("autosave:" + testBusinessID) // v2

	savesBeforeRestore := store.SaveCalls()
	if err := manager.RestoreVersion(context.Background(), "v1"); err != nil {
		t.Fatalf("restore: %v", err)
	}

	// The server performed the revert (one save), and the locally scheduled
	// autosave that follows must write nothing.
	savesAfterRevert := store.SaveCalls()
	if savesAfterRevert != savesBeforeRestore+1 {
		t.Fatalf("revert performs exactly one server save, got %d -> %d",
			savesBeforeRestore, savesAfterRevert)
	}
	sched.Fire("autosave:" + testBusinessID)
	if store.SaveCalls() != savesAfterRevert {
		t.Fatalf("the post-restore autosave must be suppressed, got %d saves", store.SaveCalls())
	}

	if got := manager.Draft().Sections[0].Title; got != "original" {
		t.Fatalf("restored draft = %q", got)
	}

	// Suppression is one-shot: the next edit autosaves normally.
	if err := manager.SetDraft(context.Background(), draftWithTitle("after restore")); err != nil {
		t.Fatalf("edit: %v", err)
	}
	sched.Fire("autosave:" + testBusinessID)
	if store.SaveCalls() != savesAfterRevert+1 {
		t.Fatalf("the edit after restore must save, got %d", store.SaveCalls())
	}
}

func TestRestoreSuppressionSurvivesRestart(t *testing.T) {
	store := remote.NewMemoryStore()
	cache := NewMemoryCache()

	manager, _ := newTestManager(t, store, cache)
	if err := manager.SetDraft(context.Background(), draftWithTitle("original")); err != nil {
		t.Fatalf("edit: %v", err)
	}
	if err := manager.Flush(context.Background()); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if err := manager.RestoreVersion(context.Background(), "v1"); err != nil {
		t.Fatalf("restore: %v", err)
	}

	// A second manager hydrating from the same cache inherits the pending
	// suppression through the persisted record.
	fresh, sched := newTestManager(t, store, cache)
	if err := fresh.Hydrate(context.Background()); err != nil {
		t.Fatalf("hydrate: %v", err)
	}

	saves := store.SaveCalls()
	if err := fresh.SetDraft(context.Background(), fresh.Draft()); err != nil {
		t.Fatalf("edit: %v", err)
	}
	sched.Fire("autosave:" + testBusinessID)
	if store.SaveCalls() != saves {
		t.Fatalf("suppression must survive restart, got %d saves after %d", store.SaveCalls(), saves)
	}
}

func TestRestoreClearsActivePreview(t *testing.T) {
	store := remote.NewMemoryStore()
	manager, sched := newTestManager(t, store, NewMemoryCache())

	if err := manager.SetDraft(context.Background(), draftWithTitle("original")); err != nil {
		t.Fatalf("edit: %v", err)
	}
	sched.Fire("autosave:" + testBusinessID)

	if err := manager.StartPreview(context.Background(), "v1"); err != nil {
		t.Fatalf("preview: %v", err)
	}
	if err := manager.RestoreVersion(context.Background(), "v1"); err != nil {
		t.Fatalf("restore: %v", err)
	}
	if _, active := manager.Previewing(); active {
		t.Fatal("restore must exit preview mode")
	}
}

func TestHasUnpublishedChanges(t *testing.T) {
	store := remote.NewMemoryStore()
	manager, _ := newTestManager(t, store, NewMemoryCache())

	if manager.HasUnpublishedChanges() {
		t.Fatal("no draft means nothing to publish")
	}

	if err := manager.SetDraft(context.Background(), draftWithTitle("v1")); err != nil {
		t.Fatalf("edit: %v", err)
	}
	if !manager.HasUnpublishedChanges() {
		t.Fatal("a never-published draft counts as unpublished changes")
	}

	if err := manager.MarkPublished(context.Background()); err != nil {
		t.Fatalf("mark published: %v", err)
	}
	if manager.HasUnpublishedChanges() {
		t.Fatal("published draft has no pending changes")
	}

	if err := manager.SetDraft(context.Background(), draftWithTitle("v2")); err != nil {
		t.Fatalf("edit: %v", err)
	}
	if !manager.HasUnpublishedChanges() {
		t.Fatal("edits after publish count as unpublished changes")
	}
}

func TestSubscribeNotifiesAndUnsubscribes(t *testing.T) {
	manager, _ := newTestManager(t, remote.NewMemoryStore(), NewMemoryCache())

	var got []Snapshot
	unsubscribe := manager.Subscribe(func(s Snapshot) {
		got = append(got, s)
	})

	if err := manager.SetDraft(context.Background(), draftWithTitle("one")); err != nil {
		t.Fatalf("edit: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected one notification, got %d", len(got))
	}
	if got[0].Draft.Sections[0].Title != "one" {
		t.Fatalf("snapshot carries the new draft, got %q", got[0].Draft.Sections[0].Title)
	}

	unsubscribe()
	if err := manager.SetDraft(context.Background(), draftWithTitle("two")); err != nil {
		t.Fatalf("edit: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("unsubscribed observer must not fire, got %d notifications", len(got))
	}
}

func TestCloseFlushesPendingAutosave(t *testing.T) {
	store := remote.NewMemoryStore()
	sched := scheduler.NewManualScheduler()
	manager := NewManager(testBusinessID, store, NewMemoryCache(), WithScheduler(sched))

	if err := manager.SetDraft(context.Background(), draftWithTitle("unsaved")); err != nil {
		t.Fatalf("edit: %v", err)
	}
	if err := manager.Close(context.Background()); err != nil {
		t.Fatalf("close: %v", err)
	}

	if store.SaveCalls() != 1 {
		t.Fatalf("close must flush the pending edit, got %d saves", store.SaveCalls())
	}
	if err := manager.SetDraft(context.Background(), draftWithTitle("late")); !errors.Is(err, ErrClosed) {
		t.Fatalf("mutation after close must fail with ErrClosed, got %v", err)
	}
}

func TestMemoryCacheClonesRecords(t *testing.T) {
	cache := NewMemoryCache()
	record := &CacheRecord{
		BusinessID: testBusinessID,
		Draft:      draftWithTitle("stored"),
		UpdatedAt:  time.Now(),
	}
	if err := cache.Put(context.Background(), record); err != nil {
		t.Fatalf("put: %v", err)
	}

	record.Draft.Sections[0].Title = "mutated after put"

	got, err := cache.Get(context.Background(), testBusinessID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Draft.Sections[0].Title != "stored" {
		t.Fatalf("cache must clone on put, got %q", got.Draft.Sections[0].Title)
	}

	got.Draft.Sections[0].Title = "mutated after get"
	again, err := cache.Get(context.Background(), testBusinessID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if again.Draft.Sections[0].Title != "stored" {
		t.Fatalf("cache must clone on get, got %q", again.Draft.Sections[0].Title)
	}
}

func TestMemoryCacheMiss(t *testing.T) {
	cache := NewMemoryCache()
	if _, err := cache.Get(context.Background(), "absent"); !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("expected ErrCacheMiss, got %v", err)
	}
	if err := cache.Delete(context.Background(), "absent"); err != nil {
		t.Fatalf("deleting an absent record must be a no-op: %v", err)
	}
}
