package sitecmd

import (
	"context"
	"testing"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-sitebuilder/internal/domain"
	"github.com/goliatone/go-sitebuilder/internal/lifecycle"
	"github.com/goliatone/go-sitebuilder/internal/provision"
	"github.com/goliatone/go-sitebuilder/internal/remote"
	"github.com/goliatone/go-sitebuilder/internal/scheduler"
	"github.com/goliatone/go-sitebuilder/siteconfig"
)

const testBusinessID = "biz-123"

func TestProvisionSiteCommandValidate(t *testing.T) {
	valid := ProvisionSiteCommand{BusinessID: testBusinessID, Slug: "my-shop"}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid command rejected: %v", err)
	}

	cases := []ProvisionSiteCommand{
		{Slug: "my-shop"},
		{BusinessID: testBusinessID, Slug: "Bad Slug!"},
		{BusinessID: testBusinessID, Slug: ""},
	}
	for i, cmd := range cases {
		if err := cmd.Validate(); err == nil {
			t.Errorf("case %d: expected validation error for %+v", i, cmd)
		}
	}
}

func TestPublishSiteCommandValidate(t *testing.T) {
	if err := (PublishSiteCommand{BusinessID: testBusinessID}).Validate(); err != nil {
		t.Fatalf("valid command rejected: %v", err)
	}
	if err := (PublishSiteCommand{}).Validate(); err == nil {
		t.Fatal("missing business id must be rejected")
	}
}

func TestRestoreVersionCommandValidate(t *testing.T) {
	valid := RestoreVersionCommand{BusinessID: testBusinessID, VersionID: "v3"}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid command rejected: %v", err)
	}
	if err := (RestoreVersionCommand{BusinessID: testBusinessID}).Validate(); err == nil {
		t.Fatal("missing version id must be rejected")
	}
}

func TestProvisionSiteHandlerDrivesMachine(t *testing.T) {
	store := remote.NewMemoryStore()
	machine := provision.NewMachine(testBusinessID, store, nil,
		provision.WithScheduler(scheduler.NewManualScheduler()))
	t.Cleanup(machine.Close)

	handler := NewProvisionSiteHandler(machine, nil)
	err := handler.Execute(context.Background(), ProvisionSiteCommand{
		BusinessID: testBusinessID,
		Slug:       "my-shop",
	})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}

	if store.ProvisionCalls() != 1 {
		t.Fatalf("provision calls = %d", store.ProvisionCalls())
	}
	if got := machine.State().ProvisionStatus; got != domain.ProvisionProvisioning {
		t.Fatalf("status = %q", got)
	}
}

func TestProvisionSiteHandlerRejectsInvalidMessage(t *testing.T) {
	store := remote.NewMemoryStore()
	machine := provision.NewMachine(testBusinessID, store, nil,
		provision.WithScheduler(scheduler.NewManualScheduler()))
	t.Cleanup(machine.Close)

	handler := NewProvisionSiteHandler(machine, nil)
	err := handler.Execute(context.Background(), ProvisionSiteCommand{Slug: "my-shop"})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
	if store.ProvisionCalls() != 0 {
		t.Fatal("invalid message must not reach the store")
	}
}

func TestPublishSiteHandlerPromotesDraft(t *testing.T) {
	store := remote.NewMemoryStore()
	store.SeedSettings(testBusinessID, remote.SiteSettings{
		ProvisionStatus: domain.ProvisionProvisioned,
		Slug:            "my-shop",
	})

	manager := lifecycle.NewManager(testBusinessID, store, lifecycle.NewMemoryCache(),
		lifecycle.WithScheduler(scheduler.NewManualScheduler()))
	t.Cleanup(func() { manager.Close(context.Background()) })
	if err := manager.SetDraft(context.Background(), &siteconfig.SiteConfig{
		Version:    "1",
		BusinessID: testBusinessID,
		Sections:   []siteconfig.Section{{Type: siteconfig.SectionHero}},
	}); err != nil {
		t.Fatalf("edit: %v", err)
	}

	machine := provision.NewMachine(testBusinessID, store, manager,
		provision.WithScheduler(scheduler.NewManualScheduler()))
	t.Cleanup(machine.Close)
	if err := machine.RefreshStatus(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	handler := NewPublishSiteHandler(machine, nil)
	if err := handler.Execute(context.Background(), PublishSiteCommand{BusinessID: testBusinessID}); err != nil {
		t.Fatalf("execute: %v", err)
	}

	if store.PublishCalls() != 1 {
		t.Fatalf("publish calls = %d", store.PublishCalls())
	}
	if got := machine.State().PublishStatus; got != domain.PublishLive {
		t.Fatalf("publish status = %q", got)
	}
}

func TestRestoreVersionHandlerRestoresDraft(t *testing.T) {
	store := remote.NewMemoryStore()
	manager := lifecycle.NewManager(testBusinessID, store, lifecycle.NewMemoryCache(),
		lifecycle.WithScheduler(scheduler.NewManualScheduler()))
	t.Cleanup(func() { manager.Close(context.Background()) })

	draft := func(title string) *siteconfig.SiteConfig {
		return &siteconfig.SiteConfig{
			Version:    "1",
			BusinessID: testBusinessID,
			Sections:   []siteconfig.Section{{Type: siteconfig.SectionHero, Title: title}},
		}
	}
	if err := manager.SetDraft(context.Background(), draft("original")); err != nil {
		t.Fatalf("edit: %v", err)
	}
	if err := manager.Flush(context.Background()); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if err := manager.SetDraft(context.Background(), draft("newer")); err != nil {
		t.Fatalf("edit: %v", err)
	}
	if err := manager.Flush(context.Background()); err != nil {
		t.Fatalf("flush: %v", err)
	}

	handler := NewRestoreVersionHandler(manager, nil)
	err := handler.Execute(context.Background(), RestoreVersionCommand{
		BusinessID: testBusinessID,
		VersionID:  "v1",
	})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}

	if got := manager.Draft().Sections[0].Title; got != "original" {
		t.Fatalf("restored draft = %q", got)
	}
}
