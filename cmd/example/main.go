package main

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	sitebuilder "github.com/goliatone/go-sitebuilder"
	"github.com/goliatone/go-sitebuilder/internal/domain"
	"github.com/goliatone/go-sitebuilder/internal/remote"
	"github.com/goliatone/go-sitebuilder/siteconfig"
)

// Walks one business through a full editing session against the in-memory
// remote store: hydrate, render, edit, provision, and publish.
func main() {
	ctx := context.Background()

	store := remote.NewMemoryStore()
	store.SeedDraft("biz-demo", remote.DraftPayload{
		Slug: "corner-bakery",
		Draft: &siteconfig.SiteConfig{
			Version:    "1",
			BusinessID: "biz-demo",
			Theme: siteconfig.SiteTheme{
				Accent: "orange",
				Mode:   siteconfig.ModeDark,
			},
			Sections: []siteconfig.Section{
				{Type: siteconfig.SectionHero, Title: "The Corner Bakery", Subtitle: "Fresh every morning"},
				{Type: siteconfig.SectionContentBlock, Title: "Hours", Body: "| Day | Hours |\n| --- | --- |\n| Mon-Fri | 7-3 |"},
			},
		},
	})
	store.QueueSettings("biz-demo",
		remote.SiteSettings{Slug: "corner-bakery", ProvisionStatus: domain.ProvisionProvisioning},
		remote.SiteSettings{Slug: "corner-bakery", ProvisionStatus: domain.ProvisionProvisioned, URL: "https://corner-bakery.sites.example.com"},
	)

	cfg := sitebuilder.DefaultConfig()
	cfg.BusinessID = "biz-demo"
	cfg.Remote.BaseURL = "https://api.example.com"
	cfg.Provision.PollInterval = 200 * time.Millisecond
	cfg.Logging.Format = "console"

	module, err := sitebuilder.New(cfg, sitebuilder.WithRemoteStore(store))
	if err != nil {
		log.Fatalf("new module: %v", err)
	}
	defer func() {
		if err := module.Close(ctx); err != nil {
			log.Printf("close: %v", err)
		}
	}()

	if err := module.Lifecycle().Hydrate(ctx); err != nil {
		log.Fatalf("hydrate: %v", err)
	}
	fmt.Printf("hydrated %q with %d sections\n", module.Lifecycle().Slug(), len(module.Lifecycle().Draft().Sections))

	result, ok := module.RenderDraft(sitebuilder.EvalContext{Surface: sitebuilder.SurfaceEditor})
	if !ok {
		log.Fatal("expected a renderable draft")
	}
	printVariables("document variables", result.DocumentVariables)
	for _, section := range result.Sections {
		fmt.Printf("section %s: %d variables, body=%t\n", section.Section.Type, len(section.Variables), section.BodyHTML != "")
	}

	draft := module.Lifecycle().Draft()
	draft.Sections = append(draft.Sections, siteconfig.Section{
		Type:  siteconfig.SectionSpecialOffers,
		Title: "This week",
		Offers: []siteconfig.Offer{
			{Title: "Sourdough special", Description: "Two loaves, one price", Price: "$6"},
		},
	})
	if err := module.Lifecycle().SetDraft(ctx, draft); err != nil {
		log.Fatalf("edit: %v", err)
	}
	if err := module.Lifecycle().Flush(ctx); err != nil {
		log.Fatalf("flush: %v", err)
	}

	versions, err := module.Lifecycle().ListVersions(ctx)
	if err != nil {
		log.Fatalf("list versions: %v", err)
	}
	for _, v := range versions {
		fmt.Printf("version %s: %d sections current=%t\n", v.ID, v.SectionsCount, v.IsCurrent)
	}

	if err := module.ProvisionSiteHandler().Execute(ctx, sitebuilder.ProvisionSiteCommand{
		BusinessID: "biz-demo",
		Slug:       "corner-bakery",
	}); err != nil {
		log.Fatalf("provision: %v", err)
	}
	state := waitForProvisioning(module)
	if state.ProvisionStatus != domain.ProvisionProvisioned {
		log.Fatalf("provisioning ended in %q: %s", state.ProvisionStatus, state.Err)
	}
	fmt.Printf("provisioned at %s after %d status checks\n", state.URL, state.Attempts)

	if err := module.PublishSiteHandler().Execute(ctx, sitebuilder.PublishSiteCommand{
		BusinessID: "biz-demo",
	}); err != nil {
		log.Fatalf("publish: %v", err)
	}

	public, err := store.PublicSiteData(ctx, "corner-bakery")
	if err != nil {
		log.Fatalf("public site: %v", err)
	}
	fmt.Printf("published %q with %d sections\n", public.Slug, len(public.Config.Sections))
}

func waitForProvisioning(module *sitebuilder.Module) sitebuilder.ProvisionState {
	for {
		state := module.Provision().State()
		if !state.Polling && state.ProvisionStatus != domain.ProvisionProvisioning {
			return state
		}
		time.Sleep(50 * time.Millisecond)
	}
}

func printVariables(label string, vars map[string]string) {
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	fmt.Printf("%s (%d):\n", label, len(vars))
	for _, key := range keys {
		fmt.Printf("  %s: %s\n", key, vars[key])
	}
}
