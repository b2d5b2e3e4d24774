package render

import (
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/goliatone/go-sitebuilder/siteconfig"
)

func section(typ siteconfig.SectionType) siteconfig.Section {
	return siteconfig.Section{ID: uuid.New(), Type: typ}
}

func TestRenderNormalizesBeforeMapping(t *testing.T) {
	cfg := siteconfig.SiteConfig{
		Sections: []siteconfig.Section{
			section(siteconfig.SectionContentBlock),
			section(siteconfig.SectionHero),
			section(siteconfig.SectionHero), // duplicate singleton
			section(siteconfig.SectionLinksPage),
		},
	}

	result := New().Render(cfg, EvalContext{Surface: SurfaceEditor})

	if len(result.Sections) != 3 {
		t.Fatalf("expected duplicate singleton dropped, got %d sections", len(result.Sections))
	}
	if result.Sections[0].Section.Type != siteconfig.SectionLinksPage {
		t.Fatalf("links page must be pinned first, got %q", result.Sections[0].Section.Type)
	}
}

func TestRenderDocumentVariablesCarryTheme(t *testing.T) {
	cfg := siteconfig.SiteConfig{
		Theme: siteconfig.SiteTheme{Mode: siteconfig.ModeDark, Accent: "green"},
	}

	result := New().Render(cfg, EvalContext{Surface: SurfaceEditor})

	if result.DocumentVariables["--sb-color-surface"] != "#111827" {
		t.Fatalf("dark surface missing: %q", result.DocumentVariables["--sb-color-surface"])
	}
	if result.DocumentVariables["--sb-color-brand"] != "#22c55e" {
		t.Fatalf("green dark brand missing: %q", result.DocumentVariables["--sb-color-brand"])
	}
	if result.Resolved.Mode != siteconfig.ModeDark {
		t.Fatalf("resolved mode = %q", result.Resolved.Mode)
	}
}

func TestRenderSectionVariablesAreNamespaced(t *testing.T) {
	hero := section(siteconfig.SectionHero)
	hero.Align = siteconfig.AlignCenter
	hero.Background = siteconfig.BackgroundAlt

	result := New().Render(siteconfig.SiteConfig{
		Sections: []siteconfig.Section{hero},
	}, EvalContext{Surface: SurfaceEditor})

	vars := result.Sections[0].Variables
	if vars["--sb-justify"] != "center" {
		t.Fatalf("justify = %q", vars["--sb-justify"])
	}
	for key := range vars {
		if !strings.HasPrefix(key, "--sb-") {
			t.Fatalf("key %q escapes the reserved namespace", key)
		}
	}
}

func TestRenderContentBlockBodyHTML(t *testing.T) {
	block := section(siteconfig.SectionContentBlock)
	block.Body = "# Opening Hours\n\nVisit **us** today."

	result := New().Render(siteconfig.SiteConfig{
		Sections: []siteconfig.Section{block},
	}, EvalContext{Surface: SurfaceEditor})

	html := result.Sections[0].BodyHTML
	if !strings.Contains(html, "<h1") {
		t.Fatalf("heading not rendered: %q", html)
	}
	if !strings.Contains(html, "<strong>us</strong>") {
		t.Fatalf("emphasis not rendered: %q", html)
	}
}

func TestRenderHeroBodyIsNotMarkdown(t *testing.T) {
	hero := section(siteconfig.SectionHero)
	hero.Body = "# not markdown"

	result := New().Render(siteconfig.SiteConfig{
		Sections: []siteconfig.Section{hero},
	}, EvalContext{Surface: SurfaceEditor})

	if result.Sections[0].BodyHTML != "" {
		t.Fatalf("only content blocks render markdown, got %q", result.Sections[0].BodyHTML)
	}
}

func TestRenderPublishedLinksOnlyMutualExclusion(t *testing.T) {
	cfg := siteconfig.SiteConfig{
		Sections: []siteconfig.Section{
			section(siteconfig.SectionLinksPage),
			section(siteconfig.SectionHero),
			section(siteconfig.SectionContentBlock),
		},
	}
	pipeline := New()

	linksOnly := pipeline.Render(cfg, EvalContext{Surface: SurfacePublished, LinksOnly: true})
	for _, s := range linksOnly.Sections {
		isLinks := s.Section.Type == siteconfig.SectionLinksPage
		if s.Visible != isLinks {
			t.Fatalf("links-only: %s visible=%v", s.Section.Type, s.Visible)
		}
	}

	fullSite := pipeline.Render(cfg, EvalContext{Surface: SurfacePublished})
	for _, s := range fullSite.Sections {
		isLinks := s.Section.Type == siteconfig.SectionLinksPage
		if s.Visible == isLinks {
			t.Fatalf("full site: %s visible=%v", s.Section.Type, s.Visible)
		}
	}
}

func TestRenderEditorSelectionPolicy(t *testing.T) {
	cfg := siteconfig.SiteConfig{
		Sections: []siteconfig.Section{
			section(siteconfig.SectionLinksPage), // pinned to index 0
			section(siteconfig.SectionHero),
		},
	}
	pipeline := New()

	selected := pipeline.Render(cfg, EvalContext{Surface: SurfaceEditor, SelectedIndex: 0})
	if !selected.Sections[0].Visible {
		t.Fatal("selected links page must be visible")
	}

	unselected := pipeline.Render(cfg, EvalContext{Surface: SurfaceEditor, SelectedIndex: 1})
	if unselected.Sections[0].Visible {
		t.Fatal("unselected links page must be hidden in the editor")
	}
	if !unselected.Sections[1].Visible {
		t.Fatal("always-render sections stay visible regardless of selection")
	}

	preview := pipeline.Render(cfg, EvalContext{Surface: SurfaceEditor, SelectedIndex: 1, IsPreview: true})
	if !preview.Sections[0].Visible {
		t.Fatal("preview renders everything")
	}
}

func TestRenderAudienceFilter(t *testing.T) {
	members := section(siteconfig.SectionContentBlock)
	members.Audience = "members"
	everyone := section(siteconfig.SectionContentBlock)

	cfg := siteconfig.SiteConfig{Sections: []siteconfig.Section{members, everyone}}
	pipeline := New()

	open := pipeline.Render(cfg, EvalContext{Surface: SurfaceEditor})
	if !open.Sections[0].Visible || !open.Sections[1].Visible {
		t.Fatal("empty audience renders everything")
	}

	guests := pipeline.Render(cfg, EvalContext{Surface: SurfaceEditor, Audience: "guests"})
	if guests.Sections[0].Visible {
		t.Fatal("mismatched audience must hide the section")
	}
	if !guests.Sections[1].Visible {
		t.Fatal("sections without an audience always render")
	}

	matched := pipeline.Render(cfg, EvalContext{Surface: SurfaceEditor, Audience: "Members"})
	if !matched.Sections[0].Visible {
		t.Fatal("audience match is case-insensitive")
	}
}

func TestRenderAdaptiveTitleFlowsIntoVariables(t *testing.T) {
	hero := section(siteconfig.SectionHero)
	hero.Title = "Hi"

	result := New().Render(siteconfig.SiteConfig{
		Sections: []siteconfig.Section{hero},
	}, EvalContext{Surface: SurfaceEditor})

	if result.Sections[0].Variables["--sb-title-scale"] != "1.1" {
		t.Fatalf("adaptive title scale missing: %v", result.Sections[0].Variables)
	}

	disabled := false
	result = New().Render(siteconfig.SiteConfig{
		Theme: siteconfig.SiteTheme{
			Typography: siteconfig.TypographyConfig{AdaptiveTitles: &disabled},
		},
		Sections: []siteconfig.Section{hero},
	}, EvalContext{Surface: SurfaceEditor})

	if _, ok := result.Sections[0].Variables["--sb-title-scale"]; ok {
		t.Fatal("disabled adaptive titles must not emit a multiplier")
	}
}
