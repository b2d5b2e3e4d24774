package validation

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/goliatone/go-sitebuilder/siteconfig"
)

func validPayload() map[string]any {
	return map[string]any{
		"version":     "1",
		"business_id": "biz-123",
		"theme": map[string]any{
			"accent": "green",
			"mode":   "dark",
		},
		"sections": []any{
			map[string]any{"type": "hero", "title": "Welcome"},
		},
	}
}

func TestValidateSiteConfigPayloadAccepts(t *testing.T) {
	if err := ValidateSiteConfigPayload(validPayload()); err != nil {
		t.Fatalf("valid payload rejected: %v", err)
	}
}

func TestValidateSiteConfigPayloadMissingRequired(t *testing.T) {
	payload := validPayload()
	delete(payload, "business_id")

	err := ValidateSiteConfigPayload(payload)
	if !errors.Is(err, ErrSchemaValidation) {
		t.Fatalf("expected ErrSchemaValidation, got %v", err)
	}
	if len(Issues(err)) == 0 {
		t.Fatal("validation issues must be extractable")
	}
}

func TestValidateSiteConfigPayloadBadMode(t *testing.T) {
	payload := validPayload()
	payload["theme"].(map[string]any)["mode"] = "sepia"

	err := ValidateSiteConfigPayload(payload)
	if !errors.Is(err, ErrSchemaValidation) {
		t.Fatalf("expected ErrSchemaValidation, got %v", err)
	}
}

func TestValidateSiteConfigPayloadSectionNeedsType(t *testing.T) {
	payload := validPayload()
	payload["sections"] = []any{map[string]any{"title": "typeless"}}

	if err := ValidateSiteConfigPayload(payload); !errors.Is(err, ErrSchemaValidation) {
		t.Fatalf("expected ErrSchemaValidation, got %v", err)
	}
}

func TestValidateSiteConfigPayloadUnknownFieldsPass(t *testing.T) {
	payload := validPayload()
	payload["sections"] = []any{
		map[string]any{
			"type":              "hero",
			"future_attribute":  "value",
			"another_extension": 42,
		},
	}

	if err := ValidateSiteConfigPayload(payload); err != nil {
		t.Fatalf("unknown section fields must pass for forward compatibility: %v", err)
	}
}

func TestValidateSiteConfigJSONRoundTrip(t *testing.T) {
	adaptive := true
	cfg := &siteconfig.SiteConfig{
		Version:    "1",
		BusinessID: "biz-123",
		Theme: siteconfig.SiteTheme{
			Accent: "purple",
			Mode:   siteconfig.ModeLight,
			Typography: siteconfig.TypographyConfig{
				DisplayScale:   "dramatic",
				TextScale:      "comfortable",
				AdaptiveTitles: &adaptive,
			},
		},
		Sections: []siteconfig.Section{
			{Type: siteconfig.SectionHero, Title: "Welcome"},
			{Type: siteconfig.SectionContentBlock, Body: "# Hours"},
		},
	}

	raw, err := json.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if err := ValidateSiteConfigJSON(raw); err != nil {
		t.Fatalf("a config written by this module must validate: %v", err)
	}
}

func TestValidateSiteConfigJSONMalformed(t *testing.T) {
	cases := map[string][]byte{
		"empty":      nil,
		"whitespace": []byte("   "),
		"truncated":  []byte(`{"business_id": "biz`),
		"array root": []byte(`[]`),
	}
	for name, raw := range cases {
		if err := ValidateSiteConfigJSON(raw); !errors.Is(err, ErrSchemaValidation) {
			t.Errorf("%s: expected ErrSchemaValidation, got %v", name, err)
		}
	}
}

func TestPayloadValidationErrorFormatting(t *testing.T) {
	err := &PayloadValidationError{
		Issues: []ValidationIssue{
			{Location: "/business_id", Message: "missing"},
			{Location: "", Message: "root issue"},
		},
	}

	msg := err.Error()
	if !strings.Contains(msg, "#/business_id: missing") {
		t.Fatalf("location formatting: %q", msg)
	}
	if !strings.Contains(msg, "#: root issue") {
		t.Fatalf("empty location must render as #: %q", msg)
	}
}

func TestIssuesFromPlainError(t *testing.T) {
	issues := Issues(errors.New("boom"))
	if len(issues) != 1 || issues[0].Message != "boom" {
		t.Fatalf("plain errors wrap into a single issue, got %v", issues)
	}
	if Issues(nil) != nil {
		t.Fatal("nil error yields nil issues")
	}
}
