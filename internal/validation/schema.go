package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

var (
	ErrSchemaInvalid    = errors.New("schema invalid")
	ErrSchemaValidation = errors.New("schema validation failed")
)

// ValidationIssue captures a single validation failure.
type ValidationIssue struct {
	Location string
	Message  string
}

// PayloadValidationError surfaces validation issues with schema-aware context.
type PayloadValidationError struct {
	Issues []ValidationIssue
	Cause  error
}

func (e *PayloadValidationError) Error() string {
	if len(e.Issues) == 0 {
		if e.Cause != nil {
			return e.Cause.Error()
		}
		return ErrSchemaValidation.Error()
	}
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		location := strings.TrimSpace(issue.Location)
		if location == "" {
			location = "#"
		} else if !strings.HasPrefix(location, "#") {
			location = "#" + location
		}
		if issue.Message == "" {
			parts = append(parts, location)
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", location, issue.Message))
	}
	return strings.Join(parts, "; ")
}

func (e *PayloadValidationError) Unwrap() error {
	return ErrSchemaValidation
}

// Issues extracts validation issues from an error.
func Issues(err error) []ValidationIssue {
	if err == nil {
		return nil
	}
	var payloadErr *PayloadValidationError
	if errors.As(err, &payloadErr) && payloadErr != nil {
		return payloadErr.Issues
	}
	var validationErr *jsonschema.ValidationError
	if errors.As(err, &validationErr) && validationErr != nil {
		return collectValidationIssues(validationErr)
	}
	return []ValidationIssue{{Message: err.Error()}}
}

// siteConfigSchema is the structural contract a remotely fetched draft must
// satisfy before it may replace a locally cached config. Section payloads are
// intentionally permissive beyond the discriminator fields; forward
// compatibility with newer section attributes matters more than tightness.
const siteConfigSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["business_id", "theme", "sections"],
  "properties": {
    "version": {"type": "string"},
    "business_id": {"type": "string", "minLength": 1},
    "theme": {
      "type": "object",
      "properties": {
        "accent": {"type": "string"},
        "mode": {"enum": ["light", "dark"]},
        "typography": {
          "type": "object",
          "properties": {
            "preset": {"type": "string"},
            "display_scale": {"type": "string"},
            "text_scale": {"type": "string"},
            "adaptive_titles": {"type": "boolean"}
          }
        }
      }
    },
    "sections": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["type"],
        "properties": {
          "id": {"type": "string"},
          "type": {"type": "string", "minLength": 1},
          "slug": {"type": "string"},
          "title": {"type": "string"},
          "subtitle": {"type": "string"},
          "body": {"type": "string"}
        }
      }
    },
    "meta": {"type": "object"}
  }
}`

var (
	siteConfigCompiled *jsonschema.Schema
	siteConfigOnce     sync.Once
	siteConfigErr      error
)

// ValidateSiteConfigPayload checks a raw draft document against the site
// config contract. A nil error means the payload is safe to decode and adopt.
func ValidateSiteConfigPayload(payload map[string]any) error {
	siteConfigOnce.Do(func() {
		siteConfigCompiled, siteConfigErr = compileSchema([]byte(siteConfigSchema))
	})
	if siteConfigErr != nil {
		return fmt.Errorf("%w: %v", ErrSchemaInvalid, siteConfigErr)
	}
	if payload == nil {
		payload = map[string]any{}
	}
	if err := siteConfigCompiled.Validate(payload); err != nil {
		return &PayloadValidationError{
			Issues: Issues(err),
			Cause:  err,
		}
	}
	return nil
}

// ValidateSiteConfigJSON validates a raw JSON document against the site
// config contract.
func ValidateSiteConfigJSON(raw []byte) error {
	if len(bytes.TrimSpace(raw)) == 0 {
		return fmt.Errorf("%w: empty document", ErrSchemaValidation)
	}
	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("%w: %v", ErrSchemaValidation, err)
	}
	return ValidateSiteConfigPayload(payload)
}

func compileSchema(encoded []byte) (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource("schema.json", bytes.NewReader(encoded)); err != nil {
		return nil, err
	}
	return compiler.Compile("schema.json")
}

func collectValidationIssues(err *jsonschema.ValidationError) []ValidationIssue {
	if err == nil {
		return nil
	}
	issues := []ValidationIssue{}
	var walk func(*jsonschema.ValidationError)
	walk = func(node *jsonschema.ValidationError) {
		if node == nil {
			return
		}
		if len(node.Causes) == 0 {
			issues = append(issues, ValidationIssue{
				Location: strings.TrimSpace(node.InstanceLocation),
				Message:  strings.TrimSpace(node.Message),
			})
			return
		}
		for _, cause := range node.Causes {
			walk(cause)
		}
	}
	walk(err)
	return issues
}
