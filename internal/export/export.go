// Package export serializes detection results to JSON, validated against an
// embedded schema before anything touches disk.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"pylens/internal/detect"
	"pylens/internal/provider"
)

// DocumentFindings groups one document's findings.
type DocumentFindings struct {
	Doc      provider.DocumentID `json:"doc"`
	Findings []detect.Finding    `json:"findings"`
}

// Report is the exported payload.
type Report struct {
	Workspace string             `json:"workspace"`
	Documents []DocumentFindings `json:"documents"`
}

// Marshal validates the report against the schema and renders indented JSON.
func Marshal(r *Report) ([]byte, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, err
	}
	if err := Validate(data); err != nil {
		return nil, err
	}
	return data, nil
}

// WriteFile validates and writes the report to path.
func WriteFile(path string, r *Report) error {
	data, err := Marshal(r)
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

// Validate checks raw JSON against the report schema.
func Validate(data []byte) error {
	var v any
	if err := json.Unmarshal(bytes.TrimSpace(data), &v); err != nil {
		return fmt.Errorf("invalid report json: %w", err)
	}
	if err := compiledSchema.Validate(v); err != nil {
		return fmt.Errorf("report schema violation: %w", err)
	}
	return nil
}

var compiledSchema = mustCompile()

func mustCompile() *jsonschema.Schema {
	c := jsonschema.NewCompiler()
	if err := c.AddResource("report.schema.json", strings.NewReader(reportSchema)); err != nil {
		panic(err)
	}
	return c.MustCompile("report.schema.json")
}

const reportSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["workspace", "documents"],
  "properties": {
    "workspace": {"type": "string"},
    "documents": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["doc", "findings"],
        "properties": {
          "doc": {"type": "string"},
          "findings": {
            "type": "array",
            "items": {
              "type": "object",
              "required": ["kind", "range", "targets"],
              "properties": {
                "kind": {"enum": ["override", "implementation", "subclassed"]},
                "range": {"$ref": "#/$defs/range"},
                "targets": {
                  "type": "array",
                  "minItems": 1,
                  "items": {
                    "type": "object",
                    "required": ["label", "location"],
                    "properties": {
                      "label": {"type": "string"},
                      "location": {
                        "type": "object",
                        "required": ["doc", "range"],
                        "properties": {
                          "doc": {"type": "string"},
                          "range": {"$ref": "#/$defs/range"}
                        }
                      }
                    }
                  }
                }
              }
            }
          }
        }
      }
    }
  },
  "$defs": {
    "position": {
      "type": "object",
      "required": ["line", "character"],
      "properties": {
        "line": {"type": "integer", "minimum": 0},
        "character": {"type": "integer", "minimum": 0}
      }
    },
    "range": {
      "type": "object",
      "required": ["start", "end"],
      "properties": {
        "start": {"$ref": "#/$defs/position"},
        "end": {"$ref": "#/$defs/position"}
      }
    }
  }
}`
