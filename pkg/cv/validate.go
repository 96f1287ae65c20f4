package cv

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// The persisted CV blob is opaque to the storage layer, but writes are still
// gated by a JSON Schema so a buggy editor cannot corrupt a document beyond
// repair. Validation is structural only; content rules (masking, dates) live
// in the pipeline.

const cvSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "properties": {
    "summary": {"type": "string", "maxLength": 2000},
    "profession_title": {"type": "string"},
    "specialty_title": {"type": "string"},
    "current_city": {"type": "string"},
    "current_region": {"type": "string"},
    "contact_email": {"type": "string"},
    "contact_phone": {"type": "string"},
    "experiences": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "id": {"type": "string"},
          "job_title": {"type": "string"},
          "company_name": {"type": "string"},
          "company_type": {"type": "string"},
          "company_size": {"type": "string"},
          "city": {"type": "string"},
          "region": {"type": "string"},
          "start_date": {"type": "string", "pattern": "^([0-9]{4}-[0-9]{2})?$"},
          "end_date": {"type": ["string", "null"], "pattern": "^([0-9]{4}-[0-9]{2})?$"},
          "is_current": {"type": "boolean"},
          "description": {"type": "string"},
          "skills": {"type": "array", "items": {"type": "string"}}
        }
      }
    },
    "formations": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "id": {"type": "string"},
          "diploma_type": {"type": "string"},
          "diploma_name": {"type": "string"},
          "school_name": {"type": "string"},
          "school_city": {"type": "string"},
          "school_region": {"type": "string"},
          "year": {"type": "integer"},
          "mention": {"type": "string"}
        }
      }
    },
    "skills": {"type": "array", "items": {"type": "string"}},
    "software": {"type": "array", "items": {"type": "string"}},
    "certifications": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "id": {"type": "string"},
          "name": {"type": "string"},
          "year": {"type": "integer"}
        }
      }
    },
    "languages": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "language": {"type": "string"},
          "level": {"type": "string"}
        }
      }
    },
    "animator": {
      "type": ["object", "null"],
      "properties": {
        "brands_experience": {"type": "array", "items": {"type": "string"}},
        "brand_certifications": {"type": "array", "items": {"type": "string"}},
        "animation_specialties": {"type": "array", "items": {"type": "string"}},
        "mobility_zones": {"type": "array", "items": {"type": "string"}},
        "daily_rate_min": {"type": "integer", "minimum": 0},
        "daily_rate_max": {"type": "integer", "minimum": 0},
        "has_vehicle": {"type": "boolean"},
        "show_photo": {"type": "boolean"},
        "show_rating": {"type": "boolean"},
        "show_contact": {"type": "boolean"}
      }
    }
  }
}`

var compileSchemaOnce = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("cv.schema.json", strings.NewReader(cvSchema)); err != nil {
		return nil, fmt.Errorf("add cv schema: %w", err)
	}
	return compiler.Compile("cv.schema.json")
})

// ValidateContent checks a marshalled StructuredCV against the schema.
func ValidateContent(raw []byte) error {
	schema, err := compileSchemaOnce()
	if err != nil {
		return fmt.Errorf("compile cv schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return fmt.Errorf("unmarshal cv content: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("cv content does not match schema: %w", err)
	}
	return nil
}
