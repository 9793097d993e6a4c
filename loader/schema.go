package loader

import (
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"
)

// schemaJSON is the embedded JSON Schema for extractor metadata
// validation. Class byte sizes are trusted extractor output; the schema
// checks shape, not ABI layout.
var schemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "$id": "https://ritual.dev/schemas/extractor-metadata/v1",
  "title": "ritual extractor metadata",
  "description": "Schema for the type-and-method metadata produced by the C++ header extractor.",
  "type": "object",
  "required": ["library", "types", "headers"],
  "additionalProperties": false,
  "properties": {
    "library": { "$ref": "#/$defs/library_info" },
    "types": {
      "type": "object",
      "additionalProperties": { "$ref": "#/$defs/type_info" }
    },
    "headers": {
      "type": "array",
      "items": { "$ref": "#/$defs/header" }
    }
  },
  "$defs": {
    "library_info": {
      "type": "object",
      "required": ["name"],
      "additionalProperties": false,
      "properties": {
        "name": { "type": "string", "minLength": 1 },
        "version": { "type": "string" },
        "include": { "type": "string" }
      }
    },
    "type_info": {
      "type": "object",
      "required": ["kind", "origin"],
      "additionalProperties": false,
      "properties": {
        "kind": { "type": "string", "enum": ["primitive", "enum", "flags", "class", "alias", "unsupported", "unknown"] },
        "origin": { "type": "string", "enum": ["builtin", "library", "unrecognized"] },
        "header": { "type": "string", "pattern": "^[a-z0-9_]+$" },
        "size": { "type": "integer", "minimum": 1 },
        "enumerators": {
          "type": "array",
          "items": {
            "type": "object",
            "required": ["name", "value"],
            "additionalProperties": false,
            "properties": {
              "name": { "type": "string", "minLength": 1 },
              "value": { "type": "integer" }
            }
          }
        },
        "enum": { "type": "string" },
        "target": { "$ref": "#/$defs/cpp_type" }
      }
    },
    "cpp_type": {
      "type": "object",
      "required": ["base"],
      "additionalProperties": false,
      "properties": {
        "base": { "type": "string", "minLength": 1 },
        "indirection": { "type": "string", "enum": ["", "ptr", "ref"] },
        "const": { "type": "boolean" }
      }
    },
    "argument": {
      "type": "object",
      "required": ["name", "type"],
      "additionalProperties": false,
      "properties": {
        "name": { "type": "string", "pattern": "^[A-Za-z_][A-Za-z0-9_]*$" },
        "type": { "$ref": "#/$defs/cpp_type" }
      }
    },
    "method": {
      "type": "object",
      "required": ["name"],
      "additionalProperties": false,
      "properties": {
        "name": { "type": "string", "minLength": 1 },
        "class": { "type": "string" },
        "constructor": { "type": "boolean" },
        "destructor": { "type": "boolean" },
        "static": { "type": "boolean" },
        "protected": { "type": "boolean" },
        "signal": { "type": "boolean" },
        "args": {
          "type": "array",
          "items": { "$ref": "#/$defs/argument" }
        },
        "returns": { "$ref": "#/$defs/cpp_type" }
      }
    },
    "header": {
      "type": "object",
      "required": ["name"],
      "additionalProperties": false,
      "properties": {
        "name": { "type": "string", "pattern": "^[a-z0-9_]+$" },
        "methods": {
          "type": "array",
          "items": { "$ref": "#/$defs/method" }
        }
      }
    }
  }
}`

var compiledSchema *jsonschema.Schema

func init() {
	// Decode the schema JSON into a generic value first
	var schemaDoc interface{}
	if err := json.Unmarshal([]byte(schemaJSON), &schemaDoc); err != nil {
		panic(fmt.Sprintf("failed to decode schema JSON: %v", err))
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource("schema.json", schemaDoc); err != nil {
		panic(fmt.Sprintf("failed to add schema resource: %v", err))
	}
	var err error
	compiledSchema, err = c.Compile("schema.json")
	if err != nil {
		panic(fmt.Sprintf("failed to compile schema: %v", err))
	}
}

// SchemaJSON returns the embedded metadata JSON Schema text.
func SchemaJSON() string {
	return schemaJSON
}

// ValidateSchema validates raw YAML bytes against the metadata JSON Schema.
func ValidateSchema(yamlData []byte) error {
	// Parse YAML into a generic structure
	var raw interface{}
	if err := yaml.Unmarshal(yamlData, &raw); err != nil {
		return fmt.Errorf("parsing YAML: %w", err)
	}

	converted := convertYAMLToJSON(raw)

	if err := compiledSchema.Validate(converted); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}

// convertYAMLToJSON converts YAML-parsed values to JSON-compatible types.
// yaml.v3 parses maps as map[string]interface{} which is already
// JSON-compatible, but nested values need recursive handling and integers
// must become float64 for the schema validator.
func convertYAMLToJSON(v interface{}) interface{} {
	switch v := v.(type) {
	case map[string]interface{}:
		result := make(map[string]interface{}, len(v))
		for k, val := range v {
			result[k] = convertYAMLToJSON(val)
		}
		return result
	case []interface{}:
		result := make([]interface{}, len(v))
		for i, val := range v {
			result[i] = convertYAMLToJSON(val)
		}
		return result
	case int:
		return float64(v)
	case int64:
		return float64(v)
	default:
		return v
	}
}
