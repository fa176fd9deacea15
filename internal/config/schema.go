package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

const schemaURL = "weekly-config.schema.json"

const configSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "mouse": {"type": "boolean"},
    "alt_screen": {"type": "boolean"},
    "column_width": {"type": "integer", "minimum": 14, "maximum": 60},
    "log_file": {"type": "string"},
    "log_level": {"enum": ["debug", "info", "warn", "error"]},
    "no_color": {"type": "boolean"},
    "keys": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "prev_week": {"$ref": "#/definitions/key"},
        "next_week": {"$ref": "#/definitions/key"},
        "current_week": {"$ref": "#/definitions/key"},
        "help": {"$ref": "#/definitions/key"},
        "quit": {"$ref": "#/definitions/key"}
      }
    }
  },
  "definitions": {
    "key": {"type": "string", "minLength": 1}
  }
}`

func compileSchema() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaURL, strings.NewReader(configSchema)); err != nil {
		return nil, err
	}
	return compiler.Compile(schemaURL)
}

// validateDocument checks a decoded TOML document against the schema. The
// document goes through JSON so numbers arrive as json.Number.
func validateDocument(doc map[string]any) error {
	schema, err := compileSchema()
	if err != nil {
		return fmt.Errorf("config: compile schema: %w", err)
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("config: encode document: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return fmt.Errorf("config: decode document: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, schemaProblems(err))
	}
	return nil
}

func schemaProblems(err error) string {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return err.Error()
	}
	var out []string
	collectSchemaProblems(&out, ve)
	return strings.Join(out, "; ")
}

func collectSchemaProblems(out *[]string, err *jsonschema.ValidationError) {
	if len(err.Causes) == 0 {
		loc := strings.TrimPrefix(err.InstanceLocation, "/")
		if loc == "" {
			loc = "(root)"
		}
		*out = append(*out, fmt.Sprintf("%s: %s", strings.ReplaceAll(loc, "/", "."), err.Message))
		return
	}
	for _, cause := range err.Causes {
		collectSchemaProblems(out, cause)
	}
}
