package rossum

import (
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// resultSchemaJSON describes the terminal payload shape the service returns.
// Leaf fields must carry a value and score, composite fields a content list.
const resultSchemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["status"],
  "properties": {
    "status": {"enum": ["processing", "ready", "error"]},
    "language": {"type": "string"},
    "currency": {"type": "string"},
    "message": {"type": "string"},
    "fields": {"type": "array", "items": {"$ref": "#/definitions/field"}},
    "tables": {"type": "array", "items": {"$ref": "#/definitions/table"}}
  },
  "definitions": {
    "field": {
      "type": "object",
      "required": ["name"],
      "properties": {
        "name": {"type": "string"},
        "title": {"type": "string"},
        "value": {"type": "string"},
        "score": {"type": "number", "minimum": 0, "maximum": 1},
        "content": {"type": "array", "items": {"$ref": "#/definitions/field"}}
      },
      "oneOf": [
        {"required": ["value", "score"]},
        {"required": ["content"]}
      ]
    },
    "table": {
      "type": "object",
      "required": ["page", "rows"],
      "properties": {
        "page": {"type": "integer"},
        "rows": {
          "type": "array",
          "items": {
            "type": "object",
            "required": ["type", "cells"],
            "properties": {
              "type": {"enum": ["header", "data"]},
              "cells": {
                "type": "array",
                "items": {
                  "type": "object",
                  "properties": {"content": {"type": ["string", "null"]}}
                }
              }
            }
          }
        }
      }
    }
  }
}`

var resultSchema = jsonschema.MustCompileString("result.schema.json", resultSchemaJSON)

// ValidateResult checks a terminal payload against the result schema.
func ValidateResult(raw json.RawMessage) error {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return fmt.Errorf("parse result: %w", err)
	}
	if err := resultSchema.Validate(v); err != nil {
		return fmt.Errorf("result does not match schema: %w", err)
	}
	return nil
}
