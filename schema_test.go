package rossum

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateResult(t *testing.T) {
	t.Run("accepts a ready payload", func(t *testing.T) {
		assert.NoError(t, ValidateResult(json.RawMessage(readyPayload)))
	})

	t.Run("accepts an error payload", func(t *testing.T) {
		raw := json.RawMessage(`{"status": "error", "message": "Failed to process document"}`)
		assert.NoError(t, ValidateResult(raw))
	})

	t.Run("accepts composite fields and tables", func(t *testing.T) {
		raw := json.RawMessage(`{
			"status": "ready",
			"fields": [{"name": "tax_details", "content": [
				{"name": "tax_detail_rate", "value": "21", "score": 0.8}
			]}],
			"tables": [{"page": 1, "rows": [
				{"type": "header", "cells": [{"content": "Item"}]},
				{"type": "data", "cells": [{}]}
			]}]
		}`)
		assert.NoError(t, ValidateResult(raw))
	})

	t.Run("rejects an unknown status", func(t *testing.T) {
		assert.Error(t, ValidateResult(json.RawMessage(`{"status": "pending"}`)))
	})

	t.Run("rejects a field with neither value nor content", func(t *testing.T) {
		raw := json.RawMessage(`{"status": "ready", "fields": [{"name": "mystery"}]}`)
		assert.Error(t, ValidateResult(raw))
	})

	t.Run("rejects a score out of range", func(t *testing.T) {
		raw := json.RawMessage(`{"status": "ready", "fields": [{"name": "total", "value": "1", "score": 1.5}]}`)
		assert.Error(t, ValidateResult(raw))
	})

	t.Run("rejects malformed JSON", func(t *testing.T) {
		assert.Error(t, ValidateResult(json.RawMessage(`{broken`)))
	})
}
