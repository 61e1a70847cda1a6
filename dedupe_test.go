package rossum

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeduplicateFieldsSingleValue(t *testing.T) {
	t.Run("keeps only the best scoring hypothesis", func(t *testing.T) {
		fields := []Field{
			NewLeafField("total", "Total", "100", 0.7),
			NewLeafField("total", "Total", "105", 0.95),
		}

		out := DeduplicateFields(fields)

		require.Len(t, out, 1)
		assert.Equal(t, "105", out[0].Value)
		assert.Equal(t, 0.95, out[0].Score)
	})

	t.Run("single entry group survives unchanged", func(t *testing.T) {
		fields := []Field{NewLeafField("vat_rate", "VAT Rate", "21", 0.5)}

		out := DeduplicateFields(fields)

		require.Len(t, out, 1)
		assert.Equal(t, fields[0], out[0])
	})

	t.Run("equal scores resolve deterministically", func(t *testing.T) {
		fields := []Field{
			NewLeafField("total", "Total", "first", 0.8),
			NewLeafField("total", "Total", "second", 0.8),
		}

		first := DeduplicateFields(fields)
		second := DeduplicateFields(fields)

		require.Len(t, first, 1)
		assert.Equal(t, first, second)
	})
}

func TestDeduplicateFieldsMultiValue(t *testing.T) {
	t.Run("distinct address lines coexist, duplicates collapse", func(t *testing.T) {
		fields := []Field{
			NewLeafField("sender_addrline", "Sender Address", "123 Main St", 0.9),
			NewLeafField("sender_addrline", "Sender Address", "123 Main St", 0.4),
			NewLeafField("sender_addrline", "Sender Address", "Suite 5", 0.8),
		}

		out := DeduplicateFields(fields)

		require.Len(t, out, 2)
		byValue := map[string]float64{}
		for _, f := range out {
			byValue[f.Value] = f.Score
		}
		assert.Equal(t, 0.9, byValue["123 Main St"])
		assert.Equal(t, 0.8, byValue["Suite 5"])
	})

	t.Run("marker matches as substring", func(t *testing.T) {
		fields := []Field{
			NewLeafField("recipient_addrline_1", "Recipient Address", "a", 0.2),
			NewLeafField("recipient_addrline_1", "Recipient Address", "b", 0.3),
		}

		out := DeduplicateFields(fields)
		assert.Len(t, out, 2)
	})
}

func TestDeduplicateFieldsTaxDetails(t *testing.T) {
	fields := []Field{
		NewCompositeField("tax_details", "Tax Details",
			NewLeafField("tax_detail_rate", "Rate", "21", 0.6),
			NewLeafField("tax_detail_rate", "Rate", "20", 0.9),
			NewLeafField("tax_detail_base", "Base", "500", 0.8),
		),
		NewCompositeField("tax_details", "Tax Details",
			NewLeafField("tax_detail_rate", "Rate", "10", 0.7),
		),
	}

	out := DeduplicateFields(fields)

	// Top-level entry count is unchanged, nested content is canonical.
	require.Len(t, out, 2)
	for _, f := range out {
		assert.True(t, f.Composite())
	}

	rates := map[string]bool{}
	for _, f := range out {
		for _, inner := range f.Content {
			if inner.Name == "tax_detail_rate" {
				rates[inner.Value] = true
			}
		}
	}
	assert.True(t, rates["20"], "best scoring rate of the first group survives")
	assert.False(t, rates["21"], "losing hypothesis is discarded")
	assert.True(t, rates["10"])
}

func TestDeduplicateFieldsProperties(t *testing.T) {
	sample := []Field{
		NewLeafField("total", "Total", "100", 0.7),
		NewLeafField("total", "Total", "105", 0.95),
		NewLeafField("sender_addrline", "Sender Address", "123 Main St", 0.9),
		NewLeafField("sender_addrline", "Sender Address", "123 Main St", 0.4),
		NewLeafField("sender_addrline", "Sender Address", "Suite 5", 0.8),
		NewCompositeField("tax_details", "Tax Details",
			NewLeafField("tax_detail_rate", "Rate", "21", 0.6),
			NewLeafField("tax_detail_rate", "Rate", "20", 0.9),
		),
	}

	t.Run("idempotent", func(t *testing.T) {
		once := DeduplicateFields(sample)
		twice := DeduplicateFields(once)
		assert.Equal(t, once, twice)
	})

	t.Run("empty input yields empty output", func(t *testing.T) {
		assert.Empty(t, DeduplicateFields(nil))
		assert.Empty(t, DeduplicateFields([]Field{}))
	})

	t.Run("input is not mutated", func(t *testing.T) {
		before := make([]Field, len(sample))
		copy(before, sample)

		_ = DeduplicateFields(sample)

		assert.Equal(t, before, sample)
	})
}
