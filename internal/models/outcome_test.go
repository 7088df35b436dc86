package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuccessOutcomeMarshalsDataOnly(t *testing.T) {
	outcome := SuccessOutcome(NewProductRecord("B08N5WRWNW"))

	data, err := json.Marshal(outcome)
	require.NoError(t, err)

	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Contains(t, decoded, "data")
	assert.NotContains(t, decoded, "error")
	assert.True(t, outcome.OK())
}

func TestFailureOutcomeMarshalsErrorOnly(t *testing.T) {
	outcome := FailureOutcome("something went wrong", 2)

	data, err := json.Marshal(outcome)
	require.NoError(t, err)

	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Contains(t, decoded, "error")
	assert.NotContains(t, decoded, "data")
	assert.False(t, outcome.OK())
	assert.Equal(t, 2, outcome.Attempts)
}

func TestNewProductRecordDefaults(t *testing.T) {
	record := NewProductRecord("B000000000")

	data, err := json.Marshal(record)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))

	// Every field is present in the JSON shape, nullable ones as null.
	for _, key := range []string{
		"asin", "title", "price", "original_price", "discount_percentage",
		"rating", "reviewCount", "availability", "features", "description", "images",
	} {
		assert.Contains(t, decoded, key)
	}

	assert.Equal(t, "N/A", decoded["title"])
	assert.Equal(t, "0", decoded["rating"])
	assert.Nil(t, decoded["original_price"])
	assert.Equal(t, []any{}, decoded["features"])
	assert.Equal(t, []any{}, decoded["images"])
}
