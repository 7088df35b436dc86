package asin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		expected string
		wantErr  bool
	}{
		{
			name:     "dp segment",
			url:      "https://www.amazon.com/dp/B08N5WRWNW",
			expected: "B08N5WRWNW",
		},
		{
			name:     "dp segment with product slug",
			url:      "https://www.amazon.com/Echo-Dot-4th-Gen/dp/B08N5WRWNW/ref=sr_1_1",
			expected: "B08N5WRWNW",
		},
		{
			name:     "gp product segment",
			url:      "https://www.amazon.com/gp/product/B000123456",
			expected: "B000123456",
		},
		{
			name:     "ASIN segment",
			url:      "https://www.amazon.com/exec/obidos/ASIN/B00ABCDEF1",
			expected: "B00ABCDEF1",
		},
		{
			name:     "query string is ignored",
			url:      "https://www.amazon.com/dp/B08N5WRWNW?th=1&psc=1",
			expected: "B08N5WRWNW",
		},
		{
			name:    "no recognized segment",
			url:     "https://www.amazon.com/s?k=echo+dot",
			wantErr: true,
		},
		{
			name:    "code too short",
			url:     "https://www.amazon.com/dp/B08N5",
			wantErr: true,
		},
		{
			name:    "lowercase code rejected",
			url:     "https://www.amazon.com/dp/b08n5wrwnw",
			wantErr: true,
		},
		{
			name:    "empty string",
			url:     "",
			wantErr: true,
		},
		{
			name:    "asin only in query string",
			url:     "https://www.amazon.com/s?url=/dp/B08N5WRWNW",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(tt.url)

			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidURL)
				assert.Empty(t, got)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expected, got)
			}
		})
	}
}

func TestResolveErrorMessage(t *testing.T) {
	_, err := Resolve("https://example.com/not-a-product")
	require.Error(t, err)
	assert.Equal(t, "Could not find a valid 10-character ASIN in the URL. Please check the link.", err.Error())
}
