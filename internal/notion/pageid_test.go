package notion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePageID(t *testing.T) {
	const want = "0f1e2d3c-4b5a-6978-8796-a5b4c3d2e1f0"

	tests := []struct {
		name  string
		input string
	}{
		{"bare hex", "0f1e2d3c4b5a69788796a5b4c3d2e1f0"},
		{"dashed", "0f1e2d3c-4b5a-6978-8796-a5b4c3d2e1f0"},
		{"upper case", "0F1E2D3C4B5A69788796A5B4C3D2E1F0"},
		{"surrounding space", "  0f1e2d3c4b5a69788796a5b4c3d2e1f0\n"},
		{"url with slug", "https://www.notion.so/acme/Project-Docs-0f1e2d3c4b5a69788796a5b4c3d2e1f0"},
		{"url with query", "https://www.notion.so/0f1e2d3c4b5a69788796a5b4c3d2e1f0?pvs=4"},
		{"hex looking slug", "https://www.notion.so/deadbeef-cafe-0f1e2d3c4b5a69788796a5b4c3d2e1f0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePageID(tt.input)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestParsePageID_Invalid(t *testing.T) {
	for _, input := range []string{"", "not-an-id", "0f1e2d3c4b5a", "https://www.notion.so/acme"} {
		_, err := ParsePageID(input)
		assert.Error(t, err, input)
	}
}
