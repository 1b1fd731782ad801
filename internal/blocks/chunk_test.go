package blocks

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func paragraphs(n int) []Block {
	out := make([]Block, n)
	for i := range out {
		out[i] = Paragraph{Runs: []Run{{Text: fmt.Sprintf("p%d", i)}}}
	}
	return out
}

func TestChunk(t *testing.T) {
	tests := []struct {
		total, limit, wantBatches int
	}{
		{0, 100, 0},
		{1, 100, 1},
		{100, 100, 1},
		{101, 100, 2},
		{250, 100, 3},
		{7, 3, 3},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d_by_%d", tt.total, tt.limit), func(t *testing.T) {
			in := paragraphs(tt.total)
			batches := Chunk(in, tt.limit)
			require.Len(t, batches, tt.wantBatches)

			var joined []Block
			for _, b := range batches {
				assert.LessOrEqual(t, len(b), tt.limit)
				assert.NotEmpty(t, b)
				joined = append(joined, b...)
			}
			if tt.total == 0 {
				assert.Empty(t, joined)
			} else {
				assert.Equal(t, in, joined)
			}
		})
	}
}

func TestChunk_NonPositiveLimit(t *testing.T) {
	in := paragraphs(5)
	assert.Equal(t, [][]Block{in}, Chunk(in, 0))
}
