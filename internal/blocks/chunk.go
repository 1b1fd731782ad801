package blocks

// DefaultBatchSize is the per-request block ceiling of the Notion append API.
const DefaultBatchSize = 100

// Chunk splits blocks into consecutive batches of at most limit blocks. The
// last batch may be shorter. A non-positive limit yields a single batch.
func Chunk(blocks []Block, limit int) [][]Block {
	if len(blocks) == 0 {
		return nil
	}
	if limit <= 0 {
		return [][]Block{blocks}
	}

	batches := make([][]Block, 0, (len(blocks)+limit-1)/limit)
	for start := 0; start < len(blocks); start += limit {
		end := min(start+limit, len(blocks))
		batches = append(batches, blocks[start:end:end])
	}
	return batches
}
