package workload

import (
	"github.com/pingcap/errors"
)

// Partition splits seq into parts contiguous blocks. The first parts-1 blocks
// hold len(seq)/parts elements each and the last block holds the rest, so it is
// the only one that can be longer. When len(seq) < parts the leading blocks are
// empty. Blocks share seq's backing array but are capped at their own length.
func Partition[T any](seq []T, parts int) ([][]T, error) {
	if parts < 1 {
		return nil, errors.Errorf("partition count must be >= 1: %d", parts)
	}

	size := len(seq) / parts
	blocks := make([][]T, parts)
	for i := 0; i < parts; i++ {
		lo := i * size
		hi := lo + size
		if i == parts-1 {
			hi = len(seq)
		}
		blocks[i] = seq[lo:hi:hi]
	}
	return blocks, nil
}
