package quantizer

import (
	"slices"
	"strings"

	"github.com/imagepalette/imagepalette/colour"
	"github.com/imagepalette/imagepalette/internal/security"
)

// collect walks the final tree and folds every surviving leaf into a
// quantized-colour -> pixel-count mapping. The leaf's representative
// colour is the truncating integer mean of its channel sums; distinct
// leaves whose means truncate to the same value fold into one entry
// whose counts are summed, so the pixel total is preserved exactly.
func (t *Tree) collect() map[colour.RGB]int {
	counts := make(map[colour.RGB]int)

	stack := []int32{0}
	for len(stack) > 0 {
		idx := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := &t.nodes[idx]
		if n.isLeaf {
			if n.pixels == 0 {
				continue
			}
			px := uint64(n.pixels)
			rgb := colour.RGB{
				R: security.SafeUint8FromUint64(n.sumR / px),
				G: security.SafeUint8FromUint64(n.sumG / px),
				B: security.SafeUint8FromUint64(n.sumB / px),
			}
			counts[rgb] += n.pixels
			continue
		}

		for _, ci := range n.children {
			if ci != noChild {
				stack = append(stack, ci)
			}
		}
	}

	return counts
}

// Palette flattens the tree's surviving leaves into ranked records:
// descending by pixel count, ties broken by ascending hex string so
// identical inputs always produce an identical ordering.
func (t *Tree) Palette() []colour.Record {
	counts := t.collect()

	records := make([]colour.Record, 0, len(counts))
	for rgb, count := range counts {
		records = append(records, colour.Record{RGB: rgb, Count: count})
	}

	slices.SortFunc(records, func(a, b colour.Record) int {
		if a.Count != b.Count {
			if a.Count > b.Count {
				return -1
			}
			return 1
		}
		return strings.Compare(a.RGB.Hex(), b.RGB.Hex())
	})

	return records
}
