package mjagged

import "sort"

// computeSplitPositions returns the numParts-1 split positions (indices
// into order) that divide order into numParts weight-balanced runs: run
// j spans [positions[j-1], positions[j]) and holds a cumulative weight as
// close as possible to total/numParts per boundary.
//
// The cumulative-weight prefix is monotonic (weights are non-negative),
// so a binary search per threshold finds the exact crossing point
// directly; when one scan block spans more than one threshold, the
// search naturally returns the same position for both, producing the
// empty inter-slab the spec allows rather than an out-of-order split.
func computeSplitPositions(weights []float64, order []int, numParts int) []int {
	prefix := make([]float64, len(order)+1)
	for i, idx := range order {
		prefix[i+1] = prefix[i] + weights[idx]
	}
	total := prefix[len(prefix)-1]

	positions := make([]int, numParts-1)
	for j := 1; j < numParts; j++ {
		threshold := total * float64(j) / float64(numParts)
		k := sort.Search(len(prefix), func(k int) bool { return prefix[k] >= threshold })
		if k > len(order) {
			k = len(order)
		}
		if j > 1 && k < positions[j-2] {
			k = positions[j-2]
		}
		positions[j-1] = k
	}
	return positions
}
