package filters

// Greedy longest-matching-block string similarity. Ratio is 2*M/T where M
// is the total length of matching blocks and T the combined length of both
// inputs, which keeps scoring parity with earlier tooling built on the same
// measure.

type matchSpan struct {
	aLow, aHigh int
	bLow, bHigh int
}

// Ratio returns the similarity of a and b in [0, 1]. Empty input on either
// side scores 0.
func Ratio(a, b string) float64 {
	if a == "" || b == "" {
		return 0.0
	}

	aRunes := []rune(a)
	bRunes := []rune(b)
	matched := totalMatching(aRunes, bRunes)
	return 2.0 * float64(matched) / float64(len(aRunes)+len(bRunes))
}

// totalMatching sums the lengths of all matching blocks: the longest common
// block is found first, then the regions to its left and right are searched
// recursively.
func totalMatching(a, b []rune) int {
	positions := make(map[rune][]int, len(b))
	for j, r := range b {
		positions[r] = append(positions[r], j)
	}

	total := 0
	stack := []matchSpan{{0, len(a), 0, len(b)}}
	for len(stack) > 0 {
		span := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		i, j, size := longestMatch(a, positions, span)
		if size == 0 {
			continue
		}
		total += size
		stack = append(stack,
			matchSpan{span.aLow, i, span.bLow, j},
			matchSpan{i + size, span.aHigh, j + size, span.bHigh},
		)
	}
	return total
}

// longestMatch finds the longest block a[i:i+size] == b[j:j+size] within the
// span. Ties resolve to the earliest i, then the earliest j.
func longestMatch(a []rune, positions map[rune][]int, span matchSpan) (bestI, bestJ, bestSize int) {
	bestI, bestJ = span.aLow, span.bLow

	lengths := make(map[int]int)
	for i := span.aLow; i < span.aHigh; i++ {
		next := make(map[int]int)
		for _, j := range positions[a[i]] {
			if j < span.bLow {
				continue
			}
			if j >= span.bHigh {
				break
			}
			k := lengths[j-1] + 1
			next[j] = k
			if k > bestSize {
				bestI, bestJ, bestSize = i-k+1, j-k+1, k
			}
		}
		lengths = next
	}
	return bestI, bestJ, bestSize
}
