// Copyright (c) 2025 Sonic Operations Ltd
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at soniclabs.com/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package sort

import (
	"math/rand"
	stdsort "sort"
	"testing"

	"github.com/stretchr/testify/require"
)

// sortedOracle returns a copy sorted with the standard library.
func sortedOracle(elems []int) []int {
	res := make([]int, len(elems))
	copy(res, elems)
	stdsort.Ints(res)
	return res
}

func TestSort_AllSizeRegimesMatchOracle(t *testing.T) {
	require := require.New(t)

	rng := rand.New(rand.NewSource(5))
	// Sizes on both sides of each algorithm boundary.
	for _, size := range []int{
		0, 1, 2,
		insertionThreshold - 1, insertionThreshold, insertionThreshold + 1,
		500,
		mergeThreshold - 1, mergeThreshold, mergeThreshold + 1,
		10 * mergeThreshold,
	} {
		elems := make([]int, size)
		for i := range elems {
			elems[i] = rng.Intn(size + 1)
		}
		require.Equal(sortedOracle(elems), Sort(elems), "size %d", size)
	}
}

func TestSort_InputStaysUnchanged(t *testing.T) {
	require := require.New(t)

	elems := []int{3, 1, 2}
	sorted := Sort(elems)
	require.Equal([]int{1, 2, 3}, sorted)
	require.Equal([]int{3, 1, 2}, elems)
}

func TestSort_DegeneratePatterns(t *testing.T) {
	require := require.New(t)

	for name, build := range map[string]func(i int) int{
		"ascending":  func(i int) int { return i },
		"descending": func(i int) int { return -i },
		"constant":   func(i int) int { return 7 },
		"sawtooth":   func(i int) int { return i % 13 },
	} {
		for _, size := range []int{10, 100, 5000} {
			elems := make([]int, size)
			for i := range elems {
				elems[i] = build(i)
			}
			require.Equal(sortedOracle(elems), Sort(elems), "%s size %d", name, size)
		}
	}
}

func TestSortFunc_CustomOrder(t *testing.T) {
	require := require.New(t)

	elems := []string{"ccc", "a", "BB"}
	byLength := func(a, b string) int { return len(a) - len(b) }
	require.Equal([]string{"a", "BB", "ccc"}, SortFunc(elems, byLength))
	require.True(IsSortedFunc(SortFunc(elems, byLength), byLength))
}

func TestIsSorted_DetectsOrder(t *testing.T) {
	require := require.New(t)

	require.True(IsSorted([]int{}))
	require.True(IsSorted([]int{1}))
	require.True(IsSorted([]int{1, 2, 2, 3}))
	require.False(IsSorted([]int{2, 1}))
	require.False(IsSorted([]int{1, 3, 2}))
}

func Benchmark_Sort(b *testing.B) {
	rng := rand.New(rand.NewSource(5))
	for _, size := range []int{16, 512, 16 * 1024} {
		elems := make([]int, size)
		for i := range elems {
			elems[i] = rng.Int()
		}
		b.Run(benchName(size), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				Sort(elems)
			}
		})
	}
}

func benchName(size int) string {
	switch {
	case size < insertionThreshold:
		return "insertion"
	case size < mergeThreshold:
		return "quick"
	default:
		return "merge"
	}
}
