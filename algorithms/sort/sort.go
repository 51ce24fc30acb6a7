// Copyright (c) 2025 Sonic Operations Ltd
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at soniclabs.com/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package sort provides sorting that adapts its algorithm to the input
// size: insertion sort for tiny inputs, quicksort for the midrange, and
// merge sort for large inputs where its guaranteed O(n log n) and
// sequential access pattern pay off.
package sort

import "golang.org/x/exp/constraints"

const (
	// insertionThreshold is the size below which insertion sort beats the
	// recursive algorithms on constant factors.
	insertionThreshold = 20

	// mergeThreshold is the size from which merge sort is preferred over
	// quicksort.
	mergeThreshold = 1000
)

// Sort returns a sorted copy of the given elements, in ascending order.
// The input is left unchanged.
func Sort[T constraints.Ordered](elems []T) []T {
	return SortFunc(elems, func(a, b T) int {
		switch {
		case a < b:
			return -1
		case a > b:
			return 1
		default:
			return 0
		}
	})
}

// SortFunc returns a copy of the given elements sorted by the comparison
// function, which must return a negative number if a orders before b, a
// positive number if a orders after b, and zero otherwise. The sort is not
// stable. The input is left unchanged.
func SortFunc[T any](elems []T, cmp func(a, b T) int) []T {
	res := make([]T, len(elems))
	copy(res, elems)
	sortSlice(res, cmp)
	return res
}

// IsSorted reports whether the elements are in ascending order.
func IsSorted[T constraints.Ordered](elems []T) bool {
	return IsSortedFunc(elems, func(a, b T) int {
		switch {
		case a < b:
			return -1
		case a > b:
			return 1
		default:
			return 0
		}
	})
}

// IsSortedFunc reports whether the elements are ordered by the comparison
// function.
func IsSortedFunc[T any](elems []T, cmp func(a, b T) int) bool {
	for i := 1; i < len(elems); i++ {
		if cmp(elems[i-1], elems[i]) > 0 {
			return false
		}
	}
	return true
}

func sortSlice[T any](elems []T, cmp func(a, b T) int) {
	switch n := len(elems); {
	case n < insertionThreshold:
		insertionSort(elems, cmp)
	case n < mergeThreshold:
		quickSort(elems, cmp)
	default:
		mergeSort(elems, make([]T, len(elems)), cmp)
	}
}

func insertionSort[T any](elems []T, cmp func(a, b T) int) {
	for i := 1; i < len(elems); i++ {
		v := elems[i]
		j := i - 1
		for j >= 0 && cmp(elems[j], v) > 0 {
			elems[j+1] = elems[j]
			j--
		}
		elems[j+1] = v
	}
}

func quickSort[T any](elems []T, cmp func(a, b T) int) {
	for len(elems) >= insertionThreshold {
		p := partition(elems, cmp)
		// Recurse into the smaller half to bound the stack depth.
		if p < len(elems)-p-1 {
			quickSort(elems[:p], cmp)
			elems = elems[p+1:]
		} else {
			quickSort(elems[p+1:], cmp)
			elems = elems[:p]
		}
	}
	insertionSort(elems, cmp)
}

// partition reorders elems around a median-of-three pivot and returns the
// pivot's final position.
func partition[T any](elems []T, cmp func(a, b T) int) int {
	hi := len(elems) - 1
	mid := hi / 2
	if cmp(elems[mid], elems[0]) < 0 {
		elems[mid], elems[0] = elems[0], elems[mid]
	}
	if cmp(elems[hi], elems[0]) < 0 {
		elems[hi], elems[0] = elems[0], elems[hi]
	}
	if cmp(elems[hi], elems[mid]) < 0 {
		elems[hi], elems[mid] = elems[mid], elems[hi]
	}
	elems[mid], elems[hi-1] = elems[hi-1], elems[mid]
	pivot := elems[hi-1]

	i := 0
	for j := 1; j < hi-1; j++ {
		if cmp(elems[j], pivot) < 0 {
			i++
			elems[i], elems[j] = elems[j], elems[i]
		}
	}
	elems[i+1], elems[hi-1] = elems[hi-1], elems[i+1]
	return i + 1
}

func mergeSort[T any](elems, buf []T, cmp func(a, b T) int) {
	if len(elems) < mergeThreshold {
		sortSlice(elems, cmp)
		return
	}
	mid := len(elems) / 2
	mergeSort(elems[:mid], buf[:mid], cmp)
	mergeSort(elems[mid:], buf[mid:], cmp)
	copy(buf, elems)
	merge(elems, buf[:mid], buf[mid:], cmp)
}

// merge combines the two sorted halves into dst, preserving the relative
// order of equal elements across the halves.
func merge[T any](dst, left, right []T, cmp func(a, b T) int) {
	i, j := 0, 0
	for k := range dst {
		switch {
		case i == len(left):
			dst[k] = right[j]
			j++
		case j == len(right) || cmp(right[j], left[i]) >= 0:
			dst[k] = left[i]
			i++
		default:
			dst[k] = right[j]
			j++
		}
	}
}
