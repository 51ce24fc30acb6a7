// Copyright (c) 2025 Sonic Operations Ltd
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at soniclabs.com/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package search provides binary search over sorted slices and linear
// search over unsorted ones.
package search

import "golang.org/x/exp/constraints"

// Binary returns the position of the target in the sorted slice, or false
// if it is not present. If the target occurs more than once, the position
// of the first occurrence is returned.
func Binary[T constraints.Ordered](elems []T, target T) (int, bool) {
	return BinaryFunc(elems, target, func(a, b T) int {
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

// BinaryFunc returns the position of the target in a slice sorted by the
// given comparison function, or false if it is not present. If the target
// occurs more than once, the position of the first occurrence is returned.
func BinaryFunc[T any](elems []T, target T, cmp func(a, b T) int) (int, bool) {
	// Invariant: the first occurrence, if any, is in [lo, hi).
	lo, hi := 0, len(elems)
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		if cmp(elems[mid], target) < 0 {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo < len(elems) && cmp(elems[lo], target) == 0 {
		return lo, true
	}
	return 0, false
}

// Linear returns the position of the first element for which match returns
// true, or false if there is none.
func Linear[T any](elems []T, match func(T) bool) (int, bool) {
	for i, v := range elems {
		if match(v) {
			return i, true
		}
	}
	return 0, false
}
