// Copyright (c) 2025 Sonic Operations Ltd
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at soniclabs.com/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package list

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSmall_OperationsMatchSliceSemantics(t *testing.T) {
	require := require.New(t)

	s := newSmall([]int{1, 2, 3})
	require.Equal(3, s.length())
	require.Equal(2, s.get(1))

	require.Equal([]int{1, 42, 3}, toSlice(s.set(1, 42)))
	require.Equal([]int{1, 42, 2, 3}, toSlice(s.insert(1, 42)))
	require.Equal([]int{42, 1, 2, 3}, toSlice(s.insert(0, 42)))
	require.Equal([]int{1, 2, 3, 42}, toSlice(s.insert(3, 42)))
	require.Equal([]int{1, 3}, toSlice(s.remove(1)))
	require.Equal([]int{2, 3}, toSlice(s.remove(0)))
	require.Equal([]int{1, 2}, toSlice(s.remove(2)))
	require.Equal([]int{1, 2, 3, 4}, toSlice(s.append(4)))
	require.Equal([]int{0, 1, 2, 3}, toSlice(s.prepend(0)))
}

func TestSmall_MutationsLeaveOriginalUnchanged(t *testing.T) {
	require := require.New(t)

	s := newSmall([]int{1, 2, 3})
	_ = s.set(0, 9)
	_ = s.insert(1, 9)
	_ = s.remove(2)
	_ = s.append(9)
	_ = s.prepend(9)
	require.Equal([]int{1, 2, 3}, toSlice(s))
}

func TestSmall_ConstructorCopiesInput(t *testing.T) {
	require := require.New(t)

	input := []int{1, 2, 3}
	s := newSmall(input)
	input[0] = 42
	require.Equal([]int{1, 2, 3}, toSlice(s))
}

func TestSmall_EachStopsEarly(t *testing.T) {
	require := require.New(t)

	s := newSmall([]int{1, 2, 3, 4})
	var seen []int
	s.each(func(v int) bool {
		seen = append(seen, v)
		return len(seen) < 2
	})
	require.Equal([]int{1, 2}, seen)
}

func TestSmall_SliceRange(t *testing.T) {
	require := require.New(t)

	s := newSmall([]int{1, 2, 3, 4, 5})
	require.Equal([]int{2, 3, 4}, s.sliceRange(1, 4))
	require.Empty(s.sliceRange(2, 2))
	require.Equal([]int{1, 2, 3, 4, 5}, s.sliceRange(0, 5))
}
