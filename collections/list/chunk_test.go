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

func TestChunk_CreateAndGet(t *testing.T) {
	require := require.New(t)

	c := newChunk([]int{1, 2, 3})
	require.Equal(3, c.count)
	require.Equal(0, c.off)
	require.Equal(1, c.get(0))
	require.Equal(2, c.get(1))
	require.Equal(3, c.get(2))
}

func TestChunk_CreateRejectsOversizedInput(t *testing.T) {
	elems := make([]int, chunkCapacity+1)
	require.Panics(t, func() {
		newChunk(elems)
	})
}

func TestChunk_GetOutOfRangePanics(t *testing.T) {
	c := newChunk([]int{1, 2, 3})
	require.Panics(t, func() { c.get(-1) })
	require.Panics(t, func() { c.get(3) })
}

func TestChunk_WithSetLeavesOriginalUnchanged(t *testing.T) {
	require := require.New(t)

	a := newChunk([]int{1, 2, 3})
	b := a.withSet(1, 42)

	require.Equal(2, a.get(1))
	require.Equal(42, b.get(1))
	require.Equal(1, b.get(0))
	require.Equal(3, b.get(2))
}

func TestChunk_WithAppendedGrowsUntilFull(t *testing.T) {
	require := require.New(t)

	c := newChunk([]int{})
	for i := range chunkCapacity {
		c = c.withAppended(i)
		require.Equal(i+1, c.count)
		require.Equal(i, c.get(i))
	}
	require.Panics(func() { c.withAppended(0) })
}

func TestChunk_WithPrependedGrowsUntilFull(t *testing.T) {
	require := require.New(t)

	c := newChunk([]int{})
	for i := range chunkCapacity {
		c = c.withPrepended(i)
		require.Equal(i+1, c.count)
		require.Equal(i, c.get(0))
	}
	require.Panics(func() { c.withPrepended(0) })
}

func TestChunk_AppendShiftsRightAlignedWindow(t *testing.T) {
	require := require.New(t)

	c := newChunkAt(chunkCapacity-2, []int{1, 2})
	require.Equal(chunkCapacity-2, c.off)

	c = c.withAppended(3)
	require.Equal(chunkCapacity-3, c.off)
	require.Equal([]int{1, 2, 3}, chunkContents(c))
}

func TestChunk_PrependShiftsLeftAlignedWindow(t *testing.T) {
	require := require.New(t)

	c := newChunk([]int{2, 3})
	c = c.withPrepended(1)
	require.Equal(0, c.off)
	require.Equal([]int{1, 2, 3}, chunkContents(c))
}

func TestChunk_SlotOperationsKeepAlignment(t *testing.T) {
	require := require.New(t)

	c := newChunkAt(10, []int{1, 2, 3})
	require.Equal(1, c.slotGet(10))
	require.Equal(3, c.slotGet(12))
	require.Panics(func() { c.slotGet(9) })
	require.Panics(func() { c.slotGet(13) })

	c = c.withSlotAppended(4)
	require.Equal(4, c.slotGet(13))
	require.Equal(10, c.off)

	c = c.withSlotPrepended(0)
	require.Equal(0, c.slotGet(9))
	require.Equal(9, c.off)
	require.Equal(5, c.count)
}

func TestChunk_DropEnds(t *testing.T) {
	require := require.New(t)

	c := newChunkAt(5, []int{1, 2, 3})
	c = c.withFirstDropped()
	require.Equal([]int{2, 3}, chunkContents(c))
	require.Equal(6, c.off)

	c = c.withLastDropped()
	require.Equal([]int{2}, chunkContents(c))
}

func TestChunk_PackLeftProducesFullChunksAndPartialTail(t *testing.T) {
	require := require.New(t)

	elems := sequence(0, 2*chunkCapacity+5)
	chunks := packLeft(elems)
	require.Len(chunks, 3)
	require.Equal(chunkCapacity, chunks[0].count)
	require.Equal(chunkCapacity, chunks[1].count)
	require.Equal(5, chunks[2].count)
	require.Equal(0, chunks[2].off)

	var all []int
	for _, c := range chunks {
		all = c.appendTo(all)
	}
	require.Equal(elems, all)
}

func TestChunk_PackRightProducesPartialHeadAndFullChunks(t *testing.T) {
	require := require.New(t)

	elems := sequence(0, 2*chunkCapacity+5)
	chunks := packRight(elems)
	require.Len(chunks, 3)
	require.Equal(5, chunks[0].count)
	require.Equal(chunkCapacity-5, chunks[0].off)
	require.Equal(chunkCapacity, chunks[1].count)
	require.Equal(chunkCapacity, chunks[2].count)

	var all []int
	for _, c := range chunks {
		all = c.appendTo(all)
	}
	require.Equal(elems, all)
}

func TestChunk_PackHandlesEmptyAndExactMultiples(t *testing.T) {
	require := require.New(t)

	require.Empty(packLeft([]int{}))
	require.Empty(packRight([]int{}))

	full := sequence(0, 2*chunkCapacity)
	left := packLeft(full)
	right := packRight(full)
	require.Len(left, 2)
	require.Len(right, 2)
	require.Equal(0, right[0].off)
}

func TestChunk_EachStopsEarly(t *testing.T) {
	require := require.New(t)

	c := newChunk([]int{1, 2, 3, 4})
	var seen []int
	done := c.each(func(v int) bool {
		seen = append(seen, v)
		return v < 2
	})
	require.False(done)
	require.Equal([]int{1, 2}, seen)
}

func chunkContents[T any](c *chunk[T]) []T {
	return c.appendTo(nil)
}

func sequence(from, to int) []int {
	res := make([]int, 0, to-from)
	for i := from; i < to; i++ {
		res = append(res, i)
	}
	return res
}
