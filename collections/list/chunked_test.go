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
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

// requireChunkedInvariants verifies the structural invariants of the chunked
// representation: contiguous slot windows, only the boundary chunks may be
// partial, and every chunk after the first starts at slot zero.
func requireChunkedInvariants(t *testing.T, c *chunked[int]) {
	t.Helper()
	total := 0
	for ci, ch := range c.chunks {
		require.Positive(t, ch.count, "chunk %d must not be empty", ci)
		if ci > 0 {
			require.Zero(t, ch.off, "chunk %d must start at slot zero", ci)
		}
		if ci > 0 && ci < len(c.chunks)-1 {
			require.Equal(t, chunkCapacity, ch.count, "interior chunk %d must be full", ci)
		}
		if ci == 0 && len(c.chunks) > 1 {
			require.Equal(t, chunkCapacity, ch.off+ch.count, "head chunk must be right-aligned")
		}
		total += ch.count
	}
	require.Equal(t, c.size, total)
}

func TestChunked_GetUsesChunkArithmetic(t *testing.T) {
	require := require.New(t)

	const n = 5*chunkCapacity + 7
	c := newChunked(sequence(0, n))
	requireChunkedInvariants(t, c)
	for i := range n {
		require.Equal(i, c.get(i))
	}
}

func TestChunked_AppendSharesAllButTheLastChunk(t *testing.T) {
	require := require.New(t)

	a := newChunked(sequence(0, 3*chunkCapacity))
	b := a.append(1000).(*chunked[int])

	requireChunkedInvariants(t, b)
	require.Equal(3*chunkCapacity, a.size)
	require.Equal(3*chunkCapacity+1, b.size)
	for i := range 3 {
		require.Same(a.chunks[i], b.chunks[i], "interior chunk %d should be shared", i)
	}
}

func TestChunked_PrependSharesAllButTheFirstChunk(t *testing.T) {
	require := require.New(t)

	a := newChunked(sequence(0, 3*chunkCapacity))
	b := a.prepend(-1).(*chunked[int])

	requireChunkedInvariants(t, b)
	require.Equal(-1, b.get(0))
	require.Equal(0, b.get(1))
	for i := range 3 {
		require.Same(a.chunks[i], b.chunks[i+1], "chunk %d should be shared", i)
	}
}

func TestChunked_AppendAndPrependFillBoundaryChunksInPlace(t *testing.T) {
	require := require.New(t)

	var rep representation[int] = newChunked(sequence(0, chunkCapacity + 1))
	for i := range chunkCapacity {
		rep = rep.prepend(-1 - i)
		rep = rep.append(1000 + i)
		requireChunkedInvariants(t, rep.(*chunked[int]))
	}
	require.Equal(3*chunkCapacity+1, rep.length())
	require.Equal(-chunkCapacity, rep.get(0))
	require.Equal(1000+chunkCapacity-1, rep.get(rep.length()-1))
}

func TestChunked_SetSharesAllOtherChunks(t *testing.T) {
	require := require.New(t)

	a := newChunked(sequence(0, 4 * chunkCapacity))
	b := a.set(2*chunkCapacity+3, 42).(*chunked[int])

	require.Equal(2*chunkCapacity+3, a.get(2*chunkCapacity+3))
	require.Equal(42, b.get(2*chunkCapacity+3))
	for i := range 4 {
		if i == 2 {
			require.NotSame(a.chunks[i], b.chunks[i])
		} else {
			require.Same(a.chunks[i], b.chunks[i], "chunk %d should be shared", i)
		}
	}
}

func TestChunked_InsertNearFrontSharesSuffix(t *testing.T) {
	require := require.New(t)

	const n = 6 * chunkCapacity
	a := newChunked(sequence(0, n))
	b := a.insert(3, -1).(*chunked[int])

	requireChunkedInvariants(t, b)
	require.Equal(n+1, b.size)
	want := append(append(sequence(0, 3), -1), sequence(3, n)...)
	require.Equal(want, toSlice(b))

	// All chunks after the insertion chunk are shared by reference.
	shift := len(b.chunks) - len(a.chunks)
	for i := 1; i < len(a.chunks); i++ {
		require.Same(a.chunks[i], b.chunks[i+shift], "suffix chunk %d should be shared", i)
	}
}

func TestChunked_InsertNearBackSharesPrefix(t *testing.T) {
	require := require.New(t)

	const n = 6 * chunkCapacity
	a := newChunked(sequence(0, n))
	pos := n - 3
	b := a.insert(pos, -1).(*chunked[int])

	requireChunkedInvariants(t, b)
	want := append(append(sequence(0, pos), -1), sequence(pos, n)...)
	require.Equal(want, toSlice(b))
	for i := range len(a.chunks) - 1 {
		require.Same(a.chunks[i], b.chunks[i], "prefix chunk %d should be shared", i)
	}
}

func TestChunked_RemoveMatchesOracleAtAllPositions(t *testing.T) {
	require := require.New(t)

	const n = 3*chunkCapacity + 5
	base := sequence(0, n)
	a := newChunked(base)
	for i := range n {
		b := a.remove(i).(*chunked[int])
		requireChunkedInvariants(t, b)
		want := append(append([]int{}, base[:i]...), base[i+1:]...)
		require.Equal(want, toSlice(b), "removing index %d", i)
	}
	require.Equal(base, toSlice(a), "the original must stay unchanged")
}

func TestChunked_InsertMatchesOracleAtAllPositions(t *testing.T) {
	require := require.New(t)

	const n = 3*chunkCapacity + 5
	base := sequence(0, n)
	a := newChunked(base)
	for i := range n + 1 {
		b := a.insert(i, -1).(*chunked[int])
		requireChunkedInvariants(t, b)
		want := append(append(append([]int{}, base[:i]...), -1), base[i:]...)
		require.Equal(want, toSlice(b), "inserting at index %d", i)
	}
}

func TestChunked_RandomOperationsMatchOracle(t *testing.T) {
	require := require.New(t)

	rng := rand.New(rand.NewSource(42))
	oracle := sequence(0, 2*chunkCapacity)
	var rep representation[int] = newChunked(oracle)

	for step := range 2000 {
		switch op := rng.Intn(6); {
		case op == 0:
			v := rng.Int()
			rep = rep.append(v)
			oracle = append(oracle, v)
		case op == 1:
			v := rng.Int()
			rep = rep.prepend(v)
			oracle = append([]int{v}, oracle...)
		case op == 2 && len(oracle) > 0:
			i, v := rng.Intn(len(oracle)), rng.Int()
			rep = rep.set(i, v)
			oracle[i] = v
		case op == 3:
			i, v := rng.Intn(len(oracle)+1), rng.Int()
			rep = rep.insert(i, v)
			oracle = append(oracle[:i:i], append([]int{v}, oracle[i:]...)...)
		case op >= 4 && len(oracle) > 1:
			i := rng.Intn(len(oracle))
			rep = rep.remove(i)
			oracle = append(oracle[:i:i], oracle[i+1:]...)
		default:
			continue
		}
		requireChunkedInvariants(t, rep.(*chunked[int]))
		if step%37 == 0 {
			require.Equal(oracle, toSlice(rep), "divergence at step %d", step)
		}
	}
	require.Equal(oracle, toSlice(rep))
}

func TestChunked_SliceRange(t *testing.T) {
	require := require.New(t)

	const n = 4*chunkCapacity + 9
	c := newChunked(sequence(0, n))
	require.Equal(sequence(3, 3*chunkCapacity), c.sliceRange(3, 3*chunkCapacity))
	require.Empty(c.sliceRange(5, 5))
	require.Equal(sequence(0, n), c.sliceRange(0, n))
}
