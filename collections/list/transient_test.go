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

func TestTransient_BatchAppendEqualsBulkConstruction(t *testing.T) {
	require := require.New(t)

	tr := Empty[int]().Transient()
	for i := range 100 {
		require.NoError(tr.Append(i))
	}
	l, err := tr.Persistent()
	require.NoError(err)
	require.Equal(From(sequence(0, 100)).ToSlice(), l.ToSlice())
	require.Equal(From(sequence(0, 100)).Kind(), l.Kind())
}

func TestTransient_SourceListStaysUnchanged(t *testing.T) {
	require := require.New(t)

	for _, size := range []int{3, 2 * defaultSmallUpper, 2 * defaultChunkUpper} {
		base := From(sequence(0, size))
		tr := base.Transient()
		for i := range size {
			require.NoError(tr.Set(i, -1))
		}
		require.NoError(tr.Append(-1))
		require.NoError(tr.Prepend(-1))
		_, err := tr.Persistent()
		require.NoError(err)
		require.Equal(sequence(0, size), base.ToSlice(), "size %d", size)
	}
}

func TestTransient_EditsMatchPersistentOperations(t *testing.T) {
	require := require.New(t)

	for _, size := range []int{0, 10, 2 * defaultSmallUpper, 2 * defaultChunkUpper} {
		rng := rand.New(rand.NewSource(int64(size)))
		persistent := From(sequence(0, size))
		tr := From(sequence(0, size)).Transient()

		for range 500 {
			switch op := rng.Intn(4); {
			case op == 0:
				v := rng.Int()
				persistent = persistent.Append(v)
				require.NoError(tr.Append(v))
			case op == 1:
				v := rng.Int()
				persistent = persistent.Prepend(v)
				require.NoError(tr.Prepend(v))
			case persistent.Size() > 0:
				i, v := rng.Intn(persistent.Size()), rng.Int()
				var err error
				persistent, err = persistent.Set(i, v)
				require.NoError(err)
				require.NoError(tr.Set(i, v))
			}
		}

		frozen, err := tr.Persistent()
		require.NoError(err)
		require.Equal(persistent.ToSlice(), frozen.ToSlice(), "size %d", size)
		require.Equal(persistent.Size(), frozen.Size())
	}
}

func TestTransient_GetReflectsPendingEdits(t *testing.T) {
	require := require.New(t)

	tr := From(sequence(0, 50)).Transient()
	require.NoError(tr.Set(10, -1))
	v, err := tr.Get(10)
	require.NoError(err)
	require.Equal(-1, v)
	require.Equal(50, tr.Size())

	_, err = tr.Get(50)
	require.ErrorIs(err, ErrIndexOutOfRange)
	_, err = tr.Get(-1)
	require.ErrorIs(err, ErrIndexOutOfRange)
}

func TestTransient_ClosedHandleRejectsAllOperations(t *testing.T) {
	require := require.New(t)

	tr := From([]int{1, 2, 3}).Transient()
	_, err := tr.Persistent()
	require.NoError(err)

	_, err = tr.Get(0)
	require.ErrorIs(err, ErrTransientClosed)
	require.ErrorIs(tr.Set(0, 1), ErrTransientClosed)
	require.ErrorIs(tr.Append(1), ErrTransientClosed)
	require.ErrorIs(tr.Prepend(1), ErrTransientClosed)
	_, err = tr.Persistent()
	require.ErrorIs(err, ErrTransientClosed)
	require.Zero(tr.Size())
}

func TestTransient_PersistentNormalizesRepresentation(t *testing.T) {
	require := require.New(t)

	// Growing a small list far past the boundary inside one session ends up
	// in the representation a fresh construction of that size would use.
	tr := From(sequence(0, 5)).Transient()
	for i := 5; i < defaultChunkUpper+10; i++ {
		require.NoError(tr.Append(i))
	}
	l, err := tr.Persistent()
	require.NoError(err)
	require.Equal(KindTree, l.Kind())
	require.Equal(sequence(0, defaultChunkUpper+10), l.ToSlice())

	// Shrinking a large list ends up small again.
	tr = From(sequence(0, defaultChunkUpper + 10)).Transient()
	l, err = tr.Persistent()
	require.NoError(err)
	require.Equal(KindTree, l.Kind())
}

func TestTransient_ResultSharesNothingWithLaterEdits(t *testing.T) {
	require := require.New(t)

	tr := From(sequence(0, 2 * defaultChunkUpper)).Transient()
	first, err := tr.Persistent()
	require.NoError(err)

	// Edits through a second session derived from the frozen list must not
	// show up in the first result.
	tr2 := first.Transient()
	for i := range first.Size() {
		require.NoError(tr2.Set(i, -1))
	}
	second, err := tr2.Persistent()
	require.NoError(err)

	require.Equal(sequence(0, 2*defaultChunkUpper), first.ToSlice())
	for _, v := range second.ToSlice() {
		require.Equal(-1, v)
	}
}

func TestTransient_PrependHeavyBatch(t *testing.T) {
	require := require.New(t)

	tr := Empty[int]().Transient()
	for i := range 2 * defaultChunkUpper {
		require.NoError(tr.Prepend(i))
	}
	l, err := tr.Persistent()
	require.NoError(err)
	require.Equal(2*defaultChunkUpper, l.Size())
	for i := range l.Size() {
		v, err := l.Get(i)
		require.NoError(err)
		require.Equal(l.Size()-1-i, v)
	}
}
