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

import "fmt"

const (
	bitsPerLevel  = 5
	branchFactor  = 1 << bitsPerLevel // 32
	indexMask     = branchFactor - 1
	chunkCapacity = branchFactor
)

// ---- Chunks ----

// chunk is the fixed-capacity element store shared by the chunked and tree
// representations. Elements occupy the contiguous slot window
// [off, off+count) within the backing array. Keeping the window explicit
// allows the same type to serve as a dense interior chunk (off=0,
// count=chunkCapacity), a right-aligned head chunk of the chunked
// representation (off+count=chunkCapacity), and an edge leaf of the tree
// with a gap at the front.
//
// A chunk is immutable once published. The only exception are chunks owned
// by an open edit session (see transient.go), which are private to that
// session by construction.
type chunk[T any] struct {
	elems [chunkCapacity]T
	off   int
	count int

	// owner is non-nil while this chunk is mutable inside an edit session.
	owner *editSession
}

// newChunk creates a chunk holding the given elements left-aligned at slot 0.
// It panics if more than chunkCapacity elements are provided; callers are
// responsible for splitting larger inputs into multiple chunks.
func newChunk[T any](elems []T) *chunk[T] {
	if len(elems) > chunkCapacity {
		panic(fmt.Sprintf("chunk capacity exceeded: %d > %d", len(elems), chunkCapacity))
	}
	c := &chunk[T]{count: len(elems)}
	copy(c.elems[:], elems)
	return c
}

// newChunkAt creates a chunk holding the given elements starting at the
// given slot. It panics if the elements do not fit behind the slot.
func newChunkAt[T any](slot int, elems []T) *chunk[T] {
	if slot < 0 || slot+len(elems) > chunkCapacity {
		panic(fmt.Sprintf("chunk occupancy [%d,%d) out of range", slot, slot+len(elems)))
	}
	c := &chunk[T]{off: slot, count: len(elems)}
	copy(c.elems[slot:], elems)
	return c
}

// get returns the element at the given logical position within the chunk.
// Out-of-range positions are an internal invariant violation and panic.
func (c *chunk[T]) get(i int) T {
	if i < 0 || i >= c.count {
		panic(fmt.Sprintf("chunk index %d out of range [0,%d)", i, c.count))
	}
	return c.elems[c.off+i]
}

// withSet returns a new chunk identical to this one except for the element
// at the given logical position.
func (c *chunk[T]) withSet(i int, value T) *chunk[T] {
	if i < 0 || i >= c.count {
		panic(fmt.Sprintf("chunk index %d out of range [0,%d)", i, c.count))
	}
	res := *c
	res.owner = nil
	res.elems[c.off+i] = value
	return &res
}

// withAppended returns a new chunk with one more element at the end. The
// chunk must have spare capacity; appending to a full chunk is a programming
// error and panics. If the slot window touches the upper bound, the window
// is shifted down to make room.
func (c *chunk[T]) withAppended(value T) *chunk[T] {
	if c.count >= chunkCapacity {
		panic("append to full chunk")
	}
	res := chunk[T]{count: c.count + 1}
	if c.off+c.count < chunkCapacity {
		res.off = c.off
		res.elems = c.elems
	} else {
		res.off = c.off - 1
		copy(res.elems[res.off:], c.elems[c.off:c.off+c.count])
	}
	res.elems[res.off+res.count-1] = value
	return &res
}

// withPrepended returns a new chunk with one more element at the front,
// shifting the slot window up if it touches slot zero. Prepending to a full
// chunk panics.
func (c *chunk[T]) withPrepended(value T) *chunk[T] {
	if c.count >= chunkCapacity {
		panic("prepend to full chunk")
	}
	res := chunk[T]{count: c.count + 1}
	if c.off > 0 {
		res.off = c.off - 1
		res.elems = c.elems
	} else {
		res.off = 0
		copy(res.elems[1:], c.elems[:c.count])
	}
	res.elems[res.off] = value
	return &res
}

// ---- Slot-addressed operations used by the tree representation ----

// slotGet returns the element stored at the given absolute slot. The slot
// must be within the occupied window.
func (c *chunk[T]) slotGet(slot int) T {
	if slot < c.off || slot >= c.off+c.count {
		panic(fmt.Sprintf("chunk slot %d outside occupancy [%d,%d)", slot, c.off, c.off+c.count))
	}
	return c.elems[slot]
}

// withSlotSet returns a new chunk with the element at the given absolute
// slot replaced.
func (c *chunk[T]) withSlotSet(slot int, value T) *chunk[T] {
	if slot < c.off || slot >= c.off+c.count {
		panic(fmt.Sprintf("chunk slot %d outside occupancy [%d,%d)", slot, c.off, c.off+c.count))
	}
	res := *c
	res.owner = nil
	res.elems[slot] = value
	return &res
}

// withSlotAppended returns a new chunk with the occupancy window extended by
// one slot at the top, holding the given value. The window must not already
// touch the capacity bound; slot alignment is the caller's responsibility.
func (c *chunk[T]) withSlotAppended(value T) *chunk[T] {
	if c.off+c.count >= chunkCapacity {
		panic("slot append beyond chunk capacity")
	}
	res := *c
	res.owner = nil
	res.count++
	res.elems[res.off+res.count-1] = value
	return &res
}

// withSlotPrepended returns a new chunk with the occupancy window extended
// by one slot at the bottom, holding the given value.
func (c *chunk[T]) withSlotPrepended(value T) *chunk[T] {
	if c.off == 0 {
		panic("slot prepend below chunk start")
	}
	res := *c
	res.owner = nil
	res.off--
	res.count++
	res.elems[res.off] = value
	return &res
}

// withFirstDropped returns a new chunk with the first element removed. The
// freed slot is reset to the zero value so released elements do not linger.
func (c *chunk[T]) withFirstDropped() *chunk[T] {
	if c.count == 0 {
		panic("drop from empty chunk")
	}
	var zero T
	res := *c
	res.owner = nil
	res.elems[res.off] = zero
	res.off++
	res.count--
	return &res
}

// withLastDropped returns a new chunk with the last element removed.
func (c *chunk[T]) withLastDropped() *chunk[T] {
	if c.count == 0 {
		panic("drop from empty chunk")
	}
	var zero T
	res := *c
	res.owner = nil
	res.elems[res.off+res.count-1] = zero
	res.count--
	return &res
}

// appendTo appends all elements of the chunk to the given slice.
func (c *chunk[T]) appendTo(dst []T) []T {
	return append(dst, c.elems[c.off:c.off+c.count]...)
}

// each invokes yield for every element in order, stopping early if yield
// returns false. The return value reports whether the traversal completed.
func (c *chunk[T]) each(yield func(T) bool) bool {
	for i := c.off; i < c.off+c.count; i++ {
		if !yield(c.elems[i]) {
			return false
		}
	}
	return true
}

// packLeft splits the elements into chunks aligned to slot zero: all chunks
// are full except possibly the last one.
func packLeft[T any](elems []T) []*chunk[T] {
	chunks := make([]*chunk[T], 0, (len(elems)+chunkCapacity-1)/chunkCapacity)
	for len(elems) > chunkCapacity {
		chunks = append(chunks, newChunk(elems[:chunkCapacity]))
		elems = elems[chunkCapacity:]
	}
	if len(elems) > 0 {
		chunks = append(chunks, newChunk(elems))
	}
	return chunks
}

// packRight splits the elements into chunks aligned against the upper slot
// boundary: all chunks are full except possibly the first one, which is
// right-aligned.
func packRight[T any](elems []T) []*chunk[T] {
	n := len(elems)
	if n == 0 {
		return nil
	}
	head := n % chunkCapacity
	numChunks := n / chunkCapacity
	if head > 0 {
		numChunks++
	}
	chunks := make([]*chunk[T], 0, numChunks)
	if head > 0 {
		chunks = append(chunks, newChunkAt(chunkCapacity-head, elems[:head]))
		elems = elems[head:]
	}
	for len(elems) > 0 {
		chunks = append(chunks, newChunk(elems[:chunkCapacity]))
		elems = elems[chunkCapacity:]
	}
	return chunks
}
