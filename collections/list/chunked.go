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

// chunked is the mid-size representation: an ordered sequence of chunks in
// which only the boundary chunks may be partially filled. The first chunk is
// right-aligned within its slot window (or the list's only chunk), all
// following chunks start at slot zero, and all chunks except the first and
// last are full.
//
// With that alignment, element i lives at global slot i+lead where lead is
// the first chunk's window offset, so random access is pure chunk-index
// arithmetic. Append and prepend touch only the boundary chunk and share all
// others; insert and remove rebuild the chunks on the nearer side of the
// edit and share the rest.
type chunked[T any] struct {
	chunks []*chunk[T]
	size   int
}

// newChunked creates a chunked representation holding a copy of the given
// elements.
func newChunked[T any](elems []T) *chunked[T] {
	return &chunked[T]{chunks: packLeft(elems), size: len(elems)}
}

func (c *chunked[T]) kind() Kind {
	return KindChunked
}

func (c *chunked[T]) length() int {
	return c.size
}

// lead returns the global slot position of the first element.
func (c *chunked[T]) lead() int {
	if len(c.chunks) == 0 {
		return 0
	}
	return c.chunks[0].off
}

// slotFor locates the chunk index and slot of element i.
func (c *chunked[T]) slotFor(i int) (ci, slot int) {
	g := i + c.lead()
	return g / chunkCapacity, g % chunkCapacity
}

func (c *chunked[T]) get(i int) T {
	ci, slot := c.slotFor(i)
	return c.chunks[ci].slotGet(slot)
}

func (c *chunked[T]) set(i int, value T) representation[T] {
	ci, slot := c.slotFor(i)
	chunks := make([]*chunk[T], len(c.chunks))
	copy(chunks, c.chunks)
	chunks[ci] = c.chunks[ci].withSlotSet(slot, value)
	return &chunked[T]{chunks: chunks, size: c.size}
}

func (c *chunked[T]) append(value T) representation[T] {
	if len(c.chunks) == 0 {
		return &chunked[T]{chunks: []*chunk[T]{newChunk([]T{value})}, size: 1}
	}
	last := c.chunks[len(c.chunks)-1]
	chunks := make([]*chunk[T], len(c.chunks), len(c.chunks)+1)
	copy(chunks, c.chunks)
	switch {
	case last.count == chunkCapacity:
		chunks = append(chunks, newChunk([]T{value}))
	case last.off+last.count < chunkCapacity:
		chunks[len(chunks)-1] = last.withSlotAppended(value)
	default:
		// A right-aligned sole chunk with spare capacity at the front.
		chunks[len(chunks)-1] = last.withAppended(value)
	}
	return &chunked[T]{chunks: chunks, size: c.size + 1}
}

func (c *chunked[T]) prepend(value T) representation[T] {
	if len(c.chunks) == 0 {
		return &chunked[T]{chunks: []*chunk[T]{newChunk([]T{value})}, size: 1}
	}
	first := c.chunks[0]
	if first.count == chunkCapacity {
		// Start a new right-aligned head chunk; the old head stays full.
		chunks := make([]*chunk[T], 0, len(c.chunks)+1)
		chunks = append(chunks, newChunkAt(chunkCapacity-1, []T{value}))
		chunks = append(chunks, c.chunks...)
		return &chunked[T]{chunks: chunks, size: c.size + 1}
	}
	chunks := make([]*chunk[T], len(c.chunks))
	copy(chunks, c.chunks)
	if first.off > 0 {
		chunks[0] = first.withSlotPrepended(value)
	} else {
		// A left-aligned sole chunk with spare capacity at the back.
		chunks[0] = first.withPrepended(value)
	}
	return &chunked[T]{chunks: chunks, size: c.size + 1}
}

func (c *chunked[T]) insert(i int, value T) representation[T] {
	if i == 0 {
		return c.prepend(value)
	}
	if i == c.size {
		return c.append(value)
	}
	ci, _ := c.slotFor(i)
	if i <= c.size/2 {
		// Rebuild the chunks up to and including ci, share the rest. The
		// extra element is absorbed by shifting the rebuilt prefix one slot
		// towards the front.
		boundary := (ci+1)*chunkCapacity - c.lead()
		if boundary > c.size {
			boundary = c.size
		}
		elems := make([]T, 0, boundary+1)
		elems = append(elems, c.sliceRange(0, i)...)
		elems = append(elems, value)
		elems = append(elems, c.sliceRange(i, boundary)...)
		suffix := c.chunks[ci+1:]
		var chunks []*chunk[T]
		if len(suffix) == 0 {
			chunks = packLeft(elems)
		} else {
			chunks = append(packRight(elems), suffix...)
		}
		return &chunked[T]{chunks: chunks, size: c.size + 1}
	}
	// Rebuild the chunks from ci on, share the prefix.
	start := ci*chunkCapacity - c.lead()
	if start < 0 {
		start = 0
	}
	elems := make([]T, 0, c.size-start+1)
	elems = append(elems, c.sliceRange(start, i)...)
	elems = append(elems, value)
	elems = append(elems, c.sliceRange(i, c.size)...)
	chunks := make([]*chunk[T], 0, ci+len(elems)/chunkCapacity+1)
	chunks = append(chunks, c.chunks[:ci]...)
	chunks = append(chunks, packLeft(elems)...)
	return &chunked[T]{chunks: chunks, size: c.size + 1}
}

func (c *chunked[T]) remove(i int) representation[T] {
	if i == 0 {
		return c.dropFirst()
	}
	if i == c.size-1 {
		return c.dropLast()
	}
	ci, _ := c.slotFor(i)
	if i <= c.size/2 {
		boundary := (ci+1)*chunkCapacity - c.lead()
		if boundary > c.size {
			boundary = c.size
		}
		elems := make([]T, 0, boundary-1)
		elems = append(elems, c.sliceRange(0, i)...)
		elems = append(elems, c.sliceRange(i+1, boundary)...)
		suffix := c.chunks[ci+1:]
		var chunks []*chunk[T]
		if len(suffix) == 0 {
			chunks = packLeft(elems)
		} else {
			chunks = append(packRight(elems), suffix...)
		}
		return &chunked[T]{chunks: chunks, size: c.size - 1}
	}
	start := ci*chunkCapacity - c.lead()
	if start < 0 {
		start = 0
	}
	elems := make([]T, 0, c.size-start-1)
	elems = append(elems, c.sliceRange(start, i)...)
	elems = append(elems, c.sliceRange(i+1, c.size)...)
	chunks := make([]*chunk[T], 0, ci+len(elems)/chunkCapacity+1)
	chunks = append(chunks, c.chunks[:ci]...)
	chunks = append(chunks, packLeft(elems)...)
	return &chunked[T]{chunks: chunks, size: c.size - 1}
}

func (c *chunked[T]) dropFirst() representation[T] {
	first := c.chunks[0]
	if first.count == 1 {
		chunks := make([]*chunk[T], len(c.chunks)-1)
		copy(chunks, c.chunks[1:])
		return &chunked[T]{chunks: chunks, size: c.size - 1}
	}
	chunks := make([]*chunk[T], len(c.chunks))
	copy(chunks, c.chunks)
	chunks[0] = first.withFirstDropped()
	return &chunked[T]{chunks: chunks, size: c.size - 1}
}

func (c *chunked[T]) dropLast() representation[T] {
	last := c.chunks[len(c.chunks)-1]
	if last.count == 1 {
		chunks := make([]*chunk[T], len(c.chunks)-1)
		copy(chunks, c.chunks[:len(c.chunks)-1])
		return &chunked[T]{chunks: chunks, size: c.size - 1}
	}
	chunks := make([]*chunk[T], len(c.chunks))
	copy(chunks, c.chunks)
	chunks[len(chunks)-1] = last.withLastDropped()
	return &chunked[T]{chunks: chunks, size: c.size - 1}
}

func (c *chunked[T]) each(yield func(T) bool) {
	for _, ch := range c.chunks {
		if !ch.each(yield) {
			return
		}
	}
}

func (c *chunked[T]) sliceRange(from, to int) []T {
	res := make([]T, 0, to-from)
	for i := from; i < to; {
		ci, slot := c.slotFor(i)
		ch := c.chunks[ci]
		end := ch.off + ch.count
		if end > slot+(to-i) {
			end = slot + (to - i)
		}
		res = append(res, ch.elems[slot:end]...)
		i += end - slot
	}
	return res
}

func (c *chunked[T]) asTransient(session *editSession) transientRepr[T] {
	chunks := make([]*chunk[T], len(c.chunks))
	copy(chunks, c.chunks)
	return &transientChunked[T]{session: session, chunks: chunks, size: c.size}
}
