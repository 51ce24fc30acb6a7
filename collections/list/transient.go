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

// editSession identifies one batch of transient edits. Chunks and branches
// carry the session that created them; a node is mutable exactly for the
// session it belongs to, every other session (and all persistent operations)
// must copy it before changing anything. Sessions are never reused, so stale
// owner pointers left behind after a session closes are inert.
type editSession struct {
	closed bool
}

func newEditSession() *editSession {
	return &editSession{}
}

// ---- Small ----

// transientSmall batches edits on a plain element buffer. The buffer of the
// source representation is adopted by reference and copied once on the first
// write.
type transientSmall[T any] struct {
	session *editSession
	elems   []T
	owned   bool
}

func (t *transientSmall[T]) ensureOwned(extra int) {
	if t.owned && cap(t.elems) >= len(t.elems)+extra {
		return
	}
	elems := make([]T, len(t.elems), len(t.elems)+extra+chunkCapacity)
	copy(elems, t.elems)
	t.elems = elems
	t.owned = true
}

func (t *transientSmall[T]) length() int {
	return len(t.elems)
}

func (t *transientSmall[T]) get(i int) T {
	return t.elems[i]
}

func (t *transientSmall[T]) set(i int, value T) {
	t.ensureOwned(0)
	t.elems[i] = value
}

func (t *transientSmall[T]) append(value T) {
	t.ensureOwned(1)
	t.elems = append(t.elems, value)
}

func (t *transientSmall[T]) prepend(value T) {
	t.ensureOwned(1)
	t.elems = append(t.elems, value)
	copy(t.elems[1:], t.elems)
	t.elems[0] = value
}

func (t *transientSmall[T]) freeze() representation[T] {
	return &small[T]{elems: t.elems}
}

// ---- Chunked ----

// transientChunked batches edits on a chunk sequence. The chunk pointer
// slice is private to the session; the chunks themselves are shared with the
// source representation until first touched, at which point they are copied
// once and mutated in place for the rest of the session.
type transientChunked[T any] struct {
	session *editSession
	chunks  []*chunk[T]
	size    int
}

func (t *transientChunked[T]) lead() int {
	if len(t.chunks) == 0 {
		return 0
	}
	return t.chunks[0].off
}

func (t *transientChunked[T]) slotFor(i int) (ci, slot int) {
	g := i + t.lead()
	return g / chunkCapacity, g % chunkCapacity
}

// editable returns the chunk at the given position in a state owned by this
// session, copying it if it is still shared.
func (t *transientChunked[T]) editable(ci int) *chunk[T] {
	c := t.chunks[ci]
	if c.owner == t.session {
		return c
	}
	res := *c
	res.owner = t.session
	t.chunks[ci] = &res
	return &res
}

func (t *transientChunked[T]) ownedChunk(slot int, value T) *chunk[T] {
	c := newChunkAt(slot, []T{value})
	c.owner = t.session
	return c
}

func (t *transientChunked[T]) length() int {
	return t.size
}

func (t *transientChunked[T]) get(i int) T {
	ci, slot := t.slotFor(i)
	return t.chunks[ci].slotGet(slot)
}

func (t *transientChunked[T]) set(i int, value T) {
	ci, slot := t.slotFor(i)
	t.editable(ci).elems[slot] = value
}

func (t *transientChunked[T]) append(value T) {
	if len(t.chunks) == 0 {
		t.chunks = append(t.chunks, t.ownedChunk(0, value))
		t.size = 1
		return
	}
	last := len(t.chunks) - 1
	c := t.chunks[last]
	switch {
	case c.count == chunkCapacity:
		t.chunks = append(t.chunks, t.ownedChunk(0, value))
	case c.off+c.count < chunkCapacity:
		c = t.editable(last)
		c.elems[c.off+c.count] = value
		c.count++
	default:
		// A right-aligned sole chunk; shift the window down in place.
		c = t.editable(last)
		copy(c.elems[c.off-1:], c.elems[c.off:c.off+c.count])
		c.off--
		c.elems[c.off+c.count] = value
		c.count++
	}
	t.size++
}

func (t *transientChunked[T]) prepend(value T) {
	if len(t.chunks) == 0 {
		t.chunks = append(t.chunks, t.ownedChunk(0, value))
		t.size = 1
		return
	}
	c := t.chunks[0]
	switch {
	case c.count == chunkCapacity:
		chunks := make([]*chunk[T], 0, len(t.chunks)+1)
		chunks = append(chunks, t.ownedChunk(chunkCapacity-1, value))
		chunks = append(chunks, t.chunks...)
		t.chunks = chunks
	case c.off > 0:
		c = t.editable(0)
		c.off--
		c.count++
		c.elems[c.off] = value
	default:
		// A left-aligned sole chunk; shift the window up in place.
		c = t.editable(0)
		copy(c.elems[1:], c.elems[:c.count])
		c.count++
		c.elems[0] = value
	}
	t.size++
}

func (t *transientChunked[T]) freeze() representation[T] {
	return &chunked[T]{chunks: t.chunks, size: t.size}
}

// ---- Tree ----

// transientTree batches edits on a tree. Nodes are copied once when first
// touched by the session and mutated in place afterwards; untouched subtrees
// remain shared with the source tree.
type transientTree[T any] struct {
	session *editSession
	size    int
	height  int
	offset  int
	root    treeNode[T]
}

// editableNode returns the given node in a state owned by this session,
// copying it if it is frozen or belongs to another session. Nil nodes are
// materialized as empty branches or leaves depending on the level.
func (t *transientTree[T]) editableNode(n treeNode[T], sh int) treeNode[T] {
	if sh == 0 {
		if n == nil {
			c := &chunk[T]{owner: t.session}
			return c
		}
		c := n.(*chunk[T])
		if c.owner == t.session {
			return c
		}
		res := *c
		res.owner = t.session
		return &res
	}
	if n == nil {
		return &branch[T]{owner: t.session}
	}
	b := n.(*branch[T])
	if b.owner == t.session {
		return b
	}
	res := *b
	res.owner = t.session
	return &res
}

// leafAt walks to the leaf owning trie position g, making the whole path
// editable and creating missing nodes on the way.
func (t *transientTree[T]) leafAt(g int) *chunk[T] {
	t.root = t.editableNode(t.root, t.height*bitsPerLevel)
	n := t.root
	for sh := t.height * bitsPerLevel; sh > 0; sh -= bitsPerLevel {
		b := n.(*branch[T])
		d := (g >> sh) & indexMask
		child := t.editableNode(b.children[d], sh-bitsPerLevel)
		b.children[d] = child
		n = child
	}
	return n.(*chunk[T])
}

func (t *transientTree[T]) length() int {
	return t.size
}

func (t *transientTree[T]) get(i int) T {
	g := i + t.offset
	n := t.root
	for sh := t.height * bitsPerLevel; sh > 0; sh -= bitsPerLevel {
		n = n.(*branch[T]).children[(g>>sh)&indexMask]
	}
	return n.(*chunk[T]).slotGet(g & indexMask)
}

func (t *transientTree[T]) set(i int, value T) {
	g := i + t.offset
	c := t.leafAt(g)
	c.elems[g&indexMask] = value
}

func (t *transientTree[T]) append(value T) {
	g := t.offset + t.size
	if g >= treeCapacity(t.height) {
		grown := &branch[T]{owner: t.session}
		grown.children[0] = t.root
		t.root = grown
		t.height++
	}
	c := t.leafAt(g)
	slot := g & indexMask
	if c.count == 0 {
		c.off = slot
	}
	c.elems[slot] = value
	c.count++
	t.size++
}

func (t *transientTree[T]) prepend(value T) {
	if t.size == 0 {
		t.append(value)
		return
	}
	if t.offset == 0 {
		grown := &branch[T]{owner: t.session}
		grown.children[1] = t.root
		t.offset = treeCapacity(t.height)
		t.root = grown
		t.height++
	}
	g := t.offset - 1
	c := t.leafAt(g)
	slot := g & indexMask
	if c.count == 0 {
		c.off = slot + 1
	}
	c.off--
	c.count++
	c.elems[slot] = value
	t.size++
	t.offset--
}

// dropFront removes the first element, clearing the freed slot. Emptied edge
// leaves are left in place; the moved offset makes them unreachable.
func (t *transientTree[T]) dropFront() {
	g := t.offset
	c := t.leafAt(g)
	var zero T
	c.elems[c.off] = zero
	c.off++
	c.count--
	t.offset++
	t.size--
}

func (t *transientTree[T]) dropBack() {
	g := t.offset + t.size - 1
	c := t.leafAt(g)
	var zero T
	c.elems[c.off+c.count-1] = zero
	c.count--
	t.size--
}

func (t *transientTree[T]) freeze() representation[T] {
	return &tree[T]{size: t.size, height: t.height, offset: t.offset, root: t.root}
}

// ---- Public transient facade ----

// Transient is a mutable batch-edit handle over the contents of a List. It
// avoids the per-operation allocations of the persistent API by copying each
// touched node once per session and then mutating it in place. The sequence
// of values observable through Persistent is identical to applying the same
// edits one by one through the persistent API; only the allocation count
// differs.
//
// A Transient is not safe for concurrent use and must stay confined to the
// goroutine that created it. Persistent consumes the handle; any later call
// fails with ErrTransientClosed.
type Transient[T any] struct {
	session *editSession
	cfg     Config
	repr    transientRepr[T]
}

// Transient derives a mutable batch-edit handle from the list. The list
// itself remains valid and unchanged.
func (l List[T]) Transient() *Transient[T] {
	session := newEditSession()
	return &Transient[T]{
		session: session,
		cfg:     l.cfg,
		repr:    l.norm().asTransient(session),
	}
}

// Size returns the current number of elements, or zero after the transient
// has been closed.
func (t *Transient[T]) Size() int {
	if t.session.closed {
		return 0
	}
	return t.repr.length()
}

// Get returns the element at the given index.
func (t *Transient[T]) Get(i int) (T, error) {
	var zero T
	if t.session.closed {
		return zero, ErrTransientClosed
	}
	if i < 0 || i >= t.repr.length() {
		return zero, fmt.Errorf("%w: index %d, size %d", ErrIndexOutOfRange, i, t.repr.length())
	}
	return t.repr.get(i), nil
}

// Set replaces the element at the given index in place.
func (t *Transient[T]) Set(i int, value T) error {
	if t.session.closed {
		return ErrTransientClosed
	}
	if i < 0 || i >= t.repr.length() {
		return fmt.Errorf("%w: index %d, size %d", ErrIndexOutOfRange, i, t.repr.length())
	}
	t.repr.set(i, value)
	return nil
}

// Append adds an element at the end in place.
func (t *Transient[T]) Append(value T) error {
	if t.session.closed {
		return ErrTransientClosed
	}
	t.repr.append(value)
	return nil
}

// Prepend adds an element at the front in place.
func (t *Transient[T]) Prepend(value T) error {
	if t.session.closed {
		return ErrTransientClosed
	}
	t.repr.prepend(value)
	return nil
}

// Persistent freezes all edit buffers and returns the result as an immutable
// List, closing the transient. The resulting list uses the representation
// the thresholds select for its final size, exactly as if it had been
// constructed from scratch.
func (t *Transient[T]) Persistent() (List[T], error) {
	if t.session.closed {
		return List[T]{}, ErrTransientClosed
	}
	t.session.closed = true
	repr := t.repr.freeze()
	thresholds := t.cfg.Thresholds.orDefault()
	want := thresholds.initial(repr.length())
	if want != repr.kind() {
		if t.cfg.Listener != nil {
			t.cfg.Listener.OnMigration(repr.kind(), want, repr.length())
		}
		repr = buildRepr(want, toSlice(repr))
	}
	return List[T]{cfg: t.cfg, rep: repr}, nil
}
