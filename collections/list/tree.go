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

// tree is the large-size representation: a 32-way trie whose leaves are
// chunks. Logical element i lives at trie position i+offset; the position is
// decomposed into base-32 digits selecting the child at each branch level,
// with the lowest 5 bits addressing the slot inside the leaf chunk.
//
// The offset makes prepending symmetric to appending: growing the tree on
// the left re-roots it with the old root as the second child of a new root,
// which shifts all positions up by the capacity of one subtree, and the
// offset addresses into the fresh space. Every mutation copies only the
// nodes on the root-to-leaf path it touches; all sibling subtrees are shared
// with the original tree by reference.
type tree[T any] struct {
	size   int
	height int // number of branch levels; 0 means the root is a leaf chunk
	offset int // trie position of logical element 0
	root   treeNode[T]
}

// treeNode is either a *branch[T] or a *chunk[T]; absent subtrees are nil.
type treeNode[T any] interface{}

// branch is an interior node of the tree holding up to branchFactor
// children. Children outside the populated range are nil.
type branch[T any] struct {
	children [branchFactor]treeNode[T]

	// owner is non-nil while this branch is mutable inside an edit session.
	owner *editSession
}

func (b *branch[T]) clone() *branch[T] {
	res := *b
	res.owner = nil
	return &res
}

// treeCapacity returns the number of trie positions addressable at the given
// height.
func treeCapacity(height int) int {
	return 1 << (bitsPerLevel * (height + 1))
}

// newTree bulk-loads the given elements into a fresh tree, packing them into
// full leaves and building the branch levels bottom-up.
func newTree[T any](elems []T) *tree[T] {
	if len(elems) == 0 {
		return &tree[T]{}
	}
	leaves := packLeft(elems)
	nodes := make([]treeNode[T], len(leaves))
	for i, leaf := range leaves {
		nodes[i] = leaf
	}
	height := 0
	for len(nodes) > 1 {
		parents := make([]treeNode[T], 0, (len(nodes)+branchFactor-1)/branchFactor)
		for start := 0; start < len(nodes); start += branchFactor {
			end := min(start+branchFactor, len(nodes))
			b := &branch[T]{}
			copy(b.children[:], nodes[start:end])
			parents = append(parents, b)
		}
		nodes = parents
		height++
	}
	return &tree[T]{size: len(elems), height: height, root: nodes[0]}
}

func (t *tree[T]) kind() Kind {
	return KindTree
}

func (t *tree[T]) length() int {
	return t.size
}

// leafFor returns the leaf chunk owning the given trie position.
func (t *tree[T]) leafFor(g int) *chunk[T] {
	n := t.root
	for sh := t.height * bitsPerLevel; sh > 0; sh -= bitsPerLevel {
		n = n.(*branch[T]).children[(g>>sh)&indexMask]
	}
	return n.(*chunk[T])
}

func (t *tree[T]) get(i int) T {
	g := i + t.offset
	return t.leafFor(g).slotGet(g & indexMask)
}

func (t *tree[T]) set(i int, value T) representation[T] {
	g := i + t.offset
	return &tree[T]{
		size:   t.size,
		height: t.height,
		offset: t.offset,
		root:   assocNode(t.root, t.height*bitsPerLevel, g, value),
	}
}

// assocNode rebuilds the path from the given node down to the leaf owning
// position g, replacing the element there. Untouched children are shared.
func assocNode[T any](n treeNode[T], sh, g int, value T) treeNode[T] {
	if sh == 0 {
		return n.(*chunk[T]).withSlotSet(g&indexMask, value)
	}
	b := n.(*branch[T]).clone()
	d := (g >> sh) & indexMask
	b.children[d] = assocNode(b.children[d], sh-bitsPerLevel, g, value)
	return b
}

func (t *tree[T]) append(value T) representation[T] {
	g := t.offset + t.size
	root, height := t.root, t.height
	if g >= treeCapacity(height) {
		// The tree is full at its current height; wrap the root.
		grown := &branch[T]{}
		grown.children[0] = root
		root = grown
		height++
	}
	root = growBack(root, height*bitsPerLevel, g, value)
	return &tree[T]{size: t.size + 1, height: height, offset: t.offset, root: root}
}

// growBack rebuilds the path to position g, extending the rightmost leaf or
// creating the nodes missing on the way.
func growBack[T any](n treeNode[T], sh, g int, value T) treeNode[T] {
	if sh == 0 {
		if n == nil {
			return newChunkAt(g&indexMask, []T{value})
		}
		return n.(*chunk[T]).withSlotAppended(value)
	}
	var b *branch[T]
	if n == nil {
		b = &branch[T]{}
	} else {
		b = n.(*branch[T]).clone()
	}
	d := (g >> sh) & indexMask
	b.children[d] = growBack(b.children[d], sh-bitsPerLevel, g, value)
	return b
}

func (t *tree[T]) prepend(value T) representation[T] {
	if t.size == 0 {
		return t.append(value)
	}
	offset, root, height := t.offset, t.root, t.height
	if offset == 0 {
		// No space on the left; re-root with the old tree as the second
		// child, shifting all positions up by one subtree capacity.
		grown := &branch[T]{}
		grown.children[1] = root
		offset = treeCapacity(height)
		root = grown
		height++
	}
	g := offset - 1
	root = growFront(root, height*bitsPerLevel, g, value)
	return &tree[T]{size: t.size + 1, height: height, offset: g, root: root}
}

// growFront rebuilds the path to position g, extending the leftmost leaf
// downwards or creating the nodes missing on the way.
func growFront[T any](n treeNode[T], sh, g int, value T) treeNode[T] {
	if sh == 0 {
		if n == nil {
			return newChunkAt(g&indexMask, []T{value})
		}
		return n.(*chunk[T]).withSlotPrepended(value)
	}
	var b *branch[T]
	if n == nil {
		b = &branch[T]{}
	} else {
		b = n.(*branch[T]).clone()
	}
	d := (g >> sh) & indexMask
	b.children[d] = growFront(b.children[d], sh-bitsPerLevel, g, value)
	return b
}

func (t *tree[T]) insert(i int, value T) representation[T] {
	if i == 0 {
		return t.prepend(value)
	}
	if i == t.size {
		return t.append(value)
	}
	// Shift the shorter side of the insertion point by one position through
	// a private edit session; the longer side is shared untouched.
	session := newEditSession()
	tt := t.asTransientTree(session)
	if i <= t.size/2 {
		left := t.sliceRange(0, i)
		tt.prepend(left[0])
		for j := 1; j < i; j++ {
			tt.set(j, left[j])
		}
		tt.set(i, value)
	} else {
		right := t.sliceRange(i, t.size)
		tt.append(right[len(right)-1])
		for j := i + 1; j < t.size; j++ {
			tt.set(j, right[j-1-i])
		}
		tt.set(i, value)
	}
	session.closed = true
	return tt.freeze()
}

func (t *tree[T]) remove(i int) representation[T] {
	if i == 0 {
		return t.dropFront()
	}
	if i == t.size-1 {
		return t.dropBack()
	}
	session := newEditSession()
	tt := t.asTransientTree(session)
	if i <= t.size/2 {
		left := t.sliceRange(0, i)
		for j := i; j >= 1; j-- {
			tt.set(j, left[j-1])
		}
		tt.dropFront()
	} else {
		right := t.sliceRange(i+1, t.size)
		for j := i; j < t.size-1; j++ {
			tt.set(j, right[j-i])
		}
		tt.dropBack()
	}
	session.closed = true
	return tt.freeze()
}

func (t *tree[T]) dropFront() representation[T] {
	root := dropEdge[T](t.root, t.height*bitsPerLevel, t.offset, true)
	return &tree[T]{size: t.size - 1, height: t.height, offset: t.offset + 1, root: root}
}

func (t *tree[T]) dropBack() representation[T] {
	g := t.offset + t.size - 1
	root := dropEdge[T](t.root, t.height*bitsPerLevel, g, false)
	return &tree[T]{size: t.size - 1, height: t.height, offset: t.offset, root: root}
}

// dropEdge rebuilds the path to position g with the element there removed
// from its leaf. Leaves and branches that become empty are pruned so
// released subtrees can be collected.
func dropEdge[T any](n treeNode[T], sh, g int, front bool) treeNode[T] {
	if sh == 0 {
		c := n.(*chunk[T])
		if c.count == 1 {
			return nil
		}
		if front {
			return c.withFirstDropped()
		}
		return c.withLastDropped()
	}
	b := n.(*branch[T]).clone()
	d := (g >> sh) & indexMask
	b.children[d] = dropEdge[T](b.children[d], sh-bitsPerLevel, g, front)
	if b.children[d] == nil {
		empty := true
		for _, child := range b.children {
			if child != nil {
				empty = false
				break
			}
		}
		if empty {
			return nil
		}
	}
	return b
}

func (t *tree[T]) each(yield func(T) bool) {
	eachNode(t.root, yield)
}

func eachNode[T any](n treeNode[T], yield func(T) bool) bool {
	switch v := n.(type) {
	case nil:
		return true
	case *chunk[T]:
		return v.each(yield)
	case *branch[T]:
		for _, child := range v.children {
			if !eachNode(child, yield) {
				return false
			}
		}
		return true
	}
	panic("unknown tree node type")
}

func (t *tree[T]) sliceRange(from, to int) []T {
	res := make([]T, 0, to-from)
	for i := from; i < to; {
		g := i + t.offset
		c := t.leafFor(g)
		slot := g & indexMask
		end := c.off + c.count
		if end > slot+(to-i) {
			end = slot + (to - i)
		}
		res = append(res, c.elems[slot:end]...)
		i += end - slot
	}
	return res
}

func (t *tree[T]) asTransient(session *editSession) transientRepr[T] {
	return t.asTransientTree(session)
}

func (t *tree[T]) asTransientTree(session *editSession) *transientTree[T] {
	return &transientTree[T]{
		session: session,
		size:    t.size,
		height:  t.height,
		offset:  t.offset,
		root:    t.root,
	}
}
