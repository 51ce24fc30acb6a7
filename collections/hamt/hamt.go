// Copyright (c) 2025 Sonic Operations Ltd
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at soniclabs.com/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package hamt provides an immutable map backed by a hash array mapped
// trie: a 32-way trie over the bits of the key hash whose interior nodes
// are bitmap-compressed, storing only the populated children. Lookup,
// insert and delete are O(log₃₂ n); derived maps share all untouched
// subtries with the maps they were derived from.
package hamt

import (
	"hash/maphash"
	"iter"
	"math/bits"
)

const (
	bitsPerLevel = 5
	branchFactor = 1 << bitsPerLevel
	indexMask    = branchFactor - 1

	// maxShift is the deepest trie level; hashes agreeing on all bits
	// beyond it are stored in collision buckets.
	maxShift = (64 / bitsPerLevel) * bitsPerLevel
)

// seed makes hash values unpredictable per process, like the built-in map.
var seed = maphash.MakeSeed()

// Map is an immutable mapping from keys to values. Every mutating
// operation returns a new Map value and leaves the receiver unchanged. The
// zero value is a valid empty map.
//
// Maps are safe for concurrent reads without synchronization; nodes are
// never mutated after publication.
type Map[K comparable, V any] struct {
	root node[K, V]
	size int
}

// Empty returns an empty map.
func Empty[K comparable, V any]() Map[K, V] {
	return Map[K, V]{}
}

// From returns a map holding the entries of the given built-in map.
func From[K comparable, V any](entries map[K]V) Map[K, V] {
	res := Map[K, V]{}
	for k, v := range entries {
		res = res.Set(k, v)
	}
	return res
}

// Len returns the number of entries.
func (m Map[K, V]) Len() int {
	return m.size
}

// Get returns the value stored for the given key, or false if there is
// none.
func (m Map[K, V]) Get(key K) (V, bool) {
	if m.root == nil {
		var zero V
		return zero, false
	}
	return m.root.get(maphash.Comparable(seed, key), 0, key)
}

// Set returns a new map with the value stored under the given key,
// replacing any previous value for it.
func (m Map[K, V]) Set(key K, value V) Map[K, V] {
	h := maphash.Comparable(seed, key)
	if m.root == nil {
		return Map[K, V]{root: bitmapNode[K, V]{}.withLeaf(h, 0, key, value), size: 1}
	}
	root, added := m.root.assoc(h, 0, key, value)
	size := m.size
	if added {
		size++
	}
	return Map[K, V]{root: root, size: size}
}

// Delete returns a new map without an entry for the given key. Deleting an
// absent key returns the map unchanged.
func (m Map[K, V]) Delete(key K) Map[K, V] {
	if m.root == nil {
		return m
	}
	root, removed := m.root.without(maphash.Comparable(seed, key), 0, key)
	if !removed {
		return m
	}
	return Map[K, V]{root: root, size: m.size - 1}
}

// ForEach invokes yield for every entry, stopping early if yield returns
// false. The iteration order is unspecified but stable for a given map
// value.
func (m Map[K, V]) ForEach(yield func(K, V) bool) {
	if m.root != nil {
		m.root.each(yield)
	}
}

// All returns a restartable iterator over all entries.
func (m Map[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		m.ForEach(yield)
	}
}

// Keys returns a restartable iterator over all keys.
func (m Map[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		m.ForEach(func(k K, _ V) bool {
			return yield(k)
		})
	}
}

// ---- Nodes ----

type node[K comparable, V any] interface {
	get(hash uint64, shift int, key K) (V, bool)
	assoc(hash uint64, shift int, key K, value V) (node[K, V], bool)
	without(hash uint64, shift int, key K) (node[K, V], bool)
	each(yield func(K, V) bool) bool
	// single reports whether the node holds exactly one entry, returning it
	// so emptied parents can inline it.
	single() (K, V, bool)
}

// slot is one populated position of a bitmap node: either a direct
// key/value entry (sub == nil) or a pointer to a deeper node.
type slot[K comparable, V any] struct {
	key   K
	value V
	sub   node[K, V]
}

// bitmapNode stores its populated children in a dense slice; bit i of the
// bitmap is set iff trie digit i is populated, and the child's position in
// the slice is the number of set bits below i.
type bitmapNode[K comparable, V any] struct {
	bitmap uint32
	slots  []slot[K, V]
}

func digit(hash uint64, shift int) int {
	return int(hash>>shift) & indexMask
}

func (n *bitmapNode[K, V]) index(bit uint32) int {
	return bits.OnesCount32(n.bitmap & (bit - 1))
}

// withLeaf returns a copy of the node with a direct entry stored at the
// trie digit of the given hash. The digit must be unpopulated.
func (n bitmapNode[K, V]) withLeaf(hash uint64, shift int, key K, value V) *bitmapNode[K, V] {
	bit := uint32(1) << digit(hash, shift)
	i := n.index(bit)
	slots := make([]slot[K, V], 0, len(n.slots)+1)
	slots = append(slots, n.slots[:i]...)
	slots = append(slots, slot[K, V]{key: key, value: value})
	slots = append(slots, n.slots[i:]...)
	return &bitmapNode[K, V]{bitmap: n.bitmap | bit, slots: slots}
}

func (n *bitmapNode[K, V]) withSlot(i int, s slot[K, V]) *bitmapNode[K, V] {
	slots := make([]slot[K, V], len(n.slots))
	copy(slots, n.slots)
	slots[i] = s
	return &bitmapNode[K, V]{bitmap: n.bitmap, slots: slots}
}

func (n *bitmapNode[K, V]) withoutSlot(bit uint32, i int) *bitmapNode[K, V] {
	slots := make([]slot[K, V], 0, len(n.slots)-1)
	slots = append(slots, n.slots[:i]...)
	slots = append(slots, n.slots[i+1:]...)
	return &bitmapNode[K, V]{bitmap: n.bitmap &^ bit, slots: slots}
}

func (n *bitmapNode[K, V]) get(hash uint64, shift int, key K) (V, bool) {
	bit := uint32(1) << digit(hash, shift)
	if n.bitmap&bit == 0 {
		var zero V
		return zero, false
	}
	s := n.slots[n.index(bit)]
	if s.sub != nil {
		return s.sub.get(hash, shift+bitsPerLevel, key)
	}
	if s.key == key {
		return s.value, true
	}
	var zero V
	return zero, false
}

func (n *bitmapNode[K, V]) assoc(hash uint64, shift int, key K, value V) (node[K, V], bool) {
	bit := uint32(1) << digit(hash, shift)
	if n.bitmap&bit == 0 {
		return n.withLeaf(hash, shift, key, value), true
	}
	i := n.index(bit)
	s := n.slots[i]
	if s.sub != nil {
		sub, added := s.sub.assoc(hash, shift+bitsPerLevel, key, value)
		return n.withSlot(i, slot[K, V]{sub: sub}), added
	}
	if s.key == key {
		return n.withSlot(i, slot[K, V]{key: key, value: value}), false
	}
	// Two distinct keys share the digit; push the old entry one level down
	// and retry there.
	sub := pushDown(s.key, s.value, shift+bitsPerLevel)
	sub, _ = sub.assoc(hash, shift+bitsPerLevel, key, value)
	return n.withSlot(i, slot[K, V]{sub: sub}), true
}

// pushDown wraps a single existing entry into a node at the given level.
func pushDown[K comparable, V any](key K, value V, shift int) node[K, V] {
	if shift > maxShift {
		return &collisionNode[K, V]{hash: maphash.Comparable(seed, key), slots: []slot[K, V]{{key: key, value: value}}}
	}
	return bitmapNode[K, V]{}.withLeaf(maphash.Comparable(seed, key), shift, key, value)
}

func (n *bitmapNode[K, V]) without(hash uint64, shift int, key K) (node[K, V], bool) {
	bit := uint32(1) << digit(hash, shift)
	if n.bitmap&bit == 0 {
		return n, false
	}
	i := n.index(bit)
	s := n.slots[i]
	if s.sub == nil {
		if s.key != key {
			return n, false
		}
		if len(n.slots) == 1 {
			return nil, true
		}
		return n.withoutSlot(bit, i), true
	}
	sub, removed := s.sub.without(hash, shift+bitsPerLevel, key)
	if !removed {
		return n, false
	}
	if sub == nil {
		if len(n.slots) == 1 {
			return nil, true
		}
		return n.withoutSlot(bit, i), true
	}
	// Inline a child that shrank to a single entry.
	if k, v, ok := sub.single(); ok {
		return n.withSlot(i, slot[K, V]{key: k, value: v}), true
	}
	return n.withSlot(i, slot[K, V]{sub: sub}), true
}

func (n *bitmapNode[K, V]) each(yield func(K, V) bool) bool {
	for _, s := range n.slots {
		if s.sub != nil {
			if !s.sub.each(yield) {
				return false
			}
			continue
		}
		if !yield(s.key, s.value) {
			return false
		}
	}
	return true
}

func (n *bitmapNode[K, V]) single() (K, V, bool) {
	if len(n.slots) == 1 && n.slots[0].sub == nil {
		return n.slots[0].key, n.slots[0].value, true
	}
	var k K
	var v V
	return k, v, false
}

// collisionNode holds entries whose keys hash to the same value; lookups
// fall back to a linear scan over the bucket.
type collisionNode[K comparable, V any] struct {
	hash  uint64
	slots []slot[K, V]
}

func (n *collisionNode[K, V]) get(hash uint64, shift int, key K) (V, bool) {
	for _, s := range n.slots {
		if s.key == key {
			return s.value, true
		}
	}
	var zero V
	return zero, false
}

func (n *collisionNode[K, V]) assoc(hash uint64, shift int, key K, value V) (node[K, V], bool) {
	for i, s := range n.slots {
		if s.key == key {
			slots := make([]slot[K, V], len(n.slots))
			copy(slots, n.slots)
			slots[i] = slot[K, V]{key: key, value: value}
			return &collisionNode[K, V]{hash: n.hash, slots: slots}, false
		}
	}
	slots := make([]slot[K, V], 0, len(n.slots)+1)
	slots = append(slots, n.slots...)
	slots = append(slots, slot[K, V]{key: key, value: value})
	return &collisionNode[K, V]{hash: n.hash, slots: slots}, true
}

func (n *collisionNode[K, V]) without(hash uint64, shift int, key K) (node[K, V], bool) {
	for i, s := range n.slots {
		if s.key == key {
			if len(n.slots) == 1 {
				return nil, true
			}
			slots := make([]slot[K, V], 0, len(n.slots)-1)
			slots = append(slots, n.slots[:i]...)
			slots = append(slots, n.slots[i+1:]...)
			return &collisionNode[K, V]{hash: n.hash, slots: slots}, true
		}
	}
	return n, false
}

func (n *collisionNode[K, V]) each(yield func(K, V) bool) bool {
	for _, s := range n.slots {
		if !yield(s.key, s.value) {
			return false
		}
	}
	return true
}

func (n *collisionNode[K, V]) single() (K, V, bool) {
	if len(n.slots) == 1 {
		return n.slots[0].key, n.slots[0].value, true
	}
	var k K
	var v V
	return k, v, false
}
