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

// representation is the interface shared by the internal storage strategies
// of a List. All indices are validated by the facade before dispatch; a
// representation treats out-of-range indices as invariant violations.
//
// Mutating operations return a new representation instance sharing unchanged
// structure with the receiver; the receiver is never modified. Operations
// never change the representation kind - migration between kinds is the
// facade's job.
type representation[T any] interface {
	kind() Kind
	length() int
	get(i int) T
	set(i int, value T) representation[T]
	insert(i int, value T) representation[T]
	remove(i int) representation[T]
	append(value T) representation[T]
	prepend(value T) representation[T]

	// each invokes yield for every element in logical order, stopping early
	// if yield returns false.
	each(yield func(T) bool)

	// sliceRange returns an independent copy of the elements in [from, to).
	sliceRange(from, to int) []T

	// asTransient derives a mutable view owned by the given edit session.
	// The receiver remains valid and unchanged.
	asTransient(session *editSession) transientRepr[T]
}

// transientRepr is the mutable counterpart of a representation, confined to
// a single edit session. Indices are validated by the Transient facade.
type transientRepr[T any] interface {
	length() int
	get(i int) T
	set(i int, value T)
	append(value T)
	prepend(value T)

	// freeze publishes the current state as an immutable representation.
	// The transient view must not be used afterwards.
	freeze() representation[T]
}

// toSlice returns an independent copy of all elements of a representation.
func toSlice[T any](r representation[T]) []T {
	return r.sliceRange(0, r.length())
}

// buildRepr bulk-loads the given elements into a fresh representation of the
// requested kind.
func buildRepr[T any](kind Kind, elems []T) representation[T] {
	switch kind {
	case KindSmall:
		return newSmall(elems)
	case KindChunked:
		return newChunked(elems)
	default:
		return newTree(elems)
	}
}
